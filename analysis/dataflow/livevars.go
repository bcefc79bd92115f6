// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"github.com/castorlabs/castor/analysis/cfg"
	"github.com/castorlabs/castor/ir"
)

// LiveVars is the backward may-analysis computing live variables.
//
// based on algo from ch 9.2, p.610 Dragonbook, v2.2,
// "Iterative algorithm to compute live variables":
//
//	IN[B] = use[B] Union (OUT[B] - def[B])
//	OUT[B] = Union(S a successor of B) IN[S]
type LiveVars struct{}

func NewLiveVars() *LiveVars { return &LiveVars{} }

func (*LiveVars) IsForward() bool { return false }

func (*LiveVars) NewBoundaryFact(g *cfg.CFG) *SetFact[*ir.Var] {
	return NewSetFact[*ir.Var]()
}

func (*LiveVars) NewInitialFact() *SetFact[*ir.Var] {
	return NewSetFact[*ir.Var]()
}

func (*LiveVars) MeetInto(fact, target *SetFact[*ir.Var]) bool {
	return target.Union(fact)
}

func (*LiveVars) TransferNode(n ir.Stmt, in, out *SetFact[*ir.Var]) bool {
	work := out.Copy()
	if d := n.Def(); d != nil {
		work.Remove(d)
	}
	for _, u := range n.Uses() {
		work.Add(u)
	}
	return in.SetTo(work)
}

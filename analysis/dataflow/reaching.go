// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"github.com/castorlabs/castor/analysis/cfg"
	"github.com/castorlabs/castor/ir"
)

// ReachingDefs is the forward may-analysis computing which definition
// statements may reach each program point. A statement generates
// itself when it defines a variable and kills every other definition
// of that variable.
type ReachingDefs struct {
	defs map[*ir.Var][]ir.Stmt
}

// NewReachingDefs prepares the analysis for one method by indexing its
// definition statements per variable.
func NewReachingDefs(m *ir.Method) *ReachingDefs {
	r := &ReachingDefs{defs: make(map[*ir.Var][]ir.Stmt)}
	for _, s := range m.Stmts() {
		if d := s.Def(); d != nil {
			r.defs[d] = append(r.defs[d], s)
		}
	}
	return r
}

func (*ReachingDefs) IsForward() bool { return true }

func (*ReachingDefs) NewBoundaryFact(g *cfg.CFG) *SetFact[ir.Stmt] {
	return NewSetFact[ir.Stmt]()
}

func (*ReachingDefs) NewInitialFact() *SetFact[ir.Stmt] {
	return NewSetFact[ir.Stmt]()
}

func (*ReachingDefs) MeetInto(fact, target *SetFact[ir.Stmt]) bool {
	return target.Union(fact)
}

func (r *ReachingDefs) TransferNode(n ir.Stmt, in, out *SetFact[ir.Stmt]) bool {
	work := in.Copy()
	if d := n.Def(); d != nil {
		for _, def := range r.defs[d] {
			work.Remove(def)
		}
		work.Add(n)
	}
	return out.SetTo(work)
}

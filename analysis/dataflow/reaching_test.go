// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"testing"

	"github.com/castorlabs/castor/analysis/cfg"
	"github.com/castorlabs/castor/ir"
)

func solveReaching(m *ir.Method) (*cfg.CFG, *Result[*SetFact[ir.Stmt]]) {
	g := cfg.New(m)
	return g, Solve[*SetFact[ir.Stmt]](g, NewReachingDefs(m))
}

func TestReachingKilledDefinition(t *testing.T) {
	b := newMain()
	x, y := b.Local("x", ir.Int), b.Local("y", ir.Int)
	d0 := b.AssignLiteral(x, 1)
	d1 := b.AssignLiteral(x, 2)
	use := b.Copy(y, x)
	b.Return(y)
	_, res := solveReaching(b.Finish())

	if !res.In(use).Has(ir.Stmt(d1)) {
		t.Error("x = 2 does not reach its use")
	}
	if res.In(use).Has(ir.Stmt(d0)) {
		t.Error("killed definition x = 1 reaches the use")
	}
}

func TestReachingBothBranchDefinitionsMerge(t *testing.T) {
	b := newMain()
	p := b.Param("p", ir.Int)
	x, y, zero := b.Local("x", ir.Int), b.Local("y", ir.Int), b.Local("zero", ir.Int)
	lElse, lEnd := b.NewLabel(), b.NewLabel()
	b.AssignLiteral(zero, 0)
	b.If(ir.OpEq, p, zero, lElse)
	d1 := b.AssignLiteral(x, 1)
	b.Goto(lEnd)
	b.Mark(lElse)
	d2 := b.AssignLiteral(x, 2)
	b.Mark(lEnd)
	use := b.Copy(y, x)
	b.Return(y)
	_, res := solveReaching(b.Finish())

	for _, d := range []ir.Stmt{d1, d2} {
		if !res.In(use).Has(d) {
			t.Errorf("definition %v does not reach the join", d)
		}
	}
	if !res.Out(use).Has(ir.Stmt(use)) {
		t.Error("the join's own definition of y is not downward exposed")
	}
}

// Upon termination, in(v) must subsume out(u) for every edge (u,v).
func TestReachingFixedPointIsSound(t *testing.T) {
	b := newMain()
	p := b.Param("p", ir.Int)
	x, zero := b.Local("x", ir.Int), b.Local("zero", ir.Int)
	lHead, lEnd := b.NewLabel(), b.NewLabel()
	b.AssignLiteral(zero, 0)
	b.AssignLiteral(x, 0)
	b.Mark(lHead)
	b.If(ir.OpEq, p, zero, lEnd)
	b.Binary(x, ir.OpAdd, x, p)
	b.Goto(lHead)
	b.Mark(lEnd)
	b.Return(x)
	m := b.Finish()
	g, res := solveReaching(m)

	rd := NewReachingDefs(m)
	for _, u := range g.Nodes() {
		for _, v := range g.Succs(u) {
			if rd.MeetInto(res.Out(u), res.In(v).Copy()) {
				t.Errorf("in(%v) does not subsume out(%v)", v, u)
			}
		}
	}
}

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfg

import (
	"testing"

	"github.com/castorlabs/castor/ir"
)

func kindsOf(edges []Edge) map[EdgeKind]int {
	out := make(map[EdgeKind]int)
	for _, e := range edges {
		out[e.Kind]++
	}
	return out
}

func TestStraightLineEdges(t *testing.T) {
	h := ir.NewHierarchy()
	b := h.NewClass("Main", nil, false).NewStaticMethod("main", ir.Void)
	x := b.Local("x", ir.Int)
	s0 := b.AssignLiteral(x, 1)
	s1 := b.Return(x)
	g := New(b.Finish())

	if got := g.Succs(g.Entry()); len(got) != 1 || got[0] != s0 {
		t.Fatalf("entry succs = %v, want [%v]", got, s0)
	}
	if got := g.Succs(s0); len(got) != 1 || got[0] != s1 {
		t.Fatalf("succs(s0) = %v, want [%v]", got, s1)
	}
	if got := g.Succs(s1); len(got) != 1 || got[0] != g.Exit() {
		t.Fatalf("return does not flow to exit: %v", got)
	}
	if got := g.Preds(s1); len(got) != 1 || got[0] != s0 {
		t.Fatalf("preds(s1) = %v, want [%v]", got, s0)
	}
	if n := len(g.Nodes()); n != 4 { // entry, 2 stmts, exit
		t.Fatalf("node count = %d, want 4", n)
	}
}

func TestIfEdgesCarryKinds(t *testing.T) {
	h := ir.NewHierarchy()
	b := h.NewClass("Main", nil, false).NewStaticMethod("main", ir.Void)
	p := b.Param("p", ir.Int)
	zero := b.Local("zero", ir.Int)
	lThen := b.NewLabel()
	b.AssignLiteral(zero, 0)
	br := b.If(ir.OpEq, p, zero, lThen)
	fall := b.AssignLiteral(zero, 1)
	b.Mark(lThen)
	tgt := b.ReturnVoid()
	g := New(b.Finish())

	edges := g.OutEdges(br)
	if len(edges) != 2 {
		t.Fatalf("if has %d out edges, want 2", len(edges))
	}
	for _, e := range edges {
		switch e.Kind {
		case IfTrue:
			if e.Target != ir.Stmt(tgt) {
				t.Errorf("if-true edge goes to %v, want %v", e.Target, tgt)
			}
		case IfFalse:
			if e.Target != ir.Stmt(fall) {
				t.Errorf("if-false edge goes to %v, want %v", e.Target, fall)
			}
		default:
			t.Errorf("unexpected edge kind %v on if", e.Kind)
		}
	}
}

func TestSwitchEdgesCarryCaseValues(t *testing.T) {
	h := ir.NewHierarchy()
	b := h.NewClass("Main", nil, false).NewStaticMethod("main", ir.Void)
	k := b.Param("k", ir.Int)
	lA, lB, lD := b.NewLabel(), b.NewLabel(), b.NewLabel()
	sw := b.Switch(k, []int32{1, 2}, []*ir.Label{lA, lB}, lD)
	b.Mark(lA)
	b.ReturnVoid()
	b.Mark(lB)
	b.ReturnVoid()
	b.Mark(lD)
	b.ReturnVoid()
	g := New(b.Finish())

	edges := g.OutEdges(sw)
	kinds := kindsOf(edges)
	if kinds[SwitchCase] != 2 || kinds[SwitchDefault] != 1 {
		t.Fatalf("switch edge kinds = %v, want 2 cases + 1 default", kinds)
	}
	values := map[int32]bool{}
	for _, e := range edges {
		if e.Kind == SwitchCase {
			values[e.CaseValue] = true
		}
	}
	if !values[1] || !values[2] {
		t.Errorf("case values = %v, want {1,2}", values)
	}
}

func TestGotoAndLoop(t *testing.T) {
	h := ir.NewHierarchy()
	b := h.NewClass("Main", nil, false).NewStaticMethod("main", ir.Void)
	p := b.Param("p", ir.Int)
	zero := b.Local("zero", ir.Int)
	lHead, lEnd := b.NewLabel(), b.NewLabel()
	b.AssignLiteral(zero, 0)
	b.Mark(lHead)
	head := b.If(ir.OpEq, p, zero, lEnd)
	b.Nop()
	back := b.Goto(lHead)
	b.Mark(lEnd)
	b.ReturnVoid()
	g := New(b.Finish())

	if got := g.Succs(back); len(got) != 1 || got[0] != ir.Stmt(head) {
		t.Fatalf("back edge goes to %v, want loop head", got)
	}
	// The loop head has two predecessors: fall-through and back edge.
	if got := len(g.Preds(head)); got != 2 {
		t.Fatalf("loop head has %d preds, want 2", got)
	}
}

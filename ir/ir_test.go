// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"testing"
)

func TestBuilderAssignsStableIndices(t *testing.T) {
	h := NewHierarchy()
	c := h.NewClass("C", nil, false)
	b := c.NewStaticMethod("m", Void)
	x := b.Local("x", Int)
	b.AssignLiteral(x, 1)
	b.AssignLiteral(x, 2)
	b.ReturnVoid()
	m := b.Finish()

	for i, s := range m.Stmts() {
		if s.Index() != i {
			t.Errorf("stmt %v has index %d, want %d", s, s.Index(), i)
		}
		if s.Container() != m {
			t.Errorf("stmt %v has container %v, want %v", s, s.Container(), m)
		}
	}
	if c.DeclaredMethod("void m()") != m {
		t.Error("method not registered under its subsignature")
	}
}

func TestBranchLabelsResolve(t *testing.T) {
	h := NewHierarchy()
	c := h.NewClass("C", nil, false)
	b := c.NewStaticMethod("m", Void)
	p := b.Param("p", Int)
	zero := b.Local("zero", Int)
	l := b.NewLabel()
	b.AssignLiteral(zero, 0)
	br := b.If(OpEq, p, zero, l)
	b.Nop()
	b.Mark(l)
	tgt := b.ReturnVoid()
	b.Finish()

	if br.Target() != Stmt(tgt) {
		t.Errorf("if target = %v, want %v", br.Target(), tgt)
	}
}

func TestRelevantStatementAccessors(t *testing.T) {
	h := NewHierarchy()
	a := h.NewClass("A", nil, false)
	f := a.NewField("f", a.Type(), false)
	c := h.NewClass("C", nil, false)
	b := c.NewStaticMethod("m", Void)
	base := b.Local("base", a.Type())
	v := b.Local("v", a.Type())
	arr := b.Local("arr", ArrayType(a.Type()))
	i := b.Local("i", Int)
	b.New(base, a.Type())
	st := b.StoreField(base, f, v)
	ld := b.LoadField(v, base, f)
	ast := b.StoreArray(arr, i, v)
	ald := b.LoadArray(v, arr, i)
	inv := b.InvokeVirtual(nil, base, NewMethodRef(a, "m", Void))
	b.ReturnVoid()
	b.Finish()

	if len(base.StoreFields()) != 1 || base.StoreFields()[0] != st {
		t.Error("StoreFields accessor wrong")
	}
	if len(base.LoadFields()) != 1 || base.LoadFields()[0] != ld {
		t.Error("LoadFields accessor wrong")
	}
	if len(arr.StoreArrays()) != 1 || arr.StoreArrays()[0] != ast {
		t.Error("StoreArrays accessor wrong")
	}
	if len(arr.LoadArrays()) != 1 || arr.LoadArrays()[0] != ald {
		t.Error("LoadArrays accessor wrong")
	}
	if len(base.Invokes()) != 1 || base.Invokes()[0] != inv {
		t.Error("Invokes accessor wrong")
	}
}

func TestDispatchWalksSuperChain(t *testing.T) {
	h := NewHierarchy()
	sup := h.NewClass("Super", nil, false)
	mb := sup.NewMethod("m", Void)
	mb.ReturnVoid()
	supM := mb.Finish()
	sub := h.NewClass("Sub", sup, false)
	abs := h.NewClass("Abs", nil, true)
	abs.NewAbstractMethod("g", Void)

	if got := h.Dispatch(sub, "void m()"); got != supM {
		t.Errorf("dispatch(Sub) = %v, want inherited %v", got, supM)
	}
	if got := h.Dispatch(abs, "void g()"); got != nil {
		t.Errorf("dispatch over abstract method = %v, want nil", got)
	}
	if got := h.Dispatch(sub, "void missing()"); got != nil {
		t.Errorf("dispatch of unknown subsignature = %v, want nil", got)
	}
}

func TestWorldRejectsUnknownEntry(t *testing.T) {
	h := NewHierarchy()
	c := h.NewClass("Main", nil, false)
	b := c.NewStaticMethod("main", Void)
	b.ReturnVoid()
	b.Finish()

	if _, err := NewWorld(h, "Nope", "void main()"); err == nil {
		t.Error("unknown entry class accepted")
	}
	if _, err := NewWorld(h, "Main", "void nope()"); err == nil {
		t.Error("unknown entry method accepted")
	}
	w, err := NewWorld(h, "Main", "void main()")
	if err != nil || w.Entry() == nil {
		t.Fatalf("valid entry rejected: %v", err)
	}
}

func TestSubsignatureFormat(t *testing.T) {
	h := NewHierarchy()
	c := h.NewClass("C", nil, false)
	b := c.NewStaticMethod("f", Int)
	b.Param("a", Int)
	b.Param("b", Boolean)
	x := b.Local("x", Int)
	b.AssignLiteral(x, 0)
	b.Return(x)
	m := b.Finish()

	if got, want := m.Subsignature(), "int f(int,boolean)"; got != want {
		t.Errorf("subsignature = %q, want %q", got, want)
	}
}

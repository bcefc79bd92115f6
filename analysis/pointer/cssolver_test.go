// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castorlabs/castor/ir"
)

// idProgram builds
//
//	class Util { static B id(B p) { return p; } }
//	class Main { static void main() {
//	    x1 = new B; r1 = Util.id(x1);
//	    x2 = new B; r2 = Util.id(x2);
//	} }
//
// and returns the world plus the two result variables.
func idProgram(t *testing.T) (*ir.World, *ir.Var, *ir.Var) {
	t.Helper()
	h := ir.NewHierarchy()
	bcls := h.NewClass("B", nil, false)
	u := h.NewClass("Util", nil, false)

	ib := u.NewStaticMethod("id", bcls.Type())
	p := ib.Param("p", bcls.Type())
	ib.Return(p)
	id := ib.Finish()

	main := h.NewClass("Main", nil, false)
	mb := main.NewStaticMethod("main", ir.Void)
	x1 := mb.Local("x1", bcls.Type())
	x2 := mb.Local("x2", bcls.Type())
	r1 := mb.Local("r1", bcls.Type())
	r2 := mb.Local("r2", bcls.Type())
	mb.New(x1, bcls.Type())
	mb.InvokeStatic(r1, id.Ref(), x1)
	mb.New(x2, bcls.Type())
	mb.InvokeStatic(r2, id.Ref(), x2)
	mb.ReturnVoid()
	mb.Finish()

	return ir.MustWorld(h, "Main", "void main()"), r1, r2
}

// Context insensitivity merges both calls through id; one call site of
// context distinguishes them.
func TestCallSiteSensitivityIsMorePrecise(t *testing.T) {
	w, r1, r2 := idProgram(t)
	ci := NewSolver(w).Solve()
	assert.Len(t, ci.PointsToSet(r1), 2, "insensitive analysis conflates the calls")
	assert.Len(t, ci.PointsToSet(r2), 2)

	w, r1, r2 = idProgram(t)
	cs := NewCSSolver(w, CallSiteSensitive(1)).Solve()
	require.Len(t, cs.PointsToSet(r1), 1, "1-call-site must separate the calls")
	require.Len(t, cs.PointsToSet(r2), 1)
	assert.NotEqual(t, cs.PointsToSet(r1)[0], cs.PointsToSet(r2)[0])
}

// The stripped call graph of the context-sensitive analysis matches the
// method-level view.
func TestStrippedCallGraph(t *testing.T) {
	w, _, _ := idProgram(t)
	cs := NewCSSolver(w, CallSiteSensitive(2)).Solve()

	stripped := cs.StrippedCallGraph()
	assert.Equal(t, 2, stripped.NumEdges(), "two distinct call sites remain after stripping")
	methods := stripped.ReachableMethods()
	assert.Len(t, methods, 2) // main and id
}

// Virtual dispatch under object sensitivity: the receiver object
// becomes the callee context element.
func TestObjectSensitiveReceiverContext(t *testing.T) {
	h := ir.NewHierarchy()
	a := h.NewClass("A", nil, false)
	bcls := h.NewClass("B", nil, false)
	f := a.NewField("f", bcls.Type(), false)

	sb := a.NewMethod("set", ir.Void)
	q := sb.Param("q", bcls.Type())
	sb.StoreField(sb.Method().This(), f, q)
	sb.ReturnVoid()
	sb.Finish()

	gb := a.NewMethod("get", bcls.Type())
	rv := gb.Local("r", bcls.Type())
	gb.LoadField(rv, gb.Method().This(), f)
	gb.Return(rv)
	gb.Finish()

	main := h.NewClass("Main", nil, false)
	mb := main.NewStaticMethod("main", ir.Void)
	a1 := mb.Local("a1", a.Type())
	a2 := mb.Local("a2", a.Type())
	b1 := mb.Local("b1", bcls.Type())
	b2 := mb.Local("b2", bcls.Type())
	o1 := mb.Local("o1", bcls.Type())
	o2 := mb.Local("o2", bcls.Type())
	mb.New(a1, a.Type())
	mb.New(a2, a.Type())
	mb.New(b1, bcls.Type())
	mb.New(b2, bcls.Type())
	setRef := ir.NewMethodRef(a, "set", ir.Void, bcls.Type())
	getRef := ir.NewMethodRef(a, "get", bcls.Type())
	mb.InvokeVirtual(nil, a1, setRef, b1)
	mb.InvokeVirtual(nil, a2, setRef, b2)
	mb.InvokeVirtual(o1, a1, getRef)
	mb.InvokeVirtual(o2, a2, getRef)
	mb.ReturnVoid()
	mb.Finish()

	w := ir.MustWorld(h, "Main", "void main()")

	ci := NewSolver(w).Solve()
	assert.Len(t, ci.PointsToSet(o1), 2, "insensitive analysis conflates the containers")

	w2 := ir.MustWorld(h, "Main", "void main()")
	cs := NewCSSolver(w2, ObjectSensitive(1)).Solve()
	require.Len(t, cs.PointsToSet(o1), 1, "1-object must separate per-receiver state")
	require.Len(t, cs.PointsToSet(o2), 1)
	assert.NotEqual(t, cs.PointsToSet(o1)[0], cs.PointsToSet(o2)[0])
}

// The per-variable projection unions every context-qualified
// incarnation of the variable: id's parameter is analyzed once per
// call-site context and its projection holds both allocation sites.
func TestResultProjectionUnionsContexts(t *testing.T) {
	w, r1, r2 := idProgram(t)
	cs := NewCSSolver(w, CallSiteSensitive(1)).Solve()

	id := w.Hierarchy().ClassByName("Util").DeclaredMethod("B id(B)")
	assert.Len(t, cs.PointsToSet(id.Params()[0]), 2, "projection unions the parameter's contexts")

	all := make(map[*Obj]bool)
	for _, o := range cs.PointsToSet(r1) {
		all[o] = true
	}
	for _, o := range cs.PointsToSet(r2) {
		all[o] = true
	}
	assert.Len(t, all, 2, "both allocation sites appear across contexts")
}

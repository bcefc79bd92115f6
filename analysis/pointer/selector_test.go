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

// selectorFixture builds a tiny program yielding two allocation sites,
// a call site, and a method to hang contexts on.
type selectorFixture struct {
	o1, o2 *Obj
	site   *ir.Invoke
	method *ir.Method
}

func newSelectorFixture(t *testing.T) *selectorFixture {
	t.Helper()
	h := ir.NewHierarchy()
	a := h.NewClass("A", nil, false)
	fb := a.NewMethod("m", ir.Void)
	fb.ReturnVoid()
	m := fb.Finish()

	main := h.NewClass("Main", nil, false)
	mb := main.NewStaticMethod("main", ir.Void)
	v1 := mb.Local("v1", a.Type())
	v2 := mb.Local("v2", a.Type())
	n1 := mb.New(v1, a.Type())
	n2 := mb.New(v2, a.Type())
	site := mb.InvokeVirtual(nil, v1, ir.NewMethodRef(a, "m", ir.Void))
	mb.ReturnVoid()
	mb.Finish()

	heap := newHeapModel()
	return &selectorFixture{
		o1:     heap.objOf(n1),
		o2:     heap.objOf(n2),
		site:   site,
		method: m,
	}
}

func elems(c *Context) []any { return c.Elems() }

func TestContextInterning(t *testing.T) {
	pool := newCtxPool()
	a := pool.make("x", "y")
	b := pool.make("x", "y")
	require.Same(t, a, b, "equal contexts must be the same pointer")
	require.Same(t, pool.Empty(), pool.make())
	assert.Equal(t, 2, a.Len())
	assert.NotSame(t, a, pool.make("y", "x"))
}

func TestContextTruncateAndPush(t *testing.T) {
	pool := newCtxPool()
	c := pool.make("a", "b", "c")
	assert.Equal(t, []any{"b", "c"}, elems(pool.truncate(c, 2)))
	assert.Same(t, pool.Empty(), pool.truncate(c, 0))
	assert.Same(t, c, pool.truncate(c, 5))
	assert.Equal(t, []any{"c", "d"}, elems(pool.push(c, "d", 2)))
	assert.Equal(t, []any{"d"}, elems(pool.push(c, "d", 1)))
}

// 2-object sensitivity: with receiver heap context [o1, o2], the callee
// context is [o2, recv.obj].
func TestTwoObjectCalleeContext(t *testing.T) {
	fx := newSelectorFixture(t)
	sel := ObjectSensitive(2).(*kObjSelector)

	recvCtx := sel.pool.make(fx.o1, fx.o2)
	recvObj := fx.o1 // the receiver allocation itself
	recv := &CSObj{ctx: recvCtx, obj: recvObj}

	cm := &CSMethod{ctx: sel.pool.Empty(), m: fx.method}
	cs := &CSCallSite{ctx: sel.pool.Empty(), site: fx.site, container: cm}

	got := sel.SelectInstanceContext(cs, recv, fx.method)
	require.Equal(t, []any{fx.o2, recvObj}, elems(got))
}

func TestOneObjectContexts(t *testing.T) {
	fx := newSelectorFixture(t)
	sel := ObjectSensitive(1).(*kObjSelector)

	recv := &CSObj{ctx: sel.pool.make(fx.o2), obj: fx.o1}
	cm := &CSMethod{ctx: sel.pool.make(fx.o2), m: fx.method}
	cs := &CSCallSite{ctx: cm.Context(), site: fx.site, container: cm}

	// instance context keeps only the receiver object
	got := sel.SelectInstanceContext(cs, recv, fx.method)
	require.Equal(t, []any{fx.o1}, elems(got))

	// static calls inherit the caller's context, k-limited
	assert.Equal(t, []any{fx.o2}, elems(sel.SelectContext(cs, fx.method)))

	// heap contexts are one element shorter: empty for k = 1
	assert.Same(t, sel.pool.Empty(), sel.SelectHeapContext(cm, fx.o1))
}

func TestCallSiteContexts(t *testing.T) {
	fx := newSelectorFixture(t)

	sel1 := CallSiteSensitive(1).(*kCallSelector)
	cm := &CSMethod{ctx: sel1.pool.Empty(), m: fx.method}
	cs := &CSCallSite{ctx: sel1.pool.Empty(), site: fx.site, container: cm}
	got := sel1.SelectContext(cs, fx.method)
	require.Equal(t, []any{fx.site}, elems(got))
	assert.Same(t, sel1.pool.Empty(), sel1.SelectHeapContext(cm, fx.o1))

	sel2 := CallSiteSensitive(2).(*kCallSelector)
	caller := sel2.pool.make("cs0")
	cs2 := &CSCallSite{ctx: caller, site: fx.site}
	got = sel2.SelectInstanceContext(cs2, nil, fx.method)
	require.Equal(t, []any{"cs0", fx.site}, elems(got))

	// heap context under 2-call-site keeps the last call site
	cm2 := &CSMethod{ctx: sel2.pool.make("cs0", "cs1"), m: fx.method}
	assert.Equal(t, []any{"cs1"}, elems(sel2.SelectHeapContext(cm2, fx.o1)))
}

func TestTypeSensitiveContexts(t *testing.T) {
	fx := newSelectorFixture(t)
	sel := TypeSensitive(1).(*kTypeSelector)

	recv := &CSObj{ctx: sel.pool.Empty(), obj: fx.o1}
	cm := &CSMethod{ctx: sel.pool.Empty(), m: fx.method}
	cs := &CSCallSite{ctx: sel.pool.Empty(), site: fx.site, container: cm}

	got := sel.SelectInstanceContext(cs, recv, fx.method)
	require.Equal(t, []any{fx.o1.ContainerType()}, elems(got))
}

func TestSelectorRejectsUnsupportedDepth(t *testing.T) {
	assert.Panics(t, func() { CallSiteSensitive(3) })
	assert.Panics(t, func() { ObjectSensitive(0) })
}

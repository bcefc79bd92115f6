// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

import (
	"fmt"

	"github.com/castorlabs/castor/ir"
)

// A ContextSelector decides the contexts the context-sensitive solver
// attaches to methods and objects. Selectors own their context pool;
// every context they hand out is interned there.
type ContextSelector interface {
	// EmptyContext is the context of the entry method.
	EmptyContext() *Context

	// SelectContext returns the callee context for a static call.
	SelectContext(cs *CSCallSite, callee *ir.Method) *Context

	// SelectInstanceContext returns the callee context for an
	// instance call with receiver object recv.
	SelectInstanceContext(cs *CSCallSite, recv *CSObj, callee *ir.Method) *Context

	// SelectHeapContext returns the heap context tagging objects
	// allocated in m.
	SelectHeapContext(m *CSMethod, obj *Obj) *Context
}

func limitK(k int) int {
	if k != 1 && k != 2 {
		panic(fmt.Sprintf("pointer: unsupported context depth %d", k))
	}
	return k
}

// CallSiteSensitive returns the k-call-site selector, k in {1, 2}:
// callee contexts are the last k call sites on the chain; heap
// contexts are one element shorter.
func CallSiteSensitive(k int) ContextSelector {
	return &kCallSelector{pool: newCtxPool(), k: limitK(k)}
}

type kCallSelector struct {
	pool *ctxPool
	k    int
}

func (s *kCallSelector) EmptyContext() *Context { return s.pool.Empty() }

func (s *kCallSelector) SelectContext(cs *CSCallSite, callee *ir.Method) *Context {
	return s.pool.push(cs.Context(), cs.Site(), s.k)
}

func (s *kCallSelector) SelectInstanceContext(cs *CSCallSite, recv *CSObj, callee *ir.Method) *Context {
	return s.pool.push(cs.Context(), cs.Site(), s.k)
}

func (s *kCallSelector) SelectHeapContext(m *CSMethod, obj *Obj) *Context {
	return s.pool.truncate(m.Context(), s.k-1)
}

// ObjectSensitive returns the k-object selector, k in {1, 2}: instance
// callee contexts are the receiver's heap context extended with the
// receiver object, truncated to k.
func ObjectSensitive(k int) ContextSelector {
	return &kObjSelector{pool: newCtxPool(), k: limitK(k)}
}

type kObjSelector struct {
	pool *ctxPool
	k    int
}

func (s *kObjSelector) EmptyContext() *Context { return s.pool.Empty() }

func (s *kObjSelector) SelectContext(cs *CSCallSite, callee *ir.Method) *Context {
	return s.pool.truncate(cs.Context(), s.k)
}

func (s *kObjSelector) SelectInstanceContext(cs *CSCallSite, recv *CSObj, callee *ir.Method) *Context {
	return s.pool.push(recv.Context(), recv.Obj(), s.k)
}

func (s *kObjSelector) SelectHeapContext(m *CSMethod, obj *Obj) *Context {
	return s.pool.truncate(m.Context(), s.k-1)
}

// TypeSensitive returns the k-type selector, k in {1, 2}: like object
// sensitivity but with the allocation's container type as the context
// element.
func TypeSensitive(k int) ContextSelector {
	return &kTypeSelector{pool: newCtxPool(), k: limitK(k)}
}

type kTypeSelector struct {
	pool *ctxPool
	k    int
}

func (s *kTypeSelector) EmptyContext() *Context { return s.pool.Empty() }

func (s *kTypeSelector) SelectContext(cs *CSCallSite, callee *ir.Method) *Context {
	return s.pool.truncate(cs.Context(), s.k)
}

func (s *kTypeSelector) SelectInstanceContext(cs *CSCallSite, recv *CSObj, callee *ir.Method) *Context {
	return s.pool.push(recv.Context(), recv.Obj().ContainerType(), s.k)
}

func (s *kTypeSelector) SelectHeapContext(m *CSMethod, obj *Obj) *Context {
	return s.pool.truncate(m.Context(), s.k-1)
}

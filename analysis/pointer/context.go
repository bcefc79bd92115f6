// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

import (
	"fmt"
	"strings"
)

// A Context is a bounded ordered sequence of context elements: call
// sites, abstract objects, or types, depending on the selector.
// Contexts are hash-consed by a ctxPool, so equal sequences are the
// same pointer and equality is identity.
type Context struct {
	parent *Context
	elem   any
	length int
}

// Len returns the number of elements.
func (c *Context) Len() int { return c.length }

// Elems returns the elements oldest first.
func (c *Context) Elems() []any {
	out := make([]any, c.length)
	for i := c.length - 1; i >= 0; i-- {
		out[i] = c.elem
		c = c.parent
	}
	return out
}

func (c *Context) String() string {
	if c.length == 0 {
		return "[]"
	}
	parts := make([]string, 0, c.length)
	for _, e := range c.Elems() {
		parts = append(parts, fmt.Sprint(e))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ctxPool interns contexts as a tree: a context is its parent plus one
// element, so structural equality collapses to pointer equality.
type ctxPool struct {
	empty    *Context
	children map[ctxKey]*Context
}

type ctxKey struct {
	parent *Context
	elem   any
}

func newCtxPool() *ctxPool {
	return &ctxPool{
		empty:    &Context{},
		children: make(map[ctxKey]*Context),
	}
}

// Empty returns the distinguished empty context.
func (p *ctxPool) Empty() *Context { return p.empty }

func (p *ctxPool) child(parent *Context, elem any) *Context {
	k := ctxKey{parent, elem}
	if c, ok := p.children[k]; ok {
		return c
	}
	c := &Context{parent: parent, elem: elem, length: parent.length + 1}
	p.children[k] = c
	return c
}

// make interns the context with exactly the given elements.
func (p *ctxPool) make(elems ...any) *Context {
	c := p.empty
	for _, e := range elems {
		c = p.child(c, e)
	}
	return c
}

// truncate returns the last k elements of c.
func (p *ctxPool) truncate(c *Context, k int) *Context {
	if k <= 0 {
		return p.empty
	}
	if c.length <= k {
		return c
	}
	elems := c.Elems()
	return p.make(elems[len(elems)-k:]...)
}

// push appends elem keeping at most limit elements: the last limit-1
// of c followed by elem.
func (p *ctxPool) push(c *Context, elem any, limit int) *Context {
	if limit <= 0 {
		return p.empty
	}
	return p.child(p.truncate(c, limit-1), elem)
}

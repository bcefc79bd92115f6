// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

import (
	"fmt"

	"github.com/castorlabs/castor/ir"
)

// A Pointer is a node of the pointer flow graph. Pointer values are
// interned by the owning solver, so identity comparison is meaningful.
//
// The context-insensitive solver uses VarPtr, StaticFieldPtr,
// InstanceFieldPtr and ArrayIndexPtr; the context-sensitive solver uses
// CSVarPtr, CSInstanceFieldPtr and CSArrayIndexPtr, and shares
// StaticFieldPtr (static fields have no context).
type Pointer interface {
	fmt.Stringer
	isPointer()
}

// VarPtr is the pointer of a local variable.
type VarPtr struct {
	v *ir.Var
}

func (*VarPtr) isPointer()     {}
func (p *VarPtr) Var() *ir.Var { return p.v }
func (p *VarPtr) String() string {
	return fmt.Sprintf("%s.%s", p.v.Method(), p.v.Name())
}

// StaticFieldPtr is the single pointer of a static field.
type StaticFieldPtr struct {
	f *ir.Field
}

func (*StaticFieldPtr) isPointer()        {}
func (p *StaticFieldPtr) Field() *ir.Field { return p.f }
func (p *StaticFieldPtr) String() string   { return p.f.String() }

// InstanceFieldPtr is the pointer of one field of one abstract object.
type InstanceFieldPtr struct {
	obj *Obj
	f   *ir.Field
}

func (*InstanceFieldPtr) isPointer()         {}
func (p *InstanceFieldPtr) Obj() *Obj        { return p.obj }
func (p *InstanceFieldPtr) Field() *ir.Field { return p.f }
func (p *InstanceFieldPtr) String() string {
	return fmt.Sprintf("%s.%s", p.obj, p.f.Name())
}

// ArrayIndexPtr models every cell of one abstract array object as a
// single pointer.
type ArrayIndexPtr struct {
	obj *Obj
}

func (*ArrayIndexPtr) isPointer()      {}
func (p *ArrayIndexPtr) Obj() *Obj     { return p.obj }
func (p *ArrayIndexPtr) String() string { return fmt.Sprintf("%s[*]", p.obj) }

// CSVarPtr is a variable pointer qualified by a context.
type CSVarPtr struct {
	ctx *Context
	v   *ir.Var
}

func (*CSVarPtr) isPointer()        {}
func (p *CSVarPtr) Context() *Context { return p.ctx }
func (p *CSVarPtr) Var() *ir.Var      { return p.v }
func (p *CSVarPtr) String() string {
	return fmt.Sprintf("%s:%s.%s", p.ctx, p.v.Method(), p.v.Name())
}

// CSObj is an abstract object qualified by a heap context.
type CSObj struct {
	id  int
	ctx *Context
	obj *Obj
}

func (o *CSObj) Context() *Context { return o.ctx }
func (o *CSObj) Obj() *Obj         { return o.obj }
func (o *CSObj) String() string    { return fmt.Sprintf("%s:%s", o.ctx, o.obj) }

// CSInstanceFieldPtr is the pointer of one field of one
// context-qualified object.
type CSInstanceFieldPtr struct {
	obj *CSObj
	f   *ir.Field
}

func (*CSInstanceFieldPtr) isPointer()         {}
func (p *CSInstanceFieldPtr) Obj() *CSObj      { return p.obj }
func (p *CSInstanceFieldPtr) Field() *ir.Field { return p.f }
func (p *CSInstanceFieldPtr) String() string {
	return fmt.Sprintf("%s.%s", p.obj, p.f.Name())
}

// CSArrayIndexPtr is the array cell of a context-qualified object.
type CSArrayIndexPtr struct {
	obj *CSObj
}

func (*CSArrayIndexPtr) isPointer()       {}
func (p *CSArrayIndexPtr) Obj() *CSObj    { return p.obj }
func (p *CSArrayIndexPtr) String() string { return fmt.Sprintf("%s[*]", p.obj) }

// CSMethod is a method analyzed under a context.
type CSMethod struct {
	ctx *Context
	m   *ir.Method
}

func (m *CSMethod) Context() *Context  { return m.ctx }
func (m *CSMethod) Method() *ir.Method { return m.m }
func (m *CSMethod) String() string     { return fmt.Sprintf("%s:%s", m.ctx, m.m) }

// CSCallSite is a call site within a context-qualified method.
type CSCallSite struct {
	ctx       *Context
	site      *ir.Invoke
	container *CSMethod
}

func (c *CSCallSite) Context() *Context    { return c.ctx }
func (c *CSCallSite) Site() *ir.Invoke     { return c.site }
func (c *CSCallSite) Container() *CSMethod { return c.container }
func (c *CSCallSite) String() string       { return fmt.Sprintf("%s:%s", c.ctx, c.site) }

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "fmt"

// A Method is a declared method of a class. Concrete methods carry a
// body: a statement sequence with stable indices, the formal parameters,
// the this-variable (instance methods), and the return variables.
type Method struct {
	class      *Class
	name       string
	paramTypes []*Type
	ret        *Type
	isStatic   bool
	isAbstract bool

	this       *Var
	params     []*Var
	returnVars []*Var
	vars       []*Var
	stmts      []Stmt
}

func (m *Method) Class() *Class   { return m.class }
func (m *Method) Name() string    { return m.name }
func (m *Method) Ret() *Type      { return m.ret }
func (m *Method) IsStatic() bool  { return m.isStatic }
func (m *Method) IsAbstract() bool { return m.isAbstract }

// Subsignature is the method's name plus parameter/return descriptor,
// excluding the declaring class.
func (m *Method) Subsignature() string {
	return subsignature(m.name, m.paramTypes, m.ret)
}

func (m *Method) String() string {
	return fmt.Sprintf("%s.%s", m.class.name, m.Subsignature())
}

// This returns the receiver variable, or nil for static methods.
func (m *Method) This() *Var { return m.this }

// Params returns the formal parameter variables in declaration order.
func (m *Method) Params() []*Var { return m.params }

// ReturnVars returns the variables returned by the method's return
// statements.
func (m *Method) ReturnVars() []*Var { return m.returnVars }

// Vars returns every local variable of the method, parameters included.
func (m *Method) Vars() []*Var { return m.vars }

// Stmts returns the method body in index order.
func (m *Method) Stmts() []Stmt { return m.stmts }

func subsignature(name string, params []*Type, ret *Type) string {
	return fmt.Sprintf("%s %s(%s)", ret.Name(), name, typeNames(params))
}

// A MethodRef names a method symbolically: declaring class plus
// subsignature. Call sites hold refs, not resolved methods, so bodies
// may reference methods that are resolved only during analysis.
type MethodRef struct {
	class      *Class
	name       string
	paramTypes []*Type
	ret        *Type
}

func (r *MethodRef) Class() *Class { return r.class }
func (r *MethodRef) Name() string  { return r.name }

func (r *MethodRef) Subsignature() string {
	return subsignature(r.name, r.paramTypes, r.ret)
}

func (r *MethodRef) String() string {
	return fmt.Sprintf("%s.%s", r.class.name, r.Subsignature())
}

// A Var is a local variable (or formal parameter) of a method.
//
// The relevant-statement accessors (StoreFields, LoadFields,
// StoreArrays, LoadArrays, Invokes) list the statements in the enclosing
// method that use this variable as a base or receiver; the pointer
// solvers consult them when the variable's points-to set grows.
type Var struct {
	method *Method
	name   string
	typ    *Type

	storeFields []*StoreField
	loadFields  []*LoadField
	storeArrays []*StoreArray
	loadArrays  []*LoadArray
	invokes     []*Invoke
}

func (v *Var) Method() *Method { return v.method }
func (v *Var) Name() string    { return v.name }
func (v *Var) Type() *Type     { return v.typ }
func (v *Var) String() string  { return v.name }

// StoreFields returns the statements `v.f = x` with v as base.
func (v *Var) StoreFields() []*StoreField { return v.storeFields }

// LoadFields returns the statements `x = v.f` with v as base.
func (v *Var) LoadFields() []*LoadField { return v.loadFields }

// StoreArrays returns the statements `v[i] = x` with v as base.
func (v *Var) StoreArrays() []*StoreArray { return v.storeArrays }

// LoadArrays returns the statements `x = v[i]` with v as base.
func (v *Var) LoadArrays() []*LoadArray { return v.loadArrays }

// Invokes returns the call sites with v as receiver.
func (v *Var) Invokes() []*Invoke { return v.invokes }

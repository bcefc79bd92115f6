// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// This file contains the programmatic IR builders. Front ends and the
// analysis tests construct methods through a MethodBuilder, which
// assigns statement indices, resolves branch labels, and computes the
// per-variable relevant-statement lists when the method is finished.

// NewField declares a field on c.
func (c *Class) NewField(name string, typ *Type, static bool) *Field {
	if _, ok := c.fields[name]; ok {
		panic("ir: duplicate field " + name + " on " + c.name)
	}
	f := &Field{class: c, name: name, typ: typ, isStatic: static}
	c.fields[name] = f
	return f
}

// NewAbstractMethod declares an abstract (or interface) method; it has
// no body and is registered immediately.
func (c *Class) NewAbstractMethod(name string, ret *Type, params ...*Type) *Method {
	m := &Method{class: c, name: name, ret: ret, paramTypes: params, isAbstract: true}
	c.registerMethod(m)
	return m
}

// NewMethod starts building a concrete instance method. The receiver
// variable is created implicitly.
func (c *Class) NewMethod(name string, ret *Type) *MethodBuilder {
	m := &Method{class: c, name: name, ret: ret}
	m.this = &Var{method: m, name: "this", typ: c.typ}
	m.vars = append(m.vars, m.this)
	return &MethodBuilder{m: m}
}

// NewStaticMethod starts building a concrete static method.
func (c *Class) NewStaticMethod(name string, ret *Type) *MethodBuilder {
	m := &Method{class: c, name: name, ret: ret, isStatic: true}
	return &MethodBuilder{m: m}
}

func (c *Class) registerMethod(m *Method) {
	sig := m.Subsignature()
	if _, ok := c.methods[sig]; ok {
		panic("ir: duplicate method " + sig + " on " + c.name)
	}
	c.methods[sig] = m
}

// NewMethodRef builds a symbolic method reference for call sites.
func NewMethodRef(c *Class, name string, ret *Type, params ...*Type) *MethodRef {
	return &MethodRef{class: c, name: name, ret: ret, paramTypes: params}
}

// Ref returns a reference naming m.
func (m *Method) Ref() *MethodRef {
	return &MethodRef{class: m.class, name: m.name, ret: m.ret, paramTypes: m.paramTypes}
}

// A Label marks a forward or backward branch target inside a method
// under construction. Bind it with MethodBuilder.Mark.
type Label struct {
	pos   int
	bound bool
}

// A MethodBuilder accumulates the body of one method. Finish resolves
// labels, assigns indices, and registers the method on its class.
type MethodBuilder struct {
	m       *Method
	stmts   []Stmt
	labels  []*Label
	patches []patch
}

// Method returns the method under construction (usable for Ref before
// Finish only if all parameters are already declared).
func (b *MethodBuilder) Method() *Method { return b.m }

// Param declares the next formal parameter. All parameters must be
// declared before the first statement.
func (b *MethodBuilder) Param(name string, typ *Type) *Var {
	if len(b.stmts) > 0 {
		panic("ir: parameter declared after statements")
	}
	v := b.newVar(name, typ)
	b.m.params = append(b.m.params, v)
	b.m.paramTypes = append(b.m.paramTypes, typ)
	return v
}

// Local declares a local variable.
func (b *MethodBuilder) Local(name string, typ *Type) *Var {
	return b.newVar(name, typ)
}

func (b *MethodBuilder) newVar(name string, typ *Type) *Var {
	v := &Var{method: b.m, name: name, typ: typ}
	b.m.vars = append(b.m.vars, v)
	return v
}

// NewLabel creates an unbound label.
func (b *MethodBuilder) NewLabel() *Label {
	l := &Label{}
	b.labels = append(b.labels, l)
	return l
}

// Mark binds l to the next statement appended.
func (b *MethodBuilder) Mark(l *Label) {
	l.pos = len(b.stmts)
	l.bound = true
}

func (b *MethodBuilder) append(s Stmt) {
	b.stmts = append(b.stmts, s)
}

func (b *MethodBuilder) New(lhs *Var, typ *Type) *New {
	s := &New{lhs: lhs, exp: &NewExp{Type: typ}}
	b.append(s)
	return s
}

func (b *MethodBuilder) Copy(lhs, rhs *Var) *Copy {
	s := &Copy{lhs: lhs, rhs: rhs}
	b.append(s)
	return s
}

func (b *MethodBuilder) AssignLiteral(lhs *Var, k int32) *AssignLiteral {
	s := &AssignLiteral{lhs: lhs, lit: IntLiteral(k)}
	b.append(s)
	return s
}

func (b *MethodBuilder) Binary(lhs *Var, op BinaryOp, x, y *Var) *Binary {
	s := &Binary{lhs: lhs, exp: &BinaryExp{Op: op, X: x, Y: y}}
	b.append(s)
	return s
}

func (b *MethodBuilder) Cast(lhs *Var, typ *Type, v *Var) *Cast {
	s := &Cast{lhs: lhs, exp: &CastExp{Type: typ, V: v}}
	b.append(s)
	return s
}

func (b *MethodBuilder) LoadField(lhs, base *Var, f *Field) *LoadField {
	s := &LoadField{lhs: lhs, exp: &FieldAccess{Base: base, Field: f}}
	b.append(s)
	return s
}

func (b *MethodBuilder) LoadStaticField(lhs *Var, f *Field) *LoadField {
	return b.LoadField(lhs, nil, f)
}

func (b *MethodBuilder) StoreField(base *Var, f *Field, rhs *Var) *StoreField {
	s := &StoreField{base: base, field: f, rhs: rhs}
	b.append(s)
	return s
}

func (b *MethodBuilder) StoreStaticField(f *Field, rhs *Var) *StoreField {
	return b.StoreField(nil, f, rhs)
}

func (b *MethodBuilder) LoadArray(lhs, base, index *Var) *LoadArray {
	s := &LoadArray{lhs: lhs, exp: &ArrayAccess{Base: base, Index: index}}
	b.append(s)
	return s
}

func (b *MethodBuilder) StoreArray(base, index, rhs *Var) *StoreArray {
	s := &StoreArray{base: base, index: index, rhs: rhs}
	b.append(s)
	return s
}

func (b *MethodBuilder) invoke(kind CallKind, result, recv *Var, ref *MethodRef, args []*Var) *Invoke {
	s := &Invoke{result: result, exp: &InvokeExp{kind: kind, ref: ref, recv: recv, args: args}}
	b.append(s)
	return s
}

// InvokeStatic calls a static method; result may be nil.
func (b *MethodBuilder) InvokeStatic(result *Var, ref *MethodRef, args ...*Var) *Invoke {
	return b.invoke(CallStatic, result, nil, ref, args)
}

func (b *MethodBuilder) InvokeVirtual(result, recv *Var, ref *MethodRef, args ...*Var) *Invoke {
	return b.invoke(CallVirtual, result, recv, ref, args)
}

func (b *MethodBuilder) InvokeInterface(result, recv *Var, ref *MethodRef, args ...*Var) *Invoke {
	return b.invoke(CallInterface, result, recv, ref, args)
}

func (b *MethodBuilder) InvokeSpecial(result, recv *Var, ref *MethodRef, args ...*Var) *Invoke {
	return b.invoke(CallSpecial, result, recv, ref, args)
}

func (b *MethodBuilder) If(op BinaryOp, x, y *Var, target *Label) *If {
	if op.Class() != ConditionOp {
		panic("ir: if condition must use a condition operator")
	}
	s := &If{cond: &BinaryExp{Op: op, X: x, Y: y}}
	b.append(s)
	b.patch(target, func(t Stmt) { s.target = t })
	return s
}

func (b *MethodBuilder) Goto(target *Label) *Goto {
	s := &Goto{}
	b.append(s)
	b.patch(target, func(t Stmt) { s.target = t })
	return s
}

// Switch appends a switch on v. values and targets run in parallel;
// def may be nil for a switch without a default target.
func (b *MethodBuilder) Switch(v *Var, values []int32, targets []*Label, def *Label) *Switch {
	if len(values) != len(targets) {
		panic("ir: switch case values and targets differ in length")
	}
	s := &Switch{v: v, caseValues: values, caseTargets: make([]Stmt, len(targets))}
	b.append(s)
	for i, t := range targets {
		i := i
		b.patch(t, func(tgt Stmt) { s.caseTargets[i] = tgt })
	}
	if def != nil {
		b.patch(def, func(tgt Stmt) { s.defaultTgt = tgt })
	}
	return s
}

func (b *MethodBuilder) Return(v *Var) *Return {
	s := &Return{value: v}
	b.append(s)
	return s
}

func (b *MethodBuilder) ReturnVoid() *Return { return b.Return(nil) }

func (b *MethodBuilder) Nop() *Nop {
	s := &Nop{}
	b.append(s)
	return s
}

type patch struct {
	label *Label
	apply func(Stmt)
}

// patches are applied in Finish, once labels have statements to point at.
func (b *MethodBuilder) patch(l *Label, apply func(Stmt)) {
	b.patches = append(b.patches, patch{l, apply})
}

// Finish resolves branch targets, assigns statement indices, computes
// the per-variable relevant-statement lists, and registers the method
// on its declaring class.
func (b *MethodBuilder) Finish() *Method {
	m := b.m
	for i, s := range b.stmts {
		s.setIndex(i)
		s.setContainer(m)
	}
	for _, p := range b.patches {
		if !p.label.bound {
			panic("ir: branch to unbound label in " + m.name)
		}
		if p.label.pos >= len(b.stmts) {
			panic("ir: label past end of method " + m.name)
		}
		p.apply(b.stmts[p.label.pos])
	}
	m.stmts = b.stmts

	seenRet := make(map[*Var]bool)
	for _, s := range m.stmts {
		switch s := s.(type) {
		case *StoreField:
			if s.base != nil {
				s.base.storeFields = append(s.base.storeFields, s)
			}
		case *LoadField:
			if s.Base() != nil {
				s.Base().loadFields = append(s.Base().loadFields, s)
			}
		case *StoreArray:
			s.base.storeArrays = append(s.base.storeArrays, s)
		case *LoadArray:
			s.Base().loadArrays = append(s.Base().loadArrays, s)
		case *Invoke:
			if r := s.exp.recv; r != nil {
				r.invokes = append(r.invokes, s)
			}
		case *Return:
			if s.value != nil && !seenRet[s.value] {
				seenRet[s.value] = true
				m.returnVars = append(m.returnVars, s.value)
			}
		}
	}

	m.class.registerMethod(m)
	return m
}

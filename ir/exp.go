// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"strings"
)

// An Exp is the right-hand side of a definition statement. The set of
// expression kinds is closed; analyses dispatch on the concrete type.
type Exp interface {
	isExp()
}

func (*Var) isExp() {}

// An IntLiteral is a 32-bit integer constant.
type IntLiteral int32

func (IntLiteral) isExp() {}

func (l IntLiteral) String() string { return fmt.Sprintf("%d", int32(l)) }

// BinaryOp enumerates the binary operators. The operator classes
// (arithmetic, shift, bitwise, condition) matter to constant
// propagation; Class reports them.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpShl
	OpShr
	OpUshr
	OpAnd
	OpOr
	OpXor
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

// OpClass groups binary operators by evaluation rule.
type OpClass int

const (
	ArithmeticOp OpClass = iota
	ShiftOp
	BitwiseOp
	ConditionOp
)

var opNames = [...]string{"+", "-", "*", "/", "%", "<<", ">>", ">>>",
	"&", "|", "^", "==", "!=", "<", ">", "<=", ">="}

func (op BinaryOp) String() string { return opNames[op] }

func (op BinaryOp) Class() OpClass {
	switch {
	case op <= OpRem:
		return ArithmeticOp
	case op <= OpUshr:
		return ShiftOp
	case op <= OpXor:
		return BitwiseOp
	}
	return ConditionOp
}

// A BinaryExp is `x op y` over two variables.
type BinaryExp struct {
	Op   BinaryOp
	X, Y *Var
}

func (*BinaryExp) isExp() {}

func (e *BinaryExp) String() string {
	return fmt.Sprintf("%s %s %s", e.X, e.Op, e.Y)
}

// A NewExp allocates an object or array; its site identity is the New
// statement carrying it.
type NewExp struct {
	Type *Type
}

func (*NewExp) isExp() {}

func (e *NewExp) String() string { return "new " + e.Type.Name() }

// A CastExp is `(T) v`. Casts may throw and therefore have side effects.
type CastExp struct {
	Type *Type
	V    *Var
}

func (*CastExp) isExp() {}

func (e *CastExp) String() string { return fmt.Sprintf("(%s) %s", e.Type, e.V) }

// A FieldAccess reads a static field (Base == nil) or an instance field.
type FieldAccess struct {
	Base  *Var
	Field *Field
}

func (*FieldAccess) isExp() {}

func (e *FieldAccess) String() string {
	if e.Base == nil {
		return e.Field.String()
	}
	return fmt.Sprintf("%s.%s", e.Base, e.Field.Name())
}

// An ArrayAccess reads an array cell. Arrays are modeled as a single
// cell, but the index variable is kept for constant propagation.
type ArrayAccess struct {
	Base  *Var
	Index *Var
}

func (*ArrayAccess) isExp() {}

func (e *ArrayAccess) String() string { return fmt.Sprintf("%s[%s]", e.Base, e.Index) }

// CallKind classifies a call site; it becomes the kind of the call-graph
// edges the site induces.
type CallKind int

const (
	CallStatic CallKind = iota
	CallSpecial
	CallVirtual
	CallInterface
	CallDynamic
	CallOther
)

var callKindNames = [...]string{"static", "special", "virtual", "interface", "dynamic", "other"}

func (k CallKind) String() string { return callKindNames[k] }

// An InvokeExp is a call: kind, symbolic callee reference, receiver
// (nil for static calls), and arguments.
type InvokeExp struct {
	kind CallKind
	ref  *MethodRef
	recv *Var
	args []*Var
}

func (*InvokeExp) isExp() {}

func (e *InvokeExp) Ref() *MethodRef { return e.ref }
func (e *InvokeExp) Recv() *Var      { return e.recv }
func (e *InvokeExp) Args() []*Var    { return e.args }

// Kind classifies the call site: it returns the kind the site was built
// with (static, special, virtual, interface, or dynamic); any other
// value is CallOther.
func (e *InvokeExp) Kind() CallKind {
	switch e.kind {
	case CallSpecial, CallVirtual, CallInterface, CallDynamic, CallStatic:
		return e.kind
	}
	return CallOther
}

func (e *InvokeExp) String() string {
	args := make([]string, len(e.args))
	for i, a := range e.args {
		args[i] = a.name
	}
	recv := e.ref.class.name
	if e.recv != nil {
		recv = e.recv.name
	}
	return fmt.Sprintf("%s.%s(%s)", recv, e.ref.name, strings.Join(args, ","))
}

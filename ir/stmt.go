// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"strings"
)

// A Stmt is one three-address statement of a method body. The statement
// set is closed: analyses dispatch with a type switch, not through open
// polymorphism.
//
// Index is the statement's position in the enclosing method's body and
// is stable for the lifetime of the IR.
type Stmt interface {
	Index() int

	// Container returns the method this statement belongs to; nil for
	// the CFG's synthetic entry and exit nodes.
	Container() *Method

	// Def returns the variable this statement defines, or nil.
	Def() *Var

	// Uses returns the variables whose values this statement reads.
	Uses() []*Var

	fmt.Stringer

	setIndex(int)
	setContainer(*Method)
}

// A DefStmt is a statement that assigns to a variable: `lhs = rhs`.
// Store statements are not DefStmts; their left side is a heap location.
type DefStmt interface {
	Stmt
	LValue() *Var
	RValue() Exp
}

type stmtBase struct {
	index     int
	container *Method
}

func (s *stmtBase) Index() int             { return s.index }
func (s *stmtBase) Container() *Method     { return s.container }
func (s *stmtBase) setIndex(i int)         { s.index = i }
func (s *stmtBase) setContainer(m *Method) { s.container = m }

// New is `lhs = new T`; the statement itself is the allocation site.
type New struct {
	stmtBase
	lhs *Var
	exp *NewExp
}

func (s *New) LValue() *Var { return s.lhs }
func (s *New) RValue() Exp  { return s.exp }
func (s *New) Def() *Var    { return s.lhs }
func (s *New) Uses() []*Var { return nil }

// Type returns the type allocated at this site.
func (s *New) Type() *Type { return s.exp.Type }

func (s *New) String() string { return fmt.Sprintf("%s = %s", s.lhs, s.exp) }

// Copy is `lhs = rhs` between variables.
type Copy struct {
	stmtBase
	lhs, rhs *Var
}

func (s *Copy) LValue() *Var { return s.lhs }
func (s *Copy) RValue() Exp  { return s.rhs }
func (s *Copy) Def() *Var    { return s.lhs }
func (s *Copy) Uses() []*Var { return []*Var{s.rhs} }
func (s *Copy) RHS() *Var    { return s.rhs }

func (s *Copy) String() string { return fmt.Sprintf("%s = %s", s.lhs, s.rhs) }

// AssignLiteral is `lhs = k` for a 32-bit integer literal.
type AssignLiteral struct {
	stmtBase
	lhs *Var
	lit IntLiteral
}

func (s *AssignLiteral) LValue() *Var { return s.lhs }
func (s *AssignLiteral) RValue() Exp  { return s.lit }
func (s *AssignLiteral) Def() *Var    { return s.lhs }
func (s *AssignLiteral) Uses() []*Var { return nil }

// Value returns the literal.
func (s *AssignLiteral) Value() int32 { return int32(s.lit) }

func (s *AssignLiteral) String() string { return fmt.Sprintf("%s = %s", s.lhs, s.lit) }

// Binary is `lhs = x op y`.
type Binary struct {
	stmtBase
	lhs *Var
	exp *BinaryExp
}

func (s *Binary) LValue() *Var       { return s.lhs }
func (s *Binary) RValue() Exp        { return s.exp }
func (s *Binary) Def() *Var          { return s.lhs }
func (s *Binary) Uses() []*Var       { return []*Var{s.exp.X, s.exp.Y} }
func (s *Binary) Exp() *BinaryExp    { return s.exp }

func (s *Binary) String() string { return fmt.Sprintf("%s = %s", s.lhs, s.exp) }

// Cast is `lhs = (T) rhs`.
type Cast struct {
	stmtBase
	lhs *Var
	exp *CastExp
}

func (s *Cast) LValue() *Var { return s.lhs }
func (s *Cast) RValue() Exp  { return s.exp }
func (s *Cast) Def() *Var    { return s.lhs }
func (s *Cast) Uses() []*Var { return []*Var{s.exp.V} }

func (s *Cast) String() string { return fmt.Sprintf("%s = %s", s.lhs, s.exp) }

// LoadField is `lhs = base.f`, or `lhs = C.f` for static fields
// (Base() == nil).
type LoadField struct {
	stmtBase
	lhs *Var
	exp *FieldAccess
}

func (s *LoadField) LValue() *Var  { return s.lhs }
func (s *LoadField) RValue() Exp   { return s.exp }
func (s *LoadField) Def() *Var     { return s.lhs }
func (s *LoadField) Base() *Var    { return s.exp.Base }
func (s *LoadField) Field() *Field { return s.exp.Field }

func (s *LoadField) Uses() []*Var {
	if s.exp.Base != nil {
		return []*Var{s.exp.Base}
	}
	return nil
}

func (s *LoadField) String() string { return fmt.Sprintf("%s = %s", s.lhs, s.exp) }

// StoreField is `base.f = rhs`, or `C.f = rhs` for static fields.
type StoreField struct {
	stmtBase
	base  *Var // nil for static stores
	field *Field
	rhs   *Var
}

func (s *StoreField) Base() *Var    { return s.base }
func (s *StoreField) Field() *Field { return s.field }
func (s *StoreField) RHS() *Var     { return s.rhs }
func (s *StoreField) Def() *Var     { return nil }

func (s *StoreField) Uses() []*Var {
	if s.base != nil {
		return []*Var{s.base, s.rhs}
	}
	return []*Var{s.rhs}
}

func (s *StoreField) String() string {
	if s.base == nil {
		return fmt.Sprintf("%s = %s", s.field, s.rhs)
	}
	return fmt.Sprintf("%s.%s = %s", s.base, s.field.Name(), s.rhs)
}

// LoadArray is `lhs = base[i]`.
type LoadArray struct {
	stmtBase
	lhs *Var
	exp *ArrayAccess
}

func (s *LoadArray) LValue() *Var { return s.lhs }
func (s *LoadArray) RValue() Exp  { return s.exp }
func (s *LoadArray) Def() *Var    { return s.lhs }
func (s *LoadArray) Base() *Var   { return s.exp.Base }
func (s *LoadArray) Uses() []*Var { return []*Var{s.exp.Base, s.exp.Index} }

func (s *LoadArray) String() string { return fmt.Sprintf("%s = %s", s.lhs, s.exp) }

// StoreArray is `base[i] = rhs`.
type StoreArray struct {
	stmtBase
	base  *Var
	index *Var
	rhs   *Var
}

func (s *StoreArray) Base() *Var   { return s.base }
func (s *StoreArray) RHS() *Var    { return s.rhs }
func (s *StoreArray) Def() *Var    { return nil }
func (s *StoreArray) Uses() []*Var { return []*Var{s.base, s.index, s.rhs} }

func (s *StoreArray) String() string {
	return fmt.Sprintf("%s[%s] = %s", s.base, s.index, s.rhs)
}

// Invoke is a call statement, optionally assigning the result.
type Invoke struct {
	stmtBase
	result *Var // nil when the result is discarded
	exp    *InvokeExp
}

func (s *Invoke) LValue() *Var    { return s.result }
func (s *Invoke) RValue() Exp     { return s.exp }
func (s *Invoke) Def() *Var       { return s.result }
func (s *Invoke) Exp() *InvokeExp { return s.exp }

func (s *Invoke) Uses() []*Var {
	var uses []*Var
	if s.exp.recv != nil {
		uses = append(uses, s.exp.recv)
	}
	return append(uses, s.exp.args...)
}

func (s *Invoke) String() string {
	if s.result == nil {
		return s.exp.String()
	}
	return fmt.Sprintf("%s = %s", s.result, s.exp)
}

// If is a conditional branch on a condition expression. The false
// branch falls through.
type If struct {
	stmtBase
	cond   *BinaryExp
	target Stmt
}

func (s *If) Cond() *BinaryExp { return s.cond }

// Target returns the statement branched to when the condition holds.
func (s *If) Target() Stmt  { return s.target }
func (s *If) Def() *Var     { return nil }
func (s *If) Uses() []*Var  { return []*Var{s.cond.X, s.cond.Y} }

func (s *If) String() string {
	return fmt.Sprintf("if (%s) goto %d", s.cond, s.target.Index())
}

// Goto is an unconditional branch.
type Goto struct {
	stmtBase
	target Stmt
}

func (s *Goto) Target() Stmt  { return s.target }
func (s *Goto) Def() *Var     { return nil }
func (s *Goto) Uses() []*Var  { return nil }
func (s *Goto) String() string { return fmt.Sprintf("goto %d", s.target.Index()) }

// Switch branches on an integer variable over a list of case values.
// A switch with no default target transfers nowhere when no case
// matches.
type Switch struct {
	stmtBase
	v           *Var
	caseValues  []int32
	caseTargets []Stmt
	defaultTgt  Stmt // may be nil
}

func (s *Switch) Var() *Var           { return s.v }
func (s *Switch) CaseValues() []int32 { return s.caseValues }
func (s *Switch) CaseTargets() []Stmt { return s.caseTargets }
func (s *Switch) DefaultTarget() Stmt { return s.defaultTgt }
func (s *Switch) Def() *Var           { return nil }
func (s *Switch) Uses() []*Var        { return []*Var{s.v} }

func (s *Switch) String() string {
	cases := make([]string, len(s.caseValues))
	for i, v := range s.caseValues {
		cases[i] = fmt.Sprintf("case %d: goto %d", v, s.caseTargets[i].Index())
	}
	return fmt.Sprintf("switch (%s) {%s}", s.v, strings.Join(cases, "; "))
}

// Return exits the method, optionally yielding a value.
type Return struct {
	stmtBase
	value *Var // may be nil
}

func (s *Return) Value() *Var   { return s.value }
func (s *Return) Def() *Var     { return nil }

func (s *Return) Uses() []*Var {
	if s.value == nil {
		return nil
	}
	return []*Var{s.value}
}

func (s *Return) String() string {
	if s.value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", s.value)
}

// Nop does nothing. The CFG builder also uses Nops as its synthetic
// entry and exit nodes.
type Nop struct {
	stmtBase
}

func (s *Nop) Def() *Var     { return nil }
func (s *Nop) Uses() []*Var  { return nil }
func (s *Nop) String() string { return "nop" }

// NewNop returns a detached Nop with the given index; the CFG builder
// uses these for its entry and exit sentinels.
func NewNop(index int) *Nop {
	n := &Nop{}
	n.index = index
	return n
}

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"math"

	"github.com/castorlabs/castor/analysis/cfg"
	"github.com/castorlabs/castor/ir"
)

// ConstProp is forward constant propagation over CPFacts. Only
// int-like variables (byte, short, int, char, boolean) are tracked;
// everything else never enters a fact.
type ConstProp struct{}

func NewConstProp() *ConstProp { return &ConstProp{} }

func (*ConstProp) IsForward() bool { return true }

// NewBoundaryFact maps every int-like formal parameter to NAC: the
// caller may pass anything.
func (*ConstProp) NewBoundaryFact(g *cfg.CFG) *CPFact {
	f := NewCPFact()
	for _, p := range g.Method().Params() {
		if p.Type().IsIntLike() {
			f.Update(p, NAC)
		}
	}
	return f
}

func (*ConstProp) NewInitialFact() *CPFact { return NewCPFact() }

func (*ConstProp) MeetInto(fact, target *CPFact) bool {
	changed := false
	for v, val := range fact.m {
		if target.Update(v, MeetValue(val, target.Get(v))) {
			changed = true
		}
	}
	return changed
}

func (*ConstProp) TransferNode(n ir.Stmt, in, out *CPFact) bool {
	work := in.Copy()
	if d, ok := n.(ir.DefStmt); ok {
		if lv := d.LValue(); lv != nil && lv.Type().IsIntLike() {
			work.Update(lv, Evaluate(d.RValue(), in))
		}
	}
	return out.CopyFrom(work)
}

// Evaluate computes the abstract value of exp in the environment in.
// Arithmetic wraps in 32-bit two's complement; DIV and REM by a
// constant zero evaluate to Undef rather than raising.
func Evaluate(exp ir.Exp, in *CPFact) Value {
	switch exp := exp.(type) {
	case *ir.Var:
		return in.Get(exp)
	case ir.IntLiteral:
		return MakeConstant(int32(exp))
	case *ir.BinaryExp:
		x, y := in.Get(exp.X), in.Get(exp.Y)
		if divides(exp.Op) && y.IsConstant() && y.Constant() == 0 {
			return Undef
		}
		if x.IsUndef() || y.IsUndef() {
			return Undef
		}
		if x.IsConstant() && y.IsConstant() {
			return MakeConstant(fold(exp.Op, x.Constant(), y.Constant()))
		}
		return NAC
	}
	return NAC
}

func divides(op ir.BinaryOp) bool {
	return op == ir.OpDiv || op == ir.OpRem
}

func fold(op ir.BinaryOp, x, y int32) int32 {
	switch op {
	case ir.OpAdd:
		return x + y
	case ir.OpSub:
		return x - y
	case ir.OpMul:
		return x * y
	case ir.OpDiv:
		if x == math.MinInt32 && y == -1 { // wraps in two's complement
			return x
		}
		return x / y
	case ir.OpRem:
		if x == math.MinInt32 && y == -1 {
			return 0
		}
		return x % y
	case ir.OpShl:
		return x << (uint32(y) & 31)
	case ir.OpShr:
		return x >> (uint32(y) & 31)
	case ir.OpUshr:
		return int32(uint32(x) >> (uint32(y) & 31))
	case ir.OpAnd:
		return x & y
	case ir.OpOr:
		return x | y
	case ir.OpXor:
		return x ^ y
	}
	return b2i(compare(op, x, y))
}

func compare(op ir.BinaryOp, x, y int32) bool {
	switch op {
	case ir.OpEq:
		return x == y
	case ir.OpNe:
		return x != y
	case ir.OpLt:
		return x < y
	case ir.OpGt:
		return x > y
	case ir.OpLe:
		return x <= y
	case ir.OpGe:
		return x >= y
	}
	panic("dataflow: not a condition operator")
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

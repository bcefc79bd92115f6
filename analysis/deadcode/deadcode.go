// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package deadcode detects dead code in a method: statements that
// cannot execute once branches are simplified under constant
// propagation, plus assignments whose targets are never live
// afterwards.
package deadcode

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/castorlabs/castor/analysis/cfg"
	"github.com/castorlabs/castor/analysis/dataflow"
	"github.com/castorlabs/castor/ir"
)

// Analyze returns the dead statements of m in ascending index order.
//
// A statement is dead when it is unreachable from the entry under
// constant-based branch pruning, or when it is an assignment to a
// variable that is not live afterwards and whose right side has no side
// effect.
func Analyze(m *ir.Method) []ir.Stmt {
	g := cfg.New(m)
	consts := dataflow.Solve[*dataflow.CPFact](g, dataflow.NewConstProp())
	live := dataflow.Solve[*dataflow.SetFact[*ir.Var]](g, dataflow.NewLiveVars())

	// The statement universes are bit-indexed by CFG position: the
	// entry sentinel sits at bit 0, body statement i at bit i+1.
	bit := func(s ir.Stmt) uint { return uint(s.Index() + 1) }
	n := uint(len(m.Stmts()) + 2)
	alive := bitset.New(n)
	seen := bitset.New(n)

	var queue []ir.Stmt
	seen.Set(bit(g.Entry()))
	queue = append(queue, g.Entry())

	enqueue := func(s ir.Stmt) {
		if !seen.Test(bit(s)) { // mark on enqueue
			seen.Set(bit(s))
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		switch s := node.(type) {
		case *ir.If:
			alive.Set(bit(s))
			cond := dataflow.Evaluate(s.Cond(), consts.In(s))
			for _, e := range g.OutEdges(s) {
				switch {
				case !cond.IsConstant(),
					cond.Constant() == 1 && e.Kind == cfg.IfTrue,
					cond.Constant() == 0 && e.Kind == cfg.IfFalse:
					enqueue(e.Target)
				}
			}
		case *ir.Switch:
			alive.Set(bit(s))
			v := consts.In(s).Get(s.Var())
			if !v.IsConstant() {
				for _, t := range g.Succs(s) {
					enqueue(t)
				}
				break
			}
			matched := false
			for _, e := range g.OutEdges(s) {
				if e.Kind == cfg.SwitchCase && e.CaseValue == v.Constant() {
					matched = true
					enqueue(e.Target)
				}
			}
			if !matched {
				// No matching case: only the default target, if any,
				// is taken.
				for _, e := range g.OutEdges(s) {
					if e.Kind == cfg.SwitchDefault {
						enqueue(e.Target)
					}
				}
			}
		default:
			if !uselessAssign(node, live.Out(node)) {
				alive.Set(bit(node))
			}
			for _, t := range g.Succs(node) {
				enqueue(t)
			}
		}
	}

	var dead []ir.Stmt
	for _, s := range m.Stmts() { // body order is index order
		if !alive.Test(bit(s)) {
			dead = append(dead, s)
		}
	}
	return dead
}

// uselessAssign reports whether n assigns a variable that is not live
// afterwards through a right side that cannot be observed. Calls are
// never useless assignments; their effects happen regardless of the
// result.
func uselessAssign(n ir.Stmt, liveOut *dataflow.SetFact[*ir.Var]) bool {
	d, ok := n.(ir.DefStmt)
	if !ok {
		return false
	}
	if _, isCall := n.(*ir.Invoke); isCall {
		return false
	}
	lhs := d.LValue()
	return lhs != nil && !liveOut.Has(lhs) && hasNoSideEffect(d.RValue())
}

// hasNoSideEffect reports whether evaluating rhs cannot be observed:
// allocations touch the heap, casts may throw, field accesses may
// trigger class initialization or a null dereference, array accesses
// may trap on bounds or null, and DIV/REM may divide by zero.
func hasNoSideEffect(rhs ir.Exp) bool {
	switch rhs := rhs.(type) {
	case *ir.NewExp, *ir.CastExp, *ir.FieldAccess, *ir.ArrayAccess:
		return false
	case *ir.BinaryExp:
		return rhs.Op != ir.OpDiv && rhs.Op != ir.OpRem
	}
	return true
}

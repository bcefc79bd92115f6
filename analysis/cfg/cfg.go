// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfg constructs statement-level control flow graphs for IR
// methods. The graph is an adjacency map over the method's statements
// with two synthetic sentinel nodes, entry and exit, that are not part
// of the method body. Edges carry a kind; switch-case edges also carry
// their case value.
package cfg

import (
	"github.com/castorlabs/castor/ir"
)

// EdgeKind classifies a control flow edge.
type EdgeKind int

const (
	FallThrough EdgeKind = iota
	IfTrue
	IfFalse
	SwitchCase
	SwitchDefault
)

var edgeKindNames = [...]string{"fall-through", "if-true", "if-false", "switch-case", "switch-default"}

func (k EdgeKind) String() string { return edgeKindNames[k] }

// An Edge is a directed control flow edge. CaseValue is meaningful only
// for SwitchCase edges.
type Edge struct {
	Kind      EdgeKind
	Source    ir.Stmt
	Target    ir.Stmt
	CaseValue int32
}

// A CFG is the control flow graph of one method.
type CFG struct {
	method *ir.Method
	entry  ir.Stmt
	exit   ir.Stmt

	nodes []ir.Stmt
	succs map[ir.Stmt][]ir.Stmt
	preds map[ir.Stmt][]ir.Stmt
	out   map[ir.Stmt][]Edge
}

// New builds the CFG for a method body.
func New(m *ir.Method) *CFG {
	g := &CFG{
		method: m,
		entry:  ir.NewNop(-1),
		exit:   ir.NewNop(len(m.Stmts())),
		succs:  make(map[ir.Stmt][]ir.Stmt),
		preds:  make(map[ir.Stmt][]ir.Stmt),
		out:    make(map[ir.Stmt][]Edge),
	}
	g.nodes = append(g.nodes, g.entry)
	g.nodes = append(g.nodes, m.Stmts()...)
	g.nodes = append(g.nodes, g.exit)
	g.build()
	return g
}

// Method returns the method the graph was built for.
func (g *CFG) Method() *ir.Method { return g.method }

// Entry returns the synthetic entry node.
func (g *CFG) Entry() ir.Stmt { return g.entry }

// Exit returns the synthetic exit node.
func (g *CFG) Exit() ir.Stmt { return g.exit }

// Nodes returns every node: entry, the body statements in index order,
// exit.
func (g *CFG) Nodes() []ir.Stmt { return g.nodes }

// Succs returns the successors of n.
func (g *CFG) Succs(n ir.Stmt) []ir.Stmt { return g.succs[n] }

// Preds returns the predecessors of n.
func (g *CFG) Preds(n ir.Stmt) []ir.Stmt { return g.preds[n] }

// OutEdges returns the outgoing edges of n with their kinds.
func (g *CFG) OutEdges(n ir.Stmt) []Edge { return g.out[n] }

func (g *CFG) addEdge(kind EdgeKind, src, tgt ir.Stmt, caseValue int32) {
	g.succs[src] = append(g.succs[src], tgt)
	g.preds[tgt] = append(g.preds[tgt], src)
	g.out[src] = append(g.out[src], Edge{Kind: kind, Source: src, Target: tgt, CaseValue: caseValue})
}

// next returns the fall-through target after index i: the following
// statement, or exit at the end of the body.
func (g *CFG) next(i int) ir.Stmt {
	stmts := g.method.Stmts()
	if i+1 < len(stmts) {
		return stmts[i+1]
	}
	return g.exit
}

func (g *CFG) build() {
	stmts := g.method.Stmts()
	if len(stmts) == 0 {
		g.addEdge(FallThrough, g.entry, g.exit, 0)
		return
	}
	g.addEdge(FallThrough, g.entry, stmts[0], 0)

	for i, s := range stmts {
		switch s := s.(type) {
		case *ir.If:
			g.addEdge(IfTrue, s, s.Target(), 0)
			g.addEdge(IfFalse, s, g.next(i), 0)
		case *ir.Goto:
			g.addEdge(FallThrough, s, s.Target(), 0)
		case *ir.Switch:
			for j, tgt := range s.CaseTargets() {
				g.addEdge(SwitchCase, s, tgt, s.CaseValues()[j])
			}
			if d := s.DefaultTarget(); d != nil {
				g.addEdge(SwitchDefault, s, d, 0)
			}
		case *ir.Return:
			g.addEdge(FallThrough, s, g.exit, 0)
		default:
			g.addEdge(FallThrough, s, g.next(i), 0)
		}
	}
}

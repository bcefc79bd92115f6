// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"github.com/castorlabs/castor/analysis/cfg"
	"github.com/castorlabs/castor/ir"
)

// An Analysis describes one monotone dataflow problem to the solver.
// F is the fact type attached to each program point.
//
// For a forward analysis, TransferNode computes out from in and reports
// whether out changed; for a backward analysis it computes in from out
// and reports whether in changed.
type Analysis[F any] interface {
	IsForward() bool

	// NewBoundaryFact returns the fact for the boundary node: the
	// entry for forward analyses, the exit for backward ones.
	NewBoundaryFact(g *cfg.CFG) F

	// NewInitialFact returns the fact every other node starts with.
	NewInitialFact() F

	// MeetInto joins fact into target destructively and reports
	// whether target changed.
	MeetInto(fact, target F) bool

	TransferNode(n ir.Stmt, in, out F) bool
}

// A Result holds the per-node in and out facts of a finished analysis.
type Result[F any] struct {
	in  map[ir.Stmt]F
	out map[ir.Stmt]F
}

// In returns the fact flowing into n.
func (r *Result[F]) In(n ir.Stmt) F { return r.in[n] }

// Out returns the fact flowing out of n.
func (r *Result[F]) Out(n ir.Stmt) F { return r.out[n] }

// Solve runs the analysis to fixed point over g with a FIFO worklist
// initialized with every node.
//
// based on algo from ch 9.3, p.626 Dragonbook, v2.2,
// "Iterative algorithm for a general framework":
// initialize boundary and interior facts, then repeatedly pull a node,
// meet its inputs, apply the transfer function, and requeue the
// affected neighbors until nothing changes. Termination follows from
// monotone transfer functions over finite-height fact lattices.
func Solve[F any](g *cfg.CFG, a Analysis[F]) *Result[F] {
	r := &Result[F]{
		in:  make(map[ir.Stmt]F),
		out: make(map[ir.Stmt]F),
	}
	boundary := g.Entry()
	if !a.IsForward() {
		boundary = g.Exit()
	}
	for _, n := range g.Nodes() {
		if n == boundary {
			continue
		}
		r.in[n] = a.NewInitialFact()
		r.out[n] = a.NewInitialFact()
	}
	if a.IsForward() {
		r.in[boundary] = a.NewBoundaryFact(g)
		r.out[boundary] = a.NewInitialFact()
		solveForward(g, a, r)
	} else {
		r.in[boundary] = a.NewInitialFact()
		r.out[boundary] = a.NewBoundaryFact(g)
		solveBackward(g, a, r)
	}
	return r
}

func solveForward[F any](g *cfg.CFG, a Analysis[F], r *Result[F]) {
	wl := newNodeList(g.Nodes())
	for !wl.empty() {
		n := wl.poll()
		for _, p := range g.Preds(n) {
			a.MeetInto(r.out[p], r.in[n])
		}
		if a.TransferNode(n, r.in[n], r.out[n]) {
			for _, s := range g.Succs(n) {
				wl.add(s)
			}
		}
	}
}

func solveBackward[F any](g *cfg.CFG, a Analysis[F], r *Result[F]) {
	wl := newNodeList(g.Nodes())
	for !wl.empty() {
		n := wl.poll()
		for _, s := range g.Succs(n) {
			a.MeetInto(r.in[s], r.out[n])
		}
		if a.TransferNode(n, r.in[n], r.out[n]) {
			for _, p := range g.Preds(n) {
				wl.add(p)
			}
		}
	}
}

// nodeList is a FIFO worklist of CFG nodes. Duplicate entries are
// suppressed with a membership set; order is insertion order, so runs
// are deterministic.
type nodeList struct {
	queue []ir.Stmt
	on    map[ir.Stmt]bool
}

func newNodeList(nodes []ir.Stmt) *nodeList {
	wl := &nodeList{on: make(map[ir.Stmt]bool, len(nodes))}
	for _, n := range nodes {
		wl.add(n)
	}
	return wl
}

func (wl *nodeList) empty() bool { return len(wl.queue) == 0 }

func (wl *nodeList) add(n ir.Stmt) {
	if wl.on[n] {
		return
	}
	wl.on[n] = true
	wl.queue = append(wl.queue, n)
}

func (wl *nodeList) poll() ir.Stmt {
	n := wl.queue[0]
	wl.queue = wl.queue[1:]
	wl.on[n] = false
	return n
}

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

// flowGraph is the pointer flow graph: directed, unlabeled edges
// between interned pointers, stored as adjacency lists with a
// membership set for idempotent insertion.
type flowGraph struct {
	succs map[Pointer][]Pointer
	edges map[flowEdge]bool
}

type flowEdge struct {
	src, tgt Pointer
}

func newFlowGraph() *flowGraph {
	return &flowGraph{
		succs: make(map[Pointer][]Pointer),
		edges: make(map[flowEdge]bool),
	}
}

// addEdge inserts src → tgt and reports whether it was new.
func (g *flowGraph) addEdge(src, tgt Pointer) bool {
	e := flowEdge{src, tgt}
	if g.edges[e] {
		return false
	}
	g.edges[e] = true
	g.succs[src] = append(g.succs[src], tgt)
	return true
}

// succsOf returns the successors of p in insertion order.
func (g *flowGraph) succsOf(p Pointer) []Pointer { return g.succs[p] }

// workList carries pending propagations. Entries may duplicate: the
// propagator computes the true delta against each pointer's current
// set, so duplicates are cheap no-ops. FIFO order keeps runs
// deterministic.
type workList struct {
	entries []workEntry
}

type workEntry struct {
	ptr Pointer
	pts *PointsToSet
}

func (w *workList) add(p Pointer, pts *PointsToSet) {
	w.entries = append(w.entries, workEntry{p, pts})
}

func (w *workList) poll() workEntry {
	e := w.entries[0]
	w.entries = w.entries[1:]
	return e
}

func (w *workList) empty() bool { return len(w.entries) == 0 }

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callgraph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/castorlabs/castor/ir"
)

// DOT renders a method-level call graph in Graphviz DOT form. Method
// nodes are labeled with their signatures; parallel edges between the
// same pair of methods collapse to one.
func DOT(g *Graph[*ir.Invoke, *ir.Method], name string) ([]byte, error) {
	d := &dotGraph{
		byID:  make(map[int64]*dotNode),
		adj:   make(map[int64][]int64),
		radj:  make(map[int64][]int64),
		edges: make(map[[2]int64]bool),
	}
	ids := make(map[*ir.Method]int64)
	for i, m := range g.ReachableMethods() {
		n := &dotNode{id: int64(i), label: m.String()}
		ids[m] = n.id
		d.nodes = append(d.nodes, n)
		d.byID[n.id] = n
	}
	for _, m := range g.ReachableMethods() {
		for _, s := range m.Stmts() {
			cs, ok := s.(*ir.Invoke)
			if !ok {
				continue
			}
			for _, e := range g.EdgesOutOf(cs) {
				d.addEdge(ids[m], ids[e.Callee])
			}
		}
	}
	return dot.Marshal(d, name, "", "  ")
}

type dotNode struct {
	id    int64
	label string
}

func (n *dotNode) ID() int64 { return n.id }

// DOTID returns the method signature; the encoder quotes it as needed.
func (n *dotNode) DOTID() string { return n.label }

type dotGraph struct {
	nodes []graph.Node
	byID  map[int64]*dotNode
	adj   map[int64][]int64
	radj  map[int64][]int64
	edges map[[2]int64]bool
}

func (d *dotGraph) addEdge(u, v int64) {
	if d.edges[[2]int64{u, v}] {
		return
	}
	d.edges[[2]int64{u, v}] = true
	d.adj[u] = append(d.adj[u], v)
	d.radj[v] = append(d.radj[v], u)
}

func (d *dotGraph) Node(id int64) graph.Node {
	if n, ok := d.byID[id]; ok {
		return n
	}
	return nil
}

func (d *dotGraph) Nodes() graph.Nodes {
	return iterator.NewOrderedNodes(d.nodes)
}

func (d *dotGraph) group(ids []int64) graph.Nodes {
	ns := make([]graph.Node, len(ids))
	for i, id := range ids {
		ns[i] = d.byID[id]
	}
	return iterator.NewOrderedNodes(ns)
}

func (d *dotGraph) From(id int64) graph.Nodes { return d.group(d.adj[id]) }
func (d *dotGraph) To(id int64) graph.Nodes   { return d.group(d.radj[id]) }

func (d *dotGraph) HasEdgeFromTo(u, v int64) bool { return d.edges[[2]int64{u, v}] }

func (d *dotGraph) HasEdgeBetween(x, y int64) bool {
	return d.edges[[2]int64{x, y}] || d.edges[[2]int64{y, x}]
}

func (d *dotGraph) Edge(u, v int64) graph.Edge {
	if !d.edges[[2]int64{u, v}] {
		return nil
	}
	return dotEdge{from: d.byID[u], to: d.byID[v]}
}

type dotEdge struct {
	from, to graph.Node
}

func (e dotEdge) From() graph.Node         { return e.from }
func (e dotEdge) To() graph.Node           { return e.to }
func (e dotEdge) ReversedEdge() graph.Edge { return dotEdge{from: e.to, to: e.from} }

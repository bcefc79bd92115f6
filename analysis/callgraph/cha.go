// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package callgraph

import (
	"fmt"
	"io"

	"github.com/castorlabs/castor/ir"
)

// CHA builds a call graph by class hierarchy analysis: virtual and
// interface calls resolve to every concrete dispatch target among the
// declared class's hierarchy descendants. Sound, imprecise, and cheap.
type CHA struct {
	world *ir.World

	// Log, when non-nil, receives a line per resolution.
	Log io.Writer
}

func NewCHA(world *ir.World) *CHA { return &CHA{world: world} }

// Build explores methods breadth-first from the program entry,
// resolving every call site it encounters.
func (c *CHA) Build() *Graph[*ir.Invoke, *ir.Method] {
	g := NewGraph[*ir.Invoke, *ir.Method]()
	queue := []*ir.Method{c.world.Entry()}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		if !g.AddReachableMethod(m) {
			continue
		}
		for _, s := range m.Stmts() {
			cs, ok := s.(*ir.Invoke)
			if !ok {
				continue
			}
			for _, callee := range c.Resolve(cs) {
				g.AddEdge(Edge[*ir.Invoke, *ir.Method]{
					Kind:     cs.Exp().Kind(),
					CallSite: cs,
					Callee:   callee,
				})
				queue = append(queue, callee)
			}
		}
	}
	return g
}

// Resolve returns the candidate callees of a call site under CHA.
// Unresolvable sites yield an empty slice.
func (c *CHA) Resolve(cs *ir.Invoke) []*ir.Method {
	h := c.world.Hierarchy()
	ref := cs.Exp().Ref()
	cls, sig := ref.Class(), ref.Subsignature()

	var callees []*ir.Method
	switch cs.Exp().Kind() {
	case ir.CallStatic:
		if m := cls.DeclaredMethod(sig); m != nil {
			callees = append(callees, m)
		}
	case ir.CallSpecial:
		if m := h.Dispatch(cls, sig); m != nil {
			callees = append(callees, m)
		}
	case ir.CallVirtual, ir.CallInterface:
		// Walk the declared class and, transitively, its direct
		// subclasses, sub-interfaces, and implementors, dispatching
		// at each.
		seenClass := make(map[*ir.Class]bool)
		seenMethod := make(map[*ir.Method]bool)
		work := []*ir.Class{cls}
		for len(work) > 0 {
			k := work[0]
			work = work[1:]
			if seenClass[k] {
				continue
			}
			seenClass[k] = true
			if m := h.Dispatch(k, sig); m != nil && !seenMethod[m] {
				seenMethod[m] = true
				callees = append(callees, m)
			}
			work = append(work, h.DirectSubclassesOf(k)...)
			work = append(work, h.DirectSubinterfacesOf(k)...)
			work = append(work, h.DirectImplementorsOf(k)...)
		}
	}
	if c.Log != nil {
		fmt.Fprintf(c.Log, "cha: %s resolves to %d callee(s)\n", cs, len(callees))
	}
	return callees
}

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pointer implements inclusion-based pointer analysis for the
// IR: a context-insensitive solver and a context-sensitive solver
// parameterized by a context selector, both constructing a call graph
// on the fly. Results are exposed read-only.
package pointer

import "golang.org/x/tools/container/intsets"

// A PointsToSet is a monotone set of abstract object ids. Ids index the
// solver's object arena: plain objects for the context-insensitive
// solver, context-qualified objects for the context-sensitive one.
type PointsToSet struct {
	s intsets.Sparse
}

func newPointsToSet(ids ...int) *PointsToSet {
	p := new(PointsToSet)
	for _, id := range ids {
		p.s.Insert(id)
	}
	return p
}

// Add inserts id and reports whether the set grew.
func (p *PointsToSet) Add(id int) bool { return p.s.Insert(id) }

// AddAll inserts every element of o and reports whether p grew.
func (p *PointsToSet) AddAll(o *PointsToSet) bool { return p.s.UnionWith(&o.s) }

func (p *PointsToSet) Has(id int) bool { return p.s.Has(id) }
func (p *PointsToSet) Len() int        { return p.s.Len() }
func (p *PointsToSet) IsEmpty() bool   { return p.s.IsEmpty() }

// IDs returns the elements in ascending order.
func (p *PointsToSet) IDs() []int { return p.s.AppendTo(nil) }

// Copy returns an independent copy of p.
func (p *PointsToSet) Copy() *PointsToSet {
	c := new(PointsToSet)
	c.s.Copy(&p.s)
	return c
}

// DiffFrom returns p minus o as a fresh set.
func (p *PointsToSet) DiffFrom(o *PointsToSet) *PointsToSet {
	d := new(PointsToSet)
	for _, id := range p.IDs() {
		if !o.Has(id) {
			d.s.Insert(id)
		}
	}
	return d
}

func (p *PointsToSet) String() string { return p.s.String() }

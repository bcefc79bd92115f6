// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"sort"
	"strings"

	"github.com/castorlabs/castor/ir"
)

// A CPFact is a partial map from variables to lattice values; a variable
// absent from the map is Undef. Two facts are equal iff their non-Undef
// entries coincide, which the Undef-removal in Update maintains.
type CPFact struct {
	m map[*ir.Var]Value
}

func NewCPFact() *CPFact {
	return &CPFact{m: make(map[*ir.Var]Value)}
}

// Get returns the value bound to v, Undef if absent.
func (f *CPFact) Get(v *ir.Var) Value {
	return f.m[v]
}

// Update binds v to val, removing the entry when val is Undef, and
// reports whether the fact changed.
func (f *CPFact) Update(v *ir.Var, val Value) bool {
	old, ok := f.m[v]
	if val.IsUndef() {
		if !ok {
			return false
		}
		delete(f.m, v)
		return true
	}
	if ok && old == val {
		return false
	}
	f.m[v] = val
	return true
}

// Copy returns an independent copy of f.
func (f *CPFact) Copy() *CPFact {
	c := &CPFact{m: make(map[*ir.Var]Value, len(f.m))}
	for v, val := range f.m {
		c.m[v] = val
	}
	return c
}

// CopyFrom makes f identical to other and reports whether f changed.
func (f *CPFact) CopyFrom(other *CPFact) bool {
	if f.Equal(other) {
		return false
	}
	f.m = make(map[*ir.Var]Value, len(other.m))
	for v, val := range other.m {
		f.m[v] = val
	}
	return true
}

func (f *CPFact) Equal(other *CPFact) bool {
	if len(f.m) != len(other.m) {
		return false
	}
	for v, val := range f.m {
		if other.m[v] != val {
			return false
		}
	}
	return true
}

// Entries returns the non-Undef bindings of f.
func (f *CPFact) Entries() map[*ir.Var]Value {
	out := make(map[*ir.Var]Value, len(f.m))
	for v, val := range f.m {
		out[v] = val
	}
	return out
}

func (f *CPFact) String() string {
	parts := make([]string, 0, len(f.m))
	for v, val := range f.m {
		parts = append(parts, v.Name()+"="+val.String())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// A SetFact is a set of T with the destructive operations the solver
// needs. The zero value is not usable; use NewSetFact.
type SetFact[T comparable] struct {
	m map[T]struct{}
}

func NewSetFact[T comparable]() *SetFact[T] {
	return &SetFact[T]{m: make(map[T]struct{})}
}

func (s *SetFact[T]) Has(x T) bool {
	_, ok := s.m[x]
	return ok
}

func (s *SetFact[T]) Add(x T)    { s.m[x] = struct{}{} }
func (s *SetFact[T]) Remove(x T) { delete(s.m, x) }
func (s *SetFact[T]) Len() int   { return len(s.m) }

// Union adds every element of other and reports whether s grew.
func (s *SetFact[T]) Union(other *SetFact[T]) bool {
	n := len(s.m)
	for x := range other.m {
		s.m[x] = struct{}{}
	}
	return len(s.m) > n
}

func (s *SetFact[T]) Copy() *SetFact[T] {
	c := NewSetFact[T]()
	for x := range s.m {
		c.m[x] = struct{}{}
	}
	return c
}

// SetTo makes s identical to other and reports whether s changed.
func (s *SetFact[T]) SetTo(other *SetFact[T]) bool {
	if s.Equal(other) {
		return false
	}
	s.m = make(map[T]struct{}, len(other.m))
	for x := range other.m {
		s.m[x] = struct{}{}
	}
	return true
}

func (s *SetFact[T]) Equal(other *SetFact[T]) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for x := range s.m {
		if _, ok := other.m[x]; !ok {
			return false
		}
	}
	return true
}

// Items returns the elements in unspecified order.
func (s *SetFact[T]) Items() []T {
	out := make([]T, 0, len(s.m))
	for x := range s.m {
		out = append(out, x)
	}
	return out
}

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "github.com/pkg/errors"

// A World bundles the loaded program: its class hierarchy and the entry
// method. Analyses receive the world explicitly; there is no global
// program state.
type World struct {
	hierarchy *Hierarchy
	entry     *Method
}

// NewWorld builds a world rooted at the entry method named by class and
// subsignature.
func NewWorld(h *Hierarchy, entryClass, entrySubsig string) (*World, error) {
	c := h.ClassByName(entryClass)
	if c == nil {
		return nil, errors.Errorf("world: unknown entry class %q", entryClass)
	}
	m := c.DeclaredMethod(entrySubsig)
	if m == nil {
		return nil, errors.Errorf("world: class %s declares no method %q", entryClass, entrySubsig)
	}
	if m.IsAbstract() {
		return nil, errors.Errorf("world: entry method %s is abstract", m)
	}
	return &World{hierarchy: h, entry: m}, nil
}

// MustWorld is NewWorld for programmatically built programs, where a
// missing entry is a bug.
func MustWorld(h *Hierarchy, entryClass, entrySubsig string) *World {
	w, err := NewWorld(h, entryClass, entrySubsig)
	if err != nil {
		panic(err)
	}
	return w
}

func (w *World) Hierarchy() *Hierarchy { return w.hierarchy }

// Entry returns the program entry method.
func (w *World) Entry() *Method { return w.entry }

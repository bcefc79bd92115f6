// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataflow provides the monotone dataflow framework used by the
// analyses in this repository: a generic worklist solver over control
// flow graphs, an integer constant propagation, a live variables
// analysis, and a reaching definitions analysis.
package dataflow

import "fmt"

// Value is an element of the three-level constant lattice:
//
//      NAC        not a constant
//     / | \
// .. 1  2  3 ..   constant
//     \ | /
//      UNDEF      undefined
//
// Undef is the bottom, NAC the top; distinct constants are incomparable
// and meet to NAC. Values are immutable.
type Value struct {
	kind valueKind
	c    int32
}

type valueKind int8

const (
	undef valueKind = iota
	constant
	nac
)

// Undef and NAC are the lattice's distinguished elements.
var (
	Undef = Value{kind: undef}
	NAC   = Value{kind: nac}
)

// MakeConstant returns the lattice value for constant c.
func MakeConstant(c int32) Value {
	return Value{kind: constant, c: c}
}

func (v Value) IsUndef() bool    { return v.kind == undef }
func (v Value) IsNAC() bool      { return v.kind == nac }
func (v Value) IsConstant() bool { return v.kind == constant }

// Constant returns the constant; it panics on non-constant values.
func (v Value) Constant() int32 {
	if v.kind != constant {
		panic("dataflow: Constant called on " + v.String())
	}
	return v.c
}

func (v Value) String() string {
	switch v.kind {
	case undef:
		return "UNDEF"
	case nac:
		return "NAC"
	}
	return fmt.Sprintf("%d", v.c)
}

// MeetValue joins two lattice values: NAC absorbs, Undef is the
// identity, equal constants meet to themselves, distinct constants
// to NAC.
func MeetValue(a, b Value) Value {
	switch {
	case a.IsNAC() || b.IsNAC():
		return NAC
	case a.IsUndef():
		return b
	case b.IsUndef():
		return a
	case a.c == b.c:
		return a
	}
	return NAC
}

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataflow

import (
	"testing"

	"github.com/castorlabs/castor/ir"
)

var latticeSamples = []Value{
	Undef,
	NAC,
	MakeConstant(0),
	MakeConstant(1),
	MakeConstant(-7),
	MakeConstant(1), // duplicate constant on purpose
}

func TestMeetValueCommutative(t *testing.T) {
	for _, a := range latticeSamples {
		for _, b := range latticeSamples {
			if MeetValue(a, b) != MeetValue(b, a) {
				t.Errorf("meet(%s,%s) != meet(%s,%s)", a, b, b, a)
			}
		}
	}
}

func TestMeetValueAssociative(t *testing.T) {
	for _, a := range latticeSamples {
		for _, b := range latticeSamples {
			for _, c := range latticeSamples {
				l := MeetValue(MeetValue(a, b), c)
				r := MeetValue(a, MeetValue(b, c))
				if l != r {
					t.Errorf("meet not associative on (%s,%s,%s): %s != %s", a, b, c, l, r)
				}
			}
		}
	}
}

func TestMeetValueIdempotentIdentityAbsorbing(t *testing.T) {
	for _, a := range latticeSamples {
		if MeetValue(a, a) != a {
			t.Errorf("meet(%s,%s) != %s", a, a, a)
		}
		if MeetValue(a, Undef) != a {
			t.Errorf("Undef is not identity for %s", a)
		}
		if !MeetValue(a, NAC).IsNAC() {
			t.Errorf("NAC does not absorb %s", a)
		}
	}
}

func TestMeetValueDistinctConstants(t *testing.T) {
	if got := MeetValue(MakeConstant(1), MakeConstant(2)); !got.IsNAC() {
		t.Errorf("meet(1,2) = %s, want NAC", got)
	}
	if got := MeetValue(MakeConstant(5), MakeConstant(5)); got != MakeConstant(5) {
		t.Errorf("meet(5,5) = %s, want 5", got)
	}
}

func TestCPFactCopyRoundTrip(t *testing.T) {
	h := ir.NewHierarchy()
	c := h.NewClass("C", nil, false)
	b := c.NewStaticMethod("m", ir.Void)
	x := b.Local("x", ir.Int)
	y := b.Local("y", ir.Int)
	b.ReturnVoid()
	b.Finish()

	f := NewCPFact()
	f.Update(x, MakeConstant(42))
	f.Update(y, NAC)

	cp := f.Copy()
	if f.CopyFrom(cp) {
		t.Error("CopyFrom after Copy reported a change")
	}
	if !f.Equal(cp) {
		t.Error("copy is not equal to original")
	}
}

func TestCPFactUndefRemoval(t *testing.T) {
	h := ir.NewHierarchy()
	c := h.NewClass("C", nil, false)
	b := c.NewStaticMethod("m", ir.Void)
	x := b.Local("x", ir.Int)
	b.ReturnVoid()
	b.Finish()

	f := NewCPFact()
	if f.Update(x, Undef) {
		t.Error("binding an absent var to Undef reported a change")
	}
	f.Update(x, MakeConstant(1))
	if !f.Update(x, Undef) {
		t.Error("removing a binding did not report a change")
	}
	if len(f.Entries()) != 0 {
		t.Error("Undef entry survived in fact")
	}
	if !f.Get(x).IsUndef() {
		t.Error("absent var is not Undef")
	}
}

// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "fmt"

// A Class is a class or interface in the analyzed program. Hierarchy
// links (super, direct subclasses, direct subinterfaces, direct
// implementors) are maintained by the Hierarchy that owns the class.
type Class struct {
	name        string
	super       *Class
	interfaces  []*Class
	isInterface bool
	isAbstract  bool

	methods map[string]*Method // keyed by subsignature
	fields  map[string]*Field

	subclasses    []*Class // direct subclasses
	subinterfaces []*Class // direct sub-interfaces (interfaces only)
	implementors  []*Class // direct implementing classes (interfaces only)

	typ *Type
}

func (c *Class) Name() string      { return c.name }
func (c *Class) Super() *Class     { return c.super }
func (c *Class) IsInterface() bool { return c.isInterface }
func (c *Class) IsAbstract() bool  { return c.isAbstract }
func (c *Class) String() string    { return c.name }

// Type returns the interned class type of c.
func (c *Class) Type() *Type { return c.typ }

// Interfaces returns the interfaces c directly implements or extends.
func (c *Class) Interfaces() []*Class { return c.interfaces }

// DeclaredMethod returns the method c itself declares with the given
// subsignature, or nil.
func (c *Class) DeclaredMethod(subsig string) *Method {
	return c.methods[subsig]
}

// DeclaredField returns the field c itself declares, or nil.
func (c *Class) DeclaredField(name string) *Field {
	return c.fields[name]
}

// A Field is a static or instance field of a class.
type Field struct {
	class    *Class
	name     string
	typ      *Type
	isStatic bool
}

func (f *Field) Class() *Class  { return f.class }
func (f *Field) Name() string   { return f.name }
func (f *Field) Type() *Type    { return f.typ }
func (f *Field) IsStatic() bool { return f.isStatic }

func (f *Field) String() string {
	return fmt.Sprintf("%s.%s", f.class.name, f.name)
}

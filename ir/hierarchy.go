// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// A Hierarchy owns every class of the analyzed program and answers the
// hierarchy queries the analyses need: direct subclasses, direct
// sub-interfaces, direct implementors, declared-method lookup, and
// method dispatch.
type Hierarchy struct {
	classes map[string]*Class
	order   []*Class
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{classes: make(map[string]*Class)}
}

// ClassByName returns the named class, or nil.
func (h *Hierarchy) ClassByName(name string) *Class {
	return h.classes[name]
}

// Classes returns every class in registration order.
func (h *Hierarchy) Classes() []*Class { return h.order }

// DirectSubclassesOf returns the classes whose immediate superclass is c.
func (h *Hierarchy) DirectSubclassesOf(c *Class) []*Class {
	return c.subclasses
}

// DirectSubinterfacesOf returns the interfaces directly extending
// interface c.
func (h *Hierarchy) DirectSubinterfacesOf(c *Class) []*Class {
	return c.subinterfaces
}

// DirectImplementorsOf returns the classes directly implementing
// interface c.
func (h *Hierarchy) DirectImplementorsOf(c *Class) []*Class {
	return c.implementors
}

// DeclaredMethod returns c's own declaration for subsig, or nil.
func (h *Hierarchy) DeclaredMethod(c *Class, subsig string) *Method {
	return c.methods[subsig]
}

// Dispatch selects the concrete method a receiver of class c runs for
// subsig, walking up the superclass chain. Returns nil when no concrete
// declaration exists on the chain.
func (h *Hierarchy) Dispatch(c *Class, subsig string) *Method {
	for ; c != nil; c = c.super {
		if m := c.methods[subsig]; m != nil && !m.isAbstract {
			return m
		}
	}
	return nil
}

// NewClass registers a class with the given superclass (nil for the
// root). Abstract classes pass abstract = true.
func (h *Hierarchy) NewClass(name string, super *Class, abstract bool) *Class {
	c := &Class{
		name:       name,
		super:      super,
		isAbstract: abstract,
		methods:    make(map[string]*Method),
		fields:     make(map[string]*Field),
	}
	c.typ = &Type{kind: ClassKind, name: name, class: c}
	if super != nil {
		super.subclasses = append(super.subclasses, c)
	}
	h.register(c)
	return c
}

// NewInterface registers an interface, optionally extending other
// interfaces.
func (h *Hierarchy) NewInterface(name string, extends ...*Class) *Class {
	c := &Class{
		name:        name,
		isInterface: true,
		isAbstract:  true,
		interfaces:  extends,
		methods:     make(map[string]*Method),
		fields:      make(map[string]*Field),
	}
	c.typ = &Type{kind: ClassKind, name: name, class: c}
	for _, i := range extends {
		i.subinterfaces = append(i.subinterfaces, c)
	}
	h.register(c)
	return c
}

// Implement records that class c directly implements interface i.
func (h *Hierarchy) Implement(c, i *Class) {
	c.interfaces = append(c.interfaces, i)
	i.implementors = append(i.implementors, c)
}

func (h *Hierarchy) register(c *Class) {
	if _, ok := h.classes[c.name]; ok {
		panic("ir: duplicate class " + c.name)
	}
	h.classes[c.name] = c
	h.order = append(h.order, c)
}

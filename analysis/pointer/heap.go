// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

import (
	"fmt"

	"github.com/castorlabs/castor/ir"
)

// An Obj is an abstract object, identified by its creation site. The
// container type is the class declaring the method that allocates,
// which type sensitivity uses as its context element.
type Obj struct {
	id   int
	site *ir.New
	typ  *ir.Type
}

func (o *Obj) Site() *ir.New { return o.site }
func (o *Obj) Type() *ir.Type { return o.typ }

// ContainerType returns the type of the class containing the
// allocation site.
func (o *Obj) ContainerType() *ir.Type {
	return o.site.LValue().Method().Class().Type()
}

func (o *Obj) String() string {
	return fmt.Sprintf("new %s/%d", o.typ.Name(), o.site.Index())
}

// heapModel interns one Obj per allocation site and owns the object
// arena; ids are assigned monotonically.
type heapModel struct {
	objs  map[*ir.New]*Obj
	arena []*Obj
}

func newHeapModel() *heapModel {
	return &heapModel{objs: make(map[*ir.New]*Obj)}
}

// objOf returns the interned abstract object for an allocation site.
func (h *heapModel) objOf(site *ir.New) *Obj {
	if o, ok := h.objs[site]; ok {
		return o
	}
	o := &Obj{id: len(h.arena), site: site, typ: site.Type()}
	h.objs[site] = o
	h.arena = append(h.arena, o)
	return o
}

func (h *heapModel) obj(id int) *Obj { return h.arena[id] }

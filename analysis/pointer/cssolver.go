// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

// This file contains the context-sensitive solver. It has the same
// shape as the context-insensitive one, with every pointer, object,
// method, and call site qualified by a context chosen by the selector.

import (
	"fmt"
	"io"

	"github.com/castorlabs/castor/analysis/callgraph"
	"github.com/castorlabs/castor/ir"
)

// CSSolver runs the context-sensitive pointer analysis under a given
// context selector. Single-use, like Solver.
type CSSolver struct {
	Log io.Writer

	world    *ir.World
	selector ContextSelector
	heap     *heapModel
	cg       *callgraph.Graph[*CSCallSite, *CSMethod]
	pfg      *flowGraph
	wl       *workList
	pts      map[Pointer]*PointsToSet

	csObjs     map[csObjKey]*CSObj
	objArena   []*CSObj
	csVarPtrs  map[csVarKey]*CSVarPtr
	varIndex   map[*ir.Var][]*CSVarPtr
	staticPtrs map[*ir.Field]*StaticFieldPtr
	fieldPtrs  map[csFieldKey]*CSInstanceFieldPtr
	arrayPtrs  map[*CSObj]*CSArrayIndexPtr
	csMethods  map[csMethodKey]*CSMethod
	csSites    map[csSiteKey]*CSCallSite
}

type (
	csObjKey    struct {
		ctx *Context
		obj *Obj
	}
	csVarKey struct {
		ctx *Context
		v   *ir.Var
	}
	csFieldKey struct {
		obj *CSObj
		f   *ir.Field
	}
	csMethodKey struct {
		ctx *Context
		m   *ir.Method
	}
	csSiteKey struct {
		ctx  *Context
		site *ir.Invoke
	}
)

func NewCSSolver(world *ir.World, selector ContextSelector) *CSSolver {
	return &CSSolver{
		world:      world,
		selector:   selector,
		heap:       newHeapModel(),
		cg:         callgraph.NewGraph[*CSCallSite, *CSMethod](),
		pfg:        newFlowGraph(),
		wl:         new(workList),
		pts:        make(map[Pointer]*PointsToSet),
		csObjs:     make(map[csObjKey]*CSObj),
		csVarPtrs:  make(map[csVarKey]*CSVarPtr),
		varIndex:   make(map[*ir.Var][]*CSVarPtr),
		staticPtrs: make(map[*ir.Field]*StaticFieldPtr),
		fieldPtrs:  make(map[csFieldKey]*CSInstanceFieldPtr),
		arrayPtrs:  make(map[*CSObj]*CSArrayIndexPtr),
		csMethods:  make(map[csMethodKey]*CSMethod),
		csSites:    make(map[csSiteKey]*CSCallSite),
	}
}

// Solve runs the analysis to fixed point and returns its result.
func (s *CSSolver) Solve() *CSResult {
	entry := s.csMethod(s.selector.EmptyContext(), s.world.Entry())
	s.addReachable(entry)
	s.analyze()
	return &CSResult{solver: s}
}

// interning factories.

func (s *CSSolver) csObj(ctx *Context, obj *Obj) *CSObj {
	k := csObjKey{ctx, obj}
	if o, ok := s.csObjs[k]; ok {
		return o
	}
	o := &CSObj{id: len(s.objArena), ctx: ctx, obj: obj}
	s.csObjs[k] = o
	s.objArena = append(s.objArena, o)
	return o
}

func (s *CSSolver) csVarPtr(ctx *Context, v *ir.Var) *CSVarPtr {
	k := csVarKey{ctx, v}
	if p, ok := s.csVarPtrs[k]; ok {
		return p
	}
	p := &CSVarPtr{ctx: ctx, v: v}
	s.csVarPtrs[k] = p
	s.varIndex[v] = append(s.varIndex[v], p)
	return p
}

func (s *CSSolver) staticPtr(f *ir.Field) *StaticFieldPtr {
	if p, ok := s.staticPtrs[f]; ok {
		return p
	}
	p := &StaticFieldPtr{f: f}
	s.staticPtrs[f] = p
	return p
}

func (s *CSSolver) instFieldPtr(o *CSObj, f *ir.Field) *CSInstanceFieldPtr {
	k := csFieldKey{o, f}
	if p, ok := s.fieldPtrs[k]; ok {
		return p
	}
	p := &CSInstanceFieldPtr{obj: o, f: f}
	s.fieldPtrs[k] = p
	return p
}

func (s *CSSolver) arrayPtr(o *CSObj) *CSArrayIndexPtr {
	if p, ok := s.arrayPtrs[o]; ok {
		return p
	}
	p := &CSArrayIndexPtr{obj: o}
	s.arrayPtrs[o] = p
	return p
}

func (s *CSSolver) csMethod(ctx *Context, m *ir.Method) *CSMethod {
	k := csMethodKey{ctx, m}
	if cm, ok := s.csMethods[k]; ok {
		return cm
	}
	cm := &CSMethod{ctx: ctx, m: m}
	s.csMethods[k] = cm
	return cm
}

func (s *CSSolver) csCallSite(ctx *Context, site *ir.Invoke, container *CSMethod) *CSCallSite {
	k := csSiteKey{ctx, site}
	if c, ok := s.csSites[k]; ok {
		return c
	}
	c := &CSCallSite{ctx: ctx, site: site, container: container}
	s.csSites[k] = c
	return c
}

func (s *CSSolver) ptsOf(p Pointer) *PointsToSet {
	if set, ok := s.pts[p]; ok {
		return set
	}
	set := new(PointsToSet)
	s.pts[p] = set
	return set
}

// addReachable records a context-qualified method and replays its
// statements under that context.
func (s *CSSolver) addReachable(cm *CSMethod) {
	if !s.cg.AddReachableMethod(cm) {
		return
	}
	if s.Log != nil {
		fmt.Fprintf(s.Log, "cspta: reachable %s\n", cm)
	}
	ctx := cm.Context()
	for _, stmt := range cm.Method().Stmts() {
		switch stmt := stmt.(type) {
		case *ir.New:
			obj := s.heap.objOf(stmt)
			hctx := s.selector.SelectHeapContext(cm, obj)
			co := s.csObj(hctx, obj)
			s.wl.add(s.csVarPtr(ctx, stmt.LValue()), newPointsToSet(co.id))
		case *ir.Copy:
			s.addPFGEdge(s.csVarPtr(ctx, stmt.RHS()), s.csVarPtr(ctx, stmt.LValue()))
		case *ir.LoadField:
			if stmt.Field().IsStatic() {
				s.addPFGEdge(s.staticPtr(stmt.Field()), s.csVarPtr(ctx, stmt.LValue()))
			}
		case *ir.StoreField:
			if stmt.Field().IsStatic() {
				s.addPFGEdge(s.csVarPtr(ctx, stmt.RHS()), s.staticPtr(stmt.Field()))
			}
		case *ir.Invoke:
			if stmt.Exp().Kind() == ir.CallStatic {
				ref := stmt.Exp().Ref()
				callee := ref.Class().DeclaredMethod(ref.Subsignature())
				if callee == nil {
					continue
				}
				cs := s.csCallSite(ctx, stmt, cm)
				calleeCtx := s.selector.SelectContext(cs, callee)
				s.addCallEdge(ir.CallStatic, cs, s.csMethod(calleeCtx, callee))
			}
		}
	}
}

func (s *CSSolver) addCallEdge(kind ir.CallKind, cs *CSCallSite, callee *CSMethod) {
	e := callgraph.Edge[*CSCallSite, *CSMethod]{Kind: kind, CallSite: cs, Callee: callee}
	if !s.cg.AddEdge(e) {
		return
	}
	s.addReachable(callee)
	callerCtx, calleeCtx := cs.Context(), callee.Context()
	args := cs.Site().Exp().Args()
	for i, param := range callee.Method().Params() {
		s.addPFGEdge(s.csVarPtr(callerCtx, args[i]), s.csVarPtr(calleeCtx, param))
	}
	if result := cs.Site().Def(); result != nil {
		for _, r := range callee.Method().ReturnVars() {
			s.addPFGEdge(s.csVarPtr(calleeCtx, r), s.csVarPtr(callerCtx, result))
		}
	}
}

func (s *CSSolver) addPFGEdge(src, tgt Pointer) {
	if !s.pfg.addEdge(src, tgt) {
		return
	}
	if pts := s.ptsOf(src); !pts.IsEmpty() {
		s.wl.add(tgt, pts.Copy())
	}
}

func (s *CSSolver) analyze() {
	for !s.wl.empty() {
		e := s.wl.poll()
		delta := s.propagate(e.ptr, e.pts)
		vp, ok := e.ptr.(*CSVarPtr)
		if !ok || delta.IsEmpty() {
			continue
		}
		v := vp.Var()
		for _, id := range delta.IDs() {
			co := s.objArena[id]
			for _, st := range v.StoreFields() {
				s.addPFGEdge(s.csVarPtr(vp.Context(), st.RHS()), s.instFieldPtr(co, st.Field()))
			}
			for _, ld := range v.LoadFields() {
				s.addPFGEdge(s.instFieldPtr(co, ld.Field()), s.csVarPtr(vp.Context(), ld.LValue()))
			}
			for _, st := range v.StoreArrays() {
				s.addPFGEdge(s.csVarPtr(vp.Context(), st.RHS()), s.arrayPtr(co))
			}
			for _, ld := range v.LoadArrays() {
				s.addPFGEdge(s.arrayPtr(co), s.csVarPtr(vp.Context(), ld.LValue()))
			}
			s.processCall(vp, co)
		}
	}
}

func (s *CSSolver) propagate(p Pointer, pts *PointsToSet) *PointsToSet {
	delta := pts.DiffFrom(s.ptsOf(p))
	if delta.IsEmpty() {
		return delta
	}
	if s.Log != nil {
		fmt.Fprintf(s.Log, "cspta: propagate %s += %s\n", p, delta)
	}
	s.ptsOf(p).AddAll(delta)
	for _, succ := range s.pfg.succsOf(p) {
		s.wl.add(succ, delta)
	}
	return delta
}

// processCall resolves the instance calls through vp for a newly seen
// context-qualified receiver.
func (s *CSSolver) processCall(vp *CSVarPtr, recv *CSObj) {
	h := s.world.Hierarchy()
	container := s.csMethod(vp.Context(), vp.Var().Method())
	for _, site := range vp.Var().Invokes() {
		ref := site.Exp().Ref()
		var callee *ir.Method
		if site.Exp().Kind() == ir.CallSpecial {
			callee = h.Dispatch(ref.Class(), ref.Subsignature())
		} else if cls := recv.Obj().Type().Class(); cls != nil {
			callee = h.Dispatch(cls, ref.Subsignature())
		}
		if callee == nil {
			continue
		}
		cs := s.csCallSite(vp.Context(), site, container)
		calleeCtx := s.selector.SelectInstanceContext(cs, recv, callee)
		csCallee := s.csMethod(calleeCtx, callee)
		s.wl.add(s.csVarPtr(calleeCtx, callee.This()), newPointsToSet(recv.id))
		s.addCallEdge(site.Exp().Kind(), cs, csCallee)
	}
}

// A CSResult is the read-only projection of a finished
// context-sensitive analysis.
type CSResult struct {
	solver *CSSolver
}

// CallGraph returns the context-sensitive call graph.
func (r *CSResult) CallGraph() *callgraph.Graph[*CSCallSite, *CSMethod] {
	return r.solver.cg
}

// StrippedCallGraph returns the call graph with contexts removed.
func (r *CSResult) StrippedCallGraph() *callgraph.Graph[*ir.Invoke, *ir.Method] {
	g := callgraph.NewGraph[*ir.Invoke, *ir.Method]()
	for _, cm := range r.solver.cg.ReachableMethods() {
		g.AddReachableMethod(cm.Method())
	}
	r.solver.cg.Edges(func(e callgraph.Edge[*CSCallSite, *CSMethod]) {
		g.AddEdge(callgraph.Edge[*ir.Invoke, *ir.Method]{
			Kind:     e.Kind,
			CallSite: e.CallSite.Site(),
			Callee:   e.Callee.Method(),
		})
	})
	return g
}

// PointsToSet returns the objects v may point to, unioned over every
// context-sensitive incarnation of v and stripped of heap contexts.
func (r *CSResult) PointsToSet(v *ir.Var) []*Obj {
	seen := make(map[*Obj]bool)
	var out []*Obj
	for _, vp := range r.solver.varIndex[v] {
		set, ok := r.solver.pts[vp]
		if !ok {
			continue
		}
		for _, id := range set.IDs() {
			o := r.solver.objArena[id].Obj()
			if !seen[o] {
				seen[o] = true
				out = append(out, o)
			}
		}
	}
	return out
}

// CSPointsToSet returns the context-qualified objects one incarnation
// of v points to.
func (r *CSResult) CSPointsToSet(ctx *Context, v *ir.Var) []*CSObj {
	p, ok := r.solver.csVarPtrs[csVarKey{ctx, v}]
	if !ok {
		return nil
	}
	set, ok := r.solver.pts[p]
	if !ok {
		return nil
	}
	ids := set.IDs()
	out := make([]*CSObj, len(ids))
	for i, id := range ids {
		out[i] = r.solver.objArena[id]
	}
	return out
}

// PointsToSetOfField projects the union over heap contexts of the
// points-to sets of o.f, context-stripped.
func (r *CSResult) PointsToSetOfField(o *Obj, f *ir.Field) []*Obj {
	seen := make(map[*Obj]bool)
	var out []*Obj
	for k, p := range r.solver.fieldPtrs {
		if k.obj.Obj() != o || k.f != f {
			continue
		}
		set, ok := r.solver.pts[p]
		if !ok {
			continue
		}
		for _, id := range set.IDs() {
			obj := r.solver.objArena[id].Obj()
			if !seen[obj] {
				seen[obj] = true
				out = append(out, obj)
			}
		}
	}
	return out
}

// PointsToSetOfArray projects the union over heap contexts of the
// points-to sets of o's array cell, context-stripped.
func (r *CSResult) PointsToSetOfArray(o *Obj) []*Obj {
	seen := make(map[*Obj]bool)
	var out []*Obj
	for co, p := range r.solver.arrayPtrs {
		if co.Obj() != o {
			continue
		}
		set, ok := r.solver.pts[p]
		if !ok {
			continue
		}
		for _, id := range set.IDs() {
			obj := r.solver.objArena[id].Obj()
			if !seen[obj] {
				seen[obj] = true
				out = append(out, obj)
			}
		}
	}
	return out
}

// PointsToSetOfStaticField projects the context-stripped points-to set
// of a static field.
func (r *CSResult) PointsToSetOfStaticField(f *ir.Field) []*Obj {
	p, ok := r.solver.staticPtrs[f]
	if !ok {
		return nil
	}
	set, ok := r.solver.pts[p]
	if !ok {
		return nil
	}
	seen := make(map[*Obj]bool)
	var out []*Obj
	for _, id := range set.IDs() {
		o := r.solver.objArena[id].Obj()
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

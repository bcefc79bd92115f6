// Copyright 2015 Auburn University. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pointer

// This file contains the context-insensitive solver. Statements of each
// newly reachable method seed allocation facts and copy edges; loads,
// stores, and virtual calls through a variable are wired lazily as the
// variable's points-to set grows. The call graph is constructed on the
// fly from the same loop.

import (
	"fmt"
	"io"

	"github.com/castorlabs/castor/analysis/callgraph"
	"github.com/castorlabs/castor/ir"
)

// Solver runs the context-insensitive pointer analysis. A Solver is
// single-use: construct, optionally set Log, then call Solve once.
type Solver struct {
	// Log, when non-nil, receives a trace of propagation and call
	// resolution.
	Log io.Writer

	world *ir.World
	heap  *heapModel
	cg    *callgraph.Graph[*ir.Invoke, *ir.Method]
	pfg   *flowGraph
	wl    *workList
	pts   map[Pointer]*PointsToSet

	varPtrs    map[*ir.Var]*VarPtr
	staticPtrs map[*ir.Field]*StaticFieldPtr
	fieldPtrs  map[instFieldKey]*InstanceFieldPtr
	arrayPtrs  map[*Obj]*ArrayIndexPtr
}

type instFieldKey struct {
	obj *Obj
	f   *ir.Field
}

func NewSolver(world *ir.World) *Solver {
	return &Solver{
		world:      world,
		heap:       newHeapModel(),
		cg:         callgraph.NewGraph[*ir.Invoke, *ir.Method](),
		pfg:        newFlowGraph(),
		wl:         new(workList),
		pts:        make(map[Pointer]*PointsToSet),
		varPtrs:    make(map[*ir.Var]*VarPtr),
		staticPtrs: make(map[*ir.Field]*StaticFieldPtr),
		fieldPtrs:  make(map[instFieldKey]*InstanceFieldPtr),
		arrayPtrs:  make(map[*Obj]*ArrayIndexPtr),
	}
}

// Solve runs the analysis to fixed point and returns its result.
func (s *Solver) Solve() *Result {
	s.addReachable(s.world.Entry())
	s.analyze()
	return &Result{solver: s}
}

// pointer factories; all interned.

func (s *Solver) varPtr(v *ir.Var) *VarPtr {
	if p, ok := s.varPtrs[v]; ok {
		return p
	}
	p := &VarPtr{v: v}
	s.varPtrs[v] = p
	return p
}

func (s *Solver) staticPtr(f *ir.Field) *StaticFieldPtr {
	if p, ok := s.staticPtrs[f]; ok {
		return p
	}
	p := &StaticFieldPtr{f: f}
	s.staticPtrs[f] = p
	return p
}

func (s *Solver) instFieldPtr(o *Obj, f *ir.Field) *InstanceFieldPtr {
	k := instFieldKey{o, f}
	if p, ok := s.fieldPtrs[k]; ok {
		return p
	}
	p := &InstanceFieldPtr{obj: o, f: f}
	s.fieldPtrs[k] = p
	return p
}

func (s *Solver) arrayPtr(o *Obj) *ArrayIndexPtr {
	if p, ok := s.arrayPtrs[o]; ok {
		return p
	}
	p := &ArrayIndexPtr{obj: o}
	s.arrayPtrs[o] = p
	return p
}

func (s *Solver) ptsOf(p Pointer) *PointsToSet {
	if set, ok := s.pts[p]; ok {
		return set
	}
	set := new(PointsToSet)
	s.pts[p] = set
	return set
}

// addReachable records m and replays its statements once.
func (s *Solver) addReachable(m *ir.Method) {
	if !s.cg.AddReachableMethod(m) {
		return
	}
	if s.Log != nil {
		fmt.Fprintf(s.Log, "pta: reachable %s\n", m)
	}
	for _, stmt := range m.Stmts() {
		switch stmt := stmt.(type) {
		case *ir.New:
			obj := s.heap.objOf(stmt)
			s.wl.add(s.varPtr(stmt.LValue()), newPointsToSet(obj.id))
		case *ir.Copy:
			s.addPFGEdge(s.varPtr(stmt.RHS()), s.varPtr(stmt.LValue()))
		case *ir.LoadField:
			if stmt.Field().IsStatic() {
				s.addPFGEdge(s.staticPtr(stmt.Field()), s.varPtr(stmt.LValue()))
			}
		case *ir.StoreField:
			if stmt.Field().IsStatic() {
				s.addPFGEdge(s.varPtr(stmt.RHS()), s.staticPtr(stmt.Field()))
			}
		case *ir.Invoke:
			if stmt.Exp().Kind() == ir.CallStatic {
				ref := stmt.Exp().Ref()
				if callee := ref.Class().DeclaredMethod(ref.Subsignature()); callee != nil {
					s.addCallEdge(ir.CallStatic, stmt, callee)
				}
			}
		}
	}
}

// addCallEdge records a resolved call and, when the edge is new, makes
// the callee reachable and wires argument and return flows.
func (s *Solver) addCallEdge(kind ir.CallKind, cs *ir.Invoke, callee *ir.Method) {
	e := callgraph.Edge[*ir.Invoke, *ir.Method]{Kind: kind, CallSite: cs, Callee: callee}
	if !s.cg.AddEdge(e) {
		return
	}
	s.addReachable(callee)
	args := cs.Exp().Args()
	for i, param := range callee.Params() {
		s.addPFGEdge(s.varPtr(args[i]), s.varPtr(param))
	}
	if result := cs.Def(); result != nil {
		for _, r := range callee.ReturnVars() {
			s.addPFGEdge(s.varPtr(r), s.varPtr(result))
		}
	}
}

// addPFGEdge inserts a flow edge and seeds the target with the source's
// current points-to set.
func (s *Solver) addPFGEdge(src, tgt Pointer) {
	if !s.pfg.addEdge(src, tgt) {
		return
	}
	if pts := s.ptsOf(src); !pts.IsEmpty() {
		s.wl.add(tgt, pts.Copy())
	}
}

func (s *Solver) analyze() {
	for !s.wl.empty() {
		e := s.wl.poll()
		delta := s.propagate(e.ptr, e.pts)
		vp, ok := e.ptr.(*VarPtr)
		if !ok || delta.IsEmpty() {
			continue
		}
		v := vp.Var()
		for _, id := range delta.IDs() {
			o := s.heap.obj(id)
			for _, st := range v.StoreFields() {
				s.addPFGEdge(s.varPtr(st.RHS()), s.instFieldPtr(o, st.Field()))
			}
			for _, ld := range v.LoadFields() {
				s.addPFGEdge(s.instFieldPtr(o, ld.Field()), s.varPtr(ld.LValue()))
			}
			for _, st := range v.StoreArrays() {
				s.addPFGEdge(s.varPtr(st.RHS()), s.arrayPtr(o))
			}
			for _, ld := range v.LoadArrays() {
				s.addPFGEdge(s.arrayPtr(o), s.varPtr(ld.LValue()))
			}
			s.processCall(v, o)
		}
	}
}

// propagate folds pts into p's set and forwards the growth to p's
// successors, returning the delta actually new to p.
func (s *Solver) propagate(p Pointer, pts *PointsToSet) *PointsToSet {
	delta := pts.DiffFrom(s.ptsOf(p))
	if delta.IsEmpty() {
		return delta
	}
	if s.Log != nil {
		fmt.Fprintf(s.Log, "pta: propagate %s += %s\n", p, delta)
	}
	s.ptsOf(p).AddAll(delta)
	for _, succ := range s.pfg.succsOf(p) {
		s.wl.add(succ, delta)
	}
	return delta
}

// processCall resolves the instance calls through v for a newly seen
// receiver object.
func (s *Solver) processCall(v *ir.Var, recv *Obj) {
	for _, cs := range v.Invokes() {
		callee := s.resolveInstance(cs, recv)
		if callee == nil {
			continue
		}
		s.wl.add(s.varPtr(callee.This()), newPointsToSet(recv.id))
		s.addCallEdge(cs.Exp().Kind(), cs, callee)
	}
}

// resolveInstance dispatches an instance call for a concrete receiver
// object. Special calls bind against the declared class; virtual,
// interface, and dynamic calls dispatch on the receiver's type.
// Unresolvable dispatch yields nil and the call site is skipped.
func (s *Solver) resolveInstance(cs *ir.Invoke, recv *Obj) *ir.Method {
	h := s.world.Hierarchy()
	ref := cs.Exp().Ref()
	if cs.Exp().Kind() == ir.CallSpecial {
		return h.Dispatch(ref.Class(), ref.Subsignature())
	}
	cls := recv.Type().Class()
	if cls == nil {
		return nil // array receivers have no dispatchable methods
	}
	return h.Dispatch(cls, ref.Subsignature())
}

// A Result is the read-only projection of a finished
// context-insensitive analysis.
type Result struct {
	solver *Solver
}

// CallGraph returns the on-the-fly call graph.
func (r *Result) CallGraph() *callgraph.Graph[*ir.Invoke, *ir.Method] {
	return r.solver.cg
}

func (r *Result) objsOf(p Pointer) []*Obj {
	set, ok := r.solver.pts[p]
	if !ok {
		return nil
	}
	ids := set.IDs()
	out := make([]*Obj, len(ids))
	for i, id := range ids {
		out[i] = r.solver.heap.obj(id)
	}
	return out
}

// PointsToSet returns the abstract objects v may point to, in object id
// order.
func (r *Result) PointsToSet(v *ir.Var) []*Obj {
	if p, ok := r.solver.varPtrs[v]; ok {
		return r.objsOf(p)
	}
	return nil
}

// PointsToSetOfField projects the points-to set of o.f.
func (r *Result) PointsToSetOfField(o *Obj, f *ir.Field) []*Obj {
	if p, ok := r.solver.fieldPtrs[instFieldKey{o, f}]; ok {
		return r.objsOf(p)
	}
	return nil
}

// PointsToSetOfStaticField projects the points-to set of a static
// field.
func (r *Result) PointsToSetOfStaticField(f *ir.Field) []*Obj {
	if p, ok := r.solver.staticPtrs[f]; ok {
		return r.objsOf(p)
	}
	return nil
}

// PointsToSetOfArray projects the points-to set of o's array cell.
func (r *Result) PointsToSetOfArray(o *Obj) []*Obj {
	if p, ok := r.solver.arrayPtrs[o]; ok {
		return r.objsOf(p)
	}
	return nil
}

// Objs returns every abstract object created during the analysis, in id
// order.
func (r *Result) Objs() []*Obj {
	out := make([]*Obj, len(r.solver.heap.arena))
	copy(out, r.solver.heap.arena)
	return out
}

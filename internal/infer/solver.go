package infer

// StepState is a complete solver checkpoint: a full value-copy snapshot of
// bindings, the AST type map, overload selections, conversion relations,
// the failed-constraint marker, and the constraint list with each entry's
// isActive bit. It shares no aliases with the live System, so mutations
// during an attempt never leak across alternatives.
type StepState struct {
	bindings  *Bindings
	store     *Store
	nodeTypes map[Location]Type
}

// checkpoint saves the system's current state.
func (s *System) checkpoint() StepState {
	nt := make(map[Location]Type, len(s.NodeTypes))
	for k, v := range s.NodeTypes {
		nt[k] = v
	}
	return StepState{
		bindings:  s.Bindings.clone(),
		store:     s.Store.clone(),
		nodeTypes: nt,
	}
}

// restore loads a previously-saved checkpoint back into the system, scope-
// bound to be called on every exit path of a solver step's attempt.
func (s *System) restore(st StepState) {
	s.Bindings = st.bindings
	s.Store = st.store
	s.Bindings.onRebind = s.Store.Activate
	s.NodeTypes = make(map[Location]Type, len(st.nodeTypes))
	for k, v := range st.nodeTypes {
		s.NodeTypes[k] = v
	}
}

// SolveWork accumulates every solution found across the whole backtracking
// search, owned by the outermost ComponentStep call.
type SolveWork struct {
	Solutions []*Solution
}

// Solve runs the three-level backtracking search to completion and returns
// every solution found (the checker consumes the first; the reference
// design does not rank solutions).
func (s *System) Solve() *SolveWork {
	w := &SolveWork{}
	s.componentStep(w)
	return w
}

// componentStep: simplify; if failed, no solution in this subtree. Else
// find the best PotentialBindings and any Disjunction entry, and recurse
// into whichever exists (Disjunction takes priority); if neither, either
// report underconstrained (free variables remain) or snapshot a Solution.
func (s *System) componentStep(w *SolveWork) bool {
	if s.maxDepth > 0 {
		if s.depth >= s.maxDepth {
			return false
		}
		s.depth++
		defer func() { s.depth-- }()
	}

	if !s.Simplify() {
		return false
	}

	if disj := s.firstDisjunction(); disj != nil {
		return s.disjunctionStep(w, disj)
	}

	if best, ok := s.bestPotentialBindings(); ok {
		return s.typeVariableStep(w, best)
	}

	if len(s.freeVariables()) > 0 {
		return false // underconstrained
	}

	w.Solutions = append(w.Solutions, s.snapshot())
	return true
}

func (s *System) firstDisjunction() *Entry {
	for _, e := range s.Store.Entries() {
		if _, ok := e.C.(*DisjunctionConstraint); ok {
			return e
		}
	}
	return nil
}

// typeVariableStep tries each candidate binding for the chosen variable in
// turn, checkpointing and restoring around each attempt.
func (s *System) typeVariableStep(w *SolveWork, pb PotentialBindings) bool {
	anySolved := false
	for _, b := range pb.Bindings {
		st := s.checkpoint()
		s.Store.Add(&BindConstraint{Left: pb.Var, Right: b.Type}, true)
		if s.Simplify() {
			if s.componentStep(w) {
				anySolved = true
			}
		}
		s.restore(st)
	}
	return anySolved
}

// disjunctionStep removes the disjunction entry (restored on exit via the
// checkpoint) and tries each alternative constraint in turn.
func (s *System) disjunctionStep(w *SolveWork, disj *Entry) bool {
	d := disj.C.(*DisjunctionConstraint)
	anySolved := false
	for _, alt := range d.Alternatives {
		st := s.checkpoint()
		// restore swaps in a cloned store, so after the first attempt the
		// disjunction's entry is found by id rather than by pointer.
		for _, e := range s.Store.Entries() {
			if e.id == disj.id {
				s.Store.Remove(e)
				break
			}
		}

		switch s.simplifyConstraint(alt) {
		case solved:
			// nothing more to add
		case ambiguous:
			s.Store.Add(alt, false)
		case failure:
			s.Store.MarkFailed(disj)
		}

		if s.Simplify() {
			if s.componentStep(w) {
				anySolved = true
			}
		}
		s.restore(st)
	}
	return anySolved
}

package infer

// simplifyConversion is "simplify(kind, L, R, conversion)" from the spec: it
// dispatches to the conversion-specific matcher (_simplify) and, on
// success, records the proof as a ConversionRelation for apply to consult.
func (s *System) simplifyConversion(kind Kind, l, r Type, conv ConversionTag) solveResult {
	res := s.applyConversion(kind, l, r, conv)
	if res == solved {
		s.Store.RecordRelation(ConversionRelation{Conv: conv, Left: l, Right: r})
	}
	return res
}

// applyConversion is "_simplify" dispatched by conversion tag.
func (s *System) applyConversion(kind Kind, l, r Type, conv ConversionTag) solveResult {
	switch conv {
	case DeepEquality:
		return s.matchDeepEqualityTypes(l, r)
	case ValueToOptional:
		ro, ok := r.(*Optional)
		if !ok {
			return failure
		}
		left := l
		if lo, ok := l.(*Optional); ok {
			left = lo
		}
		return s.matchTypes(kind, left, ro.Wrapped, decompositionOptions)
	case OptionalToOptional:
		lo, lok := l.(*Optional)
		ro, rok := r.(*Optional)
		if !lok || !rok {
			return failure
		}
		return s.matchTypes(kind, lo.Wrapped, ro.Wrapped, decompositionOptions)
	default:
		return failure
	}
}

// simplifyConstraint is "simplify(constraint)": the per-kind dispatch used
// by the worklist loop.
func (s *System) simplifyConstraint(c Constraint) solveResult {
	switch cc := c.(type) {
	case *BindConstraint:
		if cc.Conv == nil {
			return s.matchTypes(Bind, cc.Left, cc.Right, s.topLevelOptions)
		}
		return s.simplifyConversion(Bind, cc.Left, cc.Right, *cc.Conv)

	case *ConversionConstraint:
		if cc.Conv == nil {
			return s.matchTypes(Conversion, cc.Left, cc.Right, s.topLevelOptions)
		}
		return s.simplifyConversion(Conversion, cc.Left, cc.Right, *cc.Conv)

	case *ApplicableFunctionConstraint:
		right := s.Bindings.Simplify(cc.Right)
		if _, isVar := right.(*TypeVariable); isVar {
			return ambiguous
		}
		rfn, ok := right.(*Function)
		if !ok {
			return failure
		}
		paramRes := s.matchTypes(Conversion, cc.Left.Parameter, rfn.Parameter, decompositionOptions)
		resultRes := s.matchTypes(Bind, cc.Left.Result, rfn.Result, decompositionOptions)
		if paramRes == failure || resultRes == failure {
			return failure
		}
		return solved

	case *BindOverloadConstraint:
		s.Store.ResolveOverload(cc.Left, cc.Choice, cc.Location)
		return solved

	case *DisjunctionConstraint:
		// A disjunction cannot be simplified in place; exploring its
		// alternatives is the solver's job.
		return ambiguous

	default:
		panic("infer: unknown constraint kind during simplify")
	}
}

// Simplify runs the worklist loop: while the system is not failed and some
// entry is active, take one active entry, deactivate it, and simplify it.
// Returns false iff the system is now failed.
func (s *System) Simplify() bool {
	for !s.Store.IsFailed() {
		e := s.Store.FirstActive()
		if e == nil {
			break
		}
		e.Active = false
		switch s.simplifyConstraint(e.C) {
		case failure:
			s.Store.Remove(e)
			s.Store.MarkFailed(e)
		case solved:
			s.Store.Remove(e)
		case ambiguous:
			// Leave it in place, now inactive; continue with the rest of
			// the worklist.
		}
	}
	return !s.Store.IsFailed()
}

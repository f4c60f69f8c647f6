package infer

// matchTypes is the workhorse of simplification: it simplifies both sides
// against current bindings, then dispatches on whether either side is a
// free type variable (the "variable case") or both are concrete ("fixed-
// fixed case").
func (s *System) matchTypes(kind Kind, l, r Type, opts matchOptions) solveResult {
	l = s.Bindings.Simplify(l)
	r = s.Bindings.Simplify(r)

	lv, lIsVar := l.(*TypeVariable)
	rv, rIsVar := r.(*TypeVariable)

	if lIsVar || rIsVar {
		return s.matchVariableCase(kind, l, r, lv, lIsVar, rv, rIsVar, opts)
	}
	return s.matchFixedTypes(kind, l, r, opts)
}

func (s *System) matchVariableCase(kind Kind, l, r Type, lv *TypeVariable, lIsVar bool, rv *TypeVariable, rIsVar bool, opts matchOptions) solveResult {
	if lIsVar && rIsVar && lv.Id == rv.Id {
		return solved
	}

	if kind == Bind {
		switch {
		case lIsVar && rIsVar:
			if err := s.Bindings.Merge(lv, rv); err != nil {
				panic(err)
			}
			return solved
		case lIsVar:
			return s.matchTypesBind(lv, r)
		default:
			return s.matchTypesBind(rv, l)
		}
	}

	// Conversion with a variable on either side: ambiguous. Re-introduce a
	// fresh (inactive) entry to retry once the variable is bound, if
	// permitted; else fail the branch outright rather than defer a guess.
	if opts.generateConstraintsWhenAmbiguous {
		s.Store.Add(&ConversionConstraint{Left: l, Right: r, Conv: nil}, false)
		return solved
	}
	return failure
}

// matchTypesBind performs the occurs-check then assigns v := t.
func (s *System) matchTypesBind(v *TypeVariable, t Type) solveResult {
	rep := s.Bindings.Representative(v)
	if err := s.Bindings.Assign(rep, t); err != nil {
		if _, ok := err.(*OccursCheckError); ok {
			s.occursCheckFailed = true
		}
		return failure
	}
	return solved
}

// candidateConversion is one possible proof that l converts to r, recorded
// before the matcher commits to it (directly, if unique, or via a
// Disjunction when several apply).
type candidateConversion struct {
	conv ConversionTag
	kind Kind // the kind the generated sub-constraint should carry
}

// matchFixedTypes decomposes two concrete (non-variable) types by shape.
func (s *System) matchFixedTypes(kind Kind, l, r Type, opts matchOptions) solveResult {
	if lf, ok := l.(*Function); ok {
		if rf, ok := r.(*Function); ok {
			return s.matchFunctionTypes(kind, lf, rf)
		}
	}

	var candidates []candidateConversion

	lp, lIsPrim := l.(*Primitive)
	rp, rIsPrim := r.(*Primitive)
	_, lIsOpt := l.(*Optional)
	_, rIsOpt := r.(*Optional)

	switch {
	case lIsPrim && rIsPrim && lp.Name == rp.Name:
		candidates = append(candidates, candidateConversion{DeepEquality, Bind})
	case lIsOpt && rIsOpt:
		candidates = append(candidates, candidateConversion{DeepEquality, Bind})
	}

	if kind == Conversion {
		if lIsOpt && rIsOpt {
			candidates = append(candidates, candidateConversion{OptionalToOptional, Conversion})
		}
		if len(LookThroughAllOptionals(l)) < len(LookThroughAllOptionals(r)) {
			candidates = append(candidates, candidateConversion{ValueToOptional, Conversion})
		}
	}

	switch len(candidates) {
	case 0:
		return failure
	case 1:
		c := candidates[0].conv
		return s.simplifyConversion(kind, l, r, c)
	default:
		alts := make([]Constraint, len(candidates))
		for i, c := range candidates {
			conv := c.conv
			if c.kind == Bind {
				alts[i] = &BindConstraint{Left: l, Right: r, Conv: &conv}
			} else {
				alts[i] = &ConversionConstraint{Left: l, Right: r, Conv: &conv}
			}
		}
		if _, err := s.Store.AddDisjunction(alts); err != nil {
			panic(err)
		}
		return solved
	}
}

// matchFunctionTypes matches two concrete function types: contravariant in
// the parameter (for Conversion; invariant for Bind, since subKind=kind
// there), covariant in the result. Both sub-matches run with
// decompositionOptions, so an ambiguous sub-result would be a precondition
// violation given both sides are already concrete Functions.
func (s *System) matchFunctionTypes(kind Kind, l, r *Function) solveResult {
	paramResult := s.matchTypes(kind, r.Parameter, l.Parameter, decompositionOptions)
	resultResult := s.matchTypes(kind, l.Result, r.Result, decompositionOptions)
	if paramResult == failure || resultResult == failure {
		return failure
	}
	if paramResult == ambiguous || resultResult == ambiguous {
		panic("infer: ambiguous sub-match during function decomposition")
	}
	return solved
}

// matchDeepEqualityTypes structurally unifies l and r with no conversion
// permitted: primitives by name, optionals by recursing Bind on wrapped
// types, everything else fails.
func (s *System) matchDeepEqualityTypes(l, r Type) solveResult {
	switch lt := l.(type) {
	case *Primitive:
		if rt, ok := r.(*Primitive); ok && lt.Name == rt.Name {
			return solved
		}
		return failure
	case *Optional:
		if rt, ok := r.(*Optional); ok {
			return s.matchTypes(Bind, lt.Wrapped, rt.Wrapped, decompositionOptions)
		}
		return failure
	default:
		return failure
	}
}

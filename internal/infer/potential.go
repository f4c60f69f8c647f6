package infer

// bindingRank orders PotentialBinding kinds from most to least determined:
// Exact beats Subtype/Supertype when picking the "best" variable to try
// next.
type bindingRank int

const (
	Exact bindingRank = iota
	Subtype
	Supertype
)

// PotentialBinding is one candidate concrete type a free variable could be
// bound to, inferred from a constraint mentioning it.
type PotentialBinding struct {
	Rank bindingRank
	Type Type
}

// PotentialBindings collects every candidate binding the solver found for
// one free representative variable by scanning the current constraints.
type PotentialBindings struct {
	Var      *TypeVariable
	Bindings []PotentialBinding
}

// computePotentialBindings scans every entry's constraint for occurrences
// of v's representative and extracts exact/subtype/supertype candidates.
// Supertype candidates are coalesced pairwise via Join when that join is
// defined and not TopAny or Optional<TopAny>.
func (s *System) computePotentialBindings(v *TypeVariable) PotentialBindings {
	rep := s.Bindings.Representative(v)
	var exact, sub []Type
	var super []Type

	consider := func(c Constraint) {
		switch cc := c.(type) {
		case *BindConstraint:
			if isRepOf(s, cc.Left, rep) {
				if t, ok := concreteOf(s, cc.Right); ok {
					exact = append(exact, t)
				}
			} else if isRepOf(s, cc.Right, rep) {
				if t, ok := concreteOf(s, cc.Left); ok {
					exact = append(exact, t)
				}
			}
		case *ConversionConstraint:
			if isRepOf(s, cc.Left, rep) {
				if t, ok := concreteOf(s, cc.Right); ok {
					sub = append(sub, t)
				}
			} else if isRepOf(s, cc.Right, rep) {
				if t, ok := concreteOf(s, cc.Left); ok {
					super = append(super, t)
				}
			}
		}
	}
	for _, e := range s.Store.Entries() {
		consider(e.C)
	}

	super = coalesceByJoin(super)

	var out []PotentialBinding
	for _, t := range exact {
		out = append(out, PotentialBinding{Rank: Exact, Type: t})
	}
	for _, t := range sub {
		out = append(out, PotentialBinding{Rank: Subtype, Type: t})
	}
	for _, t := range super {
		out = append(out, PotentialBinding{Rank: Supertype, Type: t})
	}
	return PotentialBindings{Var: rep, Bindings: out}
}

func isRepOf(s *System, t Type, rep *TypeVariable) bool {
	v, ok := s.Bindings.Simplify(t).(*TypeVariable)
	return ok && v.Id == rep.Id
}

func concreteOf(s *System, t Type) (Type, bool) {
	simplified := s.Bindings.Simplify(t)
	if _, isVar := simplified.(*TypeVariable); isVar {
		return nil, false
	}
	return simplified, true
}

// coalesceByJoin repeatedly merges pairs of supertype bindings whose join
// is defined and useful (not TopAny, not Optional<TopAny>).
func coalesceByJoin(types []Type) []Type {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(types); i++ {
			for j := i + 1; j < len(types); j++ {
				j2 := Join(types[i], types[j])
				if isUsefulJoin(j2) {
					types[i] = j2
					types = append(types[:j], types[j+1:]...)
					changed = true
					break
				}
			}
			if changed {
				break
			}
		}
	}
	return types
}

func isUsefulJoin(t Type) bool {
	if Equals(t, TopAny) {
		return false
	}
	if opt, ok := t.(*Optional); ok && Equals(opt.Wrapped, TopAny) {
		return false
	}
	return true
}

// freeVariables returns every representative free variable mentioned by
// any active-or-inactive constraint still in the store or by any recorded
// node type.
func (s *System) freeVariables() []*TypeVariable {
	seen := make(map[int]bool)
	var out []*TypeVariable
	var walk func(Constraint)
	add := func(t Type) {
		for _, v := range ContainedTypeVariables(t) {
			rep := s.Bindings.Representative(v)
			if !s.Bindings.IsFree(rep) {
				continue
			}
			if !seen[rep.Id] {
				seen[rep.Id] = true
				out = append(out, rep)
			}
		}
	}
	walk = func(c Constraint) {
		switch cc := c.(type) {
		case *BindConstraint:
			add(cc.Left)
			add(cc.Right)
		case *ConversionConstraint:
			add(cc.Left)
			add(cc.Right)
		case *ApplicableFunctionConstraint:
			add(cc.Left)
			add(cc.Right)
		case *BindOverloadConstraint:
			add(cc.Left)
		case *DisjunctionConstraint:
			for _, alt := range cc.Alternatives {
				walk(alt)
			}
		}
	}
	for _, e := range s.Store.Entries() {
		walk(e.C)
	}
	for k, t := range s.NodeTypes {
		_ = k
		add(t)
	}
	return out
}

// bestPotentialBindings picks, among every free representative variable
// currently mentioned by the constraint set, the one with the most
// narrowly determined candidate set: fewest candidates, Exact before
// Subtype/Supertype. Returns ok=false if no free variable has any
// candidate binding at all.
func (s *System) bestPotentialBindings() (PotentialBindings, bool) {
	var best PotentialBindings
	found := false
	for _, v := range s.freeVariables() {
		pb := s.computePotentialBindings(v)
		if len(pb.Bindings) == 0 {
			continue
		}
		if !found || isBetter(pb, best) {
			best = pb
			found = true
		}
	}
	return best, found
}

func isBetter(a, b PotentialBindings) bool {
	if len(a.Bindings) != len(b.Bindings) {
		return len(a.Bindings) < len(b.Bindings)
	}
	return bestRank(a) < bestRank(b)
}

func bestRank(pb PotentialBindings) bindingRank {
	r := Supertype
	for _, b := range pb.Bindings {
		if b.Rank < r {
			r = b.Rank
		}
	}
	return r
}

package infer

import "fmt"

// Entry is an identity-equatable wrapper around a Constraint carrying the
// worklist's active/inactive bit.
type Entry struct {
	id     int
	C      Constraint
	Active bool
}

// Store holds the ordered set of constraint entries currently in the
// system, plus the record of chosen overloads and applied conversions.
type Store struct {
	entries    []*Entry
	nextID     int
	selections map[Location]OverloadSelection
	relations  []ConversionRelation

	failed *Entry
}

// NewStore creates an empty constraint store.
func NewStore() *Store {
	return &Store{selections: make(map[Location]OverloadSelection)}
}

// IsFailed reports whether a constraint has been marked as unsatisfiable in
// this store.
func (s *Store) IsFailed() bool { return s.failed != nil }

// FailedConstraint returns the entry that failed, or nil.
func (s *Store) FailedConstraint() *Entry { return s.failed }

// MarkFailed records the failing entry.
func (s *Store) MarkFailed(e *Entry) { s.failed = e }

// ClearFailed resets failure state. Restoring a checkpoint does not call
// it: restore swaps in the checkpoint's own copy of the store.
func (s *Store) ClearFailed() { s.failed = nil }

// Add appends a new entry for c with the given active bit and returns it.
// Callers add constraints introduced by decomposition, and constraints
// re-introduced after an ambiguous match, inactive (a later rebind of a
// variable they mention re-activates them); constraints that must run on
// the next worklist pass are added active.
func (s *Store) Add(c Constraint, active bool) *Entry {
	s.nextID++
	e := &Entry{id: s.nextID, C: c, Active: active}
	s.entries = append(s.entries, e)
	return e
}

// Remove deletes e from the store.
func (s *Store) Remove(e *Entry) {
	for i, cur := range s.entries {
		if cur == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Entries returns the current entry list (read-only use expected).
func (s *Store) Entries() []*Entry { return s.entries }

// FirstActive returns the first active entry, or nil if none are active.
func (s *Store) FirstActive() *Entry {
	for _, e := range s.entries {
		if e.Active {
			return e
		}
	}
	return nil
}

// Activate flips every entry mentioning any of the given TypeVariable ids
// back to active; used when a variable's binding changes so constraints
// that mention it get re-simplified.
func (s *Store) Activate(ids []int) {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for _, e := range s.entries {
		if !e.Active && mentions(e.C, set) {
			e.Active = true
		}
	}
}

func mentions(c Constraint, ids map[int]bool) bool {
	has := func(t Type) bool {
		for _, v := range ContainedTypeVariables(t) {
			if ids[v.Id] {
				return true
			}
		}
		return false
	}
	switch cc := c.(type) {
	case *BindConstraint:
		return has(cc.Left) || has(cc.Right)
	case *ConversionConstraint:
		return has(cc.Left) || has(cc.Right)
	case *ApplicableFunctionConstraint:
		return has(cc.Left) || has(cc.Right)
	case *BindOverloadConstraint:
		return ids[cc.Left.Id]
	case *DisjunctionConstraint:
		for _, alt := range cc.Alternatives {
			if mentions(alt, ids) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AddDisjunction adds a choice-point constraint over alts. A single
// alternative is added directly (no disjunction wrapper needed); zero
// alternatives is a precondition violation (callers must not construct an
// empty overload set).
func (s *Store) AddDisjunction(alts []Constraint) (*Entry, error) {
	switch len(alts) {
	case 0:
		return nil, fmt.Errorf("infer: addDisjunction precondition violated: no alternatives")
	case 1:
		return s.Add(alts[0], true), nil
	default:
		return s.Add(&DisjunctionConstraint{Alternatives: alts}, false), nil
	}
}

// Relations returns every conversion relation recorded so far.
func (s *Store) Relations() []ConversionRelation { return s.relations }

// RecordRelation appends a proven conversion relation.
func (s *Store) RecordRelation(r ConversionRelation) {
	s.relations = append(s.relations, r)
}

// Selection returns the overload chosen for loc, if any.
func (s *Store) Selection(loc Location) (OverloadSelection, bool) {
	sel, ok := s.selections[loc]
	return sel, ok
}

// Selections returns the full location -> selection map.
func (s *Store) Selections() map[Location]OverloadSelection { return s.selections }

// ResolveOverload binds a reference's tentative type variable to the chosen
// declaration's interface type (via a new Bind constraint) and records the
// selection keyed by location. The Bind constraint is added active: nothing
// else will ever touch tv to trigger its re-activation, so it must run on
// its own first pass through the worklist.
func (s *Store) ResolveOverload(tv *TypeVariable, choice OverloadChoice, location Location) *Entry {
	opened := choice.Decl.InterfaceType()
	s.selections[location] = OverloadSelection{Choice: choice, OpenedType: opened}
	return s.Add(&BindConstraint{Left: tv, Right: opened}, true)
}

// clone produces a full value-copy snapshot of the store (no alias sharing
// with s), used by solver checkpoint/restore.
func (s *Store) clone() *Store {
	cp := &Store{
		nextID:     s.nextID,
		selections: make(map[Location]OverloadSelection, len(s.selections)),
		relations:  append([]ConversionRelation(nil), s.relations...),
	}
	cp.entries = make([]*Entry, len(s.entries))
	byID := make(map[int]*Entry, len(s.entries))
	for i, e := range s.entries {
		ce := *e
		cp.entries[i] = &ce
		byID[ce.id] = &ce
	}
	if s.failed != nil {
		cp.failed = byID[s.failed.id]
	}
	for k, v := range s.selections {
		cp.selections[k] = v
	}
	return cp
}

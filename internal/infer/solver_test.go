package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBindsExactConstraintDirectly(t *testing.T) {
	s := NewSystem()
	v := s.Fresh()
	s.SetTypeOf("node", v)
	s.Store.Add(&BindConstraint{Left: v, Right: &Primitive{Name: "Int"}}, true)

	work := s.Solve()
	require.Len(t, work.Solutions, 1)

	sol := work.Solutions[0]
	assert.True(t, Equals(sol.FixedType(v), &Primitive{Name: "Int"}))
}

func TestSolveFailsWhenNoSolutionExists(t *testing.T) {
	s := NewSystem()
	s.Store.Add(&BindConstraint{Left: &Primitive{Name: "Int"}, Right: &Primitive{Name: "Bool"}}, true)

	work := s.Solve()
	assert.Len(t, work.Solutions, 0)
}

func TestSolveExploresOverloadDisjunctionAndKeepsViableBranches(t *testing.T) {
	s := NewSystem()
	v := s.Fresh()

	intFn := testDecl{name: "f", typ: &Function{Parameter: &Primitive{Name: "Int"}, Result: &Primitive{Name: "Int"}}}
	optFn := testDecl{name: "f", typ: &Function{Parameter: &Primitive{Name: "Int"}, Result: &Optional{Wrapped: &Primitive{Name: "Int"}}}}

	_, err := s.Store.AddDisjunction([]Constraint{
		&BindOverloadConstraint{Left: v, Choice: OverloadChoice{Decl: intFn}, Location: "ref"},
		&BindOverloadConstraint{Left: v, Choice: OverloadChoice{Decl: optFn}, Location: "ref"},
	})
	require.NoError(t, err)

	// Require the call result to be exactly Int? -- only the optFn overload
	// can satisfy this, but both remain viable until this constraint forces
	// a choice.
	resultTV := s.Fresh()
	s.Store.Add(&ApplicableFunctionConstraint{
		Left:  &Function{Parameter: &Primitive{Name: "Int"}, Result: resultTV},
		Right: v,
	}, true)
	s.Store.Add(&BindConstraint{Left: resultTV, Right: &Optional{Wrapped: &Primitive{Name: "Int"}}}, true)

	work := s.Solve()
	require.Len(t, work.Solutions, 1)

	sel, ok := work.Solutions[0].Selections["ref"]
	require.True(t, ok)
	assert.True(t, Equals(sel.OpenedType, optFn.typ))
}

func TestCheckpointRestoreRoundTripsFullState(t *testing.T) {
	s := NewSystem()
	v1 := s.Fresh()
	v2 := s.Fresh()
	require.NoError(t, s.Bindings.Merge(v1, v2))
	s.SetTypeOf("node", v1)
	s.Store.Add(&BindConstraint{Left: v1, Right: &Primitive{Name: "Int"}}, true)

	st := s.checkpoint()

	// Mutate the live system after the checkpoint.
	v3 := s.Fresh()
	require.NoError(t, s.Bindings.Assign(v3, &Primitive{Name: "Bool"}))
	s.SetTypeOf("other", v3)
	s.Store.Add(&BindConstraint{Left: v3, Right: &Primitive{Name: "Bool"}}, true)

	s.restore(st)

	assert.True(t, s.Bindings.IsFree(v3))
	_, ok := s.TypeOf("other")
	assert.False(t, ok)
	assert.Equal(t, 1, len(s.Store.Entries()))

	// The restored store must still re-activate on rebind.
	restored := s.Store.Entries()[0]
	restored.Active = false
	require.NoError(t, s.Bindings.Assign(s.Bindings.Representative(v1), &Primitive{Name: "Int"}))
	assert.True(t, restored.Active)
}

// With the default (GenerateConstraintsWhenAmbiguous: true), a top-level
// Conversion constraint between a free variable and a concrete type defers
// (re-queues) until typeVariableStep supplies a candidate binding, and the
// search succeeds. With the flag off, the same ambiguous match fails the
// branch outright instead of deferring, so no solution is found even
// though the exact same candidate binding would have satisfied it.
func TestGenerateConstraintsWhenAmbiguousGatesTopLevelConversionDeferral(t *testing.T) {
	build := func(s *System) *TypeVariable {
		v := s.Fresh()
		s.Store.Add(&ConversionConstraint{Left: v, Right: &Primitive{Name: "Int"}}, true)
		return v
	}

	permissive := NewSystemWithOptions(SolverOptions{GenerateConstraintsWhenAmbiguous: true})
	v := build(permissive)
	work := permissive.Solve()
	require.Len(t, work.Solutions, 1)
	assert.True(t, Equals(work.Solutions[0].FixedType(v), &Primitive{Name: "Int"}))

	strict := NewSystemWithOptions(SolverOptions{GenerateConstraintsWhenAmbiguous: false})
	build(strict)
	work = strict.Solve()
	assert.Len(t, work.Solutions, 0)
}

// MaxDepth bounds nested componentStep recursion as a safety valve. Two
// variables whose only candidate bindings come from Conversion constraints
// each force one extra level of typeVariableStep/componentStep recursion
// beyond the outer call, so resolving both needs depth 3. A MaxDepth of 2
// must cut the search off before a solution is found, even though the
// unbounded (default) search finds one.
func TestMaxDepthBoundsSolverRecursion(t *testing.T) {
	build := func(s *System) (*TypeVariable, *TypeVariable) {
		v1 := s.Fresh()
		v2 := s.Fresh()
		s.Store.Add(&ConversionConstraint{Left: v1, Right: &Primitive{Name: "Int"}}, true)
		s.Store.Add(&ConversionConstraint{Left: v2, Right: &Primitive{Name: "Int"}}, true)
		return v1, v2
	}

	unbounded := NewSystemWithOptions(SolverOptions{GenerateConstraintsWhenAmbiguous: true, MaxDepth: 0})
	build(unbounded)
	work := unbounded.Solve()
	require.Len(t, work.Solutions, 1)

	bounded := NewSystemWithOptions(SolverOptions{GenerateConstraintsWhenAmbiguous: true, MaxDepth: 2})
	build(bounded)
	work = bounded.Solve()
	assert.Len(t, work.Solutions, 0)
}

func TestBestPotentialBindingsReportsMergedRepresentative(t *testing.T) {
	s := NewSystem()
	v := s.Fresh()
	w := s.Fresh()

	// w's only candidate binding comes from Conversion(w, Int); Bind(v, w)
	// merges the two, so the candidate is reported against their shared
	// representative, v (the smaller id).
	s.Store.Add(&ConversionConstraint{Left: w, Right: &Primitive{Name: "Int"}}, true)
	s.Store.Add(&BindConstraint{Left: v, Right: w}, true)

	ok := s.Simplify()
	require.True(t, ok)

	best, found := s.bestPotentialBindings()
	require.True(t, found)
	assert.Equal(t, v.Id, best.Var.Id)
}

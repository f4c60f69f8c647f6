package infer

// System is the mutable constraint system for one expression's type-check:
// bindings, the constraint store, and the tentative/fixed type recorded for
// each visited AST node. A System is created per expression type-check and
// discarded (or consulted read-only) once apply completes.
type System struct {
	Bindings  *Bindings
	Store     *Store
	NodeTypes map[Location]Type
	Vars      *VariableSource

	topLevelOptions matchOptions
	maxDepth        int
	depth           int

	// occursCheckFailed latches once any Assign attempt in this System's
	// whole search fails its occurs check, even in a branch later abandoned
	// by backtracking -- checkpoint/restore never clears it, since it
	// reports on the search as a whole, not the live bindings snapshot.
	occursCheckFailed bool
}

// OccursCheckFailed reports whether any binding attempt during this
// System's search violated the occurs check. Consulted by the checker to
// distinguish an infinite-type failure from ordinary unsatisfiability when
// no solution is found.
func (s *System) OccursCheckFailed() bool {
	return s.occursCheckFailed
}

// SolverOptions is the subset of internal/config.Solver the core itself
// consults: the ambiguity policy for top-level Bind/Conversion constraints
// (as opposed to the decomposition sub-matches, which always use
// decompositionOptions because ambiguity there is a precondition
// violation) and the recursion-depth safety valve on top of the natural
// (disjunctions x free variables x decomposition depth) search bound.
type SolverOptions struct {
	GenerateConstraintsWhenAmbiguous bool
	MaxDepth                         int
}

// DefaultSolverOptions matches internal/config.Default().Solver.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{GenerateConstraintsWhenAmbiguous: true, MaxDepth: 0}
}

// NewSystem creates an empty constraint system with the default solver
// options, wiring the bindings table's rebind notifications to re-activate
// constraints in the store.
func NewSystem() *System {
	return NewSystemWithOptions(DefaultSolverOptions())
}

// NewSystemWithOptions creates an empty constraint system configured by
// opts (normally sourced from a loaded internal/config.Config).
func NewSystemWithOptions(opts SolverOptions) *System {
	s := &System{
		Bindings:        NewBindings(),
		Store:           NewStore(),
		NodeTypes:       make(map[Location]Type),
		Vars:            &VariableSource{},
		topLevelOptions: matchOptions{generateConstraintsWhenAmbiguous: opts.GenerateConstraintsWhenAmbiguous},
		maxDepth:        opts.MaxDepth,
	}
	s.Bindings.onRebind = s.Store.Activate
	return s
}

// Fresh allocates a new type variable.
func (s *System) Fresh() *TypeVariable { return s.Vars.Fresh() }

// TypeOf returns the tentative type recorded for an AST node during
// constraint generation. Apply writes fixed types onto the nodes
// themselves, not into this map.
func (s *System) TypeOf(node Location) (Type, bool) {
	t, ok := s.NodeTypes[node]
	return t, ok
}

// SetTypeOf records the tentative type computed for an AST node during
// constraint generation.
func (s *System) SetTypeOf(node Location, t Type) {
	s.NodeTypes[node] = t
}

// matchOptions controls whether an ambiguous match may re-introduce a fresh
// store entry instead of failing outright.
type matchOptions struct {
	generateConstraintsWhenAmbiguous bool
}

// decompositionOptions is used for the parameter/result sub-matches inside
// matchFunctionTypes: an ambiguous outcome there is a precondition
// violation, not a real possibility, because both sides have already been
// established to be concrete Function types.
var decompositionOptions = matchOptions{generateConstraintsWhenAmbiguous: true}

// solveResult is the internal three-valued result used only inside
// matching/simplification; never surfaced outside this package.
type solveResult int

const (
	solved solveResult = iota
	ambiguous
	failure
)

// Solution is the immutable snapshot produced on search success.
type Solution struct {
	Bindings   *Bindings
	NodeTypes  map[Location]Type
	Selections map[Location]OverloadSelection
	Relations  []ConversionRelation
}

// FixedType resolves t fully against the solution's bindings.
func (sol *Solution) FixedType(t Type) Type {
	return sol.Bindings.Simplify(t)
}

// snapshot captures sol from the system's current state (after a
// ComponentStep determines every free variable is resolved).
func (s *System) snapshot() *Solution {
	nodeTypes := make(map[Location]Type, len(s.NodeTypes))
	for k, v := range s.NodeTypes {
		nodeTypes[k] = s.Bindings.Simplify(v)
	}
	selections := make(map[Location]OverloadSelection, len(s.Store.selections))
	for k, v := range s.Store.selections {
		selections[k] = v
	}
	return &Solution{
		Bindings:   s.Bindings.clone(),
		NodeTypes:  nodeTypes,
		Selections: selections,
		Relations:  append([]ConversionRelation(nil), s.Store.relations...),
	}
}

package infer

// Kind tags whether a relation between two types must hold by structural
// equality (Bind) or by one-way implicit convertibility (Conversion).
type Kind int

const (
	Bind Kind = iota
	Conversion
)

func (k Kind) String() string {
	if k == Bind {
		return "Bind"
	}
	return "Conversion"
}

// ConversionTag names one of the three implicit conversions the core knows
// how to prove and, later, to render as wrapper nodes during apply.
type ConversionTag int

const (
	DeepEquality ConversionTag = iota
	ValueToOptional
	OptionalToOptional
)

func (c ConversionTag) String() string {
	switch c {
	case DeepEquality:
		return "DeepEquality"
	case ValueToOptional:
		return "ValueToOptional"
	case OptionalToOptional:
		return "OptionalToOptional"
	default:
		return "?"
	}
}

// Location identifies the AST node a constraint or overload selection is
// attached to. The core treats it opaquely (by identity); callers pass
// AST node pointers, which satisfy this trivially.
type Location = interface{}

// ValueDecl is the minimal capability the core needs from a resolved
// declaration: its name (for diagnostics) and its interface type. AST-level
// declarations structurally satisfy this without the core importing ast.
type ValueDecl interface {
	Name() string
	InterfaceType() Type
}

// OverloadChoice names one candidate declaration in an overload set.
type OverloadChoice struct {
	Decl ValueDecl
}

// OverloadSelection records which candidate was chosen for a given
// overloaded reference, and the type at which it was introduced (before any
// later substitution narrowed it further).
type OverloadSelection struct {
	Choice     OverloadChoice
	OpenedType Type
}

// Constraint is the tagged variant of relations the solver can simplify.
type Constraint interface {
	isConstraint()
}

// BindConstraint demands structural equality between Left and Right, up to
// variable binding. Conv, if non-nil, names a conversion already chosen for
// this constraint (set when a Disjunction alternative collapses to Bind).
type BindConstraint struct {
	Left, Right Type
	Conv        *ConversionTag
}

func (*BindConstraint) isConstraint() {}

// ConversionConstraint demands that Left be convertible to Right.
type ConversionConstraint struct {
	Left, Right Type
	Conv        *ConversionTag
}

func (*ConversionConstraint) isConstraint() {}

// ApplicableFunctionConstraint demands that Right (the callee) can be
// called with signature Left. Kept deferred (ambiguous) while Right is
// still a type variable; once Right is a concrete Function it is
// decomposed, and any other concrete Right fails.
type ApplicableFunctionConstraint struct {
	Left  *Function
	Right Type
}

func (*ApplicableFunctionConstraint) isConstraint() {}

// BindOverloadConstraint resolves an overload: picking Choice for the
// reference at Location binds Left (that reference's tentative type
// variable) to Choice's interface type.
type BindOverloadConstraint struct {
	Left     *TypeVariable
	Choice   OverloadChoice
	Location Location
}

func (*BindOverloadConstraint) isConstraint() {}

// DisjunctionConstraint demands that exactly one of Alternatives holds.
type DisjunctionConstraint struct {
	Alternatives []Constraint
}

func (*DisjunctionConstraint) isConstraint() {}

// ConversionRelation records that a specific conversion was proven to hold
// between two concrete types, for apply's coerce() to consult later.
type ConversionRelation struct {
	Conv        ConversionTag
	Left, Right Type
}

// Package ast defines the node shapes the type-inference core consumes and
// mutates. Lexing, parsing, and source-location tracking live outside this
// package; ast only carries what the checker needs to generate constraints
// over and rewrite in place.
package ast

import "github.com/foldlang/tinfer/internal/infer"

// Node is the base interface implemented by every AST node the core visits.
type Node interface {
	nodeTag()
}

// Expr is any node that produces a value and therefore carries a tentative
// type during constraint generation and a fixed type after apply.
type Expr interface {
	Node
	// Type returns the node's type, nil until set. Apply sets it on every
	// expression; constraint generation already records a VariableDecl's
	// tentative type on the node.
	Type() infer.Type
	SetType(infer.Type)
}

// ValueDecl is anything resolve() can hand back: a variable or function
// declaration with a fixed interface type. It also satisfies infer.ValueDecl
// structurally, so the core can record OverloadChoice.Decl without this
// package importing infer's constraint types or infer importing ast.
type ValueDecl interface {
	Node
	Name() string
	// InterfaceType is the declaration's type as known prior to type
	// checking any particular reference to it (e.g. a function's
	// parameter/result types, or a variable's annotated/inferred type).
	InterfaceType() infer.Type
}

// DeclContext is the external name-resolution capability the core consumes.
// Zero targets means the name is undeclared.
type DeclContext interface {
	Resolve(name string) []ValueDecl
}

type exprBase struct {
	typ infer.Type
}

func (e *exprBase) Type() infer.Type     { return e.typ }
func (e *exprBase) SetType(t infer.Type) { e.typ = t }

// SourceFile holds the ordered top-level statements of one translation
// unit. It is a driver node: it never appears during constraint generation
// or apply (those operate per-statement).
type SourceFile struct {
	Statements []Node
}

func (*SourceFile) nodeTag() {}

// VariableDecl is `let name[: typeAnnotation] = initializer`.
type VariableDecl struct {
	exprBase
	VarName        string
	TypeAnnotation infer.Type // nil if omitted
	Initializer    Expr       // nil if omitted
}

func (*VariableDecl) nodeTag()       {}
func (v *VariableDecl) Name() string { return v.VarName }
func (v *VariableDecl) InterfaceType() infer.Type {
	if v.TypeAnnotation != nil {
		return v.TypeAnnotation
	}
	return v.Type()
}

// FunctionDecl is a named function with a fixed interface type. Its body is
// out of scope for this core (only its interface participates in
// constraint generation, via DeclRef/OverloadedDeclRef).
type FunctionDecl struct {
	FuncName  string
	Interface infer.Type
}

func (*FunctionDecl) nodeTag()                   {}
func (f *FunctionDecl) Name() string             { return f.FuncName }
func (f *FunctionDecl) InterfaceType() infer.Type { return f.Interface }

// IntegerLiteral is a literal integer constant; always types to Int.
type IntegerLiteral struct {
	exprBase
	Value int64
}

func (*IntegerLiteral) nodeTag() {}

// DeclRef references a single already-resolved declaration.
type DeclRef struct {
	exprBase
	Target ValueDecl
}

func (*DeclRef) nodeTag() {}

// OverloadedDeclRef references a set of candidate declarations; the solver
// picks exactly one via a Disjunction of BindOverload constraints.
type OverloadedDeclRef struct {
	exprBase
	Targets []ValueDecl
}

func (*OverloadedDeclRef) nodeTag() {}

// Dispose breaks the cycle between an OverloadedDeclRef and the
// declarations it references, so the owning arena can tear the AST down
// without the targets slice keeping them alive.
func (o *OverloadedDeclRef) Dispose() {
	o.Targets = nil
}

// UnresolvedDeclRef is a name that pre-check has not yet turned into a
// DeclRef or OverloadedDeclRef. It must never survive pre-check and must
// never appear during constraint generation.
type UnresolvedDeclRef struct {
	exprBase
	RefName string
}

func (*UnresolvedDeclRef) nodeTag() {}

// Call applies callee to argument.
type Call struct {
	exprBase
	Callee   Expr
	Argument Expr
}

func (*Call) nodeTag() {}

// Closure is `{ parameter[: returnType] in body }`. The core only supports
// single-expression bodies (spec §9: multi-statement bodies are deferred);
// body holds the statement list as written, and Closure.Tail() is the
// expression constraint generation and apply operate on.
type Closure struct {
	exprBase
	Parameter  *VariableDecl
	ReturnType infer.Type // nil if omitted
	Body       []Node
}

func (*Closure) nodeTag() {}

// Tail returns the closure's final body statement as an expression, or nil
// if the body is empty or does not end in an expression.
func (c *Closure) Tail() Expr {
	if len(c.Body) == 0 {
		return nil
	}
	last, ok := c.Body[len(c.Body)-1].(Expr)
	if !ok {
		return nil
	}
	return last
}

// SetTail replaces the closure's final body statement, used by apply to
// insert a coercion wrapper around it.
func (c *Closure) SetTail(e Expr) {
	if len(c.Body) == 0 {
		return
	}
	c.Body[len(c.Body)-1] = e
}

// --- Implicit-conversion wrapper nodes, injected only during apply ---

// InjectIntoOptional wraps a plain value as an optional-typed value.
type InjectIntoOptional struct {
	exprBase
	Sub Expr
}

func (*InjectIntoOptional) nodeTag() {}

// BindOptional unwraps an optional value, short-circuiting on nil; pairs
// with OptionalEvaluation. Never produced by constraint generation.
type BindOptional struct {
	exprBase
	Sub Expr
}

func (*BindOptional) nodeTag() {}

// OptionalEvaluation re-wraps the result of a BindOptional chain as
// optional. Never produced by constraint generation.
type OptionalEvaluation struct {
	exprBase
	Sub Expr
}

func (*OptionalEvaluation) nodeTag() {}

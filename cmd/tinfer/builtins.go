package main

import (
	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/infer"
)

// builtinDecl is a fixed, already-typed top-level declaration (a "function"
// from the driver's point of view, though the core only ever looks at its
// interface type).
type builtinDecl struct {
	name string
	typ  infer.Type
}

func (b *builtinDecl) nodeTag()                  {}
func (b *builtinDecl) Name() string              { return b.name }
func (b *builtinDecl) InterfaceType() infer.Type { return b.typ }

// rootContext resolves the handful of builtins the CLI ships with,
// including the overload pair from spec §8 scenario 4.
type rootContext struct {
	byName map[string][]ast.ValueDecl
}

func newRootContext() *rootContext {
	intT := &infer.Primitive{Name: "Int"}
	optIntT := &infer.Optional{Wrapped: intT}

	rc := &rootContext{byName: make(map[string][]ast.ValueDecl)}
	rc.add(&builtinDecl{name: "id", typ: &infer.Function{Parameter: intT, Result: intT}})
	// The solver tries overload alternatives in resolve() order and keeps
	// the first solution found (it never ranks solutions against each
	// other). Declaring the Int?-returning candidate first means a call
	// site expecting Int? resolves to it directly, with no implicit
	// ValueToOptional wrapper inserted around an Int-returning match that
	// would otherwise also be constraint-satisfiable.
	rc.add(&builtinDecl{name: "f", typ: &infer.Function{Parameter: intT, Result: optIntT}})
	rc.add(&builtinDecl{name: "f", typ: &infer.Function{Parameter: intT, Result: intT}})
	return rc
}

func (rc *rootContext) add(d ast.ValueDecl) {
	name := ast.NormalizeName(d.Name())
	rc.byName[name] = append(rc.byName[name], d)
}

func (rc *rootContext) Resolve(name string) []ast.ValueDecl {
	return rc.byName[ast.NormalizeName(name)]
}

// Define registers a newly type-checked top-level `let` so later statements
// can reference it by name. It replaces any earlier same-name declaration
// rather than overloading it (this CLI only overloads its builtins).
func (rc *rootContext) Define(d ast.ValueDecl) {
	rc.byName[ast.NormalizeName(d.Name())] = []ast.ValueDecl{d}
}

// Package check implements the type checker façade: per-statement driver
// that pre-checks, generates constraints, solves, and applies the solution
// by rewriting the expression tree in place.
package check

import (
	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/config"
	"github.com/foldlang/tinfer/internal/infer"
)

// DidGenerateConstraints is invoked after constraint generation for an
// expression, before solving; the typical use is wiring up an outer
// constraint (e.g. a variable declaration's initializer -> declared type).
type DidGenerateConstraints func(sys *infer.System, expr ast.Expr, ctx ast.DeclContext)

// DidFoundSolution is invoked once the first solution has been selected,
// before apply runs; it may return a replacement root expression.
type DidFoundSolution func(sys *infer.System, sol *infer.Solution, expr ast.Expr, ctx ast.DeclContext) ast.Expr

// DidApplySolution is invoked after the solution has been applied to expr;
// it may return a replacement root expression.
type DidApplySolution func(sys *infer.System, sol *infer.Solution, expr ast.Expr, ctx ast.DeclContext) ast.Expr

// Callbacks bundles the optional typeCheckExpr callback surface.
type Callbacks struct {
	DidGenerateConstraints DidGenerateConstraints
	DidFoundSolution       DidFoundSolution
	DidApplySolution       DidApplySolution
}

// TypeChecker type-checks every statement of a SourceFile in order,
// mutating nodes in place.
type TypeChecker struct {
	Source *ast.SourceFile
	Root   ast.DeclContext

	// Solver configures the constraint solver's ambiguity policy and
	// recursion-depth guard. Defaults to config.Default().Solver when the
	// checker is built via NewTypeChecker.
	Solver config.Solver
}

// NewTypeChecker creates a checker for source, resolving top-level names
// against root, using the default solver configuration.
func NewTypeChecker(source *ast.SourceFile, root ast.DeclContext) *TypeChecker {
	return NewTypeCheckerWithConfig(source, root, config.Default())
}

// NewTypeCheckerWithConfig creates a checker whose solver is tuned by cfg
// (typically loaded via config.Load).
func NewTypeCheckerWithConfig(source *ast.SourceFile, root ast.DeclContext, cfg *config.Config) *TypeChecker {
	return &TypeChecker{Source: source, Root: root, Solver: cfg.Solver}
}

func (tc *TypeChecker) newSystem() *infer.System {
	return infer.NewSystemWithOptions(infer.SolverOptions{
		GenerateConstraintsWhenAmbiguous: tc.Solver.GenerateConstraintsWhenAmbiguous,
		MaxDepth:                         tc.Solver.MaxDepth,
	})
}

// TypeCheck type-checks every statement in order. It fails with
// ErrorKind NoSolution when no satisfying assignment exists, or
// NameUnresolved during pre-check.
func (tc *TypeChecker) TypeCheck() error {
	for i, stmt := range tc.Source.Statements {
		checked, err := tc.checkStatement(stmt)
		if err != nil {
			return err
		}
		tc.Source.Statements[i] = checked
	}
	return nil
}

func (tc *TypeChecker) checkStatement(stmt ast.Node) (ast.Node, error) {
	switch s := stmt.(type) {
	case *ast.VariableDecl:
		return s, tc.checkVariableDecl(s)
	case ast.Expr:
		return tc.typeCheckExpr(s, tc.Root, Callbacks{})
	default:
		return nil, errInvalidNodeDuringGeneration("top-level statement")
	}
}

// checkVariableDecl implements spec §4.7's VariableDecl-with-initializer
// wiring: once the initializer's constraints are generated, a Conversion
// constraint ties its type to the declaration's (annotated or inferred)
// type.
func (tc *TypeChecker) checkVariableDecl(vd *ast.VariableDecl) error {
	if _, err := precheck(vd, tc.Root); err != nil {
		return err
	}

	sys := tc.newSystem()
	gen := &generator{sys: sys}

	declTy, err := gen.generateNode(vd)
	if err != nil {
		return err
	}
	if vd.Initializer != nil {
		initTy, err := gen.generateNode(vd.Initializer)
		if err != nil {
			return err
		}
		sys.Store.Add(&infer.ConversionConstraint{Left: initTy, Right: declTy}, true)
	}

	work := sys.Solve()
	if len(work.Solutions) == 0 {
		if sys.OccursCheckFailed() {
			return errOccursCheck()
		}
		return errNoSolution()
	}
	sol := work.Solutions[0]

	app := &applier{sol: sol}
	if _, err := app.applyNode(vd); err != nil {
		return err
	}

	if definer, ok := tc.Root.(interface{ Define(ast.ValueDecl) }); ok {
		definer.Define(vd)
	}
	return nil
}

// typeCheckExpr pre-checks, generates, solves, and applies a solution for a
// single expression, invoking whichever callbacks are set.
func (tc *TypeChecker) typeCheckExpr(expr ast.Expr, ctx ast.DeclContext, cb Callbacks) (ast.Expr, error) {
	checked, err := precheck(expr, ctx)
	if err != nil {
		return nil, err
	}
	expr = checked.(ast.Expr)

	sys := tc.newSystem()
	gen := &generator{sys: sys}

	if _, err := gen.generateNode(expr); err != nil {
		return nil, err
	}
	if cb.DidGenerateConstraints != nil {
		cb.DidGenerateConstraints(sys, expr, ctx)
	}

	work := sys.Solve()
	if len(work.Solutions) == 0 {
		if sys.OccursCheckFailed() {
			return nil, errOccursCheck()
		}
		return nil, errNoSolution()
	}
	sol := work.Solutions[0]

	if cb.DidFoundSolution != nil {
		expr = cb.DidFoundSolution(sys, sol, expr, ctx)
	}

	app := &applier{sol: sol}
	applied, err := app.applyNode(expr)
	if err != nil {
		return nil, err
	}
	expr = applied.(ast.Expr)

	if cb.DidApplySolution != nil {
		expr = cb.DidApplySolution(sys, sol, expr, ctx)
	}
	return expr, nil
}

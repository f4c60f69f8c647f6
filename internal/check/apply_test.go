package check

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/infer"
)

// wrapperShape describes one node in a coerced expression's wrapper chain,
// outermost first, for structural diffing with go-cmp (type equality alone
// wouldn't catch a wrapper carrying the wrong depth's type, which is
// exactly the failure mode coerceOptionalToOptional's wrap loop can hit).
type wrapperShape struct {
	Kind string
	Type string
}

func shapeOf(e ast.Expr) []wrapperShape {
	var out []wrapperShape
	for {
		out = append(out, wrapperShape{Kind: kindName(e), Type: e.Type().String()})
		sub, ok := subOf(e)
		if !ok {
			return out
		}
		e = sub
	}
}

func kindName(e ast.Expr) string {
	switch e.(type) {
	case *ast.InjectIntoOptional:
		return "InjectIntoOptional"
	case *ast.BindOptional:
		return "BindOptional"
	case *ast.OptionalEvaluation:
		return "OptionalEvaluation"
	case *ast.IntegerLiteral:
		return "IntegerLiteral"
	default:
		return "other"
	}
}

func subOf(e ast.Expr) (ast.Expr, bool) {
	switch n := e.(type) {
	case *ast.InjectIntoOptional:
		return n.Sub, true
	case *ast.BindOptional:
		return n.Sub, true
	case *ast.OptionalEvaluation:
		return n.Sub, true
	default:
		return nil, false
	}
}

// Regression test for coerceOptionalToOptional's pure-lifting wrap loop:
// lifting a bare Int two optional layers (Int -> Int??) must produce two
// InjectIntoOptional wrappers, the outer one typed Int?? and the inner one
// typed Int?, innermost-first construction order.
func TestCoerceOptionalToOptionalLiftsTwoLevelsInnermostFirst(t *testing.T) {
	intT := &infer.Primitive{Name: "Int"}
	optIntT := &infer.Optional{Wrapped: intT}
	optOptIntT := &infer.Optional{Wrapped: optIntT}

	lit := &ast.IntegerLiteral{Value: 1}
	lit.SetType(intT)

	a := &applier{sol: &infer.Solution{NodeTypes: map[infer.Location]infer.Type{}}}
	got, err := a.coerceOptionalToOptional(lit, optOptIntT)
	require.NoError(t, err)

	want := []wrapperShape{
		{Kind: "InjectIntoOptional", Type: "Int??"},
		{Kind: "InjectIntoOptional", Type: "Int?"},
		{Kind: "IntegerLiteral", Type: "Int"},
	}
	if diff := cmp.Diff(want, shapeOf(got)); diff != "" {
		t.Errorf("wrapper chain shape mismatch (-want +got):\n%s", diff)
	}
}

// Same check carried one level further (Int -> Int???) to make sure the
// indexing fix generalizes past the two-level case the bug report traced
// by hand.
func TestCoerceOptionalToOptionalLiftsThreeLevelsInnermostFirst(t *testing.T) {
	intT := &infer.Primitive{Name: "Int"}
	optIntT := &infer.Optional{Wrapped: intT}
	optOptIntT := &infer.Optional{Wrapped: optIntT}
	optOptOptIntT := &infer.Optional{Wrapped: optOptIntT}

	lit := &ast.IntegerLiteral{Value: 1}
	lit.SetType(intT)

	a := &applier{sol: &infer.Solution{NodeTypes: map[infer.Location]infer.Type{}}}
	got, err := a.coerceOptionalToOptional(lit, optOptOptIntT)
	require.NoError(t, err)

	want := []wrapperShape{
		{Kind: "InjectIntoOptional", Type: "Int???"},
		{Kind: "InjectIntoOptional", Type: "Int??"},
		{Kind: "InjectIntoOptional", Type: "Int?"},
		{Kind: "IntegerLiteral", Type: "Int"},
	}
	if diff := cmp.Diff(want, shapeOf(got)); diff != "" {
		t.Errorf("wrapper chain shape mismatch (-want +got):\n%s", diff)
	}
}

// coerceOptionalToOptional's bind/evaluate sandwich fallback runs whenever
// the pure-lift fast path doesn't apply (here: equal depth on both sides,
// so toDepth > fromDepth is false). The wrapped value is unwrapped via
// BindOptional, recursively coerced (a no-op here, since Int already
// equals Int), then re-wrapped via InjectIntoOptional/OptionalEvaluation.
func TestCoerceOptionalToOptionalFallsBackToBindEvaluateSandwich(t *testing.T) {
	intT := &infer.Primitive{Name: "Int"}
	fromOptIntT := &infer.Optional{Wrapped: intT}
	toOptIntT := &infer.Optional{Wrapped: intT}

	lit := &ast.IntegerLiteral{Value: 1}
	lit.SetType(fromOptIntT)

	a := &applier{sol: &infer.Solution{NodeTypes: map[infer.Location]infer.Type{}}}
	got, err := a.coerceOptionalToOptional(lit, toOptIntT)
	require.NoError(t, err)

	want := []wrapperShape{
		{Kind: "OptionalEvaluation", Type: "Int?"},
		{Kind: "InjectIntoOptional", Type: "Int?"},
		{Kind: "BindOptional", Type: "Int"},
		{Kind: "IntegerLiteral", Type: "Int?"},
	}
	if diff := cmp.Diff(want, shapeOf(got)); diff != "" {
		t.Errorf("wrapper chain shape mismatch (-want +got):\n%s", diff)
	}
}

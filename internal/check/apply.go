package check

import (
	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/infer"
)

// applier walks a solved expression tree post-order, assigning each node's
// final type from the solution and rewriting it to insert implicit
// conversions.
type applier struct {
	sol *infer.Solution
}

// applyNode sets node.Type from the solution (except for the driver/
// pre-check-only kinds, which must not appear here either) and returns the
// possibly-rewritten node.
func (a *applier) applyNode(node ast.Node) (ast.Node, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		a.setType(n, n)
		return n, nil

	case *ast.DeclRef:
		a.setType(n, n)
		return n, nil

	case *ast.OverloadedDeclRef:
		a.setType(n, n)
		// Replace the overload set with a reference to the chosen candidate.
		sel, ok := a.sol.Selections[n]
		if !ok {
			return n, nil
		}
		target, ok := sel.Choice.Decl.(ast.ValueDecl)
		if !ok {
			return n, nil
		}
		ref := &ast.DeclRef{Target: target}
		ref.SetType(n.Type())
		return ref, nil

	case *ast.VariableDecl:
		a.setType(n, n)
		if n.Initializer != nil {
			applied, err := a.applyNode(n.Initializer)
			if err != nil {
				return nil, err
			}
			n.Initializer = applied.(ast.Expr)

			coerced, err := a.coerce(n.Initializer, n.Type())
			if err != nil {
				return nil, err
			}
			n.Initializer = coerced
		}
		return n, nil

	case *ast.Call:
		calleeApplied, err := a.applyNode(n.Callee)
		if err != nil {
			return nil, err
		}
		n.Callee = calleeApplied.(ast.Expr)
		argApplied, err := a.applyNode(n.Argument)
		if err != nil {
			return nil, err
		}
		n.Argument = argApplied.(ast.Expr)
		a.setType(n, n)

		if fn, ok := n.Callee.Type().(*infer.Function); ok {
			coerced, err := a.coerce(n.Argument, fn.Parameter)
			if err != nil {
				return nil, err
			}
			n.Argument = coerced
		}
		return n, nil

	case *ast.Closure:
		a.setType(n.Parameter, n.Parameter)
		tail := n.Tail()
		if tail != nil {
			applied, err := a.applyNode(tail)
			if err != nil {
				return nil, err
			}
			n.SetTail(applied.(ast.Expr))
		}
		a.setType(n, n)

		if n.ReturnType != nil {
			if newTail := n.Tail(); newTail != nil {
				coerced, err := a.coerce(newTail, n.ReturnType)
				if err != nil {
					return nil, err
				}
				n.SetTail(coerced)
			}
		}
		return n, nil

	case *ast.SourceFile:
		return nil, errInvalidNodeDuringApply("SourceFile")
	case *ast.FunctionDecl:
		return nil, errInvalidNodeDuringApply("FunctionDecl")
	case *ast.UnresolvedDeclRef:
		return nil, errInvalidNodeDuringApply("UnresolvedDeclRef")

	default:
		return nil, errInvalidNodeDuringApply("unknown node")
	}
}

func (a *applier) setType(n ast.Expr, key infer.Location) {
	t, ok := a.sol.NodeTypes[key]
	if !ok {
		t = a.sol.FixedType(n.Type())
	}
	n.SetType(t)
}

// coerce rewrites expr to produce a value of type toTy, inserting implicit-
// conversion wrapper nodes as needed. See spec §4.8.
func (a *applier) coerce(expr ast.Expr, toTy infer.Type) (ast.Expr, error) {
	fromTy := expr.Type()
	if infer.Equals(fromTy, toTy) {
		return expr, nil
	}

	for _, rel := range a.sol.Relations {
		if infer.Equals(rel.Left, fromTy) && infer.Equals(rel.Right, toTy) {
			switch rel.Conv {
			case infer.DeepEquality:
				return expr, nil
			case infer.ValueToOptional:
				toOpt, ok := toTy.(*infer.Optional)
				if !ok {
					return nil, errCoerceUnconsidered(fromTy.String(), toTy.String())
				}
				inner, err := a.coerce(expr, toOpt.Wrapped)
				if err != nil {
					return nil, err
				}
				wrapped := &ast.InjectIntoOptional{Sub: inner}
				wrapped.SetType(toTy)
				return wrapped, nil
			case infer.OptionalToOptional:
				return a.coerceOptionalToOptional(expr, toTy)
			}
		}
	}

	if toOpt, ok := toTy.(*infer.Optional); ok {
		if _, fromIsOpt := fromTy.(*infer.Optional); fromIsOpt {
			return a.coerceOptionalToOptional(expr, toTy)
		}
		inner, err := a.coerce(expr, toOpt.Wrapped)
		if err != nil {
			return nil, err
		}
		wrapped := &ast.InjectIntoOptional{Sub: inner}
		wrapped.SetType(toTy)
		return wrapped, nil
	}

	return nil, errCoerceUnconsidered(fromTy.String(), toTy.String())
}

// coerceOptionalToOptional implements the pure-lifting fast path (wrap N
// times) when toTy simply adds optional layers around fromTy, and falls
// back to the bind/evaluate sandwich otherwise.
func (a *applier) coerceOptionalToOptional(expr ast.Expr, toTy infer.Type) (ast.Expr, error) {
	fromTy := expr.Type()
	fromChain := infer.LookThroughAllOptionals(fromTy)
	toChain := infer.LookThroughAllOptionals(toTy)
	fromDepth := len(fromChain)
	toDepth := len(toChain)

	if toDepth > fromDepth && infer.Equals(toChain[toDepth-fromDepth], fromTy) {
		diff := toDepth - fromDepth
		cur := expr
		for i := 0; i < diff; i++ {
			wrapTy := toChain[diff-1-i]
			wrapped := &ast.InjectIntoOptional{Sub: cur}
			wrapped.SetType(wrapTy)
			cur = wrapped
		}
		return cur, nil
	}

	fromOpt, ok := fromTy.(*infer.Optional)
	if !ok {
		return nil, errCoerceUnconsidered(fromTy.String(), toTy.String())
	}
	toOpt, ok := toTy.(*infer.Optional)
	if !ok {
		return nil, errCoerceUnconsidered(fromTy.String(), toTy.String())
	}

	bind := &ast.BindOptional{Sub: expr}
	bind.SetType(fromOpt.Wrapped)

	inner, err := a.coerce(bind, toOpt.Wrapped)
	if err != nil {
		return nil, err
	}

	inject := &ast.InjectIntoOptional{Sub: inner}
	inject.SetType(toTy)

	eval := &ast.OptionalEvaluation{Sub: inject}
	eval.SetType(toTy)
	return eval, nil
}

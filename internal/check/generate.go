package check

import (
	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/infer"
)

// generator walks an expression tree post-order, recording each visited
// node's tentative type into the constraint system and adding whatever
// constraints that node's shape demands.
type generator struct {
	sys *infer.System
}

// generateNode visits node and returns its tentative type. SourceFile,
// FunctionDecl, UnresolvedDeclRef, and the three conversion-wrapper nodes
// must never reach generation; encountering one fails generation, per §4.7.
func (g *generator) generateNode(node ast.Node) (infer.Type, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		t := &infer.Primitive{Name: "Int"}
		g.sys.SetTypeOf(n, t)
		return t, nil

	case *ast.VariableDecl:
		var t infer.Type
		if n.TypeAnnotation != nil {
			t = n.TypeAnnotation
		} else {
			t = g.sys.Fresh()
		}
		g.sys.SetTypeOf(n, t)
		// Recorded on the node itself (not only the constraint system's
		// map) so that a later DeclRef resolving to this declaration --
		// e.g. a closure body referencing its own parameter -- can read
		// the same tentative type back via InterfaceType() within this
		// same generation pass.
		n.SetType(t)
		return t, nil

	case *ast.DeclRef:
		tv := g.sys.Fresh()
		g.sys.SetTypeOf(n, tv)
		g.sys.Store.ResolveOverload(tv, infer.OverloadChoice{Decl: n.Target}, n)
		return tv, nil

	case *ast.OverloadedDeclRef:
		tv := g.sys.Fresh()
		g.sys.SetTypeOf(n, tv)
		alts := make([]infer.Constraint, len(n.Targets))
		for i, target := range n.Targets {
			alts[i] = &infer.BindOverloadConstraint{
				Left:     tv,
				Choice:   infer.OverloadChoice{Decl: target},
				Location: n,
			}
		}
		if _, err := g.sys.Store.AddDisjunction(alts); err != nil {
			return nil, err
		}
		return tv, nil

	case *ast.Call:
		calleeTy, err := g.generateNode(n.Callee)
		if err != nil {
			return nil, err
		}
		argTy, err := g.generateNode(n.Argument)
		if err != nil {
			return nil, err
		}
		tv := g.sys.Fresh()
		g.sys.Store.Add(&infer.ApplicableFunctionConstraint{
			Left:  &infer.Function{Parameter: argTy, Result: tv},
			Right: calleeTy,
		}, true)
		g.sys.SetTypeOf(n, tv)
		return tv, nil

	case *ast.Closure:
		paramTy, err := g.generateNode(n.Parameter)
		if err != nil {
			return nil, err
		}
		resultTy := n.ReturnType
		if resultTy == nil {
			resultTy = g.sys.Fresh()
		}
		tail := n.Tail()
		if tail == nil {
			return nil, errInvalidNodeDuringGeneration("Closure (empty or non-expression body)")
		}
		tailTy, err := g.generateNode(tail)
		if err != nil {
			return nil, err
		}
		g.sys.Store.Add(&infer.ConversionConstraint{Left: tailTy, Right: resultTy}, true)
		t := &infer.Function{Parameter: paramTy, Result: resultTy}
		g.sys.SetTypeOf(n, t)
		return t, nil

	case *ast.SourceFile:
		return nil, errInvalidNodeDuringGeneration("SourceFile")
	case *ast.FunctionDecl:
		return nil, errInvalidNodeDuringGeneration("FunctionDecl")
	case *ast.UnresolvedDeclRef:
		return nil, errInvalidNodeDuringGeneration("UnresolvedDeclRef")
	case *ast.InjectIntoOptional:
		return nil, errInvalidNodeDuringGeneration("InjectIntoOptional")
	case *ast.BindOptional:
		return nil, errInvalidNodeDuringGeneration("BindOptional")
	case *ast.OptionalEvaluation:
		return nil, errInvalidNodeDuringGeneration("OptionalEvaluation")

	default:
		return nil, errInvalidNodeDuringGeneration("unknown node")
	}
}

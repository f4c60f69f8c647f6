package check

import "github.com/foldlang/tinfer/internal/ast"

// chainContext extends a parent DeclContext with one extra binding (a
// closure's parameter), without mutating the parent.
type chainContext struct {
	parent ast.DeclContext
	name   string
	decl   ast.ValueDecl
}

func extend(parent ast.DeclContext, decl ast.ValueDecl) ast.DeclContext {
	return &chainContext{parent: parent, name: ast.NormalizeName(decl.Name()), decl: decl}
}

func (c *chainContext) Resolve(name string) []ast.ValueDecl {
	if ast.NormalizeName(name) == c.name {
		return []ast.ValueDecl{c.decl}
	}
	if c.parent != nil {
		return c.parent.Resolve(name)
	}
	return nil
}

// precheck replaces every UnresolvedDeclRef reachable from node with a
// resolved DeclRef or OverloadedDeclRef, recursing into subexpressions.
// Fails with NameUnresolved if a name has zero candidates in scope.
func precheck(node ast.Node, ctx ast.DeclContext) (ast.Node, error) {
	switch n := node.(type) {
	case *ast.UnresolvedDeclRef:
		targets := ctx.Resolve(ast.NormalizeName(n.RefName))
		switch len(targets) {
		case 0:
			return nil, errNameUnresolved(n.RefName)
		case 1:
			return &ast.DeclRef{Target: targets[0]}, nil
		default:
			return &ast.OverloadedDeclRef{Targets: targets}, nil
		}

	case *ast.IntegerLiteral, *ast.DeclRef, *ast.OverloadedDeclRef:
		return n, nil

	case *ast.Call:
		callee, err := precheck(n.Callee, ctx)
		if err != nil {
			return nil, err
		}
		n.Callee = callee.(ast.Expr)
		arg, err := precheck(n.Argument, ctx)
		if err != nil {
			return nil, err
		}
		n.Argument = arg.(ast.Expr)
		return n, nil

	case *ast.Closure:
		inner := extend(ctx, n.Parameter)
		for i, stmt := range n.Body {
			checked, err := precheck(stmt, inner)
			if err != nil {
				return nil, err
			}
			n.Body[i] = checked
		}
		return n, nil

	case *ast.VariableDecl:
		if n.Initializer != nil {
			init, err := precheck(n.Initializer, ctx)
			if err != nil {
				return nil, err
			}
			n.Initializer = init.(ast.Expr)
		}
		return n, nil

	default:
		return nil, errInvalidNodeDuringGeneration("unknown node during pre-check")
	}
}

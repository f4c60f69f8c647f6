package ast

import (
	"fmt"
	"strings"
)

// Print renders node as "(<NodeKind> attrs…)", the textual form used as the
// test oracle across the package (spec §6). Attribute order is stable per
// node kind. A node's "type" attribute renders as "type=?" until its type
// has been set.
func Print(node Node) string {
	if node == nil {
		return "nil"
	}
	switch n := node.(type) {
	case *SourceFile:
		parts := make([]string, len(n.Statements))
		for i, s := range n.Statements {
			parts[i] = Print(s)
		}
		return paren("SourceFile", strings.Join(parts, " "))

	case *VariableDecl:
		attrs := []string{fmt.Sprintf("name=%s", n.VarName)}
		if n.TypeAnnotation != nil {
			attrs = append(attrs, fmt.Sprintf("annotation=%s", n.TypeAnnotation))
		}
		attrs = append(attrs, typeAttr(n))
		if n.Initializer != nil {
			attrs = append(attrs, fmt.Sprintf("initializer=%s", Print(n.Initializer)))
		}
		return paren("VariableDecl", strings.Join(attrs, " "))

	case *FunctionDecl:
		return paren("FunctionDecl", fmt.Sprintf("name=%s interface=%s", n.FuncName, n.Interface))

	case *IntegerLiteral:
		return paren("IntegerLiteral", fmt.Sprintf("value=%d %s", n.Value, typeAttr(n)))

	case *DeclRef:
		return paren("DeclRef", fmt.Sprintf("target=%s %s", n.Target.Name(), typeAttr(n)))

	case *OverloadedDeclRef:
		names := make([]string, len(n.Targets))
		for i, t := range n.Targets {
			names[i] = t.Name()
		}
		return paren("OverloadedDeclRef", fmt.Sprintf("targets=[%s] %s", strings.Join(names, ","), typeAttr(n)))

	case *UnresolvedDeclRef:
		return paren("UnresolvedDeclRef", fmt.Sprintf("name=%s", n.RefName))

	case *Call:
		return paren("Call", fmt.Sprintf("callee=%s argument=%s %s", Print(n.Callee), Print(n.Argument), typeAttr(n)))

	case *Closure:
		body := make([]string, len(n.Body))
		for i, s := range n.Body {
			body[i] = Print(s)
		}
		attrs := fmt.Sprintf("parameter=%s body=[%s] %s", Print(n.Parameter), strings.Join(body, " "), typeAttr(n))
		return paren("Closure", attrs)

	case *InjectIntoOptional:
		return paren("InjectIntoOptional", fmt.Sprintf("sub=%s %s", Print(n.Sub), typeAttr(n)))

	case *BindOptional:
		return paren("BindOptional", fmt.Sprintf("sub=%s %s", Print(n.Sub), typeAttr(n)))

	case *OptionalEvaluation:
		return paren("OptionalEvaluation", fmt.Sprintf("sub=%s %s", Print(n.Sub), typeAttr(n)))

	default:
		return fmt.Sprintf("(Unknown %T)", node)
	}
}

func paren(kind, attrs string) string {
	attrs = strings.TrimSpace(attrs)
	if attrs == "" {
		return fmt.Sprintf("(%s)", kind)
	}
	return fmt.Sprintf("(%s %s)", kind, attrs)
}

func typeAttr(e Expr) string {
	if e.Type() == nil {
		return "type=?"
	}
	return fmt.Sprintf("type=%s", e.Type())
}

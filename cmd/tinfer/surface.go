package main

// A deliberately minimal hand-rolled recognizer for the tiny surface syntax
// in spec.md §8's end-to-end table: integer literals, identifiers, calls,
// one-parameter closures, and `let name[: type] = expr` declarations. This
// is a CLI convenience, not part of the type-inference core; it carries no
// constraint-system logic.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/foldlang/tinfer/internal/ast"
	"github.com/foldlang/tinfer/internal/infer"
)

type token struct {
	kind string // "ident", "int", "punct", "eof"
	text string
}

func lex(src string) []token {
	var toks []token
	r := []rune(src)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c):
			j := i
			for j < len(r) && unicode.IsDigit(r[j]) {
				j++
			}
			toks = append(toks, token{"int", string(r[i:j])})
			i = j
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(r) && (unicode.IsLetter(r[j]) || unicode.IsDigit(r[j]) || r[j] == '_') {
				j++
			}
			toks = append(toks, token{"ident", string(r[i:j])})
			i = j
		case c == '?':
			toks = append(toks, token{"punct", "?"})
			i++
		case strings.ContainsRune("():{}=", c):
			toks = append(toks, token{"punct", string(c)})
			i++
		default:
			i++
		}
	}
	toks = append(toks, token{"eof", ""})
	return toks
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}
func (p *parser) expectPunct(s string) error {
	t := p.next()
	if t.kind != "punct" || t.text != s {
		return fmt.Errorf("expected %q, got %q", s, t.text)
	}
	return nil
}

// parseStatement parses one top-level statement: `let name[: type] = expr`
// or a bare expr.
func parseStatement(src string) (ast.Node, error) {
	p := &parser{toks: lex(src)}
	if p.peek().kind == "ident" && p.peek().text == "let" {
		p.next()
		name := p.next()
		if name.kind != "ident" {
			return nil, fmt.Errorf("expected identifier after let")
		}
		var annotation infer.Type
		if p.peek().kind == "punct" && p.peek().text == ":" {
			p.next()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			annotation = t
		}
		if err := p.expectPunct("="); err != nil {
			return nil, err
		}
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.VariableDecl{VarName: name.text, TypeAnnotation: annotation, Initializer: init}, nil
	}
	return p.parseExpr()
}

func (p *parser) parseType() (infer.Type, error) {
	t := p.next()
	if t.kind != "ident" {
		return nil, fmt.Errorf("expected type name, got %q", t.text)
	}
	var ty infer.Type = &infer.Primitive{Name: t.text}
	for p.peek().kind == "punct" && p.peek().text == "?" {
		p.next()
		ty = &infer.Optional{Wrapped: ty}
	}
	return ty, nil
}

// parseExpr parses atom ("(" expr ")")*, i.e. left-associative single-
// argument calls.
func (p *parser) parseExpr() (ast.Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == "punct" && p.peek().text == "(" {
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		e = &ast.Call{Callee: e, Argument: arg}
	}
	return e, nil
}

func (p *parser) parseAtom() (ast.Expr, error) {
	t := p.next()
	switch {
	case t.kind == "int":
		v, _ := strconv.ParseInt(t.text, 10, 64)
		return &ast.IntegerLiteral{Value: v}, nil
	case t.kind == "ident":
		return &ast.UnresolvedDeclRef{RefName: t.text}, nil
	case t.kind == "punct" && t.text == "{":
		param := p.next()
		if param.kind != "ident" {
			return nil, fmt.Errorf("expected closure parameter name")
		}
		var returnType infer.Type
		if p.peek().kind == "punct" && p.peek().text == ":" {
			p.next()
			rt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			returnType = rt
		}
		inWord := p.next()
		if inWord.kind != "ident" || inWord.text != "in" {
			return nil, fmt.Errorf("expected 'in' in closure")
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct("}"); err != nil {
			return nil, err
		}
		return &ast.Closure{
			Parameter:  &ast.VariableDecl{VarName: param.text},
			ReturnType: returnType,
			Body:       []ast.Node{body},
		}, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", t.text)
	}
}

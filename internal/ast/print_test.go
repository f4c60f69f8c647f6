package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foldlang/tinfer/internal/infer"
)

func TestPrintIntegerLiteralShowsUnknownTypeBeforeApply(t *testing.T) {
	lit := &IntegerLiteral{Value: 42}
	assert.Equal(t, "(IntegerLiteral value=42 type=?)", Print(lit))
}

func TestPrintIntegerLiteralShowsFixedTypeAfterApply(t *testing.T) {
	lit := &IntegerLiteral{Value: 42}
	lit.SetType(&infer.Primitive{Name: "Int"})
	assert.Equal(t, "(IntegerLiteral value=42 type=Int)", Print(lit))
}

func TestPrintVariableDeclWithAnnotationAndInitializer(t *testing.T) {
	intT := &infer.Primitive{Name: "Int"}
	lit := &IntegerLiteral{Value: 1}
	lit.SetType(intT)

	vd := &VariableDecl{VarName: "x", TypeAnnotation: intT, Initializer: lit}
	vd.SetType(intT)

	assert.Equal(t, "(VariableDecl name=x annotation=Int type=Int initializer=(IntegerLiteral value=1 type=Int))", Print(vd))
}

func TestPrintCallShowsCalleeAndArgument(t *testing.T) {
	intT := &infer.Primitive{Name: "Int"}
	target := &builtinTestDecl{name: "id", typ: &infer.Function{Parameter: intT, Result: intT}}
	ref := &DeclRef{Target: target}
	ref.SetType(target.typ)
	arg := &IntegerLiteral{Value: 7}
	arg.SetType(intT)

	call := &Call{Callee: ref, Argument: arg}
	call.SetType(intT)

	assert.Equal(t, "(Call callee=(DeclRef target=id type=(Int) -> Int) argument=(IntegerLiteral value=7 type=Int) type=Int)", Print(call))
}

type builtinTestDecl struct {
	name string
	typ  infer.Type
}

func (*builtinTestDecl) nodeTag()                  {}
func (d *builtinTestDecl) Name() string             { return d.name }
func (d *builtinTestDecl) InterfaceType() infer.Type { return d.typ }

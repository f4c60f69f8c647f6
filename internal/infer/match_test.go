package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTypesBindTwoFreeVariablesMerges(t *testing.T) {
	s := NewSystem()
	v1 := s.Fresh()
	v2 := s.Fresh()

	res := s.matchTypes(Bind, v1, v2, decompositionOptions)
	require.Equal(t, solved, res)
	assert.Equal(t, s.Bindings.Representative(v1).Id, s.Bindings.Representative(v2).Id)
}

func TestMatchTypesBindAssignsFreeVariableToConcreteType(t *testing.T) {
	s := NewSystem()
	v := s.Fresh()
	intT := &Primitive{Name: "Int"}

	res := s.matchTypes(Bind, v, intT, decompositionOptions)
	require.Equal(t, solved, res)

	fixed, ok := s.Bindings.FixedType(v)
	require.True(t, ok)
	assert.True(t, Equals(fixed, intT))
}

func TestMatchTypesBindSamePrimitiveSolves(t *testing.T) {
	s := NewSystem()
	intT := &Primitive{Name: "Int"}
	res := s.matchTypes(Bind, intT, &Primitive{Name: "Int"}, decompositionOptions)
	assert.Equal(t, solved, res)
}

func TestMatchTypesBindDifferentPrimitivesFails(t *testing.T) {
	s := NewSystem()
	res := s.matchTypes(Bind, &Primitive{Name: "Int"}, &Primitive{Name: "Bool"}, decompositionOptions)
	assert.Equal(t, failure, res)
}

func TestMatchTypesConversionValueToOptional(t *testing.T) {
	s := NewSystem()
	intT := &Primitive{Name: "Int"}
	optInt := &Optional{Wrapped: intT}

	res := s.matchTypes(Conversion, intT, optInt, decompositionOptions)
	require.Equal(t, solved, res)
	// The inner Int -> Int match records its DeepEquality first, then the
	// outer ValueToOptional is recorded.
	require.Len(t, s.Store.Relations(), 2)
	assert.Equal(t, ValueToOptional, s.Store.Relations()[1].Conv)
}

func TestMatchTypesConversionOptionalToOptionalLifting(t *testing.T) {
	s := NewSystem()
	intT := &Primitive{Name: "Int"}
	from := &Optional{Wrapped: intT}
	to := &Optional{Wrapped: &Optional{Wrapped: intT}}

	res := s.matchTypes(Conversion, from, to, decompositionOptions)
	require.Equal(t, solved, res)
	// Int? -> Int?? admits DeepEquality, OptionalToOptional and
	// ValueToOptional, so the match defers them to a Disjunction instead of
	// recording a relation; OptionalToOptional is the second alternative.
	require.Len(t, s.Store.Entries(), 1)
	disj, ok := s.Store.Entries()[0].C.(*DisjunctionConstraint)
	require.True(t, ok)
	require.Len(t, disj.Alternatives, 3)
	alt, ok := disj.Alternatives[1].(*ConversionConstraint)
	require.True(t, ok)
	assert.Equal(t, OptionalToOptional, *alt.Conv)
}

func TestMatchTypesConversionSameOptionalOffersDeepEqualityFirst(t *testing.T) {
	s := NewSystem()
	intT := &Primitive{Name: "Int"}
	opt := &Optional{Wrapped: intT}

	res := s.matchTypes(Conversion, opt, &Optional{Wrapped: &Primitive{Name: "Int"}}, decompositionOptions)
	require.Equal(t, solved, res)
	// Int? -> Int? admits DeepEquality and OptionalToOptional, so both are
	// deferred to a Disjunction; DeepEquality comes first, as a Bind.
	require.Len(t, s.Store.Entries(), 1)
	disj, ok := s.Store.Entries()[0].C.(*DisjunctionConstraint)
	require.True(t, ok)
	require.Len(t, disj.Alternatives, 2)
	alt, ok := disj.Alternatives[0].(*BindConstraint)
	require.True(t, ok)
	assert.Equal(t, DeepEquality, *alt.Conv)
}

func TestMatchFunctionTypesParameterIsContravariantUnderConversion(t *testing.T) {
	s := NewSystem()
	intT := &Primitive{Name: "Int"}
	optInt := &Optional{Wrapped: intT}

	// Required signature: (Int?) -> Int ; declared: (Int) -> Int.
	// Parameter direction is matchTypes(kind, right.parameter, left.parameter):
	// Int (declared) must convert to Int? (required) -- succeeds.
	lfn := &Function{Parameter: optInt, Result: intT}
	rfn := &Function{Parameter: intT, Result: intT}

	res := s.matchFunctionTypes(Conversion, lfn, rfn)
	assert.Equal(t, solved, res)
}

func TestMatchFunctionTypesResultMismatchFails(t *testing.T) {
	s := NewSystem()
	intT := &Primitive{Name: "Int"}
	boolT := &Primitive{Name: "Bool"}

	lfn := &Function{Parameter: intT, Result: boolT}
	rfn := &Function{Parameter: intT, Result: intT}

	res := s.matchFunctionTypes(Bind, lfn, rfn)
	assert.Equal(t, failure, res)
}

func TestOccursCheckFailsMatchBindOfSelfReferentialFunction(t *testing.T) {
	s := NewSystem()
	v := s.Fresh()
	selfFn := &Function{Parameter: v, Result: &Primitive{Name: "Int"}}

	res := s.matchTypes(Bind, v, selfFn, decompositionOptions)
	assert.Equal(t, failure, res)
}

// Package infer implements the constraint-system core: types, the bindings
// table, the constraint store, simplification, overload disjunctions, and
// backtracking search. Constraint generation and solution application over
// the AST live in internal/check.
package infer

import "fmt"

// Type is the tagged variant of concrete and partially-concrete types that
// flow through the constraint system.
type Type interface {
	isType()
	String() string
}

// Primitive is a nominal type compared by name ("Int", "Bool", ...).
type Primitive struct {
	Name string
}

func (*Primitive) isType() {}
func (p *Primitive) String() string { return p.Name }

// Function is a one-argument function type.
type Function struct {
	Parameter Type
	Result    Type
}

func (*Function) isType() {}
func (f *Function) String() string {
	return fmt.Sprintf("(%s) -> %s", f.Parameter, f.Result)
}

// Optional wraps another type ("T?").
type Optional struct {
	Wrapped Type
}

func (*Optional) isType() {}
func (o *Optional) String() string { return fmt.Sprintf("%s?", o.Wrapped) }

// TypeVariable has identity by Id only, and is totally ordered by Id.
type TypeVariable struct {
	Id int
}

func (*TypeVariable) isType() {}
func (v *TypeVariable) String() string { return fmt.Sprintf("$T%d", v.Id) }

// topAny is the universal supertype, used only as a join sentinel.
type topAny struct{}

func (topAny) isType()        {}
func (topAny) String() string { return "Any" }

// TopAny is the unique join-result sentinel; it never binds to a variable.
var TopAny Type = topAny{}

// VariableSource produces successive fresh TypeVariables with increasing
// ids, matching the spec's "totally ordered by id" requirement.
type VariableSource struct {
	next int
}

func (s *VariableSource) Fresh() *TypeVariable {
	s.next++
	return &TypeVariable{Id: s.next}
}

// Equals reports structural equality; TypeVariable compares by id only and
// Primitive by name only.
func Equals(a, b Type) bool {
	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		return ok && at.Name == bt.Name
	case *Function:
		bt, ok := b.(*Function)
		return ok && Equals(at.Parameter, bt.Parameter) && Equals(at.Result, bt.Result)
	case *Optional:
		bt, ok := b.(*Optional)
		return ok && Equals(at.Wrapped, bt.Wrapped)
	case *TypeVariable:
		bt, ok := b.(*TypeVariable)
		return ok && at.Id == bt.Id
	case topAny:
		_, ok := b.(topAny)
		return ok
	default:
		return false
	}
}

// ContainedTypeVariables returns every TypeVariable reachable inside t.
func ContainedTypeVariables(t Type) []*TypeVariable {
	var out []*TypeVariable
	var walk func(Type)
	walk = func(t Type) {
		switch tt := t.(type) {
		case *TypeVariable:
			out = append(out, tt)
		case *Function:
			walk(tt.Parameter)
			walk(tt.Result)
		case *Optional:
			walk(tt.Wrapped)
		}
	}
	walk(t)
	return out
}

// mentionsVariable is the occurs-check primitive: does T contain v?
func mentionsVariable(t Type, v *TypeVariable) bool {
	for _, tv := range ContainedTypeVariables(t) {
		if tv.Id == v.Id {
			return true
		}
	}
	return false
}

// LookThroughAllOptionals returns [T0=self, T1, ..., Tn] where each Ti+1 is
// the wrapped type of Ti while Ti is Optional.
func LookThroughAllOptionals(t Type) []Type {
	chain := []Type{t}
	for {
		opt, ok := chain[len(chain)-1].(*Optional)
		if !ok {
			return chain
		}
		chain = append(chain, opt.Wrapped)
	}
}

// Join computes the least common supertype in the conversion lattice.
// join(T,T)=T; join(T,T?)=T?; join(T?,T?)=join(T,T)?; otherwise TopAny.
func Join(a, b Type) Type {
	if Equals(a, b) {
		return a
	}
	aOpt, aIsOpt := a.(*Optional)
	bOpt, bIsOpt := b.(*Optional)
	switch {
	case aIsOpt && bIsOpt:
		inner := Join(aOpt.Wrapped, bOpt.Wrapped)
		if Equals(inner, TopAny) {
			return TopAny
		}
		return &Optional{Wrapped: inner}
	case aIsOpt && !bIsOpt:
		if Equals(aOpt.Wrapped, b) {
			return a
		}
		return TopAny
	case bIsOpt && !aIsOpt:
		if Equals(bOpt.Wrapped, a) {
			return b
		}
		return TopAny
	default:
		return TopAny
	}
}

package infer

import "fmt"

// OccursCheckError is returned by Assign when binding v := t would create an
// infinite type (t mentions v). Distinguished from other Assign precondition
// failures so callers can surface it as its own diagnosable failure mode
// rather than folding it into a generic solver failure.
type OccursCheckError struct {
	Var *TypeVariable
	T   Type
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("infer: occurs check failed: %s occurs in %s", e.Var, e.T)
}

// bindingKind tags which of Free | Fixed | Transfer a variable currently
// carries in the bindings table.
type bindingKind int

const (
	bindFree bindingKind = iota
	bindFixed
	bindTransfer
)

type binding struct {
	kind     bindingKind
	fixed    Type
	transfer int
}

// Bindings is the union-find-like substitution map over type variables. A
// variable absent from entries is Free. Transfer chains never need more
// than one hop to reach their terminal binding (see Merge).
type Bindings struct {
	entries map[int]binding

	// onRebind is invoked with every variable id whose equivalence class
	// changed binding (via Merge or Assign), so the owning constraint
	// store can re-activate constraints that mention them.
	onRebind func(ids []int)
}

// NewBindings creates an empty bindings table.
func NewBindings() *Bindings {
	return &Bindings{entries: make(map[int]binding)}
}

// Representative follows a Transfer link once (at most one hop is ever
// needed, by construction).
func (b *Bindings) Representative(v *TypeVariable) *TypeVariable {
	e, ok := b.entries[v.Id]
	if ok && e.kind == bindTransfer {
		return &TypeVariable{Id: e.transfer}
	}
	return v
}

// FixedType chases Transfer links until it finds Fixed(T) (returns T, true)
// or Free (returns nil, false).
func (b *Bindings) FixedType(v *TypeVariable) (Type, bool) {
	rep := b.Representative(v)
	e, ok := b.entries[rep.Id]
	if !ok || e.kind == bindFree {
		return nil, false
	}
	return e.fixed, true
}

// IsFree reports whether v's representative is currently unbound.
func (b *Bindings) IsFree(v *TypeVariable) bool {
	_, fixed := b.FixedType(v)
	return !fixed
}

// members returns every known variable id in v's equivalence class,
// including v itself, by scanning for Transfer entries pointing at the
// representative plus the representative itself.
func (b *Bindings) members(repID int) []int {
	out := []int{repID}
	for id, e := range b.entries {
		if e.kind == bindTransfer && e.transfer == repID {
			out = append(out, id)
		}
	}
	return out
}

func (b *Bindings) notify(ids []int) {
	if b.onRebind != nil {
		b.onRebind(ids)
	}
}

// Merge unifies two free (non-Fixed) variables. Precondition: both v1, v2
// are representatives and neither is Fixed. The smaller-id variable becomes
// the representative; every existing Transfer(v2) entry (not just v2
// itself) is re-pointed to it, preserving the one-hop invariant.
func (b *Bindings) Merge(v1, v2 *TypeVariable) error {
	if _, fixed := b.FixedType(v1); fixed {
		return fmt.Errorf("infer: merge precondition violated: %s is Fixed", v1)
	}
	if _, fixed := b.FixedType(v2); fixed {
		return fmt.Errorf("infer: merge precondition violated: %s is Fixed", v2)
	}
	if v1.Id == v2.Id {
		return nil
	}
	rep, other := v1, v2
	if other.Id < rep.Id {
		rep, other = other, rep
	}
	for _, id := range b.members(other.Id) {
		if id == other.Id {
			continue
		}
		b.entries[id] = binding{kind: bindTransfer, transfer: rep.Id}
	}
	b.entries[other.Id] = binding{kind: bindTransfer, transfer: rep.Id}
	b.notify([]int{rep.Id, other.Id})
	return nil
}

// Assign binds v's representative to the concrete (non-TypeVariable) type T.
// Precondition: v is a representative and currently Free.
func (b *Bindings) Assign(v *TypeVariable, t Type) error {
	if _, isVar := t.(*TypeVariable); isVar {
		return fmt.Errorf("infer: assign precondition violated: target %s is a TypeVariable", t)
	}
	if rep := b.Representative(v); rep.Id != v.Id {
		return fmt.Errorf("infer: assign precondition violated: %s is not a representative", v)
	}
	if _, fixed := b.FixedType(v); fixed {
		return fmt.Errorf("infer: assign precondition violated: %s is already Fixed", v)
	}
	if mentionsVariable(t, v) {
		return &OccursCheckError{Var: v, T: t}
	}
	b.entries[v.Id] = binding{kind: bindFixed, fixed: t}
	b.notify(b.members(v.Id))
	return nil
}

// Simplify maps every TypeVariable reachable inside t to its fixed type or
// representative, recursively. Stops descending once a representative is
// still Free.
func (b *Bindings) Simplify(t Type) Type {
	switch tt := t.(type) {
	case *TypeVariable:
		if fixed, ok := b.FixedType(tt); ok {
			return b.Simplify(fixed)
		}
		return b.Representative(tt)
	case *Function:
		return &Function{Parameter: b.Simplify(tt.Parameter), Result: b.Simplify(tt.Result)}
	case *Optional:
		return &Optional{Wrapped: b.Simplify(tt.Wrapped)}
	default:
		return t
	}
}

// clone produces a full value-copy snapshot (no alias sharing with b), used
// by solver checkpoint/restore.
func (b *Bindings) clone() *Bindings {
	cp := make(map[int]binding, len(b.entries))
	for k, v := range b.entries {
		cp[k] = v
	}
	return &Bindings{entries: cp, onRebind: b.onRebind}
}

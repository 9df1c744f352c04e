package types

import (
	"fmt"

	"github.com/sunholo/typesolver/internal/locator"
)

// VarOptions is a bitset of extra binding permissions for a TypeVariable,
// generalizing the kind-only TVar2 (types_v2.go) with the option flags
// spec.md §3 assigns per type variable.
type VarOptions uint8

const (
	CanBindLValue VarOptions = 1 << iota
	CanBindInOut
	PrefersSubtype
)

func (o VarOptions) Has(flag VarOptions) bool { return o&flag != 0 }

// TypeVariable is a type variable inside the constraint system proper: it
// carries the Locator that introduced it (for diagnostics and ranking)
// and the binding-option bitset, on top of the id/Kind pair the teacher's
// TVar2 already tracks. Minted by constraint.System.Fresh, which owns the
// id counter for one System's lifetime (spec.md §4.2) rather than a
// package-global counter, so two independently-run checks never collide.
type TypeVariable struct {
	ID      int
	Locator *locator.Locator
	Options VarOptions
}

func (t *TypeVariable) String() string { return fmt.Sprintf("$T%d", t.ID) }

func (t *TypeVariable) Equals(other Type) bool {
	o, ok := other.(*TypeVariable)
	return ok && t.ID == o.ID
}

func (t *TypeVariable) Substitute(subs map[string]Type) Type {
	if sub, ok := subs[t.String()]; ok {
		return sub
	}
	return t
}

package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the sum type every concrete type in the constraint system
// implements (spec.md §3's Type Universe root). Grounded on the teacher's
// Type interface (types.go), carried over unchanged: every concrete
// constructor in this package and in internal/constraint still needs the
// same three-method shape to flow through Substitute-based generic
// opening and Equals-based unification.
type Type interface {
	String() string
	Equals(Type) bool
	Substitute(map[string]Type) Type
}

// TCon is a nullary named type constructor. Existential's presence-marker
// encoding is the only live user of TCon outside types within this
// package; everything else reasons in terms of Nominal (nominal.go),
// which additionally carries generic arguments TCon has no room for.
type TCon struct {
	Name string
}

func (t *TCon) String() string { return t.Name }

func (t *TCon) Equals(other Type) bool {
	o, ok := other.(*TCon)
	return ok && t.Name == o.Name
}

func (t *TCon) Substitute(map[string]Type) Type { return t }

// TUnit is the canonical unit value type: Assign's result type
// (internal/generator's `*ast.Assign` case) and Existential's
// presence-marker for each required protocol's row label both use it
// where a constructor only cares that a key is present, not what it maps
// to.
var TUnit = &TCon{Name: "()"}

// Kind classifies a Row by what its labels map to. Grounded on the
// teacher's Kind (kinds.go), trimmed to the one kind this module actually
// mints: a row of protocol-name labels, used by Existential's
// requirement set (existential.go).
type Kind interface {
	kind()
	String() string
	Equals(Kind) bool
}

// KRow is the kind of a Row whose labels hold ElemKind-kinded values.
type KRow struct {
	ElemKind Kind
}

func (k KRow) kind()          {}
func (k KRow) String() string { return "Row " + k.ElemKind.String() }
func (k KRow) Equals(other Kind) bool {
	if o, ok := other.(KRow); ok {
		return k.ElemKind.Equals(o.ElemKind)
	}
	return false
}

// RowVar is a row variable: the open tail of a Row that has not been
// fully closed. Existential never closes its requirement row (a new
// protocol requirement can always widen it), so every *Existential's
// *Row carries a nil Tail today; RowVar exists so Row's shape stays
// exactly what existential.go and any future row-extension code expect.
type RowVar struct {
	Name string
	Kind Kind
}

func (r *RowVar) String() string { return r.Name }

func (r *RowVar) Equals(other Type) bool {
	o, ok := other.(*RowVar)
	return ok && r.Name == o.Name && r.Kind.Equals(o.Kind)
}

func (r *RowVar) Substitute(subs map[string]Type) Type {
	if sub, ok := subs[r.Name]; ok {
		return sub
	}
	return r
}

// Row is a label -> Type map with an optional open RowVar tail.
// Existential.Requirements is the one live *Row in this module: its
// Labels map protocol names to TUnit presence markers. Grounded on the
// teacher's Row (types_v2.go), trimmed of the effect/record-row
// formatting split since this module only ever builds protocol rows.
type Row struct {
	Kind   Kind
	Labels map[string]Type
	Tail   *RowVar
}

func (r *Row) String() string {
	keys := make([]string, 0, len(r.Labels))
	for k := range r.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, keys...)
	if r.Tail != nil {
		parts = append(parts, "..."+r.Tail.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (r *Row) Equals(other Type) bool {
	o, ok := other.(*Row)
	if !ok || !r.Kind.Equals(o.Kind) || len(r.Labels) != len(o.Labels) {
		return false
	}
	for k, v := range r.Labels {
		if ov, ok := o.Labels[k]; !ok || !v.Equals(ov) {
			return false
		}
	}
	if r.Tail == nil && o.Tail == nil {
		return true
	}
	if r.Tail != nil && o.Tail != nil {
		return r.Tail.Equals(o.Tail)
	}
	return false
}

func (r *Row) Substitute(subs map[string]Type) Type {
	labels := make(map[string]Type, len(r.Labels))
	for k, v := range r.Labels {
		labels[k] = v.Substitute(subs)
	}
	var tail *RowVar
	if r.Tail != nil {
		if sub, ok := subs[r.Tail.Name]; ok {
			if subRow, ok := sub.(*Row); ok {
				for k, v := range subRow.Labels {
					labels[k] = v
				}
				tail = subRow.Tail
			} else if subVar, ok := sub.(*RowVar); ok {
				tail = subVar
			}
		} else {
			tail = r.Tail
		}
	}
	return &Row{Kind: r.Kind, Labels: labels, Tail: tail}
}

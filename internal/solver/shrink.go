package solver

import (
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/types"
)

// ShrinkDisjunction implements spec.md §4.8.2's directional path
// consistency pre-pass: before branching on a disjunction, discard any
// nested term whose Bind/Equal constraints can already be shown
// impossible against the current graph (e.g. a term that would bind the
// same type variable to two structurally incompatible ground types), so
// the search never opens a scope for a branch it could rule out for
// free. This can only narrow the term list, never add to it — a term
// kept here may still fail once explored, but a term dropped here is
// never resurrected. No direct teacher analog (the teacher never
// branches); grounded on the general shape spec.md §4.8.2 describes.
func ShrinkDisjunction(sys *constraint.System, d *constraint.Constraint) []*constraint.Constraint {
	live := make([]*constraint.Constraint, 0, len(d.Nested))
	for _, n := range d.Nested {
		if n.Disabled {
			continue
		}
		if viable(sys, n) {
			live = append(live, n)
		}
	}
	if len(live) == 0 {
		// Shrinking must never eliminate every branch outright — an
		// apparently-nonviable term may still resolve once its own
		// nested constraints are simplified in full. Fall back to the
		// unshrunk set so the search explores (and fails) normally.
		return d.Nested
	}
	return live
}

// viable performs a cheap, conservative feasibility check on a single
// disjunction term: it looks only at Bind/Equal constraints whose First
// is already a ground (non-variable) type, and rejects the term if such
// a constraint's Second is a structurally incompatible ground type. Any
// constraint involving a still-unbound type variable is assumed viable
// (shrinking must never produce a false negative).
func viable(sys *constraint.System, n *constraint.Constraint) bool {
	switch n.Kind {
	case constraint.Bind, constraint.Equal:
		a := resolveGround(sys, n.First)
		b := resolveGround(sys, n.Second)
		if a == nil || b == nil {
			return true
		}
		return structurallyCompatible(a, b)
	default:
		return true
	}
}

func resolveGround(sys *constraint.System, t types.Type) types.Type {
	t = types.RValue(t)
	tv, ok := t.(*types.TypeVariable)
	if !ok {
		return t
	}
	bound, ok := sys.Graph.Binding(tv.ID)
	if !ok {
		return nil
	}
	return bound
}

// structurallyCompatible reports whether a and b could possibly unify:
// same top-level shape (ignoring nested type variables), or either side
// already equal.
func structurallyCompatible(a, b types.Type) bool {
	if a.Equals(b) {
		return true
	}
	an, aOK := a.(*types.Nominal)
	bn, bOK := b.(*types.Nominal)
	if aOK && bOK {
		return an.Name == bn.Name && len(an.Args) == len(bn.Args)
	}
	_, aFn := a.(*types.FunctionType)
	_, bFn := b.(*types.FunctionType)
	if aFn && bFn {
		return true
	}
	_, aOpt := a.(*types.Optional)
	_, bOpt := b.(*types.Optional)
	if aOpt && bOpt {
		return true
	}
	if aOK != bOK {
		return false
	}
	if aFn != bFn {
		return false
	}
	return true
}

// Package binding implements Binding Inference (spec.md §4.7): once the
// simplifier has run out of directly solvable constraints, this package
// decides, for each still-unbound type variable, what candidate ground
// types are worth trying and in what order. Grounded on the teacher's
// isAmbiguousNumeric / class-default mapping (defaulting.go), generalized
// from "is this specific numeric variable ambiguous" to a full candidate
// search over every constraint mentioning the variable.
package binding

import (
	"sort"

	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/types"
)

// Source records where a PotentialBinding's candidate type came from, used
// to order candidates the way spec.md §4.7 does: bindings derived from an
// Equal/Bind constraint outrank Conversion-derived ones, which outrank
// defaulting.
type Source int

const (
	FromEqual Source = iota
	FromSupertype
	FromSubtype
	FromLiteralDefault
	FromConformanceDefault
)

// PotentialBinding is one candidate ground type for a type variable,
// together with where it came from (for ordering) and whether choosing
// it requires converting across Optional layers.
type PotentialBinding struct {
	Type        types.Type
	Source      Source
	OptionalGap int // 0 if no Optional-wrapping adjustment is needed
}

// Infer collects every PotentialBinding for the type variable with the
// given id, scanning the constraint store's active and inactive lists for
// constraints that mention it, then orders the candidates by Source and
// OptionalGap (fewest layers first, matching spec.md §4.7's "prefer the
// binding closest to what was written").
func Infer(sys *constraint.System, varID int, defaults conformance.DefaultLiteralTypes) []PotentialBinding {
	var candidates []PotentialBinding
	seen := func(t types.Type) bool {
		for _, c := range candidates {
			if c.Type.Equals(t) {
				return true
			}
		}
		return false
	}

	scan := func(c *constraint.Constraint) {
		if mentionsVar(c.First, varID) {
			if other, src, gap, ok := counterpart(c, c.First, varID); ok && !seen(other) {
				candidates = append(candidates, PotentialBinding{Type: other, Source: src, OptionalGap: gap})
			}
		}
		if c.Second != nil && mentionsVar(c.Second, varID) {
			if other, src, gap, ok := counterpart(c, c.Second, varID); ok && !seen(other) {
				candidates = append(candidates, PotentialBinding{Type: other, Source: src, OptionalGap: gap})
			}
		}
		if c.Kind == constraint.LiteralConformsTo {
			if tv, ok := c.First.(*types.TypeVariable); ok && tv.ID == varID && defaults != nil {
				if def, ok := defaults.DefaultFor(c.ProtocolName); ok && !seen(def) {
					candidates = append(candidates, PotentialBinding{Type: def, Source: FromLiteralDefault})
				}
			}
		}
	}
	for _, c := range sys.Store.Active() {
		scan(c)
	}
	for _, c := range sys.Store.Inactive() {
		scan(c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Source != candidates[j].Source {
			return candidates[i].Source < candidates[j].Source
		}
		return candidates[i].OptionalGap < candidates[j].OptionalGap
	})
	return candidates
}

func mentionsVar(t types.Type, id int) bool {
	tv, ok := t.(*types.TypeVariable)
	return ok && tv.ID == id
}

// counterpart returns the "other side" of a binary constraint mentioning
// varID, its Source ranking, and how many Optional layers separate it
// from varID's side (0 for an exact Equal/Bind).
func counterpart(c *constraint.Constraint, side types.Type, varID int) (types.Type, Source, int, bool) {
	var other types.Type
	if c.First == side {
		other = c.Second
	} else {
		other = c.First
	}
	if other == nil {
		return nil, 0, 0, false
	}
	if _, ok := other.(*types.TypeVariable); ok {
		return nil, 0, 0, false
	}
	switch c.Kind {
	case constraint.Bind, constraint.Equal:
		return other, FromEqual, 0, true
	case constraint.Subtype:
		if c.First == side {
			return other, FromSubtype, 0, true
		}
		return other, FromSupertype, 0, true
	case constraint.Conversion, constraint.ArgumentConversion, constraint.OperatorArgumentConversion:
		gap := types.OptionalDepth(other) - types.OptionalDepth(side)
		if gap < 0 {
			gap = -gap
		}
		return other, FromSupertype, gap, true
	default:
		return nil, 0, 0, false
	}
}

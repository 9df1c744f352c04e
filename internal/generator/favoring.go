package generator

import (
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/types"
)

// FavorLiteralChains implements the original implementation's literal-
// chain favoring (SPEC_FULL.md §4, "Supplemented from the original
// implementation"): rather than letting `1 + 2 + 3` introduce three
// independent Defaultable type variables that each separately default to
// Int, it merges the equivalence classes of every type variable that is
// the subject of a LiteralConformsTo constraint in the store, grouped by
// literal protocol, so they default together. It does no chain analysis:
// literals of the same protocol are merged even when no operator chain
// connects them. No pipeline stage in this module calls it. Grounded on the teacher's defaulting.go trace-
// and-log idiom, generalized from a post-hoc "is this variable
// ambiguous" check to a pre-solve union-find merge over the constraint
// store.
func FavorLiteralChains(sys *constraint.System) {
	byProtocol := make(map[string][]*types.TypeVariable)
	for _, c := range sys.Store.Active() {
		collectLiteralVar(c, byProtocol)
	}
	for _, c := range sys.Store.Inactive() {
		collectLiteralVar(c, byProtocol)
	}
	// Each protocol's variables are merged pairwise into one equivalence
	// class via the constraint graph's union-find, so binding inference
	// (internal/binding) only ever needs to default the representative.
	for _, vars := range byProtocol {
		if len(vars) < 2 {
			continue
		}
		first := vars[0]
		for _, v := range vars[1:] {
			sys.Graph.Union(first.ID, v.ID)
		}
	}
}

func collectLiteralVar(c *constraint.Constraint, byProtocol map[string][]*types.TypeVariable) {
	if c.Kind != constraint.LiteralConformsTo {
		return
	}
	tv, ok := c.First.(*types.TypeVariable)
	if !ok {
		return
	}
	byProtocol[c.ProtocolName] = append(byProtocol[c.ProtocolName], tv)
}

// FavorDisjunction marks a disjunction's first nested term as favored,
// the generator's hint that the solver should try it before any
// alternative (spec.md §4.8.1). No pipeline stage in this module calls
// it, and the generator emits no Disjunction constraints.
func FavorDisjunction(d *constraint.Constraint) {
	if d.Kind != constraint.Disjunction || len(d.Nested) == 0 {
		return
	}
	d.Nested[0].Favored = true
}

// Package solution turns one internal/solver.Outcome back into a typed
// tree (spec.md §4.10's Solution Application). Grounded on the teacher's
// Result type (types.go: `{Type, []error}`), generalized from a single
// type-plus-errors pair to the full multi-map Solution spec.md §3
// describes: variable bindings, the overloads chosen, and how many
// constraints were resolved by defaulting rather than unification.
package solution

import (
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/ranking"
	"github.com/sunholo/typesolver/internal/solver"
	"github.com/sunholo/typesolver/internal/types"
)

// Solution is the fully-resolved record of one accepted search branch.
type Solution struct {
	Bindings        map[int]types.Type
	OverloadChoices map[int]constraint.OverloadChoice
	DefaultedVars   map[int]bool
	Score           ranking.Score
}

// FromOutcome adapts a solver.Outcome (the search's internal bookkeeping)
// into the public Solution shape callers of this package consume.
func FromOutcome(o solver.Outcome) *Solution {
	defaulted := make(map[int]bool, len(o.Defaulted))
	for _, id := range o.Defaulted {
		defaulted[id] = true
	}
	return &Solution{
		Bindings:        o.Bindings,
		OverloadChoices: o.Choices,
		DefaultedVars:   defaulted,
		Score:           o.Score,
	}
}

// Resolve substitutes every TypeVariable reachable from t with its ground
// binding from this Solution, recursing through every structural type
// internal/types defines. A variable with no recorded binding (one the
// solver never had to touch, e.g. dead code in an unreached branch)
// resolves to types.TheErrorType rather than panicking, since Solution
// Application must still be able to produce a best-effort typed tree for
// diagnostic purposes.
func (s *Solution) Resolve(t types.Type) types.Type {
	switch v := t.(type) {
	case nil:
		return types.TheErrorType
	case *types.TypeVariable:
		bound, ok := s.Bindings[v.ID]
		if !ok {
			return types.TheErrorType
		}
		return s.Resolve(bound)
	case *types.Nominal:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = s.Resolve(a)
		}
		return &types.Nominal{Name: v.Name, Args: args}
	case *types.Optional:
		return &types.Optional{Wrapped: s.Resolve(v.Wrapped), ImplicitlyUnwrap: v.ImplicitlyUnwrap}
	case *types.FunctionType:
		params := make([]types.Param, len(v.Params))
		for i, p := range v.Params {
			np := p
			np.Type = s.Resolve(p.Type)
			params[i] = np
		}
		return &types.FunctionType{Params: params, Throws: v.Throws, Result: s.Resolve(v.Result)}
	case *types.TupleType:
		elems := make([]types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = s.Resolve(e)
		}
		return &types.TupleType{Elements: elems, Labels: v.Labels}
	case *types.LValue:
		return &types.LValue{Object: s.Resolve(v.Object)}
	case *types.InOut:
		return &types.InOut{Object: s.Resolve(v.Object)}
	case *types.Metatype:
		return &types.Metatype{Instance: s.Resolve(v.Instance)}
	default:
		return t
	}
}

package simplifier

import (
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/diagnostic"
	"github.com/sunholo/typesolver/internal/types"
)

// applicableFunction implements the ApplicableFunction constraint: First
// is the argument-list function shape synthesized at the call site
// (labels + argument types + a fresh result variable), Second is a
// candidate's (possibly still-unresolved) function type. Has no direct
// teacher analog — the teacher's typechecker_functions.go checks call
// arity directly against an already-known function type rather than
// solving for an unknown one — so this generalizes that arity check into
// the full matching state machine of spec.md §4.6.1.
func (s *Simplifier) applicableFunction(c *constraint.Constraint) (Status, *diagnostic.Report) {
	argFn, ok := c.First.(*types.FunctionType)
	if !ok {
		return fail(diagnostic.TC009, "expected argument-list shape", c)
	}
	candidate := s.resolve(types.RValue(c.Second))
	if types.IsTypeVariable(candidate) {
		return Deferred, nil
	}
	candFn, ok := candidate.(*types.FunctionType)
	if !ok {
		return fail(diagnostic.TC009, candidate.String()+" is not callable", c)
	}

	matched, rep := MatchArguments(argFn.Params, candFn.Params, c)
	if rep != nil {
		return Failed, rep
	}
	for i, m := range matched {
		if status, rep := s.matchTypes(argFn.Params[m].Type, candFn.Params[i].Type, false, c); status != Solved {
			return status, rep
		}
	}
	return s.matchTypes(argFn.Result, candFn.Result, true, c)
}

// MatchArguments implements spec.md §4.6.1's argument-to-parameter
// matching: each parameter consumes exactly one argument unless it is
// variadic (consumes every remaining argument from its position onward,
// labeled or not) or defaulted (may consume zero). Labels must match
// exactly, except that an unlabeled argument may bind to the last
// parameter whatever its label (trailing-closure sugar; the argument's
// type is not checked to be a closure here). Returns, for
// each candidate parameter index, which argument index was bound to it
// (matched[paramIdx] = argIdx); a missing entry means a defaulted
// parameter that consumed no argument.
func MatchArguments(args []types.Param, params []types.Param, c *constraint.Constraint) (map[int]int, *diagnostic.Report) {
	matched := make(map[int]int)
	usedArg := make([]bool, len(args))

	argIdx := 0
	for paramIdx, p := range params {
		if p.IsVariadic {
			for argIdx < len(args) {
				matched[paramIdx] = argIdx
				usedArg[argIdx] = true
				argIdx++
			}
			continue
		}
		if argIdx >= len(args) {
			if p.HasDefault {
				continue
			}
			return nil, diagnostic.New(diagnostic.TC009, "missing argument for parameter", nil)
		}
		a := args[argIdx]
		if a.Label != p.Label && !(a.Label == "" && paramIdx == len(params)-1) {
			if p.HasDefault {
				continue
			}
			return nil, diagnostic.New(diagnostic.TC009, "argument label mismatch: expected \""+p.Label+"\", got \""+a.Label+"\"", nil)
		}
		matched[paramIdx] = argIdx
		usedArg[argIdx] = true
		argIdx++
	}

	for _, used := range usedArg {
		if !used {
			return nil, diagnostic.New(diagnostic.TC009, "extra argument not consumed by any parameter", nil)
		}
	}
	if argIdx < len(args) {
		return nil, diagnostic.New(diagnostic.TC009, "too many arguments", nil)
	}
	return matched, nil
}

// Package solver implements the backtracking search over disjunction
// constraints (spec.md §4.8): the simplifier reduces everything it can
// deterministically, and whatever remains active is either a disjunction
// (an overload set, a bridging choice) that the solver must branch on, or
// a Defaultable constraint that internal/binding resolves once nothing
// else progresses. Grounded on the solve-loop pseudocode of spec.md §4.8
// and on the original Swift ConstraintSystem::solve referenced from
// original_source/; the teacher's checker never backtracks, so there is
// no direct teacher analog for the search itself, though each scope's
// rollback reuses constraint.Graph.Mark/Rollback and
// constraint.Store.Mark/Rollback exactly the way the teacher's
// DefaultingConfig threads a trace through a single linear pass.
package solver

import (
	"context"
	"time"

	"github.com/sunholo/typesolver/internal/binding"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/diagnostic"
	"github.com/sunholo/typesolver/internal/ranking"
	"github.com/sunholo/typesolver/internal/simplifier"
	"github.com/sunholo/typesolver/internal/types"
)

// Outcome is one fully-solved branch the solver found, captured before
// its scope is rolled back so the search can keep exploring alternatives.
type Outcome struct {
	Score     ranking.Score
	Bindings  map[int]types.Type                // type-variable id -> resolved ground type
	Choices   map[int]constraint.OverloadChoice // BindOverload constraint id -> the choice taken
	Defaulted []int                             // type-variable ids resolved by defaulting rather than unification
}

// Solver drives the simplify/branch/backtrack loop over one System.
type Solver struct {
	Sys         *constraint.System
	Conformance conformance.Checker
	Defaults    conformance.DefaultLiteralTypes
	Substitutor conformance.Substitutor

	scopes int
}

// New creates a Solver over sys.
func New(sys *constraint.System, checker conformance.Checker, defaults conformance.DefaultLiteralTypes, substitutor conformance.Substitutor) *Solver {
	return &Solver{Sys: sys, Conformance: checker, Defaults: defaults, Substitutor: substitutor}
}

// path is the mutable state threaded down one DFS branch: the running
// score, the overload choices made so far, and the defaulted variables
// accumulated so far. Each branch point copies it before recursing so
// sibling branches don't see each other's decisions.
type path struct {
	score     ranking.Score
	choices   map[int]constraint.OverloadChoice
	defaulted []int
}

func (p path) clone() path {
	choices := make(map[int]constraint.OverloadChoice, len(p.choices))
	for k, v := range p.choices {
		choices[k] = v
	}
	defaulted := make([]int, len(p.defaulted))
	copy(defaulted, p.defaulted)
	return path{score: p.score, choices: choices, defaulted: defaulted}
}

// Solve runs the search to completion (or until ctx is done / a budget is
// exceeded) and returns every solution found, ranked best-first per
// internal/ranking. Solutions tying for best are all returned so the
// caller can report AmbiguousSolutions (spec.md §4.9) rather than picking
// one arbitrarily.
func (s *Solver) Solve(ctx context.Context) ([]Outcome, *diagnostic.Report) {
	deadline := time.Duration(s.Sys.Config.ExpressionTimeoutMs) * time.Millisecond
	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	var outcomes []Outcome
	start := path{choices: map[int]constraint.OverloadChoice{}}
	rep := s.step(ctx, start, &outcomes)
	if rep != nil {
		return nil, rep
	}
	if len(outcomes) == 0 {
		return nil, diagnostic.New(diagnostic.TC003, "no solution found", nil)
	}
	return ranking.BestOf(outcomes, func(o Outcome) ranking.Score { return o.Score }), nil
}

// step runs the simplifier to a fixpoint, then either records a solved
// leaf, branches on the next disjunction, or asks internal/binding to try
// a defaulting candidate. It recurses per branch and rolls the scope back
// before trying the next one, the DFS-with-rollback shape of spec.md
// §4.8's pseudocode.
func (s *Solver) step(ctx context.Context, p path, outcomes *[]Outcome) *diagnostic.Report {
	if err := ctx.Err(); err != nil {
		return diagnostic.New(diagnostic.TC008, "expression timeout exceeded", nil)
	}
	s.scopes++
	s.Sys.ScopeCount = s.scopes
	if s.Sys.Config.SolverScopeThreshold > 0 && s.scopes > s.Sys.Config.SolverScopeThreshold {
		return diagnostic.New(diagnostic.TC008, "solver scope threshold exceeded", nil)
	}

	simp := simplifier.New(s.Sys, s.Conformance, s.Defaults, s.Substitutor)
	rep := simp.Run()
	if rep != nil {
		if diagnostic.IsTooComplex(rep.Code) {
			// A budget failure propagates immediately rather than pruning
			// just this branch (spec.md §7).
			return rep
		}
		return nil // a Failed constraint just prunes this branch, not the whole search
	}

	if d := nextOverload(s.Sys); d != nil {
		return s.branchOverload(ctx, d, p, outcomes)
	}
	if d := nextDisjunction(s.Sys); d != nil {
		return s.branchDisjunction(ctx, d, p, outcomes)
	}
	if varID, ok := nextDefaultable(s.Sys); ok {
		return s.branchDefaulting(ctx, varID, p, outcomes)
	}

	*outcomes = append(*outcomes, Outcome{
		Score:     p.score,
		Bindings:  s.Sys.Graph.Snapshot(),
		Choices:   p.choices,
		Defaulted: p.defaulted,
	})
	return nil
}

// nextOverload returns the first live BindOverload constraint, or nil.
func nextOverload(sys *constraint.System) *constraint.Constraint {
	for _, c := range sys.Store.Inactive() {
		if !c.Disabled && c.Kind == constraint.BindOverload {
			return c
		}
	}
	for _, c := range sys.Store.Active() {
		if !c.Disabled && c.Kind == constraint.BindOverload {
			return c
		}
	}
	return nil
}

// nextDisjunction returns the first live Disjunction constraint, or nil.
func nextDisjunction(sys *constraint.System) *constraint.Constraint {
	for _, c := range sys.Store.Inactive() {
		if !c.Disabled && c.Kind == constraint.Disjunction {
			return c
		}
	}
	for _, c := range sys.Store.Active() {
		if !c.Disabled && c.Kind == constraint.Disjunction {
			return c
		}
	}
	return nil
}

// nextDefaultable returns the id of a type variable with a still-pending
// Defaultable constraint.
func nextDefaultable(sys *constraint.System) (int, bool) {
	for _, c := range sys.Store.Inactive() {
		if !c.Disabled && c.Kind == constraint.Defaultable {
			if tv, ok := c.First.(*types.TypeVariable); ok {
				return tv.ID, true
			}
		}
	}
	return 0, false
}

// branchDefaulting tries each PotentialBinding for varID in ranked order,
// binding it directly in the graph so the next simplifier pass checks it
// the same way any other binding would be checked. A variable that
// unification has already bound has that binding as its only candidate.
// Each branch retires varID's Defaultable constraints and reactivates the
// constraints that mention varID.
func (s *Solver) branchDefaulting(ctx context.Context, varID int, p path, outcomes *[]Outcome) *diagnostic.Report {
	candidates := binding.Infer(s.Sys, varID, s.Defaults)
	if bound, ok := s.Sys.Graph.Binding(varID); ok {
		src := binding.FromEqual
		for _, c := range candidates {
			if c.Type.Equals(bound) {
				src = c.Source
			}
		}
		candidates = []binding.PotentialBinding{{Type: bound, Source: src}}
	}
	var lastErr *diagnostic.Report
	for _, cand := range candidates {
		gMark := s.Sys.Graph.Mark()
		sMark := s.Sys.Store.Mark()

		for _, c := range s.Sys.Store.Inactive() {
			if tv, ok := c.First.(*types.TypeVariable); ok && c.Kind == constraint.Defaultable && tv.ID == varID {
				s.Sys.Store.Disable(c)
			}
		}
		s.Sys.Graph.Bind(varID, cand.Type)
		s.Sys.Store.ReactivateMentioning(func(c *constraint.Constraint) bool { return types.Mentions(c.First, varID) || types.Mentions(c.Second, varID) })
		next := p.clone()
		next.defaulted = append(next.defaulted, varID)
		// Binding a literal to its own protocol default is the free,
		// expected case (spec.md §8 scenario 1). Binding it to anything
		// else — pulled in from an Equal/Subtype/Conversion counterpart
		// elsewhere in the graph — means the literal didn't use its
		// default, which spec.md §8 scenario 2 scores as NonDefaultLiteral.
		if cand.Source != binding.FromLiteralDefault && cand.Source != binding.FromConformanceDefault {
			next.score = next.score.Add(ranking.ScoreLiteral, 1)
		}
		next.score = next.score.Add(ranking.ScoreConversion, cand.OptionalGap)

		rep := s.step(ctx, next, outcomes)
		if rep != nil {
			lastErr = rep
		}

		s.Sys.Store.Rollback(sMark)
		s.Sys.Graph.Rollback(gMark)

		if ctx.Err() != nil {
			break
		}
	}
	if len(*outcomes) == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}

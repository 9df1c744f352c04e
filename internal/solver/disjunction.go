package solver

import (
	"context"

	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/diagnostic"
	"github.com/sunholo/typesolver/internal/ranking"
)

// branchOverload implements §4.8.1's overload-selection heuristic: try
// each candidate choice of a BindOverload constraint in the order the
// generator listed them (the declaration order of the referenced
// overload set), binding the subject type to the choice's Type and
// recording the decision in the path before recursing. Every choice past
// the first is scored as disfavored relative to it.
func (s *Solver) branchOverload(ctx context.Context, c *constraint.Constraint, p path, outcomes *[]Outcome) *diagnostic.Report {
	var lastErr *diagnostic.Report
	for i, choice := range c.Choices {
		gMark := s.Sys.Graph.Mark()
		sMark := s.Sys.Store.Mark()

		s.Sys.Store.Disable(c)
		next := p.clone()
		next.choices[c.ID] = choice
		if i > 0 {
			next.score = next.score.Add(ranking.ScoreDisfavored, 1)
		}
		s.Sys.Store.Add(&constraint.Constraint{Kind: constraint.Equal, First: c.First, Second: choice.Type, Locator: c.Locator})

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

// branchDisjunction tries each live term of d in its stored order
// (terms whose Favored flag is set first), rolling the
// scope back between attempts. d's term list is first narrowed by
// ShrinkDisjunction's path-consistency pre-pass.
func (s *Solver) branchDisjunction(ctx context.Context, d *constraint.Constraint, p path, outcomes *[]Outcome) *diagnostic.Report {
	narrowed := ShrinkDisjunction(s.Sys, d)
	var lastErr *diagnostic.Report
	for _, t := range orderTerms(narrowed) {
		gMark := s.Sys.Graph.Mark()
		sMark := s.Sys.Store.Mark()

		s.Sys.Store.Disable(d)
		next := p.clone()
		if !t.favored {
			next.score = next.score.Add(ranking.ScoreDisfavored, 1)
		}
		for _, nested := range t.nested {
			s.Sys.Store.Add(nested)
		}

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

// term groups one disjunction alternative's nested constraints with
// whether the generator favored it.
type term struct {
	nested  []*constraint.Constraint
	favored bool
}

// orderTerms returns nested's constraint groups (one per disjunction
// alternative), favored terms first, each on its own.
func orderTerms(nested []*constraint.Constraint) []term {
	var favored, rest []term
	for _, n := range nested {
		t := term{nested: []*constraint.Constraint{n}, favored: n.Favored}
		if n.Favored {
			favored = append(favored, t)
		} else {
			rest = append(rest, t)
		}
	}
	return append(favored, rest...)
}

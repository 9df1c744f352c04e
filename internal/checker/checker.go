// Package checker wires every stage of the core pipeline together: the
// generator emits constraints for one or more top-level expressions, the
// solver searches for a solution (simplifying as it goes), and Solution
// Application turns the winning outcome back into a typed tree. Grounded
// on the teacher's top-level CheckProgram-style entry point
// (typechecker_core.go, not carried into this module) that strings
// together the same infer/default/report phases behind one function a
// CLI or test can call without knowing the pipeline's internals.
package checker

import (
	"context"

	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/config"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/diagnostic"
	"github.com/sunholo/typesolver/internal/generator"
	"github.com/sunholo/typesolver/internal/solution"
	"github.com/sunholo/typesolver/internal/solver"
	"github.com/sunholo/typesolver/internal/typedast"
	"github.com/sunholo/typesolver/internal/types"
)

// Collaborators bundles the name-lookup and conformance-checking
// environment the generator, simplifier, and binding inference all need.
// A *conformance.Registry satisfies every field.
type Collaborators struct {
	Lookup      conformance.NameLookup
	Conformance conformance.Checker
	Defaults    conformance.DefaultLiteralTypes
	Substitutor conformance.Substitutor
}

// Result is one successfully type-checked program: the typed tree plus
// the winning Solution it was built from, so a caller that wants the raw
// bindings (e.g. a test asserting on a specific inferred type) need not
// re-derive them from the tree.
type Result struct {
	Program  *typedast.TypedProgram
	Solution *solution.Solution
}

// Check runs the full pipeline over exprs (each checked against its own
// optional contextual type, parallel to exprs) and returns the typed
// program for the single best-ranked solution found across all of them.
// contextualTypes may be nil, or shorter than exprs (unset entries have no
// contextual type).
func Check(ctx context.Context, cfg *config.Config, collab Collaborators, exprs []ast.Expr, contextualTypes []types.Type) (*Result, *diagnostic.Report) {
	sys := constraint.NewSystem(cfg)
	gen := generator.New(sys, collab.Lookup)

	for i, e := range exprs {
		var contextual types.Type
		if i < len(contextualTypes) {
			contextual = contextualTypes[i]
		}
		gen.Generate(e, contextual)
	}

	s := solver.New(sys, collab.Conformance, collab.Defaults, collab.Substitutor)
	outcomes, rep := s.Solve(ctx)
	if rep != nil {
		return nil, rep
	}
	if len(outcomes) > 1 {
		return nil, ambiguous(outcomes)
	}

	sol := solution.FromOutcome(outcomes[0])
	prog := sol.ApplyProgram(gen, exprs)
	return &Result{Program: prog, Solution: sol}, nil
}

// CheckExpr is the single-expression convenience form most callers and
// tests reach for; contextual may be nil.
func CheckExpr(ctx context.Context, cfg *config.Config, collab Collaborators, expr ast.Expr, contextual types.Type) (typedast.TypedNode, *solution.Solution, *diagnostic.Report) {
	sys := constraint.NewSystem(cfg)
	gen := generator.New(sys, collab.Lookup)
	gen.Generate(expr, contextual)

	s := solver.New(sys, collab.Conformance, collab.Defaults, collab.Substitutor)
	outcomes, rep := s.Solve(ctx)
	if rep != nil {
		return nil, nil, rep
	}
	if len(outcomes) > 1 {
		return nil, nil, ambiguous(outcomes)
	}

	sol := solution.FromOutcome(outcomes[0])
	return sol.Apply(gen, expr), sol, nil
}

func ambiguous(outcomes []solver.Outcome) *diagnostic.Report {
	rep := diagnostic.New(diagnostic.TC004, "ambiguous solutions", nil)
	return rep.WithData("count", len(outcomes))
}

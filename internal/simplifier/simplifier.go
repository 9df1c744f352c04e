// Package simplifier implements the Constraint Simplifier: a worklist
// loop that drains the active constraint list, reducing each constraint
// by structural decomposition and unification until only disjunctions
// (left for internal/solver to branch on) and defaulting opportunities
// (left for internal/binding) remain. Grounded directly on the teacher's
// Unify (unification.go): canonicalize both sides, switch on the shape
// pair, recurse into substructure, swap-and-retry on asymmetric cases.
package simplifier

import (
	"errors"

	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/diagnostic"
	"github.com/sunholo/typesolver/internal/types"
)

// Status is the outcome of simplifying one constraint.
type Status int

const (
	Solved Status = iota
	Deferred
	Failed
)

// errTooComplex is a budget-overrun sentinel error. Nothing in this
// module returns it: the solver reports budget overruns as TC008
// Reports and recognizes them with diagnostic.IsTooComplex.
var errTooComplex = errors.New("solver budget exceeded")

// ErrTooComplex is the exported form of errTooComplex.
var ErrTooComplex = errTooComplex

// Simplifier reduces constraints against one System.
type Simplifier struct {
	Sys         *constraint.System
	Conformance conformance.Checker
	Defaults    conformance.DefaultLiteralTypes
	Substitutor conformance.Substitutor
}

// New creates a Simplifier over sys using the given conformance collaborators.
func New(sys *constraint.System, checker conformance.Checker, defaults conformance.DefaultLiteralTypes, substitutor conformance.Substitutor) *Simplifier {
	return &Simplifier{Sys: sys, Conformance: checker, Defaults: defaults, Substitutor: substitutor}
}

// Run drains the active worklist, returning the first hard failure it
// hits (nil if the worklist empties with no unresolved failure; pending
// disjunctions are left in the store for the solver).
func (s *Simplifier) Run() *diagnostic.Report {
	for s.Sys.Store.HasActive() {
		c := s.Sys.Store.PopActive()
		if c.Disabled {
			continue
		}
		if c.IsStructural() {
			// Left for the solver: disjunctions/conjunctions/overload
			// binds require search, not simplification.
			s.Sys.Store.Deactivate(c)
			continue
		}
		status, rep := s.simplifyOne(c)
		switch status {
		case Solved:
			s.Sys.Store.ReactivateMentioning(func(other *constraint.Constraint) bool {
				return mentions(other, c.First) || mentions(other, c.Second)
			})
		case Deferred:
			s.Sys.Store.Deactivate(c)
		case Failed:
			return rep
		}
	}
	return nil
}

// mentions reports whether c's First, Second, or Third operand contains
// the type variable t, delegating the structural walk to types.Mentions
// (the same walk the occurs check uses).
func mentions(c *constraint.Constraint, t types.Type) bool {
	if t == nil {
		return false
	}
	if tv, ok := t.(*types.TypeVariable); ok {
		return types.Mentions(c.First, tv.ID) || types.Mentions(c.Second, tv.ID) || types.Mentions(c.Third, tv.ID)
	}
	return false
}

// simplifyOne dispatches a single non-structural constraint to its rule,
// defined in rules.go.
func (s *Simplifier) simplifyOne(c *constraint.Constraint) (Status, *diagnostic.Report) {
	switch c.Kind {
	case constraint.Bind, constraint.Equal:
		return s.matchTypes(c.First, c.Second, true, c)
	case constraint.Subtype:
		return s.subtype(c)
	case constraint.Conversion, constraint.ArgumentConversion, constraint.OperatorArgumentConversion, constraint.BridgingConversion:
		return s.conversion(c)
	case constraint.ConformsTo, constraint.LiteralConformsTo, constraint.SelfObjectOfProtocol:
		return s.conformsTo(c)
	case constraint.Member, constraint.ValueMember, constraint.TypeMember, constraint.UnresolvedMember:
		return s.member(c)
	case constraint.Defaultable:
		return Deferred, nil
	case constraint.OptionalObject:
		return s.optionalObject(c)
	case constraint.ApplicableFunction:
		return s.applicableFunction(c)
	case constraint.CheckedCast:
		return s.checkedCast(c)
	case constraint.KeyPathConstraint:
		return s.keyPath(c)
	case constraint.DynamicTypeOf, constraint.EscapableFunctionOf, constraint.OpenedExistentialOf, constraint.KeyPathApplication:
		// DynamicTypeOf/EscapableFunctionOf/OpenedExistentialOf have no
		// worked scenario exercising them yet (spec.md §8 never derives a
		// dynamic type, escaping closure, or opened existential from an
		// expression), and KeyPathApplication only matters once a
		// subscript(keyPath:) overload choice exists in the generator, so
		// all four are trivially solved rather than given a rule body
		// with no real behavior to ground it against.
		return Solved, nil
	default:
		return Solved, nil
	}
}

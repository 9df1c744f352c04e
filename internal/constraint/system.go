package constraint

import (
	"github.com/sunholo/typesolver/internal/config"
	"github.com/sunholo/typesolver/internal/locator"
	"github.com/sunholo/typesolver/internal/types"
)

// System bundles the arena a single Solve call owns for its lifetime: the
// locator allocator, the constraint graph, the constraint store, and the
// fresh-type-variable counter. Generator, simplifier, binding inference,
// solver, ranking and solution-application packages all take a *System
// rather than each reinventing scope plumbing, the way the teacher's
// CoreTypeChecker (typechecker_core.go, not carried into this module)
// bundles its InstanceEnv/TypeEnv/DefaultingConfig for one type-check
// pass.
type System struct {
	Config   *config.Config
	Locators *locator.Allocator
	Graph    *Graph
	Store    *Store

	varCounter int
	ScopeCount int // incremented each time the solver opens a new scope
}

// NewSystem creates an empty System ready for one Solve call.
func NewSystem(cfg *config.Config) *System {
	if cfg == nil {
		cfg = config.Default()
	}
	return &System{
		Config:   cfg,
		Locators: locator.NewAllocator(),
		Graph:    NewGraph(),
		Store:    NewStore(),
	}
}

// Fresh mints a new TypeVariable bound to loc with the given options.
func (s *System) Fresh(loc *locator.Locator, opts types.VarOptions) *types.TypeVariable {
	s.varCounter++
	return &types.TypeVariable{ID: s.varCounter, Locator: loc, Options: opts}
}

// Bind adds a Bind constraint: first must resolve to exactly second.
func (s *System) Bind(first, second types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: Bind, First: first, Second: second, Locator: loc})
}

// Equal adds an Equal constraint: first and second denote the same type.
func (s *System) Equal(first, second types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: Equal, First: first, Second: second, Locator: loc})
}

// SubtypeC adds a Subtype constraint: first is a subtype of second.
func (s *System) SubtypeC(first, second types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: Subtype, First: first, Second: second, Locator: loc})
}

// ConvertC adds a Conversion constraint.
func (s *System) ConvertC(first, second types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: Conversion, First: first, Second: second, Locator: loc})
}

// ArgConvertC adds an ArgumentConversion constraint for a call argument.
func (s *System) ArgConvertC(arg, param types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: ArgumentConversion, First: arg, Second: param, Locator: loc})
}

// ConformsToC adds a ConformsTo constraint.
func (s *System) ConformsToC(subject types.Type, protocol string, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: ConformsTo, First: subject, ProtocolName: protocol, Locator: loc})
}

// LiteralConformsToC adds a LiteralConformsTo constraint.
func (s *System) LiteralConformsToC(subject types.Type, protocol string, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: LiteralConformsTo, First: subject, ProtocolName: protocol, Locator: loc})
}

// DefaultableC adds a Defaultable constraint.
func (s *System) DefaultableC(subject types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: Defaultable, First: subject, Locator: loc})
}

// MemberC adds a Member constraint: First has a member MemberName of type Second.
func (s *System) MemberC(base types.Type, member string, result types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: Member, First: base, Second: result, MemberName: member, Locator: loc})
}

// ApplicableFunctionC adds an ApplicableFunction constraint: First (the
// argument-list function shape) applies to Second (the candidate's type).
func (s *System) ApplicableFunctionC(argFn, candidate types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: ApplicableFunction, First: argFn, Second: candidate, Locator: loc})
}

// BindOverloadC adds a disjunction-of-overloads constraint for subject.
func (s *System) BindOverloadC(subject types.Type, choices []OverloadChoice, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: BindOverload, First: subject, Choices: choices, Locator: loc})
}

// DisjunctionC adds a Disjunction of nested constraints, each representing
// one alternative (e.g. one overload's resulting Bind+ApplicableFunction).
func (s *System) DisjunctionC(nested []*Constraint, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: Disjunction, Nested: nested, Locator: loc})
}

// OptionalObjectC adds an OptionalObject constraint: Second is First with
// one Optional layer removed.
func (s *System) OptionalObjectC(optional, object types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: OptionalObject, First: optional, Second: object, Locator: loc})
}

// CheckedCastC adds a CheckedCast constraint: subject `as!`/`as?`/`is`
// target, valid only when subject and target are related by subtyping,
// existential opening, or Optional unwrapping (spec.md §4.6).
func (s *System) CheckedCastC(subject, target types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: CheckedCast, First: subject, Second: target, Locator: loc})
}

// KeyPathC adds a KeyPathConstraint: kp must resolve to the concrete
// KeyPath<root, value> instantiation (spec.md §4.10 item 5).
func (s *System) KeyPathC(kp, root, value types.Type, loc *locator.Locator) *Constraint {
	return s.Store.Add(&Constraint{Kind: KeyPathConstraint, First: kp, Second: value, Third: root, Locator: loc})
}

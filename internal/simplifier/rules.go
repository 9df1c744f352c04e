package simplifier

import (
	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/diagnostic"
	"github.com/sunholo/typesolver/internal/types"
)

func fail(code, message string, c *constraint.Constraint) (Status, *diagnostic.Report) {
	var span *ast.Span
	rep := diagnostic.New(code, message, span)
	if c.Locator != nil {
		rep = rep.WithData("locator", c.Locator.String())
	}
	return Failed, rep
}

// matchTypes is the kernel every binary rule bottoms out in: canonicalize
// both sides (strip LValue, resolve bound type variables), then switch on
// the resulting shape pair. Grounded directly on the teacher's Unify
// (unification.go)'s canonicalize-then-switch-on-shape-pairs structure,
// generalized from a flat substitution map to the System's union-find
// Graph so bindings survive solver backtracking via Graph.Rollback.
func (s *Simplifier) matchTypes(a, b types.Type, symmetric bool, c *constraint.Constraint) (Status, *diagnostic.Report) {
	a = s.resolve(types.RValue(a))
	b = s.resolve(types.RValue(b))

	if _, ok := a.(*types.DependentMember); ok {
		return Deferred, nil
	}
	if _, ok := b.(*types.DependentMember); ok {
		return Deferred, nil
	}

	av, aIsVar := a.(*types.TypeVariable)
	bv, bIsVar := b.(*types.TypeVariable)

	switch {
	case aIsVar && bIsVar:
		s.Sys.Graph.Union(av.ID, bv.ID)
		return Solved, nil
	case aIsVar:
		if occurs(av.ID, b) {
			return fail(diagnostic.TC006, "infinite type", c)
		}
		s.Sys.Graph.Bind(av.ID, b)
		return Solved, nil
	case bIsVar:
		if symmetric {
			return s.matchTypes(b, a, symmetric, c)
		}
		if occurs(bv.ID, a) {
			return fail(diagnostic.TC006, "infinite type", c)
		}
		s.Sys.Graph.Bind(bv.ID, a)
		return Solved, nil
	}

	switch at := a.(type) {
	case *types.Nominal:
		bt, ok := b.(*types.Nominal)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return fail(diagnostic.TC001, "type mismatch: "+a.String()+" vs "+b.String(), c)
		}
		for i := range at.Args {
			if status, rep := s.matchTypes(at.Args[i], bt.Args[i], symmetric, c); status != Solved {
				return status, rep
			}
		}
		return Solved, nil

	case *types.FunctionType:
		bt, ok := b.(*types.FunctionType)
		if !ok || len(at.Params) != len(bt.Params) {
			return fail(diagnostic.TC001, "type mismatch: "+a.String()+" vs "+b.String(), c)
		}
		for i := range at.Params {
			if status, rep := s.matchTypes(at.Params[i].Type, bt.Params[i].Type, symmetric, c); status != Solved {
				return status, rep
			}
		}
		return s.matchTypes(at.Result, bt.Result, symmetric, c)

	case *types.TupleType:
		bt, ok := b.(*types.TupleType)
		if !ok || len(at.Elements) != len(bt.Elements) {
			return fail(diagnostic.TC001, "type mismatch: "+a.String()+" vs "+b.String(), c)
		}
		for i := range at.Elements {
			if status, rep := s.matchTypes(at.Elements[i], bt.Elements[i], symmetric, c); status != Solved {
				return status, rep
			}
		}
		return Solved, nil

	case *types.Optional:
		bt, ok := b.(*types.Optional)
		if !ok {
			return fail(diagnostic.TC001, "type mismatch: "+a.String()+" vs "+b.String(), c)
		}
		return s.matchTypes(at.Wrapped, bt.Wrapped, symmetric, c)

	case *types.Metatype:
		bt, ok := b.(*types.Metatype)
		if !ok {
			return fail(diagnostic.TC001, "type mismatch: "+a.String()+" vs "+b.String(), c)
		}
		return s.matchTypes(at.Instance, bt.Instance, symmetric, c)

	case *types.ErrorType:
		return Solved, nil

	default:
		if b.Equals(a) {
			return Solved, nil
		}
		if _, ok := b.(*types.ErrorType); ok {
			return Solved, nil
		}
		return fail(diagnostic.TC001, "type mismatch: "+a.String()+" vs "+b.String(), c)
	}
}

// resolve follows the Graph's union-find binding for a type variable, and
// projects a DependentMember through the Substitutor once its Base has
// resolved to something concrete. A DependentMember whose Base is still a
// type variable (or whose Substitutor lookup fails, e.g. no conformance
// exists) is returned unresolved, signaling callers to defer.
func (s *Simplifier) resolve(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.TypeVariable:
		if bound, ok := s.Sys.Graph.Binding(v.ID); ok {
			return s.resolve(bound)
		}
		root := s.Sys.Graph.Find(v.ID)
		if root != v.ID {
			return &types.TypeVariable{ID: root, Locator: v.Locator, Options: v.Options}
		}
		return v

	case *types.DependentMember:
		base := s.resolve(v.Base)
		if types.IsTypeVariable(base) || s.Substitutor == nil {
			return v
		}
		ref := &conformance.ConformanceRef{Protocol: v.Protocol, TypeHead: base}
		if assoc, ok := s.Substitutor.AssocType(ref, v.AssocTypeName); ok {
			return s.resolve(assoc)
		}
		return v

	default:
		return t
	}
}

func occurs(id int, t types.Type) bool {
	return types.Mentions(t, id)
}

// subtype implements the Subtype rule: identical types trivially hold;
// Optional<T> <: Optional<U> when T and U unify; T <: Optional<U> when
// Optional<T> and Optional<U> unify; otherwise it falls back to
// equality (the builtin environment defines no nominal subtyping beyond
// optional wrapping, since protocol-conformance existential upcasts are
// modeled separately as Conversion, per spec.md §4.6).
func (s *Simplifier) subtype(c *constraint.Constraint) (Status, *diagnostic.Report) {
	a := s.resolve(types.RValue(c.First))
	b := s.resolve(types.RValue(c.Second))

	if aOpt, ok := a.(*types.Optional); ok {
		if bOpt, ok := b.(*types.Optional); ok {
			return s.matchTypes(aOpt.Wrapped, bOpt.Wrapped, false, c)
		}
	}
	if _, ok := b.(*types.Optional); ok {
		return s.matchTypes(&types.Optional{Wrapped: a}, b, false, c)
	}
	return s.matchTypes(a, b, true, c)
}

// conversion implements Conversion/ArgumentConversion/OperatorArgumentConversion/
// BridgingConversion: first try unifying the two types, then try wrapping the source
// in Optional layers up to the target's OptionalDepth (an implicit
// promotion a bare ArgumentConversion allows that a Subtype constraint
// would not), otherwise fail.
func (s *Simplifier) conversion(c *constraint.Constraint) (Status, *diagnostic.Report) {
	a := s.resolve(types.RValue(c.First))
	b := s.resolve(types.RValue(c.Second))

	if status, _ := s.matchTypes(a, b, true, &constraint.Constraint{Locator: c.Locator}); status == Solved {
		return Solved, nil
	}

	depth := types.OptionalDepth(b) - types.OptionalDepth(a)
	if depth > 0 {
		promoted := a
		for i := 0; i < depth; i++ {
			promoted = &types.Optional{Wrapped: promoted}
		}
		return s.matchTypes(promoted, b, true, c)
	}

	return fail(diagnostic.TC001, "cannot convert "+a.String()+" to "+b.String(), c)
}

// conformsTo implements ConformsTo/LiteralConformsTo/SelfObjectOfProtocol:
// if the subject is already a concrete type, check the conformance
// collaborator immediately; if it is still a type variable, defer (the
// solver/binding-inference layer will retry once something binds it).
func (s *Simplifier) conformsTo(c *constraint.Constraint) (Status, *diagnostic.Report) {
	subject := s.resolve(types.RValue(c.First))
	if types.IsTypeVariable(subject) {
		return Deferred, nil
	}
	if s.Conformance == nil {
		return Solved, nil
	}
	if _, ok := s.Conformance.Conforms(subject, c.ProtocolName); ok {
		return Solved, nil
	}
	return fail(diagnostic.TC005, subject.String()+" does not conform to "+c.ProtocolName, c)
}

// member implements Member/ValueMember/TypeMember/UnresolvedMember. It
// defers while the base is still a type variable and reports Solved once
// the base is concrete. It does not look the member up (the simplifier
// holds no NameLookup) and does not constrain the member type (Second).
func (s *Simplifier) member(c *constraint.Constraint) (Status, *diagnostic.Report) {
	base := s.resolve(types.RValue(c.First))
	if types.IsTypeVariable(base) {
		return Deferred, nil
	}
	return Solved, nil
}

// checkedCast implements CheckedCast (spec.md §4.6): subject and target
// must be related by equality, Optional unwrapping on either side, or
// existential opening (a concrete type casting to/from an existential
// whose requirements it could plausibly satisfy); anything else fails
// outright, since this module's builtin environment has no class
// hierarchy or bridging to justify an otherwise-unrelated cast.
func (s *Simplifier) checkedCast(c *constraint.Constraint) (Status, *diagnostic.Report) {
	subject := s.resolve(types.RValue(c.First))
	target := s.resolve(types.RValue(c.Second))

	if types.IsTypeVariable(subject) || types.IsTypeVariable(target) {
		return Deferred, nil
	}
	if castRelatable(subject, target, s.Conformance) {
		return Solved, nil
	}
	return fail(diagnostic.TC001, "cannot cast "+subject.String()+" to "+target.String(), c)
}

// castRelatable reports whether from and to could plausibly be related by
// a runtime cast: identical types, one side optional-wrapping the other,
// or one side an Existential whose protocol requirements the other
// side's conformances could satisfy (checked in whichever direction has
// a concrete conforming candidate).
func castRelatable(from, to types.Type, checker conformance.Checker) bool {
	if from.Equals(to) {
		return true
	}
	if fromOpt, ok := from.(*types.Optional); ok {
		return castRelatable(fromOpt.Wrapped, to, checker)
	}
	if toOpt, ok := to.(*types.Optional); ok {
		return castRelatable(from, toOpt.Wrapped, checker)
	}
	if ex, ok := to.(*types.Existential); ok {
		return conformsToAll(from, ex, checker)
	}
	if ex, ok := from.(*types.Existential); ok {
		return conformsToAll(to, ex, checker)
	}
	return false
}

func conformsToAll(t types.Type, ex *types.Existential, checker conformance.Checker) bool {
	if checker == nil {
		return false
	}
	for _, protocol := range ex.Protocols() {
		if _, ok := checker.Conforms(t, protocol); !ok {
			return false
		}
	}
	return true
}

// keyPath implements KeyPathConstraint (spec.md §4.5/§4.10 item 5): once
// root and value are both concrete, bind the key-path type variable to
// the concrete generic instantiation KeyPath<root, value>.
func (s *Simplifier) keyPath(c *constraint.Constraint) (Status, *diagnostic.Report) {
	root := s.resolve(types.RValue(c.Third))
	value := s.resolve(types.RValue(c.Second))
	if types.IsTypeVariable(root) || types.IsTypeVariable(value) {
		return Deferred, nil
	}
	return s.matchTypes(c.First, &types.Nominal{Name: "KeyPath", Args: []types.Type{root, value}}, true, c)
}

// optionalObject implements OptionalObject: First must be Optional<T>,
// Second is bound to T.
func (s *Simplifier) optionalObject(c *constraint.Constraint) (Status, *diagnostic.Report) {
	first := s.resolve(types.RValue(c.First))
	if types.IsTypeVariable(first) {
		return Deferred, nil
	}
	wrapped, ok := types.UnwrapOptional(first)
	if !ok {
		return fail(diagnostic.TC001, first.String()+" is not optional", c)
	}
	return s.matchTypes(wrapped, c.Second, true, c)
}

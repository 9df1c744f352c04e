// Package generator walks an expression and emits the constraints
// spec.md §4.5's table assigns to each expression kind, returning the
// fresh type variable (or, for literals, a direct type) standing for the
// expression's result. Grounded on the teacher's Infer-style recursive
// walk (inference.go/typechecker_core.go, not carried into this module —
// their direct-substitution algorithm is superseded by constraint
// emission here, but the one-function-per-expression-kind shape and the
// fresh-type-variable idiom are kept).
package generator

import (
	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/locator"
	"github.com/sunholo/typesolver/internal/types"
)

// Generator walks expressions and emits constraints into one System.
type Generator struct {
	Sys    *constraint.System
	Lookup conformance.NameLookup

	// NodeTypes records, for every expression node visited, the
	// pre-solve type the generator assigned it — the same TypeVariable/
	// structural-type value used in the emitted constraints. Solution
	// Application (internal/solution) looks a node's entry up here and
	// resolves it against the solver's bindings, rather than re-walking
	// the AST a second time with separate bookkeeping.
	NodeTypes map[ast.NodeID]types.Type

	// OverloadCandidates records, for every OverloadedDeclRef/overloaded
	// MemberRef node, the candidate list its BindOverload constraint
	// offered, so Solution Application can tell which candidate the
	// solver actually chose by comparing resolved types.
	OverloadCandidates map[ast.NodeID][]constraint.OverloadChoice
}

// New creates a Generator over the given system and name-lookup collaborator.
func New(sys *constraint.System, lookup conformance.NameLookup) *Generator {
	return &Generator{
		Sys:                sys,
		Lookup:             lookup,
		NodeTypes:          make(map[ast.NodeID]types.Type),
		OverloadCandidates: make(map[ast.NodeID][]constraint.OverloadChoice),
	}
}

// Generate emits constraints for expr and returns the type standing for
// its result. contextualType may be nil when there is no surrounding
// expected type.
func (g *Generator) Generate(expr ast.Expr, contextualType types.Type) types.Type {
	loc := g.Sys.Locators.Root(expr)
	result := g.generate(expr, loc, contextualType)
	if contextualType != nil {
		g.Sys.ConvertC(result, contextualType, loc)
	}
	return result
}

func (g *Generator) generate(expr ast.Expr, loc *locator.Locator, contextual types.Type) types.Type {
	result := g.generateByKind(expr, loc, contextual)
	g.NodeTypes[expr.ID()] = result
	return result
}

func (g *Generator) generateByKind(expr ast.Expr, loc *locator.Locator, contextual types.Type) types.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return g.literal(loc, "ExpressibleByIntegerLiteral")
	case *ast.FloatLiteral:
		return g.literal(loc, "ExpressibleByFloatLiteral")
	case *ast.StringLiteral:
		return g.literal(loc, "ExpressibleByStringLiteral")
	case *ast.BooleanLiteral:
		return g.literal(loc, "ExpressibleByBooleanLiteral")
	case *ast.InterpolatedString:
		for i, seg := range e.Segments {
			segLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: i})
			g.generate(seg, segLoc, nil)
		}
		return conformance.StringType

	case *ast.DeclRef:
		return g.declTypeForm(e.Decl, loc, types.Unapplied, false)

	case *ast.OverloadedDeclRef:
		return g.overloadedForm(e, loc, types.Unapplied, false)

	case *ast.MemberRef:
		return g.memberRefForm(e, loc, types.Unapplied)

	case *ast.UnresolvedMember:
		tv := g.Sys.Fresh(loc, 0)
		if contextual != nil {
			g.Sys.MemberC(contextual, e.MemberName, tv, loc)
		}
		return tv

	case *ast.Subscript:
		baseLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyFunction})
		baseTy := g.generate(e.Base, baseLoc, nil)
		for i, idx := range e.Indices {
			idxLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.SubscriptIndex, Index: i})
			g.generate(idx, idxLoc, nil)
		}
		result := g.Sys.Fresh(loc, 0)
		g.Sys.MemberC(baseTy, "subscript", result, loc)
		return result

	case *ast.Apply:
		return g.apply(e, loc)

	case *ast.Paren:
		return g.generate(e.Inner, loc, contextual)

	case *ast.Tuple:
		elems := make([]types.Type, len(e.Elements))
		for i, el := range e.Elements {
			elLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.TupleElement, Index: i})
			elems[i] = g.generate(el, elLoc, nil)
		}
		return &types.TupleType{Elements: elems, Labels: e.Labels}

	case *ast.ArrayLiteral:
		elem := g.Sys.Fresh(loc, 0)
		result := conformance.ArrayOf(elem)
		elementOf := &types.DependentMember{Base: result, AssocTypeName: "Element", Protocol: "ExpressibleByArrayLiteral"}
		for i, el := range e.Elements {
			elLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: i})
			elTy := g.generate(el, elLoc, nil)
			g.Sys.ConvertC(elTy, elementOf, elLoc)
		}
		return result

	case *ast.DictionaryLiteral:
		keyTy := g.Sys.Fresh(loc, 0)
		valTy := g.Sys.Fresh(loc, 0)
		result := conformance.DictionaryOf(keyTy, valTy)
		keyOf := &types.DependentMember{Base: result, AssocTypeName: "Key", Protocol: "ExpressibleByDictionaryLiteral"}
		valOf := &types.DependentMember{Base: result, AssocTypeName: "Value", Protocol: "ExpressibleByDictionaryLiteral"}
		for i, entry := range e.Entries {
			kLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: 2 * i})
			vLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: 2*i + 1})
			g.Sys.ConvertC(g.generate(entry.Key, kLoc, nil), keyOf, kLoc)
			g.Sys.ConvertC(g.generate(entry.Value, vLoc, nil), valOf, vLoc)
		}
		return result

	case *ast.If:
		g.generate(e.Cond, g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: 0}), conformance.BoolType)
		thenLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: 1})
		thenTy := g.generate(e.Then, thenLoc, nil)
		if e.Else == nil {
			return types.TheErrorType
		}
		elseLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: 2})
		elseTy := g.generate(e.Else, elseLoc, nil)
		result := g.Sys.Fresh(loc, 0)
		g.Sys.ConvertC(thenTy, result, thenLoc)
		g.Sys.ConvertC(elseTy, result, elseLoc)
		return result

	case *ast.Coerce:
		inner := g.generate(e.Inner, loc, nil)
		result := g.Sys.Fresh(loc, 0)
		g.Sys.ConvertC(inner, result, loc)
		return result

	case *ast.ForcedCast, *ast.ConditionalCast:
		return g.cast(expr, loc)

	case *ast.Is:
		innerTy := g.generate(e.Inner, loc, nil)
		if target, ok := e.TargetType.(types.Type); ok && target != nil {
			g.Sys.CheckedCastC(innerTy, target, loc)
		}
		return conformance.BoolType

	case *ast.Assign:
		lhsLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: 0})
		lhsTy := g.generate(e.Lhs, lhsLoc, nil)
		rhsLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyArgument, Index: 1})
		rhsTy := g.generate(e.Rhs, rhsLoc, nil)
		g.Sys.ConvertC(rhsTy, types.StripLValue(lhsTy), loc)
		return types.TUnit

	case *ast.BindOptional:
		optTy := g.generate(e.Inner, loc, nil)
		object := g.Sys.Fresh(loc, 0)
		g.Sys.OptionalObjectC(optTy, object, loc)
		return object

	case *ast.ForceValue:
		optTy := g.generate(e.Inner, loc, nil)
		object := g.Sys.Fresh(loc, 0)
		g.Sys.OptionalObjectC(optTy, object, loc)
		return object

	case *ast.OptionalEvaluation:
		inner := g.generate(e.Inner, loc, nil)
		return conformance.OptionalOf(inner)

	case *ast.Closure:
		return g.closure(e, loc)

	case *ast.KeyPath:
		return g.keyPath(e, loc)

	case *ast.InOutExpr:
		inner := g.generate(e.Inner, loc, nil)
		return &types.InOut{Object: types.StripLValue(inner)}

	default:
		return types.TheErrorType
	}
}

func (g *Generator) literal(loc *locator.Locator, protocol string) types.Type {
	tv := g.Sys.Fresh(loc, 0)
	g.Sys.LiteralConformsToC(tv, protocol, loc)
	g.Sys.DefaultableC(tv, loc)
	return tv
}

func (g *Generator) declType(decl *ast.Decl, loc *locator.Locator) types.Type {
	if decl == nil || decl.Type == nil {
		return types.TheErrorType
	}
	declTy, ok := decl.Type.(types.Type)
	if !ok {
		return types.TheErrorType
	}
	if decl.Signature != nil && len(decl.Signature.Params) > 0 {
		return g.openGeneric(decl.Signature, declTy, loc)
	}
	return declTy
}

// openGeneric instantiates a generic declaration: fresh type variables
// for every quantified parameter, then one constraint per Requirement
// (spec.md §4.5's "opening a generic").
func (g *Generator) openGeneric(sig *ast.GenericSignature, declType types.Type, loc *locator.Locator) types.Type {
	if sig == nil || len(sig.Params) == 0 {
		return declType
	}
	subs := make(map[string]types.Type, len(sig.Params))
	for _, p := range sig.Params {
		genLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.GenericArgument, Name: p})
		subs[p] = g.Sys.Fresh(genLoc, 0)
	}
	for _, req := range sig.Requirements {
		subject, ok := subs[req.Subject]
		if !ok {
			continue
		}
		switch req.Kind {
		case ast.RequirementConformance:
			g.Sys.ConformsToC(subject, req.ProtocolName, loc)
		case ast.RequirementSameType:
			if other, ok := subs[req.Other]; ok {
				g.Sys.Equal(subject, other, loc)
			}
		}
	}
	if declType == nil {
		return nil
	}
	return declType.Substitute(subs)
}

// declTypeForm is declType generalized with the parameter-label removal
// spec.md §4.5 assigns per reference form: a non-function decl type is
// returned unchanged (there are no labels to strip), and a function
// type has LabelLevelsFor(form, isMethod) levels of curried argument
// labels stripped.
func (g *Generator) declTypeForm(decl *ast.Decl, loc *locator.Locator, form types.ReferenceForm, isMethod bool) types.Type {
	declTy := g.declType(decl, loc)
	fn, ok := declTy.(*types.FunctionType)
	if !ok {
		return declTy
	}
	return types.RemoveArgumentLabels(fn, types.LabelLevelsFor(form, isMethod))
}

func (g *Generator) overloadedForm(e *ast.OverloadedDeclRef, loc *locator.Locator, form types.ReferenceForm, isMethod bool) types.Type {
	tv := g.Sys.Fresh(loc, 0)
	choices := make([]constraint.OverloadChoice, len(e.Decls))
	for i, d := range e.Decls {
		choices[i] = constraint.OverloadChoice{Kind: constraint.ChoiceDecl, DeclName: d.Name, Type: g.declTypeForm(d, loc, form, isMethod)}
	}
	g.Sys.BindOverloadC(tv, choices, loc)
	g.OverloadCandidates[e.ID()] = choices
	return tv
}

// memberRefForm is memberRef generalized over reference form; every
// member access counts as a method reference for LabelLevelsFor's
// isMethod parameter, since the member's receiver (e.Base) already
// supplies the value a free-function reference would otherwise need an
// explicit self argument for.
func (g *Generator) memberRefForm(e *ast.MemberRef, loc *locator.Locator, form types.ReferenceForm) types.Type {
	baseLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyFunction})
	baseTy := g.generate(e.Base, baseLoc, nil)
	memberLoc := g.Sys.Locators.MemberAccess(loc, e.MemberName)
	result := g.Sys.Fresh(memberLoc, 0)
	if len(e.Candidates) > 1 {
		choices := make([]constraint.OverloadChoice, len(e.Candidates))
		for i, d := range e.Candidates {
			choices[i] = constraint.OverloadChoice{Kind: constraint.ChoiceDecl, DeclName: d.Name, Type: g.declTypeForm(d, memberLoc, form, true)}
		}
		g.Sys.BindOverloadC(result, choices, memberLoc)
		g.OverloadCandidates[e.ID()] = choices
		return result
	}
	g.Sys.MemberC(baseTy, e.MemberName, result, memberLoc)
	return result
}

// generateCallee generates expr's type as it appears in an Apply's
// function position, routing a direct declaration/member reference
// through form-aware label removal instead of the plain Unapplied path
// generateByKind's default dispatch would otherwise take. Any other
// callee shape (a closure literal, a parenthesized sub-expression, ...)
// has no labels of its own to strip and generates normally.
func (g *Generator) generateCallee(expr ast.Expr, loc *locator.Locator, form types.ReferenceForm) types.Type {
	var result types.Type
	switch e := expr.(type) {
	case *ast.DeclRef:
		result = g.declTypeForm(e.Decl, loc, form, false)
	case *ast.OverloadedDeclRef:
		result = g.overloadedForm(e, loc, form, false)
	case *ast.MemberRef:
		result = g.memberRefForm(e, loc, form)
	default:
		return g.generate(expr, loc, nil)
	}
	g.NodeTypes[expr.ID()] = result
	return result
}

func (g *Generator) apply(e *ast.Apply, loc *locator.Locator) types.Type {
	return g.applyWithCalleeForm(e, loc, types.SingleApply)
}

// applyWithCalleeForm implements Apply's constraint generation, threading
// down the reference form its own callee should be generated with.
// When e.Fn is itself an Apply (the self-curried double-apply shape
// `ref(self)(args)`, spec.md §4.5), the inner call's callee reference
// sees DoubleApply instead of SingleApply — both argument lists of a
// double application match the declaration's labels exactly as
// declared, so neither level gets stripped.
func (g *Generator) applyWithCalleeForm(e *ast.Apply, loc *locator.Locator, calleeForm types.ReferenceForm) types.Type {
	fnLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ApplyFunction})
	var fnTy types.Type
	if inner, ok := e.Fn.(*ast.Apply); ok {
		fnTy = g.applyWithCalleeForm(inner, fnLoc, types.DoubleApply)
		g.NodeTypes[inner.ID()] = fnTy
	} else {
		fnTy = g.generateCallee(e.Fn, fnLoc, calleeForm)
	}

	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		argLoc := g.Sys.Locators.Argument(loc, i)
		argTypes[i] = g.generate(arg, argLoc, nil)
	}

	result := g.Sys.Fresh(loc, 0)
	params := make([]types.Param, len(argTypes))
	for i, at := range argTypes {
		label := ""
		if i < len(e.Labels) {
			label = e.Labels[i]
		}
		params[i] = types.Param{Label: label, Type: at}
	}
	argFn := &types.FunctionType{Params: params, Result: result}
	g.Sys.ApplicableFunctionC(argFn, fnTy, loc)
	return result
}

// cast handles `as!`/`as?`: both emit a CheckedCast constraint relating
// the operand's type to the cast's written target type (spec.md §4.6);
// a forced cast's result is the target type itself, a conditional cast's
// result is Optional<target> since it may fail to nil at runtime. A cast
// whose TargetType never got resolved by the declaration-level checker
// falls back to an unconstrained fresh variable rather than emitting a
// constraint with a nil operand.
func (g *Generator) cast(expr ast.Expr, loc *locator.Locator) types.Type {
	var inner ast.Expr
	var rawTarget interface{}
	wrap := false
	switch e := expr.(type) {
	case *ast.ForcedCast:
		inner = e.Inner
		rawTarget = e.TargetType
	case *ast.ConditionalCast:
		inner = e.Inner
		rawTarget = e.TargetType
		wrap = true
	}
	innerTy := g.generate(inner, loc, nil)

	target, ok := rawTarget.(types.Type)
	if !ok || target == nil {
		result := g.Sys.Fresh(loc, 0)
		if wrap {
			return conformance.OptionalOf(result)
		}
		return result
	}

	g.Sys.CheckedCastC(innerTy, target, loc)
	if wrap {
		return conformance.OptionalOf(target)
	}
	return target
}

// keyPath walks a `\Root.member.member` literal's components (spec.md
// §4.5's KeyPath row): each component adds a Member constraint linking
// the running base type to a fresh member type, and the key-path's
// overall type is a fresh variable bound, via a KeyPathConstraint, to
// the concrete KeyPath<root, value> once root and value resolve. Root
// starts as a fresh variable since RootOf is only ever a placeholder for
// a written root-type annotation (paralleling Coerce.TargetOf/
// Closure.ReturnOf, neither of which the generator consults either).
func (g *Generator) keyPath(e *ast.KeyPath, loc *locator.Locator) types.Type {
	root := g.Sys.Fresh(loc, 0)
	value := types.Type(root)
	for i, comp := range e.Components {
		compLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.KeyPathComponent, Index: i, Name: comp.MemberName})
		member := g.Sys.Fresh(compLoc, 0)
		g.Sys.MemberC(value, comp.MemberName, member, compLoc)
		value = member
	}
	kp := g.Sys.Fresh(loc, 0)
	g.Sys.KeyPathC(kp, root, value, loc)
	return kp
}

func (g *Generator) closure(e *ast.Closure, loc *locator.Locator) types.Type {
	params := make([]types.Param, len(e.Params))
	for i := range e.Params {
		pLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ClosureParam, Name: e.Params[i].Name})
		params[i] = types.Param{Type: g.Sys.Fresh(pLoc, 0)}
	}
	bodyLoc := g.Sys.Locators.Extend(loc, locator.PathElement{Kind: locator.ClosureResult})
	bodyTy := g.generate(e.Body, bodyLoc, nil)
	return &types.FunctionType{Params: params, Result: bodyTy}
}

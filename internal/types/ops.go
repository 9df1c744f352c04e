package types

// Package-level Type Universe utilities (spec.md §4.1): queries and
// transforms the simplifier and generator need on arbitrary Type values,
// kept here rather than duplicated as unexported helpers in
// internal/simplifier so both the generator (label removal) and the
// simplifier (occurs checks, reactivation) share one walk of the type
// structure.

// Mentions reports whether t contains the type variable with the given
// id anywhere in its structure, including inside DependentMember bases
// and Metatype instances. Grounded on the teacher's occurs-check walk
// (unification.go, not carried into this module — its case list is
// reproduced here against this module's own Type variants).
func Mentions(t Type, id int) bool {
	switch v := t.(type) {
	case nil:
		return false
	case *TypeVariable:
		return v.ID == id
	case *Nominal:
		for _, a := range v.Args {
			if Mentions(a, id) {
				return true
			}
		}
		return false
	case *Optional:
		return Mentions(v.Wrapped, id)
	case *FunctionType:
		for _, p := range v.Params {
			if Mentions(p.Type, id) {
				return true
			}
		}
		return Mentions(v.Result, id)
	case *TupleType:
		for _, e := range v.Elements {
			if Mentions(e, id) {
				return true
			}
		}
		return false
	case *LValue:
		return Mentions(v.Object, id)
	case *InOut:
		return Mentions(v.Object, id)
	case *DependentMember:
		return Mentions(v.Base, id)
	case *Metatype:
		return Mentions(v.Instance, id)
	default:
		return false
	}
}

// HasTypeVariable reports whether t contains any type variable at all,
// telling a fully-ground type from one that still needs further solving.
func HasTypeVariable(t Type) bool {
	switch v := t.(type) {
	case nil:
		return false
	case *TypeVariable:
		return true
	case *Nominal:
		for _, a := range v.Args {
			if HasTypeVariable(a) {
				return true
			}
		}
		return false
	case *Optional:
		return HasTypeVariable(v.Wrapped)
	case *FunctionType:
		for _, p := range v.Params {
			if HasTypeVariable(p.Type) {
				return true
			}
		}
		return HasTypeVariable(v.Result)
	case *TupleType:
		for _, e := range v.Elements {
			if HasTypeVariable(e) {
				return true
			}
		}
		return false
	case *LValue:
		return HasTypeVariable(v.Object)
	case *InOut:
		return HasTypeVariable(v.Object)
	case *DependentMember:
		return HasTypeVariable(v.Base)
	case *Metatype:
		return HasTypeVariable(v.Instance)
	default:
		return false
	}
}

// RemoveArgumentLabels strips parameter labels from fn, descending
// through n levels of a (possibly curried) function type — e.g. n=1
// strips only fn's own parameter list; n=2 additionally strips the
// labels of fn.Result's parameter list when fn.Result is itself a
// FunctionType, the shape a self-curried `Type.method` reference
// produces. A non-FunctionType Result, or n<=0, stops the descent.
func RemoveArgumentLabels(fn *FunctionType, n int) *FunctionType {
	if fn == nil || n <= 0 {
		return fn
	}
	params := make([]Param, len(fn.Params))
	for i, p := range fn.Params {
		p.Label = ""
		params[i] = p
	}
	result := fn.Result
	if n > 1 {
		if inner, ok := fn.Result.(*FunctionType); ok {
			result = RemoveArgumentLabels(inner, n-1)
		}
	}
	return &FunctionType{Params: params, Throws: fn.Throws, Result: result}
}

// ReplaceCovariantResult substitutes fn's result type at the given
// curry depth, leaving every outer parameter list (and any intervening
// curried layer) untouched. levels<=1 replaces fn's own Result directly;
// larger values descend through nested FunctionType results the way a
// self-curried method's second application layer would.
func ReplaceCovariantResult(fn *FunctionType, newResult Type, levels int) *FunctionType {
	if fn == nil {
		return fn
	}
	if levels <= 1 {
		return &FunctionType{Params: fn.Params, Throws: fn.Throws, Result: newResult}
	}
	inner, ok := fn.Result.(*FunctionType)
	if !ok {
		return &FunctionType{Params: fn.Params, Throws: fn.Throws, Result: newResult}
	}
	return &FunctionType{Params: fn.Params, Throws: fn.Throws, Result: ReplaceCovariantResult(inner, newResult, levels-1)}
}

// ReferenceForm classifies how a declaration name is used at a reference
// site (spec.md §4.5): an unapplied name, a single application (`f(x)`
// or `base.method(x)`), a double application (the self-curried
// `Type.method(self)(x)` shape), or a compound name (`f(label:)`) used
// without being called at all.
type ReferenceForm int

const (
	Unapplied ReferenceForm = iota
	SingleApply
	DoubleApply
	Compound
)

// LabelLevelsFor returns how many levels of a (possibly curried)
// function type's argument labels RemoveArgumentLabels should strip for
// a reference in the given form: unapplied and compound names strip
// every level since the caller has no argument list to label-match
// against yet; a single application strips one level, but only when the
// declaration is an instance method (so the first, self-application
// layer's implicit labels disappear); a double application has already
// supplied both argument lists explicitly and strips nothing.
func LabelLevelsFor(form ReferenceForm, isMethod bool) int {
	switch form {
	case Unapplied, Compound:
		return 2
	case SingleApply:
		if isMethod {
			return 1
		}
		return 0
	default: // DoubleApply
		return 0
	}
}

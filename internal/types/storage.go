package types

// LValue wraps a type to mark it as assignable storage — the type of a
// mutable variable reference, distinct from the rvalue type callers see
// when they read it. Grounded on spec.md §3's LValue/InOut pair; the
// teacher's type universe has no equivalent since AILANG's functional
// core has no mutable lvalues.
type LValue struct {
	Object Type
}

func (t *LValue) String() string { return "inout(" + t.Object.String() + ")" }

func (t *LValue) Equals(other Type) bool {
	o, ok := other.(*LValue)
	return ok && t.Object.Equals(o.Object)
}

func (t *LValue) Substitute(subs map[string]Type) Type {
	return &LValue{Object: t.Object.Substitute(subs)}
}

// InOut wraps a parameter type to mark it as passed by reference at a
// call site (`&x`). Distinct from LValue: InOut appears in a function's
// parameter list, LValue appears at the reference-expression site that
// satisfies it.
type InOut struct {
	Object Type
}

func (t *InOut) String() string { return "&" + t.Object.String() }

func (t *InOut) Equals(other Type) bool {
	o, ok := other.(*InOut)
	return ok && t.Object.Equals(o.Object)
}

func (t *InOut) Substitute(subs map[string]Type) Type {
	return &InOut{Object: t.Object.Substitute(subs)}
}

// StripLValue returns t's Object if t is an LValue, else t unchanged.
func StripLValue(t Type) Type {
	if lv, ok := t.(*LValue); ok {
		return lv.Object
	}
	return t
}

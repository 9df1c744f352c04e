package types

// RValue strips any LValue wrapper, returning the readable type of t.
// Constraint kinds other than Bind/Equal operate on rvalues; the
// simplifier calls this at the top of matchTypes so every rule only ever
// sees object types.
func RValue(t Type) Type {
	return StripLValue(t)
}

// IsTypeVariable reports whether t is exactly a *TypeVariable (not wrapped
// in LValue/InOut/Optional).
func IsTypeVariable(t Type) bool {
	_, ok := t.(*TypeVariable)
	return ok
}

// UnwrapOptional returns (wrapped, true) if t is *Optional, else (t, false).
func UnwrapOptional(t Type) (Type, bool) {
	if opt, ok := t.(*Optional); ok {
		return opt.Wrapped, true
	}
	return t, false
}

// OptionalDepth counts how many Optional layers wrap t's core type, e.g.
// `Int??` has depth 2. Used by the simplifier's OptionalObject constraint
// and by binding inference's optional-to-optional subtype scoring.
func OptionalDepth(t Type) int {
	depth := 0
	for {
		opt, ok := t.(*Optional)
		if !ok {
			return depth
		}
		depth++
		t = opt.Wrapped
	}
}

package types

import "fmt"

// Metatype is `T.Type` — the type of a type, used for static member
// lookup and constructor references. Has no teacher analog; grounded on
// spec.md §3 directly, kept minimal (no existential-metatype distinction,
// since protocol-typed metatypes flow through Existential instead).
type Metatype struct {
	Instance Type
}

func (t *Metatype) String() string { return t.Instance.String() + ".Type" }

func (t *Metatype) Equals(other Type) bool {
	o, ok := other.(*Metatype)
	return ok && t.Instance.Equals(o.Instance)
}

func (t *Metatype) Substitute(subs map[string]Type) Type {
	return &Metatype{Instance: t.Instance.Substitute(subs)}
}

// Optional is `Wrapped?` — spec.md §3's Optional, distinct from a regular
// Nominal so BindOptional/ForceValue/OptionalObject constraints can match
// on it directly instead of special-casing a one-argument Nominal named
// "Optional".
type Optional struct {
	Wrapped          Type
	ImplicitlyUnwrap bool // IUO: behaves as Wrapped at a DeclRef, as Optional<Wrapped> elsewhere
}

func (t *Optional) String() string {
	if t.ImplicitlyUnwrap {
		return t.Wrapped.String() + "!"
	}
	return t.Wrapped.String() + "?"
}

func (t *Optional) Equals(other Type) bool {
	o, ok := other.(*Optional)
	return ok && t.Wrapped.Equals(o.Wrapped)
}

func (t *Optional) Substitute(subs map[string]Type) Type {
	return &Optional{Wrapped: t.Wrapped.Substitute(subs), ImplicitlyUnwrap: t.ImplicitlyUnwrap}
}

// Unbound marks a declaration reference whose type has not yet been
// computed (e.g. a recursive reference still being generated), a
// generation-time placeholder, never a solver output. The simplifier has
// no rule for it: matching Unbound against any type other than an equal
// Unbound fails.
type Unbound struct {
	Reason string
}

func (t *Unbound) String() string { return fmt.Sprintf("<unbound: %s>", t.Reason) }

func (t *Unbound) Equals(other Type) bool {
	_, ok := other.(*Unbound)
	return ok
}

func (t *Unbound) Substitute(map[string]Type) Type { return t }

// ErrorType is the sentinel type assigned to an expression once its
// generation or simplification has already failed, so downstream
// constraints involving it are silently satisfied instead of cascading
// into further diagnostics (spec.md §3/§7).
type ErrorType struct{}

func (t *ErrorType) String() string { return "<error type>" }

func (t *ErrorType) Equals(other Type) bool {
	_, ok := other.(*ErrorType)
	return ok
}

func (t *ErrorType) Substitute(map[string]Type) Type { return t }

// TheErrorType is the single shared ErrorType instance.
var TheErrorType = &ErrorType{}

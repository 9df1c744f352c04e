package ast

// Decl is a minimal stand-in for a declaration whose signature has
// already been computed by the (out-of-scope) declaration-level checker.
// The constraint generator only ever needs a decl's name and type
// scheme, never its body.
type Decl struct {
	Name      string
	Signature *GenericSignature
	IsStatic  bool
	IsMutable bool

	// Type holds the declaration's (possibly generic, un-opened) type as
	// computed by the out-of-scope declaration-level checker. Declared as
	// interface{} rather than types.Type so this package does not import
	// internal/types (internal/types imports internal/locator, which
	// imports this package — a direct import here would cycle). Callers
	// type-assert to types.Type.
	Type interface{}
}

// GenericSignature carries a declaration's quantified type parameters and
// the requirements ("where" clauses) to open when the declaration is
// referenced. A non-generic declaration has a nil or empty Params list.
type GenericSignature struct {
	Params       []string
	Requirements []Requirement
}

// RequirementKind classifies a single entry of a GenericSignature.
type RequirementKind int

const (
	RequirementConformance RequirementKind = iota
	RequirementSameType
	RequirementSuperclass
)

// Requirement is one entry of a "where" clause on a generic declaration.
type Requirement struct {
	Kind         RequirementKind
	Subject      string // type parameter name, e.g. "T"
	ProtocolName string // for RequirementConformance
	Other        string // for RequirementSameType / RequirementSuperclass
}

// --- Literals ---

type IntegerLiteral struct {
	base
	Value int64
	Raw   string
}

func (e *IntegerLiteral) String() string { return e.Raw }

type FloatLiteral struct {
	base
	Value float64
	Raw   string
}

func (e *FloatLiteral) String() string { return e.Raw }

type StringLiteral struct {
	base
	Value string
}

func (e *StringLiteral) String() string { return `"` + e.Value + `"` }

// InterpolatedString holds alternating literal segments and interpolated
// expressions, e.g. "x = \(x)".
type InterpolatedString struct {
	base
	Segments []Expr // each is *StringLiteral or an arbitrary Expr
}

func (e *InterpolatedString) String() string { return "<interpolated string>" }

type BooleanLiteral struct {
	base
	Value bool
}

func (e *BooleanLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// --- References ---

// DeclRef references a single, already-resolved declaration.
type DeclRef struct {
	base
	Decl *Decl
}

func (e *DeclRef) String() string { return e.Decl.Name }

// OverloadedDeclRef references a name with more than one visible
// declaration; the generator turns this into a BindOverload disjunction.
type OverloadedDeclRef struct {
	base
	Name  string
	Decls []*Decl
}

func (e *OverloadedDeclRef) String() string { return e.Name }

// MemberRef is `base.member` where the member set is already known
// (either because Base's nominal type is known, or because it is itself
// unresolved — see UnresolvedMember).
type MemberRef struct {
	base
	Base       Expr
	MemberName string
	Candidates []*Decl // non-empty: overloaded member lookup
}

func (e *MemberRef) String() string { return e.Base.String() + "." + e.MemberName }

// UnresolvedMember is `.member`, resolved relative to the contextual type
// (e.g. an enum case shorthand or static member on an inferred type).
type UnresolvedMember struct {
	base
	MemberName string
}

func (e *UnresolvedMember) String() string { return "." + e.MemberName }

// Subscript is `base[index...]`.
type Subscript struct {
	base
	Base    Expr
	Indices []Expr
	Labels  []string // parallel to Indices; "" if unlabeled
}

func (e *Subscript) String() string { return e.Base.String() + "[...]" }

// --- Application ---

// Apply is a call `fn(args...)`.
type Apply struct {
	base
	Fn     Expr
	Args   []Expr
	Labels []string // parallel to Args; "" if unlabeled
}

func (e *Apply) String() string { return e.Fn.String() + "(...)" }

// Paren is a parenthesized expression, kept distinct from its inner
// expression so locators can anchor on it separately.
type Paren struct {
	base
	Inner Expr
}

func (e *Paren) String() string { return "(" + e.Inner.String() + ")" }

// Tuple is `(a, b, c)` with optional element labels.
type Tuple struct {
	base
	Elements []Expr
	Labels   []string
}

func (e *Tuple) String() string { return "(tuple)" }

// ArrayLiteral is `[a, b, c]`.
type ArrayLiteral struct {
	base
	Elements []Expr
}

func (e *ArrayLiteral) String() string { return "[array]" }

// DictionaryEntry is one key/value pair of a DictionaryLiteral.
type DictionaryEntry struct {
	Key   Expr
	Value Expr
}

// DictionaryLiteral is `[k1: v1, k2: v2]`.
type DictionaryLiteral struct {
	base
	Entries []DictionaryEntry
}

func (e *DictionaryLiteral) String() string { return "[dictionary]" }

// --- Control flow expressions ---

// If is an expression-if; Else may be nil (ternary absent form is not
// representable — both branches must have a common supertype when present).
type If struct {
	base
	Cond Expr
	Then Expr
	Else Expr
}

func (e *If) String() string { return "if" }

// --- Casts and coercions ---

type CoerceKind int

const (
	CoerceImplicit CoerceKind = iota // `x as T` used purely for contextual typing
	CoerceExplicit                   // `x as T` with an explicit written type
)

// Coerce is `expr as Type`, a non-failable conversion.
type Coerce struct {
	base
	Inner    Expr
	TargetOf Node // placeholder for a written type annotation node
	Kind     CoerceKind
}

func (e *Coerce) String() string { return e.Inner.String() + " as T" }

// ForcedCast is `expr as! Type`, a failable downcast forced to succeed.
type ForcedCast struct {
	base
	Inner Expr

	// TargetType is the cast's written target type, computed by the
	// out-of-scope declaration-level checker. Declared as interface{} for
	// the same reason as Decl.Type: this package cannot import
	// internal/types without cycling through internal/locator. Callers
	// type-assert to types.Type. A nil TargetType means the cast's target
	// could not be resolved and the generator falls back to an
	// unconstrained fresh type variable.
	TargetType interface{}
}

func (e *ForcedCast) String() string { return e.Inner.String() + " as! T" }

// ConditionalCast is `expr as? Type`, producing `Optional<Type>`.
type ConditionalCast struct {
	base
	Inner Expr

	// TargetType mirrors ForcedCast.TargetType.
	TargetType interface{}
}

func (e *ConditionalCast) String() string { return e.Inner.String() + " as? T" }

// Is is `expr is Type`, a dynamic type test producing Bool.
type Is struct {
	base
	Inner Expr

	// TargetType mirrors ForcedCast.TargetType.
	TargetType interface{}
}

func (e *Is) String() string { return e.Inner.String() + " is T" }

// --- Assignment and optionals ---

// Assign is `lhs = rhs`; Lhs must resolve to an LValue type.
type Assign struct {
	base
	Lhs Expr
	Rhs Expr
}

func (e *Assign) String() string { return e.Lhs.String() + " = " + e.Rhs.String() }

// BindOptional is `expr?` inside an OptionalEvaluation chain: unwraps
// `Optional<T>` to `T`, short-circuiting the enclosing chain on nil.
type BindOptional struct {
	base
	Inner Expr
}

func (e *BindOptional) String() string { return e.Inner.String() + "?" }

// ForceValue is `expr!`: force-unwraps `Optional<T>` to `T`, trapping at
// runtime on nil (out of scope here; the checker only computes its type).
type ForceValue struct {
	base
	Inner Expr
}

func (e *ForceValue) String() string { return e.Inner.String() + "!" }

// OptionalEvaluation wraps a subexpression containing one or more
// BindOptional nodes, re-wrapping the overall result type in Optional.
type OptionalEvaluation struct {
	base
	Inner Expr
}

func (e *OptionalEvaluation) String() string { return e.Inner.String() }

// --- Closures ---

// ClosureParam is one parameter of a Closure; Name may be "_" and
// Annotation may be nil when the parameter type must be inferred from
// context.
type ClosureParam struct {
	Name       string
	Annotation Node
}

// Closure is `{ params in body }`.
type Closure struct {
	base
	Params       []ClosureParam
	Body         Expr
	ReturnOf     Node // placeholder for a written return-type annotation
	HasInOutSelf bool
}

func (e *Closure) String() string { return "{ closure }" }

// --- Key paths ---

// KeyPathComponent is one step of a KeyPath literal.
type KeyPathComponent struct {
	MemberName string
}

// KeyPath is `\Root.member.member`.
type KeyPath struct {
	base
	RootOf     Node // placeholder for a written root-type annotation, may be nil
	Components []KeyPathComponent
}

func (e *KeyPath) String() string { return "\\KeyPath" }

// --- InOut ---

// InOutExpr is `&expr`, used at call sites passing an argument inout.
type InOutExpr struct {
	base
	Inner Expr
}

func (e *InOutExpr) String() string { return "&" + e.Inner.String() }

// Package locator implements hash-consed constraint locators: a stable,
// structural path from an anchor expression down to the specific
// subexpression or argument position a constraint concerns. Locators are
// the addressing scheme diagnostics and the ranking pass use to talk
// about "where" a constraint came from without holding onto AST pointers
// directly.
package locator

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sunholo/typesolver/internal/ast"
)

// PathElementKind distinguishes the steps a locator path can take.
type PathElementKind int

const (
	ApplyFunction PathElementKind = iota
	ApplyArgument
	Member
	SubscriptIndex
	TupleElement
	OptionalPayload
	ClosureResult
	ClosureParam
	ContextualType
	KeyPathComponent
	GenericArgument
)

func (k PathElementKind) String() string {
	switch k {
	case ApplyFunction:
		return "fn"
	case ApplyArgument:
		return "arg"
	case Member:
		return "member"
	case SubscriptIndex:
		return "subscript"
	case TupleElement:
		return "tuple"
	case OptionalPayload:
		return "optional"
	case ClosureResult:
		return "closure-result"
	case ClosureParam:
		return "closure-param"
	case ContextualType:
		return "contextual"
	case KeyPathComponent:
		return "keypath"
	case GenericArgument:
		return "generic-arg"
	default:
		return "?"
	}
}

// PathElement is one step of a locator path.
type PathElement struct {
	Kind  PathElementKind
	Index int    // argument/tuple/index position, when applicable
	Name  string // member/closure-param name, when applicable
}

func (p PathElement) key() string {
	return fmt.Sprintf("%d:%d:%s", p.Kind, p.Index, p.Name)
}

func (p PathElement) String() string {
	switch p.Kind {
	case ApplyArgument, TupleElement, SubscriptIndex:
		return fmt.Sprintf("%s[%d]", p.Kind, p.Index)
	case Member, ClosureParam, KeyPathComponent:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Name)
	default:
		return p.Kind.String()
	}
}

// Locator is a hash-consed (anchor, path) pair. Two locators built from
// the same anchor and an equal path sequence are the same *Locator
// pointer, so callers can compare locators with `==`.
type Locator struct {
	Anchor ast.Expr
	Path   []PathElement

	key string
}

// String renders a locator in the teacher's dotted-path diagnostic style.
func (l *Locator) String() string {
	if len(l.Path) == 0 {
		return fmt.Sprintf("@%d", l.Anchor.ID())
	}
	parts := make([]string, len(l.Path))
	for i, p := range l.Path {
		parts[i] = p.String()
	}
	return fmt.Sprintf("@%d/%s", l.Anchor.ID(), strings.Join(parts, "/"))
}

// Summary is a human-readable rendering suitable for diagnostic text.
// Member and closure-parameter names come from source identifiers, which
// may mix composed and decomposed Unicode forms for the same visual
// name (e.g. an accented identifier typed on different keyboards); NFC
// normalization collapses those to one canonical form so two locators
// naming "the same" member always render identically in diagnostics.
func (l *Locator) Summary() string { return norm.NFC.String(l.String()) }

// Allocator hash-conses locators for one constraint-system lifetime.
// It interns each locator under a string key built from its anchor id
// and path, so structurally identical locators always compare
// pointer-equal.
type Allocator struct {
	roots map[ast.NodeID]*Locator
	table map[string]*Locator
}

// NewAllocator creates an empty locator allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		roots: make(map[ast.NodeID]*Locator),
		table: make(map[string]*Locator),
	}
}

// Root returns (interning) the zero-path locator anchored on expr.
func (a *Allocator) Root(expr ast.Expr) *Locator {
	if l, ok := a.roots[expr.ID()]; ok {
		return l
	}
	l := &Locator{Anchor: expr, key: fmt.Sprintf("%d", expr.ID())}
	a.roots[expr.ID()] = l
	a.table[l.key] = l
	return l
}

// Extend returns (interning) a locator that appends elem to base's path.
func (a *Allocator) Extend(base *Locator, elem PathElement) *Locator {
	key := base.key + "|" + elem.key()
	if l, ok := a.table[key]; ok {
		return l
	}
	path := make([]PathElement, len(base.Path)+1)
	copy(path, base.Path)
	path[len(base.Path)] = elem
	l := &Locator{Anchor: base.Anchor, Path: path, key: key}
	a.table[key] = l
	return l
}

// Argument is a convenience wrapper for Extend(base, PathElement{Kind: ApplyArgument, Index: i}).
func (a *Allocator) Argument(base *Locator, i int) *Locator {
	return a.Extend(base, PathElement{Kind: ApplyArgument, Index: i})
}

// MemberAccess is a convenience wrapper for member-access path elements.
func (a *Allocator) MemberAccess(base *Locator, name string) *Locator {
	return a.Extend(base, PathElement{Kind: Member, Name: name})
}

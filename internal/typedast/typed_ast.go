// Package typedast defines the output of Solution Application (spec.md
// §4.10): a tree that mirrors the original internal/ast.Expr shape node
// for node, but with every type variable replaced by its solved ground
// type and every overload/member/cast resolved to one concrete choice.
// There is no ANF/Core lowering stage in this module's scope, so unlike
// the teacher's typed_ast.go (which wraps internal/core.CoreExpr, the
// output of AILANG's elaboration pass) each Typed* node here wraps the
// internal/ast.Expr it was produced from directly.
package typedast

import (
	"fmt"
	"strings"

	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/types"
)

// TypedExpr is the base every concrete Typed* node embeds. It carries the
// solved monomorphic type and a reference back to the source node it was
// produced from, the way the teacher's TypedExpr carries a Core pointer.
type TypedExpr struct {
	NodeID ast.NodeID
	Span   ast.Pos
	Type   types.Type
	Source ast.Expr
}

func (t TypedExpr) GetNodeID() ast.NodeID { return t.NodeID }
func (t TypedExpr) GetSpan() ast.Pos      { return t.Span }
func (t TypedExpr) GetType() types.Type   { return t.Type }
func (t TypedExpr) GetSource() ast.Expr   { return t.Source }

// TypedNode is the interface every concrete typed node implements.
type TypedNode interface {
	GetNodeID() ast.NodeID
	GetSpan() ast.Pos
	GetType() types.Type
	GetSource() ast.Expr
	String() string
}

// TypedLiteral covers IntegerLiteral/FloatLiteral/StringLiteral/
// BooleanLiteral once Solution Application has picked their defaulted or
// contextual type.
type TypedLiteral struct {
	TypedExpr
	Value interface{}
}

func (t TypedLiteral) String() string { return fmt.Sprintf("%v : %s", t.Value, t.Type) }

// TypedInterpolatedString is an InterpolatedString with each segment
// resolved.
type TypedInterpolatedString struct {
	TypedExpr
	Segments []TypedNode
}

func (t TypedInterpolatedString) String() string {
	parts := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		parts[i] = s.String()
	}
	return fmt.Sprintf("\"%s\" : %s", strings.Join(parts, ""), t.Type)
}

// TypedDeclRef is a DeclRef/OverloadedDeclRef once the overload set has
// collapsed to exactly one decl.
type TypedDeclRef struct {
	TypedExpr
	DeclName string
}

func (t TypedDeclRef) String() string { return fmt.Sprintf("%s : %s", t.DeclName, t.Type) }

// TypedMemberRef is a MemberRef/UnresolvedMember once the base's member
// has been resolved to one concrete declaration.
type TypedMemberRef struct {
	TypedExpr
	Base       TypedNode
	MemberName string
}

func (t TypedMemberRef) String() string {
	return fmt.Sprintf("%s.%s : %s", t.Base, t.MemberName, t.Type)
}

// TypedSubscript is a Subscript with its base, index arguments, and
// resolved subscript-member all typed.
type TypedSubscript struct {
	TypedExpr
	Base TypedNode
	Args []TypedNode
}

func (t TypedSubscript) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s] : %s", t.Base, strings.Join(parts, ", "), t.Type)
}

// TypedApply is an Apply once the chosen overload's FunctionType and
// each argument's ArgumentConversion have been resolved.
type TypedApply struct {
	TypedExpr
	Fn   TypedNode
	Args []TypedApplyArg
}

// TypedApplyArg is one resolved call argument: its label (if any) and
// typed value expression.
type TypedApplyArg struct {
	Label string
	Value TypedNode
}

func (t TypedApply) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		if a.Label != "" {
			parts[i] = fmt.Sprintf("%s: %s", a.Label, a.Value)
		} else {
			parts[i] = a.Value.String()
		}
	}
	return fmt.Sprintf("%s(%s) : %s", t.Fn, strings.Join(parts, ", "), t.Type)
}

// TypedIf is an If with condition, branches, and the unified result type.
type TypedIf struct {
	TypedExpr
	Cond TypedNode
	Then TypedNode
	Else TypedNode
}

func (t TypedIf) String() string {
	return fmt.Sprintf("if %s then %s else %s : %s", t.Cond, t.Then, t.Else, t.Type)
}

// TypedTuple is a Tuple with each element typed.
type TypedTuple struct {
	TypedExpr
	Elements []TypedNode
	Labels   []string
}

func (t TypedTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s) : %s", strings.Join(parts, ", "), t.Type)
}

// TypedArrayLiteral is an ArrayLiteral with every element's type unified
// to one element type.
type TypedArrayLiteral struct {
	TypedExpr
	Elements []TypedNode
}

func (t TypedArrayLiteral) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("[%s] : %s", strings.Join(parts, ", "), t.Type)
}

// TypedDictionaryLiteral is a DictionaryLiteral with key/value types
// unified across every entry.
type TypedDictionaryLiteral struct {
	TypedExpr
	Keys   []TypedNode
	Values []TypedNode
}

func (t TypedDictionaryLiteral) String() string {
	parts := make([]string, len(t.Keys))
	for i := range t.Keys {
		parts[i] = fmt.Sprintf("%s: %s", t.Keys[i], t.Values[i])
	}
	return fmt.Sprintf("[%s] : %s", strings.Join(parts, ", "), t.Type)
}

// TypedClosure is a Closure with its parameter types and body typed.
type TypedClosure struct {
	TypedExpr
	Params     []string
	ParamTypes []types.Type
	Body       TypedNode
}

func (t TypedClosure) String() string {
	return fmt.Sprintf("{ %v in %s } : %s", t.Params, t.Body, t.Type)
}

// TypedCoerce is a Coerce (as / as? / as!) once the conversion kind has
// been resolved.
type TypedCoerce struct {
	TypedExpr
	Value TypedNode
	Kind  ast.CoerceKind
}

func (t TypedCoerce) String() string { return fmt.Sprintf("%s as %s", t.Value, t.Type) }

// TypedForcedCast is a ForcedCast (as!) resolved to a concrete target type.
type TypedForcedCast struct {
	TypedExpr
	Value TypedNode
}

func (t TypedForcedCast) String() string { return fmt.Sprintf("%s as! %s", t.Value, t.Type) }

// TypedConditionalCast is a ConditionalCast (as?) resolved to
// Optional<target>.
type TypedConditionalCast struct {
	TypedExpr
	Value TypedNode
}

func (t TypedConditionalCast) String() string { return fmt.Sprintf("%s as? %s", t.Value, t.Type) }

// TypedIs is an Is (`expr is Type`) dynamic type test, typed Bool.
type TypedIs struct {
	TypedExpr
	Value TypedNode
}

func (t TypedIs) String() string { return fmt.Sprintf("%s is T", t.Value) }

// TypedAssign is an Assign with target and source typed.
type TypedAssign struct {
	TypedExpr
	Target TypedNode
	Value  TypedNode
}

func (t TypedAssign) String() string { return fmt.Sprintf("%s = %s", t.Target, t.Value) }

// TypedBindOptional is a BindOptional (`?`) once the underlying optional
// chain's object type has been resolved.
type TypedBindOptional struct {
	TypedExpr
	Value TypedNode
}

func (t TypedBindOptional) String() string { return fmt.Sprintf("%s? : %s", t.Value, t.Type) }

// TypedForceValue is a ForceValue (`!`) once the underlying optional's
// wrapped type has been resolved.
type TypedForceValue struct {
	TypedExpr
	Value TypedNode
}

func (t TypedForceValue) String() string { return fmt.Sprintf("%s! : %s", t.Value, t.Type) }

// TypedOptionalEvaluation closes an OptionalEvaluation chain, wrapping its
// result back up in Optional.
type TypedOptionalEvaluation struct {
	TypedExpr
	Value TypedNode
}

func (t TypedOptionalEvaluation) String() string {
	return fmt.Sprintf("optional-eval(%s) : %s", t.Value, t.Type)
}

// TypedParen is a Paren with its inner expression typed (kept distinct
// from its child so Solution Application's node-for-node mirroring holds,
// per spec.md §4.10).
type TypedParen struct {
	TypedExpr
	Value TypedNode
}

func (t TypedParen) String() string { return fmt.Sprintf("(%s)", t.Value) }

// TypedInOutExpr is an InOutExpr (`&x`) with its target typed.
type TypedInOutExpr struct {
	TypedExpr
	Value TypedNode
}

func (t TypedInOutExpr) String() string { return fmt.Sprintf("&%s : %s", t.Value, t.Type) }

// TypedKeyPath is a KeyPath literal resolved to its concrete
// KeyPath<Root, Value> instantiation (spec.md §4.10 item 5), with each
// component's member name carried alongside for display.
type TypedKeyPath struct {
	TypedExpr
	Components []string
}

func (t TypedKeyPath) String() string {
	return fmt.Sprintf("\\%s : %s", strings.Join(t.Components, "."), t.Type)
}

// TypedProgram is the root of a Solution Application result: every
// top-level expression the caller asked to type-check, each fully typed.
type TypedProgram struct {
	Exprs []TypedNode
}

// FormatType formats a type for display, falling back to "<unknown>" for
// a nil Type (e.g. a node Solution Application could not resolve because
// an earlier sibling already failed).
func FormatType(t types.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}

// PrintTypedProgram pretty-prints every top-level expression of prog, one
// per line, in the teacher's PrintTypedProgram style.
func PrintTypedProgram(prog *TypedProgram) string {
	var b strings.Builder
	for _, expr := range prog.Exprs {
		b.WriteString(expr.String())
		b.WriteString("\n")
	}
	return b.String()
}

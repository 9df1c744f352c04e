package solution

import (
	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/generator"
	"github.com/sunholo/typesolver/internal/typedast"
	"github.com/sunholo/typesolver/internal/types"
)

// Apply rewrites expr into a typedast.TypedNode by walking it the same
// shape generator.Generate did, looking each node's pre-solve type up in
// gen.NodeTypes and resolving it through this Solution. Grounded on the
// teacher's FormatType/PrintTypedProgram traversal idiom (typedast.go),
// generalized from printing an already-typed program to constructing one
// from a pre-solve AST plus a separately computed Solution.
func (s *Solution) Apply(gen *generator.Generator, expr ast.Expr) typedast.TypedNode {
	ty := s.nodeType(gen, expr)
	base := typedast.TypedExpr{NodeID: expr.ID(), Span: expr.Position(), Type: ty, Source: expr}

	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &typedast.TypedLiteral{TypedExpr: base, Value: e.Value}
	case *ast.FloatLiteral:
		return &typedast.TypedLiteral{TypedExpr: base, Value: e.Value}
	case *ast.StringLiteral:
		return &typedast.TypedLiteral{TypedExpr: base, Value: e.Value}
	case *ast.BooleanLiteral:
		return &typedast.TypedLiteral{TypedExpr: base, Value: e.Value}

	case *ast.InterpolatedString:
		segs := make([]typedast.TypedNode, len(e.Segments))
		for i, seg := range e.Segments {
			segs[i] = s.Apply(gen, seg)
		}
		return &typedast.TypedInterpolatedString{TypedExpr: base, Segments: segs}

	case *ast.DeclRef:
		return &typedast.TypedDeclRef{TypedExpr: base, DeclName: e.Decl.Name}

	case *ast.OverloadedDeclRef:
		return &typedast.TypedDeclRef{TypedExpr: base, DeclName: s.chosenOverload(gen, e.ID(), ty, e.Name)}

	case *ast.MemberRef:
		name := e.MemberName
		if len(e.Candidates) > 1 {
			name = s.chosenOverload(gen, e.ID(), ty, e.MemberName)
		}
		return &typedast.TypedMemberRef{TypedExpr: base, Base: s.Apply(gen, e.Base), MemberName: name}

	case *ast.UnresolvedMember:
		return &typedast.TypedMemberRef{TypedExpr: base, MemberName: e.MemberName}

	case *ast.Subscript:
		args := make([]typedast.TypedNode, len(e.Indices))
		for i, idx := range e.Indices {
			args[i] = s.Apply(gen, idx)
		}
		return &typedast.TypedSubscript{TypedExpr: base, Base: s.Apply(gen, e.Base), Args: args}

	case *ast.Apply:
		args := make([]typedast.TypedApplyArg, len(e.Args))
		for i, a := range e.Args {
			label := ""
			if i < len(e.Labels) {
				label = e.Labels[i]
			}
			args[i] = typedast.TypedApplyArg{Label: label, Value: s.Apply(gen, a)}
		}
		return &typedast.TypedApply{TypedExpr: base, Fn: s.Apply(gen, e.Fn), Args: args}

	case *ast.Paren:
		return &typedast.TypedParen{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.Tuple:
		elems := make([]typedast.TypedNode, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = s.Apply(gen, el)
		}
		return &typedast.TypedTuple{TypedExpr: base, Elements: elems, Labels: e.Labels}

	case *ast.ArrayLiteral:
		elems := make([]typedast.TypedNode, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = s.Apply(gen, el)
		}
		return &typedast.TypedArrayLiteral{TypedExpr: base, Elements: elems}

	case *ast.DictionaryLiteral:
		keys := make([]typedast.TypedNode, len(e.Entries))
		vals := make([]typedast.TypedNode, len(e.Entries))
		for i, entry := range e.Entries {
			keys[i] = s.Apply(gen, entry.Key)
			vals[i] = s.Apply(gen, entry.Value)
		}
		return &typedast.TypedDictionaryLiteral{TypedExpr: base, Keys: keys, Values: vals}

	case *ast.If:
		var elseNode typedast.TypedNode
		if e.Else != nil {
			elseNode = s.Apply(gen, e.Else)
		}
		return &typedast.TypedIf{TypedExpr: base, Cond: s.Apply(gen, e.Cond), Then: s.Apply(gen, e.Then), Else: elseNode}

	case *ast.Coerce:
		return &typedast.TypedCoerce{TypedExpr: base, Value: s.Apply(gen, e.Inner), Kind: e.Kind}

	case *ast.ForcedCast:
		return &typedast.TypedForcedCast{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.ConditionalCast:
		return &typedast.TypedConditionalCast{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.Is:
		return &typedast.TypedIs{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.Assign:
		return &typedast.TypedAssign{TypedExpr: base, Target: s.Apply(gen, e.Lhs), Value: s.Apply(gen, e.Rhs)}

	case *ast.BindOptional:
		return &typedast.TypedBindOptional{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.ForceValue:
		return &typedast.TypedForceValue{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.OptionalEvaluation:
		return &typedast.TypedOptionalEvaluation{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.Closure:
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = p.Name
		}
		var paramTypes []types.Type
		if fn, ok := ty.(*types.FunctionType); ok {
			paramTypes = make([]types.Type, len(fn.Params))
			for i, p := range fn.Params {
				paramTypes[i] = p.Type
			}
		}
		return &typedast.TypedClosure{TypedExpr: base, Params: params, ParamTypes: paramTypes, Body: s.Apply(gen, e.Body)}

	case *ast.InOutExpr:
		return &typedast.TypedInOutExpr{TypedExpr: base, Value: s.Apply(gen, e.Inner)}

	case *ast.KeyPath:
		components := make([]string, len(e.Components))
		for i, c := range e.Components {
			components[i] = c.MemberName
		}
		return &typedast.TypedKeyPath{TypedExpr: base, Components: components}

	default:
		return &typedast.TypedLiteral{TypedExpr: base, Value: nil}
	}
}

// ApplyProgram applies every top-level expression in exprs, in order.
func (s *Solution) ApplyProgram(gen *generator.Generator, exprs []ast.Expr) *typedast.TypedProgram {
	out := make([]typedast.TypedNode, len(exprs))
	for i, e := range exprs {
		out[i] = s.Apply(gen, e)
	}
	return &typedast.TypedProgram{Exprs: out}
}

func (s *Solution) nodeType(gen *generator.Generator, expr ast.Expr) types.Type {
	pre, ok := gen.NodeTypes[expr.ID()]
	if !ok {
		return types.TheErrorType
	}
	return s.Resolve(pre)
}

// chosenOverload resolves which candidate of an overload-bearing node the
// solver picked, by comparing each candidate's (resolved) type against
// the node's own resolved type. Falls back to the written name if no
// candidate matches (e.g. the branch that chose it was never explored
// because an earlier sibling failed first).
func (s *Solution) chosenOverload(gen *generator.Generator, id ast.NodeID, resolved types.Type, fallback string) string {
	for _, choice := range gen.OverloadCandidates[id] {
		if s.Resolve(choice.Type).Equals(resolved) {
			return choice.DeclName
		}
	}
	return fallback
}

package main

import (
	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/types"
)

// scenario is one of the built-in demo expressions this CLI can check,
// standing in for the source file a real front end would parse (spec.md
// §1 puts lexing/parsing out of scope for this module).
type scenario struct {
	Name        string
	Description string
	Build       func() ast.Expr
	Contextual  types.Type
}

type idGen struct{ n ast.NodeID }

func (g *idGen) next() ast.NodeID { g.n++; return g.n }

func plusDecls() []*ast.Decl {
	return []*ast.Decl{
		{Name: "+", Type: &types.FunctionType{
			Params: []types.Param{{Type: conformance.IntType}, {Type: conformance.IntType}},
			Result: conformance.IntType,
		}},
		{Name: "+", Type: &types.FunctionType{
			Params: []types.Param{{Type: conformance.DoubleType}, {Type: conformance.DoubleType}},
			Result: conformance.DoubleType,
		}},
	}
}

func fDecls() []*ast.Decl {
	return []*ast.Decl{
		{Name: "f", Type: &types.FunctionType{Params: []types.Param{{Type: conformance.IntType}}, Result: conformance.IntType}},
		{Name: "f", Type: &types.FunctionType{Params: []types.Param{{Type: conformance.DoubleType}}, Result: conformance.DoubleType}},
	}
}

// scenarios is the fixed demo catalog (spec.md §8's worked examples, minus
// scenario 4 — see DESIGN.md's Open Question decisions for why).
var scenarios = []scenario{
	{
		Name:        "int-add",
		Description: "let x = 1 + 2",
		Build: func() ast.Expr {
			g := &idGen{}
			plus := &ast.OverloadedDeclRef{Name: "+", Decls: plusDecls()}
			plus.NodeID = g.next()
			one := &ast.IntegerLiteral{Value: 1, Raw: "1"}
			one.NodeID = g.next()
			two := &ast.IntegerLiteral{Value: 2, Raw: "2"}
			two.NodeID = g.next()
			apply := &ast.Apply{Fn: plus, Args: []ast.Expr{one, two}, Labels: []string{"", ""}}
			apply.NodeID = g.next()
			return apply
		},
	},
	{
		Name:        "double-add-contextual",
		Description: "let x: Double = 1 + 2",
		Contextual:  conformance.DoubleType,
		Build: func() ast.Expr {
			g := &idGen{}
			plus := &ast.OverloadedDeclRef{Name: "+", Decls: plusDecls()}
			plus.NodeID = g.next()
			one := &ast.IntegerLiteral{Value: 1, Raw: "1"}
			one.NodeID = g.next()
			two := &ast.IntegerLiteral{Value: 2, Raw: "2"}
			two.NodeID = g.next()
			apply := &ast.Apply{Fn: plus, Args: []ast.Expr{one, two}, Labels: []string{"", ""}}
			apply.NodeID = g.next()
			return apply
		},
	},
	{
		Name:        "array-literal",
		Description: "let a = [1, 2, 3]",
		Build: func() ast.Expr {
			g := &idGen{}
			lits := make([]ast.Expr, 3)
			for i, v := range []int64{1, 2, 3} {
				lit := &ast.IntegerLiteral{Value: v}
				lit.NodeID = g.next()
				lits[i] = lit
			}
			arr := &ast.ArrayLiteral{Elements: lits}
			arr.NodeID = g.next()
			return arr
		},
	},
	{
		Name:        "nil-coalescing",
		Description: "let y = opt ?? 0, opt: Int?",
		Build: func() ast.Expr {
			g := &idGen{}
			qq := conformance.LoadBuiltins().LookupUnqualified("??")
			sig := &ast.GenericSignature{Params: []string{"T"}}
			decl := &ast.Decl{Name: "??", Signature: sig, Type: qq[0].Type}
			ref := &ast.OverloadedDeclRef{Name: "??", Decls: []*ast.Decl{decl}}
			ref.NodeID = g.next()

			opt := &ast.DeclRef{Decl: &ast.Decl{Name: "opt", Type: conformance.OptionalOf(conformance.IntType)}}
			opt.NodeID = g.next()
			zero := &ast.IntegerLiteral{Value: 0}
			zero.NodeID = g.next()

			apply := &ast.Apply{Fn: ref, Args: []ast.Expr{opt, zero}, Labels: []string{"", ""}}
			apply.NodeID = g.next()
			return apply
		},
	},
	{
		Name:        "cross-call-rebinding",
		Description: "f(1.5) + f(2) with f: (Int)->Int / (Double)->Double overloaded",
		Build: func() ast.Expr {
			g := &idGen{}
			leftF := &ast.OverloadedDeclRef{Name: "f", Decls: fDecls()}
			leftF.NodeID = g.next()
			leftLit := &ast.FloatLiteral{Value: 1.5, Raw: "1.5"}
			leftLit.NodeID = g.next()
			leftCall := &ast.Apply{Fn: leftF, Args: []ast.Expr{leftLit}, Labels: []string{""}}
			leftCall.NodeID = g.next()

			rightF := &ast.OverloadedDeclRef{Name: "f", Decls: fDecls()}
			rightF.NodeID = g.next()
			rightLit := &ast.IntegerLiteral{Value: 2, Raw: "2"}
			rightLit.NodeID = g.next()
			rightCall := &ast.Apply{Fn: rightF, Args: []ast.Expr{rightLit}, Labels: []string{""}}
			rightCall.NodeID = g.next()

			plus := &ast.OverloadedDeclRef{Name: "+", Decls: plusDecls()}
			plus.NodeID = g.next()
			outer := &ast.Apply{Fn: plus, Args: []ast.Expr{leftCall, rightCall}, Labels: []string{"", ""}}
			outer.NodeID = g.next()
			return outer
		},
	},
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return scenario{}, false
}

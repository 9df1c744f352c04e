package checker

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/config"
	"github.com/sunholo/typesolver/internal/ranking"
	"github.com/sunholo/typesolver/internal/types"
)

// idGen assigns every ast node built by a scenario a distinct NodeID, the
// role a real parser would play in production (spec.md §1 puts lexing and
// parsing out of scope, so tests build nodes directly).
type idGen struct{ n ast.NodeID }

func (g *idGen) next() ast.NodeID { g.n++; return g.n }

func collaborators() Collaborators {
	r := conformance.LoadBuiltins()
	return Collaborators{Lookup: r, Conformance: r, Defaults: r, Substitutor: r}
}

func plusDecls(g *idGen) []*ast.Decl {
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

func intLit(g *idGen, v int64) *ast.IntegerLiteral {
	lit := &ast.IntegerLiteral{Value: v}
	lit.NodeID = g.next()
	return lit
}

func floatLit(g *idGen, v float64) *ast.FloatLiteral {
	lit := &ast.FloatLiteral{Value: v}
	lit.NodeID = g.next()
	return lit
}

// Scenario 1: `let x = 1 + 2` — x : Int, `+` resolves to the Int overload,
// zero score (both literals default to their own protocol default).
func TestScenario1_IntLiteralAddition(t *testing.T) {
	g := &idGen{}
	plus := &ast.OverloadedDeclRef{Name: "+", Decls: plusDecls(g)}
	plus.NodeID = g.next()
	one := intLit(g, 1)
	two := intLit(g, 2)
	apply := &ast.Apply{Fn: plus, Args: []ast.Expr{one, two}, Labels: []string{"", ""}}
	apply.NodeID = g.next()

	result, sol, rep := CheckExpr(context.Background(), config.Default(), collaborators(), apply, nil)
	require.Nil(t, rep)
	require.Equal(t, "Int", result.GetType().String())
	require.True(t, sol.Score.Equal(ranking.Score{}), "expected zero score, got %+v", sol.Score)
}

// Scenario 2: `let x: Double = 1 + 2` — literal 1 and 2 bound to Double via
// the contextual type; `+` picks the Double overload; scoring reflects a
// non-default literal choice.
func TestScenario2_ContextualDoubleAddition(t *testing.T) {
	g := &idGen{}
	plus := &ast.OverloadedDeclRef{Name: "+", Decls: plusDecls(g)}
	plus.NodeID = g.next()
	one := intLit(g, 1)
	two := intLit(g, 2)
	apply := &ast.Apply{Fn: plus, Args: []ast.Expr{one, two}, Labels: []string{"", ""}}
	apply.NodeID = g.next()

	result, sol, rep := CheckExpr(context.Background(), config.Default(), collaborators(), apply, conformance.DoubleType)
	require.Nil(t, rep)
	require.Equal(t, "Double", result.GetType().String())
	require.Greater(t, sol.Score[ranking.ScoreLiteral], 0, "expected a NonDefaultLiteral charge, got %+v", sol.Score)
}

// Scenario 3: `let a = [1, 2, 3]` — a : Array<Int>; the element type
// defaults, then narrows to Int by literal conformance.
func TestScenario3_ArrayLiteralDefaulting(t *testing.T) {
	g := &idGen{}
	arr := &ast.ArrayLiteral{Elements: []ast.Expr{intLit(g, 1), intLit(g, 2), intLit(g, 3)}}
	arr.NodeID = g.next()

	result, _, rep := CheckExpr(context.Background(), config.Default(), collaborators(), arr, nil)
	require.Nil(t, rep)
	require.Equal(t, "Array<Int>", result.GetType().String())
}

// Scenario 5: `let y = opt ?? 0` where `opt: Int?` — y : Int; `??` resolves
// its generic parameter to Int, and the right-hand literal binds to Int.
func TestScenario5_NilCoalescing(t *testing.T) {
	g := &idGen{}
	qq := conformance.LoadBuiltins().LookupUnqualified("??")
	require.Len(t, qq, 1)

	genericSig := &ast.GenericSignature{Params: []string{"T"}}
	decl := &ast.Decl{Name: "??", Signature: genericSig, Type: qq[0].Type}
	ref := &ast.OverloadedDeclRef{Name: "??", Decls: []*ast.Decl{decl}}
	ref.NodeID = g.next()

	opt := &ast.DeclRef{Decl: &ast.Decl{Name: "opt", Type: conformance.OptionalOf(conformance.IntType)}}
	opt.NodeID = g.next()
	zero := intLit(g, 0)

	apply := &ast.Apply{Fn: ref, Args: []ast.Expr{opt, zero}, Labels: []string{"", ""}}
	apply.NodeID = g.next()

	result, _, rep := CheckExpr(context.Background(), config.Default(), collaborators(), apply, nil)
	require.Nil(t, rep)
	require.Equal(t, "Int", result.GetType().String())
}

// Scenario 6: overloaded `f(_ x: Int) -> Int` / `f(_ x: Double) -> Double`
// solving `f(1.5) + f(2)` — the outer `+` forces both calls to share a
// type; the left argument (1.5) pins that type to Double, so the right
// literal (2) is re-bound to Double and the right `f` also picks Double.
func TestScenario6_CrossCallLiteralRebinding(t *testing.T) {
	g := &idGen{}
	fDecls := func() []*ast.Decl {
		return []*ast.Decl{
			{Name: "f", Type: &types.FunctionType{Params: []types.Param{{Type: conformance.IntType}}, Result: conformance.IntType}},
			{Name: "f", Type: &types.FunctionType{Params: []types.Param{{Type: conformance.DoubleType}}, Result: conformance.DoubleType}},
		}
	}

	leftF := &ast.OverloadedDeclRef{Name: "f", Decls: fDecls()}
	leftF.NodeID = g.next()
	leftCall := &ast.Apply{Fn: leftF, Args: []ast.Expr{floatLit(g, 1.5)}, Labels: []string{""}}
	leftCall.NodeID = g.next()

	rightF := &ast.OverloadedDeclRef{Name: "f", Decls: fDecls()}
	rightF.NodeID = g.next()
	rightCall := &ast.Apply{Fn: rightF, Args: []ast.Expr{intLit(g, 2)}, Labels: []string{""}}
	rightCall.NodeID = g.next()

	plus := &ast.OverloadedDeclRef{Name: "+", Decls: plusDecls(g)}
	plus.NodeID = g.next()
	outer := &ast.Apply{Fn: plus, Args: []ast.Expr{leftCall, rightCall}, Labels: []string{"", ""}}
	outer.NodeID = g.next()

	result, sol, rep := CheckExpr(context.Background(), config.Default(), collaborators(), outer, nil)
	require.Nil(t, rep)
	require.Equal(t, "Double", result.GetType().String())
	require.Greater(t, sol.Score[ranking.ScoreLiteral], 0)

	if diff := cmp.Diff(ranking.Score{}, sol.Score); diff == "" {
		t.Fatal("expected a non-zero score for the re-defaulted literal, got zero")
	}
}

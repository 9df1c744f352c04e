package typedast

import (
	"testing"

	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/types"
)

func TestTypedExprFields(t *testing.T) {
	src := &ast.IntegerLiteral{Value: 5}
	te := TypedExpr{
		NodeID: 42,
		Span:   ast.Pos{Line: 10, Column: 5, File: "test.swift"},
		Type:   &types.Nominal{Name: "Int"},
		Source: src,
	}

	if te.GetNodeID() != 42 {
		t.Errorf("NodeID = %v, want 42", te.GetNodeID())
	}
	want := ast.Pos{Line: 10, Column: 5, File: "test.swift"}
	if te.GetSpan() != want {
		t.Errorf("Span = %v, want %v", te.GetSpan(), want)
	}
	if te.GetType().String() != "Int" {
		t.Errorf("Type = %v, want Int", te.GetType())
	}
	if te.GetSource() != src {
		t.Error("Source should round-trip to the original ast.Expr")
	}
}

func TestTypedLiteral(t *testing.T) {
	lit := &TypedLiteral{
		TypedExpr: TypedExpr{NodeID: 1, Type: &types.Nominal{Name: "Int"}},
		Value:     int64(42),
	}
	if lit.Value != int64(42) {
		t.Errorf("Value = %v, want 42", lit.Value)
	}
	var _ TypedNode = lit
	if got, want := lit.String(), "42 : Int"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypedDeclRef(t *testing.T) {
	ref := &TypedDeclRef{
		TypedExpr: TypedExpr{NodeID: 2, Type: &types.Nominal{Name: "Int"}},
		DeclName:  "x",
	}
	var _ TypedNode = ref
	if got, want := ref.String(), "x : Int"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTypedApply(t *testing.T) {
	fn := &TypedDeclRef{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "(Int, Int) -> Int"}}, DeclName: "+"}
	arg1 := &TypedLiteral{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Int"}}, Value: int64(1)}
	arg2 := &TypedLiteral{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Int"}}, Value: int64(2)}

	app := &TypedApply{
		TypedExpr: TypedExpr{NodeID: 3, Type: &types.Nominal{Name: "Int"}},
		Fn:        fn,
		Args: []TypedApplyArg{
			{Value: arg1},
			{Value: arg2},
		},
	}
	var _ TypedNode = app
	if len(app.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(app.Args))
	}
}

func TestTypedIf(t *testing.T) {
	cond := &TypedLiteral{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Bool"}}, Value: true}
	then := &TypedLiteral{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Int"}}, Value: int64(1)}
	els := &TypedLiteral{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Int"}}, Value: int64(2)}

	ifExpr := &TypedIf{
		TypedExpr: TypedExpr{NodeID: 4, Type: &types.Nominal{Name: "Int"}},
		Cond:      cond,
		Then:      then,
		Else:      els,
	}
	var _ TypedNode = ifExpr
	if ifExpr.Type.String() != "Int" {
		t.Errorf("Type = %v, want Int", ifExpr.Type)
	}
}

func TestTypedOptionalChain(t *testing.T) {
	inner := &TypedDeclRef{TypedExpr: TypedExpr{Type: &types.Optional{Wrapped: &types.Nominal{Name: "Int"}}}, DeclName: "maybeX"}
	bind := &TypedBindOptional{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Int"}}, Value: inner}
	eval := &TypedOptionalEvaluation{TypedExpr: TypedExpr{Type: &types.Optional{Wrapped: &types.Nominal{Name: "Int"}}}, Value: bind}

	var _ TypedNode = eval
	if eval.Type.String() != "Optional<Int>" {
		t.Errorf("Type = %v, want Optional<Int>", eval.Type)
	}
}

func TestPrintTypedProgram(t *testing.T) {
	prog := &TypedProgram{
		Exprs: []TypedNode{
			&TypedLiteral{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Int"}}, Value: int64(1)},
			&TypedLiteral{TypedExpr: TypedExpr{Type: &types.Nominal{Name: "Int"}}, Value: int64(2)},
		},
	}
	out := PrintTypedProgram(prog)
	if out != "1 : Int\n2 : Int\n" {
		t.Errorf("PrintTypedProgram = %q", out)
	}
}

func TestFormatTypeNil(t *testing.T) {
	if got := FormatType(nil); got != "<unknown>" {
		t.Errorf("FormatType(nil) = %q, want <unknown>", got)
	}
}

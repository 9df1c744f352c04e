package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/config"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/types"
)

type idGen struct{ n ast.NodeID }

func (g *idGen) next() ast.NodeID { g.n++; return g.n }

func newGen() (*Generator, *idGen) {
	sys := constraint.NewSystem(config.Default())
	return New(sys, conformance.LoadBuiltins()), &idGen{}
}

func kindsOf(cs []*constraint.Constraint) []constraint.Kind {
	out := make([]constraint.Kind, len(cs))
	for i, c := range cs {
		out[i] = c.Kind
	}
	return out
}

// ForcedCast with a resolved TargetType emits a CheckedCast relating the
// operand's type to the target, and resolves to the target type itself.
func TestForcedCast_EmitsCheckedCast(t *testing.T) {
	g, ids := newGen()
	inner := &ast.IntegerLiteral{Value: 1}
	inner.NodeID = ids.next()
	cast := &ast.ForcedCast{Inner: inner, TargetType: conformance.StringType}
	cast.NodeID = ids.next()

	result := g.Generate(cast, nil)
	require.Equal(t, conformance.StringType, result)

	found := false
	for _, c := range g.Sys.Store.Active() {
		if c.Kind == constraint.CheckedCast {
			found = true
			require.Equal(t, conformance.StringType, c.Second)
		}
	}
	require.True(t, found, "expected a CheckedCast constraint, got %v", kindsOf(g.Sys.Store.Active()))
}

// ConditionalCast wraps its result (and, when TargetType is unresolved,
// its fallback fresh variable) in Optional.
func TestConditionalCast_WrapsResultInOptional(t *testing.T) {
	g, ids := newGen()
	inner := &ast.IntegerLiteral{Value: 1}
	inner.NodeID = ids.next()
	cast := &ast.ConditionalCast{Inner: inner, TargetType: conformance.StringType}
	cast.NodeID = ids.next()

	result := g.Generate(cast, nil)
	opt, ok := result.(*types.Optional)
	require.True(t, ok, "expected Optional<T>, got %T", result)
	require.Equal(t, conformance.StringType, opt.Wrapped)
}

// A cast whose TargetType never got resolved falls back to an
// unconstrained fresh variable rather than emitting a CheckedCast with a
// nil operand.
func TestForcedCast_UnresolvedTargetFallsBackToFreshVar(t *testing.T) {
	g, ids := newGen()
	inner := &ast.IntegerLiteral{Value: 1}
	inner.NodeID = ids.next()
	cast := &ast.ForcedCast{Inner: inner, TargetType: nil}
	cast.NodeID = ids.next()

	result := g.Generate(cast, nil)
	_, ok := result.(*types.TypeVariable)
	require.True(t, ok, "expected a fresh TypeVariable fallback, got %T", result)

	for _, c := range g.Sys.Store.Active() {
		require.NotEqual(t, constraint.CheckedCast, c.Kind, "must not emit CheckedCast with an unresolved target")
	}
}

// `expr is Type` emits a CheckedCast and always types as Bool.
func TestIs_EmitsCheckedCastAndTypesBool(t *testing.T) {
	g, ids := newGen()
	inner := &ast.IntegerLiteral{Value: 1}
	inner.NodeID = ids.next()
	is := &ast.Is{Inner: inner, TargetType: conformance.StringType}
	is.NodeID = ids.next()

	result := g.Generate(is, nil)
	require.Equal(t, conformance.BoolType, result)

	found := false
	for _, c := range g.Sys.Store.Active() {
		if c.Kind == constraint.CheckedCast {
			found = true
		}
	}
	require.True(t, found, "expected a CheckedCast constraint for `is`")
}

// A KeyPath literal chains a Member constraint per component and emits a
// KeyPathConstraint binding a fresh variable for the overall expression.
func TestKeyPath_ChainsMemberConstraintsPerComponent(t *testing.T) {
	g, ids := newGen()
	kp := &ast.KeyPath{Components: []ast.KeyPathComponent{{MemberName: "a"}, {MemberName: "b"}}}
	kp.NodeID = ids.next()

	result := g.Generate(kp, nil)
	_, ok := result.(*types.TypeVariable)
	require.True(t, ok, "expected the key path expression to be a fresh TypeVariable")

	memberCount := 0
	var kpConstraint *constraint.Constraint
	for _, c := range g.Sys.Store.Active() {
		switch c.Kind {
		case constraint.Member:
			memberCount++
		case constraint.KeyPathConstraint:
			kpConstraint = c
		}
	}
	require.Equal(t, 2, memberCount, "expected one Member constraint per component")
	require.NotNil(t, kpConstraint, "expected a KeyPathConstraint")
	require.Equal(t, result, kpConstraint.First)
	require.NotNil(t, kpConstraint.Third, "KeyPathConstraint.Third must carry the root type")
}

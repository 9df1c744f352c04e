package simplifier

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/typesolver/internal/ast"
	"github.com/sunholo/typesolver/internal/conformance"
	"github.com/sunholo/typesolver/internal/config"
	"github.com/sunholo/typesolver/internal/constraint"
	"github.com/sunholo/typesolver/internal/locator"
	"github.com/sunholo/typesolver/internal/types"
)

func newSimplifier() (*Simplifier, *constraint.System) {
	sys := constraint.NewSystem(config.Default())
	r := conformance.LoadBuiltins()
	return New(sys, r, r, r), sys
}

// rootLoc returns a throwaway root locator anchored on a placeholder
// literal node, since these tests exercise constraint rules directly
// rather than generating from a real expression tree.
func rootLoc(sys *constraint.System) *locator.Locator {
	anchor := &ast.IntegerLiteral{Value: 0}
	anchor.NodeID = 1
	return sys.Locators.Root(anchor)
}

// Casting a type to itself always succeeds.
func TestCheckedCast_IdentitySucceeds(t *testing.T) {
	s, sys := newSimplifier()
	sys.CheckedCastC(conformance.IntType, conformance.IntType, rootLoc(sys))
	require.Nil(t, s.Run())
}

// Casting Int to String has no relation (no Optional wrapping, no
// existential) and fails with TC001.
func TestCheckedCast_UnrelatedTypesFail(t *testing.T) {
	s, sys := newSimplifier()
	sys.CheckedCastC(conformance.IntType, conformance.StringType, rootLoc(sys))
	rep := s.Run()
	require.NotNil(t, rep)
	require.Equal(t, "TC001", rep.Code)
}

// Casting Int? down to Int succeeds by unwrapping the Optional side.
func TestCheckedCast_OptionalUnwrapSucceeds(t *testing.T) {
	s, sys := newSimplifier()
	sys.CheckedCastC(conformance.OptionalOf(conformance.IntType), conformance.IntType, rootLoc(sys))
	require.Nil(t, s.Run())
}

// Casting a concrete Equatable-conforming type to `any Equatable` succeeds
// by existential opening.
func TestCheckedCast_ExistentialConformanceSucceeds(t *testing.T) {
	s, sys := newSimplifier()
	sys.CheckedCastC(conformance.IntType, types.NewExistential("Equatable"), rootLoc(sys))
	require.Nil(t, s.Run())
}

// Casting a type that does not conform to every required protocol fails.
func TestCheckedCast_ExistentialMissingConformanceFails(t *testing.T) {
	s, sys := newSimplifier()
	sys.CheckedCastC(conformance.IntType, types.NewExistential("Comparable", "NeverConforms"), rootLoc(sys))
	rep := s.Run()
	require.NotNil(t, rep)
	require.Equal(t, "TC001", rep.Code)
}

// A cast whose subject is still a type variable defers rather than
// failing outright.
func TestCheckedCast_DefersOnTypeVariable(t *testing.T) {
	s, sys := newSimplifier()
	tv := sys.Fresh(rootLoc(sys), 0)
	sys.CheckedCastC(tv, conformance.StringType, rootLoc(sys))
	require.Nil(t, s.Run())
	_, bound := sys.Graph.Binding(tv.ID)
	require.False(t, bound, "an unresolved cast subject must not get spuriously bound")
}

// Once root and value are concrete, the key-path constraint binds the
// key-path variable to KeyPath<root, value>.
func TestKeyPath_BindsConcreteKeyPathType(t *testing.T) {
	s, sys := newSimplifier()
	kp := sys.Fresh(rootLoc(sys), 0)
	sys.KeyPathC(kp, conformance.StringType, conformance.IntType, rootLoc(sys))
	require.Nil(t, s.Run())

	bound, ok := sys.Graph.Binding(kp.ID)
	require.True(t, ok)
	nom, ok := bound.(*types.Nominal)
	require.True(t, ok, "expected a Nominal KeyPath<Root, Value>, got %T", bound)
	require.Equal(t, "KeyPath", nom.Name)
	require.Equal(t, []types.Type{conformance.StringType, conformance.IntType}, nom.Args)
}

// A key-path constraint whose value is still unresolved defers.
func TestKeyPath_DefersUntilValueResolved(t *testing.T) {
	s, sys := newSimplifier()
	kp := sys.Fresh(rootLoc(sys), 0)
	value := sys.Fresh(rootLoc(sys), 0)
	sys.KeyPathC(kp, conformance.StringType, value, rootLoc(sys))
	require.Nil(t, s.Run())

	_, bound := sys.Graph.Binding(kp.ID)
	require.False(t, bound, "key path must stay unbound until its value type resolves")
}

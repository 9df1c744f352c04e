// Package constraint defines the Constraint sum type and the union-find
// Constraint Graph / append-only Constraint Store that hold a
// ConstraintSystem's live constraint set during solving.
package constraint

import (
	"fmt"

	"github.com/sunholo/typesolver/internal/locator"
	"github.com/sunholo/typesolver/internal/types"
)

// Kind enumerates every constraint kind named in spec.md §3.
type Kind int

const (
	Bind Kind = iota
	Equal
	Subtype
	Conversion
	ArgumentConversion
	OperatorArgumentConversion
	BridgingConversion
	CheckedCast
	LiteralConformsTo
	ConformsTo
	SelfObjectOfProtocol
	Member
	UnresolvedMember
	ValueMember
	TypeMember
	Defaultable
	ApplicableFunction
	DynamicTypeOf
	OptionalObject
	EscapableFunctionOf
	OpenedExistentialOf
	KeyPathConstraint
	KeyPathApplication
	BindOverload
	Disjunction
	Conjunction
)

func (k Kind) String() string {
	names := [...]string{
		"Bind", "Equal", "Subtype", "Conversion", "ArgumentConversion",
		"OperatorArgumentConversion", "BridgingConversion", "CheckedCast",
		"LiteralConformsTo", "ConformsTo", "SelfObjectOfProtocol", "Member",
		"UnresolvedMember", "ValueMember", "TypeMember", "Defaultable",
		"ApplicableFunction", "DynamicTypeOf", "OptionalObject",
		"EscapableFunctionOf", "OpenedExistentialOf", "KeyPath",
		"KeyPathApplication", "BindOverload", "Disjunction", "Conjunction",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// OverloadChoiceKind enumerates spec.md §3's OverloadChoice variants.
type OverloadChoiceKind int

const (
	ChoiceDecl OverloadChoiceKind = iota
	ChoiceDeclViaDynamic
	ChoiceDeclViaBridge
	ChoiceDeclViaUnwrappedOptional
	ChoiceTupleIndex
	ChoiceKeyPathApplication
	ChoiceBaseType
)

// OverloadChoice is one candidate of a BindOverload/disjunction constraint.
type OverloadChoice struct {
	Kind     OverloadChoiceKind
	DeclName string
	Type     types.Type // the (possibly generic, un-opened) type of the choice
	TupleIdx int        // for ChoiceTupleIndex
}

func (c OverloadChoice) String() string {
	switch c.Kind {
	case ChoiceTupleIndex:
		return fmt.Sprintf(".%d", c.TupleIdx)
	default:
		return c.DeclName
	}
}

// Constraint is one node of the constraint graph: either a simple binary
// relation between two types, or a structural constraint (Disjunction,
// Conjunction, BindOverload) whose payload is a set of nested
// Constraints/choices. Grounded on the teacher's ClassConstraint (types.go)
// and Constraint struct, generalized from a single (Class, Type) pair to
// the full kind/locator/fix vocabulary of spec.md §3.
type Constraint struct {
	ID      int
	Kind    Kind
	First   types.Type
	Second  types.Type // nil for unary kinds (Defaultable, ConformsTo's subject is First)
	Third   types.Type // KeyPathConstraint's third operand (the key-path's root type); nil otherwise
	Locator *locator.Locator

	// Member/UnresolvedMember payload.
	MemberName string

	// ConformsTo/SelfObjectOfProtocol/LiteralConformsTo payload.
	ProtocolName string

	// Disjunction/Conjunction payload: nested constraints, one of which
	// (Disjunction) or all of which (Conjunction) must hold.
	Nested []*Constraint

	// BindOverload payload.
	Choices []OverloadChoice

	// Favored marks a disjunction term the generator or favoring pass
	// wants tried first (spec.md §4.8.1, §4.9's Supplemented favoring).
	Favored bool

	// Disabled marks a constraint the solver has already decided not to
	// pursue down the current path (used for shrinking, §4.8.2).
	Disabled bool
}

func (c *Constraint) String() string {
	switch c.Kind {
	case ConformsTo, LiteralConformsTo, SelfObjectOfProtocol:
		return fmt.Sprintf("%s conforms to %s", c.First, c.ProtocolName)
	case Member, UnresolvedMember, ValueMember, TypeMember:
		return fmt.Sprintf("%s.%s : %s", c.First, c.MemberName, c.Second)
	case Disjunction:
		return fmt.Sprintf("disjunction(%d terms)", len(c.Nested))
	case Conjunction:
		return fmt.Sprintf("conjunction(%d terms)", len(c.Nested))
	case BindOverload:
		return fmt.Sprintf("%s bound to one of %d overloads", c.First, len(c.Choices))
	case Defaultable:
		return fmt.Sprintf("%s defaultable", c.First)
	default:
		return fmt.Sprintf("%s %s %s", c.First, c.Kind, c.Second)
	}
}

// IsStructural reports whether a constraint's payload is other
// constraints rather than a pair of types.
func (c *Constraint) IsStructural() bool {
	return c.Kind == Disjunction || c.Kind == Conjunction || c.Kind == BindOverload
}

package conformance

import "github.com/sunholo/typesolver/internal/types"

// IntType, DoubleType, StringType and BoolType are the Nominal ground types the builtin
// environment reasons about. Grounded on the teacher's predefined TInt/
// TFloat/TString/TBool (types.go), re-expressed as spec.md §3 Nominals
// since the constraint system proper never sees TCon directly.
var (
	IntType    = &types.Nominal{Name: "Int"}
	DoubleType = &types.Nominal{Name: "Double"}
	StringType = &types.Nominal{Name: "String"}
	BoolType   = &types.Nominal{Name: "Bool"}
)

func arrayType(elem types.Type) *types.Nominal    { return &types.Nominal{Name: "Array", Args: []types.Type{elem}} }
func dictType(k, v types.Type) *types.Nominal      { return &types.Nominal{Name: "Dictionary", Args: []types.Type{k, v}} }
func optionalType(wrapped types.Type) *types.Optional { return &types.Optional{Wrapped: wrapped} }

// LoadBuiltins returns a Registry sufficient to solve every worked
// scenario in spec.md §8: Int/Double/String/Bool, Array<T>,
// Dictionary<K,V>, Optional<T>, the integer/float/string/boolean literal
// protocols, and the `+`/`-`/`*`/`??` operators. Grounded on the
// teacher's LoadBuiltinInstances (instances.go), generalized from a flat
// Num/Eq/Ord/Show class table to named-protocol conformances plus
// overloaded operator declarations.
func LoadBuiltins() *Registry {
	r := NewRegistry()

	for _, t := range []types.Type{IntType, DoubleType, StringType, BoolType} {
		r.AddConformance(&ConformanceRef{Protocol: "Equatable", TypeHead: t, Witness: map[string]string{"==": "builtin_eq"}})
	}
	for _, t := range []types.Type{IntType, DoubleType, StringType} {
		r.AddConformance(&ConformanceRef{Protocol: "Comparable", TypeHead: t, Witness: map[string]string{"<": "builtin_lt"}})
	}
	r.AddRefinement("Comparable", "Equatable")

	for _, t := range []types.Type{IntType, DoubleType} {
		r.AddConformance(&ConformanceRef{Protocol: "Numeric", TypeHead: t, Witness: map[string]string{
			"+": "builtin_add", "-": "builtin_sub", "*": "builtin_mul",
		}})
	}

	r.AddConformance(&ConformanceRef{Protocol: "ExpressibleByIntegerLiteral", TypeHead: IntType})
	r.AddConformance(&ConformanceRef{Protocol: "ExpressibleByIntegerLiteral", TypeHead: DoubleType})
	r.AddConformance(&ConformanceRef{Protocol: "ExpressibleByFloatLiteral", TypeHead: DoubleType})
	r.AddConformance(&ConformanceRef{Protocol: "ExpressibleByStringLiteral", TypeHead: StringType})
	r.AddConformance(&ConformanceRef{Protocol: "ExpressibleByBooleanLiteral", TypeHead: BoolType})

	r.SetDefault("ExpressibleByIntegerLiteral", IntType)
	r.SetDefault("ExpressibleByFloatLiteral", DoubleType)
	r.SetDefault("ExpressibleByStringLiteral", StringType)
	r.SetDefault("ExpressibleByBooleanLiteral", BoolType)

	// Operator overload sets: the generator turns `a + b` into a
	// disjunction of DeclRef candidates bound by ApplicableFunction
	// constraints, the same way it does any other overloaded call.
	for _, name := range []string{"+", "-", "*"} {
		for _, t := range []types.Type{IntType, DoubleType} {
			r.AddDecl(name, Candidate{
				DeclName: name,
				Type: &types.FunctionType{
					Params: []types.Param{{Type: t}, {Type: t}},
					Result: t,
				},
			})
		}
	}
	genericT := &types.GenericParam{Name: "T"}
	r.AddDecl("??", Candidate{
		DeclName:  "??",
		Signature: &types.GenericSignature{Params: []string{"T"}},
		Type: &types.FunctionType{
			Params: []types.Param{
				{Type: optionalType(genericT)},
				{Type: genericT},
			},
			Result: genericT,
		},
	})

	return r
}

// ArrayOf is exported for the generator's Array-literal handling.
func ArrayOf(elem types.Type) *types.Nominal { return arrayType(elem) }

// DictionaryOf is exported for the generator's Dictionary-literal handling.
func DictionaryOf(k, v types.Type) *types.Nominal { return dictType(k, v) }

// OptionalOf is exported for BindOptional/ForceValue handling.
func OptionalOf(t types.Type) *types.Optional { return optionalType(t) }

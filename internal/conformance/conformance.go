// Package conformance defines the name-lookup and protocol-conformance
// collaborators spec.md §6 leaves external, plus a builtin implementation
// sufficient to run the worked examples of spec.md §8.
package conformance

import "github.com/sunholo/typesolver/internal/types"

// ConformanceRef is an opaque witness-table handle returned by
// Checker.Conforms. Modeled after the teacher's ClassInstance/
// Dict (instances.go): a method-name-to-implementation-identifier map,
// renamed to the spec's vocabulary and stripped of AILANG's superclass-
// derivation bookkeeping (conformance-checking keeps that concept, but as
// a checker-side concern — see Checker.Conforms — not a field on the ref).
type ConformanceRef struct {
	Protocol string
	TypeHead types.Type
	Witness  map[string]string
}

// Candidate is one overload NameLookup can return for a given name.
type Candidate struct {
	DeclName  string
	Type      types.Type
	Signature *types.GenericSignature
}

// NameLookup resolves an unqualified or member name to its candidate
// declarations. Grounded on the teacher's InstanceEnv.Lookup (instances.go)
// generalized from a single class-instance lookup to a general overload
// set lookup.
type NameLookup interface {
	LookupUnqualified(name string) []Candidate
	LookupMember(baseType types.Type, name string) []Candidate
}

// Checker checks whether a concrete type conforms to a named protocol,
// including superclass/refinement derivation (e.g. a Comparable instance
// also satisfies Equatable), mirroring the teacher's Ord-provides-Eq
// derivation in InstanceEnv.Lookup.
type Checker interface {
	Conforms(t types.Type, protocol string) (*ConformanceRef, bool)
}

// Substitutor resolves a DependentMember projection once its Base is
// concrete, by looking up the associated-type binding in the conforming
// type's witness table.
type Substitutor interface {
	AssocType(ref *ConformanceRef, name string) (types.Type, bool)
}

// DefaultLiteralTypes reports the default ground type for a literal
// protocol, used by Binding Inference (spec.md §4.7) and Defaultable
// constraints. Grounded on InstanceEnv.DefaultFor (instances.go).
type DefaultLiteralTypes interface {
	DefaultFor(literalProtocol string) (types.Type, bool)
}

// Registry implements all four collaborator interfaces against one
// in-memory builtin environment.
type Registry struct {
	instances map[string][]*ConformanceRef // protocol -> refs, keyed by TypeHead identity
	decls     map[string][]Candidate       // name -> candidates
	members   map[string]map[string][]Candidate
	defaults  map[string]types.Type
	refines   map[string][]string // protocol -> protocols it also satisfies (Ord -> [Eq])
}

// NewRegistry creates an empty registry; call the Add*/SetDefault builders (or
// LoadBuiltins) to populate it.
func NewRegistry() *Registry {
	return &Registry{
		instances: make(map[string][]*ConformanceRef),
		decls:     make(map[string][]Candidate),
		members:   make(map[string]map[string][]Candidate),
		defaults:  make(map[string]types.Type),
		refines:   make(map[string][]string),
	}
}

func (r *Registry) AddConformance(ref *ConformanceRef) { r.instances[ref.Protocol] = append(r.instances[ref.Protocol], ref) }
func (r *Registry) AddDecl(name string, c Candidate)   { r.decls[name] = append(r.decls[name], c) }
func (r *Registry) AddMember(typeName, member string, c Candidate) {
	if r.members[typeName] == nil {
		r.members[typeName] = make(map[string][]Candidate)
	}
	r.members[typeName][member] = append(r.members[typeName][member], c)
}
func (r *Registry) SetDefault(protocol string, t types.Type) { r.defaults[protocol] = t }
func (r *Registry) AddRefinement(protocol, refines string)   { r.refines[protocol] = append(r.refines[protocol], refines) }

func (r *Registry) LookupUnqualified(name string) []Candidate { return r.decls[name] }

func (r *Registry) LookupMember(baseType types.Type, name string) []Candidate {
	key := baseType.String()
	if byName, ok := r.members[key]; ok {
		return byName[name]
	}
	return nil
}

func (r *Registry) Conforms(t types.Type, protocol string) (*ConformanceRef, bool) {
	for _, ref := range r.instances[protocol] {
		if ref.TypeHead.Equals(t) {
			return ref, true
		}
	}
	for refining, implied := range r.refines {
		for _, p := range implied {
			if p != protocol {
				continue
			}
			if _, ok := r.Conforms(t, refining); ok {
				return &ConformanceRef{Protocol: protocol, TypeHead: t, Witness: map[string]string{}}, true
			}
		}
	}
	return nil, false
}

// containerAssocIndex gives the structural associated-type projection for
// the builtin container Nominals: Array<Element>'s sole argument is its
// Element type, Dictionary<Key,Value>'s two arguments are Key and Value,
// in declaration order. A user-defined conformance's associated types
// would instead come from its ConformanceRef.Witness table; the builtin
// environment has no such conformances registered (Array/Dictionary
// don't declare themselves as conforming to anything with associated
// types — their element typing is purely structural), so this structural
// table is the only source AssocType has to consult.
var containerAssocIndex = map[string]map[string]int{
	"Array":      {"Element": 0},
	"Dictionary": {"Key": 0, "Value": 1},
}

func (r *Registry) AssocType(ref *ConformanceRef, name string) (types.Type, bool) {
	if ref == nil || ref.TypeHead == nil {
		return nil, false
	}
	nom, ok := ref.TypeHead.(*types.Nominal)
	if !ok {
		return nil, false
	}
	idx, ok := containerAssocIndex[nom.Name][name]
	if !ok || idx >= len(nom.Args) {
		return nil, false
	}
	return nom.Args[idx], true
}

func (r *Registry) DefaultFor(literalProtocol string) (types.Type, bool) {
	t, ok := r.defaults[literalProtocol]
	return t, ok
}

package types

import (
	"fmt"
	"strings"
)

// Nominal is a named type with optional generic arguments, e.g. `Int`,
// `Array<String>`, `Dictionary<String, Int>`. Generalizes the teacher's
// TApp (types.go) by giving the head a stable declaration name instead of
// a nested Type constructor, matching spec.md §3's flat (Name, Args) shape.
type Nominal struct {
	Name string
	Args []Type
}

func (t *Nominal) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

func (t *Nominal) Equals(other Type) bool {
	o, ok := other.(*Nominal)
	if !ok || t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t *Nominal) Substitute(subs map[string]Type) Type {
	if len(t.Args) == 0 {
		return t
	}
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(subs)
	}
	return &Nominal{Name: t.Name, Args: args}
}

// FunctionType is spec.md §3's `Function` type: parameters with labels
// and inout/variadic flags, a throws flag, and a result type. Generalizes
// the teacher's TFunc/TFunc2 (types.go, types_v2.go) which carry no
// parameter labels and an effect row instead of a throws flag.
type FunctionType struct {
	Params  []Param
	Throws  bool
	Result  Type
}

// Param is one parameter of a FunctionType.
type Param struct {
	Label     string // "" if unlabeled
	Type      Type
	IsInOut   bool
	IsVariadic bool
	HasDefault bool
}

func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		prefix := ""
		if p.IsInOut {
			prefix = "inout "
		}
		suffix := ""
		if p.IsVariadic {
			suffix = "..."
		}
		if p.Label != "" {
			parts[i] = fmt.Sprintf("%s: %s%s%s", p.Label, prefix, p.Type.String(), suffix)
		} else {
			parts[i] = fmt.Sprintf("%s%s%s", prefix, p.Type.String(), suffix)
		}
	}
	throws := ""
	if t.Throws {
		throws = " throws"
	}
	return fmt.Sprintf("(%s)%s -> %s", strings.Join(parts, ", "), throws, t.Result.String())
}

func (t *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(t.Params) != len(o.Params) || t.Throws != o.Throws {
		return false
	}
	for i := range t.Params {
		a, b := t.Params[i], o.Params[i]
		if a.Label != b.Label || a.IsInOut != b.IsInOut || a.IsVariadic != b.IsVariadic || !a.Type.Equals(b.Type) {
			return false
		}
	}
	return t.Result.Equals(o.Result)
}

func (t *FunctionType) Substitute(subs map[string]Type) Type {
	params := make([]Param, len(t.Params))
	for i, p := range t.Params {
		np := p
		np.Type = p.Type.Substitute(subs)
		params[i] = np
	}
	return &FunctionType{Params: params, Throws: t.Throws, Result: t.Result.Substitute(subs)}
}

// TupleType is spec.md §3's `Tuple`: an ordered, labeled product type.
// Generalizes the teacher's TTuple (types.go) by adding per-element
// labels.
type TupleType struct {
	Elements []Type
	Labels   []string
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		if i < len(t.Labels) && t.Labels[i] != "" {
			parts[i] = fmt.Sprintf("%s: %s", t.Labels[i], e.String())
		} else {
			parts[i] = e.String()
		}
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (t *TupleType) Equals(other Type) bool {
	o, ok := other.(*TupleType)
	if !ok || len(t.Elements) != len(o.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equals(o.Elements[i]) {
			return false
		}
		li, lj := "", ""
		if i < len(t.Labels) {
			li = t.Labels[i]
		}
		if i < len(o.Labels) {
			lj = o.Labels[i]
		}
		if li != lj {
			return false
		}
	}
	return true
}

func (t *TupleType) Substitute(subs map[string]Type) Type {
	elems := make([]Type, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.Substitute(subs)
	}
	return &TupleType{Elements: elems, Labels: t.Labels}
}

package types

import (
	"sort"
	"strings"
)

// Existential is `any P1 & P2 & ...` — a protocol composition type that
// erases the concrete conforming type. Its requirement set reuses the
// teacher's Row/RowVar row-polymorphism machinery (types_v2.go), which
// was built for extensible effect rows: here the row's labels are
// protocol names (mapped to TUnit, the same "presence-only" encoding the
// teacher already uses for effect rows) and an open Tail lets a still-
// unresolved existential gain further protocol requirements during
// generation before the solver closes it.
type Existential struct {
	Requirements *Row // Kind == ProtocolRow; Labels are protocol names
}

// ProtocolRow is the Kind used for Existential requirement rows.
var ProtocolRow = KRow{ElemKind: protocolKind{}}

type protocolKind struct{}

func (protocolKind) kind()          {}
func (protocolKind) String() string { return "Protocol" }
func (protocolKind) Equals(other Kind) bool {
	_, ok := other.(protocolKind)
	return ok
}

// NewExistential builds a closed existential over the given protocol names.
func NewExistential(protocols ...string) *Existential {
	labels := make(map[string]Type, len(protocols))
	for _, p := range protocols {
		labels[p] = TUnit
	}
	return &Existential{Requirements: &Row{Kind: ProtocolRow, Labels: labels}}
}

func (t *Existential) String() string {
	if t.Requirements == nil || len(t.Requirements.Labels) == 0 {
		return "any"
	}
	names := make([]string, 0, len(t.Requirements.Labels))
	for name := range t.Requirements.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return "any " + strings.Join(names, " & ")
}

func (t *Existential) Equals(other Type) bool {
	o, ok := other.(*Existential)
	if !ok {
		return false
	}
	return t.Requirements.Equals(o.Requirements)
}

func (t *Existential) Substitute(subs map[string]Type) Type {
	if t.Requirements == nil {
		return t
	}
	sub := t.Requirements.Substitute(subs)
	row, ok := sub.(*Row)
	if !ok {
		return t
	}
	return &Existential{Requirements: row}
}

// Protocols returns the sorted protocol-name requirement list.
func (t *Existential) Protocols() []string {
	names := make([]string, 0, len(t.Requirements.Labels))
	for name := range t.Requirements.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package types

// DependentMember is `Base.AssocType` — an associated-type projection
// that cannot be resolved until Base is concrete enough for the
// conformance collaborator to look up its witness. Has no teacher analog
// (AILANG's type classes carry no associated types, only methods);
// grounded on spec.md §3 directly.
type DependentMember struct {
	Base          Type
	AssocTypeName string
	Protocol      string // the protocol declaring AssocTypeName
}

func (t *DependentMember) String() string {
	return t.Base.String() + "." + t.AssocTypeName
}

func (t *DependentMember) Equals(other Type) bool {
	o, ok := other.(*DependentMember)
	return ok && t.AssocTypeName == o.AssocTypeName && t.Protocol == o.Protocol && t.Base.Equals(o.Base)
}

func (t *DependentMember) Substitute(subs map[string]Type) Type {
	return &DependentMember{
		Base:          t.Base.Substitute(subs),
		AssocTypeName: t.AssocTypeName,
		Protocol:      t.Protocol,
	}
}

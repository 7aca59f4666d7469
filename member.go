// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

// DynamicTypeMember is one member within an aggregate (STRUCTURE, UNION,
// BITSET), or one named flag within a BITMASK, or one literal within an
// ENUM. The same struct is reused for all three roles: a
// BITMASK flag's Index is its bit position, an ENUM literal's Index is its
// ordinal and its first (only) label is its 32-bit value.
type DynamicTypeMember struct {
	ID    MemberId
	Name  string
	Index int

	// Type is the member's own type. nil for BITMASK flags and ENUM
	// literals, which have no substructure of their own.
	Type *DynamicType

	// DefaultValue is the member's default literal, in string form.
	DefaultValue string

	// UnionLabels is the set of 64-bit case labels this member answers to
	// (UNION only). For an ENUM literal the single label is its numeric
	// value; for a BITMASK flag it is unused (Index is authoritative).
	UnionLabels map[int64]struct{}

	// labelOrder preserves UnionLabels insertion order (Go maps have
	// none), so FirstLabel can return the first label for GetUnionLabel.
	labelOrder []int64

	// IsDefaultLabel marks the UNION default branch.
	IsDefaultLabel bool

	Annotations AnnotationStore
}

// newMember returns a DynamicTypeMember with its label set initialized.
func newMember(id MemberId, name string, index int) *DynamicTypeMember {
	return &DynamicTypeMember{
		ID:          id,
		Name:        name,
		Index:       index,
		UnionLabels: make(map[int64]struct{}),
	}
}

// NewMember returns a member named name with an auto-assigned ID (resolved
// by the builder's AddMember), for callers outside this package assembling
// a STRUCTURE/UNION/BITSET member table one field at a time (e.g. a CLI
// reading a type description from an external format).
func NewMember(name string) *DynamicTypeMember {
	return newMember(MemberIDInvalid, name, 0)
}

// AddLabel adds label to the member's case set; returns false if label was
// already present on this member. A label shared across members is
// rejected separately: AddMember returns RetcodeBadParameter, and
// Consistent reports ViolationDuplicateUnionLabel.
func (m *DynamicTypeMember) AddLabel(label int64) bool {
	if _, dup := m.UnionLabels[label]; dup {
		return false
	}
	m.UnionLabels[label] = struct{}{}
	m.labelOrder = append(m.labelOrder, label)
	return true
}

// HasLabel reports whether label selects this UNION member.
func (m *DynamicTypeMember) HasLabel(label int64) bool {
	_, ok := m.UnionLabels[label]
	return ok
}

// FirstLabel returns the member's first label in insertion order, or 0 for
// the default branch; this is GetUnionLabel's contract.
func (m *DynamicTypeMember) FirstLabel() int64 {
	if m.IsDefaultLabel || len(m.labelOrder) == 0 {
		return 0
	}
	return m.labelOrder[0]
}

// clone returns a deep-enough copy for copy-on-build: the member's own
// slices/maps are duplicated so later builder mutation cannot retroactively
// change an already-built type.
func (m *DynamicTypeMember) clone() *DynamicTypeMember {
	c := *m
	c.UnionLabels = make(map[int64]struct{}, len(m.UnionLabels))
	for k := range m.UnionLabels {
		c.UnionLabels[k] = struct{}{}
	}
	c.labelOrder = append([]int64(nil), m.labelOrder...)
	c.Annotations = AnnotationStore{entries: append([]AnnotationDescriptor(nil), m.Annotations.entries...)}
	return &c
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

// DynamicType is an immutable, shareable type graph node: a
// TypeDescriptor plus its AnnotationStore, frozen after Build(). It is a
// thin handle into a typeArena, so copying a DynamicType
// value is cheap and every copy observes the same frozen node.
type DynamicType struct {
	arena  *typeArena
	handle TypeHandle
}

// descriptor returns the frozen node's TypeDescriptor. Calling it on a
// DynamicType whose node has not yet been frozen (i.e. still mid-Build, as
// happens for a self-referential aggregate under construction) returns a
// zero TypeDescriptor with KindNone; callers must finish building before
// using a type for data or codec operations.
func (t *DynamicType) descriptor() *TypeDescriptor {
	n := t.arena.node(t.handle)
	return &n.descriptor
}

func (t *DynamicType) annotations() *AnnotationStore {
	n := t.arena.node(t.handle)
	return &n.annotations
}

// Kind returns the node's TypeKind.
func (t *DynamicType) Kind() TypeKind { return t.descriptor().Kind }

// Name returns the node's name (possibly empty for anonymous composites).
func (t *DynamicType) Name() string { return t.descriptor().Name }

// Annotations returns the node's AnnotationStore.
func (t *DynamicType) Annotations() *AnnotationStore { return t.annotations() }

// IsKeyDefined reports the cached fixpoint: this type or one of its
// members carries the key annotation.
func (t *DynamicType) IsKeyDefined() bool { return t.descriptor().IsKeyDefined }

// ElementType returns the SEQUENCE/ARRAY/MAP/BITMASK element type, or nil.
func (t *DynamicType) ElementType() *DynamicType { return t.descriptor().ElementType }

// KeyElementType returns the MAP key type, or nil.
func (t *DynamicType) KeyElementType() *DynamicType { return t.descriptor().KeyElementType }

// BaseType returns the ALIAS target / STRUCTURE-BITSET parent, or nil.
func (t *DynamicType) BaseType() *DynamicType { return t.descriptor().BaseType }

// DiscriminatorType returns the UNION discriminator type, or nil.
func (t *DynamicType) DiscriminatorType() *DynamicType { return t.descriptor().DiscriminatorType }

// Bounds returns the node's raw bounds sequence.
func (t *DynamicType) Bounds() []uint32 { return t.descriptor().Bounds }

// TotalBounds returns the product of an ARRAY's dimensions.
func (t *DynamicType) TotalBounds() uint32 { return t.descriptor().TotalBounds() }

// Bound returns the single SEQUENCE/MAP/STRING8/16 bound (0 = unbounded).
func (t *DynamicType) Bound() uint32 { return t.descriptor().Bound() }

// GetAllMembers returns the node's member table in declared order.
func (t *DynamicType) GetAllMembers() []*DynamicTypeMember {
	ms := t.descriptor().Members
	out := make([]*DynamicTypeMember, len(ms))
	copy(out, ms)
	return out
}

// GetMemberCount returns len(GetAllMembers()).
func (t *DynamicType) GetMemberCount() int { return len(t.descriptor().Members) }

// GetMember returns the member with the given id, and whether it exists.
func (t *DynamicType) GetMember(id MemberId) (*DynamicTypeMember, bool) {
	m := t.descriptor().memberByID(id)
	return m, m != nil
}

// MemberIDByName resolves a member, BITMASK flag, or ENUM literal by name,
// uniformly across every aggregate/enumeration kind rather than only
// BITMASK/ENUM.
func (t *DynamicType) MemberIDByName(name string) (MemberId, ReturnCode) {
	m := t.descriptor().memberByName(name)
	if m == nil {
		return MemberIDInvalid, RetcodeBadParameter
	}
	return m.ID, RetcodeOK
}

// GetIDFromLabel resolves a UNION's active branch from a discriminator
// label, or the default branch if no case matches and one is declared,
// or MemberIDInvalid otherwise.
func (t *DynamicType) GetIDFromLabel(label int64) MemberId {
	var defaultID MemberId = MemberIDInvalid
	for _, m := range t.descriptor().Members {
		if m.HasLabel(label) {
			return m.ID
		}
		if m.IsDefaultLabel {
			defaultID = m.ID
		}
	}
	return defaultID
}

// Equal reports whether t and other denote the same frozen node (identity,
// not structural equality; see EqualTypes for the structural form used
// for member-table/value comparisons).
func (t *DynamicType) Equal(other *DynamicType) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.arena == other.arena && t.handle == other.handle
}

// EqualTypes implements structural type equality: same kind, name,
// bounds, all reference children structurally
// equal, and the member table equal (including order).
func EqualTypes(a, b *DynamicType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Equal(b) {
		return true
	}
	da, db := a.descriptor(), b.descriptor()
	if da.Kind != db.Kind || da.Name != db.Name {
		return false
	}
	if len(da.Bounds) != len(db.Bounds) {
		return false
	}
	for i := range da.Bounds {
		if da.Bounds[i] != db.Bounds[i] {
			return false
		}
	}
	if !EqualTypes(da.BaseType, db.BaseType) ||
		!EqualTypes(da.DiscriminatorType, db.DiscriminatorType) ||
		!EqualTypes(da.ElementType, db.ElementType) ||
		!EqualTypes(da.KeyElementType, db.KeyElementType) {
		return false
	}
	if len(da.Members) != len(db.Members) {
		return false
	}
	for i := range da.Members {
		ma, mb := da.Members[i], db.Members[i]
		if ma.ID != mb.ID || ma.Name != mb.Name || ma.Index != mb.Index {
			return false
		}
		if !EqualTypes(ma.Type, mb.Type) {
			return false
		}
	}
	return true
}

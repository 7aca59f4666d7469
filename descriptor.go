// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

// TypeDescriptor is the structural description of a single type node:
// kind, name, bounds, element/key/discriminator/base references, member
// table, and the cached key flag.
type TypeDescriptor struct {
	Kind TypeKind
	Name string

	// BaseType is the ALIAS target, the STRUCTURE/BITSET parent, or nil.
	BaseType *DynamicType

	// DiscriminatorType is set for UNION only.
	DiscriminatorType *DynamicType

	// ElementType is set for SEQUENCE/ARRAY/MAP/BITMASK.
	ElementType *DynamicType

	// KeyElementType is the MAP key type.
	KeyElementType *DynamicType

	// Bounds is: string max length (STRING8/16), bit count (BITMASK/ENUM),
	// one entry per ARRAY dimension, or capacity (SEQUENCE/MAP, 0 =
	// unbounded).
	Bounds []uint32

	Members []*DynamicTypeMember

	// IsKeyDefined caches the fixpoint described in consistency.go's
	// computeIsKeyDefined.
	IsKeyDefined bool
}

// TotalBounds returns the product of an ARRAY's dimensions, 0 for any
// other kind or an empty Bounds.
func (d *TypeDescriptor) TotalBounds() uint32 {
	if d.Kind != KindArray {
		return 0
	}
	return productU32(d.Bounds)
}

// Bound returns the single SEQUENCE/MAP/STRING8/16 bound, 0 (unbounded)
// when Bounds is empty.
func (d *TypeDescriptor) Bound() uint32 {
	if len(d.Bounds) == 0 {
		return 0
	}
	return d.Bounds[0]
}

// memberByID returns the member with the given id, or nil.
func (d *TypeDescriptor) memberByID(id MemberId) *DynamicTypeMember {
	for _, m := range d.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// memberByName returns the member with the given name, or nil.
func (d *TypeDescriptor) memberByName(name string) *DynamicTypeMember {
	for _, m := range d.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Consistent validates every invariant that is checkable from this node's
// own fields (referenced DynamicTypes are, by construction, already
// frozen-and-consistent; see arena.go). It returns the first violation
// found, or ok==true with an empty violation.
func (d *TypeDescriptor) Consistent() (ok bool, violation Violation) {
	switch d.Kind {
	case KindUnion:
		return d.consistentUnion()
	case KindArray:
		return d.consistentArray()
	case KindBitmask:
		return d.consistentBitmask()
	case KindEnum:
		return d.consistentEnum()
	case KindAlias:
		return d.consistentAlias()
	case KindString8, KindString16:
		return d.consistentString()
	case KindStructure, KindBitset:
		return d.consistentAggregateIDs()
	case KindSequence, KindMap:
		if d.ElementType == nil {
			return false, ViolationMissingElementType
		}
		if d.Kind == KindMap && d.KeyElementType == nil {
			return false, ViolationMissingKeyElementType
		}
		if d.Kind == KindMap && !d.KeyElementType.Kind().isDiscriminatorEligible() {
			return false, ViolationMapKeyNotEligible
		}
		return true, ""
	default:
		return true, ""
	}
}

func (d *TypeDescriptor) consistentAggregateIDs() (bool, Violation) {
	seenID := make(map[MemberId]bool, len(d.Members))
	seenName := make(map[string]bool, len(d.Members))
	for i, m := range d.Members {
		if m.ID == MemberIDInvalid {
			return false, ViolationInvalidMemberID
		}
		if seenID[m.ID] {
			return false, ViolationDuplicateMemberID
		}
		seenID[m.ID] = true
		if seenName[m.Name] {
			return false, ViolationDuplicateMemberName
		}
		seenName[m.Name] = true
		if m.Index != i {
			return false, ViolationMemberIndexMismatch
		}
	}
	return true, ""
}

func (d *TypeDescriptor) consistentUnion() (bool, Violation) {
	if d.DiscriminatorType == nil {
		return false, ViolationMissingDiscriminator
	}
	if !d.DiscriminatorType.Kind().isDiscriminatorEligible() {
		return false, ViolationDiscriminatorNotEligible
	}
	seenID := make(map[MemberId]bool, len(d.Members))
	seenName := make(map[string]bool, len(d.Members))
	seenLabel := make(map[int64]bool)
	defaults := 0
	for i, m := range d.Members {
		if m.ID == MemberIDInvalid {
			return false, ViolationInvalidMemberID
		}
		if seenID[m.ID] {
			return false, ViolationDuplicateMemberID
		}
		seenID[m.ID] = true
		if seenName[m.Name] {
			return false, ViolationDuplicateMemberName
		}
		seenName[m.Name] = true
		if m.Index != i {
			return false, ViolationMemberIndexMismatch
		}
		if m.IsDefaultLabel {
			defaults++
		}
		for label := range m.UnionLabels {
			if seenLabel[label] {
				return false, ViolationDuplicateUnionLabel
			}
			seenLabel[label] = true
		}
	}
	if defaults > 1 {
		return false, ViolationMultipleDefaultBranches
	}
	return true, ""
}

func (d *TypeDescriptor) consistentArray() (bool, Violation) {
	if len(d.Bounds) == 0 {
		return false, ViolationEmptyArrayBounds
	}
	if d.ElementType == nil {
		return false, ViolationMissingElementType
	}
	if d.TotalBounds() == 0 {
		return false, ViolationZeroTotalBounds
	}
	return true, ""
}

func (d *TypeDescriptor) consistentBitmask() (bool, Violation) {
	bitBound := d.Bound()
	if bitBound == 0 {
		bitBound = 32
	}
	if bitBound < 1 || bitBound > 64 {
		return false, ViolationBitBoundRange
	}
	if len(d.Members) > int(bitBound) {
		return false, ViolationTooManyFlags
	}
	seenPos := make(map[int]bool, len(d.Members))
	for _, m := range d.Members {
		pos := int(m.Index)
		if pos >= int(bitBound) {
			return false, ViolationFlagPositionOutOfRange
		}
		if seenPos[pos] {
			return false, ViolationDuplicateFlagPosition
		}
		seenPos[pos] = true
	}
	return true, ""
}

func (d *TypeDescriptor) consistentEnum() (bool, Violation) {
	if len(d.Members) == 0 {
		return false, ViolationEmptyEnum
	}
	seenName := make(map[string]bool, len(d.Members))
	for _, m := range d.Members {
		if seenName[m.Name] {
			return false, ViolationDuplicateMemberName
		}
		seenName[m.Name] = true
	}
	return true, ""
}

func (d *TypeDescriptor) consistentAlias() (bool, Violation) {
	if d.BaseType == nil {
		return false, ViolationMissingBaseType
	}
	// Walks the chain of frozen ALIAS nodes, reporting a cycle if a handle
	// repeats. A BaseType still under construction (a TypeRef whose node
	// is not yet frozen) reads as KindNone and ends the walk, so an alias
	// that refers to itself that way is not detected here.
	seen := map[TypeHandle]bool{}
	t := d.BaseType
	for t != nil && t.Kind() == KindAlias {
		if seen[t.handle] {
			return false, ViolationCyclicAlias
		}
		seen[t.handle] = true
		t = t.descriptor().BaseType
	}
	return true, ""
}

func (d *TypeDescriptor) consistentString() (bool, Violation) {
	if len(d.Bounds) != 1 {
		return false, ViolationStringBoundsShape
	}
	return true, ""
}

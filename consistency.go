// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

// Violation names one §3 invariant a TypeDescriptor failed. It is returned
// by TypeDescriptor.Consistent and surfaced by the builder as
// RetcodeBadParameter; callers that want the human-readable reason can
// still inspect it via errors.Is/the Violation's own Error().
type Violation string

// Error implements error so a Violation can be wrapped/compared directly.
func (v Violation) Error() string { return string(v) }

// The closed set of structural violations Consistent can report.
const (
	ViolationInvalidMemberID          Violation = "member id is INVALID"
	ViolationDuplicateMemberID        Violation = "duplicate member id within aggregate"
	ViolationDuplicateMemberName      Violation = "duplicate member name within aggregate"
	ViolationMemberIndexMismatch      Violation = "member index does not equal its position"
	ViolationMissingDiscriminator     Violation = "union missing discriminator type"
	ViolationDiscriminatorNotEligible Violation = "union discriminator type is not discriminator-eligible"
	ViolationDuplicateUnionLabel      Violation = "union label used by more than one non-default member"
	ViolationMultipleDefaultBranches  Violation = "union has more than one default member"
	ViolationEmptyArrayBounds         Violation = "array bounds is empty"
	ViolationMissingElementType       Violation = "collection missing element type"
	ViolationMissingKeyElementType    Violation = "map missing key element type"
	ViolationMapKeyNotEligible        Violation = "map key type is not discriminator-eligible"
	ViolationZeroTotalBounds          Violation = "array total_bounds is zero"
	ViolationBitBoundRange            Violation = "bit_bound outside [1, 64]"
	ViolationTooManyFlags             Violation = "bitmask has more named flags than bit_bound"
	ViolationFlagPositionOutOfRange   Violation = "bitmask flag position >= bit_bound"
	ViolationDuplicateFlagPosition    Violation = "bitmask flag position used twice"
	ViolationEmptyEnum                Violation = "enum has no literals"
	ViolationMissingBaseType          Violation = "alias missing base type"
	ViolationCyclicAlias              Violation = "alias chain is cyclic"
	ViolationStringBoundsShape        Violation = "string bounds must have exactly one entry"
)

// computeIsKeyDefined is the fixpoint for is_key_defined: true if this
// node (a member-bearing type, when called
// for a STRUCTURE/BITSET) has any member annotated @key, or a base type
// that already has it, or any member whose own type has it.
//
// It is invoked once per node at Build() time (not lazily), since a
// node's members and base are fixed (copy-on-build) the moment it
// freezes.
func computeIsKeyDefined(desc *TypeDescriptor) bool {
	if desc.BaseType != nil && desc.BaseType.descriptor().IsKeyDefined {
		return true
	}
	for _, m := range desc.Members {
		if m.Annotations.IsKey() {
			return true
		}
		if m.Type != nil && m.Type.descriptor().IsKeyDefined {
			return true
		}
	}
	return false
}

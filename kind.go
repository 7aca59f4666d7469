// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package xtypes implements a runtime, self-describing type system for a
// DDS-like publish/subscribe middleware: type graphs are assembled at run
// time (DynamicType), values are bound to those graphs (DynamicData), and
// both are carried over the wire with an OMG CDR codec.
package xtypes

import "fmt"

// TypeKind identifies the structural shape of a DynamicType node.
type TypeKind uint8

// The closed set of type kinds a DynamicType can take.
const (
	KindNone TypeKind = iota
	KindBoolean
	KindByte
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindFloat128
	KindChar8
	KindChar16
	KindString8
	KindString16
	KindEnum
	KindBitmask
	KindAlias
	KindSequence
	KindArray
	KindMap
	KindStructure
	KindUnion
	KindBitset
	KindAnnotation
)

var kindNames = [...]string{
	KindNone:       "NONE",
	KindBoolean:    "BOOLEAN",
	KindByte:       "BYTE",
	KindInt16:      "INT16",
	KindUint16:     "UINT16",
	KindInt32:      "INT32",
	KindUint32:     "UINT32",
	KindInt64:      "INT64",
	KindUint64:     "UINT64",
	KindFloat32:    "FLOAT32",
	KindFloat64:    "FLOAT64",
	KindFloat128:   "FLOAT128",
	KindChar8:      "CHAR8",
	KindChar16:     "CHAR16",
	KindString8:    "STRING8",
	KindString16:   "STRING16",
	KindEnum:       "ENUM",
	KindBitmask:    "BITMASK",
	KindAlias:      "ALIAS",
	KindSequence:   "SEQUENCE",
	KindArray:      "ARRAY",
	KindMap:        "MAP",
	KindStructure:  "STRUCTURE",
	KindUnion:      "UNION",
	KindBitset:     "BITSET",
	KindAnnotation: "ANNOTATION",
}

// String renders the kind's IDL-equivalent name.
func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TypeKind(%d)", uint8(k))
}

// isPrimitive reports whether k is a scalar, non-collection, non-string kind.
func (k TypeKind) isPrimitive() bool {
	switch k {
	case KindBoolean, KindByte, KindChar8, KindChar16,
		KindInt16, KindUint16, KindInt32, KindUint32,
		KindInt64, KindUint64, KindFloat32, KindFloat64, KindFloat128:
		return true
	}
	return false
}

// isAggregate reports whether k carries a member table.
func (k TypeKind) isAggregate() bool {
	switch k {
	case KindStructure, KindUnion, KindBitset:
		return true
	}
	return false
}

// isCollection reports whether k is a SEQUENCE/ARRAY/MAP.
func (k TypeKind) isCollection() bool {
	switch k {
	case KindSequence, KindArray, KindMap:
		return true
	}
	return false
}

// isDiscriminatorEligible reports whether k may serve as a UNION
// discriminator or MAP key type, per spec.
func (k TypeKind) isDiscriminatorEligible() bool {
	switch k {
	case KindBoolean, KindByte, KindChar8, KindChar16,
		KindInt16, KindUint16, KindInt32, KindUint32,
		KindInt64, KindUint64, KindEnum, KindBitmask,
		KindString8, KindString16:
		return true
	}
	return false
}

// MemberId is an opaque identifier for a member within an aggregate, or an
// index within a collection.
type MemberId uint32

// MemberIDInvalid is the reserved sentinel meaning "no member"/"no branch".
const MemberIDInvalid MemberId = 0xFFFFFFFF

// ReturnCode is the universal fallible-operation result for the core. It
// implements error so callers may use errors.Is against the sentinels below.
type ReturnCode int

// The subset of the DDS return-code taxonomy the core uses.
const (
	RetcodeOK ReturnCode = iota
	RetcodeError
	RetcodeUnsupported
	RetcodeBadParameter
	RetcodePreconditionNotMet
	RetcodeOutOfResources
	RetcodeNotEnabled
	RetcodeImmutablePolicy
	RetcodeInconsistentPolicy
	RetcodeAlreadyDeleted
	RetcodeTimeout
	RetcodeNoData
	RetcodeIllegalOperation
	RetcodeNotAllowedBySecurity
)

var retcodeNames = [...]string{
	RetcodeOK:                   "OK",
	RetcodeError:                "ERROR",
	RetcodeUnsupported:          "UNSUPPORTED",
	RetcodeBadParameter:         "BAD_PARAMETER",
	RetcodePreconditionNotMet:   "PRECONDITION_NOT_MET",
	RetcodeOutOfResources:       "OUT_OF_RESOURCES",
	RetcodeNotEnabled:           "NOT_ENABLED",
	RetcodeImmutablePolicy:      "IMMUTABLE_POLICY",
	RetcodeInconsistentPolicy:   "INCONSISTENT_POLICY",
	RetcodeAlreadyDeleted:       "ALREADY_DELETED",
	RetcodeTimeout:              "TIMEOUT",
	RetcodeNoData:               "NO_DATA",
	RetcodeIllegalOperation:     "ILLEGAL_OPERATION",
	RetcodeNotAllowedBySecurity: "NOT_ALLOWED_BY_SECURITY",
}

// Error implements error so a ReturnCode can be returned/compared as one.
func (rc ReturnCode) Error() string {
	if int(rc) < len(retcodeNames) {
		return retcodeNames[rc]
	}
	return fmt.Sprintf("ReturnCode(%d)", int(rc))
}

// OK reports whether rc is RetcodeOK.
func (rc ReturnCode) OK() bool {
	return rc == RetcodeOK
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "strconv"

// Well-known annotation names.
const (
	AnnotationKey            = "key"
	AnnotationEPKey          = "epkey" // legacy alias for @key
	AnnotationOptional       = "optional"
	AnnotationMustUnderstand = "must_understand"
	AnnotationNonSerialized  = "non_serialized"
	AnnotationValue          = "value"
	AnnotationDefault        = "default"
	AnnotationDefaultLiteral = "default_literal"
	AnnotationPosition       = "position"
	AnnotationExternal       = "external"
	AnnotationBitBound       = "bit_bound"
	AnnotationExtensibility  = "extensibility"
	AnnotationMutable        = "mutable"
	AnnotationFinal          = "final"
	AnnotationAppendable     = "appendable"
	AnnotationNested         = "nested"
	AnnotationTryConstruct   = "try_construct"
	AnnotationID             = "id"
)

const constTrue = "true"

// ExtensibilityKind narrows the @extensibility/@mutable/@final/@appendable
// family of annotations to one closed value.
type ExtensibilityKind int

// The three extensibility kinds a STRUCTURE/UNION/BITSET may declare.
const (
	ExtensibilityFinal ExtensibilityKind = iota
	ExtensibilityAppendable
	ExtensibilityMutable
)

func (e ExtensibilityKind) String() string {
	switch e {
	case ExtensibilityFinal:
		return "FINAL"
	case ExtensibilityAppendable:
		return "APPENDABLE"
	case ExtensibilityMutable:
		return "MUTABLE"
	}
	return "FINAL"
}

// TryConstructKind narrows @try_construct: how a collaborator should react
// to malformed wire input for a member. The core only stores and surfaces
// the value; it does not itself implement truncation/default-substitution
// recovery.
type TryConstructKind int

const (
	TryConstructDiscard TryConstructKind = iota
	TryConstructUseDefault
	TryConstructTrim
)

// AnnotationDescriptor is one annotation application: a reference to the
// annotation's own type (conventionally just its name, since annotation
// primitives are otherwise untyped here) plus a parameter-name -> string
// value map.
type AnnotationDescriptor struct {
	Name   string
	Params map[string]string
}

func newAnnotationDescriptor(name, value string) AnnotationDescriptor {
	return AnnotationDescriptor{Name: name, Params: map[string]string{"value": value}}
}

// Value returns the descriptor's sole "value" parameter, or "" if absent.
func (d AnnotationDescriptor) Value() string {
	return d.Params["value"]
}

// AnnotationStore is the ordered multiset of annotations applied to a type
// or member. Setters are upsert-by-name: a repeated Set removes the prior
// entry and appends the new one, so the multiset's order reflects "most
// recently touched last" and a repeated set can reorder the multiset.
type AnnotationStore struct {
	entries []AnnotationDescriptor
}

// find returns the index of the first annotation named name, or -1.
func (s *AnnotationStore) find(name string) int {
	for i, e := range s.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Get returns the raw descriptor for name and whether it is present.
func (s *AnnotationStore) Get(name string) (AnnotationDescriptor, bool) {
	if i := s.find(name); i >= 0 {
		return s.entries[i], true
	}
	return AnnotationDescriptor{}, false
}

// Apply upserts an annotation descriptor. Returns RetcodeBadParameter if
// the descriptor names no annotation.
func (s *AnnotationStore) Apply(d AnnotationDescriptor) ReturnCode {
	if d.Name == "" {
		return RetcodeBadParameter
	}
	if i := s.find(d.Name); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	s.entries = append(s.entries, d)
	return RetcodeOK
}

// set is the internal single-string-value convenience wrapper around
// Apply: upsert-by-name and idempotent.
func (s *AnnotationStore) set(name, value string) {
	_ = s.Apply(newAnnotationDescriptor(name, value))
}

// All returns the annotations in their current multiset order.
func (s *AnnotationStore) All() []AnnotationDescriptor {
	out := make([]AnnotationDescriptor, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *AnnotationStore) getBool(name string) bool {
	d, ok := s.Get(name)
	return ok && d.Value() == constTrue
}

func (s *AnnotationStore) getInt(name string, def int) int {
	d, ok := s.Get(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(d.Value())
	if err != nil {
		return def
	}
	return n
}

// IsKey reports @key (or its legacy alias @epkey).
func (s *AnnotationStore) IsKey() bool {
	if d, ok := s.Get(AnnotationKey); ok {
		return d.Value() == constTrue
	}
	if d, ok := s.Get(AnnotationEPKey); ok {
		return d.Value() == constTrue
	}
	return false
}

// SetKey applies or clears @key.
func (s *AnnotationStore) SetKey(key bool) {
	s.set(AnnotationKey, strconv.FormatBool(key))
}

// IsOptional reports @optional.
func (s *AnnotationStore) IsOptional() bool { return s.getBool(AnnotationOptional) }

// SetOptional applies or clears @optional.
func (s *AnnotationStore) SetOptional(v bool) { s.set(AnnotationOptional, strconv.FormatBool(v)) }

// IsMustUnderstand reports @must_understand.
func (s *AnnotationStore) IsMustUnderstand() bool { return s.getBool(AnnotationMustUnderstand) }

// IsNonSerialized reports @non_serialized.
func (s *AnnotationStore) IsNonSerialized() bool { return s.getBool(AnnotationNonSerialized) }

// SetNonSerialized applies or clears @non_serialized.
func (s *AnnotationStore) SetNonSerialized(v bool) {
	s.set(AnnotationNonSerialized, strconv.FormatBool(v))
}

// IsExternal reports @external.
func (s *AnnotationStore) IsExternal() bool { return s.getBool(AnnotationExternal) }

// Value returns @value's string form, "" if absent.
func (s *AnnotationStore) Value() string {
	d, _ := s.Get(AnnotationValue)
	return d.Value()
}

// Default returns @default's string form, "" if absent.
func (s *AnnotationStore) Default() string {
	d, _ := s.Get(AnnotationDefault)
	return d.Value()
}

// HasDefaultLiteral reports whether @default_literal is present (an ENUM
// literal marked as the implicit default when a value is unspecified).
func (s *AnnotationStore) HasDefaultLiteral() bool {
	_, ok := s.Get(AnnotationDefaultLiteral)
	return ok
}

// Position returns @position, or -1 if absent/unparseable.
func (s *AnnotationStore) Position() int {
	return s.getInt(AnnotationPosition, -1)
}

// BitBound returns @bit_bound, defaulting to 32 when absent.
func (s *AnnotationStore) BitBound() uint32 {
	return uint32(s.getInt(AnnotationBitBound, 32))
}

// SetBitBound applies @bit_bound.
func (s *AnnotationStore) SetBitBound(n uint32) {
	s.set(AnnotationBitBound, strconv.FormatUint(uint64(n), 10))
}

// ID returns the @id override and whether it was present, for the
// builder's AddMember to consult before auto-allocating.
func (s *AnnotationStore) ID() (MemberId, bool) {
	d, ok := s.Get(AnnotationID)
	if !ok {
		return MemberIDInvalid, false
	}
	n, err := strconv.ParseUint(d.Value(), 10, 32)
	if err != nil {
		return MemberIDInvalid, false
	}
	return MemberId(n), true
}

// Extensibility narrows @extensibility/@mutable/@final/@appendable to one
// kind, defaulting to FINAL when none is present: @mutable/@final/
// @appendable and the equivalent @extensibility=MUTABLE/APPENDABLE/FINAL
// form are treated identically.
func (s *AnnotationStore) Extensibility() ExtensibilityKind {
	if _, ok := s.Get(AnnotationMutable); ok {
		return ExtensibilityMutable
	}
	if _, ok := s.Get(AnnotationAppendable); ok {
		return ExtensibilityAppendable
	}
	if _, ok := s.Get(AnnotationFinal); ok {
		return ExtensibilityFinal
	}
	if d, ok := s.Get(AnnotationExtensibility); ok {
		switch d.Value() {
		case "MUTABLE":
			return ExtensibilityMutable
		case "APPENDABLE":
			return ExtensibilityAppendable
		}
	}
	return ExtensibilityFinal
}

// SetExtensibility applies @extensibility=kind.
func (s *AnnotationStore) SetExtensibility(kind ExtensibilityKind) {
	s.set(AnnotationExtensibility, kind.String())
}

// TryConstruct narrows @try_construct, defaulting to DISCARD.
func (s *AnnotationStore) TryConstruct() TryConstructKind {
	d, ok := s.Get(AnnotationTryConstruct)
	if !ok {
		return TryConstructDiscard
	}
	switch d.Value() {
	case "USE_DEFAULT":
		return TryConstructUseDefault
	case "TRIM":
		return TryConstructTrim
	}
	return TryConstructDiscard
}

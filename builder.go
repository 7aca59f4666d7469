// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

// DynamicTypeBuilder is a mutable view over a TypeDescriptor being
// assembled. It reserves its DynamicType's arena handle at construction time
// (see arena.go), which is what lets a builder hand out a usable, if not
// yet frozen, *DynamicType reference to itself, the mechanism a
// self-referential STRUCTURE needs to hold a SEQUENCE of its own type.
type DynamicTypeBuilder struct {
	arena  *typeArena
	handle TypeHandle

	desc TypeDescriptor
	ann  AnnotationStore

	nextID MemberId
	built  bool
}

func newBuilder(arena *typeArena, kind TypeKind, name string) *DynamicTypeBuilder {
	return &DynamicTypeBuilder{
		arena:  arena,
		handle: arena.reserve(),
		desc:   TypeDescriptor{Kind: kind, Name: name},
	}
}

// TypeRef returns a *DynamicType handle to this builder's (possibly still
// unfrozen) node, usable as an ElementType/BaseType/discriminator
// reference by other builders before Build() is called, the
// self-reference mechanism described above.
func (b *DynamicTypeBuilder) TypeRef() *DynamicType {
	return &DynamicType{arena: b.arena, handle: b.handle}
}

// Descriptor returns a pointer to the builder's staging TypeDescriptor for
// direct field assignment of BaseType/ElementType/KeyElementType/
// DiscriminatorType/Bounds before calling AddMember/Build.
func (b *DynamicTypeBuilder) Descriptor() *TypeDescriptor { return &b.desc }

// Annotations returns the builder's staging AnnotationStore.
func (b *DynamicTypeBuilder) Annotations() *AnnotationStore { return &b.ann }

// ApplyAnnotation delegates to the store; fails with RetcodeBadParameter if
// the descriptor names no annotation.
func (b *DynamicTypeBuilder) ApplyAnnotation(d AnnotationDescriptor) ReturnCode {
	return b.ann.Apply(d)
}

// AddMember assigns id (allocating the next monotonic id if the caller
// passed MemberIDInvalid, honoring an @id annotation override first),
// validates id/name uniqueness and union label non-overlap, and appends
// the member. Fails with RetcodeBadParameter on any violation. For every
// aggregate kind except BITMASK, Index is set to the member's insertion
// position; a BITMASK flag's Index is its bit position as supplied by
// AddFlag, and is never overwritten, since flags need not be added in
// ascending order and Index doubles as the wire bit offset.
func (b *DynamicTypeBuilder) AddMember(m *DynamicTypeMember) ReturnCode {
	if m.ID == MemberIDInvalid {
		if id, ok := m.Annotations.ID(); ok {
			m.ID = id
		} else {
			m.ID = b.nextID
		}
	}
	if b.nextID <= m.ID {
		b.nextID = m.ID + 1
	}
	for _, existing := range b.desc.Members {
		if existing.ID == m.ID {
			return RetcodeBadParameter
		}
		if existing.Name == m.Name {
			return RetcodeBadParameter
		}
		if b.desc.Kind == KindUnion {
			for label := range m.UnionLabels {
				if existing.HasLabel(label) {
					return RetcodeBadParameter
				}
			}
			if m.IsDefaultLabel && existing.IsDefaultLabel {
				return RetcodeBadParameter
			}
		}
	}
	if b.desc.Kind != KindBitmask {
		m.Index = len(b.desc.Members)
	}
	b.desc.Members = append(b.desc.Members, m)
	return RetcodeOK
}

// Build validates the staged descriptor and, if consistent, freezes it
// into the shared DynamicType this builder was reserved for. Further
// builder mutation after Build does not affect the returned type
// (copy-on-build): the frozen node stores its own deep copy of Members and
// Annotations.
func (b *DynamicTypeBuilder) Build() (*DynamicType, ReturnCode) {
	if b.built {
		return &DynamicType{arena: b.arena, handle: b.handle}, RetcodeOK
	}
	if ok, _ := b.desc.Consistent(); !ok {
		return nil, RetcodeBadParameter
	}

	frozen := b.desc
	frozen.Members = make([]*DynamicTypeMember, len(b.desc.Members))
	for i, m := range b.desc.Members {
		frozen.Members[i] = m.clone()
	}
	frozen.IsKeyDefined = computeIsKeyDefined(&frozen)

	annCopy := AnnotationStore{entries: append([]AnnotationDescriptor(nil), b.ann.entries...)}

	b.arena.fill(b.handle, frozen, annCopy)
	b.built = true
	return &DynamicType{arena: b.arena, handle: b.handle}, RetcodeOK
}

// --- Helpers for common constructed types ---

// NewStringBuilder returns a builder for a STRING8 (wide=false) or
// STRING16 (wide=true) bounded to maxLength (0 = unbounded).
func NewStringBuilder(arena *typeArena, wide bool, maxLength uint32) *DynamicTypeBuilder {
	kind := KindString8
	if wide {
		kind = KindString16
	}
	b := newBuilder(arena, kind, "")
	b.desc.Bounds = []uint32{maxLength}
	return b
}

// NewSequenceBuilder returns a builder for a SEQUENCE of element, bounded
// to capacity (0 = unbounded).
func NewSequenceBuilder(arena *typeArena, element *DynamicType, capacity uint32) *DynamicTypeBuilder {
	b := newBuilder(arena, KindSequence, "")
	b.desc.ElementType = element
	b.desc.Bounds = []uint32{capacity}
	return b
}

// NewArrayBuilder returns a builder for an ARRAY of element with the given
// per-axis dimensions.
func NewArrayBuilder(arena *typeArena, element *DynamicType, dims []uint32) *DynamicTypeBuilder {
	b := newBuilder(arena, KindArray, "")
	b.desc.ElementType = element
	b.desc.Bounds = append([]uint32(nil), dims...)
	return b
}

// NewMapBuilder returns a builder for a MAP of key -> value, bounded to
// capacity (0 = unbounded).
func NewMapBuilder(arena *typeArena, key, value *DynamicType, capacity uint32) *DynamicTypeBuilder {
	b := newBuilder(arena, KindMap, "")
	b.desc.KeyElementType = key
	b.desc.ElementType = value
	b.desc.Bounds = []uint32{capacity}
	return b
}

// NewAliasBuilder returns a builder for an ALIAS of base named name.
func NewAliasBuilder(arena *typeArena, base *DynamicType, name string) *DynamicTypeBuilder {
	b := newBuilder(arena, KindAlias, name)
	b.desc.BaseType = base
	return b
}

// NewEnumBuilder returns a builder for an ENUM named name; literals are
// added via AddLiteral.
func NewEnumBuilder(arena *typeArena, name string) *DynamicTypeBuilder {
	return newBuilder(arena, KindEnum, name)
}

// AddLiteral adds an ENUM literal. value must fit in 32-bit signed;
// isDefault marks it as the implicit default (@default_literal).
func (b *DynamicTypeBuilder) AddLiteral(name string, value int32, isDefault bool) ReturnCode {
	m := newMember(MemberId(len(b.desc.Members)), name, len(b.desc.Members))
	m.AddLabel(int64(value))
	if isDefault {
		m.Annotations.Apply(newAnnotationDescriptor(AnnotationDefaultLiteral, constTrue))
	}
	return b.AddMember(m)
}

// NewBitmaskBuilder returns a builder for a BITMASK named name with the
// given bit_bound (flags added via AddFlag).
func NewBitmaskBuilder(arena *typeArena, name string, bitBound uint32) *DynamicTypeBuilder {
	b := newBuilder(arena, KindBitmask, name)
	b.desc.Bounds = []uint32{bitBound}
	return b
}

// AddFlag adds a named BITMASK flag at bit position.
func (b *DynamicTypeBuilder) AddFlag(name string, position int) ReturnCode {
	m := newMember(MemberId(position), name, position)
	return b.AddMember(m)
}

// NewStructBuilder returns a builder for a STRUCTURE named name, optionally
// deriving from base.
func NewStructBuilder(arena *typeArena, name string, base *DynamicType) *DynamicTypeBuilder {
	b := newBuilder(arena, KindStructure, name)
	b.desc.BaseType = base
	return b
}

// NewUnionBuilder returns a builder for a UNION named name switched on
// discriminator.
func NewUnionBuilder(arena *typeArena, name string, discriminator *DynamicType) *DynamicTypeBuilder {
	b := newBuilder(arena, KindUnion, name)
	b.desc.DiscriminatorType = discriminator
	return b
}

// NewBitsetBuilder returns a builder for a BITSET named name, optionally
// deriving from base.
func NewBitsetBuilder(arena *typeArena, name string, base *DynamicType) *DynamicTypeBuilder {
	b := newBuilder(arena, KindBitset, name)
	b.desc.BaseType = base
	return b
}

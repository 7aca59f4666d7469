// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import (
	"reflect"
	"sync"
)

// BuilderFactory is a registry of primitive and common composite builders,
// realized as a Context object rather than a package-level global. It owns the typeArena every
// DynamicType it mints belongs to, and caches one built DynamicType per
// primitive TypeKind so repeated CreatePrimitiveType calls return the same
// shared reference. The other CreateXType helpers return a new builder on
// every call.
type BuilderFactory struct {
	*registry
	arena *typeArena

	mu        sync.Mutex
	primitive map[TypeKind]*DynamicType
}

// NewBuilderFactory returns a fresh Context. Each Context owns its own
// typeArena: types minted by different Contexts are never
// interchangeable, by design (no hidden process-wide sharing).
func NewBuilderFactory(opts ContextOptions) *BuilderFactory {
	return &BuilderFactory{
		registry:  newRegistry(opts),
		arena:     newTypeArena(),
		primitive: make(map[TypeKind]*DynamicType),
	}
}

var defaultBuilderFactory *BuilderFactory
var defaultBuilderFactoryOnce sync.Once

// DefaultBuilderFactory returns a lazily-initialized ambient singleton, for
// callers that don't need an isolated Context.
func DefaultBuilderFactory() *BuilderFactory {
	defaultBuilderFactoryOnce.Do(func() {
		defaultBuilderFactory = NewBuilderFactory(ContextOptions{})
	})
	return defaultBuilderFactory
}

// Arena exposes the factory's typeArena so NewXBuilder helpers in
// builder.go can be invoked against it directly.
func (f *BuilderFactory) Arena() *typeArena { return f.arena }

// CreatePrimitiveType returns the cached, shared DynamicType for a
// primitive kind, building and caching it on first use. kind must satisfy
// TypeKind.isPrimitive, or CHAR8/CHAR16/BOOLEAN/BYTE are also accepted as
// primitive-shaped.
func (f *BuilderFactory) CreatePrimitiveType(kind TypeKind) *DynamicType {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.primitive[kind]; ok {
		return t
	}
	b := newBuilder(f.arena, kind, "")
	t, rc := b.Build()
	if !rc.OK() {
		panic("xtypes: primitive type failed to build: " + kind.String())
	}
	f.primitive[kind] = t
	f.track(builderIdentity(b), "builder:"+kind.String())
	f.untrack(builderIdentity(b))
	return t
}

// CreateStringType returns a new bounded STRING8 builder. The caller must
// call Build().
func (f *BuilderFactory) CreateStringType(maxLength uint32) *DynamicTypeBuilder {
	return f.register(NewStringBuilder(f.arena, false, maxLength))
}

// CreateWStringType returns a new bounded STRING16 builder.
func (f *BuilderFactory) CreateWStringType(maxLength uint32) *DynamicTypeBuilder {
	return f.register(NewStringBuilder(f.arena, true, maxLength))
}

// CreateSequenceType returns a new bounded SEQUENCE-of-element builder.
func (f *BuilderFactory) CreateSequenceType(element *DynamicType, capacity uint32) *DynamicTypeBuilder {
	return f.register(NewSequenceBuilder(f.arena, element, capacity))
}

// CreateArrayType returns a new ARRAY-of-element builder with dims.
func (f *BuilderFactory) CreateArrayType(element *DynamicType, dims []uint32) *DynamicTypeBuilder {
	return f.register(NewArrayBuilder(f.arena, element, dims))
}

// CreateMapType returns a new bounded MAP builder.
func (f *BuilderFactory) CreateMapType(key, value *DynamicType, capacity uint32) *DynamicTypeBuilder {
	return f.register(NewMapBuilder(f.arena, key, value, capacity))
}

// CreateAliasType returns a new ALIAS-of-base builder named name.
func (f *BuilderFactory) CreateAliasType(base *DynamicType, name string) *DynamicTypeBuilder {
	return f.register(NewAliasBuilder(f.arena, base, name))
}

// CreateEnumType returns a new ENUM builder named name.
func (f *BuilderFactory) CreateEnumType(name string) *DynamicTypeBuilder {
	return f.register(NewEnumBuilder(f.arena, name))
}

// CreateBitmaskType returns a new BITMASK builder named name with the
// given bit_bound.
func (f *BuilderFactory) CreateBitmaskType(name string, bitBound uint32) *DynamicTypeBuilder {
	return f.register(NewBitmaskBuilder(f.arena, name, bitBound))
}

// CreateStructType returns a new STRUCTURE builder named name, optionally
// deriving from base. The returned builder's TypeRef() can be embedded as
// an element/member type of its own members before Build(), the
// mechanism a self-referential structure needs.
func (f *BuilderFactory) CreateStructType(name string, base *DynamicType) *DynamicTypeBuilder {
	return f.register(NewStructBuilder(f.arena, name, base))
}

// CreateUnionType returns a new UNION builder named name switched on
// discriminator.
func (f *BuilderFactory) CreateUnionType(name string, discriminator *DynamicType) *DynamicTypeBuilder {
	return f.register(NewUnionBuilder(f.arena, name, discriminator))
}

// CreateBitsetType returns a new BITSET builder named name, optionally
// deriving from base.
func (f *BuilderFactory) CreateBitsetType(name string, base *DynamicType) *DynamicTypeBuilder {
	return f.register(NewBitsetBuilder(f.arena, name, base))
}

// CreateAnnotationPrimitive builds a DynamicType of kind ANNOTATION named
// name, used to type an annotation descriptor by name. Annotation
// primitives carry no structure of their own. Each call builds a new node;
// results are not cached.
func (f *BuilderFactory) CreateAnnotationPrimitive(name string) *DynamicType {
	b := newBuilder(f.arena, KindAnnotation, name)
	t, _ := b.Build()
	return t
}

func (f *BuilderFactory) register(b *DynamicTypeBuilder) *DynamicTypeBuilder {
	f.track(builderIdentity(b), "builder:"+b.desc.Kind.String()+":"+b.desc.Name)
	return b
}

// builderIdentity gives leak tracking something stable to key on without
// depending on unsafe.Pointer.
func builderIdentity(b *DynamicTypeBuilder) uintptr {
	return reflect.ValueOf(b).Pointer()
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "testing"

func TestArrayConsistency(t *testing.T) {
	arena := newTypeArena()
	elem, _ := newBuilder(arena, KindInt32, "").Build()

	tests := []struct {
		name string
		dims []uint32
		want Violation
	}{
		{"empty bounds", nil, ViolationEmptyArrayBounds},
		{"zero dimension", []uint32{3, 0}, ViolationZeroTotalBounds},
		{"valid", []uint32{2, 3}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewArrayBuilder(arena, elem, tt.dims)
			ok, violation := b.Descriptor().Consistent()
			if tt.want == "" {
				if !ok {
					t.Fatalf("Consistent() = false, violation %v, want ok", violation)
				}
				return
			}
			if ok || violation != tt.want {
				t.Fatalf("Consistent() = (%v, %v), want (false, %v)", ok, violation, tt.want)
			}
		})
	}
}

func TestBitmaskConsistency(t *testing.T) {
	arena := newTypeArena()

	b := NewBitmaskBuilder(arena, "Flags", 8)
	if rc := b.AddFlag("a", 0); !rc.OK() {
		t.Fatalf("AddFlag(a) = %v", rc)
	}
	if rc := b.AddFlag("b", 7); !rc.OK() {
		t.Fatalf("AddFlag(b) = %v", rc)
	}
	if ok, violation := b.Descriptor().Consistent(); !ok {
		t.Fatalf("Consistent() = false, violation %v", violation)
	}

	oob := NewBitmaskBuilder(arena, "OutOfRange", 8)
	if rc := oob.AddFlag("c", 8); !rc.OK() {
		t.Fatalf("AddFlag(c) = %v", rc)
	}
	if ok, violation := oob.Descriptor().Consistent(); ok || violation != ViolationFlagPositionOutOfRange {
		t.Fatalf("Consistent() = (%v, %v), want (false, %v)", ok, violation, ViolationFlagPositionOutOfRange)
	}

	badBound := NewBitmaskBuilder(arena, "BadBound", 0)
	badBound.Descriptor().Bounds = []uint32{65}
	if ok, violation := badBound.Descriptor().Consistent(); ok || violation != ViolationBitBoundRange {
		t.Fatalf("Consistent() = (%v, %v), want (false, %v)", ok, violation, ViolationBitBoundRange)
	}
}

func TestUnionConsistency(t *testing.T) {
	arena := newTypeArena()
	disc, _ := newBuilder(arena, KindInt32, "").Build()
	branch, _ := newBuilder(arena, KindInt16, "").Build()

	b := NewUnionBuilder(arena, "U", disc)
	m := newMember(0, "s", 0)
	m.Type = branch
	m.AddLabel(1)
	if rc := b.AddMember(m); !rc.OK() {
		t.Fatalf("AddMember = %v", rc)
	}
	if ok, violation := b.Descriptor().Consistent(); !ok {
		t.Fatalf("Consistent() = false, violation %v", violation)
	}

	dup := newMember(1, "t", 1)
	dup.Type = branch
	dup.AddLabel(1)
	if rc := b.AddMember(dup); rc.OK() {
		t.Fatalf("AddMember with duplicate label should fail")
	}
}

func TestAliasChainConsistent(t *testing.T) {
	arena := newTypeArena()
	base, _ := newBuilder(arena, KindInt32, "").Build()
	a1, _ := NewAliasBuilder(arena, base, "A1").Build()
	a2, _ := NewAliasBuilder(arena, a1, "A2").Build()

	b := NewAliasBuilder(arena, a2, "A3")
	if ok, _ := b.Descriptor().Consistent(); !ok {
		t.Fatalf("non-cyclic alias chain reported inconsistent")
	}
}

func TestEnumConsistency(t *testing.T) {
	arena := newTypeArena()
	b := NewEnumBuilder(arena, "E")
	if ok, violation := b.Descriptor().Consistent(); ok || violation != ViolationEmptyEnum {
		t.Fatalf("Consistent() = (%v, %v), want (false, %v)", ok, violation, ViolationEmptyEnum)
	}
	if rc := b.AddLiteral("RED", 0, false); !rc.OK() {
		t.Fatalf("AddLiteral = %v", rc)
	}
	if ok, violation := b.Descriptor().Consistent(); !ok {
		t.Fatalf("Consistent() = false, violation %v", violation)
	}
}

func TestComputeIsKeyDefined(t *testing.T) {
	arena := newTypeArena()
	id, _ := newBuilder(arena, KindInt32, "").Build()

	b := NewStructBuilder(arena, "Keyed", nil)
	m := newMember(MemberIDInvalid, "id", 0)
	m.Type = id
	m.Annotations.SetKey(true)
	if rc := b.AddMember(m); !rc.OK() {
		t.Fatalf("AddMember = %v", rc)
	}
	typ, rc := b.Build()
	if !rc.OK() {
		t.Fatalf("Build() = %v", rc)
	}
	if !typ.IsKeyDefined() {
		t.Fatalf("IsKeyDefined() = false, want true")
	}
}

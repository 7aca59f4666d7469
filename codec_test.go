// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import (
	"testing"

	"github.com/nimbusdds/xtypes/cdr"
)

func roundTrip(t *testing.T, typ *DynamicType, populate func(d *DynamicData)) *DynamicData {
	t.Helper()
	f := NewDynamicDataFactory(ContextOptions{})
	d, rc := f.CreateData(typ)
	if !rc.OK() {
		t.Fatalf("CreateData() = %v", rc)
	}
	populate(d)

	w := cdr.NewWriter(true)
	if !Serialize(typ, d, w) {
		t.Fatalf("Serialize() returned false")
	}

	out, rc := f.CreateData(typ)
	if !rc.OK() {
		t.Fatalf("CreateData() = %v", rc)
	}
	r := cdr.NewReader(w.Bytes(), true)
	if !Deserialize(typ, out, r) {
		t.Fatalf("Deserialize() returned false")
	}
	if !Equals(d, out) {
		t.Fatalf("round trip produced an unequal value")
	}
	return out
}

func TestCodecPrimitiveRoundTrip(t *testing.T) {
	arena := newTypeArena()
	typ := int32Type(arena)
	roundTrip(t, typ, func(d *DynamicData) {
		d.SetInt32Value(MemberIDInvalid, -42)
	})
}

func TestCodecStringRoundTrip(t *testing.T) {
	arena := newTypeArena()
	b := NewStringBuilder(arena, false, 32)
	typ, _ := b.Build()
	roundTrip(t, typ, func(d *DynamicData) {
		d.SetStringValue(MemberIDInvalid, "hello world")
	})
}

func TestCodecWStringRoundTrip(t *testing.T) {
	arena := newTypeArena()
	b := NewStringBuilder(arena, true, 32)
	typ, _ := b.Build()
	roundTrip(t, typ, func(d *DynamicData) {
		d.SetStringValue(MemberIDInvalid, "wide")
	})
}

func TestCodecStructRoundTrip(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewStructBuilder(arena, "Point", nil)
	mx := newMember(MemberIDInvalid, "x", 0)
	mx.Type = elem
	my := newMember(MemberIDInvalid, "y", 0)
	my.Type = elem
	sb.AddMember(mx)
	sb.AddMember(my)
	typ, _ := sb.Build()

	roundTrip(t, typ, func(d *DynamicData) {
		xID, _ := d.GetMemberIdByName("x")
		yID, _ := d.GetMemberIdByName("y")
		d.SetInt32Value(xID, 3)
		d.SetInt32Value(yID, -9)
	})
}

func TestCodecStructSkipsNonSerializedMember(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewStructBuilder(arena, "S", nil)
	kept := newMember(MemberIDInvalid, "kept", 0)
	kept.Type = elem
	hidden := newMember(MemberIDInvalid, "hidden", 0)
	hidden.Type = elem
	hidden.Annotations.SetNonSerialized(true)
	sb.AddMember(kept)
	sb.AddMember(hidden)
	typ, _ := sb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)
	keptID, _ := d.GetMemberIdByName("kept")
	hiddenID, _ := d.GetMemberIdByName("hidden")
	d.SetInt32Value(keptID, 1)
	d.SetInt32Value(hiddenID, 99)

	w := cdr.NewWriter(true)
	if !Serialize(typ, d, w) {
		t.Fatalf("Serialize() returned false")
	}
	if got := w.Len(); got != 4 {
		t.Fatalf("serialized size with a non_serialized member = %d, want 4", got)
	}
}

func TestCodecSequenceRoundTrip(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewSequenceBuilder(arena, elem, 0)
	typ, _ := sb.Build()

	roundTrip(t, typ, func(d *DynamicData) {
		id0, _ := d.InsertSequenceData()
		d.SetInt32Value(id0, 1)
		id1, _ := d.InsertSequenceData()
		d.SetInt32Value(id1, 2)
	})
}

func TestCodecArrayRoundTripWithElision(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	ab := NewArrayBuilder(arena, elem, []uint32{4})
	typ, _ := ab.Build()

	out := roundTrip(t, typ, func(d *DynamicData) {
		d.SetInt32Value(MemberId(2), 77)
	})
	v, rc := out.GetInt32Value(MemberId(0))
	if !rc.OK() || v != 0 {
		t.Fatalf("untouched array slot after round trip = (%d, %v), want (0, OK)", v, rc)
	}
	v, rc = out.GetInt32Value(MemberId(2))
	if !rc.OK() || v != 77 {
		t.Fatalf("touched array slot after round trip = (%d, %v), want (77, OK)", v, rc)
	}
}

func TestCodecUnionRoundTrip(t *testing.T) {
	arena := newTypeArena()
	disc := int32Type(arena)
	branch, _ := newBuilder(arena, KindInt16, "").Build()
	ub := NewUnionBuilder(arena, "U", disc)
	m := newMember(0, "s", 0)
	m.Type = branch
	m.AddLabel(1)
	ub.AddMember(m)
	typ, _ := ub.Build()

	out := roundTrip(t, typ, func(d *DynamicData) {
		d.SetDiscriminatorValue(1)
		d.SetInt16Value(0, 55)
	})
	if out.GetDiscriminatorValue() != 0 {
		t.Fatalf("GetDiscriminatorValue() after round trip = %v, want member 0", out.GetDiscriminatorValue())
	}
}

func TestCodecUnselectedUnionRoundTrip(t *testing.T) {
	arena := newTypeArena()
	disc := int32Type(arena)
	branch, _ := newBuilder(arena, KindInt16, "").Build()
	ub := NewUnionBuilder(arena, "U", disc)
	m := newMember(0, "s", 0)
	m.Type = branch
	m.AddLabel(1)
	ub.AddMember(m)
	typ, _ := ub.Build()

	out := roundTrip(t, typ, func(d *DynamicData) {})
	if out.GetDiscriminatorValue() != MemberIDInvalid {
		t.Fatalf("GetDiscriminatorValue() for an unselected union after round trip = %v, want MemberIDInvalid", out.GetDiscriminatorValue())
	}
}

func TestCodecBitmaskRoundTrip(t *testing.T) {
	arena := newTypeArena()
	bb := NewBitmaskBuilder(arena, "Flags", 16)
	bb.AddFlag("a", 0)
	bb.AddFlag("b", 9)
	typ, _ := bb.Build()

	roundTrip(t, typ, func(d *DynamicData) {
		d.SetBitmaskFlag(MemberIDInvalid, "a", true)
		d.SetBitmaskFlag(MemberIDInvalid, "b", true)
	})
}

func TestCodecBitmaskStorageWidth(t *testing.T) {
	arena := newTypeArena()
	bb := NewBitmaskBuilder(arena, "Flags", 9)
	bb.AddFlag("a", 0)
	typ, _ := bb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)
	w := cdr.NewWriter(true)
	if !Serialize(typ, d, w) {
		t.Fatalf("Serialize() returned false")
	}
	if got := w.Len(); got != 2 {
		t.Fatalf("serialized bitmask width for bit_bound=9 = %d, want 2", got)
	}
}

func TestCDRSerializedSizeMatchesActualLength(t *testing.T) {
	arena := newTypeArena()
	typ := int32Type(arena)
	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)
	d.SetInt32Value(MemberIDInvalid, 5)

	size := CDRSerializedSize(typ, d, 0)
	if size != 4 {
		t.Fatalf("CDRSerializedSize() = %d, want 4", size)
	}

	sizeAligned := CDRSerializedSize(typ, d, 1)
	if sizeAligned != 7 {
		t.Fatalf("CDRSerializedSize() at alignment 1 = %d, want 7 (3 padding + 4)", sizeAligned)
	}
}

func TestMaxCDRSerializedSizePicksLargestUnionBranch(t *testing.T) {
	arena := newTypeArena()
	disc := int32Type(arena)
	short, _ := newBuilder(arena, KindInt16, "").Build()
	long, _ := newBuilder(arena, KindInt64, "").Build()

	ub := NewUnionBuilder(arena, "U", disc)
	a := newMember(0, "short", 0)
	a.Type = short
	a.AddLabel(1)
	b := newMember(1, "long", 1)
	b.Type = long
	b.AddLabel(2)
	ub.AddMember(a)
	ub.AddMember(b)
	typ, _ := ub.Build()

	got := MaxCDRSerializedSize(typ, 0)
	// discriminator (4) + 4-byte alignment pad to reach the int64 branch's
	// 8-byte boundary + 8-byte branch = 16; the int16 branch's trial (6
	// bytes total) loses out to it.
	if got != 16 {
		t.Fatalf("MaxCDRSerializedSize() = %d, want 16", got)
	}
}

func TestEmptyCDRSerializedSizeOfSequenceIsJustTheCount(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewSequenceBuilder(arena, elem, 0)
	typ, _ := sb.Build()

	if got := EmptyCDRSerializedSize(typ, 0); got != 4 {
		t.Fatalf("EmptyCDRSerializedSize() = %d, want 4", got)
	}
}

func TestSerializeKeyOnlyWritesKeyMembers(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewStructBuilder(arena, "Keyed", nil)
	key := newMember(MemberIDInvalid, "id", 0)
	key.Type = elem
	key.Annotations.SetKey(true)
	other := newMember(MemberIDInvalid, "payload", 0)
	other.Type = elem
	sb.AddMember(key)
	sb.AddMember(other)
	typ, _ := sb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)
	keyID, _ := d.GetMemberIdByName("id")
	otherID, _ := d.GetMemberIdByName("payload")
	d.SetInt32Value(keyID, 11)
	d.SetInt32Value(otherID, 22)

	w := cdr.NewWriter(true)
	if !SerializeKey(typ, d, w) {
		t.Fatalf("SerializeKey() returned false")
	}
	if got := w.Len(); got != 4 {
		t.Fatalf("SerializeKey() length = %d, want 4 (one int32 key member)", got)
	}
	r := cdr.NewReader(w.Bytes(), true)
	v, err := r.ReadInt32()
	if err != nil || v != 11 {
		t.Fatalf("SerializeKey() payload = (%d, %v), want (11, nil)", v, err)
	}
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "testing"

func int32Type(arena *typeArena) *DynamicType {
	t, _ := newBuilder(arena, KindInt32, "").Build()
	return t
}

func TestCreateDataPrimitiveDefault(t *testing.T) {
	arena := newTypeArena()
	typ := int32Type(arena)

	f := NewDynamicDataFactory(ContextOptions{})
	d, rc := f.CreateData(typ)
	if !rc.OK() {
		t.Fatalf("CreateData() = %v", rc)
	}
	v, rc := d.GetInt32Value(MemberIDInvalid)
	if !rc.OK() || v != 0 {
		t.Fatalf("GetInt32Value() = (%d, %v), want (0, OK)", v, rc)
	}
}

func TestSetGetBooleanValue(t *testing.T) {
	arena := newTypeArena()
	typ, _ := newBuilder(arena, KindBoolean, "").Build()
	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	if rc := d.SetBooleanValue(MemberIDInvalid, true); !rc.OK() {
		t.Fatalf("SetBooleanValue = %v", rc)
	}
	v, rc := d.GetBooleanValue(MemberIDInvalid)
	if !rc.OK() || !v {
		t.Fatalf("GetBooleanValue() = (%v, %v), want (true, OK)", v, rc)
	}
}

func TestByteInt8Uint8AliasSameStorage(t *testing.T) {
	arena := newTypeArena()
	typ, _ := newBuilder(arena, KindByte, "").Build()
	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	if rc := d.SetInt8Value(MemberIDInvalid, -1); !rc.OK() {
		t.Fatalf("SetInt8Value = %v", rc)
	}
	b, rc := d.GetByteValue(MemberIDInvalid)
	if !rc.OK() || b != 0xFF {
		t.Fatalf("GetByteValue() after SetInt8Value(-1) = (%#x, %v), want (0xff, OK)", b, rc)
	}
	u, rc := d.GetUint8Value(MemberIDInvalid)
	if !rc.OK() || u != 0xFF {
		t.Fatalf("GetUint8Value() = (%#x, %v), want (0xff, OK)", u, rc)
	}
}

func TestSetStringValueRejectsOverBound(t *testing.T) {
	arena := newTypeArena()
	b := NewStringBuilder(arena, false, 4)
	typ, _ := b.Build()
	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	if rc := d.SetStringValue(MemberIDInvalid, "abcd"); !rc.OK() {
		t.Fatalf("SetStringValue(at bound) = %v", rc)
	}
	if rc := d.SetStringValue(MemberIDInvalid, "abcde"); rc.OK() {
		t.Fatalf("SetStringValue(over bound) should fail")
	}
}

func TestEnumAccessors(t *testing.T) {
	arena := newTypeArena()
	eb := NewEnumBuilder(arena, "Color")
	eb.AddLiteral("RED", 0, false)
	eb.AddLiteral("GREEN", 1, false)
	typ, _ := eb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	name, rc := d.GetEnumStringValue(MemberIDInvalid)
	if !rc.OK() || name != "RED" {
		t.Fatalf("GetEnumStringValue() on fresh data = (%q, %v), want (RED, OK)", name, rc)
	}

	if rc := d.SetEnumStringValue(MemberIDInvalid, "GREEN"); !rc.OK() {
		t.Fatalf("SetEnumStringValue(GREEN) = %v", rc)
	}
	v, rc := d.GetInt32Value(MemberIDInvalid)
	if !rc.OK() || v != 1 {
		t.Fatalf("GetInt32Value() after selecting GREEN = (%d, %v), want (1, OK)", v, rc)
	}

	if rc := d.SetEnumStringValue(MemberIDInvalid, "BLUE"); rc.OK() {
		t.Fatalf("SetEnumStringValue(unknown literal) should fail")
	}
}

func TestBitmaskFlagAccessors(t *testing.T) {
	arena := newTypeArena()
	bb := NewBitmaskBuilder(arena, "Flags", 8)
	bb.AddFlag("a", 0)
	bb.AddFlag("b", 1)
	typ, _ := bb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	if rc := d.SetBitmaskFlag(MemberIDInvalid, "b", true); !rc.OK() {
		t.Fatalf("SetBitmaskFlag = %v", rc)
	}
	on, rc := d.GetBitmaskFlag(MemberIDInvalid, "b")
	if !rc.OK() || !on {
		t.Fatalf("GetBitmaskFlag(b) = (%v, %v), want (true, OK)", on, rc)
	}
	off, rc := d.GetBitmaskFlag(MemberIDInvalid, "a")
	if !rc.OK() || off {
		t.Fatalf("GetBitmaskFlag(a) = (%v, %v), want (false, OK)", off, rc)
	}
	raw, rc := d.GetBitmaskValue(MemberIDInvalid)
	if !rc.OK() || raw != 2 {
		t.Fatalf("GetBitmaskValue() = (%d, %v), want (2, OK)", raw, rc)
	}
}

func TestArrayElisionAndMaterialization(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	ab := NewArrayBuilder(arena, elem, []uint32{3})
	typ, _ := ab.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	v, rc := d.GetInt32Value(MemberId(1))
	if !rc.OK() || v != 0 {
		t.Fatalf("GetInt32Value(elided index) = (%d, %v), want (0, OK)", v, rc)
	}
	if len(d.children) != 0 {
		t.Fatalf("reading an elided array index should not materialize it")
	}

	if rc := d.SetInt32Value(MemberId(1), 7); !rc.OK() {
		t.Fatalf("SetInt32Value = %v", rc)
	}
	if len(d.children) != 1 {
		t.Fatalf("writing an array index should materialize exactly one child, got %d", len(d.children))
	}
	v, rc = d.GetInt32Value(MemberId(1))
	if !rc.OK() || v != 7 {
		t.Fatalf("GetInt32Value(materialized index) = (%d, %v), want (7, OK)", v, rc)
	}

	other, rc := d.GetInt32Value(MemberId(0))
	if !rc.OK() || other != 0 {
		t.Fatalf("GetInt32Value(still-elided index) = (%d, %v), want (0, OK)", other, rc)
	}
}

func TestStructureMemberAccess(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewStructBuilder(arena, "Point", nil)
	mx := newMember(MemberIDInvalid, "x", 0)
	mx.Type = elem
	my := newMember(MemberIDInvalid, "y", 0)
	my.Type = elem
	sb.AddMember(mx)
	sb.AddMember(my)
	typ, rc := sb.Build()
	if !rc.OK() {
		t.Fatalf("Build() = %v", rc)
	}

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	yID, rc := d.GetMemberIdByName("y")
	if !rc.OK() {
		t.Fatalf("GetMemberIdByName(y) = %v", rc)
	}
	if rc := d.SetInt32Value(yID, 9); !rc.OK() {
		t.Fatalf("SetInt32Value(y) = %v", rc)
	}
	v, rc := d.GetInt32Value(yID)
	if !rc.OK() || v != 9 {
		t.Fatalf("GetInt32Value(y) = (%d, %v), want (9, OK)", v, rc)
	}
	if d.GetItemCount() != 2 {
		t.Fatalf("GetItemCount() = %d, want 2", d.GetItemCount())
	}
}

func TestUnionSelectAndClear(t *testing.T) {
	arena := newTypeArena()
	disc := int32Type(arena)
	branch, _ := newBuilder(arena, KindInt16, "").Build()

	ub := NewUnionBuilder(arena, "U", disc)
	m := newMember(0, "s", 0)
	m.Type = branch
	m.AddLabel(1)
	ub.AddMember(m)
	typ, rc := ub.Build()
	if !rc.OK() {
		t.Fatalf("Build() = %v", rc)
	}

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	if got := d.GetDiscriminatorValue(); got != MemberIDInvalid {
		t.Fatalf("GetDiscriminatorValue() on fresh union = %v, want MemberIDInvalid", got)
	}
	if rc := d.SetDiscriminatorValue(1); !rc.OK() {
		t.Fatalf("SetDiscriminatorValue(1) = %v", rc)
	}
	if got := d.GetDiscriminatorValue(); got != 0 {
		t.Fatalf("GetDiscriminatorValue() = %v, want member 0", got)
	}
	if got := d.GetUnionLabel(); got != 1 {
		t.Fatalf("GetUnionLabel() = %d, want 1", got)
	}
	if d.GetItemCount() != 2 {
		t.Fatalf("GetItemCount() on selected union = %d, want 2", d.GetItemCount())
	}

	if rc := d.SetDiscriminatorValue(99); rc.OK() {
		t.Fatalf("SetDiscriminatorValue(unmatched label, no default) should fail")
	}

	if rc := d.ClearValue(MemberIDInvalid); !rc.OK() {
		t.Fatalf("ClearValue() = %v", rc)
	}
	if got := d.GetDiscriminatorValue(); got != MemberIDInvalid {
		t.Fatalf("GetDiscriminatorValue() after ClearValue = %v, want MemberIDInvalid", got)
	}
}

func TestLoanValuePreventsOverlapAndMutation(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewStructBuilder(arena, "S", nil)
	m := newMember(MemberIDInvalid, "a", 0)
	m.Type = elem
	sb.AddMember(m)
	typ, _ := sb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	id, _ := d.GetMemberIdByName("a")
	loaned, rc := d.LoanValue(id)
	if !rc.OK() {
		t.Fatalf("LoanValue = %v", rc)
	}
	if _, rc := d.LoanValue(id); rc.OK() {
		t.Fatalf("second overlapping LoanValue should fail")
	}
	if rc := d.SetInt32Value(id, 5); rc != RetcodePreconditionNotMet {
		t.Fatalf("SetInt32Value on a loaned member = %v, want RetcodePreconditionNotMet", rc)
	}
	if rc := f.DeleteData(d); rc != RetcodePreconditionNotMet {
		t.Fatalf("DeleteData with an outstanding loan = %v, want RetcodePreconditionNotMet", rc)
	}
	if rc := d.ReturnLoanedValue(loaned); !rc.OK() {
		t.Fatalf("ReturnLoanedValue = %v", rc)
	}
	if rc := d.SetInt32Value(id, 5); !rc.OK() {
		t.Fatalf("SetInt32Value after loan returned = %v", rc)
	}
}

func TestEqualsStructureComparesMemberValues(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewStructBuilder(arena, "S", nil)
	m := newMember(MemberIDInvalid, "a", 0)
	m.Type = elem
	sb.AddMember(m)
	typ, _ := sb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	a, _ := f.CreateData(typ)
	b, _ := f.CreateData(typ)

	if !Equals(a, b) {
		t.Fatalf("two freshly created structures should be equal")
	}

	id, _ := a.GetMemberIdByName("a")
	if rc := a.SetInt32Value(id, 3); !rc.OK() {
		t.Fatalf("SetInt32Value = %v", rc)
	}
	if Equals(a, b) {
		t.Fatalf("structures with diverging member values should not be equal")
	}

	if rc := b.SetInt32Value(id, 3); !rc.OK() {
		t.Fatalf("SetInt32Value = %v", rc)
	}
	if !Equals(a, b) {
		t.Fatalf("structures with matching member values should be equal")
	}
}

func TestSequenceInsertRemove(t *testing.T) {
	arena := newTypeArena()
	elem := int32Type(arena)
	sb := NewSequenceBuilder(arena, elem, 2)
	typ, _ := sb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)

	id0, rc := d.InsertSequenceData()
	if !rc.OK() {
		t.Fatalf("InsertSequenceData() = %v", rc)
	}
	d.SetInt32Value(id0, 1)
	id1, rc := d.InsertSequenceData()
	if !rc.OK() {
		t.Fatalf("InsertSequenceData() = %v", rc)
	}
	d.SetInt32Value(id1, 2)

	if _, rc := d.InsertSequenceData(); rc != RetcodeOutOfResources {
		t.Fatalf("InsertSequenceData() beyond bound = %v, want RetcodeOutOfResources", rc)
	}

	if rc := d.RemoveSequenceData(id0); !rc.OK() {
		t.Fatalf("RemoveSequenceData(id0) = %v", rc)
	}
	if d.GetItemCount() != 1 {
		t.Fatalf("GetItemCount() after remove = %d, want 1", d.GetItemCount())
	}
	v, rc := d.GetInt32Value(MemberId(0))
	if !rc.OK() || v != 2 {
		t.Fatalf("remaining element after compaction = (%d, %v), want (2, OK)", v, rc)
	}
}

func TestMapInsertRejectsDuplicateKey(t *testing.T) {
	arena := newTypeArena()
	keyType := int32Type(arena)
	valType, _ := newBuilder(arena, KindInt16, "").Build()
	mb := NewMapBuilder(arena, keyType, valType, 4)
	typ, _ := mb.Build()

	f := NewDynamicDataFactory(ContextOptions{})
	d, _ := f.CreateData(typ)
	keyFactory := NewDynamicDataFactory(ContextOptions{})

	k1, _ := keyFactory.CreateData(keyType)
	k1.SetInt32Value(MemberIDInvalid, 1)
	_, v1, rc := d.InsertMapData(k1)
	if !rc.OK() {
		t.Fatalf("InsertMapData = %v", rc)
	}
	v1.SetInt16Value(MemberIDInvalid, 10)

	k2, _ := keyFactory.CreateData(keyType)
	k2.SetInt32Value(MemberIDInvalid, 1)
	if _, _, rc := d.InsertMapData(k2); rc.OK() {
		t.Fatalf("InsertMapData with a duplicate key should fail")
	}

	if d.GetItemCount() != 1 {
		t.Fatalf("GetItemCount() = %d, want 1 pair", d.GetItemCount())
	}
}

func TestClearNonKeyValuesPreservesKeyMember(t *testing.T) {
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

	if rc := d.ClearNonKeyValues(); !rc.OK() {
		t.Fatalf("ClearNonKeyValues() = %v", rc)
	}
	v, _ := d.GetInt32Value(keyID)
	if v != 11 {
		t.Fatalf("key member changed by ClearNonKeyValues: got %d, want 11", v)
	}
	v, _ = d.GetInt32Value(otherID)
	if v != 0 {
		t.Fatalf("non-key member not cleared: got %d, want 0", v)
	}
}

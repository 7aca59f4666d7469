// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

// InsertSequenceData appends an element of the SEQUENCE's element type and
// returns its new index as a MemberId. Fails with
// BAD_PARAMETER if d is not a SEQUENCE, OUT_OF_RESOURCES if the bound is
// already reached.
func (d *DynamicData) InsertSequenceData() (MemberId, ReturnCode) {
	if d.typ.Kind() != KindSequence {
		return MemberIDInvalid, RetcodeBadParameter
	}
	bound := d.typ.Bound()
	if bound > 0 && uint32(len(d.childOrder)) >= bound {
		return MemberIDInvalid, RetcodeOutOfResources
	}
	id := MemberId(len(d.childOrder))
	d.children[id] = newData(d.typ.ElementType())
	d.childOrder = append(d.childOrder, id)
	return id, RetcodeOK
}

// RemoveSequenceData removes element id and compacts subsequent indices.
// BAD_PARAMETER if id is absent.
func (d *DynamicData) RemoveSequenceData(id MemberId) ReturnCode {
	if d.typ.Kind() != KindSequence {
		return RetcodeBadParameter
	}
	idx := -1
	for i, existing := range d.childOrder {
		if existing == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RetcodeBadParameter
	}
	d.childOrder = append(d.childOrder[:idx], d.childOrder[idx+1:]...)
	newChildren := make(map[MemberId]*DynamicData, len(d.childOrder))
	newOrder := make([]MemberId, len(d.childOrder))
	for i, existing := range d.childOrder {
		newChildren[MemberId(i)] = d.children[existing]
		newOrder[i] = MemberId(i)
	}
	d.children = newChildren
	d.childOrder = newOrder
	return RetcodeOK
}

// InsertMapData appends a (key, value) pair, rejecting a key equal (by
// value equality) to one already present. outKey/outValue
// are the materialized key/value DynamicData, ready for typed mutation.
func (d *DynamicData) InsertMapData(key *DynamicData) (outKey, outValue *DynamicData, rc ReturnCode) {
	if d.typ.Kind() != KindMap {
		return nil, nil, RetcodeBadParameter
	}
	bound := d.typ.Bound()
	pairs := len(d.childOrder) / 2
	if bound > 0 && uint32(pairs) >= bound {
		return nil, nil, RetcodeOutOfResources
	}
	for i := 0; i < len(d.childOrder); i += 2 {
		if Equals(d.children[d.childOrder[i]], key) {
			return nil, nil, RetcodeBadParameter
		}
	}
	keyID := MemberId(len(d.childOrder))
	valueID := keyID + 1
	keyData := key.clone()
	keyData.isKeyElement = true
	valueData := newData(d.typ.ElementType())
	d.children[keyID] = keyData
	d.children[valueID] = valueData
	d.childOrder = append(d.childOrder, keyID, valueID)
	return keyData, valueData, RetcodeOK
}

// RemoveMapData removes the pair whose key half has id keyID, compacting
// subsequent pair indices. BAD_PARAMETER if keyID is absent or addresses a
// value half.
func (d *DynamicData) RemoveMapData(keyID MemberId) ReturnCode {
	if d.typ.Kind() != KindMap {
		return RetcodeBadParameter
	}
	idx := -1
	for i := 0; i < len(d.childOrder); i += 2 {
		if d.childOrder[i] == keyID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RetcodeBadParameter
	}
	d.childOrder = append(d.childOrder[:idx], d.childOrder[idx+2:]...)
	newChildren := make(map[MemberId]*DynamicData, len(d.childOrder))
	newOrder := make([]MemberId, len(d.childOrder))
	for i, existing := range d.childOrder {
		newChildren[MemberId(i)] = d.children[existing]
		newOrder[i] = MemberId(i)
	}
	for i := 0; i < len(newOrder); i += 2 {
		newChildren[newOrder[i]].isKeyElement = true
	}
	d.children = newChildren
	d.childOrder = newOrder
	return RetcodeOK
}

// ClearArrayData resets array element indexID to default_array_value
// by simply dropping its materialized entry; absent
// indices already read back as the prototype.
func (d *DynamicData) ClearArrayData(indexID MemberId) ReturnCode {
	if d.typ.Kind() != KindArray {
		return RetcodeBadParameter
	}
	if d.isLoaned(indexID) {
		return RetcodePreconditionNotMet
	}
	delete(d.children, indexID)
	return RetcodeOK
}

// ClearValue resets member id to its default-constructed value. For a
// UNION this clears the active branch back to unselected.
func (d *DynamicData) ClearValue(id MemberId) ReturnCode {
	if d.isLoaned(id) {
		return RetcodePreconditionNotMet
	}
	if d.typ.Kind() == KindUnion {
		d.children = make(map[MemberId]*DynamicData)
		d.childOrder = nil
		d.unionID = MemberIDInvalid
		return RetcodeOK
	}
	if id == MemberIDInvalid {
		d.value = zeroValueCell(d.value.kind)
		return RetcodeOK
	}
	c, ok := d.children[id]
	if !ok {
		return RetcodeBadParameter
	}
	d.children[id] = newData(c.typ)
	return RetcodeOK
}

// ClearAllValues resets every member to its default-constructed value.
func (d *DynamicData) ClearAllValues() ReturnCode {
	if d.typ.Kind() == KindUnion {
		return d.ClearValue(MemberIDInvalid)
	}
	for id := range d.children {
		if rc := d.ClearValue(id); !rc.OK() {
			return rc
		}
	}
	return RetcodeOK
}

// ClearNonKeyValues resets every member not declared with the key
// annotation, preserving key-bearing members.
func (d *DynamicData) ClearNonKeyValues() ReturnCode {
	for _, m := range d.typ.GetAllMembers() {
		if m.Annotations.IsKey() {
			continue
		}
		if rc := d.ClearValue(m.ID); !rc.OK() {
			return rc
		}
	}
	return RetcodeOK
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "math"

// This file implements the typed get_X/set_X accessor pairs. Every
// accessor takes a MemberId (MemberIDInvalid for primitive self-access)
// and returns a ReturnCode; a type mismatch between the requested
// accessor and the slot's kind is BAD_PARAMETER, with the documented
// exceptions for byte/int8/uint8 aliasing, enum-by-name, and
// bitmask-as-uint64.

func (d *DynamicData) GetBooleanValue(id MemberId) (bool, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return false, rc
	}
	if c.value.kind != KindBoolean {
		return false, RetcodeBadParameter
	}
	return c.value.bits != 0, RetcodeOK
}

func (d *DynamicData) SetBooleanValue(id MemberId, v bool) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindBoolean {
		return RetcodeBadParameter
	}
	if v {
		c.value.bits = 1
	} else {
		c.value.bits = 0
	}
	return RetcodeOK
}

// GetByteValue reads a BYTE slot. An INT8/UINT8 accessor aliases the same
// storage via a sign cast; see GetInt8Value/GetUint8Value below.
func (d *DynamicData) GetByteValue(id MemberId) (byte, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindByte {
		return 0, RetcodeBadParameter
	}
	return byte(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetByteValue(id MemberId, v byte) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindByte {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(v)
	return RetcodeOK
}

func (d *DynamicData) GetInt8Value(id MemberId) (int8, ReturnCode) {
	v, rc := d.GetByteValue(id)
	return int8(v), rc
}

func (d *DynamicData) SetInt8Value(id MemberId, v int8) ReturnCode {
	return d.SetByteValue(id, byte(v))
}

func (d *DynamicData) GetUint8Value(id MemberId) (uint8, ReturnCode) {
	return d.GetByteValue(id)
}

func (d *DynamicData) SetUint8Value(id MemberId, v uint8) ReturnCode {
	return d.SetByteValue(id, v)
}

func (d *DynamicData) GetInt16Value(id MemberId) (int16, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindInt16 {
		return 0, RetcodeBadParameter
	}
	return int16(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetInt16Value(id MemberId, v int16) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindInt16 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(uint16(v))
	return RetcodeOK
}

func (d *DynamicData) GetUint16Value(id MemberId) (uint16, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindUint16 {
		return 0, RetcodeBadParameter
	}
	return uint16(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetUint16Value(id MemberId, v uint16) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindUint16 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(v)
	return RetcodeOK
}

// GetInt32Value additionally accepts an ENUM slot: an enum is readable as
// both its integer value and its literal's name string (GetEnumStringValue).
func (d *DynamicData) GetInt32Value(id MemberId) (int32, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindInt32 && c.value.kind != KindEnum {
		return 0, RetcodeBadParameter
	}
	return int32(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetInt32Value(id MemberId, v int32) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindInt32 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(uint32(v))
	return RetcodeOK
}

func (d *DynamicData) GetUint32Value(id MemberId) (uint32, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindUint32 && c.value.kind != KindEnum {
		return 0, RetcodeBadParameter
	}
	return uint32(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetUint32Value(id MemberId, v uint32) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindUint32 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(v)
	return RetcodeOK
}

func (d *DynamicData) GetInt64Value(id MemberId) (int64, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindInt64 {
		return 0, RetcodeBadParameter
	}
	return int64(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetInt64Value(id MemberId, v int64) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindInt64 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(v)
	return RetcodeOK
}

func (d *DynamicData) GetUint64Value(id MemberId) (uint64, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindUint64 {
		return 0, RetcodeBadParameter
	}
	return c.value.bits, RetcodeOK
}

func (d *DynamicData) SetUint64Value(id MemberId, v uint64) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindUint64 {
		return RetcodeBadParameter
	}
	c.value.bits = v
	return RetcodeOK
}

func (d *DynamicData) GetFloat32Value(id MemberId) (float32, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindFloat32 {
		return 0, RetcodeBadParameter
	}
	return math.Float32frombits(uint32(c.value.bits)), RetcodeOK
}

func (d *DynamicData) SetFloat32Value(id MemberId, v float32) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindFloat32 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(math.Float32bits(v))
	return RetcodeOK
}

func (d *DynamicData) GetFloat64Value(id MemberId) (float64, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindFloat64 {
		return 0, RetcodeBadParameter
	}
	return math.Float64frombits(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetFloat64Value(id MemberId, v float64) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindFloat64 {
		return RetcodeBadParameter
	}
	c.value.bits = math.Float64bits(v)
	return RetcodeOK
}

// GetFloat128Value returns the FLOAT128 slot's decimal text (Go has no
// native 128-bit float; see DESIGN.md for this simplification).
func (d *DynamicData) GetFloat128Value(id MemberId) (string, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return "", rc
	}
	if c.value.kind != KindFloat128 {
		return "", RetcodeBadParameter
	}
	return c.value.str, RetcodeOK
}

func (d *DynamicData) SetFloat128Value(id MemberId, v string) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindFloat128 {
		return RetcodeBadParameter
	}
	c.value.str = v
	return RetcodeOK
}

func (d *DynamicData) GetChar8Value(id MemberId) (byte, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindChar8 {
		return 0, RetcodeBadParameter
	}
	return byte(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetChar8Value(id MemberId, v byte) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindChar8 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(v)
	return RetcodeOK
}

func (d *DynamicData) GetChar16Value(id MemberId) (rune, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindChar16 {
		return 0, RetcodeBadParameter
	}
	return rune(c.value.bits), RetcodeOK
}

func (d *DynamicData) SetChar16Value(id MemberId, v rune) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindChar16 {
		return RetcodeBadParameter
	}
	c.value.bits = uint64(uint32(v))
	return RetcodeOK
}

// GetStringValue reads a STRING8 or STRING16 slot.
func (d *DynamicData) GetStringValue(id MemberId) (string, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return "", rc
	}
	if c.value.kind != KindString8 && c.value.kind != KindString16 {
		return "", RetcodeBadParameter
	}
	return c.value.str, RetcodeOK
}

func (d *DynamicData) SetStringValue(id MemberId, v string) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindString8 && c.value.kind != KindString16 {
		return RetcodeBadParameter
	}
	bound := c.typ.Bound()
	if bound > 0 && uint32(len(v)) > bound {
		return RetcodeBadParameter
	}
	c.value.str = v
	return RetcodeOK
}

// GetEnumStringValue returns the active literal's name.
func (d *DynamicData) GetEnumStringValue(id MemberId) (string, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return "", rc
	}
	if c.value.kind != KindEnum {
		return "", RetcodeBadParameter
	}
	for _, m := range c.typ.GetAllMembers() {
		if m.FirstLabel() == int64(int32(c.value.bits)) {
			return m.Name, RetcodeOK
		}
	}
	return "", RetcodeBadParameter
}

// SetEnumStringValue selects a literal by name; an unknown name is
// BAD_PARAMETER.
func (d *DynamicData) SetEnumStringValue(id MemberId, name string) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindEnum {
		return RetcodeBadParameter
	}
	memberID, code := c.typ.MemberIDByName(name)
	if !code.OK() {
		return RetcodeBadParameter
	}
	m, _ := c.typ.GetMember(memberID)
	c.value.bits = uint64(uint32(m.FirstLabel()))
	return RetcodeOK
}

// GetBitmaskValue reads the slot as a single uint64 regardless of its
// declared storage width.
func (d *DynamicData) GetBitmaskValue(id MemberId) (uint64, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return 0, rc
	}
	if c.value.kind != KindBitmask {
		return 0, RetcodeBadParameter
	}
	return c.value.bits, RetcodeOK
}

func (d *DynamicData) SetBitmaskValue(id MemberId, v uint64) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindBitmask {
		return RetcodeBadParameter
	}
	c.value.bits = v
	return RetcodeOK
}

// SetBitmaskFlag sets or clears one named flag, addressed by name via
// GetMemberIdByName.
func (d *DynamicData) SetBitmaskFlag(id MemberId, name string, on bool) ReturnCode {
	c, rc := d.writeChild(id)
	if !rc.OK() {
		return rc
	}
	if c.value.kind != KindBitmask {
		return RetcodeBadParameter
	}
	memberID, code := c.typ.MemberIDByName(name)
	if !code.OK() {
		return RetcodeBadParameter
	}
	m, _ := c.typ.GetMember(memberID)
	mask := uint64(1) << uint(m.Index)
	if on {
		c.value.bits |= mask
	} else {
		c.value.bits &^= mask
	}
	return RetcodeOK
}

func (d *DynamicData) GetBitmaskFlag(id MemberId, name string) (bool, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return false, rc
	}
	if c.value.kind != KindBitmask {
		return false, RetcodeBadParameter
	}
	memberID, code := c.typ.MemberIDByName(name)
	if !code.OK() {
		return false, RetcodeBadParameter
	}
	m, _ := c.typ.GetMember(memberID)
	return c.value.bits&(uint64(1)<<uint(m.Index)) != 0, RetcodeOK
}

// --- Union coherence ---

// SetDiscriminatorValue sets union_id to the branch selected by label,
// discards any previously stored branch value, and allocates a default
// value for the new branch.
func (d *DynamicData) SetDiscriminatorValue(label int64) ReturnCode {
	if d.typ.Kind() != KindUnion {
		return RetcodeBadParameter
	}
	id := d.typ.GetIDFromLabel(label)
	if id == MemberIDInvalid {
		return RetcodeBadParameter
	}
	return d.selectUnionBranch(id)
}

// SelectUnionMember is equivalent to SetDiscriminatorValue but addresses
// the branch by MemberId directly; both resolve through the same
// selectUnionBranch and so behave identically.
func (d *DynamicData) SelectUnionMember(id MemberId) ReturnCode {
	if d.typ.Kind() != KindUnion {
		return RetcodeBadParameter
	}
	if _, ok := d.typ.GetMember(id); !ok {
		return RetcodeBadParameter
	}
	return d.selectUnionBranch(id)
}

func (d *DynamicData) selectUnionBranch(id MemberId) ReturnCode {
	if d.unionID == id {
		return RetcodeOK
	}
	d.children = make(map[MemberId]*DynamicData)
	d.childOrder = nil
	m, _ := d.typ.GetMember(id)
	d.children[id] = newData(m.Type)
	d.childOrder = append(d.childOrder, id)
	d.unionID = id
	return RetcodeOK
}

// GetDiscriminatorValue returns the active branch's MemberId,
// MemberIDInvalid when none is selected.
func (d *DynamicData) GetDiscriminatorValue() MemberId { return d.unionID }

// GetUnionLabel returns one label of the active branch (its first label;
// 0 if the default branch or no branch is active).
func (d *DynamicData) GetUnionLabel() int64 {
	if d.unionID == MemberIDInvalid {
		return 0
	}
	m, ok := d.typ.GetMember(d.unionID)
	if !ok {
		return 0
	}
	return m.FirstLabel()
}

// --- Loans ---

// LoanValue returns a borrowed reference to child id and records the loan;
// a second loan of the same id before it is returned fails with
// BAD_PARAMETER (the parent "refuses overlapping loans of the same id").
func (d *DynamicData) LoanValue(id MemberId) (*DynamicData, ReturnCode) {
	c, rc := d.readChild(id)
	if !rc.OK() {
		return nil, rc
	}
	if d.isLoaned(id) {
		return nil, RetcodeBadParameter
	}
	if d.loaned == nil {
		d.loaned = make(map[MemberId]bool)
	}
	d.loaned[id] = true
	return c, RetcodeOK
}

// ReturnLoanedValue releases a loan previously obtained from LoanValue.
// Passing a value not currently on loan from d returns
// PRECONDITION_NOT_MET.
func (d *DynamicData) ReturnLoanedValue(v *DynamicData) ReturnCode {
	for id, c := range d.children {
		if c == v && d.isLoaned(id) {
			delete(d.loaned, id)
			return RetcodeOK
		}
	}
	if v == d && d.isLoaned(MemberIDInvalid) {
		delete(d.loaned, MemberIDInvalid)
		return RetcodeOK
	}
	return RetcodePreconditionNotMet
}

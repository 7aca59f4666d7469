// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

// Equals implements structural value equality: type references must
// denote equal types; primitives compare by value
// (NaN equal to itself); sequences/arrays/maps compare element-wise in
// declared order; structures compare the union of present members (a
// missing member equals a present one iff the present one holds its
// default); unions compare equal iff the active branch matches (or both
// are unset).
func Equals(a, b *DynamicData) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !EqualTypes(a.typ, b.typ) {
		return false
	}

	switch a.typ.Kind() {
	case KindArray:
		total := a.typ.TotalBounds()
		for i := MemberId(0); uint32(i) < total; i++ {
			ea, _ := a.readChild(i)
			eb, _ := b.readChild(i)
			if !Equals(ea, eb) {
				return false
			}
		}
		return true

	case KindSequence:
		if len(a.childOrder) != len(b.childOrder) {
			return false
		}
		for i, id := range a.childOrder {
			if !Equals(a.children[id], b.children[b.childOrder[i]]) {
				return false
			}
		}
		return true

	case KindMap:
		if len(a.childOrder) != len(b.childOrder) {
			return false
		}
		for i, id := range a.childOrder {
			if !Equals(a.children[id], b.children[b.childOrder[i]]) {
				return false
			}
		}
		return true

	case KindUnion:
		if a.unionID == MemberIDInvalid || b.unionID == MemberIDInvalid {
			return a.unionID == b.unionID
		}
		ma, oka := a.typ.GetMember(a.unionID)
		mb, okb := b.typ.GetMember(b.unionID)
		if !oka || !okb || ma.FirstLabel() != mb.FirstLabel() {
			return false
		}
		return Equals(a.children[a.unionID], b.children[b.unionID])

	case KindStructure, KindBitset:
		ids := make(map[MemberId]bool, len(a.children)+len(b.children))
		for id := range a.children {
			ids[id] = true
		}
		for id := range b.children {
			ids[id] = true
		}
		for id := range ids {
			ca, oka := a.children[id]
			cb, okb := b.children[id]
			if oka && okb {
				if !Equals(ca, cb) {
					return false
				}
				continue
			}
			present := ca
			if okb {
				present = cb
			}
			if !Equals(present, newData(present.typ)) {
				return false
			}
		}
		return true

	default:
		return a.value.equal(b.value)
	}
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import (
	"math"
	"strconv"

	"github.com/nimbusdds/xtypes/cdr"
)

// Serialize writes d's value through typ's CDR encoding into w, recursing
// through aggregates/collections per a per-kind encoding algorithm. It
// returns false on any unsupported kind combination; the caller must
// discard w's partial bytes on failure.
func Serialize(typ *DynamicType, d *DynamicData, w *cdr.Writer) bool {
	if typ == nil || d == nil {
		return false
	}
	switch typ.Kind() {
	case KindAlias:
		return Serialize(typ.BaseType(), d, w)

	case KindBoolean:
		v, rc := d.GetBooleanValue(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteBool(v)
	case KindByte:
		v, rc := d.GetByteValue(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteByte(v)
	case KindChar8:
		v, rc := d.GetChar8Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteByte(v)
	case KindChar16:
		v, rc := d.GetChar16Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteChar16(v)
	case KindInt16:
		v, rc := d.GetInt16Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteInt16(v)
	case KindUint16:
		v, rc := d.GetUint16Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteUint16(v)
	case KindInt32:
		v, rc := d.GetInt32Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteInt32(v)
	case KindUint32:
		v, rc := d.GetUint32Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteUint32(v)
	case KindInt64:
		v, rc := d.GetInt64Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteInt64(v)
	case KindUint64:
		v, rc := d.GetUint64Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteUint64(v)
	case KindFloat32:
		v, rc := d.GetFloat32Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteFloat32(v)
	case KindFloat64:
		v, rc := d.GetFloat64Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteFloat64(v)
	case KindFloat128:
		s, rc := d.GetFloat128Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		f, _ := strconv.ParseFloat(s, 64)
		w.WriteFloat128(math.Float64bits(f))
	case KindString8:
		v, rc := d.GetStringValue(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteString(v)
	case KindString16:
		v, rc := d.GetStringValue(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteWString(v)
	case KindEnum:
		v, rc := d.GetInt32Value(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		w.WriteUint32(uint32(v))
	case KindBitmask:
		width, rc := storageWidthForBitBound(typ.Bound())
		if !rc.OK() {
			return false
		}
		v, rc := d.GetBitmaskValue(MemberIDInvalid)
		if !rc.OK() {
			return false
		}
		writeBitmaskWidth(w, width, v)

	case KindStructure, KindBitset:
		if base := typ.BaseType(); base != nil {
			if !Serialize(base, d, w) {
				return false
			}
		}
		for _, m := range typ.GetAllMembers() {
			if m.Annotations.IsNonSerialized() {
				continue
			}
			child, rc := d.readChild(m.ID)
			if !rc.OK() {
				return false
			}
			if !Serialize(m.Type, child, w) {
				return false
			}
		}

	case KindUnion:
		return serializeUnion(typ, d, w)

	case KindSequence:
		w.WriteUint32(uint32(len(d.childOrder)))
		for _, id := range d.childOrder {
			if !Serialize(typ.ElementType(), d.children[id], w) {
				return false
			}
		}

	case KindMap:
		w.WriteUint32(uint32(len(d.childOrder) / 2))
		for i, id := range d.childOrder {
			elemType := typ.ElementType()
			if i%2 == 0 {
				elemType = typ.KeyElementType()
			}
			if !Serialize(elemType, d.children[id], w) {
				return false
			}
		}

	case KindArray:
		total := typ.TotalBounds()
		for i := MemberId(0); uint32(i) < total; i++ {
			child, rc := d.readChild(i)
			if !rc.OK() {
				return false
			}
			if !Serialize(typ.ElementType(), child, w) {
				return false
			}
		}

	default:
		return false
	}
	return true
}

// Deserialize is Serialize's inverse: it reads from r into the already
// type-bound value d, following the same per-kind structure. On a union
// discriminator with no matching branch it leaves d's union unselected
// rather than failing the whole call.
func Deserialize(typ *DynamicType, d *DynamicData, r *cdr.Reader) bool {
	if typ == nil || d == nil {
		return false
	}
	switch typ.Kind() {
	case KindAlias:
		return Deserialize(typ.BaseType(), d, r)

	case KindBoolean:
		v, err := r.ReadBool()
		if err != nil {
			return false
		}
		return d.SetBooleanValue(MemberIDInvalid, v).OK()
	case KindByte:
		v, err := r.ReadByte()
		if err != nil {
			return false
		}
		return d.SetByteValue(MemberIDInvalid, v).OK()
	case KindChar8:
		v, err := r.ReadByte()
		if err != nil {
			return false
		}
		return d.SetChar8Value(MemberIDInvalid, v).OK()
	case KindChar16:
		v, err := r.ReadChar16()
		if err != nil {
			return false
		}
		return d.SetChar16Value(MemberIDInvalid, v).OK()
	case KindInt16:
		v, err := r.ReadInt16()
		if err != nil {
			return false
		}
		return d.SetInt16Value(MemberIDInvalid, v).OK()
	case KindUint16:
		v, err := r.ReadUint16()
		if err != nil {
			return false
		}
		return d.SetUint16Value(MemberIDInvalid, v).OK()
	case KindInt32:
		v, err := r.ReadInt32()
		if err != nil {
			return false
		}
		return d.SetInt32Value(MemberIDInvalid, v).OK()
	case KindUint32:
		v, err := r.ReadUint32()
		if err != nil {
			return false
		}
		return d.SetUint32Value(MemberIDInvalid, v).OK()
	case KindInt64:
		v, err := r.ReadInt64()
		if err != nil {
			return false
		}
		return d.SetInt64Value(MemberIDInvalid, v).OK()
	case KindUint64:
		v, err := r.ReadUint64()
		if err != nil {
			return false
		}
		return d.SetUint64Value(MemberIDInvalid, v).OK()
	case KindFloat32:
		v, err := r.ReadFloat32()
		if err != nil {
			return false
		}
		return d.SetFloat32Value(MemberIDInvalid, v).OK()
	case KindFloat64:
		v, err := r.ReadFloat64()
		if err != nil {
			return false
		}
		return d.SetFloat64Value(MemberIDInvalid, v).OK()
	case KindFloat128:
		bits, err := r.ReadFloat128()
		if err != nil {
			return false
		}
		s := strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64)
		return d.SetFloat128Value(MemberIDInvalid, s).OK()
	case KindString8:
		v, err := r.ReadString()
		if err != nil {
			return false
		}
		return d.SetStringValue(MemberIDInvalid, v).OK()
	case KindString16:
		v, err := r.ReadWString()
		if err != nil {
			return false
		}
		return d.SetStringValue(MemberIDInvalid, v).OK()
	case KindEnum:
		v, err := r.ReadInt32()
		if err != nil {
			return false
		}
		d.value.bits = uint64(uint32(v))
		return true
	case KindBitmask:
		width, rc := storageWidthForBitBound(typ.Bound())
		if !rc.OK() {
			return false
		}
		v, err := readBitmaskWidth(r, width)
		if err != nil {
			return false
		}
		return d.SetBitmaskValue(MemberIDInvalid, v).OK()

	case KindStructure, KindBitset:
		if base := typ.BaseType(); base != nil {
			if !Deserialize(base, d, r) {
				return false
			}
		}
		for _, m := range typ.GetAllMembers() {
			if m.Annotations.IsNonSerialized() {
				continue
			}
			child, rc := d.readChild(m.ID)
			if !rc.OK() {
				return false
			}
			if !Deserialize(m.Type, child, r) {
				return false
			}
		}
		return true

	case KindUnion:
		return deserializeUnion(typ, d, r)

	case KindSequence:
		n, err := r.ReadUint32()
		if err != nil {
			return false
		}
		d.children = make(map[MemberId]*DynamicData, n)
		d.childOrder = make([]MemberId, 0, n)
		for i := uint32(0); i < n; i++ {
			id := MemberId(i)
			child := newData(typ.ElementType())
			if !Deserialize(typ.ElementType(), child, r) {
				return false
			}
			d.children[id] = child
			d.childOrder = append(d.childOrder, id)
		}
		return true

	case KindMap:
		n, err := r.ReadUint32()
		if err != nil {
			return false
		}
		d.children = make(map[MemberId]*DynamicData, n*2)
		d.childOrder = make([]MemberId, 0, n*2)
		for i := uint32(0); i < n; i++ {
			keyID := MemberId(len(d.childOrder))
			keyData := newData(typ.KeyElementType())
			if !Deserialize(typ.KeyElementType(), keyData, r) {
				return false
			}
			keyData.isKeyElement = true
			valueID := keyID + 1
			valueData := newData(typ.ElementType())
			if !Deserialize(typ.ElementType(), valueData, r) {
				return false
			}
			d.children[keyID] = keyData
			d.children[valueID] = valueData
			d.childOrder = append(d.childOrder, keyID, valueID)
		}
		return true

	case KindArray:
		total := typ.TotalBounds()
		if d.children == nil {
			d.children = make(map[MemberId]*DynamicData, total)
		}
		for i := MemberId(0); uint32(i) < total; i++ {
			child := newData(typ.ElementType())
			if !Deserialize(typ.ElementType(), child, r) {
				return false
			}
			// Every decoded slot is materialized, even when it equals the
			// prototype: the prototype is strictly an elision hint for
			// values the application never touched, not a signal to the
			// codec.
			d.children[i] = child
		}
		return true

	default:
		return false
	}
	return true
}

// SerializeKey writes only typ's key-annotated projection: for
// STRUCTURE/BITSET, recurse into key-annotated members only,
// writing nothing if none are key-annotated; for any other key-defined
// type, delegate to the full serializer.
func SerializeKey(typ *DynamicType, d *DynamicData, w *cdr.Writer) bool {
	if typ == nil || d == nil {
		return false
	}
	switch typ.Kind() {
	case KindAlias:
		return SerializeKey(typ.BaseType(), d, w)
	case KindStructure, KindBitset:
		if base := typ.BaseType(); base != nil {
			if !SerializeKey(base, d, w) {
				return false
			}
		}
		for _, m := range typ.GetAllMembers() {
			if !m.Annotations.IsKey() {
				continue
			}
			child, rc := d.readChild(m.ID)
			if !rc.OK() {
				return false
			}
			if !Serialize(m.Type, child, w) {
				return false
			}
		}
		return true
	default:
		if !typ.IsKeyDefined() {
			return true
		}
		return Serialize(typ, d, w)
	}
}

func writeBitmaskWidth(w *cdr.Writer, width uint32, v uint64) {
	switch width {
	case 1:
		w.WriteByte(byte(v))
	case 2:
		w.WriteUint16(uint16(v))
	case 4:
		w.WriteUint32(uint32(v))
	case 8:
		w.WriteUint64(v)
	}
}

func readBitmaskWidth(r *cdr.Reader, width uint32) (uint64, error) {
	switch width {
	case 1:
		v, err := r.ReadByte()
		return uint64(v), err
	case 2:
		v, err := r.ReadUint16()
		return uint64(v), err
	case 4:
		v, err := r.ReadUint32()
		return uint64(v), err
	default:
		return r.ReadUint64()
	}
}

func serializeUnion(typ *DynamicType, d *DynamicData, w *cdr.Writer) bool {
	discType := typ.DiscriminatorType()
	label := int64(-1)
	if d.unionID != MemberIDInvalid {
		if m, ok := typ.GetMember(d.unionID); ok {
			label = m.FirstLabel()
		}
	}
	if !writeDiscriminatorLabel(discType, label, w) {
		return false
	}
	if d.unionID == MemberIDInvalid {
		return true
	}
	m, ok := typ.GetMember(d.unionID)
	if !ok {
		return false
	}
	child, rc := d.readChild(d.unionID)
	if !rc.OK() {
		return false
	}
	return Serialize(m.Type, child, w)
}

func deserializeUnion(typ *DynamicType, d *DynamicData, r *cdr.Reader) bool {
	discType := typ.DiscriminatorType()
	label, ok := readDiscriminatorLabel(discType, r)
	if !ok {
		return false
	}
	id := typ.GetIDFromLabel(label)
	if id == MemberIDInvalid {
		d.children = make(map[MemberId]*DynamicData)
		d.childOrder = nil
		d.unionID = MemberIDInvalid
		return true
	}
	if rc := d.SelectUnionMember(id); !rc.OK() {
		return false
	}
	m, _ := typ.GetMember(id)
	child, rc := d.readChild(id)
	if !rc.OK() {
		return false
	}
	return Deserialize(m.Type, child, r)
}

// writeDiscriminatorLabel promotes a union's 64-bit label into the
// discriminator's own CDR representation, one width/encoding per
// discriminator kind. Bitmask discriminators are supported here rather
// than treated as an error case, since nothing in the type system forbids
// a BITMASK-typed union discriminator.
func writeDiscriminatorLabel(discType *DynamicType, label int64, w *cdr.Writer) bool {
	switch discType.Kind() {
	case KindBoolean:
		w.WriteBool(label != 0)
	case KindByte, KindChar8:
		w.WriteByte(byte(label))
	case KindInt16:
		w.WriteInt16(int16(label))
	case KindUint16:
		w.WriteUint16(uint16(label))
	case KindChar16:
		w.WriteChar16(rune(label))
	case KindInt32:
		w.WriteInt32(int32(label))
	case KindUint32, KindEnum:
		w.WriteUint32(uint32(label))
	case KindFloat32:
		w.WriteFloat32(math.Float32frombits(uint32(label)))
	case KindInt64, KindUint64:
		w.WriteUint64(uint64(label))
	case KindFloat64:
		w.WriteFloat64(math.Float64frombits(uint64(label)))
	case KindFloat128:
		w.WriteFloat128(uint64(label))
	case KindString8:
		w.WriteString(strconv.FormatInt(label, 10))
	case KindString16:
		w.WriteWString(strconv.FormatInt(label, 10))
	case KindBitmask:
		width, rc := storageWidthForBitBound(discType.Bound())
		if !rc.OK() {
			return false
		}
		writeBitmaskWidth(w, width, uint64(label))
	default:
		return false
	}
	return true
}

func readDiscriminatorLabel(discType *DynamicType, r *cdr.Reader) (int64, bool) {
	switch discType.Kind() {
	case KindBoolean:
		v, err := r.ReadBool()
		if err != nil {
			return 0, false
		}
		if v {
			return 1, true
		}
		return 0, true
	case KindByte, KindChar8:
		v, err := r.ReadByte()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindInt16:
		v, err := r.ReadInt16()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindUint16:
		v, err := r.ReadUint16()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindChar16:
		v, err := r.ReadChar16()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindInt32:
		v, err := r.ReadInt32()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindUint32, KindEnum:
		v, err := r.ReadUint32()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindFloat32:
		v, err := r.ReadFloat32()
		if err != nil {
			return 0, false
		}
		return int64(math.Float32bits(v)), true
	case KindInt64, KindUint64:
		v, err := r.ReadUint64()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindFloat64:
		v, err := r.ReadFloat64()
		if err != nil {
			return 0, false
		}
		return int64(math.Float64bits(v)), true
	case KindFloat128:
		v, err := r.ReadFloat128()
		if err != nil {
			return 0, false
		}
		return int64(v), true
	case KindString8:
		s, err := r.ReadString()
		if err != nil {
			return 0, false
		}
		n, perr := strconv.ParseInt(s, 10, 64)
		return n, perr == nil
	case KindString16:
		s, err := r.ReadWString()
		if err != nil {
			return 0, false
		}
		n, perr := strconv.ParseInt(s, 10, 64)
		return n, perr == nil
	case KindBitmask:
		width, rc := storageWidthForBitBound(discType.Bound())
		if !rc.OK() {
			return 0, false
		}
		v, err := readBitmaskWidth(r, width)
		if err != nil {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

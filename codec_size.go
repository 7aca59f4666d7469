// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import (
	"math"
	"strings"

	"github.com/nimbusdds/xtypes/cdr"
)

// CDRSerializedSize returns the exact byte length of d's CDR encoding
// relative to currentAlignment. It drives the real
// serializer against a scratch Writer seeded with currentAlignment bytes
// of padding, so alignment decisions land exactly as they would in the
// caller's own stream.
func CDRSerializedSize(typ *DynamicType, d *DynamicData, currentAlignment int) int {
	w := cdr.NewWriter(true)
	w.Skip(currentAlignment)
	if !Serialize(typ, d, w) {
		return 0
	}
	return w.Len() - currentAlignment
}

// EmptyCDRSerializedSize returns the size of a default-constructed value
// of typ, used to account for absent array elements and optional members.
func EmptyCDRSerializedSize(typ *DynamicType, currentAlignment int) int {
	d := newData(typ)
	return CDRSerializedSize(typ, d, currentAlignment)
}

// MaxCDRSerializedSize returns the worst-case size when every bounded
// collection is full, every bounded string is at its maximum bound, and
// every union takes its largest branch. Unbounded
// (capacity-0) SEQUENCE/MAP collections contribute zero elements to this
// bound, and an unbounded (bound-0) string is counted as one character:
// an unbounded collection or string has no finite worst case, so the
// prediction only covers the part of the graph that is itself bounded.
func MaxCDRSerializedSize(typ *DynamicType, currentAlignment int) int {
	w := cdr.NewWriter(true)
	w.Skip(currentAlignment)
	writeMaxValue(typ, w)
	return w.Len() - currentAlignment
}

func writeMaxValue(typ *DynamicType, w *cdr.Writer) {
	switch typ.Kind() {
	case KindAlias:
		writeMaxValue(typ.BaseType(), w)
	case KindBoolean:
		w.WriteBool(true)
	case KindByte, KindChar8:
		w.WriteByte(0xFF)
	case KindChar16:
		w.WriteChar16(0xFFFF)
	case KindInt16, KindUint16:
		w.WriteUint16(0xFFFF)
	case KindInt32, KindUint32, KindEnum:
		w.WriteUint32(0xFFFFFFFF)
	case KindInt64, KindUint64:
		w.WriteUint64(0xFFFFFFFFFFFFFFFF)
	case KindFloat32:
		w.WriteFloat32(math.MaxFloat32)
	case KindFloat64:
		w.WriteFloat64(math.MaxFloat64)
	case KindFloat128:
		w.WriteFloat128(math.Float64bits(math.MaxFloat64))
	case KindString8:
		w.WriteString(maxBoundString(typ.Bound()))
	case KindString16:
		w.WriteWString(maxBoundString(typ.Bound()))
	case KindBitmask:
		width, rc := storageWidthForBitBound(typ.Bound())
		if !rc.OK() {
			width = 8
		}
		writeBitmaskWidth(w, width, math.MaxUint64)

	case KindStructure, KindBitset:
		if base := typ.BaseType(); base != nil {
			writeMaxValue(base, w)
		}
		for _, m := range typ.GetAllMembers() {
			if m.Annotations.IsNonSerialized() {
				continue
			}
			writeMaxValue(m.Type, w)
		}

	case KindUnion:
		writeMaxUnion(typ, w)

	case KindSequence:
		bound := typ.Bound()
		w.WriteUint32(bound)
		for i := uint32(0); i < bound; i++ {
			writeMaxValue(typ.ElementType(), w)
		}

	case KindMap:
		bound := typ.Bound()
		w.WriteUint32(bound)
		for i := uint32(0); i < bound; i++ {
			writeMaxValue(typ.KeyElementType(), w)
			writeMaxValue(typ.ElementType(), w)
		}

	case KindArray:
		total := typ.TotalBounds()
		for i := uint32(0); i < total; i++ {
			writeMaxValue(typ.ElementType(), w)
		}
	}
}

// writeMaxUnion picks the branch whose trial encoding is longest, each
// trial started from the same alignment baseline as w so the comparison
// (and the final splice) reflects real alignment padding.
func writeMaxUnion(typ *DynamicType, w *cdr.Writer) {
	members := typ.GetAllMembers()
	if len(members) == 0 {
		writeDiscriminatorLabel(typ.DiscriminatorType(), -1, w)
		return
	}
	base := w.Len()
	var bestBytes []byte
	for _, m := range members {
		trial := cdr.NewWriter(true)
		trial.Skip(base)
		writeDiscriminatorLabel(typ.DiscriminatorType(), m.FirstLabel(), trial)
		writeMaxValue(m.Type, trial)
		if payload := trial.Bytes()[base:]; bestBytes == nil || len(payload) > len(bestBytes) {
			bestBytes = payload
		}
	}
	w.AppendRaw(bestBytes)
}

func maxBoundString(bound uint32) string {
	if bound == 0 {
		bound = 1
	}
	return strings.Repeat("x", int(bound))
}

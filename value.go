// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import (
	"math"
	"strconv"
)

// valueCell is the tagged primitive slot a leaf DynamicData carries, a
// single polymorphic representation used for every primitive kind rather
// than a checked struct-of-slots or a packed map. bits holds the
// raw bit pattern for every fixed-width numeric kind (floats via
// math.Float32bits/Float64bits); str holds STRING8/STRING16 text and, as a
// Go-specific simplification, FLOAT128's decimal text (no native 128-bit
// float exists in Go; see DESIGN.md).
type valueCell struct {
	kind TypeKind
	bits uint64
	str  string
}

func zeroValueCell(kind TypeKind) valueCell {
	switch kind {
	case KindString8, KindString16:
		return valueCell{kind: kind, str: ""}
	case KindFloat128:
		return valueCell{kind: kind, str: "0"}
	default:
		return valueCell{kind: kind}
	}
}

func (c valueCell) asInt64() (int64, bool) {
	switch c.kind {
	case KindBoolean, KindByte, KindChar8, KindChar16,
		KindInt16, KindUint16, KindInt32, KindUint32,
		KindInt64, KindUint64, KindEnum, KindBitmask:
		return int64(c.bits), true
	}
	return 0, false
}

func (c valueCell) equal(o valueCell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindString8, KindString16, KindFloat128:
		return c.str == o.str
	case KindFloat32:
		a, b := math.Float32frombits(uint32(c.bits)), math.Float32frombits(uint32(o.bits))
		return a == b || (a != a && b != b) // NaN equals NaN
	case KindFloat64:
		a, b := math.Float64frombits(c.bits), math.Float64frombits(o.bits)
		return a == b || (a != a && b != b)
	default:
		return c.bits == o.bits
	}
}

func (c valueCell) literal() string {
	switch c.kind {
	case KindString8, KindString16, KindFloat128:
		return c.str
	case KindBoolean:
		return strconv.FormatBool(c.bits != 0)
	case KindFloat32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(c.bits))), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(math.Float64frombits(c.bits), 'g', -1, 64)
	default:
		v, _ := c.asInt64()
		return strconv.FormatInt(v, 10)
	}
}

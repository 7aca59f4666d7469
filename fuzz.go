// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "github.com/nimbusdds/xtypes/cdr"

// Fuzz drives the go-fuzz harness convention (old-style: a bare func Fuzz
// returning an int, no extra imports needed by the corpus). It treats the
// first byte of data as a small menu of prebuilt types to exercise and the
// rest as the CDR payload to deserialize, then checks that
// serialize(deserialize(data)) reproduces an equal value.
func Fuzz(data []byte) int {
	if len(data) < 1 {
		return -1
	}
	typ := fuzzType(data[0] % 4)
	payload := data[1:]

	factory := NewDynamicDataFactory(ContextOptions{})
	d, rc := factory.CreateData(typ)
	if !rc.OK() {
		return 0
	}

	r := cdr.NewReader(payload, true)
	if !Deserialize(typ, d, r) {
		return 0
	}

	w := cdr.NewWriter(true)
	if !Serialize(typ, d, w) {
		return 0
	}

	d2, rc := factory.CreateData(typ)
	if !rc.OK() {
		return 0
	}
	r2 := cdr.NewReader(w.Bytes(), true)
	if !Deserialize(typ, d2, r2) {
		return 0
	}
	if !Equals(d, d2) {
		panic("xtypes: serialize/deserialize round trip produced an unequal value")
	}
	return 1
}

func fuzzType(selector byte) *DynamicType {
	arena := newTypeArena()
	switch selector {
	case 0:
		t, _ := newBuilder(arena, KindInt32, "").Build()
		return t
	case 1:
		b := NewStringBuilder(arena, false, 64)
		t, _ := b.Build()
		return t
	case 2:
		elem, _ := newBuilder(arena, KindInt32, "").Build()
		b := NewSequenceBuilder(arena, elem, 16)
		t, _ := b.Build()
		return t
	default:
		elem, _ := newBuilder(arena, KindFloat64, "").Build()
		b := NewStructBuilder(arena, "FuzzSample", nil)
		m := newMember(MemberIDInvalid, "id", 0)
		m.Type = elem
		_ = b.AddMember(m)
		t, _ := b.Build()
		return t
	}
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import (
	"reflect"
	"sync"
)

// DynamicDataFactory is the value lifetime manager: it
// creates DynamicData bound to a given DynamicType, and deletes it,
// optionally tracking outstanding values for leak detection. Realized as a
// Context (see context.go), matching BuilderFactory's shape.
type DynamicDataFactory struct {
	*registry
}

// NewDynamicDataFactory returns a fresh Context.
func NewDynamicDataFactory(opts ContextOptions) *DynamicDataFactory {
	return &DynamicDataFactory{registry: newRegistry(opts)}
}

var defaultDynamicDataFactory *DynamicDataFactory
var defaultDynamicDataFactoryOnce sync.Once

// DefaultDynamicDataFactory returns a lazily-initialized ambient singleton.
func DefaultDynamicDataFactory() *DynamicDataFactory {
	defaultDynamicDataFactoryOnce.Do(func() {
		defaultDynamicDataFactory = NewDynamicDataFactory(ContextOptions{})
	})
	return defaultDynamicDataFactory
}

// CreateData allocates and returns a DynamicData bound to typ, per the
// per-kind creation rules below (see newData).
func (f *DynamicDataFactory) CreateData(typ *DynamicType) (*DynamicData, ReturnCode) {
	if typ == nil {
		return nil, RetcodeBadParameter
	}
	d := newData(typ)
	d.factory = f
	f.track(dataIdentity(d), "data:"+typ.Kind().String()+":"+typ.Name())
	return d, RetcodeOK
}

// DeleteData releases d. Idempotent per value: a second delete of the same
// value returns ALREADY_DELETED when leak tracking is enabled. Deleting a
// value with an outstanding loan returns PRECONDITION_NOT_MET: a parent
// with loaned children refuses destruction until they are returned.
func (f *DynamicDataFactory) DeleteData(d *DynamicData) ReturnCode {
	if d == nil {
		return RetcodeBadParameter
	}
	if len(d.loaned) > 0 {
		return RetcodePreconditionNotMet
	}
	id := dataIdentity(d)
	if f.registry.tracked != nil && !f.isTracked(id) {
		return RetcodeAlreadyDeleted
	}
	f.untrack(id)
	return RetcodeOK
}

func dataIdentity(d *DynamicData) uintptr {
	return reflect.ValueOf(d).Pointer()
}

// newData builds a zero-valued DynamicData for typ, recursively
// materializing the shape each kind's creation rules require:
//   - ALIAS: bound to the aliased underlying type's shape, but the
//     returned value's Type() still reports the alias (the alias name is
//     preserved only through the type reference).
//   - ENUM: slot initialized to the first literal's numeric value.
//   - ARRAY: additionally allocates a prototype element as
//     defaultArrayValue.
//   - STRUCTURE/BITSET with a base type: members of the base are created
//     as well as the derived type's own members.
//   - UNION: no branch materialized until a discriminator is set.
//   - Everything else: a bare primitive slot or an empty child map.
func newData(typ *DynamicType) *DynamicData {
	d := &DynamicData{typ: typ, unionID: MemberIDInvalid}
	kind := typ.Kind()

	switch {
	case kind == KindAlias:
		base := newData(typ.BaseType())
		d.value = base.value
		d.children = base.children
		d.childOrder = base.childOrder
		d.defaultArrayValue = base.defaultArrayValue

	case kind == KindEnum:
		d.value = valueCell{kind: KindEnum}
		if members := typ.GetAllMembers(); len(members) > 0 {
			d.value.bits = uint64(uint32(members[0].FirstLabel()))
		}

	case kind == KindBitmask:
		d.value = valueCell{kind: KindBitmask}

	case kind == KindArray:
		d.children = make(map[MemberId]*DynamicData)
		d.defaultArrayValue = newData(typ.ElementType())

	case kind == KindSequence, kind == KindMap:
		d.children = make(map[MemberId]*DynamicData)

	case kind == KindUnion:
		d.children = make(map[MemberId]*DynamicData)

	case kind.isAggregate(): // STRUCTURE, BITSET
		d.children = make(map[MemberId]*DynamicData)
		if base := typ.BaseType(); base != nil {
			baseData := newData(base)
			for _, id := range baseData.childOrder {
				d.children[id] = baseData.children[id]
				d.childOrder = append(d.childOrder, id)
			}
		}
		for _, m := range typ.GetAllMembers() {
			d.children[m.ID] = newData(m.Type)
			d.childOrder = append(d.childOrder, m.ID)
		}

	default: // primitives, CHAR8/CHAR16, STRING8/STRING16
		d.value = zeroValueCell(kind)
	}
	return d
}

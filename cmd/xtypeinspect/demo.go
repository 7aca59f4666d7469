// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import "github.com/nimbusdds/xtypes"

// buildDemoType assembles the small STRUCTURE the dump and probe
// subcommands always work against (neither reads a TOML description): an
// @key int32 id, a bounded name string, and a boolean flag.
func buildDemoType() *xtypes.DynamicType {
	factory := xtypes.DefaultBuilderFactory()
	arena := factory.Arena()

	idType := factory.CreatePrimitiveType(xtypes.KindInt32)
	nameType, _ := xtypes.NewStringBuilder(arena, false, 64).Build()
	activeType := factory.CreatePrimitiveType(xtypes.KindBoolean)

	b := xtypes.NewStructBuilder(arena, "DemoSample", nil)

	id := newField(idType, "id")
	id.Annotations.SetKey(true)
	_ = b.AddMember(id)

	_ = b.AddMember(newField(nameType, "name"))
	_ = b.AddMember(newField(activeType, "active"))

	typ, _ := b.Build()
	return typ
}

// newField is a small helper wrapping xtypes' own member constructor; it
// lives here rather than in the xtypes package because only CLI demo/TOML
// assembly code needs a name-only, ID-auto-assigned member.
func newField(t *xtypes.DynamicType, name string) *xtypes.DynamicTypeMember {
	m := xtypes.NewMember(name)
	m.Type = t
	return m
}

// sampleDemoData populates a DemoSample value with representative content.
func sampleDemoData(typ *xtypes.DynamicType) *xtypes.DynamicData {
	factory := xtypes.DefaultDynamicDataFactory()
	d, _ := factory.CreateData(typ)

	idID, _ := d.GetMemberIdByName("id")
	nameID, _ := d.GetMemberIdByName("name")
	activeID, _ := d.GetMemberIdByName("active")

	_ = d.SetInt32Value(idID, 7)
	_ = d.SetStringValue(nameID, "probe-sample")
	_ = d.SetBooleanValue(activeID, true)
	return d
}

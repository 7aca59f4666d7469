// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/nimbusdds/xtypes"
)

// fieldSpec is one row of a TOML type description read by "build".
type fieldSpec struct {
	Name  string `toml:"name"`
	Kind  string `toml:"kind"`
	Bound uint32 `toml:"bound"`
	Key   bool   `toml:"key"`
}

// typeSpec is the TOML document shape: a STRUCTURE name plus its fields,
// e.g.:
//
//	name = "Telemetry"
//	[[fields]]
//	name = "id"
//	kind = "int32"
//	key = true
type typeSpec struct {
	Name   string      `toml:"name"`
	Fields []fieldSpec `toml:"fields"`
}

var kindByName = map[string]xtypes.TypeKind{
	"boolean": xtypes.KindBoolean,
	"byte":    xtypes.KindByte,
	"int16":   xtypes.KindInt16,
	"uint16":  xtypes.KindUint16,
	"int32":   xtypes.KindInt32,
	"uint32":  xtypes.KindUint32,
	"int64":   xtypes.KindInt64,
	"uint64":  xtypes.KindUint64,
	"float32": xtypes.KindFloat32,
	"float64": xtypes.KindFloat64,
	"char8":   xtypes.KindChar8,
	"char16":  xtypes.KindChar16,
}

func newBuildCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a DynamicType from a TOML field description and print its member table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(path)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "path to a TOML type description")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runBuild(path string) error {
	var spec typeSpec
	if _, err := toml.DecodeFile(path, &spec); err != nil {
		return fmt.Errorf("xtypeinspect: decode %s: %w", path, err)
	}

	factory := xtypes.DefaultBuilderFactory()
	b := xtypes.NewStructBuilder(factory.Arena(), spec.Name, nil)
	for _, field := range spec.Fields {
		fieldType, err := resolveFieldType(factory, field)
		if err != nil {
			return err
		}
		m := xtypes.NewMember(field.Name)
		m.Type = fieldType
		if field.Key {
			m.Annotations.SetKey(true)
		}
		if rc := b.AddMember(m); !rc.OK() {
			return fmt.Errorf("xtypeinspect: add member %s: %v", field.Name, rc)
		}
	}
	typ, rc := b.Build()
	if !rc.OK() {
		return fmt.Errorf("xtypeinspect: build %s: %v", spec.Name, rc)
	}

	tw := tabwriter.NewWriter(os.Stdout, 1, 1, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "MEMBER\tKIND\tKEY\n")
	for _, m := range typ.GetAllMembers() {
		fmt.Fprintf(tw, "%s\t%s\t%v\n", m.Name, m.Type.Kind(), m.Annotations.IsKey())
	}
	tw.Flush()
	fmt.Printf("\nkey defined: %v\n", typ.IsKeyDefined())
	return nil
}

func resolveFieldType(factory *xtypes.BuilderFactory, field fieldSpec) (*xtypes.DynamicType, error) {
	if field.Kind == "string8" {
		t, rc := xtypes.NewStringBuilder(factory.Arena(), false, field.Bound).Build()
		if !rc.OK() {
			return nil, fmt.Errorf("xtypeinspect: build string8 field %s: %v", field.Name, rc)
		}
		return t, nil
	}
	if field.Kind == "string16" {
		t, rc := xtypes.NewStringBuilder(factory.Arena(), true, field.Bound).Build()
		if !rc.OK() {
			return nil, fmt.Errorf("xtypeinspect: build string16 field %s: %v", field.Name, rc)
		}
		return t, nil
	}
	kind, ok := kindByName[field.Kind]
	if !ok {
		return nil, fmt.Errorf("xtypeinspect: unknown field kind %q", field.Kind)
	}
	return factory.CreatePrimitiveType(kind), nil
}

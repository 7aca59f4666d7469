// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nimbusdds/xtypes"
	"github.com/nimbusdds/xtypes/cdr"
)

// runDump builds the demo type, serializes a sample value, deserializes it
// back, and prints a tabular member report.
func runDump(args []string) {
	dumpCmd := flag.NewFlagSet("dump", flag.ExitOnError)
	littleEndian := dumpCmd.Bool("little-endian", true, "encode using little-endian byte order")
	dumpCmd.Parse(args)

	typ := buildDemoType()
	d := sampleDemoData(typ)

	w := cdr.NewWriter(*littleEndian)
	if !xtypes.Serialize(typ, d, w) {
		fmt.Fprintln(os.Stderr, "xtypeinspect: serialize failed")
		os.Exit(1)
	}

	out, _ := xtypes.DefaultDynamicDataFactory().CreateData(typ)
	r := cdr.NewReader(w.Bytes(), *littleEndian)
	if !xtypes.Deserialize(typ, out, r) {
		fmt.Fprintln(os.Stderr, "xtypeinspect: deserialize failed")
		os.Exit(1)
	}

	printReport(typ, out, w.Len())
}

func printReport(typ *xtypes.DynamicType, d *xtypes.DynamicData, wireSize int) {
	tw := tabwriter.NewWriter(os.Stdout, 1, 1, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "MEMBER\tKIND\tVALUE\n")
	for _, m := range typ.GetAllMembers() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, m.Type.Kind(), describe(d, m))
	}
	tw.Flush()
	fmt.Printf("\nwire size: %d bytes\n", wireSize)
}

func describe(d *xtypes.DynamicData, m *xtypes.DynamicTypeMember) string {
	id, _ := d.GetMemberIdByName(m.Name)
	switch m.Type.Kind() {
	case xtypes.KindInt32:
		v, _ := d.GetInt32Value(id)
		return fmt.Sprintf("%d", v)
	case xtypes.KindBoolean:
		v, _ := d.GetBooleanValue(id)
		return fmt.Sprintf("%v", v)
	case xtypes.KindString8, xtypes.KindString16:
		v, _ := d.GetStringValue(id)
		return v
	default:
		return "?"
	}
}

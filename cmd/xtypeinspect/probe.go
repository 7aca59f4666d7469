// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbusdds/xtypes"
	"github.com/nimbusdds/xtypes/cdr"
	"github.com/nimbusdds/xtypes/sample"
)

func newProbeCmd() *cobra.Command {
	var path string
	var littleEndian bool
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Memory-map a raw CDR capture and deserialize it against the demo type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(path, littleEndian)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "path to a raw CDR capture")
	cmd.Flags().BoolVar(&littleEndian, "little-endian", true, "decode using little-endian byte order")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runProbe(path string, littleEndian bool) error {
	blob, err := sample.Open(path)
	if err != nil {
		return fmt.Errorf("xtypeinspect: open %s: %w", path, err)
	}
	defer blob.Close()

	typ := buildDemoType()
	d, rc := xtypes.DefaultDynamicDataFactory().CreateData(typ)
	if !rc.OK() {
		return fmt.Errorf("xtypeinspect: create data: %v", rc)
	}

	r := cdr.NewReader(blob.Bytes(), littleEndian)
	if !xtypes.Deserialize(typ, d, r) {
		return fmt.Errorf("xtypeinspect: deserialize %s: malformed CDR", path)
	}

	printReport(typ, d, blob.Len())
	return nil
}

// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// main dispatches on the first argument: "dump" is handled with a bare
// flag.FlagSet, everything else falls through to a cobra root command
// ("build", "probe").
func main() {
	if len(os.Args) < 2 {
		showHelp()
	}

	switch os.Args[1] {
	case "dump":
		runDump(os.Args[2:])
	case "help", "-h", "--help":
		showHelp()
	default:
		if err := newRootCmd().Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "xtypeinspect",
		Short: "Build, dump, and probe DDS dynamic type graphs and CDR samples",
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newProbeCmd())
	return root
}

func showHelp() {
	fmt.Print(
		`
 _  _                       ___                           _
| || |_ _ _ __  ___ ______ |_ _|_ _  ____ __  ___ __ _| |_
> _|   | '_ \/ -_)_____| | | ' \(_-< '_ \/ -_) _|  _|  _|
|_||_|_|_.__/\___|     |___|_||_/__/ .__/\___\__|\__|\__|
                                   |_|

	A DDS dynamic-type inspection tool.
`)
	fmt.Println("\nAvailable sub-commands: 'dump', 'build', 'probe'")
	os.Exit(1)
}

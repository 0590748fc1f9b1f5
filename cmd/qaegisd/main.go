// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command qaegisd runs the quantum-resistance monitoring and adaptive
// cryptography control loop as a standalone process, wiring the QVM
// oracle, QRM, APQC, and TEE sequencer together with in-memory
// reference collaborators.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "qaegisd",
		Short: "Quantum resistance monitoring and adaptive cryptography sequencer",
	}
	root.PersistentFlags().StringVar(&configPath, ConfigPathKey, "", "path to a qaegisd config file (defaults are used if omitted)")

	root.AddCommand(newRunCommand(&configPath))
	return root
}

// ConfigPathKey names the persistent --config flag, exported so
// subcommands share one flag definition.
const ConfigPathKey = "config"

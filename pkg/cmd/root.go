// Copyright 2026 The Amaranth-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the cobra-based amaranth CLI: a thin shell around
// the pkg/ir pipeline stages, with one rootCmd, one file per subcommand,
// and library packages that never call os.Exit themselves.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in when building via `go build -ldflags "-X ...Version=..."`,
// but not when installed with a plain `go install`.
var Version string

var rootCmd = &cobra.Command{
	Use:   "amaranth",
	Short: "A compiler pipeline for the Amaranth hardware description core.",
	Long: `amaranth elaborates, rewrites, and flattens Amaranth-Go module trees into
netlists, and compiles netlists into a simulator's scheduled evaluation
graph. It operates on a small built-in registry of example circuits
(run "amaranth domains --list" to see them) rather than reading a source
file, since modules are built directly in Go.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("amaranth ")

			switch {
			case Version != "":
				fmt.Print(Version)
			default:
				if info, ok := debug.ReadBuildInfo(); ok {
					fmt.Print(info.Main.Version)
				} else {
					fmt.Print("(unknown version)")
				}
			}

			fmt.Println()

			return
		}

		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from cmd/amaranth/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("no-colour", false, "disable ANSI colour in report tables")
	rootCmd.Flags().Bool("version", false, "report the version of this executable")

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
}

// configureLogging applies the --verbose and --no-colour persistent flags;
// called at the top of every subcommand's Run, once flags are parsed.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	if GetFlag(cmd, "no-colour") {
		_ = os.Setenv("NO_COLOR", "1")
	}
}

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
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amaranth-hdl/amaranth-go/pkg/cmdutil"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
)

var domainsCmd = &cobra.Command{
	Use:   "domains [example]",
	Short: "List the clock domains resolved for an example module, or the known examples with --list.",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if GetFlag(cmd, "list") {
			printExampleList()
			return
		}

		if len(args) != 1 {
			die(fmt.Errorf("expected exactly one example name (see --list)"))
		}

		ex, err := findExample(args[0])
		if err != nil {
			die(err)
		}

		nl, err := netlistExample(ex)
		if err != nil {
			die(err)
		}

		printDomainsReport(nl.Domains)
	},
}

func init() {
	domainsCmd.Flags().Bool("list", false, "list the built-in examples instead of a domain report")
	rootCmd.AddCommand(domainsCmd)
}

func printExampleList() {
	table := cmdutil.NewTable("NAME", "DESCRIPTION")
	for _, ex := range examples {
		table.AddRow(cmdutil.Plain(ex.name), cmdutil.Plain(ex.description))
	}

	table.Print(cmdutil.ColourEnabled(), cmdutil.TerminalWidth())
}

func printDomainsReport(domains map[string]domain.ClockDomain) {
	table := cmdutil.NewTable("DOMAIN", "EDGE", "HAS RESET", "ASYNC RESET")
	for name, cd := range domains {
		asyncReset := "no"
		if cd.AsyncReset {
			asyncReset = "yes"
		}

		hasReset := "no"
		if cd.HasReset() {
			hasReset = "yes"
		}

		table.AddRow(cmdutil.Plain(name), cmdutil.Plain(cd.ClkEdge.String()), cmdutil.Plain(hasReset), cmdutil.Plain(asyncReset))
	}

	table.Print(cmdutil.ColourEnabled(), cmdutil.TerminalWidth())
}

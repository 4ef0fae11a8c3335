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
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/simcompile"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [example]",
	Short: "Compile an example's netlist into a scheduled simulation graph.",
	Long: `simulate runs the full pipeline -- elaborate, lower, build netlist, then
compile the simulation graph (spec.md §4.5) -- and reports the resulting
combinational thunk order, trigger map, and synchronous register banks.
It does not execute the graph: stepping a live simulation is run-time
behavior, out of scope for this compiler pipeline.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		ex, err := findExample(args[0])
		if err != nil {
			die(err)
		}

		nl, err := netlistExample(ex)
		if err != nil {
			die(err)
		}

		graph, err := simcompile.CompileSimulation(nl)
		if err != nil {
			die(err)
		}

		printSimGraphReport(graph)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func printSimGraphReport(graph *simcompile.SimGraph) {
	fmt.Printf("combinational thunks (%d), in dependency order:\n", len(graph.CombThunks))

	table := cmdutil.NewTable("#", "SIGNAL", "EXPR", "FAN-IN")
	for i, th := range graph.CombThunks {
		fanIn := ""

		for j, dep := range th.FanIn {
			if j > 0 {
				fanIn += ", "
			}

			fanIn += dep.Name()
		}

		table.AddRow(
			cmdutil.Plain(fmt.Sprintf("%d", i)),
			cmdutil.Plain(th.Signal.Name()),
			cmdutil.Plain(describeExpr(th.Expr)),
			cmdutil.Plain(fanIn),
		)
	}

	table.Print(cmdutil.ColourEnabled(), cmdutil.TerminalWidth())

	fmt.Println()
	fmt.Printf("synchronous banks (%d):\n", len(graph.SyncBanks))

	bankTable := cmdutil.NewTable("DOMAIN", "EDGE", "REGISTERS")
	for _, bank := range graph.SyncBanks {
		names := ""

		for j, reg := range bank.Registers {
			if j > 0 {
				names += ", "
			}

			names += reg.Signal.Name()
		}

		bankTable.AddRow(cmdutil.Plain(bank.Domain), cmdutil.Plain(bank.ClockDomain.ClkEdge.String()), cmdutil.Plain(names))
	}

	bankTable.Print(cmdutil.ColourEnabled(), cmdutil.TerminalWidth())
}

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
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/netlist"
)

var netlistCmd = &cobra.Command{
	Use:   "netlist [example]",
	Short: "Fold an example module into a netlist, resolving drivers and priority muxes.",
	Args:  cobra.ExactArgs(1),
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

		if GetFlag(cmd, "dump-json") {
			dumpJSON(summarizeNetlist(nl))
			return
		}

		printNetlistReport(nl)
	},
}

func init() {
	netlistCmd.Flags().Bool("dump-json", false, "dump the netlist as JSON instead of a report")
	rootCmd.AddCommand(netlistCmd)
}

func printNetlistReport(nl *netlist.Netlist) {
	table := cmdutil.NewTable("SIGNAL", "DOMAIN", "REGISTER", "DRIVER")

	for _, sn := range nl.Signals {
		reg := "no"
		if sn.IsRegister {
			reg = "yes"
		}

		table.AddRow(
			cmdutil.Plain(sn.Signal.Name()),
			cmdutil.Plain(sn.Domain),
			cmdutil.Plain(reg),
			cmdutil.Plain(describeExpr(sn.Next)),
		)
	}

	table.SetMaxColumnWidth(3, 60)
	table.Print(cmdutil.ColourEnabled(), cmdutil.TerminalWidth())

	if len(nl.Instances) > 0 {
		fmt.Println()

		instTable := cmdutil.NewTable("PATH", "TYPE", "NAME")
		for _, inst := range nl.Instances {
			instTable.AddRow(cmdutil.Plain(inst.Path), cmdutil.Plain(inst.Type), cmdutil.Plain(inst.Name))
		}

		instTable.Print(cmdutil.ColourEnabled(), cmdutil.TerminalWidth())
	}
}

type netlistSignalSummary struct {
	Signal     string `json:"signal"`
	Domain     string `json:"domain"`
	IsRegister bool   `json:"is_register"`
	Driver     string `json:"driver"`
}

type netlistInstanceSummary struct {
	Path string `json:"path"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type netlistSummary struct {
	Signals   []netlistSignalSummary   `json:"signals"`
	Instances []netlistInstanceSummary `json:"instances"`
}

func summarizeNetlist(nl *netlist.Netlist) netlistSummary {
	s := netlistSummary{}

	for _, sn := range nl.Signals {
		s.Signals = append(s.Signals, netlistSignalSummary{
			Signal:     sn.Signal.Name(),
			Domain:     sn.Domain,
			IsRegister: sn.IsRegister,
			Driver:     describeExpr(sn.Next),
		})
	}

	for _, inst := range nl.Instances {
		s.Instances = append(s.Instances, netlistInstanceSummary{Path: inst.Path, Type: inst.Type, Name: inst.Name})
	}

	return s
}

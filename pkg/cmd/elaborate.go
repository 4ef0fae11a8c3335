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

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"
)

var elaborateCmd = &cobra.Command{
	Use:   "elaborate [example]",
	Short: "Elaborate an example module into its fragment tree.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		ex, err := findExample(args[0])
		if err != nil {
			die(err)
		}

		frag, err := elaborateExample(ex)
		if err != nil {
			die(err)
		}

		if GetFlag(cmd, "dump-json") {
			dumpJSON(summarizeFragment(frag))
			return
		}

		printFragmentTree(frag, 0)
	},
}

func init() {
	elaborateCmd.Flags().Bool("dump-json", false, "dump the fragment tree as JSON instead of a report")
	rootCmd.AddCommand(elaborateCmd)
}

func printFragmentTree(f *elaborate.Fragment, depth uint) {
	indent := ""
	for i := uint(0); i < depth; i++ {
		indent += "  "
	}

	switch {
	case f.IsInstanceLeaf():
		fmt.Printf("%s%s [instance %s]\n", indent, f.Path, f.Instance.Type)
	case f.IsMemoryLeaf():
		fmt.Printf("%s%s [memory %s]\n", indent, f.Path, f.Memory.Name)
	default:
		fmt.Printf("%s%s\n", indent, f.Path)
	}

	for domainName, stmts := range f.Drivers {
		fmt.Printf("%s  domain %s: %d statement(s)\n", indent, domainName, len(stmts))
	}

	for _, sub := range f.Subfragments {
		printFragmentTree(sub.Child, depth+1)
	}
}

// fragmentSummary captures the tree printFragmentTree prints in a plain, JSON-marshalable shape
// -- Fragment itself carries value.Value/stmt.Statement nodes that aren't
// meant to round-trip through JSON, so --dump-json reports structure only:
// path, domain driver counts, and leaf kind.
type fragmentSummary struct {
	Path         string             `json:"path"`
	Leaf         string             `json:"leaf,omitempty"`
	Domains      map[string]int     `json:"domains"`
	Subfragments []fragmentSummaryS `json:"subfragments,omitempty"`
}

type fragmentSummaryS struct {
	Name  string          `json:"name"`
	Child fragmentSummary `json:"child"`
}

func summarizeFragment(f *elaborate.Fragment) fragmentSummary {
	s := fragmentSummary{Path: f.Path, Domains: map[string]int{}}

	switch {
	case f.IsInstanceLeaf():
		s.Leaf = "instance:" + f.Instance.Type
	case f.IsMemoryLeaf():
		s.Leaf = "memory:" + f.Memory.Name
	}

	for domainName, stmts := range f.Drivers {
		s.Domains[domainName] = len(stmts)
	}

	for _, sub := range f.Subfragments {
		s.Subfragments = append(s.Subfragments, fragmentSummaryS{Name: sub.Name, Child: summarizeFragment(sub.Child)})
	}

	return s
}

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
package rewrite

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// EnableInserter wraps every driver in controls' named domains so that it
// only applies when cond_value is asserted, per spec.md §4.3; otherwise
// each target holds its current value (re-assigned to itself, which the
// netlist builder's priority mux treats identically to "no assignment
// fired this cycle"). Stacking a second EnableInserter over an
// already-wrapped domain composes into an AND of conditions: the inner
// wrap only applies when its own condition holds, and the outer wrap only
// reaches the inner one when its own condition also holds.
func EnableInserter(controls map[string]value.Value) Rewriter {
	return func(f *elaborate.Fragment) error {
		return insertEnables(f, controls)
	}
}

func insertEnables(f *elaborate.Fragment, controls map[string]value.Value) error {
	for domainName, cond := range controls {
		body, ok := f.Drivers[domainName]
		if !ok || len(body) == 0 {
			continue
		}

		targets, err := collectDirectAssignTargets(body)
		if err != nil {
			return err
		}

		holdBody := make([]stmt.Statement, 0, len(targets))

		for _, sig := range targets {
			assign, err := stmt.Assign(sig, sig)
			if err != nil {
				return err
			}

			holdBody = append(holdBody, assign)
		}

		condBool, err := value.Bool(cond)
		if err != nil {
			return err
		}

		f.Drivers[domainName] = []stmt.Statement{
			stmt.Switch(condBool, []stmt.Case{
				{Patterns: []value.Pattern{value.BitPattern("1")}, Body: body},
				{Patterns: nil, Body: holdBody},
			}),
		}
	}

	for _, sub := range f.Subfragments {
		if err := insertEnables(sub.Child, controls); err != nil {
			return err
		}
	}

	return nil
}

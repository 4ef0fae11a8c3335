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

// ResetInserter wraps every driver in controls' named domains with an
// outer priority branch, per spec.md §4.3: "if cond_value then re-assign
// the init value to each target bit." Wrapping an already-wrapped domain
// (from a previous ResetInserter) composes correctly into an OR of
// conditions, since both branches of the new wrapper reset the very same
// signals regardless of which one fires -- no separate bookkeeping is
// needed to track "stacked" controls.
func ResetInserter(controls map[string]value.Value) Rewriter {
	return func(f *elaborate.Fragment) error {
		return insertResets(f, controls)
	}
}

func insertResets(f *elaborate.Fragment, controls map[string]value.Value) error {
	for domainName, cond := range controls {
		body, ok := f.Drivers[domainName]
		if !ok || len(body) == 0 {
			continue
		}

		targets, err := collectDirectAssignTargets(body)
		if err != nil {
			return err
		}

		resetBody := make([]stmt.Statement, 0, len(targets))

		for _, sig := range targets {
			assign, err := stmt.Assign(sig, sig.Arena().Const(sig.Init(), sig.Shape()))
			if err != nil {
				return err
			}

			resetBody = append(resetBody, assign)
		}

		condBool, err := value.Bool(cond)
		if err != nil {
			return err
		}

		f.Drivers[domainName] = []stmt.Statement{
			stmt.Switch(condBool, []stmt.Case{
				{Patterns: []value.Pattern{value.BitPattern("1")}, Body: resetBody},
				{Patterns: nil, Body: body},
			}),
		}
	}

	for _, sub := range f.Subfragments {
		if err := insertResets(sub.Child, controls); err != nil {
			return err
		}
	}

	return nil
}

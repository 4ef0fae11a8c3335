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
	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// visitStatementValues calls visit on every Value directly referenced by s
// or any statement nested in a Switch case's body, per spec.md §3.3's
// statement shapes.
func visitStatementValues(s stmt.Statement, visit func(value.Value)) {
	switch s.Kind() {
	case stmt.KindAssign:
		visit(s.Lhs())
		visit(s.Rhs())
	case stmt.KindSwitch:
		visit(s.Test())

		for _, c := range s.Cases() {
			for _, sub := range c.Body {
				visitStatementValues(sub, visit)
			}
		}
	case stmt.KindPrint:
		for _, a := range s.Args() {
			visit(a)
		}
	case stmt.KindAssert, stmt.KindAssume, stmt.KindCover:
		visit(s.Cond())
	}
}

// visitStatementsValues runs visitStatementValues over every statement in
// stmts.
func visitStatementsValues(stmts []stmt.Statement, visit func(value.Value)) {
	for _, s := range stmts {
		visitStatementValues(s, visit)
	}
}

// collectDirectAssignTargets walks stmts (recursing into Switch bodies)
// collecting the distinct Signal values directly assigned by an Assign
// statement, in first-occurrence order. ResetInserter and EnableInserter
// only support whole-Signal assignment targets -- a Slice/Part/Concat/
// ArrayProxy lhs under a domain carrying a reset or enable control is
// rejected with a SyntaxError rather than silently resetting/enabling only
// part of its footprint, a deliberate simplification recorded in
// DESIGN.md's Open Question decisions.
func collectDirectAssignTargets(stmts []stmt.Statement) ([]value.Value, error) {
	var out []value.Value
	seen := make(map[value.Value]bool)

	var walk func([]stmt.Statement) error
	walk = func(list []stmt.Statement) error {
		for _, s := range list {
			switch s.Kind() {
			case stmt.KindAssign:
				lhs := s.Lhs()
				if !lhs.IsSignal() {
					return &diag.SyntaxError{
						Entity: "ResetInserter/EnableInserter",
						Reason: "assignment target is not a whole Signal",
					}
				}

				if !seen[lhs] {
					seen[lhs] = true
					out = append(out, lhs)
				}
			case stmt.KindSwitch:
				for _, c := range s.Cases() {
					if err := walk(c.Body); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}

	if err := walk(stmts); err != nil {
		return nil, err
	}

	return out, nil
}

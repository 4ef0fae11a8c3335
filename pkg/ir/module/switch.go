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
package module

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// switchBuild accumulates an explicit Switch(test)/Case/Default scope,
// per spec.md §4.2: patterns are stored literally (no priority-pattern
// synthesis, unlike the If/Elif/Else sugar in ifchain.go); Default
// synthesizes an always-match (empty-patterns) case, and any Case
// following a Default in the same Switch is accepted but unreachable.
type switchBuild struct {
	test       value.Value
	patterns   [][]value.Pattern
	bodies     []*frame
	sawDefault bool
}

// EnterSwitch opens an explicit Switch scope on test.
func (b *Builder) EnterSwitch(test value.Value) {
	b.switchStack = append(b.switchStack, &switchBuild{test: test})
}

// EnterCase opens a Case within the innermost open Switch, matched when
// value.Matches(test, patterns...) holds.
func (b *Builder) EnterCase(patterns ...value.Pattern) error {
	sw, err := b.currentSwitch()
	if err != nil {
		return err
	}

	sw.patterns = append(sw.patterns, patterns)
	b.push(newFrame(frameBody))

	return nil
}

// EnterDefault opens the always-match Case within the innermost open
// Switch. Cases entered after it are accepted (per spec.md §4.2) but
// unreachable, since Default's empty pattern list always matches first.
func (b *Builder) EnterDefault() error {
	sw, err := b.currentSwitch()
	if err != nil {
		return err
	}

	sw.sawDefault = true
	sw.patterns = append(sw.patterns, nil)
	b.push(newFrame(frameBody))

	return nil
}

// ExitCase closes the currently open Case (or Default) body.
func (b *Builder) ExitCase() error {
	sw, err := b.currentSwitch()
	if err != nil {
		return err
	}

	if len(sw.patterns) != len(sw.bodies)+1 {
		return &diag.SyntaxError{Entity: "Case", Reason: "no open Case/Default to exit"}
	}

	sw.bodies = append(sw.bodies, b.pop())

	return nil
}

// ExitSwitch closes the innermost open Switch, compiling its cases into
// one Switch statement per domain any case assigned in.
func (b *Builder) ExitSwitch() error {
	sw, err := b.currentSwitch()
	if err != nil {
		return err
	}

	if len(sw.bodies) != len(sw.patterns) {
		return &diag.SyntaxError{Entity: "Switch", Reason: "unclosed Case/Default within Switch"}
	}

	b.switchStack = b.switchStack[:len(b.switchStack)-1]

	domains := map[string]bool{}
	for _, body := range sw.bodies {
		for _, d := range body.domainNames() {
			domains[d] = true
		}
	}

	for d := range domains {
		var cases []stmt.Case

		for i, body := range sw.bodies {
			cases = append(cases, stmt.Case{Patterns: sw.patterns[i], Body: body.perDomain[d]})
		}

		b.top().addStatement(d, stmt.Switch(sw.test, cases))
	}

	return nil
}

func (b *Builder) currentSwitch() (*switchBuild, error) {
	if len(b.switchStack) == 0 {
		return nil, &diag.SyntaxError{Entity: "Switch", Reason: "no open Switch"}
	}

	return b.switchStack[len(b.switchStack)-1], nil
}

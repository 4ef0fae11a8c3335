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

// ifChain accumulates an If/Elif*/Else? chain as the user walks through
// it one branch at a time. It compiles to a single Switch per spec.md
// §4.2: test = Cat(cond_0, cond_1, ...), one case per branch whose
// pattern sets only that branch's own bit (wildcarding the rest), and
// -- since Switch takes the first matching case in declaration order --
// branches earlier in program order win even if a later condition is
// also true, exactly matching If/Elif/Else's "first true condition
// wins" rule. Else is the Default case (empty pattern list), placed
// last so it only applies when nothing else matched.
type ifChain struct {
	conds    []value.Value
	bodies   []*frame
	elseBody *frame
	hasElse  bool
}

// EnterIf opens an If/Elif/Else chain's first branch.
func (b *Builder) EnterIf(cond value.Value) {
	chain := &ifChain{conds: []value.Value{cond}}
	b.ifStack = append(b.ifStack, chain)
	b.push(newFrame(frameBody))
}

// EnterElif closes the previous branch and opens a new conditional
// branch within the currently open If chain.
func (b *Builder) EnterElif(cond value.Value) error {
	chain, err := b.currentIfChain()
	if err != nil {
		return err
	}

	if chain.hasElse {
		return &diag.SyntaxError{Entity: "Elif", Reason: "Elif following Else"}
	}

	chain.bodies = append(chain.bodies, b.pop())
	chain.conds = append(chain.conds, cond)
	b.push(newFrame(frameBody))

	return nil
}

// EnterElse closes the previous branch and opens the chain's terminal,
// unconditional branch.
func (b *Builder) EnterElse() error {
	chain, err := b.currentIfChain()
	if err != nil {
		return err
	}

	if chain.hasElse {
		return &diag.SyntaxError{Entity: "Else", Reason: "duplicate Else"}
	}

	chain.bodies = append(chain.bodies, b.pop())
	chain.hasElse = true
	b.push(newFrame(frameBody))

	return nil
}

// ExitIf closes the chain's final open branch and compiles the whole
// chain into a Switch, appended to the now-current (enclosing) frame's
// per-domain statement lists for every domain any branch assigned in.
func (b *Builder) ExitIf() error {
	chain, err := b.currentIfChain()
	if err != nil {
		return err
	}

	b.ifStack = b.ifStack[:len(b.ifStack)-1]

	if chain.hasElse {
		chain.elseBody = b.pop()
	} else {
		chain.bodies = append(chain.bodies, b.pop())
	}

	width := uint32(len(chain.conds))
	boolConds := make([]value.Value, len(chain.conds))

	for i, c := range chain.conds {
		bc, err := value.Bool(c)
		if err != nil {
			return err
		}

		boolConds[i] = bc
	}

	test := value.Concat(boolConds...)

	domains := map[string]bool{}
	for _, body := range chain.bodies {
		for _, d := range body.domainNames() {
			domains[d] = true
		}
	}

	if chain.elseBody != nil {
		for _, d := range chain.elseBody.domainNames() {
			domains[d] = true
		}
	}

	for d := range domains {
		var cases []stmt.Case

		for i, body := range chain.bodies {
			cases = append(cases, stmt.Case{
				Patterns: []value.Pattern{value.BitPattern(priorityBitPattern(width, uint32(i)))},
				Body:     body.perDomain[d],
			})
		}

		if chain.elseBody != nil {
			cases = append(cases, stmt.Case{Patterns: nil, Body: chain.elseBody.perDomain[d]})
		}

		b.top().addStatement(d, stmt.Switch(test, cases))
	}

	return nil
}

func (b *Builder) currentIfChain() (*ifChain, error) {
	if len(b.ifStack) == 0 {
		return nil, &diag.SyntaxError{Entity: "If", Reason: "no open If/Elif/Else chain"}
	}

	return b.ifStack[len(b.ifStack)-1], nil
}

// priorityBitPattern returns a width-bit '0'/'1'/'-' pattern with bit
// index set to '1' and every other bit '-', MSB-first as matches() /
// value.BitPattern expects.
func priorityBitPattern(width, bit uint32) string {
	out := make([]byte, width)
	for i := range out {
		out[i] = '-'
	}

	out[width-1-bit] = '1'

	return string(out)
}

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

// Package stmt implements the statement tree (spec.md §3.3): Assign,
// Switch, Print, Assert/Assume/Cover nodes, built the same way pkg/air
// builds its constraint tree -- a closed set of variants constructed
// through validating constructors, never mutated afterwards.
package stmt

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// Kind discriminates a Statement's variant.
type Kind uint8

const (
	KindAssign Kind = iota
	KindSwitch
	KindPrint
	KindAssert
	KindAssume
	KindCover
)

// Case is one alternative of a Switch: a list of patterns (matched by
// value.Matches against the Switch's test expression) and the statements
// to run when any pattern matches. An empty Patterns list marks the
// Default case -- it always matches, and must be ordered last among the
// cases that matter (anything following it is unreachable, per spec.md
// §4.2).
type Case struct {
	Patterns []value.Pattern
	Body     []Statement
}

// Statement is one node of the statement tree. Only the fields relevant
// to Kind are populated.
type Statement struct {
	kind Kind

	// Assign
	lhs, rhs value.Value

	// Switch
	test  value.Value
	cases []Case

	// Print
	format string
	args   []value.Value

	// Assert / Assume / Cover
	cond    value.Value
	message string
}

// Kind reports which variant s is.
func (s Statement) Kind() Kind { return s.kind }

// Assign constructs lhs = rhs, per spec.md §3.3. lhs must be assignable
// (built only from Signal, Slice, Part, Concat, ArrayProxy); rhs's value is
// truncated/extended into lhs's shape at evaluation time, exactly as a
// direct Signal write is -- this mirrors an Amaranth signal assignment,
// where a width mismatch is a silent truncation, not a compile error.
func Assign(lhs, rhs value.Value) (Statement, error) {
	if !value.IsAssignable(lhs) {
		return Statement{}, &diag.SyntaxError{Entity: "Assign", Reason: "left-hand side is not assignable"}
	}

	return Statement{kind: KindAssign, lhs: lhs, rhs: rhs}, nil
}

// Lhs returns an Assign statement's target. Panics otherwise.
func (s Statement) Lhs() value.Value {
	s.mustBe(KindAssign)
	return s.lhs
}

// Rhs returns an Assign statement's source expression. Panics otherwise.
func (s Statement) Rhs() value.Value {
	s.mustBe(KindAssign)
	return s.rhs
}

// Switch constructs a multi-way branch on test, per spec.md §3.3. At most
// one case's body runs: the first case (in order) whose patterns match,
// or none if no case (including no Default) matches.
func Switch(test value.Value, cases []Case) Statement {
	return Statement{kind: KindSwitch, test: test, cases: cases}
}

// Test returns a Switch statement's discriminant. Panics otherwise.
func (s Statement) Test() value.Value {
	s.mustBe(KindSwitch)
	return s.test
}

// Cases returns a Switch statement's alternatives, in declaration order.
// Panics otherwise.
func (s Statement) Cases() []Case {
	s.mustBe(KindSwitch)
	return s.cases
}

// Print constructs a simulation-only diagnostic print of format with args,
// per spec.md §3.3.
func Print(format string, args ...value.Value) Statement {
	return Statement{kind: KindPrint, format: format, args: args}
}

// Format returns a Print statement's format string. Panics otherwise.
func (s Statement) Format() string {
	s.mustBe(KindPrint)
	return s.format
}

// Args returns a Print statement's arguments. Panics otherwise.
func (s Statement) Args() []value.Value {
	s.mustBe(KindPrint)
	return s.args
}

// Assert constructs a simulation-only assertion that cond must hold
// whenever this statement executes, per spec.md §3.3.
func Assert(cond value.Value, message string) Statement {
	return Statement{kind: KindAssert, cond: cond, message: message}
}

// Assume constructs a formal-verification assumption that cond holds.
func Assume(cond value.Value, message string) Statement {
	return Statement{kind: KindAssume, cond: cond, message: message}
}

// Cover constructs a formal/simulation coverage point: cond is reported
// reachable the first time it is observed true.
func Cover(cond value.Value, message string) Statement {
	return Statement{kind: KindCover, cond: cond, message: message}
}

// Cond returns an Assert/Assume/Cover statement's condition. Panics
// otherwise.
func (s Statement) Cond() value.Value {
	s.mustBeOneOf(KindAssert, KindAssume, KindCover)
	return s.cond
}

// Message returns an Assert/Assume/Cover statement's optional message.
// Panics if s is not one of those kinds.
func (s Statement) Message() string {
	s.mustBeOneOf(KindAssert, KindAssume, KindCover)
	return s.message
}

func (s Statement) mustBe(k Kind) {
	if s.kind != k {
		panic("stmt: wrong accessor for statement kind")
	}
}

func (s Statement) mustBeOneOf(ks ...Kind) {
	for _, k := range ks {
		if s.kind == k {
			return
		}
	}

	panic("stmt: wrong accessor for statement kind")
}

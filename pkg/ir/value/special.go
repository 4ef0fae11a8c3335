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
package value

import "github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"

// ClockSignal constructs a reference to the clock of the named domain,
// shape (1, unsigned), per spec.md §3.2. Domain resolution happens later,
// during elaboration (spec.md §4.3 step 4); the name is carried as a plain
// string here and rewritten in place by DomainRenamer (spec.md §4.3).
func (a *Arena) ClockSignal(domain string) Value {
	id := a.alloc(node{kind: kindClockSignal, shape: shape.Unsigned(1), domain: domain})
	return Value{a, id}
}

// ResetSignal constructs a reference to the reset of the named domain,
// shape (1, unsigned). allowResetLess is recorded on the node and reported
// by AllowsResetLess; nothing in this module resolves a ResetSignal against
// its domain, so a reset-less domain is neither substituted nor rejected.
func (a *Arena) ResetSignal(domain string, allowResetLess bool) Value {
	id := a.alloc(node{kind: kindResetSignal, shape: shape.Unsigned(1), domain: domain, allowResetLess: allowResetLess})
	return Value{a, id}
}

// IsClockSignal reports whether v is a ClockSignal node.
func (v Value) IsClockSignal() bool { return v.node().kind == kindClockSignal }

// IsResetSignal reports whether v is a ResetSignal node.
func (v Value) IsResetSignal() bool { return v.node().kind == kindResetSignal }

// Domain returns the domain name referenced by a ClockSignal or
// ResetSignal node. Panics otherwise.
func (v Value) Domain() string {
	n := v.node()
	if n.kind != kindClockSignal && n.kind != kindResetSignal {
		panic("value: Domain called on a node with no domain reference")
	}

	return n.domain
}

// AllowsResetLess reports whether a ResetSignal node tolerates a
// reset-less domain. Panics if v is not a ResetSignal.
func (v Value) AllowsResetLess() bool {
	n := v.node()
	if n.kind != kindResetSignal {
		panic("value: AllowsResetLess called on non-ResetSignal node")
	}

	return n.allowResetLess
}

// AnyConst constructs a formal-verification "free constant" of the given
// shape: a value that a prover may pick once (implicitly universally
// quantified per proof), but which is never driven by design logic.
func (a *Arena) AnyConst(s shape.ShapeLike, name string) Value {
	id := a.alloc(node{kind: kindAnyConst, shape: s.Shape(), name: name})
	return Value{a, id}
}

// AnyValue constructs a formal-verification "free signal" of the given
// shape: a value that may change arbitrarily every cycle.
func (a *Arena) AnyValue(s shape.ShapeLike, name string) Value {
	id := a.alloc(node{kind: kindAnyValue, shape: s.Shape(), name: name})
	return Value{a, id}
}

// IsAnyConst reports whether v is an AnyConst node.
func (v Value) IsAnyConst() bool { return v.node().kind == kindAnyConst }

// IsAnyValue reports whether v is an AnyValue node.
func (v Value) IsAnyValue() bool { return v.node().kind == kindAnyValue }

// Initial constructs the value asserted true only on the first simulation
// cycle, shape (1, unsigned), per spec.md §3.2.
func (a *Arena) Initial() Value {
	id := a.alloc(node{kind: kindInitial, shape: shape.Unsigned(1)})
	return Value{a, id}
}

// IsInitial reports whether v is an Initial node.
func (v Value) IsInitial() bool { return v.node().kind == kindInitial }

// Kind-agnostic helpers shared across variants.

// IsOperator reports whether v is an Operator node.
func (v Value) IsOperator() bool { return v.node().kind == kindOperator }

// Op returns an Operator node's operator. Panics otherwise.
func (v Value) Op() Op {
	n := v.node()
	if n.kind != kindOperator {
		panic("value: Op called on non-Operator node")
	}

	return n.op
}

// Operands returns an Operator node's operands. Panics otherwise.
func (v Value) Operands() []Value {
	n := v.node()
	if n.kind != kindOperator {
		panic("value: Operands called on non-Operator node")
	}

	out := make([]Value, len(n.operands))
	for i, id := range n.operands {
		out[i] = Value{v.arena, id}
	}

	return out
}

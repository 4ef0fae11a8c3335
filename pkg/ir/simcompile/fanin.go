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
package simcompile

import "github.com/amaranth-hdl/amaranth-go/pkg/ir/value"

// collectSignals walks v's expression tree and returns every distinct
// Signal it reads, keyed by signal id, per spec.md §4.5 step 2's "edges
// from each signal bit to the signals whose bits appear in its driving
// expression". Clock/reset wires are not plain Signals and are excluded:
// they are not recomputed by a combinational thunk, so they never
// participate in this dependency graph.
func collectSignals(v value.Value) map[uint64]value.Value {
	out := make(map[uint64]value.Value)
	walkSignals(v, out)

	return out
}

func walkSignals(v value.Value, out map[uint64]value.Value) {
	switch {
	case v.IsSignal():
		out[v.SignalID()] = v
	case v.IsOperator():
		for _, operand := range v.Operands() {
			walkSignals(operand, out)
		}
	case v.IsConcat():
		for _, part := range v.Parts() {
			walkSignals(part, out)
		}
	case v.IsArrayProxy():
		for _, elem := range v.Elements() {
			walkSignals(elem, out)
		}

		walkSignals(v.Index(), out)
	case v.IsPart():
		walkSignals(v.Base(), out)
		walkSignals(v.PartOffset(), out)
	case v.IsSlice(), v.IsReplicate():
		walkSignals(v.Base(), out)
	}
	// Const, ClockSignal, ResetSignal, AnyConst, AnyValue, Initial are leaves
	// with no Signal dependency.
}

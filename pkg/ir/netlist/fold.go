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
package netlist

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// evalDomain simulates one domain's statement list as a sequence of
// whole-signal overlays, per spec.md §4.4's priority-fold algorithm:
// later statements override earlier ones (program-order priority), and a
// Switch contributes its first matching case's effect, each case's body
// evaluated as if it alone followed the statements preceding the switch.
// acc accumulates, per touched signal, its fully folded driving
// expression; defaults memoizes each signal's "undriven" fallback
// (Const(init) for comb, the signal itself for synchronous) so every case
// branch of a Switch starts from the same baseline.
func evalDomain(stmts []stmt.Statement, acc, defaults map[value.Value]value.Value, isComb bool) (map[value.Value]value.Value, error) {
	for _, s := range stmts {
		switch s.Kind() {
		case stmt.KindAssign:
			if err := applyAssign(acc, defaults, s.Lhs(), s.Rhs(), isComb); err != nil {
				return nil, err
			}
		case stmt.KindSwitch:
			if err := applySwitch(acc, defaults, s, isComb); err != nil {
				return nil, err
			}
		}
		// Print/Assert/Assume/Cover drive nothing.
	}

	return acc, nil
}

func applySwitch(acc, defaults map[value.Value]value.Value, s stmt.Statement, isComb bool) error {
	test := s.Test()
	cases := s.Cases()

	guards := make([]value.Value, len(cases))
	branches := make([]map[value.Value]value.Value, len(cases))
	touched := make(map[value.Value]bool)

	for i, c := range cases {
		guard, err := caseGuard(test, c.Patterns)
		if err != nil {
			return err
		}

		guards[i] = guard

		branch := cloneAcc(acc)

		branch, err = evalDomain(c.Body, branch, defaults, isComb)
		if err != nil {
			return err
		}

		branches[i] = branch

		for sig, val := range branch {
			if prior, ok := acc[sig]; !ok || prior != val {
				touched[sig] = true
			}
		}
	}

	for sig := range touched {
		merged := getCurrent(sig, acc, defaults, isComb)

		for i := len(cases) - 1; i >= 0; i-- {
			branchVal, ok := branches[i][sig]
			if !ok {
				branchVal = merged
			}

			next, err := value.Mux(guards[i], branchVal, merged)
			if err != nil {
				return err
			}

			merged = next
		}

		acc[sig] = merged
	}

	return nil
}

// caseGuard builds the condition under which c's patterns select this
// case. An empty pattern list is the Default case, per spec.md §3.3 --
// it always matches, unlike value.Matches's "Const(0,1) on empty patterns"
// convention for the general matches() expression builder.
func caseGuard(test value.Value, patterns []value.Pattern) (value.Value, error) {
	if len(patterns) == 0 {
		return test.Arena().Const64(1, shape.Unsigned(1)), nil
	}

	return value.Matches(test, patterns...)
}

func cloneAcc(acc map[value.Value]value.Value) map[value.Value]value.Value {
	out := make(map[value.Value]value.Value, len(acc))
	for k, v := range acc {
		out[k] = v
	}

	return out
}

func getCurrent(sig value.Value, acc, defaults map[value.Value]value.Value, isComb bool) value.Value {
	if v, ok := acc[sig]; ok {
		return v
	}

	if v, ok := defaults[sig]; ok {
		return v
	}

	var v value.Value
	if isComb {
		v = sig.Arena().Const(sig.Init(), sig.Shape())
	} else {
		v = sig
	}

	defaults[sig] = v

	return v
}

// applyAssign decomposes lhs = rhs into per-whole-signal bit-range
// overlays and folds each into acc, per spec.md §3.3's assignable-target
// shapes (Signal, Slice of Signal, Concat of assignable parts). A
// Part or ArrayProxy target -- a dynamic bit offset, or a dynamic
// multi-element select -- is rejected: this builder's callers never
// produce one as an assignment target (LowerMemory always lowers into
// per-row Signal assigns instead of an ArrayProxy write), so a dynamic
// target reaching here indicates unsupported DSL usage rather than a
// lowering gap.
func applyAssign(acc, defaults map[value.Value]value.Value, lhs, rhs value.Value, isComb bool) error {
	targets, err := decomposeTarget(lhs, rhs)
	if err != nil {
		return err
	}

	for _, t := range targets {
		cur := getCurrent(t.signal, acc, defaults, isComb)

		portion, err := resizeTo(t.portion, t.hi-t.lo)
		if err != nil {
			return err
		}

		overlaid, err := overlayBits(cur, t.lo, t.hi, portion)
		if err != nil {
			return err
		}

		acc[t.signal] = overlaid
	}

	return nil
}

type targetAssignment struct {
	signal  value.Value
	lo, hi  uint32
	portion value.Value
}

func decomposeTarget(lhs, rhs value.Value) ([]targetAssignment, error) {
	switch {
	case lhs.IsSignal():
		return []targetAssignment{{signal: lhs, lo: 0, hi: lhs.Width(), portion: rhs}}, nil
	case lhs.IsSlice():
		base := lhs.Base()
		if !base.IsSignal() {
			return nil, &diag.SyntaxError{Entity: "netlist", Reason: "assignment target slices a non-Signal base"}
		}

		start, stop := lhs.SliceBounds()

		return []targetAssignment{{signal: base, lo: start, hi: stop, portion: rhs}}, nil
	case lhs.IsConcat():
		var out []targetAssignment

		var offset uint32

		for _, part := range lhs.Parts() {
			w := part.Width()

			portion, err := value.Slice(rhs, offset, offset+w)
			if err != nil {
				return nil, err
			}

			sub, err := decomposeTarget(part, portion)
			if err != nil {
				return nil, err
			}

			out = append(out, sub...)
			offset += w
		}

		return out, nil
	default:
		return nil, &diag.SyntaxError{
			Entity: "netlist",
			Reason: "assignment target is not a Signal, Slice-of-Signal, or Concat of such (Part/ArrayProxy targets are unsupported)",
		}
	}
}

// overlayBits replaces cur's bits [lo, hi) with portion (already resized
// to hi-lo), per spec.md §4.4's per-bit fold applied at bit-range
// granularity.
func overlayBits(cur value.Value, lo, hi uint32, portion value.Value) (value.Value, error) {
	width := cur.Width()

	var parts []value.Value

	if lo > 0 {
		low, err := value.Slice(cur, 0, lo)
		if err != nil {
			return value.Value{}, err
		}

		parts = append(parts, low)
	}

	parts = append(parts, portion)

	if hi < width {
		high, err := value.Slice(cur, hi, width)
		if err != nil {
			return value.Value{}, err
		}

		parts = append(parts, high)
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	return value.Concat(parts...), nil
}

// resizeTo truncates or extends v to exactly width bits, mirroring the
// silent truncation/extension a direct signal write applies (spec.md
// §3.3's Assign doc comment): extension sign-extends when v's own shape
// is signed, zero-extends otherwise.
func resizeTo(v value.Value, width uint32) (value.Value, error) {
	w := v.Width()

	if w == width {
		return v, nil
	}

	if w > width {
		return value.Slice(v, 0, width)
	}

	pad := width - w

	if w == 0 {
		return v.Arena().Const64(0, shape.Unsigned(width)), nil
	}

	if v.Shape().Signed {
		signBit, err := value.BitSelect(v, w-1, 1)
		if err != nil {
			return value.Value{}, err
		}

		padding, err := value.Replicate(signBit, int(pad))
		if err != nil {
			return value.Value{}, err
		}

		return value.Concat(v, padding), nil
	}

	zero := v.Arena().Const64(0, shape.Unsigned(pad))

	return value.Concat(v, zero), nil
}

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

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// IsAssignable reports whether v can appear as the left-hand side of an
// assignment, per spec.md §3.3: built only from Signal, Slice, Part,
// Concat, or ArrayProxy of assignable elements.
func IsAssignable(v Value) bool {
	switch v.node().kind {
	case kindSignal:
		return true
	case kindSlice, kindPart:
		return IsAssignable(v.Base())
	case kindConcat:
		for _, p := range v.Parts() {
			if !IsAssignable(p) {
				return false
			}
		}

		return true
	case kindArrayProxy:
		for _, e := range v.Elements() {
			if !IsAssignable(e) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// TargetBits is the set of (signal, bit) pairs an assignable expression
// addresses, per spec.md §3.3/§4.1. Per-signal bit membership is tracked
// with a bitset.BitSet, which is exactly the "driven so far" structure the
// netlist builder's conflict detector needs (spec.md §4.4).
type TargetBits struct {
	bySignal map[uint64]*bitset.BitSet
}

// NewTargetBits constructs an empty TargetBits set.
func NewTargetBits() *TargetBits {
	return &TargetBits{bySignal: make(map[uint64]*bitset.BitSet)}
}

func (t *TargetBits) mark(signalID uint64, bit uint32) {
	bs, ok := t.bySignal[signalID]
	if !ok {
		bs = bitset.New(0)
		t.bySignal[signalID] = bs
	}

	bs.Set(uint(bit))
}

// Union merges other into t and returns t.
func (t *TargetBits) Union(other *TargetBits) *TargetBits {
	for sig, bits := range other.bySignal {
		existing, ok := t.bySignal[sig]
		if !ok {
			t.bySignal[sig] = bits.Clone()
			continue
		}

		existing.InPlaceUnion(bits)
	}

	return t
}

// Contains reports whether (signalID, bit) is a member.
func (t *TargetBits) Contains(signalID uint64, bit uint32) bool {
	bs, ok := t.bySignal[signalID]
	if !ok {
		return false
	}

	return bs.Test(uint(bit))
}

// Intersects reports whether t and other share any (signal, bit) member.
func (t *TargetBits) Intersects(other *TargetBits) bool {
	for sig, bits := range t.bySignal {
		if o, ok := other.bySignal[sig]; ok && bits.IntersectionCardinality(o) > 0 {
			return true
		}
	}

	return false
}

// FirstConflict returns the first (signal, bit) pair, in ascending
// (signal id, bit index) order, that belongs to both t and other. ok is
// false when the two sets are disjoint.
func (t *TargetBits) FirstConflict(other *TargetBits) (signalID uint64, bit uint32, ok bool) {
	for _, sig := range t.SignalIDs() {
		bits, inOther := other.bySignal[sig]
		if !inOther {
			continue
		}

		mine := t.bySignal[sig]

		for b, e := mine.NextSet(0); e; b, e = mine.NextSet(b + 1) {
			if bits.Test(b) {
				return sig, uint32(b), true
			}
		}
	}

	return 0, 0, false
}

// SignalIDs returns the signal ids with at least one targeted bit, sorted
// ascending for deterministic iteration (spec.md §5).
func (t *TargetBits) SignalIDs() []uint64 {
	ids := make([]uint64, 0, len(t.bySignal))
	for id := range t.bySignal {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Bits returns the bitset of targeted bits for a given signal id (nil if
// none).
func (t *TargetBits) Bits(signalID uint64) *bitset.BitSet {
	return t.bySignal[signalID]
}

// ComputeTargetBits returns the (signal, bit) pairs v addresses, per
// spec.md §4.1. Callers should check IsAssignable(v) first; an
// unassignable root still traverses as far as it can but the result is
// meaningless.
func ComputeTargetBits(v Value) *TargetBits {
	out := NewTargetBits()
	targetBitsRange(v, 0, v.Width(), out)

	return out
}

// targetBitsRange accumulates into out the underlying (signal, bit) pairs
// addressed by v's local bit range [lo, hi).
func targetBitsRange(v Value, lo, hi uint32, out *TargetBits) {
	if lo >= hi {
		return
	}

	switch v.node().kind {
	case kindSignal:
		id := v.SignalID()
		for b := lo; b < hi; b++ {
			out.mark(id, b)
		}
	case kindSlice:
		start, _ := v.SliceBounds()
		targetBitsRange(v.Base(), start+lo, start+hi, out)
	case kindPart:
		// The bit offset is only known at simulation time; conservatively
		// attribute the whole base to this statement's targets, matching
		// spec.md §4.1's "set of (signal_id, bit) pairs it may write".
		base := v.Base()
		targetBitsRange(base, 0, base.Width(), out)
	case kindConcat:
		var offset uint32

		for _, p := range v.Parts() {
			pw := p.Width()
			segLo, segHi := clampRange(offset, offset+pw, lo, hi)

			if segLo < segHi {
				targetBitsRange(p, segLo-offset, segHi-offset, out)
			}

			offset += pw
		}
	case kindArrayProxy:
		for _, e := range v.Elements() {
			eHi := hi
			if e.Width() < eHi {
				eHi = e.Width()
			}

			if lo < eHi {
				targetBitsRange(e, lo, eHi, out)
			}
		}
	}
}

// clampRange intersects [segStart, segEnd) with [lo, hi).
func clampRange(segStart, segEnd, lo, hi uint32) (uint32, uint32) {
	start := segStart
	if lo > start {
		start = lo
	}

	end := segEnd
	if hi < end {
		end = hi
	}

	return start, end
}

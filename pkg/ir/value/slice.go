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
	"fmt"
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

// Slice selects the bits [start, stop) of base, per spec.md §3.2: result
// shape is (stop-start, unsigned). It is constant-castable -- the "constant-
// castable subset" of spec.md §4.1 -- so a Slice of an all-Const base folds
// immediately.
func Slice(base Value, start, stop uint32) (Value, error) {
	if start > stop || uint64(stop) > uint64(base.Width()) {
		return Value{}, &diag.ShapeError{
			Entity: "Slice",
			Reason: fmt.Sprintf("invalid bit range [%d:%d) for a %d-bit value", start, stop, base.Width()),
		}
	}

	a := base.arena
	result := shape.Unsigned(stop - start)

	if base.IsConst() {
		mask := new(big.Int).Sub(new(big.Int).Lsh(bigOne, uint(stop-start)), bigOne)
		shifted := new(big.Int).Rsh(base.ConstValue(), uint(start))
		folded := new(big.Int).And(shifted, mask)
		id := a.alloc(node{kind: kindConst, shape: result, constVal: folded})

		return Value{a, id}, nil
	}

	id := a.alloc(node{kind: kindSlice, shape: result, base: base.id, start: start, stop: stop})

	return Value{a, id}, nil
}

// IsSlice reports whether v is a Slice node.
func (v Value) IsSlice() bool { return v.node().kind == kindSlice }

// SliceBounds returns a Slice node's [start, stop) range. Panics if v is not
// a Slice.
func (v Value) SliceBounds() (start, stop uint32) {
	n := v.node()
	if n.kind != kindSlice {
		panic("value: SliceBounds called on non-Slice node")
	}

	return n.start, n.stop
}

// Base returns the base operand of a Slice, Part, or Replicate node. Panics
// otherwise.
func (v Value) Base() Value {
	n := v.node()
	if n.kind != kindSlice && n.kind != kindPart && n.kind != kindReplicate {
		panic("value: Base called on a node with no base")
	}

	return Value{v.arena, n.base}
}

// BitSelect is sugar for Slice(base, offset, offset+width).
func BitSelect(base Value, offset, width uint32) (Value, error) {
	return Slice(base, offset, offset+width)
}

// WordSelect is sugar for Slice(base, offset*width, offset*width+width) --
// selecting the offset'th word of the given width, per spec.md §6.1.
func WordSelect(base Value, offset, width uint32) (Value, error) {
	start := offset * width
	return Slice(base, start, start+width)
}

// Part selects width bits from base starting at a variable bit offset
// (offsetVal * stride), per spec.md §3.2's Part variant. Result shape is
// (width, unsigned).
func Part(base Value, offsetVal Value, width uint32, stride int32) (Value, error) {
	if stride == 0 {
		return Value{}, &diag.ShapeError{Entity: "Part", Reason: "stride must be non-zero"}
	}

	a := sharedArena(base, offsetVal)
	result := shape.Unsigned(width)
	id := a.alloc(node{kind: kindPart, shape: result, base: base.id, offsetVal: offsetVal.id, width: width, stride: stride})

	return Value{a, id}, nil
}

// IsPart reports whether v is a Part node.
func (v Value) IsPart() bool { return v.node().kind == kindPart }

// PartOffset returns a Part node's variable bit-offset operand. Panics
// otherwise.
func (v Value) PartOffset() Value {
	n := v.node()
	if n.kind != kindPart {
		panic("value: PartOffset called on non-Part node")
	}

	return Value{v.arena, n.offsetVal}
}

// PartStride returns a Part node's stride. Panics otherwise.
func (v Value) PartStride() int32 {
	n := v.node()
	if n.kind != kindPart {
		panic("value: PartStride called on non-Part node")
	}

	return n.stride
}

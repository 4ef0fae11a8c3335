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
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

// Concat concatenates parts, the first part occupying the least-significant
// bits, per spec.md §3.2: result shape is (sum of widths, unsigned). It is
// constant-castable, so an all-Const Concat folds to a single Const
// (spec.md §4.1).
func Concat(parts ...Value) Value {
	if len(parts) == 0 {
		panic("value: Concat requires at least one part to determine its arena; use arena.Const64(0, shape.Unsigned(0)) for an explicit empty value")
	}

	a := sharedArena(parts...)

	var width uint32

	allConst := true

	for _, p := range parts {
		width += p.Width()

		if !p.IsConst() {
			allConst = false
		}
	}

	result := shape.Unsigned(width)

	if allConst {
		acc := new(big.Int)

		var shift uint32

		for _, p := range parts {
			v := new(big.Int).Lsh(p.ConstValue(), uint(shift))
			// Mask to the part's own width before combining, since a
			// negative (signed) constant's infinite two's-complement
			// sign-extension must not bleed into higher parts.
			mask := new(big.Int).Sub(new(big.Int).Lsh(bigOne, uint(p.Width())), bigOne)
			v.And(v, new(big.Int).Lsh(mask, uint(shift)))
			acc.Or(acc, v)
			shift += p.Width()
		}

		id := a.alloc(node{kind: kindConst, shape: result, constVal: acc})

		return Value{a, id}
	}

	ids := make([]ID, len(parts))
	for i, p := range parts {
		ids[i] = p.id
	}

	id := a.alloc(node{kind: kindConcat, shape: result, parts: ids})

	return Value{a, id}
}

// IsConcat reports whether v is a Concat node.
func (v Value) IsConcat() bool { return v.node().kind == kindConcat }

// Parts returns a Concat node's operands, in least-to-most-significant
// order. Panics if v is not a Concat.
func (v Value) Parts() []Value {
	n := v.node()
	if n.kind != kindConcat {
		panic("value: Parts called on non-Concat node")
	}

	out := make([]Value, len(n.parts))
	for i, id := range n.parts {
		out[i] = Value{v.arena, id}
	}

	return out
}

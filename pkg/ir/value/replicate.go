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

// Replicate repeats base count times (width(base)*count, unsigned), per
// spec.md §3.2. A negative count is a ShapeError (spec.md §4.1).
func Replicate(base Value, count int) (Value, error) {
	if count < 0 {
		return Value{}, &diag.ShapeError{Entity: "Replicate", Reason: fmt.Sprintf("negative count %d", count)}
	}

	a := base.arena
	result := shape.Unsigned(base.Width() * uint32(count))

	if base.IsConst() {
		mask := new(big.Int).Sub(new(big.Int).Lsh(bigOne, uint(base.Width())), bigOne)
		part := new(big.Int).And(base.ConstValue(), mask)
		acc := new(big.Int)

		for i := 0; i < count; i++ {
			acc.Or(acc, new(big.Int).Lsh(part, uint(uint32(i)*base.Width())))
		}

		id := a.alloc(node{kind: kindConst, shape: result, constVal: acc})

		return Value{a, id}, nil
	}

	id := a.alloc(node{kind: kindReplicate, shape: result, base: base.id, count: uint32(count)})

	return Value{a, id}, nil
}

// IsReplicate reports whether v is a Replicate node.
func (v Value) IsReplicate() bool { return v.node().kind == kindReplicate }

// ReplicateCount returns a Replicate node's repeat count. Panics otherwise.
func (v Value) ReplicateCount() uint32 {
	n := v.node()
	if n.kind != kindReplicate {
		panic("value: ReplicateCount called on non-Replicate node")
	}

	return n.count
}

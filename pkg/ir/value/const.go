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

// Const constructs a constant value of the given shape. The integer value is
// truncated into the shape per spec.md §3.2's "value truncated into shape"
// rule.
//
// When s is a shape.Range and v equals the range's exclusive upper bound,
// this is the classic off-by-one trap -- Const(n, range(n)) -- described in
// spec.md §4.1/§9 OQ4: the caller almost certainly meant range(n+1). It is
// reported once per (value, range) pair via the arena's diag.Reporter
// (spec.md §7) rather than rejected outright.
func (a *Arena) Const(v *big.Int, s shape.ShapeLike) Value {
	sh := s.Shape()

	if rng, ok := s.(shape.Range); ok && a.warnings != nil && v.Cmp(big.NewInt(rng.Hi)) == 0 {
		a.warnings.Warn(diag.WarnOffByOneRange, fmt.Sprintf("%d:%d:%d", v.Int64(), rng.Lo, rng.Hi),
			fmt.Sprintf("Const(%d, range(%d, %d)) -- %d is outside this half-open range; did you mean range(%d, %d)?",
				v, rng.Lo, rng.Hi, v, rng.Lo, rng.Hi+1))
	}

	id := a.alloc(node{kind: kindConst, shape: sh, constVal: truncate(v, sh)})

	return Value{a, id}
}

// Const64 is a convenience wrapper over Const for small integer literals.
func (a *Arena) Const64(v int64, s shape.ShapeLike) Value {
	return a.Const(big.NewInt(v), s)
}

// IsConst reports whether v is a Const node.
func (v Value) IsConst() bool {
	return v.node().kind == kindConst
}

// ConstValue returns the literal integer value of a Const node. It panics if
// v is not a Const; callers should check IsConst (or use Fold + IsConst) to
// read back an arbitrary constant-castable expression, per spec.md §4.1.
func (v Value) ConstValue() *big.Int {
	n := v.node()
	if n.kind != kindConst {
		panic("value: ConstValue called on non-Const node")
	}

	return new(big.Int).Set(n.constVal)
}

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

// floorDivMod computes floor division and its matching modulus (result has
// the sign of b, or zero), i.e. Python's "//" and "%". Division by zero
// yields (0, 0), per spec.md §3.2.1: "division by zero yields 0
// (deterministic, never traps)".
func floorDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	if b.Sign() == 0 {
		return big.NewInt(0), big.NewInt(0)
	}

	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a, b, r)

	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, bigOne)
		r.Add(r, b)
	}

	return q, r
}

func boolToBig(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}

	return big.NewInt(0)
}

// evalConstOp computes the exact mathematical result of applying op to
// already-truncated constant operand values. The caller truncates the
// result into the operator's inferred shape afterwards (foldOperator in
// operator.go),
// matching how every other Const is produced (spec.md §3.2: "value
// truncated into shape").
func evalConstOp(op Op, vals []*big.Int, shapes []shape.Shape) *big.Int {
	switch op {
	case OpAdd:
		return new(big.Int).Add(vals[0], vals[1])
	case OpSub:
		return new(big.Int).Sub(vals[0], vals[1])
	case OpNeg:
		return new(big.Int).Neg(vals[0])
	case OpMul:
		return new(big.Int).Mul(vals[0], vals[1])
	case OpFloorDiv:
		q, _ := floorDivMod(vals[0], vals[1])
		return q
	case OpMod:
		_, r := floorDivMod(vals[0], vals[1])
		return r
	case OpEq:
		return boolToBig(vals[0].Cmp(vals[1]) == 0)
	case OpNe:
		return boolToBig(vals[0].Cmp(vals[1]) != 0)
	case OpLt:
		return boolToBig(vals[0].Cmp(vals[1]) < 0)
	case OpLe:
		return boolToBig(vals[0].Cmp(vals[1]) <= 0)
	case OpGt:
		return boolToBig(vals[0].Cmp(vals[1]) > 0)
	case OpGe:
		return boolToBig(vals[0].Cmp(vals[1]) >= 0)
	case OpAnd:
		return new(big.Int).And(vals[0], vals[1])
	case OpOr:
		return new(big.Int).Or(vals[0], vals[1])
	case OpXor:
		return new(big.Int).Xor(vals[0], vals[1])
	case OpNot:
		return new(big.Int).Not(vals[0])
	case OpShl:
		return new(big.Int).Lsh(vals[0], uint(vals[1].Uint64()))
	case OpShr:
		return new(big.Int).Rsh(vals[0], uint(vals[1].Uint64()))
	case OpAll:
		return boolToBig(isAllOnesBits(vals[0], shapes[0].Width))
	case OpAny:
		return boolToBig(vals[0].Sign() != 0)
	case OpReduceXor:
		return boolToBig(parityOf(vals[0]))
	case OpBool:
		return boolToBig(vals[0].Sign() != 0)
	case OpAsSigned, OpAsUnsigned:
		return vals[0]
	case OpMux:
		if vals[0].Sign() != 0 {
			return vals[1]
		}

		return vals[2]
	}

	panic("value: evalConstOp: unhandled operator " + op.String())
}

// isAllOnesBits reports whether every one of v's w low-order bits (in
// two's-complement, which math/big's bitwise operators extend correctly
// for negative v) is set. A width of 0 is vacuously all-ones.
func isAllOnesBits(v *big.Int, w uint32) bool {
	if w == 0 {
		return true
	}

	mask := new(big.Int).Sub(new(big.Int).Lsh(bigOne, uint(w)), bigOne)
	pattern := new(big.Int).And(v, mask)

	return pattern.Cmp(mask) == 0
}

func parityOf(v *big.Int) bool {
	n := new(big.Int).Abs(v)
	parity := false

	for n.Sign() != 0 {
		if n.Bit(0) == 1 {
			parity = !parity
		}

		n.Rsh(n, 1)
	}

	return parity
}

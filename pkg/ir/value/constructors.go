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

// This file exposes the arithmetic, comparison, bitwise, reduction and
// conversion operations of spec.md §6.1 as package-level constructors, each
// routed through newOperator for width checking and constant folding.
package value

// Add returns a + b.
func Add(a, b Value) (Value, error) { return newOperator(OpAdd, a, b) }

// Sub returns a - b.
func Sub(a, b Value) (Value, error) { return newOperator(OpSub, a, b) }

// Neg returns -a.
func Neg(a Value) (Value, error) { return newOperator(OpNeg, a) }

// Mul returns a * b.
func Mul(a, b Value) (Value, error) { return newOperator(OpMul, a, b) }

// FloorDiv returns a // b (floor division; division by zero yields 0).
func FloorDiv(a, b Value) (Value, error) { return newOperator(OpFloorDiv, a, b) }

// Mod returns a % b (sign follows b; division by zero yields 0).
func Mod(a, b Value) (Value, error) { return newOperator(OpMod, a, b) }

// Abs returns the absolute value of a, built as Mux(a < 0, -a, a).
func Abs(a Value) (Value, error) {
	zero := a.arena.Const64(0, a.Shape())

	neg, err := Neg(a)
	if err != nil {
		return Value{}, err
	}

	isNeg, err := Lt(a, zero)
	if err != nil {
		return Value{}, err
	}

	return Mux(isNeg, neg, a)
}

// Eq returns a == b.
func Eq(a, b Value) (Value, error) { return newOperator(OpEq, a, b) }

// Ne returns a != b.
func Ne(a, b Value) (Value, error) { return newOperator(OpNe, a, b) }

// Lt returns a < b.
func Lt(a, b Value) (Value, error) { return newOperator(OpLt, a, b) }

// Le returns a <= b.
func Le(a, b Value) (Value, error) { return newOperator(OpLe, a, b) }

// Gt returns a > b.
func Gt(a, b Value) (Value, error) { return newOperator(OpGt, a, b) }

// Ge returns a >= b.
func Ge(a, b Value) (Value, error) { return newOperator(OpGe, a, b) }

// And returns the bitwise AND of a and b.
func And(a, b Value) (Value, error) { return newOperator(OpAnd, a, b) }

// Or returns the bitwise OR of a and b.
func Or(a, b Value) (Value, error) { return newOperator(OpOr, a, b) }

// Xor returns the bitwise XOR of a and b.
func Xor(a, b Value) (Value, error) { return newOperator(OpXor, a, b) }

// Not returns the bitwise complement of a.
func Not(a Value) (Value, error) { return newOperator(OpNot, a) }

// Shl returns a shifted left by the (variable, non-negative) amount b.
func Shl(a, b Value) (Value, error) { return newOperator(OpShl, a, b) }

// Shr returns a shifted right (arithmetically, if a is signed) by the
// (variable, non-negative) amount b.
func Shr(a Value, b Value) (Value, error) { return newOperator(OpShr, a, b) }

// All returns true iff every bit of a is set.
func All(a Value) (Value, error) { return newOperator(OpAll, a) }

// Any returns true iff some bit of a is set.
func Any(a Value) (Value, error) { return newOperator(OpAny, a) }

// ReduceXor returns the parity (XOR-reduction) of a's bits.
func ReduceXor(a Value) (Value, error) { return newOperator(OpReduceXor, a) }

// Bool coerces a to a single boolean bit: true iff a is non-zero.
func Bool(a Value) (Value, error) { return newOperator(OpBool, a) }

// AsSigned reinterprets a's bit pattern as a signed value of the same
// width.
func AsSigned(a Value) (Value, error) { return newOperator(OpAsSigned, a) }

// AsUnsigned reinterprets a's bit pattern as an unsigned value of the same
// width.
func AsUnsigned(a Value) (Value, error) { return newOperator(OpAsUnsigned, a) }

// Mux selects whenTrue when sel is non-zero, else whenFalse, per spec.md §3.2.1's
// Mux(sel, a, b) rule (named here Mux(sel, whenTrue, whenFalse) for
// clarity).
func Mux(sel, whenTrue, whenFalse Value) (Value, error) {
	return newOperator(OpMux, sel, whenTrue, whenFalse)
}

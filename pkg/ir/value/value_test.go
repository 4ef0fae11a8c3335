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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

func TestShapeInferenceArithmetic(t *testing.T) {
	a := NewArena()

	x := a.NewSignal(shape.Unsigned(4), SignalOptions{Name: "x"})
	y := a.NewSignal(shape.Signed(4), SignalOptions{Name: "y"})

	sum, err := Add(x, y)
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{Width: 5, Signed: true}, sum.Shape())

	diff, err := Sub(x, x)
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{Width: 5, Signed: false}, diff.Shape())

	neg, err := Neg(x)
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{Width: 5, Signed: true}, neg.Shape())

	prod, err := Mul(x, y)
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{Width: 8, Signed: true}, prod.Shape())
}

func TestShapeInferenceDivMod(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(4), SignalOptions{})
	y := a.NewSignal(shape.Unsigned(4), SignalOptions{})
	z := a.NewSignal(shape.Signed(4), SignalOptions{})

	q, err := FloorDiv(x, y)
	require.NoError(t, err)
	assert.Equal(t, shape.Unsigned(4), q.Shape())

	q2, err := FloorDiv(x, z)
	require.NoError(t, err)
	assert.Equal(t, shape.Signed(5), q2.Shape())

	// Result width tracks the dividend (first operand), not the wider of
	// the two operands: a narrow numerator divided by a wider divisor
	// stays narrow.
	wide := a.NewSignal(shape.Unsigned(8), SignalOptions{})
	q3, err := FloorDiv(x, wide)
	require.NoError(t, err)
	assert.Equal(t, shape.Unsigned(4), q3.Shape())

	m, err := Mod(x, wide)
	require.NoError(t, err)
	assert.Equal(t, shape.Unsigned(4), m.Shape())
}

func TestShapeInferenceComparisonsAndReductions(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(8), SignalOptions{})
	y := a.NewSignal(shape.Unsigned(8), SignalOptions{})

	for _, op := range []func(a, b Value) (Value, error){Eq, Ne, Lt, Le, Gt, Ge} {
		v, err := op(x, y)
		require.NoError(t, err)
		assert.Equal(t, shape.Unsigned(1), v.Shape())
	}

	for _, op := range []func(Value) (Value, error){All, Any, ReduceXor, Bool} {
		v, err := op(x)
		require.NoError(t, err)
		assert.Equal(t, shape.Unsigned(1), v.Shape())
	}
}

func TestShapeInferenceBitwise(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(4), SignalOptions{})
	y := a.NewSignal(shape.Signed(6), SignalOptions{})

	v, err := And(x, y)
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{Width: 6, Signed: true}, v.Shape())

	n, err := Not(x)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), n.Shape())
}

func TestShapeInferenceShift(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(4), SignalOptions{})
	amt := a.NewSignal(shape.Unsigned(3), SignalOptions{})

	shl, err := Shl(x, amt)
	require.NoError(t, err)
	// 4 + (2^3 - 1) = 11
	assert.Equal(t, shape.Unsigned(11), shl.Shape())

	shr, err := Shr(x, amt)
	require.NoError(t, err)
	assert.Equal(t, x.Shape(), shr.Shape())
}

func TestShapeInferenceShiftCeiling(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(4), SignalOptions{})
	amt := a.NewSignal(shape.Unsigned(20), SignalOptions{})

	_, err := Shl(x, amt)
	require.Error(t, err)
}

func TestShapeInferenceAsSignedUnsigned(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(5), SignalOptions{})

	s, err := AsSigned(x)
	require.NoError(t, err)
	assert.Equal(t, shape.Signed(5), s.Shape())

	u, err := AsUnsigned(s)
	require.NoError(t, err)
	assert.Equal(t, shape.Unsigned(5), u.Shape())
}

func TestShapeInferenceMux(t *testing.T) {
	a := NewArena()
	sel := a.NewSignal(shape.Unsigned(1), SignalOptions{})
	whenTrue := a.NewSignal(shape.Unsigned(4), SignalOptions{})
	whenFalse := a.NewSignal(shape.Signed(6), SignalOptions{})

	m, err := Mux(sel, whenTrue, whenFalse)
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{Width: 6, Signed: true}, m.Shape())
}

func TestConstantFoldingArithmetic(t *testing.T) {
	a := NewArena()
	x := a.Const64(3, shape.Unsigned(4))
	y := a.Const64(5, shape.Unsigned(4))

	sum, err := Add(x, y)
	require.NoError(t, err)
	require.True(t, sum.IsConst())
	assert.Equal(t, big.NewInt(8), sum.ConstValue())
}

func TestConstantFoldingFloorDivModNegative(t *testing.T) {
	a := NewArena()
	// -7 // 2 == -4, -7 % 2 == 1 (Python floor semantics).
	x := a.Const(big.NewInt(-7), shape.Signed(5))
	y := a.Const64(2, shape.Signed(5))

	q, err := FloorDiv(x, y)
	require.NoError(t, err)
	require.True(t, q.IsConst())
	assert.Equal(t, big.NewInt(-4), q.ConstValue())

	m, err := Mod(x, y)
	require.NoError(t, err)
	require.True(t, m.IsConst())
	assert.Equal(t, big.NewInt(1), m.ConstValue())
}

func TestConstantFoldingDivisionByZero(t *testing.T) {
	a := NewArena()
	x := a.Const64(7, shape.Unsigned(4))
	zero := a.Const64(0, shape.Unsigned(4))

	q, err := FloorDiv(x, zero)
	require.NoError(t, err)
	require.True(t, q.IsConst())
	assert.Equal(t, big.NewInt(0), q.ConstValue())
}

func TestConstantFoldingSlice(t *testing.T) {
	a := NewArena()
	x := a.Const64(0b1011, shape.Unsigned(4))

	s, err := Slice(x, 1, 3)
	require.NoError(t, err)
	require.True(t, s.IsConst())
	assert.Equal(t, big.NewInt(0b01), s.ConstValue())
}

func TestConstantFoldingConcat(t *testing.T) {
	a := NewArena()
	lo := a.Const64(0b101, shape.Unsigned(3))
	hi := a.Const64(0b11, shape.Unsigned(2))

	c := Concat(lo, hi)
	require.True(t, c.IsConst())
	assert.Equal(t, big.NewInt(0b11101), c.ConstValue())
	assert.Equal(t, shape.Unsigned(5), c.Shape())
}

func TestMatchesIntPattern(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(4), SignalOptions{})

	m, err := Matches(x, Int64Pattern(5))
	require.NoError(t, err)
	assert.Equal(t, shape.Unsigned(1), m.Shape())
}

func TestMatchesBitPattern(t *testing.T) {
	a := NewArena()
	x := a.Const64(0b1010, shape.Unsigned(4))

	m, err := Matches(x, BitPattern("10--"))
	require.NoError(t, err)
	require.True(t, m.IsConst())
	assert.Equal(t, big.NewInt(1), m.ConstValue())

	m2, err := Matches(x, BitPattern("01--"))
	require.NoError(t, err)
	require.True(t, m2.IsConst())
	assert.Equal(t, big.NewInt(0), m2.ConstValue())
}

func TestMatchesEmptyPatternList(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(4), SignalOptions{})

	m, err := Matches(x)
	require.NoError(t, err)
	require.True(t, m.IsConst())
	assert.Equal(t, big.NewInt(0), m.ConstValue())
}

func TestMatchesBitPatternTooLong(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(2), SignalOptions{})

	_, err := Matches(x, BitPattern("101"))
	require.Error(t, err)
}

func TestMatchesBitPatternShorterThanTestWarnsOnce(t *testing.T) {
	a := NewArena()
	x := a.NewSignal(shape.Unsigned(4), SignalOptions{})

	before := a.Warnings().Count()

	_, err := Matches(x, BitPattern("1-"))
	require.NoError(t, err)
	assert.Equal(t, before+1, a.Warnings().Count())

	// Same (width, pattern) pair again: one-shot, no new entry.
	_, err = Matches(x, BitPattern("1-"))
	require.NoError(t, err)
	assert.Equal(t, before+1, a.Warnings().Count())
}

func TestMatchesOrsAlternatives(t *testing.T) {
	a := NewArena()
	x := a.Const64(7, shape.Unsigned(4))

	m, err := Matches(x, Int64Pattern(3), Int64Pattern(7))
	require.NoError(t, err)
	require.True(t, m.IsConst())
	assert.Equal(t, big.NewInt(1), m.ConstValue())
}

func TestIsAssignable(t *testing.T) {
	a := NewArena()
	sig := a.NewSignal(shape.Unsigned(8), SignalOptions{})

	assert.True(t, IsAssignable(sig))

	sl, err := Slice(sig, 0, 4)
	require.NoError(t, err)
	assert.True(t, IsAssignable(sl))

	c := Concat(sl, sl)
	assert.True(t, IsAssignable(c))

	sum, err := Add(sig, sig)
	require.NoError(t, err)
	assert.False(t, IsAssignable(sum))
}

func TestTargetBitsSlice(t *testing.T) {
	a := NewArena()
	sig := a.NewSignal(shape.Unsigned(8), SignalOptions{})

	sl, err := Slice(sig, 2, 5)
	require.NoError(t, err)

	tb := ComputeTargetBits(sl)
	assert.False(t, tb.Contains(sig.SignalID(), 1))
	assert.True(t, tb.Contains(sig.SignalID(), 2))
	assert.True(t, tb.Contains(sig.SignalID(), 4))
	assert.False(t, tb.Contains(sig.SignalID(), 5))
}

func TestTargetBitsConcat(t *testing.T) {
	a := NewArena()
	sigA := a.NewSignal(shape.Unsigned(4), SignalOptions{})
	sigB := a.NewSignal(shape.Unsigned(4), SignalOptions{})

	c := Concat(sigA, sigB)

	tb := ComputeTargetBits(c)
	for b := uint32(0); b < 4; b++ {
		assert.True(t, tb.Contains(sigA.SignalID(), b))
		assert.True(t, tb.Contains(sigB.SignalID(), b))
	}
}

func TestTargetBitsIntersectsDetectsConflict(t *testing.T) {
	a := NewArena()
	sig := a.NewSignal(shape.Unsigned(8), SignalOptions{})

	left, err := Slice(sig, 0, 4)
	require.NoError(t, err)
	right, err := Slice(sig, 3, 6)
	require.NoError(t, err)

	tbLeft := ComputeTargetBits(left)
	tbRight := ComputeTargetBits(right)

	assert.True(t, tbLeft.Intersects(tbRight))
}

func TestConstOffByOneRangeWarnsOnce(t *testing.T) {
	a := NewArena()

	before := a.Warnings().Count()

	// The historical trap: Const(4, range(4)) -- the caller almost
	// certainly meant range(5) (or range(0, 5)) to include 4 itself.
	c := a.Const64(4, shape.Range{Lo: 0, Hi: 4})
	assert.Equal(t, shape.Unsigned(2), c.Shape())
	assert.Equal(t, before+1, a.Warnings().Count())

	// Repeating the same (value, range) pair is one-shot.
	a.Const64(4, shape.Range{Lo: 0, Hi: 4})
	assert.Equal(t, before+1, a.Warnings().Count())

	// A value that actually falls within the range never warns.
	a.Const64(2, shape.Range{Lo: 0, Hi: 4})
	assert.Equal(t, before+1, a.Warnings().Count())
}

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
package stmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

func TestAssignRejectsUnassignableLhs(t *testing.T) {
	a := value.NewArena()
	x := a.NewSignal(shape.Unsigned(4), value.SignalOptions{})
	y := a.NewSignal(shape.Unsigned(4), value.SignalOptions{})

	sum, err := value.Add(x, y)
	require.NoError(t, err)

	_, err = Assign(sum, y)
	require.Error(t, err)
}

func TestAssignTargetBits(t *testing.T) {
	a := value.NewArena()
	sig := a.NewSignal(shape.Unsigned(8), value.SignalOptions{})

	sl, err := value.Slice(sig, 0, 4)
	require.NoError(t, err)

	rhs := a.Const64(5, shape.Unsigned(4))

	s, err := Assign(sl, rhs)
	require.NoError(t, err)

	tb := TargetBits(s)
	assert.True(t, tb.Contains(sig.SignalID(), 0))
	assert.True(t, tb.Contains(sig.SignalID(), 3))
	assert.False(t, tb.Contains(sig.SignalID(), 4))
}

func TestSwitchTargetBitsIsUnionOfBranches(t *testing.T) {
	a := value.NewArena()
	sig := a.NewSignal(shape.Unsigned(8), value.SignalOptions{})
	test := a.NewSignal(shape.Unsigned(2), value.SignalOptions{})

	loSlice, err := value.Slice(sig, 0, 4)
	require.NoError(t, err)
	hiSlice, err := value.Slice(sig, 4, 8)
	require.NoError(t, err)

	assignLo, err := Assign(loSlice, a.Const64(1, shape.Unsigned(4)))
	require.NoError(t, err)
	assignHi, err := Assign(hiSlice, a.Const64(2, shape.Unsigned(4)))
	require.NoError(t, err)

	sw := Switch(test, []Case{
		{Patterns: []value.Pattern{value.Int64Pattern(0)}, Body: []Statement{assignLo}},
		{Patterns: nil, Body: []Statement{assignHi}},
	})

	tb := TargetBits(sw)
	for b := uint32(0); b < 4; b++ {
		assert.True(t, tb.Contains(sig.SignalID(), b))
	}
	for b := uint32(4); b < 8; b++ {
		assert.True(t, tb.Contains(sig.SignalID(), b))
	}
}

func TestPrintAssertCarryNoTargetBits(t *testing.T) {
	a := value.NewArena()
	cond := a.NewSignal(shape.Unsigned(1), value.SignalOptions{})

	p := Print("hello")
	assert.Equal(t, KindPrint, p.Kind())
	assert.Empty(t, TargetBits(p).SignalIDs())

	as := Assert(cond, "must hold")
	assert.Equal(t, KindAssert, as.Kind())
	assert.Equal(t, "must hold", as.Message())
	assert.Empty(t, TargetBits(as).SignalIDs())
}

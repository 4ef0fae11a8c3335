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
package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInt(t *testing.T) {
	s, err := FromInt(8)
	require.NoError(t, err)
	assert.Equal(t, Unsigned(8), s)

	_, err = FromInt(-1)
	assert.Error(t, err)
}

func TestFromRange(t *testing.T) {
	tests := []struct {
		name     string
		lo, hi   int64
		expected Shape
	}{
		{"empty", 3, 3, Unsigned(0)},
		{"empty_inverted", 5, 2, Unsigned(0)},
		{"zero_to_eight", 0, 8, Unsigned(3)},
		{"zero_to_one", 0, 1, Unsigned(0)},
		{"single_element", 4, 5, Unsigned(3)},
		{"negative_only", -8, -3, Signed(4)},
		{"spanning_zero", -1, 1, Signed(1)},
		{"spanning_larger", -4, 4, Signed(3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FromRange(tc.lo, tc.hi))
		})
	}
}

func TestFromEnum(t *testing.T) {
	members := []Member{{"A", 0}, {"B", 1}, {"C", 2}}
	assert.Equal(t, Unsigned(2), FromEnum(members))

	signedMembers := []Member{{"A", -1}, {"B", 0}, {"C", 1}}
	assert.Equal(t, Signed(2), FromEnum(signedMembers))

	assert.Equal(t, Unsigned(0), FromEnum(nil))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "unsigned(8)", Unsigned(8).String())
	assert.Equal(t, "signed(4)", Signed(4).String())
}

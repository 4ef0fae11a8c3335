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
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

func TestNewSynchronousDomainHasResetByDefault(t *testing.T) {
	a := value.NewArena()
	sync := New(a, "sync", Pos, false, false)

	assert.Equal(t, "sync", sync.Name)
	assert.True(t, sync.HasReset())
	assert.Equal(t, "pos", sync.ClkEdge.String())
}

func TestNewResetLessDomainHasNoReset(t *testing.T) {
	a := value.NewArena()
	rl := New(a, "fast", Neg, true, false)

	assert.False(t, rl.HasReset())
	assert.Equal(t, "neg", rl.ClkEdge.String())
}

func TestCombIsThePredefinedDomainName(t *testing.T) {
	assert.Equal(t, "comb", Comb)
}

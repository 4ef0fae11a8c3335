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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

func TestRenameDomainsRewritesClockAndResetSignals(t *testing.T) {
	a := NewArena()
	clk := a.ClockSignal("sync")
	rst := a.ResetSignal("sync", false)
	combined := Concat(clk, rst)

	RenameDomains(combined, map[string]string{"sync": "core"})

	parts := combined.Parts()
	assert.Equal(t, "core", parts[0].Domain())
	assert.Equal(t, "core", parts[1].Domain())
}

func TestRenameDomainsLeavesUnmappedNamesAlone(t *testing.T) {
	a := NewArena()
	clk := a.ClockSignal("video")

	RenameDomains(clk, map[string]string{"sync": "core"})

	assert.Equal(t, "video", clk.Domain())
}

func TestRenameDomainsRecursesThroughSliceAndConcat(t *testing.T) {
	a := NewArena()
	sig := a.NewSignal(shape.Unsigned(4), SignalOptions{Name: "x"})
	rst := a.ResetSignal("sync", false)
	expr, err := Slice(Concat(sig, rst), 0, 5)
	assert := assert.New(t)
	assert.NoError(err)

	RenameDomains(expr, map[string]string{"sync": "core"})

	assert.Equal("core", expr.Base().Parts()[1].Domain())
}

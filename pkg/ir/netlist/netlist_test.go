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
package netlist

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/memory"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/module"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

func buildFragment(t *testing.T, b *module.Builder) *elaborate.Fragment {
	t.Helper()

	mod, err := b.Build()
	require.NoError(t, err)

	frag, err := elaborate.Elaborate(mod, nil)
	require.NoError(t, err)

	return frag
}

func findSignal(t *testing.T, nl *Netlist, sig value.Value) SignalNet {
	t.Helper()

	for _, sn := range nl.Signals {
		if sn.Signal == sig {
			return sn
		}
	}

	t.Fatalf("signal %v not found in netlist", sig)

	return SignalNet{}
}

// TestUpCounterWithEnableFoldsToMux covers spec.md §8 Scenario A: a 16-bit
// sync counter that increments only `with If(en)`. The resolved next-state
// expression must be structurally equivalent to Mux(en != 0, count+1,
// count), truncated back down to 16 bits.
func TestUpCounterWithEnableFoldsToMux(t *testing.T) {
	a := value.NewArena()
	sync := domain.New(a, "sync", domain.Pos, false, false)

	b := module.New(a)
	b.AddDomain(sync)

	count := a.NewSignal(shape.Unsigned(16), value.SignalOptions{Name: "count", Init: big.NewInt(0)})
	en := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "en"})

	b.EnterIf(en)
	one := a.Const64(1, shape.Unsigned(16))
	sum, err := value.Add(count, one)
	require.NoError(t, err)
	require.NoError(t, b.AddAssignment("sync", count, sum))
	require.NoError(t, b.ExitIf())

	frag := buildFragment(t, b)

	nl, err := BuildNetlist(frag, nil)
	require.NoError(t, err)

	sn := findSignal(t, nl, count)
	assert.Equal(t, "sync", sn.Domain)
	assert.True(t, sn.IsRegister)

	next := sn.Next
	require.Equal(t, uint32(16), next.Width())

	guard := next.Operands()[0]
	assert.Equal(t, uint32(1), guard.Width())

	onBranch := next.Operands()[1]
	assert.Equal(t, uint32(16), onBranch.Width())

	offBranch := next.Operands()[2]
	assert.Equal(t, count, offBranch)
}

// TestTwoStateFSMFoldsNestedSwitch covers spec.md §8 Scenario B: an
// IDLE/RUN FSM whose next-state expression folds the two transition
// Switch cases into a nested Mux, and whose `busy` comb output reduces to
// an equality test against the RUN encoding.
func TestTwoStateFSMFoldsNestedSwitch(t *testing.T) {
	a := value.NewArena()
	sync := domain.New(a, "sync", domain.Pos, false, false)

	b := module.New(a)
	b.AddDomain(sync)

	state, err := b.EnterFSM("sync", "IDLE", []string{"IDLE", "RUN"})
	require.NoError(t, err)

	start := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "start"})
	done := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "done"})
	busy := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "busy"})

	require.NoError(t, b.EnterState("IDLE"))
	b.EnterIf(start)
	require.NoError(t, b.SetNext("RUN"))
	require.NoError(t, b.ExitIf())
	require.NoError(t, b.ExitState())

	require.NoError(t, b.EnterState("RUN"))
	b.EnterIf(done)
	require.NoError(t, b.SetNext("IDLE"))
	require.NoError(t, b.ExitIf())
	require.NoError(t, b.ExitState())

	require.NoError(t, b.ExitFSM())

	running, err := value.Eq(state, a.Const64(1, state.Shape()))
	require.NoError(t, err)
	require.NoError(t, b.AddAssignment("comb", busy, running))

	frag := buildFragment(t, b)

	nl, err := BuildNetlist(frag, nil)
	require.NoError(t, err)

	stateNet := findSignal(t, nl, state)
	assert.Equal(t, "sync", stateNet.Domain)
	assert.True(t, stateNet.IsRegister)
	// Two mutually-exclusive states fold into one outer Mux selecting
	// between each state's own (possibly further-nested) next-value.
	assert.Equal(t, state.Width(), stateNet.Next.Width())

	busyNet := findSignal(t, nl, busy)
	assert.Equal(t, domain.Comb, busyNet.Domain)
	assert.False(t, busyNet.IsRegister)
	assert.Equal(t, running, busyNet.Next)
}

// TestCrossDomainDriverConflictIsRejected covers spec.md §8's driver
// conflict scenario: the same signal bit driven from two different
// domains (here, a top-level comb driver and a subfragment's sync
// driver) must surface as a DriverConflictError at netlist build time.
func TestCrossDomainDriverConflictIsRejected(t *testing.T) {
	a := value.NewArena()

	sig := a.NewSignal(shape.Unsigned(4), value.SignalOptions{Name: "sig"})

	combAssign, err := stmt.Assign(sig, a.Const64(1, shape.Unsigned(4)))
	require.NoError(t, err)

	syncAssign, err := stmt.Assign(sig, a.Const64(2, shape.Unsigned(4)))
	require.NoError(t, err)

	child := &elaborate.Fragment{
		Path:    "top.child",
		Ports:   map[string]elaborate.Port{},
		Drivers: map[string][]stmt.Statement{"sync": {syncAssign}},
		Domains: map[string]domain.ClockDomain{"sync": domain.New(a, "sync", domain.Pos, false, false)},
	}

	root := &elaborate.Fragment{
		Path:         "top",
		Ports:        map[string]elaborate.Port{},
		Drivers:      map[string][]stmt.Statement{domain.Comb: {combAssign}},
		Subfragments: []elaborate.Subfragment{{Child: child, Name: "child"}},
	}

	nl, err := BuildNetlist(root, nil)
	require.Error(t, err)
	assert.Nil(t, nl)

	var conflict *diag.DriverConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.Comb, conflict.DomainA)
	assert.Equal(t, "sync", conflict.DomainB)
}

// TestAsyncResetDomainIsRejected covers spec.md §9 Open Question 2: an
// async-reset domain type-checks at the module-builder level but is
// rejected by the netlist builder with a DomainError naming the domain,
// rather than silently lowered as if it were synchronous.
func TestAsyncResetDomainIsRejected(t *testing.T) {
	a := value.NewArena()
	asyncSync := domain.New(a, "sync", domain.Pos, false, true)

	b := module.New(a)
	b.AddDomain(asyncSync)

	sig := a.NewSignal(shape.Unsigned(4), value.SignalOptions{Name: "sig"})
	require.NoError(t, b.AddAssignment("sync", sig, a.Const64(1, shape.Unsigned(4))))

	frag := buildFragment(t, b)

	nl, err := BuildNetlist(frag, nil)
	assert.Error(t, err)
	assert.Nil(t, nl)

	var domErr *diag.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "sync", domErr.DomainA)
}

// TestMemoryLeafRejectedWhenUnlowered ensures BuildNetlist refuses to
// process a Memory fragment that has not yet been run through
// rewrite.LowerMemory.
func TestMemoryLeafRejectedWhenUnlowered(t *testing.T) {
	addr := value.Value{}

	mem := &memory.Memory{
		Name:  "mem",
		Depth: 2,
		Shape: shape.Unsigned(4),
		ReadPorts: []memory.ReadPort{
			{Name: "r", Domain: domain.Comb, Addr: addr, Data: addr, Async: true},
		},
	}

	root := &elaborate.Fragment{
		Path:    "top",
		Ports:   map[string]elaborate.Port{},
		Drivers: map[string][]stmt.Statement{},
		Memory:  mem,
	}

	nl, err := BuildNetlist(root, nil)
	assert.Error(t, err)
	assert.Nil(t, nl)
}

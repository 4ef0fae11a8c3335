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

// Package simcompile implements the simulator's compilation step (spec.md
// §4.5): turning a resolved Netlist into a scheduled event-driven
// evaluation graph -- partitioned combinational/synchronous thunks, a
// topologically ordered combinational dependency graph, and the trigger
// map a run-time event loop (an external collaborator; not built here)
// would drive from.
package simcompile

import (
	"sort"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/netlist"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// CombThunk is one combinational signal's recomputation step (spec.md
// §4.5 step 3): Expr is evaluated from the current values of FanIn to
// produce Signal's new value.
type CombThunk struct {
	Signal value.Value
	Expr   value.Value
	FanIn  []value.Value
}

// RegisterUpdate is one register's next-state capture (spec.md §4.5 step
// 4): on the owning SyncBank's active clock edge, Signal's storage is
// overwritten with Next, subject to the bank's reset policy.
type RegisterUpdate struct {
	Signal value.Value
	Next   value.Value
}

// SyncBank groups every register driven by one clock domain, per spec.md
// §4.5 step 1's "registers grouped by (domain, clk_edge, reset)" --
// ClockDomain already carries clk_edge and reset together, so grouping by
// domain name is equivalent to grouping by that triple.
type SyncBank struct {
	Domain      string
	ClockDomain domain.ClockDomain
	Registers   []RegisterUpdate
}

// SimGraph is the result of CompileSimulation: combinational thunks in
// dependency order, synchronous register banks, and the trigger map from
// a changed signal to the combinational thunks it must wake.
type SimGraph struct {
	CombThunks []CombThunk
	SyncBanks  []SyncBank
	// TriggerMap maps a signal id to the indices, into CombThunks, of every
	// thunk whose expression reads that signal -- spec.md §4.5 step 5.
	TriggerMap map[uint64][]int
}

// CompileSimulation implements spec.md §4.5 end to end: partition,
// dependency graph + topological sort (cycles rejected, per §4.5 step 2
// and the explicit §8 testable-property expectation that implementations
// add this check), thunk emission, and trigger map construction.
func CompileSimulation(nl *netlist.Netlist) (*SimGraph, error) {
	combByID, combOrder := partitionComb(nl)

	order, err := topoSortComb(combOrder, combByID)
	if err != nil {
		return nil, err
	}

	thunks := make([]CombThunk, 0, len(order))
	indexOf := make(map[uint64]int, len(order))

	for _, id := range order {
		sn := combByID[id]
		fanIn := sortedFanIn(collectSignals(sn.Next))

		indexOf[id] = len(thunks)
		thunks = append(thunks, CombThunk{Signal: sn.Signal, Expr: sn.Next, FanIn: fanIn})
	}

	triggerMap := make(map[uint64][]int)

	for i, th := range thunks {
		for _, dep := range th.FanIn {
			triggerMap[dep.SignalID()] = append(triggerMap[dep.SignalID()], i)
		}
	}

	banks := buildSyncBanks(nl)

	return &SimGraph{CombThunks: thunks, SyncBanks: banks, TriggerMap: triggerMap}, nil
}

// partitionComb splits nl.Signals into the combinational subset, returned
// both as a lookup by signal id (for dependency-graph neighbor lookups)
// and as the signal-id-ascending discovery order BuildNetlist already
// established (spec.md §5's determinism requirement).
func partitionComb(nl *netlist.Netlist) (map[uint64]netlist.SignalNet, []uint64) {
	byID := make(map[uint64]netlist.SignalNet)

	var order []uint64

	for _, sn := range nl.Signals {
		if sn.IsRegister {
			continue
		}

		id := sn.Signal.SignalID()
		byID[id] = sn
		order = append(order, id)
	}

	return byID, order
}

func buildSyncBanks(nl *netlist.Netlist) []SyncBank {
	byDomain := make(map[string]*SyncBank)

	var names []string

	for _, sn := range nl.Signals {
		if !sn.IsRegister {
			continue
		}

		bank, ok := byDomain[sn.Domain]
		if !ok {
			bank = &SyncBank{Domain: sn.Domain, ClockDomain: nl.Domains[sn.Domain]}
			byDomain[sn.Domain] = bank
			names = append(names, sn.Domain)
		}

		bank.Registers = append(bank.Registers, RegisterUpdate{Signal: sn.Signal, Next: sn.Next})
	}

	sort.Strings(names)

	banks := make([]SyncBank, 0, len(names))
	for _, name := range names {
		banks = append(banks, *byDomain[name])
	}

	return banks
}

func sortedFanIn(byID map[uint64]value.Value) []value.Value {
	ids := make([]uint64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]value.Value, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}

	return out
}

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
package cmd

import (
	"fmt"
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/module"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// example is one named demo circuit the CLI can drive through the
// pipeline. Amaranth-Go is an embedded Go DSL, not a text format read off
// disk: there is no source file for elaborate/netlist/simulate to parse,
// so the CLI instead ships a small registry of hand-built circuits to
// exercise.
type example struct {
	name        string
	description string
	build       func() *module.Builder
}

var examples = []example{
	{
		name:        "counter",
		description: "an up-counter that increments on an enable signal",
		build:       buildCounterExample,
	},
	{
		name:        "fsm",
		description: "a two-state request/acknowledge FSM",
		build:       buildFSMExample,
	},
}

func findExample(name string) (example, error) {
	for _, ex := range examples {
		if ex.name == name {
			return ex, nil
		}
	}

	return example{}, fmt.Errorf("unknown example %q (known: %s)", name, exampleNames())
}

func exampleNames() string {
	names := ""
	for i, ex := range examples {
		if i > 0 {
			names += ", "
		}

		names += ex.name
	}

	return names
}

// buildCounterExample mirrors spec.md §8 scenario A: a synchronous counter
// that only advances while enabled, folding to a single Mux in the netlist.
func buildCounterExample() *module.Builder {
	a := value.NewArena()
	sync := domain.New(a, "sync", domain.Pos, false, false)

	b := module.New(a)
	b.AddDomain(sync)

	count := a.NewSignal(shape.Unsigned(16), value.SignalOptions{Name: "count", Init: big.NewInt(0)})
	en := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "en"})

	b.EnterIf(en)

	one := a.Const64(1, shape.Unsigned(16))

	sum, err := value.Add(count, one)
	if err != nil {
		panic(err)
	}

	if err := b.AddAssignment("sync", count, sum); err != nil {
		panic(err)
	}

	if err := b.ExitIf(); err != nil {
		panic(err)
	}

	return b
}

// buildFSMExample mirrors spec.md §8 scenario B: a two-state FSM whose
// "busy" output is a comb signal derived from the state register.
func buildFSMExample() *module.Builder {
	a := value.NewArena()
	sync := domain.New(a, "sync", domain.Pos, false, false)

	b := module.New(a)
	b.AddDomain(sync)

	state, err := b.EnterFSM("sync", "IDLE", []string{"IDLE", "RUN"})
	if err != nil {
		panic(err)
	}

	start := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "start"})
	done := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "done"})
	busy := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "busy"})

	if err := b.EnterState("IDLE"); err != nil {
		panic(err)
	}

	b.EnterIf(start)

	if err := b.SetNext("RUN"); err != nil {
		panic(err)
	}

	if err := b.ExitIf(); err != nil {
		panic(err)
	}

	if err := b.ExitState(); err != nil {
		panic(err)
	}

	if err := b.EnterState("RUN"); err != nil {
		panic(err)
	}

	b.EnterIf(done)

	if err := b.SetNext("IDLE"); err != nil {
		panic(err)
	}

	if err := b.ExitIf(); err != nil {
		panic(err)
	}

	if err := b.ExitState(); err != nil {
		panic(err)
	}

	if err := b.ExitFSM(); err != nil {
		panic(err)
	}

	running, err := value.Eq(state, a.Const64(1, state.Shape()))
	if err != nil {
		panic(err)
	}

	if err := b.AddAssignment("comb", busy, running); err != nil {
		panic(err)
	}

	return b
}

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
package rewrite

import (
	"fmt"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/memory"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// LowerMemory replaces every abstract Memory leaf fragment reachable from
// f with a fragment holding the backing row signals and the per-port
// read/write driver statements they desugar to, per spec.md §4.4's memory
// port semantics. Unlike FSMs (already plain Switch nodes at construction,
// per spec.md §4.3's table), memories need this dedicated pass because
// the abstract port descriptors in pkg/ir/memory carry no statements of
// their own until the row count (and hence the address decode) is known.
func LowerMemory() Rewriter {
	return func(f *elaborate.Fragment) error {
		return lowerMemories(f)
	}
}

func lowerMemories(f *elaborate.Fragment) error {
	if f.IsMemoryLeaf() {
		if err := lowerMemoryFragment(f); err != nil {
			return err
		}
	}

	for _, sub := range f.Subfragments {
		if err := lowerMemories(sub.Child); err != nil {
			return err
		}
	}

	return nil
}

func lowerMemoryFragment(f *elaborate.Fragment) error {
	m := f.Memory

	a := memoryArena(m)
	if a == nil {
		return &diag.SyntaxError{Entity: "Memory", Reason: m.Name + " has no ports to infer an arena from"}
	}

	rows := make([]value.Value, m.Depth)
	for i := 0; i < m.Depth; i++ {
		rows[i] = a.NewSignal(m.Shape, value.SignalOptions{
			Name: fmt.Sprintf("%s$row%d", m.Name, i),
			Init: m.InitRow(i),
		})
	}

	drivers := make(map[string][]stmt.Statement)

	for _, wp := range m.WritePorts {
		s, err := writePortStatement(rows, wp)
		if err != nil {
			return err
		}

		drivers[wp.Domain] = append(drivers[wp.Domain], s)
	}

	for _, rp := range m.ReadPorts {
		domainName, s, err := readPortStatement(rows, rp, m.WritePorts)
		if err != nil {
			return err
		}

		drivers[domainName] = append(drivers[domainName], s)
	}

	f.Drivers = drivers
	f.Domains = map[string]domain.ClockDomain{}
	f.Memory = nil

	return nil
}

// memoryArena finds the shared arena from any Value attached to m's ports;
// every Value in a single elaboration belongs to the same arena (spec.md
// §5's single-threaded, single-design-tree model).
func memoryArena(mem *memory.Memory) *value.Arena {
	for _, wp := range mem.WritePorts {
		if wp.Addr.IsValid() {
			return wp.Addr.Arena()
		}
	}

	for _, rp := range mem.ReadPorts {
		if rp.Addr.IsValid() {
			return rp.Addr.Arena()
		}
	}

	return nil
}

// writePortStatement builds the address-decoded conditional write, per
// spec.md §4.4: "when en is asserted on the active edge, row addr
// receives data." A Switch on addr with one case per row and no Default
// drives nothing when addr is out of range; nesting a Switch on en with no
// Default means nothing is driven at all unless the port is enabled --
// exactly the "no assignment this cycle" the netlist builder already
// treats as "hold current value" for synchronous bits.
func writePortStatement(rows []value.Value, wp memory.WritePort) (stmt.Statement, error) {
	enBool, err := value.Bool(wp.En)
	if err != nil {
		return stmt.Statement{}, err
	}

	cases := make([]stmt.Case, len(rows))

	for i, row := range rows {
		assign, err := stmt.Assign(row, wp.Data)
		if err != nil {
			return stmt.Statement{}, err
		}

		cases[i] = stmt.Case{
			Patterns: []value.Pattern{value.Int64Pattern(int64(i))},
			Body: []stmt.Statement{
				stmt.Switch(enBool, []stmt.Case{
					{Patterns: []value.Pattern{value.BitPattern("1")}, Body: []stmt.Statement{assign}},
				}),
			},
		}
	}

	return stmt.Switch(wp.Addr, cases), nil
}

// readPortStatement builds a read port's driving statement: a
// combinational ArrayProxy select for an asynchronous port, or (for a
// synchronous port) a registered read with optional write-to-read
// forwarding for ports named in TransparentFor.
func readPortStatement(rows []value.Value, rp memory.ReadPort, writePorts []memory.WritePort) (string, stmt.Statement, error) {
	selected, err := value.ArrayProxy(rows, rp.Addr)
	if err != nil {
		return "", stmt.Statement{}, err
	}

	if rp.Async {
		assign, err := stmt.Assign(rp.Data, selected)
		if err != nil {
			return "", stmt.Statement{}, err
		}

		return domain.Comb, assign, nil
	}

	forwarded := selected

	for _, ref := range rp.TransparentFor {
		wp, ok := findWritePort(writePorts, ref)
		if !ok {
			continue
		}

		sameAddr, err := value.Eq(wp.Addr, rp.Addr)
		if err != nil {
			return "", stmt.Statement{}, err
		}

		wpEnBool, err := value.Bool(wp.En)
		if err != nil {
			return "", stmt.Statement{}, err
		}

		bypass, err := value.And(sameAddr, wpEnBool)
		if err != nil {
			return "", stmt.Statement{}, err
		}

		forwarded, err = value.Mux(bypass, wp.Data, forwarded)
		if err != nil {
			return "", stmt.Statement{}, err
		}
	}

	enBool, err := value.Bool(rp.En)
	if err != nil {
		return "", stmt.Statement{}, err
	}

	assign, err := stmt.Assign(rp.Data, forwarded)
	if err != nil {
		return "", stmt.Statement{}, err
	}

	guarded := stmt.Switch(enBool, []stmt.Case{
		{Patterns: []value.Pattern{value.BitPattern("1")}, Body: []stmt.Statement{assign}},
	})

	return rp.Domain, guarded, nil
}

func findWritePort(ports []memory.WritePort, name string) (memory.WritePort, bool) {
	for _, wp := range ports {
		if wp.Name == name {
			return wp, true
		}
	}

	return memory.WritePort{}, false
}

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

// Package netlist implements the netlist builder (spec.md §4.4): it
// collapses a resolved Fragment tree into a net-oriented, driver-resolved
// representation by folding each domain's statement list into one priority
// expression per driven signal, detecting cross-domain driver conflicts,
// and collecting black-box instance leaves into wired net records.
package netlist

import (
	"fmt"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/instance"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// TopPort is one entry of the boundary interface passed to BuildNetlist,
// per spec.md §7's "build_netlist(fragment, top_ports) -> Netlist".
type TopPort struct {
	Name      string
	Signal    value.Value
	Direction elaborate.Direction
}

// SignalNet is one driven signal bit-group's resolved assignment, per
// spec.md §4.4 step 3: for a comb-domain signal, Next is its fully folded
// combinational expression; for a synchronous signal, Next is its
// *next*-state expression, registered in Domain on Domain's active clock
// edge.
type SignalNet struct {
	Signal     value.Value
	Domain     string
	Next       value.Value
	IsRegister bool
}

// InstanceNet is a black-box instance leaf, wired up with its hierarchical
// path, per spec.md §4.4's "Instance wiring."
type InstanceNet struct {
	Path       string
	Type       string
	Name       string
	Parameters map[string]instance.Param
	Inputs     map[string]value.Value
	Outputs    map[string]value.Value
	Inouts     map[string]value.Value
	Attrs      map[string]string
}

// Netlist is the result of BuildNetlist: every driven signal's resolved
// expression plus every instance leaf, in deterministic (signal id /
// discovery) order.
type Netlist struct {
	TopPorts  []TopPort
	Signals   []SignalNet
	Instances []InstanceNet
	Domains   map[string]domain.ClockDomain
}

// BuildNetlist collapses root into a Netlist, per spec.md §4.4. root must
// already have had any LowerMemory rewriter applied -- a remaining Memory
// leaf is rejected, since this builder only knows how to lower the
// primitive read/write driver statements LowerMemory produces, not the
// abstract port descriptors themselves (see DESIGN.md).
func BuildNetlist(root *elaborate.Fragment, topPorts []TopPort) (*Netlist, error) {
	nl := &Netlist{TopPorts: topPorts, Domains: make(map[string]domain.ClockDomain)}
	globalBits := make(map[string]*value.TargetBits)

	if err := buildFragment(root, nl, globalBits); err != nil {
		return nil, err
	}

	return nl, nil
}

func buildFragment(f *elaborate.Fragment, nl *Netlist, globalBits map[string]*value.TargetBits) error {
	if f.IsInstanceLeaf() {
		nl.Instances = append(nl.Instances, instanceNetFrom(f))
		return nil
	}

	if f.IsMemoryLeaf() {
		return &diag.ElaborationError{
			Path:   f.Path,
			Reason: "memory fragment reached the netlist builder unlowered; apply rewrite.LowerMemory first",
		}
	}

	for _, domainName := range sortedDomainNames(f.Drivers) {
		stmts := f.Drivers[domainName]
		if len(stmts) == 0 {
			continue
		}

		tb := computeDriverTargetBits(stmts)

		for _, other := range sortedDomainBitsKeys(globalBits) {
			if other == domainName {
				continue
			}

			if sig, bit, ok := tb.FirstConflict(globalBits[other]); ok {
				return &diag.DriverConflictError{
					Signal:  signalLabel(stmts, sig),
					Bit:     int(bit),
					DomainA: other,
					DomainB: domainName,
				}
			}
		}

		if existing, ok := globalBits[domainName]; ok {
			existing.Union(tb)
		} else {
			globalBits[domainName] = tb
		}

		isComb := domainName == domain.Comb

		if !isComb {
			if cd, ok := f.Domains[domainName]; ok {
				if cd.AsyncReset {
					return &diag.DomainError{
						Signal:  domainName,
						Bit:     -1,
						DomainA: domainName,
						Reason:  "asynchronous-reset domains are not implemented by the netlist builder",
					}
				}

				nl.Domains[domainName] = cd
			}
		}

		acc, err := evalDomain(stmts, make(map[value.Value]value.Value), make(map[value.Value]value.Value), isComb)
		if err != nil {
			return err
		}

		for _, sig := range sortedSignals(acc) {
			nl.Signals = append(nl.Signals, SignalNet{
				Signal:     sig,
				Domain:     domainName,
				Next:       acc[sig],
				IsRegister: !isComb,
			})
		}
	}

	for _, sub := range f.Subfragments {
		if err := buildFragment(sub.Child, nl, globalBits); err != nil {
			return err
		}
	}

	return nil
}

func instanceNetFrom(f *elaborate.Fragment) InstanceNet {
	inst := f.Instance

	return InstanceNet{
		Path:       f.Path,
		Type:       inst.Type,
		Name:       inst.Name,
		Parameters: inst.Parameters,
		Inputs:     inst.Inputs,
		Outputs:    inst.Outputs,
		Inouts:     inst.Inouts,
		Attrs:      inst.Attrs,
	}
}

// computeDriverTargetBits collects the union of ComputeTargetBits over
// every Assign statement's left-hand side directly in stmts, recursing
// into Switch case bodies, per spec.md §4.4's "verify every assigned
// signal bit is driven in at most one domain."
func computeDriverTargetBits(stmts []stmt.Statement) *value.TargetBits {
	out := value.NewTargetBits()

	var walk func([]stmt.Statement)
	walk = func(list []stmt.Statement) {
		for _, s := range list {
			switch s.Kind() {
			case stmt.KindAssign:
				out.Union(value.ComputeTargetBits(s.Lhs()))
			case stmt.KindSwitch:
				for _, c := range s.Cases() {
					walk(c.Body)
				}
			}
		}
	}

	walk(stmts)

	return out
}

// signalLabel names the offending signal for a DriverConflictError,
// looking up its declared name through whichever statement's arena is
// reachable; falls back to a synthesized id-based label.
func signalLabel(stmts []stmt.Statement, signalID uint64) string {
	for _, s := range stmts {
		if s.Kind() == stmt.KindAssign && s.Lhs().IsValid() {
			return s.Lhs().Arena().SignalName(signalID)
		}
	}

	return fmt.Sprintf("sig$%d", signalID)
}

func sortedDomainNames(drivers map[string][]stmt.Statement) []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}

	sortStrings(names)

	return names
}

func sortedDomainBitsKeys(m map[string]*value.TargetBits) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sortStrings(names)

	return names
}

func sortedSignals(acc map[value.Value]value.Value) []value.Value {
	out := make([]value.Value, 0, len(acc))
	for sig := range acc {
		out = append(out, sig)
	}

	sortValuesBySignalID(out)

	return out
}

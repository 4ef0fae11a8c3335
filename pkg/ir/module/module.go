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

// Package module implements the Module/Statement builder (spec.md §4.2):
// a mutable scope stack that accumulates a per-domain statement tree as
// user code enters and exits nested If/Switch/FSM scopes, the same way
// pkg/corset's scope.go accumulates a tree of lexical bindings as the
// parser descends into nested blocks.
package module

import (
	"fmt"
	"sort"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// Elaboratable is the minimal capability a submodule must implement, per
// spec.md §3.5's "child: Elaboratable|Instance". Defined here (rather than
// in pkg/ir/elaborate) so that this package never has to import the
// elaborator -- the dependency runs the other way.
type Elaboratable interface {
	Elaborate(platform any) (any, error)
}

// Submodule is one entry of a Module's ordered submodule list.
type Submodule struct {
	Name  string
	Child any
}

// Module is the sealed result of a Builder's construction phase, per
// spec.md §3.5: per-domain statement lists, submodules, and declared
// local clock domains. Immutable once produced by Builder.Build.
type Module struct {
	Domains     []domain.ClockDomain
	Submodules  []Submodule
	DomainNames []string
	Statements  map[string][]stmt.Statement
}

// Builder incrementally constructs a Module, per spec.md §4.2. The zero
// Builder is not usable; construct with New.
type Builder struct {
	arena       *value.Arena
	domains     []domain.ClockDomain
	submodules  []Submodule
	driverMap   map[string]*value.TargetBits
	stack       []*frame
	ifStack     []*ifChain
	switchStack []*switchBuild
	fsmStack    []*fsmBuilder
	anonCount   int
}

// New constructs an empty Builder. Values assigned through it must belong
// to arena.
func New(arena *value.Arena) *Builder {
	b := &Builder{arena: arena, driverMap: make(map[string]*value.TargetBits)}
	b.stack = []*frame{newFrame(frameTop)}

	return b
}

// AddDomain declares a local clock domain, per spec.md §4.2's
// "add_domain(cd)".
func (b *Builder) AddDomain(cd domain.ClockDomain) {
	b.domains = append(b.domains, cd)
}

// AddSubmodule stores child as an ordered submodule, per spec.md §4.2.
// An empty name is replaced with the next auto-generated "U$<n>".
func (b *Builder) AddSubmodule(name string, child any) string {
	if name == "" {
		name = fmt.Sprintf("U$%d", b.anonCount)
		b.anonCount++
	}

	b.submodules = append(b.submodules, Submodule{Name: name, Child: child})

	return name
}

// AddAssignment appends lhs = rhs to the currently open scope within
// domainName's statement list, per spec.md §4.2. It is an error if lhs is
// not assignable, or if any bit of target_bits(lhs) is already driven in
// a different domain anywhere in the module (a driver-driver conflict).
func (b *Builder) AddAssignment(domainName string, lhs, rhs value.Value) error {
	s, err := stmt.Assign(lhs, rhs)
	if err != nil {
		return err
	}

	tb := value.ComputeTargetBits(lhs)

	for otherDomain, otherBits := range b.driverMap {
		if otherDomain == domainName {
			continue
		}

		if sig, bit, ok := tb.FirstConflict(otherBits); ok {
			return &diag.DomainError{
				Signal:  b.arena.SignalName(sig),
				Bit:     int(bit),
				DomainA: otherDomain,
				DomainB: domainName,
				Reason:  "signal bit driven in two different domains",
			}
		}
	}

	if existing, ok := b.driverMap[domainName]; ok {
		existing.Union(tb)
	} else {
		b.driverMap[domainName] = tb
	}

	b.top().addStatement(domainName, s)

	return nil
}

func (b *Builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *Builder) push(f *frame) {
	b.stack = append(b.stack, f)
}

func (b *Builder) pop() *frame {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]

	return f
}

// Build seals the Builder into an immutable Module, per spec.md §3.5's
// "sealed when its parent's elaborate() returns". The Builder must have
// no open scopes (a mismatched Enter*/Exit* pair is a programmer error).
func (b *Builder) Build() (Module, error) {
	if len(b.stack) != 1 || len(b.ifStack) != 0 || len(b.switchStack) != 0 || len(b.fsmStack) != 0 {
		return Module{}, &diag.SyntaxError{Entity: "Module", Reason: "unclosed scope at end of construction"}
	}

	names := make([]string, 0, len(b.driverMap))
	for name := range b.driverMap {
		names = append(names, name)
	}

	sort.Strings(names)

	return Module{
		Domains:     b.domains,
		Submodules:  b.submodules,
		DomainNames: names,
		Statements:  b.top().perDomain,
	}, nil
}

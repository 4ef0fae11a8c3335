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

// Package domain implements ClockDomain (spec.md §3.4): the (clock, reset,
// edge polarity) triple that every synchronous driver belongs to.
package domain

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// Edge is the active clock edge of a domain.
type Edge uint8

const (
	Pos Edge = iota
	Neg
)

// String renders the edge as it appears in diagnostics.
func (e Edge) String() string {
	if e == Neg {
		return "neg"
	}

	return "pos"
}

// Comb is the name of the predefined, clockless combinational domain
// (spec.md §3.4: "The domain comb is predefined and has no clock; all
// others are synchronous.").
const Comb = "comb"

// ClockDomain is (name, clk, rst, clk_edge, async_reset, local), per
// spec.md §3.4. Rst is the zero Value (IsValid() == false) for a
// reset-less domain.
type ClockDomain struct {
	Name       string
	Clk        value.Value
	Rst        value.Value
	ClkEdge    Edge
	AsyncReset bool
	Local      bool
}

// HasReset reports whether this domain declares a reset signal.
func (d ClockDomain) HasReset() bool { return d.Rst.IsValid() }

// New constructs a synchronous ClockDomain named name, allocating fresh
// clk (and, unless resetLess, rst) signals of shape (1, unsigned) in a.
func New(a *value.Arena, name string, edge Edge, resetLess, asyncReset bool) ClockDomain {
	cd := ClockDomain{
		Name:       name,
		Clk:        a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: name + "_clk"}),
		ClkEdge:    edge,
		AsyncReset: asyncReset,
	}

	if !resetLess {
		cd.Rst = a.NewSignal(cd.Clk.Shape(), value.SignalOptions{Name: name + "_rst"})
	}

	return cd
}

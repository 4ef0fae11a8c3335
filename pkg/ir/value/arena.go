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

// Package value implements the Amaranth value algebra (spec.md §3.2): an
// immutable expression DAG of Const, Signal, Operator, Slice, Part, Concat,
// Replicate, ArrayProxy, ClockSignal, ResetSignal, AnyConst/AnyValue and
// Initial nodes, with per-operator shape inference (§3.2.1) and constant
// folding on construction (§4.1).
//
// Nodes are owned by an Arena (a slice of nodes indexed by ID), per the
// design note in spec.md §9: "Value DAG ownership... use an arena (vector of
// nodes + indices) to own them; the Value surface type is an index plus a
// shape cache." This sidesteps cyclic-ownership concerns and gives every
// Value a stable, hashable identity -- two Values naming the same (arena,
// id) pair are the identical node, usable directly as a map key wherever
// the netlist builder needs reference identity (spec.md §3.2 invariants).
package value

import (
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

type kind uint8

const (
	kindConst kind = iota
	kindSignal
	kindOperator
	kindSlice
	kindPart
	kindConcat
	kindReplicate
	kindArrayProxy
	kindClockSignal
	kindResetSignal
	kindAnyConst
	kindAnyValue
	kindInitial
)

// node is the internal, arena-owned representation of one Value. Only the
// fields relevant to node.kind are populated; the rest are zero.
type node struct {
	kind  kind
	shape shape.Shape
	loc   diag.SourceLoc

	// Const
	constVal *big.Int

	// Signal
	signalID  uint64
	name      string
	init      *big.Int
	resetLess bool

	// Operator
	op       Op
	operands []ID

	// Slice: base[start:stop)
	base        ID
	start, stop uint32

	// Part: base.bit_select(offsetVal, width) with optional stride
	offsetVal ID
	width     uint32
	stride    int32

	// Concat / ArrayProxy
	parts []ID

	// Replicate
	count uint32

	// ArrayProxy
	index ID

	// ClockSignal / ResetSignal
	domain         string
	allowResetLess bool
}

// ID identifies a node within an Arena: its index, starting at 0 for the
// first node allocated. InvalidID marks "no value".
type ID int32

// InvalidID is never assigned to a real node.
const InvalidID ID = -1

// Arena owns a set of Value nodes. The zero Arena is ready to use, except
// that Warnings() will be nil until NewArena populates it.
type Arena struct {
	nodes        []node
	nextSignalID uint64
	warnings     *diag.Reporter
}

// NewArena constructs an empty arena.
func NewArena() *Arena {
	return &Arena{warnings: diag.NewReporter()}
}

// Warnings returns the one-shot warning reporter shared by every value
// constructed in this arena (spec.md §7).
func (a *Arena) Warnings() *diag.Reporter {
	return a.warnings
}

func (a *Arena) alloc(n node) ID {
	a.nodes = append(a.nodes, n)
	return ID(len(a.nodes) - 1)
}

func (a *Arena) get(id ID) *node {
	return &a.nodes[id]
}

// Value is a handle to a node owned by some Arena: an index plus enough
// context to query its shape and structure without re-walking the arena
// from the root. Two Values compare equal (with ==) iff they reference the
// same arena and the same node -- i.e. iff they are the identical DAG node,
// per spec.md §3.2's "Identity... is by object reference" invariant.
type Value struct {
	arena *Arena
	id    ID
}

// IsValid reports whether v actually references a node (the zero Value
// does not).
func (v Value) IsValid() bool {
	return v.arena != nil && v.id != InvalidID
}

func (v Value) node() *node {
	return v.arena.get(v.id)
}

// Shape returns this value's (width, signed) pair, computed (or cached at
// construction time) per spec.md §3.2's shape rules.
func (v Value) Shape() shape.Shape {
	return v.node().shape
}

// Width is shorthand for Shape().Width.
func (v Value) Width() uint32 { return v.Shape().Width }

// Signed is shorthand for Shape().Signed.
func (v Value) Signed() bool { return v.Shape().Signed }

// SourceLoc returns the optional source-location attribute attached at
// construction, or the zero SourceLoc if none was given.
func (v Value) SourceLoc() diag.SourceLoc { return v.node().loc }

// Arena returns the owning arena, so further values can be constructed in
// the same DAG.
func (v Value) Arena() *Arena { return v.arena }

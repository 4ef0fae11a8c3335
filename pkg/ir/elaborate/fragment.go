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

// Package elaborate implements the elaboration driver (spec.md §4.3):
// the depth-first walk that turns a root elaboratable into a Fragment
// tree, plus the Direction type. The fragment-level tree rewriters that
// operate on its output live in package rewrite.
package elaborate

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/instance"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/memory"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// Direction is a port's signal-flow direction relative to its owning
// fragment, per spec.md §3.6.
type Direction uint8

const (
	DirIn Direction = iota
	DirOut
	DirInout
)

// Flip returns the opposite-facing direction, as seen from the other
// side of the port connection (in <-> out; inout is its own flip).
func (d Direction) Flip() Direction {
	switch d {
	case DirIn:
		return DirOut
	case DirOut:
		return DirIn
	default:
		return DirInout
	}
}

// Port is one named port of a Fragment.
type Port struct {
	Signal    value.Value
	Direction Direction
}

// Subfragment is one entry of a Fragment's ordered submodule list.
type Subfragment struct {
	Child *Fragment
	Name  string
}

// Fragment is the flattened intermediate produced by elaboration, per
// spec.md §3.6.
type Fragment struct {
	Path         string
	Ports        map[string]Port
	Drivers      map[string][]stmt.Statement
	Subfragments []Subfragment
	Domains      map[string]domain.ClockDomain
	Attributes   map[string]any
	Instance     *instance.Instance
	Memory       *memory.Memory
}

// IsInstanceLeaf reports whether this fragment is a black-box Instance
// leaf rather than a Module-derived fragment.
func (f *Fragment) IsInstanceLeaf() bool { return f.Instance != nil }

// IsMemoryLeaf reports whether this fragment is an abstract Memory leaf,
// not yet expanded by LowerMemory.
func (f *Fragment) IsMemoryLeaf() bool { return f.Memory != nil }

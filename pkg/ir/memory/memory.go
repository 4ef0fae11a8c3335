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

// Package memory implements the abstract Memory submodule (spec.md §4.4):
// a backing storage block plus a set of named read and write ports,
// expanded into primitive register/driver records by
// pkg/ir/rewrite.LowerMemory. It is a submodule kind like pkg/ir/instance
// is, given its own package for the same reason: pkg/ir/elaborate and
// pkg/ir/rewrite both need to name it without importing one another.
package memory

import (
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// WritePort is one write port of a Memory, per spec.md §4.4: "when en is
// asserted on the active edge, row addr receives data."
type WritePort struct {
	Name   string
	Domain string
	Addr   value.Value
	Data   value.Value
	En     value.Value
}

// ReadPort is one read port of a Memory, per spec.md §4.4. A synchronous
// port (Async == false) contributes a register; an asynchronous port binds
// its data output combinationally. TransparentFor names WritePorts (by
// Name) whose same-cycle write to the same address should be forwarded to
// this port's output instead of the pre-write row content.
type ReadPort struct {
	Name           string
	Domain         string
	Addr           value.Value
	Data           value.Value
	En             value.Value
	Async          bool
	TransparentFor []string
}

// Memory is the abstract backing block plus its ports, per spec.md §4.4's
// "MemoryData block has (depth, shape, init_rows[depth])".
type Memory struct {
	Name       string
	Depth      int
	Shape      shape.Shape
	Init       []*big.Int
	WritePorts []WritePort
	ReadPorts  []ReadPort
}

// Validate checks the structural invariants LowerMemory relies on: a
// positive depth, an init list no longer than the depth, and every
// TransparentFor reference naming an actual write port.
func (m Memory) Validate() error {
	if m.Depth <= 0 {
		return &diag.ShapeError{Entity: "Memory", Reason: "depth must be positive"}
	}

	if len(m.Init) > m.Depth {
		return &diag.ShapeError{Entity: "Memory", Reason: "init row count exceeds depth"}
	}

	names := make(map[string]bool, len(m.WritePorts))
	for _, wp := range m.WritePorts {
		names[wp.Name] = true
	}

	for _, rp := range m.ReadPorts {
		for _, ref := range rp.TransparentFor {
			if !names[ref] {
				return &diag.SyntaxError{
					Entity: "Memory",
					Reason: "read port " + rp.Name + " names unknown transparent write port " + ref,
				}
			}
		}
	}

	return nil
}

// InitRow returns the init value for row i, or zero if Init does not cover
// it -- per spec.md §3.6's "a signal used but never driven is equivalent to
// its init constant", applied here to an unlisted memory row.
func (m Memory) InitRow(i int) *big.Int {
	if i < len(m.Init) && m.Init[i] != nil {
		return m.Init[i]
	}

	return big.NewInt(0)
}

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
package value

import (
	"fmt"
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

// SignalOptions configures signal construction, per spec.md §6.4's
// "Signal construction options".
type SignalOptions struct {
	Name      string
	Init      *big.Int
	ResetLess bool
	SrcLoc    diag.SourceLoc
}

// NewSignal allocates a fresh Signal node with a stable, monotonically
// increasing id (spec.md §3.2, §5: "Signal ids are allocated monotonically
// as signals are created"). When opts.Name is empty a stable default name
// "sig$<id>" is generated, per spec.md §9's note that auto-naming by
// source-variable introspection is a UX aid this implementation replaces
// with explicit or default names.
func (a *Arena) NewSignal(s shape.ShapeLike, opts SignalOptions) Value {
	sh := s.Shape()
	id := a.nextSignalID
	a.nextSignalID++

	init := opts.Init
	if init == nil {
		init = big.NewInt(0)
	}

	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("sig$%d", id)
	}

	nodeID := a.alloc(node{
		kind:      kindSignal,
		shape:     sh,
		signalID:  id,
		name:      name,
		init:      truncate(init, sh),
		resetLess: opts.ResetLess,
		loc:       opts.SrcLoc,
	})

	return Value{a, nodeID}
}

// IsSignal reports whether v is a Signal node.
func (v Value) IsSignal() bool {
	return v.node().kind == kindSignal
}

// SignalID returns the stable unique id assigned at creation time. Panics if
// v is not a Signal.
func (v Value) SignalID() uint64 {
	n := v.node()
	if n.kind != kindSignal {
		panic("value: SignalID called on non-Signal node")
	}

	return n.signalID
}

// Name returns a Signal's declared (or default-generated) name. Panics if v
// is not a Signal.
func (v Value) Name() string {
	n := v.node()
	if n.kind != kindSignal {
		panic("value: Name called on non-Signal node")
	}

	return n.name
}

// Init returns a Signal's reset/init value. Panics if v is not a Signal.
func (v Value) Init() *big.Int {
	n := v.node()
	if n.kind != kindSignal {
		panic("value: Init called on non-Signal node")
	}

	return new(big.Int).Set(n.init)
}

// IsResetLess reports whether a Signal was declared reset_less. Panics if v
// is not a Signal.
func (v Value) IsResetLess() bool {
	n := v.node()
	if n.kind != kindSignal {
		panic("value: IsResetLess called on non-Signal node")
	}

	return n.resetLess
}

// SignalName looks up the declared (or default-generated) name of the
// signal with the given id, for use in diagnostics where only the id
// survived (e.g. a TargetBits conflict). Returns a synthesized
// "sig$<id>" if no such signal exists in this arena.
func (a *Arena) SignalName(id uint64) string {
	for i := range a.nodes {
		if a.nodes[i].kind == kindSignal && a.nodes[i].signalID == id {
			return a.nodes[i].name
		}
	}

	return fmt.Sprintf("sig$%d", id)
}

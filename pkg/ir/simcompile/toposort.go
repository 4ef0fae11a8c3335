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
package simcompile

import (
	"sort"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/netlist"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// color marks a vertex's visitation state during depth-first traversal:
// white (unvisited), gray (on the current recursion stack), black
// (finished). A gray vertex reached again is a back-edge -- a cycle.
type color uint8

const (
	white color = iota
	gray
	black
)

// topoSortComb orders order's signal ids so that every signal appears
// after every other combinational signal its own driving expression
// reads, per spec.md §4.5 step 2. Only edges between two combinational
// signals are tracked: a reference to a register or a top-level input
// port is a leaf for this graph's purposes, since its value is already
// settled before combinational thunks run this step.
//
// Implemented as a direct depth-first search rather than adopting a
// general-purpose graph package: the one candidate in the retrieved
// reference material (a directed-graph library with its own topological
// sort) ships internally inconsistent vertex/edge APIs across its own
// files and so cannot be trusted as a stable surface to build against
// (see DESIGN.md). The traversal itself still follows that package's own
// white/gray/black post-order-reversal shape.
func topoSortComb(order []uint64, byID map[uint64]netlist.SignalNet) ([]uint64, error) {
	state := make(map[uint64]color, len(order))
	result := make([]uint64, 0, len(order))

	var visit func(id uint64, stack []uint64) error

	visit = func(id uint64, stack []uint64) error {
		switch state[id] {
		case black:
			return nil
		case gray:
			// Only the stack entries from id onwards lie on the cycle; any
			// earlier entries merely lead into it.
			start := 0
			for i, s := range stack {
				if s == id {
					start = i
					break
				}
			}

			return &diag.CombFeedbackError{Cycle: cycleNames(stack[start:], byID)}
		}

		state[id] = gray
		stack = append(stack, id)

		sn, ok := byID[id]
		if ok {
			for _, depID := range sortedDepIDs(collectSignals(sn.Next)) {
				if _, isComb := byID[depID]; !isComb {
					continue
				}

				if err := visit(depID, stack); err != nil {
					return err
				}
			}
		}

		state[id] = black
		result = append(result, id)

		return nil
	}

	for _, id := range order {
		if state[id] == white {
			if err := visit(id, nil); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func sortedDepIDs(signals map[uint64]value.Value) []uint64 {
	ids := make([]uint64, 0, len(signals))
	for id := range signals {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func cycleNames(stack []uint64, byID map[uint64]netlist.SignalNet) []string {
	names := make([]string, 0, len(stack))

	for _, id := range stack {
		if sn, ok := byID[id]; ok {
			names = append(names, sn.Signal.Arena().SignalName(id))
		}
	}

	return names
}

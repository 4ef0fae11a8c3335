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

// Package rewrite implements the fragment-level tree rewriters of spec.md
// §4.3: DomainRenamer, ResetInserter, EnableInserter, and LowerMemory.
// Each is a Rewriter, a function from a Fragment (mutated in place) to an
// error; Apply composes a pipeline of them the same way pkg/corset's
// compiler composes a sequence of module-lowering passes over a schema.
package rewrite

import "github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"

// Rewriter transforms a fragment tree in place, per spec.md §4.3's
// "Rewriters operate on fragments... and compose as function pipelines."
type Rewriter func(f *elaborate.Fragment) error

// Apply runs each rewriter over f in order. A rewriter that recurses into
// subfragments (all of the ones in this package do) applies to the whole
// tree rooted at f, not just f itself.
func Apply(f *elaborate.Fragment, rewriters ...Rewriter) error {
	for _, rw := range rewriters {
		if err := rw(f); err != nil {
			return err
		}
	}

	return nil
}

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
package module

import (
	"sort"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
)

type frameKind uint8

const (
	frameTop frameKind = iota
	frameBody
)

// frame is one level of the scope stack: a per-domain accumulator for
// statements added while this scope is open. If/Switch/FSM bookkeeping
// (pending branches, cases, states) lives in ifChain/switchBuild/
// fsmBuilder, each of which pushes and pops plain frames for its
// branches' bodies -- the frame itself doesn't need to know which kind of
// scope it belongs to.
type frame struct {
	kind      frameKind
	perDomain map[string][]stmt.Statement
}

func newFrame(k frameKind) *frame {
	return &frame{kind: k, perDomain: make(map[string][]stmt.Statement)}
}

func (f *frame) addStatement(domainName string, s stmt.Statement) {
	f.perDomain[domainName] = append(f.perDomain[domainName], s)
}

// domainNames returns the sorted set of domains with at least one
// statement in this frame, for deterministic Switch assembly.
func (f *frame) domainNames() []string {
	names := make([]string, 0, len(f.perDomain))
	for name := range f.perDomain {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

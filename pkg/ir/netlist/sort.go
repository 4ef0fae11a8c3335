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
package netlist

import (
	"sort"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

func sortStrings(s []string) {
	sort.Strings(s)
}

// sortValuesBySignalID orders signals ascending by their stable id, per
// spec.md §5's determinism requirement.
func sortValuesBySignalID(vs []value.Value) {
	sort.Slice(vs, func(i, j int) bool {
		return vs[i].SignalID() < vs[j].SignalID()
	})
}

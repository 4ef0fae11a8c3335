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

// RenameDomains walks every node reachable from v and, for each
// ClockSignal/ResetSignal node whose domain name is a key of renameMap,
// rewrites its domain tag to the mapped name in place -- per spec.md
// §4.3's DomainRenamer rewriter contract ("Replaces every ClockSignal(d) /
// ResetSignal(d) / domain tag d with map[d]... identity if unmapped").
// Nodes are mutated directly rather than rebuilt, since a ClockSignal or
// ResetSignal carries no other state that depends on its domain tag; seen
// guards against revisiting a node reachable along more than one path
// through the shared arena DAG.
func RenameDomains(v Value, renameMap map[string]string) {
	if len(renameMap) == 0 || !v.IsValid() {
		return
	}

	seen := make(map[ID]bool)
	renameDomainsRec(v, renameMap, seen)
}

func renameDomainsRec(v Value, renameMap map[string]string, seen map[ID]bool) {
	if seen[v.id] {
		return
	}

	seen[v.id] = true

	n := v.node()

	switch n.kind {
	case kindClockSignal, kindResetSignal:
		if mapped, ok := renameMap[n.domain]; ok {
			n.domain = mapped
		}
	case kindOperator:
		for _, op := range v.Operands() {
			renameDomainsRec(op, renameMap, seen)
		}
	case kindSlice, kindReplicate:
		renameDomainsRec(v.Base(), renameMap, seen)
	case kindPart:
		renameDomainsRec(v.Base(), renameMap, seen)
		renameDomainsRec(v.PartOffset(), renameMap, seen)
	case kindConcat:
		for _, p := range v.Parts() {
			renameDomainsRec(p, renameMap, seen)
		}
	case kindArrayProxy:
		for _, e := range v.Elements() {
			renameDomainsRec(e, renameMap, seen)
		}
		renameDomainsRec(v.Index(), renameMap, seen)
	default:
		// Const, Signal, AnyConst, AnyValue, Initial: leaves with no
		// sub-values to recurse into.
	}
}

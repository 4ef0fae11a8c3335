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
package stmt

import "github.com/amaranth-hdl/amaranth-go/pkg/ir/value"

// TargetBits returns the set of (signal, bit) pairs s may write, per
// spec.md §3.3: an Assign contributes its lhs's target bits; a Switch
// contributes the union of every branch's (cases and default) target
// bits; Print/Assert/Assume/Cover write nothing.
func TargetBits(s Statement) *value.TargetBits {
	switch s.kind {
	case KindAssign:
		return value.ComputeTargetBits(s.lhs)
	case KindSwitch:
		out := value.NewTargetBits()
		for _, c := range s.cases {
			out.Union(ListTargetBits(c.Body))
		}

		return out
	default:
		return value.NewTargetBits()
	}
}

// ListTargetBits unions TargetBits over a statement list, e.g. one
// domain's full body or one Case's body.
func ListTargetBits(stmts []Statement) *value.TargetBits {
	out := value.NewTargetBits()
	for _, s := range stmts {
		out.Union(TargetBits(s))
	}

	return out
}

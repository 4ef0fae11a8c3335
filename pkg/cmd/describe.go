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
package cmd

import (
	"fmt"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// describeExpr renders a one-line summary of v's outermost node, for the
// report tables -- not a full expression printer (no back-end text emitter
// is in scope), just enough to show the shape of a folded driver
// expression at a glance.
func describeExpr(v value.Value) string {
	switch {
	case v.IsSignal():
		return fmt.Sprintf("Signal(%s)", v.Name())
	case v.IsConst():
		return "Const"
	case v.IsOperator():
		return fmt.Sprintf("%s(%d operands)", v.Op(), len(v.Operands()))
	case v.IsConcat():
		return fmt.Sprintf("Concat(%d parts)", len(v.Parts()))
	case v.IsSlice():
		return "Slice"
	case v.IsPart():
		return "Part"
	case v.IsReplicate():
		return "Replicate"
	case v.IsArrayProxy():
		return fmt.Sprintf("ArrayProxy(%d elements)", len(v.Elements()))
	case v.IsClockSignal():
		return "ClockSignal"
	case v.IsResetSignal():
		return "ResetSignal"
	case v.IsAnyConst():
		return "AnyConst"
	case v.IsAnyValue():
		return "AnyValue"
	case v.IsInitial():
		return "Initial"
	default:
		return "?"
	}
}

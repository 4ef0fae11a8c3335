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

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

// ShiftWidthCeiling bounds the result width a variable left-shift may
// produce (spec.md §5: "Result widths beyond an implementation-defined
// ceiling (recommended: 65536) must raise a shape error rather than being
// emitted.").
const ShiftWidthCeiling = 65536

// inferShape computes the result shape of applying op to operands of the
// given shapes, per spec.md §3.2.1's operator table.
func inferShape(op Op, operands []shape.Shape) (shape.Shape, error) {
	switch op {
	case OpAdd, OpSub:
		a, b := operands[0], operands[1]
		return shape.Shape{Width: max32(a.Width, b.Width) + 1, Signed: a.Signed || b.Signed}, nil
	case OpNeg:
		a := operands[0]
		return shape.Shape{Width: a.Width + 1, Signed: true}, nil
	case OpMul:
		a, b := operands[0], operands[1]
		return shape.Shape{Width: a.Width + b.Width, Signed: a.Signed || b.Signed}, nil
	case OpFloorDiv, OpMod:
		a, b := operands[0], operands[1]
		extra := uint32(0)
		signed := a.Signed || b.Signed
		if signed {
			extra = 1
		}

		return shape.Shape{Width: a.Width + extra, Signed: signed}, nil
	case OpAnd, OpOr, OpXor:
		a, b := operands[0], operands[1]
		return shape.Shape{Width: max32(a.Width, b.Width), Signed: a.Signed || b.Signed}, nil
	case OpNot:
		return operands[0], nil
	case OpShl:
		a, b := operands[0], operands[1]

		if b.Width >= 32 {
			return shape.Shape{}, &diag.ShapeError{Entity: "<<", Reason: fmt.Sprintf("shift amount width %d too large to bound result width", b.Width)}
		}

		extra := (uint64(1) << b.Width) - 1
		width := uint64(a.Width) + extra

		if width > ShiftWidthCeiling {
			return shape.Shape{}, &diag.ShapeError{
				Entity: "<<",
				Reason: fmt.Sprintf("result width %d exceeds ceiling %d", width, ShiftWidthCeiling),
			}
		}

		return shape.Shape{Width: uint32(width), Signed: a.Signed}, nil
	case OpShr:
		a := operands[0]
		return shape.Shape{Width: a.Width, Signed: a.Signed}, nil
	default:
		if isComparison(op) || isReduction(op) {
			return shape.Unsigned(1), nil
		}

		switch op {
		case OpAsSigned:
			return shape.Signed(operands[0].Width), nil
		case OpAsUnsigned:
			return shape.Unsigned(operands[0].Width), nil
		case OpMux:
			a, b := operands[1], operands[2]
			return shape.Shape{Width: max32(a.Width, b.Width), Signed: a.Signed || b.Signed}, nil
		}
	}

	return shape.Shape{}, &diag.ShapeError{Entity: op.String(), Reason: "unrecognised operator"}
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}

	return b
}

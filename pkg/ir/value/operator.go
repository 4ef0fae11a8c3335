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

// newOperator is the single construction path for every Operator node. It
// width-checks the arity, infers the result shape per spec.md §3.2.1, and
// folds the result to a Const when every operand is itself a Const
// (spec.md §4.1's "constant folding on construction").
func newOperator(op Op, args ...Value) (Value, error) {
	if len(args) != op.Arity() {
		return Value{}, &diag.SyntaxError{Entity: op.String(), Reason: fmt.Sprintf("expected %d operands, got %d", op.Arity(), len(args))}
	}

	a := sharedArena(args...)
	shapes := make([]shape.Shape, len(args))
	allConst := true

	for i, arg := range args {
		shapes[i] = arg.Shape()

		if !arg.IsConst() {
			allConst = false
		}
	}

	result, err := inferShape(op, shapes)
	if err != nil {
		return Value{}, err
	}

	if allConst {
		return a.foldOperator(op, args, shapes, result), nil
	}

	ids := make([]ID, len(args))
	for i, arg := range args {
		ids[i] = arg.id
	}

	id := a.alloc(node{kind: kindOperator, shape: result, op: op, operands: ids})

	return Value{a, id}, nil
}

// sharedArena returns the arena common to all of vs, panicking if vs mix
// values from distinct arenas (a programmer error: values must be built up
// within a single design's arena).
func sharedArena(vs ...Value) *Arena {
	if len(vs) == 0 {
		panic("value: sharedArena called with no operands")
	}

	a := vs[0].arena
	for _, v := range vs[1:] {
		if v.arena != a {
			panic("value: operands belong to different arenas")
		}
	}

	return a
}

// foldOperator evaluates op over constant operands and allocates the single
// resulting Const node, truncated into result per spec.md §4.1.
func (a *Arena) foldOperator(op Op, args []Value, shapes []shape.Shape, result shape.Shape) Value {
	vals := make([]*big.Int, len(args))
	for i, arg := range args {
		vals[i] = arg.ConstValue()
	}

	folded := evalConstOp(op, vals, shapes)
	id := a.alloc(node{kind: kindConst, shape: result, constVal: truncate(folded, result)})

	return Value{a, id}
}

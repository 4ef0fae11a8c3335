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
	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

// ArrayProxy selects one of elements by indexVal, per spec.md §3.2: the
// result shape covers all elements (the smallest shape that can represent
// every element's own shape, widened to their common width/signedness).
func ArrayProxy(elements []Value, indexVal Value) (Value, error) {
	if len(elements) == 0 {
		return Value{}, &diag.ShapeError{Entity: "ArrayProxy", Reason: "at least one element required"}
	}

	allArgs := append(append([]Value{}, elements...), indexVal)
	a := sharedArena(allArgs...)

	result := elements[0].Shape()
	for _, e := range elements[1:] {
		result = coverShapes(result, e.Shape())
	}

	ids := make([]ID, len(elements))
	for i, e := range elements {
		ids[i] = e.id
	}

	id := a.alloc(node{kind: kindArrayProxy, shape: result, parts: ids, index: indexVal.id})

	return Value{a, id}, nil
}

// coverShapes returns the shape that can hold any value representable by
// either a or b: the wider width (plus one extra bit when mixing signed and
// unsigned operands and the unsigned one is at least as wide as the other,
// to make room for the sign), signed iff either is signed.
func coverShapes(a, b shape.Shape) shape.Shape {
	signed := a.Signed || b.Signed
	width := a.Width

	if b.Width > width {
		width = b.Width
	}

	if signed {
		if !a.Signed && a.Width == width {
			width++
		}

		if !b.Signed && b.Width == width {
			width++
		}
	}

	return shape.Shape{Width: width, Signed: signed}
}

// IsArrayProxy reports whether v is an ArrayProxy node.
func (v Value) IsArrayProxy() bool { return v.node().kind == kindArrayProxy }

// Elements returns an ArrayProxy node's candidate elements. Panics
// otherwise.
func (v Value) Elements() []Value {
	n := v.node()
	if n.kind != kindArrayProxy {
		panic("value: Elements called on non-ArrayProxy node")
	}

	out := make([]Value, len(n.parts))
	for i, id := range n.parts {
		out[i] = Value{v.arena, id}
	}

	return out
}

// Index returns an ArrayProxy node's selector operand. Panics otherwise.
func (v Value) Index() Value {
	n := v.node()
	if n.kind != kindArrayProxy {
		panic("value: Index called on non-ArrayProxy node")
	}

	return Value{v.arena, n.index}
}

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

// Package shape implements the (width, signedness) pair that characterises
// every value in the algebra (spec.md §3.1), along with the casting rules
// from integers, ranges and enumerations.
package shape

import (
	"fmt"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
)

// Shape is the immutable pair (width, signed). The zero value is the
// zero-width unsigned shape, which is a valid (if degenerate) shape.
type Shape struct {
	Width  uint32
	Signed bool
}

// Unsigned constructs the unsigned shape of the given width.
func Unsigned(width uint32) Shape { return Shape{Width: width} }

// Signed constructs the signed shape of the given width.
func Signed(width uint32) Shape { return Shape{Width: width, Signed: true} }

// String renders a shape the way Amaranth programs usually print it, e.g.
// "unsigned(8)" or "signed(1)".
func (s Shape) String() string {
	if s.Signed {
		return fmt.Sprintf("signed(%d)", s.Width)
	}

	return fmt.Sprintf("unsigned(%d)", s.Width)
}

// Equal reports whether two shapes are structurally identical.
func (s Shape) Equal(o Shape) bool {
	return s.Width == o.Width && s.Signed == o.Signed
}

// FromInt casts a non-negative integer n to the shape (n, unsigned), per
// spec.md §3.1.
func FromInt(n int) (Shape, error) {
	if n < 0 {
		return Shape{}, &diag.ShapeError{Entity: "Shape", Reason: fmt.Sprintf("negative width %d", n)}
	}

	return Unsigned(uint32(n)), nil
}

// FromRange casts a finite half-open range [lo, hi) to the shape that
// suffices to encode every element, signed iff any element is negative. An
// empty range (lo >= hi) casts to (0, unsigned), per spec.md §3.1.
//
// Following spec.md §9 Open Question 4 / §4.1, the historical off-by-one
// trap -- Const(n, range(n)) where n equals the exclusive upper bound --
// is reported as a (non-fatal) SyntaxWarning by callers that hold a
// diag.Reporter; this function only computes the shape.
func FromRange(lo, hi int64) Shape {
	if lo >= hi {
		return Unsigned(0)
	}

	// The maximal element actually present is hi-1.
	last := hi - 1
	signed := lo < 0 || last < 0
	width := bitsFor(lo, last, signed)

	return Shape{Width: width, Signed: signed}
}

// bitsFor returns the minimal width needed to represent every integer in
// [lo, hi] (inclusive) under the given signedness.
func bitsFor(lo, hi int64, signed bool) uint32 {
	var width uint32

	if !signed {
		width = minUnsignedWidth(hi)
		return width
	}
	// Signed: need enough bits for both extremes in two's complement.
	wLo := minSignedWidthFor(lo)
	wHi := minSignedWidthFor(hi)

	if wLo > wHi {
		return wLo
	}

	return wHi
}

func minUnsignedWidth(v int64) uint32 {
	if v <= 0 {
		return 0
	}

	var w uint32
	for v > 0 {
		w++
		v >>= 1
	}

	return w
}

// minSignedWidthFor returns the minimal two's-complement signed width that
// can represent v.
func minSignedWidthFor(v int64) uint32 {
	if v >= 0 {
		// Need a sign bit plus enough magnitude bits for v.
		w := uint32(1)
		for (int64(1) << (w - 1)) <= v {
			w++
		}

		return w
	}
	// v < 0: need w such that -(1<<(w-1)) <= v.
	w := uint32(1)
	for -(int64(1) << (w - 1)) > v {
		w++
	}

	return w
}

// Member is a single value in an enumeration-like shape source.
type Member struct {
	Name  string
	Value int64
}

// FromEnum casts a set of integer-valued members to the shape covering all
// member values, signed iff any member is negative, per spec.md §3.1. An
// empty enumeration casts to (0, unsigned).
func FromEnum(members []Member) Shape {
	if len(members) == 0 {
		return Unsigned(0)
	}

	lo, hi := members[0].Value, members[0].Value
	for _, m := range members[1:] {
		if m.Value < lo {
			lo = m.Value
		}

		if m.Value > hi {
			hi = m.Value
		}
	}

	return FromRange(lo, hi+1)
}

// Cast applies the declared-shape rule: it is returned unchanged. This
// exists so callers can treat an already-Shape value uniformly alongside
// FromInt/FromRange/FromEnum.
func Cast(s Shape) Shape { return s }

// ShapeLike is anything that can be cast to a Shape per spec.md §3.1: a
// Shape itself (identity), a non-negative int, a finite range, or an
// enumeration of integer-valued members.
type ShapeLike interface {
	Shape() Shape
}

// Shape implements ShapeLike for Shape itself.
func (s Shape) Shape() Shape { return s }

// Int is a ShapeLike wrapping a non-negative integer width; Shape() panics
// if the wrapped value is negative. Use FromInt directly to get an error
// instead of a panic.
type Int int

// Shape implements ShapeLike.
func (n Int) Shape() Shape {
	s, err := FromInt(int(n))
	if err != nil {
		panic(err)
	}

	return s
}

// Range is a ShapeLike wrapping a finite half-open range [Lo, Hi).
type Range struct {
	Lo, Hi int64
}

// Shape implements ShapeLike.
func (r Range) Shape() Shape { return FromRange(r.Lo, r.Hi) }

// Enum is a ShapeLike wrapping a set of integer-valued members.
type Enum []Member

// Shape implements ShapeLike.
func (e Enum) Shape() Shape { return FromEnum(e) }

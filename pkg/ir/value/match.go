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
	"strings"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
)

// Pattern is one alternative of a matches()/Switch Case list, per spec.md
// §3.2.2: either an integer-valued constant compared for equality, or a
// string of '0' | '1' | '-' characters (whitespace ignored) whose leftmost
// character aligns with the most-significant bit of the value being tested,
// '-' being a wildcard.
type Pattern struct {
	isBits  bool
	intVal  *big.Int
	bitsStr string
}

// IntPattern builds a Pattern matching the exact integer value v.
func IntPattern(v *big.Int) Pattern {
	return Pattern{intVal: new(big.Int).Set(v)}
}

// Int64Pattern is a convenience wrapper over IntPattern for small literals.
func Int64Pattern(v int64) Pattern {
	return IntPattern(big.NewInt(v))
}

// BitPattern builds a Pattern from a string of '0', '1' and '-' characters;
// whitespace in s is ignored, per spec.md §3.2.2.
func BitPattern(s string) Pattern {
	return Pattern{isBits: true, bitsStr: stripWhitespace(s)}
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}

		return r
	}, s)
}

// Matches builds the value matches(val, patterns...), per spec.md §3.2.2:
// the OR of each individual pattern's match, or Const(0, 1) when patterns
// is empty (spec.md §9 Open Question 4's resolution).
func Matches(val Value, patterns ...Pattern) (Value, error) {
	a := val.arena

	if len(patterns) == 0 {
		return a.Const64(0, shape.Unsigned(1)), nil
	}

	var (
		result Value
		err    error
	)

	for i, p := range patterns {
		var term Value

		term, err = matchOne(val, p)
		if err != nil {
			return Value{}, err
		}

		if i == 0 {
			result = term
			continue
		}

		result, err = Or(result, term)
		if err != nil {
			return Value{}, err
		}
	}

	return result, nil
}

func matchOne(val Value, p Pattern) (Value, error) {
	a := val.arena

	if !p.isBits {
		return Eq(val, a.Const(p.intVal, val.Shape()))
	}

	width := val.Width()
	l := uint32(len(p.bitsStr))

	if l > width {
		return Value{}, &diag.ShapeError{
			Entity: "matches",
			Reason: "bit pattern longer than the value being matched",
		}
	}

	if l != width && a.warnings != nil {
		a.warnings.Warn(diag.WarnCaseWidthMismatch, fmt.Sprintf("%d:%s", width, p.bitsStr),
			fmt.Sprintf("Case pattern %q has width %d, which does not match its Switch test's width %d", p.bitsStr, l, width))
	}

	mask := new(big.Int)
	expected := new(big.Int)

	for i, c := range p.bitsStr {
		bit := width - 1 - uint32(i)

		switch c {
		case '0':
			mask.SetBit(mask, int(bit), 1)
		case '1':
			mask.SetBit(mask, int(bit), 1)
			expected.SetBit(expected, int(bit), 1)
		case '-':
			// wildcard: leave mask bit clear
		default:
			return Value{}, &diag.ShapeError{Entity: "matches", Reason: "invalid character in bit pattern: " + string(c)}
		}
	}

	maskedVal, err := And(val, a.Const(mask, shape.Unsigned(width)))
	if err != nil {
		return Value{}, err
	}

	return Eq(maskedVal, a.Const(expected, shape.Unsigned(width)))
}

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

// Package cmdutil holds small presentation helpers shared by the
// cmd/amaranth subcommands: a terminal-width-aware table printer and a
// minimal ANSI colour helper, covering the subset a batch CLI report
// needs rather than a full interactive terminal layout system.
package cmdutil

import "fmt"

// Terminal colour indices, matching the standard 8-colour ANSI palette.
const (
	ColourBlack = uint(iota)
	ColourRed
	ColourGreen
	ColourYellow
	ColourBlue
	ColourMagenta
	ColourCyan
	ColourWhite
)

// AnsiEscape is a composable ANSI escape sequence.
type AnsiEscape struct {
	escape string
	count  uint
}

// ResetEscape returns the escape that clears all formatting.
func ResetEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// BoldEscape returns the escape that turns on bold text.
func BoldEscape() AnsiEscape {
	return AnsiEscape{"\033[1", 1}
}

// FgColour extends this escape to also set the foreground colour.
func (e AnsiEscape) FgColour(colour uint) AnsiEscape {
	code := colour + 30
	if e.count > 0 {
		return AnsiEscape{fmt.Sprintf("%s;%d", e.escape, code), e.count + 1}
	}

	return AnsiEscape{fmt.Sprintf("\033[%d", code), e.count + 1}
}

// Build renders the final escape sequence.
func (e AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", e.escape)
}

// Text is a chunk of optionally-coloured text, clipped and padded to a
// fixed display width when rendered inside a Table.
type Text struct {
	format *AnsiEscape
	runes  []rune
}

// Plain wraps s with no formatting.
func Plain(s string) Text {
	return Text{nil, []rune(s)}
}

// Coloured wraps s with the given foreground colour.
func Coloured(s string, colour uint) Text {
	escape := ResetEscape().FgColour(colour)
	return Text{&escape, []rune(s)}
}

// Len returns the display width of the text, excluding escape bytes.
func (t Text) Len() uint {
	return uint(len(t.runes))
}

// clipped returns t's runes clamped to at most width runes.
func (t Text) clipped(width uint) []rune {
	if t.Len() <= width {
		return t.runes
	}

	return t.runes[:width]
}

// render returns t padded (or clipped) to exactly width display columns,
// wrapped in its ANSI escape when colour is true.
func (t Text) render(width uint, colour bool) string {
	runes := t.clipped(width)
	padded := string(runes) + spaces(width-uint(len(runes)))

	if colour && t.format != nil {
		return t.format.Build() + padded + ResetEscape().Build()
	}

	return padded
}

func spaces(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}

	return string(b)
}

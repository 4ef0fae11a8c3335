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
package cmdutil

import "fmt"

// Table is a simple fixed-column printer used by the netlist and domains
// reports: column widths grow to fit their widest cell, then everything
// is printed once, clipped to the terminal width (see TerminalWidth).
type Table struct {
	headers []string
	widths  []uint
	rows    [][]Text
}

// NewTable constructs a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]uint, len(headers))
	for i, h := range headers {
		widths[i] = uint(len(h))
	}

	return &Table{headers: headers, widths: widths}
}

// AddRow appends a row of cells, which must match the header count.
func (t *Table) AddRow(cells ...Text) {
	if len(cells) != len(t.headers) {
		panic("cmdutil: table row column count mismatch")
	}

	for i, c := range cells {
		t.widths[i] = max(t.widths[i], c.Len())
	}

	t.rows = append(t.rows, cells)
}

// SetMaxColumnWidth clamps the rendered width of column col, so a very
// long cell (a deeply nested hierarchical path, say) does not blow out
// the whole report. A later AddRow widens the column again to fit its
// cells.
func (t *Table) SetMaxColumnWidth(col int, width uint) {
	t.widths[col] = min(t.widths[col], width)
}

// Print renders the table to stdout, clipping the overall line to
// maxWidth columns when maxWidth is non-zero (see TerminalWidth).
// Colour escapes are only emitted when colour is true.
func (t *Table) Print(colour bool, maxWidth uint) {
	printRow(headerCells(t.headers), t.widths, colour, maxWidth)

	for _, row := range t.rows {
		printRow(row, t.widths, colour, maxWidth)
	}
}

func headerCells(headers []string) []Text {
	cells := make([]Text, len(headers))
	for i, h := range headers {
		cells[i] = Coloured(h, ColourCyan)
	}

	return cells
}

func printRow(cells []Text, widths []uint, colour bool, maxWidth uint) {
	var line string

	for i, cell := range cells {
		line += cell.render(widths[i], colour) + " | "
	}

	if maxWidth > 0 && uint(len(line)) > maxWidth {
		line = line[:maxWidth]
	}

	fmt.Println(line)
}

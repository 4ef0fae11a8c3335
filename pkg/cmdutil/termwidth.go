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

import (
	"os"

	"golang.org/x/term"
)

// defaultWidth is used whenever stdout isn't a terminal (piped output, CI
// logs) or the width can't be determined.
const defaultWidth = 120

// TerminalWidth returns the width of the controlling terminal, or
// defaultWidth when stdout is redirected. Unlike an interactive terminal
// session, it never takes the terminal into raw mode -- these CLI reports
// are plain line-oriented output, printed once and done.
func TerminalWidth() uint {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}

	return uint(w)
}

// ColourEnabled reports whether ANSI colour escapes should be emitted:
// stdout must be a real terminal and NO_COLOR must be unset, per the
// de-facto convention most CLI tools (including cobra's own help output)
// honour.
func ColourEnabled() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}

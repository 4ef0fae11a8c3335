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
package diag

import (
	log "github.com/sirupsen/logrus"
)

// Warning identifies one of the non-fatal conditions enumerated in spec.md
// §7. Each is reported at most once per occurrence key.
type Warning string

const (
	// WarnOffByOneRange fires for Const(n, range(n)) style off-by-one shape
	// casts (§4.1).
	WarnOffByOneRange Warning = "off-by-one-range"
	// WarnBoolOnBitwiseNot fires when '~' is applied to a bare boolean in a
	// user-provided value-castable.
	WarnBoolOnBitwiseNot Warning = "bool-on-bitwise-not"
	// WarnCaseWidthMismatch fires when a Case pattern's width does not match
	// its enclosing Switch's test width.
	WarnCaseWidthMismatch Warning = "case-width-mismatch"
)

// Reporter accumulates one-shot warnings: each (Warning, key) pair is logged
// at most once, mirroring spec.md §7's "one-shot per occurrence" policy.
// Not safe for concurrent use; the compiler pipeline is single-threaded
// (spec.md §5).
type Reporter struct {
	seen map[Warning]map[string]bool
}

// NewReporter constructs an empty warning reporter.
func NewReporter() *Reporter {
	return &Reporter{seen: make(map[Warning]map[string]bool)}
}

// Warn reports occurrence of w at the given key (typically a signal name or
// source location). Subsequent calls with the same (w, key) pair are
// suppressed.
func (r *Reporter) Warn(w Warning, key string, message string) {
	byKey, ok := r.seen[w]
	if !ok {
		byKey = make(map[string]bool)
		r.seen[w] = byKey
	}

	if byKey[key] {
		return
	}

	byKey[key] = true
	log.WithField("warning", string(w)).Warn(message)
}

// Count returns the number of distinct (warning, key) pairs reported so far.
func (r *Reporter) Count() int {
	total := 0
	for _, byKey := range r.seen {
		total += len(byKey)
	}

	return total
}

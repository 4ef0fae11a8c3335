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
package rewrite

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// DomainRenamer replaces every ClockSignal(d)/ResetSignal(d) reference and
// every domain-name tag d found in renameMap with renameMap[d] (identity
// if unmapped), recursing into subfragments. Per spec.md §4.3 it must run
// before domain resolution -- callers apply it, and any other rewriters,
// before elaborate.ResolveDomains.
func DomainRenamer(renameMap map[string]string) Rewriter {
	return func(f *elaborate.Fragment) error {
		renameFragmentDomains(f, renameMap)
		return nil
	}
}

func renameFragmentDomains(f *elaborate.Fragment, renameMap map[string]string) {
	for _, stmts := range f.Drivers {
		visitStatementsValues(stmts, func(v value.Value) {
			value.RenameDomains(v, renameMap)
		})
	}

	newDrivers := make(map[string][]stmt.Statement, len(f.Drivers))

	for name, stmts := range f.Drivers {
		target := name
		if mapped, ok := renameMap[name]; ok {
			target = mapped
		}

		newDrivers[target] = append(newDrivers[target], stmts...)
	}

	f.Drivers = newDrivers

	newDomains := make(map[string]domain.ClockDomain, len(f.Domains))

	for name, cd := range f.Domains {
		target := name
		if mapped, ok := renameMap[name]; ok {
			target = mapped
		}

		newDomains[target] = cd
	}

	f.Domains = newDomains

	for _, sub := range f.Subfragments {
		renameFragmentDomains(sub.Child, renameMap)
	}
}

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
package cmd

import (
	log "github.com/sirupsen/logrus"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/elaborate"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/netlist"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/rewrite"
)

// elaborateExample builds and elaborates ex, per spec.md §4.3.
func elaborateExample(ex example) (*elaborate.Fragment, error) {
	mod, err := ex.build().Build()
	if err != nil {
		return nil, err
	}

	log.WithField("example", ex.name).Debug("elaborating module")

	return elaborate.Elaborate(mod, nil)
}

// netlistExample elaborates ex and folds it into a Netlist, applying
// LowerMemory first (spec.md §4.4's prerequisite -- harmless on a fragment
// tree with no Memory leaves, since the rewriter is a no-op there).
func netlistExample(ex example) (*netlist.Netlist, error) {
	frag, err := elaborateExample(ex)
	if err != nil {
		return nil, err
	}

	if err := rewrite.Apply(frag, rewrite.LowerMemory()); err != nil {
		return nil, err
	}

	log.WithField("example", ex.name).Debug("building netlist")

	return netlist.BuildNetlist(frag, nil)
}

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

package elaborate

import (
	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/instance"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/memory"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/module"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
)

// maxDelegateChain bounds how many times elaborate() may delegate to
// another Elaboratable before this is treated as a runaway cycle, per
// spec.md §9's "elaboratable returned itself or produced a cycle in
// delegation".
const maxDelegateChain = 1000

// Elaborate runs spec.md §4.3's algorithm on root, producing the
// hierarchical fragment tree and then resolving every driver's clock
// domain name against its fragment's ancestors.
func Elaborate(root any, platform any) (*Fragment, error) {
	frag, err := elaborateNode("top", root, platform, nil)
	if err != nil {
		return nil, err
	}

	if err := ResolveDomains(frag, nil); err != nil {
		return nil, err
	}

	return frag, nil
}

// elaborateNode recurses depth-first into node, per spec.md §4.3 step 1: a
// Module is expanded structurally, an Instance short-circuits to a leaf
// fragment, and any other Elaboratable is invoked and its result recursed
// into. delegateChain tracks the Elaboratable values already invoked along
// this path, to catch a delegation cycle.
func elaborateNode(path string, node any, platform any, delegateChain []any) (*Fragment, error) {
	switch v := node.(type) {
	case instance.Instance:
		return instanceFragment(path, &v), nil
	case *instance.Instance:
		return instanceFragment(path, v), nil
	case memory.Memory:
		return memoryFragment(path, &v)
	case *memory.Memory:
		return memoryFragment(path, v)
	case module.Module:
		return moduleFragment(path, v, platform)
	case *module.Module:
		return moduleFragment(path, *v, platform)
	case module.Elaboratable:
		return elaborateDelegate(path, node, v, platform, delegateChain)
	default:
		return nil, &diag.ElaborationError{
			Path:   path,
			Reason: "elaborate() returned a value that is neither Module, Instance, nor Elaboratable",
		}
	}
}

func elaborateDelegate(path string, node any, v module.Elaboratable, platform any, delegateChain []any) (*Fragment, error) {
	if len(delegateChain) >= maxDelegateChain {
		return nil, &diag.ElaborationError{Path: path, Reason: "elaboratable delegation chain exceeded depth limit"}
	}

	for _, seen := range delegateChain {
		if seen == node {
			return nil, &diag.ElaborationError{Path: path, Reason: "elaboratable delegation cycle"}
		}
	}

	result, err := v.Elaborate(platform)
	if err != nil {
		return nil, &diag.ElaborationError{Path: path, Reason: err.Error()}
	}

	return elaborateNode(path, result, platform, append(delegateChain, node))
}

// moduleFragment builds the Fragment for a Module per spec.md §4.3 step 2,
// recursing into each submodule in declaration order and recording a
// dot-separated hierarchical path for each.
func moduleFragment(path string, mod module.Module, platform any) (*Fragment, error) {
	frag := &Fragment{
		Path:    path,
		Ports:   make(map[string]Port),
		Drivers: mod.Statements,
		Domains: make(map[string]domain.ClockDomain),
	}

	for _, cd := range mod.Domains {
		frag.Domains[cd.Name] = cd
	}

	for _, sm := range mod.Submodules {
		childPath := sm.Name
		if path != "" {
			childPath = path + "." + sm.Name
		}

		child, err := elaborateNode(childPath, sm.Child, platform, nil)
		if err != nil {
			return nil, err
		}

		frag.Subfragments = append(frag.Subfragments, Subfragment{Child: child, Name: sm.Name})
	}

	return frag, nil
}

// instanceFragment builds the leaf Fragment for a black-box Instance, per
// spec.md §4.4: its named inputs/outputs/inouts become ports of the
// matching direction.
func instanceFragment(path string, inst *instance.Instance) *Fragment {
	ports := make(map[string]Port, len(inst.Inputs)+len(inst.Outputs)+len(inst.Inouts))

	for name, v := range inst.Inputs {
		ports[name] = Port{Signal: v, Direction: DirIn}
	}

	for name, v := range inst.Outputs {
		ports[name] = Port{Signal: v, Direction: DirOut}
	}

	for name, v := range inst.Inouts {
		ports[name] = Port{Signal: v, Direction: DirInout}
	}

	attrs := make(map[string]any, len(inst.Attrs))
	for k, v := range inst.Attrs {
		attrs[k] = v
	}

	return &Fragment{
		Path:       path,
		Ports:      ports,
		Drivers:    make(map[string][]stmt.Statement),
		Domains:    make(map[string]domain.ClockDomain),
		Attributes: attrs,
		Instance:   inst,
	}
}

// memoryFragment builds the leaf Fragment for an abstract Memory: its
// ports are not yet known (LowerMemory derives them once the storage rows
// and per-port driver statements are synthesized), so only the Memory
// payload itself is attached here.
func memoryFragment(path string, m *memory.Memory) (*Fragment, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &Fragment{
		Path:    path,
		Ports:   make(map[string]Port),
		Drivers: make(map[string][]stmt.Statement),
		Domains: make(map[string]domain.ClockDomain),
		Memory:  m,
	}, nil
}

// ResolveDomains implements spec.md §4.3 step 4: every domain name a
// fragment drives into is resolved against that fragment and its
// ancestors (comb always resolves, with no lookup needed), and the
// resolved ClockDomain is memoized onto the fragment's own Domains map so
// later passes never need to re-walk ancestors. A name unresolved at the
// end of elaboration is fatal. Exported (rather than folded silently into
// Elaborate) because the rewrite pipeline's DomainRenamer and LowerMemory
// passes run between tree construction and domain resolution -- Elaborate
// calls this once for designs with no rewriters; a pipeline that applies
// rewriters must call it again afterwards, which is safe since an already-
// resolved name is skipped.
func ResolveDomains(f *Fragment, ancestors []map[string]domain.ClockDomain) error {
	chain := append(ancestors, f.Domains)

	for name := range f.Drivers {
		if name == domain.Comb {
			continue
		}

		if _, ok := f.Domains[name]; ok {
			continue
		}

		cd, ok := lookupDomain(chain, name)
		if !ok {
			return &diag.DomainError{
				Bit:     -1,
				DomainA: name,
				Reason:  "undeclared clock domain referenced in fragment " + f.Path,
			}
		}

		f.Domains[name] = cd
	}

	for _, sub := range f.Subfragments {
		if err := ResolveDomains(sub.Child, chain); err != nil {
			return err
		}
	}

	return nil
}

func lookupDomain(chain []map[string]domain.ClockDomain, name string) (domain.ClockDomain, bool) {
	for i := len(chain) - 1; i >= 0; i-- {
		if cd, ok := chain[i][name]; ok {
			return cd, true
		}
	}

	return domain.ClockDomain{}, false
}

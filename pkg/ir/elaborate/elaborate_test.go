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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaranth-hdl/amaranth-go/pkg/ir/domain"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/instance"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/module"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

// fakeElaboratable is a minimal module.Elaboratable for testing the
// recursion/delegation behavior of the driver, independent of any real
// DSL surface.
type fakeElaboratable struct {
	result any
	err    error
}

func (f *fakeElaboratable) Elaborate(platform any) (any, error) {
	return f.result, f.err
}

func TestElaborateModuleBuildsFragment(t *testing.T) {
	a := value.NewArena()
	b := module.New(a)

	sig := a.NewSignal(shape.Unsigned(4), value.SignalOptions{Name: "out"})
	require.NoError(t, b.AddAssignment("comb", sig, a.Const64(5, shape.Unsigned(4))))

	mod, err := b.Build()
	require.NoError(t, err)

	frag, err := Elaborate(mod, nil)
	require.NoError(t, err)
	assert.Equal(t, "top", frag.Path)
	assert.Contains(t, frag.Drivers, "comb")
	assert.Empty(t, frag.Subfragments)
}

func TestElaborateInstanceLeaf(t *testing.T) {
	a := value.NewArena()
	out := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "q"})

	inst := instance.Instance{
		Type: "SB_LUT4",
		Name: "lut0",
		Outputs: map[string]value.Value{
			"O": out,
		},
	}

	frag, err := Elaborate(inst, nil)
	require.NoError(t, err)
	require.True(t, frag.IsInstanceLeaf())
	require.Contains(t, frag.Ports, "O")
	assert.Equal(t, DirOut, frag.Ports["O"].Direction)
}

func TestElaborateSubmoduleHierarchicalPath(t *testing.T) {
	a := value.NewArena()

	childBuilder := module.New(a)
	childSig := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "child_out"})
	require.NoError(t, childBuilder.AddAssignment("comb", childSig, a.Const64(1, shape.Unsigned(1))))
	childMod, err := childBuilder.Build()
	require.NoError(t, err)

	parentBuilder := module.New(a)
	parentBuilder.AddSubmodule("adder", childMod)
	parentMod, err := parentBuilder.Build()
	require.NoError(t, err)

	frag, err := Elaborate(parentMod, nil)
	require.NoError(t, err)
	require.Len(t, frag.Subfragments, 1)
	assert.Equal(t, "adder", frag.Subfragments[0].Name)
	assert.Equal(t, "top.adder", frag.Subfragments[0].Child.Path)
}

func TestElaborateResolvesInheritedDomain(t *testing.T) {
	a := value.NewArena()
	sync := domain.New(a, "sync", domain.Pos, false, false)

	childBuilder := module.New(a)
	sig := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "sig"})
	require.NoError(t, childBuilder.AddAssignment("sync", sig, a.Const64(1, shape.Unsigned(1))))
	childMod, err := childBuilder.Build()
	require.NoError(t, err)

	parentBuilder := module.New(a)
	parentBuilder.AddDomain(sync)
	parentBuilder.AddSubmodule("child", childMod)
	parentMod, err := parentBuilder.Build()
	require.NoError(t, err)

	frag, err := Elaborate(parentMod, nil)
	require.NoError(t, err)

	child := frag.Subfragments[0].Child
	require.Contains(t, child.Domains, "sync")
	assert.Equal(t, "sync", child.Domains["sync"].Name)
}

func TestElaborateUndeclaredDomainIsFatal(t *testing.T) {
	a := value.NewArena()

	b := module.New(a)
	sig := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "sig"})
	require.NoError(t, b.AddAssignment("sync", sig, a.Const64(1, shape.Unsigned(1))))
	mod, err := b.Build()
	require.NoError(t, err)

	_, err = Elaborate(mod, nil)
	require.Error(t, err)
}

func TestElaborateDelegateChain(t *testing.T) {
	a := value.NewArena()
	b := module.New(a)
	sig := a.NewSignal(shape.Unsigned(1), value.SignalOptions{Name: "sig"})
	require.NoError(t, b.AddAssignment("comb", sig, a.Const64(1, shape.Unsigned(1))))
	mod, err := b.Build()
	require.NoError(t, err)

	inner := &fakeElaboratable{result: mod}
	outer := &fakeElaboratable{result: inner}

	frag, err := Elaborate(outer, nil)
	require.NoError(t, err)
	assert.Contains(t, frag.Drivers, "comb")
}

func TestElaborateDelegationCycleIsFatal(t *testing.T) {
	cyclic := &fakeElaboratable{}
	cyclic.result = cyclic

	_, err := Elaborate(cyclic, nil)
	require.Error(t, err)
}

func TestElaborateInvalidResultIsFatal(t *testing.T) {
	_, err := Elaborate(42, nil)
	require.Error(t, err)
}

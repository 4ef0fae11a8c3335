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

// Package instance implements the black-box Instance leaf, per spec.md
// §4.4: "an Instance(type, name, parameters, inputs, outputs, inouts,
// attrs) becomes a leaf net with named port connections." It lives in its
// own package (rather than pkg/ir/elaborate or pkg/ir/netlist) because
// both need to name the type without importing one another.
package instance

import "github.com/amaranth-hdl/amaranth-go/pkg/ir/value"

// ParamKind tells which field of a Param, a parameter value attached to
// an Instance port list, is populated. Per spec.md §4.4: "Parameter values must be integers, strings, or
// Const-castable." IntVal/StrVal/ConstVal are mutually exclusive; which
// one is populated is indicated by Kind.
type ParamKind uint8

const (
	ParamInt ParamKind = iota
	ParamString
	ParamConst
)

// Param is one (name, value) parameter binding.
type Param struct {
	Kind     ParamKind
	IntVal   int64
	StrVal   string
	ConstVal value.Value
}

// Instance is a black-box primitive reference: a back-end-specific
// component (e.g. a vendor primitive) named by Type, wired up with named
// ports. Type and Name are both required; Name is this instance's
// hierarchical leaf name.
type Instance struct {
	Type       string
	Name       string
	Parameters map[string]Param
	Inputs     map[string]value.Value
	Outputs    map[string]value.Value
	Inouts     map[string]value.Value
	Attrs      map[string]string
}

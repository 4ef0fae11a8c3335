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
package module

import (
	"math/big"

	"github.com/amaranth-hdl/amaranth-go/pkg/diag"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/shape"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/stmt"
	"github.com/amaranth-hdl/amaranth-go/pkg/ir/value"
)

func bigFromInt(n int) *big.Int { return big.NewInt(int64(n)) }

// fsmBuilder tracks one open FSM(...)/State(...) scope, per spec.md
// §4.2. The full set of state names is declared up front at EnterFSM
// (rather than discovered one EnterState call at a time, as the source
// the spec was distilled from does): this keeps the state signal's
// shape -- which depends on the total state count -- fixed for the
// whole construction, so every Next/Ongoing call can resolve its state
// encoding immediately instead of deferring it past ExitFSM. The
// observable contract (order-of-declaration encoding, configurable init
// state, Next/Ongoing referencing any declared name) is unchanged.
type fsmBuilder struct {
	domainName   string
	stateSig     value.Value
	index        map[string]int
	order        []string
	bodies       map[string]*frame
	currentState string
}

// EnterFSM opens an FSM scope in domainName, with the given state names
// (in encoding order) and initial state (defaulting to states[0] when
// initState is empty). The state signal itself is returned so callers
// can read it before the FSM closes.
func (b *Builder) EnterFSM(domainName string, initState string, states []string) (value.Value, error) {
	if len(states) == 0 {
		return value.Value{}, &diag.SyntaxError{Entity: "FSM", Reason: "no states declared"}
	}

	index := make(map[string]int, len(states))
	for i, s := range states {
		if _, dup := index[s]; dup {
			return value.Value{}, &diag.SyntaxError{Entity: "FSM", Reason: "duplicate state name " + s}
		}

		index[s] = i
	}

	initIdx := 0
	if initState != "" {
		idx, ok := index[initState]
		if !ok {
			return value.Value{}, &diag.SyntaxError{Entity: "FSM", Reason: "init state " + initState + " not declared"}
		}

		initIdx = idx
	}

	sh := shape.FromRange(0, int64(len(states)))
	sig := b.arena.NewSignal(sh, value.SignalOptions{Init: bigFromInt(initIdx)})

	fb := &fsmBuilder{
		domainName: domainName,
		stateSig:   sig,
		index:      index,
		order:      states,
		bodies:     make(map[string]*frame),
	}

	b.fsmStack = append(b.fsmStack, fb)

	return sig, nil
}

// EnterState opens name's body within the innermost open FSM.
func (b *Builder) EnterState(name string) error {
	fb, err := b.currentFSM()
	if err != nil {
		return err
	}

	if _, ok := fb.index[name]; !ok {
		return &diag.SyntaxError{Entity: "State", Reason: "state " + name + " not declared in EnterFSM"}
	}

	fb.currentState = name
	b.push(newFrame(frameBody))

	return nil
}

// ExitState closes the currently open state body.
func (b *Builder) ExitState() error {
	fb, err := b.currentFSM()
	if err != nil {
		return err
	}

	if fb.currentState == "" {
		return &diag.SyntaxError{Entity: "State", Reason: "no open State to exit"}
	}

	fb.bodies[fb.currentState] = b.pop()
	fb.currentState = ""

	return nil
}

// SetNext adds, within the innermost open FSM's currently open state and
// in that FSM's domain, an assignment of name's encoding to the state
// signal -- spec.md §4.2's "m.next = 'name'".
func (b *Builder) SetNext(name string) error {
	fb, err := b.currentFSM()
	if err != nil {
		return err
	}

	idx, ok := fb.index[name]
	if !ok {
		return &diag.SyntaxError{Entity: "Next", Reason: "state " + name + " not declared in EnterFSM"}
	}

	rhs := b.arena.Const(bigFromInt(idx), fb.stateSig.Shape())

	return b.AddAssignment(fb.domainName, fb.stateSig, rhs)
}

// Ongoing returns state_signal == encoding(name), per spec.md §4.2's
// "fsm.ongoing('name')".
func (b *Builder) Ongoing(name string) (value.Value, error) {
	fb, err := b.currentFSM()
	if err != nil {
		return value.Value{}, err
	}

	idx, ok := fb.index[name]
	if !ok {
		return value.Value{}, &diag.SyntaxError{Entity: "Ongoing", Reason: "state " + name + " not declared in EnterFSM"}
	}

	rhs := b.arena.Const(bigFromInt(idx), fb.stateSig.Shape())

	return value.Eq(fb.stateSig, rhs)
}

// ExitFSM closes the innermost open FSM, compiling every declared
// state's body into one Case of a Switch on the state signal (in
// declaration order), appended to the enclosing frame for every domain
// any state assigned in (including the FSM's own domain, for the state
// signal's own transitions).
func (b *Builder) ExitFSM() error {
	fb, err := b.currentFSM()
	if err != nil {
		return err
	}

	if fb.currentState != "" {
		return &diag.SyntaxError{Entity: "FSM", Reason: "unclosed State " + fb.currentState}
	}

	b.fsmStack = b.fsmStack[:len(b.fsmStack)-1]

	domains := map[string]bool{}
	for _, body := range fb.bodies {
		for _, d := range body.domainNames() {
			domains[d] = true
		}
	}

	for d := range domains {
		var cases []stmt.Case

		for _, name := range fb.order {
			body := fb.bodies[name]
			if body == nil {
				continue
			}

			pattern := value.Int64Pattern(int64(fb.index[name]))
			cases = append(cases, stmt.Case{Patterns: []value.Pattern{pattern}, Body: body.perDomain[d]})
		}

		b.top().addStatement(d, stmt.Switch(fb.stateSig, cases))
	}

	return nil
}

func (b *Builder) currentFSM() (*fsmBuilder, error) {
	if len(b.fsmStack) == 0 {
		return nil, &diag.SyntaxError{Entity: "FSM", Reason: "no open FSM"}
	}

	return b.fsmStack[len(b.fsmStack)-1], nil
}

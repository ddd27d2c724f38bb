// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

// stateMachine is a push-down automaton that validates whether
// a sequence of formatter events is valid.
//
// It is a stack where each entry represents a nested JSON object or array.
// The stack has a minimum depth of 1 where the first level is a
// virtual container holding the single top-level value.
// The zero value is not a valid state machine; call init first.
type stateMachine []stateEntry

// stateEntry records the progress within one container.
type stateEntry struct {
	kind     byte  // '[' or '{' for containers, 0 for the top level
	phase    phase // which part of a member or element is being written
	hasValue bool  // whether the current key, value, or element has begun
	length   int   // number of completed elements or members
}

type phase uint8

const (
	phaseIdle     phase = iota // between elements or members
	phaseElement               // after BeginArrayValue
	phaseKey                   // after BeginObjectKey
	phaseAfterKey              // after EndObjectKey
	phaseValue                 // after BeginObjectValue
)

// init initializes the state machine.
// The machine always starts with a minimum depth of 1.
func (m *stateMachine) init() {
	*m = append((*m)[:0], stateEntry{phase: phaseElement})
}

// depth is the current nested depth of JSON objects and arrays.
// It is one-indexed (i.e., top-level values have a depth of 1).
func (m stateMachine) depth() int {
	return len(m)
}

// last returns a pointer to the last entry.
func (m stateMachine) last() *stateEntry {
	return &m[len(m)-1]
}

// beginValue records the start of a value of the given kind,
// where strings are '"' and every other value is 0, '[' or '{'.
// Object names may only be strings.
func (m stateMachine) beginValue(kind byte) error {
	e := m.last()
	switch {
	case e.hasValue:
		return ErrStructuralMismatch
	case e.phase == phaseElement, e.phase == phaseValue:
	case e.phase == phaseKey && kind == '"':
	default:
		return ErrStructuralMismatch
	}
	e.hasValue = true
	return nil
}

// push opens a nested container after beginValue has accepted it.
func (m *stateMachine) push(kind byte) {
	*m = append(*m, stateEntry{kind: kind})
}

// pop closes the innermost container, which must be of the given kind
// and must not be in the middle of an element or member.
func (m *stateMachine) pop(kind byte) error {
	switch e := m.last(); {
	case len(*m) == 1, e.kind != kind, e.phase != phaseIdle:
		return ErrStructuralMismatch
	default:
		*m = (*m)[:len(*m)-1]
		return nil
	}
}

// advance moves the innermost container of the given kind from one phase
// to the next. If requireValue is set, the part being closed must have
// had its value written.
func (m stateMachine) advance(kind byte, from, to phase, requireValue bool) error {
	e := m.last()
	if e.kind != kind || e.phase != from || (requireValue && !e.hasValue) {
		return ErrStructuralMismatch
	}
	e.phase = to
	e.hasValue = false
	if to == phaseIdle {
		e.length++
	}
	return nil
}

// checkFirst reports whether the caller's notion of the first element
// agrees with the number of elements written so far.
func (m stateMachine) checkFirst(first bool) error {
	if first != (m.last().length == 0) {
		return ErrStructuralMismatch
	}
	return nil
}

// complete reports whether exactly one top-level value has been written.
func (m stateMachine) complete() bool {
	return len(m) == 1 && m[0].hasValue
}

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"testing"
)

// eventRecorder is a Handler that logs every event it receives.
type eventRecorder struct {
	log *[]string
}

func (r *eventRecorder) add(s string) error {
	*r.log = append(*r.log, s)
	return nil
}

func (r *eventRecorder) WriteNull() error                   { return r.add("Null") }
func (r *eventRecorder) WriteBool(v bool) error             { return r.add(fmt.Sprintf("Bool(%v)", v)) }
func (r *eventRecorder) WriteInt(v int64) error             { return r.add(fmt.Sprintf("Int(%d)", v)) }
func (r *eventRecorder) WriteUint(v uint64) error           { return r.add(fmt.Sprintf("Uint(%d)", v)) }
func (r *eventRecorder) WriteBigInt(v *big.Int) error       { return r.add("BigInt(" + v.String() + ")") }
func (r *eventRecorder) WriteFloat32(v float32) error       { return r.add(fmt.Sprintf("Float32(%v)", v)) }
func (r *eventRecorder) WriteFloat64(v float64) error       { return r.add(fmt.Sprintf("Float64(%v)", v)) }
func (r *eventRecorder) WriteNumberString(s string) error   { return r.add("Number(" + s + ")") }
func (r *eventRecorder) BeginString() error                 { return r.add("BeginString") }
func (r *eventRecorder) WriteStringFragment(s string) error { return r.add("Fragment(" + s + ")") }
func (r *eventRecorder) WriteCharEscape(c byte) error       { return r.add("Escape(" + string(c) + ")") }
func (r *eventRecorder) EndString() error                   { return r.add("EndString") }
func (r *eventRecorder) BeginArray() error                  { return r.add("BeginArray") }
func (r *eventRecorder) BeginArrayValue(first bool) error {
	return r.add(fmt.Sprintf("BeginArrayValue(%v)", first))
}
func (r *eventRecorder) EndArrayValue() error { return r.add("EndArrayValue") }
func (r *eventRecorder) EndArray() error      { return r.add("EndArray") }
func (r *eventRecorder) BeginObject() error   { return r.add("BeginObject") }
func (r *eventRecorder) BeginObjectKey(first bool) error {
	return r.add(fmt.Sprintf("BeginObjectKey(%v)", first))
}
func (r *eventRecorder) EndObjectKey() error             { return r.add("EndObjectKey") }
func (r *eventRecorder) BeginObjectValue() error         { return r.add("BeginObjectValue") }
func (r *eventRecorder) EndObjectValue() error           { return r.add("EndObjectValue") }
func (r *eventRecorder) EndObject() error                { return r.add("EndObject") }
func (r *eventRecorder) WriteRawFragment(s string) error { return r.add("Raw(" + s + ")") }

func TestWalkTextEvents(t *testing.T) {
	var got []string
	in := `{"k\n": [null, true, -1.50e3, "a/b"]}`
	if err := WalkText(&eventRecorder{log: &got}, strings.NewReader(in)); err != nil {
		t.Fatalf("WalkText error: %v", err)
	}
	want := []string{
		"BeginObject", "BeginObjectKey(true)", "BeginString", "Fragment(k)", "Escape(\n)", "EndString", "EndObjectKey",
		"BeginObjectValue", "BeginArray",
		"BeginArrayValue(true)", "Null", "EndArrayValue",
		"BeginArrayValue(false)", "Bool(true)", "EndArrayValue",
		"BeginArrayValue(false)", "Number(-1.50e3)", "EndArrayValue",
		"BeginArrayValue(false)", "BeginString", "Fragment(a/b)", "EndString", "EndArrayValue",
		"EndArray", "EndObjectValue", "EndObject",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WalkText events:\n\tgot:  %q\n\twant: %q", got, want)
	}
}

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"io"
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/go-json-experiment/jcs/internal/bufpools"
	"github.com/go-json-experiment/jcs/internal/jsonopts"
	"github.com/go-json-experiment/jcs/internal/jsonwire"
)

// Formatter renders a stream of Handler events as canonical JSON.
//
// Output that is not nested within an object is written to the underlying
// io.Writer as soon as it is complete. Object members are collected in
// memory until the object is closed, then written in sorted order.
// Consequently, a failure part way through a top-level array may leave
// a partial prefix in the writer. Use MarshalWrite or PipeWrite for
// all-or-nothing output.
//
// A Formatter is good for exactly one top-level value.
// After any error, every later call reports the same error.
// It is not safe for concurrent use.
type Formatter struct {
	wr   io.Writer
	opts jsonopts.Struct

	state    stateMachine
	inString bool

	// objects holds the members of every open object, innermost last.
	objects []propertySet
	// keys holds the canonical name of every member whose key has ended
	// but whose value has not, innermost last.
	keys [][]byte
	// buffers holds every in-flight key or value, innermost last.
	// While non-empty, all output is appended to the last buffer
	// rather than written to wr.
	buffers [][]byte

	scratch []byte
	name    []byte // scratch for decoded object names
	err     error  // sticky
}

// NewFormatter constructs a Formatter that writes canonical JSON to w.
func NewFormatter(w io.Writer, opts ...Options) *Formatter {
	f := new(Formatter)
	f.reset(w, opts...)
	return f
}

var _ Handler = (*Formatter)(nil)

// Close reports whether exactly one complete top-level value was written.
// It does not close the underlying io.Writer.
func (f *Formatter) Close() error {
	if f.err != nil {
		return f.err
	}
	if f.inString || !f.state.complete() || len(f.buffers)+len(f.keys)+len(f.objects) > 0 {
		return f.fail(&wrapError{kind: ErrStructuralMismatch, detail: "incomplete value"})
	}
	return nil
}

func (f *Formatter) fail(err error) error {
	f.err = err
	return err
}

func (f *Formatter) mismatch(event string) error {
	return f.fail(&wrapError{kind: ErrStructuralMismatch, detail: "unexpected " + event})
}

// check reports whether an event other than string content may proceed.
func (f *Formatter) check(event string) error {
	if f.err != nil {
		return f.err
	}
	if f.inString {
		return f.mismatch(event + " within string")
	}
	return nil
}

// write emits p to the innermost buffer, or to the writer if none is open.
func (f *Formatter) write(p []byte) error {
	if n := len(f.buffers); n > 0 {
		f.buffers[n-1] = append(f.buffers[n-1], p...)
		return nil
	}
	if _, err := f.wr.Write(p); err != nil {
		return f.fail(&wrapError{kind: ErrSinkWrite, err: err})
	}
	return nil
}

func (f *Formatter) writeString(s string) error {
	if n := len(f.buffers); n > 0 {
		f.buffers[n-1] = append(f.buffers[n-1], s...)
		return nil
	}
	f.scratch = append(f.scratch[:0], s...)
	return f.write(f.scratch)
}

// beginValue validates the start of a value and then writes lit, if any.
func (f *Formatter) beginValue(event string, kind byte, lit string) error {
	if err := f.check(event); err != nil {
		return err
	}
	if err := f.state.beginValue(kind); err != nil {
		return f.mismatch(event)
	}
	if lit == "" {
		return nil
	}
	return f.writeString(lit)
}

func (f *Formatter) WriteNull() error {
	return f.beginValue("null", 0, "null")
}

func (f *Formatter) WriteBool(v bool) error {
	if v {
		return f.beginValue("boolean", 0, "true")
	}
	return f.beginValue("boolean", 0, "false")
}

func (f *Formatter) WriteInt(v int64) error {
	return f.WriteFloat64(float64(v))
}

func (f *Formatter) WriteUint(v uint64) error {
	return f.WriteFloat64(float64(v))
}

// WriteBigInt writes an integer of any width, such as a 128-bit integer,
// as the nearest float64 with ties rounded to even.
// Integers beyond the range of float64 are rejected as non-finite.
// The integer must not be nil.
func (f *Formatter) WriteBigInt(v *big.Int) error {
	return f.WriteFloat64(jsonwire.BigIntToFloat(v))
}

// WriteFloat32 writes v widened to float64, so that float32(0.1) is
// written as 0.10000000149011612.
func (f *Formatter) WriteFloat32(v float32) error {
	return f.WriteFloat64(float64(v))
}

func (f *Formatter) WriteFloat64(v float64) error {
	if err := f.beginValue("number", 0, ""); err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.fail(&wrapError{kind: ErrNonFiniteNumber, detail: strconv.FormatFloat(v, 'g', -1, 64)})
	}
	if n := len(f.buffers); n > 0 {
		f.buffers[n-1] = jsonwire.AppendFloat(f.buffers[n-1], v)
		return nil
	}
	f.scratch = jsonwire.AppendFloat(f.scratch[:0], v)
	return f.write(f.scratch)
}

// WriteNumberString writes pre-rendered number text, such as "1e2",
// after reformatting it in canonical form.
func (f *Formatter) WriteNumberString(s string) error {
	if err := f.check("number"); err != nil {
		return err
	}
	v, err := jsonwire.ParseNumber(s)
	if err != nil {
		return f.fail(&wrapError{kind: ErrUnparsableNumber, detail: strconv.Quote(s)})
	}
	return f.WriteFloat64(v)
}

func (f *Formatter) BeginString() error {
	if err := f.beginValue("string", '"', `"`); err != nil {
		return err
	}
	f.inString = true
	return nil
}

// WriteStringFragment writes a run of unescaped string content.
// Any characters in s that require escaping are escaped.
func (f *Formatter) WriteStringFragment(s string) error {
	if f.err != nil {
		return f.err
	}
	if !f.inString {
		return f.mismatch("string fragment")
	}
	if !utf8.ValidString(s) {
		return f.fail(&wrapError{kind: ErrInvalidUTF8, detail: strconv.Quote(s)})
	}
	b := f.scratch[:0]
	if n := len(f.buffers); n > 0 {
		b = f.buffers[n-1]
	}
	for len(s) > 0 {
		i := jsonwire.IndexEscape(s)
		b = append(b, s[:i]...)
		if i == len(s) {
			break
		}
		b = jsonwire.AppendEscapedASCII(b, s[i])
		s = s[i+1:]
	}
	if n := len(f.buffers); n > 0 {
		f.buffers[n-1] = b
		return nil
	}
	f.scratch = b
	return f.write(b)
}

// WriteCharEscape writes the ASCII character c as it appears in canonical
// form, which may or may not be escaped. In particular, an escaped solidus
// is written as a plain '/'.
func (f *Formatter) WriteCharEscape(c byte) error {
	if f.err != nil {
		return f.err
	}
	if !f.inString {
		return f.mismatch("character escape")
	}
	if c >= utf8.RuneSelf {
		return f.fail(&wrapError{kind: ErrInvalidUTF8, detail: "escaped byte " + strconv.Quote(string(rune(c)))})
	}
	if n := len(f.buffers); n > 0 {
		f.buffers[n-1] = jsonwire.AppendEscapedASCII(f.buffers[n-1], c)
		return nil
	}
	f.scratch = jsonwire.AppendEscapedASCII(f.scratch[:0], c)
	return f.write(f.scratch)
}

func (f *Formatter) EndString() error {
	if f.err != nil {
		return f.err
	}
	if !f.inString {
		return f.mismatch("end of string")
	}
	f.inString = false
	return f.writeString(`"`)
}

// WriteRawFragment always fails with ErrRawFragment since pre-rendered
// JSON cannot be assumed to be canonical.
func (f *Formatter) WriteRawFragment(string) error {
	if err := f.check("raw fragment"); err != nil {
		return err
	}
	return f.fail(ErrRawFragment)
}

func (f *Formatter) BeginArray() error {
	if err := f.beginValue("array", '[', "["); err != nil {
		return err
	}
	f.state.push('[')
	return nil
}

func (f *Formatter) BeginArrayValue(first bool) error {
	if err := f.check("array element"); err != nil {
		return err
	}
	if f.state.checkFirst(first) != nil || f.state.advance('[', phaseIdle, phaseElement, false) != nil {
		return f.mismatch("array element")
	}
	if !first {
		return f.writeString(",")
	}
	return nil
}

func (f *Formatter) EndArrayValue() error {
	if err := f.check("end of array element"); err != nil {
		return err
	}
	if f.state.advance('[', phaseElement, phaseIdle, true) != nil {
		return f.mismatch("end of array element")
	}
	return nil
}

func (f *Formatter) EndArray() error {
	if err := f.check("end of array"); err != nil {
		return err
	}
	if f.state.pop('[') != nil {
		return f.mismatch("end of array")
	}
	return f.writeString("]")
}

// BeginObject opens an object. Nothing is written until EndObject.
func (f *Formatter) BeginObject() error {
	if err := f.beginValue("object", '{', ""); err != nil {
		return err
	}
	f.state.push('{')
	f.objects = append(f.objects, propertySet{})
	return nil
}

// BeginObjectKey starts capturing a member name.
// The first flag is only validated since members are reordered anyway.
func (f *Formatter) BeginObjectKey(first bool) error {
	if err := f.check("object name"); err != nil {
		return err
	}
	if f.state.checkFirst(first) != nil || f.state.advance('{', phaseIdle, phaseKey, false) != nil {
		return f.mismatch("object name")
	}
	f.buffers = append(f.buffers, bufpools.Get(0))
	return nil
}

func (f *Formatter) EndObjectKey() error {
	if err := f.check("end of object name"); err != nil {
		return err
	}
	if f.state.advance('{', phaseKey, phaseAfterKey, true) != nil {
		return f.mismatch("end of object name")
	}
	n := len(f.buffers) - 1
	f.keys = append(f.keys, f.buffers[n])
	f.buffers = f.buffers[:n]
	return nil
}

func (f *Formatter) BeginObjectValue() error {
	if err := f.check("object value"); err != nil {
		return err
	}
	if f.state.advance('{', phaseAfterKey, phaseValue, false) != nil {
		return f.mismatch("object value")
	}
	f.buffers = append(f.buffers, bufpools.Get(0))
	return nil
}

// EndObjectValue pairs the completed value with its pending name
// and records the member in the innermost object.
func (f *Formatter) EndObjectValue() error {
	if err := f.check("end of object value"); err != nil {
		return err
	}
	if f.state.advance('{', phaseValue, phaseIdle, true) != nil {
		return f.mismatch("end of object value")
	}
	value := f.buffers[len(f.buffers)-1]
	f.buffers = f.buffers[:len(f.buffers)-1]
	key := f.keys[len(f.keys)-1]
	f.keys = f.keys[:len(f.keys)-1]

	var err error
	f.name, err = jsonwire.AppendUnquote(f.name[:0], key)
	if err != nil {
		return f.fail(&wrapError{kind: ErrInvalidKeyEncoding, detail: strconv.Quote(string(key)), err: err})
	}
	p := property{sortKey: jsonwire.SortKey(nil, f.name), key: key, value: value}
	if !f.objects[len(f.objects)-1].insert(f.name, p) {
		if f.opts.Get(jsonopts.RejectDuplicateNames) {
			return f.fail(&wrapError{kind: ErrDuplicateName, detail: string(key)})
		}
		bufpools.Put(key)
		bufpools.Put(value)
	}
	return nil
}

// EndObject writes every member of the innermost object in sorted order.
func (f *Formatter) EndObject() error {
	if err := f.check("end of object"); err != nil {
		return err
	}
	if f.state.pop('{') != nil {
		return f.mismatch("end of object")
	}
	set := &f.objects[len(f.objects)-1]
	f.objects = f.objects[:len(f.objects)-1]

	var b []byte
	outer := len(f.buffers) > 0
	if outer {
		b = f.buffers[len(f.buffers)-1]
	} else {
		b = bufpools.Get(set.size())
	}
	b = append(b, '{')
	for i, p := range set.sorted() {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, p.key...)
		b = append(b, ':')
		b = append(b, p.value...)
		bufpools.Put(p.key)
		bufpools.Put(p.value)
	}
	b = append(b, '}')
	if outer {
		f.buffers[len(f.buffers)-1] = b
		return nil
	}
	defer bufpools.Put(b)
	return f.write(b)
}

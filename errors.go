// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"reflect"
	"strings"
)

const errorPrefix = "jcs: "

// Error matches errors returned by this package according to errors.Is.
const Error = jcsError("jcs error")

type jcsError string

func (e jcsError) Error() string        { return string(e) }
func (e jcsError) Is(target error) bool { return e == target || target == Error }

type stringError struct {
	str string
}

func (e *stringError) Error() string        { return errorPrefix + e.str }
func (e *stringError) Is(target error) bool { return e == target || target == Error }

// Every error reported while canonicalizing is terminal for that call
// and matches exactly one of these according to errors.Is.
var (
	// ErrNonFiniteNumber reports a NaN or ±Infinity number,
	// which has no representation in JSON.
	ErrNonFiniteNumber error = &stringError{str: "NaN and ±Infinity are not permitted"}
	// ErrUnparsableNumber reports pre-rendered number text that is not
	// a valid JSON number.
	ErrUnparsableNumber error = &stringError{str: "invalid number text"}
	// ErrRawFragment reports an attempt to emit pre-rendered JSON text,
	// which cannot be trusted to already be canonical.
	ErrRawFragment error = &stringError{str: "raw fragments are not supported"}
	// ErrInvalidKeyEncoding reports an object name that does not decode
	// to valid text.
	ErrInvalidKeyEncoding error = &stringError{str: "invalid object name encoding"}
	// ErrStructuralMismatch reports an event that is invalid for the current
	// state, such as a close event with no corresponding open event.
	// It indicates a misbehaving event source.
	ErrStructuralMismatch error = &stringError{str: "mismatched structural event"}
	// ErrSinkWrite reports that the output writer refused a write.
	// The writer's error is available through errors.Unwrap.
	ErrSinkWrite error = &stringError{str: "write failed"}
	// ErrInvalidUTF8 reports string content that is not valid UTF-8.
	ErrInvalidUTF8 error = &stringError{str: "invalid UTF-8 within string"}
	// ErrDuplicateName reports a duplicate object member name
	// when RejectDuplicateNames is in effect.
	ErrDuplicateName error = &stringError{str: "duplicate object member name"}
	// ErrUnsupportedType reports a Go value that has no JSON representation.
	ErrUnsupportedType error = &stringError{str: "unsupported type"}
	// ErrUnsupportedKey reports a Go map whose keys are not strings.
	ErrUnsupportedKey error = &stringError{str: "object names must be strings"}
	// ErrInvalidJSON reports input text that is not a single valid JSON value.
	ErrInvalidJSON error = &stringError{str: "invalid JSON text"}
)

// wrapError annotates one of the sentinel errors above
// with detail about the offending input and an optional cause.
type wrapError struct {
	kind   error
	detail string
	err    error // may be nil
}

func (e *wrapError) Error() string {
	s := e.kind.Error()
	if e.detail != "" {
		s += ": " + e.detail
	}
	if e.err != nil {
		s += ": " + strings.TrimPrefix(e.err.Error(), errorPrefix)
	}
	return s
}
func (e *wrapError) Unwrap() error        { return e.err }
func (e *wrapError) Is(target error) bool { return e.kind == target || target == Error }

// SemanticError describes where within a Go value or JSON text
// canonicalization failed.
//
// The contents of this error as produced by this package may change over time.
type SemanticError struct {
	// Pointer indicates the location of the failing value
	// using the JSON Pointer notation (see RFC 6901).
	Pointer string
	// GoType is the Go type that could not be handled.
	GoType reflect.Type // may be nil if unknown
	// Err is the underlying error.
	Err error
}

func (e *SemanticError) Error() string {
	var sb strings.Builder
	sb.WriteString(errorPrefix)
	if e.GoType != nil {
		sb.WriteString("cannot canonicalize Go type " + e.GoType.String())
	} else {
		sb.WriteString("cannot canonicalize value")
	}
	if e.Pointer != "" {
		sb.WriteString(" within " + quotePointer(e.Pointer))
	}
	if e.Err != nil {
		sb.WriteString(": " + strings.TrimPrefix(e.Err.Error(), errorPrefix))
	}
	return sb.String()
}
func (e *SemanticError) Unwrap() error        { return e.Err }
func (e *SemanticError) Is(target error) bool { return e == target || target == Error }

func quotePointer(p string) string {
	if strings.ContainsAny(p, "\"\\") || strings.IndexFunc(p, func(r rune) bool { return r < ' ' }) >= 0 {
		return "JSON pointer " + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(p)
	}
	return `"` + p + `"`
}

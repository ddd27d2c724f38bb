// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jcs implements the JSON Canonicalization Scheme (JCS)
// as specified in RFC 8785.
//
// Canonical JSON is a deterministic serialization where equal data
// always produces identical bytes, which makes it suitable for hashing
// and signing. In canonical form:
//
//   - there is no insignificant whitespace;
//   - object members are sorted by the UTF-16 code units of their names;
//   - numbers are IEEE 754 double precision values formatted as by
//     ECMAScript, so that 1e2, 100.0, and 100 are all written as 100; and
//   - strings use the shortest escape sequences, so that "\u0041" is
//     written as "A" and "\/" is written as "/".
//
// # Usage
//
// Marshal and its variants canonicalize a Go value.
// Pipe and its variants canonicalize JSON text.
//
// The Formatter type is the engine behind both.
// It consumes a stream of events describing a value (see Handler)
// and may be driven directly by a custom source.
// Since object members must be sorted, a Formatter buffers every object
// in memory until it is closed. Everything outside of an object is written
// through as soon as it is complete.
//
// # Numbers
//
// Every number is converted to float64 before it is formatted.
// Integers beyond ±2⁵³ may lose precision, and values beyond the
// range of float64, as well as NaN and ±Infinity, are rejected
// with ErrNonFiniteNumber. Applications that need to preserve larger
// numbers should represent them as JSON strings.
//
// # Errors
//
// Every error returned by this package matches Error according to errors.Is.
// The exported Err variables identify the kind of failure.
package jcs

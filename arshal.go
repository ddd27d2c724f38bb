// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"io"
)

// Marshal returns the canonical JSON encoding of in.
// See Walk for how Go values are represented in JSON.
//
// Canonical form is specified by RFC 8785:
//
//   - Object members are sorted by the UTF-16 code units of their names.
//   - Numbers are formatted as by the ECMAScript Number.prototype.toString
//     method, which requires the value to be finite.
//   - Strings escape only the characters that JSON requires to be escaped,
//     using the shortest escape sequence.
//   - No insignificant whitespace is emitted.
//
// Object members with duplicate names are dropped, keeping the first,
// unless RejectDuplicateNames is specified.
func Marshal(in any, opts ...Options) (out []byte, err error) {
	b := getStagingBuffer()
	defer putStagingBuffer(b)
	if err := marshal(b, in, opts...); err != nil {
		return nil, err
	}
	return b.BytesClone(), nil
}

// MarshalString is like Marshal but returns the canonical encoding as text.
func MarshalString(in any, opts ...Options) (string, error) {
	b := getStagingBuffer()
	defer putStagingBuffer(b)
	if err := marshal(b, in, opts...); err != nil {
		return "", err
	}
	return string(b.BytesClone()), nil
}

// MarshalWrite writes the canonical JSON encoding of in to out.
// Nothing is written to out unless canonicalization succeeds.
// If out fails, the error matches ErrSinkWrite and wraps the writer's error.
func MarshalWrite(out io.Writer, in any, opts ...Options) error {
	b := getStagingBuffer()
	defer putStagingBuffer(b)
	if err := marshal(b, in, opts...); err != nil {
		return err
	}
	if _, err := b.WriteTo(out); err != nil {
		return &wrapError{kind: ErrSinkWrite, err: err}
	}
	return nil
}

func marshal(w io.Writer, in any, opts ...Options) error {
	f := getFormatter(w, opts...)
	defer putFormatter(f)
	if err := Walk(f, in); err != nil {
		return err
	}
	return f.Close()
}

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"bytes"
	"io"
	"strings"
)

// Pipe decodes the JSON text in s and re-encodes it in canonical form.
//
// The input must be exactly one valid JSON value surrounded by
// optional whitespace, otherwise the error matches ErrInvalidJSON.
// Numbers must be finite once converted to float64,
// so a literal such as 1e400 results in ErrNonFiniteNumber.
func Pipe(s string, opts ...Options) (string, error) {
	b := getStagingBuffer()
	defer putStagingBuffer(b)
	if err := pipe(b, strings.NewReader(s), opts...); err != nil {
		return "", err
	}
	return string(b.BytesClone()), nil
}

// Canonicalize is like Pipe but operates on bytes.
func Canonicalize(in []byte, opts ...Options) ([]byte, error) {
	b := getStagingBuffer()
	defer putStagingBuffer(b)
	if err := pipe(b, bytes.NewReader(in), opts...); err != nil {
		return nil, err
	}
	return b.BytesClone(), nil
}

// PipeWrite reads a JSON value from in and writes its canonical form to out.
// Nothing is written to out unless canonicalization succeeds.
func PipeWrite(out io.Writer, in io.Reader, opts ...Options) error {
	b := getStagingBuffer()
	defer putStagingBuffer(b)
	if err := pipe(b, in, opts...); err != nil {
		return err
	}
	if _, err := b.WriteTo(out); err != nil {
		return &wrapError{kind: ErrSinkWrite, err: err}
	}
	return nil
}

// IsCanonical reports whether in is valid JSON that is already
// in canonical form, byte for byte.
func IsCanonical(in []byte, opts ...Options) bool {
	out, err := Canonicalize(in, opts...)
	return err == nil && bytes.Equal(in, out)
}

func pipe(w io.Writer, r io.Reader, opts ...Options) error {
	f := getFormatter(w, opts...)
	defer putFormatter(f)
	if err := WalkText(f, r); err != nil {
		return err
	}
	return f.Close()
}

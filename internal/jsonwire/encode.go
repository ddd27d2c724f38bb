// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonwire implements stateless functions for handling
// the canonical JSON wire format (RFC 8785).
package jsonwire

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

var (
	ErrInvalidUTF8   = errors.New("invalid UTF-8")
	ErrInvalidEscape = errors.New("invalid escape sequence")
	ErrInvalidString = errors.New("invalid string literal")
	ErrInvalidNumber = errors.New("invalid number literal")
)

// AppendFloat appends src to dst as a JSON number per RFC 8785,
// section 3.2.2.3. It formats numbers identically to the ES6
// number-to-string conversion (ECMA-262, 6th edition, section 7.1.12.1).
// See https://go.dev/issue/14135.
//
// Negative zero is formatted as 0.
// The caller must ensure that src is finite.
func AppendFloat(dst []byte, src float64) []byte {
	if src == 0 {
		return append(dst, '0') // normalize negative zero as just zero
	}

	abs := math.Abs(src)
	fmt := byte('f')
	if abs < 1e-6 || abs >= 1e21 {
		fmt = 'e'
	}
	dst = strconv.AppendFloat(dst, src, fmt, -1, 64)
	if fmt == 'e' {
		// Clean up e-09 to e-9.
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// BigIntToFloat widens an arbitrarily large integer to the nearest float64,
// rounding ties to even. Magnitudes beyond math.MaxFloat64 become ±Inf.
func BigIntToFloat(src *big.Int) float64 {
	f, _ := new(big.Float).SetInt(src).Float64()
	return f
}

// ParseNumber parses src, which must be a complete JSON number
// per RFC 8259, section 6, as the nearest float64.
// Numbers whose magnitude overflows float64 are reported as ±Inf
// without an error; the caller decides whether that is acceptable.
func ParseNumber[Bytes ~[]byte | ~string](src Bytes) (float64, error) {
	if n, err := ConsumeNumber(src); err != nil || n != len(src) {
		return 0, ErrInvalidNumber
	}
	fv, err := strconv.ParseFloat(string(src), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, ErrInvalidNumber
	}
	return fv, nil
}

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ConsumeNumber consumes the next JSON number per RFC 8259, section 6.
// It reports the number of bytes consumed. Only the prefix of src that forms
// a valid number is consumed; an error is reported if no such prefix exists.
func ConsumeNumber[Bytes ~[]byte | ~string](src Bytes) (int, error) {
	var n int

	// Optional minus sign.
	if len(src) > n && src[n] == '-' {
		n++
	}

	// Integer part.
	switch {
	case len(src) > n && src[n] == '0':
		n++
	case len(src) > n && '1' <= src[n] && src[n] <= '9':
		n++
		for len(src) > n && isDigit(src[n]) {
			n++
		}
	default:
		return n, ErrInvalidNumber
	}

	// Optional fraction.
	if len(src) > n && src[n] == '.' {
		n++
		if !(len(src) > n && isDigit(src[n])) {
			return n, ErrInvalidNumber
		}
		for len(src) > n && isDigit(src[n]) {
			n++
		}
	}

	// Optional exponent.
	if len(src) > n && (src[n] == 'e' || src[n] == 'E') {
		n++
		if len(src) > n && (src[n] == '-' || src[n] == '+') {
			n++
		}
		if !(len(src) > n && isDigit(src[n])) {
			return n, ErrInvalidNumber
		}
		for len(src) > n && isDigit(src[n]) {
			n++
		}
	}
	return n, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// AppendUnquote appends the decoded interpretation of src as a
// double-quoted JSON string literal to dst and returns the extended buffer.
// The input src must be exactly one JSON string without surrounding whitespace.
//
// Unlike a lenient decoder, it never substitutes the replacement character:
// invalid UTF-8 and unpaired surrogate escapes are reported as errors.
func AppendUnquote[Bytes ~[]byte | ~string](dst []byte, src Bytes) ([]byte, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return dst, ErrInvalidString
	}
	src = src[1 : len(src)-1]

	var i, n int
	for uint(len(src)) > uint(n) {
		switch c := src[n]; {
		case c == '"':
			return dst, ErrInvalidString
		case c < ' ':
			return dst, ErrInvalidString
		case c < utf8.RuneSelf && c != '\\':
			n++
		case c == '\\':
			dst = append(dst, src[i:n]...)
			if len(src) < n+2 {
				return dst, ErrInvalidEscape
			}
			switch src[n+1] {
			case '"', '\\', '/':
				dst = append(dst, src[n+1])
				n += 2
			case 'b':
				dst = append(dst, '\b')
				n += 2
			case 'f':
				dst = append(dst, '\f')
				n += 2
			case 'n':
				dst = append(dst, '\n')
				n += 2
			case 'r':
				dst = append(dst, '\r')
				n += 2
			case 't':
				dst = append(dst, '\t')
				n += 2
			case 'u':
				r, ok := parseHexUint16(src[n+2:])
				if !ok {
					return dst, ErrInvalidEscape
				}
				n += 6
				if utf16.IsSurrogate(rune(r)) {
					// Surrogate halves must appear as a high-low pair.
					if len(src) < n+6 || src[n] != '\\' || src[n+1] != 'u' {
						return dst, ErrInvalidEscape
					}
					r2, ok := parseHexUint16(src[n+2:])
					if !ok {
						return dst, ErrInvalidEscape
					}
					rr := utf16.DecodeRune(rune(r), rune(r2))
					if rr == utf8.RuneError {
						return dst, ErrInvalidEscape
					}
					dst = utf8.AppendRune(dst, rr)
					n += 6
				} else {
					dst = utf8.AppendRune(dst, rune(r))
				}
			default:
				return dst, ErrInvalidEscape
			}
			i = n
		default:
			r, rn := utf8.DecodeRuneInString(string(truncateMaxUTF8(src[n:])))
			if r == utf8.RuneError && rn == 1 {
				return dst, ErrInvalidUTF8
			}
			n += rn
		}
	}
	return append(dst, src[i:n]...), nil
}

// parseHexUint16 is similar to strconv.ParseUint,
// but operates directly on exactly four leading hexadecimal digits of src.
func parseHexUint16[Bytes ~[]byte | ~string](src Bytes) (v uint16, ok bool) {
	if len(src) < 4 {
		return 0, false
	}
	for i := 0; i < 4; i++ {
		c := src[i]
		switch {
		case '0' <= c && c <= '9':
			c = c - '0'
		case 'a' <= c && c <= 'f':
			c = 10 + c - 'a'
		case 'A' <= c && c <= 'F':
			c = 10 + c - 'A'
		default:
			return 0, false
		}
		v = v*16 + uint16(c)
	}
	return v, true
}

// truncateMaxUTF8 truncates b such it contains at least one rune.
//
// The utf8 package currently lacks generic variants, which complicates
// generic functions that operates on either []byte or string.
// As a hack, we always call the utf8 function operating on strings,
// but always truncate the input such that the result is identical.
func truncateMaxUTF8[Bytes ~[]byte | ~string](b Bytes) Bytes {
	if len(b) > utf8.UTFMax {
		return b[:utf8.UTFMax]
	}
	return b
}

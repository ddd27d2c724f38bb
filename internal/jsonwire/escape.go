// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import "unicode/utf8"

// Validity of this table is checked in TestEscapeTable.
//
// escapeCanonical records how each ASCII character is written inside
// a canonical JSON string (RFC 8785, section 3.2.2.2), where 0 means the
// character is copied verbatim, 'u' means it is written as a \u00xx sequence,
// and any other value is the character following the backslash
// in a short escape sequence (e.g., 'n' for \n).
var escapeCanonical = [utf8.RuneSelf]byte{
	'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'b', 't', 'n', 'u', 'f', 'r', 'u', 'u',
	'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u', 'u',
	00, 00, '"', 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
	00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
	00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
	00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, '\\', 00, 00, 00,
	00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
	00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
}

// NeedEscape reports whether c must be escaped within a canonical JSON string.
// Bytes at or above utf8.RuneSelf never need escaping.
func NeedEscape(c byte) bool {
	return c < utf8.RuneSelf && escapeCanonical[c] != 0
}

// IndexEscape returns the index of the first byte in s that must be escaped,
// or len(s) if the entire string may be copied verbatim.
func IndexEscape[Bytes ~[]byte | ~string](s Bytes) int {
	for i := 0; i < len(s); i++ {
		if NeedEscape(s[i]) {
			return i
		}
	}
	return len(s)
}

// AppendEscapedASCII appends the canonical escape sequence for c.
//
// A forward solidus is never escaped in canonical form,
// so it is appended verbatim. Any other character that does not need
// escaping is also appended verbatim.
func AppendEscapedASCII(dst []byte, c byte) []byte {
	if c >= utf8.RuneSelf {
		return append(dst, c)
	}
	switch e := escapeCanonical[c]; e {
	case 0:
		return append(dst, c)
	case 'u':
		return appendEscapedUTF16(dst, uint16(c))
	default:
		return append(dst, '\\', e)
	}
}

func appendEscapedUTF16(dst []byte, x uint16) []byte {
	const hex = "0123456789abcdef"
	return append(dst, '\\', 'u', hex[(x>>12)&0xf], hex[(x>>8)&0xf], hex[(x>>4)&0xf], hex[(x>>0)&0xf])
}

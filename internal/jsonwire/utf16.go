// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"unicode/utf16"
	"unicode/utf8"
)

// SortKey encodes the valid UTF-8 text s as a sequence of UTF-16 code units.
// Supplementary-plane characters are kept as surrogate pairs rather than
// combined code points, which is what RFC 8785, section 3.2.3 orders by.
func SortKey(dst []uint16, s []byte) []uint16 {
	for len(s) > 0 {
		if c := s[0]; c < utf8.RuneSelf {
			dst = append(dst, uint16(c))
			s = s[1:]
			continue
		}
		r, n := utf8.DecodeRune(s)
		dst = utf16.AppendRune(dst, r)
		s = s[n:]
	}
	return dst
}

// CompareUTF16 compares two UTF-16 code unit sequences lexicographically.
// A sequence that is a strict prefix of another sorts first.
func CompareUTF16(x, y []uint16) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return +1
		}
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return +1
	}
	return 0
}

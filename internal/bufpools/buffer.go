// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bufpools

import (
	"bytes"
	"io"
)

const (
	// segmentSize is the minimum size of a staging segment.
	segmentSize = 64 << 10
	// maxRetainSegmentSlots bounds the segment list kept across Reset.
	maxRetainSegmentSlots = 64
)

// Buffer stages a complete document in pooled segments so that it can be
// handed to a destination writer only once the document is known to be valid.
// Written data is never copied to grow the buffer; a full segment is followed
// by a fresh one taken from the pools.
//
// The zero value is an empty buffer ready to use.
type Buffer struct {
	segments [][]byte
	length   int
}

// Len returns the number of bytes written since the last Reset.
func (b *Buffer) Len() int {
	return b.length
}

// Write appends p, filling the last segment before starting another.
// It never returns an error.
func (b *Buffer) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		k := len(b.segments)
		if k == 0 || len(b.segments[k-1]) == cap(b.segments[k-1]) {
			b.segments = append(b.segments, Get(max(segmentSize, len(p))))
			k++
		}
		seg := b.segments[k-1]
		m := min(len(p), cap(seg)-len(seg))
		b.segments[k-1] = append(seg, p[:m]...)
		p = p[m:]
	}
	b.length += n
	return n, nil
}

// WriteTo writes the staged content to w one segment at a time.
// The content is left in place, so a failed write may be retried.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	for _, seg := range b.segments {
		if len(seg) == 0 {
			continue
		}
		m, err := w.Write(seg)
		n += int64(m)
		switch {
		case err != nil:
			return n, err
		case m < len(seg):
			return n, io.ErrShortWrite
		}
	}
	return n, nil
}

// BytesClone returns the staged content as a single newly allocated slice.
func (b *Buffer) BytesClone() []byte {
	return bytes.Join(b.segments, nil)
}

// Reset empties the buffer and returns its segments to the pools.
// The first segment is kept for the next use if it is of ordinary size.
func (b *Buffer) Reset() {
	var first []byte
	for i, seg := range b.segments {
		if i == 0 && cap(seg) <= segmentSize {
			first = seg[:0]
		} else {
			Put(seg)
		}
		b.segments[i] = nil
	}
	b.segments = b.segments[:0]
	if cap(b.segments) > maxRetainSegmentSlots {
		b.segments = nil
	}
	if first != nil {
		b.segments = append(b.segments, first)
	}
	b.length = 0
}

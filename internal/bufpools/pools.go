// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bufpools implements a pool of byte buffers and provides a Buffer
// type that stages output in pooled segments.
//
// Redirect buffers for in-flight object names and values are mostly small,
// so the pools start at 64 bytes rather than at page size.
package bufpools

import (
	"math/bits"
	"sync"
)

const (
	minPooledShift = 6  // minimum shift size of buffer to pool
	maxPooledShift = 24 // buffers larger than 16MiB are left to the GC
	numPools       = maxPooledShift - minPooledShift + 1
)

// TODO(https://go.dev/issue/47657): Use sync.PoolOf.
// You cannot put a []byte into a pool without it allocating every time
// just to store the slice header. Thus, we have a second pool
// just to cache the use of slice headers.
var sliceHeaderPool = sync.Pool{New: func() any { return new([]byte) }}

// bufferPools is a list of buffer pools.
// Each pool manages buffers of capacity within [1<<shift : 2<<shift),
// where shift is (minPooledShift+index).
var bufferPools [numPools]sync.Pool

// Get acquires an empty buffer with enough capacity to hold n bytes.
// The unused buffer content is not guaranteed to be zeroed.
func Get(n int) []byte {
	if n < 1<<minPooledShift {
		n = 1 << minPooledShift
	}
	shift := bits.Len(uint(n - 1))
	if shift > maxPooledShift {
		return make([]byte, 0, n)
	}
	if p, _ := bufferPools[shift-minPooledShift].Get().(*[]byte); p != nil {
		b := (*p)[:0]
		*p = nil
		sliceHeaderPool.Put(p)
		return b
	}
	return make([]byte, 0, 1<<shift)
}

// Put releases a buffer back to the pools.
// The slice need not be originally retrieved by [Get],
// but the caller must relinquish ownership of the slice.
func Put(b []byte) {
	if cap(b) < 1<<minPooledShift {
		return
	}
	// A buffer is filed under the largest class it fully satisfies,
	// so that Get never returns a buffer smaller than requested.
	shift := bits.Len(uint(cap(b))) - 1
	if shift > maxPooledShift {
		return
	}
	p := sliceHeaderPool.Get().(*[]byte)
	*p = b
	bufferPools[shift-minPooledShift].Put(p)
}

// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"io"
	"sync"

	"github.com/go-json-experiment/jcs/internal/bufpools"
)

// TODO(https://golang.org/issue/47657): Use sync.PoolOf.

var formatterPool = sync.Pool{New: func() any { return new(Formatter) }}

// getFormatter retrieves a Formatter that writes to w,
// reusing the stacks of a previously released Formatter.
func getFormatter(w io.Writer, opts ...Options) *Formatter {
	f := formatterPool.Get().(*Formatter)
	f.reset(w, opts...)
	return f
}

func putFormatter(f *Formatter) {
	// Any buffers still held are the remains of a failed call.
	for _, b := range f.buffers {
		bufpools.Put(b)
	}
	for _, b := range f.keys {
		bufpools.Put(b)
	}
	if cap(f.scratch) > 4<<10 {
		f.scratch = nil // avoid pinning a large scratch buffer
	}
	f.reset(nil)
	formatterPool.Put(f)
}

// reset prepares f for a new top-level value written to w.
func (f *Formatter) reset(w io.Writer, opts ...Options) {
	clear(f.objects)
	clear(f.keys)
	clear(f.buffers)
	*f = Formatter{
		wr:      w,
		state:   f.state,
		objects: f.objects[:0],
		keys:    f.keys[:0],
		buffers: f.buffers[:0],
		scratch: f.scratch[:0],
		name:    f.name[:0],
	}
	f.opts.Join(opts...)
	f.state.init()
}

// stagingPool holds buffers that collect a complete canonical document
// so that nothing is written to the destination unless canonicalization
// succeeds.
var stagingPool = sync.Pool{New: func() any { return new(bufpools.Buffer) }}

func getStagingBuffer() *bufpools.Buffer {
	return stagingPool.Get().(*bufpools.Buffer)
}

func putStagingBuffer(b *bufpools.Buffer) {
	b.Reset()
	stagingPool.Put(b)
}

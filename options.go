// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import "github.com/go-json-experiment/jcs/internal/jsonopts"

// Options configure Marshal, Pipe, and related functions.
//
// Options may be specified in any order and later options
// take precedence over earlier ones.
// The zero value of every option matches the behavior of RFC 8785.
type Options = jsonopts.Options

// RejectDuplicateNames specifies that an object with more than one member
// of the same name results in ErrDuplicateName.
// Names are equal if they decode to the same sequence of characters,
// regardless of how they were escaped.
//
// If false, the first member with a given name is kept
// and every later member with that name is dropped.
func RejectDuplicateNames(v bool) Options {
	return jsonopts.FlagOption{Flag: jsonopts.RejectDuplicateNames, Value: v}
}

// JoinOptions coalesces the provided list of options into a single Options.
// Properties set in later options override the value of previously set properties.
func JoinOptions(srcs ...Options) Options {
	var dst jsonopts.Struct
	dst.Join(srcs...)
	return &dst
}

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonopts holds the concrete representation of canonicalization
// options so that the public Options type can remain opaque.
package jsonopts

// Options is the common options type shared by the public API.
// It can only be implemented by types declared in this package.
type Options interface {
	// JCSOptions is exported so related packages can implement Options.
	JCSOptions(NotForPublicUse)
}

// NotForPublicUse is a marker type that an API is for internal use only.
type NotForPublicUse struct{}

// Flags is a set of boolean options.
type Flags uint64

const (
	// RejectDuplicateNames reports an error for a second object member
	// whose name decodes to the same text as an earlier one.
	RejectDuplicateNames Flags = 1 << iota
)

// Struct is the concrete representation of a set of options.
type Struct struct {
	// Presence records which flags were explicitly specified.
	Presence Flags
	// Values records the value of each specified flag.
	Values Flags
}

func (*Struct) JCSOptions(NotForPublicUse) {}

// Get reports whether the flag is set.
func (s *Struct) Get(f Flags) bool { return s.Values&f != 0 }

// Set stores v for the flag and marks it as present.
func (s *Struct) Set(f Flags, v bool) {
	s.Presence |= f
	if v {
		s.Values |= f
	} else {
		s.Values &^= f
	}
}

// Join merges srcs into s, where properties set in latter options
// override previously set properties.
func (s *Struct) Join(srcs ...Options) {
	for _, src := range srcs {
		switch src := src.(type) {
		case nil:
		case *Struct:
			s.Values = (s.Values &^ src.Presence) | (src.Values & src.Presence)
			s.Presence |= src.Presence
		case FlagOption:
			s.Set(src.Flag, src.Value)
		}
	}
}

// FlagOption is a single boolean option.
type FlagOption struct {
	Flag  Flags
	Value bool
}

func (FlagOption) JCSOptions(NotForPublicUse) {}

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"slices"

	"github.com/go-json-experiment/jcs/internal/jsonwire"
)

// property is a single object member whose name and value
// have already been rendered in canonical form.
type property struct {
	// sortKey is the name decoded into UTF-16 code units.
	// Two properties are equivalent iff their sort keys are equal.
	sortKey []uint16
	// key is the name as a canonical JSON string (quoted and escaped).
	key []byte
	// value is the canonical JSON value.
	value []byte
}

// propertySet holds the members of one open object.
// Members are unordered on insert and sorted on read.
type propertySet struct {
	props []property
	names map[string]struct{} // decoded names present in props
}

// insert adds p unless a member with the same decoded name is
// already present. The first member to claim a name is retained.
// It reports whether p was added.
func (s *propertySet) insert(name []byte, p property) bool {
	if s.names == nil {
		s.names = make(map[string]struct{})
	}
	if _, ok := s.names[string(name)]; ok {
		return false
	}
	s.names[string(name)] = struct{}{}
	s.props = append(s.props, p)
	return true
}

// sorted returns the members ordered per RFC 8785, section 3.2.3.
func (s *propertySet) sorted() []property {
	slices.SortFunc(s.props, func(x, y property) int {
		return jsonwire.CompareUTF16(x.sortKey, y.sortKey)
	})
	return s.props
}

// size reports the length of the object once rendered.
func (s *propertySet) size() int {
	n := len("{}")
	for i, p := range s.props {
		if i > 0 {
			n += len(",")
		}
		n += len(p.key) + len(":") + len(p.value)
	}
	return n
}

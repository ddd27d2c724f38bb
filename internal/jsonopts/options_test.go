// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonopts

import "testing"

func TestJoin(t *testing.T) {
	var s Struct
	s.Join(FlagOption{RejectDuplicateNames, true})
	if !s.Get(RejectDuplicateNames) {
		t.Errorf("Get(RejectDuplicateNames) = false, want true")
	}

	var other Struct
	other.Set(RejectDuplicateNames, false)
	s.Join(nil, &other)
	if s.Get(RejectDuplicateNames) {
		t.Errorf("Get(RejectDuplicateNames) = true after override, want false")
	}
	if s.Presence&RejectDuplicateNames == 0 {
		t.Errorf("RejectDuplicateNames not marked present")
	}

	var empty Struct
	s.Set(RejectDuplicateNames, true)
	s.Join(&empty)
	if !s.Get(RejectDuplicateNames) {
		t.Errorf("joining an empty Struct cleared RejectDuplicateNames")
	}
}

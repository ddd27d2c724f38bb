// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import "math/big"

// Handler receives the structure of a single JSON value as a sequence
// of events. It is implemented by Formatter and driven by Walk and WalkText,
// or by any custom source that produces JSON values.
//
// Strings are written as BeginString, then any mix of WriteStringFragment
// and WriteCharEscape, then EndString.
//
// Arrays are written as BeginArray, then for each element
// BeginArrayValue, the element, and EndArrayValue, then EndArray.
//
// Objects are written as BeginObject, then for each member
// BeginObjectKey, a string, EndObjectKey, BeginObjectValue, the value,
// and EndObjectValue, then EndObject.
//
// An error from any method is terminal for the value being written.
type Handler interface {
	WriteNull() error
	WriteBool(bool) error
	WriteInt(int64) error
	WriteUint(uint64) error
	WriteBigInt(*big.Int) error
	WriteFloat32(float32) error
	WriteFloat64(float64) error
	WriteNumberString(string) error

	BeginString() error
	WriteStringFragment(string) error
	WriteCharEscape(byte) error
	EndString() error

	BeginArray() error
	BeginArrayValue(first bool) error
	EndArrayValue() error
	EndArray() error

	BeginObject() error
	BeginObjectKey(first bool) error
	EndObjectKey() error
	BeginObjectValue() error
	EndObjectValue() error
	EndObject() error

	WriteRawFragment(string) error
}

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/go-json-experiment/jcs/internal/jsontest"
)

func TestPipe(t *testing.T) {
	tests := []struct {
		name    jsontest.CaseName
		in      string
		opts    []Options
		want    string
		wantErr error
		wantPtr string
	}{
		{name: jsontest.Name("Literals"), in: " [ null , true , false ] ", want: "[null,true,false]"},
		{name: jsontest.Name("Object"), in: `{"b": false, "c": 12e1, "a": "Hello!"}`, want: `{"a":"Hello!","b":false,"c":120}`},
		{name: jsontest.Name("Numbers"), in: `[0.0, -0, 1E+2, 0.1e1, 123456789012345678901234567890, 4.5e-7, 1e-6]`, want: `[0,0,100,1,1.2345678901234568e+29,4.5e-7,0.000001]`},
		{name: jsontest.Name("StringEscapes"), in: `"A\/é😀\u001F\t\u007f"`, want: "\"A/é😀\\u001f\\t\u007f\""},
		{name: jsontest.Name("NestedSort"), in: `{"z": {"b": [{"d": 1, "c": 2}], "a": {}}, "y": []}`, want: `{"y":[],"z":{"a":{},"b":[{"c":2,"d":1}]}}`},
		{name: jsontest.Name("DuplicateNames"), in: `{"a": 1, "b": 2, "a": 3}`, want: `{"a":1,"b":2}`},
		{name: jsontest.Name("DuplicateEscapedNames"), in: `{"\u0061": 1, "a": 2}`, want: `{"a":1}`},
		{name: jsontest.Name("DuplicateNamesRejected"), in: `{"a": 1, "a": 2}`, opts: []Options{RejectDuplicateNames(true)}, wantErr: ErrDuplicateName, wantPtr: "/a"},
		{name: jsontest.Name("Overflow"), in: `[1e400]`, wantErr: ErrNonFiniteNumber, wantPtr: "/0"},
		{name: jsontest.Name("OverflowNested"), in: `{"x": {"b\/~": [0, 1e999]}}`, wantErr: ErrNonFiniteNumber, wantPtr: "/x/b~1~0/1"},
		{name: jsontest.Name("InvalidNestedNumber"), in: `{"a": [true, {"n": -}]}`, wantErr: ErrInvalidJSON, wantPtr: "/a/1/n"},
		{name: jsontest.Name("Empty"), in: ``, wantErr: ErrInvalidJSON},
		{name: jsontest.Name("Truncated"), in: `{"a":`, wantErr: ErrInvalidJSON},
		{name: jsontest.Name("TrailingComma"), in: `[1,]`, wantErr: ErrInvalidJSON},
		{name: jsontest.Name("LeadingZero"), in: `01`, wantErr: ErrInvalidJSON},
		{name: jsontest.Name("TrailingValue"), in: `1 2`, wantErr: ErrInvalidJSON},
		{name: jsontest.Name("TrailingGarbage"), in: `{} x`, wantErr: ErrInvalidJSON},
		{name: jsontest.Name("SingleQuotes"), in: `{'a': 1}`, wantErr: ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name.Name, func(t *testing.T) {
			got, err := Pipe(tt.in, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%s: Pipe error = %v, want %v", tt.name.Where, err, tt.wantErr)
			}
			if tt.wantPtr != "" {
				var serr *SemanticError
				if !errors.As(err, &serr) || serr.Pointer != tt.wantPtr {
					t.Errorf("%s: Pipe error = %v, want pointer %q", tt.name.Where, err, tt.wantPtr)
				}
			}
			if got != tt.want {
				t.Errorf("%s: Pipe:\n\tgot:  %s\n\twant: %s", tt.name.Where, got, tt.want)
			}

			gotBytes, err := Canonicalize([]byte(tt.in), tt.opts...)
			if !errors.Is(err, tt.wantErr) || string(gotBytes) != tt.want {
				t.Errorf("%s: Canonicalize = (%s, %v), want (%s, %v)", tt.name.Where, gotBytes, err, tt.want, tt.wantErr)
			}

			var buf bytes.Buffer
			err = PipeWrite(&buf, iotest.OneByteReader(strings.NewReader(tt.in)), tt.opts...)
			if !errors.Is(err, tt.wantErr) || buf.String() != tt.want {
				t.Errorf("%s: PipeWrite = (%s, %v), want (%s, %v)", tt.name.Where, buf.String(), err, tt.want, tt.wantErr)
			}

			if tt.wantErr == nil {
				if !IsCanonical([]byte(tt.want), tt.opts...) {
					t.Errorf("%s: IsCanonical(%s) = false, want true", tt.name.Where, tt.want)
				}
				if again, err := Pipe(got, tt.opts...); err != nil || again != got {
					t.Errorf("%s: Pipe is not idempotent: got (%s, %v), want (%s, nil)", tt.name.Where, again, err, got)
				}
			}
		})
	}
}

func TestPipeDeepNesting(t *testing.T) {
	const depth = 1000
	in := strings.Repeat(`[{"a":`, depth) + "1" + strings.Repeat("}]", depth)
	got, err := Pipe(in)
	if err != nil {
		t.Fatalf("Pipe error: %v", err)
	}
	if got != in {
		t.Errorf("Pipe changed already canonical input")
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`{"a":1,"b":2}`, true},
		{`{"b":2,"a":1}`, false},
		{`{"a": 1}`, false},
		{`1.0`, false},
		{`"\/"`, false},
		{`"/"`, true},
		{`{`, false},
	}
	for _, tt := range tests {
		if got := IsCanonical([]byte(tt.in)); got != tt.want {
			t.Errorf("IsCanonical(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

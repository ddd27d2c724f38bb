// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	jsonv1 "encoding/json"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/gowebpki/jcs"

	"github.com/go-json-experiment/jcs/internal/jsontest"
)

type canonicalTestdataEntry struct {
	name jsontest.CaseName
	in   string
	want string
}

var canonicalTestdata = []canonicalTestdataEntry{{
	name: jsontest.Name("RFC8785/Section3.2.2"),
	in: `{
  "numbers": [333333333.33333329, 1E30, 4.50,
              2e-3, 0.000000000000000000000000001],
  "string": "\u20ac$\u000F\u000aA'\u0042\u0022\u005c\\\"\/",
  "literals": [null, true, false]
}`,
	want: `{"literals":[null,true,false],"numbers":[333333333.3333333,1e+30,4.5,0.002,1e-27],"string":"€$\u000f\nA'B\"\\\\\"/"}`,
}, {
	name: jsontest.Name("RFC8785/Section3.2.3"),
	in: `{
  "\u20ac": "Euro Sign",
  "\r": "Carriage Return",
  "\ufb33": "Hebrew Letter Dalet With Dagesh",
  "1": "One",
  "\ud83d\ude00": "Emoji: Grinning Face",
  "\u0080": "Control",
  "\u00f6": "Latin Small Letter O With Diaeresis"
}`,
	want: "{" +
		`"\r":"Carriage Return",` +
		`"1":"One",` +
		"\"\u0080\":\"Control\"," +
		"\"ö\":\"Latin Small Letter O With Diaeresis\"," +
		"\"€\":\"Euro Sign\"," +
		"\"\U0001f600\":\"Emoji: Grinning Face\"," +
		"\"\ufb33\":\"Hebrew Letter Dalet With Dagesh\"" +
		"}",
}, {
	name: jsontest.Name("RFC8785/Section3.2.4"),
	in:   `{"weird": "\u20ac\ud83d\ude00\u00e9"}`,
	want: "{\"weird\":\"\xe2\x82\xac\xf0\x9f\x98\x80\xc3\xa9\"}",
}, {
	name: jsontest.Name("Number"),
	in:   `{"number": 3e2}`,
	want: `{"number":300}`,
}, {
	name: jsontest.Name("Integer"),
	in:   `42`,
	want: `42`,
}, {
	name: jsontest.Name("String"),
	in:   `"42"`,
	want: `"42"`,
}, {
	name: jsontest.Name("EmptyArray"),
	in:   `[ ]`,
	want: `[]`,
}, {
	name: jsontest.Name("EmptyObject"),
	in:   `{ }`,
	want: `{}`,
}, {
	name: jsontest.Name("NumberBoundaries"),
	in:   `[9007199254740991, 9007199254740992, 1e21, 999999999999999900000, 1e-7, 0.000001, 5e-324, 1.7976931348623157e308]`,
	want: `[9007199254740991,9007199254740992,1e+21,999999999999999900000,1e-7,0.000001,5e-324,1.7976931348623157e+308]`,
}, {
	name: jsontest.Name("SurrogateOrder"),
	in:   `{"\uffff": 1, "\ud800\udc00": 2}`,
	want: "{\"\U00010000\":2,\"\uffff\":1}",
}}

func TestCanonicalTestdata(t *testing.T) {
	for _, tt := range canonicalTestdata {
		t.Run(tt.name.Name, func(t *testing.T) {
			got, err := Pipe(tt.in)
			if err != nil {
				t.Fatalf("%s: Pipe error: %v", tt.name.Where, err)
			}
			if got != tt.want {
				t.Errorf("%s: Pipe:\n\tgot:  %s\n\twant: %s", tt.name.Where, got, tt.want)
			}
		})
	}
}

var (
	randomTestdataOnce sync.Once
	randomTestdataLazy []string
)

// randomTestdata returns a deterministic set of JSON documents
// without duplicate names and with a wide variety of numbers and names.
func randomTestdata() []string {
	randomTestdataOnce.Do(func() {
		rn := rand.New(rand.NewSource(8785))
		for i := 0; i < 200; i++ {
			b, err := jsonv1.Marshal(randomValue(rn, 4))
			if err != nil {
				panic(err)
			}
			randomTestdataLazy = append(randomTestdataLazy, string(b))
		}
	})
	return randomTestdataLazy
}

var randomRunes = []rune("aZ09 _-/\\\"\x00\x1f\x7f\u0080\u00f6\u0635\u20ac\ufb33\uffff\U00010000\U0001f600")

func randomName(rn *rand.Rand) string {
	var sb strings.Builder
	for n := rn.Intn(6); n >= 0; n-- {
		sb.WriteRune(randomRunes[rn.Intn(len(randomRunes))])
	}
	return sb.String()
}

func randomNumber(rn *rand.Rand) float64 {
	switch rn.Intn(4) {
	case 0:
		return float64(rn.Int63n(1<<53)) - 1<<52
	case 1:
		return rn.NormFloat64() * math.Pow(10, float64(rn.Intn(60)-30))
	default:
		for {
			f := math.Float64frombits(rn.Uint64())
			if !math.IsNaN(f) && !math.IsInf(f, 0) {
				return f
			}
		}
	}
}

func randomValue(rn *rand.Rand, depth int) any {
	kind := rn.Intn(7)
	if depth == 4 {
		kind = 5 + rn.Intn(2) // always start with a container
	}
	if depth == 0 && kind >= 5 {
		kind = rn.Intn(5)
	}
	switch kind {
	case 0:
		return nil
	case 1:
		return rn.Intn(2) == 0
	case 2, 3:
		return randomNumber(rn)
	case 4:
		return randomName(rn)
	case 5:
		v := make([]any, rn.Intn(5))
		for i := range v {
			v[i] = randomValue(rn, depth-1)
		}
		return v
	default:
		v := make(map[string]any)
		for n := rn.Intn(8); n > 0; n-- {
			v[randomName(rn)] = randomValue(rn, depth-1)
		}
		return v
	}
}

// TestReferenceImplementation verifies that the output agrees
// byte for byte with an independent implementation of RFC 8785.
func TestReferenceImplementation(t *testing.T) {
	inputs := randomTestdata()
	for _, tt := range canonicalTestdata {
		if strings.HasPrefix(tt.in, "{") || strings.HasPrefix(tt.in, "[") {
			inputs = append(inputs, tt.in)
		}
	}
	for i, in := range inputs {
		want, err := jcs.Transform([]byte(in))
		if err != nil {
			t.Fatalf("input %d: jcs.Transform error: %v", i, err)
		}
		got, err := Canonicalize([]byte(in))
		if err != nil {
			t.Fatalf("input %d: Canonicalize error: %v", i, err)
		}
		if string(got) != string(want) {
			t.Errorf("input %d: output mismatch:\n\tinput: %s\n\tgot:   %s\n\twant:  %s", i, in, got, want)
		}
	}
}

// TestMarshalMatchesPipe verifies that walking a Go value
// and decoding its JSON encoding produce identical output.
func TestMarshalMatchesPipe(t *testing.T) {
	rn := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := randomValue(rn, 4)
		b, err := jsonv1.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal error: %v", err)
		}
		want, err := Canonicalize(b)
		if err != nil {
			t.Fatalf("Canonicalize error: %v", err)
		}
		got, err := Marshal(v)
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("Marshal and Canonicalize disagree:\n\tMarshal:      %s\n\tCanonicalize: %s", got, want)
		}
	}
}

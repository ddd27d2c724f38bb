// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"bytes"
	"encoding"
	jsonv1 "encoding/json"
	"errors"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-json-experiment/jcs/internal/jsonwire"
)

// startDetectingCyclesAfter is the depth after which Walk starts
// tracking visited references to report cycles instead of recursing forever.
const startDetectingCyclesAfter = 1000

var (
	bigIntType        = reflect.TypeOf((*big.Int)(nil))
	bigFloatType      = reflect.TypeOf((*big.Float)(nil))
	numberType        = reflect.TypeOf(jsonv1.Number(""))
	rawMessageType    = reflect.TypeOf(jsonv1.RawMessage(nil))
	rawValueType      = reflect.TypeOf(jsontext.Value(nil))
	bytesType         = reflect.TypeOf([]byte(nil))
	jsonMarshalerType = reflect.TypeOf((*jsonv1.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// implementsMarshaler reports whether the v2 "json" package would
// render v using a method rather than by its kind.
func implementsMarshaler(v reflect.Value) bool {
	t := v.Type()
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return false
	}
	return hasMarshalMethod(t) || v.CanAddr() && hasMarshalMethod(reflect.PointerTo(t))
}

func hasMarshalMethod(t reflect.Type) bool {
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return true
	}
	_, ok := t.MethodByName("MarshalJSONV2")
	return ok
}

// Walk emits the events that describe v to h.
//
// Booleans, numbers, strings, slices, arrays, maps, pointers, and
// interfaces are walked directly, where nil pointers and interfaces are null
// while nil slices and maps are empty. Map keys must be strings, integers
// (written in base 10), or types with a marshal method that yields a string.
// A *big.Int or *big.Float is written as the nearest float64.
// A json.Number from encoding/json is written as pre-rendered number text.
// A json.RawMessage or jsontext.Value is written as a raw fragment.
//
// Structs, byte slices, and types that implement encoding/json.Marshaler or
// encoding.TextMarshaler are first rendered by the v2 "json" package
// and the resulting text is walked as if by WalkText.
//
// Errors that arise at a particular location are reported as *SemanticError.
func Walk(h Handler, v any) error {
	w := walker{h: h}
	return w.walk(reflect.ValueOf(v))
}

type walker struct {
	h     Handler
	path  []string // JSON pointer tokens to the current value
	depth int
	seen  map[visit]struct{}
}

// visit identifies a reference that is currently being walked.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

var pointerTokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointer formats the current path as a JSON Pointer (RFC 6901).
func (w *walker) pointer() string {
	var sb strings.Builder
	for _, tok := range w.path {
		sb.WriteByte('/')
		sb.WriteString(pointerTokenEscaper.Replace(tok))
	}
	return sb.String()
}

// wrap annotates err with the current location unless it is already located.
func (w *walker) wrap(err error, t reflect.Type) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*SemanticError); ok {
		return err
	}
	return &SemanticError{Pointer: w.pointer(), GoType: t, Err: err}
}

func (w *walker) walk(v reflect.Value) error {
	if !v.IsValid() {
		return w.wrap(w.h.WriteNull(), nil)
	}
	t := v.Type()
	switch t {
	case bigIntType:
		if v.IsNil() {
			return w.wrap(w.h.WriteNull(), t)
		}
		return w.wrap(w.h.WriteBigInt(v.Interface().(*big.Int)), t)
	case bigFloatType:
		if v.IsNil() {
			return w.wrap(w.h.WriteNull(), t)
		}
		f, _ := v.Interface().(*big.Float).Float64()
		return w.wrap(w.h.WriteFloat64(f), t)
	case numberType:
		return w.wrap(w.h.WriteNumberString(v.String()), t)
	case rawMessageType, rawValueType:
		return w.wrap(w.h.WriteRawFragment(string(v.Bytes())), t)
	}
	if implementsMarshaler(v) {
		return w.walkMarshaled(v)
	}

	switch t.Kind() {
	case reflect.Bool:
		return w.wrap(w.h.WriteBool(v.Bool()), t)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.wrap(w.h.WriteInt(v.Int()), t)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return w.wrap(w.h.WriteUint(v.Uint()), t)
	case reflect.Float32:
		return w.wrap(w.h.WriteFloat32(float32(v.Float())), t)
	case reflect.Float64:
		return w.wrap(w.h.WriteFloat64(v.Float()), t)
	case reflect.String:
		return w.wrap(writeString(w.h, v.String()), t)
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return w.wrap(w.h.WriteNull(), t)
		}
		if t.Kind() == reflect.Interface {
			return w.walk(v.Elem())
		}
		leave, err := w.enter(v, t)
		if err != nil {
			return err
		}
		defer leave()
		return w.walk(v.Elem())
	case reflect.Slice:
		if t.AssignableTo(bytesType) {
			return w.walkMarshaled(v) // base64 encoded string
		}
		leave, err := w.enter(v, t)
		if err != nil {
			return err
		}
		defer leave()
		return w.walkArray(v)
	case reflect.Array:
		if reflect.SliceOf(t.Elem()).AssignableTo(bytesType) {
			return w.walkMarshaled(v)
		}
		return w.walkArray(v)
	case reflect.Map:
		leave, err := w.enter(v, t)
		if err != nil {
			return err
		}
		defer leave()
		return w.walkObject(v)
	case reflect.Struct:
		return w.walkMarshaled(v)
	default:
		return w.wrap(ErrUnsupportedType, t)
	}
}

// enter tracks the reference v once the walk is deep enough
// that a cycle is plausible. The returned func must be called on exit.
func (w *walker) enter(v reflect.Value, t reflect.Type) (leave func(), err error) {
	w.depth++
	if w.depth <= startDetectingCyclesAfter || v.IsNil() {
		return func() { w.depth-- }, nil
	}
	if w.seen == nil {
		w.seen = make(map[visit]struct{})
	}
	k := visit{ptr: v.Pointer(), typ: t}
	if t.Kind() == reflect.Slice {
		k.len = v.Len()
	}
	if _, ok := w.seen[k]; ok {
		w.depth--
		return nil, w.wrap(&wrapError{kind: ErrUnsupportedType, detail: "cycle through " + t.String()}, t)
	}
	w.seen[k] = struct{}{}
	return func() { delete(w.seen, k); w.depth-- }, nil
}

func (w *walker) walkArray(v reflect.Value) error {
	h := w.h
	if err := h.BeginArray(); err != nil {
		return w.wrap(err, v.Type())
	}
	for i := 0; i < v.Len(); i++ {
		w.path = append(w.path, strconv.Itoa(i))
		if err := h.BeginArrayValue(i == 0); err != nil {
			return w.wrap(err, v.Type())
		}
		if err := w.walk(v.Index(i)); err != nil {
			return err
		}
		if err := h.EndArrayValue(); err != nil {
			return w.wrap(err, v.Type())
		}
		w.path = w.path[:len(w.path)-1]
	}
	return w.wrap(h.EndArray(), v.Type())
}

// walkObject emits map entries in iteration order
// since the handler is responsible for sorting them.
func (w *walker) walkObject(v reflect.Value) error {
	h := w.h
	if err := h.BeginObject(); err != nil {
		return w.wrap(err, v.Type())
	}
	first := true
	for iter := v.MapRange(); iter.Next(); {
		name, err := mapKeyName(iter.Key())
		if err != nil {
			if name != "" {
				w.path = append(w.path, name)
			}
			return w.wrap(err, v.Type().Key())
		}
		w.path = append(w.path, name)
		if err := h.BeginObjectKey(first); err != nil {
			return w.wrap(err, v.Type())
		}
		if err := writeString(h, name); err != nil {
			return w.wrap(err, v.Type().Key())
		}
		if err := h.EndObjectKey(); err != nil {
			return w.wrap(err, v.Type())
		}
		if err := h.BeginObjectValue(); err != nil {
			return w.wrap(err, v.Type())
		}
		if err := w.walk(iter.Value()); err != nil {
			return err
		}
		if err := h.EndObjectValue(); err != nil {
			return w.wrap(err, v.Type())
		}
		w.path = w.path[:len(w.path)-1]
		first = false
	}
	return w.wrap(h.EndObject(), v.Type())
}

// walkMarshaled renders v with the v2 "json" package and walks the result.
func (w *walker) walkMarshaled(v reflect.Value) error {
	t := v.Type()
	if v.CanAddr() {
		v = v.Addr() // so that pointer receiver methods are used
	}
	b, err := json.Marshal(v.Interface(), marshalOptions)
	if err != nil {
		var werr *wrapError
		if errors.As(err, &werr) {
			return w.wrap(werr, t)
		}
		return w.wrap(&wrapError{kind: ErrUnsupportedType, err: err}, t)
	}
	dec := jsontext.NewDecoder(bytes.NewReader(b), jsontext.AllowDuplicateNames(true))
	err = walkTokens(w.h, dec)
	if serr, ok := err.(*SemanticError); ok {
		return &SemanticError{Pointer: w.pointer() + serr.Pointer, GoType: t, Err: serr.Err}
	}
	return w.wrap(err, t)
}

// marshalOptions makes the v2 "json" package render values nested within
// structs and marshalers the same way Walk renders them.
var marshalOptions json.Options

func init() {
	marshalOptions = json.WithMarshalers(json.MarshalFuncV2(marshalAsWalked))
}

// marshalAsWalked renders numbers the way Walk does, widening them to
// float64, and reports the values that Walk rejects using the same errors.
// Everything else is left to the v2 "json" package.
func marshalAsWalked(enc *jsontext.Encoder, v any, _ json.Options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem() // values are provided by reference
	}
	if !rv.IsValid() {
		return json.SkipFunc
	}
	switch rv.Type() {
	case bigIntType, bigFloatType:
		if rv.IsNil() {
			return json.SkipFunc
		}
		rv = rv.Elem()
	}
	switch rv.Type() {
	case bigIntType.Elem():
		return writeFloat(enc, jsonwire.BigIntToFloat(addrOf(rv).(*big.Int)))
	case bigFloatType.Elem():
		f, _ := addrOf(rv).(*big.Float).Float64()
		return writeFloat(enc, f)
	case numberType:
		f, err := jsonwire.ParseNumber(rv.String())
		if err != nil {
			return &wrapError{kind: ErrUnparsableNumber, detail: strconv.Quote(rv.String())}
		}
		return writeFloat(enc, f)
	}
	if implementsMarshaler(rv) {
		return json.SkipFunc
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return writeFloat(enc, rv.Float())
	case reflect.String:
		if s := rv.String(); !utf8.ValidString(s) {
			return &wrapError{kind: ErrInvalidUTF8, detail: strconv.Quote(s), err: jsonwire.ErrInvalidUTF8}
		}
	case reflect.Map:
		for iter := rv.MapRange(); iter.Next(); {
			if _, err := mapKeyName(iter.Key()); err != nil {
				return err
			}
		}
	}
	return json.SkipFunc
}

func writeFloat(enc *jsontext.Encoder, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &wrapError{kind: ErrNonFiniteNumber, detail: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	return enc.WriteToken(jsontext.Float(f))
}

// addrOf returns a pointer to the value held by v.
func addrOf(v reflect.Value) any {
	if v.CanAddr() {
		return v.Addr().Interface()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Interface()
}

// mapKeyName returns the object name for the map key k.
// An invalid string key is returned along with the error.
func mapKeyName(k reflect.Value) (string, error) {
	if k.Kind() == reflect.Interface {
		if k.IsNil() {
			return "", &wrapError{kind: ErrUnsupportedKey, detail: "nil " + k.Type().String()}
		}
		k = k.Elem()
	}
	t := k.Type()
	switch {
	case hasMarshalMethod(t):
		b, err := json.Marshal(k.Interface(), marshalOptions)
		if err != nil {
			return "", &wrapError{kind: ErrUnsupportedKey, detail: t.String(), err: err}
		}
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return "", &wrapError{kind: ErrUnsupportedKey, detail: t.String() + " does not marshal as a JSON string"}
		}
		return name, nil
	case t.Kind() == reflect.String:
		name := k.String()
		if !utf8.ValidString(name) {
			return name, &wrapError{kind: ErrInvalidUTF8, detail: strconv.Quote(name), err: jsonwire.ErrInvalidUTF8}
		}
		return name, nil
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	default:
		return "", &wrapError{kind: ErrUnsupportedKey, detail: t.String()}
	}
}

// writeString emits s as string events, splitting it at every character
// that requires escaping.
func writeString(h Handler, s string) error {
	if !utf8.ValidString(s) {
		return &wrapError{kind: ErrInvalidUTF8, detail: strconv.Quote(s), err: jsonwire.ErrInvalidUTF8}
	}
	if err := h.BeginString(); err != nil {
		return err
	}
	for len(s) > 0 {
		i := jsonwire.IndexEscape(s)
		if i > 0 {
			if err := h.WriteStringFragment(s[:i]); err != nil {
				return err
			}
		}
		if i == len(s) {
			break
		}
		if err := h.WriteCharEscape(s[i]); err != nil {
			return err
		}
		s = s[i+1:]
	}
	return h.EndString()
}

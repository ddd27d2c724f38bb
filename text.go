// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jcs

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// WalkText decodes exactly one JSON value from r and emits the events
// that describe it to h. Numbers are passed through as pre-rendered text
// and strings are passed in decoded form.
//
// Input that is not valid JSON, including any non-whitespace data
// after the value, results in ErrInvalidJSON.
// Duplicate object names are not rejected here; that is left to h.
// Errors within the value are reported as *SemanticError
// with a JSON Pointer to the offending location.
func WalkText(h Handler, r io.Reader) error {
	dec := jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(true))
	if err := walkTokens(h, dec); err != nil {
		return err
	}
	switch _, err := dec.ReadToken(); {
	case err == io.EOF:
		return nil
	case err == nil:
		return &wrapError{kind: ErrInvalidJSON, detail: "unexpected data after top-level value"}
	default:
		return &wrapError{kind: ErrInvalidJSON, err: err}
	}
}

// textFrame is the progress within one open container.
type textFrame struct {
	kind      jsontext.Kind // '[' or '{'
	length    int           // number of completed elements or members
	afterName bool          // whether the next token in an object is a value
	name      string        // name of the current object member
}

// walkTokens reads the next JSON value from dec and emits it to h.
func walkTokens(h Handler, dec *jsontext.Decoder) error {
	tw := textWalker{h: h, dec: dec}
	if err := tw.walk(); err != nil {
		return &SemanticError{Pointer: tw.pointer(), Err: err}
	}
	return nil
}

// textWalker tracks nesting on an explicit stack so that depth is bounded
// only by the decoder.
type textWalker struct {
	h     Handler
	dec   *jsontext.Decoder
	stack []textFrame
}

// pointer formats the location of the current element or member
// of every open container as a JSON Pointer.
func (tw *textWalker) pointer() string {
	var sb strings.Builder
	for _, f := range tw.stack {
		sb.WriteByte('/')
		if f.kind == '[' {
			sb.WriteString(strconv.Itoa(f.length))
		} else {
			sb.WriteString(pointerTokenEscaper.Replace(f.name))
		}
	}
	return sb.String()
}

func (tw *textWalker) walk() error {
	h := tw.h
	for {
		tok, err := tw.dec.ReadToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return &wrapError{kind: ErrInvalidJSON, err: err}
		}
		k := tok.Kind()

		// Open the element or member that this token begins.
		if n := len(tw.stack); n > 0 && k != ']' && k != '}' {
			top := &tw.stack[n-1]
			switch {
			case top.kind == '[':
				err = h.BeginArrayValue(top.length == 0)
			case !top.afterName:
				top.name = tok.String()
				if err := h.BeginObjectKey(top.length == 0); err != nil {
					return err
				}
				if err := writeString(h, top.name); err != nil {
					return err
				}
				if err := h.EndObjectKey(); err != nil {
					return err
				}
				top.afterName = true
				continue
			default:
				err = h.BeginObjectValue()
			}
			if err != nil {
				return err
			}
		}

		switch k {
		case 'n':
			err = h.WriteNull()
		case 'f', 't':
			err = h.WriteBool(tok.Bool())
		case '"':
			err = writeString(h, tok.String())
		case '0':
			err = h.WriteNumberString(tok.String())
		case '[', '{':
			if k == '[' {
				err = h.BeginArray()
			} else {
				err = h.BeginObject()
			}
			if err != nil {
				return err
			}
			tw.stack = append(tw.stack, textFrame{kind: k})
			continue
		case ']':
			err = h.EndArray()
			tw.stack = tw.stack[:len(tw.stack)-1]
		case '}':
			err = h.EndObject()
			tw.stack = tw.stack[:len(tw.stack)-1]
		}
		if err != nil {
			return err
		}

		// Close the element or member that was just completed.
		n := len(tw.stack)
		if n == 0 {
			return nil
		}
		top := &tw.stack[n-1]
		if top.kind == '[' {
			err = h.EndArrayValue()
		} else {
			err = h.EndObjectValue()
			top.afterName = false
		}
		if err != nil {
			return err
		}
		top.length++
	}
}

// Package xencoding wraps fallible encoding primitives (base64, JSON) so they
// report failures as result.Err with a human readable string instead of a Go
// error or a panic.
//
// Every error string has the form "<label> error: <cause>".
package xencoding

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/WinPooh32/optres/result"
)

const (
	labelBase64Encode  = "base64_encode"
	labelBase64Decode  = "base64_decode"
	labelJSONStringify = "json_stringify"
	labelJSONParse     = "json_parse"
)

var std = NewCodec(DefaultHost())

// Base64Encode encodes s with the default host primitive.
func Base64Encode(s string) result.Result[string, string] {
	return std.Base64Encode(s)
}

// Base64Decode decodes s with the default host primitive.
func Base64Decode(s string) result.Result[string, string] {
	return std.Base64Decode(s)
}

// JSONStringify encodes v as JSON text. The output is compact unless pretty
// is set, in which case it is indented with two spaces. HTML characters are
// kept as is and no trailing newline is written.
func JSONStringify(v any, pretty bool) (res result.Result[string, string]) {
	defer recoverInto(labelJSONStringify, &res)

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(v); err != nil {
		return failure[string](labelJSONStringify, err)
	}

	return result.Ok[string, string](string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))))
}

// JSONParse decodes text into a value of type T.
func JSONParse[T any](text string) (res result.Result[T, string]) {
	defer recoverInto(labelJSONParse, &res)

	var v T

	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return failure[T](labelJSONParse, err)
	}

	return result.Ok[T, string](v)
}

func failure[T any](label string, cause any) result.Result[T, string] {
	if err, ok := cause.(error); ok {
		return result.Err[T](fmt.Sprintf("%s error: %s", label, err.Error()))
	}

	return result.Err[T](fmt.Sprintf("%s error: %v", label, cause))
}

// recoverInto turns a panic raised by a wrapped primitive into an Err.
func recoverInto[T any](label string, res *result.Result[T, string]) {
	if r := recover(); r != nil {
		*res = failure[T](label, r)
	}
}

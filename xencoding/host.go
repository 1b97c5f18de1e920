package xencoding

import (
	"github.com/WinPooh32/optres/result"
)

// Host is the platform primitive the base64 helpers call through.
type Host interface {
	EncodeBase64(s string) (string, error)
	DecodeBase64(s string) (string, error)
}

// DefaultHost returns the primitive for the current environment: the
// browser's btoa/atob when running under js/wasm inside a page, the Go
// standard encoder otherwise.
func DefaultHost() Host {
	if IsBrowser() {
		return browserHost()
	}

	return NativeHost{}
}

// Codec runs the base64 helpers on top of an injected Host.
type Codec struct {
	host Host
}

// NewCodec returns a Codec calling through h.
func NewCodec(h Host) *Codec {
	return &Codec{host: h}
}

// Base64Encode encodes s.
func (c *Codec) Base64Encode(s string) (res result.Result[string, string]) {
	defer recoverInto(labelBase64Encode, &res)

	out, err := c.host.EncodeBase64(s)
	if err != nil {
		return failure[string](labelBase64Encode, err)
	}

	return result.Ok[string, string](out)
}

// Base64Decode decodes s.
func (c *Codec) Base64Decode(s string) (res result.Result[string, string]) {
	defer recoverInto(labelBase64Decode, &res)

	out, err := c.host.DecodeBase64(s)
	if err != nil {
		return failure[string](labelBase64Decode, err)
	}

	return result.Ok[string, string](out)
}

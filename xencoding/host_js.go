//go:build js && wasm

package xencoding

import (
	"fmt"
	"syscall/js"
)

// IsBrowser reports whether a browser style global scope is present.
func IsBrowser() bool {
	global := js.Global()

	return global.Get("window").Truthy() || global.Get("document").Truthy()
}

func browserHost() Host {
	return jsHost{global: js.Global()}
}

// jsHost calls the page's btoa and atob.
type jsHost struct {
	global js.Value
}

func (h jsHost) EncodeBase64(s string) (string, error) {
	return h.call("btoa", s)
}

func (h jsHost) DecodeBase64(s string) (string, error) {
	return h.call("atob", s)
}

// call converts a thrown JS exception into an error.
func (h jsHost) call(fn, arg string) (out string, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if jsErr, ok := r.(js.Error); ok {
			err = fmt.Errorf("%s: %s", fn, jsErr.Get("message").String())
			return
		}

		err = fmt.Errorf("%s: %v", fn, r)
	}()

	return h.global.Call(fn, arg).String(), nil
}

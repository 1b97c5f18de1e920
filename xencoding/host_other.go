//go:build !(js && wasm)

package xencoding

// IsBrowser reports whether a browser style global scope is present.
// Outside of js/wasm it never is.
func IsBrowser() bool {
	return false
}

func browserHost() Host {
	return NativeHost{}
}

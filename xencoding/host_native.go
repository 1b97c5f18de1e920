package xencoding

import (
	"encoding/base64"
	"fmt"
)

// NativeHost encodes with the standard base64 alphabet, with padding.
type NativeHost struct{}

func (NativeHost) EncodeBase64(s string) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(s)), nil
}

func (NativeHost) DecodeBase64(s string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decode string: %w", err)
	}

	return string(data), nil
}

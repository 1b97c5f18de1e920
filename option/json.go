package option

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// MarshalJSON encodes Some(v) as the JSON encoding of v and None as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.some {
		return jsonNull, nil
	}

	data, err := json.Marshal(o.value)
	if err != nil {
		return nil, fmt.Errorf("marshal option value: %w", err)
	}

	return data, nil
}

// UnmarshalJSON decodes null into None and any other JSON value into Some.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = None[T]()
		return nil
	}

	var v T

	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal option value: %w", err)
	}

	*o = Some(v)

	return nil
}

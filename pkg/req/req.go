package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxBodySize = 1 << 20

// Decode - читает JSON тело запроса в T. Пустое тело дает нулевое значение T
func Decode[T any](body io.Reader) (T, error) {
	var payload T
	if body == nil {
		return payload, nil
	}

	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, nil
		}
		return payload, fmt.Errorf("invalid request body: %w", err)
	}

	return payload, nil
}

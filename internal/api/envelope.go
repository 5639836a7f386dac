package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// decodeList decodes a list endpoint response that may be either a bare
// JSON array or an envelope object holding the array under "data" or a
// resource-named field ("lists", "cards", ...). The tolerance lives here
// so every caller sees a plain typed slice.
func decodeList[T any](data []byte, field string) ([]T, error) {
	// Bare array first - the cheap common case
	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	// Envelope object: look under the resource field, then "data"
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("response is neither an array nor an object: %w", err)
	}

	for _, key := range []string{field, "data"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %q field: %w", key, err)
		}
		return items, nil
	}

	return nil, fmt.Errorf("no %q or \"data\" field in response envelope", field)
}

// getList issues an authenticated GET against a list endpoint and decodes
// the tolerant envelope. A free function because methods cannot carry type
// parameters.
func getList[T any](ctx context.Context, c *Client, path, field string) ([]T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	items, err := decodeList[T](raw, field)
	if err != nil {
		return nil, statusError(200, err.Error())
	}
	return items, nil
}

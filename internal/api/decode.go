package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseJSON decodes a response body that may have arrived as an opaque
// byte payload even when semantically JSON. Empty or whitespace-only
// bodies yield (nil, nil) rather than a parse error. Malformed JSON is
// returned as an error: on the success path it signals a contract
// break with the backend and must propagate.
func ParseJSON[T any](body []byte) (*T, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: decode payload: %w", err)
	}
	return &out, nil
}

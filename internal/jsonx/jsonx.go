// Package jsonx contains small JSON helpers for tolerating known server
// quirks, kept out of the business logic.
package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNoObject is returned when a buffer contains no well-formed JSON object.
var ErrNoObject = errors.New("no json object found")

// LastObject returns the last well-formed JSON object in b, discarding any
// leading bytes. The registration server is known to occasionally answer
// with two JSON objects concatenated without a separator; only the final
// object carries the actual result.
func LastObject(b []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimRight(b, " \t\r\n")
	for i := len(trimmed) - 1; i >= 0; i-- {
		if trimmed[i] != '{' {
			continue
		}
		candidate := trimmed[i:]
		if json.Valid(candidate) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, ErrNoObject
}

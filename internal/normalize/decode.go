package normalize

import (
	"bytes"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmptyPayload is returned by Decode for an empty body.
var ErrEmptyPayload = errors.New("empty payload")

// Decode parses a raw provider payload into loosely-typed maps and slices.
func Decode(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}
	var doc any
	if err := jsonAPI.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Valid reports whether raw is syntactically valid JSON.
func Valid(raw []byte) bool {
	return jsonAPI.Valid(bytes.TrimSpace(raw))
}

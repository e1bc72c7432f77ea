package model

import (
	"encoding/json"
	"fmt"
)

// EncodeParseResult serializes a ParseResult to its canonical JSON form.
// The encoding is lossless: every field on the in-memory entity survives.
func EncodeParseResult(r *ParseResult) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse result for %s: %w", r.FilePath, err)
	}
	return data, nil
}

// DecodeParseResult reconstructs a ParseResult from its JSON encoding.
// decode(encode(r)) yields an entity equal to r.
func DecodeParseResult(data []byte) (*ParseResult, error) {
	r := &ParseResult{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to decode parse result: %w", err)
	}
	return r, nil
}

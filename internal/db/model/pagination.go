package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Page tokens travel in query strings, so they are URL safe and unpadded.
var pageTokenEncoding = base64.RawURLEncoding

// EncodePageToken serializes the cursor of the last returned item.
func EncodePageToken[C any](cursor C) (string, error) {
	raw, err := json.Marshal(cursor)
	if err != nil {
		return "", fmt.Errorf("encoding page cursor: %w", err)
	}
	return pageTokenEncoding.EncodeToString(raw), nil
}

func DecodePageToken[C any](token string) (*C, error) {
	if token == "" {
		return nil, fmt.Errorf("empty page token")
	}
	raw, err := pageTokenEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("page token is not base64: %w", err)
	}
	var cursor C
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return nil, fmt.Errorf("page token is not a cursor: %w", err)
	}
	return &cursor, nil
}

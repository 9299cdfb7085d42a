package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is the paginated list envelope some endpoints return.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// DecodeList accepts either a bare JSON array or a Page envelope and returns
// the items. An empty body decodes to an empty list.
func DecodeList[T any](raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	switch raw[0] {
	case '[':
		items := []T{}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	case '{':
		var page Page[T]
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("decode page: %w", err)
		}
		if page.Results == nil {
			return []T{}, nil
		}
		return page.Results, nil
	default:
		return nil, fmt.Errorf("decode list: unexpected payload starting with %q", raw[0])
	}
}

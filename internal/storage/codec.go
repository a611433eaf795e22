package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Record is a persisted value that can check its own shape.
type Record interface {
	Validate() error
}

// LoadList decodes the list stored under key. A missing key returns
// ok=false. A malformed value, or one holding an invalid record, degrades
// to an empty list and is logged; only storage failures are returned.
func LoadList[T Record](kv KV, key string) (items []T, ok bool, err error) {
	raw, ok, err := kv.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}

	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("discarding malformed stored list", "key", key, "error", err)
		return []T{}, true, nil
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			slog.Warn("discarding stored list with invalid record", "key", key, "error", err)
			return []T{}, true, nil
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

// SaveList encodes items and stores them under key.
func SaveList[T any](kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return saveJSON(kv, key, items)
}

// LoadValue decodes a single record stored under key. Malformed or invalid
// values are reported as missing.
func LoadValue[T Record](kv KV, key string) (value T, ok bool, err error) {
	raw, ok, err := kv.Get(key)
	if err != nil || !ok {
		return value, false, err
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		slog.Warn("discarding malformed stored value", "key", key, "error", err)
		var zero T
		return zero, false, nil
	}
	if err := value.Validate(); err != nil {
		slog.Warn("discarding invalid stored value", "key", key, "error", err)
		var zero T
		return zero, false, nil
	}
	return value, true, nil
}

// SaveValue encodes v and stores it under key.
func SaveValue(kv KV, key string, v any) error {
	return saveJSON(kv, key, v)
}

func saveJSON(kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(key, string(b))
}

package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// loadJSON decodes the value under key into v. found is false when the key
// is absent or holds an empty value; v is left untouched in that case.
func loadJSON(ctx context.Context, store KVStore, key string, v interface{}) (found bool, err error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, &MalformedError{Key: key, Err: err}
	}
	return true, nil
}

func saveJSON(ctx context.Context, store KVStore, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// MalformedError reports a stored value that does not have the expected shape.
type MalformedError struct {
	Key string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed value under %q: %v", e.Key, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

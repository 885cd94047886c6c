// Package repositories maps domain records onto storage.KV keys as JSON.
package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"tracker/backend/storage"
)

func getJSON(ctx context.Context, kv storage.KV, key string, dest interface{}) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func putJSON(ctx context.Context, kv storage.KV, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Put(ctx, key, raw)
}

func nextID(ctx context.Context, kv storage.KV, seq string) (uint, error) {
	n, err := kv.Incr(ctx, seq)
	if err != nil {
		return 0, fmt.Errorf("next id from %q: %w", seq, err)
	}
	return uint(n), nil
}

func decode(rec storage.Record, dest interface{}) error {
	if err := json.Unmarshal(rec.Value, dest); err != nil {
		return fmt.Errorf("decode %q: %w", rec.Key, err)
	}
	return nil
}

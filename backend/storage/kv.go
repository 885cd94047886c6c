// Package storage provides the key-value abstraction every repository is
// built on, with in-memory, SQL (via GORM) and Redis backends.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

type Record struct {
	Key   string
	Value []byte
}

// KV is a flat byte store. List returns records whose key starts with prefix,
// sorted by key ascending. Incr atomically increments a counter that lives in
// a namespace separate from regular keys and returns the new value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	List(ctx context.Context, prefix string) ([]Record, error)
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

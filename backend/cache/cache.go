// Package cache stores derived per-user read models with a TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrMiss = errors.New("cache miss")

type Cache interface {
	// Get decodes the cached value into dest or returns ErrMiss.
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// DeletePattern removes every key matching a glob pattern such as "cache:1:*".
	DeletePattern(ctx context.Context, pattern string) error
}

// UserKey namespaces a cache key under a user so it can be dropped on write.
func UserKey(userID uint, parts ...string) string {
	key := fmt.Sprintf("cache:%d", userID)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func UserPattern(userID uint) string {
	return fmt.Sprintf("cache:%d:*", userID)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) error                { return ErrMiss }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) DeletePattern(context.Context, string) error                   { return nil }

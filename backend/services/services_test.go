package services

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tracker/backend/cache"
	"tracker/backend/config"
	"tracker/backend/storage"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// mapCache is an in-process cache.Cache used to observe invalidation.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (m *mapCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *mapCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *mapCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "testsecret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
		CacheTTL:   time.Minute,
	}
}

func newTestServices(t *testing.T, clk *clock, opts ...Option) *Services {
	t.Helper()
	opts = append([]Option{WithClock(clk.Now)}, opts...)
	return New(storage.NewMemoryKV(), testConfig(), zap.NewNop(), opts...)
}

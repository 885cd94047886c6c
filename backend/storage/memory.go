package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type MemoryKV struct {
	mu       sync.RWMutex
	data     map[string][]byte
	counters map[string]int64
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data:     make(map[string][]byte),
		counters: make(map[string]int64),
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(v), nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = cloneBytes(value)
	return nil
}

func (m *MemoryKV) List(_ context.Context, prefix string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Record{Key: k, Value: cloneBytes(v)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryKV) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[key]++
	return m.counters[key], nil
}

func (m *MemoryKV) Close() error { return nil }

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

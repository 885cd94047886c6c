package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	runKVSuite(t, NewMemoryKV(), "")
}

func TestMemoryKVConcurrentIncr(t *testing.T) {
	runKVConcurrentIncr(t, NewMemoryKV(), "")
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	buf := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", buf))
	buf[0] = 'z'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'z'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

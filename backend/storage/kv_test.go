package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runKVSuite exercises the KV contract. ns keeps keys of shared backends apart.
func runKVSuite(t *testing.T, kv KV, ns string) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := kv.Get(ctx, ns+"missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put then get overwrites", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, ns+"a", []byte("one")))
		require.NoError(t, kv.Put(ctx, ns+"a", []byte("two")))

		got, err := kv.Get(ctx, ns+"a")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), got)
	})

	t.Run("list by prefix is sorted and bounded", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, ns+"entries/1/2025-01-03", []byte("c")))
		require.NoError(t, kv.Put(ctx, ns+"entries/1/2025-01-01", []byte("a")))
		require.NoError(t, kv.Put(ctx, ns+"entries/1/2025-01-02", []byte("b")))
		require.NoError(t, kv.Put(ctx, ns+"entries/10/2025-01-01", []byte("other user")))

		recs, err := kv.List(ctx, ns+"entries/1/")
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, ns+"entries/1/2025-01-01", recs[0].Key)
		assert.Equal(t, []byte("a"), recs[0].Value)
		assert.Equal(t, ns+"entries/1/2025-01-03", recs[2].Key)
	})

	t.Run("list treats wildcard characters literally", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, ns+"odd_%*/x", []byte("x")))
		require.NoError(t, kv.Put(ctx, ns+"oddAB/y", []byte("y")))

		recs, err := kv.List(ctx, ns+"odd_%*/")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, ns+"odd_%*/x", recs[0].Key)
	})

	t.Run("list empty prefix match", func(t *testing.T) {
		recs, err := kv.List(ctx, ns+"nothing-here/")
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("incr is sequential and separate from records", func(t *testing.T) {
		n, err := kv.Incr(ctx, ns+"seq")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		n, err = kv.Incr(ctx, ns+"seq")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		_, err = kv.Get(ctx, ns+"seq")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func runKVConcurrentIncr(t *testing.T, kv KV, ns string) {
	ctx := context.Background()
	const workers = 20

	var wg sync.WaitGroup
	seen := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := kv.Incr(ctx, ns+"concurrent")
			if assert.NoError(t, err) {
				seen <- n
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool)
	for n := range seen {
		unique[n] = true
	}
	assert.Len(t, unique, workers, fmt.Sprintf("expected %d distinct ids", workers))
}

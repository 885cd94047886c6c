package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisKV keeps records under "kv:" and counters under "kvseq:" so that
// counters never show up in List.
type RedisKV struct {
	client *redis.Client
}

const (
	redisRecordPrefix  = "kv:"
	redisCounterPrefix = "kvseq:"
	redisScanCount     = 100
)

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, redisRecordPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, nil
}

func (r *RedisKV) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisRecordPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) List(ctx context.Context, prefix string) ([]Record, error) {
	pattern := redisRecordPrefix + escapeGlob(prefix) + "*"

	var keys []string
	var cursor uint64
	for {
		batch, next, err := r.client.Scan(ctx, cursor, pattern, redisScanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan %q: %w", prefix, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget %q: %w", prefix, err)
	}

	out := make([]Record, 0, len(keys))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// deleted between SCAN and MGET
			continue
		}
		out = append(out, Record{
			Key:   strings.TrimPrefix(keys[i], redisRecordPrefix),
			Value: []byte(s),
		})
	}
	return out, nil
}

func (r *RedisKV) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, redisCounterPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %q: %w", key, err)
	}
	return n, nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

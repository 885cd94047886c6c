// Package services holds the tracker's use cases on top of the repositories:
// accounts, daily entries and the habit grid.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tracker/backend/cache"
	"tracker/backend/config"
	"tracker/backend/repositories"
	"tracker/backend/storage"
)

type Services struct {
	Auth    *AuthService
	Entries *EntryService
	Habits  *HabitService
}

type options struct {
	now   func() time.Time
	cache cache.Cache
}

type Option func(*options)

// WithClock overrides time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

func New(kv storage.KV, cfg *config.Config, logger *zap.Logger, opts ...Option) *Services {
	o := options{now: time.Now, cache: cache.Noop{}}
	for _, opt := range opts {
		opt(&o)
	}

	users := repositories.NewUserRepository(kv)
	userLocks := newKeyedMutex[uint]()
	reads := &readCache{kv: kv, cache: o.cache, ttl: cfg.CacheTTL, logger: logger}

	return &Services{
		Auth: &AuthService{
			users:  users,
			cfg:    cfg,
			logger: logger.Named("auth"),
			emails: newKeyedMutex[string](),
			now:    o.now,
		},
		Entries: &EntryService{
			entries: repositories.NewEntryRepository(kv),
			locks:   userLocks,
			reads:   reads,
			logger:  logger.Named("entries"),
			now:     o.now,
		},
		Habits: &HabitService{
			habits:  repositories.NewHabitRepository(kv),
			locks:   userLocks,
			reads:   reads,
			logger:  logger.Named("habits"),
			now:     o.now,
			initial: DefaultHabits,
		},
	}
}

// readCache wraps cache.Cache for derived read models. Cache failures are
// logged and fall through to computing the value.
//
// Keys embed a per-user generation that every write bumps, so a value
// computed before a write can only be stored under a generation that no
// later read asks for.
type readCache struct {
	kv     storage.KV
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func cacheGenKey(userID uint) string { return fmt.Sprintf("cachegen/%d", userID) }

func (r *readCache) enabled() bool {
	_, noop := r.cache.(cache.Noop)
	return !noop
}

func (r *readCache) generation(ctx context.Context, userID uint) (string, error) {
	raw, err := r.kv.Get(ctx, cacheGenKey(userID))
	if errors.Is(err, storage.ErrNotFound) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// load fills dest from the cache entry named by parts, or runs compute and
// stores the result.
func (r *readCache) load(ctx context.Context, userID uint, dest interface{}, compute func() error, parts ...string) error {
	if !r.enabled() {
		return compute()
	}

	gen, err := r.generation(ctx, userID)
	if err != nil {
		r.logger.Warn("cache_generation_failed", zap.Uint("user_id", userID), zap.Error(err))
		return compute()
	}
	key := cache.UserKey(userID, append([]string{"g" + gen}, parts...)...)

	if err := r.cache.Get(ctx, key, dest); err == nil {
		return nil
	}
	if err := compute(); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, key, dest, r.ttl); err != nil {
		r.logger.Warn("cache_set_failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

// invalidate runs under the user's write lock.
func (r *readCache) invalidate(ctx context.Context, userID uint) {
	if !r.enabled() {
		return
	}

	gen, err := r.kv.Incr(ctx, cacheGenKey(userID))
	if err == nil {
		err = r.kv.Put(ctx, cacheGenKey(userID), []byte(strconv.FormatInt(gen, 10)))
	}
	if err != nil {
		r.logger.Warn("cache_generation_bump_failed", zap.Uint("user_id", userID), zap.Error(err))
	}
	if err := r.cache.DeletePattern(ctx, cache.UserPattern(userID)); err != nil {
		r.logger.Warn("cache_invalidate_failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

// Package cache implements a cache-aside layer over the Redis client.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type store interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// entry is the stored form of a value. Redis drops the key after the TTL;
// ExpiresAt also rejects entries read before Redis got to them.
type entry[T any] struct {
	Value     T         `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Aside caches values of type T under keys derived by a prefix.
//
// Cache failures are logged and reported as misses, they never fail the
// caller.
type Aside[T any] struct {
	store  store
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewAside creates a cache for keys prefix+":"+id whose entries live for ttl.
func NewAside[T any](s store, prefix string, ttl time.Duration) *Aside[T] {
	return &Aside[T]{store: s, prefix: prefix, ttl: ttl, now: time.Now}
}

func (a *Aside[T]) key(id string) string {
	return a.prefix + ":" + id
}

// Get returns the cached value for id and whether it was a hit.
func (a *Aside[T]) Get(ctx context.Context, strategy retry.Strategy, id string) (T, bool) {
	var zero T

	raw, err := a.store.GetWithRetry(ctx, strategy, a.key(id))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zlog.Logger.Error().Err(err).Str("key", a.key(id)).Msg("failed to read from cache")
		}
		return zero, false
	}

	var e entry[T]
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		zlog.Logger.Warn().Err(err).Str("key", a.key(id)).Msg("discarding malformed cache entry")
		return zero, false
	}

	if !a.now().Before(e.ExpiresAt) {
		return zero, false
	}

	return e.Value, true
}

// Set stores v for id.
func (a *Aside[T]) Set(ctx context.Context, strategy retry.Strategy, id string, v T) {
	body, err := json.Marshal(entry[T]{Value: v, ExpiresAt: a.now().Add(a.ttl)})
	if err != nil {
		zlog.Logger.Error().Err(err).Str("key", a.key(id)).Msg("failed to encode cache entry")
		return
	}

	if err := a.store.SetWithRetry(ctx, strategy, a.key(id), string(body)); err != nil {
		zlog.Logger.Error().Err(err).Str("key", a.key(id)).Msg("failed to write to cache")
		return
	}

	if a.ttl <= 0 {
		return
	}

	err = retry.Do(func() error {
		return a.store.Expire(ctx, a.key(id), a.ttl).Err()
	}, strategy)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("key", a.key(id)).Msg("failed to set cache ttl")
	}
}

// GetOrLoad returns the cached value for id, or calls load and caches its
// result on a miss. Errors from load are returned and nothing is cached.
func (a *Aside[T]) GetOrLoad(ctx context.Context, strategy retry.Strategy, id string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := a.Get(ctx, strategy, id); ok {
		return v, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	a.Set(ctx, strategy, id, v)

	return v, nil
}

// NopStore is a store that keeps nothing. Every read is a miss.
type NopStore struct{}

func (NopStore) SetWithRetry(context.Context, retry.Strategy, string, interface{}) error {
	return nil
}

func (NopStore) GetWithRetry(context.Context, retry.Strategy, string) (string, error) {
	return "", redis.Nil
}

func (NopStore) Expire(context.Context, string, time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(false, nil)
}

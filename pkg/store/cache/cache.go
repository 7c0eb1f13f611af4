// Package cache keeps fetched envelopes in redis so repeated analyses of the
// same store and date skip the upstream call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

const keyFormat = "envelope_v1:%s:%s"

func Key(store, date string) string {
	return fmt.Sprintf(keyFormat, store, date)
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient dials redis and pings it once.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

type EnvelopeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEnvelopeCache(client *redis.Client, ttl time.Duration) *EnvelopeCache {
	return &EnvelopeCache{client: client, ttl: ttl}
}

// Get returns the cached envelope and whether it was present.
func (c *EnvelopeCache) Get(ctx context.Context, store, date string) (*domain.RawResponseEnvelope, bool, error) {
	val, err := c.client.Get(ctx, Key(store, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var env domain.RawResponseEnvelope
	if err := json.Unmarshal(val, &env); err != nil {
		return nil, false, fmt.Errorf("decode cached envelope: %w", err)
	}
	return &env, true, nil
}

func (c *EnvelopeCache) Set(ctx context.Context, store, date string, env *domain.RawResponseEnvelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := c.client.Set(ctx, Key(store, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *EnvelopeCache) Delete(ctx context.Context, store, date string) error {
	if err := c.client.Del(ctx, Key(store, date)).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

type Recorder interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheError()
}

// CachedFetcher reads through the cache before calling the wrapped fetcher.
// Cache failures are logged and never fail a fetch.
type CachedFetcher struct {
	next     client.Fetcher
	cache    *EnvelopeCache
	recorder Recorder
}

func NewCachedFetcher(next client.Fetcher, cache *EnvelopeCache, recorder Recorder) *CachedFetcher {
	return &CachedFetcher{next: next, cache: cache, recorder: recorder}
}

func (f *CachedFetcher) Fetch(ctx context.Context, req client.Request) (*domain.RawResponseEnvelope, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx)

	env, ok, err := f.cache.Get(ctx, req.Store, req.Date)
	switch {
	case err != nil:
		f.record(Recorder.RecordCacheError)
		logger.Warn().Err(err).Str("store", req.Store).Msg("envelope cache read failed")
	case ok:
		f.record(Recorder.RecordCacheHit)
		logger.Debug().Str("store", req.Store).Str("date", req.Date).Msg("envelope cache hit")
		return env, nil
	default:
		f.record(Recorder.RecordCacheMiss)
	}

	env, err = f.next.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(ctx, req.Store, req.Date, env); err != nil {
		f.record(Recorder.RecordCacheError)
		logger.Warn().Err(err).Str("store", req.Store).Msg("envelope cache write failed")
	}
	return env, nil
}

func (f *CachedFetcher) record(fn func(Recorder)) {
	if f.recorder != nil {
		fn(f.recorder)
	}
}

// Copyright (c) 2026 Mediary. All rights reserved.
// Author: rafael.vales.dev@gmail.com

/*
Package cache provides a namespaced, JSON-encoded caching layer over Redis.

Every key is prefixed with the deployment name and a caller-supplied origin,
producing keys of the form '<app>:cache:<origin>:<key>'. Origins keep cache
ownership explicit: the auth guard, the user service, and future consumers
can never collide or invalidate each other's entries by accident.

Failure Policy:

  - Reads degrade to a cache miss. A Redis outage slows the API down but
    never takes it down.
  - Writes report their error so callers can decide whether staleness is
    acceptable for their use case.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the cache capability consumed by services.
//
// It is satisfied by [*Service] in production and by in-memory fakes in tests.
type Store interface {
	Get(ctx context.Context, origin, key string, target any) (bool, error)
	Set(ctx context.Context, origin, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, origin, key string) error
	DeleteMany(ctx context.Context, origin string, keys []string) error
}

// Service implements [Store] on top of a Redis client.
type Service struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
	logger     *slog.Logger
}

// NewService creates a cache service namespaced under the given deployment name.
//
// # Parameters
//   - client: Connected Redis client.
//   - publicName: Deployment name used as the key prefix.
//   - defaultTTL: Expiry applied when [Service.SetDefault] is used.
//   - logger: Structured logger for degraded-read events.
func NewService(client *redis.Client, publicName string, defaultTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		client:     client,
		prefix:     publicName,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

// fullKey builds the namespaced Redis key.
func (s *Service) fullKey(origin, key string) string {
	return fmt.Sprintf("%s:cache:%s:%s", s.prefix, origin, key)
}

// Get loads a cached JSON value into target.
//
// Returns (false, nil) on a miss. Redis failures are logged and reported
// as a miss so callers fall through to the authoritative store.
func (s *Service) Get(ctx context.Context, origin, key string, target any) (bool, error) {
	payload, err := s.client.Get(ctx, s.fullKey(origin, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		// Degrade to a miss, the backing store remains authoritative.
		s.logger.WarnContext(ctx, "cache_read_degraded",
			slog.String("origin", origin),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	if err := json.Unmarshal(payload, target); err != nil {
		// A corrupt entry is useless, drop it and report a miss.
		_ = s.Delete(ctx, origin, key)
		return false, nil
	}

	return true, nil
}

// Set stores a JSON-encoded value under the namespaced key.
//
// A TTL of zero or below is rejected: unbounded cache entries are never
// acceptable for session or entity data.
func (s *Service) Set(ctx context.Context, origin, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("cache: ttl must be positive, got %s", ttl)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to encode value: %w", err)
	}

	if err := s.client.Set(ctx, s.fullKey(origin, key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to set key: %w", err)
	}

	return nil
}

// SetDefault stores a value using the service-wide default TTL.
func (s *Service) SetDefault(ctx context.Context, origin, key string, value any) error {
	return s.Set(ctx, origin, key, value, s.defaultTTL)
}

// Delete removes a single cached entry. Deleting a missing key is not an error.
func (s *Service) Delete(ctx context.Context, origin, key string) error {
	if err := s.client.Del(ctx, s.fullKey(origin, key)).Err(); err != nil {
		return fmt.Errorf("cache: failed to delete key: %w", err)
	}
	return nil
}

// DeleteMany removes a batch of entries under the same origin in one round trip.
func (s *Service) DeleteMany(ctx context.Context, origin string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	fullKeys := make([]string, len(keys))
	for index, key := range keys {
		fullKeys[index] = s.fullKey(origin, key)
	}

	if err := s.client.Del(ctx, fullKeys...).Err(); err != nil {
		return fmt.Errorf("cache: failed to delete keys: %w", err)
	}
	return nil
}

// # Write-Through

// Mutate runs a store mutation and then invalidates the related cache entry.
//
// Centralizing the write path keeps invalidation out of individual call
// sites: every entity write that has a cached projection goes through here.
// If the mutation fails the cache is left untouched.
func Mutate(ctx context.Context, store Store, origin, key string, write func(context.Context) error) error {
	if err := write(ctx); err != nil {
		return err
	}

	if err := store.Delete(ctx, origin, key); err != nil {
		// The entry will still age out via its TTL, so log and continue.
		slog.Default().WarnContext(ctx, "cache_invalidation_failed",
			slog.String("origin", origin),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// Refresh runs a store mutation that returns the fresh row, then replaces
// the cached projection with it under the given TTL.
func Refresh[T any](ctx context.Context, store Store, origin, key string, ttl time.Duration, write func(context.Context) (T, error)) (T, error) {
	fresh, err := write(ctx)
	if err != nil {
		return fresh, err
	}

	if err := store.Set(ctx, origin, key, fresh, ttl); err != nil {
		// Stale-on-write is worse than no entry at all, fall back to invalidation.
		_ = store.Delete(ctx, origin, key)
	}

	return fresh, nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/metrics"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// DefaultHostelTTL is how long a cached hostel row stays fresh.
const DefaultHostelTTL = 5 * time.Minute

// RedisStore handles Redis operations for caching and rate limiting.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Client exposes the underlying client for the rate limiter.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// hostelKey returns the cache key for a hostel row.
func hostelKey(id string) string {
	return fmt.Sprintf("hostel:%s", id)
}

// GetCachedHostel returns the cached hostel, or nil on a miss.
func (s *RedisStore) GetCachedHostel(ctx context.Context, id string) (*models.Hostel, error) {
	start := time.Now()
	data, err := s.client.Get(ctx, hostelKey(id)).Bytes()
	metrics.RedisLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var h models.Hostel
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// CacheHostel stores h for ttl.
func (s *RedisStore) CacheHostel(ctx context.Context, h *models.Hostel, ttl time.Duration) error {
	data, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, hostelKey(h.ID), data, ttl).Err()
}

// InvalidateHostel drops the cached row for id.
func (s *RedisStore) InvalidateHostel(ctx context.Context, id string) error {
	return s.client.Del(ctx, hostelKey(id)).Err()
}

// CachedStore decorates a DataStore with a Redis read-through cache for
// single hostel lookups. Cache failures are logged and fall through to the
// underlying store.
type CachedStore struct {
	DataStore
	cache  *RedisStore
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedStore wraps next. A non-positive ttl uses DefaultHostelTTL.
func NewCachedStore(next DataStore, cache *RedisStore, ttl time.Duration, logger zerolog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultHostelTTL
	}
	return &CachedStore{DataStore: next, cache: cache, ttl: ttl, logger: logger}
}

// GetHostel serves from the cache and fills it on a miss.
func (s *CachedStore) GetHostel(ctx context.Context, id string) (*models.Hostel, error) {
	h, err := s.cache.GetCachedHostel(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("hostel_id", id).Msg("hostel cache read failed")
	}
	if h != nil {
		metrics.HostelCache.WithLabelValues("hit").Inc()
		return h, nil
	}
	metrics.HostelCache.WithLabelValues("miss").Inc()

	h, err = s.DataStore.GetHostel(ctx, id)
	if err != nil || h == nil {
		return h, err
	}
	if err := s.cache.CacheHostel(ctx, h, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("hostel_id", id).Msg("hostel cache write failed")
	}
	return h, nil
}

// UpdateHostel writes through and invalidates the cached row.
func (s *CachedStore) UpdateHostel(ctx context.Context, id string, u models.HostelUpdate) (*models.Hostel, error) {
	h, err := s.DataStore.UpdateHostel(ctx, id, u)
	if err != nil {
		return nil, err
	}
	if err := s.cache.InvalidateHostel(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("hostel_id", id).Msg("hostel cache invalidation failed")
	}
	return h, nil
}

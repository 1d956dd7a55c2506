package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	countrymodels "roster/internal/country/models"
	"roster/internal/platform/metrics"
	"roster/pkg/domain"
)

const countryKeyPrefix = "roster:country:"

// CountryCache is a read-through Redis cache for GetCountryByID in front of
// any CountryStore. Countries are never updated or removed, so entries only
// expire by TTL. A Redis failure falls through to the backing store.
type CountryCache struct {
	CountryStore
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type CacheOption func(*CountryCache)

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CountryCache) {
		c.logger = logger
	}
}

func WithCacheMetrics(m *metrics.Metrics) CacheOption {
	return func(c *CountryCache) {
		c.metrics = m
	}
}

func NewCountryCache(next CountryStore, client *redis.Client, ttl time.Duration, opts ...CacheOption) *CountryCache {
	c := &CountryCache{CountryStore: next, client: client, ttl: ttl}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CountryCache) GetCountryByID(ctx context.Context, id domain.CountryID) (*countrymodels.Country, error) {
	key := countryKeyPrefix + id.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var country countrymodels.Country
		if err := json.Unmarshal(raw, &country); err == nil {
			c.metrics.RecordCacheLookup("hit")
			return &country, nil
		}
		c.metrics.RecordCacheLookup("error")
	case errors.Is(err, redis.Nil):
		c.metrics.RecordCacheLookup("miss")
	default:
		c.metrics.RecordCacheLookup("error")
		c.warn(ctx, "country cache read failed", id, err)
	}

	country, err := c.CountryStore.GetCountryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(country); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.warn(ctx, "country cache write failed", id, err)
		}
	}
	return country, nil
}

func (c *CountryCache) warn(ctx context.Context, msg string, id domain.CountryID, err error) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, "country_id", id.String(), "error", err)
	}
}

package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	redisclient "github.com/KirkDiggler/encounter-forge/internal/redis"
)

const (
	creaturesCacheKey = "catalog:creatures"
	itemsCacheKey     = "catalog:magic_items"
	defaultCacheTTL   = 10 * time.Minute
)

// CacheConfig configures the Redis catalog cache
type CacheConfig struct {
	Client redisclient.Client
	Source Repository
	TTL    time.Duration
}

// Validate ensures all required dependencies are provided
func (c *CacheConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("client")
	}
	if c.Source == nil {
		vb.RequiredField("source")
	}
	if c.TTL < 0 {
		vb.InvalidField("ttl", "must not be negative")
	}
	return vb.Build()
}

type redisCache struct {
	client redisclient.Client
	source Repository
	ttl    time.Duration
}

// NewRedisCache wraps source with a read-through Redis cache. A Redis outage
// degrades to reading the source directly.
func NewRedisCache(cfg *CacheConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &redisCache{
		client: cfg.Client,
		source: cfg.Source,
		ttl:    ttl,
	}, nil
}

// ListCreatures returns cached creatures or loads and caches them
func (c *redisCache) ListCreatures(ctx context.Context) ([]*dnd5e.Creature, error) {
	var cached []*dnd5e.Creature
	if c.load(ctx, creaturesCacheKey, &cached) {
		return cached, nil
	}

	creatures, err := c.source.ListCreatures(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, creaturesCacheKey, creatures)
	return creatures, nil
}

// ListMagicItems returns cached items or loads and caches them
func (c *redisCache) ListMagicItems(ctx context.Context) ([]*dnd5e.MagicItem, error) {
	var cached []*dnd5e.MagicItem
	if c.load(ctx, itemsCacheKey, &cached) {
		return cached, nil
	}

	items, err := c.source.ListMagicItems(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, itemsCacheKey, items)
	return items, nil
}

// Invalidate drops both cached lists
func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, creaturesCacheKey, itemsCacheKey).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate catalog cache")
	}
	return nil
}

func (c *redisCache) load(ctx context.Context, key string, into any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redisclient.Nil {
			slog.Warn("Catalog cache read failed",
				"key", key,
				"error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, into); err != nil {
		slog.Warn("Discarding corrupt catalog cache entry",
			"key", key,
			"error", err)
		_ = c.client.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *redisCache) store(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Failed to encode catalog cache entry",
			"key", key,
			"error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("Catalog cache write failed",
			"key", key,
			"error", err)
	}
}

// Invalidator is implemented by caches that can be flushed after an import
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

var (
	_ Repository  = (*redisCache)(nil)
	_ Invalidator = (*redisCache)(nil)
)

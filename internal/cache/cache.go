package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyCategoryNames = "blog:categories:names"
	keyCategoryList  = "blog:categories:list"
)

// CategoryCache caches the category listings between writes.
// A miss is reported as (nil, nil).
type CategoryCache interface {
	GetNames(ctx context.Context) ([]string, error)
	SetNames(ctx context.Context, names []string) error
	GetList(ctx context.Context) ([]*models.Category, error)
	SetList(ctx context.Context, categories []*models.Category) error
	Invalidate(ctx context.Context) error
}

// RedisCategoryCache stores JSON encoded listings in Redis with a TTL
type RedisCategoryCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedis connects to Redis and verifies the connection
func NewRedis(cfg *config.RedisConfig, log zerolog.Logger) (*RedisCategoryCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("Redis connection established")

	return &RedisCategoryCache{
		rdb: rdb,
		ttl: cfg.CategoryTTL,
		log: log.With().Str("component", "category_cache").Logger(),
	}, nil
}

// GetNames returns the cached category names
func (c *RedisCategoryCache) GetNames(ctx context.Context) ([]string, error) {
	var names []string
	hit, err := c.get(ctx, keyCategoryNames, &names)
	if err != nil || !hit {
		return nil, err
	}
	return names, nil
}

// SetNames caches the category names
func (c *RedisCategoryCache) SetNames(ctx context.Context, names []string) error {
	return c.set(ctx, keyCategoryNames, names)
}

// GetList returns the cached category listing
func (c *RedisCategoryCache) GetList(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	hit, err := c.get(ctx, keyCategoryList, &categories)
	if err != nil || !hit {
		return nil, err
	}
	return categories, nil
}

// SetList caches the category listing
func (c *RedisCategoryCache) SetList(ctx context.Context, categories []*models.Category) error {
	return c.set(ctx, keyCategoryList, categories)
}

// Invalidate drops both cached listings
func (c *RedisCategoryCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, keyCategoryNames, keyCategoryList).Err()
}

// Close releases the Redis client
func (c *RedisCategoryCache) Close() error {
	return c.rdb.Close()
}

func (c *RedisCategoryCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// Corrupt entry: drop it and treat as a miss.
		c.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		c.rdb.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *RedisCategoryCache) set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// Nop is used when no Redis address is configured; every read misses.
type Nop struct{}

func (Nop) GetNames(context.Context) ([]string, error)          { return nil, nil }
func (Nop) SetNames(context.Context, []string) error            { return nil }
func (Nop) GetList(context.Context) ([]*models.Category, error) { return nil, nil }
func (Nop) SetList(context.Context, []*models.Category) error   { return nil }
func (Nop) Invalidate(context.Context) error                    { return nil }

// Package cache keeps filtered property listings in Redis.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rentdir/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix = "rentdir:listings"
	// generationKey is bumped on every property write; listings cached under
	// an older generation are never read again and expire with their TTL.
	generationKey = keyPrefix + ":gen"
)

// LookupObserver is told whether each lookup was a hit.
type LookupObserver interface {
	RecordCacheLookup(ctx context.Context, hit bool)
}

// Config holds Redis connection details.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Logger   *zap.SugaredLogger
	Observer LookupObserver
}

// ListingCache is a best-effort cache: Redis failures are logged and read as
// misses, never returned to the caller.
type ListingCache struct {
	client   *redis.Client
	ttl      time.Duration
	logger   *zap.SugaredLogger
	observer LookupObserver
}

// New connects to Redis and pings it.
func New(cfg Config) (*ListingCache, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	cfg.Logger.Infow("Listing cache connected", "addr", cfg.Addr, "ttl", cfg.TTL)
	return &ListingCache{
		client:   client,
		ttl:      cfg.TTL,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}, nil
}

// QueryKey hashes a filter and sort option into a stable key component.
func QueryKey(filter models.PropertyFilter, sort models.SortOption) string {
	data, _ := json.Marshal(struct {
		Filter models.PropertyFilter `json:"f"`
		Sort   models.SortOption     `json:"s"`
	}{filter, sort})
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func (c *ListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetListing looks up the listing for filter and sort. slot names where a
// freshly computed listing should be stored; it is bound to the generation
// seen here, so a write in between makes the stored copy unreachable. An
// empty slot means the listing should not be stored.
func (c *ListingCache) GetListing(ctx context.Context, filter models.PropertyFilter, sort models.SortOption) ([]models.Property, string, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.Warnw("Cache generation read failed", "error", err)
		return nil, "", false
	}
	slot := fmt.Sprintf("%s:%d:%s", keyPrefix, gen, QueryKey(filter, sort))

	data, err := c.client.Get(ctx, slot).Bytes()
	if errors.Is(err, redis.Nil) {
		c.record(ctx, false)
		return nil, slot, false
	}
	if err != nil {
		c.logger.Warnw("Cache get failed", "key", slot, "error", err)
		return nil, "", false
	}

	var props []models.Property
	if err := json.Unmarshal(data, &props); err != nil {
		c.logger.Warnw("Cache entry unreadable", "key", slot, "error", err)
		return nil, slot, false
	}
	c.record(ctx, true)
	return props, slot, true
}

// SetListing stores props in slot.
func (c *ListingCache) SetListing(ctx context.Context, slot string, props []models.Property) {
	if slot == "" {
		return
	}
	data, err := json.Marshal(props)
	if err != nil {
		c.logger.Warnw("Cache marshal failed", "key", slot, "error", err)
		return
	}
	if err := c.client.Set(ctx, slot, data, c.ttl).Err(); err != nil {
		c.logger.Warnw("Cache set failed", "key", slot, "error", err)
	}
}

// Invalidate retires every cached listing.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warnw("Cache invalidation failed", "error", err)
	}
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}

func (c *ListingCache) record(ctx context.Context, hit bool) {
	if c.observer != nil {
		c.observer.RecordCacheLookup(ctx, hit)
	}
}

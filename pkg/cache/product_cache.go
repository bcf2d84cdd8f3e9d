package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ProductCacheTTL is the time-to-live for cached products.
	ProductCacheTTL = 10 * time.Minute

	productCacheKeyPrefix = "product"
)

// CachedProduct is the product read model stored in Redis as a hash.
// ImporterEmail is nil when the product has no importer.
type CachedProduct struct {
	ID            int
	Category      string
	Name          string
	Manufacturer  string
	ImporterEmail *string
	Quantity      uint
}

// ProductCache provides structured read/write operations for product cache entries.
// Key format: "product:{id}"
type ProductCache struct {
	client *RedisClient
}

// NewProductCache creates a new ProductCache backed by the given RedisClient.
func NewProductCache(r *RedisClient) *ProductCache {
	return &ProductCache{client: r}
}

// Get retrieves a cached product.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ProductCache) Get(ctx context.Context, id int) (*CachedProduct, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	pid, err := strconv.Atoi(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	qty, err := strconv.ParseUint(vals["quantity"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}

	p := &CachedProduct{
		ID:           pid,
		Category:     vals["category"],
		Name:         vals["name"],
		Manufacturer: vals["manufacturer"],
		Quantity:     uint(qty),
	}
	if email, ok := vals["importer_email"]; ok {
		p.ImporterEmail = &email
	}
	return p, nil
}

// Set replaces the cached hash for p and refreshes its TTL in one transaction.
func (c *ProductCache) Set(ctx context.Context, p *CachedProduct) error {
	key := c.key(p.ID)
	fields := []any{
		"id", strconv.Itoa(p.ID),
		"category", p.Category,
		"name", p.Name,
		"manufacturer", p.Manufacturer,
		"quantity", strconv.FormatUint(uint64(p.Quantity), 10),
	}
	if p.ImporterEmail != nil {
		fields = append(fields, "importer_email", *p.ImporterEmail)
	}

	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields...)
	pipe.Expire(ctx, key, ProductCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached product.
func (c *ProductCache) Delete(ctx context.Context, id int) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *ProductCache) key(id int) string {
	return fmt.Sprintf("%s:%d", productCacheKeyPrefix, id)
}

package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-valid-url")
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "redis://localhost:19999")
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions("redis://:secret@cache.internal:6380/2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache.internal:6380" || opts.DB != 2 || opts.Password != "secret" {
		t.Errorf("URL not applied: addr=%s db=%d", opts.Addr, opts.DB)
	}
	if opts.PoolSize != poolSize || opts.MinIdleConns != minIdleConns || opts.ReadTimeout != ioTimeout {
		t.Errorf("pool settings not applied: %+v", opts)
	}
}

func TestRedisClient_CloseZeroValue(t *testing.T) {
	if err := (&RedisClient{}).Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProductCache_Key(t *testing.T) {
	c := NewProductCache(nil)
	if got := c.key(42); got != "product:42" {
		t.Fatalf("expected product:42, got %q", got)
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	ctx := context.Background()

	rc, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	t.Run("Ping_Success", func(t *testing.T) {
		if err := rc.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("ProductCache_RoundTrip", func(t *testing.T) {
		pc := NewProductCache(rc)
		email := "jaffa@gmail.com"
		want := &CachedProduct{ID: 990001, Category: "food", Name: "Oranges", Manufacturer: "Jaffa", ImporterEmail: &email, Quantity: 1000}
		defer pc.Delete(ctx, want.ID) //nolint:errcheck

		if err := pc.Set(ctx, want); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := pc.Get(ctx, want.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != want.Name || got.Quantity != want.Quantity || got.ImporterEmail == nil || *got.ImporterEmail != email {
			t.Fatalf("unexpected cached product: %+v", got)
		}
	})

	t.Run("ProductCache_SetClearsStaleEmail", func(t *testing.T) {
		pc := NewProductCache(rc)
		email := "old@example.com"
		defer pc.Delete(ctx, 990002) //nolint:errcheck

		_ = pc.Set(ctx, &CachedProduct{ID: 990002, Name: "Tea", Manufacturer: "Acme", ImporterEmail: &email})
		if err := pc.Set(ctx, &CachedProduct{ID: 990002, Name: "Tea", Manufacturer: "Acme"}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := pc.Get(ctx, 990002)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.ImporterEmail != nil {
			t.Fatalf("expected no importer email, got %q", *got.ImporterEmail)
		}
	})

	t.Run("ProductCache_Miss", func(t *testing.T) {
		_, err := NewProductCache(rc).Get(ctx, 990003)
		if !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil, got %v", err)
		}
	})
}

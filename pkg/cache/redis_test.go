package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Set YEARGRID_TEST_REDIS=localhost:6379 to run against a live server.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("YEARGRID_TEST_REDIS")
	if addr == "" {
		t.Skip("YEARGRID_TEST_REDIS not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()

	key := NewScopedKeyer(nil, "yeargrid:test:").LayoutKey(Hash([]byte(t.Name())), LayoutKeyOpts{Year: 2024})
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("rows"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "rows" {
		t.Errorf("Get() = %q, hit %v, err %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry still present after Delete")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("NewRedisCache() on a closed port should fail")
	}
}

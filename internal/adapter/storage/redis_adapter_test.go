package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/inventory-index/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func dropShard(ctx context.Context, client *redis.Client, prefix string) {
	client.Del(ctx, shardKey(prefix))
}

func TestRedisAdapter_SaveAndFind(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	// Setup
	dropShard(ctx, client, "RT")
	defer dropShard(ctx, client, "RT")

	if err := adapter.Save(ctx, mustInventory(t, "RT000001", "widget")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	inv, err := adapter.FindByID(ctx, "RT000001")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if inv == nil {
		t.Fatal("expected inventory, got nil")
	}
	if inv.Name != "widget" {
		t.Errorf("expected widget, got %s", inv.Name)
	}
	if inv.ID.Prefix() != "RT" {
		t.Errorf("expected prefix RT, got %s", inv.ID.Prefix())
	}
}

func TestRedisAdapter_LastWriteWins(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	dropShard(ctx, client, "RW")
	defer dropShard(ctx, client, "RW")

	adapter.Save(ctx, mustInventory(t, "RW000001", "first"))
	adapter.Save(ctx, mustInventory(t, "RW000001", "second"))

	inv, err := adapter.FindByID(ctx, "RW000001")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if inv == nil || inv.Name != "second" {
		t.Errorf("expected second, got %+v", inv)
	}

	n, err := adapter.CountPrefix(ctx, "RW")
	if err != nil {
		t.Fatalf("CountPrefix failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 id in shard, got %d", n)
	}
}

func TestRedisAdapter_NotFound(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	dropShard(ctx, client, "RN")

	for _, id := range []string{"RN999999", "bad", ""} {
		inv, err := adapter.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", id, err)
		}
		if inv != nil {
			t.Errorf("expected nil for %q, got %+v", id, inv)
		}
	}
}

func TestRedisAdapter_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	dropShard(ctx, client, "RC")
	defer dropShard(ctx, client, "RC")

	var wg sync.WaitGroup
	total := 50

	items := make([]domain.Inventory, total)
	for i := range items {
		id := fmt.Sprintf("RC%06d", i)
		items[i] = mustInventory(t, id, id)
	}

	for _, inv := range items {
		wg.Add(1)
		go func(inv domain.Inventory) {
			defer wg.Done()
			if err := adapter.Save(ctx, inv); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(inv)
	}

	wg.Wait()

	n, err := adapter.CountPrefix(ctx, "RC")
	if err != nil {
		t.Fatalf("CountPrefix failed: %v", err)
	}
	if n != total {
		t.Errorf("expected %d ids, got %d", total, n)
	}
}

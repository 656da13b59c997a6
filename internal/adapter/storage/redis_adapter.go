package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/inventory-index/internal/core/domain"
)

const inventoryKeyPrefix = "inventory:"

// RedisAdapter stores one hash per identifier prefix, keyed by full id.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func shardKey(prefix string) string {
	return inventoryKeyPrefix + prefix
}

func (r *RedisAdapter) Save(ctx context.Context, inv domain.Inventory) error {
	if err := checkIdentifier(inv); err != nil {
		return err
	}

	id := inv.ID.String()
	if err := r.client.HSet(ctx, shardKey(inv.ID.Prefix()), id, inv.Name).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", id, err)
	}
	return nil
}

func (r *RedisAdapter) FindByID(ctx context.Context, id string) (*domain.Inventory, error) {
	parsed, ok := domain.LookupIdentifier(id)
	if !ok {
		return nil, nil
	}

	name, err := r.client.HGet(ctx, shardKey(parsed.Prefix()), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hget %s: %w", id, err)
	}

	return &domain.Inventory{ID: parsed, Name: name}, nil
}

// CountPrefix reports how many ids are stored under a prefix
func (r *RedisAdapter) CountPrefix(ctx context.Context, prefix string) (int, error) {
	n, err := r.client.HLen(ctx, shardKey(prefix)).Result()
	if err != nil {
		return 0, fmt.Errorf("hlen %s: %w", prefix, err)
	}
	return int(n), nil
}

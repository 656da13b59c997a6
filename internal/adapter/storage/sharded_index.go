package storage

import (
	"context"
	"sync"

	"github.com/rl1809/inventory-index/internal/core/domain"
)

// ShardedIndex is a two-level map: prefix -> full id -> inventory.
// Saving an existing id overwrites the previous inventory.
type ShardedIndex struct {
	mu     sync.RWMutex
	shards map[string]map[string]domain.Inventory
	size   int
}

func NewShardedIndex() *ShardedIndex {
	return &ShardedIndex{
		shards: make(map[string]map[string]domain.Inventory),
	}
}

func (s *ShardedIndex) Save(_ context.Context, inv domain.Inventory) error {
	if err := checkIdentifier(inv); err != nil {
		return err
	}

	key := inv.ID.String()
	prefix := inv.ID.Prefix()

	s.mu.Lock()
	defer s.mu.Unlock()

	shard, ok := s.shards[prefix]
	if !ok {
		shard = make(map[string]domain.Inventory)
		s.shards[prefix] = shard
	}
	if _, exists := shard[key]; !exists {
		s.size++
	}
	shard[key] = inv
	return nil
}

func (s *ShardedIndex) FindByID(_ context.Context, id string) (*domain.Inventory, error) {
	if !domain.IsValidIdentifier(id) {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	shard, ok := s.shards[id[:domain.PrefixLength]]
	if !ok {
		return nil, nil
	}
	inv, ok := shard[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

// Len returns the number of distinct ids stored
func (s *ShardedIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// CountPrefix returns the size of one shard
func (s *ShardedIndex) CountPrefix(_ context.Context, prefix string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shards[prefix]), nil
}

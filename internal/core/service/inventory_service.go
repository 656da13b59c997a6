package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rl1809/inventory-index/internal/core/domain"
	"github.com/rl1809/inventory-index/internal/port"
)

type InventoryService struct {
	repo port.InventoryRepository
}

func NewInventoryService(repo port.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// Register validates rawID and stores the inventory. Malformed ids fail with
// an error matching domain.ErrInvalidFormat and never reach the repository.
func (s *InventoryService) Register(ctx context.Context, rawID, name string) (domain.Inventory, error) {
	inv, err := domain.NewInventory(rawID, name)
	if err != nil {
		return domain.Inventory{}, err
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return domain.Inventory{}, fmt.Errorf("save inventory %s: %w", rawID, err)
	}
	return inv, nil
}

// Find returns domain.ErrNotFound for ids that are absent or malformed.
func (s *InventoryService) Find(ctx context.Context, rawID string) (*domain.Inventory, error) {
	inv, err := s.repo.FindByID(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("find inventory %s: %w", rawID, err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// CountPrefix returns how many inventories share prefix. Backends that cannot
// count report errors.ErrUnsupported.
func (s *InventoryService) CountPrefix(ctx context.Context, prefix string) (int, error) {
	if !domain.IsValidPrefix(prefix) {
		return 0, fmt.Errorf("%w: prefix %q", domain.ErrInvalidFormat, prefix)
	}

	counter, ok := s.repo.(port.PrefixCounter)
	if !ok {
		return 0, errors.ErrUnsupported
	}

	n, err := counter.CountPrefix(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("count prefix %s: %w", prefix, err)
	}
	return n, nil
}

package storage

import (
	"context"
	"sync"

	"github.com/rl1809/inventory-index/internal/core/domain"
)

// FlatIndex keeps every inventory in insertion order and scans on lookup.
// Duplicate ids may coexist; the first one saved wins on lookup.
type FlatIndex struct {
	mu    sync.RWMutex
	items []domain.Inventory
}

func NewFlatIndex() *FlatIndex {
	return &FlatIndex{}
}

func (f *FlatIndex) Save(_ context.Context, inv domain.Inventory) error {
	if err := checkIdentifier(inv); err != nil {
		return err
	}

	f.mu.Lock()
	f.items = append(f.items, inv)
	f.mu.Unlock()
	return nil
}

func (f *FlatIndex) FindByID(_ context.Context, id string) (*domain.Inventory, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for i := range f.items {
		if f.items[i].ID.String() == id {
			found := f.items[i]
			return &found, nil
		}
	}
	return nil, nil
}

// CountPrefix scans every stored inventory; duplicates are counted.
func (f *FlatIndex) CountPrefix(_ context.Context, prefix string) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	count := 0
	for i := range f.items {
		if f.items[i].ID.Prefix() == prefix {
			count++
		}
	}
	return count, nil
}

func (f *FlatIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// checkIdentifier rejects a zero Inventory that bypassed domain.NewInventory.
func checkIdentifier(inv domain.Inventory) error {
	if inv.ID.IsZero() {
		return &domain.InvalidFormatError{}
	}
	return nil
}

package port

import (
	"context"

	"github.com/rl1809/inventory-index/internal/core/domain"
)

type InventoryRepository interface {
	// Save stores an inventory whose identifier has already been validated
	Save(ctx context.Context, inventory domain.Inventory) error

	// FindByID returns (nil, nil) when no inventory matches, including for
	// ids that are not well-formed
	FindByID(ctx context.Context, id string) (*domain.Inventory, error)
}

// PrefixCounter is implemented by repositories that can report how many
// inventories share an identifier prefix
type PrefixCounter interface {
	CountPrefix(ctx context.Context, prefix string) (int, error)
}

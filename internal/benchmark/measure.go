package benchmark

import (
	"context"
	"fmt"
	"time"

	"github.com/rl1809/inventory-index/internal/core/domain"
	"github.com/rl1809/inventory-index/internal/port"
)

type Result struct {
	ID         string
	Found      *domain.Inventory
	Single     time.Duration // first lookup, timed alone
	Iterations int
	Total      time.Duration
}

func (r Result) Average() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Iterations)
}

// Measure times one lookup of id, then iterations repeated lookups.
func Measure(ctx context.Context, repo port.InventoryRepository, id string, iterations int) (Result, error) {
	res := Result{ID: id, Iterations: iterations}

	start := time.Now()
	found, err := repo.FindByID(ctx, id)
	res.Single = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("lookup %s: %w", id, err)
	}
	res.Found = found

	start = time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := repo.FindByID(ctx, id); err != nil {
			return res, fmt.Errorf("lookup %s: %w", id, err)
		}
	}
	res.Total = time.Since(start)

	return res, nil
}

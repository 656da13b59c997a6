package benchmark

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rl1809/inventory-index/internal/core/domain"
	"github.com/rl1809/inventory-index/internal/port"
)

// Dataset describes synthetic inventory: PerPrefix ids for every prefix,
// named test0000001, test0000002, ... across the whole set.
type Dataset struct {
	Prefixes  []string
	PerPrefix int
}

// Prefixes returns n two-letter prefixes in order: AA, AB, ..., AZ, BA, ...
func Prefixes(n int) []string {
	if n > 26*26 {
		n = 26 * 26
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, string([]byte{byte('A' + i/26), byte('A' + i%26)}))
	}
	return out
}

// MaxPerPrefix keeps generated ids within six digits with headroom to spare.
const MaxPerPrefix = 100000

// DatasetFor spreads n items evenly over as few prefixes as keep each prefix
// within MaxPerPrefix. Sizes that cannot be split evenly are rejected.
func DatasetFor(n int) (Dataset, error) {
	if n < 1 {
		return Dataset{}, fmt.Errorf("size %d must be positive", n)
	}

	prefixes := (n + MaxPerPrefix - 1) / MaxPerPrefix
	if prefixes > 26*26 {
		return Dataset{}, fmt.Errorf("size %d exceeds %d items", n, 26*26*MaxPerPrefix)
	}
	if n%prefixes != 0 {
		return Dataset{}, fmt.Errorf("size %d cannot be split evenly across %d prefixes", n, prefixes)
	}

	return Dataset{
		Prefixes:  Prefixes(prefixes),
		PerPrefix: n / prefixes,
	}, nil
}

func (d Dataset) Size() int {
	return len(d.Prefixes) * d.PerPrefix
}

// Item returns the n-th inventory of prefix p (both zero based).
func (d Dataset) Item(p, n int) (domain.Inventory, error) {
	id := fmt.Sprintf("%s%06d", d.Prefixes[p], n+1)
	name := fmt.Sprintf("test%07d", p*d.PerPrefix+n+1)
	return domain.NewInventory(id, name)
}

// Last returns the final inventory of the dataset, the flat index's worst case.
func (d Dataset) Last() (domain.Inventory, error) {
	if d.Size() == 0 {
		return domain.Inventory{}, fmt.Errorf("empty dataset")
	}
	return d.Item(len(d.Prefixes)-1, d.PerPrefix-1)
}

// Populate saves the dataset in order, prefix by prefix.
func Populate(ctx context.Context, repo port.InventoryRepository, d Dataset) error {
	for p := range d.Prefixes {
		if err := populatePrefix(ctx, repo, d, p); err != nil {
			return err
		}
	}
	return nil
}

// PopulateParallel saves each prefix from its own worker. Insertion order
// across prefixes is not preserved.
func PopulateParallel(ctx context.Context, repo port.InventoryRepository, d Dataset, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for p := range d.Prefixes {
		g.Go(func() error {
			return populatePrefix(ctx, repo, d, p)
		})
	}
	return g.Wait()
}

func populatePrefix(ctx context.Context, repo port.InventoryRepository, d Dataset, p int) error {
	for n := 0; n < d.PerPrefix; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		inv, err := d.Item(p, n)
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, inv); err != nil {
			return fmt.Errorf("save %s: %w", inv.ID, err)
		}
	}
	return nil
}

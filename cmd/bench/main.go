package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/inventory-index/internal/adapter/storage"
	"github.com/rl1809/inventory-index/internal/benchmark"
	"github.com/rl1809/inventory-index/internal/port"
)

func main() {
	sizesFlag := flag.String("sizes", "1000,10000,100000,1000000",
		"comma separated dataset sizes; each is split evenly across prefixes of at most 100000 ids, so it must divide by its prefix count")
	iterations := flag.Int("iterations", 1000, "repeated lookups per measurement")
	flag.Parse()

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Fatalf("invalid -sizes: %v", err)
	}
	if *iterations < 1 {
		log.Fatalf("invalid -iterations %d: must be at least 1", *iterations)
	}

	if err := run(context.Background(), os.Stdout, sizes, *iterations); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, w io.Writer, sizes []int, iterations int) error {
	fmt.Fprintf(w, "========== LOOKUP BENCHMARK %s ==========\n", uuid.NewString())
	fmt.Fprintf(w, "%-8s %10s %-10s %14s %14s %10s\n", "index", "items", "id", "single", "average", "populate")

	for _, n := range sizes {
		d, err := benchmark.DatasetFor(n)
		if err != nil {
			return err
		}
		last, err := d.Last()
		if err != nil {
			return err
		}

		variants := []struct {
			name string
			repo port.InventoryRepository
		}{
			{"flat", storage.NewFlatIndex()},
			{"sharded", storage.NewShardedIndex()},
		}

		for _, v := range variants {
			start := time.Now()
			if err := benchmark.Populate(ctx, v.repo, d); err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
			populate := time.Since(start)

			res, err := benchmark.Measure(ctx, v.repo, last.ID.String(), iterations)
			if err != nil {
				return fmt.Errorf("%s: %w", v.name, err)
			}
			if res.Found == nil || res.Found.Name != last.Name {
				return fmt.Errorf("%s: expected %s for %s, got %+v", v.name, last.Name, last.ID, res.Found)
			}

			fmt.Fprintf(w, "%-8s %10d %-10s %14v %14v %10v\n",
				v.name, d.Size(), last.ID, res.Single, res.Average(), populate.Round(time.Millisecond))
		}
	}

	fmt.Fprintln(w, "==========================================")
	return nil
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if _, err := benchmark.DatasetFor(n); err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

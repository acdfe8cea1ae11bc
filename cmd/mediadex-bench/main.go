// Benchmark tool for measuring mediadex repository throughput.
//
// Usage:
//   go run cmd/mediadex-bench/main.go -n 10000
//
// This tool:
//   1. Seeds a throwaway catalog with n synthetic items
//   2. Times inserts, filtered list queries and stats passes against it
//   3. Reports wall time and operations per second per workload
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"mediadex/internal/domain"
	"mediadex/internal/repository"
)

var adjectives = []string{
	"Silent", "Crimson", "Last", "Broken", "Hidden", "Golden", "Lost",
	"Distant", "Burning", "Hollow", "Pale", "Iron", "Endless", "Frozen",
}

var nouns = []string{
	"Empire", "Garden", "Signal", "Horizon", "Machine", "Forest", "City",
	"Voyage", "Archive", "Tide", "Crown", "Mirror", "Station", "River",
}

var (
	categories = domain.Categories()
	statuses   = domain.Statuses()
)

func main() {
	n := flag.Int("n", 10000, "items to seed")
	listRuns := flag.Int("lists", 200, "list queries to run")
	statsRuns := flag.Int("stats", 200, "stats passes to run")
	dbPath := flag.String("db", "", "store file (default: temp file, removed afterwards)")
	keep := flag.Bool("keep", false, "keep the store file afterwards")
	flag.Parse()

	path := *dbPath
	if path == "" {
		f, err := os.CreateTemp("", "mediadex-bench-*.sqlite")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create temp store: %v\n", err)
			os.Exit(1)
		}
		path = f.Name()
		f.Close()
		if !*keep {
			defer os.Remove(path)
		}
	}

	repo, err := repository.New(domain.RepositoryConfig{Path: path})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("store:  %s\n", path)
	fmt.Printf("items:  %d\n\n", *n)

	// Deterministic seed so successive runs hit identical data.
	rng := rand.New(rand.NewSource(42))

	start := time.Now()
	for i := 0; i < *n; i++ {
		item := domain.NewMediaItem(syntheticTitle(rng, i), categories[rng.Intn(len(categories))])
		item.Status = statuses[rng.Intn(len(statuses))]
		if rng.Intn(3) > 0 {
			rating := rng.Intn(11)
			item.Rating = &rating
		}
		if _, err := repo.Add(ctx, item); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed item %d: %v\n", i, err)
			os.Exit(1)
		}
	}
	report("seed", *n, time.Since(start))

	queries := benchQueries()
	start = time.Now()
	for i := 0; i < *listRuns; i++ {
		if _, err := repo.List(ctx, queries[i%len(queries)]); err != nil {
			fmt.Fprintf(os.Stderr, "list failed: %v\n", err)
			os.Exit(1)
		}
	}
	report("list", *listRuns, time.Since(start))

	start = time.Now()
	for i := 0; i < *statsRuns; i++ {
		if _, err := repo.Stats(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "stats failed: %v\n", err)
			os.Exit(1)
		}
	}
	report("stats", *statsRuns, time.Since(start))
}

func syntheticTitle(rng *rand.Rand, i int) string {
	return fmt.Sprintf("%s %s %d", adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))], i)
}

// benchQueries cycles through the filter shapes the compiler can emit:
// unfiltered, single-predicate and full conjunction, across sort fields.
func benchQueries() []domain.Query {
	book := domain.CategoryBook
	finished := domain.StatusFinished
	seven := 7

	return []domain.Query{
		{},
		{TitleSubstr: "Iron"},
		{Category: &book, SortField: domain.SortRating, SortOrder: domain.SortDesc},
		{Status: &finished, SortField: domain.SortUpdatedAt, SortOrder: domain.SortDesc},
		{MinRating: &seven, SortField: domain.SortRating, SortOrder: domain.SortDesc},
		{TitleSubstr: "o", Category: &book, Status: &finished, MinRating: &seven},
	}
}

func report(name string, ops int, elapsed time.Duration) {
	perSec := float64(ops) / elapsed.Seconds()
	fmt.Printf("%-6s %8d ops  %10s  %12.0f ops/s\n", name, ops, elapsed.Round(time.Millisecond), perSec)
}

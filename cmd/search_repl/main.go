// search_repl is a line-oriented client for exercising the live search
// stack against a real database: every typed line goes through the
// debounced input controller and the aggregator, results print as they
// become visible.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/agriscience/journal-api/internal/domain"
	"github.com/agriscience/journal-api/internal/search"
	"github.com/agriscience/journal-api/internal/storage/pg"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: dbURL})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	aggregator := search.NewAggregator(pg.NewStore(pool), search.DefaultConfig())

	controller := search.NewController(aggregator,
		search.WithDebounce(150*time.Millisecond),
		search.WithResultSink(printResults),
	)

	fmt.Println("Type a query and press enter (empty line quits):")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			controller.Close()
			return
		}
		controller.Type(line)
	}
}

func printResults(results []domain.SearchResult) {
	if len(results) == 0 {
		fmt.Println("  (no results)")
		return
	}
	for _, r := range results {
		fmt.Printf("  [%s] %s -> %s\n", r.Type, r.Title, r.URL)
	}
}

// Package main runs one token ranking batch: resolve the input source,
// score and rank the tokens, write the output artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"token-rank-lab/internal/loader"
	"token-rank-lab/internal/pipeline"
	"token-rank-lab/internal/ranking"
	"token-rank-lab/internal/scoring"
	"token-rank-lab/internal/storage"
	"token-rank-lab/internal/storage/clickhouse"
	"token-rank-lab/internal/storage/postgres"
)

func main() {
	// Parse flags
	input := flag.String("input", "", "Explicit input file, tried before the default candidates")
	outputDir := flag.String("output-dir", "out", "Output directory for generated artifacts")
	weightsPath := flag.String("weights", "", "Optional YAML file overriding score weights")
	top := flag.Int("top", 10, "Number of tokens shown in the console preview")
	workers := flag.Int("workers", 0, "Scoring workers (0 = GOMAXPROCS)")
	postgresDSN := flag.String("postgres-dsn", "", "Archive runs to PostgreSQL at this DSN")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "Archive runs to ClickHouse at this DSN")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling run...\n", sig)
		cancel()
	}()

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	weights, err := loadWeights(*weightsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading weights: %v\n", err)
		os.Exit(1)
	}

	l := loader.New(loader.DefaultSources(*input)).WithLogger(logger)
	r := ranking.New(scoring.NewScorer(weights)).WithLogger(logger)
	if *workers > 0 {
		r.WithWorkers(*workers)
	}

	p := pipeline.New(l, r, *outputDir).
		WithPreviewSize(*top).
		WithLogger(logger)

	archive, closeArchive, err := openArchive(ctx, *postgresDSN, *clickhouseDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
		os.Exit(1)
	}
	if archive != nil {
		defer closeArchive()
		p.WithArchive(archive)
	}

	result, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nRun %s completed:\n", result.RunID)
	fmt.Printf("  Source: %s\n", result.SourceName)
	fmt.Printf("  Tokens: %d\n", result.TokenCount)
	for _, artifact := range result.Artifacts {
		fmt.Printf("  - %s\n", artifact)
	}
	if result.Archived {
		fmt.Printf("  Archived as %s\n", result.RunID)
	}
}

// loadWeights returns the default weights unless an override file is
// given.
func loadWeights(path string) (scoring.Weights, error) {
	if path == "" {
		return scoring.DefaultWeights(), nil
	}
	return scoring.LoadWeights(path)
}

// openArchive connects the requested archive store and applies its
// schema. At most one backend may be selected.
func openArchive(ctx context.Context, postgresDSN, clickhouseDSN string) (storage.RankingStore, func(), error) {
	switch {
	case postgresDSN != "" && clickhouseDSN != "":
		return nil, nil, fmt.Errorf("choose either -postgres-dsn or -clickhouse-dsn, not both")

	case postgresDSN != "":
		pool, err := postgres.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return postgres.NewRankingStore(pool), pool.Close, nil

	case clickhouseDSN != "":
		conn, err := clickhouse.NewConn(ctx, clickhouseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect clickhouse: %w", err)
		}
		if err := clickhouse.RunMigrations(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("migrate clickhouse: %w", err)
		}
		return clickhouse.NewRankingStore(conn), func() { _ = conn.Close() }, nil

	default:
		return nil, nil, nil
	}
}

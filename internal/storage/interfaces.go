// Package storage defines the ranking archive contract. Archiving is
// opt-in: the pipeline's primary output stays the JSON artifact, the
// archive exists for cross-run comparison.
package storage

import (
	"context"

	"token-rank-lab/internal/domain"
)

// RankingStore persists ranked batches keyed by run ID. Rank positions
// are taken from slice order (1-based) at insert time.
type RankingStore interface {
	// InsertBulk archives a complete ranked batch for a run. Returns
	// ErrDuplicateKey if the run already exists, ErrInvalidInput for an
	// empty run ID or batch.
	InsertBulk(ctx context.Context, runID string, ranked []*domain.ScoredToken) error

	// GetByRun retrieves a run's full ranking, ordered by rank ASC.
	// Returns ErrNotFound if the run does not exist.
	GetByRun(ctx context.Context, runID string) ([]*domain.ScoredToken, error)

	// GetTopN retrieves the first n entries of a run's ranking.
	// Returns ErrNotFound if the run does not exist.
	GetTopN(ctx context.Context, runID string, n int) ([]*domain.ScoredToken, error)

	// ListRuns returns all archived run IDs in lexical order.
	ListRuns(ctx context.Context) ([]string, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"token-rank-lab/internal/domain"
	"token-rank-lab/internal/storage"
)

// RankingStore implements storage.RankingStore using PostgreSQL.
type RankingStore struct {
	pool *Pool
}

// NewRankingStore creates a new RankingStore.
func NewRankingStore(pool *Pool) *RankingStore {
	return &RankingStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RankingStore = (*RankingStore)(nil)

// InsertBulk archives a complete ranked batch in one transaction.
// Returns ErrDuplicateKey if the run already exists.
func (s *RankingStore) InsertBulk(ctx context.Context, runID string, ranked []*domain.ScoredToken) error {
	if runID == "" || len(ranked) == 0 {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert rankings: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO token_rankings (
			run_id, rank, feed_id, feed_name, external_id, name, symbol, image_url,
			total_supply, circulating_supply,
			trending, market, social, virality, final_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	for i, r := range ranked {
		if r == nil || r.FeedID == "" {
			return storage.ErrInvalidInput
		}

		_, err := tx.Exec(ctx, query,
			runID,
			i+1,
			r.FeedID,
			r.FeedName,
			r.ExternalID,
			r.Name,
			r.Symbol,
			r.ImageURL,
			r.TotalSupply,
			r.CirculatingSupply,
			r.Metrics.Trending,
			r.Metrics.Market,
			r.Metrics.Social,
			r.Metrics.Virality,
			r.FinalScore,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert ranking row %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit insert rankings: %w", err)
	}
	return nil
}

// GetByRun retrieves a run's full ranking, ordered by rank ASC.
func (s *RankingStore) GetByRun(ctx context.Context, runID string) ([]*domain.ScoredToken, error) {
	query := selectColumns + `
		FROM token_rankings
		WHERE run_id = $1
		ORDER BY rank ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query rankings by run: %w", err)
	}
	defer rows.Close()

	ranked, err := scanRankedTokens(rows)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, storage.ErrNotFound
	}
	return ranked, nil
}

// GetTopN retrieves the first n entries of a run's ranking.
func (s *RankingStore) GetTopN(ctx context.Context, runID string, n int) ([]*domain.ScoredToken, error) {
	if n < 0 {
		n = 0
	}

	// Existence check first so a valid run with n=0 is not ErrNotFound.
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM token_rankings WHERE run_id = $1`, runID).Scan(&count); err != nil {
		return nil, fmt.Errorf("count rankings: %w", err)
	}
	if count == 0 {
		return nil, storage.ErrNotFound
	}

	query := selectColumns + `
		FROM token_rankings
		WHERE run_id = $1
		ORDER BY rank ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, runID, n)
	if err != nil {
		return nil, fmt.Errorf("query top rankings: %w", err)
	}
	defer rows.Close()

	return scanRankedTokens(rows)
}

// ListRuns returns all archived run IDs in lexical order.
func (s *RankingStore) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT run_id FROM token_rankings ORDER BY run_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query run ids: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		runs = append(runs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run ids: %w", err)
	}
	return runs, nil
}

const selectColumns = `
	SELECT feed_id, feed_name, external_id, name, symbol, image_url,
		total_supply, circulating_supply,
		trending, market, social, virality, final_score
`

// scanRankedTokens scans rows into scored tokens, rank order assumed
// from the query.
func scanRankedTokens(rows pgx.Rows) ([]*domain.ScoredToken, error) {
	var ranked []*domain.ScoredToken

	for rows.Next() {
		var r domain.ScoredToken
		err := rows.Scan(
			&r.FeedID,
			&r.FeedName,
			&r.ExternalID,
			&r.Name,
			&r.Symbol,
			&r.ImageURL,
			&r.TotalSupply,
			&r.CirculatingSupply,
			&r.Metrics.Trending,
			&r.Metrics.Market,
			&r.Metrics.Social,
			&r.Metrics.Virality,
			&r.FinalScore,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		ranked = append(ranked, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ranking rows: %w", err)
	}
	return ranked, nil
}

package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"token-rank-lab/internal/domain"
	"token-rank-lab/internal/storage"
)

// RankingStore implements storage.RankingStore using ClickHouse.
type RankingStore struct {
	conn *Conn
}

// NewRankingStore creates a new RankingStore.
func NewRankingStore(conn *Conn) *RankingStore {
	return &RankingStore{conn: conn}
}

// Compile-time interface check.
var _ storage.RankingStore = (*RankingStore)(nil)

// InsertBulk archives a complete ranked batch. MergeTree does not
// enforce uniqueness, so run existence is checked explicitly first.
func (s *RankingStore) InsertBulk(ctx context.Context, runID string, ranked []*domain.ScoredToken) error {
	if runID == "" || len(ranked) == 0 {
		return storage.ErrInvalidInput
	}

	exists, err := s.runExists(ctx, runID)
	if err != nil {
		return fmt.Errorf("check run exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO token_rankings (
			run_id, rank, feed_id, feed_name, external_id, name, symbol, image_url,
			total_supply, circulating_supply,
			trending, market, social, virality, final_score
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for i, r := range ranked {
		if r == nil || r.FeedID == "" {
			return storage.ErrInvalidInput
		}

		// Pass nil values directly for Nullable columns
		err = batch.Append(
			runID, uint32(i+1),
			r.FeedID, r.FeedName, r.ExternalID, r.Name, r.Symbol, r.ImageURL,
			r.TotalSupply, r.CirculatingSupply,
			r.Metrics.Trending, r.Metrics.Market, r.Metrics.Social, r.Metrics.Virality,
			r.FinalScore,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRun retrieves a run's full ranking, ordered by rank ASC.
func (s *RankingStore) GetByRun(ctx context.Context, runID string) ([]*domain.ScoredToken, error) {
	query := selectColumns + `
		FROM token_rankings
		WHERE run_id = ?
		ORDER BY rank ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
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

	exists, err := s.runExists(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("check run exists: %w", err)
	}
	if !exists {
		return nil, storage.ErrNotFound
	}

	query := selectColumns + `
		FROM token_rankings
		WHERE run_id = ?
		ORDER BY rank ASC
		LIMIT ?
	`

	rows, err := s.conn.Query(ctx, query, runID, uint64(n))
	if err != nil {
		return nil, fmt.Errorf("query top rankings: %w", err)
	}
	defer rows.Close()

	return scanRankedTokens(rows)
}

// ListRuns returns all archived run IDs in lexical order.
func (s *RankingStore) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT DISTINCT run_id FROM token_rankings ORDER BY run_id ASC`)
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

// runExists checks whether any rows exist for a run.
func (s *RankingStore) runExists(ctx context.Context, runID string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM token_rankings WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

const selectColumns = `
	SELECT feed_id, feed_name, external_id, name, symbol, image_url,
		total_supply, circulating_supply,
		trending, market, social, virality, final_score
`

// scanRankedTokens scans rows into scored tokens, rank order assumed
// from the query.
func scanRankedTokens(rows driver.Rows) ([]*domain.ScoredToken, error) {
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

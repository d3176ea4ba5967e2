package memory

import (
	"context"
	"sort"
	"sync"

	"token-rank-lab/internal/domain"
	"token-rank-lab/internal/storage"
)

// RankingStore is an in-memory implementation of storage.RankingStore.
type RankingStore struct {
	mu   sync.RWMutex
	runs map[string][]*domain.ScoredToken // keyed by run_id, rank order
}

// NewRankingStore creates a new in-memory ranking store.
func NewRankingStore() *RankingStore {
	return &RankingStore{
		runs: make(map[string][]*domain.ScoredToken),
	}
}

// InsertBulk archives a complete ranked batch. Returns ErrDuplicateKey
// if the run already exists.
func (s *RankingStore) InsertBulk(_ context.Context, runID string, ranked []*domain.ScoredToken) error {
	if runID == "" || len(ranked) == 0 {
		return storage.ErrInvalidInput
	}
	for _, r := range ranked {
		if r == nil || r.FeedID == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[runID]; exists {
		return storage.ErrDuplicateKey
	}

	s.runs[runID] = copyRanked(ranked)
	return nil
}

// GetByRun retrieves a run's full ranking, ordered by rank ASC.
func (s *RankingStore) GetByRun(_ context.Context, runID string) ([]*domain.ScoredToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked, exists := s.runs[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return copyRanked(ranked), nil
}

// GetTopN retrieves the first n entries of a run's ranking.
func (s *RankingStore) GetTopN(_ context.Context, runID string, n int) ([]*domain.ScoredToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked, exists := s.runs[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return copyRanked(ranked[:n]), nil
}

// ListRuns returns all archived run IDs in lexical order.
func (s *RankingStore) ListRuns(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.runs))
	for id := range s.runs {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}

// copyRanked deep-copies scored tokens so callers cannot mutate stored
// state.
func copyRanked(ranked []*domain.ScoredToken) []*domain.ScoredToken {
	out := make([]*domain.ScoredToken, len(ranked))
	for i, r := range ranked {
		c := *r
		out[i] = &c
	}
	return out
}

var _ storage.RankingStore = (*RankingStore)(nil)

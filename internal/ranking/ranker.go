// Package ranking applies the scorer to a token batch and orders the
// result by descending final score.
package ranking

import (
	"context"
	"log"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"token-rank-lab/internal/domain"
	"token-rank-lab/internal/scoring"
)

// Ranker scores every token in a batch and sorts the batch by final
// score descending. Ties preserve input order, so output is fully
// deterministic for a given input sequence.
type Ranker struct {
	scorer  *scoring.Scorer
	workers int
	logger  *log.Logger
}

// New creates a Ranker using up to GOMAXPROCS scoring workers.
func New(scorer *scoring.Scorer) *Ranker {
	return &Ranker{
		scorer:  scorer,
		workers: runtime.GOMAXPROCS(0),
		logger:  log.Default(),
	}
}

// WithWorkers sets the scoring worker limit. Values below 1 force
// sequential scoring. Concurrency is an optimization only; results are
// identical either way.
func (r *Ranker) WithWorkers(n int) *Ranker {
	if n < 1 {
		n = 1
	}
	r.workers = n
	return r
}

// WithLogger sets the logger used for batch diagnostics.
func (r *Ranker) WithLogger(logger *log.Logger) *Ranker {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Rank scores all tokens and returns them ordered by final score
// descending. The output is a permutation of the input: nothing is
// dropped or duplicated, and each token's identity passes through
// unchanged. An empty batch yields an empty result with a warning, not
// an error. The only error source is context cancellation.
func (r *Ranker) Rank(ctx context.Context, tokens []domain.Token) ([]domain.ScoredToken, error) {
	if len(tokens) == 0 {
		r.logger.Printf("[rank] WARN: empty token batch, nothing to rank")
		return []domain.ScoredToken{}, nil
	}

	// Indexed writes into a pre-sized slice: each worker owns distinct
	// slots, so no shared mutation.
	scored := make([]domain.ScoredToken, len(tokens))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, token := range tokens {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = r.scorer.Score(token)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stable sort: equal scores keep input order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	return scored, nil
}

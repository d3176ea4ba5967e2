// Package scoring computes per-token heuristic metrics and the weighted
// final score. All computations are pure functions of a single token's
// fields: no I/O, no shared state, safe to call concurrently.
package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"token-rank-lab/internal/domain"
)

// Bonus constants used by the metric heuristics.
const (
	memeFeedBonus   = 10.0 // trending: feed name mentions "meme"
	cryptoFeedBonus = 5.0  // social: feed name mentions "crypto"
	memeSymbolBonus = 20.0 // virality: symbol mentions "meme"
	moonFeedBonus   = 15.0 // virality: feed name mentions "moon"
	shortNameBonus  = 10.0 // virality: name present and shorter than 10 chars
	shortNameLimit  = 10
)

// Scorer maps one Token to its Metrics and final score.
type Scorer struct {
	weights Weights
}

// NewScorer creates a Scorer with the given weights.
// Weights must already be validated.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Weights returns the weights this scorer applies.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes all metrics and the weighted final score for a token.
// Total function: absent optional fields contribute zero, never an error.
// Deterministic for identical inputs.
func (s *Scorer) Score(t domain.Token) domain.ScoredToken {
	m := domain.Metrics{
		Trending: computeTrending(&t),
		Market:   computeMarket(&t),
		Social:   computeSocial(&t),
		Virality: computeVirality(&t),
	}

	return domain.ScoredToken{
		Token:      t,
		Metrics:    m,
		FinalScore: s.weights.Trending*m.Trending + s.weights.Market*m.Market + s.weights.Social*m.Social + s.weights.Virality*m.Virality,
	}
}

// computeTrending = len(symbol) + 10 if feed name mentions "meme" + len(name).
func computeTrending(t *domain.Token) float64 {
	score := float64(charLen(t.Symbol))
	if containsFold(t.FeedName, "meme") {
		score += memeFeedBonus
	}
	score += float64(optionalCharLen(t.Name))
	return score
}

// computeMarket sums ln(v+1) over the positive supply figures.
// Zero or absent supplies contribute nothing.
func computeMarket(t *domain.Token) float64 {
	score := 0.0
	for _, supply := range []*float64{t.TotalSupply, t.CirculatingSupply} {
		if supply != nil && *supply > 0 {
			score += math.Log(*supply + 1)
		}
	}
	return score
}

// computeSocial = 2*len(symbol) + 5 if feed name mentions "crypto" + len(name).
func computeSocial(t *domain.Token) float64 {
	score := float64(charLen(t.Symbol)) * 2
	if containsFold(t.FeedName, "crypto") {
		score += cryptoFeedBonus
	}
	score += float64(optionalCharLen(t.Name))
	return score
}

// computeVirality awards fixed bonuses for meme-flavoured symbols,
// moon-flavoured feed names, and short names.
func computeVirality(t *domain.Token) float64 {
	score := 0.0
	if containsFold(t.Symbol, "meme") {
		score += memeSymbolBonus
	}
	if containsFold(t.FeedName, "moon") {
		score += moonFeedBonus
	}
	if t.Name != nil && charLen(*t.Name) < shortNameLimit {
		score += shortNameBonus
	}
	return score
}

// charLen counts Unicode code points. This convention is applied to every
// length-based heuristic in this package.
func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

// optionalCharLen is charLen for optional fields; nil counts as zero.
func optionalCharLen(s *string) int {
	if s == nil {
		return 0
	}
	return charLen(*s)
}

// containsFold reports whether s contains substr, lowercasing both sides.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Package reporting renders ranking output artifacts: the JSON
// artifact consumed downstream, plus markdown and CSV views for humans.
package reporting

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"token-rank-lab/internal/domain"
)

// Report is the rendered view of one ranking run.
type Report struct {
	GeneratedAt time.Time
	SourceName  string
	BatchHash   string
	TokenCount  int
	Rows        []RankRow
}

// RankRow is one line of the ranking table. Rank is 1-based.
type RankRow struct {
	Rank       int
	FeedID     string
	Symbol     string
	Name       string
	Trending   float64
	Market     float64
	Social     float64
	Virality   float64
	FinalScore float64
}

// BuildReport converts a ranked batch into a Report. The ranked slice
// must already be in final order.
func BuildReport(ranked []domain.ScoredToken, sourceName string, generatedAt time.Time) *Report {
	rows := make([]RankRow, len(ranked))
	for i, s := range ranked {
		name := ""
		if s.Name != nil {
			name = *s.Name
		}
		rows[i] = RankRow{
			Rank:       i + 1,
			FeedID:     s.FeedID,
			Symbol:     s.Symbol,
			Name:       name,
			Trending:   s.Metrics.Trending,
			Market:     s.Metrics.Market,
			Social:     s.Metrics.Social,
			Virality:   s.Metrics.Virality,
			FinalScore: s.FinalScore,
		}
	}

	return &Report{
		GeneratedAt: generatedAt,
		SourceName:  sourceName,
		BatchHash:   BatchHash(ranked),
		TokenCount:  len(ranked),
		Rows:        rows,
	}
}

// BatchHash computes a short SHA-256 over the ranked batch for
// reproducibility checks. Lines are sorted so the hash depends only on
// the (feedId, finalScore) multiset, not on ordering.
func BatchHash(ranked []domain.ScoredToken) string {
	parts := make([]string, len(ranked))
	for i, s := range ranked {
		parts[i] = fmt.Sprintf("%s|%.6f", s.FeedID, s.FinalScore)
	}
	sort.Strings(parts)

	h := sha256.New()
	h.Write([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(h.Sum(nil))[:12]
}

package reporting

import (
	"encoding/json"
	"fmt"
	"os"

	"token-rank-lab/internal/domain"
)

// WriteRankings writes the full ranked batch as indented JSON. This is
// the machine-readable output artifact; ReadRankings round-trips it
// exactly.
func WriteRankings(path string, ranked []domain.ScoredToken) error {
	data, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rankings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write rankings: %w", err)
	}
	return nil
}

// ReadRankings reads a rankings artifact back into memory.
func ReadRankings(path string) ([]domain.ScoredToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rankings: %w", err)
	}

	var ranked []domain.ScoredToken
	if err := json.Unmarshal(data, &ranked); err != nil {
		return nil, fmt.Errorf("parse rankings: %w", err)
	}
	return ranked, nil
}

package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default metric weights. FinalScore = 0.25*trending + 0.35*market +
// 0.20*social + 0.20*virality.
const (
	DefaultTrendingWeight = 0.25
	DefaultMarketWeight   = 0.35
	DefaultSocialWeight   = 0.20
	DefaultViralityWeight = 0.20
)

// Weights holds the per-metric multipliers applied when combining a
// token's metrics into its final score.
type Weights struct {
	Trending float64 `yaml:"trending"`
	Market   float64 `yaml:"market"`
	Social   float64 `yaml:"social"`
	Virality float64 `yaml:"virality"`
}

// DefaultWeights returns the fixed built-in weights.
func DefaultWeights() Weights {
	return Weights{
		Trending: DefaultTrendingWeight,
		Market:   DefaultMarketWeight,
		Social:   DefaultSocialWeight,
		Virality: DefaultViralityWeight,
	}
}

// Validate rejects negative weights and all-zero weight sets.
func (w Weights) Validate() error {
	if w.Trending < 0 || w.Market < 0 || w.Social < 0 || w.Virality < 0 {
		return fmt.Errorf("weights must be non-negative: %+v", w)
	}
	if w.Trending == 0 && w.Market == 0 && w.Social == 0 && w.Virality == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	return nil
}

// LoadWeights reads a YAML weights file. Fields omitted in the file fall
// back to the built-in defaults.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read weights file: %w", err)
	}

	w := DefaultWeights()
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse weights file %s: %w", path, err)
	}

	if err := w.Validate(); err != nil {
		return Weights{}, fmt.Errorf("weights file %s: %w", path, err)
	}
	return w, nil
}

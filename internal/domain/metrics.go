package domain

// Metrics holds the four heuristic scores derived from a single token.
// Each value is a pure function of that token's fields; there is no
// cross-token dependency. Immutable once computed.
type Metrics struct {
	Trending float64 `json:"trending"`
	Market   float64 `json:"market"`
	Social   float64 `json:"social"`
	Virality float64 `json:"virality"`
}

// ScoredToken is a Token together with its computed metrics and the
// weighted final score used as the sole ranking key.
type ScoredToken struct {
	Token
	Metrics    Metrics `json:"metrics"`
	FinalScore float64 `json:"finalScore"`
}

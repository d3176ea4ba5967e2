package domain

import "fmt"

// Token is one raw record from the input feed.
// FeedID, FeedName and Symbol are always present (Symbol may be the empty
// string); the remaining fields are optional and nil when absent.
type Token struct {
	FeedID            string   `json:"feedId"`
	FeedName          string   `json:"feedName"`
	ExternalID        *string  `json:"externalId,omitempty"` // base58 mint address when sourced from Solana
	Name              *string  `json:"name,omitempty"`
	Symbol            string   `json:"symbol"`
	ImageURL          *string  `json:"imageUrl,omitempty"`
	TotalSupply       *float64 `json:"totalSupply,omitempty"`
	CirculatingSupply *float64 `json:"circulatingSupply,omitempty"`
}

// Validate checks required fields and supply ranges.
func (t *Token) Validate() error {
	if t.FeedID == "" {
		return fmt.Errorf("token missing feedId")
	}
	if t.FeedName == "" {
		return fmt.Errorf("token %s missing feedName", t.FeedID)
	}
	if t.TotalSupply != nil && *t.TotalSupply < 0 {
		return fmt.Errorf("token %s has negative totalSupply", t.FeedID)
	}
	if t.CirculatingSupply != nil && *t.CirculatingSupply < 0 {
		return fmt.Errorf("token %s has negative circulatingSupply", t.FeedID)
	}
	return nil
}

// DisplayName returns Name when present, otherwise Symbol.
func (t *Token) DisplayName() string {
	if t.Name != nil && *t.Name != "" {
		return *t.Name
	}
	return t.Symbol
}

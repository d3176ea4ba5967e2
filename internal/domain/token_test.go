package domain

import "testing"

func ptr[T any](v T) *T {
	return &v
}

func TestToken_Validate(t *testing.T) {
	tests := []struct {
		name    string
		token   Token
		wantErr bool
	}{
		{
			name:  "valid full record",
			token: Token{FeedID: "f1", FeedName: "Feed", Symbol: "TOK", Name: ptr("Token"), TotalSupply: ptr(100.0), CirculatingSupply: ptr(50.0)},
		},
		{
			name:  "valid minimal record",
			token: Token{FeedID: "f1", FeedName: "Feed"},
		},
		{
			name:  "zero supplies are valid",
			token: Token{FeedID: "f1", FeedName: "Feed", TotalSupply: ptr(0.0), CirculatingSupply: ptr(0.0)},
		},
		{
			name:    "missing feedId",
			token:   Token{FeedName: "Feed"},
			wantErr: true,
		},
		{
			name:    "missing feedName",
			token:   Token{FeedID: "f1"},
			wantErr: true,
		},
		{
			name:    "negative totalSupply",
			token:   Token{FeedID: "f1", FeedName: "Feed", TotalSupply: ptr(-1.0)},
			wantErr: true,
		},
		{
			name:    "negative circulatingSupply",
			token:   Token{FeedID: "f1", FeedName: "Feed", CirculatingSupply: ptr(-0.5)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.token.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToken_DisplayName(t *testing.T) {
	withName := Token{Symbol: "TOK", Name: ptr("Token Name")}
	if got := withName.DisplayName(); got != "Token Name" {
		t.Errorf("DisplayName() = %q, want %q", got, "Token Name")
	}

	emptyName := Token{Symbol: "TOK", Name: ptr("")}
	if got := emptyName.DisplayName(); got != "TOK" {
		t.Errorf("DisplayName() = %q, want %q", got, "TOK")
	}

	noName := Token{Symbol: "TOK"}
	if got := noName.DisplayName(); got != "TOK" {
		t.Errorf("DisplayName() = %q, want %q", got, "TOK")
	}
}

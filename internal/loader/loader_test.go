package loader

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

var validBatch = `[
	{"feedId": "feed_1", "feedName": "CryptoDaily", "symbol": "CD", "name": "Coin", "totalSupply": 1000},
	{"feedId": "feed_2", "feedName": "SuperMoonMeme", "symbol": "MEME"}
]`

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_FirstValidSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tokens.json", validBatch)

	tokens, source, err := New([]Source{FileSource(path)}).WithLogger(discardLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tokens) != 2 {
		t.Errorf("len = %d, want 2", len(tokens))
	}
	if source != path {
		t.Errorf("source = %s, want %s", source, path)
	}
}

func TestLoad_SkipsBadSourcesInOrder(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")
	malformed := writeFile(t, dir, "malformed.json", "{not json")
	empty := writeFile(t, dir, "empty.json", "[]")
	valid := writeFile(t, dir, "valid.json", validBatch)

	sources := []Source{
		FileSource(missing),
		FileSource(malformed),
		FileSource(empty),
		FileSource(valid),
	}

	tokens, source, err := New(sources).WithLogger(discardLogger()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if source != valid {
		t.Errorf("source = %s, want %s", source, valid)
	}
	if len(tokens) != 2 {
		t.Errorf("len = %d, want 2", len(tokens))
	}
}

func TestLoad_AllSourcesFail(t *testing.T) {
	dir := t.TempDir()
	sources := []Source{
		FileSource(filepath.Join(dir, "nope.json")),
		FileSource(writeFile(t, dir, "empty.json", "[]")),
	}

	_, _, err := New(sources).WithLogger(discardLogger()).Load(context.Background())
	if !errors.Is(err, ErrNoValidSource) {
		t.Errorf("expected ErrNoValidSource, got %v", err)
	}
}

func TestParseBatch_RejectsDuplicateFeedIDs(t *testing.T) {
	data := `[
		{"feedId": "dup", "feedName": "A", "symbol": "X"},
		{"feedId": "dup", "feedName": "B", "symbol": "Y"}
	]`
	if _, err := ParseBatch([]byte(data)); err == nil {
		t.Error("expected error for duplicate feedId")
	}
}

func TestParseBatch_RejectsInvalidRecords(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing feedId", `[{"feedName": "A", "symbol": "X"}]`},
		{"missing feedName", `[{"feedId": "a", "symbol": "X"}]`},
		{"negative supply", `[{"feedId": "a", "feedName": "A", "symbol": "X", "totalSupply": -5}]`},
		{"not an array", `{"feedId": "a"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseBatch([]byte(tc.data)); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestParseBatch_OptionalFieldsAbsent(t *testing.T) {
	data := `[{"feedId": "min", "feedName": "Minimal", "symbol": ""}]`
	tokens, err := ParseBatch([]byte(data))
	if err != nil {
		t.Fatalf("ParseBatch failed: %v", err)
	}

	tok := tokens[0]
	if tok.Name != nil || tok.ExternalID != nil || tok.TotalSupply != nil || tok.CirculatingSupply != nil {
		t.Errorf("expected nil optional fields, got %+v", tok)
	}
}

func TestDefaultSources_ExplicitPathFirst(t *testing.T) {
	sources := DefaultSources("custom/batch.json")
	if len(sources) != 4 {
		t.Fatalf("len = %d, want 4", len(sources))
	}
	if sources[0].Name != "custom/batch.json" {
		t.Errorf("first source = %s, want explicit path", sources[0].Name)
	}
	if sources[1].Name != "tokens.json" {
		t.Errorf("second source = %s, want tokens.json", sources[1].Name)
	}
}

func TestDefaultSources_NoExplicitPath(t *testing.T) {
	sources := DefaultSources("")
	if len(sources) != 3 {
		t.Fatalf("len = %d, want 3", len(sources))
	}
	if sources[0].Name != "tokens.json" {
		t.Errorf("first source = %s, want tokens.json", sources[0].Name)
	}
}

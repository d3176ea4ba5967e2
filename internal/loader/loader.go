// Package loader resolves the token batch from an ordered list of
// candidate sources. Per-source failures are logged and skipped; only
// total resolution failure is an error.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"token-rank-lab/internal/domain"
)

// ErrNoValidSource is returned when no candidate source yields a
// readable, non-empty, valid token array.
var ErrNoValidSource = errors.New("no candidate source yielded a valid token batch")

// Source is one candidate location for the input batch. Read returns
// the raw bytes; parsing and validation happen in the loader.
type Source struct {
	Name string
	Read func() ([]byte, error)
}

// FileSource reads a batch from a file path.
func FileSource(path string) Source {
	return Source{
		Name: path,
		Read: func() ([]byte, error) {
			return os.ReadFile(path)
		},
	}
}

// DefaultSources returns the fixed candidate locations in priority
// order. An explicit path, when non-empty, is tried first.
func DefaultSources(explicit string) []Source {
	var sources []Source
	if explicit != "" {
		sources = append(sources, FileSource(explicit))
	}
	for _, path := range []string{"tokens.json", "data/tokens.json", "testdata/tokens.json"} {
		if path != explicit {
			sources = append(sources, FileSource(path))
		}
	}
	return sources
}

// Loader tries candidate sources in order until one parses and
// validates.
type Loader struct {
	sources []Source
	logger  *log.Logger
}

// New creates a Loader over the given sources.
func New(sources []Source) *Loader {
	return &Loader{
		sources: sources,
		logger:  log.Default(),
	}
}

// WithLogger sets the logger used for per-source diagnostics.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load returns the first valid token batch together with the name of
// the source that produced it. Every failed source is logged; if all
// fail, ErrNoValidSource is returned and the run should terminate
// abnormally.
func (l *Loader) Load(ctx context.Context) ([]domain.Token, string, error) {
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		data, err := src.Read()
		if err != nil {
			l.logger.Printf("[loader] skip %s: %v", src.Name, err)
			continue
		}

		tokens, err := ParseBatch(data)
		if err != nil {
			l.logger.Printf("[loader] skip %s: %v", src.Name, err)
			continue
		}

		l.logger.Printf("[loader] loaded %d tokens from %s", len(tokens), src.Name)
		l.checkExternalIDs(tokens)
		return tokens, src.Name, nil
	}

	return nil, "", ErrNoValidSource
}

// ParseBatch decodes and validates a raw token batch. A batch is valid
// only if it is a non-empty JSON array, every record passes
// Token.Validate, and feed IDs are unique.
func ParseBatch(data []byte) ([]domain.Token, error) {
	var tokens []domain.Token
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("parse token array: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("token array is empty")
	}

	seen := make(map[string]struct{}, len(tokens))
	for i := range tokens {
		if err := tokens[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[tokens[i].FeedID]; dup {
			return nil, fmt.Errorf("duplicate feedId %s", tokens[i].FeedID)
		}
		seen[tokens[i].FeedID] = struct{}{}
	}

	return tokens, nil
}

// checkExternalIDs probes external IDs as Solana mint addresses.
// Failures are warnings only; a malformed external ID never rejects
// the batch.
func (l *Loader) checkExternalIDs(tokens []domain.Token) {
	for i := range tokens {
		t := &tokens[i]
		if t.ExternalID == nil || *t.ExternalID == "" {
			continue
		}

		point, err := DecodeMint(*t.ExternalID)
		if err != nil {
			l.logger.Printf("[loader] WARN: token %s externalId is not a valid mint: %v", t.FeedID, err)
			continue
		}
		if !IsOnCurve(point) {
			// Off-curve keys are program derived addresses, common for
			// pool-owned mints. Informational only.
			l.logger.Printf("[loader] token %s externalId is a program derived address", t.FeedID)
		}
	}
}

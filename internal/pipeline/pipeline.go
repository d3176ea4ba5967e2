// Package pipeline coordinates one ranking run end to end:
// load → score+rank → report artifacts → optional archive.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"token-rank-lab/internal/domain"
	"token-rank-lab/internal/loader"
	"token-rank-lab/internal/ranking"
	"token-rank-lab/internal/reporting"
	"token-rank-lab/internal/storage"
)

// Output artifact file names, relative to the output directory.
const (
	RankingsJSONFile = "rankings.json"
	RankingsMDFile   = "RANKINGS.md"
	RankingsCSVFile  = "rankings.csv"
)

// Pipeline runs a single ranking batch. The JSON artifact is the
// contract; markdown, CSV and the console preview are views of it.
type Pipeline struct {
	loader    *loader.Loader
	ranker    *ranking.Ranker
	outputDir string

	previewSize int
	archive     storage.RankingStore
	clock       func() time.Time
	out         io.Writer
	logger      *log.Logger
}

// New creates a Pipeline writing artifacts under outputDir.
func New(l *loader.Loader, r *ranking.Ranker, outputDir string) *Pipeline {
	return &Pipeline{
		loader:      l,
		ranker:      r,
		outputDir:   outputDir,
		previewSize: 10,
		clock:       time.Now,
		out:         os.Stdout,
		logger:      log.Default(),
	}
}

// WithClock sets the time source for deterministic output.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	if clock != nil {
		p.clock = clock
	}
	return p
}

// WithArchive enables persisting the ranked batch to a store after the
// artifacts are written. Archiving is additive: the run already
// succeeded once the artifacts exist.
func (p *Pipeline) WithArchive(store storage.RankingStore) *Pipeline {
	p.archive = store
	return p
}

// WithPreviewSize sets how many top rows the console preview shows.
func (p *Pipeline) WithPreviewSize(n int) *Pipeline {
	if n >= 0 {
		p.previewSize = n
	}
	return p
}

// WithOutput redirects the console preview, used in tests.
func (p *Pipeline) WithOutput(w io.Writer) *Pipeline {
	if w != nil {
		p.out = w
	}
	return p
}

// WithLogger sets the logger used for run diagnostics.
func (p *Pipeline) WithLogger(logger *log.Logger) *Pipeline {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Result summarizes one completed run.
type Result struct {
	RunID      string
	SourceName string
	BatchHash  string
	TokenCount int
	Artifacts  []string
	Archived   bool
}

// Run executes the full ranking flow. It fails when no source yields a
// valid batch, when scoring is cancelled, or when an artifact cannot be
// written. Archive failures other than duplicates also fail the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	tokens, sourceName, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}

	ranked, err := p.ranker.Rank(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("rank tokens: %w", err)
	}

	generatedAt := p.clock().UTC()
	report := reporting.BuildReport(ranked, sourceName, generatedAt)
	runID := fmt.Sprintf("%s-%s", generatedAt.Format("20060102T150405Z"), report.BatchHash)

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	jsonPath := filepath.Join(p.outputDir, RankingsJSONFile)
	if err := reporting.WriteRankings(jsonPath, ranked); err != nil {
		return nil, err
	}

	mdPath := filepath.Join(p.outputDir, RankingsMDFile)
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		return nil, fmt.Errorf("write markdown: %w", err)
	}

	csvPath := filepath.Join(p.outputDir, RankingsCSVFile)
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.Rows)), 0644); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	p.printPreview(report)

	result := &Result{
		RunID:      runID,
		SourceName: sourceName,
		BatchHash:  report.BatchHash,
		TokenCount: report.TokenCount,
		Artifacts:  []string{jsonPath, mdPath, csvPath},
	}

	if p.archive != nil {
		if err := p.archiveRun(ctx, runID, ranked); err != nil {
			return nil, err
		}
		result.Archived = true
	}

	p.logger.Printf("[pipeline] run %s completed: %d tokens from %s", runID, report.TokenCount, sourceName)
	return result, nil
}

// printPreview writes the top N ranking lines to the console.
func (p *Pipeline) printPreview(report *reporting.Report) {
	if p.previewSize == 0 {
		return
	}

	lines := reporting.RenderPreview(report, p.previewSize)
	fmt.Fprintf(p.out, "Top %d tokens (of %d):\n", len(lines), report.TokenCount)
	for _, line := range lines {
		fmt.Fprintln(p.out, line)
	}
}

// archiveRun persists the ranked batch. Runs are append-only, so a
// duplicate run ID is an error surfaced to the caller.
func (p *Pipeline) archiveRun(ctx context.Context, runID string, ranked []domain.ScoredToken) error {
	rows := make([]*domain.ScoredToken, len(ranked))
	for i := range ranked {
		rows[i] = &ranked[i]
	}

	if err := p.archive.InsertBulk(ctx, runID, rows); err != nil {
		return fmt.Errorf("archive run %s: %w", runID, err)
	}

	p.logger.Printf("[pipeline] archived run %s (%d rows)", runID, len(rows))
	return nil
}

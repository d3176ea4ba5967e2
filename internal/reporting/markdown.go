package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Token Rankings\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	sb.WriteString("## Run Summary\n\n")
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Source | %s |\n", r.SourceName))
	sb.WriteString(fmt.Sprintf("| Tokens | %d |\n", r.TokenCount))
	sb.WriteString(fmt.Sprintf("| Batch Hash | %s |\n", r.BatchHash))
	sb.WriteString("\n")

	sb.WriteString("## Ranking\n\n")
	if len(r.Rows) > 0 {
		sb.WriteString("| Rank | Symbol | Name | Trending | Market | Social | Virality | Final |\n")
		sb.WriteString("|------|--------|------|----------|--------|--------|----------|-------|\n")
		for _, row := range r.Rows {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
				row.Rank, row.Symbol, row.Name,
				row.Trending, row.Market, row.Social, row.Virality, row.FinalScore))
		}
	} else {
		sb.WriteString("No tokens ranked.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderPreview renders the top N rows as console lines. Informational
// only: automated consumers should read the JSON artifact instead.
func RenderPreview(r *Report, n int) []string {
	if n > len(r.Rows) {
		n = len(r.Rows)
	}

	lines := make([]string, 0, n)
	for _, row := range r.Rows[:n] {
		lines = append(lines, fmt.Sprintf("%3d. %-10s %-20s %10.4f", row.Rank, row.Symbol, row.Name, row.FinalScore))
	}
	return lines
}

package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders the ranking rows as a CSV string.
func RenderCSV(rows []RankRow) string {
	var sb strings.Builder

	sb.WriteString("rank,feed_id,symbol,name,trending,market,social,virality,final_score\n")

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%s,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			row.Rank,
			row.FeedID,
			csvEscape(row.Symbol),
			csvEscape(row.Name),
			row.Trending,
			row.Market,
			row.Social,
			row.Virality,
			row.FinalScore,
		))
	}

	return sb.String()
}

// csvEscape quotes fields containing separators or quotes.
func csvEscape(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

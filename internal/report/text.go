package report

import (
	"fmt"
	"strings"
)

// renderText generates a text report
func (g *Generator) renderText(results *Results) ([]byte, error) {
	var sb strings.Builder

	for _, m := range results.Matches {
		sb.WriteString(m)
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(fmt.Sprintf("Matched:  %d\n", len(results.Matches)))
	if len(results.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:  %d\n", len(results.Skipped)))
		for _, s := range results.Skipped {
			sb.WriteString(fmt.Sprintf("  ! %s\n", s))
		}
	}
	sb.WriteString(fmt.Sprintf("Duration: %s\n", FormatDuration(results.Duration)))

	if results.Metrics != nil {
		sb.WriteString("Caches:\n")
		sb.WriteString(fmt.Sprintf("  matcher:  %d hits, %d misses, %d evictions, %d expirations\n",
			results.Metrics.Matcher.Hits, results.Metrics.Matcher.Misses,
			results.Metrics.Matcher.Evictions, results.Metrics.Matcher.Expirations))
		sb.WriteString(fmt.Sprintf("  metadata: %d hits, %d misses, %d evictions, %d expirations\n",
			results.Metrics.Metadata.Hits, results.Metrics.Metadata.Misses,
			results.Metrics.Metadata.Evictions, results.Metrics.Metadata.Expirations))
	}

	return []byte(sb.String()), nil
}

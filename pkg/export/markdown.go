package export

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/chartview/pkg/model"
)

// MarkdownTable renders points as a Markdown document with a title and one
// table row per point. Highlighted rows are bolded.
func MarkdownTable(title string, points []model.DataPoint, cols Columns) string {
	cols = cols.withDefaults()
	var sb strings.Builder

	if title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", escapeCell(title))
	}
	fmt.Fprintf(&sb, "| %s | %s | %s |\n", escapeCell(cols.Label), escapeCell(cols.SeriesA), escapeCell(cols.SeriesB))
	sb.WriteString("|---|---:|---:|\n")
	for _, p := range points {
		label, a, b := escapeCell(p.Label), formatValue(p.ValueA), formatValue(p.ValueB)
		if p.Highlighted {
			label, a, b = "**"+label+"**", "**"+a+"**", "**"+b+"**"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", label, a, b)
	}
	fmt.Fprintf(&sb, "\n_%d rows_\n", len(points))
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

package core

import (
	"fmt"
	"strings"
)

// TruncationMarker is appended when an aggregated document is cut to fit
// the character budget.
const TruncationMarker = "... (content truncated for length)"

// Render formats one page for inclusion in the aggregation prompt.
func (p PageContent) Render() string {
	return fmt.Sprintf("Webpage Title:\n%s\nWebpage Contents:\n%s\n\n", p.Title, p.Text)
}

// Render concatenates all sections into a single string bounded at budget
// characters. Truncation happens at a line boundary and is marked with
// TruncationMarker; no line is ever cut mid-way.
func (d AggregatedDocument) Render(budget int) string {
	var b strings.Builder
	for i, sec := range d.Sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(sec.Label)
		b.WriteString(":\n")
		b.WriteString(sec.Page.Render())
	}
	return truncateAtLine(b.String(), budget)
}

// truncateAtLine cuts text to at most budget characters, keeping whole
// lines only and ending with TruncationMarker when a cut was made.
func truncateAtLine(text string, budget int) string {
	if budget <= 0 || len(text) <= budget {
		return text
	}

	// Reserve room for the marker and the newline before it.
	limit := budget - len(TruncationMarker) - 1
	var b strings.Builder
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if count+len(line)+1 > limit {
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
		count += len(line) + 1
	}
	b.WriteString(TruncationMarker)
	return b.String()
}

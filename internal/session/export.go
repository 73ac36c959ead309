package session

import (
	"fmt"
	"strings"
)

const exportTimeLayout = "Jan 2, 2006 15:04 MST"

// ExportText renders a record as a plain-text transcript document.
func ExportText(r Record) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Interview Transcript: %s\n", r.SubjectName)
	fmt.Fprintf(&sb, "Started: %s\n", r.StartedAt.Format(exportTimeLayout))
	if r.CompletedAt != nil {
		fmt.Fprintf(&sb, "Completed: %s (%d min)\n", r.CompletedAt.Format(exportTimeLayout), r.DurationMinutes)
	}
	fmt.Fprintf(&sb, "Status: %s\n", r.Status)
	fmt.Fprintf(&sb, "Messages: %d\n", len(r.Messages))
	if r.Flagged {
		fmt.Fprintf(&sb, "Flagged for review: %s\n", r.FlagReason)
	}
	sb.WriteString("\n")
	sb.WriteString(r.Transcript)
	sb.WriteString("\n")
	return sb.String()
}

// SummaryMarkdown renders a report as a markdown document.
func SummaryMarkdown(rep SummaryReport) string {
	var sb strings.Builder

	sb.WriteString("# Team Check-in Summary\n\n")
	fmt.Fprintf(&sb, "_Generated %s_\n\n", rep.CreatedAt.Format(exportTimeLayout))

	list := func(title string, items []string) {
		fmt.Fprintf(&sb, "## %s\n\n", title)
		for _, it := range items {
			fmt.Fprintf(&sb, "- %s\n", it)
		}
		sb.WriteString("\n")
	}
	list("Key Themes", rep.Themes)
	list("Blockers", rep.Blockers)
	list("Achievements", rep.Achievements)
	list("Recommendations", rep.Recommendations)

	sb.WriteString("## Full Report\n\n")
	sb.WriteString(strings.TrimSpace(rep.FullReport))
	sb.WriteString("\n")
	return sb.String()
}

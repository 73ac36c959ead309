package session

import (
	"strings"
	"testing"
	"time"
)

func TestExportText(t *testing.T) {
	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	done := started.Add(14 * time.Minute)
	r := Record{
		SubjectName:     "Ana",
		Status:          StatusCompleted,
		StartedAt:       started,
		CompletedAt:     &done,
		DurationMinutes: 14,
		Transcript:      "Agent: Hi Ana!\n\nUser: Hello",
		Flagged:         true,
		FlagReason:      "follow up on hiring",
	}

	got := ExportText(r)
	for _, want := range []string{
		"Interview Transcript: Ana",
		"Started: Mar 2, 2026 09:00 UTC",
		"Completed: Mar 2, 2026 09:14 UTC (14 min)",
		"Status: completed",
		"Flagged for review: follow up on hiring",
		"Agent: Hi Ana!\n\nUser: Hello",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in export:\n%s", want, got)
		}
	}
}

func TestExportText_InProgressOmitsCompletion(t *testing.T) {
	got := ExportText(Record{SubjectName: "Ben", Status: StatusInProgress})
	if strings.Contains(got, "Completed:") || strings.Contains(got, "Flagged") {
		t.Errorf("unexpected completion or flag lines:\n%s", got)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	rep := SummaryReport{
		CreatedAt:       time.Date(2026, 3, 6, 17, 0, 0, 0, time.UTC),
		Themes:          []string{"Campaign velocity"},
		Blockers:        []string{"Design capacity"},
		Achievements:    []string{"Spring launch"},
		Recommendations: []string{"Hire a designer"},
		FullReport:      "  The team shipped.  ",
	}

	got := SummaryMarkdown(rep)
	for _, want := range []string{
		"# Team Check-in Summary",
		"## Key Themes\n\n- Campaign velocity",
		"## Blockers\n\n- Design capacity",
		"## Recommendations\n\n- Hire a designer",
		"## Full Report\n\nThe team shipped.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in markdown:\n%s", want, got)
		}
	}
}

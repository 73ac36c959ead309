// Package hermes publishes check-in lifecycle events over NATS.
package hermes

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	SubjectInterviewCompleted = "checkin.interview.completed"
	SubjectSummaryGenerated   = "checkin.summary.generated"
	SubjectTranscriptFlagged  = "checkin.transcript.flagged"
)

// InterviewCompleted is emitted once, when an interview reaches its closing message.
type InterviewCompleted struct {
	InterviewID    string    `json:"interview_id"`
	TeamMemberName string    `json:"team_member_name"`
	Messages       int       `json:"messages"`
	DurationMin    int       `json:"duration_min"`
	CompletedAt    time.Time `json:"completed_at"`
}

// SummaryGenerated is emitted after a summary report is stored.
type SummaryGenerated struct {
	SummaryID      string    `json:"summary_id"`
	InterviewCount int       `json:"interview_count"`
	Source         string    `json:"source"`
	Themes         []string  `json:"themes"`
	Blockers       []string  `json:"blockers"`
	CreatedAt      time.Time `json:"created_at"`
}

// TranscriptFlagged is emitted when a transcript is flagged for review.
type TranscriptFlagged struct {
	InterviewID    string    `json:"interview_id"`
	TeamMemberName string    `json:"team_member_name"`
	Reason         string    `json:"reason"`
	FlaggedAt      time.Time `json:"flagged_at"`
}

// DecodeInterviewCompleted parses an InterviewCompleted payload.
func DecodeInterviewCompleted(data []byte) (InterviewCompleted, error) {
	var ev InterviewCompleted
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("decode interview completed: %w", err)
	}
	if ev.InterviewID == "" {
		return ev, fmt.Errorf("decode interview completed: missing interview_id")
	}
	return ev, nil
}

package session

import (
	"time"

	"github.com/MikeSquared-Agency/checkin/internal/interview"
)

// Status is the lifecycle state of an interview. It only moves forward.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	default:
		return -1
	}
}

// Record is one interview with a team member.
type Record struct {
	ID              string              `json:"id"`
	SubjectID       string              `json:"teamMemberId"`
	SubjectName     string              `json:"teamMemberName"`
	Status          Status              `json:"status"`
	StartedAt       time.Time           `json:"startedAt"`
	CompletedAt     *time.Time          `json:"completedAt,omitempty"`
	Transcript      string              `json:"transcript,omitempty"`
	DurationMinutes int                 `json:"duration,omitempty"`
	Messages        []interview.Message `json:"messages"`
	Flagged         bool                `json:"flagged,omitempty"`
	FlagReason      string              `json:"flagReason,omitempty"`
}

// History returns the exchange messages that drive stage progression.
func (r Record) History() []interview.Message {
	return interview.ExchangeHistory(r.Messages)
}

// Stage is the interview stage derived from the recorded exchanges.
func (r Record) Stage() interview.Stage {
	return interview.StageAt(len(r.History()))
}

// SummaryReport is the leadership summary built from completed interviews.
type SummaryReport struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	Themes          []string  `json:"themes"`
	Blockers        []string  `json:"blockers"`
	Achievements    []string  `json:"achievements"`
	Recommendations []string  `json:"recommendations"`
	FullReport      string    `json:"fullReport"`
}

// Collection is everything persisted: every interview and at most one report.
type Collection struct {
	Interviews []Record       `json:"interviews"`
	Summary    *SummaryReport `json:"summary"`
}

func (c *Collection) index(id string) int {
	for i := range c.Interviews {
		if c.Interviews[i].ID == id {
			return i
		}
	}
	return -1
}

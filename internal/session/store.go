// Package session owns interview records and the leadership summary, and
// persists them wholesale through a pluggable Backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/checkin/internal/interview"
)

var (
	ErrNotFound         = errors.New("interview not found")
	ErrAlreadyCompleted = errors.New("interview already completed")
	ErrStatusRegression = errors.New("interview status cannot move backwards")
	ErrNoSummary        = errors.New("no summary generated yet")
)

// Store is a read-modify-write wrapper over a Backend. Every mutation
// rewrites the whole collection.
type Store struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex
}

func New(backend Backend, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Collection returns the full persisted state.
func (s *Store) Collection(ctx context.Context) (Collection, error) {
	return s.backend.Load(ctx)
}

// List returns the records matching f in insertion order.
func (s *Store) List(ctx context.Context, f Filter) ([]Record, error) {
	c, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	if f.Now.IsZero() {
		f.Now = s.now()
	}

	out := make([]Record, 0, len(c.Interviews))
	for _, r := range c.Interviews {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get returns one record.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	c, err := s.backend.Load(ctx)
	if err != nil {
		return Record{}, err
	}
	i := c.index(id)
	if i < 0 {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.Interviews[i], nil
}

// Start creates an in-progress interview opened with the agent greeting.
// An empty name becomes "Team Member N".
func (s *Store) Start(ctx context.Context, name string) (Record, error) {
	var rec Record
	err := s.mutate(ctx, func(c *Collection) error {
		now := s.now()
		if name == "" {
			name = fmt.Sprintf("Team Member %d", len(c.Interviews)+1)
		}
		rec = Record{
			ID:          "interview_" + uuid.NewString(),
			SubjectID:   "user_" + uuid.NewString(),
			SubjectName: name,
			Status:      StatusInProgress,
			StartedAt:   now,
			Messages:    []interview.Message{interview.NewMessage(interview.RoleAgent, interview.Greeting(name), now)},
		}
		rec.Transcript = interview.Transcript(rec.Messages)
		c.Interviews = append(c.Interviews, rec)
		return nil
	})
	if err != nil {
		return Record{}, err
	}

	s.logger.Info("interview started", "interview_id", rec.ID, "subject", rec.SubjectName)
	return rec, nil
}

// Update applies fn to the record with the given id and saves the collection.
// The transcript is recomputed after fn runs.
func (s *Store) Update(ctx context.Context, id string, fn func(r *Record) error) (Record, error) {
	var out Record
	err := s.mutate(ctx, func(c *Collection) error {
		i := c.index(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		r := c.Interviews[i]
		r.Messages = append([]interview.Message(nil), r.Messages...)
		before := r.Status
		if err := fn(&r); err != nil {
			return err
		}
		if r.Status.rank() < before.rank() {
			return ErrStatusRegression
		}
		r.Transcript = interview.Transcript(r.Messages)
		c.Interviews[i] = r
		out = r
		return nil
	})
	return out, err
}

// Append adds messages to an interview that is still open.
func (s *Store) Append(ctx context.Context, id string, msgs ...interview.Message) (Record, error) {
	return s.Update(ctx, id, func(r *Record) error {
		if r.Status == StatusCompleted {
			return ErrAlreadyCompleted
		}
		r.Messages = append(r.Messages, msgs...)
		return nil
	})
}

// SaveProgress persists the record as-is with a fresh transcript.
func (s *Store) SaveProgress(ctx context.Context, id string) (Record, error) {
	return s.Update(ctx, id, func(*Record) error { return nil })
}

// Complete marks the interview completed. CompletedAt and duration are only
// set on the first call.
func (s *Store) Complete(ctx context.Context, id string) (Record, error) {
	return s.Update(ctx, id, func(r *Record) error {
		markCompleted(r, s.now())
		return nil
	})
}

// markCompleted transitions r to completed at the given time. It is a no-op
// for records that are already completed.
func markCompleted(r *Record, at time.Time) {
	if r.Status == StatusCompleted {
		return
	}
	r.Status = StatusCompleted
	r.CompletedAt = &at
	r.DurationMinutes = int(math.Round(at.Sub(r.StartedAt).Minutes()))
}

// Flag marks a transcript for review.
func (s *Store) Flag(ctx context.Context, id, reason string) (Record, error) {
	return s.Update(ctx, id, func(r *Record) error {
		r.Flagged = true
		r.FlagReason = reason
		return nil
	})
}

// Completed returns every completed record.
func (s *Store) Completed(ctx context.Context) ([]Record, error) {
	return s.List(ctx, Filter{Status: string(StatusCompleted)})
}

// Summary returns the current report, or nil when none was generated yet.
func (s *Store) Summary(ctx context.Context) (*SummaryReport, error) {
	c, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Summary, nil
}

// SetSummary replaces the current report.
func (s *Store) SetSummary(ctx context.Context, rep SummaryReport) error {
	return s.mutate(ctx, func(c *Collection) error {
		c.Summary = &rep
		return nil
	})
}

func (s *Store) mutate(ctx context.Context, fn func(c *Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	if err := fn(&c); err != nil {
		return err
	}
	if err := s.backend.Save(ctx, c); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

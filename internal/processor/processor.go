// Package processor orchestrates interview turns and summary generation on
// top of the session store, the agent layer and the outbound notifiers.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/checkin/internal/agent"
	"github.com/MikeSquared-Agency/checkin/internal/hermes"
	"github.com/MikeSquared-Agency/checkin/internal/insight"
	"github.com/MikeSquared-Agency/checkin/internal/interview"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

// ErrNotEnoughCompleted is returned when a summary is requested before the
// configured number of interviews has completed.
var ErrNotEnoughCompleted = errors.New("not enough completed interviews")

// minCompletedForSummary is the floor for Options.MinCompleted. A summary
// always aggregates at least this many interviews.
const minCompletedForSummary = 2

// Publisher emits lifecycle events. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

// Notifier shares summaries and flagged transcripts. *slack.Poster satisfies it.
type Notifier interface {
	PostSummary(ctx context.Context, rep *session.SummaryReport, interviews int) (string, error)
	PostFlag(ctx context.Context, rec session.Record) (string, error)
}

// Processor is safe for concurrent use. Turns on the same interview are
// serialised so the stage is always derived from the latest history.
type Processor struct {
	store        *session.Store
	conductor    *agent.Conductor
	aggregator   *agent.Aggregator
	publisher    Publisher
	notifier     Notifier
	minCompleted int
	logger       *slog.Logger
	now          func() time.Time

	mu    sync.Mutex
	turns map[string]*sync.Mutex
}

// Options carries the optional collaborators. Nil Publisher or Notifier
// disables that side effect.
type Options struct {
	Publisher    Publisher
	Notifier     Notifier
	MinCompleted int
}

func New(s *session.Store, c *agent.Conductor, a *agent.Aggregator, opts Options, logger *slog.Logger) *Processor {
	if opts.MinCompleted < minCompletedForSummary {
		opts.MinCompleted = minCompletedForSummary
	}
	return &Processor{
		store:        s,
		conductor:    c,
		aggregator:   a,
		publisher:    opts.Publisher,
		notifier:     opts.Notifier,
		minCompleted: opts.MinCompleted,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		turns:        make(map[string]*sync.Mutex),
	}
}

// MinCompleted is the number of completed interviews a summary needs.
func (p *Processor) MinCompleted() int {
	return p.minCompleted
}

// Turn is the outcome of one user message on a stored interview.
type Turn struct {
	Record session.Record
	Reply  agent.Reply
	Stage  interview.Stage
}

// Reply records a user answer and the agent's response on a stored interview.
// The stage comes from the stored history, never from the caller.
func (p *Processor) Reply(ctx context.Context, id, text string) (Turn, error) {
	lock := p.turnLock(id)
	lock.Lock()
	defer lock.Unlock()

	rec, err := p.store.Get(ctx, id)
	if err != nil {
		return Turn{}, err
	}
	if rec.Status == session.StatusCompleted {
		return Turn{}, fmt.Errorf("%w: %s", session.ErrAlreadyCompleted, id)
	}

	history := rec.History()
	stage := interview.StageAt(len(history))
	reply := p.conductor.Respond(ctx, stage, history, text)

	at := p.now()
	updated, err := p.store.Append(ctx, id,
		interview.NewMessage(interview.RoleUser, text, at),
		interview.NewMessage(interview.RoleAgent, reply.AgentMessage, at),
	)
	if err != nil {
		return Turn{}, fmt.Errorf("record turn: %w", err)
	}
	// The final stage keeps reporting completion for longer histories, so a
	// turn recorded without the status change is completed by the next one.
	if reply.Complete {
		if updated, err = p.store.Complete(ctx, id); err != nil {
			return Turn{}, fmt.Errorf("complete interview: %w", err)
		}
	}

	p.logger.Info("interview turn",
		"interview_id", id,
		"stage", stage,
		"next_stage", reply.NextStage,
		"source", reply.Source,
		"complete", reply.Complete,
	)

	if reply.Complete {
		p.publish(hermes.SubjectInterviewCompleted, hermes.InterviewCompleted{
			InterviewID:    updated.ID,
			TeamMemberName: updated.SubjectName,
			Messages:       len(updated.Messages),
			DurationMin:    updated.DurationMinutes,
			CompletedAt:    *updated.CompletedAt,
		})
	}

	return Turn{Record: updated, Reply: reply, Stage: stage}, nil
}

// Converse answers one turn without touching the store. The caller supplies
// the stage and the exchange history.
func (p *Processor) Converse(ctx context.Context, stage interview.Stage, history []interview.Message, text string) agent.Reply {
	return p.conductor.Respond(ctx, stage, history, text)
}

// Analyze summarizes caller-supplied transcripts without touching the store.
func (p *Processor) Analyze(ctx context.Context, transcripts []insight.Transcript) (agent.Summary, error) {
	return p.aggregator.Summarize(ctx, transcripts)
}

// Generated is a stored summary plus the number of interviews behind it.
type Generated struct {
	Report         session.SummaryReport
	InterviewCount int
	Source         string
}

// GenerateSummary aggregates every completed interview and stores the report.
func (p *Processor) GenerateSummary(ctx context.Context) (Generated, error) {
	completed, err := p.store.Completed(ctx)
	if err != nil {
		return Generated{}, err
	}
	if len(completed) < p.minCompleted {
		return Generated{}, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughCompleted, len(completed), p.minCompleted)
	}

	transcripts := make([]insight.Transcript, 0, len(completed))
	for _, r := range completed {
		transcripts = append(transcripts, insight.Transcript{Name: r.SubjectName, Text: r.Transcript})
	}

	sum, err := p.aggregator.Summarize(ctx, transcripts)
	if err != nil {
		return Generated{}, fmt.Errorf("summarize: %w", err)
	}

	rep := session.SummaryReport{
		ID:              "summary_" + uuid.NewString(),
		CreatedAt:       p.now(),
		Themes:          sum.Themes,
		Blockers:        sum.Blockers,
		Achievements:    sum.Achievements,
		Recommendations: sum.Recommendations,
		FullReport:      sum.FullReport,
	}
	if err := p.store.SetSummary(ctx, rep); err != nil {
		return Generated{}, fmt.Errorf("store summary: %w", err)
	}

	p.logger.Info("summary generated", "summary_id", rep.ID, "interviews", len(completed), "source", sum.Source)

	p.publish(hermes.SubjectSummaryGenerated, hermes.SummaryGenerated{
		SummaryID:      rep.ID,
		InterviewCount: len(completed),
		Source:         sum.Source,
		Themes:         rep.Themes,
		Blockers:       rep.Blockers,
		CreatedAt:      rep.CreatedAt,
	})
	if p.notifier != nil {
		if _, err := p.notifier.PostSummary(ctx, &rep, len(completed)); err != nil {
			p.logger.Error("slack summary post failed", "summary_id", rep.ID, "error", err)
		}
	}

	return Generated{Report: rep, InterviewCount: len(completed), Source: sum.Source}, nil
}

// Flag marks a transcript for review and notifies downstream.
func (p *Processor) Flag(ctx context.Context, id, reason string) (session.Record, error) {
	rec, err := p.store.Flag(ctx, id, reason)
	if err != nil {
		return session.Record{}, err
	}

	p.logger.Info("transcript flagged", "interview_id", id)

	p.publish(hermes.SubjectTranscriptFlagged, hermes.TranscriptFlagged{
		InterviewID:    rec.ID,
		TeamMemberName: rec.SubjectName,
		Reason:         reason,
		FlaggedAt:      p.now(),
	})
	if p.notifier != nil {
		if _, err := p.notifier.PostFlag(ctx, rec); err != nil {
			p.logger.Error("slack flag post failed", "interview_id", id, "error", err)
		}
	}
	return rec, nil
}

func (p *Processor) publish(subject string, data any) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish event", "subject", subject, "error", err)
	}
}

func (p *Processor) turnLock(id string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.turns[id]
	if !ok {
		l = &sync.Mutex{}
		p.turns[id] = l
	}
	return l
}

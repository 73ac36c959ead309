package processor

import (
	"context"
	"errors"

	"github.com/MikeSquared-Agency/checkin/internal/hermes"
)

// HandleInterviewCompleted is the NATS handler for checkin.interview.completed.
// It regenerates the stored summary once enough interviews have completed.
func (p *Processor) HandleInterviewCompleted(subject string, data []byte) {
	ctx := context.Background()

	ev, err := hermes.DecodeInterviewCompleted(data)
	if err != nil {
		p.logger.Warn("failed to parse completion event", "subject", subject, "error", err)
		return
	}

	gen, err := p.GenerateSummary(ctx)
	switch {
	case errors.Is(err, ErrNotEnoughCompleted):
		p.logger.Debug("auto summary skipped", "interview_id", ev.InterviewID, "reason", err)
	case err != nil:
		p.logger.Error("auto summary failed", "interview_id", ev.InterviewID, "error", err)
	default:
		p.logger.Info("auto summary refreshed",
			"interview_id", ev.InterviewID,
			"summary_id", gen.Report.ID,
			"interviews", gen.InterviewCount,
		)
	}
}

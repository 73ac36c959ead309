package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/checkin/internal/interview"
)

const (
	localConfidence = 0.9
	agentConfidence = 0.95
	maxReplyRunes   = 1200
)

// Reply is the conductor's answer for one interview turn.
type Reply struct {
	interview.Result
	Source     string
	Confidence float64
}

// Conductor answers interview turns. Stage progression always comes from
// interview.Advance; an upstream generator may only reword follow-ups.
type Conductor struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
}

// NewConductor builds a conductor. gen may be nil for local-only operation.
func NewConductor(gen Generator, timeout time.Duration, logger *slog.Logger) *Conductor {
	return &Conductor{gen: gen, timeout: timeout, logger: logger}
}

// Respond never fails: upstream problems are logged and answered locally.
func (c *Conductor) Respond(ctx context.Context, stage interview.Stage, history []interview.Message, userText string) Reply {
	local := interview.Advance(stage, history, userText)
	reply := Reply{Result: local, Source: SourceLocal, Confidence: localConfidence}

	// Transitions, completion and unknown stages keep the scripted wording.
	if c.gen == nil || local.Complete || local.NextStage != stage || !stage.Known() {
		return reply
	}

	text, err := c.generate(ctx, stage, history, userText)
	if err != nil {
		c.logger.Warn("interview agent unavailable, using scripted reply",
			"stage", stage,
			"history_len", len(history),
			"error", err,
		)
		return reply
	}

	reply.AgentMessage = text
	reply.Source = SourceAgent
	reply.Confidence = agentConfidence
	return reply
}

func (c *Conductor) generate(ctx context.Context, stage interview.Stage, history []interview.Message, userText string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(conductorUserPrompt, stage, interview.Transcript(history), userText)
	raw, err := c.gen.Generate(ctx, conductorSystemPrompt, prompt)
	if err != nil {
		return "", &UpstreamError{Op: "interview", Err: err}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &UpstreamError{Op: "interview", Err: errors.New("empty reply")}
	}
	if r := []rune(text); len(r) > maxReplyRunes {
		return "", &UpstreamError{Op: "interview", Err: fmt.Errorf("reply too long: %d runes", len(r))}
	}
	return text, nil
}

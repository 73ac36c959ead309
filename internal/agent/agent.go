// Package agent delegates interview replies and summaries to an external
// language model, falling back to the deterministic interview and insight
// logic whenever the upstream call fails or returns something unusable.
package agent

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces text for a system prompt and a user prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// UpstreamError wraps a failed or unusable upstream call.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream agent %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

const (
	SourceLocal = "local"
	SourceAgent = "agent"
)

// cleanJSONBlock strips markdown code fences models like to wrap JSON in.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		first := text[:idx]
		if len(first) < 20 && !strings.Contains(first, " ") && !strings.Contains(first, "{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

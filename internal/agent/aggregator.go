package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/checkin/internal/insight"
)

// Summary is an aggregated report plus where it came from.
type Summary struct {
	insight.Report
	Source string
	Raw    string
}

// Aggregator builds leadership summaries from transcripts.
type Aggregator struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
}

// NewAggregator builds an aggregator. gen may be nil for local-only operation.
func NewAggregator(gen Generator, timeout time.Duration, logger *slog.Logger) *Aggregator {
	return &Aggregator{gen: gen, timeout: timeout, logger: logger}
}

type llmSummary struct {
	Themes          []any  `json:"themes"`
	Blockers        []any  `json:"blockers"`
	Achievements    []any  `json:"achievements"`
	Recommendations []any  `json:"recommendations"`
	FullReport      string `json:"fullReport"`
	FullReportSnake string `json:"full_report"`
}

// Summarize returns insight.ErrEmptyInput for no transcripts. Any upstream
// failure falls back to insight.Analyze; categories the upstream left empty
// are filled from the local analysis.
func (a *Aggregator) Summarize(ctx context.Context, transcripts []insight.Transcript) (Summary, error) {
	local, err := insight.Analyze(transcripts)
	if err != nil {
		return Summary{}, err
	}
	out := Summary{Report: local, Source: SourceLocal}
	if a.gen == nil {
		return out, nil
	}

	a.logger.Info("summarizing transcripts", "interviews", len(transcripts))

	raw, parsed, err := a.generate(ctx, transcripts)
	if err != nil {
		a.logger.Warn("summary agent unavailable, using local analysis", "error", err)
		return out, nil
	}

	out.Raw = raw
	out.Source = SourceAgent
	out.Themes = pick(insight.CategoryThemes, parsed.Themes, local.Themes)
	out.Blockers = pick(insight.CategoryBlockers, parsed.Blockers, local.Blockers)
	out.Achievements = pick(insight.CategoryAchievements, parsed.Achievements, local.Achievements)
	out.Recommendations = pick(insight.CategoryRecommendations, parsed.Recommendations, local.Recommendations)

	switch {
	case strings.TrimSpace(parsed.FullReport) != "":
		out.FullReport = parsed.FullReport
	case strings.TrimSpace(parsed.FullReportSnake) != "":
		out.FullReport = parsed.FullReportSnake
	default:
		out.FullReport = insight.Narrative(out.Themes, out.Blockers, out.Achievements)
	}

	a.logger.Info("summary complete",
		"themes", len(out.Themes),
		"blockers", len(out.Blockers),
		"achievements", len(out.Achievements),
	)
	return out, nil
}

func (a *Aggregator) generate(ctx context.Context, transcripts []insight.Transcript) (string, llmSummary, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var sb strings.Builder
	for _, t := range transcripts {
		fmt.Fprintf(&sb, "\n\n=== %s ===\n%s\n", t.Name, t.Text)
	}

	raw, err := a.gen.Generate(ctx, aggregatorSystemPrompt, fmt.Sprintf(aggregatorUserPrompt, sb.String()))
	if err != nil {
		return "", llmSummary{}, &UpstreamError{Op: "summary", Err: err}
	}

	var parsed llmSummary
	if err := json.Unmarshal([]byte(cleanJSONBlock(raw)), &parsed); err != nil {
		return raw, llmSummary{}, &UpstreamError{Op: "summary", Err: fmt.Errorf("parse summary: %w", err)}
	}
	return raw, parsed, nil
}

// pick keeps the non-empty strings of items, capped for c, or returns fallback.
func pick(c insight.Category, items []any, fallback []string) []string {
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return insight.Cap(c, out)
}

// Package slack shares summary reports and flagged transcripts to a channel.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/checkin/internal/session"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostSummary posts a leadership summary and returns the message timestamp.
func (p *Poster) PostSummary(ctx context.Context, rep *session.SummaryReport, interviews int) (string, error) {
	text := formatSummaryMessage(rep, interviews)
	ts, err := p.post(ctx, text, "Generated by the check-in aggregator")
	if err != nil {
		return "", err
	}
	p.logger.Info("posted summary to slack", "ts", ts, "summary_id", rep.ID)
	return ts, nil
}

// PostFlag notifies the channel that a transcript needs review.
func (p *Poster) PostFlag(ctx context.Context, rec session.Record) (string, error) {
	text := formatFlagMessage(rec)
	ts, err := p.post(ctx, text, "Open the transcript viewer to review")
	if err != nil {
		return "", err
	}
	p.logger.Info("posted flag to slack", "ts", ts, "interview_id", rec.ID)
	return ts, nil
}

func (p *Poster) post(ctx context.Context, text, footer string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
			{
				"type": "context",
				"elements": []map[string]any{
					{
						"type": "mrkdwn",
						"text": footer,
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}
	return slackResp.TS, nil
}

func formatSummaryMessage(rep *session.SummaryReport, interviews int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Team check-in summary* (%d interviews, %s)\n\n", interviews, rep.CreatedAt.Format("Jan 2, 2006"))

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "*%s*\n", title)
		for _, it := range items {
			fmt.Fprintf(&sb, "• %s\n", it)
		}
		sb.WriteString("\n")
	}
	section("Key themes", rep.Themes)
	section("Blockers", rep.Blockers)
	section("Achievements", rep.Achievements)
	section("Recommendations", rep.Recommendations)

	if len(rep.Themes)+len(rep.Blockers)+len(rep.Achievements)+len(rep.Recommendations) == 0 {
		sb.WriteString("_No insights were produced for this summary._")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatFlagMessage(rec session.Record) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Transcript flagged for review:* %s\n", rec.SubjectName)
	fmt.Fprintf(&sb, "*Interview:* %s (%s, %d messages)\n", rec.ID, rec.Status, len(rec.Messages))
	if rec.FlagReason != "" {
		fmt.Fprintf(&sb, "*Reason:* %s", rec.FlagReason)
	} else {
		sb.WriteString("_No reason given._")
	}
	return sb.String()
}

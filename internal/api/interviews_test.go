package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/checkin/internal/interview"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

func TestStartAndGetInterview(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, "POST", "/api/interviews", map[string]string{"name": "Ana"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created interviewView
	decodeBody(t, w, &created)
	if created.SubjectName != "Ana" || created.Status != session.StatusInProgress {
		t.Errorf("unexpected record: %+v", created.Record)
	}
	if len(created.Messages) != 1 || !strings.HasPrefix(created.Messages[0].Content, "Hi Ana!") {
		t.Errorf("expected greeting, got %+v", created.Messages)
	}
	if created.Stage != interview.StageProjects {
		t.Errorf("expected Projects stage, got %s", created.Stage)
	}

	w = do(t, srv, "GET", "/api/interviews/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got interviewView
	decodeBody(t, w, &got)
	if got.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, got.ID)
	}
}

func TestStartInterview_DefaultName(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, "POST", "/api/interviews", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created interviewView
	decodeBody(t, w, &created)
	if created.SubjectName != "Team Member 1" {
		t.Errorf("expected default name, got %q", created.SubjectName)
	}
}

func TestGetInterview_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/interviews/interview_missing",
		"/api/interviews/interview_missing/transcript.txt",
	} {
		if w := do(t, srv, "GET", path, nil); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestPostMessage(t *testing.T) {
	srv, st := newTestServer(t)
	rec, _ := st.Start(context.Background(), "Ana")

	w := do(t, srv, "POST", "/api/interviews/"+rec.ID+"/messages", map[string]string{"message": "Brand refresh"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Interview    interviewView `json:"interview"`
		AgentMessage string        `json:"agentMessage"`
		Complete     bool          `json:"complete"`
		Source       string        `json:"source"`
	}
	decodeBody(t, w, &body)
	if len(body.Interview.Messages) != 3 {
		t.Errorf("expected greeting plus one exchange, got %d messages", len(body.Interview.Messages))
	}
	if !strings.HasPrefix(body.AgentMessage, "That's great! Brand refresh...") {
		t.Errorf("unexpected agent message %q", body.AgentMessage)
	}
	if body.Complete || body.Source != "local" {
		t.Errorf("unexpected turn metadata: %+v", body)
	}

	if w := do(t, srv, "POST", "/api/interviews/"+rec.ID+"/messages", map[string]string{"message": ""}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty message, got %d", w.Code)
	}
}

func TestPostMessage_CompletedInterviewConflicts(t *testing.T) {
	srv, st := newTestServer(t)
	rec, _ := st.Start(context.Background(), "Ana")
	if _, err := st.Complete(context.Background(), rec.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	w := do(t, srv, "POST", "/api/interviews/"+rec.ID+"/messages", map[string]string{"message": "late answer"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestSaveAndFlagInterview(t *testing.T) {
	srv, st := newTestServer(t)
	rec, _ := st.Start(context.Background(), "Ana")

	if w := do(t, srv, "POST", "/api/interviews/"+rec.ID+"/save", nil); w.Code != http.StatusOK {
		t.Errorf("save: expected 200, got %d", w.Code)
	}

	w := do(t, srv, "POST", "/api/interviews/"+rec.ID+"/flag", map[string]string{"reason": "follow up on hiring"})
	if w.Code != http.StatusOK {
		t.Fatalf("flag: expected 200, got %d", w.Code)
	}
	var flagged interviewView
	decodeBody(t, w, &flagged)
	if !flagged.Flagged || flagged.FlagReason != "follow up on hiring" {
		t.Errorf("expected flagged record, got %+v", flagged.Record)
	}
}

func TestExportTranscript(t *testing.T) {
	srv, st := newTestServer(t)
	rec, _ := st.Start(context.Background(), "Ana")

	w := do(t, srv, "GET", "/api/interviews/"+rec.ID+"/transcript.txt", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), rec.ID+".txt") {
		t.Errorf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(w.Body.String(), "Agent: Hi Ana!") {
		t.Errorf("expected transcript body, got %q", w.Body.String())
	}
}

func TestListInterviews_Filters(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()
	a, _ := st.Start(ctx, "Ana")
	st.Start(ctx, "Ben")
	st.Complete(ctx, a.ID)

	w := do(t, srv, "GET", "/api/interviews?status=completed&date=today", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Interviews []interviewView        `json:"interviews"`
		Total      int                    `json:"total"`
		Counts     map[session.Status]int `json:"counts"`
	}
	decodeBody(t, w, &body)
	if len(body.Interviews) != 1 || body.Interviews[0].SubjectName != "Ana" {
		t.Errorf("expected only Ana, got %+v", body.Interviews)
	}
	if body.Total != 2 || body.Counts[session.StatusCompleted] != 1 || body.Counts[session.StatusInProgress] != 1 {
		t.Errorf("unexpected totals: %d %v", body.Total, body.Counts)
	}

	if w := do(t, srv, "GET", "/api/interviews?status=archived", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", w.Code)
	}
	if w := do(t, srv, "GET", "/api/interviews?date=decade", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown date range, got %d", w.Code)
	}
}

func TestSummaries(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()

	if w := do(t, srv, "GET", "/api/summaries/latest", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 before any summary, got %d", w.Code)
	}

	a, _ := st.Start(ctx, "Ana")
	st.Complete(ctx, a.ID)
	if w := do(t, srv, "POST", "/api/summaries", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 below the completed minimum, got %d", w.Code)
	}

	b, _ := st.Start(ctx, "Ben")
	st.Complete(ctx, b.ID)
	w := do(t, srv, "POST", "/api/summaries", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Summary        session.SummaryReport `json:"summary"`
		InterviewCount int                   `json:"interviewCount"`
	}
	decodeBody(t, w, &created)
	if created.InterviewCount != 2 || !strings.HasPrefix(created.Summary.ID, "summary_") {
		t.Errorf("unexpected summary: %+v", created)
	}

	w = do(t, srv, "GET", "/api/summaries/latest", nil)
	var latest session.SummaryReport
	decodeBody(t, w, &latest)
	if latest.ID != created.Summary.ID {
		t.Errorf("expected latest %s, got %s", created.Summary.ID, latest.ID)
	}

	w = do(t, srv, "GET", "/api/summaries/latest.md", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "# Team Check-in Summary") {
		t.Errorf("unexpected markdown export: %d %q", w.Code, w.Body.String())
	}
}

package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/checkin/internal/agent"
	"github.com/MikeSquared-Agency/checkin/internal/interview"
	"github.com/MikeSquared-Agency/checkin/internal/processor"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUI(t *testing.T) (http.Handler, *session.Store) {
	t.Helper()
	logger := discardLogger()
	st := session.New(session.NewMemoryBackend(), logger)
	proc := processor.New(st,
		agent.NewConductor(nil, time.Second, logger),
		agent.NewAggregator(nil, time.Second, logger),
		processor.Options{MinCompleted: 2},
		logger,
	)
	h, err := New(st, proc, logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	r := chi.NewRouter()
	h.Routes(r)
	return r, st
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestDashboard_ListsAndFilters(t *testing.T) {
	h, st := newTestUI(t)
	ctx := context.Background()
	a, _ := st.Start(ctx, "Ana")
	st.Start(ctx, "Ben")
	st.Complete(ctx, a.ID)

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Ana", "Ben", "2 interviews", "1 completed", "/transcript/" + a.ID} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q on dashboard", want)
		}
	}

	body = get(t, h, "/?status=in-progress").Body.String()
	if strings.Contains(body, "<td>Ana") || !strings.Contains(body, "<td>Ben") {
		t.Error("expected status filter to keep only Ben")
	}
}

func TestStartInterview_Redirects(t *testing.T) {
	h, st := newTestUI(t)

	w := postForm(t, h, "/interviews", url.Values{"name": {"  Ana  "}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/interview/interview_") {
		t.Fatalf("unexpected redirect %q", loc)
	}

	recs, _ := st.List(context.Background(), session.Filter{})
	if len(recs) != 1 || recs[0].SubjectName != "Ana" {
		t.Errorf("expected trimmed name stored, got %+v", recs)
	}

	page := get(t, h, loc).Body.String()
	if !strings.Contains(page, "Hi Ana!") || !strings.Contains(page, `class="current">Projects`) {
		t.Errorf("expected greeting and Projects step, got:\n%s", page)
	}
}

func TestInterviewPage_SendAndSave(t *testing.T) {
	h, st := newTestUI(t)
	rec, _ := st.Start(context.Background(), "Ana")

	w := postForm(t, h, "/interview/"+rec.ID+"/messages", url.Values{"message": {"Brand refresh"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	page := get(t, h, "/interview/"+rec.ID).Body.String()
	if !strings.Contains(page, "Brand refresh") || !strings.Contains(page, "That&#39;s great!") {
		t.Errorf("expected exchange on page, got:\n%s", page)
	}

	w = postForm(t, h, "/interview/"+rec.ID+"/messages", url.Values{"message": {"   "}})
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "error=") {
		t.Errorf("expected error redirect for empty reply, got %q", loc)
	}

	w = postForm(t, h, "/interview/"+rec.ID+"/save", nil)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to dashboard, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestInterviewPage_NotFound(t *testing.T) {
	h, _ := newTestUI(t)
	for _, path := range []string{"/interview/interview_missing", "/transcript/interview_missing"} {
		if w := get(t, h, path); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestTranscriptPage_SearchAndFlag(t *testing.T) {
	h, st := newTestUI(t)
	ctx := context.Background()
	rec, _ := st.Start(ctx, "Ana")
	at := time.Now().UTC()
	st.Append(ctx, rec.ID,
		interview.NewMessage(interview.RoleUser, "We launched the spring campaign.", at),
		interview.NewMessage(interview.RoleAgent, "Great, anything blocking you?", at),
		interview.NewMessage(interview.RoleUser, "I need to hire a designer.", at),
	)

	page := get(t, h, "/transcript/"+rec.ID).Body.String()
	if !strings.Contains(page, "We launched the spring campaign.</li>") {
		t.Error("expected launch paragraph among key points")
	}
	if !strings.Contains(page, "I need to hire a designer.</li>") {
		t.Error("expected hiring paragraph among action items")
	}

	page = get(t, h, "/transcript/"+rec.ID+"?q=DESIGNER").Body.String()
	if strings.Contains(page, "<p>We launched the spring campaign.</p>") {
		t.Error("expected search to hide non-matching messages")
	}
	page = get(t, h, "/transcript/"+rec.ID+"?q=budget").Body.String()
	if !strings.Contains(page, "No messages found matching") {
		t.Error("expected empty search notice")
	}

	w := postForm(t, h, "/transcript/"+rec.ID+"/flag", url.Values{"reason": {"check hiring plan"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	got, _ := st.Get(ctx, rec.ID)
	if !got.Flagged || got.FlagReason != "check hiring plan" {
		t.Errorf("expected flag stored, got %+v", got)
	}
}

func TestGenerateSummary(t *testing.T) {
	h, st := newTestUI(t)
	ctx := context.Background()

	a, _ := st.Start(ctx, "Ana")
	st.Complete(ctx, a.ID)
	w := postForm(t, h, "/summary", nil)
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "error=") {
		t.Errorf("expected error redirect below the minimum, got %q", loc)
	}

	b, _ := st.Start(ctx, "Ben")
	st.Complete(ctx, b.ID)
	w = postForm(t, h, "/summary", nil)
	if loc := w.Header().Get("Location"); loc != "/?tab=summary" {
		t.Fatalf("expected summary redirect, got %q", loc)
	}

	page := get(t, h, "/?tab=summary").Body.String()
	if !strings.Contains(page, "Key themes") || !strings.Contains(page, `<div class="report"><p>`) {
		t.Errorf("expected rendered report, got:\n%s", page)
	}
}

func TestMarkdown_DoesNotPassRawHTML(t *testing.T) {
	h, err := New(nil, nil, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out := string(h.markdown("**Bold** <script>alert(1)</script>"))
	if !strings.Contains(out, "<strong>Bold</strong>") {
		t.Errorf("expected markdown rendering, got %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("expected raw HTML to be dropped, got %q", out)
	}
}

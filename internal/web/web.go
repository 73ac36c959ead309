// Package web renders the browser UI: the dashboard, the interview chat and
// the transcript viewer. Pages are plain HTML forms that post back and
// redirect, so no client-side state is kept.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/MikeSquared-Agency/checkin/internal/insight"
	"github.com/MikeSquared-Agency/checkin/internal/interview"
	"github.com/MikeSquared-Agency/checkin/internal/processor"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	store  *session.Store
	proc   *processor.Processor
	pages  map[string]*template.Template
	md     goldmark.Markdown
	logger *slog.Logger
}

func New(st *session.Store, proc *processor.Processor, logger *slog.Logger) (*Handler, error) {
	h := &Handler{
		store: st,
		proc:  proc,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		logger: logger,
		pages:  make(map[string]*template.Template),
	}

	funcs := template.FuncMap{
		"markdown": h.markdown,
		"when":     formatTime,
		"add":      func(a, b int) int { return a + b },
		"speaker":  speaker,
	}
	for _, page := range []string{"dashboard", "interview", "transcript"} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		h.pages[page] = t
	}
	return h, nil
}

// Routes registers the UI routes on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.dashboard)
	r.Post("/interviews", h.startInterview)
	r.Post("/summary", h.generateSummary)

	r.Get("/interview/{id}", h.interviewPage)
	r.Post("/interview/{id}/messages", h.postMessage)
	r.Post("/interview/{id}/save", h.saveInterview)

	r.Get("/transcript/{id}", h.transcriptPage)
	r.Post("/transcript/{id}/flag", h.flagTranscript)
}

type dashboardData struct {
	Tab          string
	Status       string
	Date         string
	Interviews   []session.Record
	Total        int
	Counts       map[string]int
	Summary      *session.SummaryReport
	Completed    int
	MinCompleted int
	Error        string
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := dashboardData{
		Tab:          q.Get("tab"),
		Status:       q.Get("status"),
		Date:         q.Get("date"),
		Error:        q.Get("error"),
		MinCompleted: h.proc.MinCompleted(),
	}
	if data.Tab != "summary" {
		data.Tab = "interviews"
	}

	c, err := h.store.Collection(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	f := session.Filter{Status: data.Status, Date: data.Date, Now: time.Now().UTC()}
	for _, rec := range c.Interviews {
		if f.Match(rec) {
			data.Interviews = append(data.Interviews, rec)
		}
	}
	data.Total = len(c.Interviews)
	data.Counts = make(map[string]int)
	for status, n := range session.Counts(c.Interviews) {
		data.Counts[string(status)] = n
	}
	data.Completed = data.Counts[string(session.StatusCompleted)]
	data.Summary = c.Summary

	h.render(w, r, "dashboard", data)
}

func (h *Handler) startInterview(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Start(r.Context(), strings.TrimSpace(r.FormValue("name")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/interview/"+rec.ID, http.StatusSeeOther)
}

func (h *Handler) generateSummary(w http.ResponseWriter, r *http.Request) {
	_, err := h.proc.GenerateSummary(r.Context())
	switch {
	case errors.Is(err, processor.ErrNotEnoughCompleted):
		msg := fmt.Sprintf("Complete at least %d interviews before generating a summary.", h.proc.MinCompleted())
		http.Redirect(w, r, "/?tab=summary&error="+url.QueryEscape(msg), http.StatusSeeOther)
	case err != nil:
		h.fail(w, r, err)
	default:
		http.Redirect(w, r, "/?tab=summary", http.StatusSeeOther)
	}
}

type stageStep struct {
	Name    interview.Stage
	Current bool
	Done    bool
}

type interviewData struct {
	Record   session.Record
	Stage    interview.Stage
	Steps    []stageStep
	Progress int
	Error    string
}

func (h *Handler) interviewPage(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	stage := rec.Stage()
	data := interviewData{Record: rec, Stage: stage, Error: r.URL.Query().Get("error")}
	for i, s := range interview.Stages {
		done := i < stage.Index() || rec.Status == session.StatusCompleted
		data.Steps = append(data.Steps, stageStep{Name: s, Current: s == stage && !done, Done: done})
	}
	data.Progress = (stage.Index() + 1) * 100 / len(interview.Stages)
	if rec.Status == session.StatusCompleted {
		data.Progress = 100
	}

	h.render(w, r, "interview", data)
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text := strings.TrimSpace(r.FormValue("message"))
	if text == "" {
		http.Redirect(w, r, "/interview/"+id+"?error="+url.QueryEscape("Type a reply before sending."), http.StatusSeeOther)
		return
	}

	if _, err := h.proc.Reply(r.Context(), id, text); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/interview/"+id+"#latest", http.StatusSeeOther)
}

func (h *Handler) saveInterview(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.SaveProgress(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type transcriptData struct {
	Record      session.Record
	Query       string
	Messages    []interview.Message
	KeyPoints   []string
	ActionItems []string
	Flagged     bool
}

func (h *Handler) transcriptPage(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	q := r.URL.Query().Get("q")
	h.render(w, r, "transcript", transcriptData{
		Record:      rec,
		Query:       q,
		Messages:    interview.Search(rec.Messages, q),
		KeyPoints:   insight.KeyPoints(rec.Transcript),
		ActionItems: insight.ActionItems(rec.Transcript),
		Flagged:     r.URL.Query().Get("flagged") != "",
	})
}

func (h *Handler) flagTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.proc.Flag(r.Context(), id, strings.TrimSpace(r.FormValue("reason"))); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/transcript/"+id+"?flagged=1", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.fail(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		http.Error(w, "Interview not found", http.StatusNotFound)
	case errors.Is(err, session.ErrAlreadyCompleted):
		http.Error(w, "This interview is already completed", http.StatusConflict)
	default:
		h.logger.Error("page failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}

// markdown renders report text. Raw HTML in the source is not passed through.
func (h *Handler) markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		h.logger.Warn("markdown render failed", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

func speaker(role interview.Role) string {
	if role == interview.RoleAgent {
		return "Interviewer"
	}
	return "You"
}

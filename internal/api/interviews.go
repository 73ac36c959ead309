package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/checkin/internal/interview"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

type listQuery struct {
	Status string `validate:"omitempty,oneof=all pending in-progress completed"`
	Date   string `validate:"omitempty,oneof=all today week month"`
}

type startRequest struct {
	Name string `json:"name" validate:"max=120"`
}

type messageRequest struct {
	Message string `json:"message" validate:"required,max=10000"`
}

type flagRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// interviewView is a record plus its derived stage.
type interviewView struct {
	session.Record
	Stage interview.Stage `json:"stage"`
}

func view(r session.Record) interviewView {
	return interviewView{Record: r, Stage: r.Stage()}
}

func (s *Server) listInterviews(w http.ResponseWriter, r *http.Request) {
	q := listQuery{
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	}
	if err := s.validator.Struct(q); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	all, err := s.store.List(r.Context(), session.Filter{})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	matched, err := s.store.List(r.Context(), session.Filter{Status: q.Status, Date: q.Date})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]interviewView, 0, len(matched))
	for _, rec := range matched {
		views = append(views, view(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"interviews": views,
		"total":      len(all),
		"counts":     session.Counts(all),
	})
}

func (s *Server) startInterview(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	// An empty body starts an interview with the default name.
	if r.ContentLength != 0 {
		if err := s.decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	rec, err := s.store.Start(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view(rec))
}

func (s *Server) getInterview(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view(rec))
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	turn, err := s.proc.Reply(r.Context(), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"interview":    view(turn.Record),
		"agentMessage": turn.Reply.AgentMessage,
		"nextStage":    turn.Reply.NextStage,
		"complete":     turn.Reply.Complete,
		"source":       turn.Reply.Source,
	})
}

func (s *Server) saveInterview(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.SaveProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view(rec))
}

func (s *Server) flagInterview(w http.ResponseWriter, r *http.Request) {
	var req flagRequest
	if r.ContentLength != 0 {
		if err := s.decode(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	rec, err := s.proc.Flag(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view(rec))
}

func (s *Server) exportTranscript(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.txt"`, rec.ID))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, session.ExportText(rec))
}

func (s *Server) generateSummary(w http.ResponseWriter, r *http.Request) {
	gen, err := s.proc.GenerateSummary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":        true,
		"summary":        gen.Report,
		"interviewCount": gen.InterviewCount,
		"source":         gen.Source,
	})
}

func (s *Server) latestSummary(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Summary(r.Context())
	if err == nil && rep == nil {
		err = session.ErrNoSummary
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) latestSummaryMarkdown(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Summary(r.Context())
	if err == nil && rep == nil {
		err = session.ErrNoSummary
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="checkin-summary.md"`)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, session.SummaryMarkdown(*rep))
}

// Package api serves the JSON endpoints: the stateless interview and summary
// agents plus REST access to the stored interviews and summary report.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/checkin/internal/processor"
	"github.com/MikeSquared-Agency/checkin/internal/session"
)

// StatusInfo describes the running configuration for the status endpoint.
type StatusInfo struct {
	StoreDriver   string
	AgentProvider string
	// EventsConnected reports the NATS connection state; nil when disabled.
	EventsConnected func() bool
}

type Server struct {
	router    *chi.Mux
	store     *session.Store
	proc      *processor.Processor
	validator *validator.Validate
	info      StatusInfo
	logger    *slog.Logger
	http      *http.Server
}

func NewServer(port int, st *session.Store, proc *processor.Processor, info StatusInfo, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		store:     st,
		proc:      proc,
		validator: validator.New(),
		info:      info,
		logger:    logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/checkin/status", s.status)

	router.Post("/api/interview", s.interviewTurn)
	router.Post("/api/summary", s.summarize)

	router.Route("/api/interviews", func(r chi.Router) {
		r.Get("/", s.listInterviews)
		r.Post("/", s.startInterview)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getInterview)
			r.Post("/messages", s.postMessage)
			r.Post("/save", s.saveInterview)
			r.Post("/flag", s.flagInterview)
			r.Get("/transcript.txt", s.exportTranscript)
		})
	})

	router.Route("/api/summaries", func(r chi.Router) {
		r.Post("/", s.generateSummary)
		r.Get("/latest", s.latestSummary)
		r.Get("/latest.md", s.latestSummaryMarkdown)
	})

	return s
}

// Router exposes the mux so the HTML views can be mounted alongside the API.
func (s *Server) Router() chi.Router {
	return s.router
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"agent":          "checkin",
		"status":         "ok",
		"store":          s.info.StoreDriver,
		"agent_provider": providerName(s.info.AgentProvider),
	}
	if s.info.EventsConnected != nil {
		body["events_connected"] = s.info.EventsConnected()
	}

	c, err := s.store.Collection(r.Context())
	if err != nil {
		s.logger.Error("status: load collection failed", "error", err)
		body["status"] = "degraded"
	} else {
		counts := session.Counts(c.Interviews)
		body["interviews"] = map[string]int{
			"total":       len(c.Interviews),
			"pending":     counts[session.StatusPending],
			"in_progress": counts[session.StatusInProgress],
			"completed":   counts[session.StatusCompleted],
		}
		body["summary_available"] = c.Summary != nil
	}

	writeJSON(w, http.StatusOK, body)
}

func providerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError renders err with the status HTTPStatus picks for it.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

// decode reads a JSON body into v and validates it.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validator.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

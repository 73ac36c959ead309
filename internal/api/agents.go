package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/checkin/internal/agent"
	"github.com/MikeSquared-Agency/checkin/internal/insight"
	"github.com/MikeSquared-Agency/checkin/internal/interview"
)

type interviewRequest struct {
	Message             string              `json:"message" validate:"required"`
	InterviewID         string              `json:"interviewId"`
	Stage               string              `json:"stage" validate:"required"`
	ConversationHistory []interview.Message `json:"conversationHistory" validate:"dive"`
}

type interviewMetadata struct {
	Stage         string    `json:"stage"`
	MessagesCount int       `json:"messagesCount"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
}

type interviewReply struct {
	AgentMessage      string            `json:"agentMessage"`
	NextStage         int               `json:"nextStage"`
	InterviewComplete bool              `json:"interviewComplete"`
	Status            string            `json:"status"`
	Confidence        float64           `json:"confidence"`
	Metadata          interviewMetadata `json:"metadata"`
}

type interviewResponse struct {
	Success     bool           `json:"success"`
	Response    interviewReply `json:"response"`
	RawResponse string         `json:"rawResponse"`
}

// interviewTurn handles POST /api/interview. It is stateless: the caller
// supplies the stage and the history.
func (s *Server) interviewTurn(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("interview handler panic", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "Failed to process interview response",
				"details": fmt.Sprint(rec),
			})
		}
	}()

	var req interviewRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid interview request",
			"details": err.Error(),
		})
		return
	}

	stage := interview.Stage(req.Stage)
	reply := s.proc.Converse(r.Context(), stage, req.ConversationHistory, req.Message)

	writeJSON(w, http.StatusOK, interviewResponse{
		Success:     true,
		Response:    buildInterviewReply(stage, len(req.ConversationHistory), reply),
		RawResponse: reply.AgentMessage,
	})
}

func buildInterviewReply(stage interview.Stage, historyLen int, reply agent.Reply) interviewReply {
	status := "in-progress"
	if reply.Complete {
		status = "completed"
	}
	name := string(reply.NextStage)
	if name == "" {
		name = string(stage)
	}
	return interviewReply{
		AgentMessage:      reply.AgentMessage,
		NextStage:         reply.NextStage.Index(),
		InterviewComplete: reply.Complete,
		Status:            status,
		Confidence:        reply.Confidence,
		Metadata: interviewMetadata{
			Stage:         name,
			MessagesCount: historyLen + 1,
			Timestamp:     time.Now().UTC(),
			Source:        reply.Source,
		},
	}
}

type summaryRequest struct {
	Interviews []insight.Transcript `json:"interviews"`
}

type summaryResponse struct {
	Success        bool           `json:"success"`
	Response       insight.Report `json:"response"`
	RawResponse    string         `json:"rawResponse,omitempty"`
	Source         string         `json:"source,omitempty"`
	Error          string         `json:"error,omitempty"`
	InterviewCount int            `json:"interviewCount"`
	Timestamp      time.Time      `json:"timestamp"`
}

// summarize handles POST /api/summary. Anything but an empty or malformed
// request yields a report: internal failures return the fixed fallback.
func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid summary request",
			"details": err.Error(),
		})
		return
	}
	if len(req.Interviews) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "No interviews provided",
		})
		return
	}

	sum, err := s.analyze(r, req.Interviews)
	if err != nil {
		if errors.Is(err, insight.ErrEmptyInput) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "No interviews provided",
			})
			return
		}
		s.logger.Error("summary analysis failed, using fallback", "error", err)
		writeJSON(w, http.StatusOK, summaryResponse{
			Success:        true,
			Response:       insight.Fallback(),
			RawResponse:    "Generated default insights due to processing error",
			Error:          "Used fallback analysis",
			InterviewCount: 0,
			Timestamp:      time.Now().UTC(),
		})
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Success:        true,
		Response:       sum.Report,
		RawResponse:    sum.Raw,
		Source:         sum.Source,
		InterviewCount: len(req.Interviews),
		Timestamp:      time.Now().UTC(),
	})
}

// analyze converts a panic inside the aggregator into an error so the
// handler can answer with the fallback report.
func (s *Server) analyze(r *http.Request, transcripts []insight.Transcript) (sum agent.Summary, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("summary panic: %v", rec)
		}
	}()
	return s.proc.Analyze(r.Context(), transcripts)
}

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/p-n-ai/cs-notes/internal/analytics"
)

const maxEventBytes = 16 << 10

// eventRequest is a navigation event posted by the client bundle.
type eventRequest struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Topic     string `json:"topic"`
	Question  *int   `json:"question,omitempty"`
	Expanded  *bool  `json:"expanded,omitempty"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxEventBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req eventRequest
	if err := dec.Decode(&req); err != nil {
		badRequest(w, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}

	ev, err := s.toEvent(req)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.events.LogEvent(r.Context(), ev); err != nil {
		slog.Warn("analytics event dropped", "session_id", ev.SessionID, "type", ev.EventType, "error", err)
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// toEvent checks the request against the catalog so only real positions
// are recorded.
func (s *Server) toEvent(req eventRequest) (analytics.Event, error) {
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		return analytics.Event{}, fmt.Errorf("session_id must be a UUID")
	}
	if !analytics.KnownEventType(req.Type) {
		return analytics.Event{}, fmt.Errorf("unknown event type %q", req.Type)
	}
	if req.Category == "" || req.Topic == "" {
		return analytics.Event{}, errors.New("category and topic are required")
	}
	topic, err := s.catalog.Lookup(req.Category, req.Topic)
	if err != nil {
		return analytics.Event{}, err
	}

	ev := analytics.Event{
		SessionID:   id.String(),
		EventType:   req.Type,
		CategoryKey: req.Category,
		TopicID:     req.Topic,
		CreatedAt:   s.now(),
	}
	if req.Type == analytics.EventQuestionToggled {
		if req.Question == nil {
			return analytics.Event{}, errors.New("question is required for question_toggled")
		}
		if q := *req.Question; q < 0 || q >= len(topic.Questions) {
			return analytics.Event{}, fmt.Errorf("question %d out of range for %q", q, req.Topic)
		}
		ev.Data = map[string]any{"question": *req.Question}
		if req.Expanded != nil {
			ev.Data["expanded"] = *req.Expanded
		}
	}
	return ev, nil
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "Bad Request",
		Message: msg,
	})
}

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"podpoints/internal/store"
)

type EventHandler struct {
	events *store.EventStore
	logger *slog.Logger
}

func NewEventHandler(events *store.EventStore, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

type eventRequest struct {
	Name         string    `json:"name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	PointsAmount int       `json:"points_amount"`
	SecretCode   string    `json:"secret_code"`
	Link         string    `json:"event_link"`
}

// Create registers a claimable event. Admin-only; enforced by the router.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeFailure(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.SecretCode == "" {
		writeFailure(w, http.StatusBadRequest, "secret_code is required")
		return
	}
	if req.PointsAmount <= 0 {
		writeFailure(w, http.StatusBadRequest, "points_amount must be positive")
		return
	}

	event, err := h.events.Create(req.Name, req.StartTime, req.EndTime, req.PointsAmount, req.SecretCode, req.Link)
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not commit event")
		return
	}

	writeSuccess(w, http.StatusCreated, "event successfully created", event)
}

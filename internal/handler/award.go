package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"podpoints/internal/auth"
	"podpoints/internal/award"
	"podpoints/internal/model"
	"podpoints/internal/push"
	"podpoints/internal/store"
	"podpoints/internal/websocket"
)

type AwardHandler struct {
	engine   *award.Engine
	members  *store.MemberStore
	hub      *websocket.Hub
	notifier *push.Notifier
	logger   *slog.Logger
}

func NewAwardHandler(engine *award.Engine, members *store.MemberStore, hub *websocket.Hub, notifier *push.Notifier, logger *slog.Logger) *AwardHandler {
	return &AwardHandler{
		engine:   engine,
		members:  members,
		hub:      hub,
		notifier: notifier,
		logger:   logger,
	}
}

type awardRequest struct {
	Assignee   string `json:"assignee"`
	Category   string `json:"category"`
	Amount     int    `json:"amount"`
	EventID    *int64 `json:"event_id,omitempty"`
	SecretCode string `json:"secret_code,omitempty"`
}

// Create submits an award request to the engine and maps its outcome onto
// the response envelope.
func (h *AwardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req awardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	assignee := strings.TrimSpace(req.Assignee)
	if assignee == "" {
		assignee = auth.MemberID(r.Context())
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		writeFailure(w, http.StatusBadRequest, "category is required")
		return
	}

	committed, err := h.engine.Award(award.Request{
		AssigneeRef: assignee,
		Category:    category,
		Amount:      req.Amount,
		EventID:     req.EventID,
		SecretCode:  req.SecretCode,
	})
	if err != nil {
		h.writeRejection(w, err)
		return
	}

	member, err := h.members.GetByID(committed.AssigneeID)
	if err != nil || member == nil {
		// The award is committed; fall back to a bare response.
		h.logger.Error("reload member after commit", "member", committed.AssigneeID, "error", err)
		writeSuccess(w, http.StatusOK, awardMessage(committed, committed.AssigneeID), committed)
		return
	}

	h.hub.Broadcast(websocket.AwardCommitted(member, committed, member.PointsTotal))
	if h.notifier != nil {
		go h.notifier.AwardCommitted(member, committed)
	}

	writeSuccess(w, http.StatusOK, awardMessage(committed, member.Name), committed)
}

func awardMessage(a *model.Award, name string) string {
	switch a.Category {
	case model.CategoryEvent:
		return fmt.Sprintf("%d points added to %s for event claim", a.Amount, name)
	case model.CategoryDiscord:
		return fmt.Sprintf("%d points added to %s for Discord activity", a.Amount, name)
	default:
		return fmt.Sprintf("%d points added to %s for %s", a.Amount, name, a.Category)
	}
}

// writeRejection maps engine rejections to HTTP statuses. Every rejection
// means nothing was committed.
func (h *AwardHandler) writeRejection(w http.ResponseWriter, err error) {
	var (
		memberNotFound *award.MemberNotFoundError
		missingInput   *award.MissingInputError
		eventNotFound  *award.EventNotFoundError
		invalidCode    *award.InvalidCodeError
		alreadyClaimed *award.AlreadyClaimedError
		rateLimit      *award.RateLimitError
		persistence    *award.PersistenceError
	)

	switch {
	case errors.As(err, &memberNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	case errors.As(err, &missingInput):
		writeFailure(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &eventNotFound):
		writeFailure(w, http.StatusNotFound, err.Error())
	case errors.As(err, &invalidCode):
		writeFailure(w, http.StatusForbidden, err.Error())
	case errors.As(err, &alreadyClaimed):
		writeFailure(w, http.StatusConflict, "event points already claimed")
	case errors.As(err, &rateLimit):
		writeFailure(w, http.StatusTooManyRequests, "daily limit for Discord activity points reached")
	case errors.As(err, &persistence):
		h.logger.Error("award commit", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not commit award")
	default:
		h.logger.Error("award", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not process award")
	}
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"podpoints/internal/auth"
	"podpoints/internal/award"
	"podpoints/internal/model"
)

type PointsHandler struct {
	engine *award.Engine
	logger *slog.Logger
}

func NewPointsHandler(engine *award.Engine, logger *slog.Logger) *PointsHandler {
	return &PointsHandler{engine: engine, logger: logger}
}

type memberSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PointsTotal int    `json:"points_total"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

func summarize(m *model.Member) memberSummary {
	return memberSummary{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        m.Role,
		PointsTotal: m.PointsTotal,
		AvatarURL:   m.AvatarURL(),
	}
}

// Member returns a member's point summary. Non-admin requesters get their
// own record regardless of the ref parameter; admins may name any member.
func (h *PointsHandler) Member(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	member, err := h.engine.MemberPoints(ac.MemberID, ac.Role, r.URL.Query().Get("ref"))
	if err != nil {
		var notFound *award.MemberNotFoundError
		if errors.As(err, &notFound) {
			writeFailure(w, http.StatusNotFound, "the requested member was not found")
			return
		}
		h.logger.Error("member points", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not load member")
		return
	}

	writeSuccess(w, http.StatusOK, "member found", summarize(member))
}

// Pod returns the aggregate point total for one pod label.
func (h *PointsHandler) Pod(w http.ResponseWriter, r *http.Request) {
	pod := r.PathValue("pod")
	if pod == "" {
		writeFailure(w, http.StatusBadRequest, "pod is required")
		return
	}

	summary, err := h.engine.PodPoints(pod)
	if err != nil {
		var notFound *award.PodNotFoundError
		if errors.As(err, &notFound) {
			writeFailure(w, http.StatusNotFound, "pod not found")
			return
		}
		h.logger.Error("pod points", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not load pod")
		return
	}

	writeSuccess(w, http.StatusOK, "pod found", summary)
}

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"podpoints/internal/auth"
	"podpoints/internal/push"
	"podpoints/internal/store"
)

type PushHandler struct {
	subs   *store.PushStore
	svc    *push.Service
	logger *slog.Logger
}

func NewPushHandler(subs *store.PushStore, svc *push.Service, logger *slog.Logger) *PushHandler {
	return &PushHandler{subs: subs, svc: svc, logger: logger}
}

// PublicKey exposes the VAPID public key clients subscribe with.
func (h *PushHandler) PublicKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"public_key": h.svc.VAPIDPublicKey()})
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// Subscribe registers the caller's browser push subscription.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		writeFailure(w, http.StatusBadRequest, "endpoint and keys are required")
		return
	}

	sub, err := h.subs.CreateSubscription(auth.MemberID(r.Context()), req.Endpoint, req.Keys.P256dh, req.Keys.Auth)
	if err != nil {
		h.logger.Error("create subscription", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not save subscription")
		return
	}

	writeSuccess(w, http.StatusCreated, "subscribed", sub)
}

// Unsubscribe removes one of the caller's subscriptions.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.subs.Delete(id, auth.MemberID(r.Context())); err != nil {
		h.logger.Error("delete subscription", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not delete subscription")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"log/slog"
	"net/http"

	"podpoints/internal/backup"
	"podpoints/internal/store"
)

type BackupHandler struct {
	manager *backup.Manager
	records *store.BackupStore
	logger  *slog.Logger
}

func NewBackupHandler(manager *backup.Manager, records *store.BackupStore, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{manager: manager, records: records, logger: logger}
}

// Trigger runs an immediate ledger backup. Admin-only; enforced by the router.
func (h *BackupHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if !h.manager.Enabled() {
		writeFailure(w, http.StatusConflict, "backups are not configured")
		return
	}

	rec, err := h.manager.BackupNow(r.Context())
	if err != nil {
		h.logger.Error("manual backup", "error", err)
		writeFailure(w, http.StatusInternalServerError, "backup failed")
		return
	}

	writeSuccess(w, http.StatusOK, "backup uploaded", rec)
}

// Latest reports the most recent backup record.
func (h *BackupHandler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.Latest()
	if err != nil {
		h.logger.Error("latest backup", "error", err)
		writeFailure(w, http.StatusInternalServerError, "could not load backups")
		return
	}
	if rec == nil {
		writeFailure(w, http.StatusNotFound, "no backups yet")
		return
	}
	writeSuccess(w, http.StatusOK, "backup found", rec)
}

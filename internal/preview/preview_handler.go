package preview

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"filedesk/internal/domain"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	wsID, err := uuid.Parse(chi.URLParam(r, "ws"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid workspace id")
		return
	}
	fileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	previewData, err := h.service.GetOrGenerate(r.Context(), wsID, fileID)
	switch {
	case errors.Is(err, domain.ErrWorkspaceNotFound), errors.Is(err, domain.ErrContentNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to generate preview", "workspace_id", wsID, "file_id", fileID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to generate preview")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(previewData); err != nil {
		h.logger.Error("error writing preview", "workspace_id", wsID, "file_id", fileID, "error", err)
	}
}

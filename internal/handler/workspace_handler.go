package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"filedesk/internal/domain"
	"filedesk/internal/service"
	"filedesk/internal/workspace"
)

var errBadRequest = errors.New("bad request")

type WorkspaceHandler struct {
	service *service.WorkspaceService
	logger  *slog.Logger
}

type ReorderRequest struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

type SortRequest struct {
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type LayoutRequest struct {
	Layout string `json:"layout"`
}

func NewWorkspaceHandler(service *service.WorkspaceService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WorkspaceHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if errors.Is(err, errBadRequest) {
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		message = "internal error"
		if errors.Is(err, domain.ErrArchiveFailed) {
			message = domain.ErrArchiveFailed.Error()
		}
	}
	if encErr := writeJSON(w, status, ErrorResponse{Error: message}); encErr != nil {
		h.logger.Error("error encoding response", "error", encErr)
	}
}

func (h *WorkspaceHandler) writeView(w http.ResponseWriter, status int, wsID uuid.UUID, st workspace.State) {
	if err := writeJSON(w, status, toViewResponse(wsID.String(), st)); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func parseID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s %q", errBadRequest, param, raw)
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", errBadRequest, err)
	}
	return nil
}

// CreateWorkspace открывает новую страницу, ?seed=true заполняет ее демонстрационными файлами
func (h *WorkspaceHandler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	seed := false
	if raw := r.URL.Query().Get("seed"); raw != "" {
		var err error
		seed, err = strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: invalid seed %q", errBadRequest, raw))
			return
		}
	}

	ws, st := h.service.Create(r.Context(), seed)
	w.Header().Set("Location", "/v1/workspaces/"+ws.ID().String())
	h.writeView(w, http.StatusCreated, ws.ID(), st)
}

func (h *WorkspaceHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.service.State(r.Context(), wsID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK, wsID, st)
}

func (h *WorkspaceHandler) DropWorkspace(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.service.Drop(r.Context(), wsID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	fileID, err := parseID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.service.ToggleSelect(r.Context(), wsID, fileID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK, wsID, st)
}

// ToggleAll выделяет все записи, а если все уже выделены, снимает выделение
func (h *WorkspaceHandler) ToggleAll(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.service.ToggleAll(r.Context(), wsID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK, wsID, st)
}

func (h *WorkspaceHandler) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, _, err := h.service.DeleteSelected(r.Context(), wsID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK, wsID, st)
}

func (h *WorkspaceHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid source_id", errBadRequest))
		return
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid target_id", errBadRequest))
		return
	}

	st, err := h.service.Reorder(r.Context(), wsID, sourceID, targetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK, wsID, st)
}

func (h *WorkspaceHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req SortRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	sortBy, err := domain.ParseSortKey(req.SortBy)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	// направление можно не передавать при смене только ключа
	order := domain.Ascending
	if req.SortOrder != "" {
		if order, err = domain.ParseSortOrder(req.SortOrder); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	st, err := h.service.SetSort(r.Context(), wsID, sortBy, order)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK, wsID, st)
}

func (h *WorkspaceHandler) SetLayout(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req LayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	layout, err := domain.ParseLayout(req.Layout)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	st, err := h.service.SetLayout(r.Context(), wsID, layout)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusOK, wsID, st)
}

func (h *WorkspaceHandler) PreviewRename(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var cfg domain.RenameConfig
	if err := decodeJSON(r, &cfg); err != nil {
		h.writeError(w, r, err)
		return
	}

	proposals, err := h.service.PreviewRename(r.Context(), wsID, cfg)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, RenameResponse{Proposals: proposals}); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

// CommitRename применяет конфигурацию ко всему выделению
func (h *WorkspaceHandler) CommitRename(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var cfg domain.RenameConfig
	if err := decodeJSON(r, &cfg); err != nil {
		h.writeError(w, r, err)
		return
	}

	st, proposals, err := h.service.CommitRename(r.Context(), wsID, cfg)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view := toViewResponse(wsID.String(), st)
	if err := writeJSON(w, http.StatusOK, RenameResponse{Proposals: proposals, View: &view}); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"filedesk/internal/domain"
	"filedesk/internal/workspace"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type FileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	SizeLabel    string    `json:"size_label"`
	Type         string    `json:"type"`
	Kind         string    `json:"kind"`
	LastModified time.Time `json:"last_modified"`
	Selected     bool      `json:"selected"`
	Preview      *string   `json:"preview,omitempty"`
	HasContent   bool      `json:"has_content"`
}

type SummaryResponse struct {
	domain.Summary
	SelectedSizeLabel string `json:"selected_size_label"`
}

// ViewResponse упорядоченная проекция пространства вместе с настройками отображения
type ViewResponse struct {
	WorkspaceID string          `json:"workspace_id"`
	Files       []FileResponse  `json:"files"`
	Summary     SummaryResponse `json:"summary"`
	SortBy      string          `json:"sort_by"`
	SortOrder   string          `json:"sort_order"`
	Layout      string          `json:"layout"`
}

type RenameResponse struct {
	Proposals []domain.Proposal `json:"proposals"`
	View      *ViewResponse     `json:"view,omitempty"`
}

func toFileResponse(f domain.FileRecord) FileResponse {
	return FileResponse{
		ID:           f.ID.String(),
		Name:         f.Name,
		Size:         f.Size,
		SizeLabel:    workspace.FormatSize(f.Size),
		Type:         f.Type,
		Kind:         string(domain.KindOf(f.Type)),
		LastModified: f.LastModified,
		Selected:     f.Selected,
		Preview:      f.Preview,
		HasContent:   f.HasContent(),
	}
}

func toViewResponse(wsID string, st workspace.State) ViewResponse {
	view := st.View()
	files := make([]FileResponse, 0, len(view))
	for _, f := range view {
		files = append(files, toFileResponse(f))
	}
	sum := workspace.Summarize(st.Files)
	return ViewResponse{
		WorkspaceID: wsID,
		Files:       files,
		Summary: SummaryResponse{
			Summary:           sum,
			SelectedSizeLabel: workspace.FormatSize(sum.SelectedSize),
		},
		SortBy:    string(st.SortBy),
		SortOrder: string(st.SortOrder),
		Layout:    string(st.Layout),
	}
}

// statusFor сопоставляет доменные ошибки HTTP статусам
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrWorkspaceNotFound), errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptySelection):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidRenameConfig), errors.Is(err, domain.ErrInvalidSort):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

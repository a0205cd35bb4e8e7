package handler

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"filedesk/internal/domain"
)

const (
	multipartMemory   = 32 << 20 // остальное multipart держит во временных файлах
	filesField        = "files"
	lastModifiedField = "last_modified"
)

// detectType берет MIME-тип из части формы, при его отсутствии из расширения
func detectType(fh *multipart.FileHeader) string {
	declared := fh.Header.Get("Content-Type")
	if declared != "" && declared != "application/octet-stream" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			return mediaType
		}
	}
	if byExt := mime.TypeByExtension(filepath.Ext(fh.Filename)); byExt != "" {
		if mediaType, _, err := mime.ParseMediaType(byExt); err == nil {
			return mediaType
		}
	}
	if declared != "" {
		return declared
	}
	return "application/octet-stream"
}

// UploadFiles принимает файлы из file picker или drag-and-drop.
// Поле last_modified (unix ms) опционально и сопоставляется файлам по порядку.
func (h *WorkspaceHandler) UploadFiles(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	// проверяем пространство до чтения тела
	if _, err := h.service.Workspace(wsID); err != nil {
		h.writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxRequestBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrFileTooLarge, tooLarge.Limit))
			return
		}
		h.writeError(w, r, fmt.Errorf("%w: failed to parse form: %v", errBadRequest, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[filesField]
	if len(headers) == 0 {
		h.writeError(w, r, fmt.Errorf("%w: no files in field %q", errBadRequest, filesField))
		return
	}
	modified := r.MultipartForm.Value[lastModifiedField]

	raws := make([]domain.RawFile, 0, len(headers))
	for i, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			h.writeError(w, r, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err))
			return
		}
		defer file.Close()

		raw := domain.RawFile{
			Name:    fh.Filename,
			Size:    fh.Size,
			Type:    detectType(fh),
			Content: file,
		}
		if i < len(modified) {
			if ms, err := strconv.ParseInt(strings.TrimSpace(modified[i]), 10, 64); err == nil {
				raw.LastModified = time.UnixMilli(ms)
			}
		}
		raws = append(raws, raw)
	}

	st, _, err := h.service.Ingest(r.Context(), wsID, raws)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeView(w, http.StatusCreated, wsID, st)
}

// Export отдает ZIP с выбранными файлами
func (h *WorkspaceHandler) Export(w http.ResponseWriter, r *http.Request) {
	wsID, err := parseID(r, "ws")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	archive, err := h.service.Export(r.Context(), wsID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	contentDisposition := fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		archive.FileName, url.PathEscape(archive.FileName))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", contentDisposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(archive.Data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive.Data); err != nil {
		h.logger.Warn("failed to write archive", "workspace_id", wsID, "error", err)
	}
}

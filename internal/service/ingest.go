package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"filedesk/internal/domain"
	"filedesk/internal/events"
	"filedesk/internal/metrics"
	"filedesk/internal/workspace"
)

const previewPathFormat = "/v1/workspaces/%s/files/%s/preview"

// ContentKey ключ содержимого записи в хранилище
func ContentKey(wsID, fileID uuid.UUID) string {
	return wsID.String() + "/" + fileID.String()
}

// Ingest превращает входные файлы в записи и добавляет их в конец ручного порядка.
// Если хотя бы один файл не удалось прочитать или сохранить, коллекция не меняется.
func (s *WorkspaceService) Ingest(ctx context.Context, wsID uuid.UUID, raws []domain.RawFile) (workspace.State, []domain.FileRecord, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, nil, err
	}
	if len(raws) == 0 {
		return ws.Snapshot(), nil, nil
	}

	records := make([]domain.FileRecord, 0, len(raws))
	written := make([]string, 0, len(raws))
	for _, raw := range raws {
		rec, err := s.ingestOne(ctx, wsID, raw)
		if err != nil {
			s.purge(ctx, written)
			return ws.Snapshot(), nil, fmt.Errorf("failed to ingest %s: %w", raw.Name, err)
		}
		written = append(written, rec.ContentKey)
		records = append(records, rec)
	}

	// пространство могли удалить, пока содержимое записывалось
	st, err := ws.Append(records)
	if err != nil {
		s.purge(ctx, written)
		return st, nil, err
	}

	metrics.FilesIngested.Add(float64(len(records)))
	s.logger.Info("files ingested", "workspace_id", wsID, "count", len(records))
	s.publish(ctx, ws, events.FilesIngested, records, "")
	return st, records, nil
}

func (s *WorkspaceService) ingestOne(ctx context.Context, wsID uuid.UUID, raw domain.RawFile) (domain.FileRecord, error) {
	if raw.Size > s.maxUpload {
		return domain.FileRecord{}, fmt.Errorf("%w: max size is %d bytes", domain.ErrFileTooLarge, s.maxUpload)
	}

	var data []byte
	if raw.Content != nil {
		var err error
		data, err = io.ReadAll(io.LimitReader(raw.Content, s.maxUpload+1))
		if err != nil {
			return domain.FileRecord{}, fmt.Errorf("failed to read content: %w", err)
		}
		if int64(len(data)) > s.maxUpload {
			return domain.FileRecord{}, fmt.Errorf("%w: max size is %d bytes", domain.ErrFileTooLarge, s.maxUpload)
		}
	}

	size := raw.Size
	if size <= 0 {
		size = int64(len(data))
	}
	modified := raw.LastModified
	if modified.IsZero() {
		modified = s.now()
	}

	rec := domain.FileRecord{
		ID:           uuid.New(),
		Name:         raw.Name,
		Size:         size,
		Type:         raw.Type,
		LastModified: modified.Truncate(time.Millisecond),
	}
	rec.ContentKey = ContentKey(wsID, rec.ID)
	if err := s.store.Put(ctx, rec.ContentKey, data, raw.Type); err != nil {
		return domain.FileRecord{}, fmt.Errorf("failed to store content: %w", err)
	}
	if rec.IsImage() {
		rec.Preview = strPtr(fmt.Sprintf(previewPathFormat, wsID, rec.ID))
	}
	return rec, nil
}

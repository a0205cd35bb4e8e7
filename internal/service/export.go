package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"filedesk/internal/domain"
	"filedesk/internal/events"
	"filedesk/internal/metrics"
)

const archiveTimestampLayout = "20060102150405"

// ArchiveFileName имя скачиваемого архива: files_YYYYMMDDHHmmss.zip
func ArchiveFileName(at time.Time) string {
	return "files_" + at.UTC().Format(archiveTimestampLayout) + ".zip"
}

// PlaceholderContent детерминированное содержимое для записей без загруженных байтов
func PlaceholderContent(rec domain.FileRecord) []byte {
	return []byte(fmt.Sprintf(
		"Name: %s\nType: %s\nSize: %d bytes\nLast modified: %s\n",
		rec.Name,
		rec.Type,
		rec.Size,
		rec.LastModified.UTC().Format(time.RFC3339),
	))
}

// Export упаковывает выбранные записи в ZIP.
// Работает со снимком, взятым в момент вызова; живое состояние при этом не меняется.
func (s *WorkspaceService) Export(ctx context.Context, wsID uuid.UUID) (*domain.Archive, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return nil, err
	}

	snapshot, err := ws.BeginExport()
	if err != nil {
		if errors.Is(err, domain.ErrEmptySelection) {
			metrics.Exports.WithLabelValues(metrics.StatusEmpty).Inc()
		}
		return nil, err
	}
	defer func() {
		if keys := ws.EndExport(); len(keys) > 0 {
			s.purge(context.WithoutCancel(ctx), keys)
		}
	}()

	startTime := time.Now()
	archive, err := s.pack(ctx, snapshot)
	if err != nil {
		metrics.Exports.WithLabelValues(metrics.StatusFailed).Inc()
		s.logger.Error("export failed", "workspace_id", wsID, "files", len(snapshot), "error", err)
		s.publish(ctx, ws, events.ExportFailed, snapshot, err.Error())
		return nil, err
	}

	metrics.Exports.WithLabelValues(metrics.StatusOK).Inc()
	s.logger.Info("export completed",
		"workspace_id", wsID,
		"files", archive.Entries,
		"bytes", len(archive.Data),
		"file_name", archive.FileName,
		"duration", time.Since(startTime),
	)
	s.publish(ctx, ws, events.ExportCompleted, snapshot, archive.FileName)
	return archive, nil
}

func (s *WorkspaceService) pack(ctx context.Context, snapshot []domain.FileRecord) (*domain.Archive, error) {
	entries := make([]ArchiveEntry, 0, len(snapshot))
	for _, rec := range snapshot {
		data := PlaceholderContent(rec)
		if rec.HasContent() {
			var err error
			data, err = s.store.Get(ctx, rec.ContentKey)
			if err != nil {
				return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrArchiveFailed, rec.Name, err)
			}
		}
		entries = append(entries, ArchiveEntry{Name: rec.Name, Data: data, Modified: rec.LastModified})
	}

	data, err := s.archiver.Pack(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArchiveFailed, err)
	}
	return &domain.Archive{
		FileName: ArchiveFileName(s.now()),
		Data:     data,
		Entries:  len(entries),
	}, nil
}

// Пакет events публикует доменные события рабочих пространств.
package events

import (
	"context"
	"time"
)

type Type string

const (
	WorkspaceCreated Type = "workspace.created"
	WorkspaceDropped Type = "workspace.dropped"
	FilesIngested    Type = "files.ingested"
	FilesSelection   Type = "files.selection_changed"
	FilesDeleted     Type = "files.deleted"
	FilesReordered   Type = "files.reordered"
	FilesRenamed     Type = "files.renamed"
	ExportCompleted  Type = "export.completed"
	ExportFailed     Type = "export.failed"
)

// Event полезная нагрузка события
type Event struct {
	Type        Type      `json:"type"`
	WorkspaceID string    `json:"workspace_id"`
	FileIDs     []string  `json:"file_ids,omitempty"`
	Count       int       `json:"count"`
	Detail      string    `json:"detail,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher отправляет события во внешний брокер
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher используется, когда брокер не настроен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

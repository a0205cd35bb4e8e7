package service

import (
	"context"
	"time"
)

// ContentStore хранит байты загруженных файлов на время жизни рабочего пространства.
// Get возвращает domain.ErrContentNotFound, если ключа нет.
type ContentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ArchiveEntry одна пара имя/содержимое для архива
type ArchiveEntry struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Archiver упаковывает набор пар в один бинарный архив
type Archiver interface {
	Pack(ctx context.Context, entries []ArchiveEntry) ([]byte, error)
}

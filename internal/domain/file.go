package domain

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRecord описывает один файл рабочего пространства
type FileRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
	LastModified time.Time `json:"last_modified"`
	Selected     bool      `json:"selected"`
	Preview      *string   `json:"preview,omitempty"`
	// ContentKey пустой у демо-записей, для которых нет загруженного содержимого
	ContentKey string `json:"-"`
}

// HasContent сообщает, есть ли у записи загруженные байты
func (f FileRecord) HasContent() bool {
	return f.ContentKey != ""
}

// IsImage проверяет MIME-тип записи
func (f FileRecord) IsImage() bool {
	return strings.HasPrefix(f.Type, "image/")
}

// RawFile представляет входной файл из file picker или drag-and-drop
type RawFile struct {
	Name         string
	Size         int64
	Type         string
	LastModified time.Time
	Content      io.Reader
}

// FileKind используется фронтендом для выбора иконки
type FileKind string

const (
	FileKindImage    FileKind = "image"
	FileKindDocument FileKind = "document"
	FileKindOther    FileKind = "other"
)

// KindOf классифицирует MIME-тип
func KindOf(mimeType string) FileKind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return FileKindImage
	case mimeType == "application/pdf", strings.HasPrefix(mimeType, "text/"):
		return FileKindDocument
	default:
		return FileKindOther
	}
}

// Archive готовый к скачиванию архив
type Archive struct {
	FileName string
	Data     []byte
	Entries  int
}

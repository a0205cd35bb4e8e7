// Пакет archive содержит ZIP-упаковщик для экспорта выбранных файлов.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"

	"filedesk/internal/service"
)

// ZipArchiver собирает архив целиком в памяти, поэтому клиент никогда не
// получает частично записанный файл
type ZipArchiver struct {
	method uint16
}

func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{method: zip.Deflate}
}

// Pack пишет по одной записи на пару; имена записей берутся как есть
func (a *ZipArchiver) Pack(ctx context.Context, entries []service.ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return nil, err
		}

		modified := entry.Modified
		if modified.IsZero() {
			modified = time.Now()
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     entry.Name,
			Method:   a.method,
			Modified: modified,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create entry %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write entry %s: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Пакет workspace описывает состояние одной страницы файлового менеджера:
// коллекция записей, выделение, ручной порядок и массовое переименование.
package workspace

import (
	"fmt"
	"strings"
	"time"

	"filedesk/internal/domain"
)

const (
	dateLayout      = "2006-01-02"
	defaultPrefix   = "prefix"
	defaultSuffix   = "suffix"
	extensionMarker = "."
)

// Clock источник текущего времени, подменяется в тестах
type Clock func() time.Time

// NamingEngine вычисляет новые имена по конфигурации переименования
type NamingEngine struct {
	now Clock
}

// NewNamingEngine создает движок с указанными часами (nil означает time.Now)
func NewNamingEngine(now Clock) *NamingEngine {
	if now == nil {
		now = time.Now
	}
	return &NamingEngine{now: now}
}

// Extension возвращает текст после последней точки или пустую строку
func Extension(name string) string {
	i := strings.LastIndex(name, extensionMarker)
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// Name строит новое имя для записи на позиции position (с единицы).
// Имя без точки получает пустое расширение и завершается точкой.
func (e *NamingEngine) Name(original string, position int, cfg domain.RenameConfig) string {
	seq := fmt.Sprintf("%0*d", cfg.DigitCount, position)
	ext := extensionMarker + Extension(original)

	switch cfg.Pattern {
	case domain.PatternDate:
		return e.now().UTC().Format(dateLayout) + cfg.Separator + seq + ext
	case domain.PatternPrefixed:
		return orDefault(cfg.FreeText, defaultPrefix) + cfg.Separator + seq + ext
	case domain.PatternSuffixed:
		return seq + cfg.Separator + orDefault(cfg.FreeText, defaultSuffix) + ext
	default:
		return seq + ext
	}
}

// Propose нумерует записи в переданном порядке (он должен совпадать с порядком отображения)
func (e *NamingEngine) Propose(selected []domain.FileRecord, cfg domain.RenameConfig) []domain.Proposal {
	proposals := make([]domain.Proposal, 0, len(selected))
	for i, rec := range selected {
		proposals = append(proposals, domain.Proposal{
			FileID:   rec.ID.String(),
			OldName:  rec.Name,
			NewName:  e.Name(rec.Name, i+1, cfg),
			Position: i + 1,
		})
	}
	return proposals
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package domain

import (
	"fmt"
	"unicode/utf8"
)

// RenamePattern задает форму генерируемого имени
type RenamePattern string

const (
	PatternSequential RenamePattern = "sequential"
	PatternDate       RenamePattern = "date"
	PatternPrefixed   RenamePattern = "prefixed"
	PatternSuffixed   RenamePattern = "suffixed"
)

// MaxSeparatorLength ограничивает длину разделителя в символах
const MaxSeparatorLength = 3

// MaxDigitCount ограничивает ширину номера, имя должно оставаться коротким
const MaxDigitCount = 10

// RenameConfig параметры массового переименования
type RenameConfig struct {
	Pattern    RenamePattern `json:"pattern"`
	DigitCount int           `json:"digit_count"`
	Separator  string        `json:"separator"`
	FreeText   string        `json:"free_text"`
}

// Validate проверяет конфигурацию до применения
func (c RenameConfig) Validate() error {
	switch c.Pattern {
	case PatternSequential, PatternDate, PatternPrefixed, PatternSuffixed:
	default:
		return fmt.Errorf("%w: unknown pattern %q", ErrInvalidRenameConfig, c.Pattern)
	}
	if c.DigitCount < 1 {
		return fmt.Errorf("%w: digit count must be positive, got %d", ErrInvalidRenameConfig, c.DigitCount)
	}
	if c.DigitCount > MaxDigitCount {
		return fmt.Errorf("%w: digit count must not exceed %d, got %d", ErrInvalidRenameConfig, MaxDigitCount, c.DigitCount)
	}
	if utf8.RuneCountInString(c.Separator) > MaxSeparatorLength {
		return fmt.Errorf("%w: separator longer than %d characters", ErrInvalidRenameConfig, MaxSeparatorLength)
	}
	return nil
}

// Proposal новое имя для одной выбранной записи
type Proposal struct {
	FileID   string `json:"file_id"`
	OldName  string `json:"old_name"`
	NewName  string `json:"new_name"`
	Position int    `json:"position"`
}

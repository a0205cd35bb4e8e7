package service

import (
	"time"

	"github.com/google/uuid"

	"filedesk/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// sampleFiles демонстрационный набор для новой страницы; содержимого у записей нет
func sampleFiles() []domain.FileRecord {
	return []domain.FileRecord{
		{
			ID:           uuid.New(),
			Name:         "photo_001.jpg",
			Size:         2048576,
			Type:         "image/jpeg",
			LastModified: day(2024, time.January, 15),
			Preview:      strPtr("/beautiful-landscape.png"),
		},
		{
			ID:           uuid.New(),
			Name:         "image_002.png",
			Size:         1536000,
			Type:         "image/png",
			LastModified: day(2024, time.January, 14),
			Preview:      strPtr("/modern-architecture-photo.png"),
		},
		{
			ID:           uuid.New(),
			Name:         "document.pdf",
			Size:         512000,
			Type:         "application/pdf",
			LastModified: day(2024, time.January, 13),
		},
		{
			ID:           uuid.New(),
			Name:         "readme.txt",
			Size:         2048,
			Type:         "text/plain",
			LastModified: day(2024, time.January, 12),
		},
		{
			ID:           uuid.New(),
			Name:         "presentation.pptx",
			Size:         4096000,
			Type:         "application/vnd.openxmlformats-officedocument.presentationml.presentation",
			LastModified: day(2024, time.January, 11),
		},
	}
}

package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/bimg"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"filedesk/internal/domain"
)

const (
	defaultMaxSize   = 512 // максимальный размер превью в пикселях
	defaultCacheSize = 256
	defaultCacheTTL  = 30 * time.Minute
	jpegQuality      = 85
)

// ContentSource отдает запись и ее содержимое
type ContentSource interface {
	Content(ctx context.Context, wsID, fileID uuid.UUID) (domain.FileRecord, []byte, error)
}

// Config параметры генерации и кеширования превью
type Config struct {
	MaxSize   int
	CacheSize int
	CacheTTL  time.Duration
}

type resizeFunc func(data []byte, maxSize int) ([]byte, error)

type Service struct {
	contents ContentSource
	cache    *expirable.LRU[string, []byte]
	maxSize  int
	resize   resizeFunc
	logger   *slog.Logger
}

// NewService создает сервис превью изображений
func NewService(contents ContentSource, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaultMaxSize
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &Service{
		contents: contents,
		cache:    expirable.NewLRU[string, []byte](cfg.CacheSize, nil, cfg.CacheTTL),
		maxSize:  cfg.MaxSize,
		resize:   optimizeImage,
		logger:   logger,
	}
}

// cacheKey включает имя, поэтому переименование дает новую запись кеша
func cacheKey(wsID uuid.UUID, rec domain.FileRecord) string {
	return wsID.String() + "/" + rec.ID.String() + "/" + rec.Name
}

// GetOrGenerate возвращает JPEG превью записи.
// Для записей без содержимого и не изображений возвращает ErrContentNotFound.
func (s *Service) GetOrGenerate(ctx context.Context, wsID, fileID uuid.UUID) ([]byte, error) {
	rec, data, err := s.contents.Content(ctx, wsID, fileID)
	if err != nil {
		return nil, err
	}
	if !rec.IsImage() {
		return nil, fmt.Errorf("%w: %s is not an image", domain.ErrContentNotFound, rec.Name)
	}

	key := cacheKey(wsID, rec)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	startTime := time.Now()
	preview, err := s.resize(data, s.maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate preview: %w", err)
	}
	s.cache.Add(key, preview)

	s.logger.Debug("preview generated",
		"workspace_id", wsID,
		"file_id", fileID,
		"bytes", len(preview),
		"duration", time.Since(startTime),
	)
	return preview, nil
}

var errEmptyImage = errors.New("empty image")

// optimizeImage уменьшает изображение до maxSize по большей стороне и кодирует в JPEG
func optimizeImage(data []byte, maxSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errEmptyImage
	}
	image := bimg.NewImage(data)

	size, err := image.Size()
	if err != nil {
		return nil, fmt.Errorf("failed to get image size: %w", err)
	}

	width, height := calculateNewDimensions(size.Width, size.Height, maxSize)

	processed, err := image.Process(bimg.Options{
		Width:   width,
		Height:  height,
		Quality: jpegQuality,
		Type:    bimg.JPEG,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process image: %w", err)
	}

	return processed, nil
}

// calculateNewDimensions сохраняет пропорции и не увеличивает маленькие изображения
func calculateNewDimensions(width, height, maxSize int) (newWidth, newHeight int) {
	if width <= maxSize && height <= maxSize {
		return width, height
	}
	if width > height {
		newWidth = maxSize
		newHeight = (height * maxSize) / width
	} else {
		newHeight = maxSize
		newWidth = (width * maxSize) / height
	}
	return
}

package preview

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/domain"
)

type fakeSource struct {
	rec  domain.FileRecord
	data []byte
	err  error
}

func (f fakeSource) Content(context.Context, uuid.UUID, uuid.UUID) (domain.FileRecord, []byte, error) {
	return f.rec, f.data, f.err
}

func newTestService(src ContentSource, calls *int) *Service {
	s := NewService(src, Config{MaxSize: 64, CacheSize: 4, CacheTTL: time.Minute}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.resize = func(data []byte, maxSize int) ([]byte, error) {
		*calls++
		return append([]byte("thumb:"), data...), nil
	}
	return s
}

func TestCalculateNewDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{name: "landscape", width: 2048, height: 1024, wantW: 512, wantH: 256},
		{name: "portrait", width: 1000, height: 2000, wantW: 256, wantH: 512},
		{name: "square", width: 1024, height: 1024, wantW: 512, wantH: 512},
		{name: "small image kept", width: 300, height: 200, wantW: 300, wantH: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := calculateNewDimensions(tt.width, tt.height, 512)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestGetOrGenerate_Caches(t *testing.T) {
	calls := 0
	rec := domain.FileRecord{ID: uuid.New(), Name: "cat.png", Type: "image/png", ContentKey: "k"}
	s := newTestService(fakeSource{rec: rec, data: []byte("png")}, &calls)
	wsID := uuid.New()

	first, err := s.GetOrGenerate(context.Background(), wsID, rec.ID)
	require.NoError(t, err)
	second, err := s.GetOrGenerate(context.Background(), wsID, rec.ID)
	require.NoError(t, err)

	assert.Equal(t, []byte("thumb:png"), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrGenerate_NotImage(t *testing.T) {
	calls := 0
	rec := domain.FileRecord{ID: uuid.New(), Name: "notes.txt", Type: "text/plain", ContentKey: "k"}
	s := newTestService(fakeSource{rec: rec, data: []byte("text")}, &calls)

	_, err := s.GetOrGenerate(context.Background(), uuid.New(), rec.ID)

	require.ErrorIs(t, err, domain.ErrContentNotFound)
	assert.Zero(t, calls)
}

func TestGetOrGenerate_SourceError(t *testing.T) {
	calls := 0
	s := newTestService(fakeSource{err: domain.ErrWorkspaceNotFound}, &calls)

	_, err := s.GetOrGenerate(context.Background(), uuid.New(), uuid.New())

	require.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestOptimizeImage_Empty(t *testing.T) {
	_, err := optimizeImage(nil, 512)
	require.ErrorIs(t, err, errEmptyImage)
}

package archive_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/service"
	"filedesk/internal/service/archive"
)

func TestZipArchiver_Pack(t *testing.T) {
	modified := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	entries := []service.ArchiveEntry{
		{Name: "01.txt", Data: []byte("first"), Modified: modified},
		{Name: "02.txt", Data: []byte("second")},
	}

	data, err := archive.NewZipArchiver().Pack(context.Background(), entries)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	for i, f := range zr.File {
		assert.Equal(t, entries[i].Name, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, entries[i].Data, content)
	}
	assert.True(t, zr.File[0].Modified.Equal(modified))
}

func TestZipArchiver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := archive.NewZipArchiver().Pack(ctx, []service.ArchiveEntry{{Name: "a.txt"}})

	require.ErrorIs(t, err, context.Canceled)
}

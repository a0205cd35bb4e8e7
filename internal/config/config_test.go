package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "2525", cfg.Server.Port)
	assert.Equal(t, "50051", cfg.Server.GRPCPort)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Workspace.TTL)
	assert.Equal(t, 1000, cfg.Workspace.MaxWorkspaces)
	assert.Equal(t, int64(100*1024*1024), cfg.Workspace.MaxUploadBytes)
	assert.Equal(t, int64(512*1024*1024), cfg.Workspace.MaxRequestBytes)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Empty(t, cfg.Events.NATSURL)
	assert.Equal(t, 512, cfg.Preview.MaxSize)
	assert.Equal(t, 30*time.Minute, cfg.Preview.CacheTTL)
}

func TestNewConfig_File(t *testing.T) {
	path := writeConfig(t, `
Server:
  Port: "8080"
Workspace:
  TTL: 15m
  MaxWorkspaces: 10
Storage:
  Backend: MinIO
  Endpoint: localhost:9000
  Bucket: files
  AccessKeyID: key
  SecretAccessKey: secret
Events:
  NATSURL: nats://localhost:4222
`)

	cfg, err := NewConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Workspace.TTL)
	assert.Equal(t, 10, cfg.Workspace.MaxWorkspaces)
	assert.Equal(t, BackendMinio, cfg.Storage.Backend)
	assert.Equal(t, "files", cfg.Storage.Bucket)
	assert.Equal(t, "nats://localhost:4222", cfg.Events.NATSURL)
	assert.Equal(t, "filedesk", cfg.Events.Subject)
}

func TestNewConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
Server:
  Port: "8080"
`)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("WORKSPACE_TTL", "45m")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000")

	cfg, err := NewConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 45*time.Minute, cfg.Workspace.TTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown backend",
			content: "Storage:\n  Backend: ftp\n",
			wantErr: "unknown storage backend",
		},
		{
			name:    "incomplete s3",
			content: "Storage:\n  Backend: s3\n  Bucket: files\n",
			wantErr: "storage configuration is incomplete",
		},
		{
			name:    "minio without endpoint",
			content: "Storage:\n  Backend: minio\n  Bucket: files\n  AccessKeyID: key\n  SecretAccessKey: secret\n",
			wantErr: "minio endpoint is required",
		},
		{
			name:    "request limit below upload limit",
			content: "Workspace:\n  MaxUploadBytes: 2048\n  MaxRequestBytes: 1024\n",
			wantErr: "request limit must not be below upload limit",
		},
		{
			name:    "zero workspace limit",
			content: "Workspace:\n  MaxWorkspaces: 0\n",
			wantErr: "workspace limit must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(writeConfig(t, tt.content))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

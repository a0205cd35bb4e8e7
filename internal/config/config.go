package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendS3     = "s3"
	BackendMinio  = "minio"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"Server"`
	Workspace WorkspaceConfig `mapstructure:"Workspace"`
	Storage   StorageConfig   `mapstructure:"Storage"`
	Events    EventsConfig    `mapstructure:"Events"`
	Preview   PreviewConfig   `mapstructure:"Preview"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"Port"`
	GRPCPort    string   `mapstructure:"GRPCPort"`
	Env         string   `mapstructure:"Env"`
	CORSOrigins []string `mapstructure:"CORSOrigins"`
}

type WorkspaceConfig struct {
	TTL             time.Duration `mapstructure:"TTL"`
	MaxWorkspaces   int           `mapstructure:"MaxWorkspaces"`
	MaxUploadBytes  int64         `mapstructure:"MaxUploadBytes"`
	MaxRequestBytes int64         `mapstructure:"MaxRequestBytes"`
}

// StorageConfig выбирает хранилище содержимого загруженных файлов
type StorageConfig struct {
	Backend         string `mapstructure:"Backend"`
	Endpoint        string `mapstructure:"Endpoint"`
	Region          string `mapstructure:"Region"`
	Bucket          string `mapstructure:"Bucket"`
	AccessKeyID     string `mapstructure:"AccessKeyID"`
	SecretAccessKey string `mapstructure:"SecretAccessKey"`
	Prefix          string `mapstructure:"Prefix"`
	UseSSL          bool   `mapstructure:"UseSSL"`
}

// EventsConfig пустой NATSURL отключает публикацию событий
type EventsConfig struct {
	NATSURL string `mapstructure:"NATSURL"`
	Subject string `mapstructure:"Subject"`
}

type PreviewConfig struct {
	MaxSize   int           `mapstructure:"MaxSize"`
	CacheSize int           `mapstructure:"CacheSize"`
	CacheTTL  time.Duration `mapstructure:"CacheTTL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "2525")
	v.SetDefault("Server.GRPCPort", "50051")
	v.SetDefault("Server.Env", "dev")
	v.SetDefault("Server.CORSOrigins", []string{"*"})

	v.SetDefault("Workspace.TTL", 2*time.Hour)
	v.SetDefault("Workspace.MaxWorkspaces", 1000)
	v.SetDefault("Workspace.MaxUploadBytes", 100*1024*1024)
	v.SetDefault("Workspace.MaxRequestBytes", 512*1024*1024)

	v.SetDefault("Storage.Backend", BackendMemory)
	v.SetDefault("Storage.Prefix", "filedesk")

	v.SetDefault("Events.Subject", "filedesk")

	v.SetDefault("Preview.MaxSize", 512)
	v.SetDefault("Preview.CacheSize", 256)
	v.SetDefault("Preview.CacheTTL", 30*time.Minute)
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("Server.Port", "HTTP_PORT")
	v.BindEnv("Server.GRPCPort", "GRPC_PORT")
	v.BindEnv("Server.Env", "APP_ENV")
	v.BindEnv("Server.CORSOrigins", "CORS_ORIGINS")

	v.BindEnv("Workspace.TTL", "WORKSPACE_TTL")
	v.BindEnv("Workspace.MaxWorkspaces", "WORKSPACE_MAX")
	v.BindEnv("Workspace.MaxUploadBytes", "WORKSPACE_MAX_UPLOAD_BYTES")
	v.BindEnv("Workspace.MaxRequestBytes", "WORKSPACE_MAX_REQUEST_BYTES")

	v.BindEnv("Storage.Backend", "STORAGE_BACKEND")
	v.BindEnv("Storage.Endpoint", "STORAGE_ENDPOINT")
	v.BindEnv("Storage.Region", "STORAGE_REGION")
	v.BindEnv("Storage.Bucket", "STORAGE_BUCKET")
	v.BindEnv("Storage.AccessKeyID", "STORAGE_ACCESS_KEY_ID")
	v.BindEnv("Storage.SecretAccessKey", "STORAGE_SECRET_ACCESS_KEY")
	v.BindEnv("Storage.Prefix", "STORAGE_PREFIX")
	v.BindEnv("Storage.UseSSL", "STORAGE_USE_SSL")

	v.BindEnv("Events.NATSURL", "NATS_URL")
	v.BindEnv("Events.Subject", "NATS_SUBJECT")

	v.BindEnv("Preview.MaxSize", "PREVIEW_MAX_SIZE")
	v.BindEnv("Preview.CacheSize", "PREVIEW_CACHE_SIZE")
	v.BindEnv("Preview.CacheTTL", "PREVIEW_CACHE_TTL")
}

// NewConfig читает конфигурацию из файла и переменных окружения.
// Переменные окружения имеют приоритет, файл может отсутствовать.
func NewConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет, что выбранное хранилище настроено полностью
func (c *Config) Validate() error {
	if c.Workspace.TTL <= 0 {
		return fmt.Errorf("workspace TTL must be positive, got %s", c.Workspace.TTL)
	}
	if c.Workspace.MaxWorkspaces <= 0 {
		return fmt.Errorf("workspace limit must be positive, got %d", c.Workspace.MaxWorkspaces)
	}
	if c.Workspace.MaxUploadBytes <= 0 {
		return fmt.Errorf("upload limit must be positive, got %d", c.Workspace.MaxUploadBytes)
	}
	if c.Workspace.MaxRequestBytes < c.Workspace.MaxUploadBytes {
		return fmt.Errorf("request limit must not be below upload limit, got %d", c.Workspace.MaxRequestBytes)
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendS3, BackendMinio:
		if c.Storage.Bucket == "" || c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
			return fmt.Errorf("storage configuration is incomplete: backend=%s, bucket=%s",
				c.Storage.Backend, c.Storage.Bucket)
		}
		if c.Storage.Backend == BackendMinio && c.Storage.Endpoint == "" {
			return fmt.Errorf("minio endpoint is required")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"filedesk/internal/config"
	"filedesk/internal/events"
	"filedesk/internal/handler"
	"filedesk/internal/preview"
	"filedesk/internal/service"
	"filedesk/internal/service/archive"
	"filedesk/internal/service/memstore"
	"filedesk/internal/service/minio"
	"filedesk/internal/service/s3"
)

const shutdownTimeout = 30 * time.Second

func newLogger(env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newContentStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (service.ContentStore, error) {
	switch cfg.Backend {
	case config.BackendS3:
		client, err := s3.NewClient(&s3.Config{
			Endpoint:        cfg.Endpoint,
			Region:          cfg.Region,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Bucket:          cfg.Bucket,
			Prefix:          cfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendMinio:
		adapter, err := minio.NewAdapter(ctx, minio.Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKeyID,
			SecretKey: cfg.SecretAccessKey,
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
			UseSSL:    cfg.UseSSL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	default:
		return memstore.New(), nil
	}
}

func newPublisher(cfg config.EventsConfig, logger *slog.Logger) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		logger.Info("events disabled: NATS url is empty")
		return events.NopPublisher{}, nil
	}
	publisher, err := events.NewNATSPublisher(cfg.NATSURL, cfg.Subject, logger)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = ".app.yaml"
	}
	appConfig, err := config.NewConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(appConfig.Server.Env)

	// хранилище содержимого
	store, err := newContentStore(ctx, appConfig.Storage, logger)
	if err != nil {
		logger.Error("failed to init content store", "backend", appConfig.Storage.Backend, "error", err)
		os.Exit(1)
	}
	logger.Info("content store ready", "backend", appConfig.Storage.Backend)

	publisher, err := newPublisher(appConfig.Events, logger)
	if err != nil {
		logger.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close publisher", "error", err)
		}
	}()

	// сервисы
	workspaceService := service.NewWorkspaceService(store, archive.NewZipArchiver(), publisher, service.Options{
		MaxWorkspaces:   appConfig.Workspace.MaxWorkspaces,
		WorkspaceTTL:    appConfig.Workspace.TTL,
		MaxUploadBytes:  appConfig.Workspace.MaxUploadBytes,
		MaxRequestBytes: appConfig.Workspace.MaxRequestBytes,
	}, logger)
	previewService := preview.NewService(workspaceService, preview.Config{
		MaxSize:   appConfig.Preview.MaxSize,
		CacheSize: appConfig.Preview.CacheSize,
		CacheTTL:  appConfig.Preview.CacheTTL,
	}, logger)

	// хендлеры
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, logger)
	previewHandler := preview.NewHandler(previewService, logger)

	router := handler.NewRouter(logger, workspaceHandler, previewHandler, handler.RouterOptions{
		CORSOrigins: appConfig.Server.CORSOrigins,
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// gRPC сервер отдает только health и reflection
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", appConfig.Server.GRPCPort))
		if err != nil {
			logger.Error("failed to listen for gRPC", "port", appConfig.Server.GRPCPort, "error", err)
			stop()
			return
		}
		logger.Info("starting gRPC server", "port", appConfig.Server.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("failed to serve gRPC", "error", err)
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting HTTP server", "port", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down servers")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server forced to shutdown", "error", err)
	}
	grpcServer.GracefulStop()

	wg.Wait()
	logger.Info("server exited properly")
}

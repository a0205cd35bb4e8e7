package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"filedesk/internal/domain"
	"filedesk/internal/events"
	"filedesk/internal/metrics"
	"filedesk/internal/repository"
	"filedesk/internal/workspace"
)

const (
	defaultMaxWorkspaces = 1000
	defaultWorkspaceTTL  = 2 * time.Hour
	defaultMaxUpload     = 100 * 1024 * 1024 // 100MB на файл
	defaultMaxRequest    = 512 * 1024 * 1024 // 512MB на запрос загрузки
	purgeTimeout         = 30 * time.Second
)

// Options параметры WorkspaceService
type Options struct {
	MaxWorkspaces  int
	WorkspaceTTL   time.Duration
	MaxUploadBytes int64
	// MaxRequestBytes ограничивает тело одного запроса загрузки целиком
	MaxRequestBytes int64
	// Now часы для имен по дате и имени архива, по умолчанию time.Now
	Now workspace.Clock
}

// WorkspaceService управляет рабочими пространствами и их файлами
type WorkspaceService struct {
	repo       *repository.WorkspaceRepository
	store      ContentStore
	archiver   Archiver
	publisher  events.Publisher
	engine     *workspace.NamingEngine
	now        workspace.Clock
	maxUpload  int64
	maxRequest int64
	logger     *slog.Logger
}

func NewWorkspaceService(
	store ContentStore,
	archiver Archiver,
	publisher events.Publisher,
	opts Options,
	logger *slog.Logger,
) *WorkspaceService {
	if opts.MaxWorkspaces <= 0 {
		opts.MaxWorkspaces = defaultMaxWorkspaces
	}
	if opts.WorkspaceTTL <= 0 {
		opts.WorkspaceTTL = defaultWorkspaceTTL
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUpload
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = defaultMaxRequest
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	s := &WorkspaceService{
		store:      store,
		archiver:   archiver,
		publisher:  publisher,
		engine:     workspace.NewNamingEngine(opts.Now),
		now:        opts.Now,
		maxUpload:  opts.MaxUploadBytes,
		maxRequest: opts.MaxRequestBytes,
		logger:     logger,
	}
	s.repo = repository.NewWorkspaceRepository(opts.MaxWorkspaces, opts.WorkspaceTTL, s.onEvict)
	return s
}

// onEvict вызывается под блокировкой LRU, поэтому очистка уходит в отдельную горутину.
// Содержимое, которое читает идущий экспорт, удаляется по его завершении.
func (s *WorkspaceService) onEvict(ws *workspace.Workspace) {
	metrics.ActiveWorkspaces.Dec()
	keys := ws.Close()
	if len(keys) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		s.purge(ctx, keys)
	}()
}

// purge удаляет содержимое; ошибки только логируются, состояние уже изменено
func (s *WorkspaceService) purge(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to purge content", "key", key, "error", err)
		}
	}
}

func (s *WorkspaceService) publish(ctx context.Context, ws *workspace.Workspace, typ events.Type, records []domain.FileRecord, detail string) {
	event := events.Event{
		Type:        typ,
		WorkspaceID: ws.ID().String(),
		Count:       len(records),
		Detail:      detail,
		At:          s.now().UTC(),
	}
	for _, r := range records {
		event.FileIDs = append(event.FileIDs, r.ID.String())
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "type", typ, "workspace_id", event.WorkspaceID, "error", err)
	}
}

// Create создает рабочее пространство, при seed с демонстрационными файлами
func (s *WorkspaceService) Create(ctx context.Context, seed bool) (*workspace.Workspace, workspace.State) {
	ws := workspace.New(uuid.New(), s.engine)
	if seed {
		ws.Append(sampleFiles())
	}
	s.repo.Create(ws)
	metrics.ActiveWorkspaces.Inc()

	s.logger.Info("workspace created", "workspace_id", ws.ID(), "seeded", seed)
	s.publish(ctx, ws, events.WorkspaceCreated, nil, "")
	return ws, ws.Snapshot()
}

// Workspace возвращает пространство по id
func (s *WorkspaceService) Workspace(id uuid.UUID) (*workspace.Workspace, error) {
	return s.repo.Get(id)
}

// State текущий снимок пространства
func (s *WorkspaceService) State(_ context.Context, id uuid.UUID) (workspace.State, error) {
	ws, err := s.repo.Get(id)
	if err != nil {
		return workspace.State{}, err
	}
	return ws.Snapshot(), nil
}

// Drop удаляет пространство вместе с его содержимым
func (s *WorkspaceService) Drop(ctx context.Context, id uuid.UUID) error {
	ws, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	s.repo.Delete(id)
	s.logger.Info("workspace dropped", "workspace_id", id)
	s.publish(ctx, ws, events.WorkspaceDropped, nil, "")
	return nil
}

func (s *WorkspaceService) ToggleSelect(ctx context.Context, wsID, fileID uuid.UUID) (workspace.State, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, err
	}
	st := ws.ToggleSelect(fileID)
	s.publish(ctx, ws, events.FilesSelection, nil, "toggle")
	return st, nil
}

func (s *WorkspaceService) ToggleAll(ctx context.Context, wsID uuid.UUID) (workspace.State, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, err
	}
	st := ws.ToggleAll()
	s.publish(ctx, ws, events.FilesSelection, nil, "toggle_all")
	return st, nil
}

// DeleteSelected удаляет выбранные записи без подтверждения
func (s *WorkspaceService) DeleteSelected(ctx context.Context, wsID uuid.UUID) (workspace.State, []domain.FileRecord, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, nil, err
	}
	st, removed, keys := ws.DeleteSelected()
	if len(removed) == 0 {
		return st, nil, nil
	}
	s.purge(ctx, keys)

	metrics.FilesDeleted.Add(float64(len(removed)))
	s.logger.Info("files deleted", "workspace_id", wsID, "count", len(removed))
	s.publish(ctx, ws, events.FilesDeleted, removed, "")
	return st, removed, nil
}

func (s *WorkspaceService) Reorder(ctx context.Context, wsID, sourceID, targetID uuid.UUID) (workspace.State, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, err
	}
	st := ws.Reorder(sourceID, targetID)
	s.publish(ctx, ws, events.FilesReordered, nil, "")
	return st, nil
}

func (s *WorkspaceService) SetSort(_ context.Context, wsID uuid.UUID, by domain.SortKey, order domain.SortOrder) (workspace.State, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, err
	}
	return ws.SetSort(by, order), nil
}

func (s *WorkspaceService) SetLayout(_ context.Context, wsID uuid.UUID, layout domain.Layout) (workspace.State, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, err
	}
	return ws.SetLayout(layout), nil
}

// PreviewRename имена, которые получит выделение при коммите с той же конфигурацией
func (s *WorkspaceService) PreviewRename(_ context.Context, wsID uuid.UUID, cfg domain.RenameConfig) ([]domain.Proposal, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return nil, err
	}
	return ws.PreviewRename(cfg)
}

// CommitRename переименовывает выделение целиком или не меняет ничего
func (s *WorkspaceService) CommitRename(ctx context.Context, wsID uuid.UUID, cfg domain.RenameConfig) (workspace.State, []domain.Proposal, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return workspace.State{}, nil, err
	}
	st, proposals, err := ws.CommitRename(cfg)
	if err != nil {
		return st, nil, err
	}

	metrics.FilesRenamed.Add(float64(len(proposals)))
	s.logger.Info("files renamed", "workspace_id", wsID, "pattern", cfg.Pattern, "count", len(proposals))

	renamed := make([]domain.FileRecord, 0, len(proposals))
	for _, p := range proposals {
		if id, err := uuid.Parse(p.FileID); err == nil {
			renamed = append(renamed, domain.FileRecord{ID: id})
		}
	}
	s.publish(ctx, ws, events.FilesRenamed, renamed, string(cfg.Pattern))
	return st, proposals, nil
}

// Content содержимое одной записи
func (s *WorkspaceService) Content(ctx context.Context, wsID, fileID uuid.UUID) (domain.FileRecord, []byte, error) {
	ws, err := s.repo.Get(wsID)
	if err != nil {
		return domain.FileRecord{}, nil, err
	}
	rec, ok := ws.Find(fileID)
	if !ok || !rec.HasContent() {
		return rec, nil, domain.ErrContentNotFound
	}
	data, err := s.store.Get(ctx, rec.ContentKey)
	if err != nil {
		return rec, nil, fmt.Errorf("failed to get content: %w", err)
	}
	return rec, data, nil
}

// MaxRequestBytes предел тела запроса загрузки
func (s *WorkspaceService) MaxRequestBytes() int64 {
	return s.maxRequest
}

func (s *WorkspaceService) ActiveWorkspaces() int {
	return s.repo.Len()
}

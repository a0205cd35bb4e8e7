package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"filedesk/internal/domain"
	"filedesk/internal/workspace"
)

// EvictFunc вызывается при вытеснении или истечении TTL рабочего пространства
type EvictFunc func(ws *workspace.Workspace)

// WorkspaceRepository хранит рабочие пространства в памяти с ограничением по размеру и TTL.
// Get обновляет срок жизни записи, поэтому активная страница не истекает.
type WorkspaceRepository struct {
	cache *expirable.LRU[uuid.UUID, *workspace.Workspace]
}

func NewWorkspaceRepository(maxSize int, ttl time.Duration, onEvict EvictFunc) *WorkspaceRepository {
	var cb expirable.EvictCallback[uuid.UUID, *workspace.Workspace]
	if onEvict != nil {
		cb = func(_ uuid.UUID, ws *workspace.Workspace) { onEvict(ws) }
	}
	return &WorkspaceRepository{
		cache: expirable.NewLRU[uuid.UUID, *workspace.Workspace](maxSize, cb, ttl),
	}
}

func (r *WorkspaceRepository) Create(ws *workspace.Workspace) {
	r.cache.Add(ws.ID(), ws)
}

func (r *WorkspaceRepository) Get(id uuid.UUID) (*workspace.Workspace, error) {
	ws, ok := r.cache.Get(id)
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	// Повторный Add продлевает TTL
	r.cache.Add(id, ws)
	return ws, nil
}

// Delete удаляет пространство; колбэк вытеснения также вызывается
func (r *WorkspaceRepository) Delete(id uuid.UUID) bool {
	return r.cache.Remove(id)
}

func (r *WorkspaceRepository) Len() int {
	return r.cache.Len()
}

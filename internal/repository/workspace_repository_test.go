package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/domain"
	"filedesk/internal/repository"
	"filedesk/internal/workspace"
)

func TestWorkspaceRepository_CreateGetDelete(t *testing.T) {
	var evicted []uuid.UUID
	repo := repository.NewWorkspaceRepository(10, time.Minute, func(ws *workspace.Workspace) {
		evicted = append(evicted, ws.ID())
	})
	ws := workspace.New(uuid.New(), nil)

	repo.Create(ws)
	got, err := repo.Get(ws.ID())
	require.NoError(t, err)
	assert.Same(t, ws, got)
	assert.Equal(t, 1, repo.Len())

	assert.True(t, repo.Delete(ws.ID()))
	assert.Equal(t, []uuid.UUID{ws.ID()}, evicted)

	_, err = repo.Get(ws.ID())
	require.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestWorkspaceRepository_EvictsOldest(t *testing.T) {
	var evicted []uuid.UUID
	repo := repository.NewWorkspaceRepository(2, time.Minute, func(ws *workspace.Workspace) {
		evicted = append(evicted, ws.ID())
	})
	first := workspace.New(uuid.New(), nil)
	second := workspace.New(uuid.New(), nil)
	third := workspace.New(uuid.New(), nil)

	repo.Create(first)
	repo.Create(second)
	repo.Create(third)

	assert.Equal(t, []uuid.UUID{first.ID()}, evicted)
	_, err := repo.Get(first.ID())
	require.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestWorkspaceRepository_TTL(t *testing.T) {
	repo := repository.NewWorkspaceRepository(10, 50*time.Millisecond, nil)
	ws := workspace.New(uuid.New(), nil)
	repo.Create(ws)

	time.Sleep(120 * time.Millisecond)

	_, err := repo.Get(ws.ID())
	require.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

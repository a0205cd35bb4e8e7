package workspace

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"filedesk/internal/domain"
)

// Workspace владеет состоянием одной страницы.
// Все изменения выполняются под мьютексом и заменяют State целиком.
type Workspace struct {
	id        uuid.UUID
	createdAt time.Time
	engine    *NamingEngine

	mu      sync.Mutex
	state   State
	exports int
	// pending ключи содержимого удаленных записей, ожидающие окончания экспорта
	pending []string
	// closed пространство удалено; released ключи уже отданы на очистку
	closed   bool
	released bool
}

// New создает пустое рабочее пространство
func New(id uuid.UUID, engine *NamingEngine) *Workspace {
	if engine == nil {
		engine = NewNamingEngine(nil)
	}
	return &Workspace{
		id:        id,
		createdAt: time.Now(),
		engine:    engine,
		state:     NewState(),
	}
}

func (w *Workspace) ID() uuid.UUID {
	return w.id
}

func (w *Workspace) CreatedAt() time.Time {
	return w.createdAt
}

// Snapshot текущее состояние; возвращенный State безопасно читать без блокировки
func (w *Workspace) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Find ищет запись по id
func (w *Workspace) Find(id uuid.UUID) (domain.FileRecord, bool) {
	st := w.Snapshot()
	if i := st.indexOf(id); i >= 0 {
		return st.Files[i], true
	}
	return domain.FileRecord{}, false
}

func (w *Workspace) apply(fn func(State) State) State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = fn(w.state)
	return w.state
}

func (w *Workspace) ToggleSelect(id uuid.UUID) State {
	return w.apply(func(s State) State { return s.ToggleSelect(id) })
}

func (w *Workspace) ToggleAll() State {
	return w.apply(State.ToggleAll)
}

// Append добавляет записи в конец; в закрытое пространство добавлять нельзя
func (w *Workspace) Append(records []domain.FileRecord) (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return w.state, domain.ErrWorkspaceNotFound
	}
	w.state = w.state.Append(records)
	return w.state, nil
}

func (w *Workspace) Reorder(sourceID, targetID uuid.UUID) State {
	return w.apply(func(s State) State { return s.Reorder(sourceID, targetID) })
}

// SetSort меняет ключ и направление сортировки
func (w *Workspace) SetSort(by domain.SortKey, order domain.SortOrder) State {
	return w.apply(func(s State) State {
		s.SortBy, s.SortOrder = by, order
		return s
	})
}

func (w *Workspace) SetLayout(layout domain.Layout) State {
	return w.apply(func(s State) State {
		s.Layout = layout
		return s
	})
}

// DeleteSelected удаляет выбранные записи и возвращает ключи содержимого,
// которые можно удалить из хранилища прямо сейчас. Пока идет экспорт,
// ключи откладываются до EndExport.
func (w *Workspace) DeleteSelected() (State, []domain.FileRecord, []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, removed := w.state.DeleteSelected()
	w.state = next

	var keys []string
	for _, r := range removed {
		if r.HasContent() {
			keys = append(keys, r.ContentKey)
		}
	}
	if w.exports > 0 {
		w.pending = append(w.pending, keys...)
		return next, removed, nil
	}
	return next, removed, keys
}

// PreviewRename имена, которые получит выделение при коммите
func (w *Workspace) PreviewRename(cfg domain.RenameConfig) ([]domain.Proposal, error) {
	return w.Snapshot().PreviewRename(w.engine, cfg)
}

// CommitRename атомарно переименовывает выделение
func (w *Workspace) CommitRename(cfg domain.RenameConfig) (State, []domain.Proposal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, proposals, err := w.state.Rename(w.engine, cfg)
	if err != nil {
		return w.state, nil, err
	}
	w.state = next
	return next, proposals, nil
}

// BeginExport фиксирует снимок выделения в порядке отображения
func (w *Workspace) BeginExport() ([]domain.FileRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, domain.ErrWorkspaceNotFound
	}
	selected := w.state.Selected()
	if len(selected) == 0 {
		return nil, domain.ErrEmptySelection
	}
	w.exports++
	return selected, nil
}

// EndExport завершает экспорт и отдает отложенные ключи, если экспортов больше нет.
// Для закрытого пространства последний экспорт отдает все ключи.
func (w *Workspace) EndExport() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.exports > 0 {
		w.exports--
	}
	if w.exports > 0 {
		return nil
	}
	if w.closed {
		return w.releaseLocked()
	}
	if len(w.pending) == 0 {
		return nil
	}
	keys := w.pending
	w.pending = nil
	return keys
}

// Close помечает пространство удаленным и возвращает ключи для очистки.
// Пока идет экспорт, ключи вернет последний EndExport.
func (w *Workspace) Close() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	if w.exports > 0 {
		return nil
	}
	return w.releaseLocked()
}

func (w *Workspace) releaseLocked() []string {
	if w.released {
		return nil
	}
	w.released = true
	keys := w.contentKeysLocked()
	w.pending = nil
	return keys
}

// ContentKeys все ключи содержимого, включая отложенные
func (w *Workspace) ContentKeys() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contentKeysLocked()
}

func (w *Workspace) contentKeysLocked() []string {
	keys := append([]string(nil), w.pending...)
	for _, f := range w.state.Files {
		if f.HasContent() {
			keys = append(keys, f.ContentKey)
		}
	}
	return keys
}

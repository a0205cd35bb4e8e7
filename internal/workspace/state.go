package workspace

import (
	"slices"

	"github.com/google/uuid"

	"filedesk/internal/domain"
)

// State неизменяемый снимок рабочего пространства.
// Files хранится в ручном порядке; каждая операция возвращает новый State,
// старые срезы после публикации не изменяются.
type State struct {
	Files     []domain.FileRecord
	SortBy    domain.SortKey
	SortOrder domain.SortOrder
	Layout    domain.Layout
}

// NewState пустое состояние с сортировкой по имени по умолчанию
func NewState() State {
	return State{
		Files:     []domain.FileRecord{},
		SortBy:    domain.SortByName,
		SortOrder: domain.Ascending,
		Layout:    domain.LayoutGrid,
	}
}

func (s State) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.Files, func(f domain.FileRecord) bool { return f.ID == id })
}

func (s State) withFiles(files []domain.FileRecord) State {
	s.Files = files
	return s
}

// View последовательность для отображения при текущей сортировке
func (s State) View() []domain.FileRecord {
	return Project(s.Files, s.SortBy, s.SortOrder)
}

// Selected выбранные записи в порядке отображения
func (s State) Selected() []domain.FileRecord {
	var selected []domain.FileRecord
	for _, f := range s.View() {
		if f.Selected {
			selected = append(selected, f)
		}
	}
	return selected
}

// ToggleSelect инвертирует флаг выделения; отсутствующий id игнорируется
func (s State) ToggleSelect(id uuid.UUID) State {
	i := s.indexOf(id)
	if i < 0 {
		return s
	}
	files := slices.Clone(s.Files)
	files[i].Selected = !files[i].Selected
	return s.withFiles(files)
}

// ToggleAll снимает выделение, только если выбраны все записи, иначе выделяет все
func (s State) ToggleAll() State {
	allSelected := true
	for _, f := range s.Files {
		if !f.Selected {
			allSelected = false
			break
		}
	}
	files := slices.Clone(s.Files)
	for i := range files {
		files[i].Selected = !allSelected
	}
	return s.withFiles(files)
}

// DeleteSelected удаляет выбранные записи, сохраняя порядок остальных
func (s State) DeleteSelected() (State, []domain.FileRecord) {
	kept := make([]domain.FileRecord, 0, len(s.Files))
	var removed []domain.FileRecord
	for _, f := range s.Files {
		if f.Selected {
			removed = append(removed, f)
			continue
		}
		kept = append(kept, f)
	}
	return s.withFiles(kept), removed
}

// Append добавляет записи в конец ручного порядка
func (s State) Append(records []domain.FileRecord) State {
	files := make([]domain.FileRecord, 0, len(s.Files)+len(records))
	files = append(files, s.Files...)
	for _, r := range records {
		r.Selected = false
		files = append(files, r)
	}
	return s.withFiles(files)
}

// Reorder вынимает source и вставляет его на индекс target, измеренный до удаления.
// Ручной порядок обновляется при любом ключе сортировки.
func (s State) Reorder(sourceID, targetID uuid.UUID) State {
	if sourceID == targetID {
		return s
	}
	from, to := s.indexOf(sourceID), s.indexOf(targetID)
	if from < 0 || to < 0 {
		return s
	}
	moved := s.Files[from]
	files := slices.Delete(slices.Clone(s.Files), from, from+1)
	files = slices.Insert(files, to, moved)
	return s.withFiles(files)
}

// Rename применяет движок к выделению в порядке отображения.
// Невыбранные записи не меняются; при ошибке исходное состояние не затрагивается.
func (s State) Rename(engine *NamingEngine, cfg domain.RenameConfig) (State, []domain.Proposal, error) {
	proposals, err := s.PreviewRename(engine, cfg)
	if err != nil {
		return s, nil, err
	}

	names := make(map[string]string, len(proposals))
	for _, p := range proposals {
		names[p.FileID] = p.NewName
	}
	files := slices.Clone(s.Files)
	for i := range files {
		if name, ok := names[files[i].ID.String()]; ok {
			files[i].Name = name
		}
	}
	return s.withFiles(files), proposals, nil
}

// PreviewRename вычисляет имена без применения
func (s State) PreviewRename(engine *NamingEngine, cfg domain.RenameConfig) ([]domain.Proposal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	selected := s.Selected()
	if len(selected) == 0 {
		return nil, domain.ErrEmptySelection
	}
	return engine.Propose(selected, cfg), nil
}

package workspace_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/domain"
	"filedesk/internal/workspace"
)

func record(name string, size int64, selected bool) domain.FileRecord {
	return domain.FileRecord{
		ID:           uuid.New(),
		Name:         name,
		Size:         size,
		Type:         "text/plain",
		LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Selected:     selected,
	}
}

func stateOf(sortBy domain.SortKey, files ...domain.FileRecord) workspace.State {
	st := workspace.NewState()
	st.SortBy = sortBy
	st.Files = files
	return st
}

func names(files []domain.FileRecord) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestState_ToggleSelect(t *testing.T) {
	a, b := record("a.txt", 1, false), record("b.txt", 1, false)
	st := stateOf(domain.SortByManual, a, b)

	next := st.ToggleSelect(b.ID)

	assert.False(t, next.Files[0].Selected)
	assert.True(t, next.Files[1].Selected)
	assert.False(t, st.Files[1].Selected, "previous snapshot must stay untouched")

	assert.Equal(t, next.Files, next.ToggleSelect(uuid.New()).Files)
}

func TestState_ToggleAll(t *testing.T) {
	t.Run("twice from unselected", func(t *testing.T) {
		st := stateOf(domain.SortByManual, record("a", 1, false), record("b", 1, false))

		once := st.ToggleAll()
		for _, f := range once.Files {
			assert.True(t, f.Selected)
		}
		twice := once.ToggleAll()
		for _, f := range twice.Files {
			assert.False(t, f.Selected)
		}
	})

	t.Run("partial selection becomes full", func(t *testing.T) {
		st := stateOf(domain.SortByManual, record("a", 1, true), record("b", 1, false))

		next := st.ToggleAll()

		assert.True(t, next.Files[0].Selected)
		assert.True(t, next.Files[1].Selected)
	})

	t.Run("empty collection", func(t *testing.T) {
		st := workspace.NewState()
		assert.Empty(t, st.ToggleAll().Files)
	})
}

func TestState_DeleteSelected(t *testing.T) {
	a := record("a", 1, false)
	b := record("b", 1, true)
	c := record("c", 1, false)
	d := record("d", 1, true)
	st := stateOf(domain.SortByManual, a, b, c, d)

	next, removed := st.DeleteSelected()

	assert.Equal(t, []string{"a", "c"}, names(next.Files))
	assert.Equal(t, []string{"b", "d"}, names(removed))
	assert.Len(t, st.Files, 4)
}

func TestState_Append(t *testing.T) {
	st := stateOf(domain.SortByManual, record("a", 1, true))

	next := st.Append([]domain.FileRecord{record("x", 1, true), record("y", 1, false)})

	assert.Equal(t, []string{"a", "x", "y"}, names(next.Files))
	assert.True(t, next.Files[0].Selected)
	assert.False(t, next.Files[1].Selected, "ingested records start unselected")
}

func TestState_Reorder(t *testing.T) {
	a, b, c, d := record("a", 1, false), record("b", 1, false), record("c", 1, false), record("d", 1, false)
	st := stateOf(domain.SortByManual, a, b, c, d)

	tests := []struct {
		name     string
		src, tgt uuid.UUID
		want     []string
	}{
		{"move down takes target slot", a.ID, c.ID, []string{"b", "c", "a", "d"}},
		{"move up lands before target", d.ID, b.ID, []string{"a", "d", "b", "c"}},
		{"to last slot", a.ID, d.ID, []string{"b", "c", "d", "a"}},
		{"same id", b.ID, b.ID, []string{"a", "b", "c", "d"}},
		{"absent source", uuid.New(), b.ID, []string{"a", "b", "c", "d"}},
		{"absent target", a.ID, uuid.New(), []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(st.Reorder(tt.src, tt.tgt).Files))
		})
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(st.Files))
}

func TestState_ReorderUnderKeySort(t *testing.T) {
	a, b, c := record("a", 1, false), record("b", 1, false), record("c", 1, false)
	st := stateOf(domain.SortByName, a, b, c)

	next := st.Reorder(c.ID, a.ID)

	assert.Equal(t, []string{"a", "b", "c"}, names(next.View()), "display follows the sort key")
	assert.Equal(t, []string{"c", "a", "b"}, names(next.Files), "manual order is still updated")

	next.SortBy = domain.SortByManual
	assert.Equal(t, []string{"c", "a", "b"}, names(next.View()))
}

func TestState_Rename(t *testing.T) {
	engine := workspace.NewNamingEngine(nil)

	t.Run("sequential in display order", func(t *testing.T) {
		c, a, b := record("c.txt", 1, true), record("a.txt", 1, true), record("b.txt", 1, true)
		st := stateOf(domain.SortByName, c, a, b)

		next, proposals, err := st.Rename(engine, domain.RenameConfig{Pattern: domain.PatternSequential, DigitCount: 2})

		require.NoError(t, err)
		require.Len(t, proposals, 3)
		// ручной порядок c, a, b; номера по отображению a, b, c
		assert.Equal(t, []string{"03.txt", "01.txt", "02.txt"}, names(next.Files))
	})

	t.Run("unselected pass through", func(t *testing.T) {
		a, b, c := record("a.txt", 1, true), record("b.log", 1, false), record("c.md", 1, true)
		st := stateOf(domain.SortByManual, a, b, c)

		next, _, err := st.Rename(engine, domain.RenameConfig{
			Pattern: domain.PatternSuffixed, DigitCount: 1, Separator: "-", FreeText: "final",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"1-final.txt", "b.log", "2-final.md"}, names(next.Files))
	})

	t.Run("preview equals commit", func(t *testing.T) {
		st := stateOf(domain.SortBySize, record("big.bin", 30, true), record("small.bin", 10, true), record("mid.bin", 20, false))
		st.SortOrder = domain.Descending
		cfg := domain.RenameConfig{Pattern: domain.PatternPrefixed, DigitCount: 3, Separator: "_", FreeText: "img"}

		preview, err := st.PreviewRename(engine, cfg)
		require.NoError(t, err)
		_, committed, err := st.Rename(engine, cfg)
		require.NoError(t, err)

		assert.Equal(t, preview, committed)
		assert.Equal(t, "img_001.bin", committed[0].NewName)
		assert.Equal(t, "big.bin", committed[0].OldName)
	})

	t.Run("empty selection", func(t *testing.T) {
		st := stateOf(domain.SortByManual, record("a.txt", 1, false))

		next, _, err := st.Rename(engine, domain.RenameConfig{Pattern: domain.PatternSequential, DigitCount: 1})

		require.ErrorIs(t, err, domain.ErrEmptySelection)
		assert.Equal(t, "a.txt", next.Files[0].Name)
	})

	t.Run("invalid config leaves names", func(t *testing.T) {
		st := stateOf(domain.SortByManual, record("a.txt", 1, true))

		next, _, err := st.Rename(engine, domain.RenameConfig{Pattern: domain.PatternSequential})

		require.ErrorIs(t, err, domain.ErrInvalidRenameConfig)
		assert.Equal(t, "a.txt", next.Files[0].Name)
	})
}

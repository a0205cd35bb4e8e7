package workspace_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"filedesk/internal/domain"
	"filedesk/internal/workspace"
)

func TestProject_Size(t *testing.T) {
	// t1 и t2 имеют одинаковый размер
	big := record("big", 300, false)
	t1 := record("t1", 100, false)
	mid := record("mid", 200, false)
	t2 := record("t2", 100, false)
	files := []domain.FileRecord{big, t1, mid, t2}

	asc := workspace.Project(files, domain.SortBySize, domain.Ascending)
	desc := workspace.Project(files, domain.SortBySize, domain.Descending)

	assert.Equal(t, []string{"t1", "t2", "mid", "big"}, names(asc))
	assert.Equal(t, []string{"big", "mid", "t1", "t2"}, names(desc), "ties keep manual order in both directions")
	assert.Equal(t, []string{"big", "t1", "mid", "t2"}, names(files), "input is not mutated")
}

func TestProject_Date(t *testing.T) {
	older := record("older", 1, false)
	older.LastModified = time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	newer := record("newer", 1, false)
	newer.LastModified = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	files := []domain.FileRecord{newer, older}

	assert.Equal(t, []string{"older", "newer"}, names(workspace.Project(files, domain.SortByDate, domain.Ascending)))
	assert.Equal(t, []string{"newer", "older"}, names(workspace.Project(files, domain.SortByDate, domain.Descending)))
}

func TestProject_Name(t *testing.T) {
	files := []domain.FileRecord{
		record("banana.txt", 1, false),
		record("Apple.txt", 1, false),
		record("cherry.txt", 1, false),
	}

	got := workspace.Project(files, domain.SortByName, domain.Ascending)

	assert.Equal(t, []string{"Apple.txt", "banana.txt", "cherry.txt"}, names(got))
}

func TestProject_ManualIgnoresOrder(t *testing.T) {
	files := []domain.FileRecord{record("z", 3, false), record("a", 1, false), record("m", 2, false)}

	asc := workspace.Project(files, domain.SortByManual, domain.Ascending)
	desc := workspace.Project(files, domain.SortByManual, domain.Descending)

	assert.Equal(t, []string{"z", "a", "m"}, names(asc))
	assert.Equal(t, names(asc), names(desc))
}

func TestSummarize(t *testing.T) {
	sum := workspace.Summarize([]domain.FileRecord{
		record("a", 100, true),
		record("b", 50, false),
		record("c", 25, true),
	})

	assert.Equal(t, domain.Summary{Total: 3, SelectedCount: 2, SelectedSize: 125}, sum)
	assert.False(t, workspace.Summarize(nil).AllSelected)
	assert.True(t, workspace.Summarize([]domain.FileRecord{record("a", 1, true)}).AllSelected)
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		1536:    "1.5 KB",
		2048:    "2 KB",
		2048576: "2 MB",
		1536000: "1.5 MB",
		4096000: "3.9 MB",
	}
	for in, want := range tests {
		assert.Equal(t, want, workspace.FormatSize(in), "size %d", in)
	}
}

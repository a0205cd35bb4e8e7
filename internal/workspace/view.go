package workspace

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"filedesk/internal/domain"
)

// Project возвращает последовательность для отображения, не изменяя files.
// Сортировка стабильная: равные ключи сохраняют ручной порядок в обоих направлениях.
func Project(files []domain.FileRecord, sortBy domain.SortKey, order domain.SortOrder) []domain.FileRecord {
	out := slices.Clone(files)
	if sortBy == domain.SortByManual || len(out) < 2 {
		return out
	}

	var compare func(a, b domain.FileRecord) int
	switch sortBy {
	case domain.SortByName:
		// collate.Collator не потокобезопасен, поэтому создаем на каждый вызов
		col := collate.New(language.Und)
		compare = func(a, b domain.FileRecord) int {
			return col.CompareString(a.Name, b.Name)
		}
	case domain.SortByDate:
		compare = func(a, b domain.FileRecord) int {
			return a.LastModified.Compare(b.LastModified)
		}
	case domain.SortBySize:
		compare = func(a, b domain.FileRecord) int {
			return cmp.Compare(a.Size, b.Size)
		}
	default:
		return out
	}

	if order == domain.Descending {
		asc := compare
		compare = func(a, b domain.FileRecord) int { return asc(b, a) }
	}

	slices.SortStableFunc(out, compare)
	return out
}

// Summarize считает итог по выделению
func Summarize(files []domain.FileRecord) domain.Summary {
	sum := domain.Summary{Total: len(files)}
	for _, f := range files {
		if f.Selected {
			sum.SelectedCount++
			sum.SelectedSize += f.Size
		}
	}
	sum.AllSelected = sum.Total > 0 && sum.SelectedCount == sum.Total
	return sum
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize форматирует размер с одним знаком после запятой: 0 B, 1.5 KB, 2 MB
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	const k = 1024
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(k, float64(i))
	rounded := math.Round(value*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[i]
}

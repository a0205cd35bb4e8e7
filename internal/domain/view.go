package domain

import "fmt"

// SortKey ключ сортировки отображения
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByDate   SortKey = "date"
	SortBySize   SortKey = "size"
	SortByManual SortKey = "manual"
)

// SortOrder направление сортировки
type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// Layout режим отображения списка файлов
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByName, SortByDate, SortBySize, SortByManual:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidSort, s)
}

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case Ascending, Descending:
		return o, nil
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return "", fmt.Errorf("%w: unknown sort order %q", ErrInvalidSort, s)
}

func ParseLayout(s string) (Layout, error) {
	switch l := Layout(s); l {
	case LayoutGrid, LayoutList:
		return l, nil
	}
	return "", fmt.Errorf("%w: unknown layout %q", ErrInvalidSort, s)
}

// Summary итог по выбранным файлам
type Summary struct {
	Total         int   `json:"total"`
	SelectedCount int   `json:"selected_count"`
	SelectedSize  int64 `json:"selected_size"`
	AllSelected   bool  `json:"all_selected"`
}

package table

import (
	"fmt"
	"slices"
	"strings"
)

// SortOrder is the direction of a column sort.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

func (o SortOrder) String() string {
	switch o {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return "none"
	}
}

// ParseSortOrder accepts "asc", "desc", "none" and "".
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return SortNone, nil
	case "asc":
		return SortAscending, nil
	case "desc":
		return SortDescending, nil
	}
	return SortNone, fmt.Errorf("unknown sort order %q", s)
}

// Sort returns a copy of rows ordered by the text of column, compared
// case-insensitively. The sort is stable, so rows with equal keys keep their
// input order in both directions. SortNone or an out-of-range column returns
// the rows in input order.
func Sort[K comparable](rows []Row[K], column int, order SortOrder) []Row[K] {
	out := clone(rows)
	if order == SortNone || column < 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b Row[K]) int {
		c := strings.Compare(strings.ToLower(a.Cell(column).String()), strings.ToLower(b.Cell(column).String()))
		if order == SortDescending {
			return -c
		}
		return c
	})
	return out
}

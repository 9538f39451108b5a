package table

import "strings"

// Filter returns the rows whose cells case-insensitively contain query.
// An empty query keeps every row. When column is a valid index only that
// column is searched; otherwise every cell is.
func Filter[K comparable](rows []Row[K], query string, column int) []Row[K] {
	if query == "" {
		return clone(rows)
	}
	needle := strings.ToLower(query)
	return Where(rows, func(r Row[K]) bool {
		if column >= 0 {
			return contains(r.Cell(column), needle)
		}
		for _, c := range r.Cells {
			if contains(c, needle) {
				return true
			}
		}
		return false
	})
}

// Where returns the rows accepted by keep, in their original order.
func Where[K comparable](rows []Row[K], keep func(Row[K]) bool) []Row[K] {
	out := make([]Row[K], 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func contains(c Cell, lowerNeedle string) bool {
	return c.Valid && strings.Contains(strings.ToLower(c.Value), lowerNeedle)
}

func clone[K comparable](rows []Row[K]) []Row[K] {
	out := make([]Row[K], len(rows))
	copy(out, rows)
	return out
}

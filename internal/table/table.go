// Package table filters and sorts keyed rows of optional strings.
//
// Rows keep the primary key of the entity they were rendered from, so a
// filtered or sorted view maps back to entities by identity rather than by
// position or by comparing formatted cells.
package table

import (
	"slices"
	"strings"
)

// Cell is an optional string value.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a non-null cell.
func Text(s string) Cell { return Cell{Value: s, Valid: true} }

// Null is the absent cell.
var Null = Cell{}

// String returns the cell text, or "" for a null cell.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}

// Row is one rendered entity.
type Row[K comparable] struct {
	Key   K
	Cells []Cell
}

// Cell returns the cell at index i, or Null when the row is shorter.
func (r Row[K]) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Null
	}
	return r.Cells[i]
}

// Table is a sequence of rows with a parallel column-label sequence.
type Table[K comparable] struct {
	Columns []string
	Rows    []Row[K]
}

// ColumnIndex returns the index of the column labelled label, ignoring case,
// or -1.
func (t Table[K]) ColumnIndex(label string) int {
	if label == "" {
		return -1
	}
	return slices.IndexFunc(t.Columns, func(c string) bool {
		return strings.EqualFold(c, label)
	})
}

// Keys returns the row keys in row order.
func (t Table[K]) Keys() []K {
	keys := make([]K, len(t.Rows))
	for i, r := range t.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Filter keeps the rows matching query. A label naming a column restricts the
// match to that column; an empty or unknown label searches every cell.
func (t Table[K]) Filter(query, columnLabel string) Table[K] {
	return Table[K]{Columns: t.Columns, Rows: Filter(t.Rows, query, t.ColumnIndex(columnLabel))}
}

// Where keeps the rows accepted by keep.
func (t Table[K]) Where(keep func(Row[K]) bool) Table[K] {
	return Table[K]{Columns: t.Columns, Rows: Where(t.Rows, keep)}
}

// Sort orders the rows by the column labelled columnLabel. An unknown label
// leaves the order unchanged.
func (t Table[K]) Sort(columnLabel string, order SortOrder) Table[K] {
	return Table[K]{Columns: t.Columns, Rows: Sort(t.Rows, t.ColumnIndex(columnLabel), order)}
}

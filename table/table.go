// Package table implements the append-only, fixed-width id table that the
// aggregation operations write their result rows into.
//
// The column count (the WIDTH of a result shape) is fixed at construction
// time by the caller, which knows the number of bound variables of the query
// shape. The producing operation only appends rows honoring its documented
// column layout; it never resizes or reinterprets the table.
package table

import (
	"fmt"
	"slices"
	"sort"

	"github.com/hupe1980/textgo/core"
)

// Table is an append-only table of fixed-width rows of ids.
// The zero value is not usable; construct with New.
//
// Table is not safe for concurrent use.
type Table struct {
	width int
	rows  int
	cells []core.ID
}

// New returns an empty table with the given column count. Width zero is
// valid: such a table counts rows but stores no cells.
func New(width int) *Table {
	if width < 0 {
		panic(fmt.Sprintf("table: negative width %d", width))
	}
	return &Table{width: width}
}

// Width returns the column count.
func (t *Table) Width() int { return t.width }

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Reserve grows the backing storage so that rows additional rows can be
// appended without reallocation.
func (t *Table) Reserve(rows int) {
	if rows > 0 {
		t.cells = slices.Grow(t.cells, rows*t.width)
	}
}

// AppendRow appends a zeroed row and returns it for the caller to fill.
// The returned slice is only valid until the next append.
func (t *Table) AppendRow() []core.ID {
	start := len(t.cells)
	t.cells = slices.Grow(t.cells, t.width)[:start+t.width]
	t.rows++
	row := t.cells[start:]
	clear(row)
	return row
}

// PushRow appends a row. The cell count must match the table width.
func (t *Table) PushRow(cells ...core.ID) {
	if len(cells) != t.width {
		panic(fmt.Sprintf("table: pushing %d cells into a width-%d table", len(cells), t.width))
	}
	t.cells = append(t.cells, cells...)
	t.rows++
}

// Row returns row i. The slice aliases the table storage and is valid until
// the next append.
func (t *Table) Row(i int) []core.ID {
	return t.cells[i*t.width : (i+1)*t.width]
}

// At returns the cell in row i, column j.
func (t *Table) At(i, j int) core.ID {
	if j < 0 || j >= t.width {
		panic(fmt.Sprintf("table: column %d out of range for width %d", j, t.width))
	}
	return t.cells[i*t.width+j]
}

// Set overwrites the cell in row i, column j.
func (t *Table) Set(i, j int, v core.ID) {
	if j < 0 || j >= t.width {
		panic(fmt.Sprintf("table: column %d out of range for width %d", j, t.width))
	}
	t.cells[i*t.width+j] = v
}

// Clear removes all rows, keeping the backing storage for reuse.
func (t *Table) Clear() {
	t.cells = t.cells[:0]
	t.rows = 0
}

// SortRows sorts the rows in place by the given comparison.
func (t *Table) SortRows(less func(a, b []core.ID) bool) {
	sort.Sort(&rowSorter{t: t, less: less, tmp: make([]core.ID, t.width)})
}

type rowSorter struct {
	t    *Table
	less func(a, b []core.ID) bool
	tmp  []core.ID
}

func (s *rowSorter) Len() int           { return s.t.rows }
func (s *rowSorter) Less(i, j int) bool { return s.less(s.t.Row(i), s.t.Row(j)) }

func (s *rowSorter) Swap(i, j int) {
	a, b := s.t.Row(i), s.t.Row(j)
	copy(s.tmp, a)
	copy(a, b)
	copy(b, s.tmp)
}

package filters

import (
	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/table"
)

// RowMap maps entity ids to fixed-width rows of extra result data. During
// filtered aggregation every matching entity's rows are cross-joined into
// the output. All rows share one width, fixed at construction.
type RowMap struct {
	width int
	rows  map[core.EntityID]*table.Table
}

// NewRowMap returns an empty map whose rows have the given width.
func NewRowMap(width int) *RowMap {
	return &RowMap{
		width: width,
		rows:  make(map[core.EntityID]*table.Table),
	}
}

// Width returns the row width.
func (m *RowMap) Width() int { return m.width }

// Len returns the number of entities with at least one row.
func (m *RowMap) Len() int { return len(m.rows) }

// Contains reports whether the map holds rows for id.
func (m *RowMap) Contains(id core.EntityID) bool {
	_, ok := m.rows[id]
	return ok
}

// Append adds one row for id. The cell count must match the map's width.
func (m *RowMap) Append(id core.EntityID, cells ...core.ID) {
	t, ok := m.rows[id]
	if !ok {
		t = table.New(m.width)
		m.rows[id] = t
	}
	t.PushRow(cells...)
}

// Rows returns the row table for id, or nil if the map holds none.
// The returned table must not be modified.
func (m *RowMap) Rows(id core.EntityID) *table.Table {
	return m.rows[id]
}

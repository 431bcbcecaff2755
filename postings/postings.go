// Package postings implements the columnar posting-list container and the
// merge, filter, and intersection routines that operate on it.
//
// A posting block is a set of aligned columns keyed by context id. Context
// ids are sorted ascending; this is a precondition of every merge and
// intersection routine, not a checked property. Violating it produces
// incorrect results, not an error.
package postings

import (
	"fmt"

	"github.com/hupe1980/textgo/core"
)

// Postings is a columnar block of word/entity postings sorted by context id.
//
// Columns that are populated must all have the same length as Contexts.
// Words holds one column per matched search term (zero or more columns).
// Entities is populated only in entity mode, where each posting carries the
// bound entity occurring in the context.
type Postings struct {
	Contexts []core.ContextID
	Words    [][]core.WordID
	Entities []core.EntityID
	Scores   []core.Score
}

// Len returns the number of postings in the block.
func (p Postings) Len() int {
	return len(p.Contexts)
}

// Aligned reports whether all populated columns have the same length as the
// context column.
func (p Postings) Aligned() bool {
	n := len(p.Contexts)
	if len(p.Scores) != n {
		return false
	}
	if p.Entities != nil && len(p.Entities) != n {
		return false
	}
	for _, col := range p.Words {
		if len(col) != n {
			return false
		}
	}
	return true
}

// mustAligned aborts on a column-length contract violation. Misaligned
// columns are a programmer error between collaborating components.
func (p Postings) mustAligned(op string) {
	if !p.Aligned() {
		panic(fmt.Sprintf("postings: %s: posting columns are not aligned (%d contexts)", op, len(p.Contexts)))
	}
}

// mustOneWordColumn aborts unless the block carries exactly one word column.
func (p Postings) mustOneWordColumn(op string) {
	if len(p.Words) != 1 {
		panic(fmt.Sprintf("postings: %s requires exactly one word column, got %d", op, len(p.Words)))
	}
}

// WordRow copies posting i's word ids (one per term column) into a new row.
func (p Postings) WordRow(i int) []core.WordID {
	row := make([]core.WordID, len(p.Words))
	for t, col := range p.Words {
		row[t] = col[i]
	}
	return row
}

// Package aggregate collapses entity posting blocks into bounded per-entity
// (or per-entity-tuple) result tables.
//
// Every operation appends rows to a caller-owned table whose width was fixed
// at the call site to match the query shape. The documented column layouts
// are a contract with the consuming query-execution layer. Output rows are
// unsorted; sorting is an explicit caller responsibility.
package aggregate

import (
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/table"
)

// mustEntityPostings aborts unless wep is aligned and carries an entity
// column for every posting.
func mustEntityPostings(op string, wep postings.Postings) {
	if !wep.Aligned() {
		panic(fmt.Sprintf("aggregate: %s: posting columns are not aligned", op))
	}
	if wep.Len() > 0 && wep.Entities == nil {
		panic(fmt.Sprintf("aggregate: %s: postings carry no entity column", op))
	}
}

// mustWidth aborts unless the output table has the width the operation's
// row layout requires.
func mustWidth(op string, out *table.Table, want int) {
	if out.Width() != want {
		panic(fmt.Sprintf("aggregate: %s: output width is %d, row layout requires %d", op, out.Width(), want))
	}
}

// mustPositiveK aborts on a non-positive context bound.
func mustPositiveK(op string, k int) {
	if k < 1 {
		panic(fmt.Sprintf("aggregate: %s: k must be positive, got %d", op, k))
	}
}

// packTuple encodes an entity tuple into a map key. Position matters, so
// the encoding is order-preserving, not a set digest.
func packTuple(buf []byte, ents []core.EntityID) (string, []byte) {
	buf = buf[:0]
	for _, e := range ents {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e))
	}
	return string(buf), buf
}

package aggregate

import (
	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/table"
)

// AggregateRows compacts an already materialized result table whose rows are
// (entity, score, context, extras...). Rows are grouped on the entity column
// and the extra columns (everything past column 2); per group at most k rows
// are kept in ascending score order, and the score column of every kept row
// is rewritten to the group's total row count.
//
// The input table is sorted in place. The output table must be empty and have
// the same width as the input.
func AggregateRows(in *table.Table, k int, out *table.Table) {
	mustPositiveK("AggregateRows", k)
	mustWidth("AggregateRows", out, in.Width())
	if out.Len() != 0 {
		panic("aggregate: AggregateRows: output table is not empty")
	}
	if in.Len() == 0 {
		return
	}

	width := in.Width()
	in.SortRows(func(l, r []core.ID) bool {
		if l[0] != r[0] {
			return l[0] < r[0]
		}
		for i := 3; i < width; i++ {
			if l[i] != r[i] {
				return l[i] < r[i]
			}
		}
		return l[1] < r[1]
	})

	sameGroup := func(row, last []core.ID) bool {
		if row[0] != last[0] {
			return false
		}
		for j := 3; j < width; j++ {
			if row[j] != last[j] {
				return false
			}
		}
		return true
	}

	writeCount := func(count int) {
		kept := count
		if kept > k {
			kept = k
		}
		for j := out.Len() - kept; j < out.Len(); j++ {
			out.Set(j, 1, core.ID(count))
		}
	}

	out.PushRow(in.Row(0)...)
	rowsInGroup := 1
	for i := 1; i < in.Len(); i++ {
		row := in.Row(i)
		if sameGroup(row, out.Row(out.Len()-1)) {
			rowsInGroup++
			if rowsInGroup <= k {
				out.PushRow(row...)
			}
			continue
		}
		writeCount(rowsInGroup)
		out.PushRow(row...)
		rowsInGroup = 1
	}
	writeCount(rowsInGroup)
}

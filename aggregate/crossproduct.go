package aggregate

import (
	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/filters"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/table"
)

func mustWindow(op string, wep postings.Postings, from, to int) {
	if from < 0 || to > wep.Len() || from > to {
		panic("aggregate: " + op + ": window out of range")
	}
}

// AppendCrossProduct appends, for the posting window [from, to), the cross
// product of each posting with the window's distinct entities contained in
// set1 and set2 respectively. The window is one context's postings; matches
// are collected in posting order.
//
// Row layout: entity id, score, context id, match from set1, match from
// set2; fixed width 5. The output table is appended to, not cleared.
func AppendCrossProduct(wep postings.Postings, from, to int, set1, set2 *filters.EntitySet, out *table.Table) {
	mustEntityPostings("AppendCrossProduct", wep)
	mustWindow("AppendCrossProduct", wep, from, to)
	mustWidth("AppendCrossProduct", out, 5)

	var matches1, matches2 []core.EntityID
	seen := make(map[core.EntityID]struct{})
	for i := from; i < to; i++ {
		e := wep.Entities[i]
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		if set1.Contains(e) {
			matches1 = append(matches1, e)
		}
		if set2.Contains(e) {
			matches2 = append(matches2, e)
		}
	}

	out.Reserve((to-from)*len(matches1)*len(matches2) + 2)
	for i := from; i < to; i++ {
		for _, m1 := range matches1 {
			for _, m2 := range matches2 {
				out.PushRow(core.ID(wep.Entities[i]), core.ID(wep.Scores[i]),
					core.ID(wep.Contexts[i]), core.ID(m1), core.ID(m2))
			}
		}
	}
}

// AppendCrossProductRows generalizes AppendCrossProduct to any number of
// row-valued subresults. For the posting window [from, to), each map
// contributes the filter rows of the window's distinct matching entities, in
// posting order; every posting is then cross-joined with one row from each
// map's matches. A map without a single match in the window makes the whole
// window contribute nothing.
//
// The n'th combination takes row (n / prod(sizes[0..j))) % sizes[j] from
// map j, so the first map's rows vary fastest.
//
// Row layout: entity id, score, context id, then the concatenated rows. The
// output table width must be 3 + the sum of the map widths.
func AppendCrossProductRows(wep postings.Postings, from, to int, maps []*filters.RowMap, out *table.Table) {
	mustEntityPostings("AppendCrossProductRows", wep)
	mustWindow("AppendCrossProductRows", wep, from, to)
	width := 3
	for _, m := range maps {
		width += m.Width()
	}
	mustWidth("AppendCrossProductRows", out, width)

	matches := make([]*table.Table, len(maps))
	for j, m := range maps {
		matches[j] = table.New(m.Width())
	}
	seen := make(map[core.EntityID]struct{})
	for i := from; i < to; i++ {
		e := wep.Entities[i]
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		for j, m := range maps {
			rows := m.Rows(e)
			if rows == nil {
				continue
			}
			for r := 0; r < rows.Len(); r++ {
				matches[j].PushRow(rows.Row(r)...)
			}
		}
	}

	combinations := 1
	for _, m := range matches {
		combinations *= m.Len()
	}
	if combinations == 0 {
		return
	}

	out.Reserve((to-from)*combinations + 2)
	for i := from; i < to; i++ {
		for n := 0; n < combinations; n++ {
			row := out.AppendRow()
			row[0] = core.ID(wep.Entities[i])
			row[1] = core.ID(wep.Scores[i])
			row[2] = core.ID(wep.Contexts[i])
			off := 3
			idx := n
			for j := range matches {
				copy(row[off:], matches[j].Row(idx%matches[j].Len()))
				off += matches[j].Width()
				idx /= matches[j].Len()
			}
		}
	}
}

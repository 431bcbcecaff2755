package aggregate

import (
	"github.com/hupe1980/textgo/aggregate/internal/topk"
	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/filters"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/table"
)

// FilterTopKContexts is TopKContexts restricted to entities contained in the
// filter set. Postings whose entity is not in the set are ignored entirely,
// so counts only cover surviving postings.
//
// Row layout: context id, occurrence count, entity id; fixed width 3.
func FilterTopKContexts(wep postings.Postings, set *filters.EntitySet, k int, out *table.Table) {
	mustEntityPostings("FilterTopKContexts", wep)
	mustPositiveK("FilterTopKContexts", k)
	mustWidth("FilterTopKContexts", out, 3)

	if wep.Len() == 0 || set.IsEmpty() {
		return
	}

	type group struct {
		count core.ID
		top   topk.Set
	}
	agg := make(map[core.EntityID]*group)
	for i := 0; i < wep.Len(); i++ {
		e := wep.Entities[i]
		if !set.Contains(e) {
			continue
		}
		g, ok := agg[e]
		if !ok {
			g = &group{count: 1, top: topk.New(k)}
			agg[e] = g
		} else {
			g.count++
		}
		g.top.Insert(wep.Scores[i], wep.Contexts[i])
	}

	out.Reserve(len(agg)*k + 2)
	for e, g := range agg {
		for entry := range g.top.Descending() {
			out.PushRow(core.ID(entry.Context), g.count, core.ID(e))
		}
	}
}

// FilterRowsTopKContexts is TopKContexts restricted to entities present in
// the filter row map. Every emitted (entity, context) pair is cross-joined
// with the entity's filter rows.
//
// Row layout: context id, occurrence count, the filter row columns, then one
// word column per term column of the input. The output table width must be
// 2 + filter width + number of word columns.
func FilterRowsTopKContexts(wep postings.Postings, rows *filters.RowMap, k int, out *table.Table) {
	mustEntityPostings("FilterRowsTopKContexts", wep)
	mustPositiveK("FilterRowsTopKContexts", k)
	nofTerms := len(wep.Words)
	fWidth := rows.Width()
	mustWidth("FilterRowsTopKContexts", out, 2+fWidth+nofTerms)

	if wep.Len() == 0 || rows.Len() == 0 {
		return
	}

	type group struct {
		count core.ID
		top   topk.Set
	}
	agg := make(map[core.EntityID]*group)
	var wordRows map[entityContext][][]core.WordID
	if nofTerms > 0 {
		wordRows = make(map[entityContext][][]core.WordID)
	}

	for i := 0; i < wep.Len(); i++ {
		e := wep.Entities[i]
		if !rows.Contains(e) {
			continue
		}
		g, ok := agg[e]
		if !ok {
			g = &group{count: 1, top: topk.New(k)}
			agg[e] = g
		} else {
			g.count++
		}
		if nofTerms > 0 {
			key := entityContext{e, wep.Contexts[i]}
			wr := wordRows[key]
			if len(wr) >= maxWordRows {
				continue
			}
			wordRows[key] = append(wr, wep.WordRow(i))
		}
		g.top.Insert(wep.Scores[i], wep.Contexts[i])
	}

	out.Reserve(len(agg)*k + 2)
	for e, g := range agg {
		fRows := rows.Rows(e)
		for entry := range g.top.Descending() {
			emit := func(words []core.WordID) {
				for r := 0; r < fRows.Len(); r++ {
					row := out.AppendRow()
					row[0] = core.ID(entry.Context)
					row[1] = g.count
					copy(row[2:], fRows.Row(r))
					for t, w := range words {
						row[2+fWidth+t] = core.ID(w)
					}
				}
			}
			if nofTerms == 0 {
				emit(nil)
				continue
			}
			for _, wr := range wordRows[entityContext{e, entry.Context}] {
				emit(wr)
			}
		}
	}
}

// multiVarFilterAgg is the shared context-run aggregation of the filtered
// multi-variable variants. The tuple's first position enumerates the
// context's filter-passing entities, the remaining nofVars-1 positions
// enumerate all of the context's entities. Contexts without a single
// filter-passing entity contribute nothing.
func multiVarFilterAgg(wep postings.Postings, pass func(core.EntityID) bool, nofVars, k int) map[string]*tupleGroup {
	agg := make(map[string]*tupleGroup)
	var buf []byte

	var entitiesInContext, filteredInContext []core.EntityID
	currentCid := wep.Contexts[0]
	cscore := wep.Scores[0]

	flush := func() {
		if len(filteredInContext) == 0 {
			return
		}
		size := len(entitiesInContext)
		fSize := len(filteredInContext)
		for j := 0; j < fSize*tuplePossibilities(size, nofVars-1); j++ {
			key := make([]core.EntityID, nofVars)
			n := j
			key[0] = filteredInContext[n%fSize]
			n /= fSize
			for p := 1; p < nofVars; p++ {
				key[p] = entitiesInContext[n%size]
				n /= size
			}
			var ks string
			ks, buf = packTuple(buf, key)
			g, ok := agg[ks]
			if !ok {
				g = &tupleGroup{ents: key, count: 1, top: topk.New(k)}
				agg[ks] = g
			} else {
				g.count++
			}
			g.top.Insert(cscore, currentCid)
		}
	}

	for i := 0; i < wep.Len(); i++ {
		if wep.Contexts[i] != currentCid {
			flush()
			entitiesInContext = entitiesInContext[:0]
			filteredInContext = filteredInContext[:0]
			currentCid = wep.Contexts[i]
			cscore = wep.Scores[i]
		}
		entitiesInContext = append(entitiesInContext, wep.Entities[i])
		if pass(wep.Entities[i]) {
			filteredInContext = append(filteredInContext, wep.Entities[i])
		}
	}
	flush()
	return agg
}

type tupleGroup struct {
	ents  []core.EntityID
	count core.ID
	top   topk.Set
}

// MultiVarFilterTopKContexts is MultiVarTopKContexts with the first tuple
// position restricted to entities present in the filter row map; each
// emitted tuple is cross-joined with the filter rows of its filtered entity.
//
// Row layout: context id, occurrence count, the nofVars-1 free entity ids,
// then the filter row columns. The output table width must be
// 2 + (nofVars-1) + filter width.
func MultiVarFilterTopKContexts(wep postings.Postings, rows *filters.RowMap, nofVars, k int, out *table.Table) {
	mustEntityPostings("MultiVarFilterTopKContexts", wep)
	mustPositiveK("MultiVarFilterTopKContexts", k)
	if nofVars < 1 {
		panic("aggregate: MultiVarFilterTopKContexts: need at least one variable")
	}
	mustWidth("MultiVarFilterTopKContexts", out, 2+(nofVars-1)+rows.Width())

	if wep.Len() == 0 || rows.Len() == 0 {
		return
	}

	agg := multiVarFilterAgg(wep, rows.Contains, nofVars, k)
	out.Reserve(len(agg)*k + 2)
	for _, g := range agg {
		fRows := rows.Rows(g.ents[0])
		for entry := range g.top.Descending() {
			for r := 0; r < fRows.Len(); r++ {
				row := out.AppendRow()
				row[0] = core.ID(entry.Context)
				row[1] = g.count
				for p := 1; p < nofVars; p++ {
					row[1+p] = core.ID(g.ents[p])
				}
				copy(row[2+nofVars-1:], fRows.Row(r))
			}
		}
	}
}

// MultiVarFilterSetTopKContexts is the set-filtered form of
// MultiVarFilterTopKContexts: no filter rows are joined, the filtered entity
// id itself is emitted in the last column.
//
// Row layout: context id, occurrence count, the nofVars-1 free entity ids,
// then the filtered entity id. The output table width must be 2 + nofVars.
func MultiVarFilterSetTopKContexts(wep postings.Postings, set *filters.EntitySet, nofVars, k int, out *table.Table) {
	mustEntityPostings("MultiVarFilterSetTopKContexts", wep)
	mustPositiveK("MultiVarFilterSetTopKContexts", k)
	if nofVars < 1 {
		panic("aggregate: MultiVarFilterSetTopKContexts: need at least one variable")
	}
	mustWidth("MultiVarFilterSetTopKContexts", out, 2+nofVars)

	if wep.Len() == 0 || set.IsEmpty() {
		return
	}

	agg := multiVarFilterAgg(wep, set.Contains, nofVars, k)
	out.Reserve(len(agg)*k + 2)
	for _, g := range agg {
		for entry := range g.top.Descending() {
			row := out.AppendRow()
			row[0] = core.ID(entry.Context)
			row[1] = g.count
			for p := 1; p < nofVars; p++ {
				row[1+p] = core.ID(g.ents[p])
			}
			row[1+nofVars] = core.ID(g.ents[0])
		}
	}
}

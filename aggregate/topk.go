package aggregate

import (
	"sort"

	"github.com/hupe1980/textgo/aggregate/internal/topk"
	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/table"
)

// entityContext keys the per-(entity, context) word rows.
type entityContext struct {
	entity  core.EntityID
	context core.ContextID
}

// maxWordRows caps how many word rows are recorded per (entity, context)
// pair. Once the cap is reached further postings for the pair are skipped
// (their occurrence is still counted).
//
// TODO(hupe1980): confirm with the query layer whether the cap of 2 is load
// bearing before lifting it.
const maxWordRows = 2

// TopKContexts groups the postings by entity and retains, per entity, the k
// highest-scoring distinct contexts together with the entity's total context
// occurrence count.
//
// Row layout: context id, occurrence count, entity id, then one word column
// per term column of the input. A retained (entity, context) pair emits one
// row per recorded word row (at most two); inputs without word columns emit
// exactly one row per retained pair. The output table width must be
// 3 + number of word columns.
func TopKContexts(wep postings.Postings, k int, out *table.Table) {
	mustEntityPostings("TopKContexts", wep)
	mustPositiveK("TopKContexts", k)
	nofTerms := len(wep.Words)
	mustWidth("TopKContexts", out, 3+nofTerms)

	if wep.Len() == 0 {
		return
	}
	if k == 1 {
		// O(n) single-best-context path.
		topContext(wep, out)
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
		e, c, sc := wep.Entities[i], wep.Contexts[i], wep.Scores[i]
		g, ok := agg[e]
		if !ok {
			g = &group{count: 1, top: topk.New(k)}
			agg[e] = g
		} else {
			g.count++
		}
		if nofTerms > 0 {
			key := entityContext{e, c}
			rows := wordRows[key]
			if len(rows) >= maxWordRows {
				continue
			}
			wordRows[key] = append(rows, wep.WordRow(i))
		}
		g.top.Insert(sc, c)
	}

	out.Reserve(len(agg)*k + 2)
	for e, g := range agg {
		for entry := range g.top.Descending() {
			if nofTerms == 0 {
				row := out.AppendRow()
				row[0] = core.ID(entry.Context)
				row[1] = g.count
				row[2] = core.ID(e)
				continue
			}
			for _, wr := range wordRows[entityContext{e, entry.Context}] {
				row := out.AppendRow()
				row[0] = core.ID(entry.Context)
				row[1] = g.count
				row[2] = core.ID(e)
				for t, w := range wr {
					row[3+t] = core.ID(w)
				}
			}
		}
	}
}

// topContext is the k == 1 specialization of TopKContexts: per entity only
// the single best context survives, replaced on strictly greater score only,
// so the first context reaching the maximum wins ties.
func topContext(wep postings.Postings, out *table.Table) {
	type best struct {
		count   core.ID
		context core.ContextID
		score   core.Score
		words   []core.WordID
	}
	agg := make(map[core.EntityID]*best)
	for i := 0; i < wep.Len(); i++ {
		e := wep.Entities[i]
		b, ok := agg[e]
		if !ok {
			agg[e] = &best{count: 1, context: wep.Contexts[i], score: wep.Scores[i], words: wep.WordRow(i)}
			continue
		}
		b.count++
		if b.score < wep.Scores[i] {
			b.context = wep.Contexts[i]
			b.score = wep.Scores[i]
			b.words = wep.WordRow(i)
		}
	}

	out.Reserve(len(agg) + 2)
	for e, b := range agg {
		row := out.AppendRow()
		row[0] = core.ID(b.context)
		row[1] = b.count
		row[2] = core.ID(e)
		for t, w := range b.words {
			row[3+t] = core.ID(w)
		}
	}
}

// TopKByScore appends the k highest-scoring context ids to a width-1 table,
// best first. It is a plain partial selection, not a grouping operation.
func TopKByScore(cids []core.ContextID, scores []core.Score, k int, out *table.Table) {
	if len(cids) != len(scores) {
		panic("aggregate: TopKByScore: context and score columns are not aligned")
	}
	mustWidth("TopKByScore", out, 1)
	if k > len(cids) {
		k = len(cids)
	}

	indices := make([]int, len(cids))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	out.Reserve(k + 2)
	for i := 0; i < k; i++ {
		out.PushRow(core.ID(cids[indices[i]]))
	}
}

package aggregate

import (
	"github.com/hupe1980/textgo/aggregate/internal/topk"
	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/table"
)

// tuplePossibilities returns size^nofVars, the number of entity tuples a
// context run of the given size expands to.
func tuplePossibilities(size, nofVars int) int {
	p := 1
	for i := 0; i < nofVars; i++ {
		p *= size
	}
	return p
}

// MultiVarTopKContexts expands each context run into the cross product of
// its entities over nofVars variable positions, aggregates per tuple, and
// keeps the k best-scoring distinct contexts per tuple. The score of a
// context is the score of its first posting.
//
// Row layout: context id, occurrence count, then the nofVars entity ids of
// the tuple. The output table width must be 2 + nofVars.
func MultiVarTopKContexts(wep postings.Postings, nofVars, k int, out *table.Table) {
	mustEntityPostings("MultiVarTopKContexts", wep)
	mustPositiveK("MultiVarTopKContexts", k)
	if nofVars < 1 {
		panic("aggregate: MultiVarTopKContexts: need at least one variable")
	}
	mustWidth("MultiVarTopKContexts", out, 2+nofVars)

	if wep.Len() == 0 {
		return
	}
	if k == 1 {
		multiVarTopContext(wep, nofVars, out)
		return
	}

	type group struct {
		ents  []core.EntityID
		count core.ID
		top   topk.Set
	}
	agg := make(map[string]*group)
	var buf []byte

	var entitiesInContext []core.EntityID
	currentCid := wep.Contexts[0]
	cscore := wep.Scores[0]

	flush := func() {
		size := len(entitiesInContext)
		for j := 0; j < tuplePossibilities(size, nofVars); j++ {
			key := make([]core.EntityID, nofVars)
			n := j
			for p := 0; p < nofVars; p++ {
				key[p] = entitiesInContext[n%size]
				n /= size
			}
			var ks string
			ks, buf = packTuple(buf, key)
			g, ok := agg[ks]
			if !ok {
				g = &group{ents: key, count: 1, top: topk.New(k)}
				agg[ks] = g
			} else {
				g.count++
			}
			g.top.Insert(cscore, currentCid)
		}
	}

	for i := 0; i < wep.Len(); i++ {
		if wep.Contexts[i] == currentCid {
			entitiesInContext = append(entitiesInContext, wep.Entities[i])
			continue
		}
		flush()
		entitiesInContext = entitiesInContext[:0]
		currentCid = wep.Contexts[i]
		cscore = wep.Scores[i]
		entitiesInContext = append(entitiesInContext, wep.Entities[i])
	}
	flush()

	out.Reserve(len(agg)*k + 2)
	for _, g := range agg {
		for entry := range g.top.Descending() {
			row := out.AppendRow()
			row[0] = core.ID(entry.Context)
			row[1] = g.count
			for p, e := range g.ents {
				row[2+p] = core.ID(e)
			}
		}
	}
}

// multiVarTopContext is the k == 1 specialization of MultiVarTopKContexts:
// per tuple only the single best context survives, replaced on strictly
// greater score only.
func multiVarTopContext(wep postings.Postings, nofVars int, out *table.Table) {
	type best struct {
		ents    []core.EntityID
		count   core.ID
		context core.ContextID
		score   core.Score
	}
	agg := make(map[string]*best)
	var buf []byte

	var entitiesInContext []core.EntityID
	currentCid := wep.Contexts[0]
	cscore := wep.Scores[0]

	flush := func() {
		size := len(entitiesInContext)
		for j := 0; j < tuplePossibilities(size, nofVars); j++ {
			key := make([]core.EntityID, nofVars)
			n := j
			for p := 0; p < nofVars; p++ {
				key[p] = entitiesInContext[n%size]
				n /= size
			}
			var ks string
			ks, buf = packTuple(buf, key)
			b, ok := agg[ks]
			if !ok {
				agg[ks] = &best{ents: key, count: 1, context: currentCid, score: cscore}
				continue
			}
			b.count++
			if b.score < cscore {
				b.context = currentCid
				b.score = cscore
			}
		}
	}

	for i := 0; i < wep.Len(); i++ {
		if wep.Contexts[i] == currentCid {
			entitiesInContext = append(entitiesInContext, wep.Entities[i])
			continue
		}
		flush()
		entitiesInContext = entitiesInContext[:0]
		currentCid = wep.Contexts[i]
		cscore = wep.Scores[i]
		entitiesInContext = append(entitiesInContext, wep.Entities[i])
	}
	flush()

	out.Reserve(len(agg) + 2)
	for _, b := range agg {
		row := out.AppendRow()
		row[0] = core.ID(b.context)
		row[1] = b.count
		for p, e := range b.ents {
			row[2+p] = core.ID(e)
		}
	}
}

package postings

import "github.com/hupe1980/textgo/core"

// FilterByRange returns the postings whose word id lies in the closed
// interval [lo, hi], pruning the context, word, and score columns in
// lock-step. Relative order is preserved.
//
// The input must carry exactly one word column.
func FilterByRange(lo, hi core.WordID, pre Postings) Postings {
	pre.mustOneWordColumn("FilterByRange")
	pre.mustAligned("FilterByRange")

	n := pre.Len()
	out := Postings{
		Contexts: make([]core.ContextID, 0, n+2),
		Words:    [][]core.WordID{make([]core.WordID, 0, n+2)},
		Scores:   make([]core.Score, 0, n+2),
	}
	for i, w := range pre.Words[0] {
		if w >= lo && w <= hi {
			out.Contexts = append(out.Contexts, pre.Contexts[i])
			out.Words[0] = append(out.Words[0], w)
			out.Scores = append(out.Scores, pre.Scores[i])
		}
	}
	return out
}

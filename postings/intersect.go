package postings

import "github.com/hupe1980/textgo/core"

// Intersect prunes an entity block so that only postings whose context id
// occurs in contexts remain. When the block holds several postings for one
// matching context, all of them are kept. Duplicates in contexts do not
// multiply the output.
func Intersect(contexts []core.ContextID, block Postings) Postings {
	block.mustAligned("Intersect")

	var out Postings
	if len(contexts) == 0 || block.Len() == 0 {
		return out
	}
	n := block.Len()
	out.Contexts = make([]core.ContextID, 0, n)
	out.Entities = make([]core.EntityID, 0, n)
	out.Scores = make([]core.Score, 0, n)

	i, j := 0, 0
	for i < len(contexts) && j < block.Len() {
		for contexts[i] < block.Contexts[j] {
			i++
			if i >= len(contexts) {
				return out
			}
		}
		for block.Contexts[j] < contexts[i] {
			j++
			if j >= block.Len() {
				return out
			}
		}
		for contexts[i] == block.Contexts[j] {
			out.Contexts = append(out.Contexts, block.Contexts[j])
			out.Entities = append(out.Entities, block.Entities[j])
			out.Scores = append(out.Scores, block.Scores[j])
			j++
			if j >= block.Len() {
				break
			}
		}
		i++
	}
	return out
}

// IntersectTwoPostingLists merges two sorted context/score lists, keeping the
// contexts present in both and summing the scores of paired positions.
// Duplicate contexts are paired positionally, not cross-multiplied.
func IntersectTwoPostingLists(a, b Postings) Postings {
	a.mustAligned("IntersectTwoPostingLists")
	b.mustAligned("IntersectTwoPostingLists")

	var out Postings
	if a.Len() == 0 || b.Len() == 0 {
		return out
	}
	out.Contexts = make([]core.ContextID, 0, a.Len())
	out.Scores = make([]core.Score, 0, a.Len())

	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		for a.Contexts[i] < b.Contexts[j] {
			i++
			if i >= a.Len() {
				return out
			}
		}
		for b.Contexts[j] < a.Contexts[i] {
			j++
			if j >= b.Len() {
				return out
			}
		}
		for a.Contexts[i] == b.Contexts[j] {
			out.Contexts = append(out.Contexts, b.Contexts[j])
			out.Scores = append(out.Scores, a.Scores[i]+b.Scores[j])
			i++
			j++
			if i >= a.Len() || j >= b.Len() {
				break
			}
		}
	}
	return out
}

// CrossIntersect merges a word block a (one word column, sorted contexts)
// with an entity block b (entities, sorted contexts). For every context
// present in both it emits the full cross product of a's and b's postings at
// that context, pairing each word id of a with the context, entity, and
// score of the b row. The entity row varies slowest, the word row fastest.
//
// Example:
//
//	a.Words[0]:  3 4 3 4 3
//	a.Contexts:  1 4 5 5 7
//	b.Contexts:  4 5 5 8
//	b.Entities:  2 1 2 1
//	---------------------
//	out.Contexts: 4 5 5 5 5
//	out.Words[0]: 4 3 4 3 4
//	out.Entities: 2 1 1 2 2
func CrossIntersect(a, b Postings) Postings {
	a.mustOneWordColumn("CrossIntersect")
	a.mustAligned("CrossIntersect")
	b.mustAligned("CrossIntersect")

	out := Postings{Words: [][]core.WordID{nil}}
	if a.Len() == 0 || b.Len() == 0 {
		return out
	}
	n := b.Len()
	out.Contexts = make([]core.ContextID, 0, n)
	out.Words[0] = make([]core.WordID, 0, n)
	out.Entities = make([]core.EntityID, 0, n)
	out.Scores = make([]core.Score, 0, n)

	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		for a.Contexts[i] < b.Contexts[j] {
			i++
			if i >= a.Len() {
				return out
			}
		}
		for b.Contexts[j] < a.Contexts[i] {
			j++
			if j >= b.Len() {
				return out
			}
		}
		for a.Contexts[i] == b.Contexts[j] {
			for k := 0; i+k < a.Len() && a.Contexts[i+k] == a.Contexts[i]; k++ {
				out.Words[0] = append(out.Words[0], a.Words[0][i+k])
				out.Contexts = append(out.Contexts, b.Contexts[j])
				out.Entities = append(out.Entities, b.Entities[j])
				out.Scores = append(out.Scores, b.Scores[j])
			}
			j++
			if j >= b.Len() {
				break
			}
		}
		i++
	}
	return out
}

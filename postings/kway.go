package postings

import (
	"fmt"

	"github.com/hupe1980/textgo/core"
)

// The k-way intersections share one merge strategy: remember the current
// candidate context and the length of the streak (in how many lists it was
// found). Visit the lists round-robin, advancing each past all contexts
// smaller than the candidate. A hit extends the streak; a miss resets the
// streak to 1 with the larger context as the new candidate. A streak of k
// triggers emission. After a match, scanning resumes at the last list, which
// carries the fewest distinct contexts. The merge stops as soon as one list
// is exhausted. No priority queue is needed: contexts missing from some list
// never have to be visited in order.

// IntersectKWay intersects k >= 2 sorted context/score lists. One row is
// emitted per matched context with the scores of all lists summed at their
// match positions.
//
// If entities is non-nil it runs in entity mode: entities parallels the last
// list, and every posting of the last list's duplicate run at a matched
// context yields its own row carrying the entity id at that position.
func IntersectKWay(lists []Postings, entities []core.EntityID) Postings {
	k := len(lists)
	if k < 2 {
		panic(fmt.Sprintf("postings: IntersectKWay requires at least 2 lists, got %d", k))
	}
	for _, l := range lists {
		l.mustAligned("IntersectKWay")
	}

	var out Postings
	entityMode := entities != nil
	if entityMode && len(entities) != lists[k-1].Len() {
		panic("postings: IntersectKWay: entity column does not parallel the last list")
	}
	if lists[k-1].Len() == 0 {
		return out
	}

	minSize := len(entities)
	if !entityMode {
		minSize = lists[0].Len()
		for _, l := range lists {
			if l.Len() == 0 {
				return out
			}
			if l.Len() < minSize {
				minSize = l.Len()
			}
		}
	}

	out.Contexts = make([]core.ContextID, minSize, minSize+2)
	out.Scores = make([]core.Score, minSize, minSize+2)
	if entityMode {
		out.Entities = make([]core.EntityID, minSize, minSize+2)
	}

	next := make([]int, k)
	cur := lists[k-1].Contexts[0]
	currentList := k - 1
	streak := 0
	n := 0
	for {
		size := lists[currentList].Len()
		if next[currentList] == size {
			break
		}
		for lists[currentList].Contexts[next[currentList]] < cur {
			next[currentList]++
			if next[currentList] == size {
				break
			}
		}
		if next[currentList] == size {
			break
		}
		at := lists[currentList].Contexts[next[currentList]]
		if at == cur {
			streak++
			if streak == k {
				var s core.Score
				for i := 0; i < k-1; i++ {
					p := next[i]
					if i != currentList {
						// This list already advanced one past its match.
						p--
					}
					s += lists[i].Scores[p]
				}
				m := next[k-1]
				if currentList != k-1 {
					m--
				}
				if entityMode {
					for m < lists[k-1].Len() && lists[k-1].Contexts[m] == cur {
						out.Contexts[n] = cur
						out.Entities[n] = entities[m]
						out.Scores[n] = s + lists[k-1].Scores[m]
						n++
						m++
					}
					next[k-1] = m
				} else {
					out.Contexts[n] = cur
					out.Scores[n] = s + lists[k-1].Scores[m]
					n++
				}
				currentList = k - 1
				continue
			}
		} else {
			streak = 1
			cur = at
		}
		next[currentList]++
		currentList++
		if currentList == k {
			currentList = 0
		}
	}

	out.Contexts = out.Contexts[:n]
	out.Scores = out.Scores[:n]
	if entityMode {
		out.Entities = out.Entities[:n]
	}
	return out
}

// CrossIntersectKWay intersects k >= 2 sorted posting lists, each carrying
// exactly one word column. At every matched context it emits the full cross
// product of the lists' duplicate runs, one row per combination, with the
// last list's position varying fastest. A row's score is the sum of all k
// scores at the row's positions, and its word ids are taken per list, so the
// result carries k word columns.
//
// If entities is non-nil it runs in entity mode: entities parallels the last
// list and each row additionally carries the entity id at the last list's
// position of its combination.
func CrossIntersectKWay(lists []Postings, entities []core.EntityID) Postings {
	k := len(lists)
	if k < 2 {
		panic(fmt.Sprintf("postings: CrossIntersectKWay requires at least 2 lists, got %d", k))
	}
	for _, l := range lists {
		l.mustOneWordColumn("CrossIntersectKWay")
		l.mustAligned("CrossIntersectKWay")
	}

	out := Postings{Words: make([][]core.WordID, k)}
	entityMode := entities != nil
	if entityMode && len(entities) != lists[k-1].Len() {
		panic("postings: CrossIntersectKWay: entity column does not parallel the last list")
	}
	if lists[k-1].Len() == 0 {
		return out
	}

	minSize := len(entities)
	if !entityMode {
		minSize = lists[0].Len()
		for _, l := range lists {
			if l.Len() == 0 {
				return out
			}
			if l.Len() < minSize {
				minSize = l.Len()
			}
		}
	}

	out.Contexts = make([]core.ContextID, 0, minSize+2)
	out.Scores = make([]core.Score, 0, minSize+2)
	for i := range out.Words {
		out.Words[i] = make([]core.WordID, 0, minSize+2)
	}
	if entityMode {
		out.Entities = make([]core.EntityID, 0, minSize+2)
	}

	next := make([]int, k)
	start := make([]int, k)
	end := make([]int, k)
	offs := make([]int, k)
	cur := lists[k-1].Contexts[0]
	currentList := k - 1
	streak := 0
	for {
		size := lists[currentList].Len()
		if next[currentList] == size {
			break
		}
		for lists[currentList].Contexts[next[currentList]] < cur {
			next[currentList]++
			if next[currentList] == size {
				break
			}
		}
		if next[currentList] == size {
			break
		}
		at := lists[currentList].Contexts[next[currentList]]
		if at == cur {
			streak++
			if streak == k {
				// Locate every list's duplicate run at the matched context.
				for i := 0; i < k; i++ {
					s := next[i]
					if i != currentList {
						s--
					}
					e := s + 1
					for e < lists[i].Len() && lists[i].Contexts[e] == cur {
						e++
					}
					start[i], end[i] = s, e
				}
				// Odometer over the runs, last list fastest.
				for i := range offs {
					offs[i] = 0
				}
				for {
					var s core.Score
					for i := 0; i < k; i++ {
						p := start[i] + offs[i]
						s += lists[i].Scores[p]
						out.Words[i] = append(out.Words[i], lists[i].Words[0][p])
					}
					out.Contexts = append(out.Contexts, cur)
					out.Scores = append(out.Scores, s)
					if entityMode {
						out.Entities = append(out.Entities, entities[start[k-1]+offs[k-1]])
					}
					i := k - 1
					for ; i >= 0; i-- {
						offs[i]++
						if start[i]+offs[i] < end[i] {
							break
						}
						offs[i] = 0
					}
					if i < 0 {
						break
					}
				}
				for i := 0; i < k; i++ {
					next[i] = end[i]
				}
				currentList = k - 1
				continue
			}
		} else {
			streak = 1
			cur = at
		}
		next[currentList]++
		currentList++
		if currentList == k {
			currentList = 0
		}
	}
	return out
}

// Package topk implements the bounded ordered (score, context) set used by
// the aggregators to keep the k best contexts per group.
package topk

import (
	"iter"
	"sort"

	"github.com/hupe1980/textgo/core"
)

// Entry is one retained (score, context) pair.
type Entry struct {
	Score   core.Score
	Context core.ContextID
}

// Set keeps at most k entries ordered ascending by score, ties broken by
// context id. The ordering decides which entry is evicted at capacity and
// which context survives a score tie, so it is part of the contract.
//
// Set is value-based; the zero value is unusable, construct with New.
type Set struct {
	k       int
	entries []Entry
}

// New returns an empty set bounded at k entries. k must be positive.
func New(k int) Set {
	if k < 1 {
		panic("topk: bound must be positive")
	}
	return Set{k: k}
}

// Len returns the number of retained entries.
func (s *Set) Len() int { return len(s.entries) }

// Insert offers a (score, context) pair. The pair is taken if the set is
// below capacity or its score beats the current minimum; at capacity the
// minimum entry is evicted first. Inserting a pair already present leaves
// the set unchanged apart from the eviction, mirroring the ordered-set
// semantics the aggregation contracts are specified against.
func (s *Set) Insert(sc core.Score, c core.ContextID) {
	n := len(s.entries)
	if n >= s.k && s.entries[0].Score >= sc {
		return
	}
	if n == s.k {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:n-1]
	}
	e := Entry{Score: sc, Context: c}
	i := sort.Search(len(s.entries), func(i int) bool {
		x := s.entries[i]
		return x.Score > e.Score || (x.Score == e.Score && x.Context >= e.Context)
	})
	if i < len(s.entries) && s.entries[i] == e {
		return
	}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}

// Descending yields the retained entries from best to worst.
func (s *Set) Descending() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i := len(s.entries) - 1; i >= 0; i-- {
			if !yield(s.entries[i]) {
				return
			}
		}
	}
}

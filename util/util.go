package util

import (
	"math/rand"

	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateWordPostings generates a random posting block with one word
// column: num postings over maxContexts contexts with word ids drawn from
// [0, maxWord). Context ids come out sorted ascending.
func (r *RNG) GenerateWordPostings(num int, maxContexts, maxWord uint64) postings.Postings {
	wep := postings.Postings{
		Contexts: make([]core.ContextID, num),
		Words:    [][]core.WordID{make([]core.WordID, num)},
		Scores:   make([]core.Score, num),
	}
	for i := 0; i < num; i++ {
		wep.Contexts[i] = core.ContextID(r.rand.Uint64() % maxContexts)
		wep.Words[0][i] = core.WordID(r.rand.Uint64() % maxWord)
		wep.Scores[i] = core.Score(r.rand.Intn(10) + 1)
	}
	sortByContext(&wep)
	return wep
}

// GenerateEntityPostings generates a random posting block with an entity
// column and one word column. Context ids come out sorted ascending.
func (r *RNG) GenerateEntityPostings(num int, maxContexts, maxEntity, maxWord uint64) postings.Postings {
	wep := r.GenerateWordPostings(num, maxContexts, maxWord)
	wep.Entities = make([]core.EntityID, num)
	for i := 0; i < num; i++ {
		wep.Entities[i] = core.EntityID(r.rand.Uint64() % maxEntity)
	}
	return wep
}

func sortByContext(wep *postings.Postings) {
	// Insertion sort keeps all columns in lock step without an index
	// permutation; generated blocks are small.
	for i := 1; i < wep.Len(); i++ {
		for j := i; j > 0 && wep.Contexts[j] < wep.Contexts[j-1]; j-- {
			wep.Contexts[j], wep.Contexts[j-1] = wep.Contexts[j-1], wep.Contexts[j]
			for t := range wep.Words {
				wep.Words[t][j], wep.Words[t][j-1] = wep.Words[t][j-1], wep.Words[t][j]
			}
			wep.Scores[j], wep.Scores[j-1] = wep.Scores[j-1], wep.Scores[j]
			if wep.Entities != nil {
				wep.Entities[j], wep.Entities[j-1] = wep.Entities[j-1], wep.Entities[j]
			}
		}
	}
}

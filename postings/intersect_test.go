package postings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
)

func TestIntersect(t *testing.T) {
	block := postings.Postings{
		Contexts: []core.ContextID{1, 2, 2, 4},
		Entities: []core.EntityID{10, 1, 1, 2},
		Scores:   []core.Score{1, 1, 1, 1},
	}

	t.Run("empty contexts", func(t *testing.T) {
		out := postings.Intersect(nil, block)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("empty block", func(t *testing.T) {
		out := postings.Intersect([]core.ContextID{0, 2}, postings.Postings{})
		assert.Equal(t, 0, out.Len())
	})

	t.Run("keeps whole duplicate run", func(t *testing.T) {
		out := postings.Intersect([]core.ContextID{0, 2}, block)
		assert.Equal(t, []core.ContextID{2, 2}, out.Contexts)
		assert.Equal(t, []core.EntityID{1, 1}, out.Entities)
	})

	t.Run("no shared context", func(t *testing.T) {
		out := postings.Intersect([]core.ContextID{0, 3, 5}, block)
		assert.Equal(t, 0, out.Len())
	})
}

func TestIntersectTwoPostingLists(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := postings.IntersectTwoPostingLists(postings.Postings{}, postings.Postings{})
		assert.Equal(t, 0, out.Len())
	})

	t.Run("scores summed", func(t *testing.T) {
		a := postings.Postings{
			Contexts: []core.ContextID{1, 3, 5},
			Scores:   []core.Score{1, 2, 3},
		}
		b := postings.Postings{
			Contexts: []core.ContextID{3, 4, 5},
			Scores:   []core.Score{10, 10, 10},
		}
		out := postings.IntersectTwoPostingLists(a, b)
		assert.Equal(t, []core.ContextID{3, 5}, out.Contexts)
		assert.Equal(t, []core.Score{12, 13}, out.Scores)
	})
}

func TestCrossIntersect(t *testing.T) {
	var matching, eBlock postings.Postings
	matching.Words = [][]core.WordID{nil}

	out := postings.CrossIntersect(matching, eBlock)
	assert.Equal(t, 0, out.Len())

	matching.Contexts = []core.ContextID{0, 2}
	matching.Words = [][]core.WordID{{1, 4}}
	matching.Scores = []core.Score{1, 1}

	out = postings.CrossIntersect(matching, eBlock)
	assert.Equal(t, 0, out.Len())

	eBlock.Contexts = []core.ContextID{1, 2, 2, 4}
	eBlock.Entities = []core.EntityID{10, 1, 1, 2}
	eBlock.Scores = []core.Score{1, 1, 1, 1}

	out = postings.CrossIntersect(matching, eBlock)
	require.True(t, out.Aligned())
	assert.Equal(t, []core.ContextID{2, 2}, out.Contexts)
	assert.Equal(t, []core.WordID{4, 4}, out.Words[0])
	assert.Equal(t, []core.EntityID{1, 1}, out.Entities)

	// A duplicate run in the word block expands per entity posting, word
	// varying fastest.
	matching.Contexts = []core.ContextID{0, 2, 2}
	matching.Words = [][]core.WordID{{1, 4, 8}}
	matching.Scores = []core.Score{1, 1, 1}

	out = postings.CrossIntersect(matching, eBlock)
	require.Equal(t, 4, out.Len())
	assert.Equal(t, []core.WordID{4, 8, 4, 8}, out.Words[0])
	assert.Equal(t, []core.ContextID{2, 2, 2, 2}, out.Contexts)
	assert.Equal(t, []core.EntityID{1, 1, 1, 1}, out.Entities)
}

package postings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
)

func threeWordLists() []postings.Postings {
	return []postings.Postings{
		{
			Contexts: []core.ContextID{0, 1, 2, 10},
			Words:    [][]core.WordID{{3, 2, 5, 3}},
			Scores:   []core.Score{1, 1, 1, 1},
		},
		{
			Contexts: []core.ContextID{0, 0, 0, 10},
			Words:    [][]core.WordID{{8, 7, 6, 9}},
			Scores:   []core.Score{1, 1, 1, 1},
		},
		{
			Contexts: []core.ContextID{0, 6, 8, 10},
			Words:    [][]core.WordID{{23, 22, 25, 23}},
			Scores:   []core.Score{1, 1, 1, 3},
		},
	}
}

func TestIntersectKWay(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		out := postings.IntersectKWay(threeWordLists(), nil)
		require.Equal(t, 2, out.Len())
		assert.Equal(t, []core.ContextID{0, 10}, out.Contexts)
		assert.Equal(t, []core.Score{3, 5}, out.Scores)
		assert.Nil(t, out.Entities)
	})

	t.Run("entity mode expands last list runs", func(t *testing.T) {
		lists := append(threeWordLists(), postings.Postings{
			Contexts: []core.ContextID{0, 0, 3, 4, 10, 10},
			Words:    [][]core.WordID{{33, 29, 45, 76, 42, 31}},
			Scores:   []core.Score{1, 4, 1, 4, 1, 4},
		})
		entities := []core.EntityID{1, 4, 1, 4, 1, 2}

		out := postings.IntersectKWay(lists, entities)
		require.Equal(t, 4, out.Len())
		assert.Equal(t, []core.ContextID{0, 0, 10, 10}, out.Contexts)
		assert.Equal(t, []core.EntityID{1, 4, 1, 2}, out.Entities)
		assert.Equal(t, []core.Score{4, 7, 6, 9}, out.Scores)
	})

	t.Run("empty last list", func(t *testing.T) {
		lists := threeWordLists()
		lists[2] = postings.Postings{Words: [][]core.WordID{nil}}
		out := postings.IntersectKWay(lists, nil)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("panics below two lists", func(t *testing.T) {
		assert.Panics(t, func() { postings.IntersectKWay(threeWordLists()[:1], nil) })
	})
}

func TestCrossIntersectKWay(t *testing.T) {
	t.Run("three lists", func(t *testing.T) {
		out := postings.CrossIntersectKWay(threeWordLists(), nil)

		require.Equal(t, 4, out.Len())
		require.Len(t, out.Words, 3)
		assert.Nil(t, out.Entities)
		assert.Equal(t, []core.ContextID{0, 0, 0, 10}, out.Contexts)
		assert.Equal(t, []core.Score{3, 3, 3, 5}, out.Scores)
		assert.Equal(t, []core.WordID{3, 3, 3, 3}, out.Words[0])
		assert.Equal(t, []core.WordID{8, 7, 6, 9}, out.Words[1])
		assert.Equal(t, []core.WordID{23, 23, 23, 23}, out.Words[2])
	})

	t.Run("entity mode with four lists", func(t *testing.T) {
		lists := append(threeWordLists(), postings.Postings{
			Contexts: []core.ContextID{0, 0, 3, 4, 10, 10},
			Words:    [][]core.WordID{{33, 29, 45, 76, 42, 31}},
			Scores:   []core.Score{1, 4, 1, 4, 1, 4},
		})
		entities := []core.EntityID{1, 4, 1, 4, 1, 2}

		out := postings.CrossIntersectKWay(lists, entities)

		require.Equal(t, 8, out.Len())
		require.Len(t, out.Words, 4)
		assert.Equal(t, []core.ContextID{0, 0, 0, 0, 0, 0, 10, 10}, out.Contexts)
		assert.Equal(t, []core.EntityID{1, 4, 1, 4, 1, 4, 1, 2}, out.Entities)
		assert.Equal(t, [][]core.WordID{
			{3, 3, 3, 3, 3, 3, 3, 3},
			{8, 8, 7, 7, 6, 6, 9, 9},
			{23, 23, 23, 23, 23, 23, 23, 23},
			{33, 29, 33, 29, 33, 29, 42, 31},
		}, out.Words)
		assert.Equal(t, []core.Score{4, 7, 4, 7, 4, 7, 6, 9}, out.Scores)
	})

	t.Run("entity column must parallel last list", func(t *testing.T) {
		assert.Panics(t, func() {
			postings.CrossIntersectKWay(threeWordLists(), []core.EntityID{1})
		})
	})
}

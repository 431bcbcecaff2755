package aggregate

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/table"
)

// sortedRows copies the table's rows, sorted lexicographically, so tests are
// independent of map iteration order.
func sortedRows(t *table.Table) [][]core.ID {
	rows := make([][]core.ID, t.Len())
	for i := range rows {
		rows[i] = append([]core.ID(nil), t.Row(i)...)
	}
	sort.Slice(rows, func(a, b int) bool {
		for j := range rows[a] {
			if rows[a][j] != rows[b][j] {
				return rows[a][j] < rows[b][j]
			}
		}
		return false
	})
	return rows
}

func TestTopKContexts(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := table.New(4)
		TopKContexts(postings.Postings{Words: [][]core.WordID{nil}}, 2, out)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("single entity keeps two best contexts", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{0, 1, 2},
			Words:    [][]core.WordID{{1, 1, 2}},
			Entities: []core.EntityID{0, 0, 0},
			Scores:   []core.Score{0, 1, 2},
		}
		out := table.New(4)
		TopKContexts(wep, 2, out)

		require.Equal(t, 2, out.Len())
		assert.Equal(t, []core.ID{2, 3, 0, 2}, out.Row(0))
		assert.Equal(t, []core.ID{1, 3, 0, 1}, out.Row(1))
	})

	t.Run("two entities", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{0, 1, 2, 4},
			Words:    [][]core.WordID{{1, 1, 2, 4}},
			Entities: []core.EntityID{0, 0, 0, 1},
			Scores:   []core.Score{0, 1, 2, 1},
		}
		out := table.New(4)
		TopKContexts(wep, 2, out)

		require.Equal(t, 3, out.Len())
		rows := sortedRows(out)
		assert.Equal(t, []core.ID{4, 1, 1, 4}, rows[2])
	})

	t.Run("word rows capped at two per pair", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{5, 5, 5},
			Words:    [][]core.WordID{{7, 8, 9}},
			Entities: []core.EntityID{0, 0, 0},
			Scores:   []core.Score{1, 2, 3},
		}
		out := table.New(4)
		TopKContexts(wep, 2, out)

		require.Equal(t, 4, out.Len())
		for i := 0; i < out.Len(); i++ {
			assert.Equal(t, core.ID(3), out.At(i, 1))
			assert.NotEqual(t, core.ID(9), out.At(i, 3))
		}
	})

	t.Run("no word columns emits one row per pair", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{0, 1},
			Entities: []core.EntityID{7, 7},
			Scores:   []core.Score{1, 2},
		}
		out := table.New(3)
		TopKContexts(wep, 5, out)

		require.Equal(t, 2, out.Len())
		assert.Equal(t, []core.ID{1, 2, 7}, out.Row(0))
		assert.Equal(t, []core.ID{0, 2, 7}, out.Row(1))
	})

	t.Run("panics on width mismatch", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{0},
			Words:    [][]core.WordID{{1}},
			Entities: []core.EntityID{0},
			Scores:   []core.Score{1},
		}
		assert.Panics(t, func() { TopKContexts(wep, 2, table.New(3)) })
		assert.Panics(t, func() { TopKContexts(wep, 0, table.New(4)) })
	})
}

func TestTopKContextsSingleBest(t *testing.T) {
	t.Run("one entity", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{0, 1, 2},
			Words:    [][]core.WordID{{1, 1, 2}},
			Entities: []core.EntityID{0, 0, 0},
			Scores:   []core.Score{0, 1, 2},
		}
		out := table.New(4)
		TopKContexts(wep, 1, out)

		require.Equal(t, 1, out.Len())
		assert.Equal(t, []core.ID{2, 3, 0, 2}, out.Row(0))
	})

	t.Run("strictly greater score replaces", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{0, 1, 2, 3, 4},
			Words:    [][]core.WordID{{1, 1, 2, 4, 4}},
			Entities: []core.EntityID{0, 0, 0, 1, 0},
			Scores:   []core.Score{0, 1, 2, 1, 10},
		}
		out := table.New(4)
		TopKContexts(wep, 1, out)

		require.Equal(t, 2, out.Len())
		rows := sortedRows(out)
		assert.Equal(t, []core.ID{3, 1, 1, 4}, rows[0])
		assert.Equal(t, []core.ID{4, 4, 0, 4}, rows[1])
	})

	t.Run("equal score keeps first context", func(t *testing.T) {
		wep := postings.Postings{
			Contexts: []core.ContextID{2, 5},
			Words:    [][]core.WordID{{1, 9}},
			Entities: []core.EntityID{0, 0},
			Scores:   []core.Score{3, 3},
		}
		out := table.New(4)
		TopKContexts(wep, 1, out)

		require.Equal(t, 1, out.Len())
		assert.Equal(t, []core.ID{2, 2, 0, 1}, out.Row(0))
	})
}

func TestTopKByScore(t *testing.T) {
	out := table.New(1)
	TopKByScore(
		[]core.ContextID{1, 2, 3, 4},
		[]core.Score{3, 1, 5, 2},
		2, out)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, core.ID(3), out.At(0, 0))
	assert.Equal(t, core.ID(1), out.At(1, 0))

	// k larger than the input selects everything.
	out = table.New(1)
	TopKByScore([]core.ContextID{9}, []core.Score{1}, 5, out)
	assert.Equal(t, 1, out.Len())

	assert.Panics(t, func() {
		TopKByScore([]core.ContextID{1}, nil, 1, table.New(1))
	})
}

package postings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/textgo/core"
	"github.com/hupe1980/textgo/postings"
	"github.com/hupe1980/textgo/util"
)

func TestFilterByRange(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := postings.FilterByRange(5, 7, postings.Postings{Words: [][]core.WordID{nil}})
		assert.Equal(t, 0, out.Len())
	})

	t.Run("none", func(t *testing.T) {
		pre := postings.Postings{
			Contexts: []core.ContextID{0},
			Words:    [][]core.WordID{{2}},
			Scores:   []core.Score{1},
		}
		out := postings.FilterByRange(5, 7, pre)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("match", func(t *testing.T) {
		pre := postings.Postings{
			Contexts: []core.ContextID{0, 0, 1, 2, 3},
			Words:    [][]core.WordID{{2, 5, 7, 5, 6}},
			Scores:   []core.Score{1, 1, 1, 1, 1},
		}
		out := postings.FilterByRange(5, 7, pre)
		require.True(t, out.Aligned())
		assert.Equal(t, []core.ContextID{0, 1, 2, 3}, out.Contexts)
		assert.Equal(t, []core.WordID{5, 7, 5, 6}, out.Words[0])
	})

	t.Run("partial", func(t *testing.T) {
		pre := postings.Postings{
			Contexts: []core.ContextID{0, 0, 1, 2, 3, 4},
			Words:    [][]core.WordID{{2, 5, 7, 5, 6, 8}},
			Scores:   []core.Score{1, 1, 1, 1, 1, 1},
		}
		out := postings.FilterByRange(5, 7, pre)
		assert.Equal(t, 4, out.Len())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		pre := postings.Postings{
			Contexts: []core.ContextID{0, 1},
			Words:    [][]core.WordID{{5, 7}},
			Scores:   []core.Score{1, 1},
		}
		out := postings.FilterByRange(5, 7, pre)
		assert.Equal(t, 2, out.Len())
	})

	t.Run("panics without word column", func(t *testing.T) {
		assert.Panics(t, func() { postings.FilterByRange(5, 7, postings.Postings{}) })
	})
}

func TestFilterByRangeProperties(t *testing.T) {
	rng := util.NewRNG(4711)
	for trial := 0; trial < 10; trial++ {
		pre := rng.GenerateWordPostings(200, 32, 50)
		out := postings.FilterByRange(10, 30, pre)

		require.True(t, out.Aligned())
		want := 0
		for _, w := range pre.Words[0] {
			if w >= 10 && w <= 30 {
				want++
			}
		}
		assert.Equal(t, want, out.Len())
		for i := 0; i < out.Len(); i++ {
			assert.GreaterOrEqual(t, uint64(out.Words[0][i]), uint64(10))
			assert.LessOrEqual(t, uint64(out.Words[0][i]), uint64(30))
		}
		for i := 1; i < out.Len(); i++ {
			assert.LessOrEqual(t, out.Contexts[i-1], out.Contexts[i])
		}
	}
}

package indexedgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authzed/indexedgraph/pkg/graphassert"
)

func sampleGraph() *IndexedGraph[int, string] {
	g := New[int, string]()
	g.Insert(3, "c")
	g.Insert(2, "b")
	g.Insert(1, "a")
	g.Insert(2, "bb")
	return g
}

func TestIterForward(t *testing.T) {
	it := sampleGraph().Iter()
	require.Equal(t, 4, it.Len())

	var got []Entry[int, string]
	for {
		key, value, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, Entry[int, string]{key, value})
		require.Equal(t, 4-len(got), it.Len())
	}

	require.Equal(t, []Entry[int, string]{{3, "c"}, {2, "b"}, {1, "a"}, {2, "bb"}}, got)
}

func TestIterBackward(t *testing.T) {
	it := sampleGraph().Iter()

	var got []Entry[int, string]
	for {
		key, value, ok := it.NextBack()
		if !ok {
			break
		}
		got = append(got, Entry[int, string]{key, value})
	}

	require.Equal(t, []Entry[int, string]{{2, "bb"}, {1, "a"}, {2, "b"}, {3, "c"}}, got)
}

func TestIterBothEnds(t *testing.T) {
	it := sampleGraph().Iter()

	key, value, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 3, key)
	require.Equal(t, "c", value)

	key, value, ok = it.NextBack()
	require.True(t, ok)
	require.Equal(t, 2, key)
	require.Equal(t, "bb", value)
	require.Equal(t, 2, it.Len())

	key, value, ok = it.NextBack()
	require.True(t, ok)
	require.Equal(t, 1, key)
	require.Equal(t, "a", value)

	key, value, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, 2, key)
	require.Equal(t, "b", value)
	require.Equal(t, 0, it.Len())

	// Fused: exhausted from both ends, forever.
	for i := 0; i < 3; i++ {
		_, _, ok = it.Next()
		require.False(t, ok)
		_, _, ok = it.NextBack()
		require.False(t, ok)
		require.Equal(t, 0, it.Len())
	}
}

func TestIterAfterPops(t *testing.T) {
	g := sampleGraph()
	g.PopFirst()
	g.PopLast()

	var got []Entry[int, string]
	for key, value := range g.All() {
		got = append(got, Entry[int, string]{key, value})
	}
	require.Equal(t, []Entry[int, string]{{2, "b"}, {1, "a"}}, got)

	got = nil
	for key, value := range g.Backward() {
		got = append(got, Entry[int, string]{key, value})
	}
	require.Equal(t, []Entry[int, string]{{1, "a"}, {2, "b"}}, got)
}

func TestIterLengthCountsEntries(t *testing.T) {
	g := New[string, int]()
	g.Insert("k", 1)
	g.Insert("k", 2)
	g.Insert("k", 3)

	require.Equal(t, 1, g.Len())
	require.Equal(t, 3, g.Iter().Len())
}

func TestAllStopsEarly(t *testing.T) {
	g := sampleGraph()

	var keys []int
	for key := range g.All() {
		keys = append(keys, key)
		if len(keys) == 2 {
			break
		}
	}
	require.Equal(t, []int{3, 2}, keys)
}

func TestIterDegradedAggregates(t *testing.T) {
	t.Run("last returns the last inserted entry", func(t *testing.T) {
		it := sampleGraph().Iter()
		it.NextBack()

		key, value, ok := it.Last()
		require.True(t, ok)
		require.Equal(t, 2, key)
		require.Equal(t, "bb", value)
		require.Equal(t, 0, it.Len())
	})

	t.Run("max is last, not the largest key", func(t *testing.T) {
		key, value, ok := sampleGraph().Iter().Max()
		require.True(t, ok)
		require.Equal(t, 2, key)
		require.Equal(t, "bb", value)
	})

	t.Run("min is one forward step, not the smallest key", func(t *testing.T) {
		it := sampleGraph().Iter()
		key, value, ok := it.Min()
		require.True(t, ok)
		require.Equal(t, 3, key)
		require.Equal(t, "c", value)

		_, _, ok = it.Next()
		require.False(t, ok)
	})

	t.Run("empty graph", func(t *testing.T) {
		g := New[int, string]()
		_, _, ok := g.Iter().Min()
		require.False(t, ok)
		_, _, ok = g.Iter().Max()
		require.False(t, ok)
		_, _, ok = g.Iter().Last()
		require.False(t, ok)
	})
}

func TestIterDetectsMutation(t *testing.T) {
	tcs := []struct {
		name          string
		mutate        func(g *IndexedGraph[int, string])
		advance       func(it *Iter[int, string])
		outsideWindow string
	}{
		{
			name:          "pop first then next",
			mutate:        func(g *IndexedGraph[int, string]) { g.PopFirst() },
			advance:       func(it *Iter[int, string]) { it.Next() },
			outsideWindow: "position 0 outside of live entries [1, 4)",
		},
		{
			name:          "pop last then next back",
			mutate:        func(g *IndexedGraph[int, string]) { g.PopLast() },
			advance:       func(it *Iter[int, string]) { it.NextBack() },
			outsideWindow: "position 3 outside of live entries [0, 3)",
		},
		{
			name:          "clear then next",
			mutate:        func(g *IndexedGraph[int, string]) { g.Clear() },
			advance:       func(it *Iter[int, string]) { it.Next() },
			outsideWindow: "position 0 outside of live entries [0, 0)",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			g := sampleGraph()
			it := g.Iter()
			tc.mutate(g)

			expected := tc.outsideWindow
			if graphassert.DebugAssertionsEnabled {
				expected = "indexed graph mutated during iteration"
			}
			require.PanicsWithValue(t, expected, func() { tc.advance(it) })
		})
	}
}

package indexedgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEdgeMap(t *testing.T) {
	em := NewEdgeMap[string]()
	require.Equal(t, 0, em.Len())

	from, to := em.Insert("a", "b")
	require.Equal(t, "a", from)
	require.Equal(t, "b", to)

	em.Insert("b", "a")
	em.Insert("a", "c")
	require.Equal(t, 2, em.Len())

	target, ok := em.Get("a")
	require.True(t, ok)
	require.Equal(t, "c", target)

	_, ok = em.Get("c")
	require.False(t, ok)

	cloned := em.Clone()
	em.Insert("a", "z")
	em.Clear()
	require.Equal(t, 0, em.Len())

	target, ok = cloned.Get("a")
	require.True(t, ok)
	require.Equal(t, "c", target)
	require.Equal(t, 2, cloned.Len())
}

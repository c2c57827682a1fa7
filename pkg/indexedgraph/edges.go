package indexedgraph

import (
	"cmp"

	"github.com/emirpasic/gods/v2/maps/treemap"
	"github.com/emirpasic/gods/v2/utils"
)

// EdgeMap holds at most one outgoing edge per key. Inserting an edge from a
// key that already has one replaces its target.
type EdgeMap[K comparable] struct {
	targets    *treemap.Map[K, K]
	comparator func(a, b K) int
}

// NewEdgeMap returns an empty EdgeMap ordering keys by their natural order.
func NewEdgeMap[K cmp.Ordered]() *EdgeMap[K] {
	return NewEdgeMapWith[K](cmp.Compare[K])
}

// NewEdgeMapWith returns an empty EdgeMap ordering keys with the comparator.
func NewEdgeMapWith[K comparable](comparator func(a, b K) int) *EdgeMap[K] {
	return &EdgeMap[K]{
		targets:    treemap.NewWith[K, K](utils.Comparator[K](comparator)),
		comparator: comparator,
	}
}

// Insert points from at to and returns the stored pair.
func (em *EdgeMap[K]) Insert(from, to K) (K, K) {
	em.targets.Put(from, to)
	return from, to
}

// Get returns the target of from's edge.
func (em *EdgeMap[K]) Get(from K) (K, bool) {
	return em.targets.Get(from)
}

// Len returns the number of edges.
func (em *EdgeMap[K]) Len() int { return em.targets.Size() }

// Clear removes every edge.
func (em *EdgeMap[K]) Clear() { em.targets.Clear() }

// Clone returns an independent copy.
func (em *EdgeMap[K]) Clone() *EdgeMap[K] {
	cloned := NewEdgeMapWith[K](em.comparator)
	it := em.targets.Iterator()
	for it.Next() {
		cloned.targets.Put(it.Key(), it.Value())
	}
	return cloned
}

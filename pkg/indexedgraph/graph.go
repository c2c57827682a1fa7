// Package indexedgraph implements an in-memory ordered multimap with a
// positional index.
//
// Every Insert appends one entry to the end of the insertion sequence. The
// index maps each distinct key to the positions of all of its entries, so
// looking up every value stored under a key never scans the sequence.
// Traversal, FirstKeyValue/LastKeyValue and PopFirst/PopLast all follow
// insertion order, never key order.
//
// An IndexedGraph has a single owner: it performs no internal
// synchronization, and concurrent reads are only safe while nothing mutates
// the graph.
package indexedgraph

import (
	"cmp"
	"iter"

	"github.com/authzed/indexedgraph/internal/logging"
	"github.com/authzed/indexedgraph/pkg/genutil/mapz"
	"github.com/authzed/indexedgraph/pkg/graphassert"
)

// Entry is a single key/value pair.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// IndexedGraph is an insertion-ordered multimap. Keys are stored once per
// entry in the insertion sequence and once more in the index.
type IndexedGraph[K comparable, V any] struct {
	keys   []K
	values []V

	// offset is the absolute sequence number of keys[0]. The index records
	// absolute sequence numbers, so popping the front entry never requires
	// rewriting the positions of other keys.
	offset int

	index   *mapz.MultiMap[K, int]
	edges   *EdgeMap[K]
	compare func(a, b K) int

	// version changes on every mutation; live iterators use it to detect
	// mutation underneath them.
	version uint64
}

// New makes a new, empty IndexedGraph ordering keys by their natural order.
func New[K cmp.Ordered, V any]() *IndexedGraph[K, V] {
	return NewWith[K, V](cmp.Compare[K])
}

// NewWith makes a new, empty IndexedGraph whose index and edges order keys
// with the comparator. Keys comparing equal share an index entry.
func NewWith[K comparable, V any](comparator func(a, b K) int) *IndexedGraph[K, V] {
	return &IndexedGraph[K, V]{
		keys:    []K{},
		values:  []V{},
		index:   mapz.NewMultiMapWith[K, int](comparator),
		edges:   NewEdgeMapWith[K](comparator),
		compare: comparator,
	}
}

// Clear removes all entries, the index and every edge.
func (g *IndexedGraph[K, V]) Clear() {
	logging.Trace().
		Int("entries", len(g.keys)).
		Int("keys", g.index.Len()).
		Int("edges", g.edges.Len()).
		Msg("clearing indexed graph")

	g.keys = []K{}
	g.values = []V{}
	g.offset = 0
	g.index.Clear()
	g.edges.Clear()
	g.version++
}

// Insert appends the key/value pair to the end of the insertion sequence and
// records its position under the key. Values inserted under an existing key
// accumulate after the ones already present; the key first stored in the
// index is kept. The inserted value is returned.
func (g *IndexedGraph[K, V]) Insert(key K, value V) V {
	g.index.Add(key, g.offset+len(g.keys))
	g.keys = append(g.keys, key)
	g.values = append(g.values, value)
	g.version++

	graphassert.DebugAssertf(g.consistent, "index out of sync after inserting an entry")
	return value
}

// InsertEdge sets the single outgoing edge of from, replacing any previous
// target. Neither key needs to be present in the graph. The stored pair is
// returned.
func (g *IndexedGraph[K, V]) InsertEdge(from, to K) (K, K) {
	return g.edges.Insert(from, to)
}

// Edge returns the target of the outgoing edge of from, if any.
func (g *IndexedGraph[K, V]) Edge(from K) (K, bool) {
	return g.edges.Get(from)
}

// EdgeCount returns the number of keys with an outgoing edge.
func (g *IndexedGraph[K, V]) EdgeCount() int {
	return g.edges.Len()
}

// Get returns the values stored under the key, in insertion order. An absent
// key yields an empty slice.
func (g *IndexedGraph[K, V]) Get(key K) []V {
	positions, ok := g.index.Get(key)
	if !ok {
		return []V{}
	}

	values := make([]V, 0, len(positions))
	for _, pos := range positions {
		values = append(values, g.values[g.live(pos)])
	}
	return values
}

// GetKeyValues returns the entries stored under the key, in insertion order.
// Every entry carries the key held by the index rather than the copy stored
// alongside the value.
func (g *IndexedGraph[K, V]) GetKeyValues(key K) []Entry[K, V] {
	positions, ok := g.index.Get(key)
	if !ok {
		return []Entry[K, V]{}
	}

	stored, _ := g.index.GetKey(key)
	entries := make([]Entry[K, V], 0, len(positions))
	for _, pos := range positions {
		entries = append(entries, Entry[K, V]{Key: stored, Value: g.values[g.live(pos)]})
	}
	return entries
}

// ContainsKey returns true if the index has the key.
func (g *IndexedGraph[K, V]) ContainsKey(key K) bool {
	return g.index.Has(key)
}

// FirstKeyValue returns the first entry inserted that has not been popped.
// This is the front of the insertion sequence, not the minimum key.
func (g *IndexedGraph[K, V]) FirstKeyValue() (K, V, bool) {
	if len(g.keys) == 0 {
		var key K
		var value V
		return key, value, false
	}
	return g.keys[0], g.values[0], true
}

// LastKeyValue returns the most recently inserted entry that has not been
// popped. This is the back of the insertion sequence, not the maximum key.
func (g *IndexedGraph[K, V]) LastKeyValue() (K, V, bool) {
	if len(g.keys) == 0 {
		var key K
		var value V
		return key, value, false
	}
	last := len(g.keys) - 1
	return g.keys[last], g.values[last], true
}

// PopFirst removes and returns the front entry of the insertion sequence. The
// popped position is removed from its key's index entry, and the key is
// dropped from the index once it has no positions left.
func (g *IndexedGraph[K, V]) PopFirst() (K, V, bool) {
	if len(g.keys) == 0 {
		var key K
		var value V
		return key, value, false
	}

	key, value := g.keys[0], g.values[0]

	var zeroKey K
	var zeroValue V
	g.keys[0], g.values[0] = zeroKey, zeroValue
	g.keys, g.values = g.keys[1:], g.values[1:]

	pos, ok := g.index.PopFront(key)
	graphassert.DebugAssertf(func() bool { return ok && pos == g.offset },
		"front entry at %d was recorded at %d (found: %t)", g.offset, pos, ok)

	g.offset++
	g.version++

	graphassert.DebugAssertf(g.consistent, "index out of sync after popping the front entry")
	return key, value, true
}

// PopLast removes and returns the back entry of the insertion sequence. The
// popped position is removed from its key's index entry, and the key is
// dropped from the index once it has no positions left.
func (g *IndexedGraph[K, V]) PopLast() (K, V, bool) {
	if len(g.keys) == 0 {
		var key K
		var value V
		return key, value, false
	}

	last := len(g.keys) - 1
	key, value := g.keys[last], g.values[last]

	var zeroKey K
	var zeroValue V
	g.keys[last], g.values[last] = zeroKey, zeroValue
	g.keys, g.values = g.keys[:last], g.values[:last]

	pos, ok := g.index.PopBack(key)
	graphassert.DebugAssertf(func() bool { return ok && pos == g.offset+last },
		"back entry at %d was recorded at %d (found: %t)", g.offset+last, pos, ok)

	g.version++

	graphassert.DebugAssertf(g.consistent, "index out of sync after popping the back entry")
	return key, value, true
}

// Len returns the number of distinct keys, not the number of entries. See
// EntryCount for the latter.
func (g *IndexedGraph[K, V]) Len() int {
	return g.index.Len()
}

// EntryCount returns the number of entries in the insertion sequence.
func (g *IndexedGraph[K, V]) EntryCount() int {
	return len(g.keys)
}

// IsEmpty returns true if the index holds no keys.
func (g *IndexedGraph[K, V]) IsEmpty() bool {
	return g.index.IsEmpty()
}

// Keys returns the distinct keys in comparator order.
func (g *IndexedGraph[K, V]) Keys() []K {
	return g.index.Keys()
}

// IndexCopy returns a copy of the index mapping every key to the positions of
// its entries, counted from the front of the insertion sequence. The copy
// does not observe later changes to the graph.
func (g *IndexedGraph[K, V]) IndexCopy() mapz.ReadOnlyMultimap[K, int] {
	copied := mapz.NewMultiMapWith[K, int](g.compare)
	g.index.Each(func(key K, positions []int) {
		for _, pos := range positions {
			copied.Add(key, g.live(pos))
		}
	})
	return copied.AsReadOnly()
}

// Clone returns an independent copy of the graph. Values are copied by
// assignment.
func (g *IndexedGraph[K, V]) Clone() *IndexedGraph[K, V] {
	keys := make([]K, len(g.keys))
	copy(keys, g.keys)
	values := make([]V, len(g.values))
	copy(values, g.values)

	return &IndexedGraph[K, V]{
		keys:   keys,
		values: values,
		offset:  g.offset,
		index:   g.index.Clone(),
		edges:   g.edges.Clone(),
		compare: g.compare,
	}
}

// Iter returns an iterator over every entry in insertion order.
func (g *IndexedGraph[K, V]) Iter() *Iter[K, V] {
	return &Iter[K, V]{
		graph:   g,
		front:   g.offset,
		back:    g.offset + len(g.keys),
		version: g.version,
	}
}

// All returns a sequence of every entry, front to back.
func (g *IndexedGraph[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := g.Iter()
		for {
			key, value, ok := it.Next()
			if !ok || !yield(key, value) {
				return
			}
		}
	}
}

// Backward returns a sequence of every entry, back to front.
func (g *IndexedGraph[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := g.Iter()
		for {
			key, value, ok := it.NextBack()
			if !ok || !yield(key, value) {
				return
			}
		}
	}
}

// live translates an absolute sequence number into an offset into the
// entry slices. A number outside of the live entries means the index has
// drifted from the entries.
func (g *IndexedGraph[K, V]) live(pos int) int {
	idx := pos - g.offset
	if idx < 0 || idx >= len(g.keys) {
		graphassert.MustPanic("position %d outside of live entries [%d, %d)", pos, g.offset, g.offset+len(g.keys))
	}
	return idx
}

// consistent reports whether the index partitions the live entries: every
// recorded position is live, points at an equal key, and appears exactly
// once.
func (g *IndexedGraph[K, V]) consistent() bool {
	if len(g.keys) != len(g.values) {
		return false
	}

	seen := make([]bool, len(g.keys))
	total := 0
	ok := true
	g.index.Each(func(key K, positions []int) {
		if len(positions) == 0 {
			ok = false
			return
		}
		for _, pos := range positions {
			idx := pos - g.offset
			if idx < 0 || idx >= len(g.keys) || seen[idx] || g.compare(g.keys[idx], key) != 0 {
				ok = false
				return
			}
			seen[idx] = true
			total++
		}
	})
	return ok && total == len(g.keys)
}

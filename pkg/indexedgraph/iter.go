package indexedgraph

import "github.com/authzed/indexedgraph/pkg/graphassert"

// Iter walks the entries of an IndexedGraph in insertion order. It can be
// driven from both ends; Next and NextBack consume the same window, and once
// they meet the iterator stays exhausted.
//
// The window is fixed when the iterator is created. Mutating the graph while
// an iterator is live is not supported.
type Iter[K comparable, V any] struct {
	graph *IndexedGraph[K, V]

	// front and back are absolute sequence numbers; [front, back) remains.
	front int
	back  int

	version uint64
}

// Len returns the exact number of entries remaining.
func (it *Iter[K, V]) Len() int {
	return it.back - it.front
}

// Next consumes the entry at the front of the remaining window.
func (it *Iter[K, V]) Next() (K, V, bool) {
	if it.front >= it.back {
		var key K
		var value V
		return key, value, false
	}

	key, value := it.at(it.front)
	it.front++
	return key, value, true
}

// NextBack consumes the entry at the back of the remaining window.
func (it *Iter[K, V]) NextBack() (K, V, bool) {
	if it.front >= it.back {
		var key K
		var value V
		return key, value, false
	}

	it.back--
	key, value := it.at(it.back)
	return key, value, true
}

// Last consumes the iterator and returns the graph's last inserted entry,
// regardless of how much of the window was already consumed.
func (it *Iter[K, V]) Last() (K, V, bool) {
	it.exhaust()
	return it.graph.LastKeyValue()
}

// Max consumes the iterator and returns the graph's last inserted entry.
// Entries are not compared; this is Last.
func (it *Iter[K, V]) Max() (K, V, bool) {
	return it.Last()
}

// Min consumes the iterator and returns the entry at the front of the
// remaining window. Entries are not compared.
func (it *Iter[K, V]) Min() (K, V, bool) {
	key, value, ok := it.Next()
	it.exhaust()
	return key, value, ok
}

func (it *Iter[K, V]) exhaust() {
	it.front = it.back
}

func (it *Iter[K, V]) at(pos int) (K, V) {
	graphassert.DebugAssertf(func() bool { return it.version == it.graph.version },
		"indexed graph mutated during iteration")

	idx := it.graph.live(pos)
	return it.graph.keys[idx], it.graph.values[idx]
}

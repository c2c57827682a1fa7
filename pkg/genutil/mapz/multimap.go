package mapz

import (
	"cmp"
	"slices"

	"github.com/emirpasic/gods/v2/maps/treemap"
	"github.com/emirpasic/gods/v2/utils"
)

// ReadOnlyMultimap is a read-only multimap.
type ReadOnlyMultimap[T comparable, Q any] interface {
	// Has returns true if the key is found in the map.
	Has(key T) bool

	// Get returns the values for the given key in the map and whether the key
	// existed.
	// If the key does not exist, an empty slice is returned.
	Get(key T) ([]Q, bool)

	// IsEmpty returns true if the map is currently empty.
	IsEmpty() bool

	// Len returns the length of the map, e.g. the number of *keys* present.
	Len() int

	// Keys returns the keys of the map, in comparator order.
	Keys() []T

	// Values returns all values in the map, grouped by key in comparator
	// order.
	Values() []Q
}

// bucket holds the values of a single key along with the key as it was first
// added. Later additions under an equal key never replace the stored key.
type bucket[T any, Q any] struct {
	key    T
	values []Q
}

// NewMultiMap initializes a new MultiMap ordering keys by their natural order.
func NewMultiMap[T cmp.Ordered, Q any]() *MultiMap[T, Q] {
	return NewMultiMapWith[T, Q](cmp.Compare[T])
}

// NewMultiMapWith initializes a new MultiMap ordering keys with the
// comparator, which returns a negative number, zero or a positive number as
// a sorts before, equal to or after b.
func NewMultiMapWith[T comparable, Q any](comparator func(a, b T) int) *MultiMap[T, Q] {
	return &MultiMap[T, Q]{
		items:      treemap.NewWith[T, *bucket[T, Q]](utils.Comparator[T](comparator)),
		comparator: comparator,
	}
}

// MultiMap represents a map that can contain 1 or more values for each key.
// Keys are kept sorted; values under a key keep the order they were added in.
type MultiMap[T comparable, Q any] struct {
	items      *treemap.Map[T, *bucket[T, Q]]
	comparator func(a, b T) int
}

// Clear clears all entries in the map.
func (mm *MultiMap[T, Q]) Clear() {
	mm.items.Clear()
}

// Add inserts the value into the map at the given key.
//
// If there exists an existing value, then this value is appended
// *without comparison*. Put another way, a value can be added twice, if this
// method is called twice for the same value.
func (mm *MultiMap[T, Q]) Add(key T, item Q) {
	if found, ok := mm.items.Get(key); ok {
		found.values = append(found.values, item)
		return
	}

	mm.items.Put(key, &bucket[T, Q]{key: key, values: []Q{item}})
}

// PopFront removes and returns the first value stored for the key. The key is
// removed from the map once it has no values left.
func (mm *MultiMap[T, Q]) PopFront(key T) (Q, bool) {
	found, ok := mm.items.Get(key)
	if !ok || len(found.values) == 0 {
		var zero Q
		return zero, false
	}

	item := found.values[0]
	var zero Q
	found.values[0] = zero
	found.values = found.values[1:]
	if len(found.values) == 0 {
		mm.items.Remove(key)
	}
	return item, true
}

// PopBack removes and returns the last value stored for the key. The key is
// removed from the map once it has no values left.
func (mm *MultiMap[T, Q]) PopBack(key T) (Q, bool) {
	found, ok := mm.items.Get(key)
	if !ok || len(found.values) == 0 {
		var zero Q
		return zero, false
	}

	last := len(found.values) - 1
	item := found.values[last]
	var zero Q
	found.values[last] = zero
	found.values = found.values[:last]
	if len(found.values) == 0 {
		mm.items.Remove(key)
	}
	return item, true
}

// Has returns true if the key is found in the map.
func (mm *MultiMap[T, Q]) Has(key T) bool {
	_, ok := mm.items.Get(key)
	return ok
}

// Get returns the values stored in the map for the provided key and whether
// the key existed.
//
// If the key does not exist, an empty slice is returned. The returned slice is
// shared with the map and must not be modified.
func (mm *MultiMap[T, Q]) Get(key T) ([]Q, bool) {
	found, ok := mm.items.Get(key)
	if !ok {
		return []Q{}, false
	}

	return found.values, true
}

// GetKey returns the key as it was first added to the map.
func (mm *MultiMap[T, Q]) GetKey(key T) (T, bool) {
	found, ok := mm.items.Get(key)
	if !ok {
		var zero T
		return zero, false
	}

	return found.key, true
}

// IsEmpty returns true if the map is currently empty.
func (mm *MultiMap[T, Q]) IsEmpty() bool { return mm.items.Empty() }

// Len returns the length of the map, e.g. the number of *keys* present.
func (mm *MultiMap[T, Q]) Len() int { return mm.items.Size() }

// Keys returns the keys of the map, in comparator order.
func (mm *MultiMap[T, Q]) Keys() []T { return mm.items.Keys() }

// Values returns all values in the map.
func (mm *MultiMap[T, Q]) Values() []Q {
	values := make([]Q, 0, mm.items.Size()*2)
	mm.Each(func(_ T, items []Q) {
		values = append(values, items...)
	})
	return values
}

// Each calls fn for every key in comparator order along with its values. The
// values slice must not be modified or retained.
func (mm *MultiMap[T, Q]) Each(fn func(key T, values []Q)) {
	it := mm.items.Iterator()
	for it.Next() {
		b := it.Value()
		fn(b.key, b.values)
	}
}

// Clone returns a deep clone of the map. Value slices are copied, so neither
// map observes later changes to the other.
func (mm *MultiMap[T, Q]) Clone() *MultiMap[T, Q] {
	cloned := NewMultiMapWith[T, Q](mm.comparator)
	mm.Each(func(key T, values []Q) {
		cloned.items.Put(key, &bucket[T, Q]{key: key, values: slices.Clone(values)})
	})
	return cloned
}

// AsReadOnly returns a read-only *copy* of the mulitmap.
func (mm *MultiMap[T, Q]) AsReadOnly() ReadOnlyMultimap[T, Q] {
	return readOnlyMultimap[T, Q]{mm.Clone()}
}

type readOnlyMultimap[T comparable, Q any] struct {
	mm *MultiMap[T, Q]
}

// Has returns true if the key is found in the map.
func (ro readOnlyMultimap[T, Q]) Has(key T) bool { return ro.mm.Has(key) }

// Get returns the values for the given key in the map and whether the key existed. If the key
// does not exist, an empty slice is returned.
func (ro readOnlyMultimap[T, Q]) Get(key T) ([]Q, bool) {
	found, ok := ro.mm.Get(key)
	return slices.Clone(found), ok
}

// IsEmpty returns true if the map is currently empty.
func (ro readOnlyMultimap[T, Q]) IsEmpty() bool { return ro.mm.IsEmpty() }

// Len returns the length of the map, e.g. the number of *keys* present.
func (ro readOnlyMultimap[T, Q]) Len() int { return ro.mm.Len() }

// Keys returns the keys of the map.
func (ro readOnlyMultimap[T, Q]) Keys() []T { return ro.mm.Keys() }

// Values returns all values in the map.
func (ro readOnlyMultimap[T, Q]) Values() []Q { return ro.mm.Values() }

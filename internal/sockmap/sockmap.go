// File: internal/sockmap/sockmap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Ordered descriptor-keyed map backing a port's socket registry.
// Not safe for concurrent use; the owning port serializes access.

package sockmap

import (
	"errors"

	"github.com/google/btree"
)

// degree of the underlying B-tree; small nodes keep Min cheap.
const degree = 16

// ErrDuplicateKey is returned by Insert when the key is already present.
var ErrDuplicateKey = errors.New("sockmap: duplicate key")

type entry[K ~uintptr, V any] struct {
	key K
	val V
}

// Map is an ordered map from descriptor to value.
type Map[K ~uintptr, V any] struct {
	tree *btree.BTreeG[entry[K, V]]
}

// New returns an empty map.
func New[K ~uintptr, V any]() *Map[K, V] {
	return &Map[K, V]{
		tree: btree.NewG[entry[K, V]](degree, func(a, b entry[K, V]) bool { return a.key < b.key }),
	}
}

// Insert adds key. It fails with ErrDuplicateKey, leaving the map unchanged,
// if key is present.
func (m *Map[K, V]) Insert(key K, val V) error {
	probe := entry[K, V]{key: key}
	if m.tree.Has(probe) {
		return ErrDuplicateKey
	}
	m.tree.ReplaceOrInsert(entry[K, V]{key: key, val: val})
	return nil
}

// Delete removes key, reporting whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	_, ok := m.tree.Delete(entry[K, V]{key: key})
	return ok
}

// Get looks key up in O(log n).
func (m *Map[K, V]) Get(key K) (V, bool) {
	e, ok := m.tree.Get(entry[K, V]{key: key})
	return e.val, ok
}

// Min returns the smallest key and its value.
func (m *Map[K, V]) Min() (K, V, bool) {
	e, ok := m.tree.Min()
	return e.key, e.val, ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.tree.Len()
}

// Ascend calls fn for each entry in key order until fn returns false.
func (m *Map[K, V]) Ascend(fn func(key K, val V) bool) {
	m.tree.Ascend(func(e entry[K, V]) bool {
		return fn(e.key, e.val)
	})
}

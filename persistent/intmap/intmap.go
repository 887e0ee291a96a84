package intmap

/*
Remarks:
--------

- Keys are stored with their sign bit flipped. This maps int ordering onto
  unsigned ordering, so that an in-order walk of the big-endian trie visits
  keys in ascending int order.

- 'cow' stands for copy-on-write, as in package btree. A new incarnation of
  a map always is reflected by a new map.root.

*/

import (
	"fmt"
	"math/bits"
)

// Map is a persistent map from int keys to values of type V. The zero value
// is an empty map, ready to use:
//
//	m := intmap.Map[string]{}.With(1, "one")
type Map[V any] struct {
	root *tnode[V]
	size uint
}

// tnode is a trie node: a leaf (bit == 0) holding one key/value pair, or a
// branch discriminating keys at bit position `bit`, with all keys sharing
// the prefix bits above `bit`.
type tnode[V any] struct {
	prefix uint64
	bit    uint64
	value  V
	left   *tnode[V]
	right  *tnode[V]
}

const signbit = uint64(1) << 63

// ukey flips the sign bit, making unsigned trie order agree with int order.
func ukey(key int) uint64 {
	return uint64(key) ^ signbit
}

func ikey(u uint64) int {
	return int(u ^ signbit)
}

func (n *tnode[V]) isLeaf() bool {
	return n.bit == 0
}

func (n *tnode[V]) String() string {
	if n == nil {
		return "⟨⟩"
	}
	if n.isLeaf() {
		return fmt.Sprintf("⟨%d⟩", ikey(n.prefix))
	}
	return fmt.Sprintf("⟨…bit %d⟩", bits.Len64(n.bit)-1)
}

// --- API -------------------------------------------------------------------

// Size returns the number of key/value associations in the map.
func (m Map[V]) Size() int {
	return int(m.size)
}

// IsEmpty is true if the map holds no associations.
func (m Map[V]) IsEmpty() bool {
	return m.root == nil
}

// Find locates a key in the map, if present, and returns the value associated
// with it. If `key` is not found, the zero value for type V will be returned,
// together with found=false.
func (m Map[V]) Find(key int) (V, bool) {
	u := ukey(key)
	n := m.root
	for n != nil && !n.isLeaf() {
		if u&n.bit == 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	if n != nil && n.prefix == u {
		return n.value, true
	}
	var none V
	return none, false
}

// With returns a copy of the map with key inserted, associated with `value`.
// An entry already present for key will be replaced (in a new incarnation of
// the map, nevertheless).
func (m Map[V]) With(key int, value V) Map[V] {
	u := ukey(key)
	newRoot, grown := insert(m.root, u, value)
	tracer().Debugf("intmap.With(%d): new root = %s", key, newRoot)
	newSize := m.size
	if grown {
		newSize++
	}
	return Map[V]{root: newRoot, size: newSize}
}

// WithDeleted returns a copy of the map with key deleted, if present.
// If key is not found, the map is returned unchanged.
func (m Map[V]) WithDeleted(key int) Map[V] {
	u := ukey(key)
	newRoot, shrunk := remove(m.root, u)
	if !shrunk {
		return m // no need for modification
	}
	tracer().Debugf("intmap.WithDeleted(%d): new root = %s", key, newRoot)
	return Map[V]{root: newRoot, size: m.size - 1}
}

// --- Trie internals --------------------------------------------------------

// maskAbove returns a mask of all bits strictly above the branching bit.
func maskAbove(bit uint64) uint64 {
	return ^(bit | (bit - 1))
}

func matchPrefix(u, prefix, bit uint64) bool {
	return u&maskAbove(bit) == prefix
}

// join combines two tries with differing prefixes p0 and p1 under a new
// branch node at their highest differing bit.
func join[V any](p0 uint64, t0 *tnode[V], p1 uint64, t1 *tnode[V]) *tnode[V] {
	assertThat(p0 != p1, "attempt to join tries with equal prefixes")
	bit := uint64(1) << (bits.Len64(p0^p1) - 1)
	branch := &tnode[V]{prefix: p0 & maskAbove(bit), bit: bit}
	if p0&bit == 0 {
		branch.left, branch.right = t0, t1
	} else {
		branch.left, branch.right = t1, t0
	}
	return branch
}

func insert[V any](n *tnode[V], u uint64, value V) (*tnode[V], bool) {
	if n == nil {
		return &tnode[V]{prefix: u, value: value}, true
	}
	if n.isLeaf() {
		if n.prefix == u {
			return &tnode[V]{prefix: u, value: value}, false // replace
		}
		return join(u, &tnode[V]{prefix: u, value: value}, n.prefix, n), true
	}
	if !matchPrefix(u, n.prefix, n.bit) {
		return join(u, &tnode[V]{prefix: u, value: value}, n.prefix, n), true
	}
	cow := *n // copy-on-write along the spine
	var grown bool
	if u&n.bit == 0 {
		cow.left, grown = insert(n.left, u, value)
	} else {
		cow.right, grown = insert(n.right, u, value)
	}
	return &cow, grown
}

func remove[V any](n *tnode[V], u uint64) (*tnode[V], bool) {
	if n == nil {
		return nil, false
	}
	if n.isLeaf() {
		if n.prefix == u {
			return nil, true
		}
		return n, false
	}
	if !matchPrefix(u, n.prefix, n.bit) {
		return n, false
	}
	if u&n.bit == 0 {
		newLeft, shrunk := remove(n.left, u)
		if !shrunk {
			return n, false
		}
		if newLeft == nil { // branch collapses
			return n.right, true
		}
		cow := *n
		cow.left = newLeft
		return &cow, true
	}
	newRight, shrunk := remove(n.right, u)
	if !shrunk {
		return n, false
	}
	if newRight == nil { // branch collapses
		return n.left, true
	}
	cow := *n
	cow.right = newRight
	return &cow, true
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("intmap: "+msg, msgargs...)
		panic(msg)
	}
}

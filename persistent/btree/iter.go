package btree

import (
	"cmp"
	"iter"
)

// --- In-order traversal ----------------------------------------------------

// walk visits items in ascending key order; yield returning false stops the
// traversal. Reports whether the traversal ran to completion.
func (node *xnode[K, V]) walk(yield func(K, V) bool) bool {
	if node == nil {
		return true
	}
	for i, item := range node.items {
		if !node.isLeaf() {
			if !node.children[i].walk(yield) {
				return false
			}
		}
		if !yield(item.key, item.value) {
			return false
		}
	}
	if !node.isLeaf() {
		return node.children[len(node.items)].walk(yield)
	}
	return true
}

// walkBack is walk in descending key order.
func (node *xnode[K, V]) walkBack(yield func(K, V) bool) bool {
	if node == nil {
		return true
	}
	if !node.isLeaf() {
		if !node.children[len(node.items)].walkBack(yield) {
			return false
		}
	}
	for i := len(node.items) - 1; i >= 0; i-- {
		if !yield(node.items[i].key, node.items[i].value) {
			return false
		}
		if !node.isLeaf() {
			if !node.children[i].walkBack(yield) {
				return false
			}
		}
	}
	return true
}

// Each calls f for every key/value association, in ascending key order.
func (tree Tree[K, V]) Each(f func(K, V)) {
	tree.root.walk(func(key K, value V) bool {
		f(key, value)
		return true
	})
}

// All returns an iterator over all associations, in ascending key order.
func (tree Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		tree.root.walk(yield)
	}
}

// Fold folds f over all associations of a tree in ascending key order,
// threading an accumulator, starting with zero.
func Fold[K cmp.Ordered, V, A any](f func(A, K, V) A, zero A, tree Tree[K, V]) A {
	acc := zero
	tree.root.walk(func(key K, value V) bool {
		acc = f(acc, key, value)
		return true
	})
	return acc
}

// FoldBack folds f over all associations of a tree in descending key order,
// threading an accumulator, starting with zero.
func FoldBack[K cmp.Ordered, V, A any](f func(K, V, A) A, tree Tree[K, V], zero A) A {
	acc := zero
	tree.root.walkBack(func(key K, value V) bool {
		acc = f(key, value, acc)
		return true
	})
	return acc
}

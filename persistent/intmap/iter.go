package intmap

import "iter"

// walk visits associations in ascending key order; yield returning false
// stops the traversal.
func (n *tnode[V]) walk(yield func(int, V) bool) bool {
	if n == nil {
		return true
	}
	if n.isLeaf() {
		return yield(ikey(n.prefix), n.value)
	}
	return n.left.walk(yield) && n.right.walk(yield)
}

func (n *tnode[V]) walkBack(yield func(int, V) bool) bool {
	if n == nil {
		return true
	}
	if n.isLeaf() {
		return yield(ikey(n.prefix), n.value)
	}
	return n.right.walkBack(yield) && n.left.walkBack(yield)
}

// Each calls f for every key/value association, in ascending key order.
func (m Map[V]) Each(f func(int, V)) {
	m.root.walk(func(key int, value V) bool {
		f(key, value)
		return true
	})
}

// All returns an iterator over all associations, in ascending key order.
func (m Map[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		m.root.walk(yield)
	}
}

// Fold folds f over all associations of a map in ascending key order,
// threading an accumulator, starting with zero.
func Fold[V, A any](f func(A, int, V) A, zero A, m Map[V]) A {
	acc := zero
	m.root.walk(func(key int, value V) bool {
		acc = f(acc, key, value)
		return true
	})
	return acc
}

// FoldBack folds f over all associations of a map in descending key order,
// threading an accumulator, starting with zero.
func FoldBack[V, A any](f func(int, V, A) A, m Map[V], zero A) A {
	acc := zero
	m.root.walkBack(func(key int, value V) bool {
		acc = f(key, value, acc)
		return true
	})
	return acc
}

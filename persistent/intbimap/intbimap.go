package intbimap

import (
	"cmp"
	"errors"
	"fmt"
	"iter"

	"github.com/npillmayer/fpx"
	"github.com/npillmayer/fpx/maybe"
	"github.com/npillmayer/fpx/persistent/btree"
	"github.com/npillmayer/fpx/persistent/intmap"
)

// ErrKeyNotFound is returned by Find and FindBack for absent keys.
var ErrKeyNotFound = errors.New("key not found in intbimap")

// IntBimap is a persistent bijective association between int keys and keys
// of type T. The zero value is an empty IntBimap, ready to use. Every
// mutating operation returns a new IntBimap; the receiver stays untouched.
type IntBimap[T cmp.Ordered] struct {
	forward  intmap.Map[T]
	backward btree.Tree[T, int]
}

// Empty returns an empty IntBimap.
func Empty[T cmp.Ordered]() IntBimap[T] {
	return IntBimap[T]{}
}

// Singleton returns an IntBimap holding exactly the pair (k, v).
func Singleton[T cmp.Ordered](k int, v T) IntBimap[T] {
	return IntBimap[T]{}.Add(k, v)
}

// Count returns the number of associated pairs.
func (bm IntBimap[T]) Count() int {
	return bm.forward.Size()
}

// IsEmpty is true if the IntBimap holds no pairs.
func (bm IntBimap[T]) IsEmpty() bool {
	return bm.forward.IsEmpty()
}

// --- Lookup ----------------------------------------------------------------

// ContainsKey tests whether k is bound on the forward side.
func (bm IntBimap[T]) ContainsKey(k int) bool {
	_, found := bm.forward.Find(k)
	return found
}

// ContainsValue tests whether v is bound on the backward side.
func (bm IntBimap[T]) ContainsValue(v T) bool {
	_, found := bm.backward.Find(v)
	return found
}

// TryFind returns the partner of k, if k is bound.
func (bm IntBimap[T]) TryFind(k int) maybe.Maybe[T] {
	return maybe.FromPair(bm.forward.Find(k))
}

// TryFindBack returns the partner of v, if v is bound.
func (bm IntBimap[T]) TryFindBack(v T) maybe.Maybe[int] {
	return maybe.FromPair(bm.backward.Find(v))
}

// Find returns the partner of k, or ErrKeyNotFound if k is unbound.
func (bm IntBimap[T]) Find(k int) (T, error) {
	if v, found := bm.forward.Find(k); found {
		return v, nil
	}
	var none T
	return none, fmt.Errorf("intbimap.Find(%d): %w", k, ErrKeyNotFound)
}

// FindBack returns the partner of v, or ErrKeyNotFound if v is unbound.
func (bm IntBimap[T]) FindBack(v T) (int, error) {
	if k, found := bm.backward.Find(v); found {
		return k, nil
	}
	return 0, fmt.Errorf("intbimap.FindBack(%v): %w", v, ErrKeyNotFound)
}

// Paired tests whether the pair (k, v) is associated.
func (bm IntBimap[T]) Paired(k int, v T) bool {
	w, found := bm.forward.Find(k)
	return found && w == v
}

// --- Mutators --------------------------------------------------------------

// Add returns an IntBimap with the pair (k, v) associated. Any existing
// association of k to some other partner, and of v to some other partner,
// is removed first.
func (bm IntBimap[T]) Add(k int, v T) IntBimap[T] {
	cow := bm.Remove(k).RemoveBack(v)
	tracer().Debugf("intbimap.Add(%d, %v)", k, v)
	return IntBimap[T]{
		forward:  cow.forward.With(k, v),
		backward: cow.backward.With(v, k),
	}
}

// TryAdd returns an IntBimap with the pair (k, v) associated, but only if
// neither k nor v is currently bound; otherwise the receiver is returned
// unchanged.
func (bm IntBimap[T]) TryAdd(k int, v T) IntBimap[T] {
	if bm.ContainsKey(k) || bm.ContainsValue(v) {
		return bm
	}
	return IntBimap[T]{
		forward:  bm.forward.With(k, v),
		backward: bm.backward.With(v, k),
	}
}

// Remove returns an IntBimap with the pair containing k removed, if k is
// bound; otherwise the receiver is returned unchanged.
func (bm IntBimap[T]) Remove(k int) IntBimap[T] {
	v, found := bm.forward.Find(k)
	if !found {
		return bm
	}
	return IntBimap[T]{
		forward:  bm.forward.WithDeleted(k),
		backward: bm.backward.WithDeleted(v),
	}
}

// RemoveBack returns an IntBimap with the pair containing v removed, if v is
// bound; otherwise the receiver is returned unchanged.
func (bm IntBimap[T]) RemoveBack(v T) IntBimap[T] {
	k, found := bm.backward.Find(v)
	if !found {
		return bm
	}
	return IntBimap[T]{
		forward:  bm.forward.WithDeleted(k),
		backward: bm.backward.WithDeleted(v),
	}
}

// --- Traversal -------------------------------------------------------------

// Iter calls f for every pair, in ascending int key order.
func (bm IntBimap[T]) Iter(f func(int, T)) {
	bm.forward.Each(f)
}

// All returns an iterator over all pairs, in ascending int key order.
func (bm IntBimap[T]) All() iter.Seq2[int, T] {
	return bm.forward.All()
}

// Fold folds f over all pairs of an IntBimap in ascending key order,
// threading an accumulator, starting with zero.
func Fold[T cmp.Ordered, A any](f func(A, int, T) A, zero A, bm IntBimap[T]) A {
	return intmap.Fold(f, zero, bm.forward)
}

// FoldBack folds f over all pairs of an IntBimap in descending key order,
// threading an accumulator, starting with zero.
func FoldBack[T cmp.Ordered, A any](f func(int, T, A) A, bm IntBimap[T], zero A) A {
	return intmap.FoldBack(f, bm.forward, zero)
}

// Filter returns an IntBimap retaining only the pairs satisfying pred.
func (bm IntBimap[T]) Filter(pred func(int, T) bool) IntBimap[T] {
	cow := bm
	bm.Iter(func(k int, v T) {
		if !pred(k, v) {
			cow = cow.Remove(k)
		}
	})
	return cow
}

// Partition splits an IntBimap into the pairs satisfying pred and those
// failing it, in a single pass.
func (bm IntBimap[T]) Partition(pred func(int, T) bool) (IntBimap[T], IntBimap[T]) {
	pass, fail := bm, IntBimap[T]{}
	bm.Iter(func(k int, v T) {
		if !pred(k, v) {
			pass = pass.Remove(k)
			fail = fail.Add(k, v)
		}
	})
	return pass, fail
}

// --- Bulk conversion -------------------------------------------------------

// OfSlice builds an IntBimap from pairs by repeated Add: a later pair wins
// over an earlier one sharing a key on either side.
func OfSlice[T cmp.Ordered](pairs []fpx.Pair[int, T]) IntBimap[T] {
	bm := IntBimap[T]{}
	for _, p := range pairs {
		bm = bm.Add(p.Left, p.Right)
	}
	return bm
}

// ToSlice returns all pairs of an IntBimap, in ascending key order.
func (bm IntBimap[T]) ToSlice() []fpx.Pair[int, T] {
	pairs := make([]fpx.Pair[int, T], 0, bm.Count())
	bm.Iter(func(k int, v T) {
		pairs = append(pairs, fpx.P(k, v))
	})
	return pairs
}

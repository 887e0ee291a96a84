package bimap

import (
	"cmp"
	"errors"
	"fmt"
	"iter"

	"github.com/npillmayer/fpx"
	"github.com/npillmayer/fpx/maybe"
	"github.com/npillmayer/fpx/persistent/btree"
)

// ErrKeyNotFound is returned by Find and FindBack for absent keys.
var ErrKeyNotFound = errors.New("key not found in bimap")

// Bimap is a persistent bijective association between keys of type K1 and
// keys of type K2. The zero value is an empty Bimap, ready to use:
//
//	bm := bimap.Bimap[int, string]{}.Add(1, "one")
//
// Every mutating operation returns a new Bimap; the receiver stays untouched.
type Bimap[K1, K2 cmp.Ordered] struct {
	forward  btree.Tree[K1, K2]
	backward btree.Tree[K2, K1]
}

// Empty returns an empty Bimap.
func Empty[K1, K2 cmp.Ordered]() Bimap[K1, K2] {
	return Bimap[K1, K2]{}
}

// Singleton returns a Bimap holding exactly the pair (k1, k2).
func Singleton[K1, K2 cmp.Ordered](k1 K1, k2 K2) Bimap[K1, K2] {
	return Bimap[K1, K2]{}.Add(k1, k2)
}

// Count returns the number of associated pairs.
func (bm Bimap[K1, K2]) Count() int {
	return bm.forward.Size()
}

// IsEmpty is true if the Bimap holds no pairs.
func (bm Bimap[K1, K2]) IsEmpty() bool {
	return bm.forward.IsEmpty()
}

// --- Lookup ----------------------------------------------------------------

// ContainsKey tests whether k1 is bound on the forward side.
func (bm Bimap[K1, K2]) ContainsKey(k1 K1) bool {
	_, found := bm.forward.Find(k1)
	return found
}

// ContainsValue tests whether k2 is bound on the backward side.
func (bm Bimap[K1, K2]) ContainsValue(k2 K2) bool {
	_, found := bm.backward.Find(k2)
	return found
}

// TryFind returns the partner of k1, if k1 is bound.
func (bm Bimap[K1, K2]) TryFind(k1 K1) maybe.Maybe[K2] {
	return maybe.FromPair(bm.forward.Find(k1))
}

// TryFindBack returns the partner of k2, if k2 is bound.
func (bm Bimap[K1, K2]) TryFindBack(k2 K2) maybe.Maybe[K1] {
	return maybe.FromPair(bm.backward.Find(k2))
}

// Find returns the partner of k1, or ErrKeyNotFound if k1 is unbound.
func (bm Bimap[K1, K2]) Find(k1 K1) (K2, error) {
	if k2, found := bm.forward.Find(k1); found {
		return k2, nil
	}
	var none K2
	return none, fmt.Errorf("bimap.Find(%v): %w", k1, ErrKeyNotFound)
}

// FindBack returns the partner of k2, or ErrKeyNotFound if k2 is unbound.
func (bm Bimap[K1, K2]) FindBack(k2 K2) (K1, error) {
	if k1, found := bm.backward.Find(k2); found {
		return k1, nil
	}
	var none K1
	return none, fmt.Errorf("bimap.FindBack(%v): %w", k2, ErrKeyNotFound)
}

// Paired tests whether the pair (k1, k2) is associated. Checking the forward
// map suffices: the bijection invariant guarantees backward agreement.
func (bm Bimap[K1, K2]) Paired(k1 K1, k2 K2) bool {
	k, found := bm.forward.Find(k1)
	return found && k == k2
}

// --- Mutators --------------------------------------------------------------

// Add returns a Bimap with the pair (k1, k2) associated. Any existing
// association of k1 to some other partner, and of k2 to some other partner,
// is removed first: an Add never leaves a dangling half-pair behind, even
// when the new pair conflicts with two pre-existing pairs.
func (bm Bimap[K1, K2]) Add(k1 K1, k2 K2) Bimap[K1, K2] {
	cow := bm.Remove(k1).RemoveBack(k2)
	tracer().Debugf("bimap.Add(%v, %v)", k1, k2)
	return Bimap[K1, K2]{
		forward:  cow.forward.With(k1, k2),
		backward: cow.backward.With(k2, k1),
	}
}

// TryAdd returns a Bimap with the pair (k1, k2) associated, but only if
// neither k1 nor k2 is currently bound. Otherwise, including the case where
// both are already bound to each other, the receiver is returned unchanged.
func (bm Bimap[K1, K2]) TryAdd(k1 K1, k2 K2) Bimap[K1, K2] {
	if bm.ContainsKey(k1) || bm.ContainsValue(k2) {
		return bm
	}
	return Bimap[K1, K2]{
		forward:  bm.forward.With(k1, k2),
		backward: bm.backward.With(k2, k1),
	}
}

// Remove returns a Bimap with the pair containing k1 removed, if k1 is
// bound; otherwise the receiver is returned unchanged.
func (bm Bimap[K1, K2]) Remove(k1 K1) Bimap[K1, K2] {
	k2, found := bm.forward.Find(k1)
	if !found {
		return bm
	}
	return Bimap[K1, K2]{
		forward:  bm.forward.WithDeleted(k1),
		backward: bm.backward.WithDeleted(k2),
	}
}

// RemoveBack returns a Bimap with the pair containing k2 removed, if k2 is
// bound; otherwise the receiver is returned unchanged.
func (bm Bimap[K1, K2]) RemoveBack(k2 K2) Bimap[K1, K2] {
	k1, found := bm.backward.Find(k2)
	if !found {
		return bm
	}
	return Bimap[K1, K2]{
		forward:  bm.forward.WithDeleted(k1),
		backward: bm.backward.WithDeleted(k2),
	}
}

// --- Traversal -------------------------------------------------------------

// Iter calls f for every pair, in ascending K1 order.
func (bm Bimap[K1, K2]) Iter(f func(K1, K2)) {
	bm.forward.Each(f)
}

// All returns an iterator over all pairs, in ascending K1 order.
func (bm Bimap[K1, K2]) All() iter.Seq2[K1, K2] {
	return bm.forward.All()
}

// Fold folds f over all pairs of a Bimap in ascending K1 order, threading an
// accumulator, starting with zero.
func Fold[K1, K2 cmp.Ordered, A any](f func(A, K1, K2) A, zero A, bm Bimap[K1, K2]) A {
	return btree.Fold(f, zero, bm.forward)
}

// FoldBack folds f over all pairs of a Bimap in descending K1 order,
// threading an accumulator, starting with zero.
func FoldBack[K1, K2 cmp.Ordered, A any](f func(K1, K2, A) A, bm Bimap[K1, K2], zero A) A {
	return btree.FoldBack(f, bm.forward, zero)
}

// Filter returns a Bimap retaining only the pairs satisfying pred. The
// surviving structure is shared with the receiver: filtering removes the
// failing pairs rather than re-inserting the passing ones.
func (bm Bimap[K1, K2]) Filter(pred func(K1, K2) bool) Bimap[K1, K2] {
	cow := bm
	bm.Iter(func(k1 K1, k2 K2) {
		if !pred(k1, k2) {
			cow = cow.Remove(k1)
		}
	})
	return cow
}

// Partition splits a Bimap into the pairs satisfying pred and those failing
// it, in a single pass: survivors stay in a shrinking copy of the receiver,
// rejected pairs accumulate into a second Bimap by insertion.
func (bm Bimap[K1, K2]) Partition(pred func(K1, K2) bool) (Bimap[K1, K2], Bimap[K1, K2]) {
	pass, fail := bm, Bimap[K1, K2]{}
	bm.Iter(func(k1 K1, k2 K2) {
		if !pred(k1, k2) {
			pass = pass.Remove(k1)
			fail = fail.Add(k1, k2)
		}
	})
	return pass, fail
}

// --- Bulk conversion -------------------------------------------------------

// OfSlice builds a Bimap from pairs by repeated Add: a later pair wins over
// an earlier one sharing a key on either side.
func OfSlice[K1, K2 cmp.Ordered](pairs []fpx.Pair[K1, K2]) Bimap[K1, K2] {
	bm := Bimap[K1, K2]{}
	for _, p := range pairs {
		bm = bm.Add(p.Left, p.Right)
	}
	return bm
}

// ToSlice returns all pairs of a Bimap, in ascending K1 order.
func (bm Bimap[K1, K2]) ToSlice() []fpx.Pair[K1, K2] {
	pairs := make([]fpx.Pair[K1, K2], 0, bm.Count())
	bm.Iter(func(k1 K1, k2 K2) {
		pairs = append(pairs, fpx.P(k1, k2))
	})
	return pairs
}

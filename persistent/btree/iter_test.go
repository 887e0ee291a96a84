package btree_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/fpx/persistent/btree"
)

func TestTreeFold(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fpx.btree")
	defer teardown()
	//
	tree := btree.Tree[int, int]{}
	for _, k := range []int{5, 2, 9, 1, 7} {
		tree = tree.With(k, k*10)
	}
	keys := btree.Fold(func(acc []int, k, v int) []int {
		return append(acc, k)
	}, nil, tree)
	expect := []int{1, 2, 5, 7, 9}
	if len(keys) != len(expect) {
		t.Fatalf("expected fold to visit %d keys, visited %d", len(expect), len(keys))
	}
	for i, k := range expect {
		if keys[i] != k {
			t.Errorf("expected key %d at position %d, is %d", k, i, keys[i])
		}
	}
}

func TestTreeFoldBack(t *testing.T) {
	tree := btree.Tree[int, string]{}.With(1, "a").With(2, "b").With(3, "c")
	s := btree.FoldBack(func(k int, v string, acc string) string {
		return acc + v
	}, tree, "")
	if s != "cba" {
		t.Errorf("expected foldBack to concatenate cba, is %q", s)
	}
}

func TestTreeAll(t *testing.T) {
	tree := btree.Tree[int, int]{}.With(1, 10).With(2, 20).With(3, 30)
	count := 0
	for k, v := range tree.All() {
		if v != k*10 {
			t.Errorf("expected value for %d to be %d, is %d", k, k*10, v)
		}
		count++
		if count == 2 { // early exit must be honored
			break
		}
	}
	if count != 2 {
		t.Errorf("expected iteration to stop after 2 items, did %d", count)
	}
}

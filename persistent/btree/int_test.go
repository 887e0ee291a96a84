package btree

import "testing"

// test internals

func TestInternalCeiling(t *testing.T) {
	c := []struct {
		n    int
		ceil int
	}{
		{0, 0},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 6},
		{7, 8},
	}
	for i, x := range c {
		xx := ceiling(x.n)
		if xx != x.ceil {
			t.Errorf("%d: expected ceiling(%d) to be %d, is %d", i, x.n, x.ceil, xx)
		}
	}
}

func TestInternalFindInNode(t *testing.T) {
	node := &xnode[string, int]{}
	for _, k := range []string{"1", "2", "3", "4", "5", "6", "8", "9"} {
		node.items = append(node.items, xitem[string, int]{key: k})
	}
	found, at := node.findSlot("8")
	if !found || at != 6 {
		t.Logf("found = %v, at = %d", found, at)
		t.Error("1: expected findSlot to find 8 at position 6, didn't")
	}
	found, at = node.findSlot("7")
	if found || at != 6 {
		t.Logf("found = %v, at = %d", found, at)
		t.Error("2: expected findSlot to find empty slot for 7 at position 6, didn't")
	}
	node = &xnode[string, int]{}
	found, at = node.findSlot("7")
	if found || at != 0 {
		t.Logf("found = %v, at = %d", found, at)
		t.Error("3: expected empty.findSlot to find empty slot for 7 at position 0, didn't")
	}
}

func TestInternalInsertItem(t *testing.T) {
	node := xnode[int, int]{}
	for _, k := range []int{1, 2, 4, 5} {
		node.items = append(node.items, xitem[int, int]{key: k})
	}
	cow := node.withInsertedItem(xitem[int, int]{key: 3}, 2)
	if len(cow.items) != 5 || cow.items[2].key != 3 || cow.items[4].key != 5 {
		t.Logf("cow = %s", &cow)
		t.Error("expected inserted item 3 at position 2, shifting the rest")
	}
	if len(node.items) != 4 {
		t.Error("expected original node to be unchanged, isn't")
	}
}

func TestInternalCutItems(t *testing.T) {
	node := xnode[int, int]{}
	for _, k := range []int{1, 2, 3} {
		node.items = append(node.items, xitem[int, int]{key: k})
	}
	cow, item, _ := node.withCutRight()
	if item.key != 3 || len(cow.items) != 2 {
		t.Errorf("expected to cut item 3, leaving 2 items, got %d | %d", item.key, len(cow.items))
	}
	cow, item, _ = node.withCutLeft()
	if item.key != 1 || len(cow.items) != 2 {
		t.Errorf("expected to cut item 1, leaving 2 items, got %d | %d", item.key, len(cow.items))
	}
}

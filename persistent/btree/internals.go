package btree

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
)

// --- Items and nodes -------------------------------------------------------

type xitem[K cmp.Ordered, V any] struct {
	key   K
	value V
}

// xnode is a node of a B-tree. Leafs have no children; inner nodes always
// hold len(items)+1 child links.
type xnode[K cmp.Ordered, V any] struct {
	items    []xitem[K, V]
	children []*xnode[K, V]
}

func (node *xnode[K, V]) isLeaf() bool {
	return len(node.children) == 0
}

func (node *xnode[K, V]) overfull(highWaterMark uint) bool {
	return uint(len(node.items)) > highWaterMark
}

func (node *xnode[K, V]) underfull(lowWaterMark uint) bool {
	return uint(len(node.items)) < lowWaterMark
}

func (node *xnode[K, V]) String() string {
	if node == nil {
		return "⟨⟩"
	}
	var sb strings.Builder
	sb.WriteRune('⟨')
	for i, item := range node.items {
		if i > 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(fmt.Sprintf("%v", item.key))
	}
	sb.WriteRune('⟩')
	return sb.String()
}

func (node xnode[K, V]) clone() xnode[K, V] {
	return node.cloneWithCapacity(0)
}

// cloneWithCapacity clones a node, reserving capacity for cap items (and for
// cap+1 children in case of an inner node).
func (node xnode[K, V]) cloneWithCapacity(cap int) xnode[K, V] {
	cow := xnode[K, V]{}
	cap = ceiling(max(cap, len(node.items)))
	cow.items = make([]xitem[K, V], len(node.items), cap)
	copy(cow.items, node.items)
	if !node.isLeaf() {
		cow.children = make([]*xnode[K, V], len(node.children), cap+1)
		copy(cow.children, node.children)
	}
	return cow
}

// slice cuts out a sub-node holding items[from:to]; to = -1 means up to the end.
// Child links travel with their items.
func (node xnode[K, V]) slice(from, to int) xnode[K, V] {
	if to < 0 {
		to = len(node.items)
	}
	cow := xnode[K, V]{items: make([]xitem[K, V], to-from)}
	copy(cow.items, node.items[from:to])
	if !node.isLeaf() {
		cow.children = make([]*xnode[K, V], to-from+1)
		copy(cow.children, node.children[from:to+1])
	}
	return cow
}

// asNonLeaf equips a leaf with an (all-nil) children slice. No-op for inner nodes.
func (node xnode[K, V]) asNonLeaf() xnode[K, V] {
	if !node.isLeaf() {
		return node
	}
	node.children = make([]*xnode[K, V], len(node.items)+1)
	return node
}

func (node *xnode[K, V]) findSlot(key K) (bool, int) {
	items, itemcnt := node.items, len(node.items)
	k := key
	slotinx := sort.Search(itemcnt, func(i int) bool {
		return items[i].key >= k // sort.Search will find the smallest i for which this is true
	})
	tracer().Debugf("slot index ∈ %v = %d", items, slotinx)
	return slotinx < itemcnt && k == items[slotinx].key, slotinx
}

// --- Copy-on-write node operations -----------------------------------------

func (node xnode[K, V]) withReplacedValue(item xitem[K, V], at int) xnode[K, V] {
	assertThat(at < len(node.items), "given item index out of range: %d ≥ %d", at, len(node.items))
	cow := node.clone()
	cow.items[at].value = item.value
	return cow
}

func (node xnode[K, V]) withDeletedItem(at int) xnode[K, V] {
	assertThat(at < len(node.items), "given item index out of range: %d ≥ %d", at, len(node.items))
	cow := node.clone()
	cow.items = append(cow.items[:at], cow.items[at+1:]...)
	if !cow.isLeaf() {
		cow.children = append(cow.children[:at], cow.children[at+1:]...)
	}
	return cow
}

// withInsertedItem inserts item at position `at`. For inner nodes a nil child
// link is inserted at position `at` as well; callers have to patch
// children[at] and children[at+1] afterwards.
func (node xnode[K, V]) withInsertedItem(item xitem[K, V], at int) xnode[K, V] {
	assertThat(at <= len(node.items), "given item index out of range: %d > %d", at, len(node.items))
	cow := node.cloneWithCapacity(len(node.items) + 1)
	var void xitem[K, V]
	cow.items = append(cow.items, void)
	copy(cow.items[at+1:], cow.items[at:])
	cow.items[at] = item
	if !cow.isLeaf() {
		cow.children = append(cow.children, nil)
		copy(cow.children[at+1:], cow.children[at:])
		cow.children[at] = nil
	}
	return cow
}

// withPrependedItem makes item the leftmost item of a node, with grandChild
// (may be nil for leafs) becoming the leftmost child link.
func (node xnode[K, V]) withPrependedItem(item xitem[K, V], grandChild *xnode[K, V]) xnode[K, V] {
	cow := node.cloneWithCapacity(len(node.items) + 1)
	var void xitem[K, V]
	cow.items = append(cow.items, void)
	copy(cow.items[1:], cow.items)
	cow.items[0] = item
	if !cow.isLeaf() {
		cow.children = append(cow.children, nil)
		copy(cow.children[1:], cow.children)
		cow.children[0] = grandChild
	}
	return cow
}

// withAppendedItem makes item the rightmost item of a node, with grandChild
// (may be nil for leafs) becoming the rightmost child link.
func (node xnode[K, V]) withAppendedItem(item xitem[K, V], grandChild *xnode[K, V]) xnode[K, V] {
	cow := node.cloneWithCapacity(len(node.items) + 1)
	cow.items = append(cow.items, item)
	if !cow.isLeaf() {
		cow.children = append(cow.children, grandChild)
	}
	return cow
}

func (node xnode[K, V]) withCutRight() (xnode[K, V], xitem[K, V], *xnode[K, V]) {
	assertThat(len(node.items) > 0, "attempt to cut right item from empty node")
	cow := node.clone()
	item := cow.items[len(cow.items)-1]
	cow.items = cow.items[:len(cow.items)-1]
	var rnode *xnode[K, V]
	if !cow.isLeaf() {
		rnode = cow.children[len(cow.children)-1]
		cow.children = cow.children[:len(cow.children)-1]
	}
	return cow, item, rnode
}

func (node xnode[K, V]) withCutLeft() (xnode[K, V], xitem[K, V], *xnode[K, V]) {
	assertThat(len(node.items) > 0, "attempt to cut left item from empty node")
	cow := node.clone()
	item := cow.items[0]
	cow.items = cow.items[1:]
	var lnode *xnode[K, V]
	if !cow.isLeaf() {
		lnode = cow.children[0]
		cow.children = cow.children[1:]
	}
	return cow, item, lnode
}

// splitChild splits the (overfull) child occupying slot s, moving the median
// item up into the receiver node. It's legal to call this on xnode{} in order
// to create a new tree root.
func (node xnode[K, V]) splitChild(s slot[K, V]) slot[K, V] {
	child := s.node
	half := len(child.items) / 2
	medianitem := child.items[half]
	siblingL := child.slice(0, half)
	siblingR := child.slice(half+1, -1)
	found, index := node.findSlot(medianitem.key)
	assertThat(!found, "internal inconsistency: child has same key as parent (during split)")
	cow := node.withInsertedItem(medianitem, index).asNonLeaf()
	cow.children[index] = &siblingL
	cow.children[index+1] = &siblingR
	return slot[K, V]{node: &cow, index: index}
}

// --- Tree-level helpers ----------------------------------------------------

func (tree Tree[K, V]) replacing(key K, value V, path slotPath[K, V]) Tree[K, V] {
	assertThat(len(path) > 0, "cannot replace item without path")
	tracer().Debugf("btree.With: slot path = %s", path)
	hit := path.last() // slot where `key` lives
	item := xitem[K, V]{key: key, value: value}
	cow := hit.node.withReplacedValue(item, hit.index)
	tracer().Debugf("created copy of node for replacement: %s", &cow)
	newRoot := path.dropLast().foldR(cloneSeam[K, V], slot[K, V]{node: &cow, index: hit.index})
	tracer().Debugf("replace: top = %s", newRoot)
	return tree.shallowCloneWithRoot(*newRoot.node)
}

func (tree Tree[K, V]) findKeyAndPath(key K, pathBuf slotPath[K, V]) (found bool, path slotPath[K, V]) {
	path = pathBuf[:0] // we track the path to the key's slot
	if tree.root == nil {
		return
	}
	var index int
	var node *xnode[K, V] = tree.root // walking nodes, start search at the top
	for !node.isLeaf() {
		found, index = node.findSlot(key)
		path = append(path, slot[K, V]{node: node, index: index})
		if found {
			return // we have an exact match
		}
		node = node.children[index]
	}
	found, index = node.findSlot(key)
	path = append(path, slot[K, V]{node: node, index: index})
	tracer().Debugf("slot path for key=%v -> %s", key, path)
	return
}

func (tree Tree[K, V]) shallowCloneWithRoot(root xnode[K, V]) Tree[K, V] {
	newTree := tree
	newTree.root = &root
	return newTree
}

func (tree Tree[K, V]) withDepth(depth uint) Tree[K, V] {
	tree.depth = depth
	return tree
}

func (tree Tree[K, V]) withSize(size uint) Tree[K, V] {
	tree.size = size
	return tree
}

// --- Folding over seams ----------------------------------------------------

func splitAndClone[K cmp.Ordered, V any](highWaterMark uint) func(slot[K, V], slot[K, V]) slot[K, V] {
	return func(parent, child slot[K, V]) slot[K, V] {
		tracer().Debugf("split&propagate: parent = %s, child = %s", parent, child)
		if child.node.overfull(highWaterMark) {
			tracer().Debugf("child is overfull: %v", child)
			return parent.node.splitChild(child)
		}
		return cloneSeam(parent, child)
	}
}

func cloneSeam[K cmp.Ordered, V any](parent, child slot[K, V]) slot[K, V] {
	tracer().Debugf("seam: parent = %s, child = %s", parent, child)
	cowParent := parent.node.clone()
	cowParent.children[parent.index] = child.node
	return slot[K, V]{node: &cowParent, index: parent.index}
}

func balance[K cmp.Ordered, V any](lowWaterMark uint) func(slot[K, V], slot[K, V]) slot[K, V] {
	return func(parent, child slot[K, V]) slot[K, V] {
		tracer().Debugf("balance: parent = %s, child = %s", parent, child)
		if child.node.underfull(lowWaterMark) {
			tracer().Debugf("child is underfull: %v", child)
			return parent.balance(child, lowWaterMark)
		}
		return cloneSeam(parent, child)
	}
}

// --- Re-balancing after deletion -------------------------------------------

func (parent slot[K, V]) balance(child slot[K, V], lowWaterMark uint) slot[K, V] {
	assertThat(len(parent.node.children) > 0, "attempt to balance parent w/ zero children")
	if lsbl := parent.leftSibling(child); lsbl.node != nil && !lsbl.underfull(lowWaterMark+1) {
		// steal item from left sibling ⇒ rotate right
		return parent.rotateRight(lsbl, child)
	} else if rsbl := parent.rightSibling(child); rsbl.node != nil && !rsbl.underfull(lowWaterMark+1) {
		// steal item from right sibling ⇒ rotate left
		return parent.rotateLeft(child, rsbl)
	}
	// steal item from parent and merge child with a sibling
	return parent.merge(parent.siblings2(child))
}

// merge steals an item from parent and merges child with a sibling.
// Returns a new parent which may be underfull or even empty (in case of parent being root).
func (parent slot[K, V]) merge(mi mergeinfo[K, V]) slot[K, V] {
	p := mi.parent // p.index points to the separator item between mi.left and mi.right
	assertThat(p.len() > 0, "attempt to extract an item from an empty parent node")
	sepitem := p.item()
	cow := p.node.withDeletedItem(p.index)
	newParent := slot[K, V]{node: &cow, index: p.index}
	lsbl, rsbl := mi.left, mi.right
	cowch := lsbl.node.cloneWithCapacity(lsbl.len() + rsbl.len() + 1)
	cowch.items = append(cowch.items, sepitem)
	cowch.items = append(cowch.items, rsbl.items()...)
	if !cowch.isLeaf() && rsbl.len() > 0 {
		cowch.children = append(cowch.children, rsbl.node.children...)
		assertThat(len(cowch.children) == len(cowch.items)+1, "internal inconsistency")
	}
	cow.children[p.index] = &cowch // link new parent to merged child
	return newParent
}

// rotateRight steals the rightmost item of the left sibling: the separating
// parent item wanders down into child, the stolen item replaces it.
func (parent slot[K, V]) rotateRight(lsbl, child slot[K, V]) slot[K, V] {
	cow := parent.node.clone()
	newParent := slot[K, V]{node: &cow, index: parent.index}
	sep := parent.index - 1 // parent item separating left sibling and child
	cowlsbl, stolen, grandChild := lsbl.node.withCutRight()
	parentitem := cow.items[sep]
	cow.items[sep] = stolen
	cowchild := child.node.withPrependedItem(parentitem, grandChild)
	cow.children[sep] = &cowlsbl
	cow.children[sep+1] = &cowchild
	return newParent
}

// rotateLeft steals the leftmost item of the right sibling: the separating
// parent item wanders down into child, the stolen item replaces it.
func (parent slot[K, V]) rotateLeft(child, rsbl slot[K, V]) slot[K, V] {
	cow := parent.node.clone()
	newParent := slot[K, V]{node: &cow, index: parent.index}
	sep := parent.index // parent item separating child and right sibling
	cowrsbl, stolen, grandChild := rsbl.node.withCutLeft()
	parentitem := cow.items[sep]
	cow.items[sep] = stolen
	cowchild := child.node.withAppendedItem(parentitem, grandChild)
	cow.children[sep] = &cowchild
	cow.children[sep+1] = &cowrsbl
	return newParent
}

// stealPredOrSucc extends path down to the leaf holding the in-order
// predecessor or successor of the item at del. It prefers the predecessor
// (rightmost leaf of the left subtree) and falls back to the successor if
// that leaf cannot spare an item without becoming underfull.
func (del slot[K, V]) stealPredOrSucc(path slotPath[K, V], lowWaterMark uint) (xitem[K, V], slotPath[K, V]) {
	inner := path.last().node // cow of del.node, already part of path
	assertThat(!inner.isLeaf(), "attempt to steal pred/succ item for a leaf")
	// walk down to the rightmost leaf of the left subtree
	predPath := path
	predPath[len(predPath)-1].index = del.index
	node := inner.children[del.index]
	for !node.isLeaf() {
		predPath = append(predPath, slot[K, V]{node: node, index: len(node.children) - 1})
		node = node.children[len(node.children)-1]
	}
	if uint(len(node.items)) > lowWaterMark {
		predPath = append(predPath, slot[K, V]{node: node, index: len(node.items) - 1})
		return node.items[len(node.items)-1], predPath
	}
	// fall back to the leftmost leaf of the right subtree
	succPath := path
	succPath[len(succPath)-1].index = del.index + 1
	node = inner.children[del.index+1]
	for !node.isLeaf() {
		succPath = append(succPath, slot[K, V]{node: node, index: 0})
		node = node.children[0]
	}
	succPath = append(succPath, slot[K, V]{node: node, index: 0})
	return node.items[0], succPath
}

// --- Helpers ---------------------------------------------------------------

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("btree: "+msg, msgargs...)
		panic(msg)
	}
}

// ceiling rounds n up to an even number (for slice capacities).
func ceiling(n int) int {
	return ((n + 1) >> 1) << 1
}

package btree

/*
Remarks:
--------

- 'cow' stands for copy-on-write and is used throughout the code for variables holding clones of nodes.

- We use a programming-style reminiscent of functional programming (see remarks on
  re-balancing) where it makes things easier to understand.

- A new modified incarnation of a tree always is reflected by a new tree.root.

*/

import "cmp"

const defaultLowWaterMark uint = 3
const defaultHighWaterMark uint = defaultLowWaterMark * 2

// Tree is an in-memory persistent B-tree, mapping keys of ordered type K to
// values of type V. An empty instance is usable as an empty tree, i.e.
// this is legal:
//
//	tree := btree.Tree[int, int]{}.With(1, 42)
//
// returning a tree containing a single node ⟨1⟩ associated with value 42.
type Tree[K cmp.Ordered, V any] struct {
	root          *xnode[K, V]
	size          uint
	depth         uint
	lowWaterMark  uint
	highWaterMark uint
}

// Immutable constructs a B-tree with options, if you need any.
// Use it like this:
//
//	tree := btree.Immutable[int, string](Degree(16))
//	tree = tree.With(42, "Galaxy")
//	value, found := tree.Find(42)   // returns "Galaxy"
func Immutable[K cmp.Ordered, V any](opts ...Option[K, V]) Tree[K, V] {
	tree := Tree[K, V]{
		lowWaterMark:  defaultLowWaterMark,
		highWaterMark: defaultHighWaterMark,
	}
	for _, option := range opts {
		tree = option(tree)
	}
	return tree
}

// Option is a type to help initializing B-trees at creation time.
type Option[K cmp.Ordered, V any] func(Tree[K, V]) Tree[K, V]

// Degree is an option to set the minimum number of children a node in the tree owns.
// The lower bound for the degree is 3.
//
// Use it like this:
//
//	tree := btree.Immutable[int, string](Degree(16))
func Degree[K cmp.Ordered, V any](n int) Option[K, V] {
	return func(tree Tree[K, V]) Tree[K, V] {
		low := max(2, n-1)
		tree.lowWaterMark = uint(low)
		tree.highWaterMark = tree.lowWaterMark * 2
		return tree
	}
}

// init makes the zero value usable by falling back to default water marks.
func (tree Tree[K, V]) init() Tree[K, V] {
	if tree.highWaterMark == 0 {
		tree.lowWaterMark = defaultLowWaterMark
		tree.highWaterMark = defaultHighWaterMark
	}
	return tree
}

// --- API -------------------------------------------------------------------

// Size returns the number of key/value associations in the tree.
func (tree Tree[K, V]) Size() int {
	return int(tree.size)
}

// IsEmpty is true if the tree holds no associations.
func (tree Tree[K, V]) IsEmpty() bool {
	return tree.root == nil
}

// Depth returns the number of node levels of the tree.
func (tree Tree[K, V]) Depth() uint {
	return tree.depth
}

// Find locates a key in a tree, if present, and returns the value associated with the key.
// If `key` is not found, the zero value for type V will be returned, together with found=false.
func (tree Tree[K, V]) Find(key K) (V, bool) {
	var found bool
	var path slotPath[K, V] = make([]slot[K, V], tree.depth)
	if found, path = tree.findKeyAndPath(key, path); found {
		return path.last().item().value, true
	}
	var none V
	return none, false
}

// With returns a copy of a tree with a new key inserted, which is associated with `value`.
// If an entry for key is already present in tree, the associated value will be replaced
// (in a new incarnation of the tree, nevertheless).
func (tree Tree[K, V]) With(key K, value V) Tree[K, V] {
	tree = tree.init()
	var path slotPath[K, V] = make([]slot[K, V], tree.depth)
	var found bool
	if found, path = tree.findKeyAndPath(key, path); found {
		return tree.replacing(key, value, path) // copy with replaced value
	}
	tracer().Debugf("insert: slot path = %s", path)
	item := xitem[K, V]{key, value}
	if tree.root == nil { // virgin tree => insert first node and return
		return tree.shallowCloneWithRoot(xnode[K, V]{}.withInsertedItem(item, 0)).withDepth(1).withSize(1)
	}
	leafSlot := path.last()
	assertThat(leafSlot.node.isLeaf(), "attempt to insert item at non-leaf")
	cow := leafSlot.node.withInsertedItem(item, leafSlot.index) // copy-on-write
	tracer().Debugf("insert: created copy of (leaf + key@%d) = %s", leafSlot.index, &cow)
	newRoot := path.dropLast().foldR(splitAndClone[K, V](tree.highWaterMark),
		slot[K, V]{node: &cow, index: leafSlot.index},
	)
	tracer().Debugf("insert: new root = %s", newRoot)
	newDepth := tree.depth
	if newRoot.node.overfull(tree.highWaterMark) {
		newRoot = xnode[K, V]{}.splitChild(newRoot)
		newDepth++
	}
	return tree.shallowCloneWithRoot(*newRoot.node).withDepth(newDepth).withSize(tree.size + 1)
}

// WithDeleted returns a copy of a tree with key deleted, if present, together with its
// associated value. If key is not found, tree is returned unchanged.
func (tree Tree[K, V]) WithDeleted(key K) Tree[K, V] {
	tree = tree.init()
	var path slotPath[K, V] = make([]slot[K, V], tree.depth)
	var found bool
	if found, path = tree.findKeyAndPath(key, path); !found {
		return tree // no need for modification
	}
	tracer().Debugf("deletion: slot path = %s", path)
	del := path.last()
	var leafSlot slot[K, V]
	if del.node.isLeaf() {
		cow := del.node.withDeletedItem(del.index) // copy-on-write
		tracer().Debugf("created copy of leaf w/out deleted item: %v", cow.items)
		leafSlot = slot[K, V]{node: &cow, index: del.index}
	} else { // for inner node:
		// swap item with rightmost item of left subtree or leftmost item of right subtree
		cow := del.node.clone()                                            // cow is clone of inner node
		path[len(path)-1].node = &cow                                      // remember clone in path
		leafItem, leafPath := del.stealPredOrSucc(path, tree.lowWaterMark) // from left or right subtree
		cow.items[del.index] = leafItem                                    // insert stolen item
		l := leafPath.last()                                               //
		cowLeaf := l.node.withDeletedItem(l.index)                         // remove stolen item from leaf
		path = leafPath                                                    // continue with path from root to leaf
		leafSlot = slot[K, V]{node: &cowLeaf, index: l.index}              // leaf to start balancing
	}
	// balance from leaf-node upwards, starting at the leaf where we deleted an item
	tracer().Debugf("after delete: path = %v", path)
	newRoot := path.dropLast().foldR(balance[K, V](tree.lowWaterMark),
		leafSlot,
	)
	tracer().Debugf("deletion: new root = %s", newRoot)
	newTree := tree.shallowCloneWithRoot(*newRoot.node).withSize(tree.size - 1)
	switch { // catch border cases where root is empty after deletion
	case newRoot.len() == 0 && len(newRoot.node.children) > 0:
		newTree.root = newRoot.node.children[0]
		newTree.depth--
	case newRoot.len() == 0 && newRoot.node.isLeaf():
		newTree.root = nil
		newTree.depth = 0
	}
	return newTree
}

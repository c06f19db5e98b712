package btree

import "rowtree/rterr"

// BTree is an in-memory, order-m B-tree storing variable-arity
// composite rows. A node is full at 2m-1 keys. Order is fixed for the
// tree's lifetime.
type BTree struct {
	order   int
	cmp     CompareFunc
	root    *Node
	length  int
	pending []*Node // nodes tombstoned since the last Rebalance
}

// New creates an empty BTree of the given order using cmp to compare
// individual field values. Order must be at least 2.
func New(order int, cmp CompareFunc) (*BTree, error) {
	if order < 2 {
		return nil, rterr.InvalidArgumentErrorf("btree: order must be >= 2, got %d", order)
	}
	return &BTree{order: order, cmp: cmp, root: newLeaf()}, nil
}

// Order returns the tree's fan-out parameter.
func (t *BTree) Order() int { return t.order }

// Len returns the number of live (non-tombstoned) keys.
func (t *BTree) Len() int { return t.length }

// Insert wraps row in a Key and inserts it. If an identical full row
// already exists live, the insert is a no-op. If it exists as a
// tombstone, the tombstone is cleared and the row becomes visible
// again. Duplicate keys with distinct trailing (value) fields coexist
// as separate rows.
func (t *BTree) Insert(row Row) {
	if t.root.full(t.order) {
		oldRoot := t.root
		t.root = &Node{Children: []*Node{oldRoot}}
		t.splitChild(t.root, 0)
	}
	t.insert(t.root, row)
}

// insert locates row's slot in n and either resolves it in place (an
// exact full-row match, live or tombstoned) or descends. The
// dedup/tombstone check is re-run after any split, since a split can
// promote a separator key that itself matches row exactly.
func (t *BTree) insert(n *Node, row Row) {
	if t.resolveExisting(n, row) {
		return
	}

	i := lowerBound(t.cmp, n.Keys, row)

	if n.Leaf {
		n.Keys = append(n.Keys, Key{})
		copy(n.Keys[i+1:], n.Keys[i:])
		n.Keys[i] = Key{Fields: append(Row(nil), row...)}
		t.length++
		return
	}

	if n.Children[i].full(t.order) {
		t.splitChild(n, i)
		if t.resolveExisting(n, row) {
			return
		}
		i = lowerBound(t.cmp, n.Keys, row)
	}

	t.insert(n.Children[i], row)
}

// resolveExisting reports whether row already has a slot in n.Keys
// (an exact full-row match). If the slot is a tombstone, it is
// cleared and the row becomes visible again; if it's already live,
// nothing changes (duplicate insert is a no-op either way).
func (t *BTree) resolveExisting(n *Node, row Row) bool {
	i := lowerBound(t.cmp, n.Keys, row)
	if i >= len(n.Keys) || compareFields(t.cmp, n.Keys[i].Fields, row) != 0 {
		return false
	}
	if n.Keys[i].Deleted {
		n.Keys[i].Deleted = false
		t.length++
	}
	return true
}

// splitChild splits the full child at index i of parent, promoting
// its median key into parent and inserting the new right sibling.
func (t *BTree) splitChild(parent *Node, i int) {
	order := t.order
	child := parent.Children[i]

	sibling := &Node{Leaf: child.Leaf}
	sibling.Keys = append(sibling.Keys, child.Keys[order:]...)
	promoted := child.Keys[order-1]
	child.Keys = child.Keys[:order-1]

	if !child.Leaf {
		sibling.Children = append(sibling.Children, child.Children[order:]...)
		child.Children = child.Children[:order]
	}

	parent.Keys = append(parent.Keys, Key{})
	copy(parent.Keys[i+1:], parent.Keys[i:])
	parent.Keys[i] = promoted

	parent.Children = append(parent.Children, nil)
	copy(parent.Children[i+2:], parent.Children[i+1:])
	parent.Children[i+1] = sibling
}

// Contains reports whether any live row matches key (a point or prefix
// bound).
func (t *BTree) Contains(key Row) bool {
	for range t.Slice(Exact(key...), false) {
		return true
	}
	return false
}

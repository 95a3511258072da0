package BPlus

import (
	"slices"

	dstrace "github.com/g-m-twostay/go-dstrace"
	"github.com/pkg/errors"
)

type NodeID uint32

// Nil is the index of the sentinel slot. It's never a live node.
const Nil NodeID = 0

// Node of a B+ tree. A leaf has no Children and links to its right neighbour through Next. An internal node with n
// Keys has n+1 Children: keys of Children[i] are below Keys[i], and keys of Children[i+1] are at or above it.
type Node[T any] struct {
	Origin   NodeID
	Keys     []T
	Children []NodeID
	Next     NodeID
	Parent   NodeID
	Leaf     bool
}

func (n *Node[T]) clone() Node[T] {
	c := *n
	c.Keys = slices.Clone(n.Keys)
	c.Children = slices.Clone(n.Children)
	return c
}

// Tree is a B+ tree of the given order: a node holds at most order-1 keys and, except for the root, at least
// ceil(order/2)-1. Keys live in the leaves; internal keys only route. Keys are unique.
type Tree[T any] struct {
	nodes      []Node[T]
	root, free NodeID
	order      int
	size       int
	cmp        dstrace.Comparator[T]
}

// New B+ tree with the given order. A nil cmp means dstrace.Default.
func New[T any](order int, cmp dstrace.Comparator[T]) (*Tree[T], error) {
	if order < 3 {
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "b+ tree order %d is below 3", order)
	}
	if cmp == nil {
		cmp = dstrace.Default[T]()
	}
	u := &Tree[T]{order: order, cmp: cmp}
	u.Clear()
	return u, nil
}

func (u *Tree[T]) at(i NodeID) *Node[T] {
	return &u.nodes[i]
}

func (u *Tree[T]) alloc(leaf bool) NodeID {
	i := u.free
	if i != Nil {
		u.free = u.nodes[i].Next
	} else {
		i = NodeID(len(u.nodes))
		u.nodes = append(u.nodes, Node[T]{})
	}
	u.nodes[i] = Node[T]{Origin: i, Leaf: leaf}
	return i
}

// release slot i to the free list, which is linked through Next.
func (u *Tree[T]) release(i NodeID) {
	u.nodes[i] = Node[T]{Next: u.free}
	u.free = i
}

// Clear drops every key. The root is an empty leaf again.
func (u *Tree[T]) Clear() {
	u.nodes = make([]Node[T], 1, 2)
	u.free, u.size = Nil, 0
	u.root = u.alloc(true)
}

func (u *Tree[T]) Order() int {
	return u.order
}

// Len is the number of keys.
func (u *Tree[T]) Len() int {
	return u.size
}

func (u *Tree[T]) Root() NodeID {
	return u.root
}

// Node returns a copy of node id, if live.
func (u *Tree[T]) Node(id NodeID) (Node[T], bool) {
	if id == Nil || int(id) >= len(u.nodes) || u.nodes[id].Origin != id {
		return Node[T]{}, false
	}
	return u.nodes[id].clone(), true
}

func (u *Tree[T]) minKeys() int {
	return (u.order+1)/2 - 1
}

// childIndex is the smallest i with k < Keys[i], or the last child.
func (u *Tree[T]) childIndex(n *Node[T], k T) int {
	for i, key := range n.Keys {
		if u.cmp.Compare(k, key) < 0 {
			return i
		}
	}
	return len(n.Keys)
}

// keyIndex is the sorted position of k in n.Keys and whether it's there.
func (u *Tree[T]) keyIndex(n *Node[T], k T) (int, bool) {
	for i, key := range n.Keys {
		if c := u.cmp.Compare(k, key); c == 0 {
			return i, true
		} else if c < 0 {
			return i, false
		}
	}
	return len(n.Keys), false
}

// descend to the leaf that holds, or would hold, k. The visited nodes are returned root first.
func (u *Tree[T]) descend(k T) []NodeID {
	path := []NodeID{u.root}
	for n := u.at(u.root); !n.Leaf; {
		c := n.Children[u.childIndex(n, k)]
		path = append(path, c)
		n = u.at(c)
	}
	return path
}

// Search reports whether k is in the tree and the nodes visited from the root down to its leaf.
func (u *Tree[T]) Search(k T) (bool, []NodeID) {
	path := u.descend(k)
	_, found := u.keyIndex(u.at(path[len(path)-1]), k)
	return found, path
}

func (u *Tree[T]) indexOf(parent, child NodeID) int {
	i := slices.Index(u.nodes[parent].Children, child)
	if i < 0 {
		panic("b+ tree: child missing from its parent")
	}
	return i
}

func (u *Tree[T]) insert(k T, r *recorder[T]) *Trace[T] {
	r.snap()
	path := u.descend(k)
	r.trace.Path = path
	for _, id := range path {
		r.trace.Events = append(r.trace.Events, Visit{Node: id})
	}
	leaf := path[len(path)-1]
	r.trace.Leaf = leaf
	pos, found := u.keyIndex(u.at(leaf), k)
	if found {
		r.trace.Found = true
		return r.trace
	}
	for range path {
		r.snap()
	}
	n := u.at(leaf)
	n.Keys = slices.Insert(n.Keys, pos, k)
	u.size++
	r.emit(Insert{Node: leaf})
	for id := leaf; len(u.nodes[id].Keys) > u.order-1; {
		id = u.split(id, r)
	}
	return r.trace
}

// split the overflowing node i and hands the promoted key to its parent, creating a new root if needed. Returns the
// parent, which may overflow in turn.
func (u *Tree[T]) split(i NodeID, r *recorder[T]) NodeID {
	leaf := u.nodes[i].Leaf
	j := u.alloc(leaf)
	n, m := u.at(i), u.at(j)
	var promoted T
	if leaf {
		mid := (len(n.Keys) + 1) / 2
		m.Keys = slices.Clone(n.Keys[mid:])
		n.Keys = slices.Clip(n.Keys[:mid])
		m.Next, n.Next = n.Next, j
		promoted = m.Keys[0]
	} else {
		mid := len(n.Keys) / 2
		promoted = n.Keys[mid]
		m.Keys = slices.Clone(n.Keys[mid+1:])
		m.Children = slices.Clone(n.Children[mid+1:])
		n.Keys = slices.Clip(n.Keys[:mid])
		n.Children = slices.Clip(n.Children[:mid+1])
		for _, c := range m.Children {
			u.nodes[c].Parent = j
		}
	}
	p := n.Parent
	if p == Nil {
		p = u.alloc(false)
		u.nodes[p].Keys = []T{promoted}
		u.nodes[p].Children = []NodeID{i, j}
		u.nodes[i].Parent, u.nodes[j].Parent = p, p
		u.root = p
		r.emit(Split[T]{Node: i, NewNode: j, Promoted: promoted, Leaf: leaf})
		r.emit(Split[T]{Node: p, Promoted: promoted})
		return p
	}
	at := u.indexOf(p, i)
	pn := u.at(p)
	pn.Keys = slices.Insert(pn.Keys, at, promoted)
	pn.Children = slices.Insert(pn.Children, at+1, j)
	u.nodes[j].Parent = p
	r.emit(Split[T]{Node: i, NewNode: j, Promoted: promoted, Leaf: leaf})
	return p
}

func (u *Tree[T]) delete(k T, r *recorder[T]) *Trace[T] {
	r.snap()
	path := u.descend(k)
	r.trace.Path = path
	for _, id := range path {
		r.trace.Events = append(r.trace.Events, Visit{Node: id})
	}
	leaf := path[len(path)-1]
	r.trace.Leaf = leaf
	pos, found := u.keyIndex(u.at(leaf), k)
	if !found {
		return r.trace
	}
	r.trace.Found = true
	for range path {
		r.snap()
	}
	n := u.at(leaf)
	n.Keys = slices.Delete(n.Keys, pos, pos+1)
	u.size--
	r.emit(Remove{Node: leaf})
	for id := leaf; id != u.root && len(u.nodes[id].Keys) < u.minKeys(); {
		id = u.rebalance(id, r)
	}
	if old := u.at(u.root); !old.Leaf && len(old.Keys) == 0 {
		o, c := u.root, old.Children[0]
		u.nodes[c].Parent = Nil
		u.root = c
		u.release(o)
		r.emit(Collapse{Old: o, New: c})
	}
	return r.trace
}

// rebalance the underflowing non-root node i by borrowing from a sibling that can spare a key, preferring the left
// one, or else by merging with a sibling. Returns the parent.
func (u *Tree[T]) rebalance(i NodeID, r *recorder[T]) NodeID {
	p := u.nodes[i].Parent
	at := u.indexOf(p, i)
	ch := u.nodes[p].Children
	var left, right NodeID
	if at > 0 {
		left = ch[at-1]
	}
	if at+1 < len(ch) {
		right = ch[at+1]
	}
	switch {
	case left != Nil && len(u.nodes[left].Keys) > u.minKeys():
		k := u.borrowLeft(p, at, left, i)
		r.emit(Borrow[T]{From: left, To: i, Key: k})
	case right != Nil && len(u.nodes[right].Keys) > u.minKeys():
		k := u.borrowRight(p, at, i, right)
		r.emit(Borrow[T]{From: right, To: i, Key: k})
	case left != Nil:
		u.merge(p, at-1, left, i)
		u.release(i)
		r.emit(Merge{Left: left, Right: i})
	default:
		u.merge(p, at, i, right)
		u.release(right)
		r.emit(Merge{Left: i, Right: right})
	}
	return p
}

// borrowLeft moves the last key of l into its right sibling n, the at-th child of p. Returns the key entering n.
func (u *Tree[T]) borrowLeft(p NodeID, at int, l, n NodeID) T {
	pn, ln, nn := u.at(p), u.at(l), u.at(n)
	last := len(ln.Keys) - 1
	if nn.Leaf {
		k := ln.Keys[last]
		ln.Keys = ln.Keys[:last]
		nn.Keys = slices.Insert(nn.Keys, 0, k)
		pn.Keys[at-1] = k
		return k
	}
	k := pn.Keys[at-1]
	c := ln.Children[last+1]
	nn.Keys = slices.Insert(nn.Keys, 0, k)
	nn.Children = slices.Insert(nn.Children, 0, c)
	u.nodes[c].Parent = n
	pn.Keys[at-1] = ln.Keys[last]
	ln.Keys = ln.Keys[:last]
	ln.Children = ln.Children[:last+1]
	return k
}

// borrowRight moves the first key of rt into its left sibling n, the at-th child of p. Returns the key entering n.
func (u *Tree[T]) borrowRight(p NodeID, at int, n, rt NodeID) T {
	pn, rn, nn := u.at(p), u.at(rt), u.at(n)
	if nn.Leaf {
		k := rn.Keys[0]
		rn.Keys = slices.Delete(rn.Keys, 0, 1)
		nn.Keys = append(nn.Keys, k)
		pn.Keys[at] = rn.Keys[0]
		return k
	}
	k := pn.Keys[at]
	c := rn.Children[0]
	nn.Keys = append(nn.Keys, k)
	nn.Children = append(nn.Children, c)
	u.nodes[c].Parent = n
	pn.Keys[at] = rn.Keys[0]
	rn.Keys = slices.Delete(rn.Keys, 0, 1)
	rn.Children = slices.Delete(rn.Children, 0, 1)
	return k
}

// merge rt into its left sibling l. sep is the index in p of the key separating them.
func (u *Tree[T]) merge(p NodeID, sep int, l, rt NodeID) {
	pn, ln, rn := u.at(p), u.at(l), u.at(rt)
	if ln.Leaf {
		ln.Keys = append(ln.Keys, rn.Keys...)
		ln.Next = rn.Next
	} else {
		ln.Keys = append(append(ln.Keys, pn.Keys[sep]), rn.Keys...)
		ln.Children = append(ln.Children, rn.Children...)
		for _, c := range rn.Children {
			u.nodes[c].Parent = l
		}
	}
	pn.Keys = slices.Delete(pn.Keys, sep, sep+1)
	pn.Children = slices.Delete(pn.Children, sep+1, sep+2)
}

// Insert k. Returns false if it was already present.
func (u *Tree[T]) Insert(k T) bool {
	return !u.insert(k, newRecorder(u, false)).Found
}

// InsertTrace inserts k, recording Visit events root first, then Insert and every Split. Snapshots[0] is taken before
// the operation and Snapshots[i+1] after Events[i]. A duplicate key leaves the tree alone and the trace holds only
// the visits and the first snapshot.
func (u *Tree[T]) InsertTrace(k T) *Trace[T] {
	return u.insert(k, newRecorder(u, true))
}

// Delete k. Returns false if it wasn't present.
func (u *Tree[T]) Delete(k T) bool {
	return u.delete(k, newRecorder(u, false)).Found
}

// DeleteTrace deletes k, recording Visit, Remove, then the Borrow and Merge events that restore the occupancy
// bounds, and finally a Collapse if the root ran out of keys. Snapshots align with events as in InsertTrace.
func (u *Tree[T]) DeleteTrace(k T) *Trace[T] {
	return u.delete(k, newRecorder(u, true))
}

func (u *Tree[T]) firstLeaf() NodeID {
	i := u.root
	for !u.nodes[i].Leaf {
		i = u.nodes[i].Children[0]
	}
	return i
}

// Leaves in key order, following the Next chain.
func (u *Tree[T]) Leaves() []NodeID {
	var ls []NodeID
	for i := u.firstLeaf(); i != Nil; i = u.nodes[i].Next {
		ls = append(ls, i)
	}
	return ls
}

// LeafKeys are the keys of each leaf, in leaf order.
func (u *Tree[T]) LeafKeys() [][]T {
	ls := u.Leaves()
	ks := make([][]T, len(ls))
	for i, l := range ls {
		ks[i] = slices.Clone(u.nodes[l].Keys)
	}
	return ks
}

// Keys in ascending order.
func (u *Tree[T]) Keys() []T {
	ks := make([]T, 0, u.size)
	for i := u.firstLeaf(); i != Nil; i = u.nodes[i].Next {
		ks = append(ks, u.nodes[i].Keys...)
	}
	return ks
}

// Depth of the leaves, 0 when the root is a leaf.
func (u *Tree[T]) Depth() int {
	d := 0
	for i := u.root; !u.nodes[i].Leaf; i = u.nodes[i].Children[0] {
		d++
	}
	return d
}

func (u *Tree[T]) Snapshot() Snapshot[T] {
	ns := make([]Node[T], len(u.nodes))
	for i := range u.nodes {
		ns[i] = u.nodes[i].clone()
	}
	return Snapshot[T]{Root: u.root, Nodes: ns}
}

// Corrupt checks key order and bounds, occupancy, child counts, parent links, leaf depth and the leaf chain.
func (u *Tree[T]) Corrupt() bool {
	depth, leaves := -1, []NodeID(nil)
	var walk func(i, parent NodeID, d int, lo, hi *T) bool
	walk = func(i, parent NodeID, d int, lo, hi *T) bool {
		n := &u.nodes[i]
		if n.Origin != i || n.Parent != parent || len(n.Keys) > u.order-1 {
			return true
		}
		if i != u.root && len(n.Keys) < u.minKeys() {
			return true
		}
		for j, k := range n.Keys {
			if j > 0 && u.cmp.Compare(n.Keys[j-1], k) >= 0 {
				return true
			}
			if (lo != nil && u.cmp.Compare(k, *lo) < 0) || (hi != nil && u.cmp.Compare(k, *hi) >= 0) {
				return true
			}
		}
		if n.Leaf {
			if len(n.Children) != 0 || (depth >= 0 && depth != d) {
				return true
			}
			depth = d
			leaves = append(leaves, i)
			return false
		}
		if len(n.Children) != len(n.Keys)+1 || (i == u.root && len(n.Keys) == 0) {
			return true
		}
		for j, c := range n.Children {
			l, h := lo, hi
			if j > 0 {
				l = &n.Keys[j-1]
			}
			if j < len(n.Keys) {
				h = &n.Keys[j]
			}
			if walk(c, i, d+1, l, h) {
				return true
			}
		}
		return false
	}
	if walk(u.root, Nil, 0, nil, nil) {
		return true
	}
	total := 0
	for _, l := range leaves {
		total += len(u.nodes[l].Keys)
	}
	return !slices.Equal(leaves, u.Leaves()) || total != u.size
}

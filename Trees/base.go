package Trees

import (
	dstrace "github.com/g-m-twostay/go-dstrace"
)

// base is the arena every binary tree is built on. nodes[0] is the sentinel: BLACK, height 0, and never reachable.
// Its Parent is written by transplant so that red-black fixups can climb from a removed leaf; every other field of it
// stays zero. Free slots are linked through Left starting at free.
type base[T any] struct {
	nodes      []Node[T]
	root, free NodeID
	size       int
	cmp        dstrace.Comparator[T]
}

func newBase[T any](cmp dstrace.Comparator[T], hint int) base[T] {
	ns := make([]Node[T], 1, hint+1)
	ns[0].Colour = Black
	return base[T]{nodes: ns, cmp: cmp}
}

func (u *base[T]) at(i NodeID) *Node[T] {
	return &u.nodes[i]
}

// alloc a RED leaf holding v. Holes are filled first before appending to the arena.
func (u *base[T]) alloc(v T) NodeID {
	i := u.popFree()
	if i == Nil {
		i = NodeID(len(u.nodes))
		u.nodes = append(u.nodes, Node[T]{})
	}
	u.nodes[i] = Node[T]{Value: v, Origin: i, Height: 1, Colour: Red}
	u.size++
	return i
}

// release slot i to the free list.
func (u *base[T]) release(i NodeID) {
	u.nodes[i] = Node[T]{Left: u.free}
	u.free = i
	u.size--
}

// popFree index once. Returns Nil when there's no free index.
func (u *base[T]) popFree() NodeID {
	b := u.free
	if b != Nil {
		u.free = u.nodes[b].Left
	}
	return b
}

func (u *base[T]) Len() int {
	return u.size
}

func (u *base[T]) Root() NodeID {
	return u.root
}

func (u *base[T]) Node(id NodeID) (Node[T], bool) {
	if id == Nil || int(id) >= len(u.nodes) || u.nodes[id].Origin != id {
		return Node[T]{}, false
	}
	return u.nodes[id], true
}

// Clear drops every node.
func (u *base[T]) Clear() {
	*u = newBase(u.cmp, 0)
}

func (u *base[T]) Snapshot() Snapshot[T] {
	ns := make([]Node[T], len(u.nodes))
	copy(ns, u.nodes)
	ns[0].Parent = Nil
	return Snapshot[T]{Root: u.root, Nodes: ns}
}

func (u *base[T]) InOrder() []T {
	return Snapshot[T]{Root: u.root, Nodes: u.nodes}.InOrder()
}

func (u *base[T]) Height() int {
	return height(u.nodes, u.root)
}

func (u *base[T]) Min() (v T, ok bool) {
	if u.root == Nil {
		return
	}
	return u.nodes[u.minimum(u.root)].Value, true
}

func (u *base[T]) Max() (v T, ok bool) {
	if u.root == Nil {
		return
	}
	i := u.root
	for u.nodes[i].Right != Nil {
		i = u.nodes[i].Right
	}
	return u.nodes[i].Value, true
}

func (u *base[T]) minimum(i NodeID) NodeID {
	for u.nodes[i].Left != Nil {
		i = u.nodes[i].Left
	}
	return i
}

func (u *base[T]) Search(v T) (NodeID, bool) {
	for cur := u.root; cur != Nil; {
		if c := u.cmp.Compare(v, u.nodes[cur].Value); c < 0 {
			cur = u.nodes[cur].Left
		} else if c > 0 {
			cur = u.nodes[cur].Right
		} else {
			return cur, true
		}
	}
	return Nil, false
}

// SearchPath walks down to v. The path ends at the node holding v, or at the last node visited.
func (u *base[T]) SearchPath(v T) (NodeID, []NodeID) {
	var path []NodeID
	for cur := u.root; cur != Nil; {
		path = append(path, cur)
		if c := u.cmp.Compare(v, u.nodes[cur].Value); c < 0 {
			cur = u.nodes[cur].Left
		} else if c > 0 {
			cur = u.nodes[cur].Right
		} else {
			return cur, path
		}
	}
	return Nil, path
}

// place is the plain BST insert. It records the path in t and returns the new node, or the node that already holds
// an equal key together with true.
func (u *base[T]) place(v T, t *Trace[T]) (NodeID, bool) {
	p, c := Nil, 0
	for cur := u.root; cur != Nil; {
		t.Path = append(t.Path, cur)
		p = cur
		if c = u.cmp.Compare(v, u.nodes[cur].Value); c < 0 {
			cur = u.nodes[cur].Left
		} else if c > 0 {
			cur = u.nodes[cur].Right
		} else {
			t.Node, t.Found = cur, true
			return cur, true
		}
	}
	n := u.alloc(v)
	u.nodes[n].Parent = p
	if p == Nil {
		u.root = n
	} else if c < 0 {
		u.nodes[p].Left = n
	} else {
		u.nodes[p].Right = n
	}
	t.Node = n
	return n, false
}

// unlink is the plain BST delete of node z. A node with two children takes the value of its in-order successor, and
// the successor, which has at most one child, is removed instead. It returns the parent of the removed slot, the child
// that took its place, and the colour the removed node had.
func (u *base[T]) unlink(z NodeID) (parent, child NodeID, removed Colour) {
	if u.nodes[z].Left != Nil && u.nodes[z].Right != Nil {
		s := u.minimum(u.nodes[z].Right)
		u.nodes[z].Value = u.nodes[s].Value
		z = s
	}
	child = u.nodes[z].Left
	if child == Nil {
		child = u.nodes[z].Right
	}
	parent, removed = u.nodes[z].Parent, u.nodes[z].Colour
	u.transplant(z, child)
	u.release(z)
	return
}

// replaceChild makes n take old's place under p.
func (u *base[T]) replaceChild(p, old, n NodeID) {
	if p == Nil {
		u.root = n
	} else if u.nodes[p].Left == old {
		u.nodes[p].Left = n
	} else {
		u.nodes[p].Right = n
	}
}

// transplant replaces the subtree at a with the one at b. b's parent is set even when b is the sentinel.
func (u *base[T]) transplant(a, b NodeID) {
	u.replaceChild(u.nodes[a].Parent, a, b)
	u.nodes[b].Parent = u.nodes[a].Parent
}

// rotateLeft at x. Returns the node that took x's place.
// Time: O(1); Space: O(1)
func (u *base[T]) rotateLeft(x NodeID) NodeID {
	y := u.nodes[x].Right
	u.nodes[x].Right = u.nodes[y].Left
	if l := u.nodes[y].Left; l != Nil {
		u.nodes[l].Parent = x
	}
	u.nodes[y].Parent = u.nodes[x].Parent
	u.replaceChild(u.nodes[x].Parent, x, y)
	u.nodes[y].Left = x
	u.nodes[x].Parent = y
	return y
}

// rotateRight at x. Returns the node that took x's place.
// Time: O(1); Space: O(1)
func (u *base[T]) rotateRight(x NodeID) NodeID {
	y := u.nodes[x].Left
	u.nodes[x].Left = u.nodes[y].Right
	if r := u.nodes[y].Right; r != Nil {
		u.nodes[r].Parent = x
	}
	u.nodes[y].Parent = u.nodes[x].Parent
	u.replaceChild(u.nodes[x].Parent, x, y)
	u.nodes[y].Right = x
	u.nodes[x].Parent = y
	return y
}

// corrupt checks the BST order and the parent links. check is called on every reachable node.
func (u *base[T]) corrupt(check func(NodeID) bool) bool {
	if u.root != Nil && u.nodes[u.root].Parent != Nil {
		return true
	}
	ids := Snapshot[T]{Root: u.root, Nodes: u.nodes}.InOrderIDs()
	if len(ids) != u.size {
		return true
	}
	for i, id := range ids {
		n := &u.nodes[id]
		if n.Origin != id || (i > 0 && u.cmp.Compare(u.nodes[ids[i-1]].Value, n.Value) >= 0) {
			return true
		}
		if (n.Left != Nil && u.nodes[n.Left].Parent != id) || (n.Right != Nil && u.nodes[n.Right].Parent != id) {
			return true
		}
		if check != nil && check(id) {
			return true
		}
	}
	return false
}

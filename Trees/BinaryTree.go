package Trees

// BinaryTree is a plain binary tree with an explicit shape: it is built level by level from a sequence, not ordered by
// a comparator.
type BinaryTree[T any] struct {
	arena base[T]
}

// FromLevelOrder builds the tree breadth first. vs[0] is the root, then every node takes the next two values as its
// left and right child. A value for which absent returns true leaves a hole, and the hole gets no children. An absent
// root gives an empty tree.
func FromLevelOrder[T any](vs []T, absent func(T) bool) *BinaryTree[T] {
	u := &BinaryTree[T]{newBase[T](nil, len(vs))}
	a := &u.arena
	if len(vs) == 0 || (absent != nil && absent(vs[0])) {
		return u
	}
	a.root = a.alloc(vs[0])
	q := []NodeID{a.root}
	next := func(i int, p NodeID) NodeID {
		if i >= len(vs) || (absent != nil && absent(vs[i])) {
			return Nil
		}
		c := a.alloc(vs[i])
		a.nodes[c].Parent = p
		q = append(q, c)
		return c
	}
	for i := 1; len(q) > 0 && i < len(vs); i += 2 {
		p := q[0]
		q = q[1:]
		l := next(i, p)
		r := next(i+1, p)
		a.nodes[p].Left, a.nodes[p].Right = l, r
	}
	return u
}

// PreOrderIDs of the tree: node, left, right.
func (u *BinaryTree[T]) PreOrderIDs() []NodeID {
	ids := make([]NodeID, 0, u.arena.size)
	for st := []NodeID{u.arena.root}; len(st) > 0; {
		i := st[len(st)-1]
		st = st[:len(st)-1]
		if i == Nil {
			continue
		}
		ids = append(ids, i)
		st = append(st, u.arena.nodes[i].Right, u.arena.nodes[i].Left)
	}
	return ids
}

// InOrderIDs of the tree: left, node, right.
func (u *BinaryTree[T]) InOrderIDs() []NodeID {
	return Snapshot[T]{Root: u.arena.root, Nodes: u.arena.nodes}.InOrderIDs()
}

// PostOrderIDs of the tree: left, right, node.
func (u *BinaryTree[T]) PostOrderIDs() []NodeID {
	ids := make([]NodeID, 0, u.arena.size)
	for st := []NodeID{u.arena.root}; len(st) > 0; {
		i := st[len(st)-1]
		st = st[:len(st)-1]
		if i == Nil {
			continue
		}
		ids = append(ids, i)
		st = append(st, u.arena.nodes[i].Left, u.arena.nodes[i].Right)
	}
	for l, r := 0, len(ids)-1; l < r; l, r = l+1, r-1 {
		ids[l], ids[r] = ids[r], ids[l]
	}
	return ids
}

// LevelOrderIDs of the tree, breadth first, left to right.
func (u *BinaryTree[T]) LevelOrderIDs() []NodeID {
	ids := make([]NodeID, 0, u.arena.size)
	if u.arena.root == Nil {
		return ids
	}
	ids = append(ids, u.arena.root)
	for h := 0; h < len(ids); h++ {
		if l := u.arena.nodes[ids[h]].Left; l != Nil {
			ids = append(ids, l)
		}
		if r := u.arena.nodes[ids[h]].Right; r != Nil {
			ids = append(ids, r)
		}
	}
	return ids
}

func (u *BinaryTree[T]) values(ids []NodeID) []T {
	vs := make([]T, len(ids))
	for i, id := range ids {
		vs[i] = u.arena.nodes[id].Value
	}
	return vs
}

func (u *BinaryTree[T]) PreOrder() []T {
	return u.values(u.PreOrderIDs())
}

func (u *BinaryTree[T]) PostOrder() []T {
	return u.values(u.PostOrderIDs())
}

func (u *BinaryTree[T]) LevelOrder() []T {
	return u.values(u.LevelOrderIDs())
}

// Leaves from left to right.
func (u *BinaryTree[T]) Leaves() []T {
	var vs []T
	for _, id := range u.InOrderIDs() {
		if u.arena.nodes[id].Left == Nil && u.arena.nodes[id].Right == Nil {
			vs = append(vs, u.arena.nodes[id].Value)
		}
	}
	return vs
}

func (u *BinaryTree[T]) InOrder() []T {
	return u.arena.InOrder()
}

func (u *BinaryTree[T]) Len() int {
	return u.arena.size
}

func (u *BinaryTree[T]) Root() NodeID {
	return u.arena.root
}

func (u *BinaryTree[T]) Node(id NodeID) (Node[T], bool) {
	return u.arena.Node(id)
}

// Height of the tree, 0 when empty.
func (u *BinaryTree[T]) Height() int {
	return u.arena.Height()
}

func (u *BinaryTree[T]) Snapshot() Snapshot[T] {
	return u.arena.Snapshot()
}

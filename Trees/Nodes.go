package Trees

// NodeID is the identity of a node: its index in the arena of the tree that owns it. Nil is the 0 index, which is
// reserved for the sentinel. An id stays valid until the node is deleted; the slot may then be reused.
type NodeID uint32

const Nil NodeID = 0

type Colour uint8

const (
	Red Colour = iota
	Black
)

func (c Colour) String() string {
	if c == Black {
		return "BLACK"
	}
	return "RED"
}

// Node in an arena. Origin is the identity of the live node this one is, or was copied from; it is Nil for the
// sentinel and for free slots. Height is only maintained by AVL and Colour only by the red-black tree.
type Node[T any] struct {
	Value               T
	Origin              NodeID
	Left, Right, Parent NodeID
	Height              int
	Colour              Colour
}

// Snapshot is a copy of an arena. Nodes[i].Origin is i for every reachable node, so ids found in a Trace can be looked
// up directly.
type Snapshot[T any] struct {
	Root  NodeID
	Nodes []Node[T]
}

// Get the node copied from id.
func (u Snapshot[T]) Get(id NodeID) (Node[T], bool) {
	if id == Nil || int(id) >= len(u.Nodes) || u.Nodes[id].Origin != id {
		return Node[T]{}, false
	}
	return u.Nodes[id], true
}

// InOrderIDs of the reachable nodes.
func (u Snapshot[T]) InOrderIDs() []NodeID {
	ids := make([]NodeID, 0, len(u.Nodes))
	st := make([]NodeID, 0, 16)
	for cur := u.Root; cur != Nil || len(st) > 0; {
		for ; cur != Nil; cur = u.Nodes[cur].Left {
			st = append(st, cur)
		}
		cur = st[len(st)-1]
		st = st[:len(st)-1]
		ids = append(ids, cur)
		cur = u.Nodes[cur].Right
	}
	return ids
}

// InOrder values of the reachable nodes.
func (u Snapshot[T]) InOrder() []T {
	ids := u.InOrderIDs()
	vs := make([]T, len(ids))
	for i, id := range ids {
		vs[i] = u.Nodes[id].Value
	}
	return vs
}

// Len is the number of reachable nodes.
func (u Snapshot[T]) Len() int {
	return len(u.InOrderIDs())
}

// Height of the copied tree, 0 when empty.
func (u Snapshot[T]) Height() int {
	return height(u.Nodes, u.Root)
}

func height[T any](ns []Node[T], root NodeID) int {
	if root == Nil {
		return 0
	}
	type item struct {
		id NodeID
		d  int
	}
	best := 0
	for st := []item{{root, 1}}; len(st) > 0; {
		it := st[len(st)-1]
		st = st[:len(st)-1]
		best = max(best, it.d)
		if l := ns[it.id].Left; l != Nil {
			st = append(st, item{l, it.d + 1})
		}
		if r := ns[it.id].Right; r != Nil {
			st = append(st, item{r, it.d + 1})
		}
	}
	return best
}

package Trees

// Kind tells the ordered tree engines apart.
type Kind uint8

const (
	KindBST Kind = iota
	KindAVL
	KindRB
)

func (k Kind) String() string {
	switch k {
	case KindBST:
		return "bst"
	case KindAVL:
		return "avl"
	case KindRB:
		return "rbtree"
	}
	return "unknown"
}

// Tree is the protocol shared by the ordered binary trees. Every mutation comes in a plain form and a traced form.
// The traced form returns a Trace whose snapshots line up with its events: Snapshots[0] is the tree before the
// operation, Snapshots[1] the tree right after the plain BST mutation, and Snapshots[2+i] the tree right after
// Events[i]. An operation that didn't mutate anything returns only Snapshots[0].
// Keys are unique under the tree's comparator; inserting an equal key is a no-op that reports the existing node.
// Receivers that return a bool as a second value use it to tell whether the first value is defined.
type Tree[T any] interface {
	Kind() Kind
	//Insert v. Returns the node holding v, and whether v was newly added.
	Insert(v T) (NodeID, bool)
	//Delete v. Returns true if v was present.
	Delete(v T) bool
	//Search v. Returns the node holding v.
	Search(v T) (NodeID, bool)
	//InsertTrace is the traced form of Insert.
	InsertTrace(v T) *Trace[T]
	//DeleteTrace is the traced form of Delete.
	DeleteTrace(v T) *Trace[T]
	//SearchPath returns the node holding v, or Nil, and the nodes visited on the way down.
	SearchPath(v T) (NodeID, []NodeID)
	Len() int
	Root() NodeID
	//Node returns a copy of the live node id.
	Node(id NodeID) (Node[T], bool)
	//InOrder values of the tree.
	InOrder() []T
	//Height of the tree, 0 when empty.
	Height() int
	Min() (T, bool)
	Max() (T, bool)
	Clear()
	//Snapshot is a deep copy of the tree. The tree keeps no reference to it.
	Snapshot() Snapshot[T]
	//Corrupt returns whether some node violates the invariants of the implementation.
	Corrupt() bool
}

package BPlus

import "slices"

// Snapshot is an independent copy of the whole arena. Nodes[0] is the unused sentinel slot.
type Snapshot[T any] struct {
	Root  NodeID
	Nodes []Node[T]
}

// Get node id of the snapshot, if it was live.
func (u Snapshot[T]) Get(id NodeID) (Node[T], bool) {
	if id == Nil || int(id) >= len(u.Nodes) || u.Nodes[id].Origin != id {
		return Node[T]{}, false
	}
	return u.Nodes[id], true
}

// Keys in ascending order as of the snapshot.
func (u Snapshot[T]) Keys() []T {
	i := u.Root
	for !u.Nodes[i].Leaf {
		i = u.Nodes[i].Children[0]
	}
	var ks []T
	for ; i != Nil; i = u.Nodes[i].Next {
		ks = append(ks, u.Nodes[i].Keys...)
	}
	return ks
}

// Trace of one insert or delete. Found reports whether the key was present before the operation. Leaf is the leaf
// reached by the descent and Path every node visited, root first.
type Trace[T any] struct {
	Found     bool
	Leaf      NodeID
	Path      []NodeID
	Events    []Event
	Snapshots []Snapshot[T]
}

// Changed reports whether the operation mutated the tree.
func (u *Trace[T]) Changed() bool {
	return slices.ContainsFunc(u.Events, func(e Event) bool {
		return e.Kind() != EventVisit
	})
}

type recorder[T any] struct {
	trace *Trace[T]
	tree  *Tree[T]
	on    bool
}

func newRecorder[T any](tree *Tree[T], on bool) *recorder[T] {
	return &recorder[T]{trace: new(Trace[T]), tree: tree, on: on}
}

func (r *recorder[T]) snap() {
	if r.on {
		r.trace.Snapshots = append(r.trace.Snapshots, r.tree.Snapshot())
	}
}

func (r *recorder[T]) emit(e Event) {
	r.trace.Events = append(r.trace.Events, e)
	r.snap()
}

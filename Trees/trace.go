package Trees

// Trace of one insert or delete.
// Node is the inserted node, or the node the key was found at. Found reports whether the key was already present
// before the operation; for a delete it is the success flag. Value is the deleted value.
// Path holds the nodes visited on the way down, root first, ending at the insertion parent or the located node.
type Trace[T any] struct {
	Node      NodeID
	Value     T
	Found     bool
	Path      []NodeID
	Events    []Event
	Snapshots []Snapshot[T]
}

// Changed reports whether the operation mutated the tree.
func (u *Trace[T]) Changed() bool {
	return len(u.Snapshots) > 1
}

// recorder collects events for an operation, and snapshots if on is set. The plain forms of the operations use a
// recorder with on unset.
type recorder[T any] struct {
	trace *Trace[T]
	tree  *base[T]
	on    bool
}

func newRecorder[T any](tree *base[T], on bool) *recorder[T] {
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

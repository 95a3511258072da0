package Trees

import (
	dstrace "github.com/g-m-twostay/go-dstrace"
)

// BST is the unbalanced binary search tree. It never emits events, so a traced mutation has exactly the before and
// after snapshots.
type BST[T any] struct {
	base[T]
}

// NewBST with the given comparator. A nil cmp means dstrace.Default.
func NewBST[T any](cmp dstrace.Comparator[T]) *BST[T] {
	if cmp == nil {
		cmp = dstrace.Default[T]()
	}
	return &BST[T]{newBase(cmp, 0)}
}

func (u *BST[T]) Kind() Kind {
	return KindBST
}

func (u *BST[T]) insert(v T, r *recorder[T]) *Trace[T] {
	r.snap()
	if _, found := u.place(v, r.trace); !found {
		r.snap()
	}
	return r.trace
}

func (u *BST[T]) delete(v T, r *recorder[T]) *Trace[T] {
	r.snap()
	z, path := u.SearchPath(v)
	r.trace.Path = path
	if z == Nil {
		return r.trace
	}
	r.trace.Node, r.trace.Value, r.trace.Found = z, u.nodes[z].Value, true
	u.unlink(z)
	r.snap()
	return r.trace
}

func (u *BST[T]) Insert(v T) (NodeID, bool) {
	t := u.insert(v, newRecorder(&u.base, false))
	return t.Node, !t.Found
}

func (u *BST[T]) InsertTrace(v T) *Trace[T] {
	return u.insert(v, newRecorder(&u.base, true))
}

func (u *BST[T]) Delete(v T) bool {
	return u.delete(v, newRecorder(&u.base, false)).Found
}

func (u *BST[T]) DeleteTrace(v T) *Trace[T] {
	return u.delete(v, newRecorder(&u.base, true))
}

func (u *BST[T]) Corrupt() bool {
	return u.corrupt(nil)
}

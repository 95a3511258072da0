package Trees

import (
	dstrace "github.com/g-m-twostay/go-dstrace"
)

// AVL keeps |height(left)-height(right)| <= 1 at every node. Heights are stored in Node.Height, 1 for a leaf and 0 for
// the sentinel. Every rebalancing is a single event: RotateRight for the LL schema, RotateLeft for RR, RotateLR and
// RotateRL for the double rotations.
// An insert emits at most one event. A delete may emit one per ancestor of the removed slot.
type AVL[T any] struct {
	base[T]
}

// NewAVL with the given comparator. A nil cmp means dstrace.Default.
func NewAVL[T any](cmp dstrace.Comparator[T]) *AVL[T] {
	if cmp == nil {
		cmp = dstrace.Default[T]()
	}
	return &AVL[T]{newBase(cmp, 0)}
}

func (u *AVL[T]) Kind() Kind {
	return KindAVL
}

func (u *AVL[T]) update(i NodeID) {
	n := &u.nodes[i]
	n.Height = 1 + max(u.nodes[n.Left].Height, u.nodes[n.Right].Height)
}

// Balance factor of node i: height(left)-height(right).
func (u *AVL[T]) Balance(i NodeID) int {
	return u.nodes[u.nodes[i].Left].Height - u.nodes[u.nodes[i].Right].Height
}

// rebalance the subtree at z, whose balance factor is out of [-1, 1]. Returns the new subtree root.
func (u *AVL[T]) rebalance(z NodeID, r *recorder[T]) NodeID {
	if u.Balance(z) > 1 {
		y := u.nodes[z].Left
		if u.Balance(y) >= 0 {
			s := u.rotateRight(z)
			u.update(z)
			u.update(s)
			r.emit(RotateRight{Pivot: z, Subroot: s})
			return s
		}
		x := u.nodes[y].Right
		u.rotateLeft(y)
		u.rotateRight(z)
		u.update(y)
		u.update(z)
		u.update(x)
		r.emit(RotateLR{Grandparent: z, Parent: y, Child: x})
		return x
	}
	y := u.nodes[z].Right
	if u.Balance(y) <= 0 {
		s := u.rotateLeft(z)
		u.update(z)
		u.update(s)
		r.emit(RotateLeft{Pivot: z, Subroot: s})
		return s
	}
	x := u.nodes[y].Left
	u.rotateRight(y)
	u.rotateLeft(z)
	u.update(y)
	u.update(z)
	u.update(x)
	r.emit(RotateRL{Grandparent: z, Parent: y, Child: x})
	return x
}

func (u *AVL[T]) insert(v T, r *recorder[T]) *Trace[T] {
	r.snap()
	n, found := u.place(v, r.trace)
	if found {
		return r.trace
	}
	r.snap()
	for p := u.nodes[n].Parent; p != Nil; p = u.nodes[p].Parent {
		old := u.nodes[p].Height
		u.update(p)
		if bf := u.Balance(p); bf > 1 || bf < -1 {
			u.rebalance(p, r)
			break
		}
		if u.nodes[p].Height == old {
			break
		}
	}
	return r.trace
}

func (u *AVL[T]) delete(v T, r *recorder[T]) *Trace[T] {
	r.snap()
	z, path := u.SearchPath(v)
	r.trace.Path = path
	if z == Nil {
		return r.trace
	}
	r.trace.Node, r.trace.Value, r.trace.Found = z, u.nodes[z].Value, true
	p, _, _ := u.unlink(z)
	r.snap()
	for ; p != Nil; p = u.nodes[p].Parent {
		u.update(p)
		if bf := u.Balance(p); bf > 1 || bf < -1 {
			p = u.rebalance(p, r)
		}
	}
	return r.trace
}

func (u *AVL[T]) Insert(v T) (NodeID, bool) {
	t := u.insert(v, newRecorder(&u.base, false))
	return t.Node, !t.Found
}

func (u *AVL[T]) InsertTrace(v T) *Trace[T] {
	return u.insert(v, newRecorder(&u.base, true))
}

func (u *AVL[T]) Delete(v T) bool {
	return u.delete(v, newRecorder(&u.base, false)).Found
}

func (u *AVL[T]) DeleteTrace(v T) *Trace[T] {
	return u.delete(v, newRecorder(&u.base, true))
}

// Corrupt checks the BST order, parent links, stored heights and balance factors.
func (u *AVL[T]) Corrupt() bool {
	return u.corrupt(func(i NodeID) bool {
		n := &u.nodes[i]
		bf := u.Balance(i)
		return n.Height != 1+max(u.nodes[n.Left].Height, u.nodes[n.Right].Height) || bf > 1 || bf < -1
	})
}

package Trees

import (
	dstrace "github.com/g-m-twostay/go-dstrace"
)

// RBTree is a red-black tree: the root and the sentinel are BLACK, a RED node has only BLACK children, and every
// path from a node down to the sentinel crosses the same number of BLACK nodes.
// Every colour change after the plain BST mutation is a Recolour event, except the final repaint of a RED root after
// an insert, which is a RootRecolour.
type RBTree[T any] struct {
	base[T]
}

// NewRB with the given comparator. A nil cmp means dstrace.Default.
func NewRB[T any](cmp dstrace.Comparator[T]) *RBTree[T] {
	if cmp == nil {
		cmp = dstrace.Default[T]()
	}
	return &RBTree[T]{newBase(cmp, 0)}
}

func (u *RBTree[T]) Kind() Kind {
	return KindRB
}

func (u *RBTree[T]) colour(i NodeID) Colour {
	return u.nodes[i].Colour
}

// paint i with c, emitting a Recolour when that changes anything. The sentinel is never painted.
func (u *RBTree[T]) paint(i NodeID, c Colour, r *recorder[T]) {
	if i == Nil || u.nodes[i].Colour == c {
		return
	}
	old := u.nodes[i].Colour
	u.nodes[i].Colour = c
	r.emit(Recolour{Node: i, Old: old, New: c})
}

func (u *RBTree[T]) insert(v T, r *recorder[T]) *Trace[T] {
	r.snap()
	z, found := u.place(v, r.trace)
	if found {
		return r.trace
	}
	r.snap()
	for z != u.root && u.colour(u.nodes[z].Parent) == Red {
		p := u.nodes[z].Parent
		g := u.nodes[p].Parent
		if p == u.nodes[g].Left {
			if y := u.nodes[g].Right; u.colour(y) == Red {
				u.paint(p, Black, r)
				u.paint(y, Black, r)
				u.paint(g, Red, r)
				z = g
				continue
			}
			if z == u.nodes[p].Right {
				u.rotateLeft(p)
				r.emit(RotateLR{Grandparent: g, Parent: p, Child: z})
				z, p = p, z
			}
			u.paint(p, Black, r)
			u.paint(g, Red, r)
			s := u.rotateRight(g)
			r.emit(RotateRight{Pivot: g, Subroot: s})
		} else {
			if y := u.nodes[g].Left; u.colour(y) == Red {
				u.paint(p, Black, r)
				u.paint(y, Black, r)
				u.paint(g, Red, r)
				z = g
				continue
			}
			if z == u.nodes[p].Left {
				u.rotateRight(p)
				r.emit(RotateRL{Grandparent: g, Parent: p, Child: z})
				z, p = p, z
			}
			u.paint(p, Black, r)
			u.paint(g, Red, r)
			s := u.rotateLeft(g)
			r.emit(RotateLeft{Pivot: g, Subroot: s})
		}
	}
	if u.colour(u.root) == Red {
		u.nodes[u.root].Colour = Black
		r.emit(RootRecolour{Node: u.root, New: Black})
	}
	return r.trace
}

func (u *RBTree[T]) delete(v T, r *recorder[T]) *Trace[T] {
	r.snap()
	z, path := u.SearchPath(v)
	r.trace.Path = path
	if z == Nil {
		return r.trace
	}
	r.trace.Node, r.trace.Value, r.trace.Found = z, u.nodes[z].Value, true
	_, x, removed := u.unlink(z)
	r.snap()
	if removed == Black {
		u.fixDelete(x, r)
	}
	u.nodes[Nil].Parent = Nil
	return r.trace
}

// fixDelete removes the extra BLACK carried by x, which may be the sentinel with its Parent set by transplant.
func (u *RBTree[T]) fixDelete(x NodeID, r *recorder[T]) {
	for x != u.root && u.colour(x) == Black {
		p := u.nodes[x].Parent
		if x == u.nodes[p].Left {
			w := u.nodes[p].Right
			if u.colour(w) == Red {
				u.paint(w, Black, r)
				u.paint(p, Red, r)
				s := u.rotateLeft(p)
				r.emit(RotateLeft{Pivot: p, Subroot: s})
				w = u.nodes[p].Right
			}
			if u.colour(u.nodes[w].Left) == Black && u.colour(u.nodes[w].Right) == Black {
				u.paint(w, Red, r)
				x = p
				continue
			}
			if u.colour(u.nodes[w].Right) == Black {
				u.paint(u.nodes[w].Left, Black, r)
				u.paint(w, Red, r)
				s := u.rotateRight(w)
				r.emit(RotateRight{Pivot: w, Subroot: s})
				w = u.nodes[p].Right
			}
			u.paint(w, u.colour(p), r)
			u.paint(p, Black, r)
			u.paint(u.nodes[w].Right, Black, r)
			s := u.rotateLeft(p)
			r.emit(RotateLeft{Pivot: p, Subroot: s})
			x = u.root
		} else {
			w := u.nodes[p].Left
			if u.colour(w) == Red {
				u.paint(w, Black, r)
				u.paint(p, Red, r)
				s := u.rotateRight(p)
				r.emit(RotateRight{Pivot: p, Subroot: s})
				w = u.nodes[p].Left
			}
			if u.colour(u.nodes[w].Left) == Black && u.colour(u.nodes[w].Right) == Black {
				u.paint(w, Red, r)
				x = p
				continue
			}
			if u.colour(u.nodes[w].Left) == Black {
				u.paint(u.nodes[w].Right, Black, r)
				u.paint(w, Red, r)
				s := u.rotateLeft(w)
				r.emit(RotateLeft{Pivot: w, Subroot: s})
				w = u.nodes[p].Left
			}
			u.paint(w, u.colour(p), r)
			u.paint(p, Black, r)
			u.paint(u.nodes[w].Left, Black, r)
			s := u.rotateRight(p)
			r.emit(RotateRight{Pivot: p, Subroot: s})
			x = u.root
		}
	}
	u.paint(x, Black, r)
}

func (u *RBTree[T]) Insert(v T) (NodeID, bool) {
	t := u.insert(v, newRecorder(&u.base, false))
	return t.Node, !t.Found
}

func (u *RBTree[T]) InsertTrace(v T) *Trace[T] {
	return u.insert(v, newRecorder(&u.base, true))
}

func (u *RBTree[T]) Delete(v T) bool {
	return u.delete(v, newRecorder(&u.base, false)).Found
}

func (u *RBTree[T]) DeleteTrace(v T) *Trace[T] {
	return u.delete(v, newRecorder(&u.base, true))
}

// BlackHeight is the number of BLACK nodes on the leftmost root to sentinel path, the sentinel excluded. It is
// the same on every path when the tree isn't corrupt.
func (u *RBTree[T]) BlackHeight() int {
	h := 0
	for i := u.root; i != Nil; i = u.nodes[i].Left {
		if u.nodes[i].Colour == Black {
			h++
		}
	}
	return h
}

// Corrupt checks the BST order, parent links and the red-black properties.
func (u *RBTree[T]) Corrupt() bool {
	if u.colour(u.root) != Black || u.nodes[Nil].Colour != Black {
		return true
	}
	if u.corrupt(func(i NodeID) bool {
		n := &u.nodes[i]
		return n.Colour == Red && (u.colour(n.Left) == Red || u.colour(n.Right) == Red)
	}) {
		return true
	}
	_, ok := u.blackHeight(u.root)
	return !ok
}

func (u *RBTree[T]) blackHeight(i NodeID) (int, bool) {
	if i == Nil {
		return 0, true
	}
	l, ok1 := u.blackHeight(u.nodes[i].Left)
	r, ok2 := u.blackHeight(u.nodes[i].Right)
	if !ok1 || !ok2 || l != r {
		return 0, false
	}
	if u.nodes[i].Colour == Black {
		l++
	}
	return l, true
}

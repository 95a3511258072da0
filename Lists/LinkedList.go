// Package Lists has a singly linked list and a contiguous sequence list. Positions are 1-based.
package Lists

import (
	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

type node[T any] struct {
	v  T
	nx *node[T]
}

// LinkedList is singly linked, with a tail pointer so that InsertLast is O(1).
type LinkedList[T any] struct {
	head, tail *node[T]
	sz         int
	cmp        dstrace.Comparator[T]
}

// NewLinkedList with cmp used by IndexOf. A nil cmp means dstrace.Default.
func NewLinkedList[T any](cmp dstrace.Comparator[T]) *LinkedList[T] {
	if cmp == nil {
		cmp = dstrace.Default[T]()
	}
	return &LinkedList[T]{cmp: cmp}
}

func (u *LinkedList[T]) Len() int {
	return u.sz
}

func (u *LinkedList[T]) IsEmpty() bool {
	return u.sz == 0
}

// at returns the node at 0-based index i, which must be in range.
func (u *LinkedList[T]) at(i int) *node[T] {
	n := u.head
	for ; i > 0; i-- {
		n = n.nx
	}
	return n
}

func (u *LinkedList[T]) outOfRange(pos, hi int) error {
	return errors.Wrapf(dstrace.ErrOutOfRange, "position %d is outside [1, %d]", pos, hi)
}

func (u *LinkedList[T]) InsertFirst(v T) {
	u.head = &node[T]{v, u.head}
	if u.tail == nil {
		u.tail = u.head
	}
	u.sz++
}

func (u *LinkedList[T]) InsertLast(v T) {
	n := &node[T]{v: v}
	if u.tail == nil {
		u.head = n
	} else {
		u.tail.nx = n
	}
	u.tail = n
	u.sz++
}

// InsertAfter the value at pos, which must be in [1, Len].
func (u *LinkedList[T]) InsertAfter(pos int, v T) error {
	if pos < 1 || pos > u.sz {
		return u.outOfRange(pos, u.sz)
	}
	if pos == u.sz {
		u.InsertLast(v)
		return nil
	}
	p := u.at(pos - 1)
	p.nx = &node[T]{v, p.nx}
	u.sz++
	return nil
}

// InsertAt makes v the value at pos, which must be in [1, Len+1].
func (u *LinkedList[T]) InsertAt(pos int, v T) error {
	if pos == 1 {
		u.InsertFirst(v)
		return nil
	}
	if pos < 1 || pos > u.sz+1 {
		return u.outOfRange(pos, u.sz+1)
	}
	return u.InsertAfter(pos-1, v)
}

func (u *LinkedList[T]) DeleteFirst() (T, error) {
	if u.sz == 0 {
		return *new(T), errors.Wrap(dstrace.ErrEmpty, "delete first")
	}
	n := u.head
	u.head = n.nx
	if u.head == nil {
		u.tail = nil
	}
	u.sz--
	return n.v, nil
}

func (u *LinkedList[T]) DeleteLast() (T, error) {
	if u.sz == 0 {
		return *new(T), errors.Wrap(dstrace.ErrEmpty, "delete last")
	}
	return u.DeleteAt(u.sz)
}

// DeleteAt removes the value at pos, which must be in [1, Len].
func (u *LinkedList[T]) DeleteAt(pos int) (T, error) {
	if u.sz == 0 {
		return *new(T), errors.Wrap(dstrace.ErrEmpty, "delete")
	}
	if pos < 1 || pos > u.sz {
		return *new(T), u.outOfRange(pos, u.sz)
	}
	if pos == 1 {
		return u.DeleteFirst()
	}
	p := u.at(pos - 2)
	n := p.nx
	p.nx = n.nx
	if n == u.tail {
		u.tail = p
	}
	u.sz--
	return n.v, nil
}

// Get the value at pos in [1, Len].
func (u *LinkedList[T]) Get(pos int) (T, error) {
	if pos < 1 || pos > u.sz {
		return *new(T), u.outOfRange(pos, u.sz)
	}
	return u.at(pos - 1).v, nil
}

// IndexOf the first value equal to v, 0 if there's none.
func (u *LinkedList[T]) IndexOf(v T) int {
	i := 1
	for n := u.head; n != nil; n, i = n.nx, i+1 {
		if u.cmp.Compare(n.v, v) == 0 {
			return i
		}
	}
	return 0
}

// ToSlice from head to tail.
func (u *LinkedList[T]) ToSlice() []T {
	vs := make([]T, 0, u.sz)
	for n := u.head; n != nil; n = n.nx {
		vs = append(vs, n.v)
	}
	return vs
}

func (u *LinkedList[T]) Clear() {
	u.head, u.tail, u.sz = nil, nil, 0
}

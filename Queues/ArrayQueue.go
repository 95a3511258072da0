package Queues

import (
	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

// CircArrQ keeps its values in a ring: the i-th value lives at (head+i) mod capacity, and tail is the slot the next
// value goes to.
type CircArrQ[T any] struct {
	sz, head, tail int
	content        []T
}

var _ Queue[int] = (*CircArrQ[int])(nil)

func New[T any](capacity int) (*CircArrQ[T], error) {
	if capacity < 1 {
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "queue capacity %d is below 1", capacity)
	}
	return &CircArrQ[T]{content: make([]T, capacity)}, nil
}

func (u *CircArrQ[T]) IsEmpty() bool {
	return u.sz == 0
}

func (u *CircArrQ[T]) IsFull() bool {
	return u.sz == len(u.content)
}

func (u *CircArrQ[T]) Len() int {
	return u.sz
}

func (u *CircArrQ[T]) Capacity() int {
	return len(u.content)
}

func (u *CircArrQ[T]) Head() int {
	return u.head
}

func (u *CircArrQ[T]) Tail() int {
	return u.tail
}

func (u *CircArrQ[T]) Clear() {
	clear(u.content)
	u.tail, u.head, u.sz = 0, 0, 0
}

// Enqueue item at the tail. Returns false when full.
func (u *CircArrQ[T]) Enqueue(item T) bool {
	if u.IsFull() {
		return false
	}
	u.content[u.tail] = item
	u.tail = (u.tail + 1) % len(u.content)
	u.sz++
	return true
}

func (u *CircArrQ[T]) Dequeue() (item T, e error) {
	if u.IsEmpty() {
		return item, errors.Wrap(dstrace.ErrEmpty, "dequeue")
	}
	item = u.content[u.head]
	u.content[u.head] = *new(T)
	u.head = (u.head + 1) % len(u.content)
	u.sz--
	return item, nil
}

func (u *CircArrQ[T]) Front() (item T, e error) {
	if u.IsEmpty() {
		return item, errors.Wrap(dstrace.ErrEmpty, "front")
	}
	return u.content[u.head], nil
}

// At is the i-th value from the head.
func (u *CircArrQ[T]) At(i int) (T, error) {
	if i < 0 || i >= u.sz {
		return *new(T), errors.Wrapf(dstrace.ErrOutOfRange, "queue position %d of %d", i, u.sz)
	}
	return u.content[(u.head+i)%len(u.content)], nil
}

// Items from head to tail.
func (u *CircArrQ[T]) Items() []T {
	vs := make([]T, u.sz)
	if u.head+u.sz <= len(u.content) {
		copy(vs, u.content[u.head:u.head+u.sz])
	} else {
		n := copy(vs, u.content[u.head:])
		copy(vs[n:], u.content[:u.tail])
	}
	return vs
}

// Slots is the raw ring, empty slots included.
func (u *CircArrQ[T]) Slots() []T {
	return append([]T(nil), u.content...)
}

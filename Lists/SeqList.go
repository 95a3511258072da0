package Lists

import (
	"slices"

	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

// SeqList is a fixed capacity list stored contiguously, shifting values on insert and delete.
type SeqList[T any] struct {
	items []T
	cmp   dstrace.Comparator[T]
}

// NewSeqList with room for capacity values. A nil cmp means dstrace.Default.
func NewSeqList[T any](capacity int, cmp dstrace.Comparator[T]) (*SeqList[T], error) {
	if capacity < 0 {
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "list capacity %d is negative", capacity)
	}
	if cmp == nil {
		cmp = dstrace.Default[T]()
	}
	return &SeqList[T]{items: make([]T, 0, capacity), cmp: cmp}, nil
}

func (u *SeqList[T]) Len() int {
	return len(u.items)
}

func (u *SeqList[T]) Capacity() int {
	return cap(u.items)
}

func (u *SeqList[T]) IsFull() bool {
	return len(u.items) == cap(u.items)
}

// Insert v at pos in [1, Len+1], shifting the rest right. Returns false without error when full.
func (u *SeqList[T]) Insert(pos int, v T) (bool, error) {
	if pos < 1 || pos > len(u.items)+1 {
		return false, errors.Wrapf(dstrace.ErrOutOfRange, "position %d is outside [1, %d]", pos, len(u.items)+1)
	}
	if u.IsFull() {
		return false, nil
	}
	u.items = slices.Insert(u.items, pos-1, v)
	return true, nil
}

// Append v, false when full.
func (u *SeqList[T]) Append(v T) bool {
	ok, _ := u.Insert(len(u.items)+1, v)
	return ok
}

// Delete the value at pos in [1, Len], shifting the rest left.
func (u *SeqList[T]) Delete(pos int) (T, error) {
	var zero T
	if len(u.items) == 0 {
		return zero, errors.Wrap(dstrace.ErrEmpty, "delete")
	}
	if pos < 1 || pos > len(u.items) {
		return zero, errors.Wrapf(dstrace.ErrOutOfRange, "position %d is outside [1, %d]", pos, len(u.items))
	}
	v := u.items[pos-1]
	u.items = slices.Delete(u.items, pos-1, pos)
	return v, nil
}

func (u *SeqList[T]) Get(pos int) (T, error) {
	if pos < 1 || pos > len(u.items) {
		return *new(T), errors.Wrapf(dstrace.ErrOutOfRange, "position %d is outside [1, %d]", pos, len(u.items))
	}
	return u.items[pos-1], nil
}

// Set the value at pos in [1, Len], returning the old one.
func (u *SeqList[T]) Set(pos int, v T) (T, error) {
	old, err := u.Get(pos)
	if err != nil {
		return old, err
	}
	u.items[pos-1] = v
	return old, nil
}

// Locate the first value equal to v, 0 if there's none.
func (u *SeqList[T]) Locate(v T) int {
	return 1 + slices.IndexFunc(u.items, func(w T) bool { return u.cmp.Compare(w, v) == 0 })
}

func (u *SeqList[T]) ToSlice() []T {
	return slices.Clone(u.items)
}

func (u *SeqList[T]) Clear() {
	clear(u.items)
	u.items = u.items[:0]
}

// Package Stacks is a bounded LIFO stack that can grow geometrically when it fills up.
package Stacks

import (
	"math"

	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

const DefaultExpandFactor = 2.0

type Config struct {
	Capacity     int
	AutoExpand   bool
	ExpandFactor float64 //DefaultExpandFactor when 0.
}

// Resize of the capacity from Old to New. Manual is set for SetCapacity.
type Resize struct {
	Old, New int
	Manual   bool
}

type Stack[T any] struct {
	items   []T
	cap     int
	auto    bool
	factor  float64
	resizes []Resize
}

func New[T any](cfg Config) (*Stack[T], error) {
	if cfg.Capacity < 0 {
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "stack capacity %d is negative", cfg.Capacity)
	}
	if cfg.ExpandFactor == 0 {
		cfg.ExpandFactor = DefaultExpandFactor
	}
	if cfg.ExpandFactor < 0 || math.IsNaN(cfg.ExpandFactor) {
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "expand factor %v is negative", cfg.ExpandFactor)
	}
	return &Stack[T]{items: make([]T, 0, cfg.Capacity), cap: cfg.Capacity, auto: cfg.AutoExpand, factor: cfg.ExpandFactor}, nil
}

// grown capacity: ceil(cap*factor), but at least cap+1.
func (u *Stack[T]) grown() int {
	return max(int(math.Ceil(float64(u.cap)*u.factor)), u.cap+1)
}

func (u *Stack[T]) push(v T, expand bool) (bool, *Resize) {
	var r *Resize
	if u.IsFull() {
		if !expand {
			return false, nil
		}
		r = &Resize{Old: u.cap, New: u.grown()}
		u.cap = r.New
		u.resizes = append(u.resizes, *r)
	}
	u.items = append(u.items, v)
	return true, r
}

// Push v. A full stack grows if it auto expands, and otherwise rejects v. The resize is returned if one happened.
func (u *Stack[T]) Push(v T) (bool, *Resize) {
	return u.push(v, u.auto)
}

// ForcePush is Push that grows a full stack even when it doesn't auto expand.
func (u *Stack[T]) ForcePush(v T) (bool, *Resize) {
	return u.push(v, true)
}

func (u *Stack[T]) Pop() (T, error) {
	var zero T
	if u.IsEmpty() {
		return zero, errors.Wrap(dstrace.ErrEmpty, "pop")
	}
	v := u.items[len(u.items)-1]
	u.items[len(u.items)-1] = zero
	u.items = u.items[:len(u.items)-1]
	return v, nil
}

func (u *Stack[T]) Peek() (T, error) {
	if u.IsEmpty() {
		var zero T
		return zero, errors.Wrap(dstrace.ErrEmpty, "peek")
	}
	return u.items[len(u.items)-1], nil
}

// SetCapacity to n, which can't be below Len. The change is recorded as a manual Resize.
func (u *Stack[T]) SetCapacity(n int) error {
	if n < len(u.items) {
		return errors.Wrapf(dstrace.ErrInvalidArgument, "capacity %d is below the %d stacked values", n, len(u.items))
	}
	if n != u.cap {
		u.resizes = append(u.resizes, Resize{Old: u.cap, New: n, Manual: true})
		u.cap = n
	}
	return nil
}

func (u *Stack[T]) IsEmpty() bool {
	return len(u.items) == 0
}

func (u *Stack[T]) IsFull() bool {
	return len(u.items) >= u.cap
}

func (u *Stack[T]) Len() int {
	return len(u.items)
}

func (u *Stack[T]) Capacity() int {
	return u.cap
}

func (u *Stack[T]) AutoExpand() bool {
	return u.auto
}

func (u *Stack[T]) ExpandFactor() float64 {
	return u.factor
}

// Top is the index of the top value, -1 when empty.
func (u *Stack[T]) Top() int {
	return len(u.items) - 1
}

// Resizes in the order they happened.
func (u *Stack[T]) Resizes() []Resize {
	return u.resizes
}

// Items from the bottom up.
func (u *Stack[T]) Items() []T {
	return append([]T(nil), u.items...)
}

// Clear the values. Capacity and resize history stay.
func (u *Stack[T]) Clear() {
	clear(u.items)
	u.items = u.items[:0]
}

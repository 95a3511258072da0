package Stacks

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

func TestStack_Bounded(t *testing.T) {
	requireT := require.New(t)
	s := lo.Must(New[int](Config{Capacity: 2}))
	requireT.Equal(-1, s.Top())
	_, err := s.Pop()
	requireT.ErrorIs(err, dstrace.ErrEmpty)
	_, err = s.Peek()
	requireT.ErrorIs(err, dstrace.ErrEmpty)

	for v := 1; v <= 2; v++ {
		ok, r := s.Push(v)
		requireT.True(ok)
		requireT.Nil(r)
		requireT.Equal(v, lo.Must(s.Peek()))
	}
	ok, r := s.Push(3)
	requireT.False(ok)
	requireT.Nil(r)
	requireT.True(s.IsFull())
	requireT.Equal([]int{1, 2}, s.Items())

	ok, r = s.ForcePush(3)
	requireT.True(ok)
	requireT.Equal(&Resize{Old: 2, New: 4}, r)
	requireT.Equal(2, s.Top())

	for v := 3; v >= 1; v-- {
		requireT.Equal(v, lo.Must(s.Pop()))
	}
	requireT.True(s.IsEmpty())
}

func TestStack_AutoExpand(t *testing.T) {
	requireT := require.New(t)
	s := lo.Must(New[string](Config{Capacity: 0, AutoExpand: true, ExpandFactor: 1.5}))
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		ok, _ := s.Push(v)
		requireT.True(ok)
	}
	requireT.Equal([]Resize{{Old: 0, New: 1}, {Old: 1, New: 2}, {Old: 2, New: 3}, {Old: 3, New: 5}}, s.Resizes())
	requireT.Equal(5, s.Capacity())

	requireT.ErrorIs(s.SetCapacity(4), dstrace.ErrInvalidArgument)
	requireT.NoError(s.SetCapacity(8))
	requireT.Equal(Resize{Old: 5, New: 8, Manual: true}, s.Resizes()[4])

	s.Clear()
	requireT.Equal(0, s.Len())
	requireT.Equal(8, s.Capacity())
}

func TestStack_Config(t *testing.T) {
	requireT := require.New(t)
	_, err := New[int](Config{Capacity: -1})
	requireT.ErrorIs(err, dstrace.ErrInvalidArgument)
	_, err = New[int](Config{Capacity: 1, ExpandFactor: -2})
	requireT.ErrorIs(err, dstrace.ErrInvalidArgument)
	s := lo.Must(New[int](Config{Capacity: 3}))
	requireT.Equal(DefaultExpandFactor, s.ExpandFactor())
	requireT.False(s.AutoExpand())
}

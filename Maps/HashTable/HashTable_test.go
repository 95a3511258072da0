package HashTable

import (
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	dstrace "github.com/g-m-twostay/go-dstrace"
	"github.com/g-m-twostay/go-dstrace/Maps"
)

func openTable(capacity int, expr string) *Table[int] {
	return lo.Must(New[int](Config{Capacity: capacity, Mode: Maps.OpenAddressing, Expr: expr}, nil))
}

func TestOpen_Scenario(t *testing.T) {
	requireT := require.New(t)
	tb := openTable(11, "x % capacity")

	requireT.Equal([]int{10}, tb.Insert(10).Path)
	requireT.Equal([]int{10, 0}, tb.Insert(21).Path)
	p := tb.Find(21)
	requireT.True(p.Found)
	requireT.Equal([]int{10, 0}, p.Path)
	requireT.Equal(0, p.Index)
	requireT.Equal(-1, p.ChainPos)

	for i, c := range tb.Cells() {
		switch i {
		case 0:
			requireT.Equal(Cell[int]{Used, 21}, c)
		case 10:
			requireT.Equal(Cell[int]{Used, 10}, c)
		default:
			requireT.Equal(Empty, c.State)
		}
	}
	requireT.Equal(2, tb.Len())
	requireT.InDelta(2.0/11, tb.LoadFactor(), 1e-9)
	requireT.Nil(tb.Buckets())
}

func TestOpen_Tombstones(t *testing.T) {
	requireT := require.New(t)
	tb := openTable(11, "")
	for _, v := range []int{10, 21, 32} {
		requireT.True(tb.Insert(v).Found)
	}
	p := tb.Delete(21)
	requireT.True(p.Found)
	requireT.Equal(0, p.Index)
	requireT.Equal(Tombstone, tb.Cells()[0].State)
	requireT.Equal(2, tb.Len())

	p = tb.Find(32)
	requireT.True(p.Found)
	requireT.Equal([]int{10, 0, 1}, p.Path)

	p = tb.Insert(32)
	requireT.True(p.Existed)
	requireT.Equal(2, tb.Len())

	p = tb.Insert(43)
	requireT.True(p.Found)
	requireT.False(p.Existed)
	requireT.Equal([]int{10, 0, 1, 2}, p.Path)
	requireT.Equal(0, p.Index)
	requireT.Equal(Used, tb.Cells()[0].State)

	p = tb.Delete(99)
	requireT.False(p.Found)
	requireT.Equal(3, tb.Len())
}

func TestOpen_Full(t *testing.T) {
	requireT := require.New(t)
	tb := openTable(3, "")
	for v := range 3 {
		tb.Insert(v)
	}
	p := tb.Insert(3)
	requireT.True(p.Full)
	requireT.False(p.Found)
	requireT.Equal([]int{0, 1, 2}, p.Path)
	requireT.Equal(3, tb.Len())

	p = tb.Find(3)
	requireT.False(p.Found)
	requireT.Len(p.Path, 3)

	tb.Delete(1)
	p = tb.Insert(4)
	requireT.True(p.Found)
	requireT.Equal(1, p.Index)
	requireT.Equal([]int{1, 2, 0}, p.Path)
}

func TestChaining(t *testing.T) {
	requireT := require.New(t)
	tb := lo.Must(New[int](Config{Capacity: 5, Mode: Maps.Chaining}, nil))
	for _, v := range []int{1, 6, 11} {
		p := tb.Insert(v)
		requireT.True(p.Found)
		requireT.Equal([]int{1}, p.Path)
	}
	p := tb.Find(11)
	requireT.True(p.Found)
	requireT.Equal(1, p.Index)
	requireT.Equal(2, p.ChainPos)
	requireT.True(tb.Insert(6).Existed)

	requireT.True(tb.Delete(6).Found)
	requireT.Equal(1, tb.Find(11).ChainPos)
	requireT.Equal([][]int{nil, {1, 11}, nil, nil, nil}, tb.Buckets())
	requireT.Nil(tb.Cells())
	requireT.False(tb.Find(6).Found)

	requireT.NoError(tb.Resize(1))
	requireT.Equal([][]int{{1, 11}}, tb.Buckets())
	requireT.Equal(2, tb.Len())
}

func TestResize(t *testing.T) {
	requireT := require.New(t)
	tb := openTable(11, "")
	for _, v := range []int{10, 21, 32} {
		tb.Insert(v)
	}
	requireT.ErrorIs(tb.Resize(2), dstrace.ErrInvalidArgument)
	requireT.ErrorIs(tb.Resize(0), dstrace.ErrInvalidArgument)
	requireT.NoError(tb.Resize(7))
	requireT.Equal(7, tb.Capacity())
	requireT.Equal(3, tb.Len())
	for _, v := range []int{10, 21, 32} {
		p := tb.Find(v)
		requireT.True(p.Found)
		requireT.Equal(v%7, p.Path[0])
	}
	tb.Clear()
	requireT.Equal(0, tb.Len())
	requireT.Equal(7, tb.Capacity())
	requireT.Empty(tb.Values())
}

func TestConfig(t *testing.T) {
	requireT := require.New(t)
	_, err := New[int](Config{Capacity: 0}, nil)
	requireT.ErrorIs(err, dstrace.ErrInvalidArgument)
	_, err = New[int](Config{Capacity: 3, Expr: "import os"}, nil)
	requireT.ErrorIs(err, dstrace.ErrInvalidExpr)
	tb := openTable(3, "")
	requireT.Equal(Maps.OpenAddressing, tb.Mode())
	requireT.Equal("x % capacity", tb.Expr().String())
}

func TestMixedValues(t *testing.T) {
	requireT := require.New(t)
	tb := lo.Must(New[any](Config{Capacity: 13}, nil))
	requireT.True(tb.Insert("apple").Found)
	requireT.True(tb.Insert(21).Found)
	requireT.True(tb.Insert("21").Existed)
	requireT.True(tb.Insert(2.5).Found)
	requireT.True(tb.Find("apple").Found)
	requireT.Equal(int(dstrace.HashInt("apple")%13), tb.Home("apple"))
	requireT.Equal(8, tb.Home(21))
	requireT.Equal(3, tb.Len())
}

// TestOpen_Probing checks that every live value is reachable from its home cell without crossing an empty cell,
// under random inserts and deletes with a clustering hash.
func TestOpen_Probing(t *testing.T) {
	requireT := require.New(t)
	rg := rand.New(rand.NewSource(0))
	tb := openTable(31, "(x * 7) // 3 % capacity")
	live := map[int]bool{}
	for range 2000 {
		v := rg.Intn(60)
		if rg.Intn(3) > 0 {
			if p := tb.Insert(v); p.Found {
				live[v] = true
			}
		} else {
			tb.Delete(v)
			delete(live, v)
		}
		requireT.Equal(len(live), tb.Len())
	}
	cells := tb.Cells()
	for v := range live {
		p := tb.Find(v)
		requireT.True(p.Found, v)
		requireT.Equal(tb.Home(v), p.Path[0])
		for _, i := range p.Path {
			requireT.NotEqual(Empty, cells[i].State)
		}
	}
	requireT.ElementsMatch(lo.Keys(live), tb.Values())
}

func TestEqualValuesShareHome(t *testing.T) {
	requireT := require.New(t)
	for _, mode := range []Maps.Mode{Maps.OpenAddressing, Maps.Chaining} {
		tb := lo.Must(New[string](Config{Capacity: 13, Mode: mode}, nil))
		requireT.True(tb.Insert("2.5").Found)
		requireT.Equal(tb.Home("2.5"), tb.Home("2.50"))
		requireT.Equal(tb.Home("3"), tb.Home("3.0"))
		requireT.True(tb.Insert("2.50").Existed, mode)
		requireT.True(tb.Find("2.50").Found, mode)
		requireT.Equal(1, tb.Len())
		requireT.True(tb.Delete(" 2.5").Found, mode)
		requireT.Zero(tb.Len())
	}

	big := lo.Must(New[any](Config{Capacity: 1}, nil))
	requireT.True(big.Insert(int64(1 << 53)).Found)
	p := big.Insert(int64(1<<53 + 1))
	requireT.False(p.Existed)
	requireT.True(p.Full)
	requireT.False(big.Find(int64(1<<53 + 1)).Found)
}

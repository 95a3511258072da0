package BPlus

import (
	"math/rand"
	"testing"

	"github.com/google/btree"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

const (
	tAddN        = 3000
	tAddValRange = 500
)

var rg = rand.New(rand.NewSource(0))

func requireAligned[T any](requireT *require.Assertions, tr *Trace[T]) {
	if !tr.Changed() {
		requireT.Len(tr.Snapshots, 1)
		return
	}
	requireT.Len(tr.Snapshots, 1+len(tr.Events))
	for i, e := range tr.Events {
		for _, id := range e.Nodes() {
			_, before := tr.Snapshots[i].Get(id)
			_, after := tr.Snapshots[i+1].Get(id)
			requireT.True(before || after, "event %v references node %d missing around it", e, id)
		}
	}
}

func kinds(es []Event) []EventKind {
	return lo.Map(es, func(e Event, _ int) EventKind { return e.Kind() })
}

func TestNew_Order(t *testing.T) {
	requireT := require.New(t)
	_, err := New[int](2, nil)
	requireT.ErrorIs(err, dstrace.ErrInvalidArgument)
	tree, err := New[int](3, nil)
	requireT.NoError(err)
	requireT.Equal(0, tree.Len())
	requireT.Equal(0, tree.Depth())
	requireT.False(tree.Corrupt())
}

func TestInsert_Order3(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](3, dstrace.Ordered[int]()))

	var last *Trace[int]
	for _, k := range []int{10, 20, 5, 6, 12, 30, 7, 17} {
		last = tree.InsertTrace(k)
		requireAligned(requireT, last)
		requireT.False(tree.Corrupt())
	}

	requireT.Equal([][]int{{5, 6}, {7}, {10, 12}, {17}, {20, 30}}, tree.LeafKeys())
	requireT.Equal([]int{5, 6, 7, 10, 12, 17, 20, 30}, tree.Keys())
	requireT.Equal(8, tree.Len())
	requireT.Equal(2, tree.Depth())
	root, _ := tree.Node(tree.Root())
	requireT.Equal([]int{10}, root.Keys)
	l, _ := tree.Node(root.Children[0])
	r, _ := tree.Node(root.Children[1])
	requireT.Equal([]int{7}, l.Keys)
	requireT.Equal([]int{17, 20}, r.Keys)

	requireT.Equal([]EventKind{EventVisit, EventVisit, EventVisit, EventInsert, EventSplit}, kinds(last.Events))
	sp := last.Events[4].(Split[int])
	requireT.Equal(17, sp.Promoted)
	requireT.True(sp.Leaf)
	nn, _ := tree.Node(sp.NewNode)
	requireT.Equal([]int{17}, nn.Keys)
	requireT.Equal([]int{5, 6, 7, 10, 12, 20, 30}, last.Snapshots[0].Keys())
}

func TestInsert_RootSplit(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](3, nil))
	tree.Insert(10)
	tree.Insert(20)
	old := tree.Root()

	tr := tree.InsertTrace(5)
	requireAligned(requireT, tr)
	requireT.Equal([]EventKind{EventVisit, EventInsert, EventSplit, EventSplit}, kinds(tr.Events))
	first := tr.Events[2].(Split[int])
	requireT.Equal(old, first.Node)
	requireT.Equal(20, first.Promoted)
	second := tr.Events[3].(Split[int])
	requireT.Equal(tree.Root(), second.Node)
	requireT.Equal(Nil, second.NewNode)
	requireT.Equal(20, second.Promoted)
	requireT.False(second.Leaf)
	requireT.Equal([][]int{{5, 10}, {20}}, tree.LeafKeys())
}

func TestInsert_InternalSplit(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](3, nil))
	for _, k := range []int{10, 20, 5, 6, 12, 30} {
		tree.Insert(k)
	}
	tr := tree.InsertTrace(7)
	requireAligned(requireT, tr)
	requireT.Equal([]EventKind{EventVisit, EventVisit, EventInsert, EventSplit, EventSplit, EventSplit}, kinds(tr.Events))
	internal := tr.Events[4].(Split[int])
	requireT.False(internal.Leaf)
	requireT.Equal(10, internal.Promoted)
	n, _ := tree.Node(internal.NewNode)
	requireT.NotContains(n.Keys, 10)
	requireT.Equal(2, tree.Depth())
}

func TestInsert_Duplicate(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](4, nil))
	for k := range 10 {
		tree.Insert(k)
	}
	tr := tree.InsertTrace(3)
	requireT.True(tr.Found)
	requireT.False(tr.Changed())
	requireT.Len(tr.Snapshots, 1)
	requireT.Len(tr.Events, len(tr.Path))
	requireT.False(tree.Insert(3))
	requireT.Equal(10, tree.Len())
}

func TestSearch(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](3, nil))
	for _, k := range []int{10, 20, 5, 6, 12, 30, 7, 17} {
		tree.Insert(k)
	}
	found, path := tree.Search(12)
	requireT.True(found)
	requireT.Len(path, 3)
	requireT.Equal(tree.Root(), path[0])
	leaf, _ := tree.Node(path[2])
	requireT.True(leaf.Leaf)
	requireT.Equal([]int{10, 12}, leaf.Keys)

	found, path = tree.Search(11)
	requireT.False(found)
	requireT.Len(path, 3)
}

func TestDelete_BorrowMergeCollapse(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](3, nil))
	for _, k := range []int{1, 2, 3} {
		tree.Insert(k)
	}
	root := tree.Root()

	tr := tree.DeleteTrace(3)
	requireAligned(requireT, tr)
	requireT.Equal([]EventKind{EventVisit, EventVisit, EventRemove, EventBorrow}, kinds(tr.Events))
	requireT.Equal(2, tr.Events[3].(Borrow[int]).Key)
	requireT.Equal([][]int{{1}, {2}}, tree.LeafKeys())

	tr = tree.DeleteTrace(2)
	requireAligned(requireT, tr)
	requireT.Equal([]EventKind{EventVisit, EventVisit, EventRemove, EventMerge, EventCollapse}, kinds(tr.Events))
	c := tr.Events[4].(Collapse)
	requireT.Equal(root, c.Old)
	requireT.Equal(tree.Root(), c.New)
	_, ok := tree.Node(root)
	requireT.False(ok)
	requireT.Equal(0, tree.Depth())
	requireT.Equal([]int{1}, tree.Keys())
	requireT.False(tree.Corrupt())

	tr = tree.DeleteTrace(42)
	requireT.False(tr.Found)
	requireT.False(tr.Changed())
}

func TestDelete_InternalBorrow(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](3, nil))
	for _, k := range []int{10, 20, 5, 6, 12, 30, 7, 17} {
		tree.Insert(k)
	}
	requireT.True(tree.Delete(6))
	tr := tree.DeleteTrace(7)
	requireAligned(requireT, tr)
	requireT.Equal([]EventKind{EventVisit, EventVisit, EventVisit, EventRemove, EventMerge, EventBorrow}, kinds(tr.Events))
	requireT.Equal(10, tr.Events[5].(Borrow[int]).Key)
	requireT.Equal([][]int{{5}, {10, 12}, {17}, {20, 30}}, tree.LeafKeys())
	requireT.False(tree.Corrupt())
}

// TestAddDel compares against google/btree over random inserts and deletes, for several orders.
func TestAddDel(t *testing.T) {
	for order := 3; order <= 8; order++ {
		requireT := require.New(t)
		tree := lo.Must(New[int](order, dstrace.Ordered[int]()))
		oracle := btree.NewG[int](2, func(a, b int) bool { return a < b })

		for i := range tAddN {
			k := rg.Intn(tAddValRange)
			if rg.Intn(5) < 3 {
				tr := tree.InsertTrace(k)
				_, replaced := oracle.ReplaceOrInsert(k)
				requireT.Equal(replaced, tr.Found)
				if i%97 == 0 {
					requireAligned(requireT, tr)
				}
			} else {
				_, removed := oracle.Delete(k)
				requireT.Equal(removed, tree.Delete(k))
			}
			requireT.Equal(oracle.Len(), tree.Len())
		}
		requireT.False(tree.Corrupt(), "order %d", order)

		want := make([]int, 0, oracle.Len())
		oracle.Ascend(func(k int) bool {
			want = append(want, k)
			return true
		})
		requireT.Equal(want, tree.Keys())
		for _, k := range want {
			found, _ := tree.Search(k)
			requireT.True(found)
		}
		for _, k := range want {
			requireT.True(tree.Delete(k))
		}
		requireT.Equal(0, tree.Len())
		requireT.Equal(0, tree.Depth())
		requireT.False(tree.Corrupt())
	}
}

func TestSnapshot_Independent(t *testing.T) {
	requireT := require.New(t)
	tree := lo.Must(New[int](3, nil))
	tree.Insert(1)
	tree.Insert(2)
	s := tree.Snapshot()
	tree.Insert(3)
	tree.Delete(1)
	requireT.Equal([]int{1, 2}, s.Keys())
	requireT.Equal([]int{2, 3}, tree.Keys())

	tree.Clear()
	requireT.Equal(0, tree.Len())
	requireT.Empty(tree.Keys())
	requireT.Equal([]int{1, 2}, s.Keys())
}

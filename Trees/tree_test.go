package Trees

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/petar/GoLLRB/llrb"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

const (
	tAddN        = 2000
	tAddValRange = 4000
)

var rg = rand.New(rand.NewSource(0))

func newTrees() []Tree[int] {
	return []Tree[int]{NewBST[int](dstrace.Ordered[int]()), NewAVL[int](nil), NewRB[int](dstrace.Ordered[int]())}
}

// requireAligned checks that the snapshots line up with the events, and that every node an event references exists in
// the snapshot taken before it.
func requireAligned[T any](requireT *require.Assertions, tr *Trace[T]) {
	if !tr.Changed() {
		requireT.Len(tr.Snapshots, 1)
		requireT.Empty(tr.Events)
		return
	}
	requireT.Len(tr.Snapshots, 2+len(tr.Events))
	for i, e := range tr.Events {
		for _, id := range e.Nodes() {
			n, ok := tr.Snapshots[1+i].Get(id)
			requireT.True(ok, "event %v references node %d missing from the previous snapshot", e, id)
			requireT.Equal(id, n.Origin)
		}
	}
	for _, id := range tr.Path {
		_, ok := tr.Snapshots[0].Get(id)
		requireT.True(ok)
	}
}

func TestAVL_InsertRotateRight(t *testing.T) {
	requireT := require.New(t)
	tree := NewAVL[int](nil)

	n30, _ := tree.Insert(30)
	tree.Insert(20)
	tr := tree.InsertTrace(10)
	requireAligned(requireT, tr)

	root, _ := tree.Node(tree.Root())
	requireT.Equal(20, root.Value)
	l, _ := tree.Node(root.Left)
	r, _ := tree.Node(root.Right)
	requireT.Equal(10, l.Value)
	requireT.Equal(30, r.Value)

	requireT.Len(tr.Events, 1)
	rot, ok := tr.Events[0].(RotateRight)
	requireT.True(ok)
	requireT.Equal(n30, rot.Pivot)
	requireT.Equal(tree.Root(), rot.Subroot)
	requireT.Equal(30, lo.Must(tr.Snapshots[1].Get(rot.Pivot)).Value)
	requireT.Equal([]int{30, 20}, lo.Map(tr.Path, func(id NodeID, _ int) int { return lo.Must(tr.Snapshots[0].Get(id)).Value }))
}

func TestAVL_DoubleRotations(t *testing.T) {
	requireT := require.New(t)

	tree := NewAVL[int](nil)
	tree.Insert(30)
	tree.Insert(10)
	tr := tree.InsertTrace(20)
	requireT.Len(tr.Events, 1)
	requireT.Equal(EventRotateLR, tr.Events[0].Kind())
	requireT.Equal([]int{10, 20, 30}, tree.InOrder())
	root, _ := tree.Node(tree.Root())
	requireT.Equal(20, root.Value)
	requireT.Equal(2, root.Height)

	tree = NewAVL[int](nil)
	tree.Insert(10)
	tree.Insert(30)
	tr = tree.InsertTrace(20)
	requireT.Len(tr.Events, 1)
	requireT.Equal(EventRotateRL, tr.Events[0].Kind())
	requireT.False(tree.Corrupt())
}

func TestAVL_InsertStopsEarly(t *testing.T) {
	requireT := require.New(t)
	tree := NewAVL[int](nil)
	for _, v := range []int{50, 25, 75, 10, 30, 60, 90} {
		tree.Insert(v)
	}
	tr := tree.InsertTrace(5)
	requireT.Empty(tr.Events)
	requireT.Len(tr.Snapshots, 2)
	tr = tree.InsertTrace(1)
	requireT.Len(tr.Events, 1)
	requireT.False(tree.Corrupt())
}

func TestAVL_DeleteMayRotateTwice(t *testing.T) {
	requireT := require.New(t)
	tree := NewAVL[int](nil)
	// a Fibonacci shaped tree: deleting the shallowest leaf rebalances at two levels.
	for _, v := range []int{8, 5, 11, 3, 7, 10, 12, 2, 4, 6, 9, 1} {
		tree.Insert(v)
	}
	requireT.False(tree.Corrupt())
	tr := tree.DeleteTrace(12)
	requireAligned(requireT, tr)
	requireT.True(tr.Found)
	requireT.Len(tr.Events, 2)
	requireT.False(tree.Corrupt())
	requireT.Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, tree.InOrder())
}

func TestRB_InsertSequence(t *testing.T) {
	requireT := require.New(t)
	tree := NewRB[int](nil)

	var traces []*Trace[int]
	for v := 1; v <= 7; v++ {
		tr := tree.InsertTrace(v)
		requireAligned(requireT, tr)
		requireT.False(tree.Corrupt())
		traces = append(traces, tr)
	}

	requireT.Equal([]int{1, 2, 3, 4, 5, 6, 7}, tree.InOrder())
	root, _ := tree.Node(tree.Root())
	requireT.Equal(Black, root.Colour)
	requireT.Equal(2, root.Value)
	requireT.Equal(2, tree.BlackHeight())

	requireT.Equal([]Event{RootRecolour{Node: traces[0].Node, New: Black}}, traces[0].Events)

	one := traces[0].Node
	i := slices.IndexFunc(traces[2].Events, func(e Event) bool {
		rot, ok := e.(RotateLeft)
		return ok && rot.Pivot == one
	})
	requireT.GreaterOrEqual(i, 0)
	requireT.Equal(1, lo.Must(traces[2].Snapshots[1+i].Get(one)).Value)
	requireT.Equal([]EventKind{EventRecolour, EventRecolour, EventRotateLeft}, lo.Map(traces[2].Events, func(e Event, _ int) EventKind { return e.Kind() }))

	// 1..8 finally lifts 4 to the root.
	tree.Insert(8)
	root, _ = tree.Node(tree.Root())
	requireT.Equal(4, root.Value)
	requireT.False(tree.Corrupt())
}

func TestRB_InnerChildHalfStep(t *testing.T) {
	requireT := require.New(t)
	tree := NewRB[int](nil)
	tree.Insert(30)
	p, _ := tree.Insert(10)
	tr := tree.InsertTrace(20)
	requireAligned(requireT, tr)
	requireT.Equal(RotateLR{Grandparent: 1, Parent: p, Child: tr.Node}, tr.Events[0])
	requireT.Equal(EventRotateRight, tr.Events[len(tr.Events)-1].Kind())
	root, _ := tree.Node(tree.Root())
	requireT.Equal(20, root.Value)
	requireT.False(tree.Corrupt())
}

func TestRB_Oracle(t *testing.T) {
	requireT := require.New(t)
	tree := NewRB[int](dstrace.Ordered[int]())
	oracle := llrb.New()

	for range tAddN {
		v := rg.Intn(tAddValRange)
		_, added := tree.Insert(v)
		requireT.Equal(!oracle.Has(llrb.Int(v)), added)
		oracle.ReplaceOrInsert(llrb.Int(v))
	}
	for range tAddN {
		v := rg.Intn(tAddValRange)
		tr := tree.DeleteTrace(v)
		requireAligned(requireT, tr)
		requireT.Equal(oracle.Delete(llrb.Int(v)) != nil, tr.Found)
	}
	requireT.False(tree.Corrupt())

	want := make([]int, 0, oracle.Len())
	oracle.AscendGreaterOrEqual(llrb.Inf(-1), func(i llrb.Item) bool {
		want = append(want, int(i.(llrb.Int)))
		return true
	})
	requireT.Equal(want, tree.InOrder())
	requireT.Equal(oracle.Len(), tree.Len())
}

func TestTree_AddDel(t *testing.T) {
	for _, tree := range newTrees() {
		t.Run(tree.Kind().String(), func(t *testing.T) {
			requireT := require.New(t)
			content := make(map[int]struct{})
			for range tAddN / 4 {
				v := rg.Intn(tAddValRange / 4)
				_, in := content[v]
				tr := tree.InsertTrace(v)
				requireAligned(requireT, tr)
				requireT.Equal(in, tr.Found)
				content[v] = struct{}{}
			}
			for range tAddN / 4 {
				v := rg.Intn(tAddValRange / 4)
				_, in := content[v]
				tr := tree.DeleteTrace(v)
				requireAligned(requireT, tr)
				requireT.Equal(in, tr.Found)
				if in {
					requireT.Equal(v, tr.Value)
				}
				delete(content, v)
				requireT.False(tree.Corrupt())
			}
			want := lo.Keys(content)
			slices.Sort(want)
			requireT.Equal(want, tree.InOrder())
			requireT.Equal(len(content), tree.Len())
			for k := range content {
				_, ok := tree.Search(k)
				requireT.True(ok, "tree does not have key %v", k)
			}
			if len(want) > 0 {
				requireT.Equal(want[0], lo.Must(tree.Min()))
				requireT.Equal(want[len(want)-1], lo.Must(tree.Max()))
			}
			tree.Clear()
			requireT.Zero(tree.Len())
			requireT.Equal(Nil, tree.Root())
			_, ok := tree.Min()
			requireT.False(ok)
		})
	}
}

func TestTree_Balanced(t *testing.T) {
	requireT := require.New(t)
	avl, rb := NewAVL[int](nil), NewRB[int](nil)
	for v := range 1023 {
		avl.Insert(v)
		rb.Insert(v)
	}
	requireT.LessOrEqual(avl.Height(), 14)
	requireT.LessOrEqual(rb.Height(), 20)
	requireT.False(avl.Corrupt())
	requireT.False(rb.Corrupt())
}

func TestBST_DeleteTwoChildren(t *testing.T) {
	requireT := require.New(t)
	tree := NewBST[int](nil)
	for _, v := range []int{50, 30, 70, 60, 80, 65} {
		tree.Insert(v)
	}
	root := tree.Root()
	tr := tree.DeleteTrace(50)
	requireAligned(requireT, tr)
	requireT.Equal(root, tr.Node)
	requireT.Len(tr.Snapshots, 2)
	requireT.Equal([]NodeID{root}, tr.Path)

	// the root keeps its identity and takes the successor's value.
	n, _ := tree.Node(tree.Root())
	requireT.Equal(root, tree.Root())
	requireT.Equal(60, n.Value)
	requireT.Equal([]int{30, 60, 65, 70, 80}, tree.InOrder())
	requireT.False(tree.Corrupt())

	tr = tree.DeleteTrace(99)
	requireT.False(tr.Found)
	requireT.Len(tr.Snapshots, 1)
	requireT.Len(tr.Path, 3)
}

func TestTree_DuplicateInsert(t *testing.T) {
	for _, tree := range newTrees() {
		requireT := require.New(t)
		first, added := tree.Insert(7)
		requireT.True(added)
		tr := tree.InsertTrace(7)
		requireT.True(tr.Found)
		requireT.Equal(first, tr.Node)
		requireT.Equal([]NodeID{first}, tr.Path)
		requireT.False(tr.Changed())
	}
}

func TestTree_SlotReuse(t *testing.T) {
	requireT := require.New(t)
	tree := NewAVL[int](nil)
	a, _ := tree.Insert(1)
	tree.Insert(2)
	tree.Delete(1)
	_, ok := tree.Node(a)
	requireT.False(ok)
	b, _ := tree.Insert(3)
	requireT.Equal(a, b)
	requireT.Len(tree.nodes, 3)
}

func TestTree_DefaultComparator(t *testing.T) {
	requireT := require.New(t)
	tree := NewRB[any](nil)
	for _, v := range []any{"10", 9, 2.5, "b", "a", int64(100)} {
		tree.Insert(v)
	}
	_, added := tree.Insert(10)
	requireT.False(added)
	requireT.Equal([]any{2.5, 9, "10", int64(100), "a", "b"}, tree.InOrder())
}

func TestSnapshot_Independent(t *testing.T) {
	requireT := require.New(t)
	tree := NewBST[int](nil)
	tree.Insert(2)
	s := tree.Snapshot()
	tree.Insert(1)
	tree.Delete(2)
	requireT.Equal([]int{2}, s.InOrder())
	requireT.Equal(1, s.Len())
	requireT.Equal([]int{1}, tree.InOrder())
}

func TestBinaryTree_Traversals(t *testing.T) {
	requireT := require.New(t)
	tree := FromLevelOrder([]string{"A", "B", "C", "#", "D", "E", "F", "G"}, func(s string) bool { return s == "#" })

	requireT.Equal(7, tree.Len())
	requireT.Equal([]string{"A", "B", "D", "G", "C", "E", "F"}, tree.PreOrder())
	requireT.Equal([]string{"B", "G", "D", "A", "E", "C", "F"}, tree.InOrder())
	requireT.Equal([]string{"G", "D", "B", "E", "F", "C", "A"}, tree.PostOrder())
	requireT.Equal([]string{"A", "B", "C", "D", "E", "F", "G"}, tree.LevelOrder())
	requireT.Equal([]string{"G", "E", "F"}, tree.Leaves())
	requireT.Equal(4, tree.Height())

	d, _ := tree.Node(tree.LevelOrderIDs()[3])
	requireT.Equal("D", d.Value)
	p, _ := tree.Node(d.Parent)
	requireT.Equal("B", p.Value)

	requireT.Zero(FromLevelOrder([]string{"#", "A"}, func(s string) bool { return s == "#" }).Len())
	requireT.Empty(FromLevelOrder[int](nil, nil).PreOrder())
}

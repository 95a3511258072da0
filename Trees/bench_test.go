package Trees

import (
	"testing"

	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

var (
	bAddN = 100000
	bQryN = bAddN / 2
)

func benchValues() []int {
	vs := make([]int, bAddN)
	for i := range vs {
		vs[i] = rg.Int()
	}
	return vs
}

func benchAdd(b *testing.B, mk func() Tree[int]) {
	vs := benchValues()
	b.ResetTimer()
	for range b.N {
		tree := mk()
		for _, v := range vs {
			tree.Insert(v)
		}
	}
}

func BenchmarkAddAVL(b *testing.B) {
	benchAdd(b, func() Tree[int] { return NewAVL[int](dstrace.Ordered[int]()) })
}

func BenchmarkAddRB(b *testing.B) {
	benchAdd(b, func() Tree[int] { return NewRB[int](dstrace.Ordered[int]()) })
}

// Traced inserts pay for a full snapshot per checkpoint, so they run on a smaller tree.
func BenchmarkAddTraceRB(b *testing.B) {
	vs := benchValues()[:bAddN/100]
	b.ResetTimer()
	for range b.N {
		tree := NewRB[int](dstrace.Ordered[int]())
		for _, v := range vs {
			tree.InsertTrace(v)
		}
	}
}

func BenchmarkAddLLRB(b *testing.B) {
	vs := benchValues()
	b.ResetTimer()
	for range b.N {
		tree := llrb.New()
		for _, v := range vs {
			tree.ReplaceOrInsert(llrb.Int(v))
		}
	}
}

func BenchmarkAddBTree(b *testing.B) {
	vs := benchValues()
	b.ResetTimer()
	for range b.N {
		tree := btree.NewOrderedG[int](32)
		for _, v := range vs {
			tree.ReplaceOrInsert(v)
		}
	}
}

func BenchmarkQryRB(b *testing.B) {
	vs := benchValues()
	tree := NewRB[int](dstrace.Ordered[int]())
	for _, v := range vs {
		tree.Insert(v)
	}
	b.ResetTimer()
	for range b.N {
		for _, v := range vs[:bQryN] {
			tree.Search(v)
		}
	}
}

func BenchmarkQryLLRB(b *testing.B) {
	vs := benchValues()
	tree := llrb.New()
	for _, v := range vs {
		tree.ReplaceOrInsert(llrb.Int(v))
	}
	b.ResetTimer()
	for range b.N {
		for _, v := range vs[:bQryN] {
			tree.Get(llrb.Int(v))
		}
	}
}

func BenchmarkDelAVL(b *testing.B) {
	vs := benchValues()
	for range b.N {
		b.StopTimer()
		tree := NewAVL[int](dstrace.Ordered[int]())
		for _, v := range vs {
			tree.Insert(v)
		}
		b.StartTimer()
		for _, v := range vs {
			tree.Delete(v)
		}
	}
}

func BenchmarkDelRB(b *testing.B) {
	vs := benchValues()
	for range b.N {
		b.StopTimer()
		tree := NewRB[int](dstrace.Ordered[int]())
		for _, v := range vs {
			tree.Insert(v)
		}
		b.StartTimer()
		for _, v := range vs {
			tree.Delete(v)
		}
	}
}

// Package Huffman builds minimum weighted path length prefix code trees and records every merge.
package Huffman

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

type Weight interface {
	constraints.Integer | constraints.Float
}

type NodeID uint32

const Nil NodeID = 0

// Node of the code tree. Leaves are numbered 1..n in input order and internal nodes follow in creation order, so a
// smaller ID means an earlier entry into the queue.
type Node[W Weight] struct {
	ID                  NodeID
	Weight              W
	Left, Right, Parent NodeID
}

func (n *Node[W]) Leaf() bool {
	return n.Left == Nil
}

// Merge step: A and B left the queue, A first, and P with weight A+B entered it. Before and After are the queued
// weights in priority order.
type Merge[W Weight] struct {
	A, B, P       NodeID
	Before, After []W
}

type Code[W Weight] struct {
	Leaf   NodeID
	Weight W
	Bits   string
}

type Tree[W Weight] struct {
	nodes []Node[W]
	n     int
	steps []Merge[W]
}

// Build the tree for weights. The two lightest trees are merged until one is left, ties going to the tree that
// entered the queue first. The first of the pair becomes the left child.
func Build[W Weight](weights []W) (*Tree[W], error) {
	if len(weights) == 0 {
		return nil, errors.Wrap(dstrace.ErrInvalidArgument, "no weights")
	}
	u := &Tree[W]{nodes: make([]Node[W], 1, 2*len(weights)), n: len(weights)}
	for i, w := range weights {
		if !(w >= 0) {
			return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "weight %v at %d is negative", w, i)
		}
		u.nodes = append(u.nodes, Node[W]{ID: NodeID(i + 1), Weight: w})
	}

	q := binaryheap.NewWith(u.compare)
	for i := 1; i <= u.n; i++ {
		q.Push(NodeID(i))
	}
	for q.Size() > 1 {
		before := u.queued(q)
		a, _ := q.Pop()
		b, _ := q.Pop()
		l, r := a.(NodeID), b.(NodeID)
		p := NodeID(len(u.nodes))
		u.nodes = append(u.nodes, Node[W]{ID: p, Weight: u.nodes[l].Weight + u.nodes[r].Weight, Left: l, Right: r})
		u.nodes[l].Parent, u.nodes[r].Parent = p, p
		q.Push(p)
		u.steps = append(u.steps, Merge[W]{A: l, B: r, P: p, Before: before, After: u.queued(q)})
	}
	return u, nil
}

// compare orders queued trees by weight, then by entry order.
func (u *Tree[W]) compare(a, b interface{}) int {
	x, y := &u.nodes[a.(NodeID)], &u.nodes[b.(NodeID)]
	switch {
	case x.Weight < y.Weight:
		return -1
	case x.Weight > y.Weight:
		return 1
	}
	return int(x.ID) - int(y.ID)
}

func (u *Tree[W]) queued(q *binaryheap.Heap) []W {
	vs := q.Values()
	slices.SortFunc(vs, u.compare)
	ws := make([]W, len(vs))
	for i, v := range vs {
		ws[i] = u.nodes[v.(NodeID)].Weight
	}
	return ws
}

func (u *Tree[W]) Root() NodeID {
	return NodeID(len(u.nodes) - 1)
}

func (u *Tree[W]) Node(id NodeID) (Node[W], bool) {
	if id == Nil || int(id) >= len(u.nodes) {
		return Node[W]{}, false
	}
	return u.nodes[id], true
}

// Leaves in input order.
func (u *Tree[W]) Leaves() []NodeID {
	ids := make([]NodeID, u.n)
	for i := range ids {
		ids[i] = NodeID(i + 1)
	}
	return ids
}

func (u *Tree[W]) Steps() []Merge[W] {
	return u.steps
}

// Depth of node id, 0 for the root.
func (u *Tree[W]) Depth(id NodeID) int {
	d := 0
	for i := u.nodes[id].Parent; i != Nil; i = u.nodes[i].Parent {
		d++
	}
	return d
}

// Code of the i-th input weight: 0 for each left branch and 1 for each right one from the root down. A single leaf
// has code "0".
func (u *Tree[W]) Code(i int) Code[W] {
	id := NodeID(i + 1)
	c := Code[W]{Leaf: id, Weight: u.nodes[id].Weight}
	if u.n == 1 {
		c.Bits = "0"
		return c
	}
	var bits []byte
	for j := id; u.nodes[j].Parent != Nil; j = u.nodes[j].Parent {
		if u.nodes[u.nodes[j].Parent].Left == j {
			bits = append(bits, '0')
		} else {
			bits = append(bits, '1')
		}
	}
	slices.Reverse(bits)
	c.Bits = string(bits)
	return c
}

// Codes of every input weight, in input order.
func (u *Tree[W]) Codes() []Code[W] {
	cs := make([]Code[W], u.n)
	for i := range cs {
		cs[i] = u.Code(i)
	}
	return cs
}

// WeightedPathLength is the sum of weight times depth over the leaves.
func (u *Tree[W]) WeightedPathLength() W {
	var s W
	for _, id := range u.Leaves() {
		s += u.nodes[id].Weight * W(u.Depth(id))
	}
	return s
}

func (c Code[W]) String() string {
	return fmt.Sprintf("%v:%s", c.Weight, c.Bits)
}

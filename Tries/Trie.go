// Package Tries is a prefix tree over sequences of comparable symbols. Children are kept in insertion order.
package Tries

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

type Node[S comparable] struct {
	ID        uint64
	Symbol    S
	HasSymbol bool //false only for the root.
	Terminal  bool
	Parent    *Node[S]
	depth     int
	children  *linkedhashmap.Map
}

func newNode[S comparable](id uint64, parent *Node[S]) *Node[S] {
	n := &Node[S]{ID: id, Parent: parent, children: linkedhashmap.New()}
	if parent != nil {
		n.depth = parent.depth + 1
	}
	return n
}

func (n *Node[S]) child(s S) (*Node[S], bool) {
	c, ok := n.children.Get(s)
	if !ok {
		return nil, false
	}
	return c.(*Node[S]), true
}

// Children in the order they were first created.
func (n *Node[S]) Children() []*Node[S] {
	vs := n.children.Values()
	cs := make([]*Node[S], len(vs))
	for i, v := range vs {
		cs[i] = v.(*Node[S])
	}
	return cs
}

// Depth of the node, 0 for the root.
func (n *Node[S]) Depth() int {
	return n.depth
}

// Word spelled by the path from the root to n.
func (n *Node[S]) Word() []S {
	w := make([]S, n.depth)
	for c := n; c.HasSymbol; c = c.Parent {
		w[c.depth-1] = c.Symbol
	}
	return w
}

type Trie[S comparable] struct {
	root   *Node[S]
	nextID uint64
	words  int
}

func New[S comparable]() *Trie[S] {
	u := new(Trie[S])
	u.Clear()
	return u
}

// Clear replaces the root with a fresh one.
func (u *Trie[S]) Clear() {
	u.nextID, u.words = 1, 0
	u.root = newNode[S](0, nil)
}

func (u *Trie[S]) Root() *Node[S] {
	return u.root
}

// Len is the number of stored words.
func (u *Trie[S]) Len() int {
	return u.words
}

func checkWord[S any](w []S) error {
	if len(w) == 0 {
		return errors.Wrap(dstrace.ErrInvalidArgument, "empty word")
	}
	return nil
}

// Insert word, creating missing nodes, and marks the last one terminal. Returns the nodes along the word, root
// excluded. Inserting a present word changes nothing and returns the same path.
func (u *Trie[S]) Insert(word []S) ([]*Node[S], error) {
	if err := checkWord(word); err != nil {
		return nil, err
	}
	path := make([]*Node[S], 0, len(word))
	n := u.root
	for _, s := range word {
		c, ok := n.child(s)
		if !ok {
			c = newNode(u.nextID, n)
			c.Symbol, c.HasSymbol = s, true
			u.nextID++
			n.children.Put(s, c)
		}
		path = append(path, c)
		n = c
	}
	if !n.Terminal {
		n.Terminal = true
		u.words++
	}
	return path, nil
}

// walk matches as many symbols of w as possible. Returns the matched nodes and whether all of w matched.
func (u *Trie[S]) walk(w []S) ([]*Node[S], bool) {
	path := make([]*Node[S], 0, len(w))
	n := u.root
	for _, s := range w {
		c, ok := n.child(s)
		if !ok {
			return path, false
		}
		path = append(path, c)
		n = c
	}
	return path, true
}

// Search word. Found only if the walk consumes the whole word and ends on a terminal node. The path holds every node
// matched, so it is empty when the first symbol misses.
func (u *Trie[S]) Search(word []S) (bool, []*Node[S], error) {
	if err := checkWord(word); err != nil {
		return false, nil, err
	}
	path, all := u.walk(word)
	return all && path[len(path)-1].Terminal, path, nil
}

// StartsWith reports whether some stored word has the given prefix.
func (u *Trie[S]) StartsWith(prefix []S) (bool, []*Node[S], error) {
	if err := checkWord(prefix); err != nil {
		return false, nil, err
	}
	path, all := u.walk(prefix)
	return all, path, nil
}

// Delete word and prunes the nodes no other word needs. Returns false if it wasn't stored.
func (u *Trie[S]) Delete(word []S) (bool, error) {
	if err := checkWord(word); err != nil {
		return false, err
	}
	path, all := u.walk(word)
	if !all || !path[len(path)-1].Terminal {
		return false, nil
	}
	path[len(path)-1].Terminal = false
	u.words--
	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		if n.Terminal || !n.children.Empty() {
			break
		}
		n.Parent.children.Remove(n.Symbol)
		n.Parent = nil
	}
	return true, nil
}

// Words in depth first order, siblings in insertion order.
func (u *Trie[S]) Words() [][]S {
	var ws [][]S
	var dfs func(n *Node[S])
	dfs = func(n *Node[S]) {
		if n.Terminal {
			ws = append(ws, n.Word())
		}
		for _, c := range n.Children() {
			dfs(c)
		}
	}
	dfs(u.root)
	return ws
}

// NodesByLevel maps depth to the nodes at that depth, breadth first. Depth 1 holds the children of the root.
func (u *Trie[S]) NodesByLevel() map[int][]*Node[S] {
	levels := make(map[int][]*Node[S])
	for q := u.root.Children(); len(q) > 0; q = q[1:] {
		levels[q[0].depth] = append(levels[q[0].depth], q[0])
		q = append(q, q[0].Children()...)
	}
	return levels
}

// Runes of s, for tries over text.
func Runes(s string) []rune {
	return []rune(s)
}

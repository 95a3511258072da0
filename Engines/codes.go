package Engines

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	dstrace "github.com/g-m-twostay/go-dstrace"
	"github.com/g-m-twostay/go-dstrace/Huffman"
	"github.com/g-m-twostay/go-dstrace/Tries"
)

func triePath(ns []*Tries.Node[rune]) []string {
	return lo.Map(ns, func(n *Tries.Node[rune], _ int) string { return fmt.Sprintf("%d:%c", n.ID, n.Symbol) })
}

func newTrie() *engine {
	t := Tries.New[rune]()
	insert := func(args []string) (*Outcome, error) {
		ws := list(args)
		if len(ws) == 0 {
			return nil, errors.Wrap(dstrace.ErrInvalidArgument, "no words")
		}
		o := new(Outcome)
		before := t.Len()
		for _, w := range ws {
			path, err := t.Insert(Tries.Runes(w))
			if err != nil {
				return nil, err
			}
			o.Path = triePath(path)
			o.Events = append(o.Events, fmt.Sprintf("insert word=%q path=%s", w, show(o.Path)))
		}
		o.Result = fmt.Sprintf("inserted %d", t.Len()-before)
		return o, nil
	}
	walk := func(f func([]rune) (bool, []*Tries.Node[rune], error)) handler {
		return func(args []string) (*Outcome, error) {
			w, err := one(args)
			if err != nil {
				return nil, err
			}
			ok, path, err := f(Tries.Runes(w))
			if err != nil {
				return nil, err
			}
			o := &Outcome{Path: triePath(path), Result: "not found"}
			if ok {
				o.Result = "found"
			}
			return o, nil
		}
	}
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				if len(list(args)) == 0 {
					return nil, errors.Wrap(dstrace.ErrInvalidArgument, "no words")
				}
				t.Clear()
				return insert(args)
			},
			"clear": func([]string) (*Outcome, error) {
				t.Clear()
				return &Outcome{Result: "cleared"}, nil
			},
			"insert": insert,
			"search": walk(t.Search),
			"prefix": walk(t.StartsWith),
			"delete": func(args []string) (*Outcome, error) {
				w, err := one(args)
				if err != nil {
					return nil, err
				}
				ok, err := t.Delete(Tries.Runes(w))
				if err != nil {
					return nil, err
				}
				if !ok {
					return &Outcome{Result: "not found"}, nil
				}
				return &Outcome{Result: "deleted"}, nil
			},
		},
		state: func() string {
			return "words " + show(lo.Map(t.Words(), func(w []rune, _ int) string { return string(w) }))
		},
	}
}

func newHuffman() *engine {
	var tree *Huffman.Tree[float64]
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				ops := list(args)
				ws := make([]float64, len(ops))
				for i, op := range ops {
					w, ok := dstrace.ToFloat(op)
					if !ok {
						return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "weight %q is not a number", op)
					}
					ws[i] = w
				}
				t, err := Huffman.Build(ws)
				if err != nil {
					return nil, err
				}
				tree = t
				o := &Outcome{Result: fmt.Sprintf("wpl=%v", t.WeightedPathLength())}
				for _, m := range t.Steps() {
					o.Events = append(o.Events, fmt.Sprintf("merge a=%d b=%d p=%d before=%v after=%v", m.A, m.B, m.P, m.Before, m.After))
					o.Snapshots += 2
				}
				return o, nil
			},
			"clear": func([]string) (*Outcome, error) {
				tree = nil
				return &Outcome{Result: "cleared"}, nil
			},
		},
		state: func() string {
			if tree == nil {
				return "empty"
			}
			return strings.Join(lo.Map(tree.Codes(), func(c Huffman.Code[float64], _ int) string { return c.String() }), " ")
		},
	}
}

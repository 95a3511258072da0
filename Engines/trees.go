package Engines

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	dstrace "github.com/g-m-twostay/go-dstrace"
	"github.com/g-m-twostay/go-dstrace/Trees"
	"github.com/g-m-twostay/go-dstrace/Trees/BPlus"
)

// render writes the tree in pre-order as v(left,right), "-" standing for a missing child. Red-black nodes carry their
// colour initial.
func render(s Trees.Snapshot[any], colours bool) string {
	if s.Root == Trees.Nil {
		return "empty"
	}
	var b strings.Builder
	var walk func(id Trees.NodeID)
	walk = func(id Trees.NodeID) {
		if id == Trees.Nil {
			b.WriteByte('-')
			return
		}
		n := s.Nodes[id]
		fmt.Fprint(&b, n.Value)
		if colours {
			b.WriteString(n.Colour.String()[:1])
		}
		if n.Left == Trees.Nil && n.Right == Trees.Nil {
			return
		}
		b.WriteByte('(')
		walk(n.Left)
		b.WriteByte(',')
		walk(n.Right)
		b.WriteByte(')')
	}
	walk(s.Root)
	return b.String()
}

func treePath(ids []Trees.NodeID, s Trees.Snapshot[any]) []string {
	return lo.Map(ids, func(id Trees.NodeID, _ int) string {
		n, _ := s.Get(id)
		return fmt.Sprintf("%d:%v", id, n.Value)
	})
}

func newTree(kind Kind) *engine {
	var t Trees.Tree[any]
	switch kind {
	case KindAVL:
		t = Trees.NewAVL[any](nil)
	case KindRB:
		t = Trees.NewRB[any](nil)
	default:
		t = Trees.NewBST[any](nil)
	}
	insert := func(v any, o *Outcome) *Trees.Trace[any] {
		tr := t.InsertTrace(v)
		o.Events = append(o.Events, events(tr.Events)...)
		o.Snapshots += len(tr.Snapshots)
		return tr
	}
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				t.Clear()
				o := new(Outcome)
				for _, v := range values(args) {
					insert(v, o)
				}
				o.Result = fmt.Sprintf("created %d", t.Len())
				return o, nil
			},
			"clear": func([]string) (*Outcome, error) {
				t.Clear()
				return &Outcome{Result: "cleared"}, nil
			},
			"insert": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				o := new(Outcome)
				tr := insert(dstrace.ParseValue(op), o)
				o.Path = treePath(tr.Path, tr.Snapshots[0])
				if tr.Found {
					o.Result = fmt.Sprintf("exists node=%d", tr.Node)
				} else {
					o.Result = fmt.Sprintf("inserted node=%d", tr.Node)
				}
				return o, nil
			},
			"search": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				id, path := t.SearchPath(dstrace.ParseValue(op))
				o := &Outcome{Path: treePath(path, t.Snapshot()), Result: "not found"}
				if id != Trees.Nil {
					o.Result = fmt.Sprintf("found node=%d", id)
				}
				return o, nil
			},
			"delete": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				tr := t.DeleteTrace(dstrace.ParseValue(op))
				o := &Outcome{
					Path:      treePath(tr.Path, tr.Snapshots[0]),
					Events:    events(tr.Events),
					Snapshots: len(tr.Snapshots),
					Result:    "not found",
				}
				if tr.Found {
					o.Result = fmt.Sprintf("deleted %v", tr.Value)
				}
				return o, nil
			},
		},
		state: func() string {
			return render(t.Snapshot(), kind == KindRB)
		},
	}
}

func bplusPath(ids []BPlus.NodeID, s BPlus.Snapshot[any]) []string {
	return lo.Map(ids, func(id BPlus.NodeID, _ int) string {
		n, _ := s.Get(id)
		return fmt.Sprintf("%d:%s", id, show(n.Keys))
	})
}

// renderLevels writes the nodes level by level, root first, levels separated by " | ".
func renderLevels(s BPlus.Snapshot[any]) string {
	var levels []string
	for lv := []BPlus.NodeID{s.Root}; len(lv) > 0; {
		var next []BPlus.NodeID
		ks := make([]string, len(lv))
		for i, id := range lv {
			ks[i] = show(s.Nodes[id].Keys)
			next = append(next, s.Nodes[id].Children...)
		}
		levels = append(levels, strings.Join(ks, " "))
		lv = next
	}
	return strings.Join(levels, " | ")
}

func newBPlus(cfg BPlusConfig) (*engine, error) {
	t, err := BPlus.New[any](cfg.Order, nil)
	if err != nil {
		return nil, err
	}
	insert := func(k any, o *Outcome) *BPlus.Trace[any] {
		tr := t.InsertTrace(k)
		o.Events = append(o.Events, events(tr.Events)...)
		o.Snapshots += len(tr.Snapshots)
		return tr
	}
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				t.Clear()
				o := new(Outcome)
				for _, k := range values(args) {
					insert(k, o)
				}
				o.Result = fmt.Sprintf("created %d", t.Len())
				return o, nil
			},
			"clear": func([]string) (*Outcome, error) {
				t.Clear()
				return &Outcome{Result: "cleared"}, nil
			},
			"insert": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				o := new(Outcome)
				tr := insert(dstrace.ParseValue(op), o)
				o.Path = bplusPath(tr.Path, tr.Snapshots[0])
				o.Result = fmt.Sprintf("inserted leaf=%d", tr.Leaf)
				if tr.Found {
					o.Result = fmt.Sprintf("exists leaf=%d", tr.Leaf)
				}
				return o, nil
			},
			"search": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				found, path := t.Search(dstrace.ParseValue(op))
				o := &Outcome{Path: bplusPath(path, t.Snapshot()), Result: "not found"}
				if found {
					o.Result = fmt.Sprintf("found leaf=%d", path[len(path)-1])
				}
				return o, nil
			},
			"delete": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				tr := t.DeleteTrace(dstrace.ParseValue(op))
				o := &Outcome{
					Path:      bplusPath(tr.Path, tr.Snapshots[0]),
					Events:    events(tr.Events),
					Snapshots: len(tr.Snapshots),
					Result:    "not found",
				}
				if tr.Found {
					o.Result = "deleted"
				}
				return o, nil
			},
		},
		state: func() string {
			return renderLevels(t.Snapshot())
		},
	}, nil
}

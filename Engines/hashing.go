package Engines

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	dstrace "github.com/g-m-twostay/go-dstrace"
	"github.com/g-m-twostay/go-dstrace/Maps"
	"github.com/g-m-twostay/go-dstrace/Maps/HashTable"
)

// probeOutcome turns a probe into path and events: one probe event per visited cell, then what happened at the last.
func probeOutcome(p Maps.Probe, mode Maps.Mode, last string) *Outcome {
	o := &Outcome{Path: lo.Map(p.Path, func(i int, _ int) string { return strconv.Itoa(i) })}
	if mode == Maps.Chaining {
		o.Events = []string{fmt.Sprintf("bucket index=%d", p.Index)}
		if p.ChainPos >= 0 {
			o.Events = append(o.Events, fmt.Sprintf("%s bucket=%d pos=%d", last, p.Index, p.ChainPos))
		}
		return o
	}
	for _, i := range p.Path {
		o.Events = append(o.Events, fmt.Sprintf("probe cell=%d", i))
	}
	if p.Found {
		o.Events = append(o.Events, fmt.Sprintf("%s cell=%d", last, p.Index))
	}
	return o
}

func newHashTable(cfg HashTableConfig) (*engine, error) {
	mode, err := Maps.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	t, err := HashTable.New[any](HashTable.Config{Capacity: cfg.Capacity, Mode: mode, Expr: cfg.Expr}, nil)
	if err != nil {
		return nil, err
	}
	insert := func(v any) *Outcome {
		p := t.Insert(v)
		switch {
		case p.Existed:
			o := probeOutcome(p, mode, "found")
			o.Result = "exists"
			return o
		case p.Full:
			o := probeOutcome(p, mode, "store")
			o.Result = "full"
			return o
		}
		o := probeOutcome(p, mode, "store")
		o.Result = fmt.Sprintf("inserted at %d", p.Index)
		return o
	}
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				t.Clear()
				o := new(Outcome)
				for _, v := range values(args) {
					o.Events = append(o.Events, insert(v).Events...)
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
				return insert(dstrace.ParseValue(op)), nil
			},
			"search": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				p := t.Find(dstrace.ParseValue(op))
				o := probeOutcome(p, mode, "found")
				o.Result = "not found"
				if p.Found {
					o.Result = fmt.Sprintf("found at %d", p.Index)
				}
				return o, nil
			},
			"delete": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				p := t.Delete(dstrace.ParseValue(op))
				o := probeOutcome(p, mode, "remove")
				o.Result = "not found"
				if p.Found {
					o.Result = fmt.Sprintf("deleted at %d", p.Index)
				}
				return o, nil
			},
			"resize": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				n, err := number(op)
				if err != nil {
					return nil, err
				}
				old := t.Capacity()
				if err = t.Resize(n); err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprintf("resized %d -> %d", old, n)}, nil
			},
		},
		state: func() string {
			head := fmt.Sprintf("%s %q load=%.2f ", mode, t.Expr().String(), t.LoadFactor())
			if mode == Maps.Chaining {
				return head + show(lo.Map(t.Buckets(), func(b []any, _ int) string { return show(b) }))
			}
			return head + show(lo.Map(t.Cells(), func(c HashTable.Cell[any], _ int) string {
				switch c.State {
				case HashTable.Empty:
					return "_"
				case HashTable.Tombstone:
					return "x"
				}
				return fmt.Sprint(c.Value)
			}))
		},
	}, nil
}


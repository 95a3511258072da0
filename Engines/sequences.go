package Engines

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	dstrace "github.com/g-m-twostay/go-dstrace"
	"github.com/g-m-twostay/go-dstrace/Lists"
	"github.com/g-m-twostay/go-dstrace/Queues"
	"github.com/g-m-twostay/go-dstrace/Stacks"
)

func newLinkedList() *engine {
	l := Lists.NewLinkedList[any](nil)
	insertAt := func(pos string, v any) (*Outcome, error) {
		p, err := number(pos)
		if err != nil {
			return nil, err
		}
		if err = l.InsertAt(p, v); err != nil {
			return nil, err
		}
		return &Outcome{Result: fmt.Sprintf("inserted at %d", p)}, nil
	}
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				l.Clear()
				vs := values(args)
				for _, v := range vs {
					l.InsertLast(v)
				}
				return &Outcome{Result: fmt.Sprintf("created %d", len(vs))}, nil
			},
			"clear": func([]string) (*Outcome, error) {
				l.Clear()
				return &Outcome{Result: "cleared"}, nil
			},
			//insert v, or insert v at p.
			"insert": func(args []string) (*Outcome, error) {
				ops := list(args)
				switch {
				case len(ops) == 1:
					l.InsertLast(dstrace.ParseValue(ops[0]))
					return &Outcome{Result: fmt.Sprintf("inserted at %d", l.Len())}, nil
				case len(ops) == 3 && strings.EqualFold(ops[1], "at"):
					return insertAt(ops[2], dstrace.ParseValue(ops[0]))
				}
				return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "want \"v\" or \"v at p\", got %q", ops)
			},
			"insert_at": func(args []string) (*Outcome, error) {
				ops, err := arity(args, 2)
				if err != nil {
					return nil, err
				}
				return insertAt(ops[0], dstrace.ParseValue(ops[1]))
			},
			//delete first, last or p.
			"delete": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				var v any
				switch strings.ToLower(op) {
				case "first":
					v, err = l.DeleteFirst()
				case "last":
					v, err = l.DeleteLast()
				default:
					var p int
					if p, err = number(op); err == nil {
						v, err = l.DeleteAt(p)
					}
				}
				if err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprint(v)}, nil
			},
			"search": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				if p := l.IndexOf(dstrace.ParseValue(op)); p > 0 {
					return &Outcome{Result: fmt.Sprintf("found at %d", p)}, nil
				}
				return &Outcome{Result: "not found"}, nil
			},
		},
		state: func() string {
			if l.IsEmpty() {
				return "empty"
			}
			return strings.Join(lo.Map(l.ToSlice(), func(v any, _ int) string { return fmt.Sprint(v) }), " -> ")
		},
	}
}

func resizeEvent(r *Stacks.Resize) []string {
	if r == nil {
		return nil
	}
	return []string{fmt.Sprintf("resize old=%d new=%d", r.Old, r.New)}
}

func newStack(cfg StackConfig) (*engine, error) {
	s, err := Stacks.New[any](Stacks.Config{Capacity: cfg.Capacity, AutoExpand: cfg.AutoExpand, ExpandFactor: cfg.ExpandFactor})
	if err != nil {
		return nil, err
	}
	push := func(v any) (bool, []string) {
		ok, r := s.Push(v)
		return ok, resizeEvent(r)
	}
	return &engine{
		verbs: map[string]handler{
			//create pushes the values bottom first, stopping at the first one a full stack rejects.
			"create": func(args []string) (*Outcome, error) {
				s.Clear()
				o := new(Outcome)
				n := 0
				for _, v := range values(args) {
					ok, es := push(v)
					o.Events = append(o.Events, es...)
					if !ok {
						break
					}
					n++
				}
				o.Result = fmt.Sprintf("pushed %d", n)
				return o, nil
			},
			"clear": func([]string) (*Outcome, error) {
				s.Clear()
				return &Outcome{Result: "cleared"}, nil
			},
			"push": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				ok, es := push(dstrace.ParseValue(op))
				if !ok {
					return &Outcome{Result: "full"}, nil
				}
				return &Outcome{Result: "pushed", Events: es}, nil
			},
			"pop": func([]string) (*Outcome, error) {
				v, err := s.Pop()
				if err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprint(v)}, nil
			},
			"peek": func([]string) (*Outcome, error) {
				v, err := s.Peek()
				if err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprint(v)}, nil
			},
			"capacity": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				n, err := number(op)
				if err != nil {
					return nil, err
				}
				old := s.Capacity()
				if err = s.SetCapacity(n); err != nil {
					return nil, err
				}
				o := &Outcome{Result: fmt.Sprintf("capacity %d", n)}
				if n != old {
					o.Events = []string{fmt.Sprintf("resize old=%d new=%d manual", old, n)}
				}
				return o, nil
			},
		},
		state: func() string {
			return fmt.Sprintf("bottom %s top (%d/%d)", show(s.Items()), s.Len(), s.Capacity())
		},
	}, nil
}

func newQueue(cfg QueueConfig) (*engine, error) {
	q, err := Queues.New[any](cfg.Capacity)
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rg := rand.New(rand.NewPCG(seed, seed))
	enqueue := func(vs []any) *Outcome {
		n := 0
		for _, v := range vs {
			if !q.Enqueue(v) {
				break
			}
			n++
		}
		return &Outcome{Result: fmt.Sprintf("enqueued %d", n), Path: lo.Map(vs[:n], func(v any, _ int) string { return fmt.Sprint(v) })}
	}
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				q.Clear()
				return enqueue(values(args)), nil
			},
			"clear": func([]string) (*Outcome, error) {
				q.Clear()
				return &Outcome{Result: "cleared"}, nil
			},
			"enqueue": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				if !q.Enqueue(dstrace.ParseValue(op)) {
					return &Outcome{Result: "full"}, nil
				}
				return &Outcome{Result: fmt.Sprintf("enqueued at slot %d", (q.Tail()+q.Capacity()-1)%q.Capacity())}, nil
			},
			"dequeue": func([]string) (*Outcome, error) {
				v, err := q.Dequeue()
				if err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprint(v)}, nil
			},
			"front": func([]string) (*Outcome, error) {
				v, err := q.Front()
				if err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprint(v)}, nil
			},
			//random n enqueues n values drawn from [1, RandomMax], stopping when the queue fills up. Path holds the
			//values that went in.
			"random": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				n, err := number(op)
				if err != nil {
					return nil, err
				}
				if n < 0 {
					return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "random count %d is negative", n)
				}
				vs := make([]any, n)
				for i := range vs {
					vs[i] = int64(1 + rg.IntN(cfg.RandomMax))
				}
				return enqueue(vs), nil
			},
		},
		state: func() string {
			return fmt.Sprintf("front %s rear (%d/%d) head=%d tail=%d", show(q.Items()), q.Len(), q.Capacity(), q.Head(), q.Tail())
		},
	}, nil
}

func newSeqList(cfg SeqListConfig) (*engine, error) {
	l, err := Lists.NewSeqList[any](cfg.Capacity, nil)
	if err != nil {
		return nil, err
	}
	insert := func(pos int, v any) (*Outcome, error) {
		ok, err := l.Insert(pos, v)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Outcome{Result: "full"}, nil
		}
		return &Outcome{Result: fmt.Sprintf("inserted at %d", pos)}, nil
	}
	return &engine{
		verbs: map[string]handler{
			"create": func(args []string) (*Outcome, error) {
				l.Clear()
				n := 0
				for _, v := range values(args) {
					if !l.Append(v) {
						break
					}
					n++
				}
				return &Outcome{Result: fmt.Sprintf("created %d", n)}, nil
			},
			"clear": func([]string) (*Outcome, error) {
				l.Clear()
				return &Outcome{Result: "cleared"}, nil
			},
			//insert v, or insert v at p.
			"insert": func(args []string) (*Outcome, error) {
				ops := list(args)
				switch {
				case len(ops) == 1:
					return insert(l.Len()+1, dstrace.ParseValue(ops[0]))
				case len(ops) == 3 && strings.EqualFold(ops[1], "at"):
					p, err := number(ops[2])
					if err != nil {
						return nil, err
					}
					return insert(p, dstrace.ParseValue(ops[0]))
				}
				return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "want \"v\" or \"v at p\", got %q", ops)
			},
			"insert_at": func(args []string) (*Outcome, error) {
				ops, err := arity(args, 2)
				if err != nil {
					return nil, err
				}
				p, err := number(ops[0])
				if err != nil {
					return nil, err
				}
				return insert(p, dstrace.ParseValue(ops[1]))
			},
			"delete": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				p, err := number(op)
				if err != nil {
					return nil, err
				}
				v, err := l.Delete(p)
				if err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprint(v)}, nil
			},
			"set": func(args []string) (*Outcome, error) {
				ops, err := arity(args, 2)
				if err != nil {
					return nil, err
				}
				p, err := number(ops[0])
				if err != nil {
					return nil, err
				}
				old, err := l.Set(p, dstrace.ParseValue(ops[1]))
				if err != nil {
					return nil, err
				}
				return &Outcome{Result: fmt.Sprintf("replaced %v", old)}, nil
			},
			"search": func(args []string) (*Outcome, error) {
				op, err := one(args)
				if err != nil {
					return nil, err
				}
				if p := l.Locate(dstrace.ParseValue(op)); p > 0 {
					return &Outcome{Result: fmt.Sprintf("found at %d", p)}, nil
				}
				return &Outcome{Result: "not found"}, nil
			},
		},
		state: func() string {
			return fmt.Sprintf("%s (%d/%d)", show(l.ToSlice()), l.Len(), l.Capacity())
		},
	}, nil
}

// Package HashTable is a hash table over a user supplied hash expression, resolving collisions either by linear
// probing with tombstones or by chaining. Every operation reports the cells it visited.
package HashTable

import (
	"slices"

	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
	"github.com/g-m-twostay/go-dstrace/Maps"
	"github.com/g-m-twostay/go-dstrace/Maps/HashExpr"
)

type Config struct {
	Capacity int
	Mode     Maps.Mode
	Expr     string //HashExpr.Default when empty.
}

type CellState uint8

const (
	Empty CellState = iota
	Tombstone
	Used
)

func (s CellState) String() string {
	return [...]string{"empty", "tombstone", "used"}[s]
}

type Cell[T any] struct {
	State CellState
	Value T
}

// Table is not safe for concurrent use.
type Table[T any] struct {
	mode Maps.Mode
	expr *HashExpr.Expr
	cmp  dstrace.Comparator[T]
	size int
	cap  int

	used, dead dstrace.BitArray //open addressing cell states; dead marks tombstones.
	vals       []T

	buckets [][]T
}

var _ Maps.Table[int] = (*Table[int])(nil)

// New table. A nil cmp means dstrace.Default; values equal under cmp are the same key.
func New[T any](cfg Config, cmp dstrace.Comparator[T]) (*Table[T], error) {
	if cfg.Capacity < 1 {
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "hash table capacity %d is below 1", cfg.Capacity)
	}
	if cfg.Expr == "" {
		cfg.Expr = HashExpr.Default
	}
	e, err := HashExpr.Compile(cfg.Expr)
	if err != nil {
		return nil, err
	}
	if cmp == nil {
		cmp = dstrace.Default[T]()
	}
	u := &Table[T]{mode: cfg.Mode, expr: e, cmp: cmp}
	u.reset(cfg.Capacity)
	return u, nil
}

func (u *Table[T]) reset(capacity int) {
	u.cap, u.size = capacity, 0
	if u.mode == Maps.Chaining {
		u.buckets = make([][]T, capacity)
		return
	}
	u.used, u.dead = dstrace.NewBitArray(capacity), dstrace.NewBitArray(capacity)
	u.vals = make([]T, capacity)
}

// key is what the expression sees as x: v itself when it coerces to an integer, else the hash of its canonical form,
// so values the default comparator calls equal share a home.
func key(v any) int64 {
	i, s, ok := dstrace.Canonical(v)
	if ok {
		return i
	}
	return dstrace.HashInt(s)
}

// Home cell, or bucket, of v.
func (u *Table[T]) Home(v T) int {
	return u.expr.Hash(key(v), int64(u.cap))
}

func (u *Table[T]) state(i int) CellState {
	switch {
	case u.used.Get(i):
		return Used
	case u.dead.Get(i):
		return Tombstone
	}
	return Empty
}

// probe walks the open addressing sequence of v. It stops at v, at an empty cell, or after capacity cells. tomb is
// the first tombstone on the way, -1 if none.
func (u *Table[T]) probe(v T) (p Maps.Probe, tomb int) {
	p.ChainPos, tomb = -1, -1
	i := u.Home(v)
	for range u.cap {
		p.Path = append(p.Path, i)
		p.Index = i
		switch u.state(i) {
		case Used:
			if u.cmp.Compare(u.vals[i], v) == 0 {
				p.Found = true
				return
			}
		case Tombstone:
			if tomb < 0 {
				tomb = i
			}
		case Empty:
			return
		}
		i = (i + 1) % u.cap
	}
	return
}

func (u *Table[T]) chain(v T) Maps.Probe {
	b := u.Home(v)
	p := Maps.Probe{Index: b, Path: []int{b}, ChainPos: -1}
	if i := slices.IndexFunc(u.buckets[b], func(w T) bool { return u.cmp.Compare(w, v) == 0 }); i >= 0 {
		p.Found, p.ChainPos = true, i
	}
	return p
}

// Find v. Tombstones don't stop the probe.
func (u *Table[T]) Find(v T) Maps.Probe {
	if u.mode == Maps.Chaining {
		return u.chain(v)
	}
	p, _ := u.probe(v)
	return p
}

// Insert v unless an equal value is stored, in which case Existed is set. Open addressing reuses the first tombstone
// of the probe sequence, else takes the empty cell ending it; with neither, Full is set. Found reports whether v is
// stored afterwards.
func (u *Table[T]) Insert(v T) Maps.Probe {
	if u.mode == Maps.Chaining {
		p := u.chain(v)
		if p.Found {
			p.Existed = true
			return p
		}
		u.buckets[p.Index] = append(u.buckets[p.Index], v)
		p.Found, p.ChainPos = true, len(u.buckets[p.Index])-1
		u.size++
		return p
	}
	p, tomb := u.probe(v)
	if p.Found {
		p.Existed = true
		return p
	}
	switch {
	case tomb >= 0:
		p.Index = tomb
	case u.state(p.Index) == Empty:
	default:
		p.Full = true
		return p
	}
	u.used.Up(p.Index)
	u.dead.Down(p.Index)
	u.vals[p.Index] = v
	u.size++
	p.Found = true
	return p
}

// Delete v. Open addressing leaves a tombstone in its cell; chaining removes the first match from the bucket.
func (u *Table[T]) Delete(v T) Maps.Probe {
	p := u.Find(v)
	if !p.Found {
		return p
	}
	if u.mode == Maps.Chaining {
		u.buckets[p.Index] = slices.Delete(u.buckets[p.Index], p.ChainPos, p.ChainPos+1)
	} else {
		var zero T
		u.used.Down(p.Index)
		u.dead.Up(p.Index)
		u.vals[p.Index] = zero
	}
	u.size--
	return p
}

// Resize rebuilds the table with capacity cells, rebinding the expression to it, and reinserts the live values in
// cell order.
func (u *Table[T]) Resize(capacity int) error {
	if capacity < 1 {
		return errors.Wrapf(dstrace.ErrInvalidArgument, "hash table capacity %d is below 1", capacity)
	}
	if u.mode == Maps.OpenAddressing && capacity < u.size {
		return errors.Wrapf(dstrace.ErrInvalidArgument, "capacity %d can't hold %d values", capacity, u.size)
	}
	vs := u.Values()
	u.reset(capacity)
	for _, v := range vs {
		if p := u.Insert(v); p.Full {
			panic("hash table: resized table is full")
		}
	}
	return nil
}

// Clear drops every value, keeping the capacity.
func (u *Table[T]) Clear() {
	u.reset(u.cap)
}

func (u *Table[T]) Len() int {
	return u.size
}

func (u *Table[T]) Capacity() int {
	return u.cap
}

func (u *Table[T]) Mode() Maps.Mode {
	return u.mode
}

func (u *Table[T]) Expr() *HashExpr.Expr {
	return u.expr
}

func (u *Table[T]) LoadFactor() float64 {
	return float64(u.size) / float64(u.cap)
}

// Cells of an open addressing table, nil for chaining.
func (u *Table[T]) Cells() []Cell[T] {
	if u.mode == Maps.Chaining {
		return nil
	}
	cs := make([]Cell[T], u.cap)
	for i := range cs {
		cs[i] = Cell[T]{State: u.state(i), Value: u.vals[i]}
	}
	return cs
}

// Buckets of a chaining table, copied, nil for open addressing.
func (u *Table[T]) Buckets() [][]T {
	if u.mode != Maps.Chaining {
		return nil
	}
	bs := make([][]T, len(u.buckets))
	for i, b := range u.buckets {
		bs[i] = slices.Clone(b)
	}
	return bs
}

// Values stored, in cell or bucket order.
func (u *Table[T]) Values() []T {
	vs := make([]T, 0, u.size)
	if u.mode == Maps.Chaining {
		for _, b := range u.buckets {
			vs = append(vs, b...)
		}
		return vs
	}
	for i := range u.cap {
		if u.used.Get(i) {
			vs = append(vs, u.vals[i])
		}
	}
	return vs
}

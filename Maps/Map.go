// Package Maps holds the contract shared by the traced hash tables. HashTable implements it and HashExpr compiles the
// hash functions it is parameterised with.
package Maps

import (
	"strings"

	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

// Mode of collision resolution. It's fixed for the lifetime of a table.
type Mode uint8

const (
	OpenAddressing Mode = iota //linear probing with tombstones.
	Chaining
)

func (m Mode) String() string {
	if m == Chaining {
		return "chaining"
	}
	return "open_addressing"
}

// ParseMode accepts the names printed by Mode.String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open_addressing", "open", "":
		return OpenAddressing, nil
	case "chaining", "chain":
		return Chaining, nil
	}
	return 0, errors.Wrapf(dstrace.ErrInvalidArgument, "unknown hash table mode %q", s)
}

// Probe describes one table operation.
// Index is the final cell, or the bucket for chaining, and Path every cell visited in order; a chaining probe always
// visits exactly its bucket. ChainPos is the offset within the bucket, -1 when unused.
// Existed is set when an insert met the value already stored, and Full when an open addressing insert found no free
// cell. Neither mutates the table.
type Probe struct {
	Found    bool
	Index    int
	Path     []int
	ChainPos int
	Full     bool
	Existed  bool
}

type Table[T any] interface {
	Find(T) Probe
	Insert(T) Probe
	Delete(T) Probe
	Resize(int) error
	Clear()
	Len() int
	Capacity() int
	Mode() Mode
	LoadFactor() float64
	Values() []T
}

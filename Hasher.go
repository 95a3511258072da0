package dstrace

import (
	"github.com/cespare/xxhash"
)

// HashString hashes the string form of a value. It is stable across runs, which keeps probe traces reproducible.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashInt is HashString masked into the non negative int64 range, the form hash expressions consume as x.
func HashInt(s string) int64 {
	return int64(HashString(s) >> 1)
}

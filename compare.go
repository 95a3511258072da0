// Package dstrace holds what every traced container shares: the key ordering contract, value coercion, hashing of
// string forms, a bit array, and the precondition errors.
package dstrace

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Comparator orders keys of an engine. Compare returns a negative number if a<b, 0 if they are the same key, and a
// positive number otherwise. It must be total.
type Comparator[T any] interface {
	Compare(a, b T) int
}

// ComparatorFunc adapts a plain function to Comparator.
type ComparatorFunc[T any] func(a, b T) int

func (f ComparatorFunc[T]) Compare(a, b T) int {
	return f(a, b)
}

// Ordered is the comparator for types with a native order. NaN sorts before every other float, as in cmp.Compare.
func Ordered[T cmp.Ordered]() Comparator[T] {
	return ComparatorFunc[T](cmp.Compare[T])
}

// Default is the numeric first comparator: operands that both coerce to int64 are compared as integers, else operands
// that both coerce to float64 are compared numerically; otherwise the fmt.Sprint forms are compared lexicographically.
func Default[T any]() Comparator[T] {
	return ComparatorFunc[T](func(a, b T) int {
		return CompareAny(a, b)
	})
}

// CompareAny implements the Default ordering on interface values.
func CompareAny(a, b any) int {
	if x, ok := ToInt(a); ok {
		if y, ok := ToInt(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := ToFloat(a); ok {
		if y, ok := ToFloat(b); ok {
			return cmp.Compare(x, y)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func float[N constraints.Integer | constraints.Float](n N) float64 {
	return float64(n)
}

// ToFloat coerces numbers and numeric strings to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float(n), true
	case int8:
		return float(n), true
	case int16:
		return float(n), true
	case int32:
		return float(n), true
	case int64:
		return float(n), true
	case uint:
		return float(n), true
	case uint8:
		return float(n), true
	case uint16:
		return float(n), true
	case uint32:
		return float(n), true
	case uint64:
		return float(n), true
	case uintptr:
		return float(n), true
	case float32:
		return float(n), true
	case float64:
		return n, true
	case bool:
		return 0, false
	case string:
		return parseFloat(n)
	case fmt.Stringer:
		return parseFloat(n.String())
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func integer[N constraints.Integer](n N) int64 {
	return int64(n)
}

// ToInt coerces v to int64 when it is an integer, an integral float, or a string holding either.
func ToInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return integer(n), true
	case int8:
		return integer(n), true
	case int16:
		return integer(n), true
	case int32:
		return integer(n), true
	case int64:
		return n, true
	case uint:
		return unsigned(uint64(n))
	case uint8:
		return integer(n), true
	case uint16:
		return integer(n), true
	case uint32:
		return integer(n), true
	case uint64:
		return unsigned(n)
	case uintptr:
		return unsigned(uint64(n))
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, ok := parseFloat(s); ok {
			return integral(f)
		}
	case fmt.Stringer:
		return ToInt(n.String())
	}
	return 0, false
}

func unsigned(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func integral(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// ParseValue turns command text into the value an engine stores: int64 when integral, float64 when numeric, the
// trimmed string otherwise.
func ParseValue(s string) any {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, ok := parseFloat(s); ok {
		return f
	}
	return s
}

// Canonical is the text of v's equivalence class under CompareAny: the integer when v coerces to int64, the shortest
// float form when it only coerces to float64, fmt.Sprint otherwise. Values CompareAny calls equal share it.
func Canonical(v any) (int64, string, bool) {
	if i, ok := ToInt(v); ok {
		return i, "", true
	}
	if f, ok := ToFloat(v); ok {
		return 0, strconv.FormatFloat(f, 'g', -1, 64), false
	}
	return 0, fmt.Sprint(v), false
}

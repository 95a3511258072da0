package Engines

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

// list flattens args into operands, splitting each on commas: "1, 2" "3" and "1,2,3" are the same list.
func list(args []string) []string {
	var ops []string
	for _, a := range args {
		for _, s := range strings.Split(a, ",") {
			if s = strings.TrimSpace(s); s != "" {
				ops = append(ops, s)
			}
		}
	}
	return ops
}

func values(args []string) []any {
	return lo.Map(list(args), func(s string, _ int) any { return dstrace.ParseValue(s) })
}

func arity(args []string, n int) ([]string, error) {
	ops := list(args)
	if len(ops) != n {
		return nil, errors.Wrapf(dstrace.ErrInvalidArgument, "want %d operands, got %d", n, len(ops))
	}
	return ops, nil
}

func one(args []string) (string, error) {
	ops, err := arity(args, 1)
	if err != nil {
		return "", err
	}
	return ops[0], nil
}

func number(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(dstrace.ErrInvalidArgument, "%q is not an integer", s)
	}
	return n, nil
}

func show[T any](vs []T) string {
	return "[" + strings.Join(lo.Map(vs, func(v T, _ int) string { return fmt.Sprint(v) }), ", ") + "]"
}

func events[E fmt.Stringer](es []E) []string {
	return lo.Map(es, func(e E, _ int) string { return e.String() })
}

package HashExpr

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

// Default is the hash used when none is given.
const Default = "x % capacity"

// Expr is a compiled hash expression. It is immutable and safe to share.
type Expr struct {
	src  string
	root node
}

// Compile src. Errors wrap dstrace.ErrInvalidExpr.
func Compile(src string) (*Expr, error) {
	lower := strings.ToLower(src)
	for _, d := range Denied {
		if strings.Contains(lower, d) {
			return nil, errors.Wrapf(dstrace.ErrInvalidExpr, "%q is not allowed", d)
		}
	}
	if strings.TrimSpace(src) == "" {
		return nil, errors.Wrap(dstrace.ErrInvalidExpr, "empty expression")
	}
	ts, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{ts: ts}
	root, err := p.sum()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tEOF {
		return nil, p.unexpected()
	}
	return &Expr{src: src, root: root}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(src string) *Expr {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

func (u *Expr) String() string {
	return u.src
}

// Eval the expression. A float result is truncated toward zero; a string result, a non-finite one, or any runtime
// failure is an error.
func (u *Expr) Eval(x, capacity int64) (int64, error) {
	v, err := u.root.eval(&env{x: x, capacity: capacity})
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int64:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= math.MaxInt64 {
			return 0, errors.Wrapf(errEval, "result %v is not a valid index", v)
		}
		return int64(v), nil
	}
	return 0, errors.Wrapf(errEval, "result %q is not a number", v)
}

// Hash of x into [0, capacity). When evaluation fails it falls back to |x| mod capacity.
func (u *Expr) Hash(x, capacity int64) int {
	if capacity <= 0 {
		return 0
	}
	h, err := u.Eval(x, capacity)
	if err != nil {
		h = x
	}
	h %= capacity
	if h < 0 {
		if err != nil {
			h = -h
		} else {
			h += capacity
		}
	}
	return int(h)
}

package HashExpr

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// values are int64, float64 or string.
type value = any

var errEval = errors.New("hash expression evaluation failed")

type env struct {
	x, capacity int64
}

type node interface {
	eval(e *env) (value, error)
}

type literal struct {
	v value
}

func (n literal) eval(*env) (value, error) {
	return n.v, nil
}

type variable struct {
	x bool
}

func (n variable) eval(e *env) (value, error) {
	if n.x {
		return e.x, nil
	}
	return e.capacity, nil
}

type negate struct {
	n   node
	neg bool
}

func (n negate) eval(e *env) (value, error) {
	v, err := n.n.eval(e)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case int64:
		if n.neg {
			return -v, nil
		}
		return v, nil
	case float64:
		if n.neg {
			return -v, nil
		}
		return v, nil
	}
	return nil, errors.Wrapf(errEval, "bad operand type for unary %s: string", sign(n.neg))
}

func sign(neg bool) string {
	if neg {
		return "-"
	}
	return "+"
}

type binary struct {
	op   string
	l, r node
}

func (n binary) eval(e *env) (value, error) {
	l, err := n.l.eval(e)
	if err != nil {
		return nil, err
	}
	r, err := n.r.eval(e)
	if err != nil {
		return nil, err
	}
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok && n.op == "+" {
			return ls + rs, nil
		}
	}
	li, lInt := l.(int64)
	ri, rInt := r.(int64)
	if lInt && rInt {
		return intOp(n.op, li, ri)
	}
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if !lok || !rok {
		return nil, errors.Wrapf(errEval, "unsupported operands for %s: %T and %T", n.op, l, r)
	}
	return floatOp(n.op, lf, rf)
}

func toFloat(v value) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func intOp(op string, a, b int64) (value, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return nil, errors.Wrap(errEval, "division by zero")
		}
		return float64(a) / float64(b), nil
	case "//", "%":
		if b == 0 {
			return nil, errors.Wrap(errEval, "integer division or modulo by zero")
		}
		q, m := a/b, a%b
		if m != 0 && (m < 0) != (b < 0) {
			q--
			m += b
		}
		if op == "//" {
			return q, nil
		}
		return m, nil
	case "**":
		if b < 0 {
			return math.Pow(float64(a), float64(b)), nil
		}
		p := int64(1)
		for ; b > 0; b >>= 1 {
			if b&1 == 1 {
				p *= a
			}
			a *= a
		}
		return p, nil
	}
	return nil, errors.Wrapf(errEval, "unknown operator %s", op)
}

func floatOp(op string, a, b float64) (value, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "**":
		return math.Pow(a, b), nil
	}
	if b == 0 {
		return nil, errors.Wrap(errEval, "float division by zero")
	}
	switch op {
	case "/":
		return a / b, nil
	case "//":
		return math.Floor(a / b), nil
	case "%":
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}
	return nil, errors.Wrapf(errEval, "unknown operator %s", op)
}

type call struct {
	name string
	fn   func([]value) (value, error)
	args []node
}

func (n call) eval(e *env) (value, error) {
	vs := make([]value, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(e)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	v, err := n.fn(vs)
	return v, errors.WithMessage(err, n.name)
}

type builtin struct {
	min, max int //max < 0 means variadic.
	fn       func([]value) (value, error)
}

func (b builtin) arity() string {
	switch {
	case b.max < 0:
		return strconv.Itoa(b.min) + " or more"
	case b.min == b.max:
		return strconv.Itoa(b.min)
	}
	return strconv.Itoa(b.min) + " to " + strconv.Itoa(b.max)
}

var builtins = map[string]builtin{
	"int":   {1, 1, toInt},
	"float": {1, 1, toFloatFn},
	"abs":   {1, 1, abs},
	"str":   {1, 1, str},
	"len":   {1, 1, length},
	"ord":   {1, 1, ord},
	"min":   {1, -1, func(vs []value) (value, error) { return extreme(vs, -1) }},
	"max":   {1, -1, func(vs []value) (value, error) { return extreme(vs, 1) }},
}

func toInt(vs []value) (value, error) {
	switch v := vs[0].(type) {
	case int64:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(errEval, "cannot convert %v to integer", v)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errEval, "invalid literal for int(): %q", v)
		}
		return i, nil
	}
	return nil, errEval
}

func toFloatFn(vs []value) (value, error) {
	if s, ok := vs[0].(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, errors.Wrapf(errEval, "could not convert string to float: %q", s)
		}
		return f, nil
	}
	f, _ := toFloat(vs[0])
	return f, nil
}

func abs(vs []value) (value, error) {
	switch v := vs[0].(type) {
	case int64:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case float64:
		return math.Abs(v), nil
	}
	return nil, errors.Wrap(errEval, "bad operand type for abs(): string")
}

func str(vs []value) (value, error) {
	switch v := vs[0].(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s, nil
	}
	return vs[0], nil
}

func length(vs []value) (value, error) {
	s, ok := vs[0].(string)
	if !ok {
		return nil, errors.Wrapf(errEval, "object of type %T has no len()", vs[0])
	}
	return int64(utf8.RuneCountInString(s)), nil
}

func ord(vs []value) (value, error) {
	s, ok := vs[0].(string)
	if !ok || utf8.RuneCountInString(s) != 1 {
		return nil, errors.Wrap(errEval, "ord() expected a character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return int64(r), nil
}

// extreme is min for dir < 0 and max otherwise. A single string argument is treated as its sequence of characters.
func extreme(vs []value, dir int) (value, error) {
	if len(vs) == 1 {
		s, ok := vs[0].(string)
		if !ok || s == "" {
			return nil, errors.Wrap(errEval, "expected a non-empty sequence")
		}
		vs = vs[:0]
		for _, r := range s {
			vs = append(vs, string(r))
		}
	}
	best := vs[0]
	for _, v := range vs[1:] {
		c, err := compare(v, best)
		if err != nil {
			return nil, err
		}
		if c*dir > 0 {
			best = v
		}
	}
	return best, nil
}

func compare(a, b value) (int, error) {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), nil
		}
		return 0, errors.Wrap(errEval, "cannot compare string and number")
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return 0, errors.Wrap(errEval, "cannot compare string and number")
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	}
	return 0, nil
}

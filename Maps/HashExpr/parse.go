// Package HashExpr compiles user supplied hash functions. The language is a closed arithmetic grammar over the two
// bindings x and capacity:
//
//	expr    := sum
//	sum     := product (('+'|'-') product)*
//	product := unary (('*'|'/'|'//'|'%') unary)*
//	unary   := ('-'|'+') unary | power
//	power   := atom ('**' unary)?
//	atom    := NUMBER | STRING | NAME | NAME '(' args ')' | '(' expr ')'
//
// The callable names are int, float, abs, str, len, ord, min and max. % and // floor toward negative infinity.
package HashExpr

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	dstrace "github.com/g-m-twostay/go-dstrace"
)

// Denied is rejected anywhere in the lower-cased source, names and string literals included.
var Denied = [...]string{"import", "exec", "eval", "__", "open", "file", "input", "globals", "locals"}

type tokKind uint8

const (
	tEOF tokKind = iota
	tNum
	tStr
	tName
	tOp
)

type token struct {
	kind tokKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var ts []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case unicode.IsDigit(c) || (c == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || rs[j] == '.' || rs[j] == '_') {
				j++
			}
			ts = append(ts, token{tNum, string(rs[i:j]), i})
			i = j
		case c == '_' || unicode.IsLetter(c):
			j := i
			for j < len(rs) && (rs[j] == '_' || unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			ts = append(ts, token{tName, string(rs[i:j]), i})
			i = j
		case c == '\'' || c == '"':
			var b strings.Builder
			j := i + 1
			for ; j < len(rs) && rs[j] != c; j++ {
				if rs[j] == '\\' && j+1 < len(rs) {
					j++
				}
				b.WriteRune(rs[j])
			}
			if j == len(rs) {
				return nil, errors.Wrapf(dstrace.ErrInvalidExpr, "unterminated string at %d", i)
			}
			ts = append(ts, token{tStr, b.String(), i})
			i = j + 1
		case strings.ContainsRune("+-*/%(),", c):
			op := string(c)
			if (c == '*' || c == '/') && i+1 < len(rs) && rs[i+1] == c {
				op += string(c)
			}
			ts = append(ts, token{tOp, op, i})
			i += len(op)
		default:
			return nil, errors.Wrapf(dstrace.ErrInvalidExpr, "unexpected %q at %d", c, i)
		}
	}
	return append(ts, token{tEOF, "", len(rs)}), nil
}

type parser struct {
	ts []token
	i  int
}

func (p *parser) peek() token {
	return p.ts[p.i]
}

func (p *parser) next() token {
	t := p.ts[p.i]
	if t.kind != tEOF {
		p.i++
	}
	return t
}

func (p *parser) accept(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.i++
			return op, true
		}
	}
	return "", false
}

func (p *parser) expect(op string) error {
	if _, ok := p.accept(op); !ok {
		return p.unexpected()
	}
	return nil
}

func (p *parser) unexpected() error {
	t := p.peek()
	if t.kind == tEOF {
		return errors.Wrap(dstrace.ErrInvalidExpr, "unexpected end of expression")
	}
	return errors.Wrapf(dstrace.ErrInvalidExpr, "unexpected %q at %d", t.text, t.pos)
}

func (p *parser) sum() (node, error) {
	l, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept("+", "-")
		if !ok {
			return l, nil
		}
		r, err := p.product()
		if err != nil {
			return nil, err
		}
		l = binary{op, l, r}
	}
}

func (p *parser) product() (node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept("*", "/", "//", "%")
		if !ok {
			return l, nil
		}
		r, err := p.unary()
		if err != nil {
			return nil, err
		}
		l = binary{op, l, r}
	}
}

func (p *parser) unary() (node, error) {
	if op, ok := p.accept("-", "+"); ok {
		n, err := p.unary()
		if err != nil {
			return nil, err
		}
		return negate{n, op == "-"}, nil
	}
	return p.power()
}

func (p *parser) power() (node, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept("**"); !ok {
		return base, nil
	}
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return binary{"**", base, exp}, nil
}

func (p *parser) atom() (node, error) {
	t := p.next()
	switch t.kind {
	case tNum:
		s := strings.ReplaceAll(t.text, "_", "")
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return literal{i}, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(dstrace.ErrInvalidExpr, "bad number %q at %d", t.text, t.pos)
		}
		return literal{f}, nil
	case tStr:
		return literal{t.text}, nil
	case tName:
		if _, ok := p.accept("("); ok {
			return p.call(t)
		}
		switch t.text {
		case "x":
			return variable{true}, nil
		case "capacity":
			return variable{false}, nil
		}
		return nil, errors.Wrapf(dstrace.ErrInvalidExpr, "unknown name %q at %d", t.text, t.pos)
	case tOp:
		if t.text == "(" {
			n, err := p.sum()
			if err != nil {
				return nil, err
			}
			return n, p.expect(")")
		}
	}
	if t.kind != tEOF {
		p.i--
	}
	return nil, p.unexpected()
}

func (p *parser) call(name token) (node, error) {
	f, ok := builtins[name.text]
	if !ok {
		return nil, errors.Wrapf(dstrace.ErrInvalidExpr, "unknown function %q at %d", name.text, name.pos)
	}
	var args []node
	if _, ok := p.accept(")"); !ok {
		for {
			a, err := p.sum()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if _, ok := p.accept(","); !ok {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if len(args) < f.min || (f.max >= 0 && len(args) > f.max) {
		return nil, errors.Wrapf(dstrace.ErrInvalidExpr, "%s takes %s arguments, got %d", name.text, f.arity(), len(args))
	}
	return call{name.text, f.fn, args}, nil
}

package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

type parser struct {
	expr string
	pos  int
}

func (p *parser) parse() ([]segment, error) {
	var segs []segment

	switch p.expr[0] {
	case '$':
		p.pos++
	case '.', '[':
	default:
		seg, err := p.name(0)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}

	for p.pos < len(p.expr) {
		start := p.pos
		switch c := p.expr[p.pos]; c {
		case '.':
			p.pos++
			if p.pos < len(p.expr) && p.expr[p.pos] == '.' {
				return nil, p.fail(start, "recursive descent is not supported")
			}
			seg, err := p.name(start)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		case '[':
			seg, err := p.bracket()
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		default:
			return nil, p.fail(start, fmt.Sprintf("unexpected character %q", c))
		}
	}
	return segs, nil
}

// name reads a dotted member name starting at p.pos; start is the offset of the segment.
func (p *parser) name(start int) (segment, error) {
	begin := p.pos
	for p.pos < len(p.expr) {
		c := p.expr[p.pos]
		if c == '.' || c == '[' {
			break
		}
		switch c {
		case '*':
			return segment{}, p.fail(p.pos, "wildcards are not supported")
		case ']', ' ', '\t', '\'', '"':
			return segment{}, p.fail(p.pos, fmt.Sprintf("unexpected character %q in property name", c))
		}
		p.pos++
	}
	if begin == p.pos {
		return segment{}, p.fail(start, "empty property name")
	}
	return segment{name: p.expr[begin:p.pos], offset: start, end: p.pos}, nil
}

func (p *parser) bracket() (segment, error) {
	start := p.pos
	p.pos++
	p.skipSpace()
	if p.pos >= len(p.expr) {
		return segment{}, p.fail(start, "unterminated bracket")
	}

	var seg segment
	switch c := p.expr[p.pos]; {
	case c == '\'' || c == '"':
		name, err := p.quoted(c)
		if err != nil {
			return segment{}, err
		}
		seg = segment{name: name}
	case c == '-' || isDigit(c):
		begin := p.pos
		if c == '-' {
			p.pos++
		}
		for p.pos < len(p.expr) && isDigit(p.expr[p.pos]) {
			p.pos++
		}
		n, err := strconv.Atoi(p.expr[begin:p.pos])
		if err != nil {
			return segment{}, p.fail(begin, fmt.Sprintf("invalid index %q", p.expr[begin:p.pos]))
		}
		seg = segment{index: n, isIndex: true}
	case c == '*':
		return segment{}, p.fail(p.pos, "wildcards are not supported")
	case c == '?' || c == '(':
		return segment{}, p.fail(p.pos, "filter and script expressions are not supported")
	default:
		return segment{}, p.fail(p.pos, fmt.Sprintf("unexpected character %q in brackets", c))
	}

	p.skipSpace()
	if p.pos >= len(p.expr) {
		return segment{}, p.fail(start, "unterminated bracket")
	}
	switch c := p.expr[p.pos]; c {
	case ']':
		p.pos++
	case ':', ',':
		return segment{}, p.fail(p.pos, "slices and unions are not supported")
	default:
		return segment{}, p.fail(p.pos, fmt.Sprintf("expected ']' but found %q", c))
	}

	seg.offset = start
	seg.end = p.pos
	return seg, nil
}

func (p *parser) quoted(q byte) (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for p.pos < len(p.expr) {
		c := p.expr[p.pos]
		switch c {
		case '\\':
			p.pos++
			if p.pos >= len(p.expr) {
				return "", p.fail(start, "unterminated string")
			}
			b.WriteByte(p.expr[p.pos])
		case q:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
		p.pos++
	}
	return "", p.fail(start, "unterminated string")
}

func (p *parser) skipSpace() {
	for p.pos < len(p.expr) && (p.expr[p.pos] == ' ' || p.expr[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) fail(offset int, detail string) error {
	return &Error{Expr: p.expr, Offset: offset, Err: ErrSyntax, detail: detail}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

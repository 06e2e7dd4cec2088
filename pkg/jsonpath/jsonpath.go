// Package jsonpath evaluates a small subset of JSONPath against documents
// decoded by encoding/json (map[string]any, []any and scalars).
//
// Supported: an optional leading "$", dotted property access (.name), quoted
// bracket access (['name'] or ["name"]) and bracket indexing ([0], [-1] counts
// from the end). Recursive descent, wildcards, filters, slices and unions are
// rejected with ErrSyntax.
package jsonpath

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax reports a malformed or unsupported path expression.
	ErrSyntax = errors.New("syntax error")
	// ErrNoSuchProperty reports an object without the requested member.
	ErrNoSuchProperty = errors.New("no such property")
	// ErrIndexOutOfRange reports an array index outside the array bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotContainer reports a segment applied to a value of the wrong kind.
	ErrNotContainer = errors.New("not an object or array")
)

// Error carries the expression and the position where compilation or evaluation failed.
type Error struct {
	Expr   string
	Offset int
	Err    error
	detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonpath %q: %v at offset %d: %s", e.Expr, e.Err, e.Offset, e.detail)
}

func (e *Error) Unwrap() error { return e.Err }

type segment struct {
	name    string
	index   int
	isIndex bool
	offset  int
	end     int
}

// Path is a compiled expression. The zero value is not usable; use Compile.
type Path struct {
	expr     string
	segments []segment
}

// Compile parses expr.
func Compile(expr string) (Path, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Path{}, &Error{Expr: expr, Err: ErrSyntax, detail: "empty path"}
	}
	p := &parser{expr: expr}
	segs, err := p.parse()
	if err != nil {
		return Path{}, err
	}
	return Path{expr: expr, segments: segs}, nil
}

// Evaluate compiles expr and applies it to doc.
func Evaluate(doc any, expr string) (any, error) {
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Evaluate(doc)
}

// String returns the source expression.
func (p Path) String() string { return p.expr }

// Evaluate returns the value selected by the path. A path of only "$" selects doc itself.
func (p Path) Evaluate(doc any) (any, error) {
	if p.expr == "" {
		return nil, &Error{Err: ErrSyntax, detail: "path was not compiled"}
	}

	cur := doc
	for _, seg := range p.segments {
		at := p.expr[:seg.end]
		if seg.isIndex {
			arr, ok := cur.([]any)
			if !ok {
				return nil, &Error{Expr: p.expr, Offset: seg.offset, Err: ErrNotContainer,
					detail: fmt.Sprintf("%s expects an array, found %s", at, kindOf(cur))}
			}
			idx := seg.index
			if idx < 0 {
				idx += len(arr)
			}
			if idx < 0 || idx >= len(arr) {
				return nil, &Error{Expr: p.expr, Offset: seg.offset, Err: ErrIndexOutOfRange,
					detail: fmt.Sprintf("%s on array of length %d", at, len(arr))}
			}
			cur = arr[idx]
			continue
		}

		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, &Error{Expr: p.expr, Offset: seg.offset, Err: ErrNotContainer,
				detail: fmt.Sprintf("%s expects an object, found %s", at, kindOf(cur))}
		}
		v, ok := obj[seg.name]
		if !ok {
			return nil, &Error{Expr: p.expr, Offset: seg.offset, Err: ErrNoSuchProperty,
				detail: fmt.Sprintf("%s (property %q)", at, seg.name)}
		}
		cur = v
	}
	return cur, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}

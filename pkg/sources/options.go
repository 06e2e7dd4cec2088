package sources

import (
	"fmt"
	"strconv"
	"strings"
)

// Option is one query parameter. Value is a string, int, bool or []string.
type Option struct {
	Key   string
	Value any
}

// Options is an ordered option set. Sources build a fresh value on every call.
type Options []Option

// Encode serializes the options in declaration order as key=value pairs joined by "&".
// List values are joined with "," and always included; empty strings, zero and false are skipped.
func (o Options) Encode() string {
	parts := make([]string, 0, len(o))
	for _, opt := range o {
		switch v := opt.Value.(type) {
		case []string:
			parts = append(parts, opt.Key+"="+strings.Join(v, ","))
		case string:
			if v != "" {
				parts = append(parts, opt.Key+"="+v)
			}
		case int:
			if v != 0 {
				parts = append(parts, opt.Key+"="+strconv.Itoa(v))
			}
		case bool:
			if v {
				parts = append(parts, opt.Key+"=true")
			}
		case nil:
		default:
			if s := fmt.Sprint(v); s != "" {
				parts = append(parts, opt.Key+"="+s)
			}
		}
	}
	return strings.Join(parts, "&")
}

// splitList splits a comma separated setting, trimming elements and dropping blanks.
func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// bitmask renders flags as a string of 1s and 0s.
func bitmask(flags ...bool) string {
	var b strings.Builder
	for _, f := range flags {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

package sources

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Characters kept as-is by encodeURI besides ASCII letters and digits.
const uriSafe = "-_.!~*'();/?:@&=+$,#"

// maxDecodeRounds bounds FileName's repeated decoding.
const maxDecodeRounds = 128

// ErrDecodeNotConverging is returned by FileName when decoding never reaches a fixed point.
var ErrDecodeNotConverging = errors.New("uri keeps decoding")

// encodeURI percent-encodes every byte outside the URI character set, keeping
// delimiters and existing %XX escapes intact so the result is a single valid URL.
func encodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isAlnum(c) || strings.IndexByte(uriSafe, c) >= 0:
			b.WriteByte(c)
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// buildURL appends the non-empty query parts to base and encodes the result as one unit.
func buildURL(base string, parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return encodeURI(appendQuery(base, strings.Join(nonEmpty, "&")))
}

// appendQuery adds query to u, using "&" when u already carries a query string.
func appendQuery(u, query string) string {
	if query == "" {
		return u
	}
	switch {
	case !strings.Contains(u, "?"):
		return u + "?" + query
	case strings.HasSuffix(u, "?"), strings.HasSuffix(u, "&"):
		return u + query
	default:
		return u + "&" + query
	}
}

// FileName returns the last path segment of uri, without query, after decoding
// it until it no longer changes. Decoding stops at the first malformed escape.
func FileName(uri string) (string, error) {
	decoded, err := decodeFully(uri)
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(decoded, '?'); i >= 0 {
		decoded = decoded[:i]
	}
	return decoded[strings.LastIndex(decoded, "/")+1:], nil
}

// decodeFully unescapes until nothing changes. A round that hits a malformed
// escape or yields invalid UTF-8 leaves s as it was.
func decodeFully(s string) (string, error) {
	for i := 0; i < maxDecodeRounds; i++ {
		next, ok := unescapeOnce(s)
		if !ok {
			return s, nil
		}
		s = next
	}
	if _, ok := unescapeOnce(s); ok {
		return "", fmt.Errorf("%w after %d rounds", ErrDecodeNotConverging, maxDecodeRounds)
	}
	return s, nil
}

func unescapeOnce(s string) (string, bool) {
	next, err := url.PathUnescape(s)
	if err != nil || next == s || !utf8.ValidString(next) {
		return s, false
	}
	return next, true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

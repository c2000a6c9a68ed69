// Package urlnorm derives the canonical comparison key used for
// article deduplication.
package urlnorm

import (
	"fmt"
	"net/url"
	"strings"
)

// Canonicalize turns a raw URL into its canonical form: a single pass of
// percent-decoding over the whole string, then the fragment stripped.
// Scheme, host, path, and query pass through byte-for-byte — trailing
// slashes, case, and query order are deliberately preserved, since some
// publishers encode distinct pages that way. Invalid escape sequences are
// kept literally rather than rejected. The result is a fixed point:
// canonicalizing a canonical URL yields itself, so a pre-encoded escape
// like "%252F", whose decoded form would decode again, stays encoded.
func Canonicalize(raw string) (string, error) {
	decoded := stripFragment(decodeOnce(raw))
	if decodeOnce(decoded) != decoded {
		// The input carries more than one layer of encoding; peeling one
		// layer would hand later passes a different key, so keep the input
		// encoding (still dropping any literal fragment).
		decoded = stripFragment(raw)
	}

	// Decoding can leave literal '%' bytes that url.Parse would reject as
	// malformed escapes, so the structural validation runs on a probe with
	// percents masked. The returned value is the unmasked string.
	probe := strings.ReplaceAll(decoded, "%", "%25")
	if _, err := url.Parse(probe); err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}

	return decoded, nil
}

func stripFragment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i]
	}
	return s
}

// decodeOnce percent-decodes one layer. Invalid escapes stay literal, and
// an escape is left encoded when its decoded byte is '%' followed by two
// hex digits, since decoding it would assemble a brand-new escape.
func decodeOnce(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+3 <= len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			c := unHex(s[i+1])<<4 | unHex(s[i+2])
			if c == '%' && i+5 <= len(s) && isHex(s[i+3]) && isHex(s[i+4]) {
				b.WriteString(s[i : i+3])
			} else {
				b.WriteByte(c)
			}
			i += 3
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unHex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

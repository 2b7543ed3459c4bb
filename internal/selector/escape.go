// Package selector holds the small selector grammars used when turning a
// candidate into a rule: class-name escaping, attribute selectors and
// pseudo-element placement.
package selector

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Escape escapes s for use as a CSS identifier, following CSS.escape().
// Class selectors are built as "." + Escape(candidate), so sm:w-1/2
// becomes .sm\:w-1\/2.
func Escape(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s) + 8)

	for i, r := range s {
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case (r >= 0x01 && r <= 0x1f) || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		case i == 0 && isDigit(r):
			fmt.Fprintf(&b, `\%x `, r)
		case i == 1 && isDigit(r) && s[0] == '-':
			fmt.Fprintf(&b, `\%x `, r)
		case i == 0 && r == '-' && len(s) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || isIdent(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Class returns the class selector for a raw candidate.
func Class(candidate string) string {
	return "." + Escape(candidate)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdent(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r == '-' || r == '_'
}

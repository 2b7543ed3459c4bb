package arbitrary

import "strings"

var mathFunctions = map[string]bool{
	"calc":  true,
	"min":   true,
	"max":   true,
	"clamp": true,
	"mod":   true,
	"rem":   true,
	"round": true,
	"abs":   true,
	"sign":  true,
	"pow":   true,
	"sqrt":  true,
	"hypot": true,
	"log":   true,
	"exp":   true,
}

// Decode converts the raw text of an arbitrary value into CSS.
//
// Underscores become spaces, except inside url(), inside quoted strings,
// inside custom property names (words starting with "--"), and when escaped
// as "\_" (which becomes a literal underscore). Quoted strings are copied
// verbatim. Inside math functions, "+", "-", "*" and "/" between
// operands get surrounding spaces, so "calc(100%-1rem)" becomes
// "calc(100% - 1rem)".
func Decode(raw string) string {
	if !strings.ContainsAny(raw, "_(\\") {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw) + 8)

	// Function names of the open parentheses, innermost last.
	var fnBuf [maxDepth]string
	fns := fnBuf[:0]
	wordStart := 0 // start of the current word in the output

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		inURL := len(fns) > 0 && fns[len(fns)-1] == "url"

		switch {
		case c == '\\' && i+1 < len(raw) && raw[i+1] == '_':
			if inURL {
				b.WriteString(`\_`)
			} else {
				b.WriteByte('_')
			}
			i++

		case c == '\\' && i+1 < len(raw):
			b.WriteByte(c)
			b.WriteByte(raw[i+1])
			i++

		case c == '\'' || c == '"':
			end := closingQuote(raw, i)
			if end < 0 {
				end = len(raw) - 1
			}
			b.WriteString(raw[i : end+1])
			i = end

		case c == '_':
			out := b.String()
			if inURL || strings.HasPrefix(out[wordStart:], "--") {
				b.WriteByte('_')
			} else {
				b.WriteByte(' ')
				wordStart = b.Len()
			}

		case c == '(':
			out := b.String()
			name := strings.ToLower(trailingIdent(out))
			if len(fns) < maxDepth {
				fns = append(fns, name)
			}
			b.WriteByte(c)
			wordStart = b.Len()

		case c == ')':
			if len(fns) > 0 {
				fns = fns[:len(fns)-1]
			}
			b.WriteByte(c)
			wordStart = b.Len()

		case c == ' ' || c == ',':
			b.WriteByte(c)
			wordStart = b.Len()

		case (c == '+' || c == '-' || c == '*' || c == '/') && inMath(fns):
			out := b.String()
			if isMathOperator(raw, i, out[wordStart:]) {
				writeSpaced(&b, c)
				wordStart = b.Len()
			} else {
				b.WriteByte(c)
			}

		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// inMath reports whether the innermost open function is a math function.
// Arguments of var(), env() and similar are left alone.
func inMath(fns []string) bool {
	return len(fns) > 0 && mathFunctions[fns[len(fns)-1]]
}

// isMathOperator decides whether the operator at raw[i] separates two
// operands. word is the output produced since the last separator.
func isMathOperator(raw string, i int, word string) bool {
	c := raw[i]
	if i == 0 || i+1 >= len(raw) {
		return false
	}
	prev, next := raw[i-1], raw[i+1]

	if c == '*' || c == '/' {
		return prev != ' ' && next != ' '
	}

	// "-" and "+" starting a word are signs: calc(-1 * 2rem), var(--x)
	if prev == ' ' || prev == '(' || prev == ',' || (word == "" && prev != ')') {
		return false
	}
	if strings.HasPrefix(word, "--") {
		return false
	}
	// exponent: 1e-3
	if (prev == 'e' || prev == 'E') && i >= 2 && isDigit(raw[i-2]) && isDigit(next) {
		return false
	}
	if !(isDigit(prev) || prev == '%' || prev == ')' || isLetter(prev)) {
		return false
	}
	// identifiers like "auto-fit" contain hyphens but have no digits before them
	if isLetter(prev) && !hasDigit(word) {
		return false
	}
	return isDigit(next) || next == '(' || next == '.' || isLetter(next) || next == '-'
}

func writeSpaced(b *strings.Builder, c byte) {
	b.WriteByte(' ')
	b.WriteByte(c)
	b.WriteByte(' ')
}

// trailingIdent returns the identifier characters at the end of s.
func trailingIdent(s string) string {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if isLetter(c) || isDigit(c) || c == '-' || c == '_' {
			i--
			continue
		}
		break
	}
	return s[i:]
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}

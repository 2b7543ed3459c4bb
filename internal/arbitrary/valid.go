// Package arbitrary implements the small grammars behind bracketed arbitrary
// values: the balanced-bracket plausibility check, top-level segmentation,
// a CSS value tokenizer, underscore/whitespace decoding and data-type inference.
//
// Everything here is a byte-indexed state machine; none of it allocates per
// character and none of it panics on arbitrary input.
package arbitrary

// maxDepth bounds the bracket stack. Values nested deeper than this are
// rejected rather than tracked.
const maxDepth = 64

// IsValid reports whether text is acceptable inside an arbitrary value.
//
// Parentheses and square brackets must balance. Curly braces are never
// pushed, so any closing brace with nothing open (or the wrong thing open)
// fails. Quoted spans are opaque. A semicolon outside any bracket fails.
// Escapes consume the following byte.
//
// This is a plausibility check, not CSS validation.
func IsValid(text string) bool {
	var buf [maxDepth]byte
	stack := buf[:0]

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\\':
			i++

		case '\'', '"':
			if end := closingQuote(text, i); end >= 0 {
				i = end
			}

		case '(':
			if len(stack) == maxDepth {
				return false
			}
			stack = append(stack, ')')

		case '[':
			if len(stack) == maxDepth {
				return false
			}
			stack = append(stack, ']')

		case '{':
			// not tracked

		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return false
			}
			stack = stack[:len(stack)-1]

		case ';':
			if len(stack) == 0 {
				return false
			}
		}
	}

	return len(stack) == 0
}

// closingQuote returns the index of the unescaped quote that closes the one
// at start, or -1 when the quote is never closed.
func closingQuote(text string, start int) int {
	q := text[start]
	for j := start + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case q:
			return j
		}
	}
	return -1
}

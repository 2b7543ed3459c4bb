package arbitrary

// Segment splits input at every occurrence of sep that is not inside
// parentheses, brackets, braces or quotes, and not escaped.
// The result always has at least one element; empty segments are kept so
// callers can reject inputs like "hover::flex".
func Segment(input string, sep byte) []string {
	var buf [maxDepth]byte
	stack := buf[:0]

	parts := make([]string, 0, 4)
	last := 0

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch c {
		case '\\':
			i++
			continue

		case '\'', '"':
			if end := closingQuote(input, i); end >= 0 {
				i = end
			}
			continue

		case '(':
			stack = pushCloser(stack, ')')
			continue
		case '[':
			stack = pushCloser(stack, ']')
			continue
		case '{':
			stack = pushCloser(stack, '}')
			continue

		case ')', ']', '}':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if c == sep && len(stack) == 0 {
			parts = append(parts, input[last:i])
			last = i + 1
		}
	}

	return append(parts, input[last:])
}

// LastIndexTopLevel returns the index of the last top-level sep in input,
// or -1. It uses the same nesting rules as Segment.
func LastIndexTopLevel(input string, sep byte) int {
	var buf [maxDepth]byte
	stack := buf[:0]
	idx := -1

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch c {
		case '\\':
			i++
		case '\'', '"':
			if end := closingQuote(input, i); end >= 0 {
				i = end
			}
		case '(':
			stack = pushCloser(stack, ')')
		case '[':
			stack = pushCloser(stack, ']')
		case '{':
			stack = pushCloser(stack, '}')
		case ')', ']', '}':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		default:
			if c == sep && len(stack) == 0 {
				idx = i
			}
		}
	}

	return idx
}

// IndexTopLevel returns the index of the first top-level sep in input, or -1.
func IndexTopLevel(input string, sep byte) int {
	parts := Segment(input, sep)
	if len(parts) == 1 {
		return -1
	}
	return len(parts[0])
}

func pushCloser(stack []byte, closer byte) []byte {
	if len(stack) == cap(stack) {
		// Deeper than we track: stay saturated so nothing below splits.
		return stack
	}
	return append(stack, closer)
}

package selector

import "strings"

// pseudoElements that variants can produce. Selectors containing any other
// "::name" leave it where it is.
var pseudoElements = map[string]bool{
	"before":               true,
	"after":                true,
	"placeholder":          true,
	"file-selector-button": true,
	"marker":               true,
	"selection":            true,
	"first-line":           true,
	"first-letter":         true,
	"backdrop":             true,
	"details-content":      true,
	"target-text":          true,
	"spelling-error":       true,
	"grammar-error":        true,
	"cue":                  true,
	"part":                 true,
	"slotted":              true,
	"view-transition":      true,
}

// IsPseudoElement reports whether name (without colons) is a known
// pseudo-element.
func IsPseudoElement(name string) bool {
	return pseudoElements[name]
}

// SplitList splits a selector list at top-level commas.
func SplitList(sel string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(sel); i++ {
		switch c := sel[i]; c {
		case '\\':
			i++
		case '"', '\'':
			if end := closingQuote(sel, i); end >= 0 {
				i = end
			}
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(sel[last:i]))
				last = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(sel[last:]))
}

// MovePseudoElements moves known pseudo-elements in the last compound of
// each selector in the list to the end, so that a pseudo-class added after a
// pseudo-element still applies to the originating element:
//
//	.x::before:hover -> .x:hover::before
func MovePseudoElements(sel string) string {
	if !strings.Contains(sel, "::") {
		return sel
	}
	parts := SplitList(sel)
	for i, p := range parts {
		parts[i] = movePseudoElementsOne(p)
	}
	return strings.Join(parts, ", ")
}

func movePseudoElementsOne(sel string) string {
	compound := lastCompoundStart(sel)

	var kept, moved strings.Builder
	kept.WriteString(sel[:compound])

	depth := 0
	for i := compound; i < len(sel); i++ {
		c := sel[i]
		switch {
		case c == '\\' && i+1 < len(sel):
			kept.WriteString(sel[i : i+2])
			i++
			continue
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && c == ':' && i+1 < len(sel) && sel[i+1] == ':':
			end := pseudoEnd(sel, i+2)
			name := sel[i+2 : identEnd(sel, i+2)]
			if pseudoElements[name] {
				moved.WriteString(sel[i:end])
				i = end - 1
				continue
			}
		}
		kept.WriteByte(c)
	}

	if moved.Len() == 0 {
		return sel
	}
	return kept.String() + moved.String()
}

// lastCompoundStart returns the index after the last top-level combinator.
func lastCompoundStart(sel string) int {
	depth := 0
	start := 0
	for i := 0; i < len(sel); i++ {
		switch c := sel[i]; c {
		case '\\':
			i++
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ' ', '>', '+', '~':
			if depth == 0 {
				start = i + 1
			}
		}
	}
	return start
}

func identEnd(sel string, i int) int {
	for i < len(sel) && isNameByte(sel[i]) {
		i++
	}
	return i
}

// pseudoEnd returns the end of a pseudo-element starting at its name,
// including a functional argument list like ::part(label).
func pseudoEnd(sel string, i int) int {
	i = identEnd(sel, i)
	if i < len(sel) && sel[i] == '(' {
		depth := 0
		for ; i < len(sel); i++ {
			switch sel[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
	}
	return i
}

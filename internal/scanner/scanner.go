// Package scanner extracts class-name candidates from arbitrary source text.
//
// The scanner is a single-pass byte state machine. It knows nothing about
// the language it reads beyond a few hints; it over-approximates and leaves
// rejecting non-utilities to the candidate parser.
package scanner

import (
	"iter"
	"path/filepath"
	"strings"

	"bennypowers.dev/utilgen/internal/collections"
)

// maxDepth bounds bracket nesting within one token.
const maxDepth = 64

// Hints adjust tokenization for a file type.
type Hints struct {
	// DotShorthand splits "div.flex.p-4" into its classes (Pug, Haml, Slim).
	DotShorthand bool
	// ClassDirectives accepts "class:name={...}" directives (Svelte).
	ClassDirectives bool
}

// HintsFor returns the hints for a file based on its extension.
func HintsFor(path string) Hints {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pug", ".jade", ".haml", ".slim":
		return Hints{DotShorthand: true}
	case ".svelte":
		return Hints{ClassDirectives: true}
	}
	return Hints{}
}

// Scanner tokenizes content. The zero value scans with no hints. A Scanner
// holds no state between calls and is safe for concurrent use.
type Scanner struct {
	hints Hints
}

// New returns a scanner with the given hints.
func New(hints Hints) *Scanner {
	return &Scanner{hints: hints}
}

// ForFile returns a scanner configured for path.
func ForFile(path string) *Scanner {
	return New(HintsFor(path))
}

// Candidates returns a lazy sequence of the distinct candidates in content.
// Breaking out of the loop stops the scan.
func (s *Scanner) Candidates(content []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		s.tokens(content, func(start, end int) bool {
			tok := content[start:end]
			if _, ok := seen[string(tok)]; ok {
				return true
			}
			str := string(tok)
			seen[str] = struct{}{}
			return yield(str)
		})
	}
}

// Scan returns the set of candidates in content.
func (s *Scanner) Scan(content []byte) collections.Set[string] {
	set := collections.NewSet[string]()
	s.tokens(content, func(start, end int) bool {
		set.Add(string(content[start:end]))
		return true
	})
	return set
}

// TokenAt returns the candidate that contains byte offset, with its bounds.
func (s *Scanner) TokenAt(content []byte, offset int) (token string, start, end int, ok bool) {
	if offset < 0 || offset > len(content) {
		return "", 0, 0, false
	}
	s.tokens(content, func(st, en int) bool {
		if st <= offset && offset < en {
			token, start, end, ok = string(content[st:en]), st, en, true
			return false
		}
		return st <= offset
	})
	return token, start, end, ok
}

// tokens calls emit with the bounds of every plausible candidate, in order.
func (s *Scanner) tokens(content []byte, emit func(start, end int) bool) {
	n := len(content)
	i := 0
	for i < n {
		c := content[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c != '[' && isBoundary(c) || c == '(' {
			i++
			continue
		}

		start := i
		t := readToken(content, start)

		if !t.balanced {
			if t.firstOpen > start && !s.emitToken(content, start, t.firstOpen, emit) {
				return
			}
			i = max(t.resume, start+1)
			continue
		}

		if !s.emitTerminated(content, start, t.end, emit) {
			return
		}
		i = max(t.end, start+1)
	}
}

// emitTerminated applies the rules that depend on what surrounds a token.
func (s *Scanner) emitTerminated(content []byte, start, end int, emit func(int, int) bool) bool {
	var term byte
	if end < len(content) {
		term = content[end]
	}

	if s.hints.ClassDirectives && hasPrefix(content[start:end], "class:") {
		return s.emitToken(content, start+len("class:"), end, emit)
	}

	switch {
	case start > 0 && content[start-1] == '<':
		// tag name
		return true
	case term == '=':
		// attribute name or assignment target
		return true
	case term == '(' && !s.hints.DotShorthand:
		// function call
		return true
	}
	return s.emitToken(content, start, end, emit)
}

func (s *Scanner) emitToken(content []byte, start, end int, emit func(int, int) bool) bool {
	for end > start && content[end-1] == '.' {
		end--
	}
	if !s.hints.DotShorthand {
		if plausible(content[start:end]) {
			return emit(start, end)
		}
		return true
	}

	if plausible(content[start:end]) && !emit(start, end) {
		return false
	}
	for _, part := range dotParts(content, start, end) {
		if part[0] == start && part[1] == end {
			continue
		}
		if plausible(content[part[0]:part[1]]) && !emit(part[0], part[1]) {
			return false
		}
	}
	return true
}

type token struct {
	end       int
	balanced  bool
	firstOpen int
	resume    int
}

// readToken reads from start up to the next top-level boundary. An escaped
// byte never ends the token and stays part of it. Brackets
// opened inside the token must close before any whitespace; otherwise the
// token is unbalanced and scanning resumes at the point of failure, or just
// after the first opener when the input ran out.
func readToken(content []byte, start int) token {
	var buf [maxDepth]byte
	stack := buf[:0]
	firstOpen := -1
	n := len(content)

	fail := func(at int) token {
		return token{end: at, firstOpen: firstOpen, resume: at}
	}

	i := start
	for i < n {
		c := content[i]

		if len(stack) == 0 {
			switch {
			case c == '\\':
				i += 2
				continue
			case c == '[':
				firstOpen = i
				stack = append(stack, ']')
			case c == '(' && i > start && content[i-1] == '-':
				firstOpen = i
				stack = append(stack, ')')
			case isBoundary(c) || c == '(':
				return token{end: i, balanced: true}
			}
			i++
			continue
		}

		switch c {
		case '\\':
			i += 2
			continue
		case ' ', '\t', '\n', '\r', '\f', '\v', '`':
			return fail(i)
		case '"', '\'':
			j := closingQuoteOnLine(content, i)
			if j < 0 {
				return fail(i)
			}
			i = j
		case '(', '[', '{':
			if len(stack) == maxDepth {
				return fail(i)
			}
			stack = append(stack, closerFor(c))
		case ')', ']', '}':
			if stack[len(stack)-1] != c {
				return fail(i)
			}
			stack = stack[:len(stack)-1]
		}
		i++
	}

	if len(stack) > 0 {
		return token{end: n, firstOpen: firstOpen, resume: firstOpen + 1}
	}
	return token{end: min(i, n), balanced: true}
}

// closingQuoteOnLine finds the quote closing the one at start, giving up at
// whitespace because candidates never contain raw whitespace.
func closingQuoteOnLine(content []byte, start int) int {
	q := content[start]
	for j := start + 1; j < len(content); j++ {
		switch c := content[j]; c {
		case '\\':
			j++
		case q:
			return j
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
	}
	return -1
}

func closerFor(c byte) byte {
	switch c {
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return '}'
}

// isBoundary reports bytes that end a token outside brackets.
func isBoundary(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v',
		'"', '\'', '`', '<', '>', '=', ',', ';', '{', '}', ')', ']', '[':
		return true
	}
	return c < 0x20 || c == 0x7f
}

// plausible is the cheap filter every candidate passes.
func plausible(tok []byte) bool {
	if len(tok) == 0 {
		return false
	}
	switch first := tok[0]; {
	case isAlnum(first), first == '-', first == '!', first == '[', first == '@', first == '*', first == '_':
	default:
		return false
	}
	switch last := tok[len(tok)-1]; {
	case isAlnum(last), last == ']', last == ')', last == '%', last == '!', last == '*':
	default:
		return false
	}
	for _, c := range tok {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			return true
		}
	}
	return false
}

// dotParts splits a Pug-style "div.flex.p-4" at dots that start a class
// name, leaving decimals like "p-1.5" alone.
func dotParts(content []byte, start, end int) [][2]int {
	var parts [][2]int
	depth := 0
	last := start
	for i := start; i < end; i++ {
		switch c := content[i]; c {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth > 0 || i+1 >= end {
				continue
			}
			if i > start && isDigit(content[i-1]) && isDigit(content[i+1]) {
				continue
			}
			if i > last {
				parts = append(parts, [2]int{last, i})
			}
			last = i + 1
		}
	}
	if end > last {
		parts = append(parts, [2]int{last, end})
	}
	return parts
}

func hasPrefix(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == prefix
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c)
}

package selector

import "strings"

// Attribute is a parsed attribute selector like [data-state="open" i].
type Attribute struct {
	Name     string
	Operator string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value    string // unquoted
	Quoted   bool
	Modifier byte // 0, 'i' or 's'
}

// String renders the selector with the value always double-quoted.
func (a *Attribute) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(a.Name)
	if a.Operator != "" {
		b.WriteString(a.Operator)
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(a.Value, `"`, `\"`))
		b.WriteByte('"')
		if a.Modifier != 0 {
			b.WriteByte(' ')
			b.WriteByte(a.Modifier)
		}
	}
	b.WriteByte(']')
	return b.String()
}

type attrState int

const (
	attrName attrState = iota
	attrAfterName
	attrValueStart
	attrValueUnquoted
	attrAfterValue
)

// ParseAttribute parses the inside of an attribute selector, with or without
// the surrounding brackets. It returns false when input is not a single
// well-formed attribute selector.
func ParseAttribute(input string) (*Attribute, bool) {
	s := strings.TrimSpace(input)
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return nil, false
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil, false
	}

	attr := &Attribute{}
	state := attrName
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case attrName:
			if isNameByte(c) {
				continue
			}
			if i == start {
				return nil, false
			}
			attr.Name = s[start:i]
			state = attrAfterName
			i--

		case attrAfterName:
			switch {
			case isSpace(c):
			case c == '=':
				attr.Operator = "="
				state = attrValueStart
			case strings.IndexByte("~|^$*", c) >= 0 && i+1 < len(s) && s[i+1] == '=':
				attr.Operator = s[i : i+2]
				i++
				state = attrValueStart
			default:
				return nil, false
			}

		case attrValueStart:
			switch {
			case isSpace(c):
			case c == '"' || c == '\'':
				end := closingQuote(s, i)
				if end < 0 {
					return nil, false
				}
				attr.Value = unescapeQuotes(s[i+1 : end])
				attr.Quoted = true
				i = end
				state = attrAfterValue
			default:
				start = i
				state = attrValueUnquoted
				i--
			}

		case attrValueUnquoted:
			if isNameByte(c) || c == '\\' {
				if c == '\\' {
					i++
				}
				continue
			}
			attr.Value = s[start:i]
			state = attrAfterValue
			i--

		case attrAfterValue:
			switch {
			case isSpace(c):
			case (c == 'i' || c == 'I' || c == 's' || c == 'S') && attr.Modifier == 0:
				attr.Modifier = c | 0x20
			default:
				return nil, false
			}
		}
	}

	switch state {
	case attrName:
		attr.Name = s[start:]
	case attrValueStart:
		return nil, false
	case attrValueUnquoted:
		attr.Value = s[start:]
		if attr.Value == "" {
			return nil, false
		}
	}
	if attr.Name == "" {
		return nil, false
	}
	return attr, true
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c >= 0x80
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func closingQuote(s string, start int) int {
	q := s[start]
	for j := start + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j
		}
	}
	return -1
}

func unescapeQuotes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\'') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

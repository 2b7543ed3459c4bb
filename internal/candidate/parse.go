package candidate

import (
	"strings"

	"bennypowers.dev/utilgen/internal/arbitrary"
)

// Parser parses candidates against a registry. A Parser is safe for
// concurrent use as long as its registry is.
type Parser struct {
	registry Registry
	prefix   string
}

// NewParser returns a parser. When prefix is non-empty, every utility except
// arbitrary properties must carry it: "tw-flex", "hover:-tw-mt-2".
func NewParser(registry Registry, prefix string) *Parser {
	if registry == nil {
		panic("candidate: NewParser called with nil registry")
	}
	return &Parser{registry: registry, prefix: prefix}
}

// Prefix returns the configured utility prefix.
func (p *Parser) Prefix() string {
	return p.prefix
}

// Parse parses raw into a Candidate, or returns nil when raw is not a valid
// candidate for the registry.
func (p *Parser) Parse(raw string) *Candidate {
	if raw == "" {
		return nil
	}

	important := false
	input := raw
	if input[0] == '!' {
		important = true
		input = input[1:]
	}

	segments := arbitrary.Segment(input, ':')
	for _, s := range segments {
		if s == "" {
			return nil
		}
	}

	base := segments[len(segments)-1]

	variants := make([]*Variant, 0, len(segments)-1)
	for _, s := range segments[:len(segments)-1] {
		v := p.ParseVariant(s)
		if v == nil {
			return nil
		}
		variants = append(variants, v)
	}

	// Only one important marker is allowed.
	if important && (strings.HasPrefix(base, "!") || strings.HasSuffix(base, "!")) {
		return nil
	}
	switch {
	case strings.HasSuffix(base, "!"):
		important = true
		base = base[:len(base)-1]
	case strings.HasPrefix(base, "!"):
		important = true
		base = base[1:]
	}
	if base == "" || base[0] == '!' || base[len(base)-1] == '!' {
		return nil
	}

	c := &Candidate{
		Raw:       raw,
		Variants:  variants,
		Important: important,
	}

	if isBracketed(base, '[', ']') {
		return p.parseArbitraryProperty(c, base)
	}

	if base[0] == '-' {
		c.Negative = true
		base = base[1:]
	}

	if p.prefix != "" {
		if !strings.HasPrefix(base, p.prefix) {
			return nil
		}
		base = base[len(p.prefix):]
	}
	if base == "" {
		return nil
	}

	if !c.Negative && p.registry.HasStaticUtility(base) {
		c.Kind = Static
		c.Root = base
		return c
	}

	if !p.parseFunctional(c, base) {
		return nil
	}
	return c
}

func (p *Parser) parseArbitraryProperty(c *Candidate, base string) *Candidate {
	if mod := arbitrary.LastIndexTopLevel(base, '/'); mod > 0 {
		m := parseModifier(base[mod+1:])
		if m == nil {
			return nil
		}
		c.Modifier = m
		base = base[:mod]
		if !isBracketed(base, '[', ']') {
			return nil
		}
	}

	inner := base[1 : len(base)-1]
	colon := arbitrary.IndexTopLevel(inner, ':')
	if colon <= 0 || colon == len(inner)-1 {
		return nil
	}

	property := inner[:colon]
	if !isPropertyName(property) {
		return nil
	}
	raw := inner[colon+1:]
	if !arbitrary.IsValid(raw) {
		return nil
	}

	c.Kind = ArbitraryProperty
	c.Property = property
	c.Value = &Value{Kind: Arbitrary, Raw: base, Value: arbitrary.Decode(raw)}
	return c
}

func (p *Parser) parseFunctional(c *Candidate, base string) bool {
	if mod := arbitrary.LastIndexTopLevel(base, '/'); mod >= 0 {
		if mod == 0 {
			return false
		}
		m := parseModifier(base[mod+1:])
		if m == nil {
			return false
		}
		c.Modifier = m
		base = base[:mod]
	}

	// Arbitrary values: bg-[#fff], bg-(--brand)
	if i := arbitraryStart(base); i >= 0 {
		root := base[:i]
		if !p.registry.HasFunctionalUtility(root) {
			return false
		}
		v := parseArbitraryValue(base[i+1:], true)
		if v == nil {
			return false
		}
		c.Kind = Functional
		c.Root = root
		c.Value = v
		return true
	}

	// Bare root: rounded, shadow, border
	if p.registry.HasFunctionalUtility(base) {
		c.Kind = Functional
		c.Root = base
		return true
	}

	root, value, ok := longestRoot(base, p.registry.HasFunctionalUtility)
	if !ok || !isNamedValue(value) {
		return false
	}

	c.Kind = Functional
	c.Root = root
	c.Value = &Value{Kind: Named, Raw: value, Value: value}
	if c.Modifier != nil && c.Modifier.Kind == Named && arbitrary.IsFraction(value+"/"+c.Modifier.Value) {
		c.Value.Fraction = value + "/" + c.Modifier.Value
	}
	return true
}

// longestRoot splits s at the right-most '-' for which has(root) is true,
// trying longer roots first.
func longestRoot(s string, has func(string) bool) (root, value string, ok bool) {
	for i := strings.LastIndexByte(s, '-'); i > 0; i = strings.LastIndexByte(s[:i], '-') {
		if i == len(s)-1 {
			continue
		}
		if has(s[:i]) {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// arbitraryStart returns the index of the '-' that precedes a bracketed or
// parenthesized value at the end of s, or -1.
func arbitraryStart(s string) int {
	if s == "" {
		return -1
	}
	last := s[len(s)-1]
	var open string
	switch last {
	case ']':
		open = "-["
	case ')':
		open = "-("
	default:
		return -1
	}
	i := strings.Index(s, open)
	if i <= 0 {
		return -1
	}
	return i
}

// parseArbitraryValue parses "[...]" or "(--var)". With hints, a leading
// data type like "color:" is split off into Value.DataType.
func parseArbitraryValue(s string, hints bool) *Value {
	switch {
	case isBracketed(s, '[', ']'):
		inner := s[1 : len(s)-1]
		if inner == "" || !arbitrary.IsValid(inner) {
			return nil
		}
		v := &Value{Kind: Arbitrary, Raw: s}
		if colon := arbitrary.IndexTopLevel(inner, ':'); hints && colon > 0 {
			if dt, ok := arbitrary.ParseDataType(inner[:colon]); ok {
				v.DataType = dt
				inner = inner[colon+1:]
				if inner == "" {
					return nil
				}
			}
		}
		v.Value = arbitrary.Decode(inner)
		return v

	case isBracketed(s, '(', ')'):
		inner := s[1 : len(s)-1]
		v := &Value{Kind: Arbitrary, Raw: s}
		if colon := arbitrary.IndexTopLevel(inner, ':'); hints && colon > 0 {
			dt, ok := arbitrary.ParseDataType(inner[:colon])
			if !ok {
				return nil
			}
			v.DataType = dt
			inner = inner[colon+1:]
		}
		if !isCustomProperty(inner) || !arbitrary.IsValid(inner) {
			return nil
		}
		v.Value = "var(" + arbitrary.Decode(inner) + ")"
		return v
	}
	return nil
}

func parseModifier(s string) *Modifier {
	if s == "" {
		return nil
	}
	if s[0] == '[' || s[0] == '(' {
		v := parseArbitraryValue(s, false)
		if v == nil {
			return nil
		}
		return &Modifier{Kind: Arbitrary, Raw: s, Value: v.Value}
	}
	if !isNamedValue(s) {
		return nil
	}
	return &Modifier{Kind: Named, Raw: s, Value: s}
}

func isBracketed(s string, open, close byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == close
}

// isNamedValue reports whether s can be a theme key or bare value:
// red-500, 1.5, 2xl, 50%.
func isNamedValue(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == '%':
		default:
			return false
		}
	}
	return true
}

func isPropertyName(s string) bool {
	if isCustomProperty(s) {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z') && c != '-' && !(i > 0 && c >= '0' && c <= '9') {
			return false
		}
	}
	return s != "" && s[0] != '-' || strings.HasPrefix(s, "-webkit-") || strings.HasPrefix(s, "-moz-")
}

func isCustomProperty(s string) bool {
	if len(s) < 3 || !strings.HasPrefix(s, "--") {
		return false
	}
	for i := 2; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '\\' || c >= 0x80) {
			return false
		}
	}
	return true
}

package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/utilgen/internal/arbitrary"
	"bennypowers.dev/utilgen/internal/candidate"
	"bennypowers.dev/utilgen/internal/color"
	"bennypowers.dev/utilgen/internal/theme"
)

// negate returns -value for utilities like -mt-4. Zero stays zero, and
// keywords such as auto cannot be negated.
func negate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return "", false
	case value == "0" || value == "0px":
		return value, true
	case strings.HasPrefix(value, "-"):
		return value[1:], true
	case startsNumeric(value):
		return "-" + value, true
	case isIdentifier(value):
		return "", false
	}
	return "calc(" + value + " * -1)", true
}

func startsNumeric(s string) bool {
	c := s[0]
	return (c >= '0' && c <= '9') || (c == '.' && len(s) > 1 && s[1] >= '0' && s[1] <= '9')
}

func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// applyOpacity applies an opacity modifier to a color value. Named
// modifiers are looked up in the opacity namespace first, so themes can
// define bg-brand/muted.
func applyOpacity(t *theme.Theme, value string, m *candidate.Modifier) (string, bool) {
	isVar := strings.HasPrefix(value, "var(")
	if !isVar && !color.IsColor(value) {
		return "", false
	}
	text := m.Value
	if m.Kind == candidate.Named {
		if v, ok := t.Lookup("opacity", m.Value); ok {
			if alpha, ok := color.ParseOpacity(v); ok {
				return color.WithAlpha(value, alpha), true
			}
			text = v
		}
	}
	if alpha, ok := color.ParseAlpha(text); ok {
		return color.WithAlpha(value, alpha), true
	}
	if m.Kind == candidate.Arbitrary {
		return fmt.Sprintf("color-mix(in oklab, %s %s, transparent)", value, text), true
	}
	return "", false
}

// substituteTheme replaces theme(namespace.key) calls in an arbitrary value
// with theme values. theme(colors.red.500 / 50%) also applies an alpha. An
// unknown key rejects the whole value.
func substituteTheme(t *theme.Theme, value string) (string, bool) {
	if !strings.Contains(value, "theme(") {
		return value, true
	}
	var b strings.Builder
	i := 0
	for {
		j := strings.Index(value[i:], "theme(")
		if j < 0 {
			b.WriteString(value[i:])
			out := b.String()
			return out, arbitrary.IsValid(out)
		}
		start := i + j
		if start > 0 && isNameByte(value[start-1]) {
			b.WriteString(value[i : start+len("theme(")])
			i = start + len("theme(")
			continue
		}
		open := start + len("theme(")
		end := matchingParen(value, open)
		if end < 0 {
			return "", false
		}
		resolved, ok := themeCall(t, value[open:end])
		if !ok {
			return "", false
		}
		b.WriteString(value[i:start])
		b.WriteString(resolved)
		i = end + 1
	}
}

func themeCall(t *theme.Theme, arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	path, alpha, hasAlpha := strings.Cut(arg, "/")
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	v, ok := t.Resolve(path)
	if !ok {
		return "", false
	}
	if !hasAlpha {
		return v, true
	}
	a, ok := color.ParseAlpha(alpha)
	if !ok || !color.IsColor(v) {
		return "", false
	}
	return color.WithAlpha(v, a), true
}

// matchingParen returns the index of the ')' closing the group that starts
// at open, or -1.
func matchingParen(s string, open int) int {
	depth := 1
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

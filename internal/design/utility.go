package design

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/utilgen/internal/arbitrary"
	"bennypowers.dev/utilgen/internal/cssast"
	"bennypowers.dev/utilgen/internal/theme"
)

// UtilityKind distinguishes fixed utilities from those that take a value.
type UtilityKind int

const (
	StaticUtility UtilityKind = iota
	FunctionalUtility
)

// ModifierKind says what a trailing /modifier means for a utility.
type ModifierKind int

const (
	// NoModifier utilities reject any modifier.
	NoModifier ModifierKind = iota
	// OpacityModifier applies an alpha to a color: bg-red-500/50.
	OpacityModifier
	// LineHeightModifier sets the line height of a font size: text-sm/6.
	LineHeightModifier
)

// Value is what a functional utility compiles into declarations.
type Value struct {
	// CSS is the resolved value text.
	CSS string
	// Key is the named key the value was looked up by, empty for arbitrary
	// values.
	Key string
	// Modifier is the resolved modifier text, for modifiers the utility
	// consumes itself.
	Modifier string
	Theme    *theme.Theme
}

// CompileFunc turns a resolved value into declarations.
type CompileFunc func(v Value) []*cssast.Declaration

// Utility describes one utility. Static utilities have fixed declarations;
// functional ones look a value up and compile it.
type Utility struct {
	Name  string
	Kind  UtilityKind
	Order int

	// Declarations of a static utility. They are templates: callers clone
	// them before use.
	Declarations []*cssast.Declaration

	// Values are named values that take precedence over the theme.
	Values map[string]string
	// Namespaces are searched in order for named values.
	Namespaces []string
	// Bare handles named values found nowhere else, like z-7 or w-13.
	Bare func(key string) (string, bool)
	// Fraction handles values like 1/2. Nil means fractions are rejected.
	Fraction func(fraction string) (string, bool)
	// Types lists the arbitrary value types the utility accepts, most
	// specific first. TypeAny accepts values no other type claims, such as
	// var(--x), but never matches an explicit type hint.
	Types []arbitrary.DataType
	// AllowDefault permits the bare root, resolved from the namespaces'
	// DEFAULT key or Default.
	AllowDefault bool
	Default      string
	Negative     bool
	Modifier     ModifierKind
	Compile      CompileFunc
}

// Named resolves a named value.
func (u *Utility) Named(t *theme.Theme, key string) (string, bool) {
	if v, ok := u.Values[key]; ok {
		return v, true
	}
	for _, ns := range u.Namespaces {
		if v, ok := t.Lookup(ns, key); ok {
			return v, true
		}
	}
	if u.Bare != nil {
		return u.Bare(key)
	}
	return "", false
}

// DefaultValue resolves the bare root.
func (u *Utility) DefaultValue(t *theme.Theme) (string, bool) {
	if !u.AllowDefault {
		return "", false
	}
	for _, ns := range u.Namespaces {
		if v, ok := t.Lookup(ns, theme.DefaultKey); ok {
			return v, true
		}
	}
	if v, ok := u.Values[theme.DefaultKey]; ok {
		return v, true
	}
	return u.Default, u.Default != ""
}

// AcceptsType reports whether an explicit type hint is allowed.
func (u *Utility) AcceptsType(t arbitrary.DataType) bool {
	if t == arbitrary.TypeAny {
		return false
	}
	for _, have := range u.Types {
		if have == t {
			return true
		}
	}
	return false
}

// props compiles a value into the same value for every property.
func props(properties ...string) CompileFunc {
	return func(v Value) []*cssast.Declaration {
		out := make([]*cssast.Declaration, len(properties))
		for i, p := range properties {
			out[i] = cssast.Decl(p, v.CSS)
		}
		return out
	}
}

// wrap compiles into property: format(value).
func wrap(property, format string) CompileFunc {
	return func(v Value) []*cssast.Declaration {
		return []*cssast.Declaration{cssast.Decl(property, fmt.Sprintf(format, v.CSS))}
	}
}

// decls builds declarations from property, value pairs.
func decls(pairs ...string) []*cssast.Declaration {
	if len(pairs)%2 != 0 {
		panic("design: decls needs property, value pairs")
	}
	out := make([]*cssast.Declaration, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, cssast.Decl(pairs[i], pairs[i+1]))
	}
	return out
}

// bareSpacing maps multiples of 0.25 onto the quarter-rem spacing scale.
func bareSpacing(key string) (string, bool) {
	n, err := strconv.ParseFloat(key, 64)
	if err != nil || !arbitrary.IsNumber(key) || n < 0 || n*4 != float64(int(n*4)) {
		return "", false
	}
	return formatNumber(n*0.25) + "rem", true
}

// bareInteger formats non-negative integers with format.
func bareInteger(format string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if !arbitrary.IsInteger(key) {
			return "", false
		}
		return strings.ReplaceAll(format, "{}", key), true
	}
}

// barePercent maps 0..100 onto 0..1.
func barePercent(key string) (string, bool) {
	if !arbitrary.IsInteger(key) {
		return "", false
	}
	n, err := strconv.Atoi(key)
	if err != nil || n > 100 {
		return "", false
	}
	return formatNumber(float64(n) / 100), true
}

func percentFraction(f string) (string, bool) {
	num, den, ok := splitFraction(f)
	if !ok {
		return "", false
	}
	return formatNumber(num/den*100) + "%", true
}

func ratioFraction(f string) (string, bool) {
	a, b, ok := strings.Cut(f, "/")
	if !ok || !arbitrary.IsFraction(f) {
		return "", false
	}
	return a + " / " + b, true
}

func splitFraction(f string) (float64, float64, bool) {
	if !arbitrary.IsFraction(f) {
		return 0, 0, false
	}
	a, b, _ := strings.Cut(f, "/")
	num, err1 := strconv.ParseFloat(a, 64)
	den, err2 := strconv.ParseFloat(b, 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, 0, false
	}
	return num, den, true
}

// formatNumber prints at most six decimals without trailing zeros.
func formatNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

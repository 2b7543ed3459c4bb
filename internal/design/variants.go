package design

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"bennypowers.dev/utilgen/internal/arbitrary"
	"bennypowers.dev/utilgen/internal/candidate"
	"bennypowers.dev/utilgen/internal/selector"
)

// Wrapper is what one variant contributes to a rule: a selector pattern, an
// at-rule, or both.
type Wrapper struct {
	// Selector is a pattern in which "&" stands for the selector built so
	// far, as in "&:hover" or ":where(.dark, .dark *) &".
	Selector string
	// AtRule and Params wrap the rule, as in @media (width >= 40rem).
	AtRule string
	Params string
	// Relative is the text of a bracketed variant written without "&",
	// as in [>img]. has-* uses it as a relative selector.
	Relative string
}

// IsAtRule reports whether w wraps the rule in an at-rule.
func (w Wrapper) IsAtRule() bool {
	return w.AtRule != ""
}

// Variant describes one named variant.
type Variant struct {
	Name  string
	Kind  candidate.VariantKind
	Order int

	// Wrapper of a static variant.
	Wrapper Wrapper
	// Resolve builds the wrapper of a functional variant from its value.
	Resolve func(d *Design, value *candidate.Value, modifier *candidate.Modifier) (Wrapper, bool)
	// Compound builds the wrapper of a compound variant from the wrapper of
	// the variant it wraps.
	Compound func(d *Design, inner Wrapper, modifier *candidate.Modifier) (Wrapper, bool)
}

var pseudoClasses = []struct{ name, selector string }{
	{"first", "&:first-child"},
	{"last", "&:last-child"},
	{"only", "&:only-child"},
	{"odd", "&:nth-child(odd)"},
	{"even", "&:nth-child(even)"},
	{"first-of-type", "&:first-of-type"},
	{"last-of-type", "&:last-of-type"},
	{"only-of-type", "&:only-of-type"},
	{"visited", "&:visited"},
	{"target", "&:target"},
	{"open", "&:is([open], :popover-open)"},
	{"default", "&:default"},
	{"checked", "&:checked"},
	{"indeterminate", "&:indeterminate"},
	{"placeholder-shown", "&:placeholder-shown"},
	{"autofill", "&:autofill"},
	{"optional", "&:optional"},
	{"required", "&:required"},
	{"valid", "&:valid"},
	{"invalid", "&:invalid"},
	{"in-range", "&:in-range"},
	{"out-of-range", "&:out-of-range"},
	{"read-only", "&:read-only"},
	{"empty", "&:empty"},
	{"focus-within", "&:focus-within"},
	{"hover", "&:hover"},
	{"focus", "&:focus"},
	{"focus-visible", "&:focus-visible"},
	{"active", "&:active"},
	{"enabled", "&:enabled"},
	{"disabled", "&:disabled"},
	{"inert", "&:is([inert], [inert] *)"},
}

var pseudoElementVariants = []struct{ name, selector string }{
	{"first-letter", "&::first-letter"},
	{"first-line", "&::first-line"},
	{"marker", "&::marker"},
	{"selection", "&::selection"},
	{"file", "&::file-selector-button"},
	{"placeholder", "&::placeholder"},
	{"backdrop", "&::backdrop"},
	{"before", "&::before"},
	{"after", "&::after"},
}

var mediaVariants = []struct{ name, params string }{
	{"motion-safe", "(prefers-reduced-motion: no-preference)"},
	{"motion-reduce", "(prefers-reduced-motion: reduce)"},
	{"contrast-more", "(prefers-contrast: more)"},
	{"contrast-less", "(prefers-contrast: less)"},
	{"forced-colors", "(forced-colors: active)"},
	{"portrait", "(orientation: portrait)"},
	{"landscape", "(orientation: landscape)"},
	{"print", "print"},
}

var ariaStates = []string{
	"busy", "checked", "disabled", "expanded", "hidden", "pressed",
	"readonly", "required", "selected",
}

// registerVariants installs the variant catalogue. Registration order is
// output order, so breakpoints come after pseudo-classes and wider
// breakpoints after narrower ones.
func registerVariants(d *Design) {
	static := func(name string, w Wrapper) {
		d.addVariant(&Variant{Name: name, Kind: candidate.StaticVariant, Wrapper: w})
	}

	static("*", Wrapper{Selector: ":is(& > *)"})
	for _, pe := range pseudoElementVariants {
		static(pe.name, Wrapper{Selector: pe.selector})
	}
	for _, pc := range pseudoClasses {
		static(pc.name, Wrapper{Selector: pc.selector})
	}

	d.addVariant(&Variant{Name: "not", Kind: candidate.CompoundVariant, Compound: notVariant})
	d.addVariant(&Variant{Name: "group", Kind: candidate.CompoundVariant, Compound: relational("group", "%s *")})
	d.addVariant(&Variant{Name: "peer", Kind: candidate.CompoundVariant, Compound: relational("peer", "%s ~ *")})
	d.addVariant(&Variant{Name: "has", Kind: candidate.CompoundVariant, Compound: hasVariant})

	d.addVariant(&Variant{Name: "aria", Kind: candidate.FunctionalVariant, Resolve: ariaVariant})
	d.addVariant(&Variant{Name: "data", Kind: candidate.FunctionalVariant, Resolve: dataVariant})
	for _, name := range []string{"nth", "nth-last", "nth-of-type", "nth-last-of-type"} {
		d.addVariant(&Variant{Name: name, Kind: candidate.FunctionalVariant, Resolve: nthVariant(name)})
	}
	d.addVariant(&Variant{Name: "supports", Kind: candidate.FunctionalVariant, Resolve: supportsVariant})

	for _, mv := range mediaVariants {
		static(mv.name, Wrapper{AtRule: "media", Params: mv.params})
	}

	d.addVariant(&Variant{Name: "max", Kind: candidate.FunctionalVariant, Resolve: breakpoint("<")})
	for _, s := range d.screens() {
		static(s.name, Wrapper{AtRule: "media", Params: "(width >= " + s.value + ")"})
	}
	d.addVariant(&Variant{Name: "min", Kind: candidate.FunctionalVariant, Resolve: breakpoint(">=")})

	if d.DarkMode == DarkClass {
		static("dark", Wrapper{Selector: "&:where(.dark, .dark *)"})
	} else {
		static("dark", Wrapper{AtRule: "media", Params: "(prefers-color-scheme: dark)"})
	}
	static("ltr", Wrapper{Selector: `&:where(:dir(ltr), [dir="ltr"], [dir="ltr"] *)`})
	static("rtl", Wrapper{Selector: `&:where(:dir(rtl), [dir="rtl"], [dir="rtl"] *)`})
}

type screen struct {
	name, value string
	size        float64
	unit        string
}

// screens returns the breakpoints of the theme, narrowest first. Screens
// whose values cannot be compared keep name order after the others.
func (d *Design) screens() []screen {
	var out []screen
	for _, name := range d.Theme.Keys("screens") {
		if name == "DEFAULT" || strings.ContainsAny(name, ":/") {
			continue
		}
		value, _ := d.Theme.Lookup("screens", name)
		s := screen{name: name, value: value, size: -1}
		if n, unit, ok := splitDimension(value); ok {
			s.size, s.unit = n, unit
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b screen) int {
		if (a.size < 0) != (b.size < 0) {
			if a.size < 0 {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.unit, b.unit); c != 0 {
			return c
		}
		return cmp.Compare(a.size, b.size)
	})
	return out
}

// splitDimension splits "40rem" into 40 and "rem".
func splitDimension(v string) (float64, string, bool) {
	i := 0
	for i < len(v) && (v[i] == '.' || (v[i] >= '0' && v[i] <= '9')) {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(v[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return n, v[i:], true
}

func breakpoint(op string) func(*Design, *candidate.Value, *candidate.Modifier) (Wrapper, bool) {
	return func(d *Design, v *candidate.Value, m *candidate.Modifier) (Wrapper, bool) {
		if v == nil || m != nil {
			return Wrapper{}, false
		}
		value := v.Value
		if v.Kind == candidate.Named {
			var ok bool
			if value, ok = d.Theme.Lookup("screens", v.Value); !ok {
				return Wrapper{}, false
			}
		} else if !arbitrary.IsLength(value) && !strings.HasPrefix(value, "var(") {
			return Wrapper{}, false
		}
		return Wrapper{AtRule: "media", Params: "(width " + op + " " + value + ")"}, true
	}
}

func ariaVariant(_ *Design, v *candidate.Value, m *candidate.Modifier) (Wrapper, bool) {
	if v == nil || m != nil {
		return Wrapper{}, false
	}
	if v.Kind == candidate.Named {
		if !slices.Contains(ariaStates, v.Value) {
			return Wrapper{}, false
		}
		return Wrapper{Selector: `&[aria-` + v.Value + `="true"]`}, true
	}
	return attributeWrapper("aria-" + v.Value)
}

func dataVariant(_ *Design, v *candidate.Value, m *candidate.Modifier) (Wrapper, bool) {
	if v == nil || m != nil {
		return Wrapper{}, false
	}
	if v.Kind == candidate.Named {
		return Wrapper{Selector: "&[data-" + v.Value + "]"}, true
	}
	return attributeWrapper("data-" + v.Value)
}

func attributeWrapper(text string) (Wrapper, bool) {
	attr, ok := selector.ParseAttribute(text)
	if !ok {
		return Wrapper{}, false
	}
	return Wrapper{Selector: "&" + attr.String()}, true
}

func nthVariant(name string) func(*Design, *candidate.Value, *candidate.Modifier) (Wrapper, bool) {
	pseudo := ":" + name
	if !strings.HasSuffix(name, "of-type") {
		pseudo += "-child"
	}
	return func(_ *Design, v *candidate.Value, m *candidate.Modifier) (Wrapper, bool) {
		if v == nil || m != nil {
			return Wrapper{}, false
		}
		if v.Kind == candidate.Named && !arbitrary.IsInteger(v.Value) {
			return Wrapper{}, false
		}
		return Wrapper{Selector: "&" + pseudo + "(" + v.Value + ")"}, true
	}
}

func supportsVariant(_ *Design, v *candidate.Value, m *candidate.Modifier) (Wrapper, bool) {
	if v == nil || m != nil {
		return Wrapper{}, false
	}
	value := strings.TrimSpace(v.Value)
	switch {
	case v.Kind == candidate.Named:
		return Wrapper{AtRule: "supports", Params: "(" + value + ": var(--tw))"}, true
	case strings.HasPrefix(value, "not ") || strings.HasPrefix(value, "selector(") || strings.HasPrefix(value, "("):
		return Wrapper{AtRule: "supports", Params: value}, true
	}
	if i := arbitrary.IndexTopLevel(value, ':'); i > 0 {
		prop, val := strings.TrimSpace(value[:i]), strings.TrimSpace(value[i+1:])
		return Wrapper{AtRule: "supports", Params: "(" + prop + ": " + val + ")"}, true
	}
	return Wrapper{AtRule: "supports", Params: "(" + value + ": var(--tw))"}, true
}

// notVariant negates a selector or a media/supports query.
func notVariant(_ *Design, inner Wrapper, m *candidate.Modifier) (Wrapper, bool) {
	if m != nil {
		return Wrapper{}, false
	}
	if inner.IsAtRule() {
		if inner.Selector != "" || (inner.AtRule != "media" && inner.AtRule != "supports") {
			return Wrapper{}, false
		}
		return Wrapper{AtRule: inner.AtRule, Params: "not " + inner.Params}, true
	}
	if strings.Contains(inner.Selector, "::") {
		return Wrapper{}, false
	}
	rest, ok := strings.CutPrefix(inner.Selector, "&")
	if !ok || strings.Contains(rest, "&") {
		rest = strings.ReplaceAll(inner.Selector, "&", "*")
	}
	return Wrapper{Selector: "&:not(" + rest + ")"}, true
}

// relational builds group-* and peer-* variants: the inner variant applies
// to a marker ancestor or sibling instead of the element itself.
func relational(marker, pattern string) func(*Design, Wrapper, *candidate.Modifier) (Wrapper, bool) {
	return func(d *Design, inner Wrapper, m *candidate.Modifier) (Wrapper, bool) {
		if inner.IsAtRule() || strings.Contains(inner.Selector, "::") {
			return Wrapper{}, false
		}
		class := d.Prefix + marker
		if m != nil {
			if m.Kind != candidate.Named {
				return Wrapper{}, false
			}
			class += "/" + m.Value
		}
		target := strings.ReplaceAll(inner.Selector, "&", ":where("+selector.Class(class)+")")
		return Wrapper{Selector: "&:is(" + strings.Replace(pattern, "%s", target, 1) + ")"}, true
	}
}

func hasVariant(_ *Design, inner Wrapper, m *candidate.Modifier) (Wrapper, bool) {
	if m != nil || inner.IsAtRule() || strings.Contains(inner.Selector, "::") {
		return Wrapper{}, false
	}
	if inner.Relative != "" {
		return Wrapper{Selector: "&:has(" + inner.Relative + ")"}, true
	}
	return Wrapper{Selector: "&:has(" + strings.ReplaceAll(inner.Selector, "&", "*") + ")"}, true
}

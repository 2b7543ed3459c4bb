package resolver

import (
	"strings"

	"bennypowers.dev/utilgen/internal/candidate"
	"bennypowers.dev/utilgen/internal/design"
)

// variant returns the wrapper of one parsed variant and its sort order.
func (r *Resolver) variant(v *candidate.Variant) (design.Wrapper, int, bool) {
	d := r.design
	if v.Kind == candidate.ArbitraryVariant {
		w, ok := arbitraryWrapper(v)
		return w, d.ArbitraryVariantOrder(), ok
	}

	desc, ok := d.Variant(v.Kind, v.Root)
	if !ok {
		return design.Wrapper{}, 0, false
	}

	switch v.Kind {
	case candidate.StaticVariant:
		return desc.Wrapper, desc.Order, true

	case candidate.FunctionalVariant:
		w, ok := desc.Resolve(d, v.Value, v.Modifier)
		return w, desc.Order, ok

	case candidate.CompoundVariant:
		if v.Inner == nil {
			return design.Wrapper{}, 0, false
		}
		inner, _, ok := r.variant(v.Inner)
		if !ok {
			return design.Wrapper{}, 0, false
		}
		w, ok := desc.Compound(d, inner, v.Modifier)
		return w, desc.Order, ok
	}
	return design.Wrapper{}, 0, false
}

// arbitraryWrapper interprets [&>*], [.dark_&] and [@media(print)].
// A selector without "&" applies to the element itself: [.open] is
// &:is(.open).
func arbitraryWrapper(v *candidate.Variant) (design.Wrapper, bool) {
	text := strings.TrimSpace(v.Selector)
	if text == "" {
		return design.Wrapper{}, false
	}
	if !v.AtRule {
		if !strings.Contains(text, "&") {
			return design.Wrapper{Selector: "&:is(" + text + ")", Relative: text}, true
		}
		return design.Wrapper{Selector: text}, true
	}

	rest := text[1:]
	end := strings.IndexAny(rest, " (")
	if end < 0 {
		end = len(rest)
	}
	name := rest[:end]
	if name == "" {
		return design.Wrapper{}, false
	}
	params := strings.TrimSpace(rest[end:])
	return design.Wrapper{AtRule: name, Params: params}, true
}

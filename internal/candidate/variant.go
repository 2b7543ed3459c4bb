package candidate

import (
	"strings"

	"bennypowers.dev/utilgen/internal/arbitrary"
)

// ParseVariant parses one variant segment, or returns nil when the registry
// does not know it.
func (p *Parser) ParseVariant(raw string) *Variant {
	if raw == "" {
		return nil
	}

	if isBracketed(raw, '[', ']') {
		inner := raw[1 : len(raw)-1]
		if strings.TrimSpace(inner) == "" || !arbitrary.IsValid(inner) {
			return nil
		}
		sel := strings.TrimSpace(arbitrary.Decode(inner))
		return &Variant{
			Kind:     ArbitraryVariant,
			Raw:      raw,
			Selector: sel,
			AtRule:   strings.HasPrefix(sel, "@"),
		}
	}

	if p.registry.HasStaticVariant(raw) {
		return &Variant{Kind: StaticVariant, Raw: raw, Root: raw}
	}

	name := raw
	var modifier *Modifier
	if mod := arbitrary.LastIndexTopLevel(raw, '/'); mod > 0 {
		modifier = parseModifier(raw[mod+1:])
		if modifier == nil {
			return nil
		}
		name = raw[:mod]
	}

	// Compound roots never contain a dash: group-hover, peer-checked/label, not-first
	if dash := strings.IndexByte(name, '-'); dash > 0 && p.registry.HasCompoundVariant(name[:dash]) {
		inner := p.ParseVariant(name[dash+1:])
		if inner == nil {
			return nil
		}
		return &Variant{
			Kind:     CompoundVariant,
			Raw:      raw,
			Root:     name[:dash],
			Inner:    inner,
			Modifier: modifier,
		}
	}

	if i := arbitraryStart(name); i >= 0 {
		root := name[:i]
		if !p.registry.HasFunctionalVariant(root) {
			return nil
		}
		v := parseArbitraryValue(name[i+1:], false)
		if v == nil {
			return nil
		}
		return &Variant{Kind: FunctionalVariant, Raw: raw, Root: root, Value: v, Modifier: modifier}
	}

	root, value, ok := longestRoot(name, p.registry.HasFunctionalVariant)
	if !ok || !isNamedValue(value) {
		return nil
	}
	return &Variant{
		Kind:     FunctionalVariant,
		Raw:      raw,
		Root:     root,
		Value:    &Value{Kind: Named, Raw: value, Value: value},
		Modifier: modifier,
	}
}

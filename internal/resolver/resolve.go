// Package resolver turns parsed candidates into CSS.
//
// Resolution is a pure function of the candidate and a design.Design: the
// same inputs always produce structurally equal nodes, which is what lets
// results be cached per theme generation. Candidates that cannot be
// resolved produce nil; that is the normal outcome for most scanned tokens
// and is never an error.
package resolver

import (
	"strings"

	"bennypowers.dev/utilgen/internal/arbitrary"
	"bennypowers.dev/utilgen/internal/candidate"
	"bennypowers.dev/utilgen/internal/cssast"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/optimize"
	"bennypowers.dev/utilgen/internal/selector"
)

// Rule is the CSS generated for one candidate.
type Rule struct {
	Candidate string
	// Nodes hold one style rule, wrapped in the at-rules of its variants.
	// They are shared by cache readers and must not be modified.
	Nodes []cssast.Node
	Key   optimize.Key
}

// Retarget returns a copy of the rule's nodes with the candidate's class
// replaced by target, a selector. Declarations are marked important when
// important is set.
func (r *Rule) Retarget(target string, important bool) []cssast.Node {
	class := selector.Class(r.Candidate)
	nodes := cssast.CloneAll(r.Nodes)
	cssast.Walk(nodes, func(n cssast.Node, _ int) bool {
		switch n := n.(type) {
		case *cssast.Rule:
			n.Selector = strings.ReplaceAll(n.Selector, class, target)
		case *cssast.Declaration:
			n.Important = n.Important || important
		}
		return true
	})
	return nodes
}

// Resolver resolves candidates against one design.
type Resolver struct {
	design *design.Design
}

// New returns a resolver for d.
func New(d *design.Design) *Resolver {
	if d == nil {
		panic("resolver: New called with nil design")
	}
	return &Resolver{design: d}
}

// Design returns the design the resolver reads.
func (r *Resolver) Design() *design.Design {
	return r.design
}

// Resolve parses and resolves raw. It returns nil when raw is not a
// utility.
func (r *Resolver) Resolve(raw string) *Rule {
	c := r.design.Parse(raw)
	if c == nil {
		return nil
	}
	return r.ResolveCandidate(c)
}

// ResolveCandidate resolves a parsed candidate, or returns nil. Passing a
// nil candidate is a programming error.
func (r *Resolver) ResolveCandidate(c *candidate.Candidate) *Rule {
	if c == nil {
		panic("resolver: ResolveCandidate called with nil candidate")
	}

	decls, order, ok := r.declarations(c)
	if !ok || len(decls) == 0 {
		return nil
	}
	if c.Important || r.design.Important {
		for _, d := range decls {
			d.Important = true
		}
	}

	sel, atRules, variantOrders, ok := r.applyVariants(c)
	if !ok {
		return nil
	}

	children := make([]cssast.Node, len(decls))
	for i, d := range decls {
		children[i] = d
	}
	var node cssast.Node = cssast.NewRule(sel, children...)
	for i := len(atRules) - 1; i >= 0; i-- {
		node = cssast.NewAtRule(atRules[i].AtRule, atRules[i].Params, node)
	}

	return &Rule{
		Candidate: c.Raw,
		Nodes:     []cssast.Node{node},
		Key:       optimize.NewKey(c.Raw, variantOrders, order, len(decls)),
	}
}

// declarations builds the utility's declarations and returns the sort order
// of the descriptor that produced them.
func (r *Resolver) declarations(c *candidate.Candidate) ([]*cssast.Declaration, int, bool) {
	d := r.design
	switch c.Kind {
	case candidate.Static:
		if c.Modifier != nil {
			return nil, 0, false
		}
		for _, u := range d.Utilities(c.Root) {
			if u.Kind == design.StaticUtility {
				return cloneDecls(u.Declarations), u.Order, true
			}
		}

	case candidate.ArbitraryProperty:
		value, ok := substituteTheme(d.Theme, c.Value.Value)
		if !ok {
			return nil, 0, false
		}
		if c.Modifier != nil {
			if value, ok = applyOpacity(d.Theme, value, c.Modifier); !ok {
				return nil, 0, false
			}
		}
		return []*cssast.Declaration{cssast.Decl(c.Property, value)}, d.UtilityCount(), true

	case candidate.Functional:
		utilities := d.Utilities(c.Root)
		// Arbitrary values without a type hint go to the first descriptor
		// whose types claim them, and only then to one accepting anything.
		for _, loose := range []bool{false, true} {
			for _, u := range utilities {
				if u.Kind != design.FunctionalUtility {
					continue
				}
				if decls, ok := r.functional(u, c, loose); ok {
					return decls, u.Order, true
				}
			}
			if c.Value == nil || c.Value.Kind != candidate.Arbitrary || c.Value.DataType != "" {
				break
			}
		}
	}
	return nil, 0, false
}

func (r *Resolver) functional(u *design.Utility, c *candidate.Candidate, loose bool) ([]*cssast.Declaration, bool) {
	if c.Negative && !u.Negative {
		return nil, false
	}
	t := r.design.Theme
	val := design.Value{Theme: t}
	modifier := c.Modifier

	switch {
	case c.Value == nil:
		css, ok := u.DefaultValue(t)
		if !ok {
			return nil, false
		}
		val.CSS = css

	case c.Value.Kind == candidate.Arbitrary:
		css, ok := substituteTheme(t, c.Value.Value)
		if !ok {
			return nil, false
		}
		if c.Value.DataType != "" {
			if !u.AcceptsType(c.Value.DataType) {
				return nil, false
			}
		} else {
			dt, ok := arbitrary.InferDataType(css, u.Types)
			if !ok || (dt == arbitrary.TypeAny && !loose) {
				return nil, false
			}
		}
		val.CSS = css

	case c.Value.Fraction != "" && u.Fraction != nil:
		css, ok := u.Fraction(c.Value.Fraction)
		if !ok {
			return nil, false
		}
		val.CSS = css
		modifier = nil

	default:
		css, ok := u.Named(t, c.Value.Value)
		if !ok {
			return nil, false
		}
		val.CSS = css
		val.Key = c.Value.Value
	}

	if c.Negative {
		neg, ok := negate(val.CSS)
		if !ok {
			return nil, false
		}
		val.CSS = neg
	}

	if modifier != nil {
		switch u.Modifier {
		case design.OpacityModifier:
			css, ok := applyOpacity(t, val.CSS, modifier)
			if !ok {
				return nil, false
			}
			val.CSS = css
		case design.LineHeightModifier:
			lh, ok := r.lineHeight(modifier)
			if !ok {
				return nil, false
			}
			val.Modifier = lh
		default:
			return nil, false
		}
	}

	decls := cloneDecls(u.Compile(val))
	return decls, len(decls) > 0
}

// lineHeight resolves the modifier of text-sm/6 style utilities with the
// same values as the leading utility.
func (r *Resolver) lineHeight(m *candidate.Modifier) (string, bool) {
	if m.Kind == candidate.Arbitrary {
		return m.Value, true
	}
	t := r.design.Theme
	if v, ok := t.Lookup("lineHeight", m.Value); ok {
		return v, true
	}
	for _, u := range r.design.Utilities("leading") {
		if u.Kind == design.FunctionalUtility {
			return u.Named(t, m.Value)
		}
	}
	return "", false
}

// applyVariants builds the rule's selector and the at-rules that wrap it,
// outermost first.
func (r *Resolver) applyVariants(c *candidate.Candidate) (string, []design.Wrapper, []int, bool) {
	sel := selector.Class(c.Raw)
	var atRules []design.Wrapper
	orders := make([]int, 0, len(c.Variants))
	for _, v := range c.Variants {
		w, order, ok := r.variant(v)
		if !ok {
			return "", nil, nil, false
		}
		if w.Selector != "" {
			sel = strings.ReplaceAll(w.Selector, "&", sel)
		}
		if w.IsAtRule() {
			atRules = append(atRules, w)
		}
		orders = append(orders, order)
	}
	return selector.MovePseudoElements(sel), atRules, orders, true
}

func cloneDecls(decls []*cssast.Declaration) []*cssast.Declaration {
	out := make([]*cssast.Declaration, len(decls))
	for i, d := range decls {
		cp := *d
		out[i] = &cp
	}
	return out
}

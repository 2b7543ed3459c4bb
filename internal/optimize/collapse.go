package optimize

import (
	"slices"
	"strings"

	"bennypowers.dev/utilgen/internal/cssast"
)

// Optimize merges adjacent rules and then drops redundant declarations.
// The tree is modified in place. Optimize(Optimize(n)) equals Optimize(n).
func Optimize(nodes []cssast.Node) []cssast.Node {
	nodes = CollapseAdjacentRules(nodes)
	CollapseDuplicateDeclarations(nodes)
	return nodes
}

// CollapseAdjacentRules merges runs of sibling rules with the same selector,
// and sibling at-rules with the same name and params, into the first of the
// run. @font-face rules and statement at-rules are never merged. Siblings are
// not reordered, and merged children are collapsed in turn.
func CollapseAdjacentRules(nodes []cssast.Node) []cssast.Node {
	out := make([]cssast.Node, 0, len(nodes))
	for _, n := range nodes {
		if len(out) > 0 && merge(out[len(out)-1], n) {
			continue
		}
		out = append(out, n)
	}
	for _, n := range out {
		switch n := n.(type) {
		case *cssast.Rule:
			n.Nodes = CollapseAdjacentRules(n.Nodes)
		case *cssast.AtRule:
			if n.Nodes != nil {
				n.Nodes = CollapseAdjacentRules(n.Nodes)
			}
		}
	}
	return out
}

// merge appends next's children to prev when the two can be merged.
func merge(prev, next cssast.Node) bool {
	switch p := prev.(type) {
	case *cssast.Rule:
		n, ok := next.(*cssast.Rule)
		if !ok || p.Selector != n.Selector {
			return false
		}
		p.Nodes = slices.Concat(p.Nodes, n.Nodes)
		return true
	case *cssast.AtRule:
		n, ok := next.(*cssast.AtRule)
		if !ok || p.Nodes == nil || n.Nodes == nil {
			return false
		}
		if strings.EqualFold(p.Name, "font-face") || p.Name != n.Name {
			return false
		}
		if normalizeSpace(p.Params) != normalizeSpace(n.Params) {
			return false
		}
		p.Nodes = slices.Concat(p.Nodes, n.Nodes)
		return true
	}
	return false
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CollapseDuplicateDeclarations removes redundant declarations from every
// rule in the tree. Within one rule, a declaration repeated with the same
// value keeps only its last copy, and declarations of a property whose
// values share a numeric unit keep only the last of that unit. Values with
// different units, or no numeric value at all, are kept as fallbacks.
func CollapseDuplicateDeclarations(nodes []cssast.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *cssast.Rule:
			n.Nodes = collapseDeclarations(n.Nodes)
			CollapseDuplicateDeclarations(n.Nodes)
		case *cssast.AtRule:
			n.Nodes = collapseDeclarations(n.Nodes)
			CollapseDuplicateDeclarations(n.Nodes)
		}
	}
}

func collapseDeclarations(nodes []cssast.Node) []cssast.Node {
	var (
		drop   map[int]bool
		seen   = make(map[string]int)
		groups = make(map[string][]int)
	)
	for i, n := range nodes {
		d, ok := n.(*cssast.Declaration)
		if !ok {
			continue
		}
		id := d.Property + "\x00" + d.Value
		if d.Important {
			id += "\x00!"
		}
		if j, ok := seen[id]; ok {
			if drop == nil {
				drop = make(map[int]bool)
			}
			drop[j] = true
		}
		seen[id] = i

		if unit, ok := numericUnit(d.Value); ok {
			key := d.Property + "\x00" + unit
			if d.Important {
				key += "\x00!"
			}
			groups[key] = append(groups[key], i)
		}
	}
	for _, idx := range groups {
		if len(idx) < 2 {
			continue
		}
		if drop == nil {
			drop = make(map[int]bool)
		}
		for _, j := range idx[:len(idx)-1] {
			drop[j] = true
		}
	}
	if len(drop) == 0 {
		return nodes
	}
	out := make([]cssast.Node, 0, len(nodes)-len(drop))
	for i, n := range nodes {
		if !drop[i] {
			out = append(out, n)
		}
	}
	return out
}

// numericUnit returns the unit of a single number, "" for unitless ones.
// Anything other than one number with an optional unit is not numeric.
func numericUnit(v string) (string, bool) {
	i := 0
	if i < len(v) && (v[i] == '-' || v[i] == '+') {
		i++
	}
	digits, dot := 0, false
	for ; i < len(v); i++ {
		c := v[i]
		if c >= '0' && c <= '9' {
			digits++
			continue
		}
		if c == '.' && !dot {
			dot = true
			continue
		}
		break
	}
	if digits == 0 || v[i-1] == '.' {
		return "", false
	}
	unit := v[i:]
	for j := 0; j < len(unit); j++ {
		c := unit[j]
		if !(c == '%' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return "", false
		}
	}
	return unit, true
}

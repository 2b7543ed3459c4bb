// Package optimize puts resolved rules into their canonical order and
// removes redundancy from the resulting tree.
package optimize

import (
	"cmp"
	"slices"
	"strings"

	"bennypowers.dev/utilgen/internal/cssast"
)

// Key is the sort position of one resolved candidate.
type Key struct {
	// Variants are the registration orders of the candidate's variants,
	// highest first.
	Variants []int
	// Utility is the registration order of the utility.
	Utility int
	// Properties is the number of declarations the utility emits.
	Properties int
	Candidate  string
}

// NewKey builds a key. variants may be in any order.
func NewKey(candidate string, variants []int, utility, properties int) Key {
	vs := slices.Clone(variants)
	slices.Sort(vs)
	slices.Reverse(vs)
	return Key{Variants: vs, Utility: utility, Properties: properties, Candidate: candidate}
}

// Compare orders keys. Variants are compared like bit sets: rules without
// variants come first, and the highest variant decides. Ties fall back to
// utility order, then fewer properties, then the candidate text.
func (k Key) Compare(o Key) int {
	if c := compareVariants(k.Variants, o.Variants); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Utility, o.Utility); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Properties, o.Properties); c != 0 {
		return c
	}
	return strings.Compare(k.Candidate, o.Candidate)
}

func compareVariants(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Item is one candidate's nodes with their sort key.
type Item struct {
	Key   Key
	Nodes []cssast.Node
}

// Sort orders items by key and concatenates their nodes. The nodes are
// cloned, so items taken from a cache can be optimized in place afterwards.
func Sort(items []Item) []cssast.Node {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return a.Key.Compare(b.Key)
	})
	var out []cssast.Node
	for _, it := range sorted {
		out = append(out, cssast.CloneAll(it.Nodes)...)
	}
	return out
}

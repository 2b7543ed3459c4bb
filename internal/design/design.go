// Package design is the build-time registry of utilities and variants.
//
// A Design pairs a theme snapshot with the closed set of utility and variant
// descriptors that can be resolved against it. It is assembled once by New
// and never changes; configuration reloads build a new Design and publish it
// through a Store.
package design

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/utilgen/internal/candidate"
	"bennypowers.dev/utilgen/internal/theme"
)

// DarkMode selects how the dark variant is expressed.
type DarkMode string

const (
	// DarkMedia uses @media (prefers-color-scheme: dark).
	DarkMedia DarkMode = "media"
	// DarkClass matches elements inside a .dark ancestor.
	DarkClass DarkMode = "class"
)

// ParseDarkMode accepts "media", "class" or "" (media).
func ParseDarkMode(s string) (DarkMode, error) {
	switch DarkMode(strings.ToLower(s)) {
	case "", DarkMedia:
		return DarkMedia, nil
	case DarkClass:
		return DarkClass, nil
	}
	return "", fmt.Errorf("unknown dark mode %q (expected media or class)", s)
}

// Options configure a Design.
type Options struct {
	Prefix    string
	DarkMode  DarkMode
	Important bool
}

// Design is an immutable registry of utilities and variants over a theme.
type Design struct {
	Theme     *theme.Theme
	Prefix    string
	DarkMode  DarkMode
	Important bool

	utilities    map[string][]*Utility
	utilityCount int

	staticVariants     map[string]*Variant
	functionalVariants map[string]*Variant
	compoundVariants   map[string]*Variant
	variantCount       int

	parser *candidate.Parser
}

// New builds the registry for t. A nil theme means the built-in theme.
func New(t *theme.Theme, opts Options) *Design {
	if t == nil {
		t = theme.Default()
	}
	if opts.DarkMode == "" {
		opts.DarkMode = DarkMedia
	}
	d := &Design{
		Theme:              t,
		Prefix:             opts.Prefix,
		DarkMode:           opts.DarkMode,
		Important:          opts.Important,
		utilities:          make(map[string][]*Utility),
		staticVariants:     make(map[string]*Variant),
		functionalVariants: make(map[string]*Variant),
		compoundVariants:   make(map[string]*Variant),
	}
	registerUtilities(d)
	registerVariants(d)
	d.parser = candidate.NewParser(d, d.Prefix)
	return d
}

// Parser returns the candidate parser bound to this registry.
func (d *Design) Parser() *candidate.Parser {
	return d.parser
}

// Parse is shorthand for d.Parser().Parse.
func (d *Design) Parse(raw string) *candidate.Candidate {
	return d.parser.Parse(raw)
}

func (d *Design) addUtility(u *Utility) {
	for _, existing := range d.utilities[u.Name] {
		if existing.Kind == u.Kind && existing.Kind == StaticUtility {
			panic(fmt.Sprintf("design: static utility %q registered twice", u.Name))
		}
	}
	u.Order = d.utilityCount
	d.utilityCount++
	d.utilities[u.Name] = append(d.utilities[u.Name], u)
}

func (d *Design) addVariant(v *Variant) {
	var table map[string]*Variant
	switch v.Kind {
	case candidate.StaticVariant:
		table = d.staticVariants
	case candidate.FunctionalVariant:
		table = d.functionalVariants
	case candidate.CompoundVariant:
		table = d.compoundVariants
	default:
		panic(fmt.Sprintf("design: variant %q has kind %d which cannot be registered", v.Name, v.Kind))
	}
	if _, dup := table[v.Name]; dup {
		panic(fmt.Sprintf("design: variant %q registered twice", v.Name))
	}
	v.Order = d.variantCount
	d.variantCount++
	table[v.Name] = v
}

// Utilities returns the descriptors registered under name, in registration
// order. A root can carry several functional descriptors, like text (size
// and color).
func (d *Design) Utilities(name string) []*Utility {
	return d.utilities[name]
}

// UtilityCount is the number of registered descriptors. Arbitrary
// properties sort after all of them.
func (d *Design) UtilityCount() int {
	return d.utilityCount
}

// Variant returns the descriptor for a parsed variant's root.
func (d *Design) Variant(kind candidate.VariantKind, name string) (*Variant, bool) {
	var v *Variant
	switch kind {
	case candidate.StaticVariant:
		v = d.staticVariants[name]
	case candidate.FunctionalVariant:
		v = d.functionalVariants[name]
	case candidate.CompoundVariant:
		v = d.compoundVariants[name]
	}
	return v, v != nil
}

// ArbitraryVariantOrder is the sort position of bracketed variants, after
// every named variant.
func (d *Design) ArbitraryVariantOrder() int {
	return d.variantCount
}

// HasStaticUtility implements candidate.Registry.
func (d *Design) HasStaticUtility(name string) bool {
	return d.hasUtility(name, StaticUtility)
}

// HasFunctionalUtility implements candidate.Registry.
func (d *Design) HasFunctionalUtility(root string) bool {
	return d.hasUtility(root, FunctionalUtility)
}

func (d *Design) hasUtility(name string, kind UtilityKind) bool {
	for _, u := range d.utilities[name] {
		if u.Kind == kind {
			return true
		}
	}
	return false
}

// HasStaticVariant implements candidate.Registry.
func (d *Design) HasStaticVariant(name string) bool {
	_, ok := d.staticVariants[name]
	return ok
}

// HasFunctionalVariant implements candidate.Registry.
func (d *Design) HasFunctionalVariant(root string) bool {
	_, ok := d.functionalVariants[root]
	return ok
}

// HasCompoundVariant implements candidate.Registry.
func (d *Design) HasCompoundVariant(root string) bool {
	_, ok := d.compoundVariants[root]
	return ok
}

// UtilityNames returns every static utility name and functional root,
// sorted.
func (d *Design) UtilityNames() []string {
	return slices.Sorted(maps.Keys(d.utilities))
}

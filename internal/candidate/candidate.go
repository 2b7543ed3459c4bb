// Package candidate parses class-name candidates into a structured form.
//
// A candidate like "md:hover:-mt-4!" is split into its variants ("md",
// "hover"), utility root ("mt"), value ("4") and flags. Parsing needs to know
// which utility and variant names exist, but nothing about the values they
// map to; that is the resolver's job.
package candidate

import (
	"bennypowers.dev/utilgen/internal/arbitrary"
)

// Kind distinguishes the three utility shapes.
type Kind int

const (
	// Static utilities have a fixed name and no value: flex, sr-only.
	Static Kind = iota
	// Functional utilities have a root and a value: bg-red-500, w-[3px].
	Functional
	// ArbitraryProperty utilities set any property: [mask-type:alpha].
	ArbitraryProperty
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Functional:
		return "functional"
	case ArbitraryProperty:
		return "arbitrary"
	}
	return "unknown"
}

// ValueKind tells whether a value was written by name or in brackets.
type ValueKind int

const (
	Named ValueKind = iota
	Arbitrary
)

// Value is the value part of a functional utility or variant.
type Value struct {
	Kind ValueKind
	// Raw is the text as written, including brackets.
	Raw string
	// Value is the decoded value: the theme key for named values, CSS text
	// for arbitrary ones.
	Value string
	// DataType is the explicit type hint of an arbitrary value, as in
	// bg-[color:var(--x)], or empty.
	DataType arbitrary.DataType
	// Fraction is set for named values followed by a numeric modifier, like
	// the "1/2" in w-1/2.
	Fraction string
}

// Modifier is the trailing /value of a utility or compound variant.
type Modifier struct {
	Kind  ValueKind
	Raw   string
	Value string
}

// Candidate is a parsed candidate. Candidates are never mutated after
// Parse returns them.
type Candidate struct {
	Raw       string
	Kind      Kind
	Root      string
	Value     *Value
	Modifier  *Modifier
	Variants  []*Variant
	Important bool
	Negative  bool

	// Property and Value.Value hold the declaration of an ArbitraryProperty
	// candidate.
	Property string
}

// VariantKind distinguishes variant shapes.
type VariantKind int

const (
	// StaticVariant is a plain name: hover, dark, sm.
	StaticVariant VariantKind = iota
	// FunctionalVariant is a root with a value: data-open, min-[600px].
	FunctionalVariant
	// CompoundVariant wraps another variant: group-hover, not-first.
	CompoundVariant
	// ArbitraryVariant is a bracketed selector or at-rule: [&>*], [@media(print)].
	ArbitraryVariant
)

// Variant is one colon-separated prefix of a candidate.
type Variant struct {
	Kind VariantKind
	// Raw is the segment as written, used as a stable key.
	Raw      string
	Root     string
	Value    *Value
	Modifier *Modifier
	// Inner is the wrapped variant of a CompoundVariant.
	Inner *Variant
	// Selector is the decoded text of an ArbitraryVariant.
	Selector string
	// AtRule is set for arbitrary variants whose text starts with "@".
	AtRule bool
}

// Registry answers which utility and variant names exist.
type Registry interface {
	HasStaticUtility(name string) bool
	HasFunctionalUtility(root string) bool
	HasStaticVariant(name string) bool
	HasFunctionalVariant(root string) bool
	HasCompoundVariant(root string) bool
}

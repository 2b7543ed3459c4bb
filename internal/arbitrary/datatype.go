package arbitrary

import (
	"strconv"
	"strings"

	"bennypowers.dev/utilgen/internal/color"
)

// DataType is a CSS value type used to disambiguate arbitrary values, such
// as whether text-[…] sets a font size or a color.
type DataType string

const (
	TypeAny          DataType = "any"
	TypeColor        DataType = "color"
	TypeLength       DataType = "length"
	TypePercentage   DataType = "percentage"
	TypeNumber       DataType = "number"
	TypeInteger      DataType = "integer"
	TypeRatio        DataType = "ratio"
	TypeURL          DataType = "url"
	TypeImage        DataType = "image"
	TypeAngle        DataType = "angle"
	TypeLineWidth    DataType = "line-width"
	TypePosition     DataType = "position"
	TypeBgSize       DataType = "bg-size"
	TypeFamilyName   DataType = "family-name"
	TypeGenericName  DataType = "generic-name"
	TypeAbsoluteSize DataType = "absolute-size"
	TypeRelativeSize DataType = "relative-size"
	TypeShadow       DataType = "shadow"
	TypeTime         DataType = "time"
)

var knownTypes = map[DataType]bool{
	TypeAny: true, TypeColor: true, TypeLength: true, TypePercentage: true,
	TypeNumber: true, TypeInteger: true, TypeRatio: true, TypeURL: true,
	TypeImage: true, TypeAngle: true, TypeLineWidth: true, TypePosition: true,
	TypeBgSize: true, TypeFamilyName: true, TypeGenericName: true,
	TypeAbsoluteSize: true, TypeRelativeSize: true, TypeShadow: true, TypeTime: true,
}

// ParseDataType returns the DataType named by s, as written in a type hint
// like bg-[color:var(--brand)].
func ParseDataType(s string) (DataType, bool) {
	t := DataType(s)
	return t, knownTypes[t]
}

var lengthUnits = []string{
	"cqmin", "cqmax", "vmin", "vmax", "svw", "svh", "lvw", "lvh", "dvw", "dvh",
	"cqw", "cqh", "cqi", "cqb", "rem", "rlh", "rex", "rch", "ric", "rcap",
	"px", "em", "ex", "ch", "lh", "vw", "vh", "vi", "vb", "cm", "mm", "in",
	"pt", "pc", "q", "cap", "ic",
}

var angleUnits = []string{"deg", "rad", "grad", "turn"}

var timeUnits = []string{"ms", "s"}

var imageFunctions = map[string]bool{
	"url":                       true,
	"image":                     true,
	"image-set":                 true,
	"cross-fade":                true,
	"element":                   true,
	"linear-gradient":           true,
	"radial-gradient":           true,
	"conic-gradient":            true,
	"repeating-linear-gradient": true,
	"repeating-radial-gradient": true,
	"repeating-conic-gradient":  true,
}

var namedSizes = map[DataType][]string{
	TypeAbsoluteSize: {"xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large", "xxx-large"},
	TypeRelativeSize: {"larger", "smaller"},
	TypeLineWidth:    {"thin", "medium", "thick"},
	TypeGenericName: {"serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui",
		"ui-serif", "ui-sans-serif", "ui-monospace", "ui-rounded", "math", "emoji", "fangsong"},
}

var positionKeywords = map[string]bool{
	"center": true, "top": true, "right": true, "bottom": true, "left": true,
}

// InferDataType returns the first type in candidates that value satisfies.
// Values that start with var() are ambiguous and never match anything but
// TypeAny, so callers fall back to the utility's default.
func InferDataType(value string, candidates []DataType) (DataType, bool) {
	if strings.HasPrefix(value, "var(") {
		for _, t := range candidates {
			if t == TypeAny {
				return t, true
			}
		}
		return "", false
	}
	for _, t := range candidates {
		if Is(value, t) {
			return t, true
		}
	}
	return "", false
}

// Is reports whether value satisfies the data type t.
func Is(value string, t DataType) bool {
	switch t {
	case TypeAny:
		return true
	case TypeColor:
		return color.IsColor(value)
	case TypeLength:
		return IsLength(value)
	case TypePercentage:
		return IsPercentage(value)
	case TypeNumber:
		return IsNumber(value) || isMathFunction(value)
	case TypeInteger:
		return IsInteger(value)
	case TypeRatio:
		return IsRatio(value)
	case TypeURL:
		return strings.HasPrefix(value, "url(")
	case TypeImage:
		return isImage(value)
	case TypeAngle:
		return hasUnit(value, angleUnits) || isMathFunction(value)
	case TypeTime:
		return hasUnit(value, timeUnits)
	case TypeLineWidth:
		return isNamed(value, TypeLineWidth) || IsLength(value)
	case TypeAbsoluteSize, TypeRelativeSize, TypeGenericName:
		return isNamed(value, t)
	case TypeFamilyName:
		return isFamilyName(value)
	case TypePosition:
		return isPosition(value)
	case TypeBgSize:
		return isBgSize(value)
	case TypeShadow:
		return isShadow(value)
	}
	return false
}

// IsNumber reports whether s is a plain CSS number such as 1, -2.5 or .5
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil && !strings.ContainsAny(s, "xXpPnN_")
}

// IsInteger reports whether s is a non-negative integer without sign or fraction
func IsInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsPercentage reports whether s is a number followed by %
func IsPercentage(s string) bool {
	return strings.HasSuffix(s, "%") && IsNumber(s[:len(s)-1])
}

// IsRatio reports whether s is "a/b" with positive numbers on both sides
func IsRatio(s string) bool {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return false
	}
	num, den = strings.TrimSpace(num), strings.TrimSpace(den)
	return IsNumber(num) && IsNumber(den) && den != "0"
}

// IsFraction reports whether s is "a/b" with integer operands, as used by
// utilities like w-1/2.
func IsFraction(s string) bool {
	num, den, ok := strings.Cut(s, "/")
	return ok && IsInteger(num) && IsInteger(den) && strings.Trim(den, "0") != ""
}

// IsLength reports whether s is a length: 0, a number with a length unit, a
// percentage or a math function.
func IsLength(s string) bool {
	if s == "0" || IsPercentage(s) || isMathFunction(s) {
		return true
	}
	return hasUnit(s, lengthUnits)
}

func hasUnit(s string, units []string) bool {
	lower := strings.ToLower(s)
	for _, u := range units {
		if strings.HasSuffix(lower, u) && IsNumber(s[:len(s)-len(u)]) {
			return true
		}
	}
	return false
}

func isMathFunction(s string) bool {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return false
	}
	return mathFunctions[strings.ToLower(s[:open])]
}

func isNamed(s string, t DataType) bool {
	for _, n := range namedSizes[t] {
		if s == n {
			return true
		}
	}
	return false
}

func isImage(value string) bool {
	nodes := ParseValue(value)
	found := false
	for _, n := range TopLevelWords(nodes) {
		if n.Kind != FunctionNode || !imageFunctions[strings.ToLower(n.Value)] {
			return false
		}
		found = true
	}
	return found
}

func isFamilyName(value string) bool {
	if value == "" || IsNumber(value[:1]) {
		return false
	}
	for _, part := range Segment(value, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			return false
		}
		if part[0] == '"' || part[0] == '\'' {
			continue
		}
		for i := 0; i < len(part); i++ {
			c := part[i]
			if !(isLetter(c) || isDigit(c) || c == '-' || c == ' ' || c == '_') {
				return false
			}
		}
	}
	return true
}

func isPosition(value string) bool {
	words := strings.Fields(value)
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !positionKeywords[w] && !IsLength(w) {
			return false
		}
	}
	return true
}

func isBgSize(value string) bool {
	for _, layer := range Segment(value, ',') {
		words := strings.Fields(layer)
		if len(words) == 0 || len(words) > 2 {
			return false
		}
		for _, w := range words {
			if w != "auto" && w != "cover" && w != "contain" && !IsLength(w) {
				return false
			}
		}
	}
	return true
}

// isShadow accepts comma-separated layers that each have at least two
// lengths, optionally inset and a color.
func isShadow(value string) bool {
	if value == "none" {
		return true
	}
	for _, layer := range Segment(value, ',') {
		lengths := 0
		for _, n := range TopLevelWords(ParseValue(strings.TrimSpace(layer))) {
			text := ValueToCSS([]*ValueNode{n})
			switch {
			case text == "inset":
			case IsLength(text):
				lengths++
			case color.IsColor(text) || strings.HasPrefix(text, "var("):
			default:
				return false
			}
		}
		if lengths < 2 {
			return false
		}
	}
	return true
}

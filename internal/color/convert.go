// Package color recognizes CSS colors and applies opacity modifiers to them.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// colorFunctions are accepted as colors even when csscolorparser cannot
// evaluate them (relative colors, wide-gamut spaces, color-mix).
var colorFunctions = []string{
	"rgb(", "rgba(", "hsl(", "hsla(", "hwb(", "lab(", "lch(", "oklab(", "oklch(",
	"color(", "color-mix(", "light-dark(",
}

var keywords = map[string]bool{
	"currentcolor": true,
	"transparent":  true,
}

// IsColor reports whether value is a CSS color: a keyword, a named color,
// a hex color or a color function.
func IsColor(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	if keywords[lower] {
		return true
	}
	for _, fn := range colorFunctions {
		if strings.HasPrefix(lower, fn) && strings.HasSuffix(lower, ")") {
			return true
		}
	}
	if strings.ContainsAny(value, " ,") {
		return false
	}
	_, err := csscolorparser.Parse(value)
	return err == nil
}

// ParseAlpha converts an opacity modifier into a 0..1 alpha. Integers read
// as percentages ("50", "1"); decimals are fractions of one ("0.5") and
// percentages carry a unit ("50%").
func ParseAlpha(modifier string) (float64, bool) {
	modifier = strings.TrimSpace(modifier)
	if modifier == "" {
		return 0, false
	}
	if !strings.ContainsAny(modifier, ".%") {
		modifier += "%"
	}
	return ParseOpacity(modifier)
}

// ParseOpacity converts a CSS <alpha-value>, a number in 0..1 or a
// percentage, into a 0..1 alpha.
func ParseOpacity(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	percent := strings.HasSuffix(value, "%")
	n, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	if percent {
		n /= 100
	}
	if n > 1 {
		return 0, false
	}
	return n, true
}

// WithAlpha returns value with its opacity multiplied by alpha.
//
// Colors csscolorparser can evaluate are emitted as rgb() with the alpha in
// the slash position. Anything else (currentColor, var(), oklch()) is mixed
// with transparent so the browser does the math.
func WithAlpha(value string, alpha float64) string {
	value = strings.TrimSpace(value)
	if alpha >= 0.999 {
		return value
	}

	if !needsColorMix(value) {
		if parsed, err := csscolorparser.Parse(value); err == nil {
			return srgbToCSS(parsed, parsed.A*alpha)
		}
	}

	return fmt.Sprintf("color-mix(in oklab, %s %s, transparent)", value, formatPercent(alpha))
}

// needsColorMix reports values that should never be flattened to sRGB.
func needsColorMix(value string) bool {
	lower := strings.ToLower(value)
	if keywords[lower] && lower != "transparent" {
		return true
	}
	for _, prefix := range []string{"var(", "oklch(", "oklab(", "lab(", "lch(", "color(", "color-mix(", "light-dark("} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// srgbToCSS formats a parsed color with the given alpha.
func srgbToCSS(c csscolorparser.Color, alpha float64) string {
	r, g, b := channels(c)
	if alpha >= 0.999 {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("rgb(%d %d %d / %s)", r, g, b, formatAlpha(alpha))
}

func channels(c csscolorparser.Color) (int, int, int) {
	clamp := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return clamp(c.R), clamp(c.G), clamp(c.B)
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(math.Round(a*1000)/1000, 'f', -1, 64)
}

func formatPercent(a float64) string {
	return strconv.FormatFloat(math.Round(a*1000)/10, 'f', -1, 64) + "%"
}

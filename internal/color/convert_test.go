package color_test

import (
	"testing"

	"bennypowers.dev/utilgen/internal/color"
	"github.com/stretchr/testify/assert"
)

func TestIsColor(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"#ef4444", true},
		{"#fff", true},
		{"red", true},
		{"rebeccapurple", true},
		{"transparent", true},
		{"currentColor", true},
		{"rgb(255 0 0 / 0.5)", true},
		{"oklch(63.7% 0.237 25.331)", true},
		{"color-mix(in oklab, red 50%, blue)", true},
		{"10px", false},
		{"1rem", false},
		{"var(--brand)", false},
		{"url(a.png)", false},
		{"", false},
		{"red blue", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, color.IsColor(tt.value))
		})
	}
}

func TestParseAlpha(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"0.5", 0.5, true},
		{"50%", 0.5, true},
		{"25", 0.25, true},
		{"1", 0.01, true},
		{"2", 0.02, true},
		{"100", 1, true},
		{"1.0", 1, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"150", 0, false},
		{"1.5", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := color.ParseAlpha(tt.in)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseOpacity(t *testing.T) {
	tests := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"1", 1, true},
		{"0.25", 0.25, true},
		{"40%", 0.4, true},
		{"2", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := color.ParseOpacity(tt.in)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestWithAlpha(t *testing.T) {
	t.Run("hex color becomes rgb with alpha", func(t *testing.T) {
		assert.Equal(t, "rgb(239 68 68 / 0.5)", color.WithAlpha("#ef4444", 0.5))
	})

	t.Run("named color", func(t *testing.T) {
		assert.Equal(t, "rgb(255 0 0 / 0.25)", color.WithAlpha("red", 0.25))
	})

	t.Run("full opacity is unchanged", func(t *testing.T) {
		assert.Equal(t, "#ef4444", color.WithAlpha("#ef4444", 1))
	})

	t.Run("variables are mixed", func(t *testing.T) {
		assert.Equal(t, "color-mix(in oklab, var(--brand) 50%, transparent)", color.WithAlpha("var(--brand)", 0.5))
	})

	t.Run("currentColor is mixed", func(t *testing.T) {
		assert.Equal(t, "color-mix(in oklab, currentColor 75%, transparent)", color.WithAlpha("currentColor", 0.75))
	})
}

package theme_test

import (
	"errors"
	"path/filepath"
	"testing"

	"bennypowers.dev/utilgen/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, th *theme.Theme, ns, key string) string {
	t.Helper()
	v, ok := th.Lookup(ns, key)
	require.True(t, ok, "expected %s.%s to exist", ns, key)
	return v
}

func TestDefault(t *testing.T) {
	th := theme.Default()

	t.Run("palette", func(t *testing.T) {
		assert.Equal(t, "#ef4444", lookup(t, th, "colors", "red-500"))
		assert.Equal(t, "#000", lookup(t, th, "colors", "black"))
		assert.Equal(t, "currentColor", lookup(t, th, "colors", "current"))
	})

	t.Run("spacing scale", func(t *testing.T) {
		assert.Equal(t, "1px", lookup(t, th, "spacing", "px"))
		assert.Equal(t, "0.125rem", lookup(t, th, "spacing", "0.5"))
		assert.Equal(t, "1rem", lookup(t, th, "spacing", "4"))
		assert.Equal(t, "24rem", lookup(t, th, "spacing", "96"))
	})

	t.Run("DEFAULT keys", func(t *testing.T) {
		assert.Equal(t, "0.25rem", lookup(t, th, "borderRadius", ""))
		assert.Equal(t, "1px", lookup(t, th, "borderWidth", theme.DefaultKey))
	})

	t.Run("lists become comma separated", func(t *testing.T) {
		assert.Equal(t, "ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace",
			lookup(t, th, "fontFamily", "mono"))
	})

	t.Run("values containing hashes survive", func(t *testing.T) {
		assert.Equal(t, "0 0 #0000", lookup(t, th, "boxShadow", "none"))
	})

	t.Run("screens", func(t *testing.T) {
		assert.Equal(t, []string{"2xl", "lg", "md", "sm", "xl"}, th.Keys("screens"))
	})

	t.Run("copies are independent", func(t *testing.T) {
		other, err := theme.FromDocument(map[string]any{
			"colors": map[string]any{"only": "#123"},
		}, th, "inline")
		require.NoError(t, err)
		_, ok := other.Lookup("colors", "red-500")
		assert.False(t, ok)

		_, ok = theme.Default().Lookup("colors", "red-500")
		assert.True(t, ok)
	})

	t.Run("missing lookups", func(t *testing.T) {
		_, ok := th.Lookup("colors", "nope-500")
		assert.False(t, ok)
		_, ok = th.Lookup("nope", "x")
		assert.False(t, ok)
		assert.False(t, th.Has("nope"))
	})
}

func TestFromDocument(t *testing.T) {
	base := theme.Default()

	t.Run("top-level namespace replaces base", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{
			"spacing": map[string]any{"sm": "4px", "lg": "16px"},
		}, base, "inline")
		require.NoError(t, err)
		assert.Equal(t, []string{"lg", "sm"}, th.Keys("spacing"))
		assert.Equal(t, "#ef4444", lookup(t, th, "colors", "red-500"))
	})

	t.Run("extend merges", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{
			"extend": map[string]any{
				"colors": map[string]any{
					"brand": map[string]any{"DEFAULT": "#111", "light": "#eee"},
				},
			},
		}, base, "inline")
		require.NoError(t, err)
		assert.Equal(t, "#111", lookup(t, th, "colors", "brand"))
		assert.Equal(t, "#eee", lookup(t, th, "colors", "brand-light"))
		assert.Equal(t, "#ef4444", lookup(t, th, "colors", "red-500"))
	})

	t.Run("group markers", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{
			"boxShadow": map[string]any{"_": "0 1px 2px black", "lg": "0 4px 8px black"},
			"colors": map[string]any{
				"ink": map[string]any{"@": "#222", "soft": "#444"},
			},
		}, theme.New(), "inline")
		require.NoError(t, err)
		assert.Equal(t, "0 1px 2px black", lookup(t, th, "boxShadow", ""))
		assert.Equal(t, "#222", lookup(t, th, "colors", "ink"))
		assert.Equal(t, "#444", lookup(t, th, "colors", "ink-soft"))
	})

	t.Run("scalar namespace becomes DEFAULT", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{"blur": "4px"}, theme.New(), "inline")
		require.NoError(t, err)
		assert.Equal(t, "4px", lookup(t, th, "blur", ""))
	})

	t.Run("numbers", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{
			"zIndex": map[string]any{"top": 100, "half": 0.5},
		}, theme.New(), "inline")
		require.NoError(t, err)
		assert.Equal(t, "100", lookup(t, th, "zIndex", "top"))
		assert.Equal(t, "0.5", lookup(t, th, "zIndex", "half"))
	})

	t.Run("group marker holding a map is invalid", func(t *testing.T) {
		_, err := theme.FromDocument(map[string]any{
			"colors": map[string]any{"_": map[string]any{"x": "#000"}},
		}, theme.New(), "bad.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, theme.ErrInvalidTheme))
	})

	t.Run("extend must be a map", func(t *testing.T) {
		_, err := theme.FromDocument(map[string]any{"extend": "nope"}, theme.New(), "bad.json")
		assert.ErrorIs(t, err, theme.ErrInvalidTheme)
	})

	t.Run("null value is invalid", func(t *testing.T) {
		_, err := theme.FromDocument(map[string]any{
			"colors": map[string]any{"x": nil},
		}, theme.New(), "bad.json")
		assert.ErrorIs(t, err, theme.ErrInvalidTheme)
	})
}

func TestResolveAliases(t *testing.T) {
	t.Run("references resolve across namespaces and chains", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{
			"extend": map[string]any{
				"colors": map[string]any{
					"primary": "{colors.blue.500}",
					"action":  "{colors.primary}",
				},
				"spacing": map[string]any{
					"half":   "{spacing.0.5}",
					"double": "calc({spacing.4} * 2)",
				},
			},
		}, theme.Default(), "inline")
		require.NoError(t, err)
		assert.Equal(t, "#3b82f6", lookup(t, th, "colors", "primary"))
		assert.Equal(t, "#3b82f6", lookup(t, th, "colors", "action"))
		assert.Equal(t, "0.125rem", lookup(t, th, "spacing", "half"))
		assert.Equal(t, "calc(1rem * 2)", lookup(t, th, "spacing", "double"))
	})

	t.Run("namespace reference names DEFAULT", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{
			"extend": map[string]any{
				"boxShadow": map[string]any{"card": "{boxShadow.DEFAULT}"},
			},
		}, theme.Default(), "inline")
		require.NoError(t, err)
		assert.Equal(t, lookup(t, th, "boxShadow", ""), lookup(t, th, "boxShadow", "card"))
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := theme.FromDocument(map[string]any{
			"extend": map[string]any{
				"colors": map[string]any{"x": "{colors.nope.500}"},
			},
		}, theme.New(), "theme.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, theme.ErrUnknownReference)

		var ure *theme.UnknownReferenceError
		require.True(t, errors.As(err, &ure))
		assert.Equal(t, "colors.x", ure.Entry)
		assert.Equal(t, "colors.nope.500", ure.Reference)
		assert.Contains(t, err.Error(), "Suggestion:")
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := theme.Load(filepath.Join("testdata", "cycle.json"), theme.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, theme.ErrCircularReference)

		var cre *theme.CircularReferenceError
		require.True(t, errors.As(err, &cre))
		assert.Equal(t, filepath.Join("testdata", "cycle.json"), cre.FilePath)
		assert.GreaterOrEqual(t, len(cre.ReferenceChain), 3)
	})

	t.Run("text without references is untouched", func(t *testing.T) {
		th, err := theme.FromDocument(map[string]any{
			"fontFamily": map[string]any{"x": "{not a reference}"},
		}, theme.New(), "inline")
		require.NoError(t, err)
		assert.Equal(t, "{not a reference}", lookup(t, th, "fontFamily", "x"))
	})
}

func TestDependencyGraph(t *testing.T) {
	th, err := theme.FromDocument(map[string]any{
		"colors": map[string]any{
			"base":    "#000",
			"primary": "#111",
		},
	}, theme.New(), "inline")
	require.NoError(t, err)

	g := theme.BuildDependencyGraph(th)
	assert.Nil(t, g.FindCycle())
	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"colors.base", "colors.primary"}, order)
}

func TestLoad(t *testing.T) {
	t.Run("jsonc with comments and trailing commas", func(t *testing.T) {
		th, err := theme.Load(filepath.Join("testdata", "theme.jsonc"), nil)
		require.NoError(t, err)
		assert.Equal(t, "#0055ff", lookup(t, th, "colors", "brand"))
		assert.Equal(t, "#bae6fd", lookup(t, th, "colors", "brand-light"))
		assert.Equal(t, "calc(1rem * 2)", lookup(t, th, "spacing", "gutter"))
		assert.Equal(t, []string{"desktop", "tablet"}, th.Keys("screens"))
	})

	t.Run("yaml", func(t *testing.T) {
		th, err := theme.Load(filepath.Join("testdata", "theme.yaml"), nil)
		require.NoError(t, err)
		assert.Equal(t, "#ffffff", lookup(t, th, "colors", "surface"))
		assert.Equal(t, "#ffffff", lookup(t, th, "colors", "surface-raised"))
		assert.Equal(t, "9999px", lookup(t, th, "borderRadius", "pill"))
		assert.Equal(t, "Inter, sans-serif", lookup(t, th, "fontFamily", "body"))
		_, ok := th.Lookup("fontFamily", "sans")
		assert.False(t, ok)
	})

	t.Run("toml", func(t *testing.T) {
		th, err := theme.Load(filepath.Join("testdata", "theme.toml"), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"phone", "wide"}, th.Keys("screens"))
		assert.Equal(t, "#111827", lookup(t, th, "colors", "ink"))
		assert.Equal(t, "#111827", lookup(t, th, "colors", "ink-soft"))
		assert.Equal(t, "100", lookup(t, th, "zIndex", "modal"))
		assert.Equal(t, "#ef4444", lookup(t, th, "colors", "red-500"))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := theme.Load("theme.ini", nil)
		assert.ErrorIs(t, err, theme.ErrInvalidTheme)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := theme.Load(filepath.Join("testdata", "missing.json"), nil)
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := theme.Decode([]byte(`{"colors": `), theme.FormatJSON)
		assert.Error(t, err)
	})
}

func TestApplyTokens(t *testing.T) {
	for _, name := range []string{"tokens.json", "tokens.yaml"} {
		t.Run(name, func(t *testing.T) {
			th, err := theme.ApplyTokens(theme.TokenSource{Path: filepath.Join("testdata", name)}, theme.Default())
			require.NoError(t, err)
			assert.Equal(t, "#0055ff", lookup(t, th, "colors", "brand-primary"))
			assert.Equal(t, "#0055ff", lookup(t, th, "colors", "brand-accent"))
			assert.Equal(t, "1.5rem", lookup(t, th, "spacing", "gutter"))
			assert.Equal(t, "12px", lookup(t, th, "borderRadius", "card"))
			assert.Equal(t, "#ef4444", lookup(t, th, "colors", "red-500"))
		})
	}

	t.Run("explicit namespace", func(t *testing.T) {
		th, err := theme.ApplyTokens(theme.TokenSource{
			Path:      filepath.Join("testdata", "tokens.json"),
			Namespace: "colors",
		}, theme.New())
		require.NoError(t, err)
		assert.Equal(t, "#0055ff", lookup(t, th, "colors", "color-brand-primary"))
		assert.Equal(t, "#0055ff", lookup(t, th, "colors", "color-brand-accent"))
		assert.Equal(t, "1.5rem", lookup(t, th, "colors", "space-gutter"))
	})

	t.Run("unsupported file type", func(t *testing.T) {
		_, err := theme.ApplyTokens(theme.TokenSource{Path: "tokens.toml"}, theme.New())
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	th := theme.Default()
	tests := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"colors.red.500", "#ef4444", true},
		{"colors.red-500", "#ef4444", true},
		{"spacing.0.5", "0.125rem", true},
		{"borderRadius.DEFAULT", "0.25rem", true},
		{"colors.nope", "", false},
		{"colors", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := th.Resolve(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

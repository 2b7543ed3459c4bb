package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		cfg, err := config.Load("testdata/yaml")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join("testdata/yaml", "utilgen.yaml"), cfg.File)
		assert.Equal(t, []string{"src/**/*.{html,tsx}"}, cfg.Content)
		assert.Equal(t, []string{"node_modules", "vendor"}, cfg.Exclude)
		assert.Equal(t, "src/app.css", cfg.Input)
		assert.Equal(t, "dist/app.css", cfg.Output)
		assert.Equal(t, "theme.yaml", cfg.Theme)
		assert.Equal(t, []theme.TokenSource{
			{Path: "tokens/colors.json"},
			{Path: "tokens/brand.yaml", Prefix: "brand", Namespace: "colors"},
		}, cfg.Tokens)
		assert.Equal(t, "tw-", cfg.Prefix)
		assert.Equal(t, design.DarkClass, cfg.DarkMode)
		assert.True(t, cfg.Important)
		assert.Equal(t, config.ModeRegions, cfg.Mode)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, map[string][]string{
			"btn":  {"px-4", "py-2", "rounded"},
			"card": {"p-6", "shadow-md"},
		}, cfg.Shortcuts)
	})

	t.Run("toml", func(t *testing.T) {
		cfg, err := config.Load("testdata/toml")
		require.NoError(t, err)

		assert.Equal(t, []string{"pages/**/*.html"}, cfg.Content)
		assert.Equal(t, design.DarkMedia, cfg.DarkMode)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, []string{"flex", "flex-col", "gap-4"}, cfg.Shortcuts["stack"])
		assert.Equal(t, config.DefaultExclude, cfg.Exclude)
	})

	t.Run("json with comments", func(t *testing.T) {
		cfg, err := config.Load("testdata/jsonc")
		require.NoError(t, err)

		assert.Equal(t, []string{"app/**/*.jsx"}, cfg.Content)
		assert.False(t, cfg.Important)
		assert.Equal(t, config.ModeGeneric, cfg.Mode)
	})

	t.Run("package.json", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{
			"name": "site",
			"utilgen": {"prefix": "u-", "content": ["src/**/*.astro"]}
		}`)

		cfg, err := config.Load(root)
		require.NoError(t, err)
		assert.Equal(t, "u-", cfg.Prefix)
		assert.Equal(t, []string{"src/**/*.astro"}, cfg.Content)
		assert.Equal(t, filepath.Join(root, "package.json"), cfg.File)
	})

	t.Run("package.json without utilgen falls through to defaults", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{"name": "site"}`)

		cfg, err := config.Load(root)
		require.NoError(t, err)
		assert.Equal(t, config.Default(root), cfg)
	})

	t.Run("design tokens config", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "tokens", "color.json"), `{"color":{"brand":{"$type":"color","$value":"#336699"}}}`)
		writeFile(t, filepath.Join(root, ".config", "design-tokens.yaml"), "prefix: ds\nfiles:\n  - tokens/**/*.json\n")

		cfg, err := config.Load(root)
		require.NoError(t, err)
		require.Len(t, cfg.Tokens, 1)
		assert.Equal(t, "color.json", filepath.Base(cfg.Tokens[0].Path))
		assert.Equal(t, "ds", cfg.Tokens[0].Prefix)
	})

	t.Run("no configuration", func(t *testing.T) {
		root := t.TempDir()
		cfg, err := config.Load(root)
		require.NoError(t, err)
		assert.Equal(t, config.Default(root), cfg)
		assert.Empty(t, cfg.File)
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"dark mode", "darkMode: dim\n", "darkMode"},
		{"dark mode type", "darkMode: 3\n", "darkMode"},
		{"mode", "mode: everything\n", "mode"},
		{"workers type", "workers: many\n", "workers"},
		{"negative workers", "workers: -1\n", "workers"},
		{"content type", "content: {a: b}\n", "content"},
		{"bad glob", "content: ['src/[a']\n", "content"},
		{"token object without path", "tokens: [{prefix: x}]\n", "tokens"},
		{"empty shortcut", "shortcuts: {btn: []}\n", "shortcuts"},
		{"important type", "important: yes please\n", "important"},
		{"prefix type", "prefix: [a]\n", "prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "utilgen.yaml"), tt.content)

			_, err := config.Load(root)
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)

			var cfgErr *config.InvalidConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), "Suggestion:")
		})
	}

	t.Run("malformed file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "utilgen.json"), `{"content": [`)
		_, err := config.Load(root)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("package.json utilgen is not an object", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "package.json"), `{"utilgen": true}`)
		_, err := config.Load(root)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestPathAndParallelism(t *testing.T) {
	cfg := config.Default("/project")
	assert.Equal(t, filepath.Join("/project", "src/app.css"), cfg.Path("src/app.css"))
	assert.Equal(t, "/abs/theme.json", cfg.Path("/abs/theme.json"))
	assert.Empty(t, cfg.Path(""))

	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Parallelism())
	cfg.Workers = 3
	assert.Equal(t, 3, cfg.Parallelism())
}

func TestDesign(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "theme.yaml"), "extend:\n  colors:\n    brand: \"#123456\"\n")
	writeFile(t, filepath.Join(root, "tokens.json"), `{"spacing":{"gutter":{"$type":"dimension","$value":"18px"}}}`)
	writeFile(t, filepath.Join(root, "utilgen.yaml"), "theme: theme.yaml\ntokens: [tokens.json]\nprefix: tw-\ndarkMode: class\n")

	cfg, err := config.Load(root)
	require.NoError(t, err)

	d, err := cfg.Design()
	require.NoError(t, err)

	brand, ok := d.Theme.Lookup("colors", "brand")
	require.True(t, ok)
	assert.Equal(t, "#123456", brand)
	gutter, ok := d.Theme.Lookup("spacing", "gutter")
	require.True(t, ok)
	assert.Equal(t, "18px", gutter)
	_, ok = d.Theme.Lookup("colors", "red-500")
	assert.True(t, ok, "extend keeps built-in colors")

	assert.Equal(t, "tw-", d.Prefix)
	assert.Equal(t, design.DarkClass, d.DarkMode)

	assert.Equal(t, []string{
		filepath.Join(root, "utilgen.yaml"),
		filepath.Join(root, "theme.yaml"),
		filepath.Join(root, "tokens.json"),
	}, cfg.WatchedFiles())
}

func TestDesignThemeErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "theme.yaml"), "colors:\n  a: \"{colors.b}\"\n  b: \"{colors.a}\"\n")

	cfg := config.Default(root)
	cfg.Theme = "theme.yaml"
	_, err := cfg.Design()
	assert.ErrorIs(t, err, theme.ErrCircularReference)
}

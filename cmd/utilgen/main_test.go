package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and returns what it wrote to stdout.
// Flags are reset first, so earlier runs do not leak into later ones.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestBuild(t *testing.T) {
	root := project(t, map[string]string{
		"utilgen.yaml": "content: ['src/**/*.html']\n",
		"src/a.html":   `<div class="flex mt-4 tw-grid"></div>`,
	})

	t.Run("stdout", func(t *testing.T) {
		out, err := execute(t, "build", "--root", root, "--minify")
		require.NoError(t, err)
		assert.Contains(t, out, ".flex{display:flex}")
		assert.Contains(t, out, ".mt-4{margin-top:1rem}")
		assert.NotContains(t, out, "grid")
	})

	t.Run("output file", func(t *testing.T) {
		out, err := execute(t, "build", "--root", root, "-o", "dist/app.css")
		require.NoError(t, err)
		assert.Empty(t, out)
		css, err := os.ReadFile(filepath.Join(root, "dist", "app.css"))
		require.NoError(t, err)
		assert.Contains(t, string(css), ".mt-4 {\n  margin-top: 1rem;\n}\n")
	})

	t.Run("prefix override", func(t *testing.T) {
		out, err := execute(t, "build", "--root", root, "--minify", "--prefix", "tw-")
		require.NoError(t, err)
		assert.Equal(t, ".tw-grid{display:grid}", strings.TrimSpace(out))
	})

	t.Run("explicit config file", func(t *testing.T) {
		alt := filepath.Join(t.TempDir(), "alt.json")
		require.NoError(t, os.WriteFile(alt, []byte(`{"content": ["src/*.html"], "prefix": "tw-"}`), 0o644))
		out, err := execute(t, "build", "--root", root, "--config", alt, "--minify")
		require.NoError(t, err)
		assert.Equal(t, ".tw-grid{display:grid}", strings.TrimSpace(out))
	})
}

func TestBuildErrors(t *testing.T) {
	for _, tt := range []struct {
		name  string
		files map[string]string
		args  []string
	}{
		{"invalid configuration", map[string]string{"utilgen.yaml": "mode: sideways\n"}, nil},
		{"invalid mode flag", nil, []string{"--mode", "sideways"}},
		{"missing input stylesheet", map[string]string{"utilgen.yaml": "input: missing.css\n"}, nil},
		{"unknown @apply candidate", map[string]string{
			"utilgen.yaml": "input: app.css\n",
			"app.css":      ".a {\n  @apply not-a-utility;\n}\n",
		}, nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			root := project(t, tt.files)
			_, err := execute(t, append([]string{"build", "--root", root}, tt.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestCandidates(t *testing.T) {
	root := project(t, map[string]string{
		"page.html": `<div class="flex nope md:hover:underline"></div>`,
	})
	page := filepath.Join(root, "page.html")

	out, err := execute(t, "candidates", "--root", root, page)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "flex")
	assert.Contains(t, lines, "nope")
	assert.Contains(t, lines, "md:hover:underline")

	out, err = execute(t, "candidates", "--root", root, "--resolved", page)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "flex")
	assert.Contains(t, lines, "md:hover:underline")
	assert.NotContains(t, lines, "nope")

	_, err = execute(t, "candidates", "--root", root, filepath.Join(root, "missing.html"))
	assert.Error(t, err)
}

func TestCSS(t *testing.T) {
	root := project(t, map[string]string{"utilgen.yaml": "shortcuts:\n  btn: px-4 rounded\n"})

	out, err := execute(t, "css", "--root", root, "mt-4")
	require.NoError(t, err)
	assert.Equal(t, ".mt-4 {\n  margin-top: 1rem;\n}\n", out)

	out, err = execute(t, "css", "--root", root, "--minify", "btn", "nope")
	require.NoError(t, err)
	assert.Equal(t, ".btn{padding-left:1rem;padding-right:1rem;border-radius:0.25rem}", out)

	_, err = execute(t, "css", "--root", root, "nope")
	assert.Error(t, err)
}

func TestClasses(t *testing.T) {
	root := project(t, map[string]string{"utilgen.yaml": "shortcuts:\n  btn: px-4 rounded\n"})

	out, err := execute(t, "classes", "--root", root)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "btn", lines[0], "shortcuts come first")
	assert.Contains(t, lines, "flex")
	assert.Contains(t, lines, "mt-4")

	out, err = execute(t, "classes", "--root", root, "--variants")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(out), "\n"), "hover")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "utilgen "))

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
}

func TestLogLevelFlag(t *testing.T) {
	_, err := execute(t, "version", "--log-level", "loud")
	assert.Error(t, err)
}

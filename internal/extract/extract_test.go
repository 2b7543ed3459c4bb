package extract_test

import (
	"os"
	"strings"
	"testing"

	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	content, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return content
}

func TestLanguageFor(t *testing.T) {
	tests := []struct {
		path string
		want extract.Language
	}{
		{"index.html", extract.HTML},
		{"App.vue", extract.HTML},
		{"Page.svelte", extract.HTML},
		{"main.ts", extract.JavaScript},
		{"Card.TSX", extract.JavaScript},
		{"app.css", extract.CSS},
		{"README.md", extract.Unknown},
		{"Makefile", extract.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.LanguageFor(tt.path))
		})
	}

	assert.Equal(t, extract.JavaScript, extract.LanguageForID("typescriptreact"))
	assert.Equal(t, extract.Unknown, extract.LanguageForID("go"))
}

func TestScanHTML(t *testing.T) {
	got := extract.Scan(scanner.New(scanner.Hints{}), extract.HTML, readFixture(t, "page.html"))

	for _, want := range []string{
		"bg-white", "dark:bg-black", "text-sm", "md:text-lg",
		"opacity-50", "underline", "p-4", "w-[32rem]",
		"rounded-lg", "shadow-md",
	} {
		assert.True(t, got.Has(want), "missing %q", want)
	}
	for _, unwanted := range []string{"prose", "flex-wrap", "hidden", "pointer-events-none", "mt-8", "card"} {
		assert.False(t, got.Has(unwanted), "unexpected %q", unwanted)
	}
}

func TestScanJSX(t *testing.T) {
	got := extract.Scan(scanner.New(scanner.Hints{}), extract.JavaScript, readFixture(t, "component.jsx"))

	for _, want := range []string{
		"inline-flex", "items-center", "h-8", "px-2", "h-12", "px-6",
		"grid", "grid-cols-3", "gap-4", "p-2", "ring-2", "ring-0", "sr-only",
		"flex", "justify-between", "py-1", "text-xs", "hover:underline",
	} {
		assert.True(t, got.Has(want), "missing %q", want)
	}
	for _, unwanted := range []string{"not-a-class-region", "class-variance-authority", "children"} {
		assert.False(t, got.Has(unwanted), "unexpected %q", unwanted)
	}
}

func TestScanUnknownLanguageScansWholeFile(t *testing.T) {
	content := []byte("Use flex-wrap here.")
	got := extract.Scan(scanner.New(scanner.Hints{}), extract.Unknown, content)
	assert.True(t, got.Has("flex-wrap"))
}

func TestRegionOffsets(t *testing.T) {
	for _, tt := range []struct {
		fixture string
		lang    extract.Language
	}{
		{"page.html", extract.HTML},
		{"component.jsx", extract.JavaScript},
		{"input.css", extract.CSS},
	} {
		t.Run(tt.fixture, func(t *testing.T) {
			content := readFixture(t, tt.fixture)
			regions := extract.Regions(tt.lang, content)
			require.NotEmpty(t, regions)
			for _, r := range regions {
				require.LessOrEqual(t, r.Offset+len(r.Content), len(content))
				original := string(content[r.Offset : r.Offset+len(r.Content)])
				if strings.Contains(original, "${") {
					// html template substitutions are blanked
					continue
				}
				assert.Equal(t, r.Content, original)
			}
		})
	}
}

func TestRegionKinds(t *testing.T) {
	kinds := map[extract.Kind]int{}
	for _, r := range extract.Regions(extract.HTML, readFixture(t, "page.html")) {
		kinds[r.Kind]++
	}
	assert.Equal(t, 4, kinds[extract.ClassAttribute])
	assert.Equal(t, 1, kinds[extract.Apply])
	assert.Equal(t, 2, kinds[extract.ClassString])
}

func TestTokenAt(t *testing.T) {
	content := []byte(`<p id="hero" class="px-4 md:px-8">hero text</p>`)
	s := scanner.New(scanner.Hints{})

	offset := len(`<p id="hero" class="px-4 md:`)
	token, start, end, ok := extract.TokenAt(s, extract.HTML, content, offset)
	require.True(t, ok)
	assert.Equal(t, "md:px-8", token)
	assert.Equal(t, "md:px-8", string(content[start:end]))

	_, _, _, ok = extract.TokenAt(s, extract.HTML, content, len(`<p id="he`))
	assert.False(t, ok, "id attribute is not a class region")

	_, _, _, ok = extract.TokenAt(s, extract.HTML, content, len(content)-6)
	assert.False(t, ok, "text content is not a class region")
}

func TestSources(t *testing.T) {
	got := extract.Sources(readFixture(t, "input.css"))
	assert.Equal(t, []extract.Source{
		{Pattern: "../pages/**/*.{html,jsx}"},
		{Pattern: "./components"},
		{Pattern: "../legacy/**", Negated: true},
	}, got)
}

func TestSourcesIgnoresUnquoted(t *testing.T) {
	assert.Empty(t, extract.Sources([]byte(`@source pages; .a { color: red; }`)))
}

func BenchmarkScanJSX(b *testing.B) {
	content, err := os.ReadFile("testdata/component.jsx")
	require.NoError(b, err)
	s := scanner.New(scanner.Hints{})

	b.ReportAllocs()
	for b.Loop() {
		extract.Scan(s, extract.JavaScript, content)
	}
}

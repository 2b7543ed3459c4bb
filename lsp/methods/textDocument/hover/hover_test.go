package hover_test

import (
	"testing"

	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/hover"
	"bennypowers.dev/utilgen/lsp/testutil"
	"bennypowers.dev/utilgen/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const pageURI = "file:///project/page.html"

func hoverAt(t *testing.T, ctx *testutil.MockServerContext, uri string, line, char uint32) *protocol.Hover {
	t.Helper()
	result, err := hover.Hover(types.NewRequestContext(ctx, nil), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: char},
		},
	})
	require.NoError(t, err)
	return result
}

func markup(t *testing.T, h *protocol.Hover) protocol.MarkupContent {
	t.Helper()
	require.NotNil(t, h)
	content, ok := h.Contents.(protocol.MarkupContent)
	require.True(t, ok, "contents are markup")
	return content
}

func TestHover(t *testing.T) {
	ctx := testutil.NewMockServerContext(t, nil)
	ctx.Open(pageURI, "html", `<div class="flex mt-4 hover:underline">Hello</div>`)

	t.Run("utility", func(t *testing.T) {
		h := hoverAt(t, ctx, pageURI, 0, 18)
		content := markup(t, h)
		assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
		assert.Equal(t, "```css\n.mt-4 {\n  margin-top: 1rem;\n}\n```", content.Value)
		require.NotNil(t, h.Range)
		assert.Equal(t, protocol.Position{Line: 0, Character: 17}, h.Range.Start)
		assert.Equal(t, protocol.Position{Line: 0, Character: 21}, h.Range.End)
	})

	t.Run("variant", func(t *testing.T) {
		content := markup(t, hoverAt(t, ctx, pageURI, 0, 25))
		assert.Contains(t, content.Value, `.hover\:underline:hover {`)
		assert.Contains(t, content.Value, "text-decoration-line: underline;")
	})

	t.Run("prose that is not a utility", func(t *testing.T) {
		assert.Nil(t, hoverAt(t, ctx, pageURI, 0, 42))
	})

	t.Run("unknown document", func(t *testing.T) {
		assert.Nil(t, hoverAt(t, ctx, "file:///project/missing.html", 0, 0))
	})

	t.Run("plain text clients", func(t *testing.T) {
		ctx.SetHoverFormat(protocol.MarkupKindPlainText)
		t.Cleanup(func() { ctx.SetHoverFormat(protocol.MarkupKindMarkdown) })
		content := markup(t, hoverAt(t, ctx, pageURI, 0, 13))
		assert.Equal(t, protocol.MarkupKindPlainText, content.Kind)
		assert.Equal(t, ".flex {\n  display: flex;\n}\n", content.Value)
	})
}

func TestHoverFollowsExtractionMode(t *testing.T) {
	const text = `<p class="p-4">flex</p>`

	generic := testutil.NewMockServerContext(t, nil)
	generic.Open(pageURI, "html", text)
	assert.NotNil(t, hoverAt(t, generic, pageURI, 0, 17), "generic mode reads text content")

	cfg := config.Default(t.TempDir())
	cfg.Mode = config.ModeRegions
	regions := testutil.NewMockServerContext(t, cfg)
	regions.Open(pageURI, "html", text)
	assert.Nil(t, hoverAt(t, regions, pageURI, 0, 17), "regions mode only reads class attributes")
	assert.NotNil(t, hoverAt(t, regions, pageURI, 0, 11))
}

func TestHoverShortcut(t *testing.T) {
	cfg := config.Default(t.TempDir())
	cfg.Shortcuts = map[string][]string{"btn": {"px-4", "rounded"}}
	ctx := testutil.NewMockServerContext(t, cfg)
	ctx.Open(pageURI, "html", `<button class="btn">`)

	content := markup(t, hoverAt(t, ctx, pageURI, 0, 16))
	assert.Contains(t, content.Value, ".btn {")
	assert.Contains(t, content.Value, "padding-left: 1rem;")
	assert.Contains(t, content.Value, "border-radius:")
}

func TestHoverApply(t *testing.T) {
	ctx := testutil.NewMockServerContext(t, nil)
	uri := "file:///project/app.css"
	ctx.Open(uri, "css", ".card {\n  @apply p-2 flex;\n}\n")

	content := markup(t, hoverAt(t, ctx, uri, 1, 10))
	assert.Contains(t, content.Value, "padding: 0.5rem;")
	assert.Nil(t, hoverAt(t, ctx, uri, 0, 2), "selectors are not candidates")
}

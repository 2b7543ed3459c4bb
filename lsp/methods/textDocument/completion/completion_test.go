package completion_test

import (
	"testing"

	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/completion"
	"bennypowers.dev/utilgen/lsp/testutil"
	"bennypowers.dev/utilgen/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///project/page.html"

func complete(t *testing.T, ctx *testutil.MockServerContext, line, char uint32) *protocol.CompletionList {
	t.Helper()
	result, err := completion.Completion(types.NewRequestContext(ctx, nil), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: char},
		},
	})
	require.NoError(t, err)
	if result == nil {
		return nil
	}
	list, ok := result.(*protocol.CompletionList)
	require.True(t, ok)
	return list
}

func labels(list *protocol.CompletionList) []string {
	var out []string
	for _, item := range list.Items {
		out = append(out, item.Label)
	}
	return out
}

func regionsContext(t *testing.T) *testutil.MockServerContext {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.Mode = config.ModeRegions
	cfg.Shortcuts = map[string][]string{"btn-primary": {"bg-blue-500", "text-white"}}
	return testutil.NewMockServerContext(t, cfg)
}

func TestCompletion(t *testing.T) {
	ctx := regionsContext(t)
	ctx.Open(uri, "html", `<div class="flex bg-red-5 md:hover:ita btn-">Text</div>`)

	t.Run("class", func(t *testing.T) {
		list := complete(t, ctx, 0, 25)
		require.NotNil(t, list)
		got := labels(list)
		assert.Contains(t, got, "bg-red-500")
		assert.Contains(t, got, "bg-red-50")
		assert.NotContains(t, got, "flex")

		item := list.Items[0]
		edit, ok := item.TextEdit.(protocol.TextEdit)
		require.True(t, ok)
		assert.Equal(t, protocol.Position{Line: 0, Character: 17}, edit.Range.Start)
		assert.Equal(t, protocol.Position{Line: 0, Character: 25}, edit.Range.End)
	})

	t.Run("variants are kept", func(t *testing.T) {
		got := labels(complete(t, ctx, 0, 38))
		assert.Contains(t, got, "md:hover:italic")
	})

	t.Run("shortcuts", func(t *testing.T) {
		got := labels(complete(t, ctx, 0, 43))
		assert.Contains(t, got, "btn-primary")
	})

	t.Run("outside class regions", func(t *testing.T) {
		assert.Nil(t, complete(t, ctx, 0, 45))
	})
}

func TestCompletionVariantNames(t *testing.T) {
	ctx := regionsContext(t)
	ctx.Open(uri, "html", `<a class="hov">`)

	list := complete(t, ctx, 0, 13)
	require.NotNil(t, list)
	assert.Contains(t, labels(list), "hover:")
	kind := *list.Items[0].Kind
	assert.Equal(t, protocol.CompletionItemKindKeyword, kind)
}

func TestCompletionIsCapped(t *testing.T) {
	ctx := regionsContext(t)
	ctx.Open(uri, "html", `<a class="p ">`)

	list := complete(t, ctx, 0, 12)
	require.NotNil(t, list)
	assert.Len(t, list.Items, completion.MaxItems)
	assert.True(t, list.IsIncomplete)
}

func TestResolve(t *testing.T) {
	ctx := regionsContext(t)
	req := types.NewRequestContext(ctx, nil)

	item, err := completion.Resolve(req, &protocol.CompletionItem{Label: "mt-4", Data: "mt-4"})
	require.NoError(t, err)
	doc, ok := item.Documentation.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, doc.Value, "margin-top: 1rem;")

	item, err = completion.Resolve(req, &protocol.CompletionItem{Label: "hover:"})
	require.NoError(t, err)
	assert.Nil(t, item.Documentation)
}

package workspace_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/uriutil"
	"bennypowers.dev/utilgen/lsp/methods/workspace"
	"bennypowers.dev/utilgen/lsp/testutil"
	"bennypowers.dev/utilgen/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func changed(paths ...string) *protocol.DidChangeWatchedFilesParams {
	params := &protocol.DidChangeWatchedFilesParams{}
	for _, p := range paths {
		params.Changes = append(params.Changes, protocol.FileEvent{URI: uriutil.PathToURI(p), Type: protocol.FileChangeTypeChanged})
	}
	return params
}

func themedContext(t *testing.T) (*testutil.MockServerContext, string) {
	t.Helper()
	root := t.TempDir()
	themePath := filepath.Join(root, "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("extend:\n  colors:\n    brand: \"#123456\"\n"), 0o644))
	cfg := config.Default(root)
	cfg.Theme = "theme.yaml"
	return testutil.NewMockServerContext(t, cfg), themePath
}

func TestDidChangeWatchedFiles(t *testing.T) {
	t.Run("theme change reloads and republishes", func(t *testing.T) {
		ctx, themePath := themedContext(t)
		ctx.SetGLSPContext(ctx.NewGLSPContext())
		ctx.Open("file:///project/app.css", "css", ".a { @apply nope; }")

		req := types.NewRequestContext(ctx, ctx.GLSPContext())
		require.NoError(t, workspace.DidChangeWatchedFiles(req, changed(themePath)))
		assert.Equal(t, 1, ctx.LoadWorkspaceCalls)
		require.Len(t, ctx.Notifications, 1)
		assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, ctx.Notifications[0].Method)
	})

	t.Run("unrelated files are ignored", func(t *testing.T) {
		ctx, themePath := themedContext(t)
		other := filepath.Join(filepath.Dir(themePath), "src", "page.html")
		require.NoError(t, workspace.DidChangeWatchedFiles(types.NewRequestContext(ctx, nil), changed(other)))
		assert.Zero(t, ctx.LoadWorkspaceCalls)
	})

	t.Run("failed reload is not an error", func(t *testing.T) {
		ctx, themePath := themedContext(t)
		ctx.LoadWorkspaceFunc = func() error { return errors.New("theme.yaml: circular reference") }
		ctx.SetGLSPContext(ctx.NewGLSPContext())
		ctx.Open("file:///project/app.css", "css", ".a { @apply nope; }")

		require.NoError(t, workspace.DidChangeWatchedFiles(types.NewRequestContext(ctx, nil), changed(themePath)))
		assert.Equal(t, 1, ctx.LoadWorkspaceCalls)
		assert.Empty(t, ctx.Notifications, "diagnostics are not republished")
	})
}

package workspace

import (
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/uriutil"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles reloads the workspace when a configuration, theme
// or token file changes, then republishes diagnostics. A failed reload
// keeps the previous design.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	reload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		if req.Server.IsWatchedFile(path) {
			log.Debug("Watched file changed: %s (type %d)", path, change.Type)
			reload = true
		}
	}
	if !reload {
		return nil
	}

	if err := req.Server.LoadWorkspace(); err != nil {
		LogWarning(req.GLSP, "Keeping the previous configuration: %v", err)
		return nil
	}
	for _, doc := range req.Server.AllDocuments() {
		diagnostic.Publish(req, doc)
	}
	return nil
}

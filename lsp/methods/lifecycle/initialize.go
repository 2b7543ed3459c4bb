// Package lifecycle handles server initialization and shutdown.
package lifecycle

import (
	"slices"

	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/uriutil"
	"bennypowers.dev/utilgen/internal/version"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/completion"
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients.
const ServerName = "utilgen-language-server"

// Initialize records the workspace root and the client's hover format and
// advertises the server's capabilities. The workspace loads on initialized.
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	client := "unknown"
	if params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", client)

	switch {
	case params.RootURI != nil && *params.RootURI != "":
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	case params.RootPath != nil && *params.RootPath != "":
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	case len(params.WorkspaceFolders) > 0:
		req.Server.SetRootURI(params.WorkspaceFolders[0].URI)
		req.Server.SetRootPath(uriutil.URIToPath(params.WorkspaceFolders[0].URI))
	}
	log.Info("Workspace root: %s", req.Server.RootPath())

	req.Server.SetHoverFormat(protocol.MarkupKindMarkdown)
	if td := params.Capabilities.TextDocument; td != nil && td.Hover != nil && len(td.Hover.ContentFormat) > 0 {
		if !slices.Contains(td.Hover.ContentFormat, protocol.MarkupKindMarkdown) {
			req.Server.SetHoverFormat(protocol.MarkupKindPlainText)
		}
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	v := version.Get().Version
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
			HoverProvider: true,
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: completion.TriggerCharacters,
				ResolveProvider:   boolPtr(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &v,
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

// Package textDocument handles document synchronization.
package textDocument

import (
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	td := params.TextDocument
	log.Debug("Document opened: %s (%s, version %d)", td.URI, td.LanguageID, td.Version)
	req.Server.DocumentManager().DidOpen(td.URI, td.LanguageID, int(td.Version), td.Text)
	diagnostic.Publish(req, req.Server.Document(td.URI))
	return nil
}

// DidChange applies the changes. Whole-document changes arrive as a
// separate type and are normalized to range-less events.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, c)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: c.Text})
		}
	}
	if err := req.Server.DocumentManager().DidChange(uri, int(params.TextDocument.Version), changes); err != nil {
		return err
	}
	diagnostic.Publish(req, req.Server.Document(uri))
	return nil
}

func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	log.Debug("Document closed: %s", params.TextDocument.URI)
	return req.Server.DocumentManager().DidClose(params.TextDocument.URI)
}

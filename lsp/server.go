// Package lsp is the utilgen language server: it previews the CSS of the
// class under the cursor, completes class names and flags unknown @apply
// candidates, following the workspace's configuration and theme.
package lsp

import (
	"sync"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/documents"
	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/lsp/methods/lifecycle"
	"bennypowers.dev/utilgen/lsp/methods/textDocument"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/completion"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/hover"
	"bennypowers.dev/utilgen/lsp/methods/workspace"
	"bennypowers.dev/utilgen/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

var _ types.ServerContext = (*Server)(nil)

// Server is the language server.
type Server struct {
	documents  *documents.Manager
	store      *design.Store
	glspServer *server.Server

	mu          sync.RWMutex // guards the fields below
	builder     *build.Builder
	context     *glsp.Context
	rootURI     string
	rootPath    string
	hoverFormat protocol.MarkupKind
}

// NewServer returns a server on the built-in design. The workspace's own
// configuration loads once the client reports initialized.
func NewServer() *Server {
	s := &Server{
		documents:   documents.NewManager(),
		store:       design.NewStore(design.New(nil, design.Options{})),
		hoverFormat: protocol.MarkupKindMarkdown,
	}
	s.builder = build.New(config.Default("."), s.store)

	handler := protocol.Handler{
		Initialize:                     method(s, "initialize", lifecycle.Initialize),
		Initialized:                    notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                       noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                       notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeWatchedFiles: notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:            notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:          notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:           notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:              method(s, "textDocument/hover", hover.Hover),
		TextDocumentCompletion:         method(s, "textDocument/completion", completion.Completion),
		CompletionItemResolve:          method(s, "completionItem/resolve", completion.Resolve),
	}
	s.glspServer = server.NewServer(&handler, lifecycle.ServerName, false)
	return s
}

// RunStdio serves over stdin and stdout.
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the pooled parsers. It is safe to call more than once.
func (s *Server) Close() error {
	extract.ClosePools()
	return nil
}

func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

func (s *Server) Builder() *build.Builder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builder
}

// Store returns the design store shared by every builder of this server.
func (s *Server) Store() *design.Store {
	return s.store
}

func (s *Server) RootURI() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootURI
}

func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

func (s *Server) SetRootURI(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootURI = uri
}

func (s *Server) SetRootPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootPath = path
}

func (s *Server) HoverFormat() protocol.MarkupKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hoverFormat
}

func (s *Server) SetHoverFormat(kind protocol.MarkupKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hoverFormat = kind
}

func (s *Server) GLSPContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

package types

import (
	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/documents"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerContext provides everything LSP handlers need from the server.
type ServerContext interface {
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Builder resolves candidates with the workspace configuration. It is
	// replaced, never mutated, when the workspace reloads.
	Builder() *build.Builder

	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// HoverFormat is the markup kind the client prefers for hovers.
	HoverFormat() protocol.MarkupKind
	SetHoverFormat(kind protocol.MarkupKind)

	// LoadWorkspace reads the configuration under the root and swaps in
	// a new design.
	LoadWorkspace() error
	IsWatchedFile(path string) bool
	RegisterFileWatchers(ctx *glsp.Context) error

	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
}

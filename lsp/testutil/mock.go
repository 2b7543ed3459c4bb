// Package testutil provides a ServerContext for handler tests.
package testutil

import (
	"path/filepath"
	"slices"
	"testing"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/design"
	"bennypowers.dev/utilgen/internal/documents"
	"bennypowers.dev/utilgen/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext is a ServerContext over a fixed configuration.
type MockServerContext struct {
	docs        *documents.Manager
	builder     *build.Builder
	rootURI     string
	rootPath    string
	hoverFormat protocol.MarkupKind
	glspContext *glsp.Context

	// LoadWorkspaceFunc replaces LoadWorkspace when set.
	LoadWorkspaceFunc func() error
	// Notifications collects what the GLSP context returned by
	// NewGLSPContext sends.
	Notifications []Notification

	LoadWorkspaceCalls    int
	RegisterWatchersCalls int
}

// Notification is a message sent to the client.
type Notification struct {
	Method string
	Params any
}

// NewMockServerContext returns a mock using cfg, or the defaults under a
// temporary root when cfg is nil.
func NewMockServerContext(t testing.TB, cfg *config.Config) *MockServerContext {
	t.Helper()
	if cfg == nil {
		cfg = config.Default(t.TempDir())
	}
	d, err := cfg.Design()
	if err != nil {
		t.Fatalf("design: %v", err)
	}
	return &MockServerContext{
		docs:        documents.NewManager(),
		builder:     build.New(cfg, design.NewStore(d)),
		rootPath:    cfg.Root,
		hoverFormat: protocol.MarkupKindMarkdown,
	}
}

// NewGLSPContext returns a context that records notifications on m.
func (m *MockServerContext) NewGLSPContext() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			m.Notifications = append(m.Notifications, Notification{Method: method, Params: params})
		},
	}
}

// Open opens a document with the given content.
func (m *MockServerContext) Open(uri, languageID, content string) *documents.Document {
	m.docs.DidOpen(uri, languageID, 1, content)
	return m.docs.Get(uri)
}

func (m *MockServerContext) Document(uri string) *documents.Document { return m.docs.Get(uri) }
func (m *MockServerContext) DocumentManager() *documents.Manager { return m.docs }
func (m *MockServerContext) AllDocuments() []*documents.Document { return m.docs.GetAll() }
func (m *MockServerContext) Builder() *build.Builder { return m.builder }
func (m *MockServerContext) RootURI() string { return m.rootURI }
func (m *MockServerContext) RootPath() string { return m.rootPath }
func (m *MockServerContext) SetRootURI(uri string) { m.rootURI = uri }
func (m *MockServerContext) SetRootPath(path string) { m.rootPath = path }
func (m *MockServerContext) HoverFormat() protocol.MarkupKind { return m.hoverFormat }
func (m *MockServerContext) SetHoverFormat(k protocol.MarkupKind) { m.hoverFormat = k }
func (m *MockServerContext) GLSPContext() *glsp.Context { return m.glspContext }
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) { m.glspContext = ctx }

func (m *MockServerContext) LoadWorkspace() error {
	m.LoadWorkspaceCalls++
	if m.LoadWorkspaceFunc != nil {
		return m.LoadWorkspaceFunc()
	}
	return nil
}

func (m *MockServerContext) IsWatchedFile(path string) bool {
	return slices.Contains(m.builder.Config().WatchedFiles(), filepath.Clean(path))
}

func (m *MockServerContext) RegisterFileWatchers(*glsp.Context) error {
	m.RegisterWatchersCalls++
	return nil
}

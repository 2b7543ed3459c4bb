package documents

import (
	"fmt"
	"sync"

	"bennypowers.dev/utilgen/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager holds the open documents by URI. Documents are replaced, not
// mutated, so a document returned by Get is safe to read while edits
// arrive.
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{documents: make(map[string]*Document)}
}

// Get returns the document for uri, or nil.
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns the open documents in no particular order.
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

func (m *Manager) DidOpen(uri, languageID string, version int, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[uri] = NewDocument(uri, languageID, version, content)
}

func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[uri]; !ok {
		return fmt.Errorf("document not found: %s", uri)
	}
	delete(m.documents, uri)
	return nil
}

// DidChange applies full or incremental changes in order.
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.documents[uri]
	if !ok {
		return fmt.Errorf("document not found: %s", uri)
	}
	content := doc.content
	for _, change := range changes {
		if change.Range == nil {
			content = change.Text
			continue
		}
		var err error
		if content, err = applyIncrementalChange(content, *change.Range, change.Text); err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	next := *doc
	if err := next.setContent(content, version); err != nil {
		return err
	}
	m.documents[uri] = &next
	return nil
}

func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	start, err := position.Offset(content, r.Start.Line, r.Start.Character)
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	end, err := position.Offset(content, r.End.Line, r.End.Character)
	if err != nil {
		return "", fmt.Errorf("end: %w", err)
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}

// Package documents tracks the text of documents open in the editor.
package documents

import (
	"fmt"

	"bennypowers.dev/utilgen/internal/extract"
)

// Document is an open text document.
type Document struct {
	uri        string
	languageID string
	language   extract.Language
	content    string
	version    int
}

// NewDocument returns a document. Its language comes from the client's
// language id, or the URI's extension when the id is not recognized.
func NewDocument(uri, languageID string, version int, content string) *Document {
	lang := extract.LanguageForID(languageID)
	if lang == extract.Unknown {
		lang = extract.LanguageFor(uri)
	}
	return &Document{
		uri:        uri,
		languageID: languageID,
		language:   lang,
		version:    version,
		content:    content,
	}
}

func (d *Document) URI() string { return d.uri }
func (d *Document) LanguageID() string { return d.languageID }
func (d *Document) Language() extract.Language { return d.language }
func (d *Document) Version() int { return d.version }
func (d *Document) Content() string { return d.content }

// setContent rejects updates older than the current version.
func (d *Document) setContent(content string, version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	return nil
}

// Package diagnostic reports @apply candidates that do not resolve.
package diagnostic

import (
	"iter"
	"unicode"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/documents"
	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/position"
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const source = "utilgen"

// Diagnostics returns an error for every @apply candidate in a stylesheet
// that resolves to nothing. Other documents have none.
func Diagnostics(b *build.Builder, doc *documents.Document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.Language() != extract.CSS {
		return diagnostics
	}
	content := doc.Content()
	session := b.Engine().Session()
	severity := protocol.DiagnosticSeverityError
	src := source

	for _, region := range extract.Regions(extract.CSS, []byte(content)) {
		if region.Kind != extract.Apply {
			continue
		}
		for start, end := range words(region.Content) {
			raw := region.Content[start:end]
			if raw == "!important" || session.Resolve(raw) != nil {
				continue
			}
			sl, sc := position.Position(content, region.Offset+start)
			el, ec := position.Position(content, region.Offset+end)
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range: protocol.Range{
					Start: protocol.Position{Line: sl, Character: sc},
					End:   protocol.Position{Line: el, Character: ec},
				},
				Severity: &severity,
				Source:   &src,
				Message:  "Unknown utility: " + raw,
			})
		}
	}
	return diagnostics
}

// words yields the byte ranges of the whitespace-separated words of s.
func words(s string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := -1
		for i, r := range s {
			switch {
			case unicode.IsSpace(r) && start >= 0:
				if !yield(start, i) {
					return
				}
				start = -1
			case !unicode.IsSpace(r) && start < 0:
				start = i
			}
		}
		if start >= 0 {
			yield(start, len(s))
		}
	}
}

// Publish sends the diagnostics of doc to the client, if one is connected.
func Publish(req *types.RequestContext, doc *documents.Document) {
	ctx := req.Server.GLSPContext()
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI(),
		Diagnostics: Diagnostics(req.Server.Builder(), doc),
	})
}

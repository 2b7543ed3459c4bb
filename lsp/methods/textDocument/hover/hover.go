// Package hover previews the CSS generated for the class under the cursor.
package hover

import (
	"strings"

	"bennypowers.dev/utilgen/internal/build"
	"bennypowers.dev/utilgen/internal/collections"
	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/cssast"
	"bennypowers.dev/utilgen/internal/documents"
	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/position"
	"bennypowers.dev/utilgen/internal/scanner"
	"bennypowers.dev/utilgen/internal/uriutil"
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Candidate is a class found at a position.
type Candidate struct {
	Raw        string
	Start, End int
}

// CandidateAt returns the candidate at a byte offset in doc. Generic mode
// reads the whole document like the build does, except stylesheets, where
// only @apply parameters hold candidates.
func CandidateAt(doc *documents.Document, mode config.Mode, offset int) (Candidate, bool) {
	lang := doc.Language()
	if mode == config.ModeGeneric && lang != extract.CSS {
		lang = extract.Unknown
	}
	s := scanner.ForFile(uriutil.URIToPath(doc.URI()))
	raw, start, end, ok := extract.TokenAt(s, lang, []byte(doc.Content()), offset)
	return Candidate{Raw: raw, Start: start, End: end}, ok
}

// Render returns the CSS for raw, or false when it generates nothing.
// Shortcuts render the rules of their members.
func Render(b *build.Builder, raw string) (string, bool) {
	nodes, n := b.Generate(b.Engine().Session(), collections.NewSet(raw))
	if n == 0 {
		return "", false
	}
	return cssast.Print(nodes, false), true
}

// Markup wraps CSS for the client's preferred format.
func Markup(css string, kind protocol.MarkupKind) protocol.MarkupContent {
	if kind == protocol.MarkupKindPlainText {
		return protocol.MarkupContent{Kind: kind, Value: css}
	}
	return protocol.MarkupContent{
		Kind:  protocol.MarkupKindMarkdown,
		Value: "```css\n" + strings.TrimRight(css, "\n") + "\n```",
	}
}

// Hover handles textDocument/hover. Candidates that generate nothing get
// no hover.
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := req.Server.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	content := doc.Content()
	offset, err := position.Offset(content, params.Position.Line, params.Position.Character)
	if err != nil {
		return nil, err
	}

	b := req.Server.Builder()
	c, ok := CandidateAt(doc, b.Config().Mode, offset)
	if !ok {
		return nil, nil
	}
	css, ok := Render(b, c.Raw)
	if !ok {
		log.Debug("No CSS for %q", c.Raw)
		return nil, nil
	}

	sl, sc := position.Position(content, c.Start)
	el, ec := position.Position(content, c.End)
	return &protocol.Hover{
		Contents: Markup(css, req.Server.HoverFormat()),
		Range: &protocol.Range{
			Start: protocol.Position{Line: sl, Character: sc},
			End:   protocol.Position{Line: el, Character: ec},
		},
	}, nil
}

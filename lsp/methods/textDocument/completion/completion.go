// Package completion completes class names inside class-bearing regions.
package completion

import (
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/utilgen/internal/config"
	"bennypowers.dev/utilgen/internal/documents"
	"bennypowers.dev/utilgen/internal/extract"
	"bennypowers.dev/utilgen/internal/log"
	"bennypowers.dev/utilgen/internal/position"
	"bennypowers.dev/utilgen/lsp/methods/textDocument/hover"
	"bennypowers.dev/utilgen/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// MaxItems caps a completion list; longer lists are marked incomplete so
// the client asks again as the user types.
const MaxItems = 200

// TriggerCharacters start completion outside identifiers.
var TriggerCharacters = []string{" ", "\"", "'", "`", ":"}

// wordStart returns the start of the class being typed before offset.
func wordStart(content string, offset int) int {
	i := strings.LastIndexAny(content[:offset], " \t\r\n\"'`{}<>=,")
	return i + 1
}

// inClassRegion reports whether offset can hold a class. Documents the
// extractor does not know are open everywhere in generic mode.
func inClassRegion(doc *documents.Document, mode config.Mode, offset int) bool {
	lang := doc.Language()
	if lang == extract.Unknown {
		return mode == config.ModeGeneric
	}
	for _, r := range extract.Regions(lang, []byte(doc.Content())) {
		if offset >= r.Offset && offset <= r.Offset+len(r.Content) {
			return true
		}
	}
	return false
}

// Completion handles textDocument/completion. The variants already typed
// are kept and the part after the last colon is completed against the
// design's classes and static variants.
func Completion(req *types.RequestContext, params *protocol.CompletionParams) (any, error) {
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
	if !inClassRegion(doc, b.Config().Mode, offset) {
		return nil, nil
	}

	start := wordStart(content, offset)
	word := content[start:offset]
	variants, partial := "", word
	if i := strings.LastIndexByte(word, ':'); i >= 0 {
		variants, partial = word[:i+1], word[i+1:]
	}
	if strings.HasPrefix(partial, "!") {
		variants, partial = variants+"!", partial[1:]
	}

	sl, sc := position.Position(content, start)
	el, ec := position.Position(content, offset)
	edit := protocol.Range{
		Start: protocol.Position{Line: sl, Character: sc},
		End:   protocol.Position{Line: el, Character: ec},
	}

	d := b.Engine().Session().Design()
	list := &protocol.CompletionList{Items: []protocol.CompletionItem{}}
	add := func(label string, kind protocol.CompletionItemKind) bool {
		if len(list.Items) == MaxItems {
			list.IsIncomplete = true
			return false
		}
		list.Items = append(list.Items, protocol.CompletionItem{
			Label:    label,
			Kind:     &kind,
			TextEdit: protocol.TextEdit{Range: edit, NewText: label},
			Data:     label,
		})
		return true
	}

	for _, v := range d.StaticVariantNames() {
		if strings.HasPrefix(v, partial) && !add(variants+v+":", protocol.CompletionItemKindKeyword) {
			break
		}
	}
	classes := append(slices.Sorted(maps.Keys(b.Config().Shortcuts)), d.Classes()...)
	for _, class := range classes {
		if strings.HasPrefix(class, partial) && !add(variants+class, protocol.CompletionItemKindConstant) {
			break
		}
	}
	log.Debug("Completing %q: %d items", word, len(list.Items))
	return list, nil
}

// Resolve fills in the CSS a completion item generates.
func Resolve(req *types.RequestContext, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	label, _ := item.Data.(string)
	if label == "" {
		label = item.Label
	}
	if css, ok := hover.Render(req.Server.Builder(), label); ok {
		item.Documentation = hover.Markup(css, req.Server.HoverFormat())
	}
	return item, nil
}

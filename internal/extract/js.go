package extract

import (
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

type jsParser struct {
	parser        *sitter.Parser
	attrQuery     *sitter.Query
	callQuery     *sitter.Query
	templateQuery *sitter.Query
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// helpers are functions whose string arguments are class lists.
var helpers = map[string]bool{
	"clsx":       true,
	"cn":         true,
	"cx":         true,
	"cva":        true,
	"tv":         true,
	"twMerge":    true,
	"twJoin":     true,
	"classnames": true,
	"classNames": true,
}

var jsPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		attrQuery, qerr := sitter.NewQuery(jsLang, `(jsx_attribute (property_identifier) @name) @attr`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile JSX attribute query: %v", qerr))
		}

		callQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @fn
				arguments: (arguments) @args)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile call query: %v", qerr))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		return &jsParser{
			parser:        parser,
			attrQuery:     attrQuery,
			callQuery:     callQuery,
			templateQuery: templateQuery,
		}
	},
}

func acquireJS() *jsParser {
	p := jsPool.Get().(*jsParser)
	p.parser.Reset()
	return p
}

func releaseJS(p *jsParser) {
	if p != nil {
		jsPool.Put(p)
	}
}

func (p *jsParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	for _, q := range []*sitter.Query{p.attrQuery, p.callQuery, p.templateQuery} {
		if q != nil {
			q.Close()
		}
	}
}

func closeJSPool() {
	for range 100 {
		if p, ok := jsPool.Get().(*jsParser); ok && p != nil {
			p.Close()
		}
	}
}

// regions extracts JSX class attributes, class helper arguments and tagged
// templates. offset is added to every region.
func (p *jsParser) regions(src []byte, offset int) []Region {
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	root := tree.RootNode()

	var regions []Region
	p.each(p.attrQuery, root, src, func(captures map[string]*sitter.Node) {
		name := captures["name"]
		attr := captures["attr"]
		if name == nil || attr == nil {
			return
		}
		if n := text(src, name.StartByte(), name.EndByte()); n != "className" && n != "class" {
			return
		}
		for i := uint(0); i < attr.NamedChildCount(); i++ {
			if value := attr.NamedChild(i); value.Kind() != "property_identifier" {
				regions = fragments(value, src, offset, ClassString, regions)
			}
		}
	})

	p.each(p.callQuery, root, src, func(captures map[string]*sitter.Node) {
		fn, args := captures["fn"], captures["args"]
		if fn == nil || args == nil || !helpers[text(src, fn.StartByte(), fn.EndByte())] {
			return
		}
		regions = fragments(args, src, offset, ClassString, regions)
	})

	p.each(p.templateQuery, root, src, func(captures map[string]*sitter.Node) {
		tag, tmpl := captures["tag"], captures["template"]
		if tag == nil || tmpl == nil {
			return
		}
		switch text(src, tag.StartByte(), tag.EndByte()) {
		case "tw":
			regions = fragments(tmpl, src, offset, Template, regions)
		case "html":
			regions = append(regions, htmlTemplate(tmpl, src, offset)...)
		}
	})
	return regions
}

// each calls fn with the captures of every match of query, by name.
func (p *jsParser) each(query *sitter.Query, root *sitter.Node, src []byte, fn func(map[string]*sitter.Node)) {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := query.CaptureNames()
	matches := cursor.Matches(query, root, src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		captures := make(map[string]*sitter.Node, len(match.Captures))
		for i := range match.Captures {
			capture := match.Captures[i]
			captures[names[capture.Index]] = &capture.Node
		}
		fn(captures)
	}
}

// fragments appends every string literal fragment under node, including
// those inside template substitutions.
func fragments(node *sitter.Node, src []byte, offset int, kind Kind, regions []Region) []Region {
	if node.Kind() == "string_fragment" {
		return append(regions, Region{
			Content: text(src, node.StartByte(), node.EndByte()),
			Offset:  offset + int(node.StartByte()),
			Kind:    kind,
		})
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		regions = fragments(node.NamedChild(i), src, offset, kind, regions)
	}
	return regions
}

// htmlTemplate parses an html template as one HTML document, with its
// substitutions blanked out so offsets stay put. Strings inside the
// substitutions are class strings in their own right.
func htmlTemplate(tmpl *sitter.Node, src []byte, offset int) []Region {
	start, end := tmpl.StartByte()+1, tmpl.EndByte()-1
	if end <= start {
		return nil
	}
	body := make([]byte, end-start)
	copy(body, src[start:end])

	var regions []Region
	for i := uint(0); i < tmpl.NamedChildCount(); i++ {
		child := tmpl.NamedChild(i)
		if child.Kind() != "template_substitution" {
			continue
		}
		for j := child.StartByte(); j < child.EndByte(); j++ {
			if body[j-start] != '\n' {
				body[j-start] = ' '
			}
		}
		regions = fragments(child, src, offset, ClassString, regions)
	}

	h := acquireHTML()
	defer releaseHTML(h)
	return append(h.regions(body, offset+int(start)), regions...)
}

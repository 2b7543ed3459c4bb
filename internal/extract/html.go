package extract

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

type htmlParser struct {
	parser      *sitter.Parser
	attrQuery   *sitter.Query
	scriptQuery *sitter.Query
	styleQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

var htmlPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `(attribute (attribute_name) @name) @attr`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		scriptQuery, qerr := sitter.NewQuery(htmlLang, `(script_element (raw_text) @js)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile script query: %v", qerr))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		return &htmlParser{
			parser:      parser,
			attrQuery:   attrQuery,
			scriptQuery: scriptQuery,
			styleQuery:  styleQuery,
		}
	},
}

func acquireHTML() *htmlParser {
	p := htmlPool.Get().(*htmlParser)
	p.parser.Reset()
	return p
}

func releaseHTML(p *htmlParser) {
	if p != nil {
		htmlPool.Put(p)
	}
}

func (p *htmlParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	for _, q := range []*sitter.Query{p.attrQuery, p.scriptQuery, p.styleQuery} {
		if q != nil {
			q.Close()
		}
	}
}

func closeHTMLPool() {
	for range 100 {
		if p, ok := htmlPool.Get().(*htmlParser); ok && p != nil {
			p.Close()
		}
	}
}

// classAttribute reports whether an attribute carries classes, and whether
// the classes are in its name, as in Svelte's class:name directive.
func classAttribute(name string) (ok, inName bool) {
	switch name {
	case "class", "className", ":class", "v-bind:class", "x-bind:class",
		"[class]", "ngClass", "[ngClass]", "class:list":
		return true, false
	}
	if strings.HasPrefix(name, "class:") {
		return true, true
	}
	return false, false
}

// regions extracts class attributes, then the regions of script and style
// element bodies. offset is added to every region.
func (p *htmlParser) regions(src []byte, offset int) []Region {
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	root := tree.RootNode()

	var regions []Region
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := p.attrQuery.CaptureNames()
	matches := cursor.Matches(p.attrQuery, root, src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var nameNode, valueNode *sitter.Node
		for i := range match.Captures {
			capture := match.Captures[i]
			switch names[capture.Index] {
			case "name":
				nameNode = &capture.Node
			case "attr":
				valueNode = attributeValue(&capture.Node)
			}
		}
		if nameNode == nil {
			continue
		}
		name := text(src, nameNode.StartByte(), nameNode.EndByte())
		ok, inName := classAttribute(name)
		switch {
		case !ok:
		case inName:
			regions = append(regions, Region{
				Content: name[len("class:"):],
				Offset:  offset + int(nameNode.StartByte()) + len("class:"),
				Kind:    ClassAttribute,
			})
		case valueNode != nil:
			regions = append(regions, Region{
				Content: text(src, valueNode.StartByte(), valueNode.EndByte()),
				Offset:  offset + int(valueNode.StartByte()),
				Kind:    ClassAttribute,
			})
		}
	}

	regions = p.embedded(p.scriptQuery, root, src, offset, regions, func(body []byte, at int) []Region {
		js := acquireJS()
		defer releaseJS(js)
		return js.regions(body, at)
	})
	return p.embedded(p.styleQuery, root, src, offset, regions, func(body []byte, at int) []Region {
		css := acquireCSS()
		defer releaseCSS(css)
		return css.regions(body, at)
	})
}

// attributeValue returns the value node of an attribute, quoted or not.
func attributeValue(attr *sitter.Node) *sitter.Node {
	for i := uint(0); i < attr.NamedChildCount(); i++ {
		child := attr.NamedChild(i)
		switch child.Kind() {
		case "attribute_value":
			return child
		case "quoted_attribute_value":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				if v := child.NamedChild(j); v.Kind() == "attribute_value" {
					return v
				}
			}
			return nil
		}
	}
	return nil
}

// embedded runs query and hands every captured element body to extract.
func (p *htmlParser) embedded(query *sitter.Query, root *sitter.Node, src []byte, offset int, regions []Region, extract func([]byte, int) []Region) []Region {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			node := capture.Node
			body := src[node.StartByte():node.EndByte()]
			regions = append(regions, extract(body, offset+int(node.StartByte()))...)
		}
	}
	return regions
}

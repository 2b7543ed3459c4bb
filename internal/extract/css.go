package extract

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

type cssParser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

var cssPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &cssParser{parser: parser}
	},
}

func acquireCSS() *cssParser {
	p := cssPool.Get().(*cssParser)
	p.parser.Reset()
	return p
}

func releaseCSS(p *cssParser) {
	if p != nil {
		cssPool.Put(p)
	}
}

func (p *cssParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

func closeCSSPool() {
	for range 100 {
		if p, ok := cssPool.Get().(*cssParser); ok && p != nil {
			p.Close()
		}
	}
}

// directive is an at-rule keyword with its raw parameters.
type directive struct {
	name   string
	params []byte
	offset int
}

// directives returns the at-rules named in names, in source order. The
// parameters run from the keyword to the next semicolon or brace, so an
// at-rule the grammar only half understands still yields its text.
func (p *cssParser) directives(src []byte, names ...string) []directive {
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var out []directive
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node.Kind() == "at_keyword" {
			name := text(src, node.StartByte(), node.EndByte())
			for _, want := range names {
				if name != want {
					continue
				}
				start := int(node.EndByte())
				end := paramsEnd(src, start)
				out = append(out, directive{name: name, params: src[start:end], offset: start})
			}
			return
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			walk(node.Child(i))
		}
	}
	walk(tree.RootNode())
	return out
}

// paramsEnd returns the offset of the first semicolon or brace at or after
// start that is not inside a string.
func paramsEnd(src []byte, start int) int {
	var quote byte
	for i := start; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ';' || c == '{' || c == '}':
			return i
		}
	}
	return len(src)
}

// regions returns the parameters of @apply rules.
func (p *cssParser) regions(src []byte, offset int) []Region {
	var regions []Region
	for _, d := range p.directives(src, "@apply") {
		regions = append(regions, Region{
			Content: string(d.params),
			Offset:  offset + d.offset,
			Kind:    Apply,
		})
	}
	return regions
}

// Source is an @source directive: a glob, relative to the stylesheet, that
// adds files to scan, or with Negated set, excludes them.
type Source struct {
	Pattern string
	Negated bool
}

// Sources returns the @source directives of a stylesheet.
func Sources(stylesheet []byte) []Source {
	p := acquireCSS()
	defer releaseCSS(p)

	var out []Source
	for _, d := range p.directives(stylesheet, "@source") {
		params := strings.TrimSpace(string(d.params))
		var src Source
		if rest, ok := strings.CutPrefix(params, "not "); ok {
			src.Negated = true
			params = strings.TrimSpace(rest)
		}
		if len(params) < 2 || (params[0] != '"' && params[0] != '\'') || params[len(params)-1] != params[0] {
			continue
		}
		src.Pattern = params[1 : len(params)-1]
		if src.Pattern != "" {
			out = append(out, src)
		}
	}
	return out
}

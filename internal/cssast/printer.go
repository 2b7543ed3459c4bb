package cssast

import (
	"io"
	"strings"
)

// Printer renders nodes as CSS text.
type Printer struct {
	// Minify drops all optional whitespace.
	Minify bool
	// Indent is used per nesting level when not minifying. Defaults to two
	// spaces.
	Indent string
}

// Print writes nodes to w.
func (p *Printer) Print(w io.Writer, nodes []Node) error {
	var b strings.Builder
	p.printNodes(&b, nodes, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

// Print renders nodes to a string.
func Print(nodes []Node, minify bool) string {
	var b strings.Builder
	p := &Printer{Minify: minify}
	p.printNodes(&b, nodes, 0)
	return b.String()
}

func (p *Printer) indent(b *strings.Builder, depth int) {
	if p.Minify {
		return
	}
	unit := p.Indent
	if unit == "" {
		unit = "  "
	}
	for range depth {
		b.WriteString(unit)
	}
}

func (p *Printer) printNodes(b *strings.Builder, nodes []Node, depth int) {
	for i, n := range nodes {
		if i > 0 && !p.Minify {
			_, prevDecl := nodes[i-1].(*Declaration)
			_, decl := n.(*Declaration)
			if depth == 0 && !(prevDecl && decl) {
				b.WriteByte('\n')
			}
		}
		p.printNode(b, n, depth, i == len(nodes)-1)
	}
}

func (p *Printer) printNode(b *strings.Builder, n Node, depth int, last bool) {
	switch n := n.(type) {
	case *Declaration:
		p.indent(b, depth)
		b.WriteString(n.Property)
		b.WriteByte(':')
		if !p.Minify {
			b.WriteByte(' ')
		}
		b.WriteString(n.Value)
		if n.Important {
			if !p.Minify {
				b.WriteByte(' ')
			}
			b.WriteString("!important")
		}
		if !p.Minify || !last {
			b.WriteByte(';')
		}
		p.newline(b)

	case *Rule:
		p.indent(b, depth)
		b.WriteString(n.Selector)
		p.block(b, n.Nodes, depth)

	case *AtRule:
		p.indent(b, depth)
		b.WriteByte('@')
		b.WriteString(n.Name)
		if n.Params != "" {
			b.WriteByte(' ')
			b.WriteString(n.Params)
		}
		if n.Nodes == nil {
			b.WriteByte(';')
			p.newline(b)
			return
		}
		p.block(b, n.Nodes, depth)
	}
}

func (p *Printer) block(b *strings.Builder, nodes []Node, depth int) {
	if !p.Minify {
		b.WriteByte(' ')
	}
	b.WriteByte('{')
	p.newline(b)
	p.printNodes(b, nodes, depth+1)
	p.indent(b, depth)
	b.WriteByte('}')
	p.newline(b)
}

func (p *Printer) newline(b *strings.Builder) {
	if !p.Minify {
		b.WriteByte('\n')
	}
}

package arbitrary

import "strings"

// NodeKind identifies the kind of a ValueNode
type NodeKind int

const (
	// WordNode is a run of non-separator characters, including quoted strings
	WordNode NodeKind = iota
	// FunctionNode is name(args...)
	FunctionNode
	// SeparatorNode is whitespace, commas and slashes between words
	SeparatorNode
)

// ValueNode is one node of a parsed CSS value.
type ValueNode struct {
	Kind  NodeKind
	Value string // word text, function name, or separator text
	Nodes []*ValueNode
}

// ParseValue tokenizes a CSS value into words, functions and separators.
// Unbalanced parentheses are tolerated: unclosed functions end at the end of
// input and stray closers are kept as words.
func ParseValue(input string) []*ValueNode {
	root := &ValueNode{Kind: FunctionNode}
	stack := []*ValueNode{root}
	start := 0

	current := func() *ValueNode { return stack[len(stack)-1] }
	flushWord := func(end int) {
		if end > start {
			parent := current()
			parent.Nodes = append(parent.Nodes, &ValueNode{Kind: WordNode, Value: input[start:end]})
		}
		start = end
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == '\\':
			i++

		case c == '\'' || c == '"':
			if end := closingQuote(input, i); end >= 0 {
				i = end
			} else {
				i = len(input) - 1
			}

		case isSeparator(c):
			flushWord(i)
			j := i
			for j < len(input) && isSeparator(input[j]) {
				j++
			}
			parent := current()
			parent.Nodes = append(parent.Nodes, &ValueNode{Kind: SeparatorNode, Value: input[i:j]})
			start = j
			i = j - 1

		case c == '(':
			fn := &ValueNode{Kind: FunctionNode, Value: input[start:i]}
			parent := current()
			parent.Nodes = append(parent.Nodes, fn)
			stack = append(stack, fn)
			start = i + 1

		case c == ')':
			if len(stack) == 1 {
				continue
			}
			flushWord(i)
			stack = stack[:len(stack)-1]
			start = i + 1
		}
	}

	if start < len(input) {
		parent := current()
		parent.Nodes = append(parent.Nodes, &ValueNode{Kind: WordNode, Value: input[start:]})
	}

	return root.Nodes
}

// ValueToCSS serializes nodes back into a CSS value string.
func ValueToCSS(nodes []*ValueNode) string {
	var b strings.Builder
	writeNodes(&b, nodes)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []*ValueNode) {
	for _, n := range nodes {
		switch n.Kind {
		case FunctionNode:
			b.WriteString(n.Value)
			b.WriteByte('(')
			writeNodes(b, n.Nodes)
			b.WriteByte(')')
		default:
			b.WriteString(n.Value)
		}
	}
}

// WalkValue visits every node depth-first. Returning false from visit skips
// the node's children.
func WalkValue(nodes []*ValueNode, visit func(n *ValueNode) bool) {
	for _, n := range nodes {
		if visit(n) && n.Kind == FunctionNode {
			WalkValue(n.Nodes, visit)
		}
	}
}

// TopLevelWords returns the non-separator nodes of a parsed value that are
// not nested in a function, which is what most data-type checks care about.
func TopLevelWords(nodes []*ValueNode) []*ValueNode {
	out := make([]*ValueNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind != SeparatorNode {
			out = append(out, n)
		}
	}
	return out
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', ',', '/':
		return true
	}
	return false
}

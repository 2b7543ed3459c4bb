// Package cssast is the small CSS tree that resolved utilities are built
// from: rules, at-rules and declarations.
package cssast

// Node is a node in the CSS tree.
type Node interface {
	node()
}

func (*Rule) node()        {}
func (*AtRule) node()      {}
func (*Declaration) node() {}

// Rule is a style rule: selector { nodes }.
type Rule struct {
	Selector string
	Nodes    []Node
}

// AtRule is @name params { nodes }. An at-rule without nodes prints as a
// statement, @name params;
type AtRule struct {
	Name   string
	Params string
	Nodes  []Node
}

// Declaration is property: value.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// NewRule returns a rule holding nodes.
func NewRule(selector string, nodes ...Node) *Rule {
	return &Rule{Selector: selector, Nodes: nodes}
}

// NewAtRule returns an at-rule holding nodes.
func NewAtRule(name, params string, nodes ...Node) *AtRule {
	return &AtRule{Name: name, Params: params, Nodes: nodes}
}

// Decl returns a declaration.
func Decl(property, value string) *Declaration {
	return &Declaration{Property: property, Value: value}
}

// Children returns the child nodes of n, or nil for declarations.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Rule:
		return n.Nodes
	case *AtRule:
		return n.Nodes
	}
	return nil
}

// Walk visits nodes depth-first in order. Returning false from fn skips the
// children of that node.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(Children(n), depth+1, fn)
		}
	}
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *Rule:
		return &Rule{Selector: n.Selector, Nodes: CloneAll(n.Nodes)}
	case *AtRule:
		return &AtRule{Name: n.Name, Params: n.Params, Nodes: CloneAll(n.Nodes)}
	case *Declaration:
		d := *n
		return &d
	}
	return n
}

// CloneAll deep-copies a node list.
func CloneAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// Declarations returns the declarations in n and its descendants.
func Declarations(nodes []Node) []*Declaration {
	var decls []*Declaration
	Walk(nodes, func(n Node, _ int) bool {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
		return true
	})
	return decls
}

package theme

import (
	"fmt"
	"maps"
	"slices"
)

// DependencyGraph is a directed graph of theme entries and the entries their
// values reference.
type DependencyGraph struct {
	// adjacency list: entry id -> ids it depends on
	dependencies map[string][]string
	// all entry ids in the graph
	nodes map[string]bool
}

// BuildDependencyGraph builds the graph for every entry of t. References
// that do not name an existing entry are not edges; ResolveAliases reports
// them.
func BuildDependencyGraph(t *Theme) *DependencyGraph {
	graph := &DependencyGraph{
		dependencies: make(map[string][]string),
		nodes:        make(map[string]bool),
	}

	for ns, values := range t.namespaces {
		for key := range values {
			graph.nodes[entryID(ns, key)] = true
		}
	}

	for ns, values := range t.namespaces {
		for key, value := range values {
			id := entryID(ns, key)
			for _, ref := range extractReferences(value) {
				dep, ok := t.referenceID(ref)
				if !ok {
					continue
				}
				graph.dependencies[id] = append(graph.dependencies[id], dep)
			}
		}
	}

	return graph
}

// sortedNodes keeps traversal order, and so cycle reports, deterministic.
func (g *DependencyGraph) sortedNodes() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// FindCycle returns the cycle path if one exists, or nil if no cycle
func (g *DependencyGraph) FindCycle() []string {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)

	for _, node := range g.sortedNodes() {
		if cycle := g.findCycleDFS(node, visited, recStack, nil); cycle != nil {
			return cycle
		}
	}

	return nil
}

func (g *DependencyGraph) findCycleDFS(node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := slices.Index(path, node)
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		return append(slices.Clone(path[cycleStart:]), node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range g.dependencies[node] {
		if cycle := g.findCycleDFS(dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// TopologicalSort returns entry ids with dependencies first.
// Returns a CircularReferenceError if the graph contains a cycle.
func (g *DependencyGraph) TopologicalSort() ([]string, error) {
	if cycle := g.FindCycle(); cycle != nil {
		return nil, NewCircularReferenceError("", cycle)
	}

	visited := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))

	for _, node := range g.sortedNodes() {
		if !visited[node] {
			g.topologicalSortDFS(node, visited, &result)
		}
	}

	return result, nil
}

func (g *DependencyGraph) topologicalSortDFS(node string, visited map[string]bool, stack *[]string) {
	visited[node] = true

	for _, dep := range g.dependencies[node] {
		if !visited[dep] {
			g.topologicalSortDFS(dep, visited, stack)
		}
	}

	*stack = append(*stack, node)
}

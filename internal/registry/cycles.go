package registry

import (
	"sort"
)

// Graph maps an item name to the registry dependencies it declares, within a
// single framework.
type Graph map[string][]string

// GraphOf builds the registry dependency graph of items.
func GraphOf(items []*Item) Graph {
	g := make(Graph, len(items))
	for _, it := range items {
		g[it.Name] = it.RegistryDependencies
	}
	return g
}

// Missing returns, per item, the registry dependencies that name no item in
// the graph. Items with none are omitted.
func (g Graph) Missing() map[string][]string {
	out := make(map[string][]string)
	for _, name := range g.names() {
		for _, dep := range g[name] {
			if _, ok := g[dep]; !ok {
				out[name] = append(out[name], dep)
			}
		}
	}
	return out
}

// Cycles returns every dependency cycle found by a depth-first walk, each as
// the path that closes it (e.g., [a b a]). The walk visits names in sorted
// order so the result is deterministic. Dangling edges are ignored.
func (g Graph) Cycles() [][]string {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(g))
	var stack []string
	var cycles [][]string

	var visit func(name string)
	visit = func(name string) {
		state[name] = inProgress
		stack = append(stack, name)

		deps := append([]string(nil), g[name]...)
		sort.Strings(deps)
		for _, dep := range deps {
			if _, ok := g[dep]; !ok {
				continue
			}
			switch state[dep] {
			case unvisited:
				visit(dep)
			case inProgress:
				cycles = append(cycles, closePath(stack, dep))
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done
	}

	for _, name := range g.names() {
		if state[name] == unvisited {
			visit(name)
		}
	}
	return cycles
}

// closePath returns the tail of stack starting at name, with name appended.
func closePath(stack []string, name string) []string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == name {
			path := append([]string(nil), stack[i:]...)
			return append(path, name)
		}
	}
	return []string{name, name}
}

func (g Graph) names() []string {
	names := make([]string, 0, len(g))
	for n := range g {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

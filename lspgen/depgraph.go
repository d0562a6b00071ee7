package lspgen

import (
	"fmt"
	"sort"
)

// buildNodeDependencies returns every emittable node (struct, enum, and
// non-recursive alias) and, for each, the set of other nodes it depends
// on.
func (g *Generator) buildNodeDependencies() ([]Node, map[Node]map[Node]bool) {
	var nodes []Node
	for name := range g.structNames {
		nodes = append(nodes, Node{KindStruct, name})
	}
	for name := range g.enumNames {
		nodes = append(nodes, Node{KindEnum, name})
	}
	for name := range g.aliasNames {
		if !recursiveAliases[name] {
			nodes = append(nodes, Node{KindAlias, name})
		}
	}
	sortNodes(nodes)

	nodeSet := make(map[Node]bool, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = true
	}

	deps := make(map[Node]map[Node]bool, len(nodes))
	for _, n := range nodes {
		deps[n] = map[Node]bool{}
	}

	for name := range g.structNames {
		node := Node{KindStruct, name}
		for dep := range g.structDependencies(name) {
			deps[node][dep] = true
		}
	}

	for name, aliasDef := range g.model.Aliases {
		if recursiveAliases[name] {
			continue
		}
		node := Node{KindAlias, name}
		aliasDeps := map[Node]bool{}
		g.walkTypeRefs(aliasDef.TypeExpr, name, aliasDeps)
		delete(aliasDeps, node)
		for dep := range aliasDeps {
			deps[node][dep] = true
		}
	}

	for _, nodeDeps := range deps {
		for dep := range nodeDeps {
			if !nodeSet[dep] {
				delete(nodeDeps, dep)
			}
		}
	}

	return nodes, deps
}

// buildNodeOrder runs topologicalOrder over this generator's dependency
// graph.
func (g *Generator) buildNodeOrder() []Node {
	nodes, deps := g.buildNodeDependencies()
	return g.topologicalOrder(nodes, deps)
}

func sortNodes(nodes []Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Less(nodes[j]) })
}

// topologicalOrder runs Kahn's algorithm over nodes/deps, breaking ties at
// every step (the initial zero-indegree set, and every time a node's
// indegree reaches zero mid-run) by Node.Less so that the output order is
// a pure function of the graph and never depends on map iteration order.
// A leftover cycle (which a well-formed metaModel should never produce) is
// appended in sorted order rather than silently dropped, so a malformed
// schema still yields a complete, if not fully-ordered, header — but the
// anomaly is recorded in diagnostics rather than passing silently.
func (g *Generator) topologicalOrder(nodes []Node, deps map[Node]map[Node]bool) []Node {
	reverse := make(map[Node]map[Node]bool, len(nodes))
	indegree := make(map[Node]int, len(nodes))
	for _, n := range nodes {
		reverse[n] = map[Node]bool{}
		indegree[n] = 0
	}

	for _, n := range nodes {
		for dep := range deps[n] {
			if _, ok := indegree[dep]; !ok {
				continue
			}
			reverse[dep][n] = true
			indegree[n]++
		}
	}

	var queue []Node
	for _, n := range nodes {
		if indegree[n] == 0 {
			queue = append(queue, n)
		}
	}
	sortNodes(queue)

	var ordered []Node
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		ordered = append(ordered, node)

		var unblocked []Node
		for next := range reverse[node] {
			indegree[next]--
			if indegree[next] == 0 {
				unblocked = append(unblocked, next)
			}
		}
		sortNodes(unblocked)
		queue = mergeSortedNodeQueues(queue, unblocked)
	}

	if len(ordered) != len(nodes) {
		existing := make(map[Node]bool, len(ordered))
		for _, n := range ordered {
			existing[n] = true
		}
		remaining := make([]Node, 0, len(nodes)-len(ordered))
		for _, n := range nodes {
			if !existing[n] {
				remaining = append(remaining, n)
			}
		}
		sortNodes(remaining)
		for _, n := range remaining {
			g.diag.AddGraphAnomaly(fmt.Sprintf(
				"%c:%s: could not be placed in dependency order (cycle or dangling reference); appended out of order.",
				n.Kind, n.Name))
		}
		ordered = append(ordered, remaining...)
	}
	return ordered
}

// mergeSortedNodeQueues appends unblocked (already sorted) to the back of
// queue, preserving queue's FIFO order — Kahn's algorithm processes nodes
// in discovery order, not globally re-sorted order, so newly-unblocked
// nodes join the back of the line rather than being merged in.
func mergeSortedNodeQueues(queue, unblocked []Node) []Node {
	return append(queue, unblocked...)
}

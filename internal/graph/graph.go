// Package graph holds the small, generic, index-based graph algorithms
// shared by the Input Data Graph and the per-example DAG: both are
// acyclic by construction (spec section 9), so both can reuse the same
// adjacency bookkeeping and a topological-order path search instead of a
// general shortest-path algorithm. Node identity is a plain integer,
// matching the teacher's preference (internal/ictiobus/automaton) for
// index-based state rather than pointer graphs. Intersection's product
// nodes are renumbered in discovery order (package idg, package dag), so
// ascending node id is not itself a valid topological order once a graph
// has been through Intersect; ShortestPathDAG computes a real topological
// order with Kahn's algorithm instead of assuming one.
package graph

import (
	"sort"

	"github.com/dekarrin/synox/internal/util"
)

// Node is an opaque node handle, local to whichever graph owns it.
type Node = int

// Edge is a directed node pair.
type Edge [2]Node

// AdjacencyMap builds a map from source node to the list of edges leaving
// it, in deterministic order, from a set of edges given as a map keyed by
// Edge (the representation both idg.Graph and dag.Dag use for their edge
// sets).
func AdjacencyMap[V any](edges map[Edge]V) map[Node][]Node {
	adj := make(map[Node][]Node)
	for _, e := range util.SortedKeysFunc(edges, lessEdge) {
		adj[e[0]] = append(adj[e[0]], e[1])
	}
	return adj
}

// InvertAdjacencyMap returns the reverse of adj: for every v in adj[u], the
// result maps v to a list that includes u.
func InvertAdjacencyMap(adj map[Node][]Node) map[Node][]Node {
	inv := make(map[Node][]Node)
	for _, u := range util.SortedKeys(adj) {
		for _, v := range adj[u] {
			inv[v] = append(inv[v], u)
		}
	}
	return inv
}

func lessEdge(a, b Edge) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// ShortestPathDAG finds the minimum-weight path from start to finish over
// adj, where weight(u, v) is supplied by the caller. The graph is acyclic
// by construction (spec section 9), so a single relaxation pass in
// topological order suffices; no Bellman-Ford-style repeated relaxation is
// needed. The order is computed with Kahn's algorithm over the subgraph
// reachable from start rather than assumed from node id, since
// intersection's discovery-order renumbering does not guarantee ascending
// ids already fall in edge-direction order (see the package doc comment).
//
// Returns the edge sequence of the minimum path and true, or (nil, false) if
// finish is not reachable from start. A reachable start == finish returns a
// non-nil empty slice and true: the empty-output boundary case (spec section
// 8) is reachability with zero edges, not failure.
func ShortestPathDAG(start, finish Node, adj map[Node][]Node, weight func(u, v Node) int) ([]Edge, bool) {
	order := topologicalOrder(start, adj)

	dist := map[Node]int{start: 0}
	prev := map[Node]Edge{}

	for _, u := range order {
		du, ok := dist[u]
		if !ok {
			continue
		}
		for _, v := range adj[u] {
			cand := du + weight(u, v)
			if existing, ok := dist[v]; !ok || cand < existing {
				dist[v] = cand
				prev[v] = Edge{u, v}
			}
		}
	}

	if _, ok := dist[finish]; !ok {
		return nil, false
	}

	path := []Edge{}
	cur := finish
	for cur != start {
		e, ok := prev[cur]
		if !ok {
			return nil, false
		}
		path = append([]Edge{e}, path...)
		cur = e[0]
	}
	return path, true
}

// collectNodes returns every node reachable from start, in ascending order
// of node id. Used only where a deterministic enumeration of the reachable
// set is needed, not as a topological order (see topologicalOrder).
func collectNodes(start Node, adj map[Node][]Node) []Node {
	seen := map[Node]bool{start: true}
	queue := []Node{start}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, v := range adj[u] {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	nodes := make([]Node, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	return nodes
}

// topologicalOrder returns a topological ordering of every node reachable
// from start, via Kahn's algorithm (repeatedly emitting a zero-remaining-
// indegree node from the reachable subgraph). Ties among simultaneously
// available nodes are broken by ascending node id, keeping ranking
// deterministic (spec section 9, "Iteration determinism") independent of
// whichever order Intersect happened to discover product nodes in.
func topologicalOrder(start Node, adj map[Node][]Node) []Node {
	reachable := collectNodes(start, adj)
	inSet := make(map[Node]bool, len(reachable))
	for _, u := range reachable {
		inSet[u] = true
	}

	indeg := make(map[Node]int, len(reachable))
	for _, u := range reachable {
		indeg[u] = 0
	}
	for _, u := range reachable {
		for _, v := range adj[u] {
			if inSet[v] {
				indeg[v]++
			}
		}
	}

	var avail []Node
	for _, u := range reachable {
		if indeg[u] == 0 {
			avail = append(avail, u)
		}
	}
	sort.Ints(avail)

	order := make([]Node, 0, len(reachable))
	for len(avail) > 0 {
		u := avail[0]
		avail = avail[1:]
		order = append(order, u)
		for _, v := range adj[u] {
			if !inSet[v] {
				continue
			}
			indeg[v]--
			if indeg[v] == 0 {
				avail = append(avail, v)
				sort.Ints(avail)
			}
		}
	}
	return order
}

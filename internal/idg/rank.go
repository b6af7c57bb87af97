package idg

import "github.com/dekarrin/synox/internal/graph"

// Rank computes, for every node of g, the per-node rank described in spec
// section 4.6: the sum, over every (in-edge, out-edge) pair incident on the
// node, of the product of the two edges' weights. An edge's weight is the
// size of its token-witness set times its distance factor (the average
// absolute difference of its endpoints' labels across rows). Nodes that are
// only ever a source or only ever a sink simply have no pairs to sum and
// rank 0. The Start/End sentinel nodes also rank 0: their only in-edge
// (Start) or only out-edge (End) is a zero-length self-loop, whose distance
// factor, and so weight, is 0.
func (g *Graph) Rank() map[graph.Node]float64 {
	inEdges := map[graph.Node][]graph.Edge{}
	outEdges := map[graph.Node][]graph.Edge{}
	for _, e := range g.Edges() {
		outEdges[e[0]] = append(outEdges[e[0]], e)
		inEdges[e[1]] = append(inEdges[e[1]], e)
	}

	weight := make(map[graph.Edge]float64, len(g.tokens))
	for e := range g.tokens {
		weight[e] = float64(len(g.tokens[e])) * g.distanceFactor(e)
	}

	ranks := map[graph.Node]float64{}
	for _, v := range g.Nodes() {
		var rank float64
		for _, ie := range inEdges[v] {
			for _, oe := range outEdges[v] {
				rank += weight[ie] * weight[oe]
			}
		}
		ranks[v] = rank
	}
	return ranks
}

// distanceFactor sums, over every (row, col) cell the edge's endpoints are
// both labelled in, the absolute difference between those labels, and
// divides the sum by the table's row count (or, when that count is unset,
// as on a graph returned directly by Intersect, by the number of such
// cells).
func (g *Graph) distanceFactor(e graph.Edge) float64 {
	left, right := g.labels[e[0]], g.labels[e[1]]
	var sum float64
	var count int
	for id, l := range left {
		if r, ok := right[id]; ok {
			diff := r - l
			if diff < 0 {
				diff = -diff
			}
			sum += float64(diff)
			count++
		}
	}
	divisor := g.numRows
	if divisor == 0 {
		divisor = count
	}
	if divisor == 0 {
		return 0
	}
	return sum / float64(divisor)
}

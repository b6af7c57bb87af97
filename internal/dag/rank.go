package dag

import (
	"github.com/dekarrin/synox/internal/graph"
	"github.com/dekarrin/synox/internal/idg"
	"github.com/dekarrin/synox/internal/program"
	"github.com/dekarrin/synox/internal/synerr"
)

// epsilon and kappa are the scoring constants of spec section 4.6: a
// ConstantString's score is its squared length times epsilon, a
// SubstringSet's score is its expected squared length times kappa. kappa
// outweighs epsilon so that a generalizing substring expression is always
// preferred over an equally long constant when both are available.
const (
	epsilon = 1
	kappa   = 15
)

// candidateScore is the best-scoring extraction for one DAG edge: its
// numeric score and the executable Step it compiles to.
type candidateScore struct {
	score float64
	step  program.Step
	ok    bool
}

// TopRanked ranks every candidate on every edge of d against the node ranks
// of g, then extracts the maximum-score start-to-finish path as an
// executable Program (spec section 4.6-4.7). It returns a NoConsistentProgram
// error if d's start and finish are not connected by any edge.
func TopRanked(d *Dag, g *idg.Graph) (*program.Program, error) {
	ranks := g.Rank()

	best := map[graph.Edge]candidateScore{}
	for _, e := range d.Edges() {
		cs := bestCandidate(d.Candidates(e), g, ranks)
		if cs.ok {
			best[e] = cs
		}
	}

	edgeSet := make(map[graph.Edge][]ExprSet, len(best))
	for e := range best {
		edgeSet[e] = nil
	}
	adj := graph.AdjacencyMap(edgeSet)

	weight := func(u, v graph.Node) int {
		cs := best[graph.Edge{u, v}]
		return -int(cs.score)
	}

	path, ok := graph.ShortestPathDAG(d.Start(), d.Finish(), adj, weight)
	if !ok {
		return nil, synerr.NoConsistentProgram()
	}

	steps := make([]program.Step, 0, len(path))
	for _, e := range path {
		steps = append(steps, best[e].step)
	}
	return program.New(steps), nil
}

// bestCandidate scores every ExprSet attached to one edge and returns the
// highest-scoring one, compiled to an executable Step.
func bestCandidate(candidates []ExprSet, g *idg.Graph, ranks map[graph.Node]float64) candidateScore {
	var best candidateScore
	for _, c := range candidates {
		cs, ok := scoreExpr(c, g, ranks)
		if !ok {
			continue
		}
		if !best.ok || cs.score > best.score {
			best = cs
		}
	}
	return best
}

func scoreExpr(e ExprSet, g *idg.Graph, ranks map[graph.Node]float64) (candidateScore, bool) {
	switch e.kind {
	case exprConstant:
		score := float64(len(e.str) * len(e.str) * epsilon)
		return candidateScore{score: score, step: program.ConstantStep(e.str), ok: true}, true
	case exprSubstring:
		return scoreSubstring(e, g, ranks)
	default:
		panic("dag: unhandled ExprSet kind")
	}
}

// scoreSubstring picks the single highest-ranked left and right candidate
// independently, computes the expected substring length those candidates
// witness across every row of col, and scores the result. A candidate is
// rejected if any row yields a non-positive length: the original source
// treats this as an invalid pairing rather than filtering it in advance
// (spec section 4.6, see DESIGN.md for the accepted Open Question).
func scoreSubstring(e ExprSet, g *idg.Graph, ranks map[graph.Node]float64) (candidateScore, bool) {
	bestL := pickBest(e.left, ranks)
	bestR := pickBest(e.right, ranks)

	rows := g.NumRows()
	var sum, count int
	for row := 0; row < rows; row++ {
		id := idg.Id{Row: row, Col: e.col}
		l, lok := resolvePosAt(bestL, g, id)
		r, rok := resolvePosAt(bestR, g, id)
		if !lok || !rok {
			continue
		}
		diff := r - l
		if diff <= 0 {
			return candidateScore{}, false
		}
		sum += diff
		count++
	}
	if count == 0 {
		return candidateScore{}, false
	}
	divisor := rows
	if divisor == 0 {
		divisor = count
	}
	expectedLen := sum / divisor

	left := samplePosition(bestL, g)
	right := samplePosition(bestR, g)
	score := float64(expectedLen * expectedLen * kappa)
	return candidateScore{score: score, step: program.SubstringStep(e.col, left, right)}, true
}

// pickBest returns the highest-ranked member of a PositionSet, breaking ties
// by the deterministic order of pos.sorted (ConstantPosition before
// GraphNode, ascending within each kind): a ConstantPosition always carries
// rank 0, so it only wins when every GraphNode candidate also ranks 0.
func pickBest(s posSet, ranks map[graph.Node]float64) pos {
	var best pos
	var bestRank float64
	first := true
	for _, p := range s.sorted() {
		r := rankOf(p, ranks)
		if first || r > bestRank {
			best = p
			bestRank = r
			first = false
		}
	}
	return best
}

func rankOf(p pos, ranks map[graph.Node]float64) float64 {
	if p.kind == posConstant {
		return 0
	}
	return ranks[p.node]
}

// resolvePosAt resolves p to a concrete StringIndex for the given row, if
// p denotes a position labelled there: a ConstantPosition always resolves,
// a GraphNode resolves only if g's Input Data Graph happens to label it at
// that (row, col).
func resolvePosAt(p pos, g *idg.Graph, id idg.Id) (int, bool) {
	if p.kind == posConstant {
		return p.const_, true
	}
	idx, ok := g.Labels(p.node)[id]
	return idx, ok
}

// samplePosition converts a PositionSet candidate into the executable
// Position it compiles to. A ConstantPosition is itself a Position. A
// GraphNode is resolved to a concrete token match by looking at the node's
// incident edges in the Input Data Graph, via the same adjacency/inverse-
// adjacency primitives package graph exposes for the IDG and DAG path
// search: the first in-edge (ascending source-node order) is read as the
// End of its token witness, and failing that the first out-edge (ascending
// target-node order) is read as the Start of its (spec section 9,
// "Position sampling for a shared node").
func samplePosition(p pos, g *idg.Graph) program.Position {
	if p.kind == posConstant {
		return program.ConstantPosition(p.const_)
	}

	edgeSet := make(map[graph.Edge]bool, len(g.Edges()))
	for _, e := range g.Edges() {
		edgeSet[e] = true
	}
	adj := graph.AdjacencyMap(edgeSet)
	inv := graph.InvertAdjacencyMap(adj)

	for _, u := range inv[p.node] {
		to := g.TokensOn(graph.Edge{u, p.node})[0]
		return program.Match(to.Tok, to.Occ, program.End)
	}
	for _, v := range adj[p.node] {
		to := g.TokensOn(graph.Edge{p.node, v})[0]
		return program.Match(to.Tok, to.Occ, program.Start)
	}

	// Every IDG node reaching ranking is an endpoint of at least one edge
	// (the Start/End sentinel self-loops included); a node with none is a
	// ranking bug, not a caller mistake (spec section 7, Internal/
	// Unreachable).
	panic("dag: ranked graph node has no incident edges")
}

// Package dag implements the per-example DAG of spec section 4.3: a graph
// with one node per output offset, where an edge (i, j) carries every
// SubstringExpressionSet that could have produced output[i:j]. Learning
// across several paired examples intersects their DAGs exactly the way
// idg.Graph intersects per-cell graphs (package idg), and the result is
// ranked and reduced to a single program by rank.go.
package dag

import (
	"strings"

	"github.com/dekarrin/synox/internal/graph"
	"github.com/dekarrin/synox/internal/idg"
	"github.com/dekarrin/synox/internal/util"
)

// Dag is the per-(set of)-example(s) DAG. For a single example Start is
// node 0 and Finish is the length of the output string the DAG was built
// for; after intersecting several examples both are the renumbered nodes
// standing for the pair of Starts and the pair of Finishes.
type Dag struct {
	start  graph.Node
	finish graph.Node
	edges  map[graph.Edge][]ExprSet
}

func lessEdge(a, b graph.Edge) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// New builds the DAG for a single example: input is the row of column
// strings, output is the desired result, g is the Input Data Graph built
// over the whole table, and row identifies which row of g this example
// corresponds to.
func New(input []string, output string, g *idg.Graph, row int) *Dag {
	n := len(output)
	edges := map[graph.Edge][]ExprSet{}

	for i := 0; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			sub := output[i:j]
			candidates := []ExprSet{ConstantString(sub)}
			for col, s := range input {
				id := idg.Id{Row: row, Col: col}
				for _, l := range findOverlapping(s, sub) {
					r := l + len(sub)
					candidates = append(candidates, generateSubstringSet(id, l+1, r+1, col, g))
				}
			}
			edges[graph.Edge{i, j}] = candidates
		}
	}

	return &Dag{start: 0, finish: n, edges: edges}
}

// findOverlapping returns every 0-based start offset at which sub occurs in
// s, including overlapping occurrences: after each hit the search cursor
// advances by only 1 byte, not len(sub), so "aa" in "aaa" yields both 0 and
// 1 (spec section 4.4, "every occurrence, including overlapping ones").
func findOverlapping(s, sub string) []int {
	if sub == "" {
		return nil
	}
	var offsets []int
	from := 0
	for from+len(sub) <= len(s) {
		idx := strings.Index(s[from:], sub)
		if idx < 0 {
			break
		}
		offsets = append(offsets, from+idx)
		from = from + idx + 1
	}
	return offsets
}

// Learn folds New's result for every paired example into a single DAG via
// left-to-right Intersect, mirroring idg.New's fold over per-cell graphs.
func Learn(examples []*Dag) *Dag {
	if len(examples) == 0 {
		return &Dag{start: 0, finish: 0, edges: map[graph.Edge][]ExprSet{}}
	}
	acc := examples[0]
	for _, d := range examples[1:] {
		acc = acc.Intersect(d)
	}
	return acc
}

// Intersect returns the product DAG of d and other: node identities are
// renumbered pairs, an edge survives only if the corresponding edges of d
// and other share at least one intersecting ExprSet candidate (spec section
// 4.5), and Start/Finish map to the renumbered pair of both DAGs' Start and
// Finish nodes.
func (d *Dag) Intersect(other *Dag) *Dag {
	renumber := map[[2]graph.Node]graph.Node{}
	curr := 0
	number := func(a, b graph.Node) graph.Node {
		key := [2]graph.Node{a, b}
		if v, ok := renumber[key]; ok {
			return v
		}
		v := curr
		curr++
		renumber[key] = v
		return v
	}

	edges := map[graph.Edge][]ExprSet{}

	e1s := util.SortedKeysFunc(d.edges, lessEdge)
	e2s := util.SortedKeysFunc(other.edges, lessEdge)

	for _, e1 := range e1s {
		for _, e2 := range e2s {
			common := intersectCandidates(d.edges[e1], other.edges[e2])
			if len(common) == 0 {
				continue
			}
			vs := number(e1[0], e2[0])
			vf := number(e1[1], e2[1])
			edges[graph.Edge{vs, vf}] = common
		}
	}

	return &Dag{
		start:  number(d.start, other.start),
		finish: number(d.finish, other.finish),
		edges:  edges,
	}
}

// intersectCandidates tries every pair of candidates from a and b and keeps
// whichever pairs intersect successfully. Duplicate ConstantString results
// across different source pairs are deduped by string value.
func intersectCandidates(a, b []ExprSet) []ExprSet {
	var out []ExprSet
	seenConst := map[string]bool{}
	for _, x := range a {
		for _, y := range b {
			r, ok := x.Intersect(y)
			if !ok {
				continue
			}
			if r.kind == exprConstant {
				if seenConst[r.str] {
					continue
				}
				seenConst[r.str] = true
			}
			out = append(out, r)
		}
	}
	return out
}

// Edges returns every edge of d, sorted in ascending (left, right) order.
func (d *Dag) Edges() []graph.Edge {
	return util.SortedKeysFunc(d.edges, lessEdge)
}

// Candidates returns the ExprSet candidates attached to edge e.
func (d *Dag) Candidates(e graph.Edge) []ExprSet {
	return d.edges[e]
}

// Start returns d's start node.
func (d *Dag) Start() graph.Node { return d.start }

// Finish returns d's finish node.
func (d *Dag) Finish() graph.Node { return d.finish }

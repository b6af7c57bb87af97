// Package idg implements the Input Data Graph (spec section 4.2): a graph
// of positions, shared across every row and column of the input table,
// that survives intersection only where a position is describable the
// same way everywhere. Per-example DAGs (package dag) reference IDG nodes
// as one of the ways to denote a substring boundary.
package idg

import (
	"github.com/dekarrin/synox/internal/graph"
	"github.com/dekarrin/synox/internal/token"
	"github.com/dekarrin/synox/internal/util"
)

// Id identifies one cell of the input table.
type Id struct {
	Row, Col int
}

// TokenOcc is a single (Token, Occurrence) witness: evidence that Tok, on
// its Occ-th match, produced the edge it is attached to.
type TokenOcc struct {
	Tok token.Token
	Occ token.Occurrence
}

// Graph is an Input Data Graph. Node identity is a plain int; labels map a
// node to the StringIndex it occupies in every (row, col) it can be
// consistently positioned in.
type Graph struct {
	labels  map[graph.Node]map[Id]int
	tokens  map[graph.Edge][]TokenOcc
	numRows int
}

func lessEdge(a, b graph.Edge) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// New builds the Input Data Graph for a full input table: rows is a
// sequence of rows, each a fixed-arity sequence of column strings. Every
// (row, col) cell contributes its own per-string graph (buildUnit), and
// the whole table's graph is the left-fold intersection of all of them, in
// row-major order. The result's nodes are exactly the positions that can
// be labelled consistently across every cell of the table.
func New(rows [][]string) *Graph {
	var acc *Graph
	for r, row := range rows {
		for c, s := range row {
			unit := buildUnit(Id{Row: r, Col: c}, s)
			if acc == nil {
				acc = unit
			} else {
				acc = acc.Intersect(unit)
			}
		}
	}
	if acc == nil {
		acc = &Graph{labels: map[graph.Node]map[Id]int{}, tokens: map[graph.Edge][]TokenOcc{}}
	}
	acc.numRows = len(rows)
	return acc
}

// buildUnit constructs the per-string IDG for a single (row, col) cell: one
// node per position 1..len(s)+1, with every token in the vocabulary (plus
// the literal separators found in s) contributing witnessed edges.
func buildUnit(id Id, s string) *Graph {
	toks := append(append([]token.Token{}, token.Vocabulary()...), literalCandidates(s)...)

	tokens := map[graph.Edge][]TokenOcc{}
	for _, tok := range toks {
		matches := token.Matches(tok, s)
		count := token.Count(matches)
		for k, m := range matches {
			posOcc := token.Occurrence(k + 1)
			negOcc := token.Mirror(posOcc, count)
			edge := graph.Edge{m.Left, m.Right}
			tokens[edge] = append(tokens[edge], TokenOcc{Tok: tok, Occ: posOcc}, TokenOcc{Tok: tok, Occ: negOcc})
		}
	}

	n := len(s)
	labels := make(map[graph.Node]map[Id]int, n+1)
	for pos := 1; pos <= n+1; pos++ {
		labels[pos] = map[Id]int{id: pos}
	}

	return &Graph{labels: labels, tokens: tokens}
}

// literalCandidates returns the Literal tokens considered part of s's local
// vocabulary: one per distinct maximal run of non-alphanumeric characters
// (punctuation and whitespace), since those are the separators that
// recur across rows of spreadsheet-style data (", ", ".", "-", " ", ...).
// See DESIGN.md for why this rule was chosen over enumerating every
// possible literal substring.
func literalCandidates(s string) []token.Token {
	runs := token.Matches(token.Token{Kind: token.NotAlphanumeric}, s)
	seen := map[string]bool{}
	var lits []string
	for _, m := range runs {
		lit := s[m.Left-1 : m.Right-1]
		if !seen[lit] {
			seen[lit] = true
			lits = append(lits, lit)
		}
	}
	toks := make([]token.Token, len(lits))
	for i, lit := range lits {
		toks[i] = token.NewLiteral(lit)
	}
	return toks
}

// Intersect returns the product of g and other: node identities are
// renumbered pairs (v1, v2), and a product edge survives only if the
// corresponding edges of g and other share at least one (Token,
// Occurrence) witness (spec section 4.2, "Intersection").
func (g *Graph) Intersect(other *Graph) *Graph {
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

	tokens := map[graph.Edge][]TokenOcc{}
	labels := map[graph.Node]map[Id]int{}

	e1s := util.SortedKeysFunc(g.tokens, lessEdge)
	e2s := util.SortedKeysFunc(other.tokens, lessEdge)

	for _, e1 := range e1s {
		for _, e2 := range e2s {
			common := intersectTokenOccs(g.tokens[e1], other.tokens[e2])
			if len(common) == 0 {
				continue
			}
			vs := number(e1[0], e2[0])
			vf := number(e1[1], e2[1])
			tokens[graph.Edge{vs, vf}] = common
			mergeLabels(labels, vs, g.labels[e1[0]])
			mergeLabels(labels, vs, other.labels[e2[0]])
			mergeLabels(labels, vf, g.labels[e1[1]])
			mergeLabels(labels, vf, other.labels[e2[1]])
		}
	}

	return &Graph{labels: labels, tokens: tokens}
}

func mergeLabels(dst map[graph.Node]map[Id]int, v graph.Node, src map[Id]int) {
	m, ok := dst[v]
	if !ok {
		m = map[Id]int{}
		dst[v] = m
	}
	for id, idx := range src {
		m[id] = idx
	}
}

func intersectTokenOccs(a, b []TokenOcc) []TokenOcc {
	set := make(map[TokenOcc]bool, len(b))
	for _, x := range b {
		set[x] = true
	}
	var out []TokenOcc
	seen := make(map[TokenOcc]bool, len(a))
	for _, x := range a {
		if set[x] && !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}

// Edges returns every edge of g, sorted in ascending (left, right) order.
func (g *Graph) Edges() []graph.Edge {
	return util.SortedKeysFunc(g.tokens, lessEdge)
}

// Nodes returns every node appearing in g's label table, sorted ascending.
func (g *Graph) Nodes() []graph.Node {
	return util.SortedKeys(g.labels)
}

// TokensOn returns the (Token, Occurrence) witnesses of edge e, in the
// deterministic order they were discovered during construction.
func (g *Graph) TokensOn(e graph.Edge) []TokenOcc {
	return g.tokens[e]
}

// Labels returns node v's (Id -> StringIndex) label table.
func (g *Graph) Labels(v graph.Node) map[Id]int {
	return g.labels[v]
}

// NodesLabeledAt returns every node labelled at exactly idx for id, in
// ascending node order.
func (g *Graph) NodesLabeledAt(id Id, idx int) []graph.Node {
	var nodes []graph.Node
	for _, v := range g.Nodes() {
		if lbl, ok := g.labels[v][id]; ok && lbl == idx {
			nodes = append(nodes, v)
		}
	}
	return nodes
}

// NumRows returns the total number of input rows the graph was built
// from (paired examples' inputs plus unpaired rows), used as the divisor
// when averaging an expected substring length across rows.
func (g *Graph) NumRows() int {
	return g.numRows
}

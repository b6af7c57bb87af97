package dag

import (
	"fmt"

	"github.com/dekarrin/synox/internal/graph"
	"github.com/dekarrin/synox/internal/idg"
)

// posKind tags a candidate position in a SubstringSet's L or R set.
type posKind int

const (
	posConstant posKind = iota
	posNode
)

// pos is one candidate denotation of a boundary position: either a fixed
// StringIndex or a node of the shared Input Data Graph. It is comparable so
// it can live directly as a set-map key (spec section 9: PositionSet
// candidates order ConstantPosition before GraphNode, and GraphNodes by
// ascending id).
type pos struct {
	kind   posKind
	const_ int
	node   graph.Node
}

func constPos(k int) pos       { return pos{kind: posConstant, const_: k} }
func nodePos(v graph.Node) pos { return pos{kind: posNode, node: v} }

func (p pos) String() string {
	if p.kind == posConstant {
		return fmt.Sprintf("k=%d", p.const_)
	}
	return fmt.Sprintf("node=%d", p.node)
}

// less orders pos values per spec section 9: constants before nodes, then
// ascending within each kind.
func (p pos) less(q pos) bool {
	if p.kind != q.kind {
		return p.kind == posConstant
	}
	if p.kind == posConstant {
		return p.const_ < q.const_
	}
	return p.node < q.node
}

// posSet is a PositionSet: a set of candidate denotations of one boundary.
type posSet map[pos]bool

func newPosSet(ps ...pos) posSet {
	s := make(posSet, len(ps))
	for _, p := range ps {
		s[p] = true
	}
	return s
}

func (s posSet) intersect(other posSet) posSet {
	out := posSet{}
	for p := range s {
		if other[p] {
			out[p] = true
		}
	}
	return out
}

// sorted returns the set's members in the deterministic order used to pick
// the highest-ranked candidate during extraction.
func (s posSet) sorted() []pos {
	out := make([]pos, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// exprKind tags an ExprSet as one of the two SubstringExpression shapes.
type exprKind int

const (
	exprConstant exprKind = iota
	exprSubstring
)

// ExprSet is a SubstringExpressionSet (spec section 4.3): either the single
// ConstantString candidate, or a SubstringSet over one input column with a
// set of candidate left and right boundary positions.
type ExprSet struct {
	kind  exprKind
	str   string
	col   int
	left  posSet
	right posSet
}

// ConstantString returns the ExprSet denoting the single literal s.
func ConstantString(s string) ExprSet {
	return ExprSet{kind: exprConstant, str: s}
}

// generateSubstringSet builds the SubstringSet ExprSet witnessing that
// output column was produced by the substring s[l:r] (1-based inclusive
// StringIndex bounds) of row id's col-th field, per spec section 4.4: the
// left and right boundaries are each denoted by the constant index itself,
// plus every node of the shared Input Data Graph that g happens to label
// with that same index at this (row, col).
func generateSubstringSet(id idg.Id, l, r, col int, g *idg.Graph) ExprSet {
	left := newPosSet(constPos(l))
	for _, v := range g.NodesLabeledAt(id, l) {
		left[nodePos(v)] = true
	}
	right := newPosSet(constPos(r))
	for _, v := range g.NodesLabeledAt(id, r) {
		right[nodePos(v)] = true
	}
	return ExprSet{kind: exprSubstring, col: col, left: left, right: right}
}

// Intersect returns the ExprSets that survive matching e against other: a
// ConstantString pair only if the strings are identical, a SubstringSet pair
// only if the columns match (with the left and right PositionSets
// intersected), and never across the two kinds (spec section 4.5).
func (e ExprSet) Intersect(other ExprSet) (ExprSet, bool) {
	if e.kind != other.kind {
		return ExprSet{}, false
	}
	switch e.kind {
	case exprConstant:
		if e.str != other.str {
			return ExprSet{}, false
		}
		return e, true
	case exprSubstring:
		if e.col != other.col {
			return ExprSet{}, false
		}
		left := e.left.intersect(other.left)
		right := e.right.intersect(other.right)
		if len(left) == 0 || len(right) == 0 {
			return ExprSet{}, false
		}
		return ExprSet{kind: exprSubstring, col: e.col, left: left, right: right}, true
	default:
		panic("dag: unhandled ExprSet kind")
	}
}

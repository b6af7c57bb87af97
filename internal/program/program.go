// Package program implements the executable side of a synthesized
// transformation: the Position/SubstringExpression contract described in
// spec section 4.7, and the Program that concatenates a sequence of them
// against one input row.
package program

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/synox/internal/synerr"
	"github.com/dekarrin/synox/internal/token"
)

// Direction picks which end of a token match a Position denotes.
type Direction int

const (
	Start Direction = iota
	End
)

func (d Direction) String() string {
	if d == Start {
		return "start"
	}
	return "end"
}

// posKind tags a Position as either an absolute index or a token match.
type posKind int

const (
	posConstant posKind = iota
	posMatch
)

// Position evaluates to a single StringIndex against a column string (spec
// section 4.7).
type Position struct {
	kind   posKind
	const_ int
	tok    token.Token
	occ    token.Occurrence
	dir    Direction
}

// ConstantPosition returns a Position that always evaluates to the fixed
// index k.
func ConstantPosition(k int) Position {
	return Position{kind: posConstant, const_: k}
}

// Match returns a Position that evaluates to the start or end of the occ-th
// match of tok.
func Match(tok token.Token, occ token.Occurrence, dir Direction) Position {
	return Position{kind: posMatch, tok: tok, occ: occ, dir: dir}
}

func (p Position) String() string {
	if p.kind == posConstant {
		return fmt.Sprintf("%d", p.const_)
	}
	return fmt.Sprintf("%s(%s, occurrence %d)", p.dir, p.tok, p.occ)
}

// eval resolves p to a concrete 1-based StringIndex against col, or fails
// per spec section 4.7: OutOfBounds for a ConstantPosition outside
// [1, len(col)+1], NoMatch if tok does not have an occ-th match.
func (p Position) eval(col string) (int, error) {
	switch p.kind {
	case posConstant:
		if p.const_ < 1 || p.const_ > len(col)+1 {
			return 0, synerr.OutOfBounds(p.const_, len(col))
		}
		return p.const_, nil
	case posMatch:
		matches := token.Matches(p.tok, col)
		m, ok := token.Resolve(matches, p.occ)
		if !ok {
			return 0, synerr.NoMatch(p.tok.String(), int(p.occ))
		}
		if p.dir == Start {
			return m.Left, nil
		}
		return m.Right, nil
	default:
		panic("program: unhandled Position kind")
	}
}

type stepKind int

const (
	stepConstant stepKind = iota
	stepSubstring
)

// Step is one element of a synthesized Program: either a fixed constant
// string, or a substring of one input column bounded by two Positions.
type Step struct {
	kind  stepKind
	value string
	col   int
	left  Position
	right Position
}

// ConstantStep returns a Step that always emits s.
func ConstantStep(s string) Step {
	return Step{kind: stepConstant, value: s}
}

// SubstringStep returns a Step that emits the part of row[col] between the
// 1-based StringIndex positions left and right (row[col][left-1:right-1]).
func SubstringStep(col int, left, right Position) Step {
	return Step{kind: stepSubstring, col: col, left: left, right: right}
}

func (s Step) String() string {
	if s.kind == stepConstant {
		return fmt.Sprintf("constant %q", s.value)
	}
	return fmt.Sprintf("column %d from %s to %s", s.col, s.left, s.right)
}

// eval runs one step against a full input row.
func (s Step) eval(row []string) (string, error) {
	switch s.kind {
	case stepConstant:
		return s.value, nil
	case stepSubstring:
		if s.col < 0 || s.col >= len(row) {
			return "", synerr.ExecutionFailed(synerr.OutOfBounds(s.col, len(row)))
		}
		col := row[s.col]
		l, err := s.left.eval(col)
		if err != nil {
			return "", synerr.ExecutionFailed(err)
		}
		r, err := s.right.eval(col)
		if err != nil {
			return "", synerr.ExecutionFailed(err)
		}
		if l > r {
			return "", synerr.ExecutionFailed(synerr.OutOfBounds(l, len(col)))
		}
		return col[l-1 : r-1], nil
	default:
		panic("program: unhandled Step kind")
	}
}

// Program is the ordered sequence of steps synthesis produces. Applying it
// to a row concatenates every step's result, failing atomically if any
// step fails (spec section 6, "Program application").
type Program struct {
	// ID is a correlation handle a caller can log alongside synthesis or
	// execution failures; it has no effect on Run's behavior.
	ID    fmt.Stringer
	Steps []Step
}

// New returns a Program over the given steps.
func New(steps []Step) *Program {
	return &Program{Steps: steps}
}

// Run applies p to row, returning the transformed string or an
// ExecutionFailed error carrying the kind of failure and its cause.
func (p *Program) Run(row []string) (string, error) {
	var sb strings.Builder
	for _, step := range p.Steps {
		out, err := step.eval(row)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

// Explain renders a human-readable, word-wrapped description of each step
// of p, for diagnostic logging — not a persisted format (spec section 6
// defines none), just a Stringer-style debugging aid.
func (p *Program) Explain() string {
	var lines []string
	for i, step := range p.Steps {
		lines = append(lines, fmt.Sprintf("step %d: %s", i+1, step))
	}
	return rosed.Edit(strings.Join(lines, "\n")).Wrap(100).String()
}

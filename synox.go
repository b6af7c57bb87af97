// Package synox learns string transformation programs from a handful of
// input/output examples, in the style of BlinkFill: it builds the Input
// Data Graph shared across an entire table of rows, intersects the
// per-example DAGs of substring expressions consistent with each example,
// and extracts the highest-ranked program that explains all of them.
//
// A learned Program generalizes from the examples to any row with the same
// column arity; running it against a row it cannot explain fails with a
// descriptive error rather than guessing (see internal/program).
package synox

import (
	"github.com/google/uuid"

	"github.com/dekarrin/synox/internal/dag"
	"github.com/dekarrin/synox/internal/idg"
	"github.com/dekarrin/synox/internal/program"
)

// Example is one paired input/output demonstration of the transformation
// being learned. Input is a single row of column strings; Output is the
// desired result of transforming that row.
type Example struct {
	Input  []string
	Output string
}

// Program is the executable result of Learn.
type Program = program.Program

// Learn synthesizes a Program consistent with every example in examples.
// unpaired is an optional set of additional input rows (same column arity,
// no known output) that only contribute their structure to the Input Data
// Graph: they are intersected in with the examples' inputs, so only
// positions that can be labelled consistently across the whole table,
// these rows included, remain available to the learned program. No output
// is checked for them (spec section 3, "unpaired rows").
//
// Learn returns an error if no single program can reproduce every example.
func Learn(unpaired [][]string, examples []Example) (*Program, error) {
	rows := make([][]string, 0, len(examples)+len(unpaired))
	for _, ex := range examples {
		rows = append(rows, ex.Input)
	}
	rows = append(rows, unpaired...)

	g := idg.New(rows)

	dags := make([]*dag.Dag, len(examples))
	for i, ex := range examples {
		dags[i] = dag.New(ex.Input, ex.Output, g, i)
	}
	learned := dag.Learn(dags)

	prog, err := dag.TopRanked(learned, g)
	if err != nil {
		return nil, err
	}
	prog.ID = uuid.New()
	return prog, nil
}

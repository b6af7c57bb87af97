package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/synox/internal/graph"
	"github.com/dekarrin/synox/internal/idg"
)

func Test_TopRanked_SingleExample_SubstringExtraction(t *testing.T) {
	assert := assert.New(t)

	rows := [][]string{{"John Smith"}}
	g := idg.New(rows)
	d := New(rows[0], "John", g, 0)
	learned := Learn([]*Dag{d})

	prog, err := TopRanked(learned, g)
	assert.NoError(err)
	if assert.NotNil(prog) {
		out, err := prog.Run(rows[0])
		assert.NoError(err)
		assert.Equal("John", out)
	}
}

func Test_TopRanked_EmptyOutput(t *testing.T) {
	assert := assert.New(t)

	rows := [][]string{{"anything"}}
	g := idg.New(rows)
	d := New(rows[0], "", g, 0)
	learned := Learn([]*Dag{d})

	prog, err := TopRanked(learned, g)
	assert.NoError(err)
	if assert.NotNil(prog) {
		out, err := prog.Run(rows[0])
		assert.NoError(err)
		assert.Equal("", out)
		assert.Empty(prog.Steps)
	}
}

func Test_TopRanked_GeneralizesAcrossRows(t *testing.T) {
	assert := assert.New(t)

	rows := [][]string{{"John Smith"}, {"Jane Doe"}}
	g := idg.New(rows)

	d1 := New(rows[0], "John", g, 0)
	d2 := New(rows[1], "Jane", g, 1)
	learned := Learn([]*Dag{d1, d2})

	prog, err := TopRanked(learned, g)
	assert.NoError(err)
	if assert.NotNil(prog) {
		out0, err := prog.Run(rows[0])
		assert.NoError(err)
		assert.Equal("John", out0)

		out1, err := prog.Run(rows[1])
		assert.NoError(err)
		assert.Equal("Jane", out1)
	}
}

func Test_TopRanked_Unreachable(t *testing.T) {
	assert := assert.New(t)

	rows := [][]string{{"abc"}}
	g := idg.New(rows)
	d := &Dag{start: 0, finish: 1, edges: map[graph.Edge][]ExprSet{}}
	learned := Learn([]*Dag{d})

	_, err := TopRanked(learned, g)
	assert.Error(err)
}

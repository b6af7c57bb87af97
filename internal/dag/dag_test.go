package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/synox/internal/graph"
	"github.com/dekarrin/synox/internal/idg"
)

func Test_New_ConstantStringAlwaysPresent(t *testing.T) {
	assert := assert.New(t)
	g := idg.New([][]string{{"hello"}})
	d := New([]string{"hello"}, "hi", g, 0)

	for _, e := range d.Edges() {
		var hasConstant bool
		for _, c := range d.Candidates(e) {
			if c.kind == exprConstant {
				hasConstant = true
			}
		}
		assert.Truef(hasConstant, "edge %v has no ConstantString candidate", e)
	}
}

func Test_New_FindsSubstringOccurrence(t *testing.T) {
	assert := assert.New(t)
	g := idg.New([][]string{{"John Smith"}})
	d := New([]string{"John Smith"}, "John", g, 0)

	edge := graph.Edge{0, 4}
	var foundSubstring bool
	for _, c := range d.Candidates(edge) {
		if c.kind == exprSubstring && c.col == 0 {
			foundSubstring = true
		}
	}
	assert.True(foundSubstring, "expected a SubstringSet witnessing \"John\" in column 0")
}

func Test_findOverlapping(t *testing.T) {
	testCases := []struct {
		name   string
		s      string
		sub    string
		expect []int
	}{
		{name: "no overlap needed", s: "abcabc", sub: "abc", expect: []int{0, 3}},
		{name: "overlapping occurrences", s: "aaaa", sub: "aa", expect: []int{0, 1, 2}},
		{name: "no match", s: "abc", sub: "xyz", expect: nil},
		{name: "empty needle", s: "abc", sub: "", expect: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got := findOverlapping(tc.s, tc.sub)
			assert.Equal(tc.expect, got)
		})
	}
}

func Test_ExprSet_Intersect_ConstantString(t *testing.T) {
	assert := assert.New(t)

	a := ConstantString("x")
	b := ConstantString("x")
	c := ConstantString("y")

	r, ok := a.Intersect(b)
	assert.True(ok)
	assert.Equal("x", r.str)

	_, ok = a.Intersect(c)
	assert.False(ok)
}

func Test_ExprSet_Intersect_DifferentKinds(t *testing.T) {
	assert := assert.New(t)
	a := ConstantString("x")
	b := ExprSet{kind: exprSubstring, col: 0, left: newPosSet(constPos(1)), right: newPosSet(constPos(2))}

	_, ok := a.Intersect(b)
	assert.False(ok)
}

func Test_Learn_IntersectsAcrossExamples(t *testing.T) {
	assert := assert.New(t)
	g := idg.New([][]string{{"John Smith"}, {"Jane Doe"}})

	d1 := New([]string{"John Smith"}, "John", g, 0)
	d2 := New([]string{"Jane Doe"}, "Jane", g, 1)

	learned := Learn([]*Dag{d1, d2})
	assert.NotEmpty(learned.Edges())
}

func Test_Learn_Empty(t *testing.T) {
	assert := assert.New(t)
	learned := Learn(nil)
	assert.Equal(0, learned.Start())
	assert.Equal(0, learned.Finish())
}

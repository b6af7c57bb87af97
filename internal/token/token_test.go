package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Matches_Whitespace(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		tok    Token
		expect []Match
	}{
		{
			name:   "single run",
			input:  "a b",
			tok:    Token{Kind: Whitespace},
			expect: []Match{{Left: 2, Right: 3}},
		},
		{
			name:   "no matches",
			input:  "abc",
			tok:    Token{Kind: Whitespace},
			expect: nil,
		},
		{
			name:   "leading and trailing",
			input:  " a ",
			tok:    Token{Kind: NotWhitespace},
			expect: []Match{{Left: 2, Right: 3}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got := Matches(tc.tok, tc.input)
			assert.Equal(tc.expect, got)
		})
	}
}

func Test_Matches_ProperCase(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Match
	}{
		{
			name:   "single word",
			input:  "John",
			expect: []Match{{Left: 1, Right: 5}},
		},
		{
			name:   "two words",
			input:  "John Doe",
			expect: []Match{{Left: 1, Right: 5}, {Left: 6, Right: 9}},
		},
		{
			name:   "all caps is not proper case",
			input:  "JOHN",
			expect: nil,
		},
		{
			name:   "all lower is not proper case",
			input:  "john",
			expect: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			got := Matches(Token{Kind: ProperCase}, tc.input)
			assert.Equal(tc.expect, got)
		})
	}
}

func Test_Matches_StartEnd(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]Match{{Left: 1, Right: 1}}, Matches(Token{Kind: Start}, "hello"))
	assert.Equal([]Match{{Left: 6, Right: 6}}, Matches(Token{Kind: End}, "hello"))
	assert.Equal([]Match{{Left: 1, Right: 1}}, Matches(Token{Kind: Start}, ""))
	assert.Equal([]Match{{Left: 1, Right: 1}}, Matches(Token{Kind: End}, ""))
}

func Test_Matches_Literal_Overlap(t *testing.T) {
	assert := assert.New(t)
	// greedy non-overlapping: "aa" in "aaa" should only match once at 1-3,
	// since after consuming positions 1-2 the cursor advances past them.
	got := Matches(NewLiteral("aa"), "aaa")
	assert.Equal([]Match{{Left: 1, Right: 3}}, got)
}

func Test_Resolve(t *testing.T) {
	matches := []Match{{Left: 1, Right: 2}, {Left: 3, Right: 4}, {Left: 5, Right: 6}}

	testCases := []struct {
		name   string
		occ    Occurrence
		expect Match
		ok     bool
	}{
		{name: "first from left", occ: 1, expect: matches[0], ok: true},
		{name: "last from left", occ: 3, expect: matches[2], ok: true},
		{name: "first from right", occ: -1, expect: matches[2], ok: true},
		{name: "last from right", occ: -3, expect: matches[0], ok: true},
		{name: "zero is invalid", occ: 0, ok: false},
		{name: "out of range positive", occ: 4, ok: false},
		{name: "out of range negative", occ: -4, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			m, ok := Resolve(matches, tc.occ)
			assert.Equal(tc.ok, ok)
			if tc.ok {
				assert.Equal(tc.expect, m)
			}
		})
	}
}

func Test_Mirror(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Occurrence(-1), Mirror(3, 3))
	assert.Equal(Occurrence(-3), Mirror(1, 3))
	assert.Equal(Occurrence(-2), Mirror(2, 3))
}

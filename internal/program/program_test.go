package program

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/synox/internal/synerr"
	"github.com/dekarrin/synox/internal/token"
)

func Test_Program_Run_ConstantAndSubstring(t *testing.T) {
	assert := assert.New(t)

	p := New([]Step{
		SubstringStep(0, ConstantPosition(1), ConstantPosition(5)),
		ConstantStep(" "),
		SubstringStep(1, ConstantPosition(1), ConstantPosition(4)),
	})

	out, err := p.Run([]string{"John Smith", "Doe"})
	assert.NoError(err)
	assert.Equal("John Doe", out)
}

func Test_Program_Run_MatchPosition(t *testing.T) {
	assert := assert.New(t)

	p := New([]Step{
		SubstringStep(0,
			Match(token.Token{Kind: token.Start}, 1, Start),
			Match(token.Token{Kind: token.Whitespace}, 1, Start),
		),
	})

	out, err := p.Run([]string{"John Smith"})
	assert.NoError(err)
	assert.Equal("John", out)
}

func Test_Program_Run_OutOfBounds(t *testing.T) {
	assert := assert.New(t)

	p := New([]Step{
		SubstringStep(0, ConstantPosition(99), ConstantPosition(100)),
	})

	_, err := p.Run([]string{"short"})
	assert.Error(err)

	var serr *synerr.Error
	assert.ErrorAs(err, &serr)
	assert.Equal(synerr.KindOutOfBounds, serr.Kind())
}

func Test_Program_Run_NoMatch(t *testing.T) {
	assert := assert.New(t)

	p := New([]Step{
		SubstringStep(0,
			ConstantPosition(1),
			Match(token.Token{Kind: token.Digits}, 1, Start),
		),
	})

	_, err := p.Run([]string{"no digits here"})
	assert.Error(err)

	var serr *synerr.Error
	assert.ErrorAs(err, &serr)
	assert.Equal(synerr.KindNoMatch, serr.Kind())
}

func Test_Program_Run_EmptySteps(t *testing.T) {
	assert := assert.New(t)
	p := New(nil)
	out, err := p.Run([]string{"anything"})
	assert.NoError(err)
	assert.Equal("", out)
}

func Test_Program_Explain(t *testing.T) {
	assert := assert.New(t)
	p := New([]Step{ConstantStep("x")})
	assert.Contains(p.Explain(), "constant")
}

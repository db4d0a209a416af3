package pattern_test

import (
	"testing"

	"github.com/mna/ilregex/lang/ast"
	"github.com/mna/ilregex/lang/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFusesQuantifier(t *testing.T) {
	p, err := pattern.Parse(`<op nop>*<op ret>`)
	require.NoError(t, err)
	checks := p.Checks()
	require.Len(t, checks, 2)
	assert.Equal(t, 0, checks[0].Quant.Min)
	assert.Equal(t, ast.Unbounded, checks[0].Quant.Max)
	assert.True(t, checks[1].Quant.IsOne())
}

func TestParseFusesGroupQuantifierOntoGroupEnd(t *testing.T) {
	p, err := pattern.Parse(`(<op nop>)+`)
	require.NoError(t, err)
	checks := p.Checks()
	require.Len(t, checks, 3)
	assert.Equal(t, ast.GroupStart, checks[0].Kind)
	assert.True(t, checks[0].Quant.IsOne())
	assert.Equal(t, ast.GroupEnd, checks[2].Kind)
	assert.Equal(t, 1, checks[2].Quant.Min)
	assert.Equal(t, ast.Unbounded, checks[2].Quant.Max)
}

func TestParseStringRoundTrip(t *testing.T) {
	src := `^<op nop>*$`
	p, err := pattern.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, p.String())
}

func TestParseDanglingQuantifierErrors(t *testing.T) {
	cases := []string{
		`*<op nop>`,
		`|*<op nop>`,
		`<op nop>**`,
		`(*)`,
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := pattern.Parse(src)
			assert.Error(t, err)
		})
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := pattern.FromFile("testdata/does-not-exist.ilregex")
	assert.Error(t, err)
}

package ast_test

import (
	"testing"

	"github.com/mna/ilregex/lang/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantifier(t *testing.T) {
	cases := []struct {
		lit  string
		want ast.Quantifier
	}{
		{"?", ast.Quantifier{Min: 0, Max: 1, Greedy: true}},
		{"*", ast.Quantifier{Min: 0, Max: ast.Unbounded, Greedy: true}},
		{"+", ast.Quantifier{Min: 1, Max: ast.Unbounded, Greedy: true}},
		{"*?", ast.Quantifier{Min: 0, Max: ast.Unbounded, Greedy: false}},
		{"{3}", ast.Quantifier{Min: 3, Max: 3, Greedy: true}},
		{"{2,}", ast.Quantifier{Min: 2, Max: ast.Unbounded, Greedy: true}},
		{"{2,5}", ast.Quantifier{Min: 2, Max: 5, Greedy: true}},
		{"{2,5}?", ast.Quantifier{Min: 2, Max: 5, Greedy: false}},
	}
	for _, c := range cases {
		t.Run(c.lit, func(t *testing.T) {
			got, err := ast.ParseQuantifier(c.lit)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
			assert.Equal(t, c.lit, got.String())
		})
	}
}

func TestParseQuantifierInvalid(t *testing.T) {
	cases := []string{"{5,2}", "{0,0}", "{abc}", "nope"}
	for _, lit := range cases {
		t.Run(lit, func(t *testing.T) {
			_, err := ast.ParseQuantifier(lit)
			assert.Error(t, err)
		})
	}
}

func TestEffectiveGreedy(t *testing.T) {
	q := ast.Quantifier{Min: 0, Max: 5, Greedy: true}
	assert.True(t, q.EffectiveGreedy(false))
	assert.False(t, q.EffectiveGreedy(true))

	fixed := ast.Quantifier{Min: 3, Max: 3, Greedy: true}
	assert.True(t, fixed.EffectiveGreedy(false))
	assert.True(t, fixed.EffectiveGreedy(true), "fixed-count quantifiers ignore SwapGreedy")
}

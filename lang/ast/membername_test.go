package ast_test

import (
	"testing"

	"github.com/mna/ilregex/lang/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveMemberNameRegexLiteral(t *testing.T) {
	rx, err := ast.DeriveMemberNameRegex(ast.MemberField, "Count")
	require.NoError(t, err)
	assert.True(t, rx.MatchString("System.Collections.Generic.List`1.Count"))
	assert.False(t, rx.MatchString("Countdown"))
}

func TestDeriveMemberNameRegexMethodTail(t *testing.T) {
	rx, err := ast.DeriveMemberNameRegex(ast.MemberMethod, "ToString")
	require.NoError(t, err)
	assert.True(t, rx.MatchString("System.Object.ToString()"))
	assert.False(t, rx.MatchString("System.Object.ToString")) // missing call parens
}

func TestDeriveMemberNameRegexVerbatim(t *testing.T) {
	rx, err := ast.DeriveMemberNameRegex(ast.MemberType, "?^System\\.Int(32|64)$")
	require.NoError(t, err)
	assert.True(t, rx.MatchString("System.Int32"))
	assert.False(t, rx.MatchString("System.Int16"))
}

func TestDeriveMemberNameRegexInvalid(t *testing.T) {
	_, err := ast.DeriveMemberNameRegex(ast.MemberType, "?(unclosed")
	assert.Error(t, err)
}

package token_test

import (
	"testing"

	"github.com/mna/ilregex/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestTokenString(t *testing.T) {
	assert.Equal(t, "'^'", token.CARET.String())
	assert.Equal(t, "quantifier", token.QUANTIFIER.String())
	assert.Contains(t, token.Token(255).String(), "Token(")
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "3:7", token.Position{Line: 3, Column: 7}.String())
}

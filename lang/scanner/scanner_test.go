package scanner_test

import (
	"testing"

	"github.com/mna/ilregex/lang/scanner"
	"github.com/mna/ilregex/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var sc scanner.Scanner
	sc.Init([]byte(src))
	var toks []token.Token
	for {
		tok, _, err := sc.Scan()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok == token.EOF {
			return toks
		}
	}
}

func TestScanBasicAtoms(t *testing.T) {
	toks := scanAll(t, `^.$|`)
	require.Equal(t, []token.Token{token.CARET, token.DOT, token.DOLLAR, token.PIPE, token.EOF}, toks)
}

func TestScanGroupOpenVariants(t *testing.T) {
	var sc scanner.Scanner
	sc.Init([]byte(`(a(?:b(?'name'c)))`))

	tok, _, err := sc.Scan()
	require.NoError(t, err)
	require.Equal(t, token.GROUPOPEN, tok)

	tok, _, err = sc.Scan()
	require.NoError(t, err)
	require.Equal(t, token.BAREWORD, tok)

	tok, _, err = sc.Scan()
	require.NoError(t, err)
	require.Equal(t, token.GROUPOPENNONCAPTURE, tok)

	tok, _, err = sc.Scan()
	require.NoError(t, err)
	require.Equal(t, token.BAREWORD, tok)

	tok, val, err := sc.Scan()
	require.NoError(t, err)
	require.Equal(t, token.GROUPOPENNAMED, tok)
	require.Equal(t, "name", val.Raw)
}

func TestScanAngleCheck(t *testing.T) {
	var sc scanner.Scanner
	sc.Init([]byte(`<op ldc.i4 42>`))

	want := []token.Token{token.LANGLE, token.BAREWORD, token.BAREWORD, token.BAREWORD, token.RANGLE}
	for _, w := range want {
		tok, _, err := sc.Scan()
		require.NoError(t, err)
		require.Equal(t, w, tok)
	}
}

func TestScanString(t *testing.T) {
	var sc scanner.Scanner
	sc.Init([]byte(`"hello\nworld"`))
	tok, val, err := sc.Scan()
	require.NoError(t, err)
	require.Equal(t, token.STRING, tok)
	require.Equal(t, "hello\nworld", val.Raw)
}

func TestScanCapture(t *testing.T) {
	var sc scanner.Scanner
	sc.Init([]byte(`'foo'`))
	tok, val, err := sc.Scan()
	require.NoError(t, err)
	require.Equal(t, token.CAPTURE, tok)
	require.Equal(t, "foo", val.Raw)
}

func TestScanQuantifiers(t *testing.T) {
	cases := []string{"?", "*", "+", "{2}", "{2,}", "{2,5}", "*?", "{2,5}?"}
	for _, lit := range cases {
		var sc scanner.Scanner
		sc.Init([]byte(lit))
		tok, val, err := sc.Scan()
		require.NoError(t, err)
		require.Equal(t, token.QUANTIFIER, tok)
		require.Equal(t, lit, val.Raw)
	}
}

func TestSkipComments(t *testing.T) {
	toks := scanAll(t, "^ // line comment\n /* block */ $")
	require.Equal(t, []token.Token{token.CARET, token.DOLLAR, token.EOF}, toks)
}

func TestUnterminatedBlockComment(t *testing.T) {
	var sc scanner.Scanner
	sc.Init([]byte("/* never closed"))
	_, _, err := sc.Scan()
	require.Error(t, err)
}

func TestUnterminatedString(t *testing.T) {
	var sc scanner.Scanner
	sc.Init([]byte(`"never closed`))
	_, _, err := sc.Scan()
	require.Error(t, err)
}

func TestPositionTracking(t *testing.T) {
	var sc scanner.Scanner
	sc.Init([]byte("^\n.\n$"))
	_, v1, _ := sc.Scan()
	_, v2, _ := sc.Scan()
	_, v3, _ := sc.Scan()
	require.Equal(t, token.Position{Line: 1, Column: 1}, v1.Pos)
	require.Equal(t, token.Position{Line: 2, Column: 1}, v2.Pos)
	require.Equal(t, token.Position{Line: 3, Column: 1}, v3.Pos)
}

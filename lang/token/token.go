// Package token defines the lexical tokens of the pattern DSL and the
// source position type used to report errors.
package token

import "fmt"

// Token identifies a lexical token kind produced by the scanner.
type Token uint8

const ( //nolint:revive
	EOF Token = iota
	ILLEGAL

	CARET  // ^
	DOLLAR // $
	DOT    // .
	PIPE   // |

	GROUPOPEN            // ( — capturing group start
	GROUPOPENNONCAPTURE  // (?: — non-capturing group start
	GROUPOPENNAMED       // (?'name' — named capturing group start, Value.Raw holds name
	RPAREN               // )

	LANGLE // <
	RANGLE // >

	BAREWORD // prefix keywords, opcode/family names, bare numeric literals
	STRING   // "..."
	CAPTURE  // '...' capture-name/index argument

	QUANTIFIER // ?, *, +, {n}, {n,}, {n,m}, each optionally suffixed with ?
)

var names = [...]string{
	EOF:                 "EOF",
	ILLEGAL:              "illegal token",
	CARET:                "'^'",
	DOLLAR:               "'$'",
	DOT:                  "'.'",
	PIPE:                 "'|'",
	GROUPOPEN:            "'('",
	GROUPOPENNONCAPTURE:  "'(?:'",
	GROUPOPENNAMED:       "'(?''",
	RPAREN:               "')'",
	LANGLE:               "'<'",
	RANGLE:               "'>'",
	BAREWORD:             "bareword",
	STRING:               "string literal",
	CAPTURE:              "capture name",
	QUANTIFIER:           "quantifier",
}

func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return fmt.Sprintf("Token(%d)", uint8(t))
}

// Position is a 1-based line/column location in the pattern source text.
type Position struct {
	Line, Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

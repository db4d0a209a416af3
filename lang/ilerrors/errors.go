// Package ilerrors defines the error kinds surfaced across the pattern DSL
// parser, compiler and matcher, so that callers can distinguish a malformed
// pattern from a structurally invalid one from a misuse of the API without
// depending on the packages that raise them.
package ilerrors

import "fmt"

// ParseErrorKind classifies a ParseError.
type ParseErrorKind uint8

const ( //nolint:revive
	UnexpectedToken ParseErrorKind = iota
	UnterminatedString
	UnterminatedComment
	UnterminatedCheck
	MalformedGroupStart
	MissingQuantifierAtom
	UnknownCheckPrefix
	WrongArgCount
	InvalidCaptureName
	InvalidOperandLiteral
	InvalidQuantifier
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnterminatedString:
		return "unterminated string"
	case UnterminatedComment:
		return "unterminated comment"
	case UnterminatedCheck:
		return "unterminated check"
	case MalformedGroupStart:
		return "malformed group start"
	case MissingQuantifierAtom:
		return "quantifier without atom"
	case UnknownCheckPrefix:
		return "unknown check prefix"
	case WrongArgCount:
		return "wrong argument count"
	case InvalidCaptureName:
		return "invalid capture name"
	case InvalidOperandLiteral:
		return "invalid operand literal"
	case InvalidQuantifier:
		return "invalid quantifier"
	default:
		return "unknown parse error"
	}
}

// ParseError reports a malformed pattern DSL source. Errors raised by the
// scanner and parser carry a 1-based line/column computed from the
// cumulative byte offset; errors raised by the pattern builder (a quantifier
// it cannot attach) and by ast.ParseQuantifier called on its own carry line
// and column 0.
type ParseError struct {
	Line, Column int
	Kind         ParseErrorKind
	Msg          string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Msg)
}

// CompileErrorKind classifies a CompileError.
type CompileErrorKind uint8

const ( //nolint:revive
	UnbalancedGroup CompileErrorKind = iota
	DanglingQuantifier
	QuantifierOnNonQuantifiable
)

func (k CompileErrorKind) String() string {
	switch k {
	case UnbalancedGroup:
		return "unbalanced group"
	case DanglingQuantifier:
		return "dangling quantifier"
	case QuantifierOnNonQuantifiable:
		return "quantifier attached to a non-quantifiable atom"
	default:
		return "unknown compile error"
	}
}

// CompileError reports a pattern whose checks are individually well-formed
// but cannot be flattened into a program.
type CompileError struct {
	Kind CompileErrorKind
	Msg  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// UsageError reports misuse of the programmatic API: out-of-range start/end
// arguments, or a required argument that is nil. Looking up an absent name
// in an operand dictionary does not raise one: OperandDictionary.Get reports
// the absence through its boolean result.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return "usage error: " + e.Msg }

// NewUsageError formats a UsageError.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// TypeCastError reports a MatchResult typed accessor requesting a type that
// does not match the captured operand's actual kind. Unlike a non-match,
// this is a programming error on the caller's part.
type TypeCastError struct {
	Want, Got string
}

func (e *TypeCastError) Error() string {
	return fmt.Sprintf("operand type mismatch: want %s, got %s", e.Want, e.Got)
}

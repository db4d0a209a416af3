// Package scanner tokenizes pattern DSL source text for the parser,
// tracking 1-based line/column positions for error reporting.
package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/mna/ilregex/lang/ilerrors"
	"github.com/mna/ilregex/lang/token"
)

// Value carries the scanned text associated with a token: the decoded
// string for STRING/CAPTURE, the raw identifier for BAREWORD/GROUPOPENNAMED,
// or the raw literal (e.g. "{2,}?") for QUANTIFIER.
type Value struct {
	Raw string
	Pos token.Position
}

// Scanner tokenizes a single pattern source held entirely in memory; the
// DSL has no multi-file or include concept.
type Scanner struct {
	src        []byte
	off        int // byte offset of the next unread byte
	line, col  int // position of the next unread byte (1-based)
}

// Init prepares s to scan src from the beginning.
func (s *Scanner) Init(src []byte) {
	s.src = src
	s.off = 0
	s.line, s.col = 1, 1
}

func (s *Scanner) pos() token.Position { return token.Position{Line: s.line, Column: s.col} }

func (s *Scanner) peekByte() (byte, bool) {
	if s.off >= len(s.src) {
		return 0, false
	}
	return s.src[s.off], true
}

func (s *Scanner) peekAt(n int) (byte, bool) {
	if s.off+n >= len(s.src) {
		return 0, false
	}
	return s.src[s.off+n], true
}

func (s *Scanner) advance() byte {
	b := s.src[s.off]
	s.off++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// isBarewordByte reports whether b may appear in a bareword token: opcode
// and family names use letters, digits, '.', '_' and a leading '%'; bare
// numeric literals use digits, a leading sign, '.' and a trailing type tag.
func isBarewordByte(b byte) bool {
	return isIdentPart(b) || b == '.' || b == '%' || b == '-' || b == '+'
}

// skipSpaceAndComments advances past whitespace, "//" line comments and
// "/*...*/" block comments, returning a lexical error if a block comment is
// left unterminated.
func (s *Scanner) skipSpaceAndComments() error {
	for {
		b, ok := s.peekByte()
		if !ok {
			return nil
		}
		switch {
		case isSpace(b):
			s.advance()
		case b == '/' && peekEquals(s, 1, '/'):
			for {
				b, ok := s.peekByte()
				if !ok || b == '\n' {
					break
				}
				s.advance()
			}
		case b == '/' && peekEquals(s, 1, '*'):
			startPos := s.pos()
			s.advance()
			s.advance()
			closed := false
			for {
				b, ok := s.peekByte()
				if !ok {
					break
				}
				if b == '*' && peekEquals(s, 1, '/') {
					s.advance()
					s.advance()
					closed = true
					break
				}
				s.advance()
			}
			if !closed {
				return &ilerrors.ParseError{Line: startPos.Line, Column: startPos.Column, Kind: ilerrors.UnterminatedComment, Msg: "block comment is missing a closing */"}
			}
		default:
			return nil
		}
	}
}

func peekEquals(s *Scanner, n int, want byte) bool {
	b, ok := s.peekAt(n)
	return ok && b == want
}

// Scan returns the next token, its value and its starting position. At end
// of input it returns token.EOF forever.
func (s *Scanner) Scan() (token.Token, Value, error) {
	if err := s.skipSpaceAndComments(); err != nil {
		return token.ILLEGAL, Value{}, err
	}
	b, ok := s.peekByte()
	if !ok {
		return token.EOF, Value{Pos: s.pos()}, nil
	}
	start := s.pos()

	switch b {
	case '^':
		s.advance()
		return token.CARET, Value{Pos: start}, nil
	case '$':
		s.advance()
		return token.DOLLAR, Value{Pos: start}, nil
	case '.':
		s.advance()
		return token.DOT, Value{Pos: start}, nil
	case '|':
		s.advance()
		return token.PIPE, Value{Pos: start}, nil
	case ')':
		s.advance()
		return token.RPAREN, Value{Pos: start}, nil
	case '<':
		s.advance()
		return token.LANGLE, Value{Pos: start}, nil
	case '>':
		s.advance()
		return token.RANGLE, Value{Pos: start}, nil
	case '(':
		return s.scanGroupOpen(start)
	case '"':
		return s.scanString(start)
	case '\'':
		return s.scanCapture(start)
	case '?', '*', '+', '{':
		return s.scanQuantifier(start)
	}

	if isBarewordByte(b) {
		return s.scanBareword(start)
	}

	s.advance()
	return token.ILLEGAL, Value{Pos: start}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnexpectedToken, Msg: "unexpected character " + string(rune(b))}
}

func (s *Scanner) scanGroupOpen(start token.Position) (token.Token, Value, error) {
	s.advance() // '('
	if b, ok := s.peekByte(); ok && b == '?' {
		if next, ok := s.peekAt(1); ok && next == ':' {
			s.advance()
			s.advance()
			return token.GROUPOPENNONCAPTURE, Value{Pos: start}, nil
		}
		if next, ok := s.peekAt(1); ok && next == '\'' {
			s.advance()
			s.advance()
			var name strings.Builder
			for {
				b, ok := s.peekByte()
				if !ok {
					return token.ILLEGAL, Value{Pos: start}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.MalformedGroupStart, Msg: "unterminated named group, expected closing '"}
				}
				if b == '\'' {
					s.advance()
					break
				}
				name.WriteByte(s.advance())
			}
			return token.GROUPOPENNAMED, Value{Raw: name.String(), Pos: start}, nil
		}
		return token.ILLEGAL, Value{Pos: start}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.MalformedGroupStart, Msg: "expected '?:' or \"?'name'\" after '('"}
	}
	return token.GROUPOPEN, Value{Pos: start}, nil
}

func (s *Scanner) scanString(start token.Position) (token.Token, Value, error) {
	s.advance() // opening quote
	var sb strings.Builder
	for {
		b, ok := s.peekByte()
		if !ok {
			return token.ILLEGAL, Value{Pos: start}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnterminatedString, Msg: "unterminated string literal"}
		}
		if b == '"' {
			s.advance()
			break
		}
		if b == '\\' {
			s.advance()
			esc, ok := s.peekByte()
			if !ok {
				return token.ILLEGAL, Value{Pos: start}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnterminatedString, Msg: "unterminated string escape"}
			}
			s.advance()
			sb.WriteByte(decodeEscape(esc))
			continue
		}
		if b < utf8.RuneSelf {
			sb.WriteByte(s.advance())
		} else {
			// copy the full UTF-8 sequence byte by byte; decoding isn't needed
			// since we only require the original text back.
			sb.WriteByte(s.advance())
		}
	}
	return token.STRING, Value{Raw: sb.String(), Pos: start}, nil
}

func decodeEscape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return b
	}
}

func (s *Scanner) scanCapture(start token.Position) (token.Token, Value, error) {
	s.advance() // opening quote
	var sb strings.Builder
	for {
		b, ok := s.peekByte()
		if !ok {
			return token.ILLEGAL, Value{Pos: start}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnterminatedString, Msg: "unterminated capture argument"}
		}
		if b == '\'' {
			s.advance()
			break
		}
		sb.WriteByte(s.advance())
	}
	return token.CAPTURE, Value{Raw: sb.String(), Pos: start}, nil
}

func (s *Scanner) scanQuantifier(start token.Position) (token.Token, Value, error) {
	var sb strings.Builder
	b, _ := s.peekByte()
	switch b {
	case '?', '*', '+':
		sb.WriteByte(s.advance())
	case '{':
		sb.WriteByte(s.advance())
		for {
			b, ok := s.peekByte()
			if !ok {
				return token.ILLEGAL, Value{Pos: start}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.InvalidQuantifier, Msg: "unterminated quantifier, expected '}'"}
			}
			sb.WriteByte(s.advance())
			if b == '}' {
				break
			}
		}
	}
	if b, ok := s.peekByte(); ok && b == '?' {
		sb.WriteByte(s.advance())
	}
	return token.QUANTIFIER, Value{Raw: sb.String(), Pos: start}, nil
}

func (s *Scanner) scanBareword(start token.Position) (token.Token, Value, error) {
	var sb strings.Builder
	for {
		b, ok := s.peekByte()
		if !ok || !isBarewordByte(b) {
			break
		}
		sb.WriteByte(s.advance())
	}
	return token.BAREWORD, Value{Raw: sb.String(), Pos: start}, nil
}

// Package parser turns pattern DSL source into a flat slice of *ast.Check
// values, one per atom. A bare quantifier is fused onto the atom before it
// when that atom can carry one; otherwise it is kept as a floating
// quantifier check for the builder (package pattern) to report.
package parser

import (
	"strconv"
	"strings"

	"github.com/mna/ilregex/lang/ast"
	"github.com/mna/ilregex/lang/il"
	"github.com/mna/ilregex/lang/ilerrors"
	"github.com/mna/ilregex/lang/scanner"
	"github.com/mna/ilregex/lang/token"
)

// Parse scans and parses src, returning the flat sequence of checks in
// source order. Group nesting and alternation are represented positionally
// (GroupStart/GroupEnd/Alternative checks interleaved with the rest), to be
// resolved by the pattern builder (package pattern) and compiler.
func Parse(src []byte) ([]*ast.Check, error) {
	p := &parser{}
	p.sc.Init(src)
	if err := p.next(); err != nil {
		return nil, err
	}

	var checks []*ast.Check
	depth := 0
	for p.tok != token.EOF {
		c, err := p.parseOne(&depth)
		if err != nil {
			return nil, err
		}
		fused := false
		if prev := len(checks) - 1; c.Kind == ast.FloatingQuantifier && prev >= 0 &&
			checks[prev].Quantifiable() && checks[prev].Quant.IsOne() {
			checks[prev].Quant = c.Quant
			fused = true
		}
		if !fused {
			checks = append(checks, c)
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if depth != 0 {
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.UnterminatedCheck, Msg: "unterminated group: missing ')'"}
	}
	return checks, nil
}

type parser struct {
	sc  scanner.Scanner
	tok token.Token
	val scanner.Value
	pos token.Position
}

func (p *parser) next() error {
	tok, val, err := p.sc.Scan()
	if err != nil {
		return err
	}
	p.tok, p.val, p.pos = tok, val, val.Pos
	return nil
}

// parseOne consumes exactly one token's worth of input and returns its
// Check. depth tracks open-group count so Parse can detect an unterminated
// group once input is exhausted.
func (p *parser) parseOne(depth *int) (*ast.Check, error) {
	switch p.tok {
	case token.CARET:
		return ast.NewStart(), nil
	case token.DOLLAR:
		return ast.NewEnd(), nil
	case token.DOT:
		return ast.NewAny(), nil
	case token.PIPE:
		return ast.NewAlternative(), nil
	case token.GROUPOPEN:
		*depth++
		return ast.NewGroupStart(true, ""), nil
	case token.GROUPOPENNONCAPTURE:
		*depth++
		return ast.NewGroupStart(false, ""), nil
	case token.GROUPOPENNAMED:
		*depth++
		if !il.ValidCaptureName(p.val.Raw) {
			return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.InvalidCaptureName, Msg: "invalid group name " + strconv.Quote(p.val.Raw)}
		}
		return ast.NewGroupStart(true, p.val.Raw), nil
	case token.RPAREN:
		if *depth == 0 {
			return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.UnterminatedCheck, Msg: "unmatched ')'"}
		}
		*depth--
		return ast.NewGroupEnd(), nil
	case token.QUANTIFIER:
		q, err := ast.ParseQuantifier(p.val.Raw)
		if err != nil {
			if pe, ok := err.(*ilerrors.ParseError); ok {
				pe.Line, pe.Column = p.pos.Line, p.pos.Column
			}
			return nil, err
		}
		return ast.NewFloatingQuantifier(q), nil
	case token.LANGLE:
		return p.parseAngleCheck()
	default:
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.UnexpectedToken, Msg: "unexpected " + p.tok.String()}
	}
}

// parseAngleCheck parses the body of "<prefix args...>", having already
// consumed the opening '<'.
func (p *parser) parseAngleCheck() (*ast.Check, error) {
	start := p.pos
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok != token.BAREWORD {
		return nil, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnknownCheckPrefix, Msg: "expected a check prefix after '<'"}
	}
	prefix := strings.ToLower(p.val.Raw)

	switch prefix {
	case "nop":
		return p.finishAngle(start, ast.NewOpCode(il.NewOpCodeMatcher(il.Nop)))
	case "op":
		return p.parseOpCheck(start)
	case "cap":
		return p.parseCapCheck(start)
	case "ceq":
		return p.parseCeqCheck(start)
	case "fld":
		return p.parseMemberCheck(start, ast.MemberField)
	case "mth":
		return p.parseMemberCheck(start, ast.MemberMethod)
	case "typ":
		return p.parseMemberCheck(start, ast.MemberType)
	case "cls":
		return p.parseMemberCheck(start, ast.MemberCallSite)
	default:
		return nil, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnknownCheckPrefix, Msg: "unknown check prefix " + strconv.Quote(prefix)}
	}
}

// finishAngle expects and consumes the closing '>' and returns c.
func (p *parser) finishAngle(start token.Position, c *ast.Check) (*ast.Check, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok != token.RANGLE {
		return nil, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnterminatedCheck, Msg: "expected closing '>'"}
	}
	return c, nil
}

// parseMatcher parses a bareword opcode or family name (the latter prefixed
// with '%') into an il.OpCodeMatcher. The BAREWORD token must already be
// current.
func (p *parser) parseMatcher(start token.Position) (il.OpCodeMatcher, error) {
	if p.tok != token.BAREWORD {
		return il.OpCodeMatcher{}, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.WrongArgCount, Msg: "expected an opcode or family name"}
	}
	name := p.val.Raw
	if strings.HasPrefix(name, "%") {
		fam, ok := il.ParseFamily(name[1:])
		if !ok {
			return il.OpCodeMatcher{}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnknownCheckPrefix, Msg: "unknown opcode family " + strconv.Quote(name)}
		}
		return il.NewFamilyMatcher(fam), nil
	}
	op, ok := il.ParseOpCode(name)
	if !ok {
		return il.OpCodeMatcher{}, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.UnknownCheckPrefix, Msg: "unknown opcode " + strconv.Quote(name)}
	}
	return il.NewOpCodeMatcher(op), nil
}

func (p *parser) parseOpCheck(start token.Position) (*ast.Check, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	matcher, err := p.parseMatcher(start)
	if err != nil {
		return nil, err
	}

	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok == token.RANGLE {
		return ast.NewOpCode(matcher), nil
	}

	lit, err := p.parseOperandLiteral(start)
	if err != nil {
		return nil, err
	}
	return p.finishAngle(start, ast.NewOpCodeOperand(matcher, lit))
}

func (p *parser) parseCapCheck(start token.Position) (*ast.Check, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	matcher, err := p.parseMatcher(start)
	if err != nil {
		return nil, err
	}

	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok == token.RANGLE {
		return ast.NewCaptureOperand(matcher, ""), nil
	}
	if p.tok != token.CAPTURE {
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.WrongArgCount, Msg: "expected a capture name or '>'"}
	}
	if !il.ValidCaptureName(p.val.Raw) {
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.InvalidCaptureName, Msg: "invalid capture name " + strconv.Quote(p.val.Raw)}
	}
	return p.finishAngle(start, ast.NewCaptureOperand(matcher, p.val.Raw))
}

func (p *parser) parseCeqCheck(start token.Position) (*ast.Check, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	matcher, err := p.parseMatcher(start)
	if err != nil {
		return nil, err
	}

	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok != token.CAPTURE {
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.WrongArgCount, Msg: "<ceq> requires a capture reference argument"}
	}
	ref := p.val.Raw
	if idx, err := strconv.Atoi(ref); err == nil {
		return p.finishAngle(start, ast.NewEqualsOperandIndex(matcher, idx))
	}
	if !il.ValidCaptureName(ref) {
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.InvalidCaptureName, Msg: "invalid capture reference " + strconv.Quote(ref)}
	}
	return p.finishAngle(start, ast.NewEqualsOperandName(matcher, ref))
}

func (p *parser) parseMemberCheck(start token.Position, kind ast.MemberKind) (*ast.Check, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	matcher, err := p.parseMatcher(start)
	if err != nil {
		return nil, err
	}

	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok != token.STRING {
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.WrongArgCount, Msg: "expected a string pattern argument"}
	}
	pattern := p.val.Raw
	if _, err := ast.DeriveMemberNameRegex(kind, pattern); err != nil {
		return nil, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.InvalidOperandLiteral, Msg: err.Error()}
	}
	return p.finishAngle(start, ast.NewMemberName(kind, matcher, pattern))
}

// parseOperandLiteral parses the current token as an operand literal: a
// STRING token verbatim, or a BAREWORD numeric literal with an optional
// trailing type-tag suffix (l=int64, sb=int8, b=uint8, f=float32, d=float64;
// no suffix is int32 unless the text contains a decimal point, in which case
// it is float64).
func (p *parser) parseOperandLiteral(start token.Position) (il.Operand, error) {
	switch p.tok {
	case token.STRING:
		return il.StringOperand(p.val.Raw), nil
	case token.BAREWORD:
		return parseNumericLiteral(start, p.val.Raw)
	default:
		return nil, &ilerrors.ParseError{Line: p.pos.Line, Column: p.pos.Column, Kind: ilerrors.InvalidOperandLiteral, Msg: "expected a string or numeric operand literal"}
	}
}

var numericSuffixes = []struct {
	suffix string
	build  func(text string) (il.Operand, error)
}{
	{"sb", func(t string) (il.Operand, error) {
		n, err := strconv.ParseInt(t, 10, 8)
		return il.Int8Operand(n), err
	}},
	{"l", func(t string) (il.Operand, error) {
		n, err := strconv.ParseInt(t, 10, 64)
		return il.Int64Operand(n), err
	}},
	{"b", func(t string) (il.Operand, error) {
		n, err := strconv.ParseUint(t, 10, 8)
		return il.Uint8Operand(n), err
	}},
	{"f", func(t string) (il.Operand, error) {
		n, err := strconv.ParseFloat(t, 32)
		return il.Float32Operand(n), err
	}},
	{"d", func(t string) (il.Operand, error) {
		n, err := strconv.ParseFloat(t, 64)
		return il.Float64Operand(n), err
	}},
}

func parseNumericLiteral(start token.Position, text string) (il.Operand, error) {
	for _, s := range numericSuffixes {
		if strings.HasSuffix(text, s.suffix) {
			body := strings.TrimSuffix(text, s.suffix)
			if body == "" {
				continue
			}
			op, err := s.build(body)
			if err != nil {
				return nil, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.InvalidOperandLiteral, Msg: "invalid numeric literal " + strconv.Quote(text)}
			}
			return op, nil
		}
	}
	if strings.Contains(text, ".") {
		n, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.InvalidOperandLiteral, Msg: "invalid numeric literal " + strconv.Quote(text)}
		}
		return il.Float64Operand(n), nil
	}
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, &ilerrors.ParseError{Line: start.Line, Column: start.Column, Kind: ilerrors.InvalidOperandLiteral, Msg: "invalid numeric literal " + strconv.Quote(text)}
	}
	return il.Int32Operand(n), nil
}

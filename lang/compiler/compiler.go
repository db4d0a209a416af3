// Package compiler flattens a built pattern.Pattern into a Program: an
// indexed, linked slice of checks ready for the matcher. It resolves group
// nesting (GroupStart.Other / GroupEnd.Other), assigns capture and operand
// indices, and records each group's direct alternative children.
package compiler

import (
	"fmt"
	"strings"

	"github.com/mna/ilregex/lang/ast"
	"github.com/mna/ilregex/lang/ilerrors"
	"github.com/mna/ilregex/lang/pattern"
)

// Program is a pattern.Pattern flattened for matching: Checks[0] is a
// synthetic outer capturing group (capture index 0, the whole-match group)
// wrapping every check the pattern contains, closed by the GroupEnd at
// Checks[len(Checks)-1].
type Program struct {
	Checks           []*ast.Check
	GroupCount       int            // number of capturing groups, including the synthetic outer one
	OperandCount     int            // number of CaptureOperand slots
	OperandNameIndex map[string]int // named CaptureOperand -> its OperandIndex, for <ceq> name resolution
}

type openGroup struct {
	check *ast.Check
	index int
}

// Compile flattens p into a Program, or returns a *ilerrors.CompileError if
// its groups are unbalanced or a quantifier is attached to a check that
// cannot carry one.
func Compile(p *pattern.Pattern) (*Program, error) {
	outer := ast.NewGroupStart(true, "")
	outer.CaptureIndex = 0

	checks := make([]*ast.Check, 0, len(p.Checks())+2)
	checks = append(checks, outer)

	stack := []openGroup{{check: outer, index: 0}}
	captureCounter := 1
	operandCounter := 0
	nameIndex := map[string]int{}

	for _, orig := range p.Checks() {
		// work on a copy so the Pattern's own checks are never written to
		cc := *orig
		c := &cc
		if !c.Quant.IsOne() && !c.Quantifiable() {
			return nil, &ilerrors.CompileError{Kind: ilerrors.QuantifierOnNonQuantifiable, Msg: fmt.Sprintf("%s cannot carry a quantifier", c.Kind)}
		}

		idx := len(checks)
		checks = append(checks, c)

		switch c.Kind {
		case ast.GroupStart:
			if c.Capturing {
				c.CaptureIndex = captureCounter
				captureCounter++
			}
			stack = append(stack, openGroup{check: c, index: idx})
		case ast.GroupEnd:
			if len(stack) <= 1 {
				return nil, &ilerrors.CompileError{Kind: ilerrors.UnbalancedGroup, Msg: "unmatched ')'"}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.check.Other = idx
			c.Other = top.index
			c.Alternatives = top.check.Alternatives
		case ast.Alternative:
			top := &stack[len(stack)-1]
			top.check.Alternatives = append(top.check.Alternatives, idx)
		case ast.CaptureOperand:
			c.OperandIndex = operandCounter
			if c.Name != "" {
				nameIndex[c.Name] = operandCounter
			}
			operandCounter++
		case ast.MemberName:
			// the parser already validated this pattern; a second failure here
			// would mean the Pattern was hand-built outside the parser, in which
			// case the check simply never matches.
			rx, _ := ast.DeriveMemberNameRegex(c.Member, c.Pattern)
			c.NameRegex = rx
		}
	}

	if len(stack) != 1 {
		return nil, &ilerrors.CompileError{Kind: ilerrors.UnbalancedGroup, Msg: "missing ')'"}
	}

	endIdx := len(checks)
	end := ast.NewGroupEnd()
	end.Other = 0
	outer.Other = endIdx
	checks = append(checks, end)

	return &Program{Checks: checks, GroupCount: captureCounter, OperandCount: operandCounter, OperandNameIndex: nameIndex}, nil
}

// Disassemble renders prog as an indexed textual listing, one check per
// line, in the style of an assembler dump: index, the check's own literal
// rendering plus quantifier, and (for groups) the partner index.
func Disassemble(prog *Program) string {
	var sb strings.Builder
	for i, c := range prog.Checks {
		fmt.Fprintf(&sb, "%4d  %s%s", i, c.String(), c.Quant.String())
		switch c.Kind {
		case ast.GroupStart, ast.GroupEnd:
			fmt.Fprintf(&sb, "  -> %d", c.Other)
		}
		if c.Kind == ast.GroupStart && c.Capturing {
			fmt.Fprintf(&sb, "  cap=%d", c.CaptureIndex)
		}
		if c.Kind == ast.CaptureOperand {
			fmt.Fprintf(&sb, "  opnd=%d", c.OperandIndex)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

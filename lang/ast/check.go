// Package ast defines Check, the single program atom produced by the
// pattern DSL parser, flattened by the compiler and interpreted by the
// matcher. A Check is a tagged variant rather than a family of types: the
// same value travels unmodified from parse through compile (which fills in
// a handful of compiler-assigned fields) to the matcher, rather than being
// rebuilt into distinct parse-tree and program-node types at each stage.
package ast

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mna/ilregex/lang/il"
)

// Kind identifies which variant of Check a value represents.
type Kind uint8

const ( //nolint:revive
	Start Kind = iota
	End
	Any
	Alternative
	GroupStart
	GroupEnd
	OpCode
	OpCodeOperand
	CaptureOperand
	EqualsOperand
	MemberName
	FloatingQuantifier // produced by the parser for a bare quantifier token it could not fuse; never survives pattern.Parse.
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "Start"
	case End:
		return "End"
	case Any:
		return "Any"
	case Alternative:
		return "Alternative"
	case GroupStart:
		return "GroupStart"
	case GroupEnd:
		return "GroupEnd"
	case OpCode:
		return "OpCode"
	case OpCodeOperand:
		return "OpCodeOperand"
	case CaptureOperand:
		return "CaptureOperand"
	case EqualsOperand:
		return "EqualsOperand"
	case MemberName:
		return "MemberName"
	case FloatingQuantifier:
		return "FloatingQuantifier"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MemberKind identifies the reference-operand kind a MemberName check
// constrains: field, method, type or callsite.
type MemberKind uint8

const ( //nolint:revive
	MemberField MemberKind = iota
	MemberMethod
	MemberType
	MemberCallSite
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "fld"
	case MemberMethod:
		return "mth"
	case MemberType:
		return "typ"
	case MemberCallSite:
		return "cls"
	default:
		return "?"
	}
}

// Check is one logical matching step. Which fields are meaningful depends on
// Kind; see the package doc. Fields under "assigned by Compile" are zero
// (or -1, for indices) until the pattern has been compiled.
type Check struct {
	Kind Kind
	Quant Quantifier // attached quantifier; ast.ExactlyOne if none was given

	// GroupStart
	Capturing bool
	Name      string // group/capture name; "" means anonymous

	// OpCode, OpCodeOperand, CaptureOperand, EqualsOperand, MemberName
	Matcher il.OpCodeMatcher

	// OpCodeOperand
	Literal il.Operand

	// EqualsOperand: either a name (RefIsIndex == false) resolved against an
	// earlier CaptureOperand or the external OperandDictionary, or a literal
	// operand-capture index.
	RefIsIndex bool
	RefIndex   int
	RefName    string

	// MemberName
	Member    MemberKind
	Pattern   string
	NameRegex *regexp.Regexp // filled in by the compiler

	// assigned by the pattern builder (pattern.Parse, C5) — valid once a Pattern exists
	SourcePos int // index into the original check slice, for diagnostics

	// assigned by Compile (C6) — valid once a Program exists
	CaptureIndex int   // GroupStart capture slot; -1 if non-capturing
	OperandIndex int   // CaptureOperand operand slot; -1 if unassigned
	Other        int   // GroupStart<->GroupEnd partner index; -1 if unset
	Alternatives []int // GroupStart/GroupEnd: indices of Alternative children within the group
}

// NewStart returns a Start anchor check.
func NewStart() *Check { return &Check{Kind: Start, Quant: ExactlyOne, CaptureIndex: -1, OperandIndex: -1, Other: -1} }

// NewEnd returns an End anchor check.
func NewEnd() *Check { return &Check{Kind: End, Quant: ExactlyOne, CaptureIndex: -1, OperandIndex: -1, Other: -1} }

// NewAny returns an Any check.
func NewAny() *Check { return &Check{Kind: Any, Quant: ExactlyOne, CaptureIndex: -1, OperandIndex: -1, Other: -1} }

// NewAlternative returns an Alternative (the '|' separator).
func NewAlternative() *Check {
	return &Check{Kind: Alternative, Quant: ExactlyOne, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewGroupStart returns a GroupStart check, capturing iff capturing is true
// and optionally named.
func NewGroupStart(capturing bool, name string) *Check {
	return &Check{Kind: GroupStart, Quant: ExactlyOne, Capturing: capturing, Name: name, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewGroupEnd returns a GroupEnd check.
func NewGroupEnd() *Check {
	return &Check{Kind: GroupEnd, Quant: ExactlyOne, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewOpCode returns an OpCode check.
func NewOpCode(m il.OpCodeMatcher) *Check {
	return &Check{Kind: OpCode, Quant: ExactlyOne, Matcher: m, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewOpCodeOperand returns an OpCodeOperand check.
func NewOpCodeOperand(m il.OpCodeMatcher, lit il.Operand) *Check {
	return &Check{Kind: OpCodeOperand, Quant: ExactlyOne, Matcher: m, Literal: lit, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewCaptureOperand returns a CaptureOperand check, named or anonymous.
func NewCaptureOperand(m il.OpCodeMatcher, name string) *Check {
	return &Check{Kind: CaptureOperand, Quant: ExactlyOne, Matcher: m, Name: name, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewEqualsOperandName returns an EqualsOperand check referencing a name.
func NewEqualsOperandName(m il.OpCodeMatcher, name string) *Check {
	return &Check{Kind: EqualsOperand, Quant: ExactlyOne, Matcher: m, RefName: name, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewEqualsOperandIndex returns an EqualsOperand check referencing an
// operand-capture index directly.
func NewEqualsOperandIndex(m il.OpCodeMatcher, index int) *Check {
	return &Check{Kind: EqualsOperand, Quant: ExactlyOne, Matcher: m, RefIsIndex: true, RefIndex: index, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewMemberName returns a MemberName check.
func NewMemberName(kind MemberKind, m il.OpCodeMatcher, pattern string) *Check {
	return &Check{Kind: MemberName, Quant: ExactlyOne, Matcher: m, Member: kind, Pattern: pattern, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// NewFloatingQuantifier returns a floating Quantifier check, as emitted by
// the parser for a bare quantifier token before it is fused onto its
// preceding atom.
func NewFloatingQuantifier(q Quantifier) *Check {
	return &Check{Kind: FloatingQuantifier, Quant: q, CaptureIndex: -1, OperandIndex: -1, Other: -1}
}

// Quantifiable reports whether a quantifier may legally be attached to this
// check. Alternative and GroupStart are not quantifiable (a quantifier binds
// to a GroupEnd once compiled); a floating Quantifier cannot itself carry
// another quantifier.
func (c *Check) Quantifiable() bool {
	switch c.Kind {
	case Alternative, GroupStart, FloatingQuantifier:
		return false
	default:
		return true
	}
}

// String renders the check using the DSL's own literal syntax (without its
// attached quantifier, which callers append via Quant.String()).
func (c *Check) String() string {
	switch c.Kind {
	case Start:
		return "^"
	case End:
		return "$"
	case Any:
		return "."
	case Alternative:
		return "|"
	case GroupStart:
		if !c.Capturing {
			return "(?:"
		}
		if c.Name != "" {
			return fmt.Sprintf("(?'%s'", c.Name)
		}
		return "("
	case GroupEnd:
		return ")"
	case OpCode:
		return fmt.Sprintf("<op %s>", c.Matcher)
	case OpCodeOperand:
		return fmt.Sprintf("<op %s %s>", c.Matcher, formatLiteral(c.Literal))
	case CaptureOperand:
		if c.Name == "" {
			return fmt.Sprintf("<cap %s>", c.Matcher)
		}
		return fmt.Sprintf("<cap %s '%s'>", c.Matcher, c.Name)
	case EqualsOperand:
		if c.RefIsIndex {
			return fmt.Sprintf("<ceq %s '%d'>", c.Matcher, c.RefIndex)
		}
		return fmt.Sprintf("<ceq %s '%s'>", c.Matcher, c.RefName)
	case MemberName:
		return fmt.Sprintf("<%s %s %q>", c.Member, c.Matcher, c.Pattern)
	case FloatingQuantifier:
		return c.Quant.String()
	default:
		return "<?>"
	}
}

func formatLiteral(o il.Operand) string {
	switch v := o.(type) {
	case il.StringOperand:
		return fmt.Sprintf("%q", string(v))
	case il.Int64Operand:
		return fmt.Sprintf("%dl", int64(v))
	case il.Int8Operand:
		return fmt.Sprintf("%dsb", int8(v))
	case il.Uint8Operand:
		return fmt.Sprintf("%db", uint8(v))
	case il.Float32Operand:
		return fmt.Sprintf("%gf", float32(v))
	case il.Float64Operand:
		return fmt.Sprintf("%gd", float64(v))
	default:
		return strings.TrimSpace(o.String())
	}
}

package machine

import (
	"github.com/mna/ilregex/lang/il"
	"github.com/mna/ilregex/lang/ilerrors"
)

// Group is the span of one capturing group within a single match. Index 0
// is always the synthetic outer group spanning the whole match. Start and
// End are instruction-stream indices, End exclusive; an unmatched
// (optional, never-taken) group reports Matched == false.
type Group struct {
	Name    string
	Start   int
	End     int
	Matched bool
}

// OperandResult is one captured operand, bound by a <cap> check.
type OperandResult struct {
	Name    string
	Value   il.Operand
	Matched bool
}

// Kind returns the operand's dynamic kind; callers that need to branch on
// type before calling a typed accessor should use this first.
func (o OperandResult) Kind() il.OperandKind {
	if o.Value == nil {
		return il.KindNull
	}
	return o.Value.Kind()
}

// Int32 returns the operand as an int32, panicking with *ilerrors.TypeCastError
// if it does not hold one.
func (o OperandResult) Int32() int32 {
	v, ok := o.Value.(il.Int32Operand)
	if !ok {
		panic(&ilerrors.TypeCastError{Want: "int32", Got: o.Kind().String()})
	}
	return int32(v)
}

// Int64 returns the operand as an int64.
func (o OperandResult) Int64() int64 {
	v, ok := o.Value.(il.Int64Operand)
	if !ok {
		panic(&ilerrors.TypeCastError{Want: "int64", Got: o.Kind().String()})
	}
	return int64(v)
}

// String returns the operand as a string.
func (o OperandResult) String() string {
	v, ok := o.Value.(il.StringOperand)
	if !ok {
		panic(&ilerrors.TypeCastError{Want: "string", Got: o.Kind().String()})
	}
	return string(v)
}

// Float64 returns the operand as a float64.
func (o OperandResult) Float64() float64 {
	v, ok := o.Value.(il.Float64Operand)
	if !ok {
		panic(&ilerrors.TypeCastError{Want: "float64", Got: o.Kind().String()})
	}
	return float64(v)
}

// MemberRef returns the operand as a field/method/type/callsite reference.
func (o OperandResult) MemberRef() il.MemberRef {
	switch v := o.Value.(type) {
	case il.FieldOperand:
		return v.MemberRef
	case il.MethodOperand:
		return v.MemberRef
	case il.TypeOperand:
		return v.MemberRef
	case il.CallSiteOperand:
		return v.MemberRef
	default:
		panic(&ilerrors.TypeCastError{Want: "member reference", Got: o.Kind().String()})
	}
}

// MatchResult is the outcome of one successful match against an instruction
// stream, at a single start position. Group 0 is the whole match.
type MatchResult struct {
	Start, End int
	groups     []Group
	operands   []OperandResult
	named      map[string]int // group name -> index, for named-group lookup
}

// Groups returns every capturing group, indexed by compile-assigned capture
// index (0 is the whole match).
func (r *MatchResult) Groups() []Group { return r.groups }

// Group returns the group at index, or the zero Group if out of range.
func (r *MatchResult) Group(index int) Group {
	if index < 0 || index >= len(r.groups) {
		return Group{}
	}
	return r.groups[index]
}

// NamedGroup returns the group with the given name, and whether it exists.
func (r *MatchResult) NamedGroup(name string) (Group, bool) {
	idx, ok := r.named[name]
	if !ok {
		return Group{}, false
	}
	return r.groups[idx], true
}

// Operands returns every captured operand, indexed by compile-assigned
// operand index.
func (r *MatchResult) Operands() []OperandResult { return r.operands }

// Operand returns the operand at index, or the zero OperandResult if out of
// range.
func (r *MatchResult) Operand(index int) OperandResult {
	if index < 0 || index >= len(r.operands) {
		return OperandResult{}
	}
	return r.operands[index]
}

// NamedOperand returns the operand captured under the given name, and
// whether it was found.
func (r *MatchResult) NamedOperand(name string) (OperandResult, bool) {
	for _, o := range r.operands {
		if o.Name == name {
			return o, true
		}
	}
	return OperandResult{}, false
}

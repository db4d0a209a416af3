package il_test

import (
	"testing"

	"github.com/mna/ilregex/lang/il"
	"github.com/stretchr/testify/assert"
)

type fakeParam struct{ idx int }

func (p fakeParam) Index() int { return p.idx }

type fakeMethod struct{ params []il.Parameter }

func (m fakeMethod) Parameters() []il.Parameter { return m.params }
func (m fakeMethod) Variables() []il.Variable   { return nil }

type fakeInsn struct {
	op  il.OpCode
	arg il.Operand
}

func (i fakeInsn) OpCode() il.OpCode   { return i.op }
func (i fakeInsn) Operand() il.Operand { return i.arg }

func TestEffectiveOperandShortForm(t *testing.T) {
	matcher := il.NewFamilyMatcher(il.FamilyLdArg)
	insn := fakeInsn{op: il.Ldarg1}

	got := il.EffectiveOperand(insn, matcher, nil)
	assert.Equal(t, il.ParameterOperand{Index: 1}, got)

	method := fakeMethod{params: []il.Parameter{fakeParam{idx: 10}, fakeParam{idx: 11}, fakeParam{idx: 12}}}
	got = il.EffectiveOperand(insn, matcher, method)
	assert.Equal(t, il.ParameterOperand{Index: 11}, got)
}

func TestEffectiveOperandLdcShortcut(t *testing.T) {
	matcher := il.NewFamilyMatcher(il.FamilyLdcI4)
	insn := fakeInsn{op: il.LdcI4_3}
	assert.Equal(t, il.Int32Operand(3), il.EffectiveOperand(insn, matcher, nil))
}

func TestEffectiveOperandNonShortcutPassesThrough(t *testing.T) {
	matcher := il.NewOpCodeMatcher(il.LdcI4)
	insn := fakeInsn{op: il.LdcI4, arg: il.Int32Operand(99)}
	assert.Equal(t, il.Int32Operand(99), il.EffectiveOperand(insn, matcher, nil))
}

func TestOperandsEqualRelaxNumeric(t *testing.T) {
	assert.True(t, il.OperandsEqual(il.Int32Operand(5), il.Int64Operand(5), true))
	assert.False(t, il.OperandsEqual(il.Int32Operand(5), il.Int64Operand(5), false))
	assert.True(t, il.OperandsEqual(il.Int32Operand(5), il.Int32Operand(5), false))
}

func TestOperandsEqualMemberRef(t *testing.T) {
	a := il.FieldOperand{MemberRef: il.MemberRef{FullyQualifiedName: "X.Y", ModuleID: "m"}}
	b := il.FieldOperand{MemberRef: il.MemberRef{FullyQualifiedName: "X.Y", ModuleID: "m"}}
	c := il.FieldOperand{MemberRef: il.MemberRef{FullyQualifiedName: "X.Z", ModuleID: "m"}}
	assert.True(t, il.OperandsEqual(a, b, false))
	assert.False(t, il.OperandsEqual(a, c, false))
}

func TestEqualsInstruction(t *testing.T) {
	matcher := il.NewOpCodeMatcher(il.Ldstr)
	insn := fakeInsn{op: il.Ldstr, arg: il.StringOperand("hi")}
	assert.True(t, il.EqualsInstruction(insn, matcher, il.StringOperand("hi"), nil))
	assert.False(t, il.EqualsInstruction(insn, matcher, il.StringOperand("bye"), nil))
	assert.True(t, il.EqualsInstruction(insn, matcher, nil, nil))
}

package ast_test

import (
	"testing"

	"github.com/mna/ilregex/lang/ast"
	"github.com/mna/ilregex/lang/il"
	"github.com/stretchr/testify/assert"
)

func TestCheckStringRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		c    *ast.Check
		want string
	}{
		{"start", ast.NewStart(), "^"},
		{"end", ast.NewEnd(), "$"},
		{"any", ast.NewAny(), "."},
		{"alt", ast.NewAlternative(), "|"},
		{"group", ast.NewGroupStart(true, ""), "("},
		{"non-capture group", ast.NewGroupStart(false, ""), "(?:"},
		{"named group", ast.NewGroupStart(true, "foo"), "(?'foo'"},
		{"group end", ast.NewGroupEnd(), ")"},
		{"opcode", ast.NewOpCode(il.NewOpCodeMatcher(il.Call)), "<op call>"},
		{"opcode family", ast.NewOpCode(il.NewFamilyMatcher(il.FamilyLdArg)), "<op %ldarg>"},
		{"opcode operand", ast.NewOpCodeOperand(il.NewOpCodeMatcher(il.LdcI4), il.Int32Operand(42)), `<op ldc.i4 42>`},
		{"cap anon", ast.NewCaptureOperand(il.NewOpCodeMatcher(il.Ldstr), ""), "<cap ldstr>"},
		{"cap named", ast.NewCaptureOperand(il.NewOpCodeMatcher(il.Ldstr), "msg"), "<cap ldstr 'msg'>"},
		{"ceq name", ast.NewEqualsOperandName(il.NewOpCodeMatcher(il.Ldstr), "msg"), "<ceq ldstr 'msg'>"},
		{"ceq index", ast.NewEqualsOperandIndex(il.NewOpCodeMatcher(il.Ldstr), 2), "<ceq ldstr '2'>"},
		{"member field", ast.NewMemberName(ast.MemberField, il.NewOpCodeMatcher(il.Ldfld), "Count"), `<fld ldfld "Count">`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.c.String())
		})
	}
}

func TestQuantifiable(t *testing.T) {
	assert.False(t, ast.NewAlternative().Quantifiable())
	assert.False(t, ast.NewFloatingQuantifier(ast.ExactlyOne).Quantifiable())
	assert.False(t, ast.NewGroupStart(true, "").Quantifiable())
	assert.True(t, ast.NewGroupEnd().Quantifiable())
	assert.True(t, ast.NewAny().Quantifiable())
	assert.True(t, ast.NewOpCode(il.NewOpCodeMatcher(il.Nop)).Quantifiable())
}

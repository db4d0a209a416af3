package il_test

import (
	"testing"

	"github.com/mna/ilregex/lang/il"
	"github.com/stretchr/testify/assert"
)

func TestFamilyMatches(t *testing.T) {
	cases := []struct {
		fam  il.Family
		op   il.OpCode
		want bool
	}{
		{il.FamilyLdArg, il.Ldarg0, true},
		{il.FamilyLdArg, il.LdargS, true},
		{il.FamilyLdArg, il.Starg, false},
		{il.FamilyLdcI4, il.LdcI4_M1, true},
		{il.FamilyLdcI4, il.LdcI8, false},
		{il.FamilyConv, il.ConvI4, true},
		{il.FamilyConv, il.ConvU1, true},
		{il.FamilyConv, il.Box, false},
		{il.AnyFamily, il.Nop, true},
		{il.AnyFamily, il.Callvirt, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.fam.Matches(c.op), "%s.Matches(%s)", c.fam, c.op)
	}
}

func TestParseFamily(t *testing.T) {
	f, ok := il.ParseFamily("LDARG")
	assert.True(t, ok)
	assert.Equal(t, il.FamilyLdArg, f)

	_, ok = il.ParseFamily("nosuchfamily")
	assert.False(t, ok)

	f, ok = il.ParseFamily("CONV")
	assert.True(t, ok)
	assert.Equal(t, il.FamilyConv, f)
	assert.Equal(t, "conv", f.String())
}

func TestOpCodeMatcher(t *testing.T) {
	m := il.NewFamilyMatcher(il.FamilyCall)
	assert.True(t, m.IsFamily())
	assert.True(t, m.Matches(il.Call))
	assert.True(t, m.Matches(il.Callvirt))
	assert.False(t, m.Matches(il.Newobj))
	assert.Equal(t, "%call", m.String())

	cm := il.NewOpCodeMatcher(il.Box)
	assert.False(t, cm.IsFamily())
	assert.True(t, cm.Matches(il.Box))
	assert.Equal(t, "box", cm.String())
}

package il_test

import (
	"testing"

	"github.com/mna/ilregex/lang/il"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOpCodeRoundTrip(t *testing.T) {
	cases := []string{"nop", "ret", "ldarg.0", "LDARG.0", "ldarg_0", "call", "callvirt", "box", "unbox.any", "conv.i4", "ldc.i4.m1"}
	for _, name := range cases {
		t.Run(name, func(t *testing.T) {
			op, ok := il.ParseOpCode(name)
			require.True(t, ok, "expected %q to resolve", name)
			// the canonical name round-trips through String, though case and
			// separators may normalize.
			op2, ok2 := il.ParseOpCode(op.String())
			require.True(t, ok2)
			assert.Equal(t, op, op2)
		})
	}
}

func TestParseOpCodeUnknown(t *testing.T) {
	_, ok := il.ParseOpCode("not.a.real.opcode")
	assert.False(t, ok)
}

func TestOpCodeNames(t *testing.T) {
	names := il.OpCodeNames()
	assert.NotEmpty(t, names)
	for _, n := range names {
		_, ok := il.ParseOpCode(n)
		assert.Truef(t, ok, "canonical name %q should parse back", n)
	}
}

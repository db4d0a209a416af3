// Package il models the instruction stream that the regex engine matches
// against: opcodes, operands and the opcode families ("multi-opcode"
// matchers) that let a pattern treat semantically equivalent opcode variants
// (e.g. every "load argument" shortcut) as a single atom.
//
// The package intentionally does not depend on any particular bytecode
// reader/writer library: Instruction, Method, Parameter and Variable are the
// only seams to an external assembly model, and OpCode/Operand are concrete,
// self-contained value types.
package il

import "fmt"

// OpCode identifies a single virtual-machine operation. The enumeration below
// is a representative subset of the Common Intermediate Language, enough to
// exercise every family and operand kind the engine needs to reason about;
// it is not exhaustive.
type OpCode uint16

const ( //nolint:revive
	Nop OpCode = iota
	Ret
	Dup
	Pop
	Break

	Add
	Sub
	Mul
	Div
	Rem
	And
	Or
	Xor
	Shl
	Shr
	Neg
	Not

	Ceq
	Cgt
	Clt

	Br
	Brtrue
	Brfalse
	Switch
	Leave
	Endfinally
	Throw
	Rethrow

	Ldnull
	Ldstr

	LdcI4
	LdcI4_0
	LdcI4_1
	LdcI4_2
	LdcI4_3
	LdcI4_4
	LdcI4_5
	LdcI4_6
	LdcI4_7
	LdcI4_8
	LdcI4_M1
	LdcI4S
	LdcI8
	LdcR4
	LdcR8

	Ldarg
	Ldarg0
	Ldarg1
	Ldarg2
	Ldarg3
	LdargS
	Ldarga
	LdargaS
	Starg
	StargS

	Ldloc
	Ldloc0
	Ldloc1
	Ldloc2
	Ldloc3
	LdlocS
	Ldloca
	LdlocaS
	Stloc
	Stloc0
	Stloc1
	Stloc2
	Stloc3
	StlocS

	Ldfld
	Ldflda
	Stfld
	Ldsfld
	Ldsflda
	Stsfld

	Call
	Callvirt
	Newobj
	Ldftn
	Ldvirtftn

	Castclass
	Isinst
	Box
	Unbox
	UnboxAny
	Initobj
	Ldtoken

	Newarr
	Ldlen
	Ldelem
	Ldelema
	Stelem

	ConvI4
	ConvI8
	ConvR4
	ConvR8
	ConvU1

	opcodeMax
)

var opcodeNames = [...]string{
	Nop:        "nop",
	Ret:        "ret",
	Dup:        "dup",
	Pop:        "pop",
	Break:      "break",
	Add:        "add",
	Sub:        "sub",
	Mul:        "mul",
	Div:        "div",
	Rem:        "rem",
	And:        "and",
	Or:         "or",
	Xor:        "xor",
	Shl:        "shl",
	Shr:        "shr",
	Neg:        "neg",
	Not:        "not",
	Ceq:        "ceq",
	Cgt:        "cgt",
	Clt:        "clt",
	Br:         "br",
	Brtrue:     "brtrue",
	Brfalse:    "brfalse",
	Switch:     "switch",
	Leave:      "leave",
	Endfinally: "endfinally",
	Throw:      "throw",
	Rethrow:    "rethrow",
	Ldnull:     "ldnull",
	Ldstr:      "ldstr",
	LdcI4:      "ldc.i4",
	LdcI4_0:    "ldc.i4.0",
	LdcI4_1:    "ldc.i4.1",
	LdcI4_2:    "ldc.i4.2",
	LdcI4_3:    "ldc.i4.3",
	LdcI4_4:    "ldc.i4.4",
	LdcI4_5:    "ldc.i4.5",
	LdcI4_6:    "ldc.i4.6",
	LdcI4_7:    "ldc.i4.7",
	LdcI4_8:    "ldc.i4.8",
	LdcI4_M1:   "ldc.i4.m1",
	LdcI4S:     "ldc.i4.s",
	LdcI8:      "ldc.i8",
	LdcR4:      "ldc.r4",
	LdcR8:      "ldc.r8",
	Ldarg:      "ldarg",
	Ldarg0:     "ldarg.0",
	Ldarg1:     "ldarg.1",
	Ldarg2:     "ldarg.2",
	Ldarg3:     "ldarg.3",
	LdargS:     "ldarg.s",
	Ldarga:     "ldarga",
	LdargaS:    "ldarga.s",
	Starg:      "starg",
	StargS:     "starg.s",
	Ldloc:      "ldloc",
	Ldloc0:     "ldloc.0",
	Ldloc1:     "ldloc.1",
	Ldloc2:     "ldloc.2",
	Ldloc3:     "ldloc.3",
	LdlocS:     "ldloc.s",
	Ldloca:     "ldloca",
	LdlocaS:    "ldloca.s",
	Stloc:      "stloc",
	Stloc0:     "stloc.0",
	Stloc1:     "stloc.1",
	Stloc2:     "stloc.2",
	Stloc3:     "stloc.3",
	StlocS:     "stloc.s",
	Ldfld:      "ldfld",
	Ldflda:     "ldflda",
	Stfld:      "stfld",
	Ldsfld:     "ldsfld",
	Ldsflda:    "ldsflda",
	Stsfld:     "stsfld",
	Call:       "call",
	Callvirt:   "callvirt",
	Newobj:     "newobj",
	Ldftn:      "ldftn",
	Ldvirtftn:  "ldvirtftn",
	Castclass:  "castclass",
	Isinst:     "isinst",
	Box:        "box",
	Unbox:      "unbox",
	UnboxAny:   "unbox.any",
	Initobj:    "initobj",
	Ldtoken:    "ldtoken",
	Newarr:     "newarr",
	Ldlen:      "ldlen",
	Ldelem:     "ldelem",
	Ldelema:    "ldelema",
	Stelem:     "stelem",
	ConvI4:     "conv.i4",
	ConvI8:     "conv.i8",
	ConvR4:     "conv.r4",
	ConvR8:     "conv.r8",
	ConvU1:     "conv.u1",
}

func (op OpCode) String() string {
	if op < opcodeMax {
		if name := opcodeNames[op]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal opcode (%d)", uint16(op))
}

// ParseOpCode resolves a textual opcode name to its OpCode value. Matching is
// case-insensitive and treats '.' and '_' as interchangeable, per the DSL's
// opcode argument syntax.
func ParseOpCode(name string) (OpCode, bool) {
	norm := normalizeOpcodeName(name)
	op, ok := reverseOpcodeNames()[norm]
	return op, ok
}

func normalizeOpcodeName(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		case c == '_':
			b[i] = '.'
		}
	}
	return string(b)
}

var reverseOpcodeNamesCache map[string]OpCode

func reverseOpcodeNames() map[string]OpCode {
	if reverseOpcodeNamesCache != nil {
		return reverseOpcodeNamesCache
	}
	m := make(map[string]OpCode, len(opcodeNames))
	for op, name := range opcodeNames {
		if name == "" {
			continue
		}
		m[name] = OpCode(op)
	}
	reverseOpcodeNamesCache = m
	return m
}

// OpCodeNames returns the ordered list of concrete opcode names recognized by
// the engine, suitable as input to external tooling that needs to derive a
// recognizer (e.g. an opcode-name-to-trie exporter).
func OpCodeNames() []string {
	names := make([]string, 0, len(opcodeNames))
	for op := OpCode(0); op < opcodeMax; op++ {
		if n := opcodeNames[op]; n != "" {
			names = append(names, n)
		}
	}
	return names
}

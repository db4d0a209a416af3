package il

import "strings"

// Family is a named set of opcodes that are logically equivalent for
// matching purposes (a "multi-opcode" in the DSL, written "%name"). The zero
// value is not a valid Family; use the Family* constants or AnyFamily.
type Family uint8

const ( //nolint:revive
	FamilyLdArg Family = iota + 1
	FamilyStArg
	FamilyLdLoc
	FamilyStLoc
	FamilyLdcI4
	FamilyCall
	FamilyConv
	AnyFamily
)

var familyNames = map[Family]string{
	FamilyLdArg: "ldarg",
	FamilyStArg: "starg",
	FamilyLdLoc: "ldloc",
	FamilyStLoc: "stloc",
	FamilyLdcI4: "ldc.i4",
	FamilyCall:  "call",
	FamilyConv:  "conv",
	AnyFamily:   "any",
}

var familyMembers = map[Family]map[OpCode]bool{
	FamilyLdArg: setOf(Ldarg, Ldarg0, Ldarg1, Ldarg2, Ldarg3, LdargS),
	FamilyStArg: setOf(Starg, StargS),
	FamilyLdLoc: setOf(Ldloc, Ldloc0, Ldloc1, Ldloc2, Ldloc3, LdlocS),
	FamilyStLoc: setOf(Stloc, Stloc0, Stloc1, Stloc2, Stloc3, StlocS),
	FamilyLdcI4: setOf(LdcI4, LdcI4_0, LdcI4_1, LdcI4_2, LdcI4_3, LdcI4_4, LdcI4_5, LdcI4_6, LdcI4_7, LdcI4_8, LdcI4_M1, LdcI4S),
	FamilyCall:  setOf(Call, Callvirt),
	FamilyConv:  setOf(ConvI4, ConvI8, ConvR4, ConvR8, ConvU1),
}

func setOf(ops ...OpCode) map[OpCode]bool {
	m := make(map[OpCode]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

// Matches reports whether op belongs to the family. AnyFamily matches every
// opcode.
func (f Family) Matches(op OpCode) bool {
	if f == AnyFamily {
		return true
	}
	return familyMembers[f][op]
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "invalid family"
}

// ParseFamily resolves the textual family name (without the leading '%') to
// a Family, case-insensitively.
func ParseFamily(name string) (Family, bool) {
	name = strings.ToLower(name)
	if name == "any" {
		return AnyFamily, true
	}
	for f, n := range familyNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// OpCodeMatcher is either a single concrete opcode or a Family. The zero
// value is a concrete matcher for opcode 0 (Nop); use NewOpCodeMatcher or
// NewFamilyMatcher.
type OpCodeMatcher struct {
	family Family // zero means "concrete opcode matcher"
	op     OpCode
	isFam  bool
}

// NewOpCodeMatcher returns a matcher for a single concrete opcode.
func NewOpCodeMatcher(op OpCode) OpCodeMatcher { return OpCodeMatcher{op: op} }

// NewFamilyMatcher returns a matcher for an opcode family.
func NewFamilyMatcher(f Family) OpCodeMatcher { return OpCodeMatcher{family: f, isFam: true} }

// IsFamily reports whether the matcher is a family rather than a concrete
// opcode.
func (m OpCodeMatcher) IsFamily() bool { return m.isFam }

// FamilyValue returns the matcher's family; only meaningful when IsFamily is true.
func (m OpCodeMatcher) FamilyValue() Family { return m.family }

// OpCode returns the matcher's concrete opcode; only meaningful when
// IsFamily is false.
func (m OpCodeMatcher) OpCode() OpCode { return m.op }

// Matches reports whether the given opcode satisfies the matcher: equal to
// the concrete opcode, or a member of the family.
func (m OpCodeMatcher) Matches(op OpCode) bool {
	if m.isFam {
		return m.family.Matches(op)
	}
	return m.op == op
}

func (m OpCodeMatcher) String() string {
	if m.isFam {
		return "%" + m.family.String()
	}
	return m.op.String()
}

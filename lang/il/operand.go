package il

import "fmt"

// OperandKind identifies the dynamic type carried by an Operand.
type OperandKind uint8

const ( //nolint:revive
	KindNull OperandKind = iota
	KindInt32
	KindInt64
	KindInt8
	KindUint8
	KindFloat32
	KindFloat64
	KindString
	KindParameter
	KindVariable
	KindField
	KindMethod
	KindType
	KindCallSite
	KindNestedInstruction
	KindNestedInstructions
)

func (k OperandKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindInt8:
		return "int8"
	case KindUint8:
		return "uint8"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindParameter:
		return "parameter"
	case KindVariable:
		return "variable"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindType:
		return "type"
	case KindCallSite:
		return "callsite"
	case KindNestedInstruction:
		return "nested-instruction"
	case KindNestedInstructions:
		return "nested-instructions"
	default:
		return fmt.Sprintf("unknown operand kind (%d)", k)
	}
}

// Operand is the tagged value carried by an instruction. Every operand kind
// listed in OperandKind has a corresponding concrete type implementing this
// interface; type-switch on the concrete type (or branch on Kind) to inspect
// the value.
type Operand interface {
	Kind() OperandKind
	String() string
}

// NullOperand is the operand of instructions with no inline argument.
type NullOperand struct{}

func (NullOperand) Kind() OperandKind { return KindNull }
func (NullOperand) String() string    { return "<null>" }

// Int32Operand is a 32-bit integer operand (the default for bare numeric
// literals in the DSL).
type Int32Operand int32

func (Int32Operand) Kind() OperandKind   { return KindInt32 }
func (v Int32Operand) String() string    { return fmt.Sprintf("%d", int32(v)) }

// Int64Operand is a 64-bit integer operand ('l' suffix in the DSL).
type Int64Operand int64

func (Int64Operand) Kind() OperandKind { return KindInt64 }
func (v Int64Operand) String() string  { return fmt.Sprintf("%d", int64(v)) }

// Int8Operand is a signed 8-bit integer operand ('sb' suffix in the DSL).
type Int8Operand int8

func (Int8Operand) Kind() OperandKind { return KindInt8 }
func (v Int8Operand) String() string  { return fmt.Sprintf("%d", int8(v)) }

// Uint8Operand is an unsigned 8-bit integer operand ('b' suffix in the DSL).
type Uint8Operand uint8

func (Uint8Operand) Kind() OperandKind { return KindUint8 }
func (v Uint8Operand) String() string  { return fmt.Sprintf("%d", uint8(v)) }

// Float32Operand is a 32-bit float operand ('f' suffix in the DSL).
type Float32Operand float32

func (Float32Operand) Kind() OperandKind { return KindFloat32 }
func (v Float32Operand) String() string  { return fmt.Sprintf("%g", float32(v)) }

// Float64Operand is a 64-bit float operand ('d' suffix in the DSL).
type Float64Operand float64

func (Float64Operand) Kind() OperandKind { return KindFloat64 }
func (v Float64Operand) String() string  { return fmt.Sprintf("%g", float64(v)) }

// StringOperand is a string literal operand.
type StringOperand string

func (StringOperand) Kind() OperandKind { return KindString }
func (v StringOperand) String() string  { return string(v) }

// ParameterOperand is an implicit or explicit reference to a method
// parameter by index (e.g. the operand synthesized for ldarg.0, or the
// operand of ldarg <n>).
type ParameterOperand struct{ Index int }

func (ParameterOperand) Kind() OperandKind { return KindParameter }
func (v ParameterOperand) String() string  { return fmt.Sprintf("arg%d", v.Index) }

// VariableOperand is an implicit or explicit reference to a local variable
// by index.
type VariableOperand struct{ Index int }

func (VariableOperand) Kind() OperandKind { return KindVariable }
func (v VariableOperand) String() string  { return fmt.Sprintf("loc%d", v.Index) }

// MemberRef is the shared shape of field/method/type/callsite reference
// operands: a fully qualified name plus the identifier of the module that
// declares it. Two references are equal iff both fields match.
type MemberRef struct {
	FullyQualifiedName string
	ModuleID           string
}

// FieldOperand references a field.
type FieldOperand struct{ MemberRef }

func (FieldOperand) Kind() OperandKind { return KindField }
func (v FieldOperand) String() string  { return v.FullyQualifiedName }

// MethodOperand references a method.
type MethodOperand struct{ MemberRef }

func (MethodOperand) Kind() OperandKind { return KindMethod }
func (v MethodOperand) String() string  { return v.FullyQualifiedName }

// TypeOperand references a type.
type TypeOperand struct{ MemberRef }

func (TypeOperand) Kind() OperandKind { return KindType }
func (v TypeOperand) String() string  { return v.FullyQualifiedName }

// CallSiteOperand references a callsite (e.g. a calli signature site).
type CallSiteOperand struct{ MemberRef }

func (CallSiteOperand) Kind() OperandKind { return KindCallSite }
func (v CallSiteOperand) String() string  { return v.FullyQualifiedName }

// NestedInstructionOperand wraps a single embedded Instruction, such as a
// branch target. Nested instruction operands compare by identity to avoid
// infinite recursion on cyclic branch graphs.
type NestedInstructionOperand struct{ Instruction Instruction }

func (NestedInstructionOperand) Kind() OperandKind { return KindNestedInstruction }
func (v NestedInstructionOperand) String() string   { return "<nested instruction>" }

// NestedInstructionsOperand wraps a sequence of embedded Instructions, such
// as a switch's jump table.
type NestedInstructionsOperand struct{ Instructions []Instruction }

func (NestedInstructionsOperand) Kind() OperandKind { return KindNestedInstructions }
func (v NestedInstructionsOperand) String() string   { return "<nested instructions>" }

// Instruction abstracts a single element of the instruction stream being
// matched. Implementations are supplied by the caller; the engine only ever
// reads OpCode and Operand.
type Instruction interface {
	OpCode() OpCode
	Operand() Operand
}

// Parameter is an entry in a Method's parameter list, resolved by index when
// synthesizing the operand of a short-form load/store-argument opcode.
type Parameter interface {
	Index() int
}

// Variable is an entry in a Method's local variable list, resolved by index
// when synthesizing the operand of a short-form load/store-local opcode.
type Variable interface {
	Index() int
}

// Method supplies the parameter and variable lists needed to resolve
// short-form operands (opcodes whose operand is implicit in the opcode
// itself, e.g. "load argument 0"). A nil Method means such resolution is
// unavailable; matching a short-form opcode against a family that requires
// it then synthesizes an operand from the index alone.
type Method interface {
	Parameters() []Parameter
	Variables() []Variable
}

// shortFormArgIndex returns the implicit parameter/local index for
// shortcut opcodes, and ok=false for opcodes that are not shortcuts (in
// which case the operand must be read from the instruction itself).
func shortFormArgIndex(op OpCode) (int, bool) {
	switch op {
	case Ldarg0:
		return 0, true
	case Ldarg1:
		return 1, true
	case Ldarg2:
		return 2, true
	case Ldarg3:
		return 3, true
	case Ldloc0, Stloc0:
		return 0, true
	case Ldloc1, Stloc1:
		return 1, true
	case Ldloc2, Stloc2:
		return 2, true
	case Ldloc3, Stloc3:
		return 3, true
	default:
		return 0, false
	}
}

// shortFormIntLiteral returns the implicit integer constant for ldc.i4.*
// shortcut opcodes.
func shortFormIntLiteral(op OpCode) (int32, bool) {
	switch op {
	case LdcI4_0:
		return 0, true
	case LdcI4_1:
		return 1, true
	case LdcI4_2:
		return 2, true
	case LdcI4_3:
		return 3, true
	case LdcI4_4:
		return 4, true
	case LdcI4_5:
		return 5, true
	case LdcI4_6:
		return 6, true
	case LdcI4_7:
		return 7, true
	case LdcI4_8:
		return 8, true
	case LdcI4_M1:
		return -1, true
	default:
		return 0, false
	}
}

// EffectiveOperand returns the operand to use for equality/capture purposes:
// the instruction's own operand, except for shortcut opcodes belonging to a
// family that implies a parameter, variable or integer-literal semantics, in
// which case the implicit value is synthesized (resolving through method
// when it is non-nil and the family requires parameter/variable identity).
func EffectiveOperand(insn Instruction, matcher OpCodeMatcher, method Method) Operand {
	op := insn.OpCode()

	if matcher.IsFamily() {
		switch matcher.FamilyValue() {
		case FamilyLdArg, FamilyStArg:
			if idx, ok := shortFormArgIndex(op); ok {
				if method != nil {
					if params := method.Parameters(); idx < len(params) {
						return ParameterOperand{Index: params[idx].Index()}
					}
				}
				return ParameterOperand{Index: idx}
			}
		case FamilyLdLoc, FamilyStLoc:
			if idx, ok := shortFormArgIndex(op); ok {
				if method != nil {
					if vars := method.Variables(); idx < len(vars) {
						return VariableOperand{Index: vars[idx].Index()}
					}
				}
				return VariableOperand{Index: idx}
			}
		case FamilyLdcI4:
			if lit, ok := shortFormIntLiteral(op); ok {
				return Int32Operand(lit)
			}
		}
	}
	return insn.Operand()
}

// EqualsInstruction reports whether insn matches the opcode matcher and,
// when expectedOperand is non-nil, whether its effective operand equals
// expectedOperand. method supplies optional parameter/variable resolution
// for short-form opcodes.
func EqualsInstruction(insn Instruction, matcher OpCodeMatcher, expectedOperand Operand, method Method) bool {
	if !matcher.Matches(insn.OpCode()) {
		return false
	}
	if expectedOperand == nil {
		return true
	}
	got := EffectiveOperand(insn, matcher, method)
	return OperandsEqual(got, expectedOperand, matcher.IsFamily())
}

// OperandsEqual compares two operands for equality. Reference operands
// (field/method/type/callsite) compare by fully qualified name and module
// id. Nested-instruction operands compare by identity. Primitive operands
// compare by value and type, except that when relaxNumeric is true (the
// comparison originates from a family matcher rather than a concrete
// opcode), two primitive numeric operands of different concrete types
// compare by numeric value.
func OperandsEqual(a, b Operand, relaxNumeric bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() == b.Kind() {
		switch av := a.(type) {
		case NullOperand:
			return true
		case Int32Operand:
			return av == b.(Int32Operand)
		case Int64Operand:
			return av == b.(Int64Operand)
		case Int8Operand:
			return av == b.(Int8Operand)
		case Uint8Operand:
			return av == b.(Uint8Operand)
		case Float32Operand:
			return av == b.(Float32Operand)
		case Float64Operand:
			return av == b.(Float64Operand)
		case StringOperand:
			return av == b.(StringOperand)
		case ParameterOperand:
			return av == b.(ParameterOperand)
		case VariableOperand:
			return av == b.(VariableOperand)
		case FieldOperand:
			bv := b.(FieldOperand)
			return av.MemberRef == bv.MemberRef
		case MethodOperand:
			bv := b.(MethodOperand)
			return av.MemberRef == bv.MemberRef
		case TypeOperand:
			bv := b.(TypeOperand)
			return av.MemberRef == bv.MemberRef
		case CallSiteOperand:
			bv := b.(CallSiteOperand)
			return av.MemberRef == bv.MemberRef
		case NestedInstructionOperand:
			bv := b.(NestedInstructionOperand)
			return av.Instruction == bv.Instruction
		default:
			return false
		}
	}

	if !relaxNumeric {
		return false
	}
	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	return aok && bok && af == bf
}

func numericValue(o Operand) (float64, bool) {
	switch v := o.(type) {
	case Int32Operand:
		return float64(v), true
	case Int64Operand:
		return float64(v), true
	case Int8Operand:
		return float64(v), true
	case Uint8Operand:
		return float64(v), true
	case Float32Operand:
		return float64(v), true
	case Float64Operand:
		return float64(v), true
	default:
		return 0, false
	}
}

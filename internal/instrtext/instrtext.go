// Package instrtext reads the line-oriented instruction listing format used
// by the ilregex command-line tool to supply a subject instruction stream
// without requiring a real CIL decoder: one instruction per line,
// "opcode[ operand]", blank lines and "#"-prefixed comments ignored.
package instrtext

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mna/ilregex/lang/il"
)

// Instruction is a single parsed line.
type Instruction struct {
	Op  il.OpCode
	Arg il.Operand
}

func (i Instruction) OpCode() il.OpCode  { return i.Op }
func (i Instruction) Operand() il.Operand { return i.Arg }

// Parse reads a full instruction listing from r.
func Parse(r io.Reader) ([]il.Instruction, error) {
	sc := bufio.NewScanner(r)
	var out []il.Instruction
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		insn, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("instrtext: line %d: %w", lineNo, err)
		}
		out = append(out, insn)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLine(line string) (Instruction, error) {
	fields := strings.SplitN(line, " ", 2)
	op, ok := il.ParseOpCode(fields[0])
	if !ok {
		return Instruction{}, fmt.Errorf("unknown opcode %q", fields[0])
	}
	if len(fields) == 1 {
		return Instruction{Op: op, Arg: il.NullOperand{}}, nil
	}
	arg, err := parseOperand(strings.TrimSpace(fields[1]))
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{Op: op, Arg: arg}, nil
}

// parseOperand accepts a double-quoted string (taken verbatim; escapes are
// not decoded), or a number with an optional type-tag suffix (l, sb, b, f,
// d; without a suffix the number must be an int32 integer), or a bare
// reference of the form kind:name (one of fld/mth/typ/cls) for member
// operands.
func parseOperand(text string) (il.Operand, error) {
	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) && len(text) >= 2 {
		return il.StringOperand(text[1 : len(text)-1]), nil
	}
	if idx := strings.Index(text, ":"); idx > 0 {
		kind, name := text[:idx], text[idx+1:]
		ref := il.MemberRef{FullyQualifiedName: name}
		switch kind {
		case "fld":
			return il.FieldOperand{MemberRef: ref}, nil
		case "mth":
			return il.MethodOperand{MemberRef: ref}, nil
		case "typ":
			return il.TypeOperand{MemberRef: ref}, nil
		case "cls":
			return il.CallSiteOperand{MemberRef: ref}, nil
		}
	}
	for _, suf := range []string{"sb", "l", "b", "f", "d"} {
		if strings.HasSuffix(text, suf) {
			body := strings.TrimSuffix(text, suf)
			switch suf {
			case "sb":
				n, err := strconv.ParseInt(body, 10, 8)
				return il.Int8Operand(n), err
			case "l":
				n, err := strconv.ParseInt(body, 10, 64)
				return il.Int64Operand(n), err
			case "b":
				n, err := strconv.ParseUint(body, 10, 8)
				return il.Uint8Operand(n), err
			case "f":
				n, err := strconv.ParseFloat(body, 32)
				return il.Float32Operand(n), err
			case "d":
				n, err := strconv.ParseFloat(body, 64)
				return il.Float64Operand(n), err
			}
		}
	}
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid operand literal %q", text)
	}
	return il.Int32Operand(n), nil
}

package machine

import (
	"github.com/mna/ilregex/lang/ast"
	"github.com/mna/ilregex/lang/compiler"
	"github.com/mna/ilregex/lang/il"
)

// cont is a match continuation: given the instruction-stream position
// reached so far, it attempts to match the remainder of the pattern and
// reports overall success. Continuations compose the backtracking search:
// an atom or group tries a candidate consumption, calls its continuation,
// and on failure undoes any capture it recorded before trying the next
// candidate.
type cont func(ip int) bool

// matcher holds the mutable state of a single match attempt: the
// instruction stream, capture slots and the window ^ and $ anchor against.
type matcher struct {
	prog   *compiler.Program
	instrs []il.Instruction
	method il.Method
	dict   *il.OperandDictionary
	swap   bool

	windowStart, windowEnd int

	groups   []Group
	operands []il.Operand
	opSet    []bool
}

func newMatcher(prog *compiler.Program, instrs []il.Instruction, method il.Method, dict *il.OperandDictionary, swap bool, windowStart, windowEnd int) *matcher {
	return &matcher{
		prog:        prog,
		instrs:      instrs,
		method:      method,
		dict:        dict,
		swap:        swap,
		windowStart: windowStart,
		windowEnd:   windowEnd,
		groups:      make([]Group, prog.GroupCount),
		operands:    make([]il.Operand, prog.OperandCount),
		opSet:       make([]bool, prog.OperandCount),
	}
}

// run matches prog.Checks[pc:limit] starting at instruction position ip,
// invoking k once that range is exhausted. It returns whether some
// completion (possibly many backtracked attempts later) made k succeed.
func (m *matcher) run(pc, limit, ip int, k cont) bool {
	if pc == limit {
		return k(ip)
	}
	c := m.prog.Checks[pc]
	switch c.Kind {
	case ast.GroupStart:
		return m.runGroup(c, pc, limit, ip, k)
	default:
		return m.runAtom(c, pc, limit, ip, k)
	}
}

// runAtom drives the quantifier loop for a single-instruction check (Start,
// End, Any, OpCode, OpCodeOperand, CaptureOperand, EqualsOperand,
// MemberName).
func (m *matcher) runAtom(c *ast.Check, pc, limit, ip int, k cont) bool {
	next := pc + 1
	min, max := c.Quant.Min, c.Quant.Max
	greedy := c.Quant.EffectiveGreedy(m.swap)
	return m.repeatAtom(c, next, limit, ip, 0, min, max, greedy, k)
}

func (m *matcher) repeatAtom(c *ast.Check, next, limit, ip, count, min, max int, greedy bool, k cont) bool {
	tryMore := func() bool {
		if count >= max {
			return false
		}
		nextIP, undo, ok := m.matchOne(c, ip)
		if !ok {
			return false
		}
		// A zero-width repetition (possible only for ^ and $) can never make
		// further progress; take it at most once more and stop there instead
		// of looping forever.
		repMax := max
		if nextIP == ip {
			repMax = count + 1
		}
		if m.repeatAtom(c, next, limit, nextIP, count+1, min, repMax, greedy, k) {
			return true
		}
		undo()
		return false
	}
	tryDone := func() bool {
		if count < min {
			return false
		}
		return m.run(next, limit, ip, k)
	}
	if greedy {
		if tryMore() {
			return true
		}
		return tryDone()
	}
	if tryDone() {
		return true
	}
	return tryMore()
}

// matchOne attempts to consume exactly one instruction (zero for anchors)
// against c, returning the resulting position, an undo func restoring any
// capture state it wrote, and whether it matched.
func (m *matcher) matchOne(c *ast.Check, ip int) (int, func(), bool) {
	noop := func() {}
	switch c.Kind {
	case ast.Start:
		if ip == m.windowStart {
			return ip, noop, true
		}
		return ip, noop, false
	case ast.End:
		if ip == m.windowEnd {
			return ip, noop, true
		}
		return ip, noop, false
	case ast.Any:
		if ip >= m.windowEnd {
			return ip, noop, false
		}
		return ip + 1, noop, true
	case ast.OpCode:
		if ip >= m.windowEnd || !c.Matcher.Matches(m.instrs[ip].OpCode()) {
			return ip, noop, false
		}
		return ip + 1, noop, true
	case ast.OpCodeOperand:
		if ip >= m.windowEnd || !il.EqualsInstruction(m.instrs[ip], c.Matcher, c.Literal, m.method) {
			return ip, noop, false
		}
		return ip + 1, noop, true
	case ast.CaptureOperand:
		if ip >= m.windowEnd || !c.Matcher.Matches(m.instrs[ip].OpCode()) {
			return ip, noop, false
		}
		val := il.EffectiveOperand(m.instrs[ip], c.Matcher, m.method)
		idx := c.OperandIndex
		oldVal, oldSet := m.operands[idx], m.opSet[idx]
		m.operands[idx], m.opSet[idx] = val, true
		undo := func() { m.operands[idx], m.opSet[idx] = oldVal, oldSet }
		return ip + 1, undo, true
	case ast.EqualsOperand:
		if ip >= m.windowEnd || !c.Matcher.Matches(m.instrs[ip].OpCode()) {
			return ip, noop, false
		}
		expected, ok := m.resolveRef(c)
		if !ok {
			return ip, noop, false
		}
		got := il.EffectiveOperand(m.instrs[ip], c.Matcher, m.method)
		if !il.OperandsEqual(got, expected, c.Matcher.IsFamily()) {
			return ip, noop, false
		}
		return ip + 1, noop, true
	case ast.MemberName:
		if ip >= m.windowEnd || !c.Matcher.Matches(m.instrs[ip].OpCode()) || c.NameRegex == nil {
			return ip, noop, false
		}
		ref, ok := memberRefOf(il.EffectiveOperand(m.instrs[ip], c.Matcher, m.method))
		if !ok || !c.NameRegex.MatchString(ref.FullyQualifiedName) {
			return ip, noop, false
		}
		return ip + 1, noop, true
	default:
		return ip, noop, false
	}
}

func memberRefOf(o il.Operand) (il.MemberRef, bool) {
	switch v := o.(type) {
	case il.FieldOperand:
		return v.MemberRef, true
	case il.MethodOperand:
		return v.MemberRef, true
	case il.TypeOperand:
		return v.MemberRef, true
	case il.CallSiteOperand:
		return v.MemberRef, true
	default:
		return il.MemberRef{}, false
	}
}

// resolveRef resolves an EqualsOperand check's backreference: a
// previously-captured operand by index or name, falling back to the
// caller-supplied OperandDictionary when the name is not bound in-pattern.
func (m *matcher) resolveRef(c *ast.Check) (il.Operand, bool) {
	if c.RefIsIndex {
		if c.RefIndex < 0 || c.RefIndex >= len(m.operands) || !m.opSet[c.RefIndex] {
			return nil, false
		}
		return m.operands[c.RefIndex], true
	}
	if idx, ok := m.prog.OperandNameIndex[c.RefName]; ok {
		if !m.opSet[idx] {
			return nil, false
		}
		return m.operands[idx], true
	}
	if m.dict != nil {
		if op, ok := m.dict.Get(c.RefName); ok {
			return op, true
		}
	}
	return nil, false
}

// runGroup drives a group's repetition, trying each of its alternatives in
// turn for every iteration, and records the span of the group's last
// successful iteration as its capture.
func (m *matcher) runGroup(gs *ast.Check, pc, limit, ip int, k cont) bool {
	ge := m.prog.Checks[gs.Other]
	min, max := ge.Quant.Min, ge.Quant.Max
	greedy := ge.Quant.EffectiveGreedy(m.swap)
	afterPC := gs.Other + 1
	return m.repeatGroup(gs, pc, ip, 0, min, max, greedy, afterPC, limit, k)
}

func (m *matcher) repeatGroup(gs *ast.Check, groupPC, ip, count, min, max int, greedy bool, afterPC, limit int, k cont) bool {
	tryMore := func() bool {
		if count >= max {
			return false
		}
		return m.tryAlternatives(gs, groupPC, ip, func(bodyEndIP int) bool {
			var undo func()
			if gs.Capturing {
				undo = m.captureGroup(gs, ip, bodyEndIP)
			}
			// A zero-width iteration can never make further progress; take it
			// at most once more rather than looping forever.
			repMax := max
			if bodyEndIP == ip {
				repMax = count + 1
			}
			if m.repeatGroup(gs, groupPC, bodyEndIP, count+1, min, repMax, greedy, afterPC, limit, k) {
				return true
			}
			if undo != nil {
				undo()
			}
			return false
		})
	}
	tryDone := func() bool {
		if count < min {
			return false
		}
		return m.run(afterPC, limit, ip, k)
	}
	if greedy {
		if tryMore() {
			return true
		}
		return tryDone()
	}
	if tryDone() {
		return true
	}
	return tryMore()
}

func (m *matcher) captureGroup(gs *ast.Check, start, end int) func() {
	idx := gs.CaptureIndex
	old := m.groups[idx]
	m.groups[idx] = Group{Name: gs.Name, Start: start, End: end, Matched: true}
	return func() { m.groups[idx] = old }
}

// tryAlternatives attempts each '|'-separated branch of the group beginning
// at groupPC, in source order, invoking k with the instruction position
// reached at the branch's end (the group's GroupEnd check) on success.
func (m *matcher) tryAlternatives(gs *ast.Check, groupPC, ip int, k cont) bool {
	bodyStart := groupPC + 1
	bodyEnd := gs.Other
	if len(gs.Alternatives) == 0 {
		return m.run(bodyStart, bodyEnd, ip, k)
	}
	start := bodyStart
	for _, altIdx := range gs.Alternatives {
		if m.run(start, altIdx, ip, k) {
			return true
		}
		start = altIdx + 1
	}
	return m.run(start, bodyEnd, ip, k)
}

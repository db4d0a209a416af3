// Package machine compiles and runs patterns against a caller-supplied
// instruction stream: Regex wraps a compiled program, Match/NextMatch
// search it via backtracking, and MatchResult exposes the captures.
package machine

import (
	"github.com/mna/ilregex/lang/compiler"
	"github.com/mna/ilregex/lang/il"
	"github.com/mna/ilregex/lang/ilerrors"
	"github.com/mna/ilregex/lang/pattern"
)

// Options configures how a Regex matches.
type Options struct {
	// SwapGreedy inverts every quantifier's greediness (greedy become lazy
	// and vice versa), leaving fixed-count quantifiers (min == max)
	// unaffected.
	SwapGreedy bool

	// Method resolves short-form load/store-argument and load/store-local
	// opcodes to the parameter/variable they implicitly reference. May be
	// nil, in which case such opcodes are compared by index alone.
	Method il.Method

	// Dictionary supplies operand values for <ceq> checks whose reference
	// name is not bound by an earlier <cap> in the same pattern. May be nil.
	Dictionary *il.OperandDictionary
}

// Regex is a compiled pattern ready to match against instruction streams.
type Regex struct {
	prog *compiler.Program
	opts Options
}

// New parses, builds and compiles src, returning a Regex that can be
// matched repeatedly against any instruction stream.
func New(src string, opts Options) (*Regex, error) {
	pat, err := pattern.Parse(src)
	if err != nil {
		return nil, err
	}
	prog, err := compiler.Compile(pat)
	if err != nil {
		return nil, err
	}
	return &Regex{prog: prog, opts: opts}, nil
}

// Program exposes the compiled program, e.g. for compiler.Disassemble.
func (re *Regex) Program() *compiler.Program { return re.prog }

// Match searches instrs for the first match starting at or after from,
// within the window [windowStart, windowEnd). A caller wanting the whole
// stream to be both the search range and the ^/$ anchor boundaries passes
// windowStart=0 and windowEnd=len(instrs).
func (re *Regex) Match(instrs []il.Instruction, from, windowStart, windowEnd int) (*MatchResult, bool, error) {
	if from < 0 || windowStart < 0 || windowEnd > len(instrs) || windowStart > windowEnd || from < windowStart {
		return nil, false, ilerrors.NewUsageError("match range [%d,%d) with start %d is invalid for a stream of length %d", windowStart, windowEnd, from, len(instrs))
	}
	for start := from; start <= windowEnd; start++ {
		if res, ok := re.matchAt(instrs, start, windowStart, windowEnd); ok {
			return res, true, nil
		}
	}
	return nil, false, nil
}

// NextMatch resumes searching immediately after prev's match (or one
// position past it, if the match was zero-width, to guarantee forward
// progress), within the window [windowStart, windowEnd) passed by the caller.
func (re *Regex) NextMatch(instrs []il.Instruction, prev *MatchResult, windowStart, windowEnd int) (*MatchResult, bool, error) {
	from := prev.End
	if prev.End == prev.Start {
		from++
	}
	return re.Match(instrs, from, windowStart, windowEnd)
}

func (re *Regex) matchAt(instrs []il.Instruction, start, windowStart, windowEnd int) (*MatchResult, bool) {
	m := newMatcher(re.prog, instrs, re.opts.Method, re.opts.Dictionary, re.opts.SwapGreedy, windowStart, windowEnd)
	var end int
	ok := m.run(0, len(re.prog.Checks), start, func(ip int) bool {
		end = ip
		return true
	})
	if !ok {
		return nil, false
	}
	return m.buildResult(start, end), true
}

func (m *matcher) buildResult(start, end int) *MatchResult {
	named := make(map[string]int, len(m.groups))
	for i, g := range m.groups {
		if g.Name != "" {
			named[g.Name] = i
		}
	}
	m.groups[0] = Group{Start: start, End: end, Matched: true}

	operands := make([]OperandResult, len(m.operands))
	for i, v := range m.operands {
		operands[i] = OperandResult{Value: v, Matched: m.opSet[i]}
	}
	for name, idx := range m.prog.OperandNameIndex {
		operands[idx].Name = name
	}

	return &MatchResult{Start: start, End: end, groups: append([]Group(nil), m.groups...), operands: operands, named: named}
}

// Package pattern builds an immutable Pattern from parsed checks: quantifier
// fusion (attaching each floating Quantifier check to its preceding atom),
// and validation of dangling quantifiers.
package pattern

import (
	"os"

	"github.com/mna/ilregex/lang/ast"
	"github.com/mna/ilregex/lang/ilerrors"
	"github.com/mna/ilregex/lang/parser"
)

// Pattern is an immutable, fully-fused sequence of checks ready for
// compilation. Once built it is never mutated; Compile (package compiler)
// consumes it to produce a flattened Program.
type Pattern struct {
	checks []*ast.Check
	src    string
}

// Checks returns the pattern's fused checks in source order. The returned
// slice must not be modified.
func (p *Pattern) Checks() []*ast.Check { return p.checks }

// String renders the pattern back to DSL source, using each check's own
// literal rendering plus its fused quantifier.
func (p *Pattern) String() string {
	var out []byte
	for _, c := range p.checks {
		out = append(out, c.String()...)
		out = append(out, c.Quant.String()...)
	}
	return string(out)
}

// Parse parses and builds a Pattern from DSL source text.
func Parse(src string) (*Pattern, error) {
	checks, err := parser.Parse([]byte(src))
	if err != nil {
		return nil, err
	}
	fused, err := fuse(checks)
	if err != nil {
		return nil, err
	}
	return &Pattern{checks: fused, src: src}, nil
}

// FromFile reads and builds a Pattern from the .ilregex file at path.
func FromFile(path string) (*Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// fuse walks the parsed checks left to right, attaching each floating
// Quantifier check onto the Check immediately preceding it. A quantifier
// with nothing before it, or attached to a non-quantifiable atom (an
// Alternative or another quantifier), is a dangling-quantifier error,
// reported here at build time rather than deferred to the compiler, since
// fusion is purely local and needs no cross-group context.
func fuse(checks []*ast.Check) ([]*ast.Check, error) {
	out := make([]*ast.Check, 0, len(checks))
	for i, c := range checks {
		if c.Kind != ast.FloatingQuantifier {
			c.SourcePos = i
			out = append(out, c)
			continue
		}
		if len(out) == 0 {
			return nil, &ilerrors.ParseError{Kind: ilerrors.MissingQuantifierAtom, Msg: "quantifier " + c.Quant.String() + " has no preceding atom"}
		}
		prev := out[len(out)-1]
		if !prev.Quantifiable() {
			return nil, &ilerrors.ParseError{Kind: ilerrors.MissingQuantifierAtom, Msg: "quantifier " + c.Quant.String() + " cannot attach to " + prev.Kind.String()}
		}
		if !prev.Quant.IsOne() {
			return nil, &ilerrors.ParseError{Kind: ilerrors.MissingQuantifierAtom, Msg: "atom already has a quantifier"}
		}
		prev.Quant = c.Quant
	}
	return out, nil
}

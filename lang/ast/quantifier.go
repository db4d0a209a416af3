package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mna/ilregex/lang/ilerrors"
)

// Unbounded is the sentinel value of Quantifier.Max representing "no upper
// bound" ({n,}, *, +).
const Unbounded = math.MaxInt32

// Quantifier is the (min, max, greedy) repetition applied to a Check. The
// zero value is not valid on its own; use ExactlyOne for "no quantifier".
type Quantifier struct {
	Min, Max int
	Greedy   bool
}

// ExactlyOne is the canonical "no quantifier" value: exactly one match,
// greediness irrelevant.
var ExactlyOne = Quantifier{Min: 1, Max: 1, Greedy: true}

// IsOne reports whether q requires exactly one match, i.e. no quantifier was
// specified.
func (q Quantifier) IsOne() bool { return q.Min == 1 && q.Max == 1 }

// Validate reports a format error if the quantifier's bounds are malformed:
// min > max, or (min, max) == (0, 0).
func (q Quantifier) Validate() error {
	if q.Min > q.Max {
		return &ilerrors.ParseError{Kind: ilerrors.InvalidQuantifier, Msg: fmt.Sprintf("min (%d) must not exceed max (%d)", q.Min, q.Max)}
	}
	if q.Min == 0 && q.Max == 0 {
		return &ilerrors.ParseError{Kind: ilerrors.InvalidQuantifier, Msg: "quantifier (0,0) matches nothing"}
	}
	return nil
}

// EffectiveGreedy returns the quantifier's greediness, folding in the rule
// that greediness is irrelevant (and so reported as true) whenever min ==
// max, and optionally inverting it when swap is true (the SwapGreedy
// matcher option).
func (q Quantifier) EffectiveGreedy(swap bool) bool {
	if q.Min == q.Max {
		return true
	}
	if swap {
		return !q.Greedy
	}
	return q.Greedy
}

// String renders the quantifier using the DSL's own literal forms, choosing
// the shortest equivalent spelling (?, *, +, {n}, {n,}, {n,m}), with a
// trailing '?' when lazy.
func (q Quantifier) String() string {
	if q.IsOne() {
		return ""
	}

	var base string
	switch {
	case q.Min == 0 && q.Max == 1:
		base = "?"
	case q.Min == 0 && q.Max == Unbounded:
		base = "*"
	case q.Min == 1 && q.Max == Unbounded:
		base = "+"
	case q.Min == q.Max:
		base = fmt.Sprintf("{%d}", q.Min)
	case q.Max == Unbounded:
		base = fmt.Sprintf("{%d,}", q.Min)
	default:
		base = fmt.Sprintf("{%d,%d}", q.Min, q.Max)
	}
	if !q.Greedy && q.Min != q.Max {
		base += "?"
	}
	return base
}

// ParseQuantifier parses a quantifier literal (the body after the leading
// atom, e.g. "*", "{2,}?") and returns the resulting value. lit must consist
// solely of the quantifier token, trailing '?' inversion included.
func ParseQuantifier(lit string) (Quantifier, error) {
	lazy := false
	if strings.HasSuffix(lit, "?") && lit != "?" {
		lazy = true
		lit = lit[:len(lit)-1]
	}

	var q Quantifier
	switch {
	case lit == "?":
		q = Quantifier{Min: 0, Max: 1, Greedy: true}
	case lit == "*":
		q = Quantifier{Min: 0, Max: Unbounded, Greedy: true}
	case lit == "+":
		q = Quantifier{Min: 1, Max: Unbounded, Greedy: true}
	case strings.HasPrefix(lit, "{") && strings.HasSuffix(lit, "}"):
		body := lit[1 : len(lit)-1]
		min, max, err := parseBraceBody(body)
		if err != nil {
			return Quantifier{}, err
		}
		q = Quantifier{Min: min, Max: max, Greedy: true}
	default:
		return Quantifier{}, &ilerrors.ParseError{Kind: ilerrors.InvalidQuantifier, Msg: fmt.Sprintf("unrecognized quantifier %q", lit)}
	}

	if lazy {
		q.Greedy = false
	}
	if err := q.Validate(); err != nil {
		return Quantifier{}, err
	}
	return q, nil
}

func parseBraceBody(body string) (min, max int, err error) {
	parts := strings.SplitN(body, ",", 2)
	min, perr := strconv.Atoi(strings.TrimSpace(parts[0]))
	if perr != nil {
		return 0, 0, &ilerrors.ParseError{Kind: ilerrors.InvalidQuantifier, Msg: fmt.Sprintf("non-integer quantifier bound %q", parts[0])}
	}
	if len(parts) == 1 {
		return min, min, nil
	}
	upper := strings.TrimSpace(parts[1])
	if upper == "" {
		return min, Unbounded, nil
	}
	max, perr = strconv.Atoi(upper)
	if perr != nil {
		return 0, 0, &ilerrors.ParseError{Kind: ilerrors.InvalidQuantifier, Msg: fmt.Sprintf("non-integer quantifier bound %q", upper)}
	}
	return min, max, nil
}

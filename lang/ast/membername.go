package ast

import (
	"regexp"
	"strings"

	"github.com/mna/ilregex/lang/ilerrors"
)

// DeriveMemberNameRegex compiles the string regex that a MemberName check's
// fully-qualified-name test uses: a pattern beginning with '?' is used
// verbatim (minus the '?'); otherwise the pattern is a literal identifier
// wrapped with an anchor and a kind-specific tail.
func DeriveMemberNameRegex(kind MemberKind, pattern string) (*regexp.Regexp, error) {
	if strings.HasPrefix(pattern, "?") {
		rx, err := regexp.Compile(pattern[1:])
		if err != nil {
			return nil, ilerrors.NewUsageError("invalid member name regex %q: %v", pattern, err)
		}
		return rx, nil
	}

	var tail string
	switch kind {
	case MemberField, MemberCallSite:
		tail = ""
	case MemberType:
		tail = `(?:<[A-Za-z_]\w>)?`
	case MemberMethod:
		tail = `(?:<[A-Za-z_]\w>)?\(.*\)`
	default:
		return nil, ilerrors.NewUsageError("unknown member kind %v", kind)
	}

	expr := `(?:^| |\.)` + regexp.QuoteMeta(pattern) + tail
	rx, err := regexp.Compile(expr)
	if err != nil {
		return nil, ilerrors.NewUsageError("invalid derived member name regex %q: %v", expr, err)
	}
	return rx, nil
}

package il

import (
	"regexp"

	"github.com/dolthub/swiss"
	"github.com/mna/ilregex/lang/ilerrors"
)

// captureNameRx is the grammar for capture and operand-dictionary names:
// identifiers starting with a letter or underscore.
var captureNameRx = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// ValidCaptureName reports whether name is a syntactically valid capture or
// operand-dictionary name.
func ValidCaptureName(name string) bool {
	return captureNameRx.MatchString(name)
}

// OperandDictionary maps names to pre-bound operand values, used to seed
// EqualsOperand checks whose name is not bound by an earlier in-pattern
// capture (e.g. backreference-like equality against a value known ahead of
// matching).
type OperandDictionary struct {
	m *swiss.Map[string, Operand]
}

// NewOperandDictionary returns an empty dictionary.
func NewOperandDictionary() *OperandDictionary {
	return &OperandDictionary{m: swiss.NewMap[string, Operand](8)}
}

// Add binds name to operand, validating both. It returns an error if name is
// not a valid identifier or operand is nil.
func (d *OperandDictionary) Add(name string, operand Operand) error {
	if !ValidCaptureName(name) {
		return ilerrors.NewUsageError("invalid operand dictionary name %q", name)
	}
	if operand == nil {
		return ilerrors.NewUsageError("operand dictionary value for %q must not be nil", name)
	}
	d.m.Put(name, operand)
	return nil
}

// Get returns the operand bound to name, and whether it was found.
func (d *OperandDictionary) Get(name string) (Operand, bool) {
	return d.m.Get(name)
}

// Len returns the number of bound names.
func (d *OperandDictionary) Len() int { return d.m.Count() }

// AddOperands bulk-imports every entry of coll into the dictionary.
func (d *OperandDictionary) AddOperands(coll map[string]Operand) error {
	for name, op := range coll {
		if err := d.Add(name, op); err != nil {
			return err
		}
	}
	return nil
}

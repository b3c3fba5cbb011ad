package filter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
)

// NumberFilter compares a numeric attribute against a fixed operand. A face
// may yield several values (split cards report each half and their sum); the
// face passes if any value that is not NaN satisfies the comparison.
type NumberFilter struct {
	attr    NumberAttribute
	op      Comparison
	operand float64
	faces   FaceSelection
}

// NewNumberFilter builds a number filter.
func NewNumberFilter(attr NumberAttribute, op Comparison, operand float64, faces FaceSelection) (*NumberFilter, error) {
	if !attr.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, attr)
	}
	if err := checkComparison(op, operand, faces); err != nil {
		return nil, err
	}
	return &NumberFilter{attr: attr, op: op, operand: operand, faces: faces}, nil
}

// Test implements Filter.
func (f *NumberFilter) Test(c *cards.Card) bool {
	extract := numberExtractors[f.attr]
	return f.faces.apply(c, func(c *cards.Card, face *cards.Face) bool {
		for _, v := range extract(c, face) {
			if f.op.Apply(v, f.operand) {
				return true
			}
		}
		return false
	})
}

func (f *NumberFilter) Type() string { return string(f.attr) }
func (f *NumberFilter) Faces() FaceSelection { return f.faces }
func (f *NumberFilter) Attribute() NumberAttribute { return f.attr }
func (f *NumberFilter) Comparison() Comparison { return f.op }
func (f *NumberFilter) Operand() float64 { return f.operand }

func (f *NumberFilter) String() string {
	return fmt.Sprintf("%s %s %s", f.attr, f.op, formatNumber(f.operand))
}

// VariableNumberFilter compares power, toughness or loyalty. With Varies set
// it ignores the comparison and instead passes faces whose stat is printed as
// an expression such as "*" or "1+*".
type VariableNumberFilter struct {
	attr    VariableAttribute
	op      Comparison
	operand float64
	varies  bool
	faces   FaceSelection
}

// NewVariableNumberFilter builds a variable number filter.
func NewVariableNumberFilter(attr VariableAttribute, op Comparison, operand float64, varies bool, faces FaceSelection) (*VariableNumberFilter, error) {
	if !attr.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, attr)
	}
	if err := checkComparison(op, operand, faces); err != nil {
		return nil, err
	}
	return &VariableNumberFilter{attr: attr, op: op, operand: operand, varies: varies, faces: faces}, nil
}

// Test implements Filter.
func (f *VariableNumberFilter) Test(c *cards.Card) bool {
	stat := variableExtractors[f.attr].stat
	return f.faces.apply(c, func(_ *cards.Card, face *cards.Face) bool {
		s := stat(face)
		if f.varies {
			return s.Variable()
		}
		return f.op.Apply(s.Number(), f.operand)
	})
}

func (f *VariableNumberFilter) Type() string { return string(f.attr) }
func (f *VariableNumberFilter) Faces() FaceSelection { return f.faces }
func (f *VariableNumberFilter) Attribute() VariableAttribute { return f.attr }
func (f *VariableNumberFilter) Comparison() Comparison { return f.op }
func (f *VariableNumberFilter) Operand() float64 { return f.operand }
func (f *VariableNumberFilter) Varies() bool { return f.varies }

func (f *VariableNumberFilter) String() string {
	if f.varies {
		return fmt.Sprintf("%s varies", f.attr)
	}
	return fmt.Sprintf("%s %s %s", f.attr, f.op, formatNumber(f.operand))
}

// checkComparison rejects NaN and infinite operands, which would make every
// comparison fail and cannot be written as JSON.
func checkComparison(op Comparison, operand float64, faces FaceSelection) error {
	if !op.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownComparison, op)
	}
	if math.IsNaN(operand) || math.IsInf(operand, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidOperand, operand)
	}
	return checkFaces(faces)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

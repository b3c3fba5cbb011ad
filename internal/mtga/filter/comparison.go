package filter

import (
	"fmt"
	"math"
)

// Comparison is a numeric relation between an extracted value and a fixed
// operand.
type Comparison int

const (
	Equal Comparison = iota
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

var comparisonCodes = [...]string{
	Equal:        "=",
	NotEqual:     "!=",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
}

// Alternative spellings accepted when parsing.
var comparisonAliases = map[string]Comparison{
	"==": Equal,
	"≠":  NotEqual,
	"<>": NotEqual,
	"≤":  LessEqual,
	"≥":  GreaterEqual,
}

// Comparisons returns every comparison in display order.
func Comparisons() []Comparison {
	return []Comparison{Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual}
}

func (op Comparison) valid() bool {
	return op >= Equal && op <= GreaterEqual
}

// String returns the operator symbol.
func (op Comparison) String() string {
	if !op.valid() {
		return fmt.Sprintf("Comparison(%d)", int(op))
	}
	return comparisonCodes[op]
}

// ParseComparison converts an operator symbol into a Comparison.
func ParseComparison(code string) (Comparison, error) {
	for op, c := range comparisonCodes {
		if c == code {
			return Comparison(op), nil
		}
	}
	if op, ok := comparisonAliases[code]; ok {
		return op, nil
	}
	return Equal, fmt.Errorf("%w: %q", ErrUnknownComparison, code)
}

// Apply reports whether v op operand holds. NaN never satisfies any
// comparison, including NotEqual.
func (op Comparison) Apply(v, operand float64) bool {
	if math.IsNaN(v) || math.IsNaN(operand) {
		return false
	}
	switch op {
	case Equal:
		return v == operand
	case NotEqual:
		return v != operand
	case Less:
		return v < operand
	case LessEqual:
		return v <= operand
	case Greater:
		return v > operand
	case GreaterEqual:
		return v >= operand
	default:
		return false
	}
}

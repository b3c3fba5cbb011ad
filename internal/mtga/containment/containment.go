// Package containment implements the six-way multiset relation shared by
// every multi-valued card filter clause (colors, mana symbols, type words and
// enumerated options).
package containment

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when a containment code cannot be parsed.
var ErrUnknownMode = errors.New("unknown containment mode")

// Mode selects how a needle collection relates to a haystack collection.
type Mode int

const (
	AnyOf      Mode = iota // Some needle element occurs in the haystack
	NoneOf                 // No needle element occurs in the haystack
	AllOf                  // Haystack is a multiset superset of the needle
	NotAllOf               // Partial overlap, but not a full superset
	Exactly                // Same elements with the same multiplicities
	NotExactly             // Multiplicities differ somewhere
)

var modeCodes = [...]string{
	AnyOf:      "any_of",
	NoneOf:     "none_of",
	AllOf:      "all_of",
	NotAllOf:   "not_all_of",
	Exactly:    "exactly",
	NotExactly: "not_exactly",
}

var modeNames = [...]string{
	AnyOf:      "contains any of",
	NoneOf:     "contains none of",
	AllOf:      "contains all of",
	NotAllOf:   "contains not all of",
	Exactly:    "contains exactly",
	NotExactly: "does not contain exactly",
}

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{AnyOf, NoneOf, AllOf, NotAllOf, Exactly, NotExactly}
}

// Valid reports whether m is one of the six defined modes.
func (m Mode) Valid() bool {
	return m >= AnyOf && m <= NotExactly
}

// String returns the human-readable name of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Code returns the stable wire code of the mode.
func (m Mode) Code() string {
	if !m.Valid() {
		return ""
	}
	return modeCodes[m]
}

// Parse converts a wire code back into a Mode.
func Parse(code string) (Mode, error) {
	for m, c := range modeCodes {
		if c == code {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, code)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Test reports whether haystack relates to needle under mode m. Both sides
// are treated as multisets: order is ignored, duplicates are counted.
func Test[T comparable](m Mode, haystack, needle []T) bool {
	switch m {
	case AnyOf:
		return len(needle) == 0 || overlaps(haystack, needle)
	case NoneOf:
		return !overlaps(haystack, needle)
	case AllOf:
		return covers(haystack, needle)
	case NotAllOf:
		return Test(AnyOf, haystack, needle) && !covers(haystack, needle)
	case Exactly:
		return len(haystack) == len(needle) && covers(haystack, needle)
	case NotExactly:
		return differs(haystack, needle)
	default:
		return false
	}
}

func overlaps[T comparable](haystack, needle []T) bool {
	present := make(map[T]struct{}, len(haystack))
	for _, h := range haystack {
		present[h] = struct{}{}
	}
	for _, n := range needle {
		if _, ok := present[n]; ok {
			return true
		}
	}
	return false
}

// covers matches every needle element against a distinct haystack element.
func covers[T comparable](haystack, needle []T) bool {
	if len(needle) > len(haystack) {
		return false
	}
	remaining := counts(haystack)
	for _, n := range needle {
		if remaining[n] == 0 {
			return false
		}
		remaining[n]--
	}
	return true
}

// differs reports whether some element of either side has no counterpart on
// the other once multiplicities are taken into account.
func differs[T comparable](haystack, needle []T) bool {
	balance := counts(haystack)
	for _, n := range needle {
		balance[n]--
	}
	for _, v := range balance {
		if v != 0 {
			return true
		}
	}
	return false
}

func counts[T comparable](items []T) map[T]int {
	c := make(map[T]int, len(items))
	for _, item := range items {
		c[item]++
	}
	return c
}

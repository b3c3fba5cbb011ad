package mana

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
)

// ErrInvalidCost is returned when a cost string has characters outside of
// {...} groups.
var ErrInvalidCost = errors.New("invalid mana cost")

// CostError describes where a mana cost string failed to parse.
type CostError struct {
	Cost   string // The full input
	Offset int    // Byte offset of the offending text
	Err    error
}

func (e *CostError) Error() string {
	return fmt.Sprintf("parse mana cost %q at offset %d: %v", e.Cost, e.Offset, e.Err)
}

func (e *CostError) Unwrap() error {
	return e.Err
}

var tokenPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Cost is an immutable multiset of mana symbols kept in canonical display
// order. The zero Cost is the empty cost.
type Cost struct {
	symbols   []Symbol
	intensity Intensity
	cmc       float64
}

// ParseCost parses a string of concatenated {...} groups such as
// "{2}{W}{W}". The empty string parses to the empty cost. Any text outside a
// group, any unrecognized symbol and any functional symbol fails the whole
// parse.
func ParseCost(text string) (Cost, error) {
	text = strings.TrimSpace(text)

	var syms []Symbol
	pos := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] != pos {
			return Cost{}, &CostError{Cost: text, Offset: pos, Err: ErrInvalidCost}
		}
		sym, err := ParseSymbol(text[m[2]:m[3]])
		if err != nil {
			return Cost{}, &CostError{Cost: text, Offset: m[0], Err: err}
		}
		if !sym.IsMana() {
			return Cost{}, &CostError{Cost: text, Offset: m[0], Err: &SymbolError{Text: sym.Text(), Err: ErrNotMana}}
		}
		syms = append(syms, sym)
		pos = m[1]
	}
	if pos != len(text) {
		return Cost{}, &CostError{Cost: text, Offset: pos, Err: ErrInvalidCost}
	}

	return newCost(syms), nil
}

// MustParseCost is like ParseCost but panics on error.
func MustParseCost(text string) Cost {
	c, err := ParseCost(text)
	if err != nil {
		panic(err)
	}
	return c
}

// NewCost builds a cost from individual symbols.
func NewCost(syms ...Symbol) (Cost, error) {
	for _, s := range syms {
		if !s.IsMana() {
			return Cost{}, &SymbolError{Text: s.Text(), Err: ErrNotMana}
		}
	}
	return newCost(slices.Clone(syms)), nil
}

func newCost(syms []Symbol) Cost {
	sortSymbols(syms)
	c := Cost{symbols: syms}
	for _, s := range syms {
		c.cmc += s.Value()
		c.intensity = c.intensity.add(s.Intensity())
	}
	return c
}

// sortSymbols puts symbols in display order: by kind, and within a kind by
// the canonical wheel order of the colors that kind uses in this cost.
func sortSymbols(syms []Symbol) {
	groups := make(map[Kind][]Color)
	for _, s := range syms {
		switch s.kind {
		case KindHybrid, KindPhyrexianHybrid:
			groups[s.kind] = append(groups[s.kind], s.first, s.second)
		case KindColored, KindHalfColor, KindTwobrid, KindPhyrexian:
			groups[s.kind] = append(groups[s.kind], s.first)
		}
	}
	rank := make(map[Kind]map[Color]int, len(groups))
	for k, colors := range groups {
		r := make(map[Color]int)
		for i, c := range SortColors(colors) {
			r[c] = i
		}
		rank[k] = r
	}

	slices.SortStableFunc(syms, func(a, b Symbol) int {
		if a.kind != b.kind {
			return cmp.Compare(a.kind, b.kind)
		}
		switch a.kind {
		case KindGeneric:
			return cmp.Compare(b.value, a.value)
		case KindVariable, KindStatic, KindFunctional:
			return strings.Compare(a.text, b.text)
		}
		r := rank[a.kind]
		if c := cmp.Compare(r[a.first], r[b.first]); c != 0 {
			return c
		}
		return cmp.Compare(r[a.second], r[b.second])
	})
}

// Symbols returns a copy of the symbols in canonical order.
func (c Cost) Symbols() []Symbol {
	return slices.Clone(c.symbols)
}

// Len returns the number of symbols.
func (c Cost) Len() int { return len(c.symbols) }

// IsEmpty reports whether the cost has no symbols.
func (c Cost) IsEmpty() bool { return len(c.symbols) == 0 }

// CMC returns the converted mana cost: the sum of symbol values. It is
// +Inf for costs containing {∞}.
func (c Cost) CMC() float64 { return c.cmc }

// Intensity returns the summed color intensity of all symbols.
func (c Cost) Intensity() Intensity { return c.intensity }

// Colors returns the colors with positive intensity in canonical order.
func (c Cost) Colors() []Color {
	var colors []Color
	for _, col := range Colors() {
		if c.intensity[col] > 0 {
			colors = append(colors, col)
		}
	}
	return SortColors(colors)
}

// String returns the canonical textual form, e.g. "{2}{W}{W}".
func (c Cost) String() string {
	var b strings.Builder
	for _, s := range c.symbols {
		b.WriteString(s.String())
	}
	return b.String()
}

// Equal reports whether both costs hold the same symbols with the same
// multiplicities.
func (c Cost) Equal(o Cost) bool {
	return containment.Test(containment.Exactly, c.symbols, o.symbols)
}

// IsSuperset reports whether every symbol of o can be matched to a distinct
// symbol of c.
func (c Cost) IsSuperset(o Cost) bool {
	return containment.Test(containment.AllOf, c.symbols, o.symbols)
}

// IsSubset reports whether every symbol of c can be matched to a distinct
// symbol of o.
func (c Cost) IsSubset(o Cost) bool {
	return o.IsSuperset(c)
}

// Compare orders costs by converted cost, then by their per-color
// intensities sorted from largest to smallest, compared position by position.
// This is a total preorder: costs with different symbols can compare equal
// (e.g. {W/U} and {U/B}), so Compare is not consistent with Equal.
func (c Cost) Compare(o Cost) int {
	if r := cmp.Compare(c.cmc, o.cmc); r != 0 {
		return r
	}
	a, b := c.intensity.descending(), o.intensity.descending()
	for i := range a {
		if r := cmp.Compare(a[i], b[i]); r != 0 {
			return r
		}
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler.
func (c Cost) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cost) UnmarshalText(text []byte) error {
	parsed, err := ParseCost(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

package mana

import (
	"math"
	"slices"
	"strconv"
)

// Kind discriminates the variants of Symbol. Kinds are declared in canonical
// display order, so comparing kinds orders symbols inside a cost.
type Kind int

const (
	KindVariable        Kind = iota // {X}, {Y}, {Z}
	KindStatic                      // {1/2}, {∞}, {S}
	KindGeneric                     // {0}, {1}, ... {1000000}
	KindHalfColor                   // {HW}
	KindTwobrid                     // {2/W}
	KindHybrid                      // {W/U}
	KindPhyrexian                   // {W/P}
	KindPhyrexianHybrid             // {W/U/P}
	KindColored                     // {W}, {C}
	KindFunctional                  // {T}, {Q}, {E}, ... (not mana)
)

var kindNames = [...]string{
	KindVariable:        "variable",
	KindStatic:          "static",
	KindGeneric:         "generic",
	KindHalfColor:       "half-color",
	KindTwobrid:         "twobrid",
	KindHybrid:          "hybrid",
	KindPhyrexian:       "phyrexian",
	KindPhyrexianHybrid: "phyrexian-hybrid",
	KindColored:         "colored",
	KindFunctional:      "functional",
}

func (k Kind) String() string {
	if k < KindVariable || k > KindFunctional {
		return "unknown"
	}
	return kindNames[k]
}

// Intensity is a per-color weight vector indexed by Color.
type Intensity [numColors]float64

// Of returns the weight attributed to color c.
func (in Intensity) Of(c Color) float64 {
	if !c.valid() {
		return 0
	}
	return in[c]
}

// Sum returns the total weight across all colors.
func (in Intensity) Sum() float64 {
	var s float64
	for _, v := range in {
		s += v
	}
	return s
}

func (in Intensity) add(o Intensity) Intensity {
	for i := range in {
		in[i] += o[i]
	}
	return in
}

// descending returns the weights sorted from largest to smallest.
func (in Intensity) descending() []float64 {
	v := slices.Clone(in[:])
	slices.Sort(v)
	slices.Reverse(v)
	return v
}

// Symbol is one bracketed mana symbol. Symbols are comparable values: two
// symbols are equal exactly when they have the same kind and parameters.
// The zero Symbol is invalid; obtain symbols from ParseSymbol or the
// canonical constructors.
type Symbol struct {
	kind   Kind
	text   string
	value  float64
	first  Color
	second Color
}

// Kind returns the symbol variant.
func (s Symbol) Kind() Kind { return s.kind }

// Text returns the symbol's content without braces, e.g. "W/U".
func (s Symbol) Text() string { return s.text }

// String returns the braced form, e.g. "{W/U}".
func (s Symbol) String() string {
	if s.text == "" {
		return ""
	}
	return "{" + s.text + "}"
}

// Value returns the symbol's contribution to converted mana cost.
func (s Symbol) Value() float64 { return s.value }

// IsZero reports whether s is the invalid zero Symbol.
func (s Symbol) IsZero() bool { return s.text == "" }

// IsMana reports whether s can appear in a mana cost.
func (s Symbol) IsMana() bool { return !s.IsZero() && s.kind != KindFunctional }

// Intensity returns how strongly the symbol is attributed to each color.
func (s Symbol) Intensity() Intensity {
	var in Intensity
	switch s.kind {
	case KindColored:
		in[s.first] = 1
	case KindHybrid:
		in[s.first] = 0.5
		in[s.second] = 0.5
	case KindHalfColor, KindTwobrid, KindPhyrexian:
		in[s.first] = 0.5
	case KindPhyrexianHybrid:
		in[s.first] = 1.0 / 3
		in[s.second] = 1.0 / 3
	}
	return in
}

// Colors returns the colors the symbol has positive intensity in.
func (s Symbol) Colors() []Color {
	in := s.Intensity()
	var colors []Color
	for _, c := range Colors() {
		if in[c] > 0 {
			colors = append(colors, c)
		}
	}
	return SortColors(colors)
}

func newColored(c Color) Symbol {
	return Symbol{kind: KindColored, text: c.Letter(), value: 1, first: c}
}

func newGeneric(n int) Symbol {
	return Symbol{kind: KindGeneric, text: strconv.Itoa(n), value: float64(n)}
}

func newHalfColor(c Color) Symbol {
	return Symbol{kind: KindHalfColor, text: "H" + c.Letter(), value: 0.5, first: c}
}

func newTwobrid(c Color) Symbol {
	return Symbol{kind: KindTwobrid, text: "2/" + c.Letter(), value: 2, first: c}
}

func newPhyrexian(c Color) Symbol {
	return Symbol{kind: KindPhyrexian, text: c.Letter() + "/P", value: 1, first: c}
}

// orderPair puts the color that comes first in color order first.
func orderPair(a, b Color) (Color, Color) {
	if a.ColorOrder(b) > 0 {
		return b, a
	}
	return a, b
}

func newHybrid(a, b Color) Symbol {
	a, b = orderPair(a, b)
	return Symbol{kind: KindHybrid, text: a.Letter() + "/" + b.Letter(), value: 1, first: a, second: b}
}

func newPhyrexianHybrid(a, b Color) Symbol {
	a, b = orderPair(a, b)
	return Symbol{kind: KindPhyrexianHybrid, text: a.Letter() + "/" + b.Letter() + "/P", value: 1, first: a, second: b}
}

func newStatic(text string, value float64) Symbol {
	return Symbol{kind: KindStatic, text: text, value: value}
}

func newVariable(text string) Symbol {
	return Symbol{kind: KindVariable, text: text}
}

func newFunctional(text string) Symbol {
	return Symbol{kind: KindFunctional, text: text}
}

var infinity = math.Inf(1)

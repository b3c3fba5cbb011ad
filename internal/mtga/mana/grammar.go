package mana

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrInvalidSymbol is returned for text that matches no symbol form.
	ErrInvalidSymbol = errors.New("invalid mana symbol")

	// ErrNotMana is returned when a functional symbol such as {T} appears
	// where a mana symbol is required.
	ErrNotMana = errors.New("symbol is not a mana symbol")
)

// SymbolError describes a symbol that could not be parsed.
type SymbolError struct {
	Text string // Content between the braces
	Err  error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v: {%s}", e.Err, e.Text)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}

// symbolTable holds the canonical instance of every symbol the grammar knows
// about. It is built once on first use and never modified afterwards.
type symbolTable struct {
	colored         map[Color]Symbol
	generic         map[int]Symbol
	halfColor       map[Color]Symbol
	twobrid         map[Color]Symbol
	phyrexian       map[Color]Symbol
	hybrid          map[[2]Color]Symbol
	phyrexianHybrid map[[2]Color]Symbol
	variable        map[string]Symbol
	static          map[string]Symbol
	functional      map[string]Symbol
}

var symbols = sync.OnceValue(buildSymbolTable)

func buildSymbolTable() *symbolTable {
	t := &symbolTable{
		colored:         make(map[Color]Symbol),
		generic:         make(map[int]Symbol),
		halfColor:       make(map[Color]Symbol),
		twobrid:         make(map[Color]Symbol),
		phyrexian:       make(map[Color]Symbol),
		hybrid:          make(map[[2]Color]Symbol),
		phyrexianHybrid: make(map[[2]Color]Symbol),
		variable:        make(map[string]Symbol),
		static:          make(map[string]Symbol),
		functional:      make(map[string]Symbol),
	}

	for _, c := range Colors() {
		t.colored[c] = newColored(c)
	}
	for n := 0; n <= 20; n++ {
		t.generic[n] = newGeneric(n)
	}
	t.generic[100] = newGeneric(100)
	t.generic[1_000_000] = newGeneric(1_000_000)

	for _, c := range wheel {
		t.halfColor[c] = newHalfColor(c)
		t.twobrid[c] = newTwobrid(c)
		t.phyrexian[c] = newPhyrexian(c)
		for _, o := range wheel {
			if o == c {
				continue
			}
			t.hybrid[[2]Color{c, o}] = newHybrid(c, o)
			t.phyrexianHybrid[[2]Color{c, o}] = newPhyrexianHybrid(c, o)
		}
	}

	for _, v := range []string{"X", "Y", "Z"} {
		t.variable[v] = newVariable(v)
	}

	half := newStatic("1/2", 0.5)
	t.static["1/2"] = half
	t.static["½"] = half
	t.static["∞"] = newStatic("∞", infinity)
	t.static["S"] = newStatic("S", 1)

	for _, f := range []string{"T", "Q", "E", "CHAOS", "P", "PW", "A"} {
		t.functional[f] = newFunctional(f)
	}
	return t
}

// ParseSymbol parses the content of a single {...} group, without braces.
// Letters are matched case-insensitively; hybrid symbols are returned in
// canonical color order, so "U/W" yields {W/U}.
func ParseSymbol(text string) (Symbol, error) {
	t := symbols()
	s := strings.ToUpper(strings.TrimSpace(text))

	if c, ok := colorFromLetter(s); ok {
		return t.colored[c], nil
	}
	if n, ok := parseGeneric(s); ok {
		if sym, ok := t.generic[n]; ok {
			return sym, nil
		}
		return newGeneric(n), nil
	}
	if len(s) == 2 && s[0] == 'H' {
		if c, ok := wheelColor(s[1:]); ok {
			return t.halfColor[c], nil
		}
	}

	parts := strings.Split(s, "/")
	switch len(parts) {
	case 2:
		a, aok := wheelColor(parts[0])
		b, bok := wheelColor(parts[1])
		switch {
		case aok && bok && a != b:
			return t.hybrid[[2]Color{a, b}], nil
		case aok && parts[1] == "P":
			return t.phyrexian[a], nil
		case parts[0] == "2" && bok:
			return t.twobrid[b], nil
		}
	case 3:
		a, aok := wheelColor(parts[0])
		b, bok := wheelColor(parts[1])
		if aok && bok && a != b && parts[2] == "P" {
			return t.phyrexianHybrid[[2]Color{a, b}], nil
		}
	}

	if sym, ok := t.variable[s]; ok {
		return sym, nil
	}
	if sym, ok := t.static[s]; ok {
		return sym, nil
	}
	if sym, ok := t.functional[s]; ok {
		return sym, nil
	}
	return Symbol{}, &SymbolError{Text: text, Err: ErrInvalidSymbol}
}

// MustParseSymbol is like ParseSymbol but panics on error. It is intended
// for package-level symbol literals.
func MustParseSymbol(text string) Symbol {
	sym, err := ParseSymbol(text)
	if err != nil {
		panic(err)
	}
	return sym
}

// ColoredSymbol returns the canonical one-color symbol for c, e.g. {G}.
func ColoredSymbol(c Color) Symbol {
	return symbols().colored[c]
}

// GenericSymbol returns the generic symbol {n}. Negative n yields the zero
// Symbol.
func GenericSymbol(n int) Symbol {
	if n < 0 {
		return Symbol{}
	}
	if sym, ok := symbols().generic[n]; ok {
		return sym
	}
	return newGeneric(n)
}

// parseGeneric accepts only plain ASCII digits.
func parseGeneric(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// wheelColor matches one of the five color letters (not colorless).
func wheelColor(s string) (Color, bool) {
	c, ok := colorFromLetter(s)
	if !ok || c == Colorless {
		return Colorless, false
	}
	return c, true
}

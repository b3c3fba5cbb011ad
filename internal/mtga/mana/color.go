// Package mana implements the mana-symbol grammar and the mana-cost value
// type: parsing, canonical ordering, converted cost and color intensity.
package mana

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidColor is returned when a color letter or name is not recognized.
var ErrInvalidColor = errors.New("invalid color")

// Color is a mana type. Colorless sorts before the five colors.
type Color int

const (
	Colorless Color = iota
	White
	Blue
	Black
	Red
	Green
)

const numColors = 6

// wheel lists the five colors clockwise around the color pie.
var wheel = [...]Color{White, Blue, Black, Red, Green}

var colorLetters = [numColors]string{"C", "W", "U", "B", "R", "G"}

var colorNames = [numColors]string{"colorless", "white", "blue", "black", "red", "green"}

// Colors returns all mana types, colorless first, then WUBRG.
func Colors() []Color {
	return []Color{Colorless, White, Blue, Black, Red, Green}
}

func (c Color) valid() bool {
	return c >= Colorless && c <= Green
}

// Letter returns the single-letter abbreviation used inside mana symbols.
func (c Color) Letter() string {
	if !c.valid() {
		return ""
	}
	return colorLetters[c]
}

// String returns the lower-case color name.
func (c Color) String() string {
	if !c.valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// wheelIndex returns the position of c on the color wheel, or -1 for colorless.
func (c Color) wheelIndex() int {
	if c == Colorless || !c.valid() {
		return -1
	}
	return int(c) - int(White)
}

// ColorOrder returns the signed distance from o to c along the shorter arc of
// the color wheel: negative when c comes first. Colorless precedes every color.
func (c Color) ColorOrder(o Color) int {
	switch {
	case c == o:
		return 0
	case c == Colorless:
		return -1
	case o == Colorless:
		return 1
	}
	d := ((c.wheelIndex()-o.wheelIndex())%len(wheel) + len(wheel)) % len(wheel)
	if d > len(wheel)/2 {
		d -= len(wheel)
	}
	return d
}

// DistanceFrom returns the number of clockwise steps from c to o (0..4), or
// -1 if either color is colorless.
func (c Color) DistanceFrom(o Color) int {
	if c.wheelIndex() < 0 || o.wheelIndex() < 0 {
		return -1
	}
	return ((o.wheelIndex()-c.wheelIndex())%len(wheel) + len(wheel)) % len(wheel)
}

// ParseColor accepts a color letter (W, U, B, R, G, C) or a color name,
// case-insensitively.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	for i := range colorLetters {
		if strings.EqualFold(s, colorLetters[i]) || strings.EqualFold(s, colorNames[i]) {
			return Color(i), nil
		}
	}
	return Colorless, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// colorFromLetter matches an upper-case color letter exactly.
func colorFromLetter(s string) (Color, bool) {
	for i, l := range colorLetters {
		if s == l {
			return Color(i), true
		}
	}
	return Colorless, false
}

// MarshalText implements encoding.TextMarshaler using the color letter.
func (c Color) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, int(c))
	}
	return []byte(c.Letter()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SortColors returns the distinct colors of colors in canonical order:
// colorless first, then clockwise around the wheel starting after the single
// widest gap (WU, GW, WB, RW, WUB, GWU, ...). When the widest gap is shared,
// as for wedges, the sequence starts after the single narrowest gap instead
// (WBG, URW, ...), and when neither is unique it starts at white.
func SortColors(colors []Color) []Color {
	var seen [numColors]bool
	for _, c := range colors {
		if c.valid() {
			seen[c] = true
		}
	}

	sorted := make([]Color, 0, numColors)
	if seen[Colorless] {
		sorted = append(sorted, Colorless)
	}

	var present []int
	for i, c := range wheel {
		if seen[c] {
			present = append(present, i)
		}
	}
	n := len(present)
	if n == 0 {
		return sorted
	}

	gaps := make([]int, n)
	for i := range present {
		gaps[i] = ((present[(i+1)%n]-present[i])%len(wheel) + len(wheel)) % len(wheel)
	}

	start := 0
	if i, ok := uniqueExtreme(gaps, func(a, b int) bool { return a > b }); ok {
		start = (i + 1) % n
	} else if i, ok := uniqueExtreme(gaps, func(a, b int) bool { return a < b }); ok {
		start = (i + 1) % n
	}

	for k := 0; k < n; k++ {
		sorted = append(sorted, wheel[present[(start+k)%n]])
	}
	return sorted
}

// uniqueExtreme finds the index of the value preferred by better, reporting
// false when that value occurs more than once.
func uniqueExtreme(values []int, better func(a, b int) bool) (int, bool) {
	if len(values) < 2 {
		return 0, false
	}
	best, count := 0, 1
	for i := 1; i < len(values); i++ {
		switch {
		case better(values[i], values[best]):
			best, count = i, 1
		case values[i] == values[best]:
			count++
		}
	}
	return best, count == 1
}

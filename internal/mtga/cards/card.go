package cards

import (
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// Card represents a Magic card with one or more printed faces. Cards are
// read-only once built: filters evaluate them from many goroutines at once.
type Card struct {
	// MTGA Arena ID (0 when the card is not on Arena)
	ArenaID int `json:"arena_id,omitempty"`

	// Scryfall identifier
	ScryfallID string `json:"id"`

	// Full card name ("Fire // Ice" for split cards)
	Name string `json:"name"`

	// Layout information ("normal", "split", "transform", ...)
	Layout string `json:"layout"`

	// Print details
	Rarity          string `json:"rarity"` // "common", "uncommon", "rare", "mythic"
	SetCode         string `json:"set"`
	SetName         string `json:"set_name"`
	Block           string `json:"block,omitempty"`
	CollectorNumber string `json:"collector_number"`

	// Color identity applies to the whole card
	ColorIdentity []mana.Color `json:"color_identity"`

	// Format name -> legality
	Legalities map[string]Legality `json:"legalities,omitempty"`

	// User-assigned tags
	Tags []string `json:"tags,omitempty"`

	// Faces in printed order; never empty for a valid card
	Faces []*Face `json:"faces"`
}

// Face represents one printed side of a card.
type Face struct {
	Name     string       `json:"name"`
	ManaCost mana.Cost    `json:"mana_cost"`
	Colors   []mana.Color `json:"colors"`

	// Type line split into its parts, e.g. Legendary / Creature / Elf Druid
	Supertypes []string `json:"supertypes,omitempty"`
	Types      []string `json:"types"`
	Subtypes   []string `json:"subtypes,omitempty"`

	// Power/Toughness (for creatures), Loyalty (for planeswalkers)
	Power     Stat `json:"power"`
	Toughness Stat `json:"toughness"`
	Loyalty   Stat `json:"loyalty"`

	// Text
	OracleText  string `json:"oracle_text,omitempty"`
	FlavorText  string `json:"flavor_text,omitempty"`
	PrintedText string `json:"printed_text,omitempty"`
	Artist      string `json:"artist,omitempty"`
}

// FrontFace returns the first face.
func (c *Card) FrontFace() *Face {
	if len(c.Faces) == 0 {
		return nil
	}
	return c.Faces[0]
}

// BackFace returns the last face. For single-faced cards this is the same
// face as FrontFace.
func (c *Card) BackFace() *Face {
	if len(c.Faces) == 0 {
		return nil
	}
	return c.Faces[len(c.Faces)-1]
}

// LegalityIn returns the card's legality in format. Unknown formats are
// reported as NotLegal.
func (c *Card) LegalityIn(format string) Legality {
	if l, ok := c.Legalities[strings.ToLower(format)]; ok {
		return l
	}
	return NotLegal
}

// LegalIn reports whether the card may be played in format, including as a
// restricted card.
func (c *Card) LegalIn(format string) bool {
	l := c.LegalityIn(format)
	return l == Legal || l == Restricted
}

// LegalFormats returns the sorted names of the formats the card is legal in.
func (c *Card) LegalFormats() []string {
	var formats []string
	for format := range c.Legalities {
		if c.LegalIn(format) {
			formats = append(formats, format)
		}
	}
	sort.Strings(formats)
	return formats
}

// HasTag reports whether the card carries tag.
func (c *Card) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// TypeLine reassembles the printed type line.
func (f *Face) TypeLine() string {
	left := strings.Join(append(slices.Clone(f.Supertypes), f.Types...), " ")
	if len(f.Subtypes) == 0 {
		return left
	}
	return left + " — " + strings.Join(f.Subtypes, " ")
}

// HasType reports whether the face has the given card type, case-insensitively.
func (f *Face) HasType(t string) bool {
	return slices.ContainsFunc(f.Types, func(s string) bool { return strings.EqualFold(s, t) })
}

// Legality is a card's status in one format.
type Legality string

const (
	Legal      Legality = "legal"
	Restricted Legality = "restricted"
	Banned     Legality = "banned"
	NotLegal   Legality = "not_legal"
)

// Stat is a printed power, toughness or loyalty value. Value is NaN when the
// face has no such stat. Expressions such as "*" or "1+*" keep their numeric
// part as Value (0 and 1) and report Variable.
type Stat struct {
	Expression string
	Value      float64
}

var statVariables = strings.NewReplacer("*", "", "X", "", "x", "", "?", "", "²", "")

// ParseStat parses a printed stat expression. The empty string yields an
// absent stat.
func ParseStat(expr string) Stat {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Stat{Value: math.NaN()}
	}
	if strings.Contains(expr, "∞") {
		return Stat{Expression: expr, Value: math.Inf(1)}
	}

	numeric := statVariables.Replace(expr)
	numeric = strings.TrimLeft(numeric, "+")
	numeric = strings.TrimRight(numeric, "+-")
	if numeric == "" {
		return Stat{Expression: expr, Value: 0}
	}
	v, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return Stat{Expression: expr, Value: math.NaN()}
	}
	return Stat{Expression: expr, Value: v}
}

// Exists reports whether the face printed this stat at all.
func (s Stat) Exists() bool {
	return s.Expression != ""
}

// Number returns the numeric value of the stat, or NaN when the stat is
// absent. The zero Stat is absent.
func (s Stat) Number() float64 {
	if !s.Exists() {
		return math.NaN()
	}
	return s.Value
}

// Variable reports whether the stat is defined by an expression rather than
// a fixed number.
func (s Stat) Variable() bool {
	return strings.ContainsAny(s.Expression, "*Xx?")
}

// UnmarshalText restores Value from the expression.
func (s *Stat) UnmarshalText(text []byte) error {
	*s = ParseStat(string(text))
	return nil
}

// MarshalText writes the printed expression.
func (s Stat) MarshalText() ([]byte, error) {
	return []byte(s.Expression), nil
}

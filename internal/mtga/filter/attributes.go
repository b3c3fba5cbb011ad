package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// Each leaf kind has its own attribute type so a leaf can only be built
// with an extractor of the matching shape. The attribute values double as
// the serialized "type" tag.

// TextAttribute names a free-text field of a face.
type TextAttribute string

const (
	TextName         TextAttribute = "name"
	TextRules        TextAttribute = "rules_text"
	TextFlavor       TextAttribute = "flavor_text"
	TextPrinted      TextAttribute = "printed_text"
	TextArtist       TextAttribute = "artist"
	TextFullTypeLine TextAttribute = "type_line_text"
)

// NumberAttribute names a fixed numeric characteristic.
type NumberAttribute string

const (
	NumberManaValue  NumberAttribute = "cmc"
	NumberCardNumber NumberAttribute = "card_number"
)

// VariableAttribute names a numeric characteristic that may be printed as
// an expression such as "*".
type VariableAttribute string

const (
	VariablePower     VariableAttribute = "power"
	VariableToughness VariableAttribute = "toughness"
	VariableLoyalty   VariableAttribute = "loyalty"
)

// ColorAttribute names a color list.
type ColorAttribute string

const (
	ColorColors   ColorAttribute = "color"
	ColorIdentity ColorAttribute = "color_identity"
)

// OptionsAttribute names an enumerated characteristic.
type OptionsAttribute string

const (
	OptionRarity    OptionsAttribute = "rarity"
	OptionExpansion OptionsAttribute = "expansion"
	OptionBlock     OptionsAttribute = "block"
	OptionLayout    OptionsAttribute = "layout"
	OptionSupertype OptionsAttribute = "supertype"
	OptionCardType  OptionsAttribute = "card_type"
	OptionSubtype   OptionsAttribute = "subtype"
	OptionTags      OptionsAttribute = "tags"
)

// Type tags of the leaves that are not parameterized by an attribute.
const (
	TypeManaCost = "mana_cost"
	TypeTypeLine = "type_line"
	TypeLegality = "legality"
	TypeGroup    = "group"
)

var textExtractors = map[TextAttribute]func(*cards.Card, *cards.Face) string{
	TextName:         func(_ *cards.Card, f *cards.Face) string { return f.Name },
	TextRules:        func(_ *cards.Card, f *cards.Face) string { return f.OracleText },
	TextFlavor:       func(_ *cards.Card, f *cards.Face) string { return f.FlavorText },
	TextPrinted:      func(_ *cards.Card, f *cards.Face) string { return f.PrintedText },
	TextArtist:       func(_ *cards.Card, f *cards.Face) string { return f.Artist },
	TextFullTypeLine: func(_ *cards.Card, f *cards.Face) string { return f.TypeLine() },
}

var numberExtractors = map[NumberAttribute]func(*cards.Card, *cards.Face) []float64{
	NumberManaValue:  manaValues,
	NumberCardNumber: func(c *cards.Card, _ *cards.Face) []float64 { return []float64{collectorNumber(c.CollectorNumber)} },
}

type variableExtractor struct {
	stat func(*cards.Face) cards.Stat
}

var variableExtractors = map[VariableAttribute]variableExtractor{
	VariablePower:     {stat: func(f *cards.Face) cards.Stat { return f.Power }},
	VariableToughness: {stat: func(f *cards.Face) cards.Stat { return f.Toughness }},
	VariableLoyalty:   {stat: func(f *cards.Face) cards.Stat { return f.Loyalty }},
}

var colorExtractors = map[ColorAttribute]func(*cards.Card, *cards.Face) []mana.Color{
	ColorColors:   func(_ *cards.Card, f *cards.Face) []mana.Color { return f.Colors },
	ColorIdentity: func(c *cards.Card, _ *cards.Face) []mana.Color { return c.ColorIdentity },
}

var optionExtractors = map[OptionsAttribute]func(*cards.Card, *cards.Face) []string{
	OptionRarity:    func(c *cards.Card, _ *cards.Face) []string { return single(c.Rarity) },
	OptionExpansion: func(c *cards.Card, _ *cards.Face) []string { return single(c.SetName) },
	OptionBlock:     func(c *cards.Card, _ *cards.Face) []string { return single(c.Block) },
	OptionLayout:    func(c *cards.Card, _ *cards.Face) []string { return single(c.Layout) },
	OptionSupertype: func(_ *cards.Card, f *cards.Face) []string { return f.Supertypes },
	OptionCardType:  func(_ *cards.Card, f *cards.Face) []string { return f.Types },
	OptionSubtype:   func(_ *cards.Card, f *cards.Face) []string { return f.Subtypes },
	OptionTags:      func(c *cards.Card, _ *cards.Face) []string { return c.Tags },
}

// TextAttributes returns every text attribute.
func TextAttributes() []TextAttribute {
	return []TextAttribute{TextName, TextRules, TextFlavor, TextPrinted, TextArtist, TextFullTypeLine}
}

// NumberAttributes returns every fixed numeric attribute.
func NumberAttributes() []NumberAttribute {
	return []NumberAttribute{NumberManaValue, NumberCardNumber}
}

// VariableAttributes returns every expression-capable numeric attribute.
func VariableAttributes() []VariableAttribute {
	return []VariableAttribute{VariablePower, VariableToughness, VariableLoyalty}
}

// ColorAttributes returns every color attribute.
func ColorAttributes() []ColorAttribute {
	return []ColorAttribute{ColorColors, ColorIdentity}
}

// OptionsAttributes returns every enumerated attribute.
func OptionsAttributes() []OptionsAttribute {
	return []OptionsAttribute{
		OptionRarity, OptionExpansion, OptionBlock, OptionLayout,
		OptionSupertype, OptionCardType, OptionSubtype, OptionTags,
	}
}

func (a TextAttribute) valid() bool { _, ok := textExtractors[a]; return ok }
func (a NumberAttribute) valid() bool { _, ok := numberExtractors[a]; return ok }
func (a VariableAttribute) valid() bool { _, ok := variableExtractors[a]; return ok }
func (a ColorAttribute) valid() bool { _, ok := colorExtractors[a]; return ok }
func (a OptionsAttribute) valid() bool { _, ok := optionExtractors[a]; return ok }

// manaValues yields the face's own mana value; split cards also yield the
// combined value of all halves, which is the card's mana value off the stack.
func manaValues(c *cards.Card, f *cards.Face) []float64 {
	values := []float64{f.ManaCost.CMC()}
	if c.Layout == "split" && len(c.Faces) > 1 {
		var total float64
		for _, face := range c.Faces {
			total += face.ManaCost.CMC()
		}
		values = append(values, total)
	}
	return values
}

// collectorNumber reads the leading digits of a collector number such as
// "245a". Numbers without leading digits yield NaN.
func collectorNumber(s string) float64 {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return math.NaN()
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return math.NaN()
	}
	return float64(n)
}

func single(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
)

// OptionsFilter tests an enumerated attribute such as rarity or subtype
// against a set of selected values. Comparison ignores case.
type OptionsFilter struct {
	attr     OptionsAttribute
	mode     containment.Mode
	selected []string
	faces    FaceSelection
}

// NewOptionsFilter builds an options filter. Selected values are lower-cased
// and de-duplicated, keeping their first occurrence.
func NewOptionsFilter(attr OptionsAttribute, mode containment.Mode, selected []string, faces FaceSelection) (*OptionsFilter, error) {
	if !attr.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, attr)
	}
	if err := checkLeaf(mode, faces); err != nil {
		return nil, err
	}
	return &OptionsFilter{attr: attr, mode: mode, selected: normalizeOptions(selected), faces: faces}, nil
}

// Test implements Filter.
func (f *OptionsFilter) Test(c *cards.Card) bool {
	extract := optionExtractors[f.attr]
	return f.faces.apply(c, func(c *cards.Card, face *cards.Face) bool {
		return containment.Test(f.mode, lowerAll(extract(c, face)), f.selected)
	})
}

func (f *OptionsFilter) Type() string { return string(f.attr) }
func (f *OptionsFilter) Faces() FaceSelection { return f.faces }
func (f *OptionsFilter) Attribute() OptionsAttribute { return f.attr }
func (f *OptionsFilter) Mode() containment.Mode { return f.mode }

// Selected returns a copy of the selected values.
func (f *OptionsFilter) Selected() []string { return slices.Clone(f.selected) }

func (f *OptionsFilter) String() string {
	return fmt.Sprintf("%s %s [%s]", f.attr, f.mode, strings.Join(f.selected, ", "))
}

// LegalityFilter tests the set of formats a card is legal in. With
// Restricted set, every selected format the card is legal in must also
// restrict it.
type LegalityFilter struct {
	mode       containment.Mode
	formats    []string
	restricted bool
	faces      FaceSelection
}

// NewLegalityFilter builds a legality filter over format names.
func NewLegalityFilter(mode containment.Mode, formats []string, restricted bool, faces FaceSelection) (*LegalityFilter, error) {
	if err := checkLeaf(mode, faces); err != nil {
		return nil, err
	}
	return &LegalityFilter{mode: mode, formats: normalizeOptions(formats), restricted: restricted, faces: faces}, nil
}

// Test implements Filter. Legality belongs to the card, so the face policy
// only matters for cards without faces, which never match.
func (f *LegalityFilter) Test(c *cards.Card) bool {
	return f.faces.apply(c, func(c *cards.Card, _ *cards.Face) bool {
		if !containment.Test(f.mode, c.LegalFormats(), f.formats) {
			return false
		}
		if !f.restricted {
			return true
		}
		for _, format := range f.formats {
			if c.LegalIn(format) && c.LegalityIn(format) != cards.Restricted {
				return false
			}
		}
		return true
	})
}

func (f *LegalityFilter) Type() string { return TypeLegality }
func (f *LegalityFilter) Faces() FaceSelection { return f.faces }
func (f *LegalityFilter) Mode() containment.Mode { return f.mode }
func (f *LegalityFilter) Restricted() bool { return f.restricted }

// Formats returns a copy of the selected formats.
func (f *LegalityFilter) Formats() []string { return slices.Clone(f.formats) }

func (f *LegalityFilter) String() string {
	s := fmt.Sprintf("%s %s [%s]", TypeLegality, f.mode, strings.Join(f.formats, ", "))
	if f.restricted {
		s += " restricted"
	}
	return s
}

func normalizeOptions(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

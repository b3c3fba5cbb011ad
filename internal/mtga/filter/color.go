package filter

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// ColorFilter tests a face's colors, or the card's color identity, against a
// fixed color set. Multicolored additionally requires more than one color.
type ColorFilter struct {
	attr         ColorAttribute
	mode         containment.Mode
	colors       []mana.Color
	multicolored bool
	faces        FaceSelection
}

// NewColorFilter builds a color filter. The color set is de-duplicated and
// put in wheel order.
func NewColorFilter(attr ColorAttribute, mode containment.Mode, colors []mana.Color, multicolored bool, faces FaceSelection) (*ColorFilter, error) {
	if !attr.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, attr)
	}
	if err := checkLeaf(mode, faces); err != nil {
		return nil, err
	}
	return &ColorFilter{
		attr:         attr,
		mode:         mode,
		colors:       mana.SortColors(colors),
		multicolored: multicolored,
		faces:        faces,
	}, nil
}

// Test implements Filter.
func (f *ColorFilter) Test(c *cards.Card) bool {
	extract := colorExtractors[f.attr]
	return f.faces.apply(c, func(c *cards.Card, face *cards.Face) bool {
		have := extract(c, face)
		if f.multicolored && len(have) <= 1 {
			return false
		}
		return containment.Test(f.mode, have, f.colors)
	})
}

func (f *ColorFilter) Type() string { return string(f.attr) }
func (f *ColorFilter) Faces() FaceSelection { return f.faces }
func (f *ColorFilter) Attribute() ColorAttribute { return f.attr }
func (f *ColorFilter) Mode() containment.Mode { return f.mode }
func (f *ColorFilter) Multicolored() bool { return f.multicolored }

// Colors returns a copy of the reference colors.
func (f *ColorFilter) Colors() []mana.Color {
	return append([]mana.Color(nil), f.colors...)
}

func (f *ColorFilter) String() string {
	letters := make([]string, len(f.colors))
	for i, c := range f.colors {
		letters[i] = c.Letter()
	}
	s := fmt.Sprintf("%s %s {%s}", f.attr, f.mode, strings.Join(letters, ","))
	if f.multicolored {
		s += " multicolored"
	}
	return s
}

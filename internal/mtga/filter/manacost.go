package filter

import (
	"fmt"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/mana"
)

// ManaCostFilter compares a face's mana cost with a reference cost. AnyOf and
// NoneOf look at individual symbols; AllOf and NotAllOf use cost supersets,
// and Exactly and NotExactly use cost equality.
type ManaCostFilter struct {
	mode  containment.Mode
	cost  mana.Cost
	faces FaceSelection
}

// NewManaCostFilter builds a mana cost filter.
func NewManaCostFilter(mode containment.Mode, cost mana.Cost, faces FaceSelection) (*ManaCostFilter, error) {
	if err := checkLeaf(mode, faces); err != nil {
		return nil, err
	}
	return &ManaCostFilter{mode: mode, cost: cost, faces: faces}, nil
}

// Test implements Filter.
func (f *ManaCostFilter) Test(c *cards.Card) bool {
	return f.faces.apply(c, func(_ *cards.Card, face *cards.Face) bool {
		return f.match(face.ManaCost)
	})
}

func (f *ManaCostFilter) match(have mana.Cost) bool {
	switch f.mode {
	case containment.AnyOf, containment.NoneOf:
		return containment.Test(f.mode, have.Symbols(), f.cost.Symbols())
	case containment.AllOf:
		return have.IsSuperset(f.cost)
	case containment.NotAllOf:
		return containment.Test(containment.AnyOf, have.Symbols(), f.cost.Symbols()) && !have.IsSuperset(f.cost)
	case containment.Exactly:
		return have.Equal(f.cost)
	case containment.NotExactly:
		return !have.Equal(f.cost)
	default:
		return false
	}
}

func (f *ManaCostFilter) Type() string { return TypeManaCost }
func (f *ManaCostFilter) Faces() FaceSelection { return f.faces }
func (f *ManaCostFilter) Mode() containment.Mode { return f.mode }
func (f *ManaCostFilter) Cost() mana.Cost { return f.cost }

func (f *ManaCostFilter) String() string {
	return fmt.Sprintf("%s %s %s", TypeManaCost, f.mode, f.cost)
}

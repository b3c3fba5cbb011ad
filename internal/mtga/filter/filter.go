// Package filter implements card predicates: typed leaf clauses over card
// attributes combined by nested ALL/ANY/NONE groups.
//
// A Filter is immutable once built and may be evaluated from many goroutines
// at once. Editing a tree produces a new tree; see Copy, Group.With and
// Group.Without.
package filter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
)

// Decoding errors. Every failure returned by the codec wraps one of these
// (or a mana/containment parse error) inside a *DecodeError.
var (
	ErrUnknownType       = errors.New("unknown filter type")
	ErrUnknownComparison = errors.New("unknown comparison")
	ErrUnknownFaces      = errors.New("unknown face selection")
	ErrUnknownGroupMode  = errors.New("unknown group mode")
	ErrMissingField      = errors.New("missing field")
	ErrUnexpectedField   = errors.New("unexpected field")
	ErrInvalidPattern    = errors.New("invalid pattern")
	ErrInvalidOperand    = errors.New("invalid operand")
	ErrNilFilter         = errors.New("nil filter")
)

// Filter is a predicate over cards. The set of implementations is closed:
// *TextFilter, *NumberFilter, *VariableNumberFilter, *ColorFilter,
// *ManaCostFilter, *TypeLineFilter, *OptionsFilter, *LegalityFilter and
// *Group.
type Filter interface {
	// Test reports whether c satisfies the filter. It never fails; a nil
	// card or a card without faces fails every leaf.
	Test(c *cards.Card) bool

	// Type returns the serialized type tag.
	Type() string

	String() string

	sealed()
}

// Leaf is a Filter that tests one attribute through a face selection policy.
type Leaf interface {
	Filter
	Faces() FaceSelection
}

func (*TextFilter) sealed() {}
func (*NumberFilter) sealed() {}
func (*VariableNumberFilter) sealed() {}
func (*ColorFilter) sealed() {}
func (*ManaCostFilter) sealed() {}
func (*TypeLineFilter) sealed() {}
func (*OptionsFilter) sealed() {}
func (*LegalityFilter) sealed() {}
func (*Group) sealed() {}

// checkLeaf validates the containment mode and face selection shared by
// most leaves.
func checkLeaf(mode containment.Mode, faces FaceSelection) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", containment.ErrUnknownMode, int(mode))
	}
	return checkFaces(faces)
}

func checkFaces(faces FaceSelection) error {
	if !faces.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFaces, int(faces))
	}
	return nil
}

// Copy returns a deep copy of f that shares no mutable state with it.
func Copy(f Filter) Filter {
	switch v := f.(type) {
	case *TextFilter:
		c := *v
		c.matchers = slices.Clone(v.matchers)
		return &c
	case *NumberFilter:
		c := *v
		return &c
	case *VariableNumberFilter:
		c := *v
		return &c
	case *ColorFilter:
		c := *v
		c.colors = slices.Clone(v.colors)
		return &c
	case *ManaCostFilter:
		c := *v
		return &c
	case *TypeLineFilter:
		c := *v
		c.words = slices.Clone(v.words)
		return &c
	case *OptionsFilter:
		c := *v
		c.selected = slices.Clone(v.selected)
		return &c
	case *LegalityFilter:
		c := *v
		c.formats = slices.Clone(v.formats)
		return &c
	case *Group:
		c := &Group{mode: v.mode, comment: v.comment, children: make([]Filter, len(v.children))}
		for i, child := range v.children {
			c.children[i] = Copy(child)
		}
		return c
	default:
		return nil
	}
}

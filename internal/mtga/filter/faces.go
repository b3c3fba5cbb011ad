package filter

import (
	"fmt"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
)

// FaceSelection decides which faces of a multi-faced card a leaf clause is
// evaluated against. Single-faced cards behave the same under every policy.
type FaceSelection int

const (
	AnyFace   FaceSelection = iota // Passes if some face passes
	AllFaces                       // Passes if every face passes
	FrontFace                      // Only the first face is tested
	BackFace                       // Only the last face is tested
)

var faceCodes = [...]string{
	AnyFace:   "any",
	AllFaces:  "all",
	FrontFace: "front",
	BackFace:  "back",
}

// FaceSelections returns every policy in display order.
func FaceSelections() []FaceSelection {
	return []FaceSelection{AnyFace, AllFaces, FrontFace, BackFace}
}

func (fs FaceSelection) valid() bool {
	return fs >= AnyFace && fs <= BackFace
}

// String returns the wire code of the policy.
func (fs FaceSelection) String() string {
	if !fs.valid() {
		return fmt.Sprintf("FaceSelection(%d)", int(fs))
	}
	return faceCodes[fs]
}

// ParseFaceSelection converts a wire code into a FaceSelection.
func ParseFaceSelection(code string) (FaceSelection, error) {
	for fs, c := range faceCodes {
		if c == code {
			return FaceSelection(fs), nil
		}
	}
	return AnyFace, fmt.Errorf("%w: %q", ErrUnknownFaces, code)
}

// apply evaluates test against the faces of c chosen by the policy. A card
// without faces never passes.
func (fs FaceSelection) apply(c *cards.Card, test func(*cards.Card, *cards.Face) bool) bool {
	if c == nil || len(c.Faces) == 0 {
		return false
	}

	switch fs {
	case AllFaces:
		for _, f := range c.Faces {
			if !test(c, f) {
				return false
			}
		}
		return true
	case FrontFace:
		return test(c, c.FrontFace())
	case BackFace:
		return test(c, c.BackFace())
	default:
		for _, f := range c.Faces {
			if test(c, f) {
				return true
			}
		}
		return false
	}
}

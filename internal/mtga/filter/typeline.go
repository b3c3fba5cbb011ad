package filter

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
)

// TypeLineFilter matches the words of a face's type line, ignoring case and
// the distinction between supertypes, types and subtypes. An empty pattern
// never matches.
type TypeLineFilter struct {
	mode    containment.Mode
	pattern string
	words   []string
	faces   FaceSelection
}

// NewTypeLineFilter builds a type line filter from whitespace separated words.
func NewTypeLineFilter(mode containment.Mode, pattern string, faces FaceSelection) (*TypeLineFilter, error) {
	if err := checkLeaf(mode, faces); err != nil {
		return nil, err
	}
	return &TypeLineFilter{
		mode:    mode,
		pattern: pattern,
		words:   strings.Fields(strings.ToLower(pattern)),
		faces:   faces,
	}, nil
}

// Test implements Filter.
func (f *TypeLineFilter) Test(c *cards.Card) bool {
	if len(f.words) == 0 {
		return false
	}
	return f.faces.apply(c, func(_ *cards.Card, face *cards.Face) bool {
		return containment.Test(f.mode, typeWords(face), f.words)
	})
}

func typeWords(face *cards.Face) []string {
	words := make([]string, 0, len(face.Supertypes)+len(face.Types)+len(face.Subtypes))
	for _, group := range [][]string{face.Supertypes, face.Types, face.Subtypes} {
		for _, w := range group {
			words = append(words, strings.ToLower(w))
		}
	}
	return words
}

func (f *TypeLineFilter) Type() string { return TypeTypeLine }
func (f *TypeLineFilter) Faces() FaceSelection { return f.faces }
func (f *TypeLineFilter) Mode() containment.Mode { return f.mode }
func (f *TypeLineFilter) Pattern() string { return f.pattern }

func (f *TypeLineFilter) String() string {
	return fmt.Sprintf("%s %s %q", TypeTypeLine, f.mode, f.pattern)
}

package filter

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
)

// GroupMode combines the results of a group's children.
type GroupMode int

const (
	MatchAll  GroupMode = iota // Every child passes; true when empty
	MatchAny                   // Some child passes; false when empty
	MatchNone                  // No child passes; true when empty
)

var groupModeCodes = [...]string{
	MatchAll:  "all",
	MatchAny:  "any",
	MatchNone: "none",
}

// String returns the wire code of the mode.
func (m GroupMode) String() string {
	if m < MatchAll || m > MatchNone {
		return fmt.Sprintf("GroupMode(%d)", int(m))
	}
	return groupModeCodes[m]
}

// ParseGroupMode converts a wire code into a GroupMode.
func ParseGroupMode(code string) (GroupMode, error) {
	for m, c := range groupModeCodes {
		if c == code {
			return GroupMode(m), nil
		}
	}
	return MatchAll, fmt.Errorf("%w: %q", ErrUnknownGroupMode, code)
}

// Group combines child filters. The zero Group matches every card.
type Group struct {
	mode     GroupMode
	comment  string
	children []Filter
}

// NewGroup builds a group over children. Nil children are dropped.
func NewGroup(mode GroupMode, comment string, children ...Filter) *Group {
	g := &Group{mode: mode, comment: comment, children: make([]Filter, 0, len(children))}
	for _, child := range children {
		if child != nil {
			g.children = append(g.children, child)
		}
	}
	return g
}

// Test implements Filter.
func (g *Group) Test(c *cards.Card) bool {
	switch g.mode {
	case MatchAny:
		for _, child := range g.children {
			if child.Test(c) {
				return true
			}
		}
		return false
	case MatchNone:
		for _, child := range g.children {
			if child.Test(c) {
				return false
			}
		}
		return true
	default:
		for _, child := range g.children {
			if !child.Test(c) {
				return false
			}
		}
		return true
	}
}

func (g *Group) Type() string { return TypeGroup }
func (g *Group) Mode() GroupMode { return g.mode }
func (g *Group) Comment() string { return g.comment }
func (g *Group) Len() int { return len(g.children) }

// Children returns the direct children in order.
func (g *Group) Children() []Filter {
	return append([]Filter(nil), g.children...)
}

// With returns a copy of g with child appended.
func (g *Group) With(child Filter) *Group {
	return NewGroup(g.mode, g.comment, append(g.Children(), child)...)
}

// Without returns a copy of g with the child at index i removed. An index out
// of range yields an unchanged copy.
func (g *Group) Without(i int) *Group {
	children := g.Children()
	if i >= 0 && i < len(children) {
		children = append(children[:i], children[i+1:]...)
	}
	return NewGroup(g.mode, g.comment, children...)
}

// Replace returns a copy of g with the child at index i swapped for child.
func (g *Group) Replace(i int, child Filter) *Group {
	children := g.Children()
	if i >= 0 && i < len(children) {
		children[i] = child
	}
	return NewGroup(g.mode, g.comment, children...)
}

// WithMode returns a copy of g combining its children with mode.
func (g *Group) WithMode(mode GroupMode) *Group {
	return NewGroup(mode, g.comment, g.children...)
}

func (g *Group) String() string {
	parts := make([]string, len(g.children))
	for i, child := range g.children {
		parts[i] = child.String()
	}
	return fmt.Sprintf("%s(%s)", g.mode, strings.Join(parts, "; "))
}

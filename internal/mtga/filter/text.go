package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/containment"
)

// tokenPattern splits simple search text into quoted phrases and bare words.
var tokenPattern = regexp.MustCompile(`"([^"]*)"|'([^']*)'|(\S+)`)

// TextFilter matches a free-text attribute of a face.
//
// In simple mode the pattern is split into words and quoted phrases, and the
// containment mode decides how many of them must occur in the text. Word
// characters are Unicode letters, digits and '_'; a '*' inside a word matches
// any run of them. Exactly and NotExactly compare the whole text to the
// pattern instead, ignoring case.
//
// In regex mode the pattern is a case-insensitive regular expression treated
// as a single token, except that Exactly and NotExactly require the expression
// to match (or not match) the entire text.
type TextFilter struct {
	attr    TextAttribute
	mode    containment.Mode
	pattern string
	regex   bool
	faces   FaceSelection

	matchers []*regexp.Regexp
}

// NewTextFilter builds a text filter, compiling its pattern up front.
func NewTextFilter(attr TextAttribute, mode containment.Mode, pattern string, regex bool, faces FaceSelection) (*TextFilter, error) {
	if !attr.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, attr)
	}
	if err := checkLeaf(mode, faces); err != nil {
		return nil, err
	}
	f := &TextFilter{
		attr:    attr,
		mode:    mode,
		pattern: pattern,
		regex:   regex,
		faces:   faces,
	}

	var err error
	if regex {
		f.matchers, err = compileRegex(pattern, mode)
	} else {
		f.matchers, err = compileSimple(pattern)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func compileRegex(pattern string, mode containment.Mode) ([]*regexp.Regexp, error) {
	expr := "(?i)" + pattern
	if mode == containment.Exactly || mode == containment.NotExactly {
		expr = "(?i)^(?:" + pattern + ")$"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return []*regexp.Regexp{re}, nil
}

func compileSimple(pattern string) ([]*regexp.Regexp, error) {
	var matchers []*regexp.Regexp
	for _, m := range tokenPattern.FindAllStringSubmatch(pattern, -1) {
		token := m[1] + m[2] + m[3]
		if token == "" {
			continue
		}
		parts := strings.Split(token, "*")
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		expr := `(?i)(?:^|[^\p{L}\p{N}_])` + strings.Join(parts, `[\p{L}\p{N}_]*`) + `(?:[^\p{L}\p{N}_]|$)`
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: token %q: %v", ErrInvalidPattern, token, err)
		}
		matchers = append(matchers, re)
	}
	return matchers, nil
}

// Test implements Filter.
func (f *TextFilter) Test(c *cards.Card) bool {
	extract := textExtractors[f.attr]
	return f.faces.apply(c, func(c *cards.Card, face *cards.Face) bool {
		return f.match(extract(c, face))
	})
}

func (f *TextFilter) match(text string) bool {
	if !f.regex && (f.mode == containment.Exactly || f.mode == containment.NotExactly) {
		same := strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(f.pattern))
		return same == (f.mode == containment.Exactly)
	}

	// Containment over token indices: the needle is every token, the
	// haystack is the tokens found in the text.
	all := make([]int, len(f.matchers))
	var found []int
	for i, re := range f.matchers {
		all[i] = i
		if re.MatchString(text) {
			found = append(found, i)
		}
	}
	if f.regex && (f.mode == containment.Exactly || f.mode == containment.NotExactly) {
		return (len(found) == 1) == (f.mode == containment.Exactly)
	}
	return containment.Test(f.mode, found, all)
}

func (f *TextFilter) Type() string { return string(f.attr) }
func (f *TextFilter) Faces() FaceSelection { return f.faces }
func (f *TextFilter) Attribute() TextAttribute { return f.attr }
func (f *TextFilter) Mode() containment.Mode { return f.mode }
func (f *TextFilter) Pattern() string { return f.pattern }
func (f *TextFilter) Regex() bool { return f.regex }

func (f *TextFilter) String() string {
	if f.regex {
		return fmt.Sprintf("%s %s /%s/", f.attr, f.mode, f.pattern)
	}
	return fmt.Sprintf("%s %s %q", f.attr, f.mode, f.pattern)
}

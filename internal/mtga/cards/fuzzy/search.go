// Package fuzzy ranks card names by similarity to a typed query.
package fuzzy

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Result is a scored match. Index refers to the position in the searched slice.
type Result struct {
	Name  string
	Score int
	Index int
}

// Options configures a search.
type Options struct {
	// CaseSensitive disables case folding
	CaseSensitive bool
	// MaxResults limits the number of results (0 = unlimited)
	MaxResults int
	// MinScore is the similarity threshold (0-100)
	MinScore int
}

// DefaultOptions returns the options used for name lookups.
func DefaultOptions() Options {
	return Options{
		MaxResults: 20,
		MinScore:   40,
	}
}

// Search scores every name against query and returns the matches sorted by
// score, best first. Ties keep the input order.
func Search(query string, names []string, opts Options) []Result {
	if !opts.CaseSensitive {
		query = strings.ToLower(query)
	}
	query = strings.TrimSpace(query)

	results := make([]Result, 0)
	for i, name := range names {
		candidate := name
		if !opts.CaseSensitive {
			candidate = strings.ToLower(name)
		}
		if score := Score(query, candidate); score >= opts.MinScore {
			results = append(results, Result{Name: name, Score: score, Index: i})
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return b.Score - a.Score
	})

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// Score rates the similarity of query and target from 0 to 100. Exact
// matches score 100, prefixes 90 and up, other substrings 80 and up, and
// anything else by edit distance.
func Score(query, target string) int {
	if query == target {
		return 100
	}
	ql, tl := utf8.RuneCountInString(query), utf8.RuneCountInString(target)
	if ql == 0 || tl == 0 {
		return 0
	}

	switch {
	case strings.HasPrefix(target, query):
		return 90 + ql*9/tl
	case strings.Contains(target, query):
		return 80 + ql*9/tl
	}

	distance := levenshtein([]rune(query), []rune(target))
	return 100 - distance*100/max(ql, tl)
}

// levenshtein returns the edit distance between a and b using two rows.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

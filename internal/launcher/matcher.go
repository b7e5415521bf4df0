package launcher

import "github.com/sahilm/fuzzy"

// Matcher reports whether query fuzzy-matches candidate.
type Matcher interface {
	Matches(candidate, query string) bool
}

// FuzzyMatcher is a case-insensitive subsequence matcher.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Matches(candidate, query string) bool {
	if query == "" || candidate == "" {
		return false
	}
	return len(fuzzy.Find(query, []string{candidate})) > 0
}

type MatcherFunc func(candidate, query string) bool

func (f MatcherFunc) Matches(candidate, query string) bool {
	return f(candidate, query)
}

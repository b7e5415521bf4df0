// Package query splits raw launcher input into an optional keyword prefix
// and the text that follows it.
package query

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmpty is returned when there is no input to parse.
var ErrEmpty = errors.New("empty query")

// StructuredQuery is the parsed form of one search input.
type StructuredQuery struct {
	// Keyword is the first whitespace-delimited token. It is only set when
	// the input has more than one token.
	Keyword    string
	HasKeyword bool
	// Query is everything after the keyword and its separating whitespace,
	// or the whole trimmed input when there is no keyword.
	Query    string
	FullText string
}

// Parse splits raw on its first whitespace run.
func Parse(raw string) (StructuredQuery, error) {
	if raw == "" {
		return StructuredQuery{}, ErrEmpty
	}

	q := StructuredQuery{FullText: raw}

	text := strings.TrimLeftFunc(raw, unicode.IsSpace)
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		q.Query = strings.TrimSpace(text)
		return q, nil
	}

	q.Keyword = text[:idx]
	q.HasKeyword = true
	q.Query = strings.TrimLeftFunc(text[idx:], unicode.IsSpace)
	return q, nil
}

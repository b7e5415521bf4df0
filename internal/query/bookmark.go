package query

import "strings"

// BookmarkMode selects what a bookmarks query does.
type BookmarkMode int

const (
	BookmarkOpen BookmarkMode = iota
	BookmarkAdd
	BookmarkRemove
)

func (m BookmarkMode) String() string {
	switch m {
	case BookmarkAdd:
		return "add"
	case BookmarkRemove:
		return "remove"
	default:
		return "open"
	}
}

// BookmarkCommand is the result of parsing the text that follows the
// bookmarks feature keyword.
type BookmarkCommand struct {
	Mode BookmarkMode
	// Name and URL are only filled for BookmarkAdd.
	Name string
	URL  string
	// Query is the text to match bookmark names against.
	Query string
}

// ParseBookmarkCommand recognizes the "a"/"add" and "r"/"remove"
// sub-keywords. A malformed add command yields empty name or url values
// rather than an error.
func ParseBookmarkCommand(text string) (BookmarkCommand, error) {
	q, err := Parse(text)
	if err != nil {
		return BookmarkCommand{}, err
	}

	if q.HasKeyword {
		switch q.Keyword {
		case "a", "add":
			cmd := BookmarkCommand{Mode: BookmarkAdd, Query: q.Query}
			cmd.Name, cmd.URL = splitNameURL(strings.Fields(q.Query))
			return cmd, nil
		case "r", "remove":
			return BookmarkCommand{Mode: BookmarkRemove, Query: q.Query}, nil
		}
	}

	return BookmarkCommand{Mode: BookmarkOpen, Query: q.FullText}, nil
}

func splitNameURL(tokens []string) (name, url string) {
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	default:
		return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
	}
}

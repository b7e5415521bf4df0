package launcher

import (
	"log"

	"github.com/chess10kp/tuicher/internal/query"
)

type BookmarkProvider struct{}

func NewBookmarkProvider() *BookmarkProvider {
	return &BookmarkProvider{}
}

func (p *BookmarkProvider) Kind() ProviderKind {
	return ProviderBookmarks
}

// Populate handles "a <name...> <url>", "r <name>" and plain name matching.
func (p *BookmarkProvider) Populate(text string, ctx *SearchContext) []*Result {
	results := []*Result{}

	cmd, err := query.ParseBookmarkCommand(text)
	if err != nil {
		log.Printf("[BOOKMARKS] Ignoring query '%s': %v", text, err)
		return results
	}

	switch cmd.Mode {
	case query.BookmarkAdd:
		return append(results, &Result{
			Title:    "Add: " + cmd.Name,
			Subtitle: "URL: " + cmd.URL,
			Category: "bookmarks",
			Action:   NewAddBookmarkAction(cmd.Name, cmd.URL),
		})

	case query.BookmarkRemove:
		for _, bm := range ctx.Config.Bookmarks {
			if !ctx.Matcher.Matches(bm.Name, cmd.Query) {
				continue
			}
			results = append(results, &Result{
				Title:    "Remove " + bm.Name,
				Subtitle: bm.URL,
				Category: "bookmarks",
				Action:   NewRemoveBookmarkAction(bm.ID, bm.Name, bm.URL),
			})
		}
		return results
	}

	for _, bm := range ctx.Config.Bookmarks {
		if !ctx.Matcher.Matches(bm.Name, cmd.Query) {
			continue
		}
		results = append(results, &Result{
			Title:    bm.Name,
			Subtitle: bm.URL,
			Category: "bookmarks",
			Action:   NewOpenURLAction(bm.URL),
		})
	}
	return results
}

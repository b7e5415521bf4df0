package launcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/kyokomi/emoji/v2"
)

// Emoji is one catalog entry. Shortcodes are given without colons.
type Emoji struct {
	Char       string
	Name       string
	Shortcodes []string
}

type EmojiCatalog interface {
	Emojis() []Emoji
}

type staticCatalog []Emoji

func (c staticCatalog) Emojis() []Emoji { return c }

// NewStaticEmojiCatalog wraps a fixed list of emojis.
func NewStaticEmojiCatalog(emojis []Emoji) EmojiCatalog {
	return staticCatalog(emojis)
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     staticCatalog
)

// DefaultEmojiCatalog is built once from the emoji code map, sorted by name.
func DefaultEmojiCatalog() EmojiCatalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = buildCatalog(emoji.RevCodeMap())
	})
	return defaultCatalog
}

func buildCatalog(rev map[string][]string) staticCatalog {
	catalog := make(staticCatalog, 0, len(rev))
	for char, codes := range rev {
		if len(codes) == 0 {
			continue
		}

		shortcodes := make([]string, 0, len(codes))
		for _, code := range codes {
			shortcodes = append(shortcodes, strings.Trim(code, ":"))
		}
		sort.Strings(shortcodes)

		catalog = append(catalog, Emoji{
			Char:       strings.TrimSpace(char),
			Name:       strings.ReplaceAll(shortcodes[0], "_", " "),
			Shortcodes: shortcodes,
		})
	}

	sort.Slice(catalog, func(i, j int) bool {
		if catalog[i].Name != catalog[j].Name {
			return catalog[i].Name < catalog[j].Name
		}
		return catalog[i].Char < catalog[j].Char
	})
	return catalog
}

type EmojiProvider struct {
	catalog EmojiCatalog
}

func NewEmojiProvider(catalog EmojiCatalog) *EmojiProvider {
	if catalog == nil {
		catalog = DefaultEmojiCatalog()
	}
	return &EmojiProvider{catalog: catalog}
}

func (p *EmojiProvider) Kind() ProviderKind {
	return ProviderEmoji
}

func (p *EmojiProvider) Populate(query string, ctx *SearchContext) []*Result {
	results := []*Result{}
	if strings.TrimSpace(query) == "" {
		return results
	}

	for _, e := range p.catalog.Emojis() {
		if !p.matches(e, query, ctx.Matcher) {
			continue
		}
		results = append(results, &Result{
			Title:    e.Char + " " + e.Name,
			Category: "emojis",
			Action:   NewCopyTextAction(e.Char),
		})
	}
	return results
}

func (p *EmojiProvider) matches(e Emoji, query string, m Matcher) bool {
	if m.Matches(e.Name, query) {
		return true
	}
	for _, code := range e.Shortcodes {
		if m.Matches(code, query) {
			return true
		}
	}
	return false
}

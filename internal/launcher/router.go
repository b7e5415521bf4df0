package launcher

import (
	"fmt"
	"log"
	"time"

	"github.com/chess10kp/tuicher/internal/config"
	"github.com/chess10kp/tuicher/internal/query"
)

// Router dispatches a raw query to the providers selected by its keyword,
// falling back to app search and then the default search engine.
type Router struct {
	ctx *SearchContext

	session   *SessionProvider
	emoji     *EmojiProvider
	bookmarks *BookmarkProvider
	engines   *SearchEngineProvider
	apps      *AppProvider
}

type RouterOptions struct {
	Matcher Matcher
	Index   IndexSource
	Emojis  EmojiCatalog
}

func NewRouter(cfg *config.Config, opts RouterOptions) *Router {
	matcher := opts.Matcher
	if matcher == nil {
		matcher = FuzzyMatcher{}
	}

	return &Router{
		ctx:       &SearchContext{Config: cfg, Matcher: matcher},
		session:   NewSessionProvider(),
		emoji:     NewEmojiProvider(opts.Emojis),
		bookmarks: NewBookmarkProvider(),
		engines:   NewSearchEngineProvider(),
		apps:      NewAppProvider(opts.Index),
	}
}

// Provider returns the provider of the given kind.
func (r *Router) Provider(kind ProviderKind) Provider {
	switch kind {
	case ProviderSession:
		return r.session
	case ProviderEmoji:
		return r.emoji
	case ProviderBookmarks:
		return r.bookmarks
	case ProviderSearchEngine:
		return r.engines
	case ProviderApps:
		return r.apps
	}
	panic(fmt.Sprintf("unknown provider kind %d", kind))
}

func (r *Router) populate(kind ProviderKind, text string) []*Result {
	start := time.Now()
	items := r.Provider(kind).Populate(text, r.ctx)
	log.Printf("[ROUTER] %s provider returned %d items in %v", kind, len(items), time.Since(start))
	return items
}

// Search returns the ordered results for raw. Empty input gives no results.
func (r *Router) Search(raw string) ([]*Result, error) {
	if raw == "" {
		return []*Result{}, nil
	}

	q, err := query.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	cfg := r.ctx.Config
	results := []*Result{}

	if r.ctx.Matcher.Matches("Settings", q.FullText) {
		results = append(results, settingsResult())
	}

	if q.HasKeyword {
		if engine, ok := cfg.EngineByKeyword(q.Keyword); ok {
			log.Printf("[ROUTER] Keyword '%s' selects engine '%s'", q.Keyword, engine.Name)
			return []*Result{r.engines.ForEngine(engine, q.Query)}, nil
		}
		if cfg.EnableSessionManager && q.Keyword == cfg.SessionManagerKeyword {
			return r.populate(ProviderSession, q.Query), nil
		}
		if cfg.EnableEmojis && q.Keyword == cfg.EmojisKeyword {
			return r.populate(ProviderEmoji, q.Query), nil
		}
		if cfg.EnableBookmarks && q.Keyword == cfg.BookmarksKeyword {
			return r.populate(ProviderBookmarks, q.Query), nil
		}
	}

	if apps := r.populate(ProviderApps, raw); len(apps) > 0 {
		return append(results, apps...), nil
	}

	return r.populate(ProviderSearchEngine, raw), nil
}

func settingsResult() *Result {
	return &Result{
		Title:    "Settings",
		Subtitle: "Open Tuicher Settings",
		Category: "settings",
		Action:   &OpenSettingsAction{},
	}
}

package launcher

import "github.com/chess10kp/tuicher/internal/config"

// SearchContext is handed to every provider for one search call.
type SearchContext struct {
	Config  *config.Config
	Matcher Matcher
}

// ProviderKind enumerates the fixed set of result providers.
type ProviderKind int

const (
	ProviderSession ProviderKind = iota
	ProviderEmoji
	ProviderBookmarks
	ProviderSearchEngine
	ProviderApps
)

func (k ProviderKind) String() string {
	switch k {
	case ProviderSession:
		return "session"
	case ProviderEmoji:
		return "emoji"
	case ProviderBookmarks:
		return "bookmarks"
	case ProviderSearchEngine:
		return "search-engine"
	case ProviderApps:
		return "apps"
	default:
		return "unknown"
	}
}

// Provider turns query text into an ordered list of results.
type Provider interface {
	Kind() ProviderKind
	Populate(query string, ctx *SearchContext) []*Result
}

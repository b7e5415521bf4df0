package launcher

import (
	"net/url"
	"strings"

	"github.com/chess10kp/tuicher/internal/config"
)

// SearchEngineProvider builds web search results. Populate uses the
// default engine; ForEngine is used for keyword-selected engines.
type SearchEngineProvider struct{}

func NewSearchEngineProvider() *SearchEngineProvider {
	return &SearchEngineProvider{}
}

func (p *SearchEngineProvider) Kind() ProviderKind {
	return ProviderSearchEngine
}

func (p *SearchEngineProvider) Populate(text string, ctx *SearchContext) []*Result {
	engine, ok := ctx.Config.DefaultEngine()
	if !ok {
		return []*Result{}
	}
	return []*Result{p.ForEngine(engine, text)}
}

func (p *SearchEngineProvider) ForEngine(engine config.SearchEngine, text string) *Result {
	return &Result{
		Title:    engine.Name,
		Subtitle: "Search for " + text,
		Category: "search-engine",
		Action:   NewOpenURLAction(SearchURL(engine, text)),
	}
}

// SearchURL substitutes the query-escaped text for every %s in the template.
func SearchURL(engine config.SearchEngine, text string) string {
	return strings.ReplaceAll(engine.URL, "%s", url.QueryEscape(text))
}

package launcher

import (
	"log"
	"time"

	"github.com/chess10kp/tuicher/internal/apps"
)

// IndexSource yields the current app index. *apps.Indexer implements it.
type IndexSource interface {
	Load() ([]apps.AppEntry, error)
}

type AppProvider struct {
	source IndexSource
}

func NewAppProvider(source IndexSource) *AppProvider {
	return &AppProvider{source: source}
}

func (p *AppProvider) Kind() ProviderKind {
	return ProviderApps
}

// Populate matches text against each app name and each of its keywords,
// keeping index order. A missing or unreadable index yields no results.
func (p *AppProvider) Populate(text string, ctx *SearchContext) []*Result {
	results := []*Result{}
	if p.source == nil {
		return results
	}

	loadStart := time.Now()
	entries, err := p.source.Load()
	if err != nil {
		log.Printf("[APP-PROVIDER] Failed to load app index: %v", err)
		return results
	}
	log.Printf("[APP-PROVIDER] Loaded %d apps in %v", len(entries), time.Since(loadStart))

	for _, app := range entries {
		if !p.matches(app, text, ctx.Matcher) {
			continue
		}
		results = append(results, appToResult(app))
	}
	return results
}

func (p *AppProvider) matches(app apps.AppEntry, text string, m Matcher) bool {
	if m.Matches(app.Name, text) {
		return true
	}
	for _, keyword := range app.Keywords {
		if m.Matches(keyword, text) {
			return true
		}
	}
	return false
}

func appToResult(app apps.AppEntry) *Result {
	subtitle := app.Description
	if subtitle == "" {
		subtitle = "Application"
	}

	return &Result{
		Title:    app.Name,
		Subtitle: subtitle,
		Category: "app",
		IconPath: app.IconPath,
		Action:   NewOpenAppAction(app.Path),
	}
}

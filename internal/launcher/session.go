package launcher

type sessionEntry struct {
	label     string
	title     string
	subtitle  string
	operation SessionOperation
}

var sessionEntries = []sessionEntry{
	{"shutdown/poweroff", "Shutdown", "Shutdown the computer", SessionShutdown},
	{"restart/reboot", "Restart", "Restart the computer", SessionRestart},
	{"suspend", "Suspend", "Suspend the computer", SessionSuspend},
	{"logout", "Logout", "Logout of your desktop environment/window manager", SessionLogout},
}

// SessionProvider offers the power and session commands.
type SessionProvider struct{}

func NewSessionProvider() *SessionProvider {
	return &SessionProvider{}
}

func (p *SessionProvider) Kind() ProviderKind {
	return ProviderSession
}

func (p *SessionProvider) Populate(query string, ctx *SearchContext) []*Result {
	results := []*Result{}
	for _, entry := range sessionEntries {
		if !ctx.Matcher.Matches(entry.label, query) {
			continue
		}
		results = append(results, &Result{
			Title:    entry.title,
			Subtitle: entry.subtitle,
			Category: "session-manager",
			Action:   NewSessionAction(entry.operation),
		})
	}
	return results
}

package apps

// AppEntry is one launchable application discovered in a desktop entry.
// Description and IconPath are empty when absent.
type AppEntry struct {
	Name        string
	Description string
	Keywords    []string
	Path        string
	IconPath    string
}

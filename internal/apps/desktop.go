package apps

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/ini.v1"
)

const desktopGroup = "Desktop Entry"

var errNotApplication = errors.New("not a displayable application")

// desktopEntry holds the fields of a .desktop file the indexer cares about,
// already resolved against the language preferences.
type desktopEntry struct {
	Type      string
	NoDisplay bool
	Name      string
	Comment   string
	Keywords  []string
	Icon      string
}

func readDesktopEntry(path string, langs []string) (desktopEntry, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		IgnoreContinuation:      true,
		KeyValueDelimiters:      "=",
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return desktopEntry{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	sec, err := file.GetSection(desktopGroup)
	if err != nil {
		return desktopEntry{}, fmt.Errorf("%s: missing [%s] group", path, desktopGroup)
	}

	entry := desktopEntry{
		Type:      sec.Key("Type").String(),
		NoDisplay: strings.EqualFold(sec.Key("NoDisplay").String(), "true"),
		Icon:      unescapeValue(sec.Key("Icon").String()),
	}
	entry.Name, _ = localizedValue(sec, "Name", langs)
	entry.Comment, _ = localizedValue(sec, "Comment", langs)
	if raw, ok := localizedValue(sec, "Keywords", langs); ok {
		entry.Keywords = splitList(raw)
	}

	return entry, nil
}

// toAppEntry applies the display filters. Entries without a name are dropped.
func (e desktopEntry) toAppEntry(path string) (AppEntry, error) {
	if e.NoDisplay || e.Type != "Application" {
		return AppEntry{}, errNotApplication
	}
	if e.Name == "" {
		return AppEntry{}, fmt.Errorf("%s: no name", path)
	}

	keywords := e.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	return AppEntry{
		Name:        e.Name,
		Description: e.Comment,
		Keywords:    keywords,
		Path:        path,
	}, nil
}

func localizedValue(sec *ini.Section, key string, langs []string) (string, bool) {
	for _, lang := range langs {
		if k, err := sec.GetKey(key + "[" + lang + "]"); err == nil {
			if v := k.String(); v != "" {
				return norm.NFC.String(unescapeValue(v)), true
			}
		}
	}

	if !sec.HasKey(key) {
		return "", false
	}
	v := sec.Key(key).String()
	if v == "" {
		return "", false
	}
	return norm.NFC.String(unescapeValue(v)), true
}

// splitList splits a ';'-separated list value, honouring "\;" escapes.
func splitList(raw string) []string {
	var out []string
	var cur strings.Builder
	escaped := false

	for _, r := range raw {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ';':
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, s)
			}
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, s)
	}
	return out
}

var valueUnescaper = strings.NewReplacer(`\s`, " ", `\n`, "\n", `\t`, "\t", `\r`, "\r", `\\`, `\`)

func unescapeValue(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	return valueUnescaper.Replace(v)
}

package apps

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Languages returns the locale suffixes used to look up localized desktop
// entry keys, most specific first (de_DE@euro, de_DE, de@euro, de).
func Languages() []string {
	return languagesFrom(os.Getenv)
}

func languagesFrom(getenv func(string) string) []string {
	var locales []string
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(key); v != "" {
			locales = append(locales, v)
			break
		}
	}
	for _, v := range strings.Split(getenv("LANGUAGE"), ":") {
		if v != "" {
			locales = append(locales, v)
		}
	}

	seen := make(map[string]bool)
	var out []string
	for _, locale := range locales {
		for _, variant := range localeVariants(locale) {
			if !seen[variant] {
				seen[variant] = true
				out = append(out, variant)
			}
		}
	}
	return out
}

// localeVariants expands lang_COUNTRY.ENCODING@MODIFIER into the match
// order of the desktop entry specification.
func localeVariants(locale string) []string {
	if locale == "C" || locale == "POSIX" || strings.HasPrefix(locale, "C.") {
		return nil
	}

	modifier := ""
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		modifier = locale[i+1:]
		locale = locale[:i]
	}
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}

	lang, country, _ := strings.Cut(locale, "_")
	if lang == "" {
		return nil
	}

	variants := expand(lang, country, modifier)

	// Canonical spelling, e.g. "EN_us" -> "en_US".
	if tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-")); err == nil {
		base, _ := tag.Base()
		canonCountry := ""
		if region, conf := tag.Region(); conf == language.Exact {
			canonCountry = region.String()
		}
		if base.String() != lang || canonCountry != country {
			variants = append(variants, expand(base.String(), canonCountry, modifier)...)
		}
	}

	return variants
}

func expand(lang, country, modifier string) []string {
	var out []string
	if country != "" && modifier != "" {
		out = append(out, lang+"_"+country+"@"+modifier)
	}
	if country != "" {
		out = append(out, lang+"_"+country)
	}
	if modifier != "" {
		out = append(out, lang+"@"+modifier)
	}
	return append(out, lang)
}

// Package lang holds the UI string tables. Lookups fall back to a
// caller-supplied literal, so a missing key or locale never breaks
// rendering.
package lang

import (
	"embed"
	"encoding/json"

	"github.com/charmbracelet/log"
)

//go:embed tables/*.json
var tablesFS embed.FS

// DefaultLocale is used when no locale was requested.
const DefaultLocale = "en"

type Table struct {
	locale  string
	strings map[string]string
}

// Load reads the string table for locale. An unknown locale yields an
// empty table: every Get then returns its fallback.
func Load(locale string) *Table {
	t := &Table{locale: locale, strings: map[string]string{}}

	raw, err := tablesFS.ReadFile("tables/" + locale + ".json")
	if err != nil {
		log.Warn("No string table for locale, using fallbacks", "locale", locale)
		return t
	}
	if err := json.Unmarshal(raw, &t.strings); err != nil {
		log.Warn("Malformed string table, using fallbacks", "locale", locale, "error", err)
		t.strings = map[string]string{}
	}
	return t
}

// Get returns the string for key, or fallback when the key is absent.
func (t *Table) Get(key, fallback string) string {
	if s, ok := t.strings[key]; ok {
		return s
	}
	return fallback
}

func (t *Table) Locale() string {
	return t.locale
}

// Locales lists the embedded locales, for a language-switcher UI.
func Locales() []string {
	entries, err := tablesFS.ReadDir("tables")
	if err != nil {
		return []string{DefaultLocale}
	}
	var locales []string
	for _, e := range entries {
		name := e.Name()
		if len(name) > len(".json") {
			locales = append(locales, name[:len(name)-len(".json")])
		}
	}
	return locales
}

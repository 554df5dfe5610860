package messages

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// supported lists the embedded catalogs; the first entry is the fallback.
var supported = []language.Tag{
	language.English,
	language.German,
}

// Catalog resolves message keys to localized user-facing text.
type Catalog struct {
	entries  map[string]string
	fallback map[string]string
}

// Load builds a catalog for the given locale. An empty locale falls back to
// the LC_ALL / LANG environment; an unknown or unparseable locale falls back
// to English. Load only fails when an embedded catalog is broken.
func Load(locale string) (*Catalog, error) {
	if locale == "" {
		locale = envLocale()
	}

	tag := match(locale)

	entries, err := loadLocale(tag)
	if err != nil {
		return nil, err
	}
	fallback, err := loadLocale(supported[0])
	if err != nil {
		return nil, err
	}
	return &Catalog{entries: entries, fallback: fallback}, nil
}

// Get returns the localized text for key. Unknown keys resolve to the key
// itself so a missing translation never hides an error message entirely.
func (c *Catalog) Get(key string) string {
	if v, ok := c.entries[key]; ok {
		return v
	}
	if v, ok := c.fallback[key]; ok {
		return v
	}
	return key
}

// match negotiates the closest supported tag for a locale string.
func match(locale string) language.Tag {
	tag, err := language.Parse(normalize(locale))
	if err != nil {
		return supported[0]
	}
	_, index, _ := language.NewMatcher(supported).Match(tag)
	return supported[index]
}

// normalize converts POSIX locale spellings ("de_DE.UTF-8") to BCP 47.
func normalize(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}

func envLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func loadLocale(tag language.Tag) (map[string]string, error) {
	base, _ := tag.Base()
	name := fmt.Sprintf("locales/%s.yaml", base.String())

	data, err := localeFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", name, err)
	}
	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return entries, nil
}

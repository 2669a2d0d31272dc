package enumerate

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the locale an Enumeration resolves labels in
// unless configured otherwise with WithLocale.
var DefaultLocale = language.English

// A Translator resolves the label for the key of an enumeration in a locale.
type Translator interface {
	Translate(tag language.Tag, enum, key string) (string, bool)
}

// A Catalog is a Translator backed by labels stored per locale.
//
// The zero value is not usable; use NewCatalog or LoadCatalog.
type Catalog struct {
	mu      sync.RWMutex
	labels  map[language.Tag]map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
}

// NewCatalog constructs an empty *Catalog.
func NewCatalog() *Catalog {
	return &Catalog{labels: make(map[language.Tag]map[string]map[string]string)}
}

// LoadCatalog constructs a *Catalog from YAML shaped like Rails I18n locale files:
//
//	pt-BR:
//	  enumerations:
//	    relationship_status:
//	      married: Casado
func LoadCatalog(r io.Reader) (*Catalog, error) {
	c := NewCatalog()
	if err := c.Load(r); err != nil {
		return nil, err
	}

	return c, nil
}

type catalogFile map[string]struct {
	Enumerations map[string]map[string]string `yaml:"enumerations"`
}

// Load reads YAML from r, adding its labels to c.
// Labels in r overwrite existing ones for the same locale, enumeration and key.
func (c *Catalog) Load(r io.Reader) error {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return fmt.Errorf("%w: decoding catalog: %s", ErrNotValid, err)
	}

	for locale, section := range f {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("%w: locale %q: %s", ErrNotValid, locale, err)
		}

		for enum, keys := range section.Enumerations {
			for key, label := range keys {
				c.Set(tag, enum, key, label)
			}
		}
	}

	return nil
}

// Set stores label for key of enum in the locale tag.
func (c *Catalog) Set(tag language.Tag, enum, key, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byEnum, ok := c.labels[tag]
	if !ok {
		byEnum = make(map[string]map[string]string)
		c.labels[tag] = byEnum
		c.tags = append(c.tags, tag)
		c.matcher = language.NewMatcher(c.tags)
	}

	if byEnum[enum] == nil {
		byEnum[enum] = make(map[string]string)
	}

	byEnum[enum][key] = label
}

// Locales lists the locales c holds labels for, in the order they were first added.
func (c *Catalog) Locales() []language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]language.Tag(nil), c.tags...)
}

// Translate looks up the label for key of enum in the locale tag.
// If no labels exist for tag itself, the closest matching locale is used,
// for example, "pt" for "pt-BR".
//
// Translate implements Translator.
func (c *Catalog) Translate(tag language.Tag, enum, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byEnum, ok := c.labels[tag]
	if !ok {
		if c.matcher == nil {
			return "", false
		}

		_, idx, conf := c.matcher.Match(tag)
		if conf == language.No {
			return "", false
		}

		byEnum = c.labels[c.tags[idx]]
	}

	label, ok := byEnum[enum][key]
	return label, ok
}

// Humanize derives a label from key:
// underscores and dashes become spaces and each word is title cased.
//
//	"not_started" => "Not Started"
func Humanize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	// NOTE: a cases.Caser is stateful and so is made for each call.
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

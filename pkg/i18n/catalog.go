package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Catalog holds message catalogs per locale and formats them through
// x/text/message printers.
type Catalog struct {
	builder *catalog.Builder
	keys    map[string]map[string]struct{}
	tags    []language.Tag
	matcher language.Matcher
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the process-wide embedded catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(embeddedLocales)
	})
	return defaultCatalog, defaultErr
}

// LoadFS loads every locales/<locale>/<namespace>.yaml file in fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		keys:    make(map[string]map[string]struct{}),
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", p, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := c.keys[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %s is not defined", BaseLocale)
	}

	locales := c.Locales()
	// base locale first so the matcher falls back to it
	c.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range locales {
		if locale != BaseLocale {
			c.tags = append(c.tags, language.MustParse(locale))
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) add(p string, file catalogFile) error {
	dirLocale := path.Base(path.Dir(p))
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("i18n: catalog %s: locale is required", p)
	}
	if locale != dirLocale {
		return fmt.Errorf("i18n: catalog %s: locale %q must match path locale %q", p, locale, dirLocale)
	}
	if strings.TrimSpace(file.Namespace) == "" {
		return fmt.Errorf("i18n: catalog %s: namespace is required", p)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: catalog %s: %w", p, err)
	}

	known, ok := c.keys[locale]
	if !ok {
		known = make(map[string]struct{})
		c.keys[locale] = known
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("i18n: catalog %s: message key cannot be blank", p)
		}
		if _, dup := known[key]; dup {
			return fmt.Errorf("i18n: catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		if err := c.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("i18n: catalog %s: %w", p, err)
		}
		known[key] = struct{}{}
	}
	return nil
}

// Locales lists the loaded locales.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.keys))
	for locale := range c.keys {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Translate formats key for locale. Keys missing from the requested locale
// resolve through the base locale; keys missing everywhere return
// ErrMissingTranslation.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	key = strings.TrimSpace(key)
	if !c.hasKey(key) {
		return "", fmt.Errorf("%w: %s", ErrMissingTranslation, key)
	}

	tag := c.match(locale, key)
	printer := message.NewPrinter(tag, message.Catalog(c.builder))
	return printer.Sprintf(key, args...), nil
}

func (c *Catalog) hasKey(key string) bool {
	for _, known := range c.keys {
		if _, ok := known[key]; ok {
			return true
		}
	}
	return false
}

func (c *Catalog) match(locale, key string) language.Tag {
	base := language.MustParse(BaseLocale)
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return base
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return base
	}
	_, idx, confidence := c.matcher.Match(requested)
	if confidence == language.No {
		return base
	}
	tag := c.tags[idx]
	if _, ok := c.keys[tag.String()][key]; !ok {
		return base
	}
	return tag
}

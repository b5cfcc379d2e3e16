// Package locale loads the embedded translations and negotiates the
// language of a request.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/splshield/splshield-web/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds the translation bundle and one localizer per language.
type Catalog struct {
	bundle     *i18n.Bundle
	localizers map[string]*i18n.Localizer
	languages  []string
	matcher    language.Matcher
	fallback   string
}

// NewCatalog loads every "active.<lang>.json" file embedded in the binary.
// fallback is the language used when negotiation finds no match.
func NewCatalog(fallback string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
		langs = append(langs, langCode)
	}

	if len(langs) == 0 {
		return nil, errors.New(config.ErrNoLocales)
	}

	// The fallback goes first so the matcher picks it when nothing fits.
	if !slices.Contains(langs, fallback) {
		fallback = langs[0]
	}
	ordered := append([]string{fallback}, slices.DeleteFunc(slices.Clone(langs), func(l string) bool { return l == fallback })...)

	tags := make([]language.Tag, 0, len(ordered))
	localizers := make(map[string]*i18n.Localizer, len(ordered))
	for _, l := range ordered {
		tags = append(tags, language.Make(l))
		localizers[l] = i18n.NewLocalizer(bundle, l)
	}

	return &Catalog{
		bundle:     bundle,
		localizers: localizers,
		languages:  ordered,
		matcher:    language.NewMatcher(tags),
		fallback:   fallback,
	}, nil
}

// Languages returns the loaded languages, fallback first.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// Fallback returns the default language.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Match picks the language for a request. An explicit query value wins,
// then the Accept-Language header, then the fallback.
func (c *Catalog) Match(query, acceptLanguage string) string {
	if _, ok := c.localizers[query]; ok {
		return query
	}
	if acceptLanguage == "" {
		return c.fallback
	}

	_, idx, confidence := c.matcher.Match(parseAccept(acceptLanguage)...)
	if confidence == language.No {
		return c.fallback
	}
	return c.languages[idx]
}

func parseAccept(header string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	return tags
}

// Msg translates key for lang. Missing keys come back unchanged.
func (c *Catalog) Msg(lang, key string) string {
	return c.MsgData(lang, key, nil)
}

// MsgData translates key for lang with template data.
func (c *Catalog) MsgData(lang, key string, data map[string]any) string {
	loc, ok := c.localizers[lang]
	if !ok {
		loc = c.localizers[c.fallback]
	}

	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyLang, lang,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Translator binds a Catalog to one language, for templates.
type Translator struct {
	Lang    string
	catalog *Catalog
}

// For returns a Translator for lang.
func (c *Catalog) For(lang string) Translator {
	return Translator{Lang: lang, catalog: c}
}

// T translates key.
func (t Translator) T(key string) string {
	return t.catalog.Msg(t.Lang, key)
}

// TData translates key with alternating name/value pairs.
func (t Translator) TData(key string, pairs ...any) string {
	data := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if name, ok := pairs[i].(string); ok {
			data[name] = pairs[i+1]
		}
	}
	return t.catalog.MsgData(t.Lang, key, data)
}

package i18n

import (
	"embed"
	"errors"

	"github.com/google/logger"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"raffle/internal/models"
)

//go:embed active.*.toml
var localeFS embed.FS

var catalogues = []string{"active.es.toml", "active.en.toml"}

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	matcher         language.Matcher
}

// NewTranslator builds a Translator using the given default locale (e.g.
// "es"). Unknown locales fall back to Spanish, the reference wording.
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Spanish
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range catalogues {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Errorf("i18n: failed to load %s: %v", file, err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		matcher:         language.NewMatcher(bundle.LanguageTags()),
	}
}

// Locales lists the languages with a loaded catalogue.
func (t *Translator) Locales() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.String()
	}
	return out
}

// Match picks the supported locale closest to an Accept-Language header or
// a plain tag. It returns the default locale when nothing matches.
func (t *Translator) Match(accept string) string {
	if accept == "" {
		return t.defaultLanguage.String()
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return t.defaultLanguage.String()
	}
	_, idx, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.defaultLanguage.String()
	}
	base, _ := t.bundle.LanguageTags()[idx].Base()
	return base.String()
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		logger.Warningf("i18n: localize failed (key=%s, locales=%v): %v", key, languages, err)
		return key
	}
	return msg
}

// Error renders a raffle error for end users. Errors from outside the core
// keep their own text.
func (t *Translator) Error(locale string, err error) string {
	if err == nil {
		return ""
	}
	var re *models.Error
	if !errors.As(err, &re) {
		return err.Error()
	}

	data := re.TemplateData()
	if re.Field != "" {
		data["Field"] = t.T(locale, "field."+re.Field, nil)
	}
	return t.T(locale, re.Kind.MessageID(), data)
}

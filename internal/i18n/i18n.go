// Package i18n translates the error messages of the API and the
// notifications of the scanning engine.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client asks for nothing we support.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks messages up in per-locale catalogs. Catalogs are read
// only after construction.
type Translator struct {
	catalogs map[string]map[string]string
}

// NewTranslator creates a translator over the built-in catalogs.
func NewTranslator() *Translator {
	return &Translator{catalogs: map[string]map[string]string{
		"en": english,
		"pt": portuguese,
		"nl": dutch,
	}}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, then in DefaultLocale,
// then key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.catalogs[locale][key]; ok {
		return msg
	}
	if msg, ok := t.catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Format translates key and fills its {name} placeholders from args.
// Placeholders without a value are left as they are.
func (t *Translator) Format(key, locale string, args map[string]string) string {
	msg := t.Translate(key, locale)
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Has reports whether key has a message in the default locale.
func (t *Translator) Has(key string) bool {
	_, ok := t.catalogs[DefaultLocale][key]
	return ok
}

// Supports reports whether locale has a catalog.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.catalogs[locale]
	return ok
}

// Negotiate picks the supported locale the Accept-Language header weights
// highest. Regions are ignored ("pt-BR" matches "pt"), q=0 excludes a
// language and ties keep header order.
func (t *Translator) Negotiate(header string) string {
	type choice struct {
		lang string
		q    float64
	}

	var choices []choice
	for _, part := range strings.Split(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		lang, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(tag)), "-")
		if !t.Supports(lang) {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			q = parsed
		}
		if q > 0 {
			choices = append(choices, choice{lang, q})
		}
	}

	if len(choices) == 0 {
		return DefaultLocale
	}
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].q > choices[j].q })
	return choices[0].lang
}

// GetLocale negotiates the locale of a request.
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}
	return GetTranslator().Negotiate(header)
}

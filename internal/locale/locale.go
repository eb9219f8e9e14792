package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/nurpe/quotation-service/internal/model"
)

type Labels map[string]string

// Get returns the label for key, or the key itself when it has no entry.
func (l Labels) Get(key string) string {
	if v, ok := l[key]; ok {
		return v
	}
	return key
}

type Locale struct {
	Code    string
	Tag     language.Tag
	Variant model.Variant
	Labels  Labels
}

// Registry resolves locales by code or Accept-Language header.
type Registry struct {
	locales  map[string]Locale
	codes    []string
	matcher  language.Matcher
	fallback string
}

func NewRegistry(fallback string, locales ...Locale) (*Registry, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("no locales configured")
	}
	r := &Registry{locales: make(map[string]Locale, len(locales))}
	for _, loc := range locales {
		if _, exists := r.locales[loc.Code]; exists {
			return nil, fmt.Errorf("duplicate locale %q", loc.Code)
		}
		r.locales[loc.Code] = loc
	}

	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = locales[0].Code
	}
	if _, ok := r.locales[fallback]; !ok {
		return nil, fmt.Errorf("default locale %q is not configured", fallback)
	}
	r.fallback = fallback

	// The matcher returns index 0 when nothing matches, so the fallback goes first.
	tags := []language.Tag{r.locales[fallback].Tag}
	r.codes = []string{fallback}
	for _, loc := range locales {
		if loc.Code != fallback {
			tags = append(tags, loc.Tag)
			r.codes = append(r.codes, loc.Code)
		}
	}
	r.matcher = language.NewMatcher(tags)
	return r, nil
}

// Lookup returns the locale registered under code.
func (r *Registry) Lookup(code string) (Locale, bool) {
	loc, ok := r.locales[strings.ToLower(strings.TrimSpace(code))]
	return loc, ok
}

func (r *Registry) Default() Locale {
	return r.locales[r.fallback]
}

// Match picks the best locale for an Accept-Language header value.
func (r *Registry) Match(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.Default()
	}
	_, idx, conf := r.matcher.Match(tags...)
	if conf == language.No {
		return r.Default()
	}
	return r.locales[r.codes[idx]]
}

// Resolve prefers an explicit code and falls back to header matching.
func (r *Registry) Resolve(code, acceptLanguage string) (Locale, error) {
	if strings.TrimSpace(code) != "" {
		loc, ok := r.Lookup(code)
		if !ok {
			return Locale{}, fmt.Errorf("unknown locale %q", code)
		}
		return loc, nil
	}
	return r.Match(acceptLanguage), nil
}

func (r *Registry) Codes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// French is the variant published on the French site: consent block on,
// free-text cities.
func French(variant model.Variant) Locale {
	variant.Locale = "fr"
	return Locale{Code: "fr", Tag: language.French, Variant: variant, Labels: frenchLabels}
}

// English is the variant published on the English site: no consent block,
// cities picked from the selected country's list.
func English(variant model.Variant) Locale {
	variant.Locale = "en"
	return Locale{Code: "en", Tag: language.English, Variant: variant, Labels: englishLabels}
}

func DefaultFrenchVariant() model.Variant {
	return model.Variant{Locale: "fr", DefaultPhoneCode: "+33", Consent: true, CityInput: model.CityInputFree}
}

func DefaultEnglishVariant() model.Variant {
	return model.Variant{Locale: "en", DefaultPhoneCode: "+44", Consent: false, CityInput: model.CityInputList}
}
